package storage

import (
	"context"
	"fmt"
	"io"

	"github.com/yourname/shammah/internal"
	"github.com/yourname/shammah/internal/config"
)

// Repositories bundles the stores a server needs; Closer flushes or disconnects them.
type Repositories struct {
	Profiles  ProfileRepository
	Resources ResourceRepository
	Users     UserRepository
	Closer    io.Closer
}

func NewFileRepositories(usersFile, profilesFile, resourcesFile string, logger internal.Logger) (*Repositories, error) {
	storage, err := NewFileStorage(usersFile, profilesFile, resourcesFile, logger)
	if err != nil {
		return nil, err
	}
	return &Repositories{Profiles: storage, Resources: storage, Users: storage, Closer: storage}, nil
}

func NewPostgresRepositories(ctx context.Context, dsn string, logger internal.Logger) (*Repositories, error) {
	storage, err := NewPostgresStorage(ctx, dsn, logger)
	if err != nil {
		return nil, err
	}
	return &Repositories{Profiles: storage, Resources: storage, Users: storage, Closer: storage}, nil
}

// NewRepositories picks the backend named by cfg.DBType.
func NewRepositories(ctx context.Context, cfg *config.Config, logger internal.Logger) (*Repositories, error) {
	switch cfg.DBType {
	case "file":
		return NewFileRepositories(cfg.FileUsers, cfg.FileProfiles, cfg.FileResources, logger)
	case "postgres":
		return NewPostgresRepositories(ctx, cfg.DBDSN, logger)
	default:
		return nil, fmt.Errorf("storage: unknown backend %q", cfg.DBType)
	}
}
