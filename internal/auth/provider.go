package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/yourname/shammah/internal"
	"github.com/yourname/shammah/internal/config"
	"github.com/yourname/shammah/internal/storage"
)

var ErrInvalidToken = errors.New("invalid token")

type Provider interface {
	Authenticate(ctx context.Context, token string) (*internal.User, error)
}

// NewProvider builds the provider selected by cfg.AuthMode.
func NewProvider(cfg *config.Config, users storage.UserRepository, logger internal.Logger) (Provider, error) {
	switch cfg.AuthMode {
	case "local":
		return NewLocalAuthProvider(cfg.AuthToken, users, logger), nil
	case "jwt":
		return NewJWTAuthProvider([]byte(cfg.JWTSecret), logger), nil
	case "remote":
		return NewRemoteAuthProvider(cfg.AuthServiceURL, logger), nil
	default:
		return nil, fmt.Errorf("auth: unknown mode %q", cfg.AuthMode)
	}
}
