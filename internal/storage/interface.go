package storage

import (
	"context"

	"github.com/yourname/shammah/internal"
)

// ProfileRepository stores one UserProfile document per user.
type ProfileRepository interface {
	GetProfile(ctx context.Context, userID string) (*internal.UserProfile, error)
	CreateProfile(ctx context.Context, profile *internal.UserProfile) error
	// UpdateProfile applies fn to a copy of the stored profile and persists the
	// copy only if fn returns nil.
	UpdateProfile(ctx context.Context, userID string, fn func(*internal.UserProfile) error) (*internal.UserProfile, error)
}

type ResourceRepository interface {
	AddResource(ctx context.Context, r *internal.Resource) (int64, error)
	UpdateResource(ctx context.Context, r *internal.Resource) error
	DeleteResource(ctx context.Context, id int64) error
	GetResource(ctx context.Context, id int64) (*internal.Resource, error)
	ListResources(ctx context.Context) ([]internal.Resource, error)
}

type UserRepository interface {
	GetUserByToken(ctx context.Context, token string) (*internal.User, error)
}
