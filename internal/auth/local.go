package auth

import (
	"context"

	"github.com/yourname/shammah/internal"
	"github.com/yourname/shammah/internal/storage"
)

// LocalAuthProvider accepts tokens from the user store plus one development token.
type LocalAuthProvider struct {
	Token  string
	users  storage.UserRepository
	logger internal.Logger
}

func (a *LocalAuthProvider) Authenticate(ctx context.Context, token string) (*internal.User, error) {
	if a.users != nil {
		if u, err := a.users.GetUserByToken(ctx, token); err == nil {
			return u, nil
		}
	}
	if a.Token != "" && token == a.Token {
		return &internal.User{ID: "u1", Token: a.Token, Name: "Demo User", Role: internal.RoleUser}, nil
	}
	a.logger.Warnf("invalid token")
	return nil, ErrInvalidToken
}

func NewLocalAuthProvider(token string, users storage.UserRepository, logger internal.Logger) *LocalAuthProvider {
	return &LocalAuthProvider{Token: token, users: users, logger: logger}
}
