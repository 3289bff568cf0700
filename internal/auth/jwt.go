package auth

import (
	"context"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/yourname/shammah/internal"
)

type Claims struct {
	UserID string `json:"user_id"`
	Name   string `json:"name"`
	Role   string `json:"role"`

	jwt.RegisteredClaims
}

// JWTAuthProvider validates HS256 tokens signed with a shared secret.
type JWTAuthProvider struct {
	secret []byte
	logger internal.Logger
}

func NewJWTAuthProvider(secret []byte, logger internal.Logger) *JWTAuthProvider {
	return &JWTAuthProvider{secret: secret, logger: logger}
}

func (a *JWTAuthProvider) Authenticate(ctx context.Context, token string) (*internal.User, error) {
	claims := &Claims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		return a.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil || !parsed.Valid {
		a.logger.Warnf("jwt rejected: %v", err)
		return nil, ErrInvalidToken
	}
	if claims.UserID == "" {
		return nil, ErrInvalidToken
	}
	role := internal.Role(claims.Role)
	if role == "" {
		role = internal.RoleUser
	}
	return &internal.User{ID: claims.UserID, Token: token, Name: claims.Name, Role: role}, nil
}

// IssueToken signs a token for user that expires after ttl.
func (a *JWTAuthProvider) IssueToken(user *internal.User, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := Claims{
		UserID: user.ID,
		Name:   user.Name,
		Role:   string(user.Role),
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(a.secret)
	if err != nil {
		return "", fmt.Errorf("auth: sign token: %w", err)
	}
	return signed, nil
}
