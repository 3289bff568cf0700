package service_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/yourname/shammah/internal"
	"github.com/yourname/shammah/internal/service"
	"github.com/yourname/shammah/internal/storage"
)

var ctx = context.Background()

func setupTestStorage(t *testing.T) *storage.FileStorage {
	dir := t.TempDir()
	s, err := storage.NewFileStorage("", filepath.Join(dir, "profiles.json"), filepath.Join(dir, "resources.json"), internal.NopLogger())
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

// setupProfile returns a store holding one fresh profile for u1.
func setupProfile(t *testing.T) (*storage.FileStorage, *internal.User) {
	s := setupTestStorage(t)
	user := &internal.User{ID: "u1", Name: "Test User", Role: internal.RoleUser}
	_, err := service.CreateProfile(ctx, s, user, &service.ProfileRequest{Email: "test@example.com", Username: "tester"})
	require.NoError(t, err)
	return s, user
}

func loadProfile(t *testing.T, s storage.ProfileRepository, user *internal.User) *internal.UserProfile {
	p, err := s.GetProfile(ctx, user.ID)
	require.NoError(t, err)
	return p
}
