package storage

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yourname/shammah/internal"
)

type testFiles struct {
	users, profiles, resources string
}

func newTestFiles(t *testing.T) testFiles {
	dir := t.TempDir()
	f := testFiles{
		users:     filepath.Join(dir, "users.json"),
		profiles:  filepath.Join(dir, "profiles.json"),
		resources: filepath.Join(dir, "resources.json"),
	}
	require.NoError(t, os.WriteFile(f.users, []byte(`[
		{"id":"u1","token":"MOCK-TOKEN","name":"Test User"},
		{"id":"admin","token":"ADMIN-TOKEN","name":"Admin","role":"admin"}
	]`), 0o644))
	return f
}

func openStorage(t *testing.T, f testFiles) *FileStorage {
	s, err := NewFileStorage(f.users, f.profiles, f.resources, internal.NopLogger())
	require.NoError(t, err)
	return s
}

func TestUsersLoadWithDefaultRole(t *testing.T) {
	s := openStorage(t, newTestFiles(t))
	t.Cleanup(func() { _ = s.Close() })
	ctx := context.Background()

	u, err := s.GetUserByToken(ctx, "MOCK-TOKEN")
	require.NoError(t, err)
	assert.Equal(t, internal.RoleUser, u.Role)

	a, err := s.GetUserByToken(ctx, "ADMIN-TOKEN")
	require.NoError(t, err)
	assert.True(t, a.IsAdmin())

	_, err = s.GetUserByToken(ctx, "nope")
	assert.ErrorIs(t, err, internal.ErrNotFound)
}

func TestProfileRoundTripAcrossRestart(t *testing.T) {
	f := newTestFiles(t)
	ctx := context.Background()
	s := openStorage(t, f)

	require.NoError(t, s.CreateProfile(ctx, internal.NewUserProfile("u1", "t@example.com", "tester", 1)))
	assert.ErrorIs(t, s.CreateProfile(ctx, internal.NewUserProfile("u1", "t@example.com", "tester", 1)), internal.ErrConflict)

	_, err := s.UpdateProfile(ctx, "u1", func(p *internal.UserProfile) error {
		p.Points = 25
		p.Debts = append(p.Debts, internal.DebtRecord{ID: p.AllocateDebtID(), CreditorName: "Bank", Amount: 500000,
			Status: internal.DebtStatusOverdue(1000)})
		return nil
	})
	require.NoError(t, err)
	require.NoError(t, s.Close())

	info, err := os.Stat(f.profiles)
	require.NoError(t, err)
	assert.True(t, info.Size() > 0)

	reopened := openStorage(t, f)
	t.Cleanup(func() { _ = reopened.Close() })
	p, err := reopened.GetProfile(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, int64(25), p.Points)
	require.Len(t, p.Debts, 1)
	assert.Equal(t, internal.DebtOverdue, p.Debts[0].Status.Kind())
	assert.Equal(t, int64(2), p.NextDebtID)
}

func TestUpdateProfileDiscardsFailedMutation(t *testing.T) {
	s := openStorage(t, newTestFiles(t))
	t.Cleanup(func() { _ = s.Close() })
	ctx := context.Background()
	require.NoError(t, s.CreateProfile(ctx, internal.NewUserProfile("u1", "t@example.com", "tester", 1)))

	boom := errors.New("boom")
	_, err := s.UpdateProfile(ctx, "u1", func(p *internal.UserProfile) error {
		p.Points = 999
		p.JournalEntries = append(p.JournalEntries, internal.JournalEntry{Content: "lost"})
		return boom
	})
	assert.ErrorIs(t, err, boom)

	p, err := s.GetProfile(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, int64(0), p.Points)
	assert.Empty(t, p.JournalEntries)

	_, err = s.UpdateProfile(ctx, "ghost", func(*internal.UserProfile) error { return nil })
	assert.ErrorIs(t, err, internal.ErrNotFound)
}

func TestGetProfileReturnsCopy(t *testing.T) {
	s := openStorage(t, newTestFiles(t))
	t.Cleanup(func() { _ = s.Close() })
	ctx := context.Background()
	require.NoError(t, s.CreateProfile(ctx, internal.NewUserProfile("u1", "t@example.com", "tester", 1)))

	p, err := s.GetProfile(ctx, "u1")
	require.NoError(t, err)
	p.WellnessPillars[0].Progress = 80

	again, err := s.GetProfile(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, 0, again.WellnessPillars[0].Progress)
}

func TestResourceIDsSurviveRestart(t *testing.T) {
	f := newTestFiles(t)
	ctx := context.Background()
	s := openStorage(t, f)

	id1, err := s.AddResource(ctx, &internal.Resource{Title: "Sleep", ResourceType: "article"})
	require.NoError(t, err)
	id2, err := s.AddResource(ctx, &internal.Resource{Title: "Breathing", ResourceType: "video"})
	require.NoError(t, err)
	require.NoError(t, s.DeleteResource(ctx, id2))
	assert.ErrorIs(t, s.UpdateResource(ctx, &internal.Resource{ID: id2}), internal.ErrNotFound)
	require.NoError(t, s.Close())

	reopened := openStorage(t, f)
	t.Cleanup(func() { _ = reopened.Close() })
	id3, err := reopened.AddResource(ctx, &internal.Resource{Title: "Yoga", ResourceType: "video"})
	require.NoError(t, err)
	assert.Greater(t, id3, id2)

	list, err := reopened.ListResources(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, id1, list[0].ID)
}

func TestNewFileStorageRejectsCorruptFile(t *testing.T) {
	f := newTestFiles(t)
	require.NoError(t, os.WriteFile(f.profiles, []byte("{not json"), 0o644))
	_, err := NewFileStorage(f.users, f.profiles, f.resources, internal.NopLogger())
	assert.Error(t, err)
}
