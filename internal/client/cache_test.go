package client

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCacheReadThrough(t *testing.T) {
	c := NewCache()
	calls := 0
	fetch := func(context.Context) ([]string, error) {
		calls++
		return []string{"a"}, nil
	}

	_, err := Load(context.Background(), c, KeyDebts, fetch)
	require.NoError(t, err)
	_, err = Load(context.Background(), c, KeyDebts, fetch)
	require.NoError(t, err)
	assert.Equal(t, 1, calls)

	c.Invalidate(KeyDebts, "unknown")
	assert.True(t, c.Dirty(KeyDebts))
	_, err = Load(context.Background(), c, KeyDebts, fetch)
	require.NoError(t, err)
	assert.Equal(t, 2, calls)
}

func TestCacheFailedFetchKeepsEntry(t *testing.T) {
	c := NewCache()
	c.store(KeyPoints, int64(10))
	c.Invalidate(KeyPoints)

	_, err := Load(context.Background(), c, KeyPoints, func(context.Context) (int64, error) {
		return 0, errors.New("offline")
	})
	assert.Error(t, err)
	assert.True(t, c.Dirty(KeyPoints))
}

func TestWorkflow(t *testing.T) {
	w := NewWorkflow("add-debt")
	assert.Equal(t, Idle, w.State())
	assert.Error(t, w.Submit(func() error { return nil }))

	require.NoError(t, w.Open())
	var busyDuring bool
	failure := errors.New("remote said no")
	err := w.Submit(func() error {
		busyDuring = w.Busy()
		return failure
	})
	assert.ErrorIs(t, err, failure)
	assert.True(t, busyDuring)
	assert.Equal(t, Failed, w.State())
	assert.ErrorIs(t, w.Err(), failure)

	require.NoError(t, w.Open())
	require.NoError(t, w.Submit(func() error { return nil }))
	assert.Equal(t, Succeeded, w.State())
	assert.NoError(t, w.Err())
	assert.Error(t, w.Open())
	require.NoError(t, w.Close())
	assert.Equal(t, Idle, w.State())
}

func TestResolveView(t *testing.T) {
	assert.Equal(t, ViewLoading, ResolveView(SessionState{Initializing: true}))
	assert.Equal(t, ViewLanding, ResolveView(SessionState{}))
	assert.Equal(t, ViewLoading, ResolveView(SessionState{Authenticated: true}))
	assert.Equal(t, ViewProfileSetup, ResolveView(SessionState{Authenticated: true, ProfileLoaded: true}))
	assert.Equal(t, ViewOnboarding, ResolveView(SessionState{Authenticated: true, ProfileLoaded: true, HasProfile: true}))
	assert.Equal(t, ViewDashboard, ResolveView(SessionState{Authenticated: true, ProfileLoaded: true, HasProfile: true, Onboarded: true}))
	assert.Equal(t, "profile-setup", ViewProfileSetup.String())
	assert.Equal(t, "View(9)", View(9).String())
	assert.Equal(t, "View(-1)", View(-1).String())
}
