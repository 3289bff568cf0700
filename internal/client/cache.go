package client

import (
	"context"
	"sync"
)

// Cache keys, one per entity collection.
const (
	KeyProfile     = "currentUserProfile"
	KeyMedications = "medications"
	KeyDebts       = "debts"
	KeyPoints      = "points"
	KeyOnboarding  = "onboardingCompleted"
	KeyResources   = "resources"
)

type cacheEntry struct {
	value any
	dirty bool
}

// Cache is a read-through map from collection name to its last loaded value.
// Invalidate marks entries dirty; the next Load refetches them.
type Cache struct {
	mu      sync.Mutex
	entries map[string]*cacheEntry
}

func NewCache() *Cache {
	return &Cache{entries: make(map[string]*cacheEntry)}
}

func (c *Cache) lookup(key string) (any, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.entries[key]
	if !ok || e.dirty {
		return nil, false
	}
	return e.value, true
}

func (c *Cache) store(key string, v any) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = &cacheEntry{value: v}
}

// Invalidate marks keys dirty. Unknown keys are ignored.
func (c *Cache) Invalidate(keys ...string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, k := range keys {
		if e, ok := c.entries[k]; ok {
			e.dirty = true
		}
	}
}

// Dirty reports whether key is missing or invalidated.
func (c *Cache) Dirty(key string) bool {
	_, ok := c.lookup(key)
	return !ok
}

// Load returns the cached value for key, calling fetch when it is absent or
// dirty. A failed fetch leaves the entry as it was.
func Load[T any](ctx context.Context, c *Cache, key string, fetch func(context.Context) (T, error)) (T, error) {
	if v, ok := c.lookup(key); ok {
		if t, ok := v.(T); ok {
			return t, nil
		}
	}
	v, err := fetch(ctx)
	if err != nil {
		var zero T
		return zero, err
	}
	c.store(key, v)
	return v, nil
}
