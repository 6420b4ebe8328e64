package cache

import (
	"context"
	"time"

	gocache "github.com/patrickmn/go-cache"
)

// MemoryCache is an in-process Cache backed by go-cache. Expired entries are
// invisible immediately and swept by a janitor goroutine every
// cleanupInterval.
type MemoryCache struct {
	items *gocache.Cache
}

// NewMemoryCache creates a MemoryCache. defaultTTL applies when Set is
// called with a non-positive ttl.
func NewMemoryCache(defaultTTL, cleanupInterval time.Duration) *MemoryCache {
	return &MemoryCache{
		items: gocache.New(defaultTTL, cleanupInterval),
	}
}

var _ Cache = (*MemoryCache)(nil)

// Get implements Cache.Get. The returned slice is a copy.
func (c *MemoryCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	if err := ctx.Err(); err != nil {
		return nil, false, err
	}

	v, ok := c.items.Get(key)
	if !ok {
		return nil, false, nil
	}
	b, ok := v.([]byte)
	if !ok {
		return nil, false, nil
	}
	return clone(b), true, nil
}

// Set implements Cache.Set. The value is copied before it is stored.
func (c *MemoryCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if ttl <= 0 {
		ttl = gocache.DefaultExpiration
	}
	c.items.Set(key, clone(value), ttl)
	return nil
}

// Delete implements Cache.Delete. It succeeds even when ctx is done, so an
// invalidation following a committed write is never skipped.
func (c *MemoryCache) Delete(_ context.Context, key string) error {
	c.items.Delete(key)
	return nil
}

// Flush drops every entry.
func (c *MemoryCache) Flush() {
	c.items.Flush()
}

func clone(b []byte) []byte {
	if b == nil {
		return nil
	}
	out := make([]byte, len(b))
	copy(out, b)
	return out
}
