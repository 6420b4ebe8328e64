package cache

import (
	"context"
	"time"
)

// AllTasksKey holds the JSON encoding of the full ordered task listing.
const AllTasksKey = "all_tasks"

// Cache is a key/value cache with per-entry expiry.
// Implementations must be safe for concurrent use.
type Cache interface {
	// Get returns the value for key and whether it was present.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores value under key for ttl. A non-positive ttl uses the
	// implementation's default expiry.
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error

	// Delete removes key. Deleting an absent key is not an error.
	Delete(ctx context.Context, key string) error
}
