package cache

import (
	"context"
	"time"
)

// NoopCache never stores anything; every Get is a miss.
type NoopCache struct{}

var _ Cache = NoopCache{}

// Get always misses.
func (NoopCache) Get(context.Context, string) ([]byte, bool, error) { return nil, false, nil }

// Set discards the value.
func (NoopCache) Set(context.Context, string, []byte, time.Duration) error { return nil }

// Delete does nothing.
func (NoopCache) Delete(context.Context, string) error { return nil }
