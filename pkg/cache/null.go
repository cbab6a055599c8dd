package cache

import (
	"context"
	"time"
)

// NullCache discards every write and misses on every read. It backs
// cacheless runs, where each render recomputes from scratch.
type NullCache struct{}

// NewNullCache returns the discard-everything cache.
func NewNullCache() Cache {
	return &NullCache{}
}

// Get reports a miss for any key.
func (c *NullCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	return nil, false, nil
}

// Set drops the entry.
func (c *NullCache) Set(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	return nil
}

// Delete is a no-op; there is never anything to remove.
func (c *NullCache) Delete(ctx context.Context, key string) error {
	return nil
}

// Close is a no-op.
func (c *NullCache) Close() error {
	return nil
}

var _ Cache = (*NullCache)(nil)
