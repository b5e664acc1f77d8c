package cache

import (
	"context"
	"time"
)

// TTLCache overrides the lifetime of every entry written through it.
type TTLCache struct {
	Cache
	ttl time.Duration
}

// WithTTL wraps c so that Set uses ttl instead of the caller's lifetime.
// A ttl of zero returns c unchanged.
func WithTTL(c Cache, ttl time.Duration) Cache {
	if ttl == 0 {
		return c
	}
	return &TTLCache{Cache: c, ttl: ttl}
}

// Set stores data with the configured lifetime.
func (c *TTLCache) Set(ctx context.Context, key string, data []byte, _ time.Duration) error {
	return c.Cache.Set(ctx, key, data, c.ttl)
}
