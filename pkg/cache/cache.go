// Package cache stores rendered artefacts between runs.
//
// A [Cache] is a byte store with per-entry TTLs. [FileCache] keeps entries
// under the user cache directory for the CLI, [RedisCache] shares them
// between serve instances, and [NullCache] disables caching. Keys are built
// by a [Keyer] from the hash of the input record and the render options, so
// a changed record or option never reuses a stale artefact.
package cache

import (
	"context"
	"time"
)

// Cache is a byte store with expiring entries.
type Cache interface {
	// Get returns the value for key and whether it was found.
	Get(ctx context.Context, key string) ([]byte, bool, error)
	// Set stores data under key. A ttl <= 0 never expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error
	// Close releases the cache's resources.
	Close() error
}

// Default entry lifetimes.
const (
	TTLLayout   = 7 * 24 * time.Hour
	TTLArtifact = 7 * 24 * time.Hour
)
