// Package cache stores rendered artifacts keyed by their render options.
//
// Rendering is deterministic, so an artifact for a given (format, progress,
// scale) never changes and can be cached indefinitely. Backends:
//   - [FileCache]: JSON entries under the XDG cache directory, used by the CLI
//   - [LRUCache]: bounded in-process cache, used by the HTTP server
//   - [RedisCache]: shared cache for several server instances
//   - [NullCache]: disables caching
//
// Keys are produced by a [Keyer] so callers never build them by hand:
//
//	key := cache.NewDefaultKeyer().ArtifactKey(cache.ArtifactKeyOpts{
//	    Format: "png", Progress: 50, Scale: 2,
//	})
//	data, hit, err := c.Get(ctx, key)
package cache

import (
	"context"
	"time"
)

// DefaultTTL is the expiry used when callers have no preference. Zero means
// entries never expire.
const DefaultTTL time.Duration = 0

// Cache is a byte-oriented key/value store with optional expiry.
type Cache interface {
	// Get returns the cached data and whether it was found.
	Get(ctx context.Context, key string) ([]byte, bool, error)
	// Set stores data under key. A non-positive ttl means no expiry.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error
	// Close releases resources held by the cache.
	Close() error
}

// NullCache never stores anything. Every Get is a miss.
type NullCache struct{}

var _ Cache = (*NullCache)(nil)

// NewNullCache creates a cache that disables caching.
func NewNullCache() Cache { return &NullCache{} }

func (*NullCache) Get(context.Context, string) ([]byte, bool, error)        { return nil, false, nil }
func (*NullCache) Set(context.Context, string, []byte, time.Duration) error { return nil }
func (*NullCache) Delete(context.Context, string) error                     { return nil }
func (*NullCache) Close() error                                             { return nil }
