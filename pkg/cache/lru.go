package cache

import (
	"context"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
)

// DefaultLRUSize is the number of entries an LRUCache keeps when no size is
// given. A PNG frame at scale 2 is roughly 20 KiB.
const DefaultLRUSize = 256

type lruEntry struct {
	data      []byte
	expiresAt time.Time
}

// LRUCache is a bounded in-memory cache that evicts the least recently used
// entry when full. It is safe for concurrent use.
type LRUCache struct {
	entries *lru.Cache[string, lruEntry]
}

// NewLRUCache creates an in-memory cache holding at most size entries.
func NewLRUCache(size int) (*LRUCache, error) {
	if size <= 0 {
		size = DefaultLRUSize
	}
	entries, err := lru.New[string, lruEntry](size)
	if err != nil {
		return nil, err
	}
	return &LRUCache{entries: entries}, nil
}

// Get retrieves a value, treating expired entries as misses.
func (c *LRUCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	e, ok := c.entries.Get(key)
	if !ok {
		return nil, false, nil
	}
	if !e.expiresAt.IsZero() && time.Now().After(e.expiresAt) {
		c.entries.Remove(key)
		return nil, false, nil
	}
	return e.data, true, nil
}

// Set stores a value.
func (c *LRUCache) Set(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	e := lruEntry{data: data}
	if ttl > 0 {
		e.expiresAt = time.Now().Add(ttl)
	}
	c.entries.Add(key, e)
	return nil
}

// Delete removes a value.
func (c *LRUCache) Delete(ctx context.Context, key string) error {
	c.entries.Remove(key)
	return nil
}

// Len returns the number of cached entries, including expired ones not yet
// evicted.
func (c *LRUCache) Len() int { return c.entries.Len() }

// Close drops all entries.
func (c *LRUCache) Close() error {
	c.entries.Purge()
	return nil
}

// Ensure LRUCache implements Cache.
var _ Cache = (*LRUCache)(nil)
