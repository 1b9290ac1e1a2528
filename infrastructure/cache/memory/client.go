// ABOUTME: In-process cache backed by patrickmn/go-cache
// ABOUTME: Used for trend snapshots when Redis is not configured

package memory

import (
	"context"
	"errors"
	"time"

	gocache "github.com/patrickmn/go-cache"
)

// ErrCacheMiss is returned when a key is absent or expired
var ErrCacheMiss = errors.New("cache: key not found")

const defaultCleanupInterval = 10 * time.Minute

// MemoryCache implements the Cache interface with go-cache
type MemoryCache struct {
	cache *gocache.Cache
}

// NewMemoryCache creates a cache whose entries never expire unless given a TTL
func NewMemoryCache() *MemoryCache {
	return NewMemoryCacheWithCleanup(defaultCleanupInterval)
}

// NewMemoryCacheWithCleanup creates a cache that purges expired entries on the given interval
func NewMemoryCacheWithCleanup(cleanupInterval time.Duration) *MemoryCache {
	return &MemoryCache{
		cache: gocache.New(gocache.NoExpiration, cleanupInterval),
	}
}

// Get retrieves a copy of the cached value
func (c *MemoryCache) Get(ctx context.Context, key string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	val, found := c.cache.Get(key)
	if !found {
		return nil, ErrCacheMiss
	}

	data, ok := val.([]byte)
	if !ok {
		return nil, ErrCacheMiss
	}

	out := make([]byte, len(data))
	copy(out, data)
	return out, nil
}

// Set stores a copy of value. A zero ttl stores it indefinitely.
func (c *MemoryCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if ttl <= 0 {
		ttl = gocache.NoExpiration
	}

	data := make([]byte, len(value))
	copy(data, value)
	c.cache.Set(key, data, ttl)
	return nil
}

// Delete removes a key. Missing keys are not an error.
func (c *MemoryCache) Delete(ctx context.Context, key string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	c.cache.Delete(key)
	return nil
}

// Count returns the number of cached entries, including expired ones not yet purged
func (c *MemoryCache) Count() int {
	return c.cache.ItemCount()
}

// Flush removes every entry
func (c *MemoryCache) Flush() {
	c.cache.Flush()
}
