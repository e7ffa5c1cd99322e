package cache

import (
	"time"

	gocache "github.com/patrickmn/go-cache"

	"github.com/pmarkov/probledger/internal/model"
)

// MemoryCache holds ledger entries in memory with per-entry TTLs
type MemoryCache struct {
	cache *gocache.Cache
}

// NewMemoryCache creates a new memory cache
func NewMemoryCache(defaultTTL time.Duration, cleanupInterval time.Duration) *MemoryCache {
	return &MemoryCache{
		cache: gocache.New(defaultTTL, cleanupInterval),
	}
}

// Get retrieves the cached entry for an event
func (c *MemoryCache) Get(event string) (model.Entry, bool) {
	if val, found := c.cache.Get(Key(event)); found {
		if entry, ok := val.(model.Entry); ok {
			return entry, true
		}
	}
	return model.Entry{}, false
}

// Set caches the entry for an event with the given TTL
func (c *MemoryCache) Set(event string, entry model.Entry, ttl time.Duration) {
	c.cache.Set(Key(event), entry, ttl)
}

// Delete evicts the cached entry for an event
func (c *MemoryCache) Delete(event string) {
	c.cache.Delete(Key(event))
}

// Clear evicts all cached entries
func (c *MemoryCache) Clear() {
	c.cache.Flush()
}
