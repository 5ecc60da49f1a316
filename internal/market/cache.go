package market

import (
	"sync"
	"time"
)

// Cache holds the most recently fetched catalog so price queries do not hit
// the market-data service on every message. The scheduler refreshes it
// periodically; handlers fetch inline when it is empty or stale.
type Cache struct {
	mu        sync.RWMutex
	items     []Item
	fetchedAt time.Time
}

// NewCache returns an empty catalog cache.
func NewCache() *Cache {
	return &Cache{}
}

// Set replaces the cached catalog.
func (c *Cache) Set(items []Item) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items = items
	c.fetchedAt = time.Now().UTC()
}

// Snapshot returns a copy of the cached catalog and when it was fetched.
// The zero time means the cache has never been filled.
func (c *Cache) Snapshot() ([]Item, time.Time) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]Item, len(c.items))
	copy(out, c.items)
	return out, c.fetchedAt
}
