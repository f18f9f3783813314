package settings

import (
	"fmt"
	"sync"
	"time"
)

// DefaultCacheTTL bounds staleness when an entry is never explicitly
// invalidated.
const DefaultCacheTTL = 300 * time.Second

type cacheEntry struct {
	value     string
	expiresAt time.Time
}

// Cache is a process-local store for hot configuration values, keyed by
// (tenant id, key). Entries are invalidated synchronously on write and
// expire after the TTL otherwise. It is not shared across instances; the
// redis invalidation channel covers that when configured.
type Cache struct {
	mu      sync.Mutex
	entries map[string]cacheEntry
	ttl     time.Duration
	now     func() time.Time
}

func NewCache(ttl time.Duration) *Cache {
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}
	return &Cache{
		entries: make(map[string]cacheEntry),
		ttl:     ttl,
		now:     time.Now,
	}
}

func cacheKey(tenantID uint, key string) string {
	return fmt.Sprintf("%d:%s", tenantID, key)
}

func (c *Cache) Get(tenantID uint, key string) (string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	entry, ok := c.entries[cacheKey(tenantID, key)]
	if !ok {
		return "", false
	}
	if c.now().After(entry.expiresAt) {
		delete(c.entries, cacheKey(tenantID, key))
		return "", false
	}
	return entry.value, true
}

func (c *Cache) Set(tenantID uint, key, value string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[cacheKey(tenantID, key)] = cacheEntry{
		value:     value,
		expiresAt: c.now().Add(c.ttl),
	}
}

func (c *Cache) Invalidate(tenantID uint, key string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	delete(c.entries, cacheKey(tenantID, key))
}
