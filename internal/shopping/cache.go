package shopping

import (
	"crypto/sha256"
	"encoding/hex"
	"sort"
	"sync"
	"time"
)

// Cache is a bounded in-memory cache for parse results, keyed by content
// fingerprint. Serving a slightly stale parse for identical input is an
// accepted tradeoff; the cache exists to stop duplicate submissions from
// multiplying metered model calls.
type Cache struct {
	mu         sync.Mutex
	ttl        time.Duration
	maxEntries int
	entries    map[string]cacheEntry

	now func() time.Time
}

type cacheEntry struct {
	items    []ParsedItem
	storedAt time.Time
}

// NewCache creates a Cache with the given entry TTL and capacity.
func NewCache(ttl time.Duration, maxEntries int) *Cache {
	return &Cache{
		ttl:        ttl,
		maxEntries: maxEntries,
		entries:    make(map[string]cacheEntry),
		now:        time.Now,
	}
}

// Fingerprint derives the cache key for a (content, sourceType) pair.
func Fingerprint(content, sourceType string) string {
	sum := sha256.Sum256([]byte(content + "\x00" + sourceType))
	return hex.EncodeToString(sum[:])
}

// Get returns the cached parse result for key if one exists and is younger
// than the TTL. Expired entries are removed on access.
func (c *Cache) Get(key string) ([]ParsedItem, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	if !ok {
		return nil, false
	}
	if c.now().Sub(e.storedAt) >= c.ttl {
		delete(c.entries, key)
		return nil, false
	}
	return e.items, true
}

// Put stores a parse result. When the cache exceeds its capacity the oldest
// half of the entries is evicted in one pass, amortizing cleanup cost
// instead of churning one entry at a time.
func (c *Cache) Put(key string, items []ParsedItem) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[key] = cacheEntry{items: items, storedAt: c.now()}

	if len(c.entries) <= c.maxEntries {
		return
	}

	type aged struct {
		key      string
		storedAt time.Time
	}
	all := make([]aged, 0, len(c.entries))
	for k, e := range c.entries {
		all = append(all, aged{key: k, storedAt: e.storedAt})
	}
	sort.Slice(all, func(i, j int) bool {
		return all[i].storedAt.Before(all[j].storedAt)
	})
	for _, a := range all[:len(all)/2] {
		delete(c.entries, a.key)
	}
}

// EvictExpired removes all entries older than the TTL.
func (c *Cache) EvictExpired() {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	for k, e := range c.entries {
		if now.Sub(e.storedAt) >= c.ttl {
			delete(c.entries, k)
		}
	}
}

// Len returns the number of cached entries.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}
