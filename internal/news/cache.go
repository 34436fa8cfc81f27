package news

import (
	"fmt"
	"sync"
	"time"
)

// DefaultCacheTTL is the freshness window for cached responses.
const DefaultCacheTTL = 10 * time.Minute

// CategoryKey derives the cache key for a by-category request shape.
func CategoryKey(category string, pageSize int) string {
	return fmt.Sprintf("%s-%d", category, pageSize)
}

// QueryKey derives the cache key for a by-query request shape.
func QueryKey(query string, pageSize int) string {
	return fmt.Sprintf("search-%s-%d", query, pageSize)
}

// HeadlinesKey derives the cache key for a top-headlines request shape.
func HeadlinesKey(pageSize int) string {
	return fmt.Sprintf("headlines-%d", pageSize)
}

type cacheEntry struct {
	articles []Article
	storedAt time.Time
}

// Cache is an in-memory response cache keyed by request shape. Entries older
// than the freshness window are treated as misses but not evicted; a race on
// the same key may cause one duplicate upstream call, which is acceptable.
type Cache struct {
	mu      sync.RWMutex
	ttl     time.Duration
	entries map[string]cacheEntry
	now     func() time.Time
}

// NewCache creates a cache with the given freshness window.
func NewCache(ttl time.Duration) *Cache {
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}
	return &Cache{
		ttl:     ttl,
		entries: make(map[string]cacheEntry),
		now:     time.Now,
	}
}

// Get returns the cached articles for key if they are still fresh.
func (c *Cache) Get(key string) ([]Article, bool) {
	c.mu.RLock()
	entry, ok := c.entries[key]
	c.mu.RUnlock()
	if !ok {
		return nil, false
	}
	if c.now().Sub(entry.storedAt) >= c.ttl {
		return nil, false
	}
	return entry.articles, true
}

// Put stores articles for key, overwriting any prior entry.
func (c *Cache) Put(key string, articles []Article) {
	c.mu.Lock()
	c.entries[key] = cacheEntry{articles: articles, storedAt: c.now()}
	c.mu.Unlock()
}

// InvalidateAll clears every entry, guaranteeing the next retrieval for any
// key is a live fetch.
func (c *Cache) InvalidateAll() {
	c.mu.Lock()
	c.entries = make(map[string]cacheEntry)
	c.mu.Unlock()
}
