package konorm

import (
	"fmt"
	"sync/atomic"

	lru "github.com/hashicorp/golang-lru/v2"
)

// Normalizing is anything that can normalize text; *Normalizer and *Cache both are.
type Normalizing interface {
	Normalize(input string) string
}

// Cache memoizes Normalize results in a fixed-size LRU.
type Cache struct {
	next Normalizing
	lru  *lru.Cache[string, string]

	hits   atomic.Uint64
	misses atomic.Uint64
}

// CacheStats is a snapshot of the cache counters.
type CacheStats struct {
	Hits   uint64 `json:"hits"`
	Misses uint64 `json:"misses"`
	Len    int    `json:"len"`
}

// NewCache wraps next with an LRU of size entries.
func NewCache(next Normalizing, size int) (*Cache, error) {
	if next == nil {
		return nil, fmt.Errorf("konorm: nil normalizer")
	}
	c, err := lru.New[string, string](size)
	if err != nil {
		return nil, fmt.Errorf("creating lru cache: %w", err)
	}
	return &Cache{next: next, lru: c}, nil
}

// Normalize returns the cached result for input, computing it on a miss.
func (c *Cache) Normalize(input string) string {
	out, _ := c.Lookup(input)
	return out
}

// Lookup is Normalize that also reports whether the result was cached.
func (c *Cache) Lookup(input string) (string, bool) {
	if out, ok := c.lru.Get(input); ok {
		c.hits.Add(1)
		return out, true
	}
	c.misses.Add(1)
	out := c.next.Normalize(input)
	c.lru.Add(input, out)
	return out, false
}

// Purge drops every cached entry. Call it after the dictionary changes.
func (c *Cache) Purge() { c.lru.Purge() }

func (c *Cache) Stats() CacheStats {
	return CacheStats{Hits: c.hits.Load(), Misses: c.misses.Load(), Len: c.lru.Len()}
}
