package memory

import (
	"context"
	"sync"
	"time"

	"github.com/hopwise/hopwise/internal/core/domain"
	"github.com/hopwise/hopwise/internal/core/ports/driven"
)

// Ensure Cache implements the interface.
var (
	_ driven.CacheStore  = (*Cache)(nil)
	_ driven.CachePurger = (*Cache)(nil)
)

// Cache is an in-process driven.CacheStore. Entries expire lazily on read
// and are swept by Purge.
type Cache struct {
	mu      sync.RWMutex
	entries map[string]cacheEntry
	now     func() time.Time
	stats   domain.CacheStats
}

type cacheEntry struct {
	value     []byte
	expiresAt time.Time
}

// CacheOption configures a Cache.
type CacheOption func(*Cache)

// WithClock replaces time.Now, for tests that need to step past a TTL.
func WithClock(now func() time.Time) CacheOption {
	return func(c *Cache) { c.now = now }
}

// NewCache creates an empty cache.
func NewCache(opts ...CacheOption) *Cache {
	c := &Cache{
		entries: make(map[string]cacheEntry),
		now:     time.Now,
		stats:   domain.CacheStats{Backend: string(domain.BackendMemory)},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Get returns a copy of the stored value or domain.ErrCacheMiss.
func (c *Cache) Get(_ context.Context, key string) ([]byte, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	if !ok {
		c.stats.Misses++
		return nil, domain.ErrCacheMiss
	}
	if !c.now().Before(e.expiresAt) {
		delete(c.entries, key)
		c.stats.Expired++
		c.stats.Misses++
		return nil, domain.ErrCacheMiss
	}
	c.stats.Hits++
	return append([]byte(nil), e.value...), nil
}

// Set stores a copy of value. A non-positive ttl stores nothing.
func (c *Cache) Set(_ context.Context, key string, value []byte, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[key] = cacheEntry{
		value:     append([]byte(nil), value...),
		expiresAt: c.now().Add(ttl),
	}
	c.stats.Sets++
	return nil
}

// Purge drops every expired entry and returns how many were removed.
func (c *Cache) Purge(_ context.Context) (int64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	var removed int64
	for k, e := range c.entries {
		if !now.Before(e.expiresAt) {
			delete(c.entries, k)
			removed++
		}
	}
	c.stats.Expired += removed
	return removed, nil
}

// Stats returns a snapshot of the counters.
func (c *Cache) Stats(_ context.Context) (domain.CacheStats, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	s := c.stats
	s.Entries = int64(len(c.entries))
	return s, nil
}

// Close drops all entries.
func (c *Cache) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]cacheEntry)
	return nil
}
