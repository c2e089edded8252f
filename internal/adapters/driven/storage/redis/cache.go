package redis

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/hopwise/hopwise/internal/core/domain"
	"github.com/hopwise/hopwise/internal/core/ports/driven"
)

// Ensure Cache implements the interface.
var _ driven.CacheStore = (*Cache)(nil)

// DefaultPrefix namespaces every key written by this package.
const DefaultPrefix = "hopwise"

// Cache is a driven.CacheStore on Redis.
type Cache struct {
	rdb    redis.UniversalClient
	prefix string
	owned  bool
}

// Option configures the Redis adapters.
type Option func(*options)

type options struct {
	prefix string
	owned  bool
}

// WithPrefix overrides DefaultPrefix.
func WithPrefix(prefix string) Option {
	return func(o *options) { o.prefix = strings.Trim(prefix, ":") }
}

// WithOwnedClient makes Close also close the client.
func WithOwnedClient() Option {
	return func(o *options) { o.owned = true }
}

func buildOptions(opts []Option) options {
	o := options{prefix: DefaultPrefix}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// NewClient creates a client for addr.
func NewClient(addr string) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:         addr,
		DialTimeout:  2 * time.Second,
		ReadTimeout:  time.Second,
		WriteTimeout: time.Second,
	})
}

// NewCache wraps rdb.
func NewCache(rdb redis.UniversalClient, opts ...Option) *Cache {
	o := buildOptions(opts)
	return &Cache{rdb: rdb, prefix: o.prefix, owned: o.owned}
}

func (c *Cache) key(k string) string { return c.prefix + ":cache:" + k }
func (c *Cache) statsKey() string    { return c.prefix + ":cache:stats" }

// Get returns the stored value or domain.ErrCacheMiss. Expiry is enforced by
// the server.
func (c *Cache) Get(ctx context.Context, key string) ([]byte, error) {
	val, err := c.rdb.Get(ctx, c.key(key)).Bytes()
	switch {
	case errors.Is(err, redis.Nil):
		c.count(ctx, "misses")
		return nil, domain.ErrCacheMiss
	case err != nil:
		return nil, fmt.Errorf("redis get: %w", err)
	}
	c.count(ctx, "hits")
	return val, nil
}

// Set stores value with ttl. A non-positive ttl stores nothing.
func (c *Cache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	pipe := c.rdb.TxPipeline()
	pipe.Set(ctx, c.key(key), value, ttl)
	pipe.HIncrBy(ctx, c.statsKey(), "sets", 1)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("redis set: %w", err)
	}
	return nil
}

// count bumps a stats field. Failures are ignored: stats never fail a lookup.
func (c *Cache) count(ctx context.Context, field string) {
	_ = c.rdb.HIncrBy(ctx, c.statsKey(), field, 1).Err()
}

// Stats reads the shared counters. Expired is not tracked because Redis
// evicts entries itself.
func (c *Cache) Stats(ctx context.Context) (domain.CacheStats, error) {
	fields, err := c.rdb.HGetAll(ctx, c.statsKey()).Result()
	if err != nil {
		return domain.CacheStats{}, fmt.Errorf("redis stats: %w", err)
	}
	stats := domain.CacheStats{Backend: string(domain.BackendRedis)}
	stats.Hits = parseCount(fields["hits"])
	stats.Misses = parseCount(fields["misses"])
	stats.Sets = parseCount(fields["sets"])
	return stats, nil
}

// Close closes the client when it is owned.
func (c *Cache) Close() error {
	if c.owned {
		return c.rdb.Close()
	}
	return nil
}

func parseCount(s string) int64 {
	var n int64
	_, _ = fmt.Sscan(s, &n)
	return n
}
