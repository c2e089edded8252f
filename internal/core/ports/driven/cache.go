package driven

import (
	"context"
	"time"

	"github.com/hopwise/hopwise/internal/core/domain"
)

// CacheStore is a key/value store with per-entry TTL.
// Implementations must be safe for concurrent use and must never return an
// expired entry. Callers treat every error as a miss.
type CacheStore interface {
	// Get returns the stored value or domain.ErrCacheMiss.
	Get(ctx context.Context, key string) ([]byte, error)

	// Set stores value under key for ttl.
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error

	// Stats returns hit/miss counters.
	Stats(ctx context.Context) (domain.CacheStats, error)

	// Close releases resources.
	Close() error
}

// CachePurger is implemented by stores that keep expired entries until they
// are purged. Redis expires keys itself and does not implement it.
type CachePurger interface {
	// Purge deletes expired entries and returns how many were removed.
	Purge(ctx context.Context) (int64, error)
}
