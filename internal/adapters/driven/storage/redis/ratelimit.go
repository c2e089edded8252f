package redis

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/hopwise/hopwise/internal/core/domain"
	"github.com/hopwise/hopwise/internal/core/ports/driven"
)

// Ensure RateLimiter implements the interface.
var _ driven.RateLimiter = (*RateLimiter)(nil)

// RateLimiter is a fixed-window driven.RateLimiter shared by every process
// pointing at the same server.
type RateLimiter struct {
	rdb      redis.UniversalClient
	prefix   string
	settings domain.RateLimitSettings
	now      func() time.Time
}

// NewRateLimiter wraps rdb.
func NewRateLimiter(rdb redis.UniversalClient, settings domain.RateLimitSettings, opts ...Option) *RateLimiter {
	o := buildOptions(opts)
	return &RateLimiter{rdb: rdb, prefix: o.prefix, settings: settings, now: time.Now}
}

func (r *RateLimiter) windowKey(provider string, start time.Time) string {
	return fmt.Sprintf("%s:ratelimit:%s:%d", r.prefix, provider, start.Unix())
}

// Allow increments the provider's current window. Keys embed the window
// start, so the TTL only bounds garbage.
func (r *RateLimiter) Allow(ctx context.Context, provider string) (bool, error) {
	limit := r.settings.For(provider)
	if limit.Limit <= 0 || limit.Window <= 0 {
		return false, nil
	}
	start := r.now().Truncate(limit.Window)
	key := r.windowKey(provider, start)

	pipe := r.rdb.TxPipeline()
	incr := pipe.Incr(ctx, key)
	pipe.Expire(ctx, key, limit.Window)
	pipe.SAdd(ctx, r.prefix+":ratelimit:providers", provider)
	if _, err := pipe.Exec(ctx); err != nil {
		return false, fmt.Errorf("redis allow %s: %w", provider, err)
	}
	return incr.Val() <= int64(limit.Limit), nil
}

// Stats reads the current window of every provider seen so far.
func (r *RateLimiter) Stats(ctx context.Context) ([]domain.RateWindow, error) {
	providers, err := r.rdb.SMembers(ctx, r.prefix+":ratelimit:providers").Result()
	if err != nil {
		return nil, fmt.Errorf("redis rate stats: %w", err)
	}
	sort.Strings(providers)

	now := r.now()
	out := make([]domain.RateWindow, 0, len(providers))
	for _, p := range providers {
		limit := r.settings.For(p)
		if limit.Window <= 0 {
			continue
		}
		start := now.Truncate(limit.Window)
		raw, err := r.rdb.Get(ctx, r.windowKey(p, start)).Result()
		if err != nil && !errors.Is(err, redis.Nil) {
			return nil, fmt.Errorf("redis rate stats %s: %w", p, err)
		}
		n, _ := strconv.Atoi(strings.TrimSpace(raw))
		w := domain.RateWindow{Provider: p, WindowStart: start, Count: n, Threshold: limit.Limit}
		if n > limit.Limit {
			w.Count = limit.Limit
			w.Rejected = n - limit.Limit
		}
		out = append(out, w)
	}
	return out, nil
}
