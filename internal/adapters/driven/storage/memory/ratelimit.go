package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/hopwise/hopwise/internal/core/domain"
	"github.com/hopwise/hopwise/internal/core/ports/driven"
)

// Ensure RateLimiter implements the interface.
var _ driven.RateLimiter = (*RateLimiter)(nil)

// RateLimiter is an in-process fixed-window driven.RateLimiter. Windows are
// aligned to multiples of the configured length.
type RateLimiter struct {
	mu       sync.Mutex
	settings domain.RateLimitSettings
	windows  map[string]*domain.RateWindow
	now      func() time.Time
}

// RateLimiterOption configures a RateLimiter.
type RateLimiterOption func(*RateLimiter)

// WithLimiterClock replaces time.Now.
func WithLimiterClock(now func() time.Time) RateLimiterOption {
	return func(r *RateLimiter) { r.now = now }
}

// NewRateLimiter creates a limiter with per-provider thresholds.
func NewRateLimiter(settings domain.RateLimitSettings, opts ...RateLimiterOption) *RateLimiter {
	r := &RateLimiter{
		settings: settings,
		windows:  make(map[string]*domain.RateWindow),
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Allow counts one call for provider. Calls over the threshold are counted
// as rejected and do not consume the window.
func (r *RateLimiter) Allow(_ context.Context, provider string) (bool, error) {
	limit := r.settings.For(provider)
	if limit.Limit <= 0 || limit.Window <= 0 {
		return false, nil
	}

	start := r.now().Truncate(limit.Window)

	r.mu.Lock()
	defer r.mu.Unlock()

	w, ok := r.windows[provider]
	if !ok || !w.WindowStart.Equal(start) {
		w = &domain.RateWindow{Provider: provider, WindowStart: start, Threshold: limit.Limit}
		r.windows[provider] = w
	}
	if w.Count >= w.Threshold {
		w.Rejected++
		return false, nil
	}
	w.Count++
	return true, nil
}

// Stats returns the latest window per provider, sorted by name.
func (r *RateLimiter) Stats(_ context.Context) ([]domain.RateWindow, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]domain.RateWindow, 0, len(r.windows))
	for _, w := range r.windows {
		out = append(out, *w)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Provider < out[j].Provider })
	return out, nil
}
