package driven

import (
	"context"

	"github.com/hopwise/hopwise/internal/core/domain"
)

// RateLimiter counts provider calls in fixed windows.
// Allow increments atomically and never blocks waiting for capacity.
// Callers treat an error as over threshold.
type RateLimiter interface {
	// Allow records one call for provider and reports whether it is within
	// the current window's threshold.
	Allow(ctx context.Context, provider string) (bool, error)

	// Stats returns the current window of every provider seen so far.
	Stats(ctx context.Context) ([]domain.RateWindow, error)
}
