package google

import (
	"context"
	"errors"
	"maps"
	"net/http"
	"slices"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/api/googleapi"
)

func TestWrapError(t *testing.T) {
	tests := []struct {
		code int
		want error
	}{
		{http.StatusUnauthorized, ErrUnauthorized},
		{http.StatusForbidden, ErrForbidden},
		{http.StatusTooManyRequests, ErrRateLimited},
		{http.StatusBadRequest, ErrBadRequest},
	}
	for _, tt := range tests {
		err := WrapError(&googleapi.Error{Code: tt.code})
		assert.ErrorIs(t, err, tt.want, "code %d", tt.code)
	}

	assert.NoError(t, WrapError(nil))
	plain := errors.New("boom")
	assert.Same(t, plain, WrapError(plain))

	gerr := &googleapi.Error{Code: http.StatusInternalServerError}
	assert.Equal(t, gerr, WrapError(gerr))
}

func TestClassifiers(t *testing.T) {
	assert.True(t, IsUnauthorized(&googleapi.Error{Code: 401}))
	assert.True(t, IsUnauthorized(ErrUnauthorized))
	assert.True(t, IsForbidden(&googleapi.Error{Code: 403}))
	assert.True(t, IsRateLimited(&googleapi.Error{Code: 429}))
	assert.False(t, IsRateLimited(&googleapi.Error{Code: 500}))
	assert.False(t, IsRateLimited(errors.New("other")))
}

func TestRetryAfter(t *testing.T) {
	h := http.Header{}
	h.Set("Retry-After", "30")
	assert.Equal(t, 30, RetryAfter(&googleapi.Error{Code: 429, Header: h}))

	h.Set("Retry-After", "soon")
	assert.Equal(t, 0, RetryAfter(&googleapi.Error{Code: 429, Header: h}))
	assert.Equal(t, 0, RetryAfter(&googleapi.Error{Code: 429}))
	assert.Equal(t, 0, RetryAfter(errors.New("plain")))
}

func TestRateLimiter_Backoff(t *testing.T) {
	r := NewRateLimiter(ServicePlaces)
	assert.Equal(t, ServicePlaces, r.Service())

	now := time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)
	r.now = func() time.Time { return now }

	assert.True(t, r.Allow())
	r.RecordRateLimitError(0)
	assert.False(t, r.Allow(), "backing off after a 429")

	now = now.Add(defaultBackoff)
	assert.True(t, r.Allow())
}

func TestDefaultRateLimits_CoverPlacesOnly(t *testing.T) {
	assert.Equal(t, []ServiceType{ServicePlaces}, slices.Collect(maps.Keys(DefaultRateLimits)))
	assert.Equal(t, ServicePlaces, NewRateLimiter(ServicePlaces).Service())
}

func TestRateLimiter_WaitHonoursContext(t *testing.T) {
	r := NewRateLimiterWithConfig(RateLimitConfig{RequestsPerSecond: 1, BurstSize: 1})
	r.RecordRateLimitError(3600)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	assert.ErrorIs(t, r.Wait(ctx), context.DeadlineExceeded)
}

func TestNewPlacesService_RequiresKey(t *testing.T) {
	_, err := NewPlacesService(context.Background(), "")
	require.ErrorIs(t, err, ErrMissingAPIKey)

	svc, err := NewPlacesService(context.Background(), "test-key")
	require.NoError(t, err)
	assert.NotNil(t, svc.Places)
}
