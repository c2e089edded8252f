package services

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/hopwise/hopwise/internal/core/domain"
	"github.com/hopwise/hopwise/internal/core/ports/driven"
)

// --- Mock implementations ---

// mockLLM answers by matching a substring of the system prompt.
type mockLLM struct {
	mu        sync.Mutex
	replies   map[string]string
	fallback  string
	err       error
	calls     atomic.Int32
	lastOpts  driven.ChatOptions
	lastInput string
}

func newMockLLM() *mockLLM {
	return &mockLLM{replies: make(map[string]string)}
}

// on registers reply for calls whose system prompt contains marker.
func (m *mockLLM) on(marker, reply string) *mockLLM {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.replies[marker] = reply
	return m
}

func (m *mockLLM) Chat(_ context.Context, msgs []driven.ChatMessage, opts driven.ChatOptions) (string, error) {
	m.calls.Add(1)
	m.mu.Lock()
	defer m.mu.Unlock()
	m.lastOpts = opts
	if len(msgs) > 1 {
		m.lastInput = msgs[1].Content
	}
	if m.err != nil {
		return "", m.err
	}
	for marker, reply := range m.replies {
		if strings.Contains(msgs[0].Content, marker) {
			return reply, nil
		}
	}
	return m.fallback, nil
}

// asLLM avoids passing a typed nil as a non-nil interface.
func asLLM(m *mockLLM) driven.LLMService {
	if m == nil {
		return nil
	}
	return m
}

func (m *mockLLM) ModelName() string          { return "mock" }
func (m *mockLLM) Ping(context.Context) error { return nil }
func (m *mockLLM) Close() error               { return nil }

// mockProvider returns canned results through a JSON payload.
type mockProvider[Q, R any] struct {
	name    string
	results []R
	err     error
	panics  bool
	calls   atomic.Int32
}

func (m *mockProvider[Q, R]) Name() string { return m.name }

func (m *mockProvider[Q, R]) Fetch(_ context.Context, _ Q) ([]byte, error) {
	m.calls.Add(1)
	if m.panics {
		panic("boom")
	}
	if m.err != nil {
		return nil, m.err
	}
	return json.Marshal(m.results)
}

func (m *mockProvider[Q, R]) Normalize(payload []byte) ([]R, error) {
	var out []R
	if err := json.Unmarshal(payload, &out); err != nil {
		return nil, err
	}
	return out, nil
}

type mockCacheEntry struct {
	value   []byte
	expires time.Time
}

// mockCache is a map cache with a settable clock.
type mockCache struct {
	mu      sync.Mutex
	now     time.Time
	entries map[string]mockCacheEntry
	getErr  error
	setErr  error
	sets    int
}

func newMockCache() *mockCache {
	return &mockCache{now: time.Unix(1_700_000_000, 0), entries: make(map[string]mockCacheEntry)}
}

func (m *mockCache) advance(d time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.now = m.now.Add(d)
}

func (m *mockCache) Get(_ context.Context, key string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.getErr != nil {
		return nil, m.getErr
	}
	e, ok := m.entries[key]
	if !ok || !m.now.Before(e.expires) {
		return nil, domain.ErrCacheMiss
	}
	return e.value, nil
}

func (m *mockCache) Set(_ context.Context, key string, value []byte, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.setErr != nil {
		return m.setErr
	}
	m.sets++
	m.entries[key] = mockCacheEntry{value: value, expires: m.now.Add(ttl)}
	return nil
}

func (m *mockCache) Stats(context.Context) (domain.CacheStats, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return domain.CacheStats{Backend: "mock", Sets: int64(m.sets), Entries: int64(len(m.entries))}, nil
}

func (m *mockCache) Close() error { return nil }

// mockLimiter allows a fixed number of calls per provider.
type mockLimiter struct {
	mu     sync.Mutex
	limit  int
	counts map[string]int
	err    error
}

func newMockLimiter(limit int) *mockLimiter {
	return &mockLimiter{limit: limit, counts: make(map[string]int)}
}

func (m *mockLimiter) Allow(_ context.Context, provider string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return false, m.err
	}
	m.counts[provider]++
	return m.counts[provider] <= m.limit, nil
}

func (m *mockLimiter) Stats(context.Context) ([]domain.RateWindow, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []domain.RateWindow
	for p, c := range m.counts {
		out = append(out, domain.RateWindow{Provider: p, Count: c, Threshold: m.limit})
	}
	return out, nil
}

// mockGeocoder resolves every place to a fixed point unless failing.
type mockGeocoder struct {
	err   error
	calls atomic.Int32
}

func (m *mockGeocoder) Geocode(_ context.Context, place string) (domain.GeoPoint, error) {
	m.calls.Add(1)
	if m.err != nil {
		return domain.GeoPoint{}, m.err
	}
	return domain.GeoPoint{Lat: 40.7, Lng: -73.9, Name: place}, nil
}

// mockMetrics counts events.
type mockMetrics struct {
	mu        sync.Mutex
	hits      int
	misses    int
	providers map[domain.ProviderStatus]int
	routed    []domain.RoutingSource
	recs      []domain.RecommendationSource
}

func newMockMetrics() *mockMetrics {
	return &mockMetrics{providers: make(map[domain.ProviderStatus]int)}
}

func (m *mockMetrics) CacheLookup(_ domain.Domain, hit bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if hit {
		m.hits++
	} else {
		m.misses++
	}
}

func (m *mockMetrics) ProviderCall(_ domain.Domain, _ string, s domain.ProviderStatus) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.providers[s]++
}

func (m *mockMetrics) Routed(s domain.RoutingSource) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.routed = append(m.routed, s)
}

func (m *mockMetrics) Recommended(_ domain.Domain, s domain.RecommendationSource) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.recs = append(m.recs, s)
}

var errMock = errors.New("mock failure")

// --- Fixtures ---

func ride(provider, vehicle string, price float64, eta, duration int) domain.RideEstimate {
	return domain.RideEstimate{
		Provider:         provider,
		VehicleType:      vehicle,
		PriceLow:         price * 0.9,
		PriceHigh:        price * 1.1,
		PriceEstimate:    price,
		Currency:         "USD",
		SurgeMultiplier:  1,
		DurationMinutes:  duration,
		PickupETAMinutes: eta,
		DistanceMiles:    16.5,
		IsAvailable:      true,
	}
}

func uberRides() []domain.RideEstimate {
	return []domain.RideEstimate{
		ride("uber", "UberX", 58.20, 4, 41),
		ride("uber", "UberXL", 87.30, 6, 41),
		ride("uber", "Uber Black", 116.40, 7, 41),
	}
}

func lyftRides() []domain.RideEstimate {
	return []domain.RideEstimate{
		ride("lyft", "Lyft", 55.10, 5, 41),
		ride("lyft", "Lyft XL", 77.14, 3, 41),
		ride("lyft", "Lyft Lux", 99.18, 8, 41),
	}
}

func place(provider, name string, rating float64, reviews int, price string, miles float64) domain.Restaurant {
	return domain.Restaurant{
		ID:            provider + ":" + name,
		Provider:      provider,
		Name:          name,
		Cuisine:       "Italian",
		Rating:        rating,
		ReviewCount:   reviews,
		PriceRange:    price,
		DistanceMiles: miles,
		IsOpenNow:     true,
	}
}

func rideProviders(ps ...*mockProvider[domain.RideQuery, domain.RideEstimate]) []driven.RideProvider {
	out := make([]driven.RideProvider, len(ps))
	for i, p := range ps {
		out[i] = p
	}
	return out
}

func restaurantProviders(ps ...*mockProvider[domain.RestaurantQuery, domain.Restaurant]) []driven.RestaurantProvider {
	out := make([]driven.RestaurantProvider, len(ps))
	for i, p := range ps {
		out[i] = p
	}
	return out
}
