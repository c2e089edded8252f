package services

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hopwise/hopwise/internal/core/domain"
)

// mockHandler records calls and returns a canned result or error.
type mockHandler struct {
	d     domain.Domain
	err   error
	calls atomic.Int32
	ids   chan string
}

func (m *mockHandler) Domain() domain.Domain { return m.d }

func (m *mockHandler) Process(
	ctx context.Context, _ string, _ domain.QueryContext, p domain.Priority,
) (domain.HandlerResult, error) {
	m.calls.Add(1)
	if m.ids != nil {
		m.ids <- RequestID(ctx)
	}
	if m.err != nil {
		return domain.HandlerResult{Domain: m.d}, m.err
	}
	meta := domain.Metadata{Domain: m.d, Priority: p, RequestID: RequestID(ctx)}
	switch m.d {
	case domain.DomainRideshare:
		return domain.HandlerResult{Domain: m.d, Rides: &domain.Outcome[domain.RideQuery, domain.RideEstimate]{Metadata: meta}}, nil
	default:
		return domain.HandlerResult{Domain: m.d, Restaurants: &domain.Outcome[domain.RestaurantQuery, domain.Restaurant]{Metadata: meta}}, nil
	}
}

func TestRegistry_Handler(t *testing.T) {
	rides := &mockHandler{d: domain.DomainRideshare}
	r := NewRegistry(rides, nil)

	h, err := r.Handler(domain.DomainRideshare)
	require.NoError(t, err)
	assert.Same(t, rides, h)

	_, err = r.Handler(domain.DomainRestaurants)
	assert.ErrorIs(t, err, domain.ErrUnknownDomain)

	_, err = r.Handler("hotels")
	assert.ErrorIs(t, err, domain.ErrUnknownDomain)

	assert.Equal(t, []domain.Domain{domain.DomainRideshare}, r.Domains())
}

func TestOrchestrator_BothDomainsRunIndependently(t *testing.T) {
	rides := &mockHandler{d: domain.DomainRideshare, ids: make(chan string, 1)}
	food := &mockHandler{d: domain.DomainRestaurants, ids: make(chan string, 1)}
	llm := newMockLLM().on("route travel requests", `{"domains": ["rideshare", "restaurants"]}`)
	o := NewOrchestratorService(NewRouterService(domain.AllDomains(), llm, nil), NewRegistry(rides, food))

	res, err := o.Ask(context.Background(), "need a ride and want Italian food", domain.QueryContext{}, domain.PriorityBalanced)

	require.NoError(t, err)
	assert.Equal(t, []domain.Domain{domain.DomainRideshare, domain.DomainRestaurants}, res.Decision.Domains)
	require.Len(t, res.Results, 2)
	assert.Equal(t, domain.DomainRideshare, res.Results[0].Domain)
	assert.Equal(t, domain.DomainRestaurants, res.Results[1].Domain)
	assert.Equal(t, int32(1), rides.calls.Load())
	assert.Equal(t, int32(1), food.calls.Load())
	assert.Equal(t, res.RequestID, <-rides.ids)
	assert.Equal(t, res.RequestID, <-food.ids)
	assert.Nil(t, res.Clarifications)
}

func TestOrchestrator_BothDomainsWithoutModel(t *testing.T) {
	rides := &mockHandler{d: domain.DomainRideshare}
	food := &mockHandler{d: domain.DomainRestaurants}
	o := NewOrchestratorService(NewRouterService(domain.AllDomains(), nil, nil), NewRegistry(rides, food))

	res, err := o.Ask(context.Background(), "need a ride and want Italian food", domain.QueryContext{}, domain.PriorityBalanced)

	require.NoError(t, err)
	assert.Equal(t, domain.RoutedByFallback, res.Decision.Source)
	assert.Len(t, res.Results, 2)
}

func TestOrchestrator_PartialValidation(t *testing.T) {
	rides := &mockHandler{d: domain.DomainRideshare, err: domain.NewValidationError(domain.DomainRideshare, "destination", "is missing")}
	food := &mockHandler{d: domain.DomainRestaurants}
	o := NewOrchestratorService(NewRouterService(domain.AllDomains(), nil, nil), NewRegistry(rides, food))

	res, err := o.Ask(context.Background(), "ride and food", domain.QueryContext{}, domain.PriorityBalanced)

	require.NoError(t, err)
	require.Len(t, res.Results, 1)
	assert.Equal(t, domain.DomainRestaurants, res.Results[0].Domain)
	assert.Contains(t, res.Clarifications[domain.DomainRideshare], "destination")
}

func TestOrchestrator_AllInvalidReturnsValidationError(t *testing.T) {
	rides := &mockHandler{d: domain.DomainRideshare, err: domain.NewValidationError(domain.DomainRideshare, "origin", "is missing")}
	o := NewOrchestratorService(NewRouterService(domain.AllDomains(), nil, nil), NewRegistry(rides, nil))

	res, err := o.Ask(context.Background(), "get me a taxi", domain.QueryContext{}, domain.PriorityBalanced)

	require.Error(t, err)
	var ve *domain.ValidationError
	assert.True(t, errors.As(err, &ve))
	assert.Empty(t, res.Results)
}

func TestOrchestrator_EmptyDecision(t *testing.T) {
	rides := &mockHandler{d: domain.DomainRideshare}
	o := NewOrchestratorService(NewRouterService(domain.AllDomains(), nil, nil), NewRegistry(rides, nil))

	res, err := o.Ask(context.Background(), "tell me a joke", domain.QueryContext{}, domain.PriorityBalanced)

	require.NoError(t, err)
	assert.True(t, res.Decision.IsEmpty())
	assert.Empty(t, res.Results)
	assert.Zero(t, rides.calls.Load())
	assert.NotEmpty(t, res.RequestID)
}

func TestOrchestrator_NonValidationErrorPropagates(t *testing.T) {
	rides := &mockHandler{d: domain.DomainRideshare, err: context.Canceled}
	o := NewOrchestratorService(NewRouterService(domain.AllDomains(), nil, nil), NewRegistry(rides, nil))

	_, err := o.Ask(context.Background(), "taxi please", domain.QueryContext{}, domain.PriorityBalanced)

	assert.ErrorIs(t, err, context.Canceled)
}

func TestStatsService(t *testing.T) {
	cache := newMockCache()
	limiter := newMockLimiter(5)
	_, _ = limiter.Allow(context.Background(), "uber")
	s := NewStatsService(cache, limiter)

	stats, err := s.CacheStats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "mock", stats.Backend)

	windows, err := s.RateWindows(context.Background())
	require.NoError(t, err)
	require.Len(t, windows, 1)
	assert.Equal(t, 4, windows[0].Remaining())

	empty := NewStatsService(nil, nil)
	stats, err = empty.CacheStats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "none", stats.Backend)
}
