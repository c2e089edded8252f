package mcp

import (
	"context"

	"github.com/hopwise/hopwise/internal/core/domain"
	"github.com/hopwise/hopwise/internal/core/ports/driving"
)

// mockRouter is a mock implementation of driving.DomainRouter.
type mockRouter struct {
	decision domain.RoutingDecision
	lastQCtx domain.QueryContext
}

func (m *mockRouter) Route(_ context.Context, _ string, qctx domain.QueryContext) domain.RoutingDecision {
	m.lastQCtx = qctx
	return m.decision
}

// mockHandler is a mock implementation of driving.DomainHandler.
type mockHandler struct {
	domain       domain.Domain
	result       domain.HandlerResult
	err          error
	lastQCtx     domain.QueryContext
	lastPriority domain.Priority
}

func (m *mockHandler) Domain() domain.Domain { return m.domain }

func (m *mockHandler) Process(
	_ context.Context, _ string, qctx domain.QueryContext, p domain.Priority,
) (domain.HandlerResult, error) {
	m.lastQCtx = qctx
	m.lastPriority = p
	return m.result, m.err
}

// mockOrchestrator is a mock implementation of driving.Orchestrator.
type mockOrchestrator struct {
	result   domain.AskResult
	err      error
	handlers map[domain.Domain]driving.DomainHandler
}

func (m *mockOrchestrator) Ask(
	_ context.Context, _ string, _ domain.QueryContext, _ domain.Priority,
) (domain.AskResult, error) {
	return m.result, m.err
}

func (m *mockOrchestrator) Handler(d domain.Domain) (driving.DomainHandler, error) {
	if h, ok := m.handlers[d]; ok {
		return h, nil
	}
	return nil, domain.ErrUnknownDomain
}

// mockStats is a mock implementation of driving.StatsService.
type mockStats struct {
	cache    domain.CacheStats
	cacheErr error
	windows  []domain.RateWindow
	err      error
}

func (m *mockStats) CacheStats(_ context.Context) (domain.CacheStats, error) {
	return m.cache, m.cacheErr
}

func (m *mockStats) RateWindows(_ context.Context) ([]domain.RateWindow, error) {
	return m.windows, m.err
}

func rideResult() domain.HandlerResult {
	return domain.HandlerResult{
		Domain: domain.DomainRideshare,
		Rides: &domain.Outcome[domain.RideQuery, domain.RideEstimate]{
			Options: []domain.RideEstimate{
				{Provider: "Lyft", VehicleType: "Lyft", PriceEstimate: 21.5, Currency: "USD", IsAvailable: true},
				{Provider: "Uber", VehicleType: "UberX", PriceEstimate: 23.1, Currency: "USD", IsAvailable: true},
			},
			Recommendation: domain.Recommendation{Text: "Take Lyft.", Best: "Lyft", Source: domain.SourceRule},
			Metadata: domain.Metadata{
				Domain:   domain.DomainRideshare,
				Priority: domain.PriorityPrice,
				Providers: []domain.ProviderReport{
					{Provider: "uber", Status: domain.ProviderLive, Results: 1},
					{Provider: "lyft", Status: domain.ProviderCached, Results: 1},
				},
			},
		},
	}
}

func restaurantResult() domain.HandlerResult {
	return domain.HandlerResult{
		Domain: domain.DomainRestaurants,
		Restaurants: &domain.Outcome[domain.RestaurantQuery, domain.Restaurant]{
			Options: []domain.Restaurant{
				{Name: "Carbone", Provider: "Yelp", Rating: 4.7, ReviewCount: 2100, PriceRange: "$$$$", IsOpenNow: true},
			},
			Recommendation: domain.Recommendation{Text: "Carbone is the pick.", Best: "Carbone", Source: domain.SourceModel},
			Metadata: domain.Metadata{
				Domain:    domain.DomainRestaurants,
				Priority:  domain.PriorityBalanced,
				Providers: []domain.ProviderReport{{Provider: "yelp", Status: domain.ProviderLive, Results: 1}},
			},
		},
	}
}

func newTestServer(orch *mockOrchestrator, router *mockRouter, stats *mockStats) *Server {
	ports := &Ports{Orchestrator: orch, Router: router}
	if stats != nil {
		ports.Stats = stats
	}
	s, err := NewServer(ports)
	if err != nil {
		panic(err)
	}
	return s
}
