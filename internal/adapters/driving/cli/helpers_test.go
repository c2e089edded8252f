package cli

import (
	"bytes"
	"context"
	"net/http"
	"sort"
	"testing"
	"time"

	"github.com/hopwise/hopwise/internal/core/domain"
	"github.com/hopwise/hopwise/internal/core/ports/driving"
)

// mockRouter implements driving.DomainRouter for testing.
type mockRouter struct {
	decision domain.RoutingDecision
	lastQCtx domain.QueryContext
}

func (m *mockRouter) Route(_ context.Context, _ string, qctx domain.QueryContext) domain.RoutingDecision {
	m.lastQCtx = qctx
	return m.decision
}

// mockHandler implements driving.DomainHandler for testing.
type mockHandler struct {
	domain       domain.Domain
	result       domain.HandlerResult
	err          error
	lastQuery    string
	lastQCtx     domain.QueryContext
	lastPriority domain.Priority
}

func (m *mockHandler) Domain() domain.Domain { return m.domain }

func (m *mockHandler) Process(
	_ context.Context, raw string, qctx domain.QueryContext, p domain.Priority,
) (domain.HandlerResult, error) {
	m.lastQuery, m.lastQCtx, m.lastPriority = raw, qctx, p
	return m.result, m.err
}

// mockOrchestrator implements driving.Orchestrator for testing.
type mockOrchestrator struct {
	result       domain.AskResult
	err          error
	handlers     map[domain.Domain]*mockHandler
	lastQuery    string
	lastPriority domain.Priority
}

func (m *mockOrchestrator) Ask(
	_ context.Context, raw string, _ domain.QueryContext, p domain.Priority,
) (domain.AskResult, error) {
	m.lastQuery, m.lastPriority = raw, p
	return m.result, m.err
}

func (m *mockOrchestrator) Handler(d domain.Domain) (driving.DomainHandler, error) {
	h, ok := m.handlers[d]
	if !ok {
		return nil, domain.ErrUnknownDomain
	}
	return h, nil
}

// mockStats implements driving.StatsService for testing.
type mockStats struct {
	cache    domain.CacheStats
	cacheErr error
	windows  []domain.RateWindow
	err      error
}

func (m *mockStats) CacheStats(context.Context) (domain.CacheStats, error) {
	return m.cache, m.cacheErr
}

func (m *mockStats) RateWindows(context.Context) ([]domain.RateWindow, error) {
	return m.windows, m.err
}

// mockSettings implements driving.SettingsService over a map.
type mockSettings struct {
	values map[string]any
	setErr error
}

func (m *mockSettings) Get() (domain.AppSettings, error) { return domain.DefaultAppSettings(), nil }

func (m *mockSettings) Set(key, value string) error {
	if m.setErr != nil {
		return m.setErr
	}
	m.values[key] = value
	return nil
}

func (m *mockSettings) Value(key string) (any, bool) {
	v, ok := m.values[key]
	return v, ok
}

func (m *mockSettings) Keys() []string {
	keys := make([]string, 0, len(m.values))
	for k := range m.values {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func (m *mockSettings) GetDefaults() domain.AppSettings { return domain.DefaultAppSettings() }

func rideResult() domain.HandlerResult {
	return domain.HandlerResult{
		Domain: domain.DomainRideshare,
		Rides: &domain.Outcome[domain.RideQuery, domain.RideEstimate]{
			Query: domain.RideQuery{Origin: "Times Square", Destination: "JFK"},
			Options: []domain.RideEstimate{
				{
					Provider: "lyft", VehicleType: "Lyft", IsAvailable: true,
					PriceEstimate: 48.5, PriceLow: 43.65, PriceHigh: 53.35,
					PickupETAMinutes: 4, DurationMinutes: 30,
				},
				{
					Provider: "uber", VehicleType: "UberX", IsAvailable: true,
					PriceEstimate: 52, PriceLow: 46.8, PriceHigh: 57.2,
					PickupETAMinutes: 3, DurationMinutes: 30, SurgeMultiplier: 1.4,
				},
				{Provider: "uber", VehicleType: "UberXL"},
			},
			Recommendation: domain.Recommendation{
				Text: "Lyft is the cheapest at $48.50.", Best: "Lyft", Source: domain.SourceRule,
				FallbackReason: "no model configured",
			},
			Metadata: domain.Metadata{
				RequestID: "req-1",
				Domain:    domain.DomainRideshare,
				Priority:  domain.PriorityPrice,
				Providers: []domain.ProviderReport{
					{Provider: "uber", Status: domain.ProviderLive, Results: 2},
					{Provider: "lyft", Status: domain.ProviderCached, Results: 1},
				},
				Notes: []string{"geocoding failed for JFK; using 5 mi"},
			},
		},
	}
}

func restaurantResult() domain.HandlerResult {
	return domain.HandlerResult{
		Domain: domain.DomainRestaurants,
		Restaurants: &domain.Outcome[domain.RestaurantQuery, domain.Restaurant]{
			Options: []domain.Restaurant{{
				Provider: "yelp", Name: "Sushi Nakazawa", Cuisine: "Japanese",
				Rating: 4.7, ReviewCount: 1200, PriceRange: "$$$$", DistanceMiles: 1.2, IsOpenNow: true,
			}},
			Recommendation: domain.Recommendation{Text: "Go to Sushi Nakazawa.", Best: "Sushi Nakazawa", Source: domain.SourceModel},
			Metadata:       domain.Metadata{Domain: domain.DomainRestaurants},
		},
	}
}

type testServices struct {
	orchestrator *mockOrchestrator
	router       *mockRouter
	stats        *mockStats
	settings     *mockSettings
}

// setupTestServices installs mocks for every port and returns a cleanup that
// restores the package state, including flag variables.
func setupTestServices() (*testServices, func()) {
	ts := &testServices{
		orchestrator: &mockOrchestrator{
			result: domain.AskResult{
				RequestID: "req-1",
				Decision: domain.RoutingDecision{
					Domains: []domain.Domain{domain.DomainRideshare, domain.DomainRestaurants},
					Source:  domain.RoutedByKeyword,
				},
				Results: []domain.HandlerResult{rideResult(), restaurantResult()},
			},
			handlers: map[domain.Domain]*mockHandler{
				domain.DomainRideshare:   {domain: domain.DomainRideshare, result: rideResult()},
				domain.DomainRestaurants: {domain: domain.DomainRestaurants, result: restaurantResult()},
			},
		},
		router: &mockRouter{decision: domain.RoutingDecision{
			Domains:   []domain.Domain{domain.DomainRideshare},
			Source:    domain.RoutedByKeyword,
			Reasoning: "mentions a ride",
		}},
		stats: &mockStats{
			cache: domain.CacheStats{Backend: "memory", Hits: 3, Misses: 1, Sets: 1, Entries: 1},
			windows: []domain.RateWindow{{
				Provider: "uber", WindowStart: time.Date(2026, 10, 17, 9, 0, 0, 0, time.UTC),
				Count: 3, Threshold: 1000,
			}},
		},
		settings: &mockSettings{values: map[string]any{}},
	}

	orchestrator = ts.orchestrator
	router = ts.router
	statsService = ts.stats
	settingsService = ts.settings
	metricsHandler = http.NotFoundHandler()

	return ts, func() {
		orchestrator, router, statsService, settingsService, metricsHandler = nil, nil, nil, nil, nil
		scheduler = nil
		jsonOutput, verbose, userLocation = false, false, ""
		askPriority, ridePriority, foodPriority = "balanced", "balanced", "balanced"
		foodCategory, foodPriceRange, foodDietary = "", "", nil
		mcpHTTPAddr = ""
	}
}

// execute runs the root command with args and returns combined output.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	return executeContext(t, context.Background(), args...)
}

// executeContext is execute with an explicit context.
func executeContext(t *testing.T, ctx context.Context, args ...string) (string, error) {
	t.Helper()
	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs(args)
	defer rootCmd.SetArgs(nil)

	err := rootCmd.ExecuteContext(ctx)
	return buf.String(), err
}
