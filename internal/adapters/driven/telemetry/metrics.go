// Package telemetry provides Prometheus metrics for the travel pipeline.
package telemetry

import (
	"net/http"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/hopwise/hopwise/internal/core/domain"
	"github.com/hopwise/hopwise/internal/core/ports/driven"
)

// Ensure both implementations satisfy the port.
var (
	_ driven.Metrics = (*Metrics)(nil)
	_ driven.Metrics = Nop{}
)

// Metrics holds the pipeline counters on a private registry.
type Metrics struct {
	cacheLookups    *prometheus.CounterVec
	providerCalls   *prometheus.CounterVec
	routingDecision *prometheus.CounterVec
	recommendations *prometheus.CounterVec

	registry *prometheus.Registry
}

// NewMetrics registers every collector on a fresh registry, plus the Go
// runtime and process collectors.
func NewMetrics() *Metrics {
	registry := prometheus.NewRegistry()

	m := &Metrics{
		cacheLookups: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "hopwise_cache_lookups_total",
				Help: "Cache lookups by domain and result",
			},
			[]string{"domain", "hit"},
		),
		providerCalls: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "hopwise_provider_calls_total",
				Help: "Provider fetch outcomes by domain, provider and status",
			},
			[]string{"domain", "provider", "status"},
		),
		routingDecision: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "hopwise_routing_decisions_total",
				Help: "Routing decisions by source",
			},
			[]string{"source"},
		),
		recommendations: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "hopwise_recommendations_total",
				Help: "Recommendations by domain and source",
			},
			[]string{"domain", "source"},
		),
		registry: registry,
	}

	registry.MustRegister(
		m.cacheLookups,
		m.providerCalls,
		m.routingDecision,
		m.recommendations,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

// CacheLookup implements driven.Metrics.
func (m *Metrics) CacheLookup(d domain.Domain, hit bool) {
	m.cacheLookups.WithLabelValues(d.String(), strconv.FormatBool(hit)).Inc()
}

// ProviderCall implements driven.Metrics.
func (m *Metrics) ProviderCall(d domain.Domain, provider string, status domain.ProviderStatus) {
	m.providerCalls.WithLabelValues(d.String(), provider, string(status)).Inc()
}

// Routed implements driven.Metrics.
func (m *Metrics) Routed(source domain.RoutingSource) {
	m.routingDecision.WithLabelValues(string(source)).Inc()
}

// Recommended implements driven.Metrics.
func (m *Metrics) Recommended(d domain.Domain, source domain.RecommendationSource) {
	m.recommendations.WithLabelValues(d.String(), string(source)).Inc()
}

// Registry exposes the registry for tests and custom exporters.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Nop discards every event. The CLI uses it when nothing scrapes metrics.
type Nop struct{}

func (Nop) CacheLookup(domain.Domain, bool)                           {}
func (Nop) ProviderCall(domain.Domain, string, domain.ProviderStatus) {}
func (Nop) Routed(domain.RoutingSource)                               {}
func (Nop) Recommended(domain.Domain, domain.RecommendationSource)    {}
