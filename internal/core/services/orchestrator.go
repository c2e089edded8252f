package services

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/hopwise/hopwise/internal/core/domain"
	"github.com/hopwise/hopwise/internal/core/ports/driven"
	"github.com/hopwise/hopwise/internal/core/ports/driving"
	"github.com/hopwise/hopwise/internal/logger"
)

// Ensure services implement the interfaces.
var (
	_ driving.Orchestrator = (*OrchestratorService)(nil)
	_ driving.StatsService = (*StatsService)(nil)
)

// Registry maps each domain to its handler. The switch is exhaustive over
// the closed domain set, so an unregistered domain is reported rather than
// silently ignored.
type Registry struct {
	rideshare   driving.DomainHandler
	restaurants driving.DomainHandler
}

// NewRegistry creates a registry. A nil handler disables its domain.
func NewRegistry(rideshare, restaurants driving.DomainHandler) *Registry {
	return &Registry{rideshare: rideshare, restaurants: restaurants}
}

// Handler returns the handler for d.
func (r *Registry) Handler(d domain.Domain) (driving.DomainHandler, error) {
	var h driving.DomainHandler
	switch d {
	case domain.DomainRideshare:
		h = r.rideshare
	case domain.DomainRestaurants:
		h = r.restaurants
	default:
		return nil, fmt.Errorf("%w: %q", domain.ErrUnknownDomain, d)
	}
	if h == nil {
		return nil, fmt.Errorf("%w: %q has no handler", domain.ErrUnknownDomain, d)
	}
	return h, nil
}

// Domains returns the domains with a registered handler, in configuration order.
func (r *Registry) Domains() []domain.Domain {
	var out []domain.Domain
	for _, d := range domain.AllDomains() {
		if _, err := r.Handler(d); err == nil {
			out = append(out, d)
		}
	}
	return out
}

// OrchestratorService routes a query and runs every selected domain
// concurrently. Results stay separate per domain, in routing order.
type OrchestratorService struct {
	router   driving.DomainRouter
	registry *Registry
}

// NewOrchestratorService creates an orchestrator.
func NewOrchestratorService(router driving.DomainRouter, registry *Registry) *OrchestratorService {
	return &OrchestratorService{router: router, registry: registry}
}

// Handler returns the handler for d.
func (s *OrchestratorService) Handler(d domain.Domain) (driving.DomainHandler, error) {
	return s.registry.Handler(d)
}

// Ask routes rawQuery and processes it in every selected domain. A domain
// whose query fails validation is reported in Clarifications; Ask returns
// those validation errors only when no domain produced a result.
func (s *OrchestratorService) Ask(
	ctx context.Context, rawQuery string, qctx domain.QueryContext, priority domain.Priority,
) (domain.AskResult, error) {
	requestID := RequestID(ctx)
	if requestID == "" {
		requestID = uuid.NewString()
		ctx = WithRequestID(ctx, requestID)
	}

	res := domain.AskResult{RequestID: requestID}
	res.Decision = s.router.Route(ctx, rawQuery, qctx)
	if res.Decision.IsEmpty() {
		logger.Info("No domain matched; asking for clarification")
		return res, nil
	}

	var (
		mu      sync.Mutex
		slots   = make([]*domain.HandlerResult, len(res.Decision.Domains))
		invalid []error
		g       errgroup.Group
	)
	res.Clarifications = make(map[domain.Domain]string)

	for i, d := range res.Decision.Domains {
		h, err := s.registry.Handler(d)
		if err != nil {
			logger.Warn("Routed to %s but %v", d, err)
			mu.Lock()
			res.Clarifications[d] = err.Error()
			mu.Unlock()
			continue
		}
		g.Go(func() error {
			hr, err := h.Process(ctx, rawQuery, qctx, priority)
			if err != nil {
				var ve *domain.ValidationError
				if !errors.As(err, &ve) {
					return err
				}
				mu.Lock()
				res.Clarifications[d] = ve.Error()
				invalid = append(invalid, ve)
				mu.Unlock()
				return nil
			}
			slots[i] = &hr
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return res, fmt.Errorf("ask: %w", err)
	}

	for _, hr := range slots {
		if hr != nil {
			res.Results = append(res.Results, *hr)
		}
	}
	if len(res.Clarifications) == 0 {
		res.Clarifications = nil
	}
	if len(res.Results) == 0 && len(invalid) > 0 {
		return res, errors.Join(invalid...)
	}
	return res, nil
}

// StatsService reports cache and rate-limiter state. Both stores are optional.
type StatsService struct {
	cache   driven.CacheStore
	limiter driven.RateLimiter
}

// NewStatsService creates a stats service.
func NewStatsService(cache driven.CacheStore, limiter driven.RateLimiter) *StatsService {
	return &StatsService{cache: cache, limiter: limiter}
}

// CacheStats returns cache counters.
func (s *StatsService) CacheStats(ctx context.Context) (domain.CacheStats, error) {
	if s.cache == nil {
		return domain.CacheStats{Backend: "none"}, nil
	}
	stats, err := s.cache.Stats(ctx)
	if err != nil {
		return stats, fmt.Errorf("cache stats: %w", err)
	}
	return stats, nil
}

// RateWindows returns the current window per provider.
func (s *StatsService) RateWindows(ctx context.Context) ([]domain.RateWindow, error) {
	if s.limiter == nil {
		return nil, nil
	}
	windows, err := s.limiter.Stats(ctx)
	if err != nil {
		return nil, fmt.Errorf("rate limiter stats: %w", err)
	}
	return windows, nil
}
