package driving

import (
	"context"

	"github.com/hopwise/hopwise/internal/core/domain"
)

// DomainRouter selects the domains that should answer a query.
type DomainRouter interface {
	// Route never fails; an empty decision means the query was not understood.
	Route(ctx context.Context, rawQuery string, qctx domain.QueryContext) domain.RoutingDecision
}

// DomainHandler answers a query within one domain.
type DomainHandler interface {
	// Domain returns the domain this handler serves.
	Domain() domain.Domain

	// Process parses, fetches, compares and formats. The only error returned
	// is a *domain.ValidationError (or a context error).
	Process(ctx context.Context, rawQuery string, qctx domain.QueryContext, priority domain.Priority) (domain.HandlerResult, error)
}

// Orchestrator routes a query and runs every selected handler.
type Orchestrator interface {
	// Ask returns an error only when every selected domain rejected the query.
	Ask(ctx context.Context, rawQuery string, qctx domain.QueryContext, priority domain.Priority) (domain.AskResult, error)

	// Handler returns the handler for d.
	Handler(d domain.Domain) (DomainHandler, error)
}

// StatsService reports shared infrastructure state.
type StatsService interface {
	CacheStats(ctx context.Context) (domain.CacheStats, error)
	RateWindows(ctx context.Context) ([]domain.RateWindow, error)
}
