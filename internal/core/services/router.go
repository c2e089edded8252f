package services

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/hopwise/hopwise/internal/core/domain"
	"github.com/hopwise/hopwise/internal/core/ports/driven"
	"github.com/hopwise/hopwise/internal/core/ports/driving"
	"github.com/hopwise/hopwise/internal/logger"
)

// Ensure RouterService implements the interface.
var _ driving.DomainRouter = (*RouterService)(nil)

// RouterService decides which domains answer a query: a keyword fast path,
// then a deterministic model classifier, then keyword matches as fallback.
type RouterService struct {
	prompter
	enabled []domain.Domain
	model   modelClient
	metrics driven.Metrics
}

// NewRouterService creates a router over the enabled domains, in
// configuration order. Unknown and duplicate domains are dropped.
// llm and metrics are optional (can be nil).
func NewRouterService(enabled []domain.Domain, llm driven.LLMService, metrics driven.Metrics) *RouterService {
	seen := make(map[domain.Domain]bool)
	var valid []domain.Domain
	for _, d := range enabled {
		if d.IsValid() && !seen[d] {
			seen[d] = true
			valid = append(valid, d)
		}
	}
	return &RouterService{
		enabled: valid,
		model:   newModelClient(llm, 0),
		metrics: metrics,
	}
}

// WithModelTimeout bounds the classifier call.
func (s *RouterService) WithModelTimeout(d time.Duration) *RouterService {
	s.model = newModelClient(s.model.llm, d)
	return s
}

// ModelTimeout returns the bound on the classifier call.
func (s *RouterService) ModelTimeout() time.Duration {
	return s.model.timeout
}

// Enabled returns the routable domains.
func (s *RouterService) Enabled() []domain.Domain {
	return append([]domain.Domain(nil), s.enabled...)
}

// Route returns the ordered domains for rawQuery. It never fails.
func (s *RouterService) Route(ctx context.Context, rawQuery string, qctx domain.QueryContext) domain.RoutingDecision {
	logger.Section("Routing")
	logger.Debug("Query: %q", rawQuery)

	matches := s.KeywordMatches(rawQuery)
	logger.Debug("Keyword matches: %v", matches)

	if len(matches) == 1 {
		logger.Info("Routed by keyword to %s", matches[0])
		return s.decided(domain.RoutingDecision{Domains: matches, Source: domain.RoutedByKeyword})
	}

	outcome := s.classify(ctx, rawQuery, qctx)
	if decision, ok := outcome.Value(); ok {
		logger.Info("Routed by model to %v", decision.Domains)
		return s.decided(decision)
	}

	logger.Warn("Routing model unavailable, using keyword matches: %s", outcome.Reason())
	return s.decided(domain.RoutingDecision{
		Domains:        matches,
		Source:         domain.RoutedByFallback,
		FallbackReason: outcome.Reason(),
	})
}

// KeywordMatches returns the enabled domains whose keywords occur in
// rawQuery, in configuration order.
func (s *RouterService) KeywordMatches(rawQuery string) []domain.Domain {
	q := strings.ToLower(rawQuery)
	var out []domain.Domain
	for _, d := range s.enabled {
		for _, kw := range d.Keywords() {
			if strings.Contains(q, kw) {
				out = append(out, d)
				break
			}
		}
	}
	return out
}

type routerReply struct {
	Domains   []string `json:"domains"`
	Reasoning string   `json:"reasoning"`
}

func (s *RouterService) classify(ctx context.Context, rawQuery string, qctx domain.QueryContext) ModelOutcome[domain.RoutingDecision] {
	var lines []string
	for _, d := range s.enabled {
		lines = append(lines, fmt.Sprintf("- %s: %s", d, d.Description()))
	}
	system := fmt.Sprintf(s.prompt(driven.PromptRouter), strings.Join(lines, "\n"))

	var reply routerReply
	if out := s.model.chatJSON(ctx, system, userMessage(rawQuery, qctx), &reply); !out.IsOk() {
		return Fallback[domain.RoutingDecision](out.Reason())
	}

	enabled := make(map[domain.Domain]bool, len(s.enabled))
	for _, d := range s.enabled {
		enabled[d] = true
	}
	seen := make(map[domain.Domain]bool)
	var domains []domain.Domain
	for _, name := range reply.Domains {
		d := domain.Domain(strings.ToLower(strings.TrimSpace(name)))
		if !enabled[d] || seen[d] {
			logger.Debug("Discarding routed domain %q", name)
			continue
		}
		seen[d] = true
		domains = append(domains, d)
	}
	return Ok(domain.RoutingDecision{
		Domains:   domains,
		Source:    domain.RoutedByModel,
		Reasoning: reply.Reasoning,
	})
}

func (s *RouterService) decided(d domain.RoutingDecision) domain.RoutingDecision {
	if s.metrics != nil {
		s.metrics.Routed(d.Source)
	}
	return d
}

// userMessage renders the query and its context for a model call.
func userMessage(rawQuery string, qctx domain.QueryContext) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Request: %s\n", rawQuery)
	if qctx.UserLocation != "" {
		fmt.Fprintf(&b, "Current location: %s\n", qctx.UserLocation)
	}
	if len(qctx.Preferences) > 0 {
		keys := make([]string, 0, len(qctx.Preferences))
		for k := range qctx.Preferences {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			fmt.Fprintf(&b, "Preference %s: %s\n", k, qctx.Preferences[k])
		}
	}
	return b.String()
}
