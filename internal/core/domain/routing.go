package domain

// RoutingSource records how a routing decision was reached.
type RoutingSource string

// Routing sources.
const (
	// RoutedByKeyword means exactly one domain matched its keywords.
	RoutedByKeyword RoutingSource = "keyword"

	// RoutedByModel means the classifier answer was used.
	RoutedByModel RoutingSource = "model"

	// RoutedByFallback means the classifier failed and keyword matches were used.
	RoutedByFallback RoutingSource = "fallback"
)

// RoutingDecision is the ordered set of domains that should answer a query.
// An empty decision is a legal outcome meaning "ask for clarification".
type RoutingDecision struct {
	Domains        []Domain      `json:"domains"`
	Source         RoutingSource `json:"source"`
	Reasoning      string        `json:"reasoning,omitempty"`
	FallbackReason string        `json:"fallback_reason,omitempty"`
}

// IsEmpty reports whether no domain was selected.
func (d RoutingDecision) IsEmpty() bool {
	return len(d.Domains) == 0
}

// AskResult is the outcome of routing a query and running every selected
// domain. Results from different domains are kept separate.
type AskResult struct {
	RequestID string          `json:"request_id"`
	Decision  RoutingDecision `json:"decision"`
	Results   []HandlerResult `json:"results"`

	// Clarifications holds per-domain validation messages for domains that
	// were selected but could not run.
	Clarifications map[Domain]string `json:"clarifications,omitempty"`
}
