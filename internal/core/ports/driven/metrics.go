package driven

import "github.com/hopwise/hopwise/internal/core/domain"

// Metrics records pipeline events for observability.
type Metrics interface {
	// CacheLookup records a cache hit or miss for a domain.
	CacheLookup(d domain.Domain, hit bool)

	// ProviderCall records the outcome of one provider in a fetch.
	ProviderCall(d domain.Domain, provider string, status domain.ProviderStatus)

	// Routed records how a routing decision was made.
	Routed(source domain.RoutingSource)

	// Recommended records which comparator branch answered.
	Recommended(d domain.Domain, source domain.RecommendationSource)
}
