package domain

import (
	"fmt"
	"time"
)

// RideEstimate is one normalised ride option from a provider.
type RideEstimate struct {
	Provider         string    `json:"provider"`
	VehicleType      string    `json:"vehicle_type"`
	PriceLow         float64   `json:"price_low"`
	PriceHigh        float64   `json:"price_high"`
	PriceEstimate    float64   `json:"price_estimate"`
	Currency         string    `json:"currency"`
	SurgeMultiplier  float64   `json:"surge_multiplier"`
	DurationMinutes  int       `json:"duration_minutes"`
	PickupETAMinutes int       `json:"pickup_eta_minutes"`
	DistanceMiles    float64   `json:"distance_miles"`
	IsAvailable      bool      `json:"is_available"`
	LastUpdated      time.Time `json:"last_updated"`
	Score            float64   `json:"score"`
}

// TotalMinutes is the pickup wait plus the trip itself.
func (r RideEstimate) TotalMinutes() int {
	return r.PickupETAMinutes + r.DurationMinutes
}

// Label is the name used when the option is recommended.
func (r RideEstimate) Label() string {
	return r.VehicleType
}

// Restaurant is one normalised restaurant listing from a provider.
type Restaurant struct {
	ID            string    `json:"id"`
	Provider      string    `json:"provider"`
	Name          string    `json:"name"`
	Cuisine       string    `json:"cuisine"`
	Rating        float64   `json:"rating"`
	ReviewCount   int       `json:"review_count"`
	PriceRange    string    `json:"price_range"`
	Address       string    `json:"address"`
	DistanceMiles float64   `json:"distance_miles"`
	Phone         string    `json:"phone,omitempty"`
	Website       string    `json:"website,omitempty"`
	IsOpenNow     bool      `json:"is_open_now"`
	Categories    []string  `json:"categories,omitempty"`
	Coordinates   *GeoPoint `json:"coordinates,omitempty"`
	Score         float64   `json:"score"`
}

// Label is the name used when the option is recommended.
func (r Restaurant) Label() string {
	return r.Name
}

// RecommendationSource records which branch produced a recommendation.
type RecommendationSource string

// Recommendation sources.
const (
	// SourceModel means the model answer was accepted.
	SourceModel RecommendationSource = "model"

	// SourceRule means the deterministic rule produced the text.
	SourceRule RecommendationSource = "rule"

	// SourceNone means there was nothing to compare.
	SourceNone RecommendationSource = "none"
)

// Recommendation is the natural-language verdict over a set of options.
type Recommendation struct {
	Text           string               `json:"text"`
	Best           string               `json:"best,omitempty"`
	Source         RecommendationSource `json:"source"`
	FallbackReason string               `json:"fallback_reason,omitempty"`
}

// ProviderStatus is the outcome of one provider during fetch.
type ProviderStatus string

// Provider statuses.
const (
	ProviderLive        ProviderStatus = "live"
	ProviderCached      ProviderStatus = "cached"
	ProviderSkipped     ProviderStatus = "rate_limited"
	ProviderFailed      ProviderStatus = "failed"
	ProviderUnsupported ProviderStatus = "unsupported"
)

// ProviderReport describes what happened with one provider.
type ProviderReport struct {
	Provider string         `json:"provider"`
	Status   ProviderStatus `json:"status"`
	Results  int            `json:"results"`
	Error    string         `json:"error,omitempty"`
}

// Metadata accompanies every handler result.
type Metadata struct {
	RequestID string           `json:"request_id,omitempty"`
	Domain    Domain           `json:"domain"`
	Priority  Priority         `json:"priority"`
	Providers []ProviderReport `json:"providers"`
	Notes     []string         `json:"notes,omitempty"`
	Duration  time.Duration    `json:"duration_ns"`
}

// Failed returns the providers that errored.
func (m Metadata) Failed() []string {
	return m.withStatus(ProviderFailed)
}

// Skipped returns the providers skipped by the rate limiter.
func (m Metadata) Skipped() []string {
	return m.withStatus(ProviderSkipped)
}

// CacheHits returns the providers served from cache.
func (m Metadata) CacheHits() []string {
	return m.withStatus(ProviderCached)
}

func (m Metadata) withStatus(s ProviderStatus) []string {
	var out []string
	for _, r := range m.Providers {
		if r.Status == s {
			out = append(out, r.Provider)
		}
	}
	return out
}

// Notef appends a human-readable note.
func (m *Metadata) Notef(format string, args ...any) {
	m.Notes = append(m.Notes, fmt.Sprintf(format, args...))
}

// Outcome is the result of one domain pipeline over query type Q and
// option type R.
type Outcome[Q, R any] struct {
	Query          Q              `json:"query"`
	Options        []R            `json:"options"`
	Recommendation Recommendation `json:"recommendation"`
	Metadata       Metadata       `json:"metadata"`
}

// HandlerResult is a closed union over the per-domain outcomes. Exactly one
// of the pointers matching Domain is set.
type HandlerResult struct {
	Domain      Domain                                `json:"domain"`
	Rides       *Outcome[RideQuery, RideEstimate]     `json:"rides,omitempty"`
	Restaurants *Outcome[RestaurantQuery, Restaurant] `json:"restaurants,omitempty"`
}

// Recommendation returns the recommendation of whichever outcome is set.
func (h HandlerResult) Recommendation() Recommendation {
	switch h.Domain {
	case DomainRideshare:
		if h.Rides != nil {
			return h.Rides.Recommendation
		}
	case DomainRestaurants:
		if h.Restaurants != nil {
			return h.Restaurants.Recommendation
		}
	}
	return Recommendation{Source: SourceNone}
}

// Metadata returns the metadata of whichever outcome is set.
func (h HandlerResult) Metadata() Metadata {
	switch h.Domain {
	case DomainRideshare:
		if h.Rides != nil {
			return h.Rides.Metadata
		}
	case DomainRestaurants:
		if h.Restaurants != nil {
			return h.Restaurants.Metadata
		}
	}
	return Metadata{Domain: h.Domain}
}

// OptionCount returns the number of ranked options.
func (h HandlerResult) OptionCount() int {
	switch h.Domain {
	case DomainRideshare:
		if h.Rides != nil {
			return len(h.Rides.Options)
		}
	case DomainRestaurants:
		if h.Restaurants != nil {
			return len(h.Restaurants.Options)
		}
	}
	return 0
}
