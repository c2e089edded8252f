package mcp

import (
	"github.com/hopwise/hopwise/internal/core/domain"
)

// RouteOutput is the routing decision returned by route_query.
type RouteOutput struct {
	Domains            []string `json:"domains"`
	Source             string   `json:"source"`
	Reasoning          string   `json:"reasoning,omitempty"`
	FallbackReason     string   `json:"fallback_reason,omitempty"`
	NeedsClarification bool     `json:"needs_clarification"`
}

// DomainOutput is the answer of one domain handler.
type DomainOutput struct {
	Domain               string             `json:"domain"`
	Priority             string             `json:"priority"`
	Recommendation       string             `json:"recommendation"`
	Best                 string             `json:"best,omitempty"`
	RecommendationSource string             `json:"recommendation_source"`
	Rides                []RideOutput       `json:"rides,omitempty"`
	Restaurants          []RestaurantOutput `json:"restaurants,omitempty"`
	Providers            []ProviderOutput   `json:"providers"`
	Notes                []string           `json:"notes,omitempty"`
}

// RideOutput is one ranked ride estimate.
type RideOutput struct {
	Provider         string  `json:"provider"`
	VehicleType      string  `json:"vehicle_type"`
	PriceLow         float64 `json:"price_low"`
	PriceHigh        float64 `json:"price_high"`
	PriceEstimate    float64 `json:"price_estimate"`
	Currency         string  `json:"currency"`
	SurgeMultiplier  float64 `json:"surge_multiplier"`
	DurationMinutes  int     `json:"duration_minutes"`
	PickupETAMinutes int     `json:"pickup_eta_minutes"`
	DistanceMiles    float64 `json:"distance_miles"`
	Available        bool    `json:"available"`
	Score            float64 `json:"score"`
}

// RestaurantOutput is one ranked restaurant.
type RestaurantOutput struct {
	Name          string  `json:"name"`
	Provider      string  `json:"provider"`
	Cuisine       string  `json:"cuisine,omitempty"`
	Rating        float64 `json:"rating"`
	ReviewCount   int     `json:"review_count"`
	PriceRange    string  `json:"price_range,omitempty"`
	Address       string  `json:"address,omitempty"`
	DistanceMiles float64 `json:"distance_miles"`
	OpenNow       bool    `json:"open_now"`
	Phone         string  `json:"phone,omitempty"`
	Website       string  `json:"website,omitempty"`
	Score         float64 `json:"score"`
}

// ProviderOutput reports what happened with one provider.
type ProviderOutput struct {
	Provider string `json:"provider"`
	Status   string `json:"status"`
	Results  int    `json:"results"`
	Error    string `json:"error,omitempty"`
}

// PlanOutput is the multi-domain answer returned by plan.
type PlanOutput struct {
	RequestID      string            `json:"request_id"`
	Route          RouteOutput       `json:"route"`
	Results        []DomainOutput    `json:"results"`
	Clarifications map[string]string `json:"clarifications,omitempty"`
}

func routeOutput(d domain.RoutingDecision) RouteOutput {
	out := RouteOutput{
		Domains:            make([]string, 0, len(d.Domains)),
		Source:             string(d.Source),
		Reasoning:          d.Reasoning,
		FallbackReason:     d.FallbackReason,
		NeedsClarification: d.IsEmpty(),
	}
	for _, dom := range d.Domains {
		out.Domains = append(out.Domains, dom.String())
	}
	return out
}

func planOutput(res domain.AskResult) PlanOutput {
	out := PlanOutput{
		RequestID: res.RequestID,
		Route:     routeOutput(res.Decision),
		Results:   make([]DomainOutput, 0, len(res.Results)),
	}
	for _, hr := range res.Results {
		out.Results = append(out.Results, domainOutput(hr))
	}
	if len(res.Clarifications) > 0 {
		out.Clarifications = make(map[string]string, len(res.Clarifications))
		for d, msg := range res.Clarifications {
			out.Clarifications[d.String()] = msg
		}
	}
	return out
}

func domainOutput(hr domain.HandlerResult) DomainOutput {
	rec := hr.Recommendation()
	meta := hr.Metadata()
	out := DomainOutput{
		Domain:               hr.Domain.String(),
		Priority:             meta.Priority.String(),
		Recommendation:       rec.Text,
		Best:                 rec.Best,
		RecommendationSource: string(rec.Source),
		Providers:            make([]ProviderOutput, 0, len(meta.Providers)),
		Notes:                meta.Notes,
	}
	for _, p := range meta.Providers {
		out.Providers = append(out.Providers, ProviderOutput{
			Provider: p.Provider,
			Status:   string(p.Status),
			Results:  p.Results,
			Error:    p.Error,
		})
	}

	if hr.Rides != nil {
		out.Rides = make([]RideOutput, 0, len(hr.Rides.Options))
		for _, r := range hr.Rides.Options {
			out.Rides = append(out.Rides, RideOutput{
				Provider:         r.Provider,
				VehicleType:      r.VehicleType,
				PriceLow:         r.PriceLow,
				PriceHigh:        r.PriceHigh,
				PriceEstimate:    r.PriceEstimate,
				Currency:         r.Currency,
				SurgeMultiplier:  r.SurgeMultiplier,
				DurationMinutes:  r.DurationMinutes,
				PickupETAMinutes: r.PickupETAMinutes,
				DistanceMiles:    r.DistanceMiles,
				Available:        r.IsAvailable,
				Score:            r.Score,
			})
		}
	}
	if hr.Restaurants != nil {
		out.Restaurants = make([]RestaurantOutput, 0, len(hr.Restaurants.Options))
		for _, r := range hr.Restaurants.Options {
			out.Restaurants = append(out.Restaurants, RestaurantOutput{
				Name:          r.Name,
				Provider:      r.Provider,
				Cuisine:       r.Cuisine,
				Rating:        r.Rating,
				ReviewCount:   r.ReviewCount,
				PriceRange:    r.PriceRange,
				Address:       r.Address,
				DistanceMiles: r.DistanceMiles,
				OpenNow:       r.IsOpenNow,
				Phone:         r.Phone,
				Website:       r.Website,
				Score:         r.Score,
			})
		}
	}
	return out
}
