package services

import (
	"fmt"
	"math"
	"strings"

	"github.com/hopwise/hopwise/internal/core/domain"
)

// Ensure RideRules implements the interface.
var _ RuleSet[domain.RideEstimate] = RideRules{}

// RideRules ranks ride estimates. Lower cost under the policy is better:
//
//	price:    price_estimate
//	time:     pickup ETA + trip duration
//	balanced: wPrice * price/max(distance, 1) + wTime * (ETA + duration)/10
//
// Priorities that do not apply to rides (rating, distance) use balanced.
type RideRules struct {
	Weights domain.BalancedWeights
}

// NewRideRules returns rules with the given balanced weights, or the
// defaults when both weights are zero.
func NewRideRules(w domain.BalancedWeights) RideRules {
	if w.Price == 0 && w.Time == 0 {
		w = domain.BalancedWeights{Price: domain.DefaultBalancedPriceWeight, Time: domain.DefaultBalancedTimeWeight}
	}
	return RideRules{Weights: w}
}

func (RideRules) Domain() domain.Domain { return domain.DomainRideshare }

func (RideRules) Eligible(r domain.RideEstimate) bool { return r.IsAvailable }

// Cost is the policy cost of r; the option with the lowest cost wins.
func (rr RideRules) Cost(r domain.RideEstimate, p domain.Priority) float64 {
	switch p {
	case domain.PriorityPrice:
		return r.PriceEstimate
	case domain.PriorityTime:
		return float64(r.TotalMinutes())
	case domain.PriorityBalanced, domain.PriorityRating, domain.PriorityDistance:
		return rr.balanced(r)
	default:
		return rr.balanced(r)
	}
}

func (rr RideRules) balanced(r domain.RideEstimate) float64 {
	perMile := r.PriceEstimate / math.Max(r.DistanceMiles, 1)
	return rr.Weights.Price*perMile + rr.Weights.Time*(float64(r.TotalMinutes())/10)
}

// Score maps cost onto (0, 100], higher is better.
func (rr RideRules) Score(r domain.RideEstimate, p domain.Priority) float64 {
	return 100 / (1 + math.Max(rr.Cost(r, p), 0))
}

func (RideRules) WithScore(r domain.RideEstimate, score float64) domain.RideEstimate {
	r.Score = score
	return r
}

func (RideRules) Less(a, b domain.RideEstimate) bool {
	switch {
	case a.PriceEstimate != b.PriceEstimate:
		return a.PriceEstimate < b.PriceEstimate
	case a.Provider != b.Provider:
		return a.Provider < b.Provider
	case a.VehicleType != b.VehicleType:
		return a.VehicleType < b.VehicleType
	case a.TotalMinutes() != b.TotalMinutes():
		return a.TotalMinutes() < b.TotalMinutes()
	case a.PickupETAMinutes != b.PickupETAMinutes:
		return a.PickupETAMinutes < b.PickupETAMinutes
	case a.DistanceMiles != b.DistanceMiles:
		return a.DistanceMiles < b.DistanceMiles
	case a.SurgeMultiplier != b.SurgeMultiplier:
		return a.SurgeMultiplier < b.SurgeMultiplier
	case a.PriceLow != b.PriceLow:
		return a.PriceLow < b.PriceLow
	case a.PriceHigh != b.PriceHigh:
		return a.PriceHigh < b.PriceHigh
	default:
		return a.IsAvailable && !b.IsAvailable
	}
}

func (RideRules) Label(r domain.RideEstimate) string { return r.Label() }

func (RideRules) Describe(r domain.RideEstimate) string {
	return fmt.Sprintf("%s (%s): %s (range %s-%s), pickup %d min, trip %d min, %.1f mi, surge %.1fx",
		r.VehicleType, r.Provider, money(r.PriceEstimate), money(r.PriceLow), money(r.PriceHigh),
		r.PickupETAMinutes, r.DurationMinutes, r.DistanceMiles, r.SurgeMultiplier)
}

func (RideRules) Explain(best domain.RideEstimate, p domain.Priority, count int) string {
	var b strings.Builder
	switch p {
	case domain.PriorityPrice:
		fmt.Fprintf(&b, "%s from %s is the cheapest of %d options at %s (pickup in %d min, %d min ride).",
			best.VehicleType, providerName(best.Provider), count, money(best.PriceEstimate),
			best.PickupETAMinutes, best.DurationMinutes)
	case domain.PriorityTime:
		fmt.Fprintf(&b, "%s from %s is the fastest of %d options: pickup in %d min and %d min on the road (%d min total) for %s.",
			best.VehicleType, providerName(best.Provider), count, best.PickupETAMinutes, best.DurationMinutes,
			best.TotalMinutes(), money(best.PriceEstimate))
	default:
		fmt.Fprintf(&b, "%s from %s offers the best balance of price and time among %d options: %s with %d min total travel.",
			best.VehicleType, providerName(best.Provider), count, money(best.PriceEstimate), best.TotalMinutes())
	}
	if best.SurgeMultiplier > 1 {
		fmt.Fprintf(&b, " Surge pricing of %.1fx is in effect.", best.SurgeMultiplier)
	}
	return b.String()
}

func (RideRules) Single(r domain.RideEstimate) string {
	return fmt.Sprintf("Only %s from %s is available: %s, pickup in %d min, %d min ride.",
		r.VehicleType, providerName(r.Provider), money(r.PriceEstimate), r.PickupETAMinutes, r.DurationMinutes)
}

func (RideRules) Empty() string {
	return "No ride estimates available for comparison."
}

func money(v float64) string {
	return fmt.Sprintf("$%.2f", v)
}

// providerName capitalises a provider identifier for display.
func providerName(p string) string {
	switch p {
	case "uber":
		return "Uber"
	case "lyft":
		return "Lyft"
	case "yelp":
		return "Yelp"
	case "google_places":
		return "Google Places"
	}
	if p == "" {
		return p
	}
	return strings.ToUpper(p[:1]) + p[1:]
}
