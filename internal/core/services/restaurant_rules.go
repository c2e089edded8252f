package services

import (
	"fmt"
	"math"
	"strings"

	"github.com/hopwise/hopwise/internal/core/domain"
)

// Ensure RestaurantRules implements the interface.
var _ RuleSet[domain.Restaurant] = RestaurantRules{}

// wellRated is the rating a place needs to win on price or distance.
const wellRated = 4.0

// unknownPriceLevel treats listings without a price range as "$".
const unknownPriceLevel = 1

// RestaurantRules ranks restaurants:
//
//	rating:   highest rating, then most reviews
//	price:    cheapest among places rated >= 4.0
//	distance: closest among places rated >= 4.0
//	balanced: rating*2 + (5 - price level) + max(0, 5 - miles) + min(reviews/1000, 3)
//
// Time is not meaningful for restaurants and uses balanced.
type RestaurantRules struct{}

func (RestaurantRules) Domain() domain.Domain { return domain.DomainRestaurants }

func (RestaurantRules) Eligible(domain.Restaurant) bool { return true }

func priceLevel(r domain.Restaurant) int {
	if l := domain.PriceLevel(r.PriceRange); l > 0 {
		return l
	}
	return unknownPriceLevel
}

func (RestaurantRules) Score(r domain.Restaurant, p domain.Priority) float64 {
	bonus := 0.0
	if r.Rating >= wellRated {
		bonus = 100
	}
	switch p {
	case domain.PriorityRating:
		return r.Rating + math.Min(float64(r.ReviewCount), 999_999)/1e7
	case domain.PriorityPrice:
		return bonus + float64(5-priceLevel(r))
	case domain.PriorityDistance:
		return bonus + 50/(1+math.Max(r.DistanceMiles, 0))
	case domain.PriorityBalanced, domain.PriorityTime:
		return balancedRestaurantScore(r)
	default:
		return balancedRestaurantScore(r)
	}
}

func balancedRestaurantScore(r domain.Restaurant) float64 {
	return r.Rating*2 +
		float64(5-priceLevel(r)) +
		math.Max(0, 5-r.DistanceMiles) +
		math.Min(float64(r.ReviewCount)/1000, 3)
}

func (RestaurantRules) WithScore(r domain.Restaurant, score float64) domain.Restaurant {
	r.Score = score
	return r
}

func (RestaurantRules) Less(a, b domain.Restaurant) bool {
	switch {
	case a.Rating != b.Rating:
		return a.Rating > b.Rating
	case a.Name != b.Name:
		return a.Name < b.Name
	case a.Provider != b.Provider:
		return a.Provider < b.Provider
	case a.ReviewCount != b.ReviewCount:
		return a.ReviewCount > b.ReviewCount
	case a.DistanceMiles != b.DistanceMiles:
		return a.DistanceMiles < b.DistanceMiles
	case a.PriceRange != b.PriceRange:
		return a.PriceRange < b.PriceRange
	default:
		return a.ID < b.ID
	}
}

func (RestaurantRules) Label(r domain.Restaurant) string { return r.Label() }

func (RestaurantRules) Describe(r domain.Restaurant) string {
	return fmt.Sprintf("%s (%s, %s): %.1f stars from %d reviews, %s, %.1f mi, %s",
		r.Name, r.Cuisine, providerName(r.Provider), r.Rating, r.ReviewCount,
		orUnknown(r.PriceRange), r.DistanceMiles, openText(r.IsOpenNow))
}

func (RestaurantRules) Explain(best domain.Restaurant, p domain.Priority, count int) string {
	switch p {
	case domain.PriorityRating:
		return fmt.Sprintf("%s is the highest rated of %d places: %.1f stars from %d reviews.",
			best.Name, count, best.Rating, best.ReviewCount)
	case domain.PriorityPrice:
		return fmt.Sprintf("%s is the most affordable well-rated pick among %d places (%s, %.1f stars).",
			best.Name, count, orUnknown(best.PriceRange), best.Rating)
	case domain.PriorityDistance:
		return fmt.Sprintf("%s is the closest well-rated place at %.1f miles (%.1f stars).",
			best.Name, best.DistanceMiles, best.Rating)
	case domain.PriorityBalanced, domain.PriorityTime:
		return fmt.Sprintf("%s is the best overall pick among %d places: %.1f stars, %s, %.1f miles away.",
			best.Name, count, best.Rating, orUnknown(best.PriceRange), best.DistanceMiles)
	default:
		return fmt.Sprintf("%s is the best pick among %d places.", best.Name, count)
	}
}

func (RestaurantRules) Single(r domain.Restaurant) string {
	return fmt.Sprintf("Only %s matches your search: %.1f stars, %s, %.1f miles away.",
		r.Name, r.Rating, orUnknown(r.PriceRange), r.DistanceMiles)
}

func (RestaurantRules) Empty() string {
	return "No restaurants found matching your criteria."
}

func orUnknown(s string) string {
	if strings.TrimSpace(s) == "" {
		return "price unknown"
	}
	return s
}

func openText(open bool) string {
	if open {
		return "open now"
	}
	return "closed now"
}
