// Package listings holds the static restaurant tables and query filters
// shared by the simulated restaurant providers.
package listings

import (
	"fmt"
	"math"
	"math/rand/v2"
	"strings"
	"time"
	"unicode"

	"github.com/hopwise/hopwise/internal/core/domain"
)

// Limit is the most results a simulated provider returns.
const Limit = 5

// DefaultCenter is used when the search location was not resolved.
var DefaultCenter = domain.GeoPoint{Lat: 40.7580, Lng: -73.9855, Name: "Times Square, New York"}

// Listing is one static restaurant record.
type Listing struct {
	Name    string
	Rating  float64
	Price   string
	Reviews int
}

// Table maps a canonical cuisine to its listings.
type Table map[string][]Listing

var cuisineAliases = []struct {
	substr    string
	canonical string
}{
	{"italian", "Italian"},
	{"japanese", "Japanese"},
	{"sushi", "Japanese"},
	{"ramen", "Japanese"},
	{"chinese", "Chinese"},
	{"dim sum", "Chinese"},
	{"mexican", "Mexican"},
	{"taco", "Mexican"},
	{"american", "American"},
	{"burger", "American"},
	{"thai", "Thai"},
	{"indian", "Indian"},
	{"french", "French"},
}

// CanonicalCuisine maps free-text cuisine onto a table key, defaulting to
// domain.DefaultCuisine.
func CanonicalCuisine(cuisine string) string {
	c := strings.ToLower(strings.TrimSpace(cuisine))
	if c == "" {
		return domain.DefaultCuisine
	}
	for _, a := range cuisineAliases {
		if strings.Contains(c, a.substr) {
			return a.canonical
		}
	}
	return domain.DefaultCuisine
}

// Pool returns the listings for cuisine, falling back to the default cuisine.
func (t Table) Pool(cuisine string) []Listing {
	if pool, ok := t[CanonicalCuisine(cuisine)]; ok {
		return pool
	}
	return t[domain.DefaultCuisine]
}

// Matches reports whether l passes the price and rating filters of q.
// A price range filter keeps listings at or below that many '$'.
func Matches(l Listing, q domain.RestaurantQuery) bool {
	if want := domain.PriceLevel(q.PriceRange); want > 0 && domain.PriceLevel(l.Price) > want {
		return false
	}
	return l.Rating >= q.RatingMin
}

// Center returns the resolved search location or DefaultCenter.
func Center(q domain.RestaurantQuery) domain.GeoPoint {
	if q.LocationPoint != nil {
		return *q.LocationPoint
	}
	return DefaultCenter
}

// Offset returns the point distanceMiles from origin along bearing (radians),
// using a flat-earth approximation that is accurate over city distances.
func Offset(origin domain.GeoPoint, distanceMiles, bearing float64) domain.GeoPoint {
	const milesPerDegree = 69.0
	dLat := distanceMiles * math.Cos(bearing) / milesPerDegree
	dLng := distanceMiles * math.Sin(bearing) / (milesPerDegree * math.Cos(origin.Lat*math.Pi/180))
	return domain.GeoPoint{Lat: origin.Lat + dLat, Lng: origin.Lng + dLng}
}

// Slug turns a restaurant name into an identifier such as "joes-shanghai".
func Slug(name string) string {
	var b strings.Builder
	dash := false
	for _, r := range strings.ToLower(name) {
		switch {
		case unicode.IsLetter(r), unicode.IsDigit(r):
			b.WriteRune(r)
			dash = false
		case r == '\'' || r == '.':
		default:
			if !dash && b.Len() > 0 {
				b.WriteByte('-')
				dash = true
			}
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}

// Uniform draws from [lo, hi) and rounds to one decimal place.
func Uniform(rng *rand.Rand, lo, hi float64) float64 {
	return math.Round((lo+rng.Float64()*(hi-lo))*10) / 10
}

// Phone draws a New York phone number using one of areaCodes.
func Phone(rng *rand.Rand, areaCodes ...string) string {
	area := areaCodes[rng.IntN(len(areaCodes))]
	return fmt.Sprintf("(%s) %d-%d", area, 200+rng.IntN(800), 1000+rng.IntN(9000))
}

// Pick returns a random element of items.
func Pick(rng *rand.Rand, items []string) string {
	return items[rng.IntN(len(items))]
}

// NewRand returns a random source seeded with seed, or time-seeded when
// seed is zero. The result is not safe for concurrent use.
func NewRand(seed int64) *rand.Rand {
	s := uint64(seed)
	if seed == 0 {
		s = uint64(time.Now().UnixNano())
	}
	return rand.New(rand.NewPCG(s, s^0x9e3779b97f4a7c15))
}
