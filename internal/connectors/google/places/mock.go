package places

import (
	"context"
	"fmt"
	"math"
	"math/rand/v2"
	"strings"
	"sync"

	placesapi "google.golang.org/api/places/v1"

	"github.com/hopwise/hopwise/internal/connectors/listings"
	"github.com/hopwise/hopwise/internal/core/domain"
	"github.com/hopwise/hopwise/internal/core/ports/driven"
)

// Ensure Mock implements the interface.
var _ driven.RestaurantProvider = (*Mock)(nil)

const (
	// Simulated distances in miles.
	mockMinDistance = 0.2
	mockMaxDistance = 2.5

	// mockOpenChance is the share of places reported open now.
	mockOpenChance = 2.0 / 3.0
)

// Mock answers searches from a static table in the Places API response
// shape. It is used when no API key is configured.
type Mock struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewMock creates a simulated Places client. A zero seed is time-seeded.
func NewMock(seed int64) *Mock {
	return &Mock{rng: listings.NewRand(seed)}
}

// Name returns the provider identifier.
func (m *Mock) Name() string { return Name }

// Fetch searches the static table for q.
func (m *Mock) Fetch(ctx context.Context, q domain.RestaurantQuery) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	cuisine := listings.CanonicalCuisine(q.Cuisine)
	p := payload{Center: listings.Center(q), Cuisine: cuisine}
	pool := table.Pool(cuisine)
	if len(pool) > listings.Limit*2 {
		pool = pool[:listings.Limit*2]
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	for _, l := range pool {
		if !listings.Matches(l, q) {
			continue
		}
		distance := listings.Uniform(m.rng, mockMinDistance, mockMaxDistance)
		if distance > q.DistanceMiles {
			continue
		}
		open := m.rng.Float64() < mockOpenChance
		if q.OpenNow && !open {
			continue
		}
		p.Places = append(p.Places, m.place(l, p.Center, distance, open))
		if len(p.Places) >= listings.Limit {
			break
		}
	}
	return encode(p)
}

// place must be called with mu held.
func (m *Mock) place(l listings.Listing, center domain.GeoPoint, miles float64, open bool) *placesapi.GoogleMapsPlacesV1Place {
	pt := listings.Offset(center, miles, m.rng.Float64()*2*math.Pi)
	return &placesapi.GoogleMapsPlacesV1Place{
		Id:                  "mock-" + listings.Slug(l.Name),
		DisplayName:         &placesapi.GoogleTypeLocalizedText{Text: l.Name, LanguageCode: "en"},
		Rating:              l.Rating,
		UserRatingCount:     int64(l.Reviews),
		PriceLevel:          priceLevel(l.Price),
		FormattedAddress:    m.address(),
		NationalPhoneNumber: listings.Phone(m.rng, areaCodes...),
		WebsiteUri:          "https://www.google.com/maps/search/" + strings.ReplaceAll(l.Name, " ", "+"),
		Location:            &placesapi.GoogleTypeLatLng{Latitude: pt.Lat, Longitude: pt.Lng},
		CurrentOpeningHours: &placesapi.GoogleMapsPlacesV1PlaceOpeningHours{OpenNow: open},
		Types:               []string{"restaurant", "food", "establishment"},
	}
}

func (m *Mock) address() string {
	return fmt.Sprintf("%d %s, %s, NY 10012", 10+m.rng.IntN(491),
		listings.Pick(m.rng, streets), listings.Pick(m.rng, neighborhoods))
}

// Normalize converts a Places payload into restaurants.
func (m *Mock) Normalize(raw []byte) ([]domain.Restaurant, error) {
	return normalize(raw)
}
