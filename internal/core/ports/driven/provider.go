package driven

import (
	"context"

	"github.com/hopwise/hopwise/internal/core/domain"
)

// ProviderAdapter fetches options for query type Q from one data source and
// normalises them into result type R. It is the only place where a
// provider's payload format is known.
type ProviderAdapter[Q, R any] interface {
	// Name is the provider identifier used in cache keys, rate limits and metadata.
	Name() string

	// Fetch returns the provider's raw payload for query.
	Fetch(ctx context.Context, query Q) ([]byte, error)

	// Normalize converts a raw payload into shared results.
	Normalize(payload []byte) ([]R, error)
}

// RideProvider is a rideshare provider adapter.
type RideProvider = ProviderAdapter[domain.RideQuery, domain.RideEstimate]

// RestaurantProvider is a restaurant provider adapter.
type RestaurantProvider = ProviderAdapter[domain.RestaurantQuery, domain.Restaurant]

// Geocoder resolves place names to coordinates.
type Geocoder interface {
	// Geocode returns the coordinates and canonical name of place,
	// or an error wrapping domain.ErrGeocodeFailed.
	Geocode(ctx context.Context, place string) (domain.GeoPoint, error)
}
