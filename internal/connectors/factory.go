package connectors

import (
	"context"
	"fmt"
	"sort"
	"time"

	"google.golang.org/api/option"

	"github.com/hopwise/hopwise/internal/connectors/geocoding"
	"github.com/hopwise/hopwise/internal/connectors/google/places"
	"github.com/hopwise/hopwise/internal/connectors/rideshare"
	"github.com/hopwise/hopwise/internal/connectors/yelp"
	"github.com/hopwise/hopwise/internal/core/domain"
	"github.com/hopwise/hopwise/internal/core/ports/driven"
	"github.com/hopwise/hopwise/internal/logger"
)

// Geocoder names accepted in settings.
const (
	GeocoderNominatim = "nominatim"
	GeocoderStatic    = "static"
)

type rideBuilder func(settings domain.ProviderSettings) driven.RideProvider

type restaurantBuilder func(ctx context.Context, settings domain.ProviderSettings) (driven.RestaurantProvider, error)

// Factory creates provider adapters by name.
type Factory struct {
	rides       map[string]rideBuilder
	restaurants map[string]restaurantBuilder

	// placesOptions are passed to the live Places client.
	placesOptions []option.ClientOption
}

// NewFactory creates a factory with every built-in provider registered.
func NewFactory(placesOptions ...option.ClientOption) *Factory {
	f := &Factory{
		rides:         make(map[string]rideBuilder),
		restaurants:   make(map[string]restaurantBuilder),
		placesOptions: placesOptions,
	}

	f.rides[rideshare.UberName] = func(s domain.ProviderSettings) driven.RideProvider {
		return rideshare.NewUber(rideshare.WithSeed(s.Seed))
	}
	f.rides[rideshare.LyftName] = func(s domain.ProviderSettings) driven.RideProvider {
		return rideshare.NewLyft(rideshare.WithSeed(s.Seed))
	}

	f.restaurants[yelp.Name] = func(_ context.Context, s domain.ProviderSettings) (driven.RestaurantProvider, error) {
		return yelp.NewClient(s.Seed), nil
	}
	f.restaurants[places.Name] = f.buildPlaces
	return f
}

func (f *Factory) buildPlaces(ctx context.Context, s domain.ProviderSettings) (driven.RestaurantProvider, error) {
	if s.GooglePlacesAPIKey == "" {
		return places.NewMock(s.Seed), nil
	}
	c, err := places.NewClient(ctx, s.GooglePlacesAPIKey, f.placesOptions...)
	if err != nil {
		return nil, err
	}
	logger.Debug("Using live Google Places API")
	return c, nil
}

// RideProviderNames returns the registered rideshare provider names, sorted.
func (f *Factory) RideProviderNames() []string {
	return sortedKeys(f.rides)
}

// RestaurantProviderNames returns the registered restaurant provider names, sorted.
func (f *Factory) RestaurantProviderNames() []string {
	return sortedKeys(f.restaurants)
}

// RideProviders builds the rideshare providers listed in settings, in order.
func (f *Factory) RideProviders(settings domain.ProviderSettings) ([]driven.RideProvider, error) {
	out := make([]driven.RideProvider, 0, len(settings.Rideshare))
	for _, name := range settings.Rideshare {
		build, ok := f.rides[name]
		if !ok {
			return nil, unknownProvider(domain.DomainRideshare, name, f.RideProviderNames())
		}
		out = append(out, build(settings))
	}
	return out, nil
}

// RestaurantProviders builds the restaurant providers listed in settings, in order.
func (f *Factory) RestaurantProviders(
	ctx context.Context, settings domain.ProviderSettings,
) ([]driven.RestaurantProvider, error) {
	out := make([]driven.RestaurantProvider, 0, len(settings.Restaurants))
	for _, name := range settings.Restaurants {
		build, ok := f.restaurants[name]
		if !ok {
			return nil, unknownProvider(domain.DomainRestaurants, name, f.RestaurantProviderNames())
		}
		p, err := build(ctx, settings)
		if err != nil {
			return nil, fmt.Errorf("create %s provider: %w", name, err)
		}
		out = append(out, p)
	}
	return out, nil
}

// Geocoder builds the configured geocoder. When cache is non-nil lookups
// are cached for ttl. limiter is optional and only used by Nominatim.
func (f *Factory) Geocoder(
	name string, timeout time.Duration, cache driven.CacheStore, ttl time.Duration, limiter driven.RateLimiter,
) (driven.Geocoder, error) {
	var g driven.Geocoder
	switch name {
	case GeocoderStatic, "":
		name = GeocoderStatic
		g = geocoding.NewStatic()
	case GeocoderNominatim:
		g = geocoding.NewNominatim(geocoding.NominatimConfig{Timeout: timeout, Limiter: limiter})
	default:
		return nil, fmt.Errorf("%w: unknown geocoder %q (want %s or %s)",
			domain.ErrInvalidInput, name, GeocoderNominatim, GeocoderStatic)
	}
	if cache != nil && ttl > 0 {
		g = geocoding.NewCached(g, cache, ttl, name)
	}
	return g, nil
}

func unknownProvider(d domain.Domain, name string, known []string) error {
	return fmt.Errorf("%w: unknown %s provider %q (known: %v)", domain.ErrInvalidInput, d, name, known)
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
