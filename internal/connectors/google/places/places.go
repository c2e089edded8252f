// Package places provides the Google Places restaurant provider.
//
// Client calls the Places API (New) text search; Mock answers from a static
// table in the same response shape. Both share Normalize, so results differ
// only in where the data came from.
package places

import (
	"context"
	"fmt"
	"strings"

	"google.golang.org/api/option"
	placesapi "google.golang.org/api/places/v1"

	"github.com/hopwise/hopwise/internal/connectors/google"
	"github.com/hopwise/hopwise/internal/connectors/listings"
	"github.com/hopwise/hopwise/internal/core/domain"
	"github.com/hopwise/hopwise/internal/core/ports/driven"
	"github.com/hopwise/hopwise/internal/logger"
)

// Ensure Client implements the interface.
var _ driven.RestaurantProvider = (*Client)(nil)

const (
	metersPerMile = 1609.344

	// maxBiasRadius is the largest circle the API accepts, in meters.
	maxBiasRadius = 50000.0

	// fieldMask selects the place fields Normalize reads.
	fieldMask = "places.id,places.displayName,places.rating,places.userRatingCount," +
		"places.priceLevel,places.formattedAddress,places.nationalPhoneNumber," +
		"places.websiteUri,places.location,places.currentOpeningHours.openNow,places.types"
)

// Client searches restaurants with the Places API (New).
type Client struct {
	svc     *placesapi.Service
	limiter *google.RateLimiter
}

// NewClient creates a live Places client authenticated with apiKey.
func NewClient(ctx context.Context, apiKey string, opts ...option.ClientOption) (*Client, error) {
	svc, err := google.NewPlacesService(ctx, apiKey, opts...)
	if err != nil {
		return nil, fmt.Errorf("create places service: %w", err)
	}
	return &Client{
		svc:     svc,
		limiter: google.NewRateLimiter(google.ServicePlaces),
	}, nil
}

// Name returns the provider identifier.
func (c *Client) Name() string { return Name }

// Fetch runs a text search for q and returns the response with its center.
func (c *Client) Fetch(ctx context.Context, q domain.RestaurantQuery) ([]byte, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	req := searchRequest(q)
	logger.Debug("Places text search: %q", req.TextQuery)

	call := c.svc.Places.SearchText(req).Context(ctx)
	call.Header().Set("X-Goog-FieldMask", fieldMask)

	resp, err := call.Do()
	if err != nil {
		if google.IsRateLimited(err) {
			c.limiter.RecordRateLimitError(google.RetryAfter(err))
		}
		return nil, fmt.Errorf("places search: %w", google.WrapError(err))
	}

	return encode(payload{Center: listings.Center(q), Cuisine: q.Cuisine, Places: resp.Places})
}

// Normalize converts a Places payload into restaurants.
func (c *Client) Normalize(raw []byte) ([]domain.Restaurant, error) {
	return normalize(raw)
}

// searchRequest builds the text search for q. Price and rating filters are
// pushed to the API; the location is both named in the text and used as a
// bias circle when it was resolved.
func searchRequest(q domain.RestaurantQuery) *placesapi.GoogleMapsPlacesV1SearchTextRequest {
	req := &placesapi.GoogleMapsPlacesV1SearchTextRequest{
		TextQuery:      textQuery(q),
		IncludedType:   includedType(q.FilterCategory),
		MinRating:      q.RatingMin,
		OpenNow:        q.OpenNow,
		PriceLevels:    levelsUpTo(q.PriceRange),
		MaxResultCount: listings.Limit,
	}
	if q.LocationPoint != nil {
		req.LocationBias = &placesapi.GoogleMapsPlacesV1SearchTextRequestLocationBias{
			Circle: &placesapi.GoogleMapsPlacesV1Circle{
				Center: &placesapi.GoogleTypeLatLng{
					Latitude:  q.LocationPoint.Lat,
					Longitude: q.LocationPoint.Lng,
				},
				Radius: min(q.DistanceMiles*metersPerMile, maxBiasRadius),
			},
		}
	}
	return req
}

func textQuery(q domain.RestaurantQuery) string {
	var parts []string
	if q.Cuisine != "" {
		parts = append(parts, q.Cuisine)
	}
	parts = append(parts, venue(q.FilterCategory))
	parts = append(parts, q.DietaryRestrictions...)
	if q.Location != "" {
		parts = append(parts, "in", q.Location)
	}
	return strings.Join(parts, " ")
}

func venue(c domain.FilterCategory) string {
	switch c {
	case domain.FilterDrinks:
		return "bars"
	case domain.FilterIceCream:
		return "ice cream shops"
	case domain.FilterCafe:
		return "cafes"
	default:
		return "restaurants"
	}
}

func includedType(c domain.FilterCategory) string {
	switch c {
	case domain.FilterDrinks:
		return "bar"
	case domain.FilterIceCream:
		return "ice_cream_shop"
	case domain.FilterCafe:
		return "cafe"
	default:
		return "restaurant"
	}
}
