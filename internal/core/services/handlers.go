package services

import (
	"context"
	"time"

	"github.com/hopwise/hopwise/internal/core/domain"
	"github.com/hopwise/hopwise/internal/core/ports/driven"
	"github.com/hopwise/hopwise/internal/core/ports/driving"
	"github.com/hopwise/hopwise/internal/logger"
)

// Ensure handlers implement the interfaces.
var (
	_ driving.DomainHandler                             = (*RideHandler)(nil)
	_ driving.DomainHandler                             = (*RestaurantHandler)(nil)
	_ Stages[domain.RideQuery, domain.RideEstimate]     = (*RideHandler)(nil)
	_ Stages[domain.RestaurantQuery, domain.Restaurant] = (*RestaurantHandler)(nil)
)

// RideHandler compares ride estimates across rideshare providers.
type RideHandler struct {
	parser     *IntentParser
	fetcher    *fetcher[domain.RideQuery, domain.RideEstimate]
	comparator *Comparator[domain.RideEstimate]
	geocoder   driven.Geocoder
	geoTimeout time.Duration
}

// NewRideHandler creates the rideshare handler. geocoder is optional (can be nil).
func NewRideHandler(
	parser *IntentParser,
	providers []driven.RideProvider,
	comparator *Comparator[domain.RideEstimate],
	geocoder driven.Geocoder,
	cfg FetchConfig,
) *RideHandler {
	f := newFetcher(domain.DomainRideshare, providers, cfg)
	return &RideHandler{
		parser:     parser,
		fetcher:    f,
		comparator: comparator,
		geocoder:   geocoder,
		geoTimeout: f.cfg.Timeout,
	}
}

func (h *RideHandler) Domain() domain.Domain { return domain.DomainRideshare }

// Process runs the rideshare pipeline.
func (h *RideHandler) Process(
	ctx context.Context, raw string, qctx domain.QueryContext, priority domain.Priority,
) (domain.HandlerResult, error) {
	out, err := Run[domain.RideQuery, domain.RideEstimate](ctx, h, raw, qctx, priority)
	if err != nil {
		return domain.HandlerResult{Domain: domain.DomainRideshare}, err
	}
	return domain.HandlerResult{Domain: domain.DomainRideshare, Rides: &out}, nil
}

func (h *RideHandler) Parse(ctx context.Context, raw string, qctx domain.QueryContext) (domain.RideQuery, error) {
	return h.parser.ParseRide(ctx, raw, qctx)
}

// Fetch resolves both endpoints, then queries the requested providers.
// Providers estimate with a default distance when geocoding fails.
func (h *RideHandler) Fetch(
	ctx context.Context, q *domain.RideQuery, p domain.Priority, meta *domain.Metadata,
) []domain.RideEstimate {
	q.OriginPoint = locate(ctx, h.geocoder, h.geoTimeout, q.Origin, meta)
	q.DestinationPoint = locate(ctx, h.geocoder, h.geoTimeout, q.Destination, meta)
	return h.fetcher.fetch(ctx, *q, q.Providers, p, meta)
}

func (h *RideHandler) Compare(ctx context.Context, opts []domain.RideEstimate, p domain.Priority) domain.Recommendation {
	return h.comparator.Compare(ctx, opts, p)
}

func (h *RideHandler) Format(opts []domain.RideEstimate, p domain.Priority) []domain.RideEstimate {
	return h.comparator.Rank(opts, p)
}

// RestaurantHandler searches restaurants across listing providers.
type RestaurantHandler struct {
	parser     *IntentParser
	fetcher    *fetcher[domain.RestaurantQuery, domain.Restaurant]
	comparator *Comparator[domain.Restaurant]
	geocoder   driven.Geocoder
	geoTimeout time.Duration
}

// NewRestaurantHandler creates the restaurants handler. geocoder is optional (can be nil).
func NewRestaurantHandler(
	parser *IntentParser,
	providers []driven.RestaurantProvider,
	comparator *Comparator[domain.Restaurant],
	geocoder driven.Geocoder,
	cfg FetchConfig,
) *RestaurantHandler {
	f := newFetcher(domain.DomainRestaurants, providers, cfg)
	return &RestaurantHandler{
		parser:     parser,
		fetcher:    f,
		comparator: comparator,
		geocoder:   geocoder,
		geoTimeout: f.cfg.Timeout,
	}
}

func (h *RestaurantHandler) Domain() domain.Domain { return domain.DomainRestaurants }

// Process runs the restaurants pipeline.
func (h *RestaurantHandler) Process(
	ctx context.Context, raw string, qctx domain.QueryContext, priority domain.Priority,
) (domain.HandlerResult, error) {
	out, err := Run[domain.RestaurantQuery, domain.Restaurant](ctx, h, raw, qctx, priority)
	if err != nil {
		return domain.HandlerResult{Domain: domain.DomainRestaurants}, err
	}
	return domain.HandlerResult{Domain: domain.DomainRestaurants, Restaurants: &out}, nil
}

func (h *RestaurantHandler) Parse(
	ctx context.Context, raw string, qctx domain.QueryContext,
) (domain.RestaurantQuery, error) {
	return h.parser.ParseRestaurant(ctx, raw, qctx)
}

// Fetch resolves the search location, then queries every provider.
func (h *RestaurantHandler) Fetch(
	ctx context.Context, q *domain.RestaurantQuery, p domain.Priority, meta *domain.Metadata,
) []domain.Restaurant {
	q.LocationPoint = locate(ctx, h.geocoder, h.geoTimeout, q.Location, meta)
	return h.fetcher.fetch(ctx, *q, q.Providers, p, meta)
}

func (h *RestaurantHandler) Compare(ctx context.Context, opts []domain.Restaurant, p domain.Priority) domain.Recommendation {
	return h.comparator.Compare(ctx, opts, p)
}

func (h *RestaurantHandler) Format(opts []domain.Restaurant, p domain.Priority) []domain.Restaurant {
	return h.comparator.Rank(opts, p)
}

// locate geocodes place, recording failures in meta instead of failing.
func locate(
	ctx context.Context, g driven.Geocoder, timeout time.Duration, place string, meta *domain.Metadata,
) *domain.GeoPoint {
	if g == nil || place == "" {
		return nil
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	pt, err := g.Geocode(ctx, place)
	if err != nil {
		logger.Warn("Could not geocode %q: %v", place, err)
		meta.Notef("could not locate %q: %v", place, err)
		return nil
	}
	logger.Debug("Geocoded %q to %.5f,%.5f", place, pt.Lat, pt.Lng)
	return &pt
}
