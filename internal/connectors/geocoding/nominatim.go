package geocoding

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"golang.org/x/time/rate"

	"github.com/hopwise/hopwise/internal/core/domain"
	"github.com/hopwise/hopwise/internal/core/ports/driven"
)

// Ensure Nominatim implements the interface.
var _ driven.Geocoder = (*Nominatim)(nil)

// Nominatim defaults. The public instance asks for at most one request per
// second and an identifying User-Agent.
const (
	NominatimName       = "nominatim"
	DefaultNominatimURL = "https://nominatim.openstreetmap.org"
	DefaultUserAgent    = "hopwise/1.0"
	DefaultTimeout      = 10 * time.Second
	DefaultRate         = 1.0
)

// NominatimConfig configures the OpenStreetMap geocoder.
type NominatimConfig struct {
	BaseURL   string
	UserAgent string
	Timeout   time.Duration

	// RequestsPerSecond paces outgoing requests.
	RequestsPerSecond float64

	// Limiter optionally counts calls against the shared "nominatim" window.
	Limiter driven.RateLimiter
}

// Nominatim geocodes with the OpenStreetMap search API.
type Nominatim struct {
	client    *http.Client
	baseURL   string
	userAgent string
	pacer     *rate.Limiter
	limiter   driven.RateLimiter
}

type nominatimResult struct {
	Lat         string `json:"lat"`
	Lon         string `json:"lon"`
	DisplayName string `json:"display_name"`
}

// NewNominatim creates a Nominatim geocoder.
func NewNominatim(cfg NominatimConfig) *Nominatim {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultNominatimURL
	}
	if cfg.UserAgent == "" {
		cfg.UserAgent = DefaultUserAgent
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	if cfg.RequestsPerSecond <= 0 {
		cfg.RequestsPerSecond = DefaultRate
	}
	return &Nominatim{
		client:    &http.Client{Timeout: cfg.Timeout},
		baseURL:   cfg.BaseURL,
		userAgent: cfg.UserAgent,
		pacer:     rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), 1),
		limiter:   cfg.Limiter,
	}
}

// Geocode resolves place with a single-result search.
func (n *Nominatim) Geocode(ctx context.Context, place string) (domain.GeoPoint, error) {
	if pt, ok := ParseCoordinates(place); ok {
		return pt, nil
	}
	if place == "" {
		return domain.GeoPoint{}, fmt.Errorf("%w: empty place", domain.ErrGeocodeFailed)
	}

	if n.limiter != nil {
		ok, err := n.limiter.Allow(ctx, NominatimName)
		if err != nil || !ok {
			return domain.GeoPoint{}, fmt.Errorf("%w: %w", domain.ErrGeocodeFailed, domain.ErrRateLimited)
		}
	}
	if err := n.pacer.Wait(ctx); err != nil {
		return domain.GeoPoint{}, fmt.Errorf("%w: %w", domain.ErrGeocodeFailed, err)
	}

	results, err := n.search(ctx, place)
	if err != nil {
		return domain.GeoPoint{}, fmt.Errorf("%w: %q: %w", domain.ErrGeocodeFailed, place, err)
	}
	if len(results) == 0 {
		return domain.GeoPoint{}, fmt.Errorf("%w: location not found: %q", domain.ErrGeocodeFailed, place)
	}

	r := results[0]
	lat, err1 := strconv.ParseFloat(r.Lat, 64)
	lng, err2 := strconv.ParseFloat(r.Lon, 64)
	if err1 != nil || err2 != nil {
		return domain.GeoPoint{}, fmt.Errorf("%w: bad coordinates %q,%q", domain.ErrGeocodeFailed, r.Lat, r.Lon)
	}
	name := r.DisplayName
	if name == "" {
		name = place
	}
	return domain.GeoPoint{Lat: lat, Lng: lng, Name: name}, nil
}

func (n *Nominatim) search(ctx context.Context, place string) ([]nominatimResult, error) {
	params := url.Values{}
	params.Set("q", place)
	params.Set("format", "json")
	params.Set("limit", "1")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, n.baseURL+"/search?"+params.Encode(), http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", n.userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := n.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("nominatim returned status %d", resp.StatusCode)
	}

	var results []nominatimResult
	if err := json.NewDecoder(resp.Body).Decode(&results); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	return results, nil
}
