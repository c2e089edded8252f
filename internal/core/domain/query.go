package domain

import (
	"math"
	"strings"
)

// GeoPoint is a resolved coordinate pair with its canonical place name.
type GeoPoint struct {
	Lat  float64 `json:"lat"`
	Lng  float64 `json:"lng"`
	Name string  `json:"name,omitempty"`
}

// EarthRadiusMiles is the mean Earth radius used for great-circle distances.
const EarthRadiusMiles = 3959.0

// DistanceMiles returns the great-circle (haversine) distance to other.
func (p GeoPoint) DistanceMiles(other GeoPoint) float64 {
	lat1, lat2 := radians(p.Lat), radians(other.Lat)
	dLat := lat2 - lat1
	dLng := radians(other.Lng - p.Lng)

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLng/2)*math.Sin(dLng/2)
	return EarthRadiusMiles * 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
}

func radians(deg float64) float64 { return deg * math.Pi / 180 }

// QueryContext carries optional information the user did not type.
type QueryContext struct {
	// UserLocation is a free-text description of where the user is.
	UserLocation string `json:"user_location,omitempty"`

	// Preferences are loose user preferences (e.g. "vegetarian").
	Preferences map[string]string `json:"preferences,omitempty"`
}

// Ride defaults.
const (
	DefaultVehicleType = "standard"
	DefaultRideWhen    = "now"
	DefaultPassengers  = 1
)

// DefaultRideProviders returns the providers queried when none are named.
func DefaultRideProviders() []string {
	return []string{"uber", "lyft"}
}

// RideQuery is a validated rideshare request.
type RideQuery struct {
	RawQuery    string   `json:"raw_query"`
	Origin      string   `json:"origin"`
	Destination string   `json:"destination"`
	Providers   []string `json:"providers"`
	VehicleType string   `json:"vehicle_type"`
	When        string   `json:"when"`
	Passengers  int      `json:"passengers"`

	// Resolved coordinates. Filled during fetch when geocoding succeeds.
	OriginPoint      *GeoPoint `json:"origin_point,omitempty"`
	DestinationPoint *GeoPoint `json:"destination_point,omitempty"`
}

// ApplyDefaults fills unset optional fields.
func (q *RideQuery) ApplyDefaults() {
	if len(q.Providers) == 0 {
		q.Providers = DefaultRideProviders()
	}
	for i, p := range q.Providers {
		q.Providers[i] = strings.ToLower(strings.TrimSpace(p))
	}
	if q.VehicleType == "" {
		q.VehicleType = DefaultVehicleType
	}
	if q.When == "" {
		q.When = DefaultRideWhen
	}
	if q.Passengers <= 0 {
		q.Passengers = DefaultPassengers
	}
}

// Validate checks the fields a ride comparison cannot do without.
func (q *RideQuery) Validate() error {
	if isUnclear(q.Origin) {
		return NewValidationError(DomainRideshare, "origin",
			"is missing: say where you are starting from (e.g. \"from Times Square\")")
	}
	if isUnclear(q.Destination) {
		return NewValidationError(DomainRideshare, "destination",
			"is missing: say where you want to go (e.g. \"to JFK Airport\")")
	}
	return nil
}

// FilterCategory narrows the kind of food place searched for.
type FilterCategory string

// Supported filter categories.
const (
	FilterFood     FilterCategory = "Food"
	FilterDrinks   FilterCategory = "Drinks"
	FilterIceCream FilterCategory = "Ice Cream"
	FilterCafe     FilterCategory = "Cafe"
)

// DefaultFilterCategory is used for anything unrecognised.
const DefaultFilterCategory = FilterFood

// FilterCategories returns the supported categories.
func FilterCategories() []FilterCategory {
	return []FilterCategory{FilterFood, FilterDrinks, FilterIceCream, FilterCafe}
}

// NormalizeFilterCategory matches s case-insensitively against the
// supported categories and returns DefaultFilterCategory otherwise.
func NormalizeFilterCategory(s string) FilterCategory {
	s = strings.TrimSpace(s)
	for _, c := range FilterCategories() {
		if strings.EqualFold(s, string(c)) {
			return c
		}
	}
	return DefaultFilterCategory
}

// Restaurant defaults.
const (
	DefaultSearchRadiusMiles = 5.0
	DefaultPartySize         = 2
	DefaultCuisine           = "American"
)

// RestaurantQuery is a validated restaurant search.
type RestaurantQuery struct {
	RawQuery            string         `json:"raw_query"`
	Cuisine             string         `json:"cuisine,omitempty"`
	Location            string         `json:"location"`
	PriceRange          string         `json:"price_range,omitempty"`
	RatingMin           float64        `json:"rating_min"`
	DistanceMiles       float64        `json:"distance_miles"`
	PartySize           int            `json:"party_size"`
	DietaryRestrictions []string       `json:"dietary_restrictions,omitempty"`
	OpenNow             bool           `json:"open_now"`
	FilterCategory      FilterCategory `json:"filter_category"`
	Providers           []string       `json:"providers,omitempty"`

	LocationPoint *GeoPoint `json:"location_point,omitempty"`
}

// ApplyDefaults fills unset optional fields and normalises enum-like ones.
func (q *RestaurantQuery) ApplyDefaults() {
	q.FilterCategory = NormalizeFilterCategory(string(q.FilterCategory))
	if PriceLevel(q.PriceRange) == 0 {
		q.PriceRange = ""
	}
	if q.RatingMin < 0 || q.RatingMin > 5 {
		q.RatingMin = 0
	}
	if q.DistanceMiles <= 0 {
		q.DistanceMiles = DefaultSearchRadiusMiles
	}
	if q.PartySize <= 0 {
		q.PartySize = DefaultPartySize
	}
	for i, p := range q.Providers {
		q.Providers[i] = strings.ToLower(strings.TrimSpace(p))
	}
}

// Validate checks the fields a restaurant search cannot do without.
func (q *RestaurantQuery) Validate() error {
	if isUnclear(q.Location) {
		return NewValidationError(DomainRestaurants, "location",
			"is missing: say where to search (e.g. \"in SoHo\") or share your location")
	}
	return nil
}

// PriceLevel returns the number of '$' signs in a price range such as "$$",
// or 0 when the range is empty or malformed.
func PriceLevel(priceRange string) int {
	s := strings.TrimSpace(priceRange)
	if s == "" || len(s) > 4 || strings.Trim(s, "$") != "" {
		return 0
	}
	return len(s)
}

func isUnclear(s string) bool {
	s = strings.TrimSpace(s)
	return s == "" || strings.EqualFold(s, "unclear") || strings.EqualFold(s, "unknown")
}

// CacheIdentity returns the query fields that determine provider output.
// The raw text and provider selection are excluded so equivalent requests
// share cache entries.
func (q RideQuery) CacheIdentity() any {
	q.RawQuery = ""
	q.Providers = nil
	return q
}

// CacheIdentity returns the query fields that determine provider output.
func (q RestaurantQuery) CacheIdentity() any {
	q.RawQuery = ""
	q.Providers = nil
	return q
}
