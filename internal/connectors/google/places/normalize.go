package places

import (
	"encoding/json"
	"fmt"
	"math"

	placesapi "google.golang.org/api/places/v1"

	"github.com/hopwise/hopwise/internal/core/domain"
)

// Name is the provider identifier shared by the live and simulated clients.
const Name = "google_places"

// payload is what Fetch returns: a Places API search response plus the
// search center, which Places does not echo and distances are measured from.
type payload struct {
	Center  domain.GeoPoint                      `json:"center"`
	Cuisine string                               `json:"cuisine,omitempty"`
	Places  []*placesapi.GoogleMapsPlacesV1Place `json:"places"`
}

// Price levels of the Places API, indexed by number of '$'.
var priceLevels = []string{
	"PRICE_LEVEL_FREE",
	"PRICE_LEVEL_INEXPENSIVE",
	"PRICE_LEVEL_MODERATE",
	"PRICE_LEVEL_EXPENSIVE",
	"PRICE_LEVEL_VERY_EXPENSIVE",
}

// priceLevel converts "$$" to PRICE_LEVEL_MODERATE.
func priceLevel(priceRange string) string {
	n := domain.PriceLevel(priceRange)
	if n == 0 {
		return ""
	}
	return priceLevels[n]
}

// priceRange converts PRICE_LEVEL_MODERATE to "$$". Free and unknown
// levels have no range.
func priceRange(level string) string {
	for i, l := range priceLevels {
		if l == level && i > 0 {
			return "$$$$"[:i]
		}
	}
	return ""
}

// levelsUpTo lists every priced level at or below priceRange.
func levelsUpTo(priceRange string) []string {
	n := domain.PriceLevel(priceRange)
	if n == 0 {
		return nil
	}
	return append([]string(nil), priceLevels[1:n+1]...)
}

func encode(p payload) ([]byte, error) {
	return json.Marshal(p)
}

// normalize converts a payload into restaurants. It is shared by the live
// and simulated clients so both produce identical results for identical
// API responses.
func normalize(raw []byte) ([]domain.Restaurant, error) {
	var p payload
	if err := json.Unmarshal(raw, &p); err != nil {
		return nil, fmt.Errorf("google places: decode payload: %w", err)
	}

	cuisine := p.Cuisine
	if cuisine == "" {
		cuisine = domain.DefaultCuisine
	}

	out := make([]domain.Restaurant, 0, len(p.Places))
	for _, pl := range p.Places {
		if pl == nil || pl.DisplayName == nil || pl.DisplayName.Text == "" {
			return nil, fmt.Errorf("google places: place without display name")
		}
		r := domain.Restaurant{
			ID:          pl.Id,
			Provider:    Name,
			Name:        pl.DisplayName.Text,
			Cuisine:     cuisine,
			Rating:      pl.Rating,
			ReviewCount: int(pl.UserRatingCount),
			PriceRange:  priceRange(pl.PriceLevel),
			Address:     pl.FormattedAddress,
			Phone:       pl.NationalPhoneNumber,
			Website:     pl.WebsiteUri,
			Categories:  categories(cuisine, pl.Types),
		}
		if pl.CurrentOpeningHours != nil {
			r.IsOpenNow = pl.CurrentOpeningHours.OpenNow
		}
		if pl.Location != nil {
			pt := domain.GeoPoint{Lat: pl.Location.Latitude, Lng: pl.Location.Longitude}
			r.Coordinates = &pt
			r.DistanceMiles = math.Round(p.Center.DistanceMiles(pt)*10) / 10
		}
		out = append(out, r)
	}
	return out, nil
}

// categories keeps the cuisine first and the Places types that describe
// the kind of venue.
func categories(cuisine string, types []string) []string {
	out := []string{cuisine}
	for _, t := range types {
		switch t {
		case "restaurant":
			out = append(out, "Restaurant")
		case "bar":
			out = append(out, "Bar")
		case "cafe", "coffee_shop":
			out = append(out, "Cafe")
		case "ice_cream_shop":
			out = append(out, "Ice Cream")
		}
	}
	return out
}
