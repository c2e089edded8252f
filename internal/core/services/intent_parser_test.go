package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hopwise/hopwise/internal/core/domain"
)

func TestParseRide_Heuristics(t *testing.T) {
	p := NewIntentParser(nil, 0)

	tests := []struct {
		raw         string
		origin      string
		destination string
		providers   []string
	}{
		{"compare Uber and Lyft from Times Square to JFK Airport", "Times Square", "JFK Airport", []string{"uber", "lyft"}},
		{"get me a ride to the airport from Brooklyn", "Brooklyn", "airport", []string{"uber", "lyft"}},
		{"uber from Penn Station to Central Park at 5pm", "Penn Station", "Central Park", []string{"uber"}},
	}
	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			q, err := p.ParseRide(context.Background(), tt.raw, domain.QueryContext{})
			require.NoError(t, err)
			assert.Equal(t, tt.origin, q.Origin)
			assert.Equal(t, tt.destination, q.Destination)
			assert.Equal(t, tt.providers, q.Providers)
			assert.Equal(t, tt.raw, q.RawQuery)
			assert.Equal(t, domain.DefaultPassengers, q.Passengers)
		})
	}
}

func TestParseRide_OriginFromContext(t *testing.T) {
	p := NewIntentParser(nil, 0)

	q, err := p.ParseRide(context.Background(), "I need a ride to JFK", domain.QueryContext{UserLocation: "Soho"})

	require.NoError(t, err)
	assert.Equal(t, "Soho", q.Origin)
	assert.Equal(t, "JFK", q.Destination)
}

func TestParseRide_MissingDestinationIsValidationError(t *testing.T) {
	p := NewIntentParser(nil, 0)

	_, err := p.ParseRide(context.Background(), "need a ride", domain.QueryContext{UserLocation: "Soho"})

	var ve *domain.ValidationError
	require.True(t, errors.As(err, &ve))
	assert.Equal(t, "destination", ve.Field)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestParseRide_MissingOriginWithoutContext(t *testing.T) {
	p := NewIntentParser(nil, 0)

	_, err := p.ParseRide(context.Background(), "ride to JFK", domain.QueryContext{})

	var ve *domain.ValidationError
	require.True(t, errors.As(err, &ve))
	assert.Equal(t, "origin", ve.Field)
}

func TestParseRide_EmptyQuery(t *testing.T) {
	p := NewIntentParser(nil, 0)
	_, err := p.ParseRide(context.Background(), "   ", domain.QueryContext{})
	assert.True(t, domain.IsValidationError(err))
}

func TestParseRide_ModelAnswerUsed(t *testing.T) {
	llm := newMockLLM().on("Extract a ride request",
		`{"origin": "Grand Central", "destination": "LaGuardia", "providers": ["Lyft"], "vehicle_type": "xl", "passengers": 4}`)
	p := NewIntentParser(llm, 0)

	q, err := p.ParseRide(context.Background(), "big car for 4 of us from GCT to LGA", domain.QueryContext{})

	require.NoError(t, err)
	assert.Equal(t, "Grand Central", q.Origin)
	assert.Equal(t, "LaGuardia", q.Destination)
	assert.Equal(t, []string{"lyft"}, q.Providers)
	assert.Equal(t, "xl", q.VehicleType)
	assert.Equal(t, 4, q.Passengers)
	require.NotNil(t, llm.lastOpts.Temperature)
	assert.Zero(t, *llm.lastOpts.Temperature)
	assert.True(t, llm.lastOpts.JSON)
}

func TestParseRide_ModelUnclearFilledByHeuristics(t *testing.T) {
	llm := newMockLLM().on("Extract a ride request", `{"origin": "UNCLEAR", "destination": "UNCLEAR"}`)
	p := NewIntentParser(llm, 0)

	q, err := p.ParseRide(context.Background(), "from Times Square to JFK Airport", domain.QueryContext{})

	require.NoError(t, err)
	assert.Equal(t, "Times Square", q.Origin)
	assert.Equal(t, "JFK Airport", q.Destination)
	assert.Equal(t, domain.DefaultRideProviders(), q.Providers)
}

func TestParseRestaurant_Heuristics(t *testing.T) {
	p := NewIntentParser(nil, 0)

	q, err := p.ParseRestaurant(context.Background(),
		"cheap vegetarian Italian food in the West Village for 4, 4.5 stars", domain.QueryContext{})

	require.NoError(t, err)
	assert.Equal(t, "Italian", q.Cuisine)
	assert.Equal(t, "West Village", q.Location)
	assert.Equal(t, "$$", q.PriceRange)
	assert.Equal(t, 4, q.PartySize)
	assert.InDelta(t, 4.5, q.RatingMin, 1e-9)
	assert.Equal(t, []string{"vegetarian"}, q.DietaryRestrictions)
	assert.Equal(t, domain.FilterFood, q.FilterCategory)
	assert.Equal(t, domain.DefaultSearchRadiusMiles, q.DistanceMiles)
}

func TestParseRestaurant_NearbyUsesContext(t *testing.T) {
	p := NewIntentParser(nil, 0)

	q, err := p.ParseRestaurant(context.Background(), "find Italian food nearby", domain.QueryContext{UserLocation: "Union Square"})

	require.NoError(t, err)
	assert.Equal(t, "Union Square", q.Location)
}

func TestParseRestaurant_MissingLocation(t *testing.T) {
	p := NewIntentParser(nil, 0)

	_, err := p.ParseRestaurant(context.Background(), "find Italian food nearby", domain.QueryContext{})

	var ve *domain.ValidationError
	require.True(t, errors.As(err, &ve))
	assert.Equal(t, domain.DomainRestaurants, ve.Domain)
	assert.Equal(t, "location", ve.Field)
}

func TestParseRestaurant_UnsupportedCategoryNormalised(t *testing.T) {
	llm := newMockLLM().on("Extract a restaurant search",
		`{"cuisine": "", "location": "SoHo", "filter_category": "Brunch"}`)
	p := NewIntentParser(llm, 0)

	q, err := p.ParseRestaurant(context.Background(), "brunch spots in SoHo", domain.QueryContext{})

	require.NoError(t, err)
	assert.Equal(t, domain.FilterFood, q.FilterCategory)
}

func TestParseRestaurant_CategoryPreferenceOverrides(t *testing.T) {
	p := NewIntentParser(nil, 0)

	q, err := p.ParseRestaurant(context.Background(), "somewhere in Tribeca", domain.QueryContext{
		Preferences: map[string]string{PrefFilterCategory: "ice cream", PrefDietary: "vegan, halal"},
	})
	require.NoError(t, err)
	assert.Equal(t, domain.FilterIceCream, q.FilterCategory)
	assert.Equal(t, []string{"vegan", "halal"}, q.DietaryRestrictions)

	q, err = p.ParseRestaurant(context.Background(), "somewhere in Tribeca", domain.QueryContext{
		Preferences: map[string]string{PrefFilterCategory: "Brunch"},
	})
	require.NoError(t, err)
	assert.Equal(t, domain.FilterFood, q.FilterCategory)
}

func TestParseRestaurant_CafeCategoryFromText(t *testing.T) {
	p := NewIntentParser(nil, 0)

	q, err := p.ParseRestaurant(context.Background(), "coffee near Bryant Park", domain.QueryContext{})

	require.NoError(t, err)
	assert.Equal(t, domain.FilterCafe, q.FilterCategory)
	assert.Equal(t, "Bryant Park", q.Location)
}
