package rideshare

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/hopwise/hopwise/internal/core/domain"
)

var (
	timesSquare = domain.GeoPoint{Lat: 40.7580, Lng: -73.9855, Name: "Times Square"}
	jfk         = domain.GeoPoint{Lat: 40.6413, Lng: -73.7781, Name: "JFK Airport"}
	quotedAt    = time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)
)

func fixedClock() time.Time { return quotedAt }

func rideQuery() domain.RideQuery {
	q := domain.RideQuery{Origin: "Times Square", Destination: "JFK Airport"}
	q.ApplyDefaults()
	return q
}

func TestFare_Price(t *testing.T) {
	f := UberFare()

	// 5.00 + 10*2.00 + 20*0.30 = 31.00, times 1.5 for UberXL.
	assert.InDelta(t, 46.5, f.Price(10, 20, 1.5, 1.0), 1e-9)
	assert.InDelta(t, 62.0, f.Price(10, 20, 1.0, 2.0), 1e-9)

	// Short trips are raised to the minimum fare.
	assert.InDelta(t, 8.0, f.Price(0.1, 5, 1.0, 1.0), 1e-9)
	assert.InDelta(t, 7.5, LyftFare().Price(0.1, 5, 1.0, 1.0), 1e-9)
}

func TestDurationMinutes(t *testing.T) {
	tests := []struct {
		miles float64
		want  int
	}{
		{0, 5},
		{2, 5},
		{5, 10},
		{15, 30},
		{13.53, 27},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, DurationMinutes(tt.miles), "%.2f miles", tt.miles)
	}
}

func TestTripDistance(t *testing.T) {
	q := rideQuery()
	assert.Equal(t, DefaultDistanceMiles, TripDistance(q))

	q.OriginPoint = &timesSquare
	assert.Equal(t, DefaultDistanceMiles, TripDistance(q), "one endpoint is not enough")

	q.DestinationPoint = &jfk
	assert.InDelta(t, 13.53, TripDistance(q), 0.01)
}

func TestUber_FetchAndNormalize(t *testing.T) {
	u := NewUber(WithSeed(42), WithClock(fixedClock))
	assert.Equal(t, "uber", u.Name())

	payload, err := u.Fetch(context.Background(), rideQuery())
	require.NoError(t, err)
	assert.Contains(t, string(payload), `"prices"`)

	got, err := u.Normalize(payload)
	require.NoError(t, err)
	require.Len(t, got, 3)

	names := []string{got[0].VehicleType, got[1].VehicleType, got[2].VehicleType}
	assert.Equal(t, []string{"UberX", "UberXL", "Uber Black"}, names)

	for _, e := range got {
		assert.Equal(t, "Uber", e.Provider)
		assert.Equal(t, "USD", e.Currency)
		assert.Equal(t, 10, e.DurationMinutes, "5 default miles at 30 mph")
		assert.InDelta(t, DefaultDistanceMiles, e.DistanceMiles, 1e-9)
		assert.True(t, e.IsAvailable)
		assert.Equal(t, quotedAt, e.LastUpdated)
		assert.Equal(t, got[0].SurgeMultiplier, e.SurgeMultiplier, "one surge draw per request")
		assert.LessOrEqual(t, e.PriceLow, e.PriceEstimate)
		assert.LessOrEqual(t, e.PriceEstimate, e.PriceHigh)
		assert.GreaterOrEqual(t, e.PickupETAMinutes, MinPickupETA)
		assert.LessOrEqual(t, e.PickupETAMinutes, MaxPickupETA)
	}
	assert.Less(t, got[0].PriceEstimate, got[2].PriceEstimate, "Black costs more than X")
}

func TestUber_SeedIsReproducible(t *testing.T) {
	q := rideQuery()
	a, err := NewUber(WithSeed(7), WithClock(fixedClock)).Fetch(context.Background(), q)
	require.NoError(t, err)
	b, err := NewUber(WithSeed(7), WithClock(fixedClock)).Fetch(context.Background(), q)
	require.NoError(t, err)
	assert.JSONEq(t, string(a), string(b))
}

func TestLyft_FetchAndNormalize(t *testing.T) {
	l := NewLyft(WithSeed(42), WithClock(fixedClock))
	assert.Equal(t, "lyft", l.Name())

	q := rideQuery()
	q.OriginPoint, q.DestinationPoint = &timesSquare, &jfk

	payload, err := l.Fetch(context.Background(), q)
	require.NoError(t, err)
	assert.Contains(t, string(payload), `"cost_estimates"`)
	assert.Contains(t, string(payload), `"ride_type":"lyft_xl"`)

	got, err := l.Normalize(payload)
	require.NoError(t, err)
	require.Len(t, got, 3)

	for _, e := range got {
		assert.Equal(t, "Lyft", e.Provider)
		assert.Equal(t, 27, e.DurationMinutes)
		assert.InDelta(t, 13.53, e.DistanceMiles, 1e-9)
		assert.GreaterOrEqual(t, e.SurgeMultiplier, 1.0)
		assert.LessOrEqual(t, e.SurgeMultiplier, 1.8+1e-9)
		assert.Equal(t, quotedAt, e.LastUpdated)
	}
	assert.Equal(t, "Lyft Lux", got[2].VehicleType)
}

func TestLyft_NormalizeCents(t *testing.T) {
	payload := []byte(`{"cost_estimates":[{
		"ride_type":"lyft","display_name":"Lyft","currency":"USD",
		"estimated_cost_cents_min":1350,"estimated_cost_cents_max":1650,"estimated_cost_cents":1500,
		"primetime_percentage":"25%","estimated_duration_seconds":1200,
		"estimated_distance_miles":6.2,"eta_seconds":240,"can_request_ride":true}]}`)

	got, err := NewLyft().Normalize(payload)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.InDelta(t, 13.50, got[0].PriceLow, 1e-9)
	assert.InDelta(t, 16.50, got[0].PriceHigh, 1e-9)
	assert.InDelta(t, 15.00, got[0].PriceEstimate, 1e-9)
	assert.InDelta(t, 1.25, got[0].SurgeMultiplier, 1e-9)
	assert.Equal(t, 20, got[0].DurationMinutes)
	assert.Equal(t, 4, got[0].PickupETAMinutes)
}

func TestParsePrimetime(t *testing.T) {
	tests := []struct {
		in      string
		want    float64
		wantErr bool
	}{
		{"0%", 1.0, false},
		{"", 1.0, false},
		{"50%", 1.5, false},
		{" 80% ", 1.8, false},
		{"lots", 0, true},
		{"-10%", 0, true},
	}
	for _, tt := range tests {
		got, err := parsePrimetime(tt.in)
		if tt.wantErr {
			assert.Error(t, err, tt.in)
			continue
		}
		require.NoError(t, err, tt.in)
		assert.InDelta(t, tt.want, got, 1e-9, tt.in)
	}
}

func TestPassengersBeyondCapacity(t *testing.T) {
	q := rideQuery()
	q.Passengers = 5

	u := NewUber(WithSeed(1))
	payload, err := u.Fetch(context.Background(), q)
	require.NoError(t, err)
	got, err := u.Normalize(payload)
	require.NoError(t, err)

	available := map[string]bool{}
	for _, e := range got {
		available[e.VehicleType] = e.IsAvailable
	}
	assert.Equal(t, map[string]bool{"UberX": false, "UberXL": true, "Uber Black": false}, available)
}

func TestFetch_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewUber().Fetch(ctx, rideQuery())
	assert.ErrorIs(t, err, context.Canceled)
	_, err = NewLyft().Fetch(ctx, rideQuery())
	assert.ErrorIs(t, err, context.Canceled)
}

func TestNormalize_RejectsGarbage(t *testing.T) {
	_, err := NewUber().Normalize([]byte("not json"))
	assert.Error(t, err)
	_, err = NewUber().Normalize([]byte(`{"prices":[{"estimate":12}]}`))
	assert.Error(t, err)
	_, err = NewLyft().Normalize([]byte(`{"cost_estimates":[{"primetime_percentage":"x%"}]}`))
	assert.Error(t, err)
}

func TestQuotes_Properties(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		fare := rapid.SampledFrom([]Fare{UberFare(), LyftFare()}).Draw(t, "fare")
		seed := rapid.Int64Range(1, 1<<40).Draw(t, "seed")
		q := rideQuery()
		q.Passengers = rapid.IntRange(1, 8).Draw(t, "passengers")
		q.OriginPoint = &timesSquare
		q.DestinationPoint = &domain.GeoPoint{
			Lat: rapid.Float64Range(40.5, 41.0).Draw(t, "lat"),
			Lng: rapid.Float64Range(-74.2, -73.7).Draw(t, "lng"),
		}

		sim := newSimulator(fare, WithSeed(seed))
		for _, qt := range sim.quotes(q) {
			if qt.Low > qt.Estimate || qt.Estimate > qt.High {
				t.Fatalf("range %.2f <= %.2f <= %.2f violated", qt.Low, qt.Estimate, qt.High)
			}
			if qt.Estimate < fare.MinimumFare {
				t.Fatalf("estimate %.2f below minimum %.2f", qt.Estimate, fare.MinimumFare)
			}
			if qt.Surge < 1.0 || qt.Surge > fare.SurgeMax+1e-9 {
				t.Fatalf("surge %.1f out of range", qt.Surge)
			}
			if qt.Duration < MinDurationMinutes {
				t.Fatalf("duration %d below minimum", qt.Duration)
			}
			if qt.Available != (q.Passengers <= qt.Vehicle.Seats) {
				t.Fatalf("availability mismatch for %d passengers in %s", q.Passengers, qt.Vehicle.Name)
			}
		}
	})
}
