package rideshare

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/hopwise/hopwise/internal/core/domain"
	"github.com/hopwise/hopwise/internal/core/ports/driven"
)

// Ensure Uber implements the interface.
var _ driven.RideProvider = (*Uber)(nil)

// UberName is the provider identifier.
const UberName = "uber"

// Uber simulates the Uber price estimates endpoint.
type Uber struct {
	sim *simulator
}

// uberPayload mirrors GET /v1.2/estimates/price.
type uberPayload struct {
	Prices []uberPrice `json:"prices"`
}

type uberPrice struct {
	ProductID       string    `json:"product_id"`
	DisplayName     string    `json:"display_name"`
	LowEstimate     float64   `json:"low_estimate"`
	HighEstimate    float64   `json:"high_estimate"`
	Estimate        float64   `json:"estimate"`
	CurrencyCode    string    `json:"currency_code"`
	SurgeMultiplier float64   `json:"surge_multiplier"`
	Duration        int       `json:"duration"`   // seconds
	Distance        float64   `json:"distance"`   // miles
	PickupETA       int       `json:"pickup_eta"` // seconds
	Capacity        int       `json:"capacity"`
	Available       bool      `json:"available"`
	QuotedAt        time.Time `json:"quoted_at"`
}

// NewUber creates a simulated Uber provider.
func NewUber(opts ...Option) *Uber {
	return &Uber{sim: newSimulator(UberFare(), opts...)}
}

// Name returns the provider identifier.
func (u *Uber) Name() string { return UberName }

// Fetch prices every Uber product for the trip in q.
func (u *Uber) Fetch(ctx context.Context, q domain.RideQuery) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	quotes := u.sim.quotes(q)
	payload := uberPayload{Prices: make([]uberPrice, len(quotes))}
	for i, qt := range quotes {
		payload.Prices[i] = uberPrice{
			ProductID:       productID("uber", qt.Vehicle.Name),
			DisplayName:     qt.Vehicle.Name,
			LowEstimate:     qt.Low,
			HighEstimate:    qt.High,
			Estimate:        qt.Estimate,
			CurrencyCode:    "USD",
			SurgeMultiplier: qt.Surge,
			Duration:        qt.Duration * 60,
			Distance:        qt.Distance,
			PickupETA:       qt.PickupETA * 60,
			Capacity:        qt.Vehicle.Seats,
			Available:       qt.Available,
			QuotedAt:        qt.QuotedAt,
		}
	}
	return json.Marshal(payload)
}

// Normalize converts an Uber price payload into ride estimates.
func (u *Uber) Normalize(payload []byte) ([]domain.RideEstimate, error) {
	var p uberPayload
	if err := json.Unmarshal(payload, &p); err != nil {
		return nil, fmt.Errorf("uber: decode payload: %w", err)
	}

	out := make([]domain.RideEstimate, 0, len(p.Prices))
	for _, pr := range p.Prices {
		if pr.DisplayName == "" {
			return nil, fmt.Errorf("uber: price entry without display_name")
		}
		out = append(out, domain.RideEstimate{
			Provider:         "Uber",
			VehicleType:      pr.DisplayName,
			PriceLow:         pr.LowEstimate,
			PriceHigh:        pr.HighEstimate,
			PriceEstimate:    pr.Estimate,
			Currency:         pr.CurrencyCode,
			SurgeMultiplier:  pr.SurgeMultiplier,
			DurationMinutes:  pr.Duration / 60,
			PickupETAMinutes: pr.PickupETA / 60,
			DistanceMiles:    pr.Distance,
			IsAvailable:      pr.Available,
			LastUpdated:      pr.QuotedAt,
		})
	}
	return out, nil
}
