package rideshare

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/hopwise/hopwise/internal/core/domain"
	"github.com/hopwise/hopwise/internal/core/ports/driven"
)

// Ensure Lyft implements the interface.
var _ driven.RideProvider = (*Lyft)(nil)

// LyftName is the provider identifier.
const LyftName = "lyft"

// Lyft simulates the Lyft cost estimates endpoint.
type Lyft struct {
	sim *simulator
}

// lyftPayload mirrors GET /v1/cost. Money is in cents and primetime is a
// percentage string such as "25%".
type lyftPayload struct {
	CostEstimates []lyftCost `json:"cost_estimates"`
	GeneratedAt   time.Time  `json:"generated_at"`
}

type lyftCost struct {
	RideType                 string  `json:"ride_type"`
	DisplayName              string  `json:"display_name"`
	Currency                 string  `json:"currency"`
	EstimatedCostCentsMin    int     `json:"estimated_cost_cents_min"`
	EstimatedCostCentsMax    int     `json:"estimated_cost_cents_max"`
	EstimatedCostCents       int     `json:"estimated_cost_cents"`
	PrimetimePercentage      string  `json:"primetime_percentage"`
	EstimatedDurationSeconds int     `json:"estimated_duration_seconds"`
	EstimatedDistanceMiles   float64 `json:"estimated_distance_miles"`
	EtaSeconds               int     `json:"eta_seconds"`
	CanRequestRide           bool    `json:"can_request_ride"`
}

// NewLyft creates a simulated Lyft provider.
func NewLyft(opts ...Option) *Lyft {
	return &Lyft{sim: newSimulator(LyftFare(), opts...)}
}

// Name returns the provider identifier.
func (l *Lyft) Name() string { return LyftName }

// Fetch prices every Lyft ride type for the trip in q.
func (l *Lyft) Fetch(ctx context.Context, q domain.RideQuery) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	quotes := l.sim.quotes(q)
	payload := lyftPayload{CostEstimates: make([]lyftCost, len(quotes))}
	for i, qt := range quotes {
		payload.GeneratedAt = qt.QuotedAt
		payload.CostEstimates[i] = lyftCost{
			RideType:                 productID("lyft", qt.Vehicle.Name),
			DisplayName:              qt.Vehicle.Name,
			Currency:                 "USD",
			EstimatedCostCentsMin:    cents(qt.Low),
			EstimatedCostCentsMax:    cents(qt.High),
			EstimatedCostCents:       cents(qt.Estimate),
			PrimetimePercentage:      primetimePercentage(qt.Surge),
			EstimatedDurationSeconds: qt.Duration * 60,
			EstimatedDistanceMiles:   qt.Distance,
			EtaSeconds:               qt.PickupETA * 60,
			CanRequestRide:           qt.Available,
		}
	}
	return json.Marshal(payload)
}

// Normalize converts a Lyft cost payload into ride estimates.
func (l *Lyft) Normalize(payload []byte) ([]domain.RideEstimate, error) {
	var p lyftPayload
	if err := json.Unmarshal(payload, &p); err != nil {
		return nil, fmt.Errorf("lyft: decode payload: %w", err)
	}

	out := make([]domain.RideEstimate, 0, len(p.CostEstimates))
	for _, c := range p.CostEstimates {
		surge, err := parsePrimetime(c.PrimetimePercentage)
		if err != nil {
			return nil, fmt.Errorf("lyft: %s: %w", c.RideType, err)
		}
		out = append(out, domain.RideEstimate{
			Provider:         "Lyft",
			VehicleType:      c.DisplayName,
			PriceLow:         dollars(c.EstimatedCostCentsMin),
			PriceHigh:        dollars(c.EstimatedCostCentsMax),
			PriceEstimate:    dollars(c.EstimatedCostCents),
			Currency:         c.Currency,
			SurgeMultiplier:  surge,
			DurationMinutes:  c.EstimatedDurationSeconds / 60,
			PickupETAMinutes: c.EtaSeconds / 60,
			DistanceMiles:    c.EstimatedDistanceMiles,
			IsAvailable:      c.CanRequestRide,
			LastUpdated:      p.GeneratedAt,
		})
	}
	return out, nil
}

func cents(v float64) int {
	return int(math.Round(v * 100))
}

func dollars(c int) float64 {
	return float64(c) / 100
}

func primetimePercentage(surge float64) string {
	return strconv.Itoa(int(math.Round((surge-1)*100))) + "%"
}

func parsePrimetime(s string) (float64, error) {
	s = strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(s), "%"))
	if s == "" {
		return 1.0, nil
	}
	pct, err := strconv.Atoi(s)
	if err != nil || pct < 0 {
		return 0, fmt.Errorf("bad primetime percentage %q", s)
	}
	return 1 + float64(pct)/100, nil
}

// productID derives a stable product identifier such as "lyft_xl".
func productID(provider, vehicle string) string {
	id := strings.ToLower(strings.ReplaceAll(vehicle, " ", "_"))
	if !strings.HasPrefix(id, provider) {
		id = provider + "_" + id
	}
	return id
}
