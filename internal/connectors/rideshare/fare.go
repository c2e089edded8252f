package rideshare

import (
	"math"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/hopwise/hopwise/internal/core/domain"
)

const (
	// DefaultDistanceMiles is assumed when either endpoint is unresolved.
	DefaultDistanceMiles = 5.0

	// AverageSpeedMPH converts distance to trip duration.
	AverageSpeedMPH = 30.0

	// MinDurationMinutes is the shortest trip ever quoted.
	MinDurationMinutes = 5

	// Pickup ETA bounds in minutes, inclusive.
	MinPickupETA = 3
	MaxPickupETA = 8

	// Quoted ranges are the estimate plus or minus this fraction.
	priceSpread = 0.10
)

// Vehicle is one product tier offered by a provider.
type Vehicle struct {
	Name       string
	Multiplier float64
	Seats      int
}

// Fare is a provider's pricing model.
type Fare struct {
	BaseFare    float64
	PerMile     float64
	PerMinute   float64
	MinimumFare float64
	Vehicles    []Vehicle

	// SurgeChance is the probability that a request is surge priced.
	// A surged request draws its multiplier uniformly from [1.0, SurgeMax].
	SurgeChance float64
	SurgeMax    float64
}

// UberFare is the simulated Uber pricing model.
func UberFare() Fare {
	return Fare{
		BaseFare:    5.00,
		PerMile:     2.00,
		PerMinute:   0.30,
		MinimumFare: 8.00,
		Vehicles: []Vehicle{
			{Name: "UberX", Multiplier: 1.0, Seats: 4},
			{Name: "UberXL", Multiplier: 1.5, Seats: 6},
			{Name: "Uber Black", Multiplier: 2.0, Seats: 4},
		},
		SurgeChance: 0.10,
		SurgeMax:    2.0,
	}
}

// LyftFare is the simulated Lyft pricing model. Lyft calls surge "primetime".
func LyftFare() Fare {
	return Fare{
		BaseFare:    4.50,
		PerMile:     2.20,
		PerMinute:   0.28,
		MinimumFare: 7.50,
		Vehicles: []Vehicle{
			{Name: "Lyft", Multiplier: 1.0, Seats: 4},
			{Name: "Lyft XL", Multiplier: 1.4, Seats: 6},
			{Name: "Lyft Lux", Multiplier: 1.8, Seats: 4},
		},
		SurgeChance: 0.15,
		SurgeMax:    1.8,
	}
}

// Price returns the estimate for one vehicle, before rounding.
func (f Fare) Price(distanceMiles float64, durationMinutes int, multiplier, surge float64) float64 {
	p := f.BaseFare + distanceMiles*f.PerMile + float64(durationMinutes)*f.PerMinute
	p *= multiplier * surge
	return math.Max(p, f.MinimumFare)
}

// DurationMinutes converts a distance to a trip duration at AverageSpeedMPH.
func DurationMinutes(distanceMiles float64) int {
	return max(int(distanceMiles/AverageSpeedMPH*60), MinDurationMinutes)
}

// TripDistance returns the distance between the resolved endpoints of q, or
// DefaultDistanceMiles when either is missing.
func TripDistance(q domain.RideQuery) float64 {
	if q.OriginPoint == nil || q.DestinationPoint == nil {
		return DefaultDistanceMiles
	}
	return q.OriginPoint.DistanceMiles(*q.DestinationPoint)
}

// quote is one priced vehicle option, independent of wire format.
type quote struct {
	Vehicle   Vehicle
	Low       float64
	High      float64
	Estimate  float64
	Surge     float64
	Duration  int
	PickupETA int
	Distance  float64
	Available bool
	QuotedAt  time.Time
}

// Option configures a simulator.
type Option func(*simulator)

// WithSeed makes the simulator reproducible. Zero keeps it time-seeded.
func WithSeed(seed int64) Option {
	return func(s *simulator) {
		if seed != 0 {
			s.rng = rand.New(rand.NewPCG(uint64(seed), uint64(seed)))
		}
	}
}

// WithClock overrides the timestamp source.
func WithClock(now func() time.Time) Option {
	return func(s *simulator) {
		s.now = now
	}
}

// simulator prices trips with a Fare and a random source.
// It is safe for concurrent use.
type simulator struct {
	fare Fare
	now  func() time.Time

	mu  sync.Mutex
	rng *rand.Rand
}

func newSimulator(fare Fare, opts ...Option) *simulator {
	seed := uint64(time.Now().UnixNano())
	s := &simulator{
		fare: fare,
		now:  time.Now,
		rng:  rand.New(rand.NewPCG(seed, seed>>1)),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// quotes prices every vehicle tier for q. One surge draw applies to the
// whole request; each vehicle gets its own pickup ETA.
func (s *simulator) quotes(q domain.RideQuery) []quote {
	distance := TripDistance(q)
	duration := DurationMinutes(distance)
	passengers := max(q.Passengers, 1)
	now := s.now().UTC()

	s.mu.Lock()
	defer s.mu.Unlock()

	surge := s.surge()
	out := make([]quote, 0, len(s.fare.Vehicles))
	for _, v := range s.fare.Vehicles {
		price := s.fare.Price(distance, duration, v.Multiplier, surge)
		out = append(out, quote{
			Vehicle:   v,
			Low:       round2(price * (1 - priceSpread)),
			High:      round2(price * (1 + priceSpread)),
			Estimate:  round2(price),
			Surge:     surge,
			Duration:  duration,
			PickupETA: MinPickupETA + s.rng.IntN(MaxPickupETA-MinPickupETA+1),
			Distance:  round2(distance),
			Available: passengers <= v.Seats,
			QuotedAt:  now,
		})
	}
	return out
}

// surge must be called with mu held.
func (s *simulator) surge() float64 {
	if s.rng.Float64() >= s.fare.SurgeChance {
		return 1.0
	}
	m := 1.0 + s.rng.Float64()*(s.fare.SurgeMax-1.0)
	return math.Round(m*10) / 10
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
