// Package yelp provides a simulated Yelp Fusion restaurant provider.
//
// Fetch answers from a static per-cuisine table in the shape of the
// /v3/businesses/search response; Normalize converts that shape into
// domain restaurants.
package yelp

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"math/rand/v2"
	"strings"
	"sync"

	"github.com/hopwise/hopwise/internal/connectors/listings"
	"github.com/hopwise/hopwise/internal/core/domain"
	"github.com/hopwise/hopwise/internal/core/ports/driven"
)

// Ensure Client implements the interface.
var _ driven.RestaurantProvider = (*Client)(nil)

// Name is the provider identifier.
const Name = "yelp"

const (
	metersPerMile = 1609.344

	// Simulated distances in miles.
	minDistance = 0.1
	maxDistance = 3.0

	// openChance is the share of listings reported open now.
	openChance = 0.75
)

// Client simulates Yelp business search. It is safe for concurrent use.
type Client struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewClient creates a simulated Yelp client. A zero seed is time-seeded.
func NewClient(seed int64) *Client {
	return &Client{rng: listings.NewRand(seed)}
}

type searchResponse struct {
	Businesses []business `json:"businesses"`
	Total      int        `json:"total"`
	Region     struct {
		Center coordinates `json:"center"`
	} `json:"region"`
}

type business struct {
	ID           string      `json:"id"`
	Alias        string      `json:"alias"`
	Name         string      `json:"name"`
	Rating       float64     `json:"rating"`
	ReviewCount  int         `json:"review_count"`
	Price        string      `json:"price,omitempty"`
	DisplayPhone string      `json:"display_phone"`
	URL          string      `json:"url"`
	Distance     float64     `json:"distance"` // meters
	Categories   []category  `json:"categories"`
	Coordinates  coordinates `json:"coordinates"`
	Hours        []hours     `json:"hours"`
	Location     struct {
		DisplayAddress []string `json:"display_address"`
	} `json:"location"`
}

type hours struct {
	IsOpenNow bool `json:"is_open_now"`
}

type category struct {
	Alias string `json:"alias"`
	Title string `json:"title"`
}

type coordinates struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// Name returns the provider identifier.
func (c *Client) Name() string { return Name }

// Fetch searches the static table for q.
func (c *Client) Fetch(ctx context.Context, q domain.RestaurantQuery) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	cuisine := listings.CanonicalCuisine(q.Cuisine)
	center := listings.Center(q)
	pool := table.Pool(cuisine)
	if len(pool) > listings.Limit*2 {
		pool = pool[:listings.Limit*2]
	}

	var resp searchResponse
	resp.Region.Center = coordinates{Latitude: center.Lat, Longitude: center.Lng}

	c.mu.Lock()
	defer c.mu.Unlock()

	for _, l := range pool {
		if !listings.Matches(l, q) {
			continue
		}
		distance := listings.Uniform(c.rng, minDistance, maxDistance)
		if distance > q.DistanceMiles {
			continue
		}
		open := c.rng.Float64() < openChance
		if q.OpenNow && !open {
			continue
		}
		resp.Businesses = append(resp.Businesses, c.business(l, cuisine, center, distance, open))
		if len(resp.Businesses) >= listings.Limit {
			break
		}
	}
	resp.Total = len(resp.Businesses)
	return json.Marshal(resp)
}

// business must be called with mu held.
func (c *Client) business(l listings.Listing, cuisine string, center domain.GeoPoint, miles float64, open bool) business {
	alias := listings.Slug(l.Name) + "-new-york"
	pt := listings.Offset(center, miles, c.rng.Float64()*2*math.Pi)

	b := business{
		ID:           alias,
		Alias:        alias,
		Name:         l.Name,
		Rating:       l.Rating,
		ReviewCount:  l.Reviews,
		Price:        l.Price,
		DisplayPhone: listings.Phone(c.rng, phoneAreaCode...),
		URL:          "https://www.yelp.com/biz/" + alias,
		Distance:     miles * metersPerMile,
		Categories: []category{
			{Alias: strings.ToLower(cuisine), Title: cuisine},
			{Alias: "restaurants", Title: "Restaurant"},
		},
		Coordinates: coordinates{Latitude: pt.Lat, Longitude: pt.Lng},
	}
	b.Location.DisplayAddress = []string{
		fmt.Sprintf("%d %s (near %s)", 100+c.rng.IntN(900),
			listings.Pick(c.rng, avenues), listings.Pick(c.rng, crossStreets)),
		"New York, NY 10001",
	}
	b.Hours = []hours{{IsOpenNow: open}}
	return b
}

// Normalize converts a business search payload into restaurants.
func (c *Client) Normalize(payload []byte) ([]domain.Restaurant, error) {
	var resp searchResponse
	if err := json.Unmarshal(payload, &resp); err != nil {
		return nil, fmt.Errorf("yelp: decode payload: %w", err)
	}

	out := make([]domain.Restaurant, 0, len(resp.Businesses))
	for _, b := range resp.Businesses {
		if b.Name == "" {
			return nil, fmt.Errorf("yelp: business %q without name", b.ID)
		}
		r := domain.Restaurant{
			ID:            b.ID,
			Provider:      Name,
			Name:          b.Name,
			Cuisine:       domain.DefaultCuisine,
			Rating:        b.Rating,
			ReviewCount:   b.ReviewCount,
			PriceRange:    b.Price,
			Address:       strings.Join(b.Location.DisplayAddress, ", "),
			DistanceMiles: math.Round(b.Distance/metersPerMile*10) / 10,
			Phone:         b.DisplayPhone,
			Website:       b.URL,
			Coordinates:   &domain.GeoPoint{Lat: b.Coordinates.Latitude, Lng: b.Coordinates.Longitude},
		}
		if len(b.Categories) > 0 {
			r.Cuisine = b.Categories[0].Title
		}
		for _, cat := range b.Categories {
			r.Categories = append(r.Categories, cat.Title)
		}
		if len(b.Hours) > 0 {
			r.IsOpenNow = b.Hours[0].IsOpenNow
		}
		out = append(out, r)
	}
	return out, nil
}
