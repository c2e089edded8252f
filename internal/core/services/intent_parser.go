package services

import (
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/hopwise/hopwise/internal/core/domain"
	"github.com/hopwise/hopwise/internal/core/ports/driven"
	"github.com/hopwise/hopwise/internal/logger"
)

// Preference keys read from domain.QueryContext.Preferences.
const (
	PrefFilterCategory = "filter_category"
	PrefDietary        = "dietary"
	PrefPriceRange     = "price_range"
)

// IntentParser turns free text into validated domain queries. The model is
// asked first; heuristic extraction fills whatever the model could not,
// and replaces it entirely when no model is available.
type IntentParser struct {
	prompter
	model modelClient
}

// NewIntentParser creates a parser. llm is optional (can be nil).
func NewIntentParser(llm driven.LLMService, timeout time.Duration) *IntentParser {
	return &IntentParser{model: newModelClient(llm, timeout)}
}

type rideReply struct {
	Origin      string   `json:"origin"`
	Destination string   `json:"destination"`
	Providers   []string `json:"providers"`
	VehicleType string   `json:"vehicle_type"`
	When        string   `json:"when"`
	Passengers  int      `json:"passengers"`
}

// ParseRide extracts a ride query. The origin defaults to the user's
// location when the text does not give one.
func (p *IntentParser) ParseRide(ctx context.Context, raw string, qctx domain.QueryContext) (domain.RideQuery, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return domain.RideQuery{}, domain.NewValidationError(domain.DomainRideshare, "query", "is empty")
	}

	guess := guessRide(raw)
	q := guess

	var reply rideReply
	outcome := p.model.chatJSON(ctx, p.prompt(driven.PromptParseRide), userMessage(raw, qctx), &reply)
	if outcome.IsOk() {
		logger.Debug("Model ride intent: %+v", reply)
		q = domain.RideQuery{
			Origin:      firstClear(reply.Origin, guess.Origin),
			Destination: firstClear(reply.Destination, guess.Destination),
			Providers:   reply.Providers,
			VehicleType: firstClear(reply.VehicleType, guess.VehicleType),
			When:        reply.When,
			Passengers:  reply.Passengers,
		}
		if len(q.Providers) == 0 {
			q.Providers = guess.Providers
		}
		if q.Passengers == 0 {
			q.Passengers = guess.Passengers
		}
	} else {
		logger.Debug("Ride intent from heuristics: %s", outcome.Reason())
	}

	q.RawQuery = raw
	if isBlank(q.Origin) && qctx.UserLocation != "" {
		q.Origin = qctx.UserLocation
	}
	q.ApplyDefaults()
	if err := q.Validate(); err != nil {
		return q, err
	}
	return q, nil
}

type restaurantReply struct {
	Cuisine             string   `json:"cuisine"`
	Location            string   `json:"location"`
	PriceRange          string   `json:"price_range"`
	RatingMin           float64  `json:"rating_min"`
	DistanceMiles       float64  `json:"distance_miles"`
	PartySize           int      `json:"party_size"`
	DietaryRestrictions []string `json:"dietary_restrictions"`
	OpenNow             bool     `json:"open_now"`
	FilterCategory      string   `json:"filter_category"`
}

// ParseRestaurant extracts a restaurant query. The location defaults to the
// user's location when the text does not give one. An unsupported filter
// category becomes the default category rather than an error.
func (p *IntentParser) ParseRestaurant(
	ctx context.Context, raw string, qctx domain.QueryContext,
) (domain.RestaurantQuery, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return domain.RestaurantQuery{}, domain.NewValidationError(domain.DomainRestaurants, "query", "is empty")
	}

	guess := guessRestaurant(raw)
	q := guess

	var cats []string
	for _, c := range domain.FilterCategories() {
		cats = append(cats, string(c))
	}
	system := fmt.Sprintf(p.prompt(driven.PromptParseRestaurant), strings.Join(cats, ", "))

	var reply restaurantReply
	outcome := p.model.chatJSON(ctx, system, userMessage(raw, qctx), &reply)
	if outcome.IsOk() {
		logger.Debug("Model restaurant intent: %+v", reply)
		q = domain.RestaurantQuery{
			Cuisine:             firstClear(reply.Cuisine, guess.Cuisine),
			Location:            firstClear(reply.Location, guess.Location),
			PriceRange:          firstClear(reply.PriceRange, guess.PriceRange),
			RatingMin:           reply.RatingMin,
			DistanceMiles:       reply.DistanceMiles,
			PartySize:           reply.PartySize,
			DietaryRestrictions: reply.DietaryRestrictions,
			OpenNow:             reply.OpenNow || guess.OpenNow,
			FilterCategory:      domain.FilterCategory(firstClear(reply.FilterCategory, string(guess.FilterCategory))),
		}
		if q.RatingMin == 0 {
			q.RatingMin = guess.RatingMin
		}
		if q.PartySize == 0 {
			q.PartySize = guess.PartySize
		}
		if len(q.DietaryRestrictions) == 0 {
			q.DietaryRestrictions = guess.DietaryRestrictions
		}
	} else {
		logger.Debug("Restaurant intent from heuristics: %s", outcome.Reason())
	}

	q.RawQuery = raw
	if isBlank(q.Location) && qctx.UserLocation != "" {
		q.Location = qctx.UserLocation
	}
	if v := qctx.Preferences[PrefFilterCategory]; v != "" {
		q.FilterCategory = domain.FilterCategory(v)
	}
	if v := qctx.Preferences[PrefPriceRange]; v != "" && q.PriceRange == "" {
		q.PriceRange = v
	}
	if v := qctx.Preferences[PrefDietary]; v != "" {
		q.DietaryRestrictions = appendUnique(q.DietaryRestrictions, splitList(v)...)
	}
	q.ApplyDefaults()
	if err := q.Validate(); err != nil {
		return q, err
	}
	return q, nil
}

var (
	fromToRe      = regexp.MustCompile(`(?i)\bfrom\s+(.+?)\s+to\s+(.+)$`)
	toFromRe      = regexp.MustCompile(`(?i)\bto\s+(.+?)\s+from\s+(.+)$`)
	toRe          = regexp.MustCompile(`(?i)\bto\s+`)
	trailerRe     = regexp.MustCompile(`(?i)(\s+(at|by|around|tonight|tomorrow|now|asap|for|with|please|and)\b.*$|[.?!,;].*$)`)
	passengersRe  = regexp.MustCompile(`(?i)\b(\d+)\s+(people|passengers|persons|of us|adults)\b`)
	locationRe    = regexp.MustCompile(`(?i)\b(?:in|near|around|at)\s+(.+)$`)
	ratingRe      = regexp.MustCompile(`(?i)\b([1-5](?:\.\d)?)\s*\+?\s*stars?\b`)
	partyRe       = regexp.MustCompile(`(?i)\b(?:for|party of|table for)\s+(\d+)\b`)
	dollarRe      = regexp.MustCompile(`\${1,4}`)
	locTrailerRe  = regexp.MustCompile(`(?i)(\s+(for|with|under|that|which|open|tonight|tomorrow|and)\b.*$|[.?!,;].*$)`)
	nearbyPhrases = []string{"nearby", "near me", "around here", "close by", "around me"}
)

var knownCuisines = []string{
	"italian", "chinese", "japanese", "mexican", "indian", "thai", "french", "american",
	"sushi", "pizza", "korean", "mediterranean", "vietnamese", "greek", "spanish", "burgers",
}

var dietaryTerms = []string{"vegetarian", "vegan", "gluten-free", "halal", "kosher", "dairy-free"}

// guessRide extracts what it can from phrases like "from X to Y".
func guessRide(raw string) domain.RideQuery {
	var q domain.RideQuery
	switch {
	case fromToRe.MatchString(raw):
		m := fromToRe.FindStringSubmatch(raw)
		q.Origin, q.Destination = cleanPlace(m[1]), cleanPlace(m[2])
	case toFromRe.MatchString(raw):
		m := toFromRe.FindStringSubmatch(raw)
		q.Destination, q.Origin = cleanPlace(m[1]), cleanPlace(m[2])
	default:
		if locs := toRe.FindAllStringIndex(raw, -1); len(locs) > 0 {
			q.Destination = cleanPlace(raw[locs[len(locs)-1][1]:])
		}
	}

	lower := strings.ToLower(raw)
	for _, p := range domain.DefaultRideProviders() {
		if strings.Contains(lower, p) {
			q.Providers = append(q.Providers, p)
		}
	}
	switch {
	case containsAny(lower, "xl", "suv", "large group", "extra space"):
		q.VehicleType = "xl"
	case containsAny(lower, "black", "lux", "premium", "luxury"):
		q.VehicleType = "premium"
	}
	if m := passengersRe.FindStringSubmatch(raw); m != nil {
		q.Passengers, _ = strconv.Atoi(m[1])
	}
	return q
}

// guessRestaurant extracts cuisine, place and filters from free text.
func guessRestaurant(raw string) domain.RestaurantQuery {
	var q domain.RestaurantQuery
	lower := strings.ToLower(raw)

	for _, c := range knownCuisines {
		if strings.Contains(lower, c) {
			q.Cuisine = strings.ToUpper(c[:1]) + c[1:]
			break
		}
	}
	if !containsAny(lower, nearbyPhrases...) {
		if m := locationRe.FindStringSubmatch(raw); m != nil {
			loc := m[1]
			if i := locTrailerRe.FindStringIndex(loc); i != nil {
				loc = loc[:i[0]]
			}
			q.Location = cleanPlace(loc)
		}
	}

	switch {
	case dollarRe.MatchString(raw):
		q.PriceRange = dollarRe.FindString(raw)
	case containsAny(lower, "cheap", "budget", "inexpensive", "affordable"):
		q.PriceRange = "$$"
	}
	if m := ratingRe.FindStringSubmatch(raw); m != nil {
		q.RatingMin, _ = strconv.ParseFloat(m[1], 64)
	}
	if m := partyRe.FindStringSubmatch(raw); m != nil {
		q.PartySize, _ = strconv.Atoi(m[1])
	}
	q.OpenNow = strings.Contains(lower, "open now")
	for _, d := range dietaryTerms {
		if strings.Contains(lower, d) {
			q.DietaryRestrictions = append(q.DietaryRestrictions, d)
		}
	}

	switch {
	case strings.Contains(lower, "ice cream") || strings.Contains(lower, "gelato"):
		q.FilterCategory = domain.FilterIceCream
	case containsAny(lower, "coffee", "cafe", "café"):
		q.FilterCategory = domain.FilterCafe
	case containsAny(lower, "drinks", "cocktail", "bar ", "wine"):
		q.FilterCategory = domain.FilterDrinks
	default:
		q.FilterCategory = domain.FilterFood
	}
	return q
}

func cleanPlace(s string) string {
	s = strings.TrimSpace(s)
	if i := trailerRe.FindStringIndex(s); i != nil && i[0] > 0 {
		s = s[:i[0]]
	}
	s = strings.TrimSpace(s)
	if strings.HasPrefix(strings.ToLower(s), "the ") {
		s = s[4:]
	}
	return strings.TrimSpace(s)
}

func containsAny(s string, subs ...string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}

func isBlank(s string) bool {
	s = strings.TrimSpace(s)
	return s == "" || strings.EqualFold(s, "unclear") || strings.EqualFold(s, "unknown")
}

// firstClear returns the first value that is neither blank nor UNCLEAR.
func firstClear(values ...string) string {
	for _, v := range values {
		if !isBlank(v) {
			return strings.TrimSpace(v)
		}
	}
	return ""
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func appendUnique(list []string, items ...string) []string {
	for _, it := range items {
		found := false
		for _, existing := range list {
			if strings.EqualFold(existing, it) {
				found = true
				break
			}
		}
		if !found {
			list = append(list, it)
		}
	}
	return list
}
