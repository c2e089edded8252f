package domain

import "strings"

const unknownDescription = "Unknown"

// Domain identifies a self-contained business capability. The set is
// fixed at build time; routing never produces a value outside it.
type Domain string

// Available domains.
const (
	// DomainRideshare compares ride estimates across ride-hailing providers.
	DomainRideshare Domain = "rideshare"

	// DomainRestaurants searches and ranks restaurants.
	DomainRestaurants Domain = "restaurants"
)

// AllDomains returns every known domain in configuration order.
func AllDomains() []Domain {
	return []Domain{DomainRideshare, DomainRestaurants}
}

// ParseDomain converts a string into a Domain.
func ParseDomain(s string) (Domain, error) {
	d := Domain(strings.ToLower(strings.TrimSpace(s)))
	if !d.IsValid() {
		return "", ErrUnknownDomain
	}
	return d, nil
}

// IsValid returns true if the domain is recognised.
func (d Domain) IsValid() bool {
	switch d {
	case DomainRideshare, DomainRestaurants:
		return true
	default:
		return false
	}
}

// String returns the string representation.
func (d Domain) String() string {
	return string(d)
}

// Description is the one-line summary shown to the routing model.
func (d Domain) Description() string {
	switch d {
	case DomainRideshare:
		return "Compare ride-hailing options (Uber, Lyft) between two places by price, time and value"
	case DomainRestaurants:
		return "Find and rank restaurants, cafes and food places by cuisine, location, price and rating"
	default:
		return unknownDescription
	}
}

// Keywords returns the lower-case substrings that route a query to the domain
// without consulting a model.
func (d Domain) Keywords() []string {
	switch d {
	case DomainRideshare:
		return []string{"ride", "uber", "lyft", "taxi", "transport", "drive", "car", "get to", "go to"}
	case DomainRestaurants:
		return []string{"restaurant", "food", "eat", "dining", "lunch", "dinner", "cuisine", "meal"}
	default:
		return nil
	}
}

// Priority is a named ranking policy selectable per request.
type Priority string

// Available priorities.
const (
	PriorityBalanced Priority = "balanced"
	PriorityPrice    Priority = "price"
	PriorityTime     Priority = "time"
	PriorityRating   Priority = "rating"
	PriorityDistance Priority = "distance"
)

// AllPriorities returns every priority policy, balanced first.
func AllPriorities() []Priority {
	return []Priority{PriorityBalanced, PriorityPrice, PriorityTime, PriorityRating, PriorityDistance}
}

// ParsePriority normalises s, returning PriorityBalanced for anything unknown.
func ParsePriority(s string) Priority {
	p := Priority(strings.ToLower(strings.TrimSpace(s)))
	if !p.IsValid() {
		return PriorityBalanced
	}
	return p
}

// IsValid returns true if the priority is recognised.
func (p Priority) IsValid() bool {
	switch p {
	case PriorityBalanced, PriorityPrice, PriorityTime, PriorityRating, PriorityDistance:
		return true
	default:
		return false
	}
}

// String returns the string representation.
func (p Priority) String() string {
	return string(p)
}

// Description returns a human-readable description of the policy.
func (p Priority) Description() string {
	switch p {
	case PriorityBalanced:
		return "Best overall value"
	case PriorityPrice:
		return "Cheapest option"
	case PriorityTime:
		return "Fastest option"
	case PriorityRating:
		return "Highest rated option"
	case PriorityDistance:
		return "Closest well-rated option"
	default:
		return unknownDescription
	}
}
