// Package domain defines the core business entities for Hopwise.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - Domain: A build-time fixed business capability (rides, restaurants)
//   - RideQuery / RestaurantQuery: Validated, structured user intents
//   - RideEstimate / Restaurant: Normalised provider results
//   - HandlerResult: The caller-facing outcome of one domain pipeline
//   - RoutingDecision: The ordered domains chosen for a raw query
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
package domain
