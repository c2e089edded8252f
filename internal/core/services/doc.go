// Package services implements the driving port interfaces.
// Services contain the core business logic and orchestrate
// calls to driven ports (adapters).
//
// Every model-backed step here has a deterministic fallback, and every
// infrastructure failure (cache, rate limiter, provider, geocoder) degrades
// into metadata instead of an error. Only *domain.ValidationError escapes.
package services
