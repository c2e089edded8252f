// Package google provides shared infrastructure for Google Maps Platform
// providers.
//
// It contains:
//   - Service factories that authenticate with an API key
//   - Error classification for common Google API errors (401, 403, 429)
//   - Client-side pacing to stay under per-project quotas
//
// # Usage
//
//	svc, err := google.NewPlacesService(ctx, apiKey)
//	limiter := google.NewRateLimiter(google.ServicePlaces)
//
// The places subpackage builds the restaurant provider on top of these.
package google
