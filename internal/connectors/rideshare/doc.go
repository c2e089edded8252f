// Package rideshare provides simulated Uber and Lyft provider adapters.
//
// Both adapters share one fare model (base fare, per-mile and per-minute
// rates, a minimum fare and per-vehicle multipliers) but emit payloads in
// each provider's own wire shape, so Normalize is the only place that knows
// how an Uber or Lyft response looks.
//
// # Determinism
//
// Surge pricing and pickup ETAs are random. Pass WithSeed to make a
// simulator reproducible:
//
//	uber := rideshare.NewUber(rideshare.WithSeed(42))
//	payload, err := uber.Fetch(ctx, query)
//	estimates, err := uber.Normalize(payload)
//
// When the query carries no resolved coordinates the trip is assumed to be
// DefaultDistanceMiles long.
package rideshare
