// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
//   - CacheStore: TTL key/value store shared by every pipeline
//   - RateLimiter: Fixed-window per-provider call counter
//   - ProviderAdapter: Fetches and normalises one provider's options
//   - Geocoder: Resolves place names to coordinates
//   - ConfigStore: Application configuration
//
// # Optional Interfaces
//
// These can be nil - the application degrades gracefully:
//
//   - LLMService: Without it, intent parsing uses heuristics, routing uses
//     keywords, and comparison uses deterministic rules.
//   - PromptStore: Without it, built-in prompts are used.
//   - Metrics: Without it, nothing is recorded.
//   - CachePurger: Implemented by stores that keep expired entries; the
//     scheduler sweeps them periodically.
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter package
package driven
