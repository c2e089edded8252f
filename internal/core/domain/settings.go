package domain

import "time"

// AIProvider identifies a language-model service provider.
type AIProvider string

// Available AI providers.
const (
	// AIProviderOllama is a local Ollama instance.
	AIProviderOllama AIProvider = "ollama"

	// AIProviderOpenAI is the OpenAI cloud API.
	AIProviderOpenAI AIProvider = "openai"

	// AIProviderAnthropic is the Anthropic cloud API.
	AIProviderAnthropic AIProvider = "anthropic"
)

// IsValid returns true if the AI provider is recognised.
func (p AIProvider) IsValid() bool {
	switch p {
	case AIProviderOllama, AIProviderOpenAI, AIProviderAnthropic:
		return true
	default:
		return false
	}
}

// RequiresAPIKey returns true if this provider needs an API key.
func (p AIProvider) RequiresAPIKey() bool {
	return p == AIProviderOpenAI || p == AIProviderAnthropic
}

// String returns the string representation.
func (p AIProvider) String() string {
	return string(p)
}

// Description returns a human-readable description of the provider.
func (p AIProvider) Description() string {
	switch p {
	case AIProviderOllama:
		return "Ollama (local)"
	case AIProviderOpenAI:
		return "OpenAI (cloud)"
	case AIProviderAnthropic:
		return "Anthropic (cloud)"
	default:
		return unknownDescription
	}
}

// AllLLMProviders returns providers that support chat completion.
func AllLLMProviders() []AIProvider {
	return []AIProvider{AIProviderOllama, AIProviderOpenAI, AIProviderAnthropic}
}

// DefaultLLMModels returns default models for each LLM provider.
func DefaultLLMModels() map[AIProvider]string {
	return map[AIProvider]string{
		AIProviderOllama:    "llama3.2",
		AIProviderOpenAI:    "gpt-4o-mini",
		AIProviderAnthropic: "claude-3-5-sonnet-latest",
	}
}

// LLMSettings holds LLM provider configuration.
type LLMSettings struct {
	// Provider is the LLM service provider. Empty means no model; every
	// model-backed step uses its deterministic fallback.
	Provider AIProvider

	// Model is the LLM model name.
	Model string

	// BaseURL is the API endpoint (for Ollama or compatible gateways).
	BaseURL string

	// APIKey is the API key (for OpenAI/Anthropic).
	APIKey string

	// Timeout bounds every model call.
	Timeout time.Duration
}

// IsConfigured returns true if the LLM provider is set up.
func (l LLMSettings) IsConfigured() bool {
	if !l.Provider.IsValid() {
		return false
	}
	if l.Provider.RequiresAPIKey() && l.APIKey == "" {
		return false
	}
	return true
}

// Backend selects where shared cache and rate-limit state lives.
type Backend string

// Available backends.
const (
	BackendMemory Backend = "memory"
	BackendRedis  Backend = "redis"
	BackendSQLite Backend = "sqlite"
)

// IsValid returns true if the backend is recognised.
func (b Backend) IsValid() bool {
	switch b {
	case BackendMemory, BackendRedis, BackendSQLite:
		return true
	default:
		return false
	}
}

// CacheSettings configures the cache store.
type CacheSettings struct {
	Backend Backend

	// TTLs per domain. Ride prices are volatile, listings are not.
	RideshareTTL   time.Duration
	RestaurantsTTL time.Duration
	GeocodingTTL   time.Duration

	// SQLitePath is the database file for the sqlite backend.
	SQLitePath string
}

// TTL returns the configured TTL for a domain.
func (c CacheSettings) TTL(d Domain) time.Duration {
	switch d {
	case DomainRideshare:
		return c.RideshareTTL
	case DomainRestaurants:
		return c.RestaurantsTTL
	default:
		return c.RideshareTTL
	}
}

// RateLimit is a fixed-window threshold for one provider.
type RateLimit struct {
	Limit  int
	Window time.Duration
}

// RateLimitSettings configures the rate limiter.
type RateLimitSettings struct {
	// Backend is memory or redis. sqlite is not supported for limiting.
	Backend Backend

	// Limits per provider name. Providers without an entry use Default.
	Limits map[string]RateLimit

	// Default applies to providers without an explicit limit.
	Default RateLimit
}

// For returns the limit configured for provider.
func (r RateLimitSettings) For(provider string) RateLimit {
	if l, ok := r.Limits[provider]; ok {
		return l
	}
	return r.Default
}

// BalancedWeights are the weights of the balanced ride policy. They have no
// derived tuning; both are configurable.
type BalancedWeights struct {
	Price float64
	Time  float64
}

// Default balanced weights.
const (
	DefaultBalancedPriceWeight = 0.6
	DefaultBalancedTimeWeight  = 0.4
)

// ProviderSettings lists the providers each domain queries.
type ProviderSettings struct {
	Rideshare   []string
	Restaurants []string

	// GooglePlacesAPIKey enables the live Google Places adapter.
	GooglePlacesAPIKey string

	// Seed makes mock providers reproducible. Zero means time-seeded.
	Seed int64

	// Timeout bounds every provider and geocoding call.
	Timeout time.Duration
}

// AppSettings holds all application settings.
type AppSettings struct {
	LLM       LLMSettings
	Cache     CacheSettings
	RateLimit RateLimitSettings
	Providers ProviderSettings
	Weights   BalancedWeights

	// EnabledDomains is the routing set, in configuration order.
	EnabledDomains []Domain

	// Geocoder is "nominatim" or "static".
	Geocoder string

	// RedisAddr is used by the redis backends.
	RedisAddr string
}

// DefaultRateLimits returns the built-in per-provider thresholds.
func DefaultRateLimits() map[string]RateLimit {
	return map[string]RateLimit{
		"uber":          {Limit: 1000, Window: time.Hour},
		"lyft":          {Limit: 500, Window: time.Hour},
		"yelp":          {Limit: 5000, Window: 24 * time.Hour},
		"google_places": {Limit: 1000, Window: 24 * time.Hour},
		"nominatim":     {Limit: 60, Window: time.Minute},
	}
}

// DefaultAppSettings returns settings with sensible defaults.
// The LLM is left unconfigured; everything works on fallbacks until one is set.
func DefaultAppSettings() AppSettings {
	return AppSettings{
		LLM: LLMSettings{Timeout: 30 * time.Second},
		Cache: CacheSettings{
			Backend:        BackendMemory,
			RideshareTTL:   5 * time.Minute,
			RestaurantsTTL: time.Hour,
			GeocodingTTL:   24 * time.Hour,
		},
		RateLimit: RateLimitSettings{
			Backend: BackendMemory,
			Limits:  DefaultRateLimits(),
			Default: RateLimit{Limit: 100, Window: time.Minute},
		},
		Providers: ProviderSettings{
			Rideshare:   []string{"uber", "lyft"},
			Restaurants: []string{"yelp", "google_places"},
			Timeout:     10 * time.Second,
		},
		Weights: BalancedWeights{
			Price: DefaultBalancedPriceWeight,
			Time:  DefaultBalancedTimeWeight,
		},
		EnabledDomains: AllDomains(),
		Geocoder:       "static",
		RedisAddr:      "localhost:6379",
	}
}

// CacheStats are counters reported by a cache store.
type CacheStats struct {
	Backend string `json:"backend"`
	Hits    int64  `json:"hits"`
	Misses  int64  `json:"misses"`
	Sets    int64  `json:"sets"`
	Expired int64  `json:"expired"`
	Entries int64  `json:"entries"`
}

// HitRate returns hits over lookups, or 0 when nothing was looked up.
func (s CacheStats) HitRate() float64 {
	total := s.Hits + s.Misses
	if total == 0 {
		return 0
	}
	return float64(s.Hits) / float64(total)
}

// RateWindow is the current fixed window for one provider.
type RateWindow struct {
	Provider    string    `json:"provider"`
	WindowStart time.Time `json:"window_start"`
	Count       int       `json:"count"`
	Threshold   int       `json:"threshold"`
	Rejected    int       `json:"rejected"`
}

// Remaining returns how many calls the window still allows.
func (w RateWindow) Remaining() int {
	if w.Count >= w.Threshold {
		return 0
	}
	return w.Threshold - w.Count
}
