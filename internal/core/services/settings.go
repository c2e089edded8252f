package services

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/hopwise/hopwise/internal/core/domain"
	"github.com/hopwise/hopwise/internal/core/ports/driven"
	"github.com/hopwise/hopwise/internal/core/ports/driving"
)

// Ensure SettingsService implements the interface.
var _ driving.SettingsService = (*SettingsService)(nil)

// Config keys for settings storage.
//
//nolint:gosec // G101: These are config key names, not actual credentials.
const (
	keyLLMProvider       = "llm.provider"
	keyLLMModel          = "llm.model"
	keyLLMBaseURL        = "llm.base_url"
	keyLLMAPIKey         = "llm.api_key"
	keyLLMTimeout        = "llm.timeout"
	keyCacheBackend      = "cache.backend"
	keyCacheRideTTL      = "cache.rideshare_ttl"
	keyCacheRestTTL      = "cache.restaurants_ttl"
	keyCacheGeoTTL       = "cache.geocoding_ttl"
	keyCacheSQLitePath   = "cache.sqlite_path"
	keyRateBackend       = "ratelimit.backend"
	keyRateDefaultLimit  = "ratelimit.default.limit"
	keyRateDefaultWindow = "ratelimit.default.window"
	keyRideProviders     = "providers.rideshare"
	keyRestProviders     = "providers.restaurants"
	keyPlacesAPIKey      = "providers.google_places_api_key"
	keyProviderSeed      = "providers.seed"
	keyProviderTimeout   = "providers.timeout"
	keyWeightPrice       = "weights.price"
	keyWeightTime        = "weights.time"
	keyDomainsEnabled    = "domains.enabled"
	keyGeocoder          = "geocoding.provider"
	keyRedisAddr         = "redis.addr"

	rateLimitPrefix = "ratelimit."
)

type valueKind int

const (
	kindString valueKind = iota
	kindInt
	kindFloat
	kindDuration
	kindList
)

// knownKeys drives validation for Set. Per-provider rate limits
// (ratelimit.<provider>.limit|window) are matched separately.
var knownKeys = map[string]valueKind{
	keyLLMProvider:       kindString,
	keyLLMModel:          kindString,
	keyLLMBaseURL:        kindString,
	keyLLMAPIKey:         kindString,
	keyLLMTimeout:        kindDuration,
	keyCacheBackend:      kindString,
	keyCacheRideTTL:      kindDuration,
	keyCacheRestTTL:      kindDuration,
	keyCacheGeoTTL:       kindDuration,
	keyCacheSQLitePath:   kindString,
	keyRateBackend:       kindString,
	keyRateDefaultLimit:  kindInt,
	keyRateDefaultWindow: kindDuration,
	keyRideProviders:     kindList,
	keyRestProviders:     kindList,
	keyPlacesAPIKey:      kindString,
	keyProviderSeed:      kindInt,
	keyProviderTimeout:   kindDuration,
	keyWeightPrice:       kindFloat,
	keyWeightTime:        kindFloat,
	keyDomainsEnabled:    kindList,
	keyGeocoder:          kindString,
	keyRedisAddr:         kindString,
}

// SettingsService resolves application settings from a ConfigStore.
type SettingsService struct {
	configStore driven.ConfigStore
}

// NewSettingsService creates a new settings service.
func NewSettingsService(configStore driven.ConfigStore) *SettingsService {
	return &SettingsService{configStore: configStore}
}

// GetDefaults returns default settings.
func (s *SettingsService) GetDefaults() domain.AppSettings {
	return domain.DefaultAppSettings()
}

// Get resolves settings. Missing or invalid values keep their defaults.
func (s *SettingsService) Get() (domain.AppSettings, error) {
	settings := domain.DefaultAppSettings()

	settings.LLM.Provider = s.getProvider(keyLLMProvider, settings.LLM.Provider)
	settings.LLM.Model = s.getString(keyLLMModel, domain.DefaultLLMModels()[settings.LLM.Provider])
	settings.LLM.BaseURL = s.configStore.GetString(keyLLMBaseURL)
	settings.LLM.APIKey = s.configStore.GetString(keyLLMAPIKey)
	settings.LLM.Timeout = s.getDuration(keyLLMTimeout, settings.LLM.Timeout)

	settings.Cache.Backend = s.getBackend(keyCacheBackend, settings.Cache.Backend)
	settings.Cache.RideshareTTL = s.getDuration(keyCacheRideTTL, settings.Cache.RideshareTTL)
	settings.Cache.RestaurantsTTL = s.getDuration(keyCacheRestTTL, settings.Cache.RestaurantsTTL)
	settings.Cache.GeocodingTTL = s.getDuration(keyCacheGeoTTL, settings.Cache.GeocodingTTL)
	settings.Cache.SQLitePath = s.configStore.GetString(keyCacheSQLitePath)

	settings.RateLimit.Backend = s.getBackend(keyRateBackend, settings.RateLimit.Backend)
	settings.RateLimit.Default = domain.RateLimit{
		Limit:  s.getInt(keyRateDefaultLimit, settings.RateLimit.Default.Limit),
		Window: s.getDuration(keyRateDefaultWindow, settings.RateLimit.Default.Window),
	}
	for provider, limit := range s.providerLimits() {
		base := settings.RateLimit.For(provider)
		if limit.Limit == 0 {
			limit.Limit = base.Limit
		}
		if limit.Window == 0 {
			limit.Window = base.Window
		}
		settings.RateLimit.Limits[provider] = limit
	}

	settings.Providers.Rideshare = s.getList(keyRideProviders, settings.Providers.Rideshare)
	settings.Providers.Restaurants = s.getList(keyRestProviders, settings.Providers.Restaurants)
	settings.Providers.GooglePlacesAPIKey = s.configStore.GetString(keyPlacesAPIKey)
	settings.Providers.Seed = int64(s.configStore.GetInt(keyProviderSeed))
	settings.Providers.Timeout = s.getDuration(keyProviderTimeout, settings.Providers.Timeout)

	if _, ok := s.configStore.Get(keyWeightPrice); ok {
		settings.Weights.Price = s.configStore.GetFloat(keyWeightPrice)
	}
	if _, ok := s.configStore.Get(keyWeightTime); ok {
		settings.Weights.Time = s.configStore.GetFloat(keyWeightTime)
	}

	if names := s.configStore.GetStringSlice(keyDomainsEnabled); len(names) > 0 {
		domains := make([]domain.Domain, 0, len(names))
		for _, name := range names {
			d, err := domain.ParseDomain(name)
			if err != nil {
				return settings, fmt.Errorf("%s: %w", keyDomainsEnabled, err)
			}
			domains = append(domains, d)
		}
		settings.EnabledDomains = domains
	}

	settings.Geocoder = s.getString(keyGeocoder, settings.Geocoder)
	settings.RedisAddr = s.getString(keyRedisAddr, settings.RedisAddr)

	return settings, nil
}

// Set validates value against the key's type and stores it typed.
func (s *SettingsService) Set(key, value string) error {
	key = strings.ToLower(strings.TrimSpace(key))
	kind, ok := knownKeys[key]
	if !ok {
		kind, ok = providerLimitKind(key)
	}
	if !ok {
		return fmt.Errorf("%w: unknown config key %q", domain.ErrInvalidInput, key)
	}

	typed, err := parseValue(kind, value)
	if err != nil {
		return fmt.Errorf("%w: %s: %w", domain.ErrInvalidInput, key, err)
	}
	if err := validateValue(key, typed); err != nil {
		return fmt.Errorf("%w: %s: %w", domain.ErrInvalidInput, key, err)
	}

	if err := s.configStore.Set(key, typed); err != nil {
		return fmt.Errorf("save %s: %w", key, err)
	}
	return nil
}

// Value returns the raw stored value of key.
func (s *SettingsService) Value(key string) (any, bool) {
	return s.configStore.Get(key)
}

// Keys lists every stored key.
func (s *SettingsService) Keys() []string {
	return s.configStore.Keys()
}

func providerLimitKind(key string) (valueKind, bool) {
	rest, ok := strings.CutPrefix(key, rateLimitPrefix)
	if !ok {
		return 0, false
	}
	provider, field, ok := strings.Cut(rest, ".")
	if !ok || provider == "" || strings.Contains(field, ".") {
		return 0, false
	}
	switch field {
	case "limit":
		return kindInt, true
	case "window":
		return kindDuration, true
	default:
		return 0, false
	}
}

func parseValue(kind valueKind, value string) (any, error) {
	value = strings.TrimSpace(value)
	switch kind {
	case kindInt:
		n, err := strconv.ParseInt(value, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("not an integer: %q", value)
		}
		return n, nil
	case kindFloat:
		f, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return nil, fmt.Errorf("not a number: %q", value)
		}
		return f, nil
	case kindDuration:
		d, err := time.ParseDuration(value)
		if err != nil || d <= 0 {
			return nil, fmt.Errorf("not a positive duration: %q", value)
		}
		return d.String(), nil
	case kindList:
		var out []string
		for _, part := range strings.Split(value, ",") {
			if part = strings.ToLower(strings.TrimSpace(part)); part != "" {
				out = append(out, part)
			}
		}
		return out, nil
	default:
		return value, nil
	}
}

func validateValue(key string, value any) error {
	switch key {
	case keyLLMProvider:
		if v := value.(string); v != "" && !domain.AIProvider(v).IsValid() {
			return fmt.Errorf("unsupported provider %q", v)
		}
	case keyCacheBackend:
		if !domain.Backend(value.(string)).IsValid() {
			return fmt.Errorf("unsupported backend %q", value)
		}
	case keyRateBackend:
		if b := domain.Backend(value.(string)); b != domain.BackendMemory && b != domain.BackendRedis {
			return fmt.Errorf("unsupported backend %q", value)
		}
	case keyDomainsEnabled:
		for _, name := range value.([]string) {
			if _, err := domain.ParseDomain(name); err != nil {
				return err
			}
		}
	case keyGeocoder:
		if v := value.(string); v != "nominatim" && v != "static" {
			return fmt.Errorf("unsupported geocoder %q", v)
		}
	case keyWeightPrice, keyWeightTime:
		if v := value.(float64); v < 0 {
			return fmt.Errorf("weight must not be negative")
		}
	}
	return nil
}

// providerLimits reads ratelimit.<provider>.limit|window keys.
func (s *SettingsService) providerLimits() map[string]domain.RateLimit {
	out := make(map[string]domain.RateLimit)
	for _, key := range s.configStore.Keys() {
		if _, ok := providerLimitKind(key); !ok {
			continue
		}
		provider, field, _ := strings.Cut(strings.TrimPrefix(key, rateLimitPrefix), ".")
		if provider == "default" {
			continue
		}
		limit := out[provider]
		if field == "limit" {
			limit.Limit = s.configStore.GetInt(key)
		} else {
			limit.Window = s.configStore.GetDuration(key)
		}
		out[provider] = limit
	}
	return out
}

// Helper methods for reading config with defaults.

func (s *SettingsService) getString(key, defaultVal string) string {
	val := s.configStore.GetString(key)
	if val == "" {
		return defaultVal
	}
	return val
}

func (s *SettingsService) getInt(key string, defaultVal int) int {
	val := s.configStore.GetInt(key)
	if val == 0 {
		return defaultVal
	}
	return val
}

func (s *SettingsService) getDuration(key string, defaultVal time.Duration) time.Duration {
	val := s.configStore.GetDuration(key)
	if val <= 0 {
		return defaultVal
	}
	return val
}

func (s *SettingsService) getList(key string, defaultVal []string) []string {
	val := s.configStore.GetStringSlice(key)
	if len(val) == 0 {
		return defaultVal
	}
	return val
}

func (s *SettingsService) getProvider(key string, defaultVal domain.AIProvider) domain.AIProvider {
	provider := domain.AIProvider(s.configStore.GetString(key))
	if !provider.IsValid() {
		return defaultVal
	}
	return provider
}

func (s *SettingsService) getBackend(key string, defaultVal domain.Backend) domain.Backend {
	backend := domain.Backend(s.configStore.GetString(key))
	if !backend.IsValid() {
		return defaultVal
	}
	return backend
}
