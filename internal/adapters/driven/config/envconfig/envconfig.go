// Package envconfig applies HOPWISE_* environment overrides on top of
// file-based settings.
package envconfig

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"

	"github.com/hopwise/hopwise/internal/core/domain"
)

// Overrides are the environment variables hopwise honours. Unset variables
// leave the file value alone.
type Overrides struct {
	LLMProvider     *string        `env:"HOPWISE_LLM_PROVIDER"`
	LLMModel        *string        `env:"HOPWISE_LLM_MODEL"`
	LLMBaseURL      *string        `env:"HOPWISE_LLM_BASE_URL"`
	LLMAPIKey       *string        `env:"HOPWISE_LLM_API_KEY"`
	LLMTimeout      *time.Duration `env:"HOPWISE_LLM_TIMEOUT"`
	CacheBackend    *string        `env:"HOPWISE_CACHE_BACKEND"`
	RateBackend     *string        `env:"HOPWISE_RATELIMIT_BACKEND"`
	RedisAddr       *string        `env:"HOPWISE_REDIS_ADDR"`
	SQLitePath      *string        `env:"HOPWISE_SQLITE_PATH"`
	PlacesAPIKey    *string        `env:"HOPWISE_GOOGLE_PLACES_API_KEY"`
	ProviderSeed    *int64         `env:"HOPWISE_PROVIDER_SEED"`
	ProviderTimeout *time.Duration `env:"HOPWISE_PROVIDER_TIMEOUT"`
	Geocoder        *string        `env:"HOPWISE_GEOCODER"`
	Domains         []string       `env:"HOPWISE_DOMAINS" envSeparator:","`
}

// Parse reads overrides from the process environment.
func Parse() (Overrides, error) {
	var o Overrides
	if err := env.Parse(&o); err != nil {
		return o, fmt.Errorf("parse env: %w", err)
	}
	return o, nil
}

// ParseFrom reads overrides from an explicit environment, for tests.
func ParseFrom(environ map[string]string) (Overrides, error) {
	var o Overrides
	if err := env.ParseWithOptions(&o, env.Options{Environment: environ}); err != nil {
		return o, fmt.Errorf("parse env: %w", err)
	}
	return o, nil
}

// Apply writes every set override into s. Invalid enum values are rejected
// rather than silently ignored.
func (o Overrides) Apply(s *domain.AppSettings) error {
	if o.LLMProvider != nil {
		p := domain.AIProvider(*o.LLMProvider)
		if !p.IsValid() {
			return fmt.Errorf("HOPWISE_LLM_PROVIDER: unsupported provider %q", p)
		}
		s.LLM.Provider = p
		if o.LLMModel == nil {
			s.LLM.Model = domain.DefaultLLMModels()[p]
		}
	}
	setString(&s.LLM.Model, o.LLMModel)
	setString(&s.LLM.BaseURL, o.LLMBaseURL)
	setString(&s.LLM.APIKey, o.LLMAPIKey)
	if o.LLMTimeout != nil && *o.LLMTimeout > 0 {
		s.LLM.Timeout = *o.LLMTimeout
	}

	if o.CacheBackend != nil {
		b := domain.Backend(*o.CacheBackend)
		if !b.IsValid() {
			return fmt.Errorf("HOPWISE_CACHE_BACKEND: unsupported backend %q", b)
		}
		s.Cache.Backend = b
	}
	if o.RateBackend != nil {
		b := domain.Backend(*o.RateBackend)
		if b != domain.BackendMemory && b != domain.BackendRedis {
			return fmt.Errorf("HOPWISE_RATELIMIT_BACKEND: unsupported backend %q", b)
		}
		s.RateLimit.Backend = b
	}

	setString(&s.RedisAddr, o.RedisAddr)
	setString(&s.Cache.SQLitePath, o.SQLitePath)
	setString(&s.Providers.GooglePlacesAPIKey, o.PlacesAPIKey)
	if o.ProviderSeed != nil {
		s.Providers.Seed = *o.ProviderSeed
	}
	if o.ProviderTimeout != nil && *o.ProviderTimeout > 0 {
		s.Providers.Timeout = *o.ProviderTimeout
	}
	setString(&s.Geocoder, o.Geocoder)

	if len(o.Domains) > 0 {
		domains := make([]domain.Domain, 0, len(o.Domains))
		for _, name := range o.Domains {
			d, err := domain.ParseDomain(name)
			if err != nil {
				return fmt.Errorf("HOPWISE_DOMAINS: %q: %w", name, err)
			}
			domains = append(domains, d)
		}
		s.EnabledDomains = domains
	}
	return nil
}

func setString(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}
