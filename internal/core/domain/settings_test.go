package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestAIProvider_IsValid(t *testing.T) {
	tests := []struct {
		provider AIProvider
		want     bool
	}{
		{AIProviderOllama, true},
		{AIProviderOpenAI, true},
		{AIProviderAnthropic, true},
		{"", false},
		{"gemini", false},
	}
	for _, tt := range tests {
		t.Run(string(tt.provider), func(t *testing.T) {
			assert.Equal(t, tt.want, tt.provider.IsValid())
		})
	}
}

func TestAIProvider_RequiresAPIKey(t *testing.T) {
	assert.False(t, AIProviderOllama.RequiresAPIKey())
	assert.True(t, AIProviderOpenAI.RequiresAPIKey())
	assert.True(t, AIProviderAnthropic.RequiresAPIKey())
}

func TestAIProvider_Description(t *testing.T) {
	assert.Equal(t, "Ollama (local)", AIProviderOllama.Description())
	assert.Equal(t, "OpenAI (cloud)", AIProviderOpenAI.Description())
	assert.Equal(t, "Anthropic (cloud)", AIProviderAnthropic.Description())
	assert.Equal(t, unknownDescription, AIProvider("invalid").Description())
	assert.Equal(t, "openai", AIProviderOpenAI.String())
}

func TestDefaultLLMModels(t *testing.T) {
	models := DefaultLLMModels()
	for _, p := range AllLLMProviders() {
		assert.NotEmpty(t, models[p], p)
	}
}

func TestLLMSettings_IsConfigured(t *testing.T) {
	tests := []struct {
		name     string
		settings LLMSettings
		want     bool
	}{
		{"empty", LLMSettings{}, false},
		{"ollama without key", LLMSettings{Provider: AIProviderOllama}, true},
		{"openai without key", LLMSettings{Provider: AIProviderOpenAI}, false},
		{"openai with key", LLMSettings{Provider: AIProviderOpenAI, APIKey: "sk"}, true},
		{"anthropic with key", LLMSettings{Provider: AIProviderAnthropic, APIKey: "sk"}, true},
		{"unknown provider", LLMSettings{Provider: "gemini", APIKey: "k"}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.settings.IsConfigured())
		})
	}
}

func TestBackend_IsValid(t *testing.T) {
	for _, b := range []Backend{BackendMemory, BackendRedis, BackendSQLite} {
		assert.True(t, b.IsValid(), b)
	}
	assert.False(t, Backend("etcd").IsValid())
	assert.False(t, Backend("").IsValid())
}

func TestCacheSettings_TTL(t *testing.T) {
	c := CacheSettings{RideshareTTL: time.Minute, RestaurantsTTL: time.Hour}
	assert.Equal(t, time.Minute, c.TTL(DomainRideshare))
	assert.Equal(t, time.Hour, c.TTL(DomainRestaurants))
	assert.Equal(t, time.Minute, c.TTL("flights"))
}

func TestRateLimitSettings_For(t *testing.T) {
	r := RateLimitSettings{
		Limits:  map[string]RateLimit{"uber": {Limit: 2, Window: time.Second}},
		Default: RateLimit{Limit: 9, Window: time.Minute},
	}
	assert.Equal(t, RateLimit{Limit: 2, Window: time.Second}, r.For("uber"))
	assert.Equal(t, RateLimit{Limit: 9, Window: time.Minute}, r.For("lyft"))
}

func TestDefaultAppSettings(t *testing.T) {
	s := DefaultAppSettings()

	assert.False(t, s.LLM.IsConfigured(), "no model until one is configured")
	assert.Equal(t, 30*time.Second, s.LLM.Timeout)
	assert.Equal(t, BackendMemory, s.Cache.Backend)
	assert.Equal(t, BackendMemory, s.RateLimit.Backend)
	assert.Equal(t, 5*time.Minute, s.Cache.RideshareTTL)
	assert.Equal(t, time.Hour, s.Cache.RestaurantsTTL)
	assert.Equal(t, []string{"uber", "lyft"}, s.Providers.Rideshare)
	assert.Equal(t, []string{"yelp", "google_places"}, s.Providers.Restaurants)
	assert.Equal(t, AllDomains(), s.EnabledDomains)
	assert.Equal(t, "static", s.Geocoder)
	assert.InDelta(t, 1.0, s.Weights.Price+s.Weights.Time, 1e-9)

	for _, name := range append(s.Providers.Rideshare, s.Providers.Restaurants...) {
		assert.Positive(t, s.RateLimit.For(name).Limit, name)
	}
}

func TestCacheStats_HitRate(t *testing.T) {
	assert.Zero(t, CacheStats{}.HitRate())
	assert.InDelta(t, 0.75, CacheStats{Hits: 3, Misses: 1}.HitRate(), 1e-9)
}

func TestRateWindow_Remaining(t *testing.T) {
	assert.Equal(t, 7, RateWindow{Count: 3, Threshold: 10}.Remaining())
	assert.Zero(t, RateWindow{Count: 10, Threshold: 10}.Remaining())
	assert.Zero(t, RateWindow{Count: 12, Threshold: 10}.Remaining())
}
