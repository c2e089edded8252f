package driving

import "github.com/hopwise/hopwise/internal/core/domain"

// SettingsService manages application settings.
type SettingsService interface {
	// Get resolves settings from configuration over the defaults.
	Get() (domain.AppSettings, error)

	// Set validates and stores one configuration key.
	Set(key, value string) error

	// Value returns the raw stored value of key.
	Value(key string) (any, bool)

	// Keys lists every stored key.
	Keys() []string

	// GetDefaults returns default settings.
	GetDefaults() domain.AppSettings
}
