package driving

import "github.com/custodia-labs/oceanus-cli/internal/core/domain"

// SettingsService manages application settings.
type SettingsService interface {
	// Get retrieves current application settings, with defaults applied
	// for anything unset.
	Get() (domain.Settings, error)

	// Save persists application settings.
	Save(settings domain.Settings) error

	// SetKey updates a single raw configuration key. The value is parsed
	// according to the key's expected type.
	SetKey(key, value string) error
}
