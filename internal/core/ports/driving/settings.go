package driving

import "github.com/ambrosestarlit/layerex/internal/core/domain"

// SettingsService manages application settings.
type SettingsService interface {
	// Get retrieves current application settings.
	Get() (*domain.Settings, error)

	// Save persists application settings.
	Save(settings *domain.Settings) error

	// SetOutputDir updates the export output directory.
	SetOutputDir(dir string) error

	// SetFormat updates the export image format.
	SetFormat(format string) error

	// SetValue parses and stores a value for one of domain.SettingKeys.
	SetValue(key, raw string) error

	// Reset removes a stored value so its default applies again.
	Reset(key string) error

	// Validate checks the stored settings.
	Validate() error

	// GetDefaults returns default settings.
	GetDefaults() domain.Settings
}
