package services

import (
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/ambrosestarlit/layerex/internal/core/domain"
	"github.com/ambrosestarlit/layerex/internal/core/ports/driven"
	"github.com/ambrosestarlit/layerex/internal/core/ports/driving"
)

// Ensure SettingsService implements the interface.
var _ driving.SettingsService = (*SettingsService)(nil)

// SettingsService manages application settings.
type SettingsService struct {
	configStore driven.ConfigStore
}

// NewSettingsService creates a new settings service.
func NewSettingsService(configStore driven.ConfigStore) *SettingsService {
	return &SettingsService{configStore: configStore}
}

// Get retrieves current application settings.
func (s *SettingsService) Get() (*domain.Settings, error) {
	defaults := domain.DefaultSettings()

	settings := &domain.Settings{
		Export: domain.ExportSettings{
			OutputDir:        s.getString(domain.SettingOutputDir, defaults.Export.OutputDir),
			Format:           s.getFormat(defaults.Export.Format),
			FullCanvas:       s.getBool(domain.SettingFullCanvas, defaults.Export.FullCanvas),
			SingleFileDirect: s.getBool(domain.SettingSingleFileDirect, defaults.Export.SingleFileDirect),
		},
		Preview: domain.PreviewSettings{
			MaxSize: s.getInt(domain.SettingPreviewMaxSize, defaults.Preview.MaxSize),
		},
		History: domain.HistorySettings{
			Enabled: s.getBool(domain.SettingHistoryEnabled, defaults.History.Enabled),
		},
	}

	return settings, nil
}

// Save persists application settings.
func (s *SettingsService) Save(settings *domain.Settings) error {
	if err := s.configStore.Set(domain.SettingOutputDir, settings.Export.OutputDir); err != nil {
		return fmt.Errorf("save output dir: %w", err)
	}
	if err := s.configStore.Set(domain.SettingFormat, settings.Export.Format); err != nil {
		return fmt.Errorf("save format: %w", err)
	}
	if err := s.configStore.Set(domain.SettingFullCanvas, settings.Export.FullCanvas); err != nil {
		return fmt.Errorf("save full canvas: %w", err)
	}
	if err := s.configStore.Set(domain.SettingSingleFileDirect, settings.Export.SingleFileDirect); err != nil {
		return fmt.Errorf("save single file direct: %w", err)
	}
	if err := s.configStore.Set(domain.SettingPreviewMaxSize, settings.Preview.MaxSize); err != nil {
		return fmt.Errorf("save preview max size: %w", err)
	}
	if err := s.configStore.Set(domain.SettingHistoryEnabled, settings.History.Enabled); err != nil {
		return fmt.Errorf("save history enabled: %w", err)
	}

	return nil
}

// SetOutputDir updates the export output directory.
func (s *SettingsService) SetOutputDir(dir string) error {
	if dir == "" {
		return fmt.Errorf("%w: output directory is empty", domain.ErrInvalidInput)
	}

	settings, err := s.Get()
	if err != nil {
		return err
	}
	settings.Export.OutputDir = dir
	return s.Save(settings)
}

// SetFormat updates the export image format.
func (s *SettingsService) SetFormat(format string) error {
	if !domain.IsValidFormat(format) {
		return fmt.Errorf("%w: %s", domain.ErrUnsupportedFormat, format)
	}

	settings, err := s.Get()
	if err != nil {
		return err
	}
	settings.Export.Format = format
	return s.Save(settings)
}

// SetValue parses a raw string for a known key and stores it.
func (s *SettingsService) SetValue(key, raw string) error {
	settings, err := s.Get()
	if err != nil {
		return err
	}

	switch key {
	case domain.SettingOutputDir:
		return s.SetOutputDir(raw)
	case domain.SettingFormat:
		return s.SetFormat(strings.ToLower(raw))
	case domain.SettingFullCanvas:
		settings.Export.FullCanvas, err = parseBool(key, raw)
	case domain.SettingSingleFileDirect:
		settings.Export.SingleFileDirect, err = parseBool(key, raw)
	case domain.SettingHistoryEnabled:
		settings.History.Enabled, err = parseBool(key, raw)
	case domain.SettingPreviewMaxSize:
		var n int
		n, err = strconv.Atoi(raw)
		if err == nil && n < 0 {
			err = fmt.Errorf("%w: %s must not be negative", domain.ErrInvalidInput, key)
		} else if err != nil {
			err = fmt.Errorf("%w: %s expects an integer, got %q", domain.ErrInvalidInput, key, raw)
		}
		settings.Preview.MaxSize = n
	default:
		return fmt.Errorf("%w: unknown setting %q", domain.ErrNotFound, key)
	}
	if err != nil {
		return err
	}

	return s.Save(settings)
}

// Reset removes a stored value so its default applies again.
func (s *SettingsService) Reset(key string) error {
	if !slices.Contains(domain.SettingKeys(), key) {
		return fmt.Errorf("%w: unknown setting %q", domain.ErrNotFound, key)
	}
	if err := s.configStore.Delete(key); err != nil {
		return fmt.Errorf("reset %s: %w", key, err)
	}
	return nil
}

// Validate checks the raw stored values, before defaults are applied.
func (s *SettingsService) Validate() error {
	if format := s.configStore.GetString(domain.SettingFormat); format != "" && !domain.IsValidFormat(format) {
		return fmt.Errorf("%w: %s = %q", domain.ErrUnsupportedFormat, domain.SettingFormat, format)
	}
	if size := s.configStore.GetInt(domain.SettingPreviewMaxSize); size < 0 {
		return fmt.Errorf("%w: %s must not be negative", domain.ErrInvalidInput, domain.SettingPreviewMaxSize)
	}
	return nil
}

// GetDefaults returns default settings.
func (s *SettingsService) GetDefaults() domain.Settings {
	return domain.DefaultSettings()
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
	if _, exists := s.configStore.Get(key); !exists {
		return defaultVal
	}
	return s.configStore.GetInt(key)
}

func (s *SettingsService) getBool(key string, defaultVal bool) bool {
	if _, exists := s.configStore.Get(key); !exists {
		return defaultVal
	}
	return s.configStore.GetBool(key)
}

func parseBool(key, raw string) (bool, error) {
	b, err := strconv.ParseBool(raw)
	if err != nil {
		return false, fmt.Errorf("%w: %s expects true or false, got %q", domain.ErrInvalidInput, key, raw)
	}
	return b, nil
}

func (s *SettingsService) getFormat(defaultVal string) string {
	val := s.configStore.GetString(domain.SettingFormat)
	if !domain.IsValidFormat(val) {
		return defaultVal
	}
	return val
}
