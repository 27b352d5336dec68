package domain

const unknownDescription = "Unknown"

// Image format tags understood by the encoder.
const (
	FormatPNG  = "png"
	FormatBMP  = "bmp"
	FormatTIFF = "tiff"
)

// AllFormats returns the supported image format tags.
func AllFormats() []string {
	return []string{FormatPNG, FormatBMP, FormatTIFF}
}

// IsValidFormat returns true if the format tag is supported.
func IsValidFormat(format string) bool {
	for _, f := range AllFormats() {
		if f == format {
			return true
		}
	}
	return false
}

// Settings holds all user-configurable options.
type Settings struct {
	Export  ExportSettings
	Preview PreviewSettings
	History HistorySettings
}

// ExportSettings configures export runs.
type ExportSettings struct {
	// OutputDir is where artifacts are written.
	OutputDir string

	// Format is the image format tag for layer images and composites.
	Format string

	// FullCanvas renders individual layers at document size.
	// When false they are cropped to the layer's own size.
	FullCanvas bool

	// SingleFileDirect saves a lone individual export without an archive.
	SingleFileDirect bool
}

// PreviewSettings configures layer previews.
type PreviewSettings struct {
	// MaxSize bounds the longest side of a preview image. 0 disables scaling.
	MaxSize int
}

// HistorySettings configures the export history.
type HistorySettings struct {
	// Enabled records each export run.
	Enabled bool
}

// DefaultSettings returns the settings used when nothing is configured.
func DefaultSettings() Settings {
	return Settings{
		Export: ExportSettings{
			OutputDir:        ".",
			Format:           FormatPNG,
			FullCanvas:       true,
			SingleFileDirect: true,
		},
		Preview: PreviewSettings{
			MaxSize: 512,
		},
		History: HistorySettings{
			Enabled: true,
		},
	}
}

// Config keys for settings storage, in dot notation.
const (
	SettingOutputDir        = "export.output_dir"
	SettingFormat           = "export.format"
	SettingFullCanvas       = "export.full_canvas"
	SettingSingleFileDirect = "export.single_file_direct"
	SettingPreviewMaxSize   = "preview.max_size"
	SettingHistoryEnabled   = "history.enabled"
)

// SettingKeys lists every recognised config key.
func SettingKeys() []string {
	return []string{
		SettingOutputDir,
		SettingFormat,
		SettingFullCanvas,
		SettingSingleFileDirect,
		SettingPreviewMaxSize,
		SettingHistoryEnabled,
	}
}

// Placement returns the placement implied by the FullCanvas setting.
func (e ExportSettings) Placement() Placement {
	if e.FullCanvas {
		return PlacementFullCanvas
	}
	return PlacementNative
}
