package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ambrosestarlit/layerex/internal/core/domain"
)

func TestSettingsCmd_HasSubcommands(t *testing.T) {
	commands := settingsCmd.Commands()
	commandNames := make([]string, 0, len(commands))
	for _, cmd := range commands {
		commandNames = append(commandNames, cmd.Name())
	}

	assert.Contains(t, commandNames, "show")
	assert.Contains(t, commandNames, "set")
	assert.Contains(t, commandNames, "reset")
}

func TestSettingsShow(t *testing.T) {
	env := setupTestServices(t)

	out, err := execute(t, "settings")

	require.NoError(t, err)
	assert.Contains(t, out, "[Export]")
	assert.Contains(t, out, "Output directory: "+env.outDir)
	assert.Contains(t, out, "Format: png")
	assert.Contains(t, out, "Full canvas: yes")
	assert.Contains(t, out, "Max size: 512 px")
	assert.Contains(t, out, "[History]")
}

func TestSettingsSet(t *testing.T) {
	env := setupTestServices(t)

	out, err := execute(t, "settings", "set", "export.format", "TIFF")
	require.NoError(t, err)
	assert.Contains(t, out, "export.format = TIFF")

	settings, err := env.settings.Get()
	require.NoError(t, err)
	assert.Equal(t, domain.FormatTIFF, settings.Export.Format)
}

func TestSettingsSet_Bool(t *testing.T) {
	env := setupTestServices(t)

	_, err := execute(t, "settings", "set", "export.full_canvas", "false")
	require.NoError(t, err)

	settings, err := env.settings.Get()
	require.NoError(t, err)
	assert.False(t, settings.Export.FullCanvas)
	assert.Equal(t, domain.PlacementNative, defaultPlacement())
}

func TestSettingsSet_Invalid(t *testing.T) {
	setupTestServices(t)

	_, err := execute(t, "settings", "set", "preview.max_size", "big")
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = execute(t, "settings", "set", "no.such.key", "1")
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestSettingsReset(t *testing.T) {
	env := setupTestServices(t)
	require.NoError(t, env.settings.SetFormat(domain.FormatBMP))

	out, err := execute(t, "settings", "reset", "export.format")
	require.NoError(t, err)
	assert.Contains(t, out, "export.format restored to default")

	settings, err := env.settings.Get()
	require.NoError(t, err)
	assert.Equal(t, domain.FormatPNG, settings.Export.Format)
}

func TestSettingsCmd_NoService(t *testing.T) {
	setupTestServices(t)
	SetServices(Services{})

	_, err := execute(t, "settings", "show")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "settings service not configured")
}
