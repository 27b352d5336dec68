package cli

import (
	"archive/zip"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ambrosestarlit/layerex/internal/core/domain"
)

func TestExportCmd_Use(t *testing.T) {
	assert.Equal(t, "export [file]", exportCmd.Use)
}

func TestExportCmd_DefaultsToAllLayersInArchive(t *testing.T) {
	env := setupTestServices(t)
	path := env.document(t, "poster.psd", "ok")

	out, err := execute(t, "export", path)
	require.NoError(t, err)

	archivePath := filepath.Join(env.outDir, "poster_layers.zip")
	assert.Contains(t, out, "Saved "+archivePath)
	assert.Contains(t, out, "4 file(s) exported")
	assert.Contains(t, out, "[100%]")

	zr, err := zip.OpenReader(archivePath)
	require.NoError(t, err)
	defer zr.Close()

	names := make([]string, 0, len(zr.File))
	for _, f := range zr.File {
		names = append(names, f.Name)
	}
	assert.Equal(t, []string{
		"001：Overlay.png",
		"002：Hero.png",
		"003：Shadow.png",
		"004：Background.png",
	}, names)
}

func TestExportCmd_SingleSelectionSavedDirectly(t *testing.T) {
	env := setupTestServices(t)
	path := env.document(t, "poster.psd", "ok")

	out, err := execute(t, "export", path, "--select", "2", "--native")
	require.NoError(t, err)

	target := filepath.Join(env.outDir, "002：Hero.png")
	assert.Contains(t, out, "Saved "+target)
	assert.FileExists(t, target)
}

func TestExportCmd_Merged(t *testing.T) {
	env := setupTestServices(t)
	path := env.document(t, "poster.psd", "ok")

	out, err := execute(t, "export", path, "--mode", "merged", "--select", "1-2,4", "--format", "tiff")
	require.NoError(t, err)

	target := filepath.Join(env.outDir, "poster_merged.tif")
	assert.Contains(t, out, "Saved "+target)
	assert.FileExists(t, target)
}

func TestExportCmd_List(t *testing.T) {
	env := setupTestServices(t)
	path := env.document(t, "poster.psd", "ok")
	alt := filepath.Join(env.dir, "notes")

	_, err := execute(t, "export", path, "--mode", "list", "--out", alt)
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(alt, "poster.layers.txt"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "File: poster.psd")
	assert.Contains(t, string(data), "  002：Hero")
}

func TestExportCmd_InvalidMode(t *testing.T) {
	env := setupTestServices(t)
	path := env.document(t, "poster.psd", "ok")

	_, err := execute(t, "export", path, "--mode", "sideways")

	require.Error(t, err)
	assert.Contains(t, err.Error(), `invalid mode "sideways"`)
}

func TestExportCmd_UnknownOrdinal(t *testing.T) {
	env := setupTestServices(t)
	path := env.document(t, "poster.psd", "ok")

	_, err := execute(t, "export", path, "--select", "9")

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestExportCmd_RangeBeyondLastLayer(t *testing.T) {
	env := setupTestServices(t)
	path := env.document(t, "poster.psd", "ok")

	_, err := execute(t, "export", path, "--select", "1-9223372036854775807")

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Empty(t, env.fixture.Session.Selection())
}

func TestExportCmd_BadSelection(t *testing.T) {
	env := setupTestServices(t)
	path := env.document(t, "poster.psd", "ok")

	_, err := execute(t, "export", path, "--select", "two")

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestExportCmd_SelectAndAllConflict(t *testing.T) {
	env := setupTestServices(t)
	path := env.document(t, "poster.psd", "ok")

	_, err := execute(t, "export", path, "--select", "1", "--all")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "none of the others can be")
}

func TestExportCmd_UnsupportedFormat(t *testing.T) {
	env := setupTestServices(t)
	path := env.document(t, "poster.psd", "ok")

	_, err := execute(t, "export", path, "--format", "gif")

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrUnsupportedFormat)
}

func TestExportCmd_RecordsHistory(t *testing.T) {
	env := setupTestServices(t)
	path := env.document(t, "poster.psd", "ok")

	_, err := execute(t, "export", path, "--select", "1,2")
	require.NoError(t, err)

	out, err := execute(t, "history")
	require.NoError(t, err)
	assert.Contains(t, out, "individual")
	assert.Contains(t, out, "poster.psd  2 file(s)")
	assert.Contains(t, out, filepath.Join(env.outDir, "poster_layers.zip"))
}
