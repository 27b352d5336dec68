package cli

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestManifestCmd_Stdout(t *testing.T) {
	env := setupTestServices(t)
	path := env.document(t, "poster.psd", "ok")

	out, err := execute(t, "manifest", path, "--stdout")
	require.NoError(t, err)

	assert.Contains(t, out, "File: poster.psd\nSize: 8x6px\nLayers: 4\n")
	assert.Contains(t, out, "001：Overlay\n[📁] Characters\n  002：Hero\n  003：Shadow\n004：Background\n")
}

func TestManifestCmd_SavesFile(t *testing.T) {
	env := setupTestServices(t)
	path := env.document(t, "poster.psd", "ok")

	out, err := execute(t, "manifest", path)
	require.NoError(t, err)

	target := filepath.Join(env.outDir, "poster.layers.txt")
	assert.Contains(t, out, "Saved "+target)
	assert.FileExists(t, target)
}

func TestManifestCmd_OutAndStdoutConflict(t *testing.T) {
	env := setupTestServices(t)
	path := env.document(t, "poster.psd", "ok")

	_, err := execute(t, "manifest", path, "--stdout", "--out", env.dir)

	assert.Error(t, err)
}
