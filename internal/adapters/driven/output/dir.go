// Package output writes export artifacts to the filesystem.
package output

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/ambrosestarlit/layerex/internal/core/ports/driven"
)

// Ensure DirSaver implements the interface.
var _ driven.Saver = (*DirSaver)(nil)

// DirSaver writes artifacts below a root directory.
// Absolute names are written as given.
type DirSaver struct {
	root string
}

// NewDirSaver creates a saver rooted at root. An empty root means the
// working directory.
func NewDirSaver(root string) *DirSaver {
	return &DirSaver{root: root}
}

// Save writes data to name, creating parent directories, and returns the
// absolute path written. The file is written to a temporary sibling first
// and renamed into place.
func (s *DirSaver) Save(ctx context.Context, name string, data []byte) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	path := name
	if !filepath.IsAbs(path) {
		path = filepath.Join(s.root, path)
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("resolve %s: %w", name, err)
	}

	if err := os.MkdirAll(filepath.Dir(abs), 0755); err != nil {
		return "", fmt.Errorf("create directory: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(abs), "."+filepath.Base(abs)+".*")
	if err != nil {
		return "", fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return "", fmt.Errorf("write %s: %w", abs, err)
	}
	if err := tmp.Close(); err != nil {
		return "", fmt.Errorf("close %s: %w", abs, err)
	}
	if err := os.Chmod(tmpName, 0644); err != nil {
		return "", fmt.Errorf("chmod %s: %w", abs, err)
	}
	if err := os.Rename(tmpName, abs); err != nil {
		return "", fmt.Errorf("rename %s: %w", abs, err)
	}

	return abs, nil
}
