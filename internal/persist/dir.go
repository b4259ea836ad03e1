package persist

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// Dir is a file-backed KV. Every key is stored as <dir>/<key>.json and
// written atomically via a temp file and rename, so a crash mid-write never
// leaves a truncated document behind.
type Dir struct {
	dir string
}

// NewDir creates the data directory if needed and returns a Dir keyed
// under it.
func NewDir(dir string) (*Dir, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("persist mkdir %s: %w", dir, err)
	}
	return &Dir{dir: dir}, nil
}

// Get reads the document for key. A missing file is (nil, false, nil).
func (d *Dir) Get(key string) ([]byte, bool, error) {
	data, err := os.ReadFile(d.path(key))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("persist read %s: %w", key, err)
	}
	return data, true, nil
}

// Set writes the document for key atomically.
func (d *Dir) Set(key string, value []byte) error {
	tmp, err := os.CreateTemp(d.dir, key+".*.tmp")
	if err != nil {
		return fmt.Errorf("persist temp %s: %w", key, err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(value); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("persist write %s: %w", key, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("persist close %s: %w", key, err)
	}

	if err := os.Rename(tmpName, d.path(key)); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("persist rename %s: %w", key, err)
	}
	return nil
}

// Delete removes the document for key if present.
func (d *Dir) Delete(key string) error {
	err := os.Remove(d.path(key))
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("persist delete %s: %w", key, err)
	}
	return nil
}

func (d *Dir) path(key string) string {
	return filepath.Join(d.dir, key+".json")
}
