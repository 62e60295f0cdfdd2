package rowfile

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
)

// TempFile is a temporary file that is deleted on Close.
type TempFile struct {
	path string
}

// CreateTemp creates an empty temporary file in dir (os.TempDir when empty). The
// pattern follows os.CreateTemp, so a compression extension can be kept with "rows-*.zst".
func CreateTemp(dir, pattern string) (*TempFile, error) {
	f, err := os.CreateTemp(dir, pattern)
	if err != nil {
		return nil, fmt.Errorf("rowfile: failed to create temp file: %w", err)
	}
	path := f.Name()
	if err := f.Close(); err != nil {
		_ = os.Remove(path)
		return nil, fmt.Errorf("rowfile: failed to close temp file %s: %w", path, err)
	}
	return &TempFile{path: path}, nil
}

// Path returns the file name.
func (t *TempFile) Path() string {
	return t.path
}

// Close deletes the file. A file that is already gone is not an error.
func (t *TempFile) Close() error {
	if err := os.Remove(t.path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("rowfile: failed to remove %s: %w", t.path, err)
	}
	return nil
}
