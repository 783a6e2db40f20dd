// Package fileio is the storage core's sole collaborator with the
// operating system: a blocking, whole-buffer read/write adapter over a
// named path. There is no partial I/O, no seeking, and no concurrent
// writer support — callers own the file between a ReadAll and the next
// WriteAll, exactly as the original ManagedFile/SmallFile contract does.
package fileio

import (
	"fmt"
	"os"
	"path/filepath"
)

// ReadAll loads the entire contents of path into memory.
func ReadAll(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("fileio: read %s: %w", path, err)
	}
	return data, nil
}

// WriteAll truncates (or creates) path and writes every byte of data.
// Parent directories are created as needed, since page files live under
// directory-assigned subpaths rather than a single fixed data/ folder.
func WriteAll(path string, data []byte) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("fileio: mkdir %s: %w", dir, err)
		}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("fileio: write %s: %w", path, err)
	}
	return nil
}
