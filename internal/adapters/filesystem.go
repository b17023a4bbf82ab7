package adapters

import (
	"os"
	"path/filepath"

	"autogypi/internal/ports"
)

type OSFileSystemAdapter struct{}

func NewOSFileSystemAdapter() OSFileSystemAdapter {
	return OSFileSystemAdapter{}
}

func (a OSFileSystemAdapter) Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

func (a OSFileSystemAdapter) IsDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

// Canonical returns the absolute, symlink-free form of path. Components
// that do not exist yet are kept as written below the deepest existing
// ancestor.
func (a OSFileSystemAdapter) Canonical(path string) string {
	abs, err := filepath.Abs(path)
	if err != nil {
		return filepath.Clean(path)
	}
	var missing []string
	for dir := abs; ; {
		if resolved, err := filepath.EvalSymlinks(dir); err == nil {
			return filepath.Join(append([]string{resolved}, missing...)...)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return abs
		}
		missing = append([]string{filepath.Base(dir)}, missing...)
		dir = parent
	}
}

var _ ports.FileSystemPort = OSFileSystemAdapter{}
