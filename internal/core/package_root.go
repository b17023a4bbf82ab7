package core

import (
	"path/filepath"
	"strings"

	"autogypi/internal/ports"
	"autogypi/internal/types"
)

const defaultMaxRootDepth = 20

// PackageRootLocator walks up from a location inside a package until it
// finds the directory holding the package's marker file.
type PackageRootLocator struct {
	FS       ports.FileSystemPort
	MaxDepth int
}

func NewPackageRootLocator(fs ports.FileSystemPort) PackageRootLocator {
	return PackageRootLocator{FS: fs, MaxDepth: defaultMaxRootDepth}
}

// Locate returns the first directory at or above start containing an
// autogypi.json or, failing that, a package.json. The walk never steps
// into a node_modules directory, stops at the filesystem root and gives
// up after MaxDepth steps.
func (l PackageRootLocator) Locate(start string) (types.PackageRoot, bool) {
	maxDepth := l.MaxDepth
	if maxDepth <= 0 {
		maxDepth = defaultMaxRootDepth
	}
	dir := filepath.Clean(start)
	depth := 0
	for {
		if l.FS.Exists(filepath.Join(dir, types.ConfigFileName)) {
			return types.PackageRoot{Dir: dir, Marker: types.MarkerConfig}, true
		}
		if l.FS.Exists(filepath.Join(dir, types.PackageFileName)) {
			return types.PackageRoot{Dir: dir, Marker: types.MarkerPackage}, true
		}
		next := filepath.Dir(dir)
		if next == dir {
			return types.PackageRoot{}, false
		}
		if strings.EqualFold(filepath.Base(next), types.DependencyStoreName) {
			return types.PackageRoot{}, false
		}
		depth++
		if depth > maxDepth {
			return types.PackageRoot{}, false
		}
		dir = next
	}
}
