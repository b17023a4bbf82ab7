package core

import (
	"fmt"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"

	"autogypi/internal/types"
)

func TestPackageRootLocator(t *testing.T) {
	tests := []struct {
		name     string
		files    []string
		start    string
		expected types.PackageRoot
		found    bool
	}{
		{
			name:     "package marker at start",
			files:    []string{"/pkgs/foo/package.json"},
			start:    "/pkgs/foo",
			expected: types.PackageRoot{Dir: "/pkgs/foo", Marker: types.MarkerPackage},
			found:    true,
		},
		{
			name:     "config marker preferred",
			files:    []string{"/pkgs/foo/package.json", "/pkgs/foo/autogypi.json"},
			start:    "/pkgs/foo",
			expected: types.PackageRoot{Dir: "/pkgs/foo", Marker: types.MarkerConfig},
			found:    true,
		},
		{
			name:     "walks up from nested entry",
			files:    []string{"/pkgs/foo/package.json", "/pkgs/foo/dist/lib/index.js"},
			start:    "/pkgs/foo/dist/lib",
			expected: types.PackageRoot{Dir: "/pkgs/foo", Marker: types.MarkerPackage},
			found:    true,
		},
		{
			name:  "stops below node_modules",
			files: []string{"/proj/package.json", "/proj/node_modules/foo/lib/index.js"},
			start: "/proj/node_modules/foo/lib",
			found: false,
		},
		{
			name:  "node_modules match ignores case",
			files: []string{"/proj/package.json", "/proj/Node_Modules/foo/index.js"},
			start: "/proj/Node_Modules/foo",
			found: false,
		},
		{
			name:  "filesystem root",
			files: []string{"/pkgs/foo/index.js"},
			start: "/pkgs/foo",
			found: false,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fs := newFakeFS().addFile(tt.files...)
			root, ok := NewPackageRootLocator(fs).Locate(tt.start)
			assert.Equal(t, tt.found, ok)
			if diff := cmp.Diff(tt.expected, root); diff != "" {
				t.Fatalf("unexpected root (-want +got):\n%s", diff)
			}
		})
	}
}

func TestPackageRootLocatorDepthLimit(t *testing.T) {
	var parts []string
	for i := 0; i < 25; i++ {
		parts = append(parts, fmt.Sprintf("d%d", i))
	}
	deep := "/" + strings.Join(parts, "/")
	fs := newFakeFS().addFile("/package.json").addDir(deep)

	_, ok := NewPackageRootLocator(fs).Locate(deep)
	assert.False(t, ok, "walk must give up after the depth limit")

	shallow := filepath.Join("/", "d0", "d1", "d2")
	root, ok := NewPackageRootLocator(fs).Locate(shallow)
	assert.True(t, ok)
	assert.Equal(t, "/", root.Dir)
}
