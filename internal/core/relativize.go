package core

import (
	"path/filepath"
	"sort"
	"strings"

	"autogypi/internal/types"
)

const headerNotice = "# Automatically generated file. Edits will be lost."

// ResolvePath makes path absolute against baseDir unless it already is.
func ResolvePath(baseDir string, path string) string {
	if filepath.IsAbs(path) {
		return filepath.Clean(path)
	}
	return filepath.Join(baseDir, path)
}

// RelativePath expresses target relative to baseDir using forward
// slashes, as gyp expects. Targets on another volume stay absolute.
func RelativePath(baseDir string, target string) string {
	rel, err := filepath.Rel(baseDir, target)
	if err != nil {
		return filepath.ToSlash(target)
	}
	return filepath.ToSlash(rel)
}

// RelativizeGypi returns a copy of gypi with every path made relative to
// baseDir.
func RelativizeGypi(baseDir string, gypi types.Gypi) types.Gypi {
	out := types.Gypi{}
	for key, values := range gypi {
		list := make([]string, 0, len(values))
		for _, value := range values {
			list = append(list, RelativePath(baseDir, value))
		}
		out[key] = list
	}
	return out
}

// BuildHeader returns the provenance comment written above a generated
// file.
func BuildHeader(configPath string, outputPath string) string {
	lines := []string{
		headerNotice,
		"# Based on: " + RelativePath(filepath.Dir(outputPath), configPath),
		"",
		"",
	}
	return strings.Join(lines, "\n")
}

// MergeGypi appends every list of src to the list with the same key in
// dst.
func MergeGypi(dst types.Gypi, src types.Gypi) {
	keys := make([]string, 0, len(src))
	for key := range src {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	for _, key := range keys {
		if len(src[key]) == 0 {
			continue
		}
		dst[key] = append(dst[key], src[key]...)
	}
}

func mergePair(dst types.GypiPair, src types.GypiPair) {
	MergeGypi(dst.Gypi, src.Gypi)
	MergeGypi(dst.GypiTop, src.GypiTop)
}

func newGypiPair() types.GypiPair {
	return types.GypiPair{Gypi: types.Gypi{}, GypiTop: types.Gypi{}}
}
