package core

import (
	"path/filepath"
	"strings"

	"autogypi/internal/types"
)

const scopeMarker = "@"

// ClassifyReference reports whether a dependency reference is a package
// name handed to the resolver or a path relative to the configuration.
// Scoped names such as "@scope/pkg" are names despite their separator.
func ClassifyReference(ref string) types.ReferenceKind {
	if strings.HasPrefix(ref, scopeMarker) {
		return types.ReferenceKindName
	}
	if strings.ContainsRune(ref, '/') || strings.ContainsRune(ref, filepath.Separator) {
		return types.ReferenceKindPath
	}
	return types.ReferenceKindName
}

// PartitionReferences splits a dependency list by kind. Each reference
// keeps its index in the original list.
func PartitionReferences(deps []string) (names []types.DependencyRef, paths []types.DependencyRef) {
	for index, raw := range deps {
		ref := types.DependencyRef{Raw: raw, Kind: ClassifyReference(raw), Index: index}
		if ref.Kind == types.ReferenceKindName {
			names = append(names, ref)
			continue
		}
		paths = append(paths, ref)
	}
	return names, paths
}
