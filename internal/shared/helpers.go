// Package shared provides common utility functions used across multiple
// packages in the autogypi codebase.
package shared

import (
	"path/filepath"
	"sort"
	"strings"
)

// ConcatUnique returns the sorted, de-duplicated union of the given lists.
// Blank entries are dropped.
func ConcatUnique(lists ...[]string) []string {
	seen := map[string]struct{}{}
	var out []string
	for _, list := range lists {
		for _, item := range list {
			if strings.TrimSpace(item) == "" {
				continue
			}
			if _, ok := seen[item]; ok {
				continue
			}
			seen[item] = struct{}{}
			out = append(out, item)
		}
	}
	sort.Strings(out)
	return out
}

// SplitPathList splits a NODE_PATH style list and drops empty entries.
func SplitPathList(value string) []string {
	var out []string
	for _, entry := range filepath.SplitList(value) {
		if strings.TrimSpace(entry) == "" {
			continue
		}
		out = append(out, entry)
	}
	return out
}
