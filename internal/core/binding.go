package core

import (
	"path/filepath"
	"strings"

	"autogypi/internal/types"
)

// BuildBindingGyp returns an initial binding.gyp for bindingPath with one
// target that includes the per-target output and compiles sources. The
// top-level output is included at the top when outputTopPath is set.
func BuildBindingGyp(bindingPath string, outputPath string, outputTopPath string, sources []string, targetName string) types.BindingGyp {
	baseDir := filepath.Dir(bindingPath)
	if strings.TrimSpace(targetName) == "" {
		targetName = types.DefaultTargetName
	}
	relSources := make([]string, 0, len(sources))
	for _, source := range sources {
		relSources = append(relSources, RelativePath(baseDir, source))
	}
	gyp := types.BindingGyp{
		Targets: []types.BindingTarget{
			{
				TargetName: targetName,
				Includes:   []string{RelativePath(baseDir, outputPath)},
				Sources:    relSources,
			},
		},
	}
	if outputTopPath != "" {
		gyp.Includes = []string{RelativePath(baseDir, outputTopPath)}
	}
	return gyp
}
