package app

import "autogypi/internal/types"

type GenerateRequest struct {
	// ConfigPath is the absolute path of the root autogypi.json.
	ConfigPath string
	// RootDir holds default output files when neither flags nor the
	// configuration name them.
	RootDir string
	// OutputPath and OutputTopPath are absolute overrides; they are also
	// recorded in the configuration.
	OutputPath    string
	OutputTopPath string
	NoOutputTop   bool
	Packages      []string
	IncludeDirs   []string
	Save          bool
	// InitGyp is the absolute path of a binding.gyp to create, if any.
	InitGyp    string
	Sources    []string
	TargetName string
	Jobs       int
}

type GenerateResult struct {
	OutputPath    string
	OutputTopPath string
	BindingPath   string
	Packages      []types.PackageRoot
}
