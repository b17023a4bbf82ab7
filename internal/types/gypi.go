package types

// Directive keys emitted into generated gypi files.
const (
	GypiKeyIncludeDirs = "include_dirs"
	GypiKeyIncludes    = "includes"
)

// Gypi maps a gyp directive to its ordered list of values.
type Gypi map[string][]string

// GypiPair holds the per-target and top-level trees produced for one
// configuration.
type GypiPair struct {
	Gypi    Gypi
	GypiTop Gypi
}

// GenerateResult is the outcome of a root merge with every path made
// relative to the directory of its output file.
type GenerateResult struct {
	ConfigPath    string
	OutputPath    string
	OutputTopPath string
	Gypi          Gypi
	GypiTop       Gypi
	Header        string
	HeaderTop     string
	Packages      []PackageRoot
}
