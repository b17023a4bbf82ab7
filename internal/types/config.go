package types

// File names the tool looks for inside a package.
const (
	ConfigFileName       = "autogypi.json"
	PackageFileName      = "package.json"
	DependencyStoreName  = "node_modules"
	DefaultOutputName    = "auto.gypi"
	DefaultOutputTopName = "auto-top.gypi"
	DefaultBindingName   = "binding.gyp"
	DefaultTargetName    = "binding"
)

// Config is the contents of an autogypi.json file. Unknown fields are
// ignored when parsing.
type Config struct {
	// Dependencies lists package names or paths relative to the
	// configuration file.
	Dependencies []string `json:"dependencies,omitempty" yaml:"dependencies,omitempty" toml:"dependencies,omitempty"`
	// Includes lists gypi files to include inside the target.
	Includes []string `json:"includes,omitempty" yaml:"includes,omitempty" toml:"includes,omitempty"`
	// TopIncludes lists gypi files to include at the top level.
	TopIncludes []string `json:"topIncludes,omitempty" yaml:"topIncludes,omitempty" toml:"topIncludes,omitempty"`
	// IncludeDirs lists header directories added to the target.
	IncludeDirs []string `json:"includeDirs,omitempty" yaml:"includeDirs,omitempty" toml:"includeDirs,omitempty"`
	// Output is the per-target gypi to generate, relative to the
	// configuration file. Only read from the root configuration.
	Output string `json:"output,omitempty" yaml:"output,omitempty" toml:"output,omitempty"`
	// OutputTop is the top-level gypi to generate.
	OutputTop string `json:"outputTop,omitempty" yaml:"outputTop,omitempty" toml:"outputTop,omitempty"`
}
