package types

// BindingGyp is the initial binding.gyp written by --init-gyp.
type BindingGyp struct {
	Targets  []BindingTarget `json:"targets"`
	Includes []string        `json:"includes,omitempty"`
}

type BindingTarget struct {
	TargetName string   `json:"target_name"`
	Includes   []string `json:"includes"`
	Sources    []string `json:"sources"`
}
