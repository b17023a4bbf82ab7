package core

import (
	"sync"

	"autogypi/internal/types"
)

// Accumulator records which dependencies one generation run has already
// included. Entries are never removed, and the check and the mark happen
// under one lock so concurrent descents agree on a single winner.
type Accumulator struct {
	mu    sync.Mutex
	names map[string]struct{}
	paths map[string]struct{}
	roots []types.PackageRoot
}

func NewAccumulator() *Accumulator {
	return &Accumulator{
		names: map[string]struct{}{},
		paths: map[string]struct{}{},
	}
}

// MarkName reports whether name was seen for the first time.
func (a *Accumulator) MarkName(name string) bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	if _, ok := a.names[name]; ok {
		return false
	}
	a.names[name] = struct{}{}
	return true
}

// MarkRoot reports whether the package root was seen for the first time.
func (a *Accumulator) MarkRoot(root types.PackageRoot) bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	if _, ok := a.paths[root.Dir]; ok {
		return false
	}
	a.paths[root.Dir] = struct{}{}
	a.roots = append(a.roots, root)
	return true
}

// Reserve marks dir as visited without reporting it in Roots.
func (a *Accumulator) Reserve(dir string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.paths[dir] = struct{}{}
}

// Roots returns the included package roots in the order they were
// claimed.
func (a *Accumulator) Roots() []types.PackageRoot {
	a.mu.Lock()
	defer a.mu.Unlock()
	return append([]types.PackageRoot(nil), a.roots...)
}
