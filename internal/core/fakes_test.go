package core

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"

	"github.com/ZanzyTHEbar/errbuilder-go"

	"autogypi/internal/types"
)

type fakeFS struct {
	files map[string]struct{}
	dirs  map[string]struct{}
	links map[string]string
}

func newFakeFS() *fakeFS {
	return &fakeFS{
		files: map[string]struct{}{},
		dirs:  map[string]struct{}{"/": {}},
		links: map[string]string{},
	}
}

func (f *fakeFS) addFile(paths ...string) *fakeFS {
	for _, path := range paths {
		f.files[path] = struct{}{}
		f.addDir(filepath.Dir(path))
	}
	return f
}

func (f *fakeFS) addDir(path string) *fakeFS {
	for dir := path; ; dir = filepath.Dir(dir) {
		f.dirs[dir] = struct{}{}
		if filepath.Dir(dir) == dir {
			break
		}
	}
	return f
}

func (f *fakeFS) addLink(path string, target string) *fakeFS {
	f.links[path] = target
	return f
}

func (f *fakeFS) Exists(path string) bool {
	_, file := f.files[path]
	_, dir := f.dirs[path]
	return file || dir
}

func (f *fakeFS) IsDir(path string) bool {
	_, ok := f.dirs[path]
	return ok
}

func (f *fakeFS) Canonical(path string) string {
	if target, ok := f.links[path]; ok {
		return target
	}
	return filepath.Clean(path)
}

// fakeResolver resolves names from a per-directory table first, then from
// a global one, and records every batch it receives.
type fakeResolver struct {
	mu     sync.Mutex
	byBase map[string]map[string]string
	global map[string]string
	calls  [][]string
	bases  []string
}

func newFakeResolver(global map[string]string) *fakeResolver {
	return &fakeResolver{byBase: map[string]map[string]string{}, global: global}
}

func (r *fakeResolver) ResolveBatch(_ context.Context, names []string, baseDir string) ([]string, error) {
	r.mu.Lock()
	r.calls = append(r.calls, append([]string(nil), names...))
	r.bases = append(r.bases, baseDir)
	r.mu.Unlock()
	entries := make([]string, 0, len(names))
	for _, name := range names {
		if entry, ok := r.byBase[baseDir][name]; ok {
			entries = append(entries, entry)
			continue
		}
		if entry, ok := r.global[name]; ok {
			entries = append(entries, entry)
			continue
		}
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeNotFound).
			WithMsg(fmt.Sprintf("cannot find module %s from %s", name, baseDir))
	}
	return entries, nil
}

func (r *fakeResolver) requested() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	var names []string
	for _, call := range r.calls {
		names = append(names, call...)
	}
	return names
}

type fakeConfigs struct {
	mu      sync.Mutex
	configs map[string]types.Config
}

func newFakeConfigs() *fakeConfigs {
	return &fakeConfigs{configs: map[string]types.Config{}}
}

func (c *fakeConfigs) LoadConfig(path string) (types.Config, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	config, ok := c.configs[path]
	if !ok {
		return types.Config{}, errbuilder.New().
			WithCode(errbuilder.CodeNotFound).
			WithMsg(fmt.Sprintf("configuration file not found: %s", path))
	}
	return config, nil
}

func (c *fakeConfigs) SaveConfig(path string, config types.Config) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.configs[path] = config
	return nil
}

// fixture bundles the fakes for one dependency tree.
type fixture struct {
	fs       *fakeFS
	resolver *fakeResolver
	configs  *fakeConfigs
}

func newFixture(global map[string]string) *fixture {
	return &fixture{
		fs:       newFakeFS(),
		resolver: newFakeResolver(global),
		configs:  newFakeConfigs(),
	}
}

// addConfigPackage installs a package at dir with an autogypi.json.
func (f *fixture) addConfigPackage(dir string, config types.Config) {
	path := filepath.Join(dir, types.ConfigFileName)
	f.fs.addFile(path, filepath.Join(dir, types.PackageFileName))
	f.configs.configs[path] = config
}

// addPlainPackage installs a package at dir with only a package.json.
func (f *fixture) addPlainPackage(dir string) {
	f.fs.addFile(filepath.Join(dir, types.PackageFileName))
}

func (f *fixture) engine(jobs int) MergeEngine {
	engine := NewMergeEngine(f.configs, f.fs)
	engine.Jobs = jobs
	return engine
}

func (f *fixture) options(configPath string, config types.Config) GenerateOptions {
	return GenerateOptions{
		ConfigPath: configPath,
		Config:     config,
		Resolver:   NewDefaultResolverContext(f.resolver, "/work"),
	}
}
