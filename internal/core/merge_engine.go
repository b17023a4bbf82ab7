package core

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	assert "github.com/ZanzyTHEbar/assert-lib"
	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"autogypi/internal/ports"
	"autogypi/internal/types"
)

// MergeEngine walks the dependency tree of an autogypi.json file and
// folds every dependency's gypi directives into one pair of trees.
type MergeEngine struct {
	Configs ports.ConfigPort
	FS      ports.FileSystemPort
	Locator PackageRootLocator
	// Jobs bounds how many sibling configurations are merged at once.
	// With one job the walk is depth-first in declaration order.
	Jobs int
}

func NewMergeEngine(configs ports.ConfigPort, fs ports.FileSystemPort) MergeEngine {
	return MergeEngine{
		Configs: configs,
		FS:      fs,
		Locator: NewPackageRootLocator(fs),
		Jobs:    1,
	}
}

type GenerateOptions struct {
	// ConfigPath is the absolute path of the root configuration.
	ConfigPath string
	// Config is the already loaded root configuration.
	Config types.Config
	// OutputPath overrides Config.Output.
	OutputPath string
	// OutputTopPath overrides Config.OutputTop.
	OutputTopPath string
	// OmitTop suppresses the top-level output.
	OmitTop bool
	// Resolver is the process default resolver context.
	Resolver *ResolverContext
}

// Generate merges the root configuration and expresses the result
// relative to the output files. Nothing is written.
func (e MergeEngine) Generate(ctx context.Context, opts GenerateOptions) (types.GenerateResult, error) {
	assert.NotEmpty(ctx, opts.ConfigPath, "config path must be set")
	configPath := filepath.Clean(opts.ConfigPath)
	configDir := filepath.Dir(configPath)

	outputPath := opts.OutputPath
	if outputPath == "" && strings.TrimSpace(opts.Config.Output) != "" {
		outputPath = ResolvePath(configDir, opts.Config.Output)
	}
	if outputPath == "" {
		return types.GenerateResult{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg(fmt.Sprintf("\"output\" property with output file path is missing from configuration file %s", configPath))
	}
	outputTopPath := ""
	if !opts.OmitTop {
		outputTopPath = opts.OutputTopPath
		if outputTopPath == "" && strings.TrimSpace(opts.Config.OutputTop) != "" {
			outputTopPath = ResolvePath(configDir, opts.Config.OutputTop)
		}
	}

	pair, roots, err := e.MergeRoot(ctx, configPath, opts.Config, opts.Resolver)
	if err != nil {
		return types.GenerateResult{}, err
	}

	result := types.GenerateResult{
		ConfigPath: configPath,
		OutputPath: outputPath,
		Gypi:       RelativizeGypi(e.FS.Canonical(filepath.Dir(outputPath)), pair.Gypi),
		Header:     BuildHeader(configPath, outputPath),
		Packages:   roots,
	}
	if outputTopPath != "" {
		result.OutputTopPath = outputTopPath
		result.GypiTop = RelativizeGypi(e.FS.Canonical(filepath.Dir(outputTopPath)), pair.GypiTop)
		result.HeaderTop = BuildHeader(configPath, outputTopPath)
	}
	return result, nil
}

// MergeRoot merges config, found at configPath, and everything it depends
// on. Paths in the returned trees are absolute. resolver is the fallback
// used when a name cannot be resolved from the configuration's directory.
func (e MergeEngine) MergeRoot(ctx context.Context, configPath string, config types.Config, resolver *ResolverContext) (types.GypiPair, []types.PackageRoot, error) {
	if err := ValidateConfig(configPath, config); err != nil {
		return types.GypiPair{}, nil, err
	}
	configPath = filepath.Join(e.FS.Canonical(filepath.Dir(configPath)), filepath.Base(configPath))
	run := &mergeRun{engine: e, acc: NewAccumulator()}
	// A dependency leading back to the root package contributes nothing.
	run.acc.Reserve(filepath.Dir(configPath))
	pair, err := run.mergeConfig(ctx, configPath, config, resolver.Child(filepath.Dir(configPath), nil))
	if err != nil {
		return types.GypiPair{}, nil, err
	}
	log.Ctx(ctx).Debug().Int("packages", len(run.acc.Roots())).Msg("dependency tree merged")
	return pair, run.acc.Roots(), nil
}

func (e MergeEngine) jobs() int {
	if e.Jobs <= 0 {
		return 1
	}
	return e.Jobs
}

// mergeRun is the state of one generation.
type mergeRun struct {
	engine MergeEngine
	acc    *Accumulator
}

func (r *mergeRun) mergeFile(ctx context.Context, configPath string, resolver *ResolverContext) (types.GypiPair, error) {
	config, err := r.engine.Configs.LoadConfig(configPath)
	if err != nil {
		return types.GypiPair{}, err
	}
	if err := ValidateConfig(configPath, config); err != nil {
		return types.GypiPair{}, err
	}
	return r.mergeConfig(ctx, configPath, config, resolver)
}

func (r *mergeRun) mergeConfig(ctx context.Context, configPath string, config types.Config, resolver *ResolverContext) (types.GypiPair, error) {
	baseDir := filepath.Dir(configPath)
	resolutions, err := r.resolve(ctx, configPath, config.Dependencies, resolver)
	if err != nil {
		return types.GypiPair{}, err
	}

	subs := make([]types.GypiPair, len(resolutions))
	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(r.engine.jobs())
	var loopErr error
	for index, resolution := range resolutions {
		if groupCtx.Err() != nil {
			break
		}
		claimed, ok, err := r.claim(groupCtx, configPath, resolution)
		if err != nil {
			loopErr = err
			break
		}
		if !ok {
			continue
		}
		switch claimed.Root.Marker {
		case types.MarkerConfig:
			child := resolver.Child(claimed.Root.Dir, nil)
			descend := func() error {
				pair, err := r.mergeFile(groupCtx, claimed.ConfigPath, child)
				if err != nil {
					return err
				}
				subs[index] = pair
				return nil
			}
			// A single job descends before the next sibling is claimed,
			// so the first reference in depth-first order wins.
			if r.engine.jobs() == 1 {
				loopErr = descend()
			} else {
				group.Go(descend)
			}
		case types.MarkerPackage:
			// Packages without an autogypi.json still get their headers
			// on the include path.
			subs[index] = types.GypiPair{
				Gypi: types.Gypi{types.GypiKeyIncludeDirs: {claimed.Root.Dir}},
			}
		default:
			loopErr = errbuilder.New().
				WithCode(errbuilder.CodeFailedPrecondition).
				WithMsg(fmt.Sprintf("no package marker for dependency %s referenced in configuration %s", claimed.Ref.Raw, configPath))
		}
		if loopErr != nil {
			break
		}
	}
	waitErr := group.Wait()
	if loopErr != nil {
		return types.GypiPair{}, loopErr
	}
	if waitErr != nil {
		return types.GypiPair{}, waitErr
	}
	if err := ctx.Err(); err != nil {
		return types.GypiPair{}, err
	}

	pair := newGypiPair()
	for _, sub := range subs {
		mergePair(pair, sub)
	}
	appendResolved(pair.Gypi, types.GypiKeyIncludeDirs, baseDir, config.IncludeDirs)
	appendResolved(pair.Gypi, types.GypiKeyIncludes, baseDir, config.Includes)
	appendResolved(pair.GypiTop, types.GypiKeyIncludes, baseDir, config.TopIncludes)
	return pair, nil
}

// resolve finds the entry point of every dependency, keeping declaration
// order. Names go to the resolver in one batch; paths are joined to the
// configuration's directory.
func (r *mergeRun) resolve(ctx context.Context, configPath string, deps []string, resolver *ResolverContext) ([]types.Resolution, error) {
	baseDir := filepath.Dir(configPath)
	names, paths := PartitionReferences(deps)
	resolutions := make([]types.Resolution, len(deps))
	if len(names) > 0 {
		raw := make([]string, 0, len(names))
		for _, ref := range names {
			raw = append(raw, ref.Raw)
		}
		entries, err := resolver.Resolve(ctx, raw)
		if err != nil {
			return nil, errbuilder.New().
				WithCode(errbuilder.CodeNotFound).
				WithMsg(fmt.Sprintf("unable to find required module %s referenced in %s", strings.Join(raw, ", "), configPath)).
				WithCause(err)
		}
		if len(entries) != len(names) {
			return nil, errbuilder.New().
				WithCode(errbuilder.CodeInternal).
				WithMsg(fmt.Sprintf("resolver returned %d entries for %d modules referenced in %s", len(entries), len(names), configPath))
		}
		for i, ref := range names {
			resolutions[ref.Index] = types.Resolution{Ref: ref, Entry: ResolvePath(baseDir, entries[i])}
		}
	}
	for _, ref := range paths {
		entry := ResolvePath(baseDir, filepath.FromSlash(ref.Raw))
		if !r.engine.FS.Exists(entry) {
			return nil, errbuilder.New().
				WithCode(errbuilder.CodeNotFound).
				WithMsg(fmt.Sprintf("unable to find required module %s referenced in %s", ref.Raw, configPath))
		}
		resolutions[ref.Index] = types.Resolution{Ref: ref, Entry: entry}
	}
	return resolutions, nil
}

// claim locates the package root of a resolved dependency and reports
// whether this run includes it. The first reference to a name or a root
// wins; later ones contribute nothing.
func (r *mergeRun) claim(ctx context.Context, configPath string, resolution types.Resolution) (types.Resolution, bool, error) {
	ref := resolution.Ref
	if ref.Kind == types.ReferenceKindName && !r.acc.MarkName(ref.Raw) {
		log.Ctx(ctx).Debug().Str("dependency", ref.Raw).Str("config", configPath).Msg("module already included")
		return resolution, false, nil
	}
	start := resolution.Entry
	if !r.engine.FS.IsDir(start) {
		start = filepath.Dir(start)
	}
	root, ok := r.engine.Locator.Locate(start)
	if !ok {
		return resolution, false, errbuilder.New().
			WithCode(errbuilder.CodeFailedPrecondition).
			WithMsg(fmt.Sprintf("package root not found for dependency %s referenced in configuration %s", ref.Raw, configPath))
	}
	root.Dir = r.engine.FS.Canonical(root.Dir)
	if !r.acc.MarkRoot(root) {
		log.Ctx(ctx).Debug().Str("dependency", ref.Raw).Str("path", root.Dir).Msg("package already included")
		return resolution, false, nil
	}
	resolution.Root = root
	if root.Marker == types.MarkerConfig {
		resolution.ConfigPath = filepath.Join(root.Dir, types.ConfigFileName)
	}
	log.Ctx(ctx).Info().Str("dependency", ref.Raw).Str("path", root.Dir).Msg("found module")
	return resolution, true, nil
}

func appendResolved(gypi types.Gypi, key string, baseDir string, paths []string) {
	if len(paths) == 0 {
		return
	}
	for _, path := range paths {
		gypi[key] = append(gypi[key], ResolvePath(baseDir, filepath.FromSlash(path)))
	}
}
