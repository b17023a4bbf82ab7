package adapters

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"sync"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/rs/zerolog/log"

	"autogypi/internal/ports"
	"autogypi/internal/types"
)

const defaultResolveWorkers = 8

// NodeResolverAdapter finds installed npm packages the way Node.js does:
// node_modules directories from the base directory upwards, then the
// global paths (NODE_PATH). The entry point of a package is its
// package.json, or the package directory when there is none.
type NodeResolverAdapter struct {
	FS          ports.FileSystemPort
	GlobalPaths []string
	Workers     int
}

func NewNodeResolverAdapter(globalPaths []string) NodeResolverAdapter {
	return NodeResolverAdapter{
		FS:          NewOSFileSystemAdapter(),
		GlobalPaths: globalPaths,
		Workers:     defaultResolveWorkers,
	}
}

func (a NodeResolverAdapter) ResolveBatch(ctx context.Context, names []string, baseDir string) ([]string, error) {
	if len(names) == 0 {
		return nil, nil
	}
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	entries := make([]string, len(names))
	var errMu sync.Mutex
	var firstErr error
	workerCount := a.Workers
	if workerCount <= 0 {
		workerCount = defaultResolveWorkers
	}
	if len(names) < workerCount {
		workerCount = len(names)
	}
	sem := make(chan struct{}, workerCount)
	var wg sync.WaitGroup
	for index, name := range names {
		wg.Add(1)
		go func() {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()
			if ctx.Err() != nil {
				return
			}
			entry, err := a.resolveOne(name, baseDir)
			if err != nil {
				errMu.Lock()
				if firstErr == nil {
					firstErr = err
					cancel()
				}
				errMu.Unlock()
				return
			}
			entries[index] = entry
		}()
	}
	wg.Wait()
	if firstErr != nil {
		return nil, firstErr
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	log.Ctx(ctx).Debug().Int("modules", len(names)).Str("basedir", baseDir).Msg("modules resolved")
	return entries, nil
}

func (a NodeResolverAdapter) resolveOne(name string, baseDir string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("module name is empty")
	}
	start, err := filepath.Abs(baseDir)
	if err != nil {
		return "", errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg(fmt.Sprintf("invalid base directory %s", baseDir)).
			WithCause(err)
	}
	relative := filepath.FromSlash(name)
	for dir := start; ; {
		if !strings.EqualFold(filepath.Base(dir), types.DependencyStoreName) {
			if entry, ok := a.probe(filepath.Join(dir, types.DependencyStoreName, relative)); ok {
				return entry, nil
			}
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	for _, global := range a.GlobalPaths {
		if strings.TrimSpace(global) == "" {
			continue
		}
		if entry, ok := a.probe(filepath.Join(global, relative)); ok {
			return entry, nil
		}
	}
	return "", errbuilder.New().
		WithCode(errbuilder.CodeNotFound).
		WithMsg(fmt.Sprintf("cannot find module %s from %s", name, start))
}

func (a NodeResolverAdapter) probe(candidate string) (string, bool) {
	manifest := filepath.Join(candidate, types.PackageFileName)
	if a.fs().Exists(manifest) {
		return manifest, true
	}
	if a.fs().IsDir(candidate) {
		return candidate, true
	}
	return "", false
}

func (a NodeResolverAdapter) fs() ports.FileSystemPort {
	if a.FS == nil {
		return NewOSFileSystemAdapter()
	}
	return a.FS
}

var _ ports.ResolverPort = NodeResolverAdapter{}
