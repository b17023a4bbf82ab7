package core

import (
	"context"
	"path/filepath"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/rs/zerolog/log"

	"autogypi/internal/ports"
)

// ResolverContext is the place names are resolved from. A configuration
// first resolves from its own directory; when that fails it falls back to
// the context of the configuration that referenced it, and so on up to
// the process default.
type ResolverContext struct {
	Resolver ports.ResolverPort
	BaseDir  string
	Parent   *ResolverContext
}

// NewDefaultResolverContext returns the context used when nothing else
// can resolve a name, normally rooted at the working directory.
func NewDefaultResolverContext(resolver ports.ResolverPort, baseDir string) *ResolverContext {
	return &ResolverContext{Resolver: resolver, BaseDir: filepath.Clean(baseDir)}
}

// Child returns a context rooted at baseDir that inherits c as fallback.
// A nil resolver reuses the parent's.
func (c *ResolverContext) Child(baseDir string, resolver ports.ResolverPort) *ResolverContext {
	if resolver == nil && c != nil {
		resolver = c.Resolver
	}
	return &ResolverContext{Resolver: resolver, BaseDir: filepath.Clean(baseDir), Parent: c}
}

// Resolve resolves the whole batch from the nearest context that can
// resolve every name. The error of the first attempt is returned when all
// contexts fail.
func (c *ResolverContext) Resolve(ctx context.Context, names []string) ([]string, error) {
	if len(names) == 0 {
		return nil, nil
	}
	var firstErr error
	tried := map[string]struct{}{}
	for current := c; current != nil; current = current.Parent {
		if current.Resolver == nil {
			continue
		}
		if _, ok := tried[current.BaseDir]; ok {
			continue
		}
		tried[current.BaseDir] = struct{}{}
		entries, err := current.Resolver.ResolveBatch(ctx, names, current.BaseDir)
		if err == nil {
			if current != c {
				log.Ctx(ctx).Debug().
					Str("from", c.BaseDir).
					Str("fallback", current.BaseDir).
					Msg("dependencies resolved from inherited context")
			}
			return entries, nil
		}
		if firstErr == nil {
			firstErr = err
		}
	}
	if firstErr == nil {
		firstErr = errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("no resolver configured")
	}
	return nil, firstErr
}
