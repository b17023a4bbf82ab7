package ports

import "context"

// ResolverPort maps package names to installed entry points.
type ResolverPort interface {
	// ResolveBatch returns one absolute entry point per name, in order,
	// looking names up from baseDir. The batch fails as a whole if any
	// name cannot be found.
	ResolveBatch(ctx context.Context, names []string, baseDir string) ([]string, error)
}
