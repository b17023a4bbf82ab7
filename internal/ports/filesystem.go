package ports

// FileSystemPort answers the existence questions asked while walking a
// dependency tree.
type FileSystemPort interface {
	Exists(path string) bool
	IsDir(path string) bool
	// Canonical returns path with symlinks resolved, or the cleaned path
	// when it cannot be resolved.
	Canonical(path string) string
}
