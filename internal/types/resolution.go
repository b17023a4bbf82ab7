package types

type ReferenceKind string

const (
	ReferenceKindName ReferenceKind = "name"
	ReferenceKindPath ReferenceKind = "path"
)

type MarkerKind string

const (
	MarkerNone    MarkerKind = ""
	MarkerConfig  MarkerKind = "config"
	MarkerPackage MarkerKind = "package"
)

// DependencyRef is one entry of a configuration's dependency list.
type DependencyRef struct {
	Raw   string
	Kind  ReferenceKind
	Index int
}

// PackageRoot is the top-level directory of an installed package and the
// marker file that identified it.
type PackageRoot struct {
	Dir    string
	Marker MarkerKind
}

// Resolution ties a dependency reference to its location on disk.
type Resolution struct {
	Ref        DependencyRef
	Entry      string
	Root       PackageRoot
	ConfigPath string
}
