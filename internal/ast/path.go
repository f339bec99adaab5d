package ast

// PathKind distinguishes how a path's first segment is anchored, which
// in turn decides how internal/completion's module enumerator seeds
// its starting module (see Finder.completeInModule).
type PathKind int

const (
	// PathPlain is an ordinary path: either a single bare name (which
	// might be a local variable, a builtin, or a module item) or a
	// multi-segment path starting from the current module's scope.
	PathPlain PathKind = iota
	// PathCrate is "crate::...", anchored at the current crate's root module.
	PathCrate
	// PathDep is "dep::name::...", anchored at a dependency crate's root.
	PathDep
	// PathSuper is "super::...", anchored at the parent of the current module.
	PathSuper
)

func (k PathKind) String() string {
	switch k {
	case PathCrate:
		return "crate"
	case PathDep:
		return "dep"
	case PathSuper:
		return "super"
	default:
		return "plain"
	}
}

// PathSegment is one dotted/double-colon-separated component of a Path.
type PathSegment struct {
	Ident Ident
}

// Path is a possibly-multi-segment reference such as `foo::Bar::baz`.
type Path struct {
	Segments []PathSegment
	Kind     PathKind
	Span     Span
}

// Idents returns the segment identifiers in order.
func (p Path) Idents() []Ident {
	idents := make([]Ident, len(p.Segments))
	for i, seg := range p.Segments {
		idents[i] = seg.Ident
	}
	return idents
}

// UseTreeKind is the sum type for a `use` item's tree structure.
type UseTreeKind interface{ useTreeKind() }

// UseTreePath is a leaf of a use-tree: `name` or `name as alias`.
type UseTreePath struct {
	Ident Ident
	Alias *Ident // nil when there is no "as alias"
}

func (UseTreePath) useTreeKind() {}

// UseTreeList is a branching use-tree: `prefix::{a, b::c, ...}`.
type UseTreeList struct {
	Trees []*UseTree
}

func (UseTreeList) useTreeKind() {}

// UseTree is one node of a (possibly nested) `use` item.
type UseTree struct {
	Prefix Path
	Kind   UseTreeKind
}
