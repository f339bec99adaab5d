// Package graph models the crate dependency graph: crate identities
// and the edges between a crate and the crates it depends on. Grounded
// on noirc_frontend::graph::{CrateId, Dependency} as referenced
// throughout completion.rs (the NodeFinder carries a `*Vec<Dependency>`
// and a `CrateId` for the crate being edited).
package graph

// CrateID identifies one crate within a compilation. The root crate
// being edited and every dependency crate each get one; it's the key
// used everywhere a def map or interner needs to be looked up per-crate.
type CrateID struct {
	// Digest is the content address assigned by internal/registry
	// (empty for the root/workspace crate, which has no published
	// content to address).
	Digest string
	// Index disambiguates crates sharing a digest-less identity (the
	// root crate, or crates resolved purely by local path) and gives
	// CrateID a total order for use as a map key without requiring a
	// non-empty Digest.
	Index int
}

// Dependency is one edge from a crate to a crate it depends on, named
// the way source files refer to it (`dep::<Name>::...`).
type Dependency struct {
	Crate CrateID
	Name  string
}

// AsName returns the identifier used to reference this dependency from
// source, matching Dependency::as_name() in the original.
func (d Dependency) AsName() string { return d.Name }
