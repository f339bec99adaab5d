// Package defmap holds each crate's module tree: which modules exist,
// how they nest, and what every module's name bindings resolve to. It
// is the structure internal/completion walks to enumerate "what names
// are visible from here" and internal/visibility consults to decide
// "is that binding visible from here". Grounded on
// hir::def_map::{CrateDefMap, ModuleData, LocalModuleId} as used by
// completion.rs's complete_in_module and by visibility.rs throughout.
// The dense-indexed module array with parent/children edges follows
// the `scope` type in
// _examples/cue-lang-cue/internal/lsp/definitions/definitions.go.
package defmap

import (
	"orbitlang.org/go/internal/fm"
	"orbitlang.org/go/internal/graph"
)

// LocalModuleID indexes a module within a single crate's module array.
// It is only meaningful paired with the CrateID that owns it, which is
// why lookups always go through a ModuleID or a CrateDefMap method.
type LocalModuleID int

// ModuleID globally identifies a module: which crate it belongs to and
// its index within that crate's module array.
type ModuleID struct {
	Crate graph.CrateID
	Local LocalModuleID
}

// StructID, FuncID, TraitID, TypeAliasID and GlobalID are opaque
// handles into internal/interner's global tables, matching Noir's
// node_interner::{StructId, FuncId, TraitId, TypeAliasId, GlobalId}.
// They live here, rather than in internal/interner, because
// ModuleDefID needs them and interner depends on defmap, not the
// other way around.
type StructID int
type FuncID int
type TraitID int
type TypeAliasID int
type GlobalID int

// ModuleLocation is where a module's declaration lives, for features
// like "jump from a use-tree segment to the module it names".
type ModuleLocation struct {
	File fm.FileID
	Span struct{ Start, End int }
}

// ModuleData is one module: its parent, its named submodules, and its
// name bindings in two different strengths. Definitions holds only
// what this module itself declares; Scope additionally holds whatever
// `use` brought in, mirroring module_data.definitions() vs.
// module_data.scope() in the original.
type ModuleData struct {
	Location ModuleLocation

	Parent   *LocalModuleID
	Children map[string]LocalModuleID

	// IsStruct marks this module as the pseudo-module synthesized to
	// hold a struct's associated items, per spec.md §3. Consulted by
	// internal/visibility's struct-parent private-visibility rule.
	IsStruct bool

	definitions map[string]PerNs
	scope       map[string]PerNs
}

// NewModuleData returns an empty module rooted at the given location.
func NewModuleData(loc ModuleLocation, parent *LocalModuleID) *ModuleData {
	return &ModuleData{
		Location:    loc,
		Parent:      parent,
		Children:    make(map[string]LocalModuleID),
		definitions: make(map[string]PerNs),
		scope:       make(map[string]PerNs),
	}
}

// Declare records a name this module itself introduces (a struct, fn,
// trait, type alias, global or submodule declared directly in it).
// Every declared name is also automatically in scope here, matching
// how Noir seeds a module's scope from its own definitions before
// `use` imports are layered on.
func (m *ModuleData) Declare(name string, entry PerNs) {
	m.definitions[name] = mergePerNs(m.definitions[name], entry)
	m.scope[name] = mergePerNs(m.scope[name], entry)
}

// Import records a name brought in by a `use` (or glob-use) that this
// module did not itself declare. It only ever affects Scope, never
// Definitions, mirroring the original's distinction between a
// module's own items and everything reachable through it.
func (m *ModuleData) Import(name string, entry PerNs) {
	m.scope[name] = mergePerNs(m.scope[name], entry)
}

// Definitions returns the names this module declares directly.
func (m *ModuleData) Definitions() map[string]PerNs {
	return m.definitions
}

// Scope returns every name visible by writing it unqualified inside
// this module: direct definitions plus anything imported via `use`.
func (m *ModuleData) Scope() map[string]PerNs {
	return m.scope
}

// FindName looks up name in this module's scope.
func (m *ModuleData) FindName(name string) (PerNs, bool) {
	ns, ok := m.scope[name]
	return ns, ok
}

// CrateDefMap is one crate's full module tree, indexed densely by
// LocalModuleID so module lookups never allocate.
type CrateDefMap struct {
	Crate   graph.CrateID
	root    LocalModuleID
	modules []*ModuleData
}

// NewCrateDefMap returns a CrateDefMap with a single, empty root
// module.
func NewCrateDefMap(crate graph.CrateID, rootLoc ModuleLocation) *CrateDefMap {
	dm := &CrateDefMap{Crate: crate}
	dm.modules = append(dm.modules, NewModuleData(rootLoc, nil))
	dm.root = 0
	return dm
}

// Root returns the crate root module's local id.
func (dm *CrateDefMap) Root() LocalModuleID { return dm.root }

// AddModule appends a new, empty module and wires it as a named child
// of parent, returning the new module's local id.
func (dm *CrateDefMap) AddModule(parent LocalModuleID, name string, loc ModuleLocation) LocalModuleID {
	id := LocalModuleID(len(dm.modules))
	p := parent
	dm.modules = append(dm.modules, NewModuleData(loc, &p))
	dm.modules[parent].Children[name] = id
	return id
}

// AddStructModule is AddModule, but marks the new module as a
// struct's pseudo-module (IsStruct = true), used by internal/visibility's
// "private field/method visible from the struct's parent module" rule.
func (dm *CrateDefMap) AddStructModule(parent LocalModuleID, name string, loc ModuleLocation) LocalModuleID {
	id := dm.AddModule(parent, name, loc)
	dm.modules[id].IsStruct = true
	return id
}

// ModuleData returns the module stored at id.
func (dm *CrateDefMap) ModuleData(id LocalModuleID) *ModuleData {
	return dm.modules[id]
}

// Modules returns every module in this crate, indexed by LocalModuleID.
func (dm *CrateDefMap) Modules() []*ModuleData {
	return dm.modules
}

// ModuleIDOf pairs a local id with this def map's crate.
func (dm *CrateDefMap) ModuleIDOf(local LocalModuleID) ModuleID {
	return ModuleID{Crate: dm.Crate, Local: local}
}
