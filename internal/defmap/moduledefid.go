package defmap

// ItemVisibility is how widely an item's declaring `pub` (if any)
// exposes it, matching Noir's ItemVisibility and consulted throughout
// internal/visibility.
type ItemVisibility int

const (
	Private ItemVisibility = iota
	PublicCrate
	Public
)

func (v ItemVisibility) String() string {
	switch v {
	case Private:
		return "private"
	case PublicCrate:
		return "pub(crate)"
	case Public:
		return "pub"
	default:
		return "unknown"
	}
}

// ModuleDefID is what a name in scope ultimately refers to: a module,
// a struct/type, a function, a type alias, a trait, or a global.
// Mirrors hir_def::module_def_id::ModuleDefId's variants, one payload
// type per kind via Go's interface-with-marker-method idiom (see
// internal/ast's Expr/Stmt/Type marker interfaces for the same
// pattern).
type ModuleDefID interface {
	moduleDefID()
}

// ModuleDefModule is a ModuleDefID naming a module (so that e.g.
// `use foo::bar;` where bar is itself a module resolves here).
type ModuleDefModule struct{ ID ModuleID }

// ModuleDefType is a ModuleDefID naming a struct type.
type ModuleDefType struct{ ID StructID }

// ModuleDefFunction is a ModuleDefID naming a free function.
type ModuleDefFunction struct{ ID FuncID }

// ModuleDefTypeAlias is a ModuleDefID naming a type alias.
type ModuleDefTypeAlias struct{ ID TypeAliasID }

// ModuleDefTrait is a ModuleDefID naming a trait.
type ModuleDefTrait struct{ ID TraitID }

// ModuleDefGlobal is a ModuleDefID naming a global constant.
type ModuleDefGlobal struct{ ID GlobalID }

func (ModuleDefModule) moduleDefID()     {}
func (ModuleDefType) moduleDefID()       {}
func (ModuleDefFunction) moduleDefID()   {}
func (ModuleDefTypeAlias) moduleDefID()  {}
func (ModuleDefTrait) moduleDefID()      {}
func (ModuleDefGlobal) moduleDefID()     {}

// NsEntry is one binding: what it refers to, and how visible the
// binding is from outside the module that holds it.
type NsEntry struct {
	Def        ModuleDefID
	Visibility ItemVisibility
}

// PerNs is a name's binding in each of the two namespaces a single
// identifier can occupy at once: the type namespace (structs, traits,
// type aliases, modules) and the value namespace (functions, globals,
// locals). A struct name and a function sharing that name coexist
// this way without colliding, matching Noir's per_ns::PerNs.
type PerNs struct {
	Types  *NsEntry
	Values *NsEntry
}

// IsEmpty reports whether neither namespace is bound.
func (p PerNs) IsEmpty() bool { return p.Types == nil && p.Values == nil }

// TypeNsEntry builds a PerNs with the type namespace bound, the shape
// most declarations (struct/trait/type-alias/mod) use.
func TypeNsEntry(def ModuleDefID, vis ItemVisibility) PerNs {
	return PerNs{Types: &NsEntry{Def: def, Visibility: vis}}
}

// ValueNsEntry builds a PerNs with the value namespace bound, the
// shape functions and globals use.
func ValueNsEntry(def ModuleDefID, vis ItemVisibility) PerNs {
	return PerNs{Values: &NsEntry{Def: def, Visibility: vis}}
}

// mergePerNs combines two bindings for the same name, letting a
// struct and a same-named function (or a later `use` re-import)
// coexist in one PerNs slot instead of one clobbering the other.
func mergePerNs(existing, incoming PerNs) PerNs {
	merged := existing
	if incoming.Types != nil {
		merged.Types = incoming.Types
	}
	if incoming.Values != nil {
		merged.Values = incoming.Values
	}
	return merged
}
