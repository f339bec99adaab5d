// Package interner is the engine's NodeInterner: the single table
// mapping definitions and expression locations to their resolved
// types, and ids to the struct/type-alias data they name. Everything
// internal/completion knows about "what type is this" or "what does
// this struct look like" goes through it. Grounded on
// macros_api::NodeInterner as used throughout completion.rs
// (type_at_location, definition_type, find_referenced,
// get_type_methods, get_struct, get_type_alias).
package interner

import (
	"sort"

	"orbitlang.org/go/internal/ast"
	"orbitlang.org/go/internal/defmap"
	"orbitlang.org/go/internal/fm"
	"orbitlang.org/go/internal/types"
)

// DefinitionID is an opaque handle for one local binding: a let
// pattern, a function parameter, a for-loop variable, or a global.
// Mirrors node_interner::DefinitionId.
type DefinitionID int

// ReferenceID is what a name reference (an Ident written somewhere in
// the source) was resolved to: either a local binding, or an item
// reachable as a ModuleDefID. Mirrors node_interner::ReferenceId,
// trimmed to the variants completion.rs's module_def_id_from_reference_id
// and find_in_lvalue actually switch on; the original's StructMember,
// Global and Reference(_, _) variants never drive a completion
// decision by themselves and are folded into "no reference" here.
type ReferenceID interface{ referenceID() }

// ReferenceLocal is a reference to a local variable/parameter binding.
type ReferenceLocal struct{ Definition DefinitionID }

func (ReferenceLocal) referenceID() {}

// ReferenceModuleDef is a reference to a module-level item (module,
// struct, trait, function or type alias).
type ReferenceModuleDef struct{ Def defmap.ModuleDefID }

func (ReferenceModuleDef) referenceID() {}

type locatedType struct {
	span ast.Span
	typ  types.Type
}

type fileSpan struct {
	file fm.FileID
	span ast.Span
}

// NodeInterner is the engine's global symbol/type table, one instance
// shared by every module in a compilation.
type NodeInterner struct {
	definitionTypes map[DefinitionID]types.Type
	referenced      map[fileSpan]ReferenceID
	structs         map[defmap.StructID]*types.StructType
	typeAliases     map[defmap.TypeAliasID]types.Type
	funcParams      map[defmap.FuncID][]string
	locationsByFile map[fm.FileID][]locatedType
	locationsSorted map[fm.FileID]bool
}

// New returns an empty NodeInterner.
func New() *NodeInterner {
	return &NodeInterner{
		definitionTypes: make(map[DefinitionID]types.Type),
		referenced:      make(map[fileSpan]ReferenceID),
		structs:         make(map[defmap.StructID]*types.StructType),
		typeAliases:     make(map[defmap.TypeAliasID]types.Type),
		funcParams:      make(map[defmap.FuncID][]string),
		locationsByFile: make(map[fm.FileID][]locatedType),
		locationsSorted: make(map[fm.FileID]bool),
	}
}

// AddFunction records a free function or method's parameter names
// under its id, feeding the FunctionCompletionKind::NameAndParameters
// snippet built by internal/completion's functionCompletionItem.
// Matches node_interner::function_meta's parameter list, trimmed to
// just the names completion ever renders.
func (n *NodeInterner) AddFunction(id defmap.FuncID, paramNames []string) {
	n.funcParams[id] = paramNames
}

// FunctionParams returns the parameter names recorded for id.
func (n *NodeInterner) FunctionParams(id defmap.FuncID) ([]string, bool) {
	p, ok := n.funcParams[id]
	return p, ok
}

// SetDefinitionType records the resolved type of a local binding.
func (n *NodeInterner) SetDefinitionType(id DefinitionID, t types.Type) {
	n.definitionTypes[id] = t
}

// DefinitionType returns the resolved type of a local binding, e.g.
// the variable bound by a `let` statement or a function parameter.
// Matches interner.definition_type(definition_id) in find_in_lvalue
// and local_variables_completion.
func (n *NodeInterner) DefinitionType(id DefinitionID) (types.Type, bool) {
	t, ok := n.definitionTypes[id]
	return t, ok
}

// RecordReference records what the identifier written at span in file
// resolved to, so Finder.findInLValue and Finder.resolvePath's
// fallback can recover it without re-resolving the path. Matches the
// resolver/binder call sites that populate node_interner's reference
// table in the original compiler.
func (n *NodeInterner) RecordReference(file fm.FileID, span ast.Span, ref ReferenceID) {
	n.referenced[fileSpan{file: file, span: span}] = ref
}

// FindReferenced returns what the identifier at span in file resolved
// to, if anything was ever recorded for that exact span. Matches
// interner.find_referenced(location) in find_in_lvalue and
// resolve_path.
func (n *NodeInterner) FindReferenced(file fm.FileID, span ast.Span) (ReferenceID, bool) {
	ref, ok := n.referenced[fileSpan{file: file, span: span}]
	return ref, ok
}

// AddStruct registers a struct's field/method shape under its id.
func (n *NodeInterner) AddStruct(s *types.StructType) {
	n.structs[s.ID] = s
}

// GetStruct returns the struct registered under id. Matches
// interner.get_struct(id) in complete_type_fields_and_methods.
func (n *NodeInterner) GetStruct(id defmap.StructID) (*types.StructType, bool) {
	s, ok := n.structs[id]
	return s, ok
}

// SetTypeAlias records the type a type-alias id expands to.
func (n *NodeInterner) SetTypeAlias(id defmap.TypeAliasID, t types.Type) {
	n.typeAliases[id] = t
}

// GetTypeAlias resolves a type-alias id to its underlying type.
// Matches interner.get_type_alias(id) when a Path resolves to a
// ModuleDefTypeAlias and completion needs to see through it to find
// fields/methods.
func (n *NodeInterner) GetTypeAlias(id defmap.TypeAliasID) (types.Type, bool) {
	t, ok := n.typeAliases[id]
	return t, ok
}

// GetTypeMethods returns the methods available on t (after
// dereferencing), for complete_type_methods. A type with no methods,
// or that isn't a struct, returns nil.
func (n *NodeInterner) GetTypeMethods(t types.Type) []types.Method {
	s, ok := types.Deref(t).(types.Struct)
	if !ok || s.Def == nil {
		return nil
	}
	return s.Def.Methods
}

// RecordTypeLocation records that the expression spanning span in
// file has resolved type t, feeding TypeAtLocation.
func (n *NodeInterner) RecordTypeLocation(file fm.FileID, span ast.Span, t types.Type) {
	n.locationsByFile[file] = append(n.locationsByFile[file], locatedType{span: span, typ: t})
	n.locationsSorted[file] = false
}

// TypeAtLocation returns the type of the smallest recorded expression
// span containing byteIndex, matching interner.type_at_location used
// by find_in_expressions for the "foo().|" trailing-dot special case.
func (n *NodeInterner) TypeAtLocation(file fm.FileID, byteIndex int) (types.Type, bool) {
	locs := n.locationsByFile[file]
	if len(locs) == 0 {
		return nil, false
	}
	if !n.locationsSorted[file] {
		sort.Slice(locs, func(i, j int) bool {
			li, lj := locs[i].span, locs[j].span
			if li.Start != lj.Start {
				return li.Start < lj.Start
			}
			return (li.End - li.Start) < (lj.End - lj.Start)
		})
		n.locationsByFile[file] = locs
		n.locationsSorted[file] = true
	}

	var best *locatedType
	for i := range locs {
		l := &locs[i]
		if l.span.Start <= byteIndex && byteIndex <= l.span.End {
			if best == nil || (l.span.End-l.span.Start) < (best.span.End-best.span.Start) {
				best = l
			}
		}
	}
	if best == nil {
		return nil, false
	}
	return best.typ, true
}
