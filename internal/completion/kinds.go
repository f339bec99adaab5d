// Package completion is the cursor-driven completion engine: the core
// this whole repository exists to implement (spec.md §1-§4). Grounded
// directly, method for method, on
// _examples/original_source/tooling/lsp/src/requests/completion.rs,
// with its kinds/completion_items/sort_text/builtins submodules (not
// present in the retrieval pack — only completion.rs survived)
// reimplemented from the names and call shapes completion.rs uses
// them with.
package completion

import "orbitlang.org/go/internal/types"

// FunctionCompletionKind is request-kind enum §4.D: whether a function
// candidate's label/insert-text includes a parameter snippet.
type FunctionCompletionKind int

const (
	FunctionName FunctionCompletionKind = iota
	FunctionNameAndParameters
)

// ModuleCompletionKind is request-kind enum §4.D: whether module
// enumeration walks only direct declarations or the full import scope.
type ModuleCompletionKind int

const (
	ModuleDirectChildren ModuleCompletionKind = iota
	ModuleAllVisibleItems
)

// RequestedItems is request-kind enum §4.D: the any-items/only-types
// filter applied in type positions (constructor paths, annotations).
type RequestedItems int

const (
	AnyItems RequestedItems = iota
	OnlyTypes
)

// FunctionKind is request-kind enum §4.D: whether method candidates
// are restricted to those whose receiver unifies with SelfType.
type FunctionKind struct {
	// Any is true for "no restriction" (FunctionKind::Any); when false,
	// SelfType carries the receiver type being completed against
	// (FunctionKind::SelfType(Type)).
	Any      bool
	SelfType types.Type
}

// AnyFunctionKind is the FunctionKind::Any constant value.
var AnyFunctionKind = FunctionKind{Any: true}

// SelfTypeFunctionKind builds a FunctionKind::SelfType(t).
func SelfTypeFunctionKind(t types.Type) FunctionKind {
	return FunctionKind{SelfType: t}
}
