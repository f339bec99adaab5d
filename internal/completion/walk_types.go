package completion

import "orbitlang.org/go/internal/ast"

// findInFunctionReturnType mirrors find_in_function_return_type.
func (f *Finder) findInFunctionReturnType(rt ast.FunctionReturnType) {
	if explicit, ok := rt.(ast.ExplicitReturnType); ok {
		f.findInUnresolvedType(explicit.Type)
	}
}

func (f *Finder) findInUnresolvedTypes(types []*ast.UnresolvedType) {
	for _, t := range types {
		f.findInUnresolvedType(t)
	}
}

// findInUnresolvedType descends into a syntactic type, pruning on its
// span first, then dispatching the variants that carry a Path (Named,
// TraitAsType) to findInPath with RequestedItems::OnlyTypes. Mirrors
// find_in_unresolved_type.
func (f *Finder) findInUnresolvedType(t *ast.UnresolvedType) {
	if t == nil {
		return
	}
	if t.Span != nil && !f.includesSpan(*t.Span) {
		return
	}

	switch data := t.Data.(type) {
	case ast.ArrayType:
		f.findInUnresolvedType(data.Element)
	case ast.SliceType:
		f.findInUnresolvedType(data.Element)
	case ast.ParenthesizedType:
		f.findInUnresolvedType(data.Inner)
	case ast.NamedType:
		f.findInPath(data.Path, OnlyTypes)
		f.findInUnresolvedTypes(data.Generics)
	case ast.TraitAsType:
		f.findInPath(data.Path, OnlyTypes)
		f.findInUnresolvedTypes(data.Generics)
	case ast.MutableReferenceType:
		f.findInUnresolvedType(data.Inner)
	case ast.TupleType:
		f.findInUnresolvedTypes(data.Elements)
	case ast.FunctionType:
		f.findInUnresolvedTypes(data.Args)
		f.findInUnresolvedType(data.Ret)
		f.findInUnresolvedType(data.Env)
	case ast.AsTraitPathType:
		f.findInAsTraitPath(data.Path)
	case ast.OpaqueType:
		// Primitives/literals/already-resolved/quoted types: nothing
		// to walk into.
	}
}
