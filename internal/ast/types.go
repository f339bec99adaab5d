package ast

// UnresolvedTypeData is the sum type for a syntactic type expression
// before it has been bound to an internal/types.Type. Most variants
// just hold nested types; Named and TraitAsType are the ones that carry
// a Path and so are the ones internal/completion actually walks into.
type UnresolvedTypeData interface{ unresolvedTypeData() }

type ArrayType struct{ Element *UnresolvedType }

func (ArrayType) unresolvedTypeData() {}

type SliceType struct{ Element *UnresolvedType }

func (SliceType) unresolvedTypeData() {}

type ParenthesizedType struct{ Inner *UnresolvedType }

func (ParenthesizedType) unresolvedTypeData() {}

// NamedType is `Path<T, U>`, e.g. `Foo::Bar<T>` or a plain `MyStruct`.
type NamedType struct {
	Path     Path
	Generics []*UnresolvedType
}

func (NamedType) unresolvedTypeData() {}

// TraitAsType is `impl Trait<T>` used in argument/return position.
type TraitAsType struct {
	Path     Path
	Generics []*UnresolvedType
}

func (TraitAsType) unresolvedTypeData() {}

type MutableReferenceType struct{ Inner *UnresolvedType }

func (MutableReferenceType) unresolvedTypeData() {}

type TupleType struct{ Elements []*UnresolvedType }

func (TupleType) unresolvedTypeData() {}

// FunctionType is `fn(Args) -> Ret` with an optional closure environment type.
type FunctionType struct {
	Args []*UnresolvedType
	Ret  *UnresolvedType
	Env  *UnresolvedType
}

func (FunctionType) unresolvedTypeData() {}

// AsTraitPathType is `<T as Trait>::Assoc`.
type AsTraitPathType struct{ Path AsTraitPath }

func (AsTraitPathType) unresolvedTypeData() {}

// OpaqueType covers every variant with no nested Path or type worth
// walking into for completion purposes (primitives, literals, already
// resolved/errored types, quoted/format-string types).
type OpaqueType struct{ Name string }

func (OpaqueType) unresolvedTypeData() {}

// UnresolvedType pairs syntactic type data with its span. Span is a
// pointer because some synthesized types (e.g. a default return type)
// have none.
type UnresolvedType struct {
	Data UnresolvedTypeData
	Span *Span
}

// FunctionReturnType is the sum type for a function signature's return
// annotation: either omitted (defaults to unit) or an explicit type.
type FunctionReturnType interface{ functionReturnType() }

type DefaultReturnType struct{ Span Span }

func (DefaultReturnType) functionReturnType() {}

type ExplicitReturnType struct{ Type *UnresolvedType }

func (ExplicitReturnType) functionReturnType() {}

// UnresolvedGeneric is the sum type for one entry in a generics list:
// `T`, `let N: u32`, or a generic already bound during macro expansion.
type UnresolvedGeneric interface{ unresolvedGeneric() }

type GenericVariable struct{ Ident Ident }

func (GenericVariable) unresolvedGeneric() {}

type NumericGeneric struct {
	Ident Ident
	Type  *UnresolvedType
}

func (NumericGeneric) unresolvedGeneric() {}

type ResolvedGeneric struct{ Ident Ident }

func (ResolvedGeneric) unresolvedGeneric() {}

// AsTraitPath is `<Type as Trait<...>>::name`, used both as an
// expression (associated-constant access) and as a type.
type AsTraitPath struct {
	TypePath  *UnresolvedType
	TraitPath Path
	Ident     Ident
	Span      Span
}
