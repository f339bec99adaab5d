package ast

// ItemKind is the sum type for top-level (and nested-module) items.
type ItemKind interface{ itemKind() }

// Item is one top-level declaration, with the span used by
// Finder.findInItem's "is the cursor even inside this item" prune.
type Item struct {
	Kind       ItemKind
	Span       Span
	Visibility Visibility
}

type ImportItem struct{ Tree *UseTree }

func (ImportItem) itemKind() {}

// SubmoduleItem is an inline `mod name { ... }` declaration. Its
// contents are walked with the module switched to the named child
// (Finder.findInItem), then restored.
type SubmoduleItem struct {
	Name     Ident
	Contents []*Item
}

func (SubmoduleItem) itemKind() {}

// ModuleDeclItem is `mod name;` pointing at a separate file; completion
// never needs to follow it (the file manager already resolved the
// module tree), so it's a no-op leaf like the original's ModuleDecl(_).
type ModuleDeclItem struct{ Name Ident }

func (ModuleDeclItem) itemKind() {}

type FunctionDef struct {
	Name       Ident
	Generics   []UnresolvedGeneric
	Parameters []Param
	ReturnType FunctionReturnType
	Body       BlockExpression
	// Span is the whole function definition's byte range, used by
	// ImplDecl's "stop past the cursor" method-loop optimization
	// (spec.md §9, SPEC_FULL.md §4).
	Span Span
}

type Param struct {
	Pattern Pattern
	Type    *UnresolvedType
}

type FuncDecl struct {
	Def        FunctionDef
	Visibility Visibility
}

func (FuncDecl) itemKind() {}

// TraitImplItem is the sum type for members of a `impl Trait for Type { ... }`.
type TraitImplItem interface{ traitImplItem() }

type TraitImplFunction struct{ Func FuncDecl }

func (TraitImplFunction) traitImplItem() {}

type TraitImplConstant struct {
	Name  Ident
	Type  *UnresolvedType
	Value Expression
}

func (TraitImplConstant) traitImplItem() {}

type TraitImplAssocType struct{ Name Ident }

func (TraitImplAssocType) traitImplItem() {}

type TraitImplDecl struct {
	ImplGenerics []UnresolvedGeneric
	TraitPath    Path
	TargetType   *UnresolvedType
	Items        []TraitImplItem
}

func (TraitImplDecl) itemKind() {}

// ImplDecl is an inherent `impl Type { ... }` block, whose method
// bodies are walked in declaration order with the "stop past cursor"
// optimization (see Finder.findInImpl).
type ImplDecl struct {
	Generics []UnresolvedGeneric
	Target   *UnresolvedType
	Methods  []FuncDecl
}

func (ImplDecl) itemKind() {}

type GlobalItem struct{ Let LetStatement }

func (GlobalItem) itemKind() {}

type TypeAliasDecl struct {
	Name Ident
	Type *UnresolvedType
}

func (TypeAliasDecl) itemKind() {}

type StructField struct {
	Name       Ident
	Type       *UnresolvedType
	Visibility Visibility
}

type StructDecl struct {
	Name     Ident
	Generics []UnresolvedGeneric
	Fields   []StructField
}

func (StructDecl) itemKind() {}

// TraitItem is the sum type for members of a `trait Name { ... }`.
type TraitItem interface{ traitItem() }

type TraitItemParam struct {
	Name Ident
	Type *UnresolvedType
}

type TraitConstraint struct{ Type *UnresolvedType }

type TraitItemFunction struct {
	Name        Ident
	Generics    []UnresolvedGeneric
	Parameters  []TraitItemParam
	ReturnType  FunctionReturnType
	WhereClause []TraitConstraint
	Body        *BlockExpression // nil when the trait leaves this unimplemented
}

func (TraitItemFunction) traitItem() {}

type TraitItemConstant struct {
	Name         Ident
	Type         *UnresolvedType
	DefaultValue *Expression
}

func (TraitItemConstant) traitItem() {}

type TraitItemAssocType struct{ Name Ident }

func (TraitItemAssocType) traitItem() {}

type TraitDecl struct {
	Name  Ident
	Items []TraitItem
}

func (TraitDecl) itemKind() {}
