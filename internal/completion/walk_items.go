package completion

import "orbitlang.org/go/internal/ast"

// findInItem is the entry point for every top-level (or
// inline-submodule-nested) declaration. Mirrors find_in_item.
func (f *Finder) findInItem(item *ast.Item) {
	if !f.includesSpan(item.Span) {
		return
	}

	switch kind := item.Kind.(type) {
	case ast.ImportItem:
		f.findInUseTree(kind.Tree, nil)
	case ast.SubmoduleItem:
		f.findInSubmodule(kind)
	case ast.FuncDecl:
		f.findInFuncDecl(kind)
	case ast.TraitImplDecl:
		f.findInTraitImpl(kind)
	case ast.ImplDecl:
		f.findInImpl(kind)
	case ast.GlobalItem:
		f.findInLetStatement(kind.Let, false)
	case ast.TypeAliasDecl:
		f.findInUnresolvedType(kind.Type)
	case ast.StructDecl:
		f.findInStructDecl(kind)
	case ast.TraitDecl:
		f.findInTraitDecl(kind)
	case ast.ModuleDeclItem:
		// Points at a separate file; nothing to walk here.
	}
}

// findInSubmodule switches f.moduleID to the named child module (if
// one is recorded for it in the current crate's def map), walks the
// submodule's items, then restores the previous module. Mirrors the
// ItemKind::Submodules arm of find_in_item (spec.md §4.C "Module
// descent").
func (f *Finder) findInSubmodule(mod ast.SubmoduleItem) {
	previous := f.moduleID

	defMap := f.defMaps[f.moduleID.Crate]
	if defMap != nil {
		moduleData := defMap.ModuleData(f.moduleID.Local)
		if child, ok := moduleData.Children[mod.Name.Name]; ok {
			f.moduleID = defMap.ModuleIDOf(child)
		}
	}

	for _, item := range mod.Contents {
		f.findInItem(item)
	}

	f.moduleID = previous
}

func (f *Finder) findInFuncDecl(decl ast.FuncDecl) {
	f.findInFunctionDef(decl.Def)
}

// findInFunctionDef walks a function's generics, parameter/return
// types, then its body with parameters bound as locals. Mirrors
// find_in_noir_function.
func (f *Finder) findInFunctionDef(def ast.FunctionDef) {
	oldTypeParameters := f.snapshotTypeParameters()
	f.collectTypeParametersInGenerics(def.Generics)

	for _, param := range def.Parameters {
		f.findInUnresolvedType(param.Type)
	}
	f.findInFunctionReturnType(def.ReturnType)

	f.clearLocals()
	for _, param := range def.Parameters {
		f.collectLocalVariables(param.Pattern)
	}

	f.findInBlockExpression(def.Body)

	f.restoreTypeParameters(oldTypeParameters)
}

// findInTraitImpl mirrors find_in_noir_trait_impl.
func (f *Finder) findInTraitImpl(impl ast.TraitImplDecl) {
	f.clearTypeParameters()
	f.collectTypeParametersInGenerics(impl.ImplGenerics)

	for _, item := range impl.Items {
		f.findInTraitImplItem(item)
	}

	f.clearTypeParameters()
}

func (f *Finder) findInTraitImplItem(item ast.TraitImplItem) {
	switch it := item.(type) {
	case ast.TraitImplFunction:
		f.findInFuncDecl(it.Func)
	case ast.TraitImplConstant, ast.TraitImplAssocType:
		// No completion contribution, matching the original's
		// Constant(_, _, _) / Type { .. } no-ops.
	}
}

// findInImpl mirrors find_in_type_impl, including the "stop past the
// cursor" optimization (SPEC_FULL.md §4 "Optimization").
func (f *Finder) findInImpl(impl ast.ImplDecl) {
	f.clearTypeParameters()
	f.collectTypeParametersInGenerics(impl.Generics)

	for _, method := range impl.Methods {
		f.findInFuncDecl(method)
		if method.Def.Span.End > f.byteIndex {
			break
		}
	}

	f.clearTypeParameters()
}

// findInStructDecl mirrors find_in_noir_struct.
func (f *Finder) findInStructDecl(decl ast.StructDecl) {
	f.clearTypeParameters()
	f.collectTypeParametersInGenerics(decl.Generics)

	for _, field := range decl.Fields {
		f.findInUnresolvedType(field.Type)
	}

	f.clearTypeParameters()
}

// findInTraitDecl mirrors find_in_noir_trait.
func (f *Finder) findInTraitDecl(decl ast.TraitDecl) {
	for _, item := range decl.Items {
		f.findInTraitItem(item)
	}
}

func (f *Finder) findInTraitItem(item ast.TraitItem) {
	switch it := item.(type) {
	case ast.TraitItemFunction:
		oldTypeParameters := f.snapshotTypeParameters()
		f.collectTypeParametersInGenerics(it.Generics)

		for _, param := range it.Parameters {
			f.findInUnresolvedType(param.Type)
		}
		f.findInFunctionReturnType(it.ReturnType)
		for _, constraint := range it.WhereClause {
			f.findInUnresolvedType(constraint.Type)
		}

		if it.Body != nil {
			f.clearLocals()
			for _, param := range it.Parameters {
				f.localVariables[param.Name.Name] = param.Name.Span
			}
			f.findInBlockExpression(*it.Body)
		}

		f.restoreTypeParameters(oldTypeParameters)
	case ast.TraitItemConstant:
		f.findInUnresolvedType(it.Type)
		if it.DefaultValue != nil {
			f.findInExpression(*it.DefaultValue)
		}
	case ast.TraitItemAssocType:
		// No-op, matching Type { name: _ }.
	}
}
