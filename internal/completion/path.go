// Path / use-tree specializer (spec.md §4.F): decides which lookup
// mode applies given a path's kind, the split between resolved prefix
// and trailing text, and whether completion stands at the root.
package completion

import (
	"orbitlang.org/go/internal/ast"
	"orbitlang.org/go/internal/defmap"
	"orbitlang.org/go/internal/interner"
	"orbitlang.org/go/internal/resolver"
)

// findInPath mirrors find_in_path. Only ever produces completions when
// the cursor sits exactly at the path's span end (spec.md §8
// "Boundary behaviors": one byte further triggers nothing).
func (f *Finder) findInPath(path ast.Path, requested RequestedItems) {
	if f.byteIndex != path.Span.End {
		return
	}

	afterColons := f.byteIs(':')

	idents := path.Idents()
	var prefix string
	var atRoot bool

	if afterColons {
		prefix = ""
		atRoot = false
	} else {
		if len(idents) == 0 {
			return
		}
		prefix = idents[len(idents)-1].Name
		idents = idents[:len(idents)-1]
		atRoot = len(idents) == 0
	}

	isSingleSegment := !afterColons && len(idents) == 0 && path.Kind == ast.PathPlain

	var moduleID defmap.ModuleID
	if len(idents) == 0 {
		moduleID = f.moduleID
	} else {
		def, ok := f.resolvePath(idents)
		if !ok {
			return
		}
		switch d := def.(type) {
		case defmap.ModuleDefModule:
			moduleID = d.ID
		case defmap.ModuleDefType:
			s, ok := f.interner.GetStruct(d.ID)
			if !ok {
				return
			}
			f.completeTypeMethods(structSelfType(s), prefix, AnyFunctionKind)
			return
		case defmap.ModuleDefFunction:
			// Nothing inside a function.
			return
		case defmap.ModuleDefTypeAlias:
			target, ok := f.interner.GetTypeAlias(d.ID)
			if !ok {
				return
			}
			f.completeTypeMethods(target, prefix, AnyFunctionKind)
			return
		case defmap.ModuleDefTrait:
			// Trait-method-from-import completion is deliberately
			// deferred (spec.md §9 Open Question (a)).
			return
		case defmap.ModuleDefGlobal:
			return
		default:
			return
		}
	}

	moduleCompletionKind := ModuleAllVisibleItems
	if afterColons {
		moduleCompletionKind = ModuleDirectChildren
	}

	f.completeInModule(moduleID, prefix, path.Kind, atRoot, moduleCompletionKind, FunctionNameAndParameters, requested)

	if isSingleSegment {
		switch requested {
		case AnyItems:
			f.localVariablesCompletion(prefix)
			f.builtinFunctionsCompletion(prefix)
			f.builtinValuesCompletion(prefix)
		case OnlyTypes:
			f.builtinTypesCompletion(prefix)
			f.typeParametersCompletion(prefix)
		}
	}
}

// localVariablesCompletion mirrors local_variables_completion.
func (f *Finder) localVariablesCompletion(prefix string) {
	for name, span := range f.localVariables {
		if !prefixMatches(name, prefix) {
			continue
		}
		detail := ""
		if ref, ok := f.interner.FindReferenced(f.file, span); ok {
			if local, ok := ref.(interner.ReferenceLocal); ok {
				if typ, ok := f.interner.DefinitionType(local.Definition); ok {
					detail = typ.String()
				}
			}
		}
		f.emit(simpleItem(name, KindVariable, detail))
	}
}

// typeParametersCompletion mirrors type_parameters_completion.
func (f *Finder) typeParametersCompletion(prefix string) {
	for name := range f.typeParameters {
		if prefixMatches(name, prefix) {
			f.emit(simpleItem(name, KindTypeParameter, ""))
		}
	}
}

// completeInModule mirrors complete_in_module.
func (f *Finder) completeInModule(
	moduleID defmap.ModuleID,
	prefix string,
	pathKind ast.PathKind,
	atRoot bool,
	moduleCompletionKind ModuleCompletionKind,
	funcCompletionKind FunctionCompletionKind,
	requested RequestedItems,
) {
	defMap := f.defMaps[moduleID.Crate]
	if defMap == nil {
		return
	}
	moduleData := defMap.ModuleData(moduleID.Local)

	if atRoot {
		switch pathKind {
		case ast.PathCrate:
			moduleData = defMap.ModuleData(defMap.Root())
		case ast.PathSuper:
			if moduleData.Parent == nil {
				return
			}
			moduleData = defMap.ModuleData(*moduleData.Parent)
		case ast.PathDep, ast.PathPlain:
			// Unchanged.
		}
	}

	funcKind := AnyFunctionKind

	var items map[string]defmap.PerNs
	if moduleCompletionKind == ModuleDirectChildren {
		items = moduleData.Definitions()
	} else {
		items = moduleData.Scope()
	}

	for _, name := range sortedNames(items) {
		if !prefixMatches(name, prefix) {
			continue
		}
		perNs := items[name]
		if perNs.Types != nil && visibilityAllows(f, moduleID, perNs.Types) {
			if item, ok := f.moduleDefIDCompletionItem(perNs.Types.Def, name, funcCompletionKind, funcKind, requested); ok {
				f.emit(item)
			}
		}
		if perNs.Values != nil {
			if visibilityAllows(f, moduleID, perNs.Values) {
				if item, ok := f.moduleDefIDCompletionItem(perNs.Values.Def, name, funcCompletionKind, funcKind, requested); ok {
					f.emit(item)
				}
			}
		}
	}

	if atRoot && pathKind == ast.PathPlain {
		for _, dep := range f.dependencies {
			if prefixMatches(dep.AsName(), prefix) {
				f.emit(crateItem(dep.AsName()))
			}
		}
		if prefixMatches("crate::", prefix) {
			f.emit(keywordItem("crate::"))
		}
		if moduleData.Parent != nil && prefixMatches("super::", prefix) {
			f.emit(keywordItem("super::"))
		}
	}
}

// visibilityAllows applies spec.md §4.A's visibility predicate to one
// namespace slot's binding.
func visibilityAllows(f *Finder, fromModule defmap.ModuleID, entry *defmap.NsEntry) bool {
	targetModule := fromModule
	if modDef, ok := entry.Def.(defmap.ModuleDefModule); ok {
		targetModule = modDef.ID
	}
	return canReferenceFrom(f, targetModule, entry.Visibility)
}

// resolvePath mirrors resolve_path: try the external path resolver
// first, falling back to whatever the interner recorded was
// referenced at the final segment's span.
func (f *Finder) resolvePath(idents []ast.Ident) (defmap.ModuleDefID, bool) {
	res, err := resolver.New(f.rootModuleID).Resolve(f.defMaps, idents)
	if err == nil {
		return res.ModuleDefID, true
	}

	last := idents[len(idents)-1]
	if ref, ok := f.interner.FindReferenced(f.file, last.Span); ok {
		if def, ok := moduleDefIDFromReferenceID(ref); ok {
			return def, true
		}
	}
	return nil, false
}

// resolveModule mirrors resolve_module: resolvePath, but only a
// Module binding counts as success.
func (f *Finder) resolveModule(idents []ast.Ident) (defmap.ModuleID, bool) {
	def, ok := f.resolvePath(idents)
	if !ok {
		return defmap.ModuleID{}, false
	}
	modDef, ok := def.(defmap.ModuleDefModule)
	if !ok {
		return defmap.ModuleID{}, false
	}
	return modDef.ID, true
}

// moduleDefIDFromReferenceID mirrors module_def_id_from_reference_id:
// only reference kinds that themselves name a module-level item
// translate to a ModuleDefID; a local or struct-member reference does
// not (spec.md §9).
func moduleDefIDFromReferenceID(ref interner.ReferenceID) (defmap.ModuleDefID, bool) {
	if d, ok := ref.(interner.ReferenceModuleDef); ok {
		return d.Def, true
	}
	return nil, false
}
