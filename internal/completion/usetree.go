package completion

import "orbitlang.org/go/internal/ast"

// findInUseTree mirrors find_in_use_tree: maintains a stack of path
// prefixes as it descends a (possibly nested) use-tree.
func (f *Finder) findInUseTree(tree *ast.UseTree, prefixes []ast.Path) {
	switch kind := tree.Kind.(type) {
	case ast.UseTreePath:
		prefixes = append(prefixes, tree.Prefix)
		f.findInUseTreePath(prefixes, kind.Ident, kind.Alias)
	case ast.UseTreeList:
		prefixes = append(prefixes, tree.Prefix)
		for _, sub := range kind.Trees {
			f.findInUseTree(sub, prefixes)
		}
	}
}

// findInUseTreePath mirrors find_in_use_tree_path. An alias suppresses
// completion entirely on that segment (spec.md §9 Open Question (b),
// "Aliased imports are intentionally ignored").
func (f *Finder) findInUseTreePath(prefixes []ast.Path, ident ast.Ident, alias *ast.Ident) {
	if alias != nil {
		return
	}

	afterColons := f.byteIs(':')
	atIdentEnd := f.byteIndex == ident.Span.End
	atIdentColonsEnd := afterColons && f.byteIndex-2 == ident.Span.End

	if !atIdentEnd && !atIdentColonsEnd {
		return
	}

	if len(prefixes) == 0 {
		return
	}
	pathKind := prefixes[0].Kind

	var segments []ast.Ident
	for _, prefix := range prefixes {
		segments = append(segments, prefix.Idents()...)
	}

	moduleCompletionKind := ModuleDirectChildren
	funcCompletionKind := FunctionName
	requested := AnyItems

	if afterColons {
		segments = append(segments, ident)
		moduleID, ok := f.resolveModule(segments)
		if !ok {
			return
		}
		f.completeInModule(moduleID, "", pathKind, false, moduleCompletionKind, funcCompletionKind, requested)
		return
	}

	prefix := ident.Name
	if len(segments) == 0 {
		f.completeInModule(f.moduleID, prefix, pathKind, true, moduleCompletionKind, funcCompletionKind, requested)
		return
	}
	moduleID, ok := f.resolveModule(segments)
	if !ok {
		return
	}
	f.completeInModule(moduleID, prefix, pathKind, false, moduleCompletionKind, funcCompletionKind, requested)
}
