package completion

import "orbitlang.org/go/internal/ast"

// collectLocalVariables recurses into pattern, inserting every bound
// identifier into f.localVariables. Mirrors collect_local_variables's
// four-variant recursion (spec.md §4.C "Pattern binding extraction").
func (f *Finder) collectLocalVariables(pattern ast.Pattern) {
	switch p := pattern.(type) {
	case ast.IdentPattern:
		f.localVariables[p.Ident.Name] = p.Ident.Span
	case ast.MutablePattern:
		f.collectLocalVariables(p.Pattern)
	case ast.TuplePattern:
		for _, sub := range p.Patterns {
			f.collectLocalVariables(sub)
		}
	case ast.StructPattern:
		for _, field := range p.Fields {
			f.collectLocalVariables(field.Pattern)
		}
	}
}

// collectTypeParametersInGenerics inserts every generic's name into
// f.typeParameters. Mirrors collect_type_parameters_in_generics /
// collect_type_parameters_in_generic.
func (f *Finder) collectTypeParametersInGenerics(generics []ast.UnresolvedGeneric) {
	for _, g := range generics {
		switch gen := g.(type) {
		case ast.GenericVariable:
			f.typeParameters[gen.Ident.Name] = struct{}{}
		case ast.NumericGeneric:
			f.typeParameters[gen.Ident.Name] = struct{}{}
		case ast.ResolvedGeneric:
			// Already bound during macro expansion; nothing to collect.
		}
	}
}
