// Name-lookup / enumeration (spec.md §4.E): produces candidates from a
// module's scope, a struct's fields, a type's methods, and builds the
// function/module-def completion items that back every other
// enumeration routine in this package.
package completion

import (
	"strings"

	"orbitlang.org/go/internal/defmap"
	"orbitlang.org/go/internal/types"
	"orbitlang.org/go/internal/visibility"
)

// prefixMatches is the engine's only matching rule: a case-sensitive
// prefix test (spec.md §4.E, "Prefix matching"). Mirrors name_matches.
func prefixMatches(name, prefix string) bool {
	return strings.HasPrefix(name, prefix)
}

// completeTypeFieldsAndMethods mirrors complete_type_fields_and_methods:
// struct types contribute fields; a Reference transparently defers to
// its element (matching the original's MutableReference/Alias
// handling, collapsed to one variant since internal/types has no
// separate Alias type). Every other type falls through
// to method completion only.
func (f *Finder) completeTypeFieldsAndMethods(typ types.Type, prefix string) {
	switch t := typ.(type) {
	case types.Struct:
		f.completeStructFields(t, prefix)
	case types.Reference:
		f.completeTypeFieldsAndMethods(t.Element, prefix)
		return
	}

	f.completeTypeMethods(typ, prefix, SelfTypeFunctionKind(typ))
}

// completeTypeMethods mirrors complete_type_methods: ask the interner
// for typ's method table (already deref'd through references/aliases,
// see interner.GetTypeMethods), and emit one function-completion item
// per matching name.
func (f *Finder) completeTypeMethods(typ types.Type, prefix string, funcKind FunctionKind) {
	methods := f.interner.GetTypeMethods(typ)
	for _, m := range methods {
		if !prefixMatches(m.Name, prefix) {
			continue
		}
		if item, ok := f.functionCompletionItem(m.FuncID, m.Name, FunctionNameAndParameters, funcKind); ok {
			f.emit(item)
		}
	}
}

// completeStructFields mirrors complete_struct_fields, filtered by
// internal/visibility.StructFieldIsVisible (a distinct entry point
// from CanReference, see SPEC_FULL.md §4).
func (f *Finder) completeStructFields(s types.Struct, prefix string) {
	if s.Def == nil {
		return
	}
	for _, field := range s.Def.Fields {
		if !prefixMatches(field.Name, prefix) {
			continue
		}
		if !visibility.StructFieldIsVisible(visibility.DefMaps(f.defMaps), s.Def, field.Visibility, f.moduleID) {
			continue
		}
		f.emit(simpleItem(field.Name, KindField, field.Type.String()))
	}
}

// functionCompletionItem builds the completion item for a function or
// method id, rendering a name+params snippet when requested. Returns
// false if the id has no recorded signature (shouldn't happen for a
// function actually reachable through the def map, but a missing
// record degrades to "skip" rather than panic, per spec.md §7).
func (f *Finder) functionCompletionItem(id defmap.FuncID, name string, kind FunctionCompletionKind, _ FunctionKind) (Item, bool) {
	params, ok := f.interner.FunctionParams(id)
	if !ok {
		return Item{}, false
	}

	if kind == FunctionName || len(params) == 0 {
		return Item{
			Label:            name,
			Kind:             KindFunction,
			InsertText:       name,
			InsertTextFormat: PlainText,
		}, true
	}

	var b strings.Builder
	b.WriteString(name)
	b.WriteByte('(')
	for i, p := range params {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString("${")
		b.WriteString(itoa(i + 1))
		b.WriteByte(':')
		b.WriteString(p)
		b.WriteByte('}')
	}
	b.WriteByte(')')

	return Item{
		Label:            name,
		Kind:             KindFunction,
		InsertText:       b.String(),
		InsertTextFormat: Snippet,
	}, true
}

func itoa(n int) string {
	if n == 0 {
		return "0"
	}
	var buf [20]byte
	i := len(buf)
	for n > 0 {
		i--
		buf[i] = byte('0' + n%10)
		n /= 10
	}
	return string(buf[i:])
}

// moduleDefIDCompletionItem mirrors module_def_id_completion_item (not
// present in the retrieval pack's completion.rs excerpt; reconstructed
// from its call sites and requestedItems filter): dispatches on what
// the binding names, building the matching kind of Item, and applies
// the OnlyTypes filter (functions and globals are never type
// positions).
func (f *Finder) moduleDefIDCompletionItem(
	def defmap.ModuleDefID,
	name string,
	funcCompletionKind FunctionCompletionKind,
	funcKind FunctionKind,
	requested RequestedItems,
) (Item, bool) {
	switch d := def.(type) {
	case defmap.ModuleDefModule:
		return simpleItem(name, KindModule, ""), true
	case defmap.ModuleDefType:
		return simpleItem(name, KindStruct, ""), true
	case defmap.ModuleDefTypeAlias:
		return simpleItem(name, KindTypeAlias, ""), true
	case defmap.ModuleDefTrait:
		return simpleItem(name, KindTrait, ""), true
	case defmap.ModuleDefFunction:
		if requested == OnlyTypes {
			return Item{}, false
		}
		return f.functionCompletionItem(d.ID, name, funcCompletionKind, funcKind)
	case defmap.ModuleDefGlobal:
		if requested == OnlyTypes {
			return Item{}, false
		}
		return simpleItem(name, KindGlobal, ""), true
	}
	return Item{}, false
}
