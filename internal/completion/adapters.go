package completion

import (
	"sort"

	"orbitlang.org/go/internal/defmap"
	"orbitlang.org/go/internal/types"
	"orbitlang.org/go/internal/visibility"
)

// canReferenceFrom applies internal/visibility.CanReference using this
// request's importing crate (the crate owning the file being edited,
// constant for the whole request, matching NodeFinder's root_module_id.krate)
// and current module.
func canReferenceFrom(f *Finder, targetModule defmap.ModuleID, vis defmap.ItemVisibility) bool {
	return visibility.CanReference(
		visibility.DefMaps(f.defMaps),
		f.rootModuleID.Crate,
		f.moduleID.Local,
		targetModule,
		vis,
	)
}

// structSelfType wraps a resolved struct declaration as the Type value
// completeTypeMethods expects, with no generic arguments applied.
// Generic arguments are not substituted anywhere in this package:
// completeStructFields lists each field with its declared type.
func structSelfType(s *types.StructType) types.Type {
	return types.Struct{Def: s}
}

// sortedNames returns items' keys sorted. The keys of a Go map are
// already unique by construction — defmap.ModuleData.Declare/Import
// both merge into the same map[string]PerNs entry (see mergePerNs), so
// a direct declaration and a glob import of the same name collapse to
// one key before this function ever sees them — so no separate dedup
// pass is needed; sorting alone makes the resulting completion list
// stable across runs (spec.md §8 "Round-trip/idempotence").
func sortedNames(items map[string]defmap.PerNs) []string {
	names := make([]string, 0, len(items))
	for name := range items {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
