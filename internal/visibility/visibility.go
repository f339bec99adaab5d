// Package visibility is the companion predicate over (importing
// crate, current module, target item, declared visibility) named in
// spec.md §1/§4.A. Grounded function-for-function on
// _examples/original_source/compiler/noirc_frontend/src/hir/resolution/visibility.rs
// (can_reference_module_id, module_descendent_of_target,
// module_is_parent_of_struct_module, struct_field_is_visible).
package visibility

import (
	"orbitlang.org/go/internal/defmap"
	"orbitlang.org/go/internal/graph"
	"orbitlang.org/go/internal/types"
)

// DefMaps is the read-only, per-crate module table collection every
// visibility check is evaluated against, matching the
// BTreeMap<CrateId, CrateDefMap> threaded through visibility.rs.
type DefMaps map[graph.CrateID]*defmap.CrateDefMap

// CanReference decides whether an item declared in targetModule,
// carrying the given visibility, is reachable from currentModule when
// importingCrate is doing the looking-up. Mirrors
// can_reference_module_id verbatim.
func CanReference(
	defMaps DefMaps,
	importingCrate graph.CrateID,
	currentModule defmap.LocalModuleID,
	targetModule defmap.ModuleID,
	vis defmap.ItemVisibility,
) bool {
	sameCrate := targetModule.Crate == importingCrate

	switch vis {
	case defmap.Public:
		return true
	case defmap.PublicCrate:
		return sameCrate
	case defmap.Private:
		if !sameCrate {
			return false
		}
		targetDefMap := defMaps[targetModule.Crate]
		if targetDefMap == nil {
			return false
		}
		return ModuleDescendentOf(targetDefMap, targetModule.Local, currentModule) ||
			moduleIsParentOfStructModule(targetDefMap, currentModule, targetModule.Local)
	default:
		return false
	}
}

// ModuleDescendentOf reports whether current is target, or a
// (transitively nested) child module of target. Walks parent pointers
// upward from current; terminates because the parent relation is
// acyclic by construction (spec.md §9). Mirrors
// module_descendent_of_target.
func ModuleDescendentOf(defMap *defmap.CrateDefMap, target, current defmap.LocalModuleID) bool {
	if current == target {
		return true
	}
	parent := defMap.ModuleData(current).Parent
	if parent == nil {
		return false
	}
	return ModuleDescendentOf(defMap, target, *parent)
}

// moduleIsParentOfStructModule reports whether target is a struct's
// pseudo-module and current is its direct parent. Mirrors
// module_is_parent_of_struct_module.
func moduleIsParentOfStructModule(defMap *defmap.CrateDefMap, current, target defmap.LocalModuleID) bool {
	data := defMap.ModuleData(target)
	return data.IsStruct && data.Parent != nil && *data.Parent == current
}

// StructFieldIsVisible is a second, distinct visibility entry point
// for struct-field enumeration (see SPEC_FULL.md §4: its PublicCrate/Private
// checks compare against the struct's *parent module*, not the
// struct's own "crate", so it isn't merged into CanReference). Mirrors
// struct_field_is_visible.
func StructFieldIsVisible(
	defMaps DefMaps,
	structType *types.StructType,
	vis defmap.ItemVisibility,
	currentModule defmap.ModuleID,
) bool {
	switch vis {
	case defmap.Public:
		return true
	case defmap.PublicCrate:
		return structType.Module.Crate == currentModule.Crate
	case defmap.Private:
		structParent := structType.Module
		if structParent.Crate != currentModule.Crate {
			return false
		}
		if structParent.Local == currentModule.Local {
			return true
		}
		defMap := defMaps[currentModule.Crate]
		if defMap == nil {
			return false
		}
		return ModuleDescendentOf(defMap, structParent.Local, currentModule.Local)
	default:
		return false
	}
}
