// Package resolver implements the name resolver external collaborator
// spec.md §6 says the engine calls but doesn't redesign:
// StandardPathResolver. Grounded on
// hir::resolution::path_resolver::StandardPathResolver as called from
// completion.rs's resolve_path (`StandardPathResolver::new(root).resolve(def_maps, path, &mut None)`).
package resolver

import (
	"fmt"

	"orbitlang.org/go/internal/ast"
	"orbitlang.org/go/internal/defmap"
	"orbitlang.org/go/internal/graph"
)

// PathResolution is what a resolved path ultimately names, matching
// the `PathResolution { module_def_id, .. }` struct returned by
// StandardPathResolver::resolve (the original also carries an `error`
// slot for "resolved but with warnings"; this engine never inspects
// it, so it's dropped, matching spec.md §1's "we call it" framing).
type PathResolution struct {
	ModuleDefID defmap.ModuleDefID
}

// StandardPathResolver resolves a plain, unqualified sequence of
// identifiers against a starting module's scope, following `Module`
// bindings for every segment but the last. It never interprets
// PathKind itself (crate/super/dep anchoring is handled by the caller
// before segments reach here, exactly as completion.rs's resolve_path
// always builds a `PathKind::Plain` path before calling resolve).
type StandardPathResolver struct {
	root defmap.ModuleID
}

// New returns a resolver anchored at root, matching
// StandardPathResolver::new(root_module_id).
func New(root defmap.ModuleID) *StandardPathResolver {
	return &StandardPathResolver{root: root}
}

// Resolve walks idents starting from r.root's module, returning what
// the final segment names. An empty idents slice is a caller error
// (the original's `segments.last().unwrap()` would panic too).
func (r *StandardPathResolver) Resolve(
	defMaps map[graph.CrateID]*defmap.CrateDefMap,
	idents []ast.Ident,
) (PathResolution, error) {
	if len(idents) == 0 {
		return PathResolution{}, fmt.Errorf("resolver: empty path")
	}

	current := r.root
	for i, ident := range idents {
		defMap := defMaps[current.Crate]
		if defMap == nil {
			return PathResolution{}, fmt.Errorf("resolver: unknown crate for module %v", current)
		}
		moduleData := defMap.ModuleData(current.Local)
		perNs, ok := moduleData.FindName(ident.Name)
		if !ok || perNs.IsEmpty() {
			return PathResolution{}, fmt.Errorf("resolver: %q not found", ident.Name)
		}

		last := i == len(idents)-1
		if last {
			entry := perNs.Types
			if entry == nil {
				entry = perNs.Values
			}
			if entry == nil {
				return PathResolution{}, fmt.Errorf("resolver: %q has no binding", ident.Name)
			}
			return PathResolution{ModuleDefID: entry.Def}, nil
		}

		// Not the last segment: this must name a module to keep
		// descending, matching the original's implicit requirement
		// that only ModuleDefId::ModuleId is a valid path prefix.
		entry := perNs.Types
		if entry == nil {
			return PathResolution{}, fmt.Errorf("resolver: %q is not a module", ident.Name)
		}
		moduleDef, ok := entry.Def.(defmap.ModuleDefModule)
		if !ok {
			return PathResolution{}, fmt.Errorf("resolver: %q is not a module", ident.Name)
		}
		current = moduleDef.ID
	}

	return PathResolution{}, fmt.Errorf("resolver: unreachable")
}
