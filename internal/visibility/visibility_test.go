package visibility_test

import (
	"testing"

	"github.com/go-quicktest/qt"

	"orbitlang.org/go/internal/defmap"
	"orbitlang.org/go/internal/graph"
	"orbitlang.org/go/internal/types"
	"orbitlang.org/go/internal/visibility"
)

func oneCrateDefMap() (*defmap.CrateDefMap, graph.CrateID) {
	crate := graph.CrateID{Index: 1}
	dm := defmap.NewCrateDefMap(crate, defmap.ModuleLocation{})
	return dm, crate
}

// TestCanReferencePublicAlwaysTrue covers the "Public ⇒ true" row of
// the truth table in spec.md §8, including across crates.
func TestCanReferencePublicAlwaysTrue(t *testing.T) {
	dm, crate := oneCrateDefMap()
	other := graph.CrateID{Index: 2}
	defMaps := visibility.DefMaps{crate: dm}

	target := defmap.ModuleID{Crate: crate, Local: dm.Root()}
	got := visibility.CanReference(defMaps, other, dm.Root(), target, defmap.Public)
	qt.Assert(t, qt.IsTrue(got))
}

// TestCanReferencePublicCrate covers "PublicCrate ⇒ same-crate".
func TestCanReferencePublicCrate(t *testing.T) {
	dm, crate := oneCrateDefMap()
	other := graph.CrateID{Index: 2}
	defMaps := visibility.DefMaps{crate: dm}
	target := defmap.ModuleID{Crate: crate, Local: dm.Root()}

	qt.Assert(t, qt.IsTrue(visibility.CanReference(defMaps, crate, dm.Root(), target, defmap.PublicCrate)))
	qt.Assert(t, qt.IsFalse(visibility.CanReference(defMaps, other, dm.Root(), target, defmap.PublicCrate)))
}

// TestCanReferencePrivate covers "Private ⇒ same-crate ∧
// (ancestor-or-self ∨ struct-parent)".
func TestCanReferencePrivate(t *testing.T) {
	dm, crate := oneCrateDefMap()
	other := graph.CrateID{Index: 2}
	defMaps := visibility.DefMaps{crate: dm}

	// m is a child of the crate root; sibling is another, unrelated
	// child of the root.
	m := dm.AddModule(dm.Root(), "m", defmap.ModuleLocation{})
	sibling := dm.AddModule(dm.Root(), "sibling", defmap.ModuleLocation{})
	inner := dm.AddModule(m, "inner", defmap.ModuleLocation{})

	target := defmap.ModuleID{Crate: crate, Local: m}

	// Different crate: always denied regardless of module shape.
	qt.Assert(t, qt.IsFalse(visibility.CanReference(defMaps, other, m, target, defmap.Private)))

	// Same module as the target: visible (reflexive ancestor-or-self).
	qt.Assert(t, qt.IsTrue(visibility.CanReference(defMaps, crate, m, target, defmap.Private)))

	// A descendant of the target module: visible.
	qt.Assert(t, qt.IsTrue(visibility.CanReference(defMaps, crate, inner, target, defmap.Private)))

	// A sibling module, not an ancestor/descendant/struct-parent: denied.
	qt.Assert(t, qt.IsFalse(visibility.CanReference(defMaps, crate, sibling, target, defmap.Private)))

	// The crate root, an ancestor of m: denied (root is not a
	// descendant of m; private items aren't visible from their
	// module's ancestors, only from itself/its descendants or a
	// struct's parent module).
	qt.Assert(t, qt.IsFalse(visibility.CanReference(defMaps, crate, dm.Root(), target, defmap.Private)))
}

// TestCanReferencePrivateStructParent covers the struct-parent half of
// the Private row: a struct's own pseudo-module's parent can see the
// struct's private items even though it isn't a descendant of the
// struct's module.
func TestCanReferencePrivateStructParent(t *testing.T) {
	dm, crate := oneCrateDefMap()
	defMaps := visibility.DefMaps{crate: dm}

	structModule := dm.AddStructModule(dm.Root(), "S", defmap.ModuleLocation{})
	target := defmap.ModuleID{Crate: crate, Local: structModule}

	qt.Assert(t, qt.IsTrue(visibility.CanReference(defMaps, crate, dm.Root(), target, defmap.Private)))

	// A module that is not the struct's direct parent gets no special
	// treatment.
	other := dm.AddModule(dm.Root(), "other", defmap.ModuleLocation{})
	qt.Assert(t, qt.IsFalse(visibility.CanReference(defMaps, crate, other, target, defmap.Private)))
}

// TestModuleDescendentOfReflexiveAndTransitive covers spec.md §8's
// "Descendant reflexivity/transitivity" invariant directly.
func TestModuleDescendentOfReflexiveAndTransitive(t *testing.T) {
	dm, _ := oneCrateDefMap()
	a := dm.Root()
	b := dm.AddModule(a, "b", defmap.ModuleLocation{})
	c := dm.AddModule(b, "c", defmap.ModuleLocation{})

	// Reflexivity: every module descends itself.
	qt.Assert(t, qt.IsTrue(visibility.ModuleDescendentOf(dm, a, a)))
	qt.Assert(t, qt.IsTrue(visibility.ModuleDescendentOf(dm, c, c)))

	// c descends b, b descends a ⇒ c descends a.
	qt.Assert(t, qt.IsTrue(visibility.ModuleDescendentOf(dm, b, c)))
	qt.Assert(t, qt.IsTrue(visibility.ModuleDescendentOf(dm, a, b)))
	qt.Assert(t, qt.IsTrue(visibility.ModuleDescendentOf(dm, a, c)))

	// Not symmetric: a is not a descendant of c.
	qt.Assert(t, qt.IsFalse(visibility.ModuleDescendentOf(dm, c, a)))
}

// TestStructFieldIsVisible exercises the distinct struct-field
// visibility entry point (SPEC_FULL.md §4 notes it compares against the
// struct's parent module rather than CanReference's target module).
func TestStructFieldIsVisible(t *testing.T) {
	dm, crate := oneCrateDefMap()
	defMaps := visibility.DefMaps{crate: dm}

	m := dm.AddModule(dm.Root(), "m", defmap.ModuleLocation{})
	structModule := dm.AddStructModule(m, "S", defmap.ModuleLocation{})
	sibling := dm.AddModule(dm.Root(), "sibling", defmap.ModuleLocation{})

	st := &types.StructType{
		Name:   "S",
		Module: defmap.ModuleID{Crate: crate, Local: m},
	}

	qt.Assert(t, qt.IsTrue(visibility.StructFieldIsVisible(defMaps, st, defmap.Public, defmap.ModuleID{Crate: graph.CrateID{Index: 99}})))

	// Visible from the declaring module itself and from the struct's
	// own associated-items module (both are m or descend m).
	qt.Assert(t, qt.IsTrue(visibility.StructFieldIsVisible(defMaps, st, defmap.Private, defmap.ModuleID{Crate: crate, Local: m})))
	qt.Assert(t, qt.IsTrue(visibility.StructFieldIsVisible(defMaps, st, defmap.Private, defmap.ModuleID{Crate: crate, Local: structModule})))

	// Not visible from an unrelated sibling of m, nor from the crate
	// root (an ancestor of m, not a descendant).
	qt.Assert(t, qt.IsFalse(visibility.StructFieldIsVisible(defMaps, st, defmap.Private, defmap.ModuleID{Crate: crate, Local: sibling})))
	qt.Assert(t, qt.IsFalse(visibility.StructFieldIsVisible(defMaps, st, defmap.Private, defmap.ModuleID{Crate: crate, Local: dm.Root()})))
}
