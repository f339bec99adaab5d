package completion

import (
	"orbitlang.org/go/internal/ast"
	"orbitlang.org/go/internal/defmap"
	"orbitlang.org/go/internal/fm"
	"orbitlang.org/go/internal/graph"
	"orbitlang.org/go/internal/interner"
)

// Finder is the per-request cursor-localized walker (spec.md §3
// "Finder state"). Built fresh for every completion request, consumed
// once by Find, and discarded — nothing persists across requests.
type Finder struct {
	file      fm.FileID
	byteIndex int
	// byte is source[byteIndex-1], or nil at the very start of a file.
	byte *byte

	rootModuleID defmap.ModuleID
	// moduleID is the module currently in scope; it shifts while
	// descending into an inline submodule (findInItem) and is restored
	// on return.
	moduleID defmap.ModuleID

	defMaps      map[graph.CrateID]*defmap.CrateDefMap
	dependencies []graph.Dependency
	interner     *interner.NodeInterner

	items []Item

	// localVariables maps a visible local's name to the span of the
	// identifier that bound it (spec.md §3). Snapshotted/restored by
	// every block/lambda/if-branch/comptime entry (spec.md §4.C).
	localVariables map[string]ast.Span
	// typeParameters is the set of in-scope generic names, snapshotted
	// around function/impl/struct/trait entry.
	typeParameters map[string]struct{}
}

// New builds a Finder for one completion request, locating the
// current module by finding which module in krate's def map owns
// file. Mirrors NodeFinder::new.
func New(
	file fm.FileID,
	byteIndex int,
	byte *byte,
	krate graph.CrateID,
	defMaps map[graph.CrateID]*defmap.CrateDefMap,
	dependencies []graph.Dependency,
	interner *interner.NodeInterner,
) *Finder {
	defMap := defMaps[krate]
	rootModuleID := defmap.ModuleID{Crate: krate, Local: defMap.Root()}

	localID := defMap.Root()
	for i, m := range defMap.Modules() {
		if m.Location.File == file {
			localID = defmap.LocalModuleID(i)
			break
		}
	}

	return &Finder{
		file:           file,
		byteIndex:      byteIndex,
		byte:           byte,
		rootModuleID:   rootModuleID,
		moduleID:       defmap.ModuleID{Crate: krate, Local: localID},
		defMaps:        defMaps,
		dependencies:   dependencies,
		interner:       interner,
		localVariables: make(map[string]ast.Span),
		typeParameters: make(map[string]struct{}),
	}
}

// Find walks file's parsed items and returns whatever completion
// candidates the cursor position produced, or nil if none. Mirrors
// NodeFinder::find.
func (f *Finder) Find(file *ast.File) []Item {
	for _, item := range file.Items {
		f.findInItem(item)
	}

	if len(f.items) == 0 {
		return nil
	}

	items := f.items
	f.items = nil
	applyUnderscoreSortText(items)
	return items
}

// includesSpan reports whether the cursor lies within span, inclusive
// of both endpoints. Mirrors NodeFinder::includes_span.
func (f *Finder) includesSpan(span ast.Span) bool {
	return span.Start <= f.byteIndex && f.byteIndex <= span.End
}

// byteIs reports whether the byte immediately preceding the cursor
// equals b.
func (f *Finder) byteIs(b byte) bool {
	return f.byte != nil && *f.byte == b
}

// snapshotLocals/restoreLocals and snapshotTypeParams/restoreTypeParams
// implement spec.md §9's "snapshot before descend, restore after"
// pattern as explicit copies of the small environment maps, matching
// how completion.rs clones local_variables/type_parameters around
// every scope-introducing node.

func (f *Finder) snapshotLocals() map[string]ast.Span {
	snap := make(map[string]ast.Span, len(f.localVariables))
	for k, v := range f.localVariables {
		snap[k] = v
	}
	return snap
}

func (f *Finder) restoreLocals(snap map[string]ast.Span) {
	f.localVariables = snap
}

func (f *Finder) clearLocals() {
	f.localVariables = make(map[string]ast.Span)
}

func (f *Finder) snapshotTypeParameters() map[string]struct{} {
	snap := make(map[string]struct{}, len(f.typeParameters))
	for k := range f.typeParameters {
		snap[k] = struct{}{}
	}
	return snap
}

func (f *Finder) restoreTypeParameters(snap map[string]struct{}) {
	f.typeParameters = snap
}

func (f *Finder) clearTypeParameters() {
	f.typeParameters = make(map[string]struct{})
}

func (f *Finder) emit(item Item) {
	f.items = append(f.items, item)
}
