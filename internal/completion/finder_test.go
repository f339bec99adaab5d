package completion_test

import (
	"context"
	"strings"
	"testing"

	"github.com/go-quicktest/qt"

	"orbitlang.org/go/internal/ast"
	"orbitlang.org/go/internal/binder"
	"orbitlang.org/go/internal/completion"
	"orbitlang.org/go/internal/defmap"
	"orbitlang.org/go/internal/fm"
	"orbitlang.org/go/internal/graph"
	"orbitlang.org/go/internal/interner"
	"orbitlang.org/go/internal/parser"
	"orbitlang.org/go/internal/workspace"
)

// fixture parses and binds source (a single file making up the whole
// root crate), returning everything needed to run one or more
// completion requests against it. The `|` marker in source gives the
// default cursor position and is stripped before parsing; callers that
// need more than one cursor position should locate their own offsets
// into Source and call completeAt directly.
type fixture struct {
	Source   string
	File     *ast.File
	FileID   fm.FileID
	Crate    graph.CrateID
	DefMaps  map[graph.CrateID]*defmap.CrateDefMap
	Interner *interner.NodeInterner
	Deps     []graph.Dependency
	Cursor   int
}

func newFixture(t *testing.T, source string, deps []graph.Dependency) *fixture {
	t.Helper()

	idx := strings.IndexByte(source, '|')
	if idx < 0 {
		t.Fatalf("fixture source has no | cursor marker: %q", source)
	}
	clean := source[:idx] + source[idx+1:]

	crate := graph.CrateID{}
	manifest := &workspace.Manifest{Crate: "test"}
	ws := workspace.New(crate, manifest, nil)
	resolvedDeps, err := ws.ResolveDependencies(context.Background())
	qt.Assert(t, qt.IsNil(err))

	file := parser.ParseFile("test.orb", clean)
	in := interner.New()
	fileID := fm.FileID(0)
	defMap := ws.DefMaps[crate]
	binder.New(defMap, in, fileID).BindFile(defMap.Root(), file)

	return &fixture{
		Source:   clean,
		File:     file,
		FileID:   fileID,
		Crate:    crate,
		DefMaps:  ws.DefMaps,
		Interner: in,
		Deps:     append(resolvedDeps, deps...),
		Cursor:   idx,
	}
}

// completeAt runs one completion request at byteIndex into fx's bound
// source, reusing the same def map/interner (so multiple boundary
// positions can be checked against one binding pass).
func (fx *fixture) completeAt(byteIndex int) []completion.Item {
	var prevByte *byte
	if byteIndex > 0 && byteIndex <= len(fx.Source) {
		b := fx.Source[byteIndex-1]
		prevByte = &b
	}
	finder := completion.New(fx.FileID, byteIndex, prevByte, fx.Crate, fx.DefMaps, fx.Deps, fx.Interner)
	return finder.Find(fx.File)
}

func (fx *fixture) complete() []completion.Item {
	return fx.completeAt(fx.Cursor)
}

func labels(items []completion.Item) []string {
	out := make([]string, len(items))
	for i, it := range items {
		out[i] = it.Label
	}
	return out
}

func findItem(items []completion.Item, label string) (completion.Item, bool) {
	for _, it := range items {
		if it.Label == label {
			return it, true
		}
	}
	return completion.Item{}, false
}

// TestLocalVariableInScope covers spec.md §8 scenario 1: a local bound
// earlier in the same block is offered, and the local the cursor is
// currently completing the initializer for is not (it isn't bound
// yet).
func TestLocalVariableInScope(t *testing.T) {
	fx := newFixture(t, `
fn user() {
    let foo = 1;
    let bar = fo|;
}
`, nil)

	items := fx.complete()
	foo, ok := findItem(items, "foo")
	qt.Assert(t, qt.IsTrue(ok))
	qt.Check(t, qt.Equals(foo.Kind, completion.KindVariable))
	qt.Check(t, qt.Equals(foo.Detail, "Field"))

	_, hasBar := findItem(items, "bar")
	qt.Check(t, qt.IsFalse(hasBar))
}

// TestModuleFunctionAfterDoubleColon covers scenario 2: a function
// declared in a submodule is offered through a fully-qualified path,
// snippet-formatted with its parameter names.
func TestModuleFunctionAfterDoubleColon(t *testing.T) {
	fx := newFixture(t, `
mod math {
    pub fn add(a: Field, b: Field) -> Field {
        a
    }
}
fn user() -> Field {
    crate::math::ad|
}
`, nil)

	items := fx.complete()
	add, ok := findItem(items, "add")
	qt.Assert(t, qt.IsTrue(ok))
	qt.Check(t, qt.Equals(add.Kind, completion.KindFunction))
	qt.Check(t, qt.Equals(add.InsertTextFormat, completion.Snippet))
	qt.Check(t, qt.Equals(add.InsertText, "add(${1:a}, ${2:b})"))
}

// TestUseTreeTrailingIdentDoesNotSnippet covers the use-tree path
// through find_in_use_tree_path: it always asks for FunctionName (no
// parameter snippet), independent of the expression-position path
// tested above, and an aliased import is never offered at all.
func TestUseTreeTrailingIdentDoesNotSnippet(t *testing.T) {
	fx := newFixture(t, `
mod math {
    pub fn add(a: Field, b: Field) -> Field {
        a
    }
}
use crate::math::add as plus;
use crate::math::ad|;
`, nil)

	items := fx.complete()
	add, ok := findItem(items, "add")
	qt.Assert(t, qt.IsTrue(ok))
	qt.Check(t, qt.Equals(add.InsertTextFormat, completion.PlainText))
	qt.Check(t, qt.Equals(add.InsertText, "add"))

	_, hasAlias := findItem(items, "plus")
	qt.Check(t, qt.IsFalse(hasAlias))
}

// TestMemberAccessAfterDot covers scenario 3, exercising the binder's
// local-type recording (internal/interner.RecordTypeLocation) that
// internal/completion's TypeAtLocation lookup depends on.
func TestMemberAccessAfterDot(t *testing.T) {
	fx := newFixture(t, `
struct S {
    x: Field,
    y: Field,
}
fn user() -> Field {
    let s = S { x: 0, y: 0 };
    s.x|
}
`, nil)

	items := fx.complete()
	x, ok := findItem(items, "x")
	qt.Assert(t, qt.IsTrue(ok))
	qt.Check(t, qt.Equals(x.Kind, completion.KindField))
	qt.Check(t, qt.Equals(x.Detail, "Field"))

	_, hasY := findItem(items, "y")
	qt.Check(t, qt.IsFalse(hasY))
}

// TestMethodCompletionOnType covers scenario 4: `S::` resolves through
// the type namespace to the struct's pseudo-module, and its methods
// come from the interner's method table rather than the def map.
func TestMethodCompletionOnType(t *testing.T) {
	fx := newFixture(t, `
struct S {}
impl S {
    fn hello(self) {}
}
fn user() {
    S::hell|
}
`, nil)

	items := fx.complete()
	hello, ok := findItem(items, "hello")
	qt.Assert(t, qt.IsTrue(ok))
	qt.Check(t, qt.Equals(hello.Kind, completion.KindFunction))
	qt.Check(t, qt.Equals(hello.InsertTextFormat, completion.Snippet))
	qt.Check(t, qt.Equals(hello.InsertText, "hello(${1:self})"))
}

// TestPrivateItemHiddenFromSiblingModule and
// TestPrivateItemVisibleFromOwnModule cover scenario 5: a private
// function is reachable from the module that declares it but not from
// an unrelated sibling module.
func TestPrivateItemHiddenFromSiblingModule(t *testing.T) {
	fx := newFixture(t, `
mod m {
    fn g() {}
}
mod sibling {
    fn h() {
        m::g|
    }
}
`, nil)

	items := fx.complete()
	_, ok := findItem(items, "g")
	qt.Check(t, qt.IsFalse(ok))
}

func TestPrivateItemVisibleFromOwnModule(t *testing.T) {
	fx := newFixture(t, `
mod m {
    fn g() {}
    fn h() {
        m::g|
    }
}
`, nil)

	items := fx.complete()
	g, ok := findItem(items, "g")
	qt.Assert(t, qt.IsTrue(ok))
	qt.Check(t, qt.Equals(g.Kind, completion.KindFunction))
}

// TestRootPathOffersDependencyAndCrateKeyword covers scenario 6: at
// the root of a plain path, a dependency crate name and the `crate::`
// pseudo-entry are both offered (chosen to share a prefix so one
// assertion exercises both without also matching unrelated builtins).
func TestRootPathOffersDependencyAndCrateKeyword(t *testing.T) {
	fx := newFixture(t, `
fn user() {
    c|
}
`, []graph.Dependency{{Crate: graph.CrateID{Index: 7}, Name: "cryptolib"}})

	items := fx.complete()

	crate, ok := findItem(items, "cryptolib")
	qt.Assert(t, qt.IsTrue(ok))
	qt.Check(t, qt.Equals(crate.Kind, completion.KindCrate))

	kw, ok := findItem(items, "crate::")
	qt.Assert(t, qt.IsTrue(ok))
	qt.Check(t, qt.Equals(kw.Kind, completion.KindKeyword))

	_, hasSuper := findItem(items, "super::")
	qt.Check(t, qt.IsFalse(hasSuper))
}

// TestBoundaryOneByteFastPastCursor covers spec.md §8's "one byte
// further triggers nothing": completing exactly at a path's span end
// succeeds, completing one byte past it (now inside the following
// token) produces nothing.
func TestBoundaryOneByteFastPastCursor(t *testing.T) {
	fx := newFixture(t, `
fn user() {
    let foo = 1;
    let bar = foo|;
}
`, nil)

	atEnd := fx.completeAt(fx.Cursor)
	_, ok := findItem(atEnd, "foo")
	qt.Assert(t, qt.IsTrue(ok))

	pastEnd := fx.completeAt(fx.Cursor + 1)
	qt.Check(t, qt.HasLen(pastEnd, 0))
}

// TestIfBranchLocalsDoNotLeak covers spec.md §4.C/§9's
// snapshot-before-descend, restore-after rule for if-expression
// branches: a local bound in the "then" branch is invisible from the
// "else" branch, and a local bound earlier in the same branch is
// still visible.
func TestIfBranchLocalsDoNotLeak(t *testing.T) {
	fx := newFixture(t, `
fn user() {
    if true {
        let x = 1;
    } else {
        let y = 2;
        let z = y|;
    }
}
`, nil)

	items := fx.complete()
	_, hasY := findItem(items, "y")
	qt.Check(t, qt.IsTrue(hasY))

	_, hasX := findItem(items, "x")
	qt.Check(t, qt.IsFalse(hasX))
}

// TestComptimeClearsLocals covers the Comptime expression arm of
// find_in_expression: entering a `comptime { ... }` block clears
// regular locals for its duration, so a name bound outside it is not
// offered from inside.
func TestComptimeClearsLocals(t *testing.T) {
	fx := newFixture(t, `
fn user() {
    let foo = 1;
    comptime {
        let bar = fo|;
    }
}
`, nil)

	items := fx.complete()
	_, hasFoo := findItem(items, "foo")
	qt.Check(t, qt.IsFalse(hasFoo))
}
