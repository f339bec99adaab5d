package completion_test

import (
	"context"
	"sort"
	"strings"
	"testing"

	"github.com/go-quicktest/qt"
	"github.com/google/go-cmp/cmp"
	"github.com/rogpeppe/go-internal/txtar"

	"orbitlang.org/go/internal/binder"
	"orbitlang.org/go/internal/completion"
	"orbitlang.org/go/internal/fm"
	"orbitlang.org/go/internal/graph"
	"orbitlang.org/go/internal/interner"
	"orbitlang.org/go/internal/parser"
	"orbitlang.org/go/internal/workspace"
)

// TestCrossFileFunctionCompletion covers a multi-file workspace the way
// internal/project actually builds one: every *.orb file under a root
// is parsed and bound separately, each with its own fm.FileID, into the
// same crate def map and the same interner (internal/project.Project.
// indexDirectory/reindex). A completion request against one file must
// still see declarations that were only ever bound from another file.
//
// The `|` cursor marker lives in whichever archive file needs one;
// exactly one file may carry it.
func TestCrossFileFunctionCompletion(t *testing.T) {
	archive := `
-- lib.orb --
pub fn double(x: Field) -> Field {
    x
}
-- main.orb --
fn user() -> Field {
    doub|
}
`
	ar := txtar.Parse([]byte(archive))
	qt.Assert(t, qt.Equals(len(ar.Files), 2))

	crate := graph.CrateID{}
	manifest := &workspace.Manifest{Crate: "test"}
	ws := workspace.New(crate, manifest, nil)
	_, err := ws.ResolveDependencies(context.Background())
	qt.Assert(t, qt.IsNil(err))

	in := interner.New()
	defMap := ws.DefMaps[crate]

	var cursorFile *fm.FileID
	var cursorByte int
	files := make(map[fm.FileID]string)

	for i, fh := range ar.Files {
		id := fm.FileID(i)
		source := string(fh.Data)
		if idx := strings.IndexByte(source, '|'); idx >= 0 {
			source = source[:idx] + source[idx+1:]
			fid := id
			cursorFile = &fid
			cursorByte = idx
		}
		files[id] = source
		file := parser.ParseFile(fh.Name, source)
		binder.New(defMap, in, id).BindFile(defMap.Root(), file)
	}
	qt.Assert(t, qt.IsNotNil(cursorFile))

	// Re-parse the cursor file's own tree to walk: the finder needs the
	// same AST the binder just bound (matching internal/project.Complete's
	// "re-parse fresh, walk a new tree" shape), not a shared instance
	// across files.
	cursorSource := files[*cursorFile]
	cursorAST := parser.ParseFile("main.orb", cursorSource)

	var prevByte *byte
	if cursorByte > 0 {
		b := cursorSource[cursorByte-1]
		prevByte = &b
	}
	finder := completion.New(*cursorFile, cursorByte, prevByte, crate, ws.DefMaps, nil, in)
	items := finder.Find(cursorAST)

	var gotLabels []string
	for _, it := range items {
		gotLabels = append(gotLabels, it.Label)
	}
	sort.Strings(gotLabels)

	want := []string{"double"}
	if diff := cmp.Diff(want, gotLabels); diff != "" {
		t.Fatalf("unexpected completion labels (-want +got):\n%s", diff)
	}

	double, ok := findItem(items, "double")
	qt.Assert(t, qt.IsTrue(ok))
	qt.Check(t, qt.Equals(double.InsertTextFormat, completion.Snippet))
	qt.Check(t, qt.Equals(double.InsertText, "double(${1:x})"))
}
