// Package project owns the indexing step between a file manager full
// of source text and a completion-ready internal/defmap.CrateDefMap +
// internal/interner.NodeInterner: parsing a file and running
// internal/binder over the result. internal/lsp/server and cmd/orbit
// are the two callers; both need exactly this "load workspace, index
// every file, then answer completion requests" sequence, so it lives
// here rather than duplicated in each.
package project

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"orbitlang.org/go/internal/binder"
	"orbitlang.org/go/internal/completion"
	"orbitlang.org/go/internal/fm"
	"orbitlang.org/go/internal/graph"
	"orbitlang.org/go/internal/interner"
	"orbitlang.org/go/internal/parser"
	"orbitlang.org/go/internal/registry"
	"orbitlang.org/go/internal/workspace"
)

// sourceExtension is the file extension this server treats as source,
// matching `_examples/sunholo-data-ailang`'s single-extension
// language convention.
const sourceExtension = ".orb"

// Project is one loaded workspace: its file manager, its resolved
// dependency graph, and the def map / interner every file has been
// bound into. Re-indexing on an edit binds that file's declarations
// again without retracting the old ones first — a declaration deleted
// from the file stays bound, and keeps being offered as a candidate,
// until the project is reopened. That is the accepted cost of keeping
// re-binding this simple, the same shortcut gopls' own cache takes for
// anything short of its diagnostics pipeline.
type Project struct {
	Files        *fm.Manager
	Workspace    *workspace.Workspace
	Interner     *interner.NodeInterner
	Dependencies []graph.Dependency

	root string
}

// Open loads root's manifest (if present) and every *.orb file beneath
// root into a fresh Project, binding each one as it's read. A missing
// manifest is not an error: root is then treated as a single
// unnamed-crate workspace, so completion still works over a folder
// opened without an orbit-workspace.yaml.
func Open(ctx context.Context, root string, client *registry.Client) (*Project, error) {
	manifest, err := workspace.LoadManifest(filepath.Join(root, workspace.ManifestFileName))
	if err != nil {
		manifest = &workspace.Manifest{Crate: filepath.Base(root)}
	}

	ws := workspace.New(graph.CrateID{}, manifest, client)
	deps, err := ws.ResolveDependencies(ctx)
	if err != nil {
		return nil, fmt.Errorf("project: resolving dependencies for %s: %w", root, err)
	}

	p := &Project{
		Files:        fm.New(),
		Workspace:    ws,
		Interner:     interner.New(),
		Dependencies: deps,
		root:         root,
	}

	if err := p.indexDirectory(root); err != nil {
		return nil, err
	}
	return p, nil
}

// Root returns the workspace's root directory, as passed to Open.
func (p *Project) Root() string { return p.root }

func (p *Project) indexDirectory(dir string) error {
	return filepath.WalkDir(dir, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || strings.ToLower(filepath.Ext(path)) != sourceExtension {
			return nil
		}
		source, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("project: reading %s: %w", path, err)
		}
		p.indexFile(path, string(source))
		return nil
	})
}

// indexFile registers path's content with the file manager, parses it,
// and binds it into the root crate's def map at the crate root module.
// Parse errors never abort indexing: a file that fails to parse
// cleanly simply contributes whatever the parser recovered, and
// indexing moves on to the rest of the workspace.
func (p *Project) indexFile(path, source string) fm.FileID {
	id := p.Files.Load(path, source)
	p.reindex(id, path, source)
	return id
}

// Reindex re-parses and re-binds a single file, for use after
// textDocument/didChange. The def map's declarations for this file's
// crate root accumulate across calls rather than being cleared first;
// a declaration removed from the file keeps being offered as a
// completion candidate, the accepted cost of keeping incremental
// re-binding this simple.
func (p *Project) Reindex(id fm.FileID, path, source string) {
	p.reindex(id, path, source)
}

func (p *Project) reindex(id fm.FileID, path, source string) {
	file := parser.ParseFile(path, source)
	defMap := p.Workspace.DefMaps[p.Workspace.RootCrate]
	binder.New(defMap, p.Interner, id).BindFile(defMap.Root(), file)
}

// Complete answers a textDocument/completion request at byteIndex into
// id's current source text. It re-parses source (the finder walks a
// fresh parse tree every request, per spec.md §3's "built per
// completion request, consumed once, and discarded") and builds a
// completion.Finder rooted at the workspace's root crate.
func (p *Project) Complete(id fm.FileID, source string, byteIndex int) []completion.Item {
	var prevByte *byte
	if byteIndex > 0 && byteIndex <= len(source) {
		b := source[byteIndex-1]
		prevByte = &b
	}

	file := parser.ParseFile(p.pathForFile(id), source)

	finder := completion.New(
		id,
		byteIndex,
		prevByte,
		p.Workspace.RootCrate,
		p.Workspace.DefMaps,
		p.Dependencies,
		p.Interner,
	)
	return finder.Find(file)
}

func (p *Project) pathForFile(id fm.FileID) string {
	if f, ok := p.Files.GetFile(id); ok {
		return f.Path
	}
	return ""
}
