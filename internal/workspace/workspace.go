// Package workspace loads a project's orbit-workspace.yaml manifest
// (crate name, dependency versions, registry endpoint, default
// visibility) and resolves its dependencies to graph.CrateIDs. Grounded
// on cuelang.org/go/internal/lsp/cache's Module/Workspace (a
// cue.mod/module.cue file rooting one module inside a larger
// workspace), adapted here from CUE-syntax manifests to a flat YAML
// document since this source language has no CUE evaluator to parse
// its own manifest format.
package workspace

import (
	"context"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"orbitlang.org/go/internal/defmap"
	"orbitlang.org/go/internal/graph"
	"orbitlang.org/go/internal/registry"
)

// ManifestFileName is the well-known manifest name looked for at a
// workspace's root, mirroring cue.mod/module.cue's role for CUE.
const ManifestFileName = "orbit-workspace.yaml"

// DependencyDecl is one dependency entry as written in the manifest.
type DependencyDecl struct {
	Name       string `yaml:"name"`
	Version    string `yaml:"version"`
	Visibility string `yaml:"visibility,omitempty"`
}

// Manifest is orbit-workspace.yaml's top-level shape.
type Manifest struct {
	Crate        string           `yaml:"crate"`
	Registry     string           `yaml:"registry,omitempty"`
	Dependencies []DependencyDecl `yaml:"dependencies,omitempty"`
}

// LoadManifest reads and parses path.
func LoadManifest(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("workspace: reading %s: %w", path, err)
	}
	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("workspace: parsing %s: %w", path, err)
	}
	if m.Crate == "" {
		return nil, fmt.Errorf("workspace: %s: missing required \"crate\" field", path)
	}
	return &m, nil
}

// Workspace is one loaded project: its root crate's manifest plus the
// def maps and interner needed to run completion over it, keyed by
// crate so dependency crates sit alongside the root crate under one
// completion request (internal/completion.New takes exactly this map).
type Workspace struct {
	RootCrate graph.CrateID
	Manifest  *Manifest
	DefMaps   map[graph.CrateID]*defmap.CrateDefMap

	client *registry.Client
}

// New returns an empty Workspace for manifest, rooted at rootCrate
// (conventionally graph.CrateID{} — the zero value, since the root
// crate being edited has no published content to address).
func New(rootCrate graph.CrateID, manifest *Manifest, client *registry.Client) *Workspace {
	rootDefMap := defmap.NewCrateDefMap(rootCrate, defmap.ModuleLocation{})
	return &Workspace{
		RootCrate: rootCrate,
		Manifest:  manifest,
		DefMaps:   map[graph.CrateID]*defmap.CrateDefMap{rootCrate: rootDefMap},
		client:    client,
	}
}

// ResolveDependencies fetches a graph.CrateID for every dependency
// declared in the manifest, registering an empty def map for each one
// so the completion engine has somewhere to bind their items once
// they're loaded. Dependencies whose crate content isn't loaded yet
// complete against an empty module — this engine never blocks a
// completion request on a network fetch (spec.md §7, "never panics").
func (w *Workspace) ResolveDependencies(ctx context.Context) ([]graph.Dependency, error) {
	deps := make([]graph.Dependency, 0, len(w.Manifest.Dependencies))
	for _, decl := range w.Manifest.Dependencies {
		if w.client == nil {
			return nil, fmt.Errorf("workspace: resolving dependency %s: no registry client", decl.Name)
		}
		id, err := w.client.Resolve(ctx, decl.Name, decl.Version)
		if err != nil {
			return nil, fmt.Errorf("workspace: resolving dependency %s: %w", decl.Name, err)
		}
		deps = append(deps, graph.Dependency{Crate: id, Name: decl.Name})
		if _, ok := w.DefMaps[id]; !ok {
			w.DefMaps[id] = defmap.NewCrateDefMap(id, defmap.ModuleLocation{})
		}
	}
	return deps, nil
}
