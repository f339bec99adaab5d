// Package ast defines the parse-tree node types produced by
// internal/parser and walked by internal/completion.
//
// Every node carries a Span (byte offsets into the file it came from)
// so callers can test whether the completion cursor falls inside it
// without re-lexing or tracking line/column state during the walk.
package ast

import "fmt"

// Span is a half-open-ish byte range: Start <= End, both inclusive of
// the boundary bytes a cursor can sit at.
type Span struct {
	Start int
	End   int
}

// Includes reports whether byteIndex falls within the span, inclusive
// of both endpoints (a cursor sitting exactly at Start or End is still
// "inside" for completion purposes).
func (s Span) Includes(byteIndex int) bool {
	return s.Start <= byteIndex && byteIndex <= s.End
}

func (s Span) String() string {
	return fmt.Sprintf("%d..%d", s.Start, s.End)
}

// Ident is a name together with the span it was written at. The span
// is what local-variable and member-access completion key their
// "type at this location" lookups on.
type Ident struct {
	Name string
	Span Span
}

func (i Ident) String() string { return i.Name }

// Visibility is the syntactic `pub`/`pub(crate)`/(absent) modifier
// written directly on an item or struct field, before it has been
// bound to an internal/defmap.ItemVisibility by the binder. Kept as
// its own small enum here (rather than importing internal/defmap)
// because ast sits below defmap in the dependency graph: defmap's
// ModuleData doesn't know about parse-tree shapes, and ast mustn't
// know about crate/module identities.
type Visibility int

const (
	Private Visibility = iota
	PublicCrate
	Public
)

func (v Visibility) String() string {
	switch v {
	case Public:
		return "pub"
	case PublicCrate:
		return "pub(crate)"
	default:
		return "private"
	}
}

// File is the root of one parsed source file: a flat list of top-level
// items. Syntax errors are not stored here (the parser collects them,
// see Parser.Errors). Errors are never fatal to completion (see
// internal/completion); a file with errors still has whatever the
// parser managed to recover.
type File struct {
	Path  string
	Items []*Item
}
