// Package protocol defines the subset of the Language Server Protocol
// 3.17 wire types internal/lsp/server actually reads or writes:
// document identity and positions, the completion request/response
// pair, and the initialize/shutdown lifecycle messages. None of this
// is generated from the LSP meta-model (the generator and its
// `tsprotocol.go` output were not present in the retrieval pack); every
// type here is authored directly against the JSON shape the spec
// defines for the methods this server implements.
package protocol

import (
	"fmt"
	"strings"
)

// DocumentURI is a file URI as sent over the wire, e.g.
// "file:///home/user/project/src/lib.orb".
type DocumentURI string

// Path strips the "file://" scheme, returning a plain filesystem path.
// Any other scheme is returned unchanged (this server never needs to
// dereference non-file URIs).
func (u DocumentURI) Path() string {
	const prefix = "file://"
	if strings.HasPrefix(string(u), prefix) {
		return string(u)[len(prefix):]
	}
	return string(u)
}

// ParseDocumentURI validates that raw looks like a URI (has a scheme)
// and returns it as a DocumentURI.
func ParseDocumentURI(raw string) (DocumentURI, error) {
	if raw == "" {
		return "", fmt.Errorf("protocol: empty URI")
	}
	if !strings.Contains(raw, "://") {
		return "", fmt.Errorf("protocol: invalid URI %q: missing scheme", raw)
	}
	return DocumentURI(raw), nil
}

// Position is a zero-based line/UTF-16-character pair, as the LSP
// spec defines it.
type Position struct {
	Line      int `json:"line"`
	Character int `json:"character"`
}

// Range is a start/end pair of Positions.
type Range struct {
	Start Position `json:"start"`
	End   Position `json:"end"`
}

// TextDocumentIdentifier names a document by URI only.
type TextDocumentIdentifier struct {
	URI DocumentURI `json:"uri"`
}

// TextDocumentItem is the full document payload sent on didOpen.
type TextDocumentItem struct {
	URI        DocumentURI `json:"uri"`
	LanguageID string      `json:"languageId"`
	Version    int         `json:"version"`
	Text       string      `json:"text"`
}

// VersionedTextDocumentIdentifier names a document and the version the
// following edits apply against.
type VersionedTextDocumentIdentifier struct {
	TextDocumentIdentifier
	Version int `json:"version"`
}

// TextDocumentContentChangeEvent is one edit from a didChange
// notification. Range is nil for a full-document replace.
type TextDocumentContentChangeEvent struct {
	Range *Range `json:"range,omitempty"`
	Text  string `json:"text"`
}

// TextDocumentPositionParams locates a cursor inside an open document,
// the shared prefix of hover/definition/completion requests.
type TextDocumentPositionParams struct {
	TextDocument TextDocumentIdentifier `json:"textDocument"`
	Position     Position               `json:"position"`
}

// CompletionParams is the textDocument/completion request body. The
// engine here never inspects CompletionContext (trigger kind/character)
// since Finder derives that from the byte preceding the cursor itself.
type CompletionParams struct {
	TextDocumentPositionParams
}

// CompletionItemKind mirrors the numeric enum the LSP spec assigns to
// each completion kind, restricted to the values this engine ever
// produces.
type CompletionItemKind int

const (
	KindText          CompletionItemKind = 1
	KindFunction      CompletionItemKind = 3
	KindField         CompletionItemKind = 5
	KindVariable      CompletionItemKind = 6
	KindClass         CompletionItemKind = 7
	KindModule        CompletionItemKind = 9
	KindKeyword       CompletionItemKind = 14
	KindTypeParameter CompletionItemKind = 25
)

// InsertTextFormat distinguishes a literal insert from a snippet
// carrying "${n:name}" tab stops.
type InsertTextFormat int

const (
	PlainTextFormat InsertTextFormat = 1
	SnippetFormat   InsertTextFormat = 2
)

// CompletionItem is one candidate as rendered on the wire.
type CompletionItem struct {
	Label            string             `json:"label"`
	Kind             CompletionItemKind `json:"kind,omitempty"`
	Detail           string             `json:"detail,omitempty"`
	InsertText       string             `json:"insertText,omitempty"`
	InsertTextFormat InsertTextFormat   `json:"insertTextFormat,omitempty"`
	SortText         string             `json:"sortText,omitempty"`
}

// CompletionList is the textDocument/completion response body.
type CompletionList struct {
	IsIncomplete bool             `json:"isIncomplete"`
	Items        []CompletionItem `json:"items"`
}

// WorkspaceFolder names one root folder the client has open.
type WorkspaceFolder struct {
	URI  string `json:"uri"`
	Name string `json:"name"`
}

// ClientInfo identifies the connecting editor.
type ClientInfo struct {
	Name    string `json:"name"`
	Version string `json:"version,omitempty"`
}

// ParamInitialize is the initialize request body, trimmed to the
// fields this server reads.
type ParamInitialize struct {
	ClientInfo       *ClientInfo       `json:"clientInfo,omitempty"`
	RootURI          DocumentURI       `json:"rootUri,omitempty"`
	WorkspaceFolders []WorkspaceFolder `json:"workspaceFolders,omitempty"`
}

// CompletionOptions advertises trigger characters for completion.
type CompletionOptions struct {
	TriggerCharacters []string `json:"triggerCharacters,omitempty"`
}

// TextDocumentSyncKind selects full vs incremental sync; this server
// only ever asks for Full, since Finder always re-parses whole files.
type TextDocumentSyncKind int

const (
	Full TextDocumentSyncKind = 1
)

// TextDocumentSyncOptions advertises how the client should notify the
// server of document edits.
type TextDocumentSyncOptions struct {
	OpenClose bool                 `json:"openClose"`
	Change    TextDocumentSyncKind `json:"change"`
}

// ServerCapabilities is this server's advertised feature set, a small
// subset of the full LSP capability object.
type ServerCapabilities struct {
	CompletionProvider *CompletionOptions       `json:"completionProvider,omitempty"`
	TextDocumentSync   *TextDocumentSyncOptions `json:"textDocumentSync,omitempty"`
}

// ServerInfo names this server back to the client.
type ServerInfo struct {
	Name    string `json:"name"`
	Version string `json:"version,omitempty"`
}

// InitializeResult is the initialize response body.
type InitializeResult struct {
	Capabilities ServerCapabilities `json:"capabilities"`
	ServerInfo   *ServerInfo        `json:"serverInfo,omitempty"`
}

// DidOpenTextDocumentParams is the didOpen notification body.
type DidOpenTextDocumentParams struct {
	TextDocument TextDocumentItem `json:"textDocument"`
}

// DidChangeTextDocumentParams is the didChange notification body.
type DidChangeTextDocumentParams struct {
	TextDocument   VersionedTextDocumentIdentifier  `json:"textDocument"`
	ContentChanges []TextDocumentContentChangeEvent `json:"contentChanges"`
}

// DidCloseTextDocumentParams is the didClose notification body.
type DidCloseTextDocumentParams struct {
	TextDocument TextDocumentIdentifier `json:"textDocument"`
}

// LogMessageParams is the window/logMessage notification body the
// server sends to the client.
type LogMessageParams struct {
	Type    MessageType `json:"type"`
	Message string      `json:"message"`
}

// MessageType mirrors the LSP's window/logMessage severity enum.
type MessageType int

const (
	Error   MessageType = 1
	Warning MessageType = 2
	Info    MessageType = 3
	Debug   MessageType = 4
)
