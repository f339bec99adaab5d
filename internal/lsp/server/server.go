// Package server implements the subset of the Language Server Protocol
// this engine serves: lifecycle (initialize/initialized/shutdown/exit),
// document sync (didOpen/didChange/didClose), and
// textDocument/completion. Call [New] to create an instance.
//
// Grounded on cuelang.org/go/internal/lsp/server's server struct and
// its Initialize/Initialized/Shutdown/Exit state machine; simplified
// to the handful of methods this engine's spec names rather than
// gopls' full ~60-method protocol.Server surface (spec.md §1 names "the
// LSP transport layer" as out of scope beyond the methods this engine
// actually needs).
package server

import (
	"context"
	"fmt"
	"os"

	"github.com/google/uuid"

	"orbitlang.org/go/internal/completion"
	"orbitlang.org/go/internal/event"
	"orbitlang.org/go/internal/project"
	"orbitlang.org/go/internal/protocol"
	"orbitlang.org/go/internal/registry"
)

// Client is the subset of the editor-facing notifications this server
// ever sends back, matching protocol.ClientCloser's role in gopls but
// trimmed to what Exit/logging actually need.
type Client interface {
	LogMessage(ctx context.Context, params *protocol.LogMessageParams) error
	Close() error
}

// ServerWithID is the server interface exposed to cmd/orbitls, adding a
// per-instance identifier for log lines, matching gopls' ServerWithID.
type ServerWithID interface {
	Initialize(ctx context.Context, params *protocol.ParamInitialize) (*protocol.InitializeResult, error)
	Initialized(ctx context.Context) error
	Shutdown(ctx context.Context) error
	Exit(ctx context.Context) error

	DidOpen(ctx context.Context, params *protocol.DidOpenTextDocumentParams) error
	DidChange(ctx context.Context, params *protocol.DidChangeTextDocumentParams) error
	DidClose(ctx context.Context, params *protocol.DidCloseTextDocumentParams) error
	Completion(ctx context.Context, params *protocol.CompletionParams) (*protocol.CompletionList, error)

	ID() string
}

// New creates an LSP server bound to client, resolving dependency
// crates against registryClient as projects are opened. Each server
// gets a collision-resistant ID (for log lines and debugging), the
// same role gopls' atomic request counter plays but without requiring
// a process-wide shared counter.
func New(client Client, registryClient *registry.Client) ServerWithID {
	return &server{
		id:             uuid.NewString(),
		client:         client,
		registryClient: registryClient,
		state:          serverCreated,
	}
}

type serverState int

const (
	serverCreated      = serverState(iota)
	serverInitializing // set once the server has received "initialize"
	serverInitialized  // set once the server has received "initialized"
	serverShutDown
)

func (s serverState) String() string {
	switch s {
	case serverCreated:
		return "created"
	case serverInitializing:
		return "initializing"
	case serverInitialized:
		return "initialized"
	case serverShutDown:
		return "shutDown"
	}
	return fmt.Sprintf("(unknown state: %d)", int(s))
}

// server implements ServerWithID. It is mainly concerned with the
// connection lifecycle; once a workspace root has been established
// (see Initialize) most requests are served directly from the
// *project.Project that root was opened into.
type server struct {
	id string

	client         Client
	registryClient *registry.Client

	state serverState
	root  string
	proj  *project.Project
}

var _ ServerWithID = (*server)(nil)

func (s *server) ID() string { return s.id }

// Shutdown implements the 'shutdown' LSP handler. It releases resources
// associated with the server and waits for all ongoing work to
// complete (this engine has none in flight, since Completion never
// suspends — spec.md §5).
//
// https://microsoft.github.io/language-server-protocol/specifications/lsp/3.17/specification/#shutdown
func (s *server) Shutdown(ctx context.Context) error {
	ctx, done := event.Start(ctx, "lsp.Server.shutdown")
	defer done()

	switch s.state {
	case serverInitialized:
		s.state = serverShutDown
	case serverShutDown:
		return nil
	default:
		event.Log(ctx, "server shutdown without initialization")
	}
	return nil
}

// Exit implements the 'exit' LSP handler.
//
// https://microsoft.github.io/language-server-protocol/specifications/lsp/3.17/specification/#exit
//
// This is asynchronous - it does not get a response.
func (s *server) Exit(ctx context.Context) error {
	_, done := event.Start(ctx, "lsp.Server.exit")
	defer done()

	s.client.Close()

	if s.state != serverShutDown {
		// TODO: We should be able to do better than this.
		os.Exit(1)
	}
	return nil
}

// DidOpen registers a newly opened document's content as an overlay
// and (re)indexes it into the project's def map.
func (s *server) DidOpen(ctx context.Context, params *protocol.DidOpenTextDocumentParams) error {
	_, done := event.Start(ctx, "lsp.Server.didOpen")
	defer done()

	if s.proj == nil {
		return fmt.Errorf("lsp: didOpen before initialize")
	}
	path := params.TextDocument.URI.Path()
	source := params.TextDocument.Text
	id, known := s.proj.Files.GetFileID(path)
	if !known {
		id = s.proj.Files.Load(path, source)
	} else {
		s.proj.Files.SetOverlay(id, source)
	}
	s.proj.Reindex(id, path, source)
	return nil
}

// DidChange applies a full-document replace (this server only ever
// advertises protocol.Full sync) and re-runs the binder over the new
// content.
func (s *server) DidChange(ctx context.Context, params *protocol.DidChangeTextDocumentParams) error {
	_, done := event.Start(ctx, "lsp.Server.didChange")
	defer done()

	if s.proj == nil {
		return fmt.Errorf("lsp: didChange before initialize")
	}
	if len(params.ContentChanges) == 0 {
		return nil
	}
	path := params.TextDocument.URI.Path()
	source := params.ContentChanges[len(params.ContentChanges)-1].Text
	id, known := s.proj.Files.GetFileID(path)
	if !known {
		id = s.proj.Files.Load(path, source)
	} else {
		s.proj.Files.SetOverlay(id, source)
	}
	s.proj.Reindex(id, path, source)
	return nil
}

// DidClose drops the in-memory overlay, reverting to whatever content
// is on disk.
func (s *server) DidClose(ctx context.Context, params *protocol.DidCloseTextDocumentParams) error {
	_, done := event.Start(ctx, "lsp.Server.didClose")
	defer done()

	if s.proj == nil {
		return nil
	}
	path := params.TextDocument.URI.Path()
	if id, ok := s.proj.Files.GetFileID(path); ok {
		s.proj.Files.ClearOverlay(id)
	}
	return nil
}

// Completion implements textDocument/completion, the one LSP request
// this engine exists to serve. It converts the wire position to a byte
// offset, builds a fresh completion.Finder for this request (spec.md
// §3, "the finder is built per completion request, consumed once, and
// discarded"), and walks the file.
func (s *server) Completion(ctx context.Context, params *protocol.CompletionParams) (*protocol.CompletionList, error) {
	_, done := event.Start(ctx, "lsp.Server.completion")
	defer done()

	if s.proj == nil {
		return nil, nil
	}
	path := params.TextDocument.URI.Path()
	id, ok := s.proj.Files.GetFileID(path)
	if !ok {
		return nil, nil
	}
	file, ok := s.proj.Files.GetFile(id)
	if !ok {
		return nil, nil
	}

	byteIndex, err := s.proj.Files.PositionToByteIndex(id, params.Position.Line, params.Position.Character)
	if err != nil {
		return nil, nil
	}

	items := s.proj.Complete(id, file.Source, byteIndex)
	if items == nil {
		return nil, nil
	}

	wireItems := make([]protocol.CompletionItem, 0, len(items))
	for _, it := range items {
		wireItems = append(wireItems, completionItemToWire(it))
	}
	return &protocol.CompletionList{Items: wireItems}, nil
}

func completionItemToWire(it completion.Item) protocol.CompletionItem {
	wire := protocol.CompletionItem{
		Label:      it.Label,
		Kind:       completionKindToWire(it.Kind),
		Detail:     it.Detail,
		InsertText: it.InsertText,
		SortText:   it.SortText,
	}
	if it.InsertTextFormat == completion.Snippet {
		wire.InsertTextFormat = protocol.SnippetFormat
	} else {
		wire.InsertTextFormat = protocol.PlainTextFormat
	}
	return wire
}

func completionKindToWire(k completion.ItemKind) protocol.CompletionItemKind {
	switch k {
	case completion.KindFunction:
		return protocol.KindFunction
	case completion.KindModule:
		return protocol.KindModule
	case completion.KindStruct, completion.KindTrait:
		return protocol.KindClass
	case completion.KindTypeParameter:
		return protocol.KindTypeParameter
	case completion.KindField:
		return protocol.KindField
	case completion.KindVariable, completion.KindGlobal:
		return protocol.KindVariable
	case completion.KindKeyword, completion.KindCrate:
		return protocol.KindKeyword
	case completion.KindTypeAlias:
		return protocol.KindClass
	default:
		return protocol.KindText
	}
}
