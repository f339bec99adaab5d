package server

import (
	"context"
	"fmt"

	"orbitlang.org/go/internal/event"
	"orbitlang.org/go/internal/project"
	"orbitlang.org/go/internal/protocol"
)

func rootFromParams(params *protocol.ParamInitialize) (protocol.DocumentURI, error) {
	if len(params.WorkspaceFolders) > 0 {
		return protocol.ParseDocumentURI(params.WorkspaceFolders[0].URI)
	}
	if params.RootURI != "" {
		return params.RootURI, nil
	}
	return "", fmt.Errorf("initialize: no rootUri or workspaceFolders supplied")
}

// Initialize is a request from the editor/client to initialize the
// workspace. It gets a response. Once the response is sent, the client
// needs to send an Initialized async message before any work starts.
//
// https://microsoft.github.io/language-server-protocol/specifications/lsp/3.17/specification/#initialize
func (s *server) Initialize(ctx context.Context, params *protocol.ParamInitialize) (*protocol.InitializeResult, error) {
	ctx, done := event.Start(ctx, "lsp.Server.initialize")
	defer done()

	if s.state != serverCreated {
		return nil, fmt.Errorf("initialize called while server in %v state", s.state)
	}
	s.state = serverInitializing

	rootURI, err := rootFromParams(params)
	if err != nil {
		return nil, err
	}
	s.root = rootURI.Path()

	proj, err := project.Open(ctx, s.root, s.registryClient)
	if err != nil {
		return nil, fmt.Errorf("initialize: opening workspace %s: %w", s.root, err)
	}
	s.proj = proj

	return &protocol.InitializeResult{
		ServerInfo: &protocol.ServerInfo{
			Name:    "orbitls",
			Version: "0.1.0",
		},
		Capabilities: protocol.ServerCapabilities{
			CompletionProvider: &protocol.CompletionOptions{
				TriggerCharacters: []string{".", ":"},
			},
			TextDocumentSync: &protocol.TextDocumentSyncOptions{
				OpenClose: true,
				Change:    protocol.Full,
			},
		},
	}, nil
}

// Initialized is the handler for the async message from the client.
// The client should send this only after it's received our
// InitializeResult message.
//
// https://microsoft.github.io/language-server-protocol/specifications/lsp/3.17/specification/#initialized
func (s *server) Initialized(ctx context.Context) error {
	_, done := event.Start(ctx, "lsp.Server.initialized")
	defer done()

	if s.state != serverInitializing {
		return fmt.Errorf("initialized called while server in %v state", s.state)
	}
	s.state = serverInitialized
	return nil
}
