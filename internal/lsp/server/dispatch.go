package server

import (
	"context"
	"encoding/json"
	"fmt"

	"go.lsp.dev/jsonrpc2"

	"orbitlang.org/go/internal/protocol"
)

// Handler adapts a ServerWithID to a jsonrpc2.Handler (the function
// shape go.lsp.dev/jsonrpc2's Conn.Go expects), decoding each inbound
// request's params against the subset of methods this engine answers
// and ignoring everything else. Grounded on
// _examples/bufbuild-buf/private/buf/buflsp's own
// `func(ctx, reply jsonrpc2.Replier, req jsonrpc2.Request) error`
// handler shape, used directly rather than implementing the full
// `go.lsp.dev/protocol.Server` interface (~60 methods), since this
// engine only ever serves the lifecycle + document-sync + completion
// methods named in spec.md §6.
func Handler(s ServerWithID) jsonrpc2.Handler {
	return func(ctx context.Context, reply jsonrpc2.Replier, req jsonrpc2.Request) error {
		result, err := dispatch(ctx, s, req)
		return reply(ctx, result, err)
	}
}

func dispatch(ctx context.Context, s ServerWithID, req jsonrpc2.Request) (any, error) {
	switch req.Method() {
	case "initialize":
		var params protocol.ParamInitialize
		if err := unmarshalParams(req, &params); err != nil {
			return nil, err
		}
		return s.Initialize(ctx, &params)

	case "initialized":
		return nil, s.Initialized(ctx)

	case "shutdown":
		return nil, s.Shutdown(ctx)

	case "exit":
		return nil, s.Exit(ctx)

	case "textDocument/didOpen":
		var params protocol.DidOpenTextDocumentParams
		if err := unmarshalParams(req, &params); err != nil {
			return nil, err
		}
		return nil, s.DidOpen(ctx, &params)

	case "textDocument/didChange":
		var params protocol.DidChangeTextDocumentParams
		if err := unmarshalParams(req, &params); err != nil {
			return nil, err
		}
		return nil, s.DidChange(ctx, &params)

	case "textDocument/didClose":
		var params protocol.DidCloseTextDocumentParams
		if err := unmarshalParams(req, &params); err != nil {
			return nil, err
		}
		return nil, s.DidClose(ctx, &params)

	case "textDocument/completion":
		var params protocol.CompletionParams
		if err := unmarshalParams(req, &params); err != nil {
			return nil, err
		}
		return s.Completion(ctx, &params)

	default:
		return nil, fmt.Errorf("%s: method not supported", req.Method())
	}
}

func unmarshalParams(req jsonrpc2.Request, v any) error {
	if len(req.Params()) == 0 {
		return nil
	}
	if err := json.Unmarshal(req.Params(), v); err != nil {
		return fmt.Errorf("lsp: decoding params for %s: %w", req.Method(), err)
	}
	return nil
}
