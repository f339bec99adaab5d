package server

import (
	"context"
	"io"
	"log/slog"

	"go.lsp.dev/jsonrpc2"

	"orbitlang.org/go/internal/protocol"
	"orbitlang.org/go/internal/registry"
)

// stdioClient implements Client over a live jsonrpc2.Conn, turning log
// messages into a window/logMessage notification the way
// _examples/bufbuild-buf's connWrapper forwards calls over the wire.
type stdioClient struct {
	conn jsonrpc2.Conn
}

func (c stdioClient) LogMessage(ctx context.Context, params *protocol.LogMessageParams) error {
	return c.conn.Notify(ctx, "window/logMessage", params)
}

func (c stdioClient) Close() error { return nil }

// RunStdio wires a fresh server to transport (conventionally stdin
// joined with stdout) using go.lsp.dev/jsonrpc2 framing, and blocks
// until the connection closes. Both cmd/orbitls and `orbit lsp` call
// this; it exists so the stdio plumbing lives in one place rather than
// duplicated across the two entry points, the same way cue's `cue lsp`
// subcommand and cmd/cuepls both bottom out in gopls' cmd.New.
func RunStdio(ctx context.Context, transport io.ReadWriteCloser, registryClient *registry.Client) error {
	stream := jsonrpc2.NewStream(transport)
	conn := jsonrpc2.NewConn(stream)

	srv := New(stdioClient{conn: conn}, registryClient)

	conn.Go(ctx, Handler(srv))
	slog.Info("orbitls: listening", "server", srv.ID())

	<-conn.Done()
	return conn.Err()
}
