// Command orbitls is the stdio Language Server binary for the
// completion engine in internal/completion. Grounded on
// cuelang.org/go/cmd/cuepls' main.go (a thin binary that just starts
// the server loop).
package main

import (
	"context"
	"log/slog"
	"os"

	"orbitlang.org/go/internal/lsp/server"
)

// stdio joins os.Stdin/os.Stdout into the io.ReadWriteCloser
// jsonrpc2.NewStream expects, the same "pipe not specified, use
// stdio" default
// _examples/bufbuild-buf/cmd/buf/internal/command/lsp/lspserve.dial
// falls back to.
type stdio struct{}

func (stdio) Read(p []byte) (int, error)  { return os.Stdin.Read(p) }
func (stdio) Write(p []byte) (int, error) { return os.Stdout.Write(p) }
func (stdio) Close() error {
	inErr := os.Stdin.Close()
	outErr := os.Stdout.Close()
	if inErr != nil {
		return inErr
	}
	return outErr
}

func main() {
	if err := server.RunStdio(context.Background(), stdio{}, nil); err != nil {
		slog.Error("orbitls: connection closed with error", "error", err)
		os.Exit(1)
	}
}
