package cmd

import (
	"context"
	"os"

	"github.com/spf13/cobra"

	"orbitlang.org/go/internal/lsp/server"
)

// stdio joins os.Stdin/os.Stdout into the io.ReadWriteCloser
// server.RunStdio expects.
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

// newLSPCmd wires `orbit lsp` to the same server.RunStdio loop
// cmd/orbitls uses directly, mirroring how cue's `cue lsp` subcommand
// delegates into the same gopls cmd.New that cmd/cuepls's main.go
// calls (_examples/cue-lang-cue/cmd/cue/cmd/lsp.go).
func newLSPCmd() *cobra.Command {
	return &cobra.Command{
		Use:    "lsp",
		Short:  "start an orbit language server on stdio",
		Hidden: true,
		Args:   cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return server.RunStdio(context.Background(), stdio{}, nil)
		},
	}
}
