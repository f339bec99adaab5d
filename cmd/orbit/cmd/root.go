// Package cmd builds the orbit command-line tool's cobra command
// tree. Grounded on cuelang.org/go/cmd/cue/cmd's root.go: a single
// New(args) constructor that assembles the root *cobra.Command and
// attaches every subcommand, with SilenceErrors/SilenceUsage set since
// main prints errors itself.
package cmd

import (
	"github.com/spf13/cobra"
)

// New creates the top-level "orbit" command with args already bound,
// ready for Execute.
func New(args []string) *cobra.Command {
	root := &cobra.Command{
		Use:           "orbit",
		Short:         "orbit manages and checks orbit-lang workspaces",
		SilenceErrors: true,
		SilenceUsage:  true,
	}

	root.AddCommand(newCheckCmd())
	root.AddCommand(newCompleteCmd())
	root.AddCommand(newLSPCmd())

	root.SetArgs(args)
	return root
}
