package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"orbitlang.org/go/internal/project"
)

func newCheckCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check [dir]",
		Short: "load a workspace and print its root directory and crate name",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) == 1 {
				dir = args[0]
			}

			proj, err := project.Open(context.Background(), dir, nil)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "orbit: indexed workspace %q (crate %q)\n",
				proj.Root(), proj.Workspace.Manifest.Crate)
			return nil
		},
	}
}
