package cmd

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"orbitlang.org/go/internal/project"
)

func newCompleteCmd() *cobra.Command {
	var line, character int

	c := &cobra.Command{
		Use:   "complete <file>",
		Short: "print the completion candidates at a line/character position",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			file := args[0]
			dir := filepath.Dir(file)

			proj, err := project.Open(context.Background(), dir, nil)
			if err != nil {
				return err
			}

			id, ok := proj.Files.GetFileID(file)
			if !ok {
				return fmt.Errorf("orbit: %s was not indexed under workspace %s", file, dir)
			}
			current, ok := proj.Files.GetFile(id)
			if !ok {
				return fmt.Errorf("orbit: no content loaded for %s", file)
			}

			byteIndex, err := proj.Files.PositionToByteIndex(id, line, character)
			if err != nil {
				return err
			}

			items := proj.Complete(id, current.Source, byteIndex)
			for _, item := range items {
				fmt.Fprintf(cmd.OutOrStdout(), "%s\t%v\t%s\n", item.Label, item.Kind, item.Detail)
			}
			return nil
		},
	}

	c.Flags().IntVar(&line, "line", 0, "zero-based line number")
	c.Flags().IntVar(&character, "character", 0, "zero-based UTF-16 character offset")
	return c
}
