// Command orbit is the command-line entry point for the source
// language's tooling: loading a workspace and reporting its root and
// crate name (parse errors are not reported), and driving the completion engine
// either interactively (one query at a time) or as an LSP server over
// stdio. Grounded on cuelang.org/go/cmd/cue's root.go (a cobra root
// command with New(args) returning a *Command and Main() wrapping
// it for os.Exit).
package main

import (
	"fmt"
	"os"

	"orbitlang.org/go/cmd/orbit/cmd"
)

func main() {
	if err := cmd.New(os.Args[1:]).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
