// Copyright © 2025 The pycheck authors

package cmd

import (
	"fmt"
	"os"

	"github.com/luthersystems/pycheck/repl"
	"github.com/spf13/cobra"
)

// replCmd represents the repl command
var replCmd = &cobra.Command{
	Use:   "repl",
	Short: "Check Python snippets interactively",
	Long: `Start an interactive snippet checker.

Type a statement and it is checked as soon as it is complete. A line that
opens a block or leaves a bracket open starts a multi-line snippet; end
the snippet with a blank line to check it. Line editing and in-session
command history are supported via readline. Use Ctrl-D to exit.`,
	Args: cobra.NoArgs,
	Run: func(_ *cobra.Command, _ []string) {
		if err := repl.RunRepl(">>> "); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(replCmd)
}
