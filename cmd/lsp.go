// Copyright © 2025 The pycheck authors

package cmd

import (
	"fmt"
	"log"
	"os"

	"github.com/luthersystems/pycheck/lsp"
	"github.com/spf13/cobra"
)

// lspCmd starts the language server for editor integration.
var lspCmd = &cobra.Command{
	Use:   "lsp [flags]",
	Short: "Start the pycheck Language Server Protocol server",
	Long: `Start an LSP server for Python source files.

The language server publishes pycheck diagnostics for open documents as
they are edited. It provides diagnostics only; it is not a full Python
language server.

Transport modes:
  --stdio      Use stdin/stdout for LSP communication (default)
  --port N     Listen for an LSP client on TCP port N

Examples:
  pycheck lsp                        Start with stdio transport
  pycheck lsp --stdio                Same as above (explicit)
  pycheck lsp --port 7998            Start with TCP on port 7998

Editor configuration (VS Code):
  Install a generic LSP client extension and configure it to run
  "pycheck lsp --stdio" for .py files.`,
	Args: cobra.NoArgs,
	Run: func(_ *cobra.Command, _ []string) {
		srv := lsp.New()

		if lspPort > 0 && !lspStdio {
			addr := fmt.Sprintf("localhost:%d", lspPort)
			log.Printf("pycheck LSP server listening on %s", addr)
			if err := srv.RunTCP(addr); err != nil {
				fmt.Fprintf(os.Stderr, "lsp server error: %v\n", err)
				os.Exit(1)
			}
			return
		}
		if err := srv.RunStdio(); err != nil {
			fmt.Fprintf(os.Stderr, "lsp server error: %v\n", err)
			os.Exit(1)
		}
	},
}

var (
	lspStdio bool
	lspPort  int
)

func init() {
	rootCmd.AddCommand(lspCmd)

	lspCmd.Flags().BoolVar(&lspStdio, "stdio", false,
		"Use stdin/stdout for LSP communication (default behavior)")
	lspCmd.Flags().IntVar(&lspPort, "port", 0,
		"TCP port for LSP server (use instead of --stdio)")
}
