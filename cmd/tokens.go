// Copyright © 2025 The pycheck authors

package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/luthersystems/pycheck/parser/lexer"
	"github.com/luthersystems/pycheck/parser/token"
	"github.com/spf13/cobra"
)

// tokensCmd dumps the raw token stream. Mostly useful for debugging the
// checker itself and for bug reports about misclassified input.
var tokensCmd = &cobra.Command{
	Use:   "tokens [file]",
	Short: "Dump the token stream for a source file",
	Long: `Dump the token stream for a Python source file, one token per line in
"line:col type text" form. With no file, reads from stdin.

Scan failures (unterminated strings, unbalanced brackets) are listed after
the token stream.`,
	Args: cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		path := "<stdin>"
		src := os.Stdin
		if len(args) == 1 {
			path = args[0]
			f, err := os.Open(path) //nolint:gosec // CLI tool reads user-specified files
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(2)
			}
			defer f.Close() //nolint:errcheck // read-only file
			src = f
		}

		lex := lexer.New(token.NewScanner(path, src))
		for {
			tok := lex.ReadToken()
			if tok.Type == token.EOF {
				break
			}
			fmt.Printf("%d:%d\t%s\t%s\n",
				tok.Source.Line, tok.Source.Col, tok.Type, printable(tok.Text))
		}
		for _, f := range lex.Failures() {
			fmt.Printf("%s\tFAIL\t%s\n", f.Source, f.Msg)
		}
	},
}

// printable renders token text on one line for the dump.
func printable(s string) string {
	s = strings.ReplaceAll(s, "\n", `\n`)
	s = strings.ReplaceAll(s, "\t", `\t`)
	return s
}

func init() {
	rootCmd.AddCommand(tokensCmd)
}
