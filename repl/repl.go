// Copyright © 2025 The pycheck authors

// Package repl implements an interactive snippet checker. Each snippet is
// scanned and checked as soon as it is complete, and any findings are
// rendered inline.
package repl

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/ergochat/readline"
	"github.com/luthersystems/pycheck/check"
	"github.com/luthersystems/pycheck/parser"
)

// snippetName is the file name reported for interactive input.
const snippetName = "<repl>"

type config struct {
	stdin  io.ReadCloser
	stdout io.Writer
}

func newConfig(opts ...Option) *config {
	config := &config{}
	for _, opt := range opts {
		opt(config)
	}
	return config
}

type Option func(*config)

// WithStdin allows overriding the input to the REPL.
func WithStdin(stdin io.ReadCloser) Option {
	return func(c *config) {
		c.stdin = stdin
	}
}

// WithStdout allows overriding the output of the REPL.
func WithStdout(stdout io.Writer) Option {
	return func(c *config) {
		c.stdout = stdout
	}
}

// RunRepl runs the interactive snippet checker. A snippet that is a single
// complete statement is checked immediately; a snippet that opens a block
// or bracket is buffered until a blank line ends it.
func RunRepl(prompt string, opts ...Option) error {
	cfg := newConfig(opts...)
	out := cfg.stdout
	if out == nil {
		out = os.Stderr
	}
	cont := strings.Repeat(".", len(prompt)-1) + " "

	rlCfg := &readline.Config{
		Stdout:            out,
		Stderr:            out,
		Prompt:            prompt,
		HistoryFile:       historyPath(),
		HistorySearchFold: true,
	}
	if cfg.stdin != nil {
		rlCfg.Stdin = cfg.stdin
	}
	rl, err := readline.NewEx(rlCfg)
	if err != nil {
		return err
	}
	defer rl.Close() //nolint:errcheck // best-effort cleanup

	checker := &check.Checker{Analyzers: check.DefaultAnalyzers()}

	var buf []string
	for {
		if len(buf) == 0 {
			rl.SetPrompt(prompt)
		} else {
			rl.SetPrompt(cont)
		}
		raw, err := rl.ReadSlice()
		line := string(raw)
		if err == readline.ErrInterrupt {
			buf = nil
			continue
		}
		if err != nil {
			// EOF: check whatever is buffered before leaving.
			if len(buf) > 0 {
				checkSnippet(out, checker, strings.Join(buf, "\n"))
			}
			return nil
		}

		if strings.TrimSpace(line) == "" {
			if len(buf) == 0 {
				continue
			}
			checkSnippet(out, checker, strings.Join(buf, "\n"))
			buf = nil
			continue
		}

		buf = append(buf, line)
		if len(buf) == 1 && !needsMore(line) {
			checkSnippet(out, checker, line)
			buf = nil
		}
	}
}

// needsMore reports whether a first line cannot be checked on its own: it
// opens a block, continues explicitly, or leaves a bracket open.
func needsMore(line string) bool {
	trimmed := strings.TrimRight(line, " \t")
	if strings.HasSuffix(trimmed, "\\") {
		return true
	}
	f := parser.Parse(snippetName, []byte(line))
	if len(f.Unclosed) > 0 {
		return true
	}
	if len(f.Lines) == 1 {
		kw := f.Lines[0].Keyword()
		if kw != "" && strings.HasSuffix(trimmed, ":") {
			return true
		}
	}
	return false
}

// checkSnippet runs the checker over one snippet and renders the findings.
func checkSnippet(w io.Writer, checker *check.Checker, src string) {
	diags, err := checker.CheckFile([]byte(src), snippetName)
	if err != nil {
		fmt.Fprintln(w, err) //nolint:errcheck // best-effort error display
		return
	}
	if len(diags) == 0 {
		fmt.Fprintln(w, "ok") //nolint:errcheck // best-effort REPL output
		return
	}
	renderDiagnostics(w, diags, src)
}

func historyPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".pycheck_history")
}
