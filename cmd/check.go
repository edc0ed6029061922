// Copyright © 2025 The pycheck authors

package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/luthersystems/pycheck/check"
	"github.com/spf13/cobra"
)

var (
	checkJSON     bool
	checkChecks   string
	checkListAll  bool
	checkStrict   bool
	checkExcludes []string
)

var checkCmd = &cobra.Command{
	Use:   "check [flags] [files...]",
	Short: "Report syntax problems in Python source files",
	Long: `Report syntax problems in Python source files.

The checker scans each file and reports structural problems: missing
colons on block headers, bad indentation, unterminated strings, unbalanced
brackets, malformed dict literals, and more. It never stops at the first
problem; one run reports everything it can find. Advisory findings flag
legal but suspicious constructs and do not affect the exit code unless
--strict is given.

With no files, reads from stdin. With files, checks each file in turn.
An unreadable file is reported and the remaining files are still checked.

Exit codes:
  0  No problems found (or only advisory findings without --strict)
  1  One or more problems were reported
  2  Bad invocation (invalid flags, unreadable files)

To suppress a specific diagnostic, add a comment on the same line:
  x = {a: 1}  # nolint:dict-literal

To suppress all checks on a line:
  x = {a: 1}  # nolint

Available checks (use --checks to select specific ones):
` + check.AnalyzerDoc() + `
Examples:
  pycheck check file.py                           # Check a single file
  pycheck check *.py                              # Check multiple files
  pycheck check --json file.py                    # Output diagnostics as JSON
  pycheck check --checks=missing-colon file.py    # Run only specific checks
  pycheck check --list                            # List available checks
  pycheck check --strict ./...                    # Advisories fail the run
  pycheck check --exclude='vendor' ./...          # Exclude a directory
  cat file.py | pycheck check                     # Check from stdin`,
	Run: func(cmd *cobra.Command, args []string) {
		if checkListAll {
			for _, name := range check.AnalyzerNames() {
				fmt.Println(name)
			}
			return
		}

		analyzers := check.DefaultAnalyzers()
		if checkChecks != "" {
			selected := make(map[string]bool)
			for _, name := range strings.Split(checkChecks, ",") {
				selected[strings.TrimSpace(name)] = true
			}
			var filtered []*check.Analyzer
			for _, a := range analyzers {
				if selected[a.Name] {
					filtered = append(filtered, a)
					delete(selected, a.Name)
				}
			}
			for name := range selected {
				fmt.Fprintf(os.Stderr, "pycheck check: unknown check: %s\n", name)
				os.Exit(2)
			}
			analyzers = filtered
		}

		checker := &check.Checker{Analyzers: analyzers}

		if len(args) == 0 {
			checkStdin(checker)
			return
		}

		expanded, err := expandArgs(args, checkExcludes)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(2)
		}

		// Unreadable files do not stop the run; the remaining files are
		// still checked and the failure is reflected in the exit code.
		ioFailed := false
		var allDiags []check.Diagnostic
		for _, path := range expanded {
			diags, err := checkFile(checker, path)
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				ioFailed = true
				continue
			}
			allDiags = append(allDiags, diags...)
		}

		emitDiagnostics(allDiags)
		os.Exit(exitCode(allDiags, ioFailed))
	},
}

// exitCode derives the process exit code from the run's findings. I/O
// failures dominate, then error findings, then (under --strict) advisories.
func exitCode(diags []check.Diagnostic, ioFailed bool) int {
	if ioFailed {
		return 2
	}
	if check.ErrorCount(diags) > 0 {
		return 1
	}
	if checkStrict && len(diags) > 0 {
		return 1
	}
	return 0
}

// emitDiagnostics writes findings in the selected output format.
func emitDiagnostics(diags []check.Diagnostic) {
	if len(diags) == 0 {
		return
	}
	if checkJSON {
		if err := check.FormatJSON(os.Stdout, diags); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(2)
		}
		return
	}
	renderCheckDiagnostics(diags)
}

func checkStdin(checker *check.Checker) {
	src, err := readStdin()
	if err != nil {
		fmt.Fprintf(os.Stderr, "reading stdin: %v\n", err)
		os.Exit(2)
	}
	diags, err := checker.CheckFile(src, "<stdin>")
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	emitDiagnostics(diags)
	os.Exit(exitCode(diags, false))
}

func checkFile(checker *check.Checker, path string) ([]check.Diagnostic, error) {
	src, err := os.ReadFile(path) //nolint:gosec // CLI tool reads user-specified files
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return checker.CheckFile(src, path)
}

func readStdin() ([]byte, error) {
	return os.ReadFile("/dev/stdin")
}

func init() {
	rootCmd.AddCommand(checkCmd)

	checkCmd.Flags().BoolVar(&checkJSON, "json", false,
		"Output diagnostics as JSON.")
	checkCmd.Flags().StringVar(&checkChecks, "checks", "",
		"Comma-separated list of checks to run (default: all).")
	checkCmd.Flags().BoolVar(&checkListAll, "list", false,
		"List available checks and exit.")
	checkCmd.Flags().BoolVar(&checkStrict, "strict", false,
		"Advisory findings also produce a nonzero exit code.")
	checkCmd.Flags().StringArrayVar(&checkExcludes, "exclude", nil,
		"Glob pattern for files to exclude (may be repeated).")
}
