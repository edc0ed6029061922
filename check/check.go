// Copyright © 2025 The pycheck authors

// Package check reports syntax diagnostics for indentation-sensitive source.
//
// The checker is modeled after go vet: each check is an independent Analyzer
// that receives the scanned file and reports diagnostics. The framework
// handles scanning, running analyzers, collecting results, and formatting
// output.
//
// Diagnostics are the checker's output, not its failure mode: a scan runs to
// completion on arbitrarily broken input. Only unreadable input is an error.
package check

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/luthersystems/pycheck/parser"
	"github.com/luthersystems/pycheck/parser/token"
)

// Analyzer defines a single syntax check.
type Analyzer struct {
	// Name is a short identifier for this check (e.g. "missing-colon").
	Name string

	// Doc is a human-readable description. The first line is a short summary.
	Doc string

	// Severity is the default severity for diagnostics from this analyzer.
	Severity Severity

	// Run executes the check. It should call pass.Report() for each finding.
	Run func(pass *Pass) error
}

// Pass provides context to a running analyzer.
type Pass struct {
	// Analyzer is the currently running check.
	Analyzer *Analyzer

	// File is the scanned source being analyzed.
	File *parser.File

	// diagnostics collects reported findings.
	diagnostics []Diagnostic
}

// Report records a diagnostic finding.
func (p *Pass) Report(d Diagnostic) {
	d.Analyzer = p.Analyzer.Name
	if d.Severity == severityUnset {
		d.Severity = p.Analyzer.Severity
	}
	if d.Pos.File == "" {
		d.Pos.File = p.File.Name
	}
	p.diagnostics = append(p.diagnostics, d)
}

// Reportf is a convenience for reporting a diagnostic at a token location.
func (p *Pass) Reportf(kind Kind, source *token.Location, format string, args ...interface{}) {
	d := Diagnostic{
		Kind:    kind,
		Message: fmt.Sprintf(format, args...),
	}
	if source != nil {
		d.Pos = Position{File: source.File, Line: source.Line, Col: source.Col}
	}
	p.Report(d)
}

// Diagnostic is a single reported problem.
type Diagnostic struct {
	// Kind is the class of the problem.
	Kind Kind `json:"kind"`

	// Pos is the source location of the problem.
	Pos Position `json:"pos"`

	// EndCol is the column one past the end of the highlighted span, when a
	// span wider than one character is known.
	EndCol int `json:"end_col,omitempty"`

	// Message is a human-readable description of the problem.
	Message string `json:"message"`

	// Fix is suggested fix text. Detection only; the checker never edits.
	Fix string `json:"fix,omitempty"`

	// Analyzer is the name of the check that found this problem.
	Analyzer string `json:"analyzer"`

	// Severity distinguishes structural errors from advisory findings.
	Severity Severity `json:"severity"`

	// Notes are optional hint text lines for the user.
	Notes []string `json:"notes,omitempty"`
}

// Position identifies a location in source code.
type Position struct {
	File string `json:"file"`
	Line int    `json:"line"`
	Col  int    `json:"col,omitempty"`
}

// String returns the position in file:line:col format.
func (p Position) String() string {
	if p.Line == 0 {
		return p.File
	}
	if p.Col > 0 {
		return fmt.Sprintf("%s:%d:%d", p.File, p.Line, p.Col)
	}
	return fmt.Sprintf("%s:%d", p.File, p.Line)
}

// String returns the diagnostic in the line-oriented report shape:
// file:line:col: KIND: message (fix: suggested fix) with optional note
// lines appended.
func (d Diagnostic) String() string {
	s := fmt.Sprintf("%s: %s: %s", d.Pos, d.Kind, d.Message)
	if d.Fix != "" {
		s += fmt.Sprintf(" (fix: %s)", d.Fix)
	}
	for _, n := range d.Notes {
		s += "\n  = note: " + n
	}
	return s
}

// Checker runs a set of analyzers over source files. A Checker holds no
// per-file state and may be shared by goroutines checking different files.
type Checker struct {
	Analyzers []*Analyzer
}

// CheckFile scans a single source buffer and returns all diagnostics in
// (line, column) order with exact (kind, location) repeats removed.
// Malformed syntax never produces an error; an error indicates an analyzer
// itself failed.
func (c *Checker) CheckFile(source []byte, filename string) ([]Diagnostic, error) {
	return c.Check(parser.Parse(filename, source))
}

// Check runs all analyzers over an already scanned file.
func (c *Checker) Check(f *parser.File) ([]Diagnostic, error) {
	var all []Diagnostic

	for _, analyzer := range c.Analyzers {
		pass := &Pass{
			Analyzer: analyzer,
			File:     f,
		}
		if err := analyzer.Run(pass); err != nil {
			return nil, fmt.Errorf("%s: analyzer %s: %w", f.Name, analyzer.Name, err)
		}
		all = append(all, pass.diagnostics...)
	}

	// Filter suppressed diagnostics (# nolint comments)
	all = filterSuppressed(all, f.Comments)

	// Sort by file, then line, then column
	sort.SliceStable(all, func(i, j int) bool {
		if all[i].Pos.File != all[j].Pos.File {
			return all[i].Pos.File < all[j].Pos.File
		}
		if all[i].Pos.Line != all[j].Pos.Line {
			return all[i].Pos.Line < all[j].Pos.Line
		}
		return all[i].Pos.Col < all[j].Pos.Col
	})

	return dedupe(all), nil
}

// dedupe removes diagnostics repeating an earlier (kind, line, col) exactly.
// The input must already be sorted by position.
func dedupe(diags []Diagnostic) []Diagnostic {
	var out []Diagnostic
	for i, d := range diags {
		if i > 0 {
			prev := out[len(out)-1]
			if prev.Kind == d.Kind && prev.Pos == d.Pos {
				continue
			}
		}
		out = append(out, d)
	}
	return out
}

// Summary returns the number of diagnostics of each kind.
func Summary(diags []Diagnostic) map[Kind]int {
	counts := make(map[Kind]int)
	for _, d := range diags {
		counts[d.Kind]++
	}
	return counts
}

// ErrorCount returns the number of diagnostics with error severity.
func ErrorCount(diags []Diagnostic) int {
	n := 0
	for _, d := range diags {
		if d.Severity == SeverityError {
			n++
		}
	}
	return n
}

// filterSuppressed removes diagnostics on lines with # nolint comments.
func filterSuppressed(diags []Diagnostic, comments []*token.Token) []Diagnostic {
	nolintLines := make(map[int]string) // line -> "" (all) or "analyzer1,analyzer2"
	for _, c := range comments {
		checkNolintToken(c, nolintLines)
	}
	if len(nolintLines) == 0 {
		return diags
	}

	var filtered []Diagnostic
	for _, d := range diags {
		directive, ok := nolintLines[d.Pos.Line]
		if !ok {
			filtered = append(filtered, d)
			continue
		}
		// Empty directive = suppress all
		if directive == "" {
			continue
		}
		// Check if this specific analyzer is suppressed
		suppressed := false
		for _, name := range strings.Split(directive, ",") {
			if strings.TrimSpace(name) == d.Analyzer {
				suppressed = true
				break
			}
		}
		if !suppressed {
			filtered = append(filtered, d)
		}
	}
	return filtered
}

// checkNolintToken parses a comment token for a nolint directive and maps it
// to the comment's line number.
func checkNolintToken(tok *token.Token, lines map[int]string) {
	if tok == nil || tok.Source == nil {
		return
	}
	text := strings.TrimSpace(tok.Text)
	// Strip comment prefix
	text = strings.TrimLeft(text, "#")
	text = strings.TrimSpace(text)

	if !strings.HasPrefix(text, "nolint") {
		return
	}
	rest := strings.TrimPrefix(text, "nolint")
	if rest == "" {
		lines[tok.Source.Line] = ""
		return
	}
	if strings.HasPrefix(rest, ":") {
		lines[tok.Source.Line] = strings.TrimPrefix(rest, ":")
	}
}

// FormatText writes diagnostics in line-oriented text format.
func FormatText(w io.Writer, diags []Diagnostic) {
	for _, d := range diags {
		fmt.Fprintln(w, d.String()) //nolint:errcheck // best-effort output to writer
	}
}

// FormatJSON writes diagnostics as JSON.
func FormatJSON(w io.Writer, diags []Diagnostic) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(diags)
}
