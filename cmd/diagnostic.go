// Copyright © 2025 The pycheck authors

package cmd

import (
	"os"

	"github.com/luthersystems/pycheck/check"
	"github.com/luthersystems/pycheck/diagnostic"
)

func colorMode() diagnostic.ColorMode {
	switch colorFlag {
	case "always":
		return diagnostic.ColorAlways
	case "never":
		return diagnostic.ColorNever
	default:
		return diagnostic.ColorAuto
	}
}

func newRenderer() *diagnostic.Renderer {
	return &diagnostic.Renderer{Color: colorMode()}
}

// checkDiagToDiagnostic converts a checker finding to a renderable
// diagnostic with an annotated source span.
func checkDiagToDiagnostic(cd check.Diagnostic) diagnostic.Diagnostic {
	sev := diagnostic.SeverityError
	if cd.Severity == check.SeverityAdvisory {
		sev = diagnostic.SeverityWarning
	}
	d := diagnostic.Diagnostic{
		Severity: sev,
		Code:     cd.Kind.String(),
		Message:  cd.Message,
		Help:     cd.Fix,
	}
	if cd.Pos.Line > 0 {
		span := diagnostic.Span{
			File: cd.Pos.File,
			Line: cd.Pos.Line,
			Col:  cd.Pos.Col,
		}
		// Checker end columns are exclusive; span end columns are inclusive.
		if cd.EndCol > cd.Pos.Col {
			span.EndCol = cd.EndCol - 1
		}
		d.Spans = append(d.Spans, span)
	}
	d.Notes = append(d.Notes, cd.Notes...)
	d.Notes = append(d.Notes, "to suppress: add \"# nolint:"+cd.Analyzer+"\" as a comment on this line")
	return d
}

// renderCheckDiagnostics renders checker findings with annotated source
// snippets to stderr.
func renderCheckDiagnostics(diags []check.Diagnostic) {
	var ds []diagnostic.Diagnostic
	for _, cd := range diags {
		ds = append(ds, checkDiagToDiagnostic(cd))
	}
	r := newRenderer()
	_ = r.RenderAll(os.Stderr, ds)
}
