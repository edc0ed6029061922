// Copyright © 2025 The pycheck authors

package repl

import (
	"io"

	"github.com/luthersystems/pycheck/check"
	"github.com/luthersystems/pycheck/diagnostic"
)

// renderDiagnostics renders checker findings with annotated source snippets.
// Interactive input has no backing file, so the renderer reads the snippet
// buffer instead.
func renderDiagnostics(w io.Writer, diags []check.Diagnostic, src string) {
	r := &diagnostic.Renderer{
		Color: diagnostic.ColorAuto,
		SourceReader: func(string) ([]byte, error) {
			return []byte(src), nil
		},
	}
	rendered := make([]diagnostic.Diagnostic, len(diags))
	for i, d := range diags {
		rendered[i] = checkToDiag(d)
	}
	_ = r.RenderAll(w, rendered)
}

// checkToDiag converts a checker finding to a renderable diagnostic.
func checkToDiag(d check.Diagnostic) diagnostic.Diagnostic {
	sev := diagnostic.SeverityError
	if d.Severity == check.SeverityAdvisory {
		sev = diagnostic.SeverityWarning
	}
	out := diagnostic.Diagnostic{
		Severity: sev,
		Code:     d.Kind.String(),
		Message:  d.Message,
		Help:     d.Fix,
		Notes:    d.Notes,
	}
	if d.Pos.Line > 0 {
		span := diagnostic.Span{
			File: d.Pos.File,
			Line: d.Pos.Line,
			Col:  d.Pos.Col,
		}
		// Checker end columns are exclusive; span end columns are inclusive.
		if d.EndCol > d.Pos.Col {
			span.EndCol = d.EndCol - 1
		}
		out.Spans = append(out.Spans, span)
	}
	return out
}
