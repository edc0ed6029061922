// Copyright © 2025 The pycheck authors

package lsp

import (
	"time"

	"github.com/luthersystems/pycheck/check"
	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"
)

const debounceDelay = 300 * time.Millisecond

// textDocumentDidOpen handles the textDocument/didOpen notification.
func (s *Server) textDocumentDidOpen(ctx *glsp.Context, params *protocol.DidOpenTextDocumentParams) error {
	s.captureNotify(ctx)
	doc := s.docs.Open(
		params.TextDocument.URI,
		int32(params.TextDocument.Version),
		params.TextDocument.Text,
	)
	s.checkAndPublish(doc)
	return nil
}

// textDocumentDidChange handles the textDocument/didChange notification.
func (s *Server) textDocumentDidChange(ctx *glsp.Context, params *protocol.DidChangeTextDocumentParams) error {
	s.captureNotify(ctx)
	// With full sync, the last content change is the complete document.
	var content string
	for _, change := range params.ContentChanges {
		switch c := change.(type) {
		case protocol.TextDocumentContentChangeEventWhole:
			content = c.Text
		case protocol.TextDocumentContentChangeEvent:
			content = c.Text
		}
	}

	doc := s.docs.Change(
		params.TextDocument.URI,
		int32(params.TextDocument.Version),
		content,
	)

	// Debounce: delay checking to avoid thrashing during rapid edits.
	s.debounceMu.Lock()
	if t, ok := s.debounce[doc.URI]; ok {
		t.Stop()
	}
	s.debounce[doc.URI] = time.AfterFunc(debounceDelay, func() {
		defer func() { _ = recover() }() // don't crash the server on a check panic
		d := s.docs.Get(doc.URI)
		if d != nil {
			s.checkAndPublish(d)
		}
	})
	s.debounceMu.Unlock()
	return nil
}

// textDocumentDidSave handles the textDocument/didSave notification.
func (s *Server) textDocumentDidSave(ctx *glsp.Context, params *protocol.DidSaveTextDocumentParams) error {
	s.captureNotify(ctx)
	// Cancel any pending debounce and publish immediately.
	s.debounceMu.Lock()
	if t, ok := s.debounce[params.TextDocument.URI]; ok {
		t.Stop()
		delete(s.debounce, params.TextDocument.URI)
	}
	s.debounceMu.Unlock()

	doc := s.docs.Get(params.TextDocument.URI)
	if doc != nil {
		s.checkAndPublish(doc)
	}
	return nil
}

// textDocumentDidClose handles the textDocument/didClose notification.
func (s *Server) textDocumentDidClose(_ *glsp.Context, params *protocol.DidCloseTextDocumentParams) error {
	// Cancel pending debounce.
	s.debounceMu.Lock()
	if t, ok := s.debounce[params.TextDocument.URI]; ok {
		t.Stop()
		delete(s.debounce, params.TextDocument.URI)
	}
	s.debounceMu.Unlock()

	// Clear diagnostics for the closed file.
	s.sendNotification(protocol.ServerTextDocumentPublishDiagnostics, &protocol.PublishDiagnosticsParams{
		URI:         params.TextDocument.URI,
		Diagnostics: []protocol.Diagnostic{},
	})

	s.docs.Close(params.TextDocument.URI)
	return nil
}

// checkAndPublish runs the checker on a document and publishes the
// resulting diagnostics to the client.
func (s *Server) checkAndPublish(doc *Document) {
	file := doc.File()

	// Diagnostics must never be nil; an empty slice clears stale findings.
	diags := []protocol.Diagnostic{}
	findings, err := s.checker.Check(file)
	if err == nil {
		for _, d := range findings {
			diags = append(diags, convertDiagnostic(d))
		}
	}

	doc.mu.Lock()
	uri := doc.URI
	doc.mu.Unlock()

	s.sendNotification(protocol.ServerTextDocumentPublishDiagnostics, &protocol.PublishDiagnosticsParams{
		URI:         uri,
		Diagnostics: diags,
	})
}

// convertDiagnostic converts a check.Diagnostic to an LSP Diagnostic.
func convertDiagnostic(d check.Diagnostic) protocol.Diagnostic {
	line := d.Pos.Line
	col := d.Pos.Col
	if line > 0 {
		line--
	}
	if col > 0 {
		col--
	}
	start := protocol.Position{Line: safeUint(line), Character: safeUint(col)}
	end := start // Default: zero-width range.
	if d.EndCol > 0 {
		end = protocol.Position{Line: start.Line, Character: safeUint(d.EndCol - 1)}
	}
	sev := mapSeverity(d.Severity)
	msg := d.Message
	if d.Fix != "" {
		msg += " (fix: " + d.Fix + ")"
	}
	return protocol.Diagnostic{
		Range:    protocol.Range{Start: start, End: end},
		Severity: &sev,
		Source:   strPtr("pycheck"),
		Code:     &protocol.IntegerOrString{Value: d.Kind.String()},
		Message:  msg,
	}
}

// mapSeverity converts a check.Severity to a protocol.DiagnosticSeverity.
func mapSeverity(sev check.Severity) protocol.DiagnosticSeverity {
	switch sev {
	case check.SeverityError:
		return protocol.DiagnosticSeverityError
	case check.SeverityAdvisory:
		return protocol.DiagnosticSeverityWarning
	default:
		return protocol.DiagnosticSeverityError
	}
}

func strPtr(s string) *string {
	return &s
}
