// Copyright © 2025 The pycheck authors

package lsp

import (
	"testing"

	"github.com/luthersystems/pycheck/check"
	protocol "github.com/tliron/glsp/protocol_3_16"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDocumentStore_OpenChangeClose(t *testing.T) {
	store := NewDocumentStore()
	uri := pathToURI("/tmp/test.py")

	doc := store.Open(uri, 1, "def f(x)\n    return x\n")
	require.NotNil(t, doc)
	f := doc.File()
	require.NotNil(t, f)
	require.Len(t, f.Lines, 2)

	doc = store.Change(uri, 2, "def f(x):\n    return x\n")
	f = doc.File()
	require.Len(t, f.Lines, 2)
	assert.EqualValues(t, 2, doc.Version)

	assert.Same(t, doc, store.Get(uri))
	assert.Len(t, store.All(), 1)

	store.Close(uri)
	assert.Nil(t, store.Get(uri))
}

func TestDocumentStore_ChangeUnknownURI(t *testing.T) {
	store := NewDocumentStore()
	doc := store.Change("file:///tmp/new.py", 1, "x = 1\n")
	require.NotNil(t, doc)
	assert.NotNil(t, store.Get("file:///tmp/new.py"))
}

func TestConvertDiagnostic(t *testing.T) {
	d := check.Diagnostic{
		Kind:     check.KindMissingColon,
		Pos:      check.Position{File: "test.py", Line: 3, Col: 9},
		EndCol:   14,
		Message:  "missing ':'",
		Fix:      "add ':'",
		Severity: check.SeverityError,
	}
	out := convertDiagnostic(d)
	assert.EqualValues(t, 2, out.Range.Start.Line)
	assert.EqualValues(t, 8, out.Range.Start.Character)
	assert.EqualValues(t, 13, out.Range.End.Character)
	require.NotNil(t, out.Severity)
	assert.Equal(t, protocol.DiagnosticSeverityError, *out.Severity)
	require.NotNil(t, out.Source)
	assert.Equal(t, "pycheck", *out.Source)
	assert.Equal(t, "MISSING_COLON", out.Code.Value)
	assert.Contains(t, out.Message, "fix: add ':'")
}

func TestConvertDiagnostic_AdvisoryIsWarning(t *testing.T) {
	d := check.Diagnostic{
		Kind:     check.KindSingletonTuple,
		Pos:      check.Position{Line: 1, Col: 5},
		Severity: check.SeverityAdvisory,
	}
	out := convertDiagnostic(d)
	require.NotNil(t, out.Severity)
	assert.Equal(t, protocol.DiagnosticSeverityWarning, *out.Severity)
}

func TestURIConversion(t *testing.T) {
	assert.Equal(t, "/tmp/a.py", uriToPath("file:///tmp/a.py"))
	assert.Equal(t, "rel/a.py", uriToPath("rel/a.py"))
	assert.Equal(t, "file:///tmp/a.py", pathToURI("/tmp/a.py"))
	assert.Equal(t, "rel/a.py", pathToURI("rel/a.py"))
}
