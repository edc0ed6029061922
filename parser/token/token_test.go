// Copyright © 2025 The pycheck authors

package token

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestType_String(t *testing.T) {
	assert.Equal(t, "keyword", KEYWORD.String())
	assert.Equal(t, "(", PAREN_L.String())
	assert.Equal(t, "EOF", EOF.String())
	assert.Equal(t, "invalid", Type(1000).String())
}

func TestType_Brackets(t *testing.T) {
	assert.True(t, PAREN_L.IsOpenBracket())
	assert.True(t, BRACE_L.IsOpenBracket())
	assert.False(t, PAREN_R.IsOpenBracket())
	assert.True(t, BRACK_R.IsCloseBracket())
	assert.False(t, BRACK_L.IsCloseBracket())

	assert.Equal(t, PAREN_R, PAREN_L.Closer())
	assert.Equal(t, BRACK_R, BRACK_L.Closer())
	assert.Equal(t, BRACE_R, BRACE_L.Closer())
	assert.Equal(t, INVALID, COLON.Closer())
}

func TestToken_End(t *testing.T) {
	tok := &Token{
		Type:   IDENT,
		Text:   "value",
		Source: &Location{File: "test.py", Line: 1, Col: 5},
	}
	assert.Equal(t, 10, tok.End())
}

func TestToken_End_MultiLine(t *testing.T) {
	// A triple-quoted string spans lines; the span stays on the first line.
	tok := &Token{
		Type:   STRING,
		Text:   "'''ab\ncd'''",
		Source: &Location{File: "test.py", Line: 1, Col: 5},
	}
	assert.Equal(t, 10, tok.End())
}

func TestToken_End_NilSource(t *testing.T) {
	tok := &Token{Type: IDENT, Text: "x"}
	assert.Equal(t, 0, tok.End())
}

func TestLocation_String(t *testing.T) {
	loc := &Location{File: "test.py", Pos: 12, Line: 3, Col: 7}
	assert.Equal(t, "test.py:3:7", loc.String())

	loc = &Location{File: "test.py", Pos: 12, Line: 3}
	assert.Equal(t, "test.py:3", loc.String())

	loc = &Location{File: "test.py", Pos: 12}
	assert.Equal(t, "test.py[12]", loc.String())

	loc = &Location{File: "test.py", Pos: -1}
	assert.Equal(t, "test.py", loc.String())
}
