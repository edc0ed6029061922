// Copyright © 2025 The pycheck authors

package parser

import (
	"testing"

	"github.com/luthersystems/pycheck/parser/indent"
	"github.com/luthersystems/pycheck/parser/token"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parseSource(t *testing.T, source string) *File {
	t.Helper()
	f := Parse("test.py", []byte(source))
	require.NotNil(t, f)
	return f
}

func TestParse_LogicalLines(t *testing.T) {
	f := parseSource(t, "def f(x):\n    return x\n\ny = f(1)\n")
	require.Len(t, f.Lines, 3)

	assert.Equal(t, 1, f.Lines[0].Num)
	assert.Equal(t, 0, f.Lines[0].Width)
	assert.Equal(t, indent.Same, f.Lines[0].Event)
	assert.Equal(t, "def", f.Lines[0].Keyword())

	assert.Equal(t, 2, f.Lines[1].Num)
	assert.Equal(t, 4, f.Lines[1].Width)
	assert.Equal(t, indent.Indent, f.Lines[1].Event)
	assert.Equal(t, "return", f.Lines[1].Keyword())

	assert.Equal(t, 4, f.Lines[2].Num)
	assert.Equal(t, 0, f.Lines[2].Width)
	assert.Equal(t, indent.Dedent, f.Lines[2].Event)
	assert.Equal(t, "", f.Lines[2].Keyword())
}

func TestParse_BlankAndCommentLinesSkipped(t *testing.T) {
	f := parseSource(t, "x = 1\n\n# standalone\n   \ny = 2  # trailing\n")
	require.Len(t, f.Lines, 2)
	assert.Equal(t, 1, f.Lines[0].Num)
	assert.Equal(t, 5, f.Lines[1].Num)
	require.Len(t, f.Comments, 2)
	assert.Equal(t, "# standalone", f.Comments[0].Text)
	assert.Equal(t, "# trailing", f.Comments[1].Text)
	assert.Equal(t, 5, f.Comments[1].Source.Line)
}

func TestParse_BracketJoining(t *testing.T) {
	f := parseSource(t, "items = [\n    1,\n    2,\n]\nx = 1\n")
	require.Len(t, f.Lines, 2)
	line := f.Lines[0]
	assert.Equal(t, 1, line.Num)
	// The joined statement carries all tokens through the closing bracket.
	assert.Equal(t, token.BRACK_R, line.Tokens[len(line.Tokens)-1].Type)
	assert.Equal(t, 5, f.Lines[1].Num)
	assert.Empty(t, f.Unclosed)
}

func TestParse_TabWidth(t *testing.T) {
	f := parseSource(t, "if x:\n\tpass\n")
	require.Len(t, f.Lines, 2)
	assert.Equal(t, "\t", f.Lines[1].Raw)
	assert.Equal(t, 8, f.Lines[1].Width)
}

func TestParse_InconsistentDedent(t *testing.T) {
	f := parseSource(t, "if x:\n        pass\n    y = 1\n")
	require.Len(t, f.Lines, 3)
	assert.Equal(t, indent.Inconsistent, f.Lines[2].Event)
}

func TestParse_FailuresSurvive(t *testing.T) {
	f := parseSource(t, "s = \"abc\n")
	require.Len(t, f.Failures, 1)
	require.Len(t, f.Lines, 1)
	// The ERROR placeholder stays in the statement's token list.
	last := f.Lines[0].Tokens[len(f.Lines[0].Tokens)-1]
	assert.Equal(t, token.ERROR, last.Type)
}

func TestParse_UnclosedBracketAtEOF(t *testing.T) {
	f := parseSource(t, "x = (1 + 2\n")
	require.Len(t, f.Unclosed, 1)
	assert.Equal(t, token.PAREN_L, f.Unclosed[0].Type)
	// The partial statement is still flushed at EOF.
	require.Len(t, f.Lines, 1)
}

func TestLine_End(t *testing.T) {
	f := parseSource(t, "def f(x)\n")
	require.Len(t, f.Lines, 1)
	assert.Equal(t, 9, f.Lines[0].End())
}

func TestWidthOf(t *testing.T) {
	assert.Equal(t, 0, widthOf(""))
	assert.Equal(t, 4, widthOf("    "))
	assert.Equal(t, 8, widthOf("\t"))
	assert.Equal(t, 8, widthOf("    \t"))
	assert.Equal(t, 9, widthOf("\t "))
}
