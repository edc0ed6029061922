// Copyright © 2025 The pycheck authors

// Package parser assembles the token stream into logical lines.  It is
// deliberately not a parser for the language grammar: it groups tokens just
// far enough for statement-level syntax checks, joining physical lines that
// continue inside open brackets and recording per-line indentation events.
package parser

import (
	"bytes"
	"io"

	"github.com/luthersystems/pycheck/parser/indent"
	"github.com/luthersystems/pycheck/parser/lexer"
	"github.com/luthersystems/pycheck/parser/token"
)

// tabWidth is the column multiple a tab character advances to when
// computing indentation width.
const tabWidth = 8

// Line is one logical line: a statement after joining bracket-continued
// physical lines.  Blank and comment-only lines never become Lines.
type Line struct {
	// Num is the 1-based source line the statement starts on.
	Num int

	// Raw is the literal leading whitespace of the line ("" at column 1).
	Raw string

	// Width is the indentation width with tabs expanded to 8-column stops.
	Width int

	// Event classifies this line's indentation against the enclosing
	// blocks.
	Event indent.Event

	// Tokens holds the statement's tokens.  INDENT, NEWLINE, and COMMENT
	// tokens are excluded; ERROR placeholders for failed literals remain.
	Tokens []*token.Token
}

// Keyword returns the text of the line's leading keyword token, or "".
func (l *Line) Keyword() string {
	if len(l.Tokens) > 0 && l.Tokens[0].Type == token.KEYWORD {
		return l.Tokens[0].Text
	}
	return ""
}

// End returns the column one past the last token of the line.
func (l *Line) End() int {
	if len(l.Tokens) == 0 {
		return 1
	}
	return l.Tokens[len(l.Tokens)-1].End()
}

// File is the result of scanning one source stream.
type File struct {
	Name string

	// Lines are the logical lines in source order.
	Lines []*Line

	// Comments holds every comment token, including comment-only lines.
	Comments []*token.Token

	// Failures are the lexical problems found during the scan.
	Failures []*lexer.Failure

	// Unclosed are the opening brackets left unmatched at end of input.
	Unclosed []*token.Token
}

// Parse scans src and assembles its logical lines.  It never fails on
// malformed syntax; problems are recorded in Failures and as ERROR tokens.
func Parse(name string, src []byte) *File {
	return ParseFile(name, bytes.NewReader(src))
}

// ParseFile scans r and assembles its logical lines.
func ParseFile(name string, r io.Reader) *File {
	s := token.NewScanner(name, r)
	lex := lexer.New(s)
	tracker := indent.NewTracker()
	f := &File{Name: name}

	var cur *Line
	flush := func() {
		if cur == nil {
			return
		}
		if len(cur.Tokens) > 0 {
			cur.Width = widthOf(cur.Raw)
			cur.Event = tracker.Advance(cur.Width)
			f.Lines = append(f.Lines, cur)
		}
		cur = nil
	}

	for {
		tok := lex.ReadToken()
		switch tok.Type {
		case token.EOF:
			flush()
			f.Failures = lex.Failures()
			f.Unclosed = lex.Unclosed()
			return f
		case token.INDENT:
			cur = &Line{Num: tok.Source.Line, Raw: tok.Text}
		case token.NEWLINE:
			flush()
		case token.COMMENT:
			f.Comments = append(f.Comments, tok)
		default:
			if cur == nil {
				cur = &Line{Num: tok.Source.Line}
			}
			cur.Tokens = append(cur.Tokens, tok)
		}
	}
}

// widthOf computes the display width of a leading whitespace run.  Tabs
// advance to the next multiple of 8 columns, matching how most tools render
// them; mixed runs are flagged separately regardless of resulting width.
func widthOf(raw string) int {
	w := 0
	for _, c := range raw {
		if c == '\t' {
			w += tabWidth - w%tabWidth
		} else {
			w++
		}
	}
	return w
}
