// Copyright © 2025 The pycheck authors

// Package token defines the lexical token types produced when scanning
// indentation-sensitive source and a streaming Scanner used to build them.
package token

import "fmt"

type Token struct {
	Type   Type
	Text   string
	Source *Location
}

type Type uint

// Type constants used by the pycheck lexer.
const (
	INVALID Type = iota
	ERROR
	EOF

	// INDENT holds the raw leading whitespace of a logical line.  NEWLINE
	// terminates a logical line; newlines inside brackets are not emitted.
	INDENT
	NEWLINE

	COMMENT

	IDENT
	KEYWORD
	NUMBER
	STRING
	OPERATOR

	COLON
	COMMA

	// Delimiters
	PAREN_L
	PAREN_R
	BRACK_L
	BRACK_R
	BRACE_L
	BRACE_R

	numTokenTypes
)

func (typ Type) String() string {
	typeStrings := [numTokenTypes]string{
		INVALID:  "invalid",
		ERROR:    "error",
		EOF:      "EOF",
		INDENT:   "indent",
		NEWLINE:  "newline",
		COMMENT:  "#",
		IDENT:    "identifier",
		KEYWORD:  "keyword",
		NUMBER:   "number",
		STRING:   "string",
		OPERATOR: "operator",
		COLON:    ":",
		COMMA:    ",",
		PAREN_L:  "(",
		PAREN_R:  ")",
		BRACK_L:  "[",
		BRACK_R:  "]",
		BRACE_L:  "{",
		BRACE_R:  "}",
	}
	if typ >= numTokenTypes {
		return typeStrings[INVALID]
	}
	return typeStrings[typ]
}

// IsOpenBracket reports whether typ is an opening delimiter.
func (typ Type) IsOpenBracket() bool {
	return typ == PAREN_L || typ == BRACK_L || typ == BRACE_L
}

// IsCloseBracket reports whether typ is a closing delimiter.
func (typ Type) IsCloseBracket() bool {
	return typ == PAREN_R || typ == BRACK_R || typ == BRACE_R
}

// Closer returns the closing delimiter type matching an opening delimiter.
// It returns INVALID when typ is not an opening delimiter.
func (typ Type) Closer() Type {
	switch typ {
	case PAREN_L:
		return PAREN_R
	case BRACK_L:
		return BRACK_R
	case BRACE_L:
		return BRACE_R
	}
	return INVALID
}

// End returns the column one past the final character of tok on its line.
// Multi-line tokens (triple-quoted strings) report the end of their first
// line instead, keeping spans within the line they start on.
func (tok *Token) End() int {
	if tok.Source == nil {
		return 0
	}
	n := 0
	for _, c := range tok.Text {
		if c == '\n' {
			break
		}
		n++
	}
	return tok.Source.Col + n
}

type Location struct {
	File string // a name representing the source stream
	Path string // a physical location which may differ from File
	Pos  int
	Line int // line number (starting at 1 when tracked)
	Col  int // line column number (starting at 1 when tracked)
}

func (loc *Location) String() string {
	switch {
	case loc.Pos < 0:
		return loc.File
	case loc.Line == 0:
		return fmt.Sprintf("%s[%d]", loc.File, loc.Pos)
	case loc.Col == 0:
		return fmt.Sprintf("%s:%d", loc.File, loc.Line)
	default:
		return fmt.Sprintf("%s:%d:%d", loc.File, loc.Line, loc.Col)
	}
}

type LocationError struct {
	Err    error
	Source *Location
}

func (err *LocationError) Error() string {
	return fmt.Sprintf("%s: %s", err.Source, err.Err)
}
