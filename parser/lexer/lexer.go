// Copyright © 2025 The pycheck authors

// Package lexer tokenizes indentation-sensitive, Python-shaped source text.
//
// The lexer captures the leading whitespace of every logical line as an
// INDENT token, joins physical lines implicitly inside open brackets, and
// never aborts on malformed input: lexical failures surface both as ERROR
// tokens in the stream and as structured Failure records retrievable with
// Failures after the scan.
package lexer

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/luthersystems/pycheck/parser/token"
)

// Reason classifies a lexical failure.
type Reason int

const (
	FailUnterminatedString Reason = iota
	FailUnclosedBracket
	FailMismatchedBracket
	FailBadNumber
	FailBadChar
)

func (r Reason) String() string {
	switch r {
	case FailUnterminatedString:
		return "unterminated-string"
	case FailUnclosedBracket:
		return "unclosed-bracket"
	case FailMismatchedBracket:
		return "mismatched-bracket"
	case FailBadNumber:
		return "bad-number"
	case FailBadChar:
		return "bad-character"
	default:
		return "unknown"
	}
}

// Failure records a lexical problem at a concrete source location.  The
// location always references text that exists in the scanned input.
type Failure struct {
	Reason Reason
	Msg    string
	Source *token.Location
}

func (f *Failure) Error() string {
	return fmt.Sprintf("%s: %s", f.Source, f.Msg)
}

type Lexer struct {
	scanner   *token.Scanner
	lineStart bool
	brackets  []*token.Token
	failures  []*Failure
	flushed   bool // unclosed-bracket failures recorded at EOF
	broken    bool // the underlying stream failed; only EOF remains
}

func New(s *token.Scanner) *Lexer {
	return &Lexer{
		scanner:   s,
		lineStart: true,
	}
}

// Failures returns the lexical failures recorded so far.  The list is
// complete once ReadToken has returned an EOF token.
func (lex *Lexer) Failures() []*Failure {
	return lex.failures
}

// Unclosed returns the opening bracket tokens left unmatched at the current
// point of the scan.
func (lex *Lexer) Unclosed() []*token.Token {
	return lex.brackets
}

// ReadToken scans and returns the next token.  At the end of input it
// records one unclosed-bracket failure per unmatched opener and returns an
// EOF token; subsequent calls keep returning EOF.
func (lex *Lexer) ReadToken() *token.Token {
	if lex.broken {
		return lex.emitEOF()
	}
	for {
		if lex.lineStart && len(lex.brackets) == 0 {
			tok, done := lex.readLineStart()
			if !done {
				continue
			}
			if tok != nil {
				return tok
			}
		}
		return lex.readToken()
	}
}

// readLineStart consumes the leading whitespace of a physical line.  It
// returns (nil, false) when the line was blank and another line should be
// attempted, (tok, true) when an INDENT token was produced, and (nil, true)
// when the line has content at column 1.
func (lex *Lexer) readLineStart() (*token.Token, bool) {
	n := lex.scanner.AcceptSeqAny(" \t")
	c, ok := lex.scanner.Peek()
	if !ok {
		// EOF or unreadable rune; let readToken produce the terminal token.
		lex.scanner.Ignore()
		lex.lineStart = false
		return nil, true
	}
	switch c {
	case '\n', '\r':
		// Blank line: no tokens, no indentation.
		lex.scanner.Ignore()
		_ = lex.scanner.ScanRune()
		if lex.scanner.Rune() == '\r' {
			lex.scanner.AcceptRune('\n')
		}
		lex.scanner.Ignore()
		return nil, false
	case '#':
		// Comment-only line: emit the comment but no INDENT so the line
		// does not participate in indentation tracking.
		lex.scanner.Ignore()
		lex.lineStart = false
		return nil, true
	}
	lex.lineStart = false
	if n == 0 {
		return nil, true
	}
	return lex.scanner.EmitToken(token.INDENT), true
}

func (lex *Lexer) readToken() *token.Token {
	for {
		lex.scanner.AcceptSeqAny(" \t")
		lex.scanner.Ignore()
		if !lex.scanner.Accept(func(c rune) bool { return true }) {
			if lex.scanner.EOF() {
				return lex.emitEOF()
			}
			if err := lex.scanner.Err(); err != nil {
				lex.broken = true
				return lex.emit(token.ERROR, err.Error())
			}
			return lex.emitEOF()
		}
		switch c := lex.scanner.Rune(); c {
		case '\n':
			if len(lex.brackets) > 0 {
				// Implicit line joining: the newline is not a statement
				// terminator inside brackets.
				lex.scanner.Ignore()
				continue
			}
			lex.lineStart = true
			return lex.emitText(token.NEWLINE)
		case '\r':
			lex.scanner.AcceptRune('\n')
			if len(lex.brackets) > 0 {
				lex.scanner.Ignore()
				continue
			}
			lex.lineStart = true
			return lex.emitText(token.NEWLINE)
		case '\\':
			if lex.acceptNewline() {
				// Explicit line joining.
				lex.scanner.Ignore()
				continue
			}
			loc := lex.scanner.LocStart()
			lex.fail(FailBadChar, loc, "unexpected character %q", c)
			return lex.emit(token.ERROR, "unexpected character")
		case '#':
			lex.scanner.AcceptSeq(func(c rune) bool { return c != '\n' })
			return lex.emitText(token.COMMENT)
		case '(':
			return lex.pushBracket(token.PAREN_L)
		case '[':
			return lex.pushBracket(token.BRACK_L)
		case '{':
			return lex.pushBracket(token.BRACE_L)
		case ')':
			return lex.popBracket(token.PAREN_R)
		case ']':
			return lex.popBracket(token.BRACK_R)
		case '}':
			return lex.popBracket(token.BRACE_R)
		case '\'', '"':
			return lex.readString(c)
		case ':':
			if lex.scanner.AcceptRune('=') {
				return lex.emitText(token.OPERATOR)
			}
			return lex.emitText(token.COLON)
		case ',':
			return lex.emitText(token.COMMA)
		case '.':
			if isDigit(lex.peekRune()) {
				return lex.readNumber(true)
			}
			return lex.emitText(token.OPERATOR)
		default:
			if isDigit(c) {
				return lex.readNumber(false)
			}
			if isIdentStart(c) {
				return lex.readName()
			}
			if strings.ContainsRune("+-*/%=<>!&|^~@;", c) {
				return lex.readOperator(c)
			}
			loc := lex.scanner.LocStart()
			lex.fail(FailBadChar, loc, "unexpected character %q", c)
			return lex.emit(token.ERROR, fmt.Sprintf("unexpected character %q", c))
		}
	}
}

func (lex *Lexer) emitEOF() *token.Token {
	if !lex.flushed {
		lex.flushed = true
		for _, open := range lex.brackets {
			lex.fail(FailUnclosedBracket, open.Source,
				"unclosed bracket %q", open.Text)
		}
	}
	return lex.emit(token.EOF, "")
}

func (lex *Lexer) emit(typ token.Type, text string) *token.Token {
	tok := &token.Token{
		Type:   typ,
		Text:   text,
		Source: lex.scanner.LocStart(),
	}
	lex.scanner.Ignore()
	return tok
}

func (lex *Lexer) emitText(typ token.Type) *token.Token {
	return lex.scanner.EmitToken(typ)
}

func (lex *Lexer) fail(reason Reason, loc *token.Location, format string, v ...interface{}) {
	lex.failures = append(lex.failures, &Failure{
		Reason: reason,
		Msg:    fmt.Sprintf(format, v...),
		Source: loc,
	})
}

func (lex *Lexer) pushBracket(typ token.Type) *token.Token {
	tok := lex.emitText(typ)
	lex.brackets = append(lex.brackets, tok)
	return tok
}

func (lex *Lexer) popBracket(typ token.Type) *token.Token {
	tok := lex.emitText(typ)
	if len(lex.brackets) == 0 {
		lex.fail(FailMismatchedBracket, tok.Source, "unmatched %q", tok.Text)
		return tok
	}
	open := lex.brackets[len(lex.brackets)-1]
	lex.brackets = lex.brackets[:len(lex.brackets)-1]
	if open.Type.Closer() != typ {
		lex.fail(FailMismatchedBracket, open.Source,
			"bracket %q closed by %q", open.Text, tok.Text)
	}
	return tok
}

// acceptNewline consumes a \n or \r\n sequence if one follows.
func (lex *Lexer) acceptNewline() bool {
	if lex.scanner.AcceptRune('\n') {
		return true
	}
	if lex.scanner.AcceptRune('\r') {
		lex.scanner.AcceptRune('\n')
		return true
	}
	return false
}

// readString scans a string literal whose opening quote q was already
// scanned.  An unescaped newline or end-of-input before the closing quote
// records an unterminated-string failure located at the opening quote.
func (lex *Lexer) readString(q rune) *token.Token {
	if lex.scanner.AcceptRune(q) {
		if lex.scanner.AcceptRune(q) {
			return lex.readTripleTail(q)
		}
		// Empty string.
		return lex.emitText(token.STRING)
	}
	for {
		c, ok := lex.scanner.Peek()
		if !ok {
			return lex.unterminated("unterminated string literal (hit end of input before closing %q)", q)
		}
		if c == '\n' {
			// Leave the newline for the next token so line structure
			// survives the error.
			return lex.unterminated("unterminated string literal (newline before closing %q)", q)
		}
		if err := lex.scanner.ScanRune(); err != nil {
			return lex.unterminated("unterminated string literal (hit end of input before closing %q)", q)
		}
		switch lex.scanner.Rune() {
		case '\\':
			// The escaped character is consumed literally, including an
			// escaped quote or newline.
			if !lex.scanner.Accept(func(c rune) bool { return true }) {
				return lex.unterminated("unterminated string literal (hit end of input before closing %q)", q)
			}
		case q:
			return lex.emitText(token.STRING)
		}
	}
}

// readTripleTail scans the remainder of a triple-quoted string.  The literal
// closes only on a matching triple quote sequence and may span lines.
func (lex *Lexer) readTripleTail(q rune) *token.Token {
	closer := strings.Repeat(string(q), 3)
	for {
		if _, ok := lex.scanner.AcceptString(closer); ok {
			return lex.emitText(token.STRING)
		}
		if !lex.scanner.Accept(func(c rune) bool { return true }) {
			return lex.unterminated("unterminated triple-quoted string literal")
		}
		if lex.scanner.Rune() == '\\' {
			if !lex.scanner.Accept(func(c rune) bool { return true }) {
				return lex.unterminated("unterminated triple-quoted string literal")
			}
		}
	}
}

func (lex *Lexer) unterminated(format string, v ...interface{}) *token.Token {
	loc := lex.scanner.LocStart()
	lex.fail(FailUnterminatedString, loc, format, v...)
	return lex.emit(token.ERROR, "unterminated string literal")
}

// readName scans an identifier or keyword.  Identifier text matching a
// string prefix (r, b, f, rb, ...) immediately followed by a quote becomes
// part of a string literal instead.
func (lex *Lexer) readName() *token.Token {
	lex.scanner.AcceptSeq(isIdentPart)
	text := lex.scanner.Text()
	if stringPrefixes[text] {
		if c := lex.peekRune(); c == '\'' || c == '"' {
			_ = lex.scanner.ScanRune()
			return lex.readString(c)
		}
	}
	if keywords[text] {
		return lex.emitText(token.KEYWORD)
	}
	return lex.emitText(token.IDENT)
}

// readOperator scans a one or two character operator starting with c.
func (lex *Lexer) readOperator(c rune) *token.Token {
	switch c {
	case '*':
		lex.scanner.AcceptRune('*')
		lex.scanner.AcceptRune('=')
	case '/':
		lex.scanner.AcceptRune('/')
		lex.scanner.AcceptRune('=')
	case '<':
		if !lex.scanner.AcceptRune('<') {
			lex.scanner.AcceptRune('=')
		} else {
			lex.scanner.AcceptRune('=')
		}
	case '>':
		if !lex.scanner.AcceptRune('>') {
			lex.scanner.AcceptRune('=')
		} else {
			lex.scanner.AcceptRune('=')
		}
	case '-':
		if !lex.scanner.AcceptRune('>') {
			lex.scanner.AcceptRune('=')
		}
	case '+', '%', '&', '|', '^', '@', '=', '!':
		lex.scanner.AcceptRune('=')
	}
	return lex.emitText(token.OPERATOR)
}

// readNumber scans a numeric literal.  dotSeen indicates the literal began
// with the '.' already scanned.  A second '.' after a completed literal is a
// lex failure rather than a silently continued token.
func (lex *Lexer) readNumber(dotSeen bool) *token.Token {
	if !dotSeen && lex.scanner.Text() == "0" {
		switch lex.peekRune() {
		case 'x', 'X':
			return lex.readRadixTail(isHexDigit, "hexadecimal")
		case 'o', 'O':
			return lex.readRadixTail(isOctalDigit, "octal")
		case 'b', 'B':
			return lex.readRadixTail(isBinaryDigit, "binary")
		}
	}
	lex.acceptDigits()
	if !dotSeen && lex.scanner.AcceptRune('.') {
		dotSeen = true
		lex.acceptDigits()
	} else if dotSeen {
		lex.acceptDigits()
	}
	if lex.scanner.AcceptAny("eE") {
		lex.scanner.AcceptAny("+-")
		if lex.scanner.AcceptSeqDigit() == 0 {
			return lex.badNumber("invalid number literal %q (missing exponent digits)")
		}
	}
	lex.scanner.AcceptAny("jJ")
	if dotSeen && lex.peekRune() == '.' {
		// e.g. 1.2.3 -- consume the trailing garbage so the failure spans it.
		lex.scanner.AcceptSeq(func(c rune) bool { return c == '.' || isDigit(c) || c == '_' })
		return lex.badNumber("invalid number literal %q (multiple decimal points)")
	}
	if isIdentStart(lex.peekRune()) {
		lex.scanner.AcceptSeq(isIdentPart)
		return lex.badNumber("invalid number literal %q")
	}
	return lex.emitText(token.NUMBER)
}

func (lex *Lexer) acceptDigits() int {
	return lex.scanner.AcceptSeq(func(c rune) bool { return isDigit(c) || c == '_' })
}

func (lex *Lexer) readRadixTail(digit func(rune) bool, name string) *token.Token {
	_ = lex.scanner.ScanRune() // the radix character
	n := lex.scanner.AcceptSeq(func(c rune) bool { return digit(c) || c == '_' })
	if n == 0 {
		return lex.badNumber("invalid " + name + " literal %q")
	}
	if isIdentStart(lex.peekRune()) || isDigit(lex.peekRune()) {
		lex.scanner.AcceptSeq(isIdentPart)
		return lex.badNumber("invalid " + name + " literal %q")
	}
	return lex.emitText(token.NUMBER)
}

func (lex *Lexer) badNumber(format string) *token.Token {
	loc := lex.scanner.LocStart()
	text := lex.scanner.Text()
	lex.fail(FailBadNumber, loc, format, text)
	return lex.emit(token.ERROR, fmt.Sprintf(format, text))
}

func (lex *Lexer) peekRune() rune {
	r, _ := lex.scanner.Peek()
	return r
}

func isDigit(c rune) bool {
	return '0' <= c && c <= '9'
}

func isHexDigit(c rune) bool {
	return isDigit(c) || ('a' <= c && c <= 'f') || ('A' <= c && c <= 'F')
}

func isOctalDigit(c rune) bool {
	return '0' <= c && c <= '7'
}

func isBinaryDigit(c rune) bool {
	return c == '0' || c == '1'
}

func isIdentStart(c rune) bool {
	return c == '_' || unicode.IsLetter(c)
}

func isIdentPart(c rune) bool {
	return c == '_' || unicode.IsLetter(c) || unicode.IsDigit(c)
}
