// Copyright © 2025 The pycheck authors

package check

import (
	"fmt"
	"sort"
	"strings"

	reflowindent "github.com/muesli/reflow/indent"
	"github.com/muesli/reflow/wordwrap"

	"github.com/luthersystems/pycheck/parser"
	"github.com/luthersystems/pycheck/parser/indent"
	"github.com/luthersystems/pycheck/parser/lexer"
	"github.com/luthersystems/pycheck/parser/token"
)

// AnalyzerMissingColon checks that every block header ends with a colon.
var AnalyzerMissingColon = &Analyzer{
	Name:     "missing-colon",
	Doc:      "Check that block headers (if, for, def, class, ...) end with a colon.\n\nA compound statement header must be terminated by ':' before its indented body. Colons inside brackets or belonging to a lambda do not count.",
	Severity: SeverityError,
	Run: func(pass *Pass) error {
		for _, line := range pass.File.Lines {
			kw := line.Keyword()
			if !lexer.IsBlockKeyword(kw) {
				continue
			}
			if lineHasError(line) {
				// A failed literal already explains this line.
				continue
			}
			if topLevelColon(line.Tokens) >= 0 {
				continue
			}
			pass.Report(Diagnostic{
				Kind:    KindMissingColon,
				Pos:     Position{Line: line.Num, Col: line.End()},
				Message: fmt.Sprintf("missing ':' at the end of the %q header", kw),
				Fix:     "add ':' at the end of the statement header",
			})
		}
		return nil
	},
}

// AnalyzerBlockIndent checks that a colon-terminated block header is
// followed by a non-empty body at greater indentation.
var AnalyzerBlockIndent = &Analyzer{
	Name:     "block-indent",
	Doc:      "Check that block headers are followed by an indented body.\n\nThe logical line after a header ending in ':' must be indented deeper than the header. Inline suites (`if x: pass`) are exempt.",
	Severity: SeverityError,
	Run: func(pass *Pass) error {
		lines := pass.File.Lines
		for i, line := range lines {
			kw := line.Keyword()
			if !lexer.IsBlockKeyword(kw) || lineHasError(line) {
				continue
			}
			ci := topLevelColon(line.Tokens)
			if ci < 0 || ci != len(line.Tokens)-1 {
				// No colon (missing-colon reports it) or an inline suite.
				continue
			}
			if i+1 == len(lines) {
				pass.Report(Diagnostic{
					Kind:    KindBadIndent,
					Pos:     Position{Line: line.Num, Col: line.End()},
					Message: fmt.Sprintf("expected an indented block after the %q header", kw),
					Fix:     "add an indented statement (or `pass`) below the header",
				})
				continue
			}
			next := lines[i+1]
			if next.Event == indent.Indent {
				continue
			}
			pass.Report(Diagnostic{
				Kind:    KindBadIndent,
				Pos:     Position{Line: next.Num, Col: next.Width + 1},
				Message: fmt.Sprintf("expected an indented block after the %q header on line %d", kw, line.Num),
				Fix:     "indent this line one level deeper than its header",
			})
		}
		return nil
	},
}

// AnalyzerDanglingElse checks that continuation headers pair with a matching
// opener at the same indentation.
var AnalyzerDanglingElse = &Analyzer{
	Name:     "dangling-else",
	Doc:      "Check that else/elif/except/finally have a matching opening header.\n\nA continuation header must follow an if/for/while/try (as appropriate) at the same indentation with no other statement in between at that depth.",
	Severity: SeverityError,
	Run: func(pass *Pass) error {
		contexts := make(map[int]string) // indentation width -> last header keyword
		for _, line := range pass.File.Lines {
			for w := range contexts {
				if w > line.Width {
					delete(contexts, w)
				}
			}
			kw := line.Keyword()
			if lexer.IsContinuationKeyword(kw) {
				if !pairsWith(kw, contexts[line.Width]) {
					tok := line.Tokens[0]
					pass.Report(Diagnostic{
						Kind:    KindDanglingElse,
						Pos:     Position{Line: line.Num, Col: tok.Source.Col},
						EndCol:  tok.End(),
						Message: fmt.Sprintf("%q has no matching block header at this indentation", kw),
						Fix:     "align this header with the block it continues, or remove it",
					})
				}
			}
			if lexer.IsBlockKeyword(kw) {
				contexts[line.Width] = kw
			} else {
				delete(contexts, line.Width)
			}
		}
		return nil
	},
}

// pairsWith reports whether a continuation keyword may follow prev at the
// same indentation.
func pairsWith(kw, prev string) bool {
	switch kw {
	case "elif":
		return prev == "if" || prev == "elif"
	case "else":
		return prev == "if" || prev == "elif" || prev == "for" ||
			prev == "while" || prev == "except"
	case "except":
		return prev == "try" || prev == "except"
	case "finally":
		return prev == "try" || prev == "except" || prev == "else"
	}
	return false
}

// AnalyzerInconsistentDedent reports dedents that land on a width matching
// no open block.
var AnalyzerInconsistentDedent = &Analyzer{
	Name:     "inconsistent-dedent",
	Doc:      "Check that every dedent returns to an enclosing block's indentation.\n\nA line that unindents must land exactly on a width currently open on the indentation stack.",
	Severity: SeverityError,
	Run: func(pass *Pass) error {
		for _, line := range pass.File.Lines {
			if line.Event != indent.Inconsistent {
				continue
			}
			pass.Report(Diagnostic{
				Kind:    KindBadIndent,
				Pos:     Position{Line: line.Num, Col: line.Width + 1},
				Message: "unindent does not match any outer indentation level",
				Fix:     "align this line with one of the enclosing blocks",
			})
		}
		return nil
	},
}

// AnalyzerIndentStyle reports tab/space mixing in leading whitespace, and
// advises against tab indentation entirely.
var AnalyzerIndentStyle = &Analyzer{
	Name:     "indent-style",
	Doc:      "Check leading whitespace for tabs mixed with spaces.\n\nMixing tabs and spaces within one leading run is an error regardless of the resulting visual width. Indentation made of tabs alone is advisory; the standard is 4 spaces per level.",
	Severity: SeverityError,
	Run: func(pass *Pass) error {
		for _, line := range pass.File.Lines {
			hasTab := strings.ContainsRune(line.Raw, '\t')
			hasSpace := strings.ContainsRune(line.Raw, ' ')
			switch {
			case hasTab && hasSpace:
				pass.Report(Diagnostic{
					Kind:    KindMixedTabsSpaces,
					Pos:     Position{Line: line.Num, Col: 1},
					EndCol:  len(line.Raw) + 1,
					Message: "leading whitespace mixes tabs and spaces",
					Fix:     "re-indent using spaces only",
				})
			case hasTab:
				pass.Report(Diagnostic{
					Kind:     KindBadIndent,
					Severity: SeverityAdvisory,
					Pos:      Position{Line: line.Num, Col: 1},
					EndCol:   len(line.Raw) + 1,
					Message:  "indentation uses tabs; the standard is 4 spaces per level",
					Fix:      "re-indent using spaces only",
				})
			}
		}
		return nil
	},
}

// AnalyzerIndentWidth advises when an indent step is not a multiple of four.
var AnalyzerIndentWidth = &Analyzer{
	Name:     "indent-width",
	Doc:      "Advise when indentation is not a multiple of 4 spaces.\n\nThe coding standard is 4 spaces per indentation level. Odd widths are legal but usually signal sloppy editing.",
	Severity: SeverityAdvisory,
	Run: func(pass *Pass) error {
		for _, line := range pass.File.Lines {
			if line.Event != indent.Indent || line.Width%4 == 0 {
				continue
			}
			if strings.ContainsRune(line.Raw, '\t') {
				// Tab indentation is reported by indent-style.
				continue
			}
			pass.Report(Diagnostic{
				Kind:    KindBadIndent,
				Pos:     Position{Line: line.Num, Col: 1},
				EndCol:  line.Width + 1,
				Message: fmt.Sprintf("indentation of %d spaces is not a multiple of 4", line.Width),
				Fix:     "indent in steps of 4 spaces",
			})
		}
		return nil
	},
}

// AnalyzerUnclosedString reports string literals left unterminated by an
// unescaped newline or end of input.
var AnalyzerUnclosedString = &Analyzer{
	Name:     "unclosed-string",
	Doc:      "Report string literals with no closing quote.\n\nAn unescaped newline or end-of-input before the matching quote terminates the scan of the literal. The diagnostic points at the opening quote.",
	Severity: SeverityError,
	Run: func(pass *Pass) error {
		for _, f := range pass.File.Failures {
			if f.Reason != lexer.FailUnterminatedString {
				continue
			}
			pass.Report(Diagnostic{
				Kind:    KindUnclosedString,
				Pos:     Position{Line: f.Source.Line, Col: f.Source.Col},
				Message: f.Msg,
				Fix:     "add the matching closing quote",
			})
		}
		return nil
	},
}

// AnalyzerUnclosedBracket reports brackets left unmatched at end of scan and
// mismatched closers.
var AnalyzerUnclosedBracket = &Analyzer{
	Name:     "unclosed-bracket",
	Doc:      "Report unmatched or mismatched brackets.\n\nEach unmatched opener is reported once at the opening bracket when the scan ends. A closer of the wrong type is reported at the opener it interrupts.",
	Severity: SeverityError,
	Run: func(pass *Pass) error {
		for _, f := range pass.File.Failures {
			if f.Reason != lexer.FailUnclosedBracket && f.Reason != lexer.FailMismatchedBracket {
				continue
			}
			pass.Report(Diagnostic{
				Kind:    KindUnclosedBracket,
				Pos:     Position{Line: f.Source.Line, Col: f.Source.Col},
				Message: f.Msg,
				Fix:     "add the matching closing bracket",
			})
		}
		return nil
	},
}

// AnalyzerInvalidNumber reports malformed numeric literals.
var AnalyzerInvalidNumber = &Analyzer{
	Name:     "invalid-number",
	Doc:      "Report malformed numeric literals.\n\nCovers a second '.' after a completed literal (1.2.3), empty radix literals (0x), missing exponent digits, and identifier characters glued to a number.",
	Severity: SeverityError,
	Run: func(pass *Pass) error {
		for _, f := range pass.File.Failures {
			if f.Reason != lexer.FailBadNumber {
				continue
			}
			pass.Report(Diagnostic{
				Kind:    KindInvalidNumber,
				Pos:     Position{Line: f.Source.Line, Col: f.Source.Col},
				Message: f.Msg,
				Fix:     "rewrite the literal as a single valid number",
			})
		}
		return nil
	},
}

// AnalyzerBadCharacter reports characters that cannot begin any token.
var AnalyzerBadCharacter = &Analyzer{
	Name:     "bad-character",
	Doc:      "Report characters that cannot start any token.",
	Severity: SeverityError,
	Run: func(pass *Pass) error {
		for _, f := range pass.File.Failures {
			if f.Reason != lexer.FailBadChar {
				continue
			}
			pass.Report(Diagnostic{
				Kind:    KindInvalidCharacter,
				Pos:     Position{Line: f.Source.Line, Col: f.Source.Col},
				Message: f.Msg,
				Fix:     "remove the character",
			})
		}
		return nil
	},
}

// AnalyzerKeywordAssign reports reserved words used as assignment targets.
var AnalyzerKeywordAssign = &Analyzer{
	Name:     "keyword-assign",
	Doc:      "Report reserved words used as assignment targets.\n\n`class = 1` does not rebind anything; `class` is a keyword and can never name a variable.",
	Severity: SeverityError,
	Run: func(pass *Pass) error {
		for _, line := range pass.File.Lines {
			toks := line.Tokens
			for i := 0; i+1 < len(toks); i++ {
				if toks[i].Type != token.KEYWORD {
					continue
				}
				if i > 0 && !assignTargetContext(toks[i-1]) {
					continue
				}
				next := toks[i+1]
				if next.Type != token.OPERATOR || next.Text != "=" {
					continue
				}
				pass.Report(Diagnostic{
					Kind:    KindInvalidIdentifier,
					Pos:     Position{Line: toks[i].Source.Line, Col: toks[i].Source.Col},
					EndCol:  toks[i].End(),
					Message: fmt.Sprintf("keyword %q cannot be used as an assignment target", toks[i].Text),
					Fix:     "rename the variable; reserved words can never be identifiers",
				})
			}
		}
		return nil
	},
}

// assignTargetContext reports whether a keyword following tok could be in
// assignment-target position.
func assignTargetContext(tok *token.Token) bool {
	switch tok.Type {
	case token.COMMA, token.COLON, token.PAREN_L:
		return true
	case token.OPERATOR:
		return tok.Text == "=" || tok.Text == ";"
	}
	return false
}

// AnalyzerSingletonTuple advises when a parenthesized single value sits where
// a 1-tuple may have been intended.
var AnalyzerSingletonTuple = &Analyzer{
	Name:     "singleton-tuple",
	Doc:      "Advise that (x) is not a 1-tuple.\n\n`(1)` is just the integer 1; a single-element tuple needs a trailing comma: `(1,)`. Advisory because `(x)` is perfectly valid grouping.",
	Severity: SeverityAdvisory,
	Run: func(pass *Pass) error {
		for _, line := range pass.File.Lines {
			toks := line.Tokens
			eq := topLevelAssign(toks)
			if eq < 0 {
				continue
			}
			rest := toks[eq+1:]
			if len(rest) != 3 {
				continue
			}
			if rest[0].Type != token.PAREN_L || rest[2].Type != token.PAREN_R {
				continue
			}
			if !isAtom(rest[1]) {
				continue
			}
			pass.Report(Diagnostic{
				Kind:    KindSingletonTuple,
				Pos:     Position{Line: rest[0].Source.Line, Col: rest[0].Source.Col},
				EndCol:  rest[2].End(),
				Message: fmt.Sprintf("(%s) is not a tuple, it is just %s in parentheses", rest[1].Text, rest[1].Text),
				Fix:     fmt.Sprintf("write (%s,) if a single-element tuple was intended", rest[1].Text),
			})
		}
		return nil
	},
}

func isAtom(tok *token.Token) bool {
	switch tok.Type {
	case token.NUMBER, token.STRING, token.IDENT:
		return true
	}
	return false
}

// AnalyzerDictLiteral checks the shape of dict literal entries.
var AnalyzerDictLiteral = &Analyzer{
	Name:     "dict-literal",
	Doc:      "Check dict literal entries for missing colons and bare keys.\n\nWhen a brace literal mixes `key: value` entries with bare entries the bare ones are missing their colon. Bare identifier keys are advisory: `{a: 1}` is valid when `a` is a variable, but quoting is usually what was meant.",
	Severity: SeverityError,
	Run: func(pass *Pass) error {
		// Bracket balance is guaranteed by the lexer; when it is violated
		// the brace spans are meaningless, so the check stands down rather
		// than re-deriving balance itself.
		for _, f := range pass.File.Failures {
			if f.Reason == lexer.FailUnclosedBracket || f.Reason == lexer.FailMismatchedBracket {
				return nil
			}
		}
		for _, line := range pass.File.Lines {
			toks := line.Tokens
			for i, tok := range toks {
				if tok.Type == token.BRACE_L {
					checkBrace(pass, toks, i)
				}
			}
		}
		return nil
	},
}

// checkBrace examines one brace literal starting at toks[open].
func checkBrace(pass *Pass, toks []*token.Token, open int) {
	close := matchBracket(toks, open)
	if close < 0 {
		return
	}
	inner := toks[open+1 : close]
	if isComprehension(inner) {
		return
	}
	entries := splitEntries(inner)
	if len(entries) == 0 {
		return
	}

	withColon := 0
	for _, e := range entries {
		if topLevelColon(e) >= 0 {
			withColon++
		}
	}
	if withColon == 0 {
		// No entry has a colon: a set literal, unless an entry is two
		// adjacent values, which only a dict key missing ':' explains.
		for _, e := range entries {
			if len(e) >= 2 && isAtom(e[0]) && isAtom(e[1]) {
				pass.Report(Diagnostic{
					Kind:    KindMissingDictColon,
					Pos:     Position{Line: e[0].Source.Line, Col: e[0].Source.Col},
					EndCol:  e[len(e)-1].End(),
					Message: fmt.Sprintf("dict entry starting at %q has no ': value'", e[0].Text),
					Fix:     "add ':' between the key and its value",
				})
			}
		}
		return
	}

	for _, e := range entries {
		ci := topLevelColon(e)
		if ci < 0 {
			if isUnpacking(e) {
				continue
			}
			pass.Report(Diagnostic{
				Kind:    KindMissingDictColon,
				Pos:     Position{Line: e[0].Source.Line, Col: e[0].Source.Col},
				EndCol:  e[len(e)-1].End(),
				Message: fmt.Sprintf("dict entry starting at %q has no ': value'", e[0].Text),
				Fix:     "add ': value' after the key",
			})
			continue
		}
		if ci == 1 && e[0].Type == token.IDENT {
			pass.Report(Diagnostic{
				Kind:     KindUnquotedDictKey,
				Severity: SeverityAdvisory,
				Pos:      Position{Line: e[0].Source.Line, Col: e[0].Source.Col},
				EndCol:   e[0].End(),
				Message:  fmt.Sprintf("dict key %q is a bare identifier, not a string", e[0].Text),
				Fix:      fmt.Sprintf("write '%s' if a string key was intended", e[0].Text),
			})
		}
	}
}

// isComprehension reports whether a brace span holds a comprehension. A
// top-level `for` keyword means the span is a single expression, not a list
// of entries, so the comma in `for k, v in items` must not be split on.
func isComprehension(toks []*token.Token) bool {
	depth := 0
	for _, tok := range toks {
		switch {
		case tok.Type.IsOpenBracket():
			depth++
		case tok.Type.IsCloseBracket():
			depth--
		case depth == 0 && tok.Type == token.KEYWORD && tok.Text == "for":
			return true
		}
	}
	return false
}

// isUnpacking reports whether a dict entry is a `**mapping` splat, which
// carries no key or colon of its own.
func isUnpacking(e []*token.Token) bool {
	return len(e) > 0 && e[0].Type == token.OPERATOR && e[0].Text == "**"
}

// lineHasError reports whether the line contains an ERROR placeholder token
// from a failed literal.
func lineHasError(line *parser.Line) bool {
	for _, tok := range line.Tokens {
		if tok.Type == token.ERROR {
			return true
		}
	}
	return false
}

// topLevelColon returns the index of the first colon at bracket depth zero
// that does not belong to a lambda, or -1.
func topLevelColon(toks []*token.Token) int {
	depth := 0
	lambdas := 0
	for i, tok := range toks {
		switch {
		case tok.Type.IsOpenBracket():
			depth++
		case tok.Type.IsCloseBracket():
			depth--
		case depth == 0 && tok.Type == token.KEYWORD && tok.Text == "lambda":
			lambdas++
		case depth == 0 && tok.Type == token.COLON:
			if lambdas > 0 {
				lambdas--
				continue
			}
			return i
		}
	}
	return -1
}

// topLevelAssign returns the index of the first bare "=" at bracket depth
// zero, or -1.
func topLevelAssign(toks []*token.Token) int {
	depth := 0
	for i, tok := range toks {
		switch {
		case tok.Type.IsOpenBracket():
			depth++
		case tok.Type.IsCloseBracket():
			depth--
		case depth == 0 && tok.Type == token.OPERATOR && tok.Text == "=":
			return i
		}
	}
	return -1
}

// matchBracket returns the index of the closer matching the opener at
// toks[open], or -1.
func matchBracket(toks []*token.Token, open int) int {
	depth := 0
	for i := open; i < len(toks); i++ {
		switch {
		case toks[i].Type.IsOpenBracket():
			depth++
		case toks[i].Type.IsCloseBracket():
			depth--
			if depth == 0 {
				return i
			}
		}
	}
	return -1
}

// splitEntries splits a bracketed span into its top-level comma-separated
// entries, dropping empty ones (trailing commas).
func splitEntries(toks []*token.Token) [][]*token.Token {
	var entries [][]*token.Token
	depth := 0
	start := 0
	flush := func(end int) {
		if end > start {
			entries = append(entries, toks[start:end])
		}
	}
	for i, tok := range toks {
		switch {
		case tok.Type.IsOpenBracket():
			depth++
		case tok.Type.IsCloseBracket():
			depth--
		case depth == 0 && tok.Type == token.COMMA:
			flush(i)
			start = i + 1
		}
	}
	flush(len(toks))
	return entries
}

// DefaultAnalyzers returns the built-in set of syntax checks.
func DefaultAnalyzers() []*Analyzer {
	return []*Analyzer{
		AnalyzerMissingColon,
		AnalyzerBlockIndent,
		AnalyzerDanglingElse,
		AnalyzerInconsistentDedent,
		AnalyzerIndentStyle,
		AnalyzerIndentWidth,
		AnalyzerUnclosedString,
		AnalyzerUnclosedBracket,
		AnalyzerInvalidNumber,
		AnalyzerBadCharacter,
		AnalyzerKeywordAssign,
		AnalyzerSingletonTuple,
		AnalyzerDictLiteral,
	}
}

// AnalyzerNames returns a sorted list of all default analyzer names.
func AnalyzerNames() []string {
	analyzers := DefaultAnalyzers()
	names := make([]string, len(analyzers))
	for i, a := range analyzers {
		names[i] = a.Name
	}
	sort.Strings(names)
	return names
}

// AnalyzerDoc returns a formatted documentation string for all analyzers.
func AnalyzerDoc() string {
	var b strings.Builder
	for _, a := range DefaultAnalyzers() {
		fmt.Fprintf(&b, "  %s\n", a.Name)
		summary := strings.Split(a.Doc, "\n")[0]
		b.WriteString(reflowindent.String(wordwrap.String(summary, 68), 4))
		b.WriteString("\n\n")
	}
	return b.String()
}
