// Copyright © 2025 The pycheck authors

package lexer

// keywords is the set of reserved words.  Matching identifier text is
// classified as token.KEYWORD.  Soft keywords (match, case, type) are
// deliberately absent; they remain valid identifiers.
var keywords = map[string]bool{
	"False": true, "None": true, "True": true,
	"and": true, "as": true, "assert": true, "async": true, "await": true,
	"break": true, "class": true, "continue": true, "def": true, "del": true,
	"elif": true, "else": true, "except": true, "finally": true, "for": true,
	"from": true, "global": true, "if": true, "import": true, "in": true,
	"is": true, "lambda": true, "nonlocal": true, "not": true, "or": true,
	"pass": true, "raise": true, "return": true, "try": true, "while": true,
	"with": true, "yield": true,
}

// blockKeywords are the keywords that open an indented suite when they begin
// a statement.
var blockKeywords = map[string]bool{
	"if": true, "elif": true, "else": true,
	"for": true, "while": true,
	"def": true, "class": true,
	"try": true, "except": true, "finally": true,
	"with": true,
}

// continuationKeywords are block keywords that extend a compound statement
// started by an earlier header at the same indentation.
var continuationKeywords = map[string]bool{
	"elif": true, "else": true, "except": true, "finally": true,
}

// IsKeyword reports whether text is a reserved word.
func IsKeyword(text string) bool { return keywords[text] }

// IsBlockKeyword reports whether text opens an indented suite at statement
// start.
func IsBlockKeyword(text string) bool { return blockKeywords[text] }

// IsContinuationKeyword reports whether text continues a compound statement
// (elif, else, except, finally).
func IsContinuationKeyword(text string) bool { return continuationKeywords[text] }

// stringPrefixes are identifier spellings that prefix a string literal when
// immediately followed by a quote character.
var stringPrefixes = map[string]bool{
	"r": true, "b": true, "u": true, "f": true,
	"rb": true, "br": true, "fr": true, "rf": true,
	"R": true, "B": true, "U": true, "F": true,
	"Rb": true, "rB": true, "RB": true,
	"Br": true, "bR": true, "BR": true,
	"Fr": true, "fR": true, "FR": true,
	"Rf": true, "rF": true, "RF": true,
}
