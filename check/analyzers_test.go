// Copyright © 2025 The pycheck authors

package check

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// --- missing-colon ---

func TestMissingColon_Def(t *testing.T) {
	diags := checkWith(t, AnalyzerMissingColon, "def add(a, b)\n    return a + b\n")
	require.Len(t, diags, 1)
	assert.Equal(t, KindMissingColon, diags[0].Kind)
	assert.Equal(t, 1, diags[0].Pos.Line)
	assert.Equal(t, 14, diags[0].Pos.Col)
	assert.Equal(t, SeverityError, diags[0].Severity)
}

func TestMissingColon_AllHeaders(t *testing.T) {
	src := "if x\n" +
		"while x\n" +
		"for i in xs\n" +
		"class C\n" +
		"with open(f) as g\n" +
		"try\n"
	diags := checkWith(t, AnalyzerMissingColon, src)
	assert.Len(t, diags, 6)
}

func TestMissingColon_CleanHeaders(t *testing.T) {
	src := "def f(a, b):\n" +
		"    if a:\n" +
		"        return b\n" +
		"    return {1: 2}[a]\n"
	assertClean(t, checkWith(t, AnalyzerMissingColon, src))
}

func TestMissingColon_ColonInsideBracketsDoesNotCount(t *testing.T) {
	// The only colon is the dict's; the header is still missing its own.
	diags := checkWith(t, AnalyzerMissingColon, "def f(d={1: 2})\n")
	require.Len(t, diags, 1)
	assert.Equal(t, KindMissingColon, diags[0].Kind)
}

func TestMissingColon_LambdaColonDoesNotCount(t *testing.T) {
	diags := checkWith(t, AnalyzerMissingColon, "if check(lambda x: x)\n")
	require.Len(t, diags, 1)

	// With a real header colon present the lambda changes nothing.
	assertClean(t, checkWith(t, AnalyzerMissingColon, "if check(lambda x: x):\n    pass\n"))
}

func TestMissingColon_AnnotatedReturn(t *testing.T) {
	assertClean(t, checkWith(t, AnalyzerMissingColon, "def f(x) -> int:\n    return x\n"))
}

func TestMissingColon_SkipsFailedLiteralLines(t *testing.T) {
	// The unterminated string already explains this line.
	diags := checkWith(t, AnalyzerMissingColon, "if x == \"abc\n")
	assertClean(t, diags)
}

// --- block-indent ---

func TestBlockIndent_MissingBody(t *testing.T) {
	diags := checkWith(t, AnalyzerBlockIndent, "if x:\nreturn x\n")
	require.Len(t, diags, 1)
	assert.Equal(t, KindBadIndent, diags[0].Kind)
	assert.Equal(t, 2, diags[0].Pos.Line)
	assert.Equal(t, 1, diags[0].Pos.Col)
}

func TestBlockIndent_HeaderAtEOF(t *testing.T) {
	diags := checkWith(t, AnalyzerBlockIndent, "while x:\n")
	require.Len(t, diags, 1)
	assert.Equal(t, 1, diags[0].Pos.Line)
}

func TestBlockIndent_InlineSuite(t *testing.T) {
	assertClean(t, checkWith(t, AnalyzerBlockIndent, "if x: pass\ny = 1\n"))
}

func TestBlockIndent_Clean(t *testing.T) {
	assertClean(t, checkWith(t, AnalyzerBlockIndent, "if x:\n    pass\n"))
}

func TestBlockIndent_DedentAfterHeader(t *testing.T) {
	src := "def f():\n" +
		"    if x:\n" +
		"pass\n"
	diags := checkWith(t, AnalyzerBlockIndent, src)
	require.Len(t, diags, 1)
	assert.Equal(t, 3, diags[0].Pos.Line)
}

// --- dangling-else ---

func TestDanglingElse_NoOpener(t *testing.T) {
	src := "x = 1\nelse:\n    pass\n"
	diags := checkWith(t, AnalyzerDanglingElse, src)
	require.Len(t, diags, 1)
	assert.Equal(t, KindDanglingElse, diags[0].Kind)
	assert.Equal(t, 2, diags[0].Pos.Line)
	assert.Equal(t, 1, diags[0].Pos.Col)
}

func TestDanglingElse_StatementBreaksChain(t *testing.T) {
	src := "if x:\n" +
		"    pass\n" +
		"y = 1\n" +
		"else:\n" +
		"    pass\n"
	diags := checkWith(t, AnalyzerDanglingElse, src)
	require.Len(t, diags, 1)
	assert.Equal(t, 4, diags[0].Pos.Line)
}

func TestDanglingElse_ValidChains(t *testing.T) {
	src := "if a:\n" +
		"    pass\n" +
		"elif b:\n" +
		"    pass\n" +
		"else:\n" +
		"    pass\n" +
		"try:\n" +
		"    pass\n" +
		"except ValueError:\n" +
		"    pass\n" +
		"except KeyError:\n" +
		"    pass\n" +
		"else:\n" +
		"    pass\n" +
		"finally:\n" +
		"    pass\n" +
		"for i in xs:\n" +
		"    pass\n" +
		"else:\n" +
		"    pass\n"
	assertClean(t, checkWith(t, AnalyzerDanglingElse, src))
}

func TestDanglingElse_WrongPairing(t *testing.T) {
	// except cannot follow a plain if.
	src := "if x:\n    pass\nexcept ValueError:\n    pass\n"
	diags := checkWith(t, AnalyzerDanglingElse, src)
	require.Len(t, diags, 1)
	assert.Equal(t, 3, diags[0].Pos.Line)
}

func TestDanglingElse_ElifAfterElse(t *testing.T) {
	src := "if a:\n    pass\nelse:\n    pass\nelif b:\n    pass\n"
	diags := checkWith(t, AnalyzerDanglingElse, src)
	require.Len(t, diags, 1)
	assert.Equal(t, 5, diags[0].Pos.Line)
}

func TestDanglingElse_DifferentIndentation(t *testing.T) {
	// The else aligns with no header at its own width.
	src := "if x:\n" +
		"    if y:\n" +
		"        pass\n" +
		"    else:\n" +
		"        pass\n" +
		"else:\n" +
		"    pass\n"
	assertClean(t, checkWith(t, AnalyzerDanglingElse, src))
}

// --- inconsistent-dedent ---

func TestInconsistentDedent(t *testing.T) {
	src := "if x:\n" +
		"        pass\n" +
		"    y = 1\n"
	diags := checkWith(t, AnalyzerInconsistentDedent, src)
	require.Len(t, diags, 1)
	assert.Equal(t, KindBadIndent, diags[0].Kind)
	assert.Equal(t, 3, diags[0].Pos.Line)
	assert.Equal(t, 5, diags[0].Pos.Col)
	assert.Contains(t, diags[0].Message, "unindent does not match")
}

func TestInconsistentDedent_NoCascade(t *testing.T) {
	src := "if x:\n" +
		"        pass\n" +
		"    y = 1\n" +
		"    z = 2\n"
	diags := checkWith(t, AnalyzerInconsistentDedent, src)
	assert.Len(t, diags, 1)
}

func TestInconsistentDedent_CleanDedents(t *testing.T) {
	src := "if x:\n" +
		"    if y:\n" +
		"        pass\n" +
		"    z = 1\n" +
		"w = 2\n"
	assertClean(t, checkWith(t, AnalyzerInconsistentDedent, src))
}

// --- indent-style / indent-width ---

func TestIndentStyle_Mixed(t *testing.T) {
	diags := checkWith(t, AnalyzerIndentStyle, "if x:\n\t    pass\n")
	require.Len(t, diags, 1)
	assert.Equal(t, KindMixedTabsSpaces, diags[0].Kind)
	assert.Equal(t, SeverityError, diags[0].Severity)
	assert.Equal(t, 2, diags[0].Pos.Line)
}

func TestIndentStyle_TabsOnlyAdvisory(t *testing.T) {
	diags := checkWith(t, AnalyzerIndentStyle, "if x:\n\tpass\n")
	require.Len(t, diags, 1)
	assert.Equal(t, KindBadIndent, diags[0].Kind)
	assert.Equal(t, SeverityAdvisory, diags[0].Severity)
}

func TestIndentStyle_SpacesClean(t *testing.T) {
	assertClean(t, checkWith(t, AnalyzerIndentStyle, "if x:\n    pass\n"))
}

func TestIndentWidth_NotMultipleOfFour(t *testing.T) {
	diags := checkWith(t, AnalyzerIndentWidth, "if x:\n   pass\n")
	require.Len(t, diags, 1)
	assert.Equal(t, SeverityAdvisory, diags[0].Severity)
	assert.Contains(t, diags[0].Message, "3 spaces")
}

func TestIndentWidth_MultipleOfFourClean(t *testing.T) {
	src := "if x:\n    if y:\n        pass\n"
	assertClean(t, checkWith(t, AnalyzerIndentWidth, src))
}

// --- unclosed-string / unclosed-bracket ---

func TestUnclosedString(t *testing.T) {
	diags := checkWith(t, AnalyzerUnclosedString, "s = \"unclosed\n")
	require.Len(t, diags, 1)
	assert.Equal(t, KindUnclosedString, diags[0].Kind)
	assert.Equal(t, 1, diags[0].Pos.Line)
	assert.Equal(t, 5, diags[0].Pos.Col)
}

func TestUnclosedString_EscapedQuoteNotClosing(t *testing.T) {
	diags := checkWith(t, AnalyzerUnclosedString, "s = \"abc\\\"\n")
	require.Len(t, diags, 1)
}

func TestUnclosedString_Clean(t *testing.T) {
	assertClean(t, checkWith(t, AnalyzerUnclosedString, "s = \"closed\"\nd = '''multi\nline'''\n"))
}

func TestUnclosedBracket(t *testing.T) {
	diags := checkWith(t, AnalyzerUnclosedBracket, "x = (1 + 2\n")
	require.Len(t, diags, 1)
	assert.Equal(t, KindUnclosedBracket, diags[0].Kind)
	assert.Equal(t, 5, diags[0].Pos.Col)
}

func TestUnclosedBracket_Nested(t *testing.T) {
	diags := checkWith(t, AnalyzerUnclosedBracket, "x = [{'a': (1, 2\n")
	// One finding per unmatched opener.
	assert.Len(t, diags, 3)
}

func TestUnclosedBracket_Mismatched(t *testing.T) {
	diags := checkWith(t, AnalyzerUnclosedBracket, "x = [1, 2)\n")
	require.Len(t, diags, 1)
	assert.Equal(t, KindUnclosedBracket, diags[0].Kind)
}

// --- invalid-number / bad-character ---

func TestInvalidNumber(t *testing.T) {
	diags := checkWith(t, AnalyzerInvalidNumber, "x = 1.2.3\n")
	require.Len(t, diags, 1)
	assert.Equal(t, KindInvalidNumber, diags[0].Kind)
	assert.Equal(t, 5, diags[0].Pos.Col)
}

func TestBadCharacter(t *testing.T) {
	diags := checkWith(t, AnalyzerBadCharacter, "x = 1 $ 2\n")
	require.Len(t, diags, 1)
	assert.Equal(t, KindInvalidCharacter, diags[0].Kind)
}

// --- keyword-assign ---

func TestKeywordAssign(t *testing.T) {
	diags := checkWith(t, AnalyzerKeywordAssign, "class = 1\n")
	require.Len(t, diags, 1)
	assert.Equal(t, KindInvalidIdentifier, diags[0].Kind)
	assert.Equal(t, 1, diags[0].Pos.Col)
	assert.Equal(t, 6, diags[0].EndCol)
}

func TestKeywordAssign_EqualityIsFine(t *testing.T) {
	assertClean(t, checkWith(t, AnalyzerKeywordAssign, "x = y is None\nif x == True:\n    pass\n"))
}

func TestKeywordAssign_DefaultArgIsFine(t *testing.T) {
	// f(x=None) is a keyword argument, not an assignment to None.
	assertClean(t, checkWith(t, AnalyzerKeywordAssign, "f(x=None)\n"))
}

// --- singleton-tuple ---

func TestSingletonTuple(t *testing.T) {
	diags := checkWith(t, AnalyzerSingletonTuple, "point = (4)\n")
	require.Len(t, diags, 1)
	assert.Equal(t, KindSingletonTuple, diags[0].Kind)
	assert.Equal(t, SeverityAdvisory, diags[0].Severity)
	assert.Equal(t, 9, diags[0].Pos.Col)
	assert.Contains(t, diags[0].Fix, "(4,)")
}

func TestSingletonTuple_RealTupleClean(t *testing.T) {
	src := "a = (4,)\nb = (1, 2)\nc = (x + y)\nd = f(4)\n"
	assertClean(t, checkWith(t, AnalyzerSingletonTuple, src))
}

// --- dict-literal ---

func TestDictLiteral_MissingColon(t *testing.T) {
	diags := checkWith(t, AnalyzerDictLiteral, "d = {\"a\": 1, \"b\" 2}\n")
	require.Len(t, diags, 1)
	assert.Equal(t, KindMissingDictColon, diags[0].Kind)
	assert.Equal(t, 14, diags[0].Pos.Col)
}

func TestDictLiteral_UnquotedKey(t *testing.T) {
	diags := checkWith(t, AnalyzerDictLiteral, "d = {name: 1, \"age\": 2}\n")
	require.Len(t, diags, 1)
	assert.Equal(t, KindUnquotedDictKey, diags[0].Kind)
	assert.Equal(t, SeverityAdvisory, diags[0].Severity)
	assert.Equal(t, 6, diags[0].Pos.Col)
}

func TestDictLiteral_SetLiteralClean(t *testing.T) {
	assertClean(t, checkWith(t, AnalyzerDictLiteral, "s = {1, 2, 3}\n"))
}

func TestDictLiteral_CleanDicts(t *testing.T) {
	src := "a = {\"k\": 1}\n" +
		"b = {}\n" +
		"c = {\"k\": [1, 2], \"j\": {\"n\": 1}}\n" +
		"d = {f(x): g(y)}\n"
	assertClean(t, checkWith(t, AnalyzerDictLiteral, src))
}

func TestDictLiteral_TrailingComma(t *testing.T) {
	assertClean(t, checkWith(t, AnalyzerDictLiteral, "a = {\"k\": 1,}\n"))
}

func TestDictLiteral_MultiLine(t *testing.T) {
	src := "d = {\n" +
		"    \"a\": 1,\n" +
		"    \"b\" 2,\n" +
		"}\n"
	diags := checkWith(t, AnalyzerDictLiteral, src)
	require.Len(t, diags, 1)
	assert.Equal(t, KindMissingDictColon, diags[0].Kind)
	assert.Equal(t, 3, diags[0].Pos.Line)
}

func TestDictLiteral_StandsDownOnBrokenBrackets(t *testing.T) {
	assertClean(t, checkWith(t, AnalyzerDictLiteral, "d = {\"a\": 1\n"))
}

func TestDictLiteral_DictComprehension(t *testing.T) {
	assertClean(t, checkWith(t, AnalyzerDictLiteral, "d = {k: v for k, v in items}\n"))
}

func TestDictLiteral_SetComprehension(t *testing.T) {
	assertClean(t, checkWith(t, AnalyzerDictLiteral, "s = {x * 2 for x in range(10)}\n"))
}

func TestDictLiteral_Unpacking(t *testing.T) {
	assertClean(t, checkWith(t, AnalyzerDictLiteral, "merged = {**a, \"b\": 1}\n"))
	assertClean(t, checkWith(t, AnalyzerDictLiteral, "merged = {**a, **b}\n"))
}

func TestDictLiteral_UnpackingNextToBrokenEntry(t *testing.T) {
	diags := checkWith(t, AnalyzerDictLiteral, "d = {**a, \"b\" 2}\n")
	require.Len(t, diags, 1)
	assert.Equal(t, KindMissingDictColon, diags[0].Kind)
	assert.Equal(t, 11, diags[0].Pos.Col)
}

// --- full scenarios through the default analyzer set ---

func TestScenario_MissingColonAndBody(t *testing.T) {
	src := "def add(a, b)\n" +
		"    return a + b\n"
	diags := checkSource(t, src)
	assertKindOnLine(t, diags, KindMissingColon, 1)
}

func TestScenario_MissingBody(t *testing.T) {
	src := "class Point:\n" +
		"x = 1\n"
	diags := checkSource(t, src)
	assertKindOnLine(t, diags, KindBadIndent, 2)
}

func TestScenario_MixedIndentation(t *testing.T) {
	src := "def f():\n" +
		"    if x:\n" +
		"\t pass\n"
	diags := checkSource(t, src)
	assertKindOnLine(t, diags, KindMixedTabsSpaces, 3)
}

func TestScenario_UnclosedLiterals(t *testing.T) {
	src := "s = \"hello\n" +
		"t = [1, 2\n"
	diags := checkSource(t, src)
	assertKindOnLine(t, diags, KindUnclosedString, 1)
	assertKindOnLine(t, diags, KindUnclosedBracket, 2)
}

func TestScenario_LiteralShapes(t *testing.T) {
	src := "d = {\"a\": 1, \"b\" 2}\n" +
		"e = {name: 1, \"x\": 2}\n" +
		"p = (4)\n"
	diags := checkSource(t, src)
	assertKindOnLine(t, diags, KindMissingDictColon, 1)
	assertKindOnLine(t, diags, KindUnquotedDictKey, 2)
	assertKindOnLine(t, diags, KindSingletonTuple, 3)
}

func TestScenario_DanglingElseAndKeywordAssign(t *testing.T) {
	src := "if x:\n" +
		"    pass\n" +
		"y = 1\n" +
		"else:\n" +
		"    pass\n" +
		"class = 1\n"
	diags := checkSource(t, src)
	assertKindOnLine(t, diags, KindDanglingElse, 4)
	assertKindOnLine(t, diags, KindInvalidIdentifier, 6)
}

func TestScenario_CleanFile(t *testing.T) {
	src := "import sys\n" +
		"\n" +
		"\n" +
		"def main(argv):\n" +
		"    config = {\"verbose\": True, \"level\": 2}\n" +
		"    values = (1,)\n" +
		"    for arg in argv:\n" +
		"        if arg == \"-v\":\n" +
		"            config[\"verbose\"] = True\n" +
		"        else:\n" +
		"            values += (arg,)\n" +
		"    return config, values\n" +
		"\n" +
		"\n" +
		"if __name__ == \"__main__\":\n" +
		"    main(sys.argv)\n"
	assertClean(t, checkSource(t, src))
}

func TestScenario_RecoveryFindsLaterProblems(t *testing.T) {
	// A failure on line 1 must not mask the dict problem on line 3.
	src := "def f(x)\n" +
		"    return x\n" +
		"d = {\"a\" 1}\n"
	diags := checkSource(t, src)
	assertKindOnLine(t, diags, KindMissingColon, 1)
	assertKindOnLine(t, diags, KindMissingDictColon, 3)
}

// Every reported location must re-slice the original text: the line exists,
// the column is at most one past the end of that line (where a missing token
// belongs), and a column span selects a non-empty run of the line.
func TestDiagnosticLocationsInBounds(t *testing.T) {
	corpus := []string{
		"def add(a, b)\n    return a + b\n",
		"if ready\npass\n",
		"s = \"unterminated\n",
		"doc = '''open\n",
		"items = [1, 2\n",
		"close = )\n",
		"d = {\"a\" 1, name: 2}\n",
		"point = (4)\n",
		"class = 1\n",
		"if x:\n\tpass\n",
		"if x:\n  \tpass\n",
		"if a:\n    if b:\n        pass\n   back\n",
		"else:\n    pass\n",
		"x = 1.2.3\n",
		"y = 0x\n",
		"def f(:\n",
		"if x:\nprint(x)\n",
	}
	for _, src := range corpus {
		diags := checkSource(t, src)
		require.NotEmpty(t, diags, "corpus entry must produce findings: %q", src)
		lines := strings.Split(strings.TrimSuffix(src, "\n"), "\n")
		for _, d := range diags {
			require.GreaterOrEqual(t, d.Pos.Line, 1, "%q: %s", src, d)
			require.LessOrEqual(t, d.Pos.Line, len(lines), "%q: %s", src, d)
			text := lines[d.Pos.Line-1]
			require.GreaterOrEqual(t, d.Pos.Col, 1, "%q: %s", src, d)
			require.LessOrEqual(t, d.Pos.Col, len(text)+1, "%q: %s", src, d)
			if d.EndCol > 0 {
				require.Greater(t, d.EndCol, d.Pos.Col, "%q: %s", src, d)
				require.LessOrEqual(t, d.EndCol, len(text)+1, "%q: %s", src, d)
				require.NotEmpty(t, text[d.Pos.Col-1:d.EndCol-1], "%q: %s", src, d)
			}
		}
	}
}
