package buffer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

// syntaxAt resolves the syntax styled at a rune column, Default when no span
// covers it.
func syntaxAt(spans []Span, col int) Syntax {
	for _, s := range spans {
		if col >= s.Col && col <= s.EndCol {
			return s.Syntax
		}
	}
	return Default
}

func TestHighlightLineNumberAndComment(t *testing.T) {
	spans, out := Python.HighlightLine([]byte("x = 1  # comment"), StateClean)
	assert.Equal(t, StateClean, out)

	assert.Equal(t, Default, syntaxAt(spans, 0), "identifier is unstyled")
	assert.Equal(t, Number, syntaxAt(spans, 4))
	for col := 7; col <= 15; col++ {
		assert.Equal(t, Comment, syntaxAt(spans, col), "col %d", col)
	}
}

func TestHighlightLineKeywordsAndNames(t *testing.T) {
	spans, _ := Python.HighlightLine([]byte("def foo(x):"), StateClean)

	for col := 0; col <= 2; col++ {
		assert.Equal(t, Keyword, syntaxAt(spans, col))
	}
	// The call-name rule matches foo( first, but the def-name rule is
	// registered after it and wins.
	for col := 4; col <= 6; col++ {
		assert.Equal(t, FunctionName, syntaxAt(spans, col))
	}

	spans, _ = Python.HighlightLine([]byte("class Foo:"), StateClean)
	for col := 6; col <= 8; col++ {
		assert.Equal(t, ClassName, syntaxAt(spans, col))
	}

	spans, _ = Python.HighlightLine([]byte("print(self.x)"), StateClean)
	for col := 0; col <= 4; col++ {
		assert.Equal(t, CallName, syntaxAt(spans, col))
	}
	for col := 6; col <= 9; col++ {
		assert.Equal(t, SelfParam, syntaxAt(spans, col))
	}
}

func TestHighlightLineCommentBeatsString(t *testing.T) {
	// The comment rule is registered after the string rules, so a hash
	// inside quotes still turns the rest of the line into a comment.
	spans, _ := Python.HighlightLine([]byte(`s = "a#b"`), StateClean)
	assert.Equal(t, String, syntaxAt(spans, 4))
	assert.Equal(t, String, syntaxAt(spans, 5))
	for col := 6; col <= 8; col++ {
		assert.Equal(t, Comment, syntaxAt(spans, col))
	}
}

func TestHighlightLineTripleQuoteOpens(t *testing.T) {
	spans, out := Python.HighlightLine([]byte("s = '''abc"), StateClean)
	require.Equal(t, StateInSingle, out)
	for col := 4; col <= 9; col++ {
		assert.Equal(t, String, syntaxAt(spans, col), "col %d", col)
	}
	assert.Equal(t, Default, syntaxAt(spans, 0))
}

func TestHighlightLineInsideTripleQuote(t *testing.T) {
	spans, out := Python.HighlightLine([]byte("def not_code(): pass"), StateInSingle)
	assert.Equal(t, StateInSingle, out)
	for col := 0; col <= 19; col++ {
		assert.Equal(t, String, syntaxAt(spans, col), "col %d", col)
	}

	// A double-quote delimiter does not close a single-quote string.
	_, out = Python.HighlightLine([]byte(`closing """ here`), StateInSingle)
	assert.Equal(t, StateInSingle, out)
}

func TestHighlightLineTripleQuoteCloses(t *testing.T) {
	spans, out := Python.HighlightLine([]byte("done''' + 5"), StateInSingle)
	assert.Equal(t, StateClean, out)
	for col := 0; col <= 6; col++ {
		assert.Equal(t, String, syntaxAt(spans, col), "col %d", col)
	}
	assert.Equal(t, Number, syntaxAt(spans, 10))
}

func TestHighlightLineSeveralTripleQuotesPerLine(t *testing.T) {
	spans, out := Python.HighlightLine([]byte(`a = '''x''' + """y`), StateClean)
	assert.Equal(t, StateInDouble, out)
	for col := 4; col <= 10; col++ {
		assert.Equal(t, String, syntaxAt(spans, col), "col %d", col)
	}
	assert.Equal(t, Default, syntaxAt(spans, 12))
	for col := 14; col <= 17; col++ {
		assert.Equal(t, String, syntaxAt(spans, col), "col %d", col)
	}
}

func TestHighlightLineEmpty(t *testing.T) {
	spans, out := Python.HighlightLine(nil, StateInDouble)
	assert.Nil(t, spans)
	assert.Equal(t, StateInDouble, out)

	spans, out = Python.HighlightLine([]byte{}, StateClean)
	assert.Nil(t, spans)
	assert.Equal(t, StateClean, out)
}

func TestHighlightLineUnicode(t *testing.T) {
	// Span columns are rune columns, not byte offsets.
	spans, _ := Python.HighlightLine([]byte("héllo = 42  # ünïcode"), StateClean)
	assert.Equal(t, Number, syntaxAt(spans, 8))
	assert.Equal(t, Number, syntaxAt(spans, 9))
	assert.Equal(t, Comment, syntaxAt(spans, 12))
	assert.Equal(t, Comment, syntaxAt(spans, 20))
}

func TestLanguageForFile(t *testing.T) {
	assert.Equal(t, Python, LanguageForFile(""))
	assert.Equal(t, Python, LanguageForFile("script.py"))
	assert.Equal(t, PlainText, LanguageForFile("notes.txt"))

	spans, out := PlainText.HighlightLine([]byte("def foo(): '''"), StateClean)
	assert.Empty(t, spans)
	assert.Equal(t, StateClean, out)
}

func TestHighlightLinePure(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		line := rapid.StringOfN(rapid.Rune(), 0, 60, -1).Draw(t, "line")
		in := BlockState(rapid.IntRange(0, 2).Draw(t, "in"))

		spans1, out1 := Python.HighlightLine([]byte(line), in)
		spans2, out2 := Python.HighlightLine([]byte(line), in)

		assert.Equal(t, spans1, spans2)
		assert.Equal(t, out1, out2)
	})
}

func TestHighlightLineSpanInvariants(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		line := rapid.StringOfN(rapid.RuneFrom([]rune(`abc'"#123 def()`)), 0, 40, -1).Draw(t, "line")
		in := BlockState(rapid.IntRange(0, 2).Draw(t, "in"))

		spans, _ := Python.HighlightLine([]byte(line), in)

		runes := len([]rune(line))
		prevEnd := -1
		for _, s := range spans {
			assert.LessOrEqual(t, s.Col, s.EndCol)
			assert.Greater(t, s.Col, prevEnd, "spans must be ordered and disjoint")
			assert.Less(t, s.EndCol, runes)
			assert.NotEqual(t, Default, s.Syntax, "spans never style Default")
			prevEnd = s.EndCol
		}
	})
}

func TestHighlightLineCleanStaysCleanWithoutTripleQuotes(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		line := rapid.StringOfN(rapid.RuneFrom([]rune("abc def ghi = 123 # ()")), 0, 40, -1).Draw(t, "line")

		_, out := Python.HighlightLine([]byte(line), StateClean)
		assert.Equal(t, StateClean, out)
	})
}
