package buffer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestHighlighter(contents string) (*Highlighter, Buffer) {
	buf := NewRopeBuffer([]byte(contents))
	h := NewHighlighter(buf, Python, nil)
	return h, buf
}

func TestHighlighterInitialPass(t *testing.T) {
	h, buf := newTestHighlighter("s = '''\nplain text\ndone''' + 5\nn = 7")
	require.Equal(t, 4, buf.Lines())

	h.UpdateInvalidatedLines(0, buf.Lines()-1)

	assert.Equal(t, StateInSingle, h.LineState(0))
	assert.Equal(t, StateInSingle, h.LineState(1))
	assert.Equal(t, StateClean, h.LineState(2))
	assert.Equal(t, StateClean, h.LineState(3))

	// Line 1 is entirely inside the string.
	require.Len(t, h.LineSpans(1), 1)
	assert.Equal(t, Span{Col: 0, EndCol: 9, Syntax: String}, h.LineSpans(1)[0])

	// Line 2 closes the string, then code resumes.
	assert.Equal(t, String, syntaxAt(h.LineSpans(2), 0))
	assert.Equal(t, String, syntaxAt(h.LineSpans(2), 6))
	assert.Equal(t, Number, syntaxAt(h.LineSpans(2), 10))

	assert.Equal(t, Number, syntaxAt(h.LineSpans(3), 4))
}

func TestHighlighterEditPropagatesPastViewport(t *testing.T) {
	h, buf := newTestHighlighter("s = '''\nplain text\ndone''' + 5\nn = 7")
	h.UpdateInvalidatedLines(0, buf.Lines()-1)

	// Remove the opening quotes on line 0. Only line 0 is invalidated and
	// the viewport is only line 0, but the state change must ripple down.
	buf.Remove(0, 4, 0, 6)
	h.InvalidateLines(0, 0)
	h.UpdateInvalidatedLines(0, 0)

	assert.Equal(t, StateClean, h.LineState(0))
	assert.Empty(t, h.LineSpans(1), "plain text is unstyled once outside the string")

	// What used to close a string on line 2 now opens one.
	assert.Equal(t, StateInSingle, h.LineState(2))
	assert.Equal(t, Default, syntaxAt(h.LineSpans(2), 0))
	assert.Equal(t, String, syntaxAt(h.LineSpans(2), 4))
	assert.Equal(t, String, syntaxAt(h.LineSpans(2), 10))

	// Line 3 is swallowed by the newly opened string.
	assert.Equal(t, StateInSingle, h.LineState(3))
	assert.Equal(t, String, syntaxAt(h.LineSpans(3), 0))
}

func TestHighlighterRecomputationStopsAtFixedPoint(t *testing.T) {
	h, buf := newTestHighlighter("a = 1\nb = 2\nc = '''\nin string\n")
	h.UpdateInvalidatedLines(0, buf.Lines()-1)

	// An edit on line 0 that does not change the carry state must leave
	// later lines' cached spans untouched.
	before := h.LineSpans(3)

	buf.Insert(0, 4, []byte("0"))
	h.InvalidateLines(0, 0)
	h.UpdateInvalidatedLines(0, 0)

	assert.Equal(t, Number, syntaxAt(h.LineSpans(0), 5))
	assert.Equal(t, before, h.LineSpans(3), "valid lines past the fixed point are not recomputed")
	assert.Equal(t, StateInSingle, h.LineState(3))
}

func TestHighlighterLineInsertion(t *testing.T) {
	h, buf := newTestHighlighter("x = 1\ny = 2")
	h.UpdateInvalidatedLines(0, buf.Lines()-1)

	// Split line 0, shifting line 1 down.
	buf.Insert(0, 5, []byte("\nz = '''"))
	h.InvalidateLines(0, buf.Lines()-1)
	h.UpdateInvalidatedLines(0, buf.Lines()-1)

	require.Equal(t, 3, buf.Lines())
	assert.Equal(t, Number, syntaxAt(h.LineSpans(0), 4))
	assert.Equal(t, StateInSingle, h.LineState(1))
	assert.Equal(t, String, syntaxAt(h.LineSpans(2), 0), "shifted line is inside the new string")
}

func TestHighlighterLineRemoval(t *testing.T) {
	h, buf := newTestHighlighter("s = '''\ntext\n''' + 1\nn = 5")
	h.UpdateInvalidatedLines(0, buf.Lines()-1)
	assert.Equal(t, StateClean, h.LineState(3))

	// Delete line 2 (the closer) entirely, including its newline.
	buf.Remove(1, 4, 2, 6)
	h.InvalidateLines(1, buf.Lines()-1)
	h.UpdateInvalidatedLines(0, buf.Lines()-1)

	require.Equal(t, 3, buf.Lines())
	assert.Equal(t, StateInSingle, h.LineState(2))
	assert.Equal(t, String, syntaxAt(h.LineSpans(2), 0))
}

func TestHighlighterOutOfRange(t *testing.T) {
	h, _ := newTestHighlighter("x = 1")
	h.UpdateInvalidatedLines(0, 100) // endLine past the buffer is clamped

	assert.Nil(t, h.LineSpans(-1))
	assert.Nil(t, h.LineSpans(5))
	assert.Equal(t, StateClean, h.LineState(-1))
	assert.Equal(t, StateClean, h.LineState(5))
	assert.Equal(t, Number, syntaxAt(h.LineSpans(0), 4))
}

func TestHighlighterIdempotentUpdate(t *testing.T) {
	h, buf := newTestHighlighter("def f():\n    return '''\ndoc'''\n")
	h.UpdateInvalidatedLines(0, buf.Lines()-1)

	spans := make([][]Span, buf.Lines())
	for i := range spans {
		spans[i] = h.LineSpans(i)
	}

	h.UpdateInvalidatedLines(0, buf.Lines()-1)
	for i := range spans {
		assert.Equal(t, spans[i], h.LineSpans(i), "line %d", i)
	}
}
