package buffer

import (
	"github.com/gdamore/tcell/v2"
)

type Colorscheme map[Syntax]tcell.Style

// GetStyle returns the tcell.Style for the given Syntax. If the Syntax has no
// entry, the Default entry is used, and failing that, tcell.StyleDefault.
func (c *Colorscheme) GetStyle(s Syntax) tcell.Style {
	if c != nil {
		if val, ok := (*c)[s]; ok {
			return val
		} else if s != Default {
			if val, ok := (*c)[Default]; ok {
				return val
			}
		}
	}
	return tcell.StyleDefault
}

// A Highlighter owns the per-line span cache and carry-state chain for one
// Buffer. Lines are recomputed lazily: edits invalidate lines, and the next
// call to UpdateInvalidatedLines recomputes forward from the first
// invalidated line until every line's incoming state again equals the
// previous line's outgoing state.
//
// Invariant: for every valid line i > 0, the state line i was last computed
// with equals lineStates[i-1] at the time of that computation. Recomputation
// restores the invariant document-wide before it stops.
type Highlighter struct {
	Buffer      Buffer
	Language    *Language
	Colorscheme *Colorscheme

	lineSpans  [][]Span     // nil marks a line whose spans must be recomputed
	lineStates []BlockState // outgoing carry-state per line
}

func NewHighlighter(buffer Buffer, lang *Language, colorscheme *Colorscheme) *Highlighter {
	return &Highlighter{
		Buffer:      buffer,
		Language:    lang,
		Colorscheme: colorscheme,
		lineSpans:   make([][]Span, buffer.Lines()),
		lineStates:  make([]BlockState, buffer.Lines()),
	}
}

// InvalidateLines marks lines startLine through endLine, inclusive, as
// needing recomputation. Call after any edit: the edited line alone when the
// line count is unchanged, or through the end of the buffer when lines were
// inserted or removed (line indexes after the edit shift, so their cached
// spans no longer belong to them).
func (h *Highlighter) InvalidateLines(startLine, endLine int) {
	h.resize()
	for i := startLine; i <= endLine && i < len(h.lineSpans); i++ {
		h.lineSpans[i] = nil
	}
}

// UpdateInvalidatedLines recomputes whatever is needed for lines startLine
// through endLine, inclusive, to be valid. Because a line's spans depend on
// the carry-state chain, recomputation starts at the first invalidated line
// in the document, not at startLine, and continues past endLine until a
// line's outgoing state matches what its successor was already computed
// with (the fixed point), or the end of the buffer.
func (h *Highlighter) UpdateInvalidatedLines(startLine, endLine int) {
	h.resize()
	if endLine >= len(h.lineSpans) {
		endLine = len(h.lineSpans) - 1
	}

	first := -1
	for i := 0; i <= endLine; i++ {
		if h.lineSpans[i] == nil {
			first = i
			break
		}
	}
	if first < 0 {
		return
	}

	in := StateClean
	if first > 0 {
		in = h.lineStates[first-1]
	}

	for i := first; i < len(h.lineSpans); i++ {
		prevOut := h.lineStates[i]

		spans, out := h.Language.HighlightLine(trimLineDelim(h.Buffer.Line(i)), in)
		if spans == nil {
			spans = make([]Span, 0) // non-nil marks the line valid
		}
		h.lineSpans[i] = spans
		h.lineStates[i] = out
		in = out

		// Fixed point: the next line is still valid and was last computed
		// with this same incoming state, so nothing further can change.
		if i >= endLine && out == prevOut && i+1 < len(h.lineSpans) && h.lineSpans[i+1] != nil {
			break
		}
	}
}

// LineSpans returns the cached spans for a line, ordered by column. Returns
// nil for out-of-range or invalidated lines.
func (h *Highlighter) LineSpans(line int) []Span {
	if line < 0 || line >= len(h.lineSpans) {
		return nil
	}
	return h.lineSpans[line]
}

// LineState returns the carry-state flowing out of the given line. Lines
// before the start of the buffer are Clean by definition.
func (h *Highlighter) LineState(line int) BlockState {
	if line < 0 || line >= len(h.lineStates) {
		return StateClean
	}
	return h.lineStates[line]
}

// GetStyle resolves a span's Syntax through the colorscheme.
func (h *Highlighter) GetStyle(span Span) tcell.Style {
	return h.Colorscheme.GetStyle(span.Syntax)
}

// resize grows or shrinks the caches to match the buffer's line count.
// Appended lines start invalidated.
func (h *Highlighter) resize() {
	lines := h.Buffer.Lines()
	if lines == len(h.lineSpans) {
		return
	}
	if lines < len(h.lineSpans) {
		h.lineSpans = h.lineSpans[:lines]
		h.lineStates = h.lineStates[:lines]
		return
	}
	for len(h.lineSpans) < lines {
		h.lineSpans = append(h.lineSpans, nil)
		h.lineStates = append(h.lineStates, StateClean)
	}
}

// trimLineDelim removes the trailing LF or CRLF returned by Buffer.Line.
func trimLineDelim(line []byte) []byte {
	if n := len(line); n > 0 && line[n-1] == '\n' {
		if n > 1 && line[n-2] == '\r' {
			return line[:n-2]
		}
		return line[:n-1]
	}
	return line
}
