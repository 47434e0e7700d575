package buffer

import "math"

// The cursor lives in the buffer package, not in the TextEdit component,
// because moving it requires the buffer: the cursor has to know where lines
// end before it can go there.

type position struct {
	line int
	col  int
}

// A Cursor's functions emulate common cursor actions. Cursors are values:
// every movement returns a new Cursor, leaving the receiver untouched.
type Cursor struct {
	buffer *Buffer
	position
}

func NewCursor(in *Buffer) Cursor {
	return Cursor{
		buffer: in,
	}
}

func (c Cursor) Left() Cursor {
	if c.col == 0 && c.line != 0 { // If we are at the beginning of the current line...
		// Go to the end of the above line
		c.line--
		c.col = (*c.buffer).RunesInLine(c.line)
	} else {
		c.col = max(c.col-1, 0)
	}
	return c
}

func (c Cursor) Right() Cursor {
	// If we are at the end of the current line,
	// and not at the last line...
	if c.col >= (*c.buffer).RunesInLine(c.line) && c.line < (*c.buffer).Lines()-1 {
		c.line, c.col = (*c.buffer).ClampLineCol(c.line+1, 0) // Go to beginning of line below
	} else {
		c.line, c.col = (*c.buffer).ClampLineCol(c.line, c.col+1)
	}
	return c
}

func (c Cursor) Up() Cursor {
	if c.line == 0 { // If the cursor is at the first line...
		c.line, c.col = 0, 0 // Go to beginning
	} else {
		c.line, c.col = (*c.buffer).ClampLineCol(c.line-1, c.col)
	}
	return c
}

func (c Cursor) Down() Cursor {
	if c.line == (*c.buffer).Lines()-1 { // If the cursor is at the last line...
		c.line, c.col = (*c.buffer).ClampLineCol(c.line, math.MaxInt32) // Go to end of current line
	} else {
		c.line, c.col = (*c.buffer).ClampLineCol(c.line+1, c.col)
	}
	return c
}

func (c Cursor) GetLineCol() (line, col int) {
	return c.line, c.col
}

// SetLineCol sets the line and col of the Cursor to those provided. `line` is
// clamped within the range (0, lines in buffer). `col` is then clamped within
// the range (0, line length in runes).
func (c Cursor) SetLineCol(line, col int) Cursor {
	c.line, c.col = (*c.buffer).ClampLineCol(line, col)
	return c
}

func (c Cursor) Eq(other Cursor) bool {
	return c.buffer == other.buffer && c.line == other.line && c.col == other.col
}

// Before reports whether c precedes other in document order.
func (c Cursor) Before(other Cursor) bool {
	return c.line < other.line || (c.line == other.line && c.col < other.col)
}

// A Region is a range of the buffer between two cursors, both inclusive.
// A Region spanning multiple lines includes the connecting line delimiters.
type Region struct {
	Start Cursor
	End   Cursor
}

func NewRegion(in *Buffer) Region {
	return Region{
		NewCursor(in),
		NewCursor(in),
	}
}

// Bounds returns the region's corners in document order, regardless of which
// of Start and End actually comes first.
func (r Region) Bounds() (startLine, startCol, endLine, endCol int) {
	if r.End.Before(r.Start) {
		startLine, startCol = r.End.GetLineCol()
		endLine, endCol = r.Start.GetLineCol()
		return
	}
	startLine, startCol = r.Start.GetLineCol()
	endLine, endCol = r.End.GetLineCol()
	return
}
