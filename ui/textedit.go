package ui

import (
	"bytes"
	"math"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"
	"github.com/w3xpt/pyed/ui/buffer"
)

// TextEdit is a field for line-based editing. It holds the buffer being
// edited, the syntax highlighter for that buffer, and the line-number gutter.
type TextEdit struct {
	Buffer      buffer.Buffer
	Highlighter *buffer.Highlighter
	LineNumbers bool   // Whether to render the line-number gutter
	ReadOnly    bool   // When true, editing events are ignored
	Dirty       bool   // Whether the buffer has been edited since last save
	UseHardTabs bool   // When true, tabs are '\t'
	TabSize     int    // How many spaces to indent by
	IsCRLF      bool   // Whether the file's line endings are CRLF (\r\n) or LF (\n)
	FilePath    string // Will be empty if the file has not been saved yet

	// CursorMoved, when set, is called after every cursor position change.
	CursorMoved func(line, col int)

	screen           *tcell.Screen // Our own reference to the screen, for cursor control.
	cursor           buffer.Cursor
	scrollx, scrolly int // X and Y offset of view, known as scroll
	colorscheme      *buffer.Colorscheme

	selection  buffer.Region // Selection: selectMode determines if it should be used
	selectMode bool          // Whether the user is actively selecting text

	baseComponent
}

// NewTextEdit initializes the buffer with the given contents. An empty
// filePath marks the TextEdit as an unsaved, unnamed document.
func NewTextEdit(screen *tcell.Screen, filePath string, contents []byte, colorscheme *buffer.Colorscheme, theme *Theme) *TextEdit {
	te := &TextEdit{
		LineNumbers: true,
		UseHardTabs: true,
		TabSize:     4,
		FilePath:    filePath,

		screen:        screen,
		colorscheme:   colorscheme,
		baseComponent: baseComponent{theme: theme},
	}
	te.SetContents(contents)
	return te
}

// SetContents applies the string to the internal buffer of the TextEdit
// component. The file is determined to be either CRLF or LF based on the
// first line ending found.
func (t *TextEdit) SetContents(contents []byte) {
	var i int
loop:
	for i < len(contents) {
		switch contents[i] {
		case '\n':
			t.IsCRLF = false
			break loop
		case '\r':
			t.IsCRLF = true
			break loop
		}
		_, size := utf8.DecodeRune(contents[i:])
		i += size
	}

	t.Buffer = buffer.NewRopeBuffer(contents)
	t.cursor = buffer.NewCursor(&t.Buffer)
	t.selection = buffer.NewRegion(&t.Buffer)
	t.selectMode = false
	t.Highlighter = buffer.NewHighlighter(t.Buffer, buffer.LanguageForFile(t.FilePath), t.colorscheme)
}

// SetFilePath updates the path associated with the buffer and switches the
// highlighting language to match. Highlighting is recomputed from scratch.
func (t *TextEdit) SetFilePath(path string) {
	t.FilePath = path
	t.Highlighter = buffer.NewHighlighter(t.Buffer, buffer.LanguageForFile(path), t.colorscheme)
}

// GetLineDelimiter returns "\r\n" for a CRLF buffer, or "\n" for an LF buffer.
func (t *TextEdit) GetLineDelimiter() string {
	if t.IsCRLF {
		return "\r\n"
	}
	return "\n"
}

// GutterWidth returns the width in cells of the line-number gutter for a
// buffer with the given total line count: one cell per decimal digit of the
// line count, plus fixed padding for the leading space and the separator.
// Growing from 9 to 10 lines therefore widens the gutter by one cell.
func GutterWidth(lines int) int {
	return len(strconv.Itoa(lines)) + 2
}

// getGutterWidth returns the current width of the gutter, or zero when line
// numbers are disabled.
func (t *TextEdit) getGutterWidth() int {
	if !t.LineNumbers {
		return 0
	}
	return GutterWidth(t.Buffer.Lines())
}

// Delete with `forwards` false will backspace, destroying the character
// before the cursor, while Delete with `forwards` true will delete the
// character after (or on) the cursor.
func (t *TextEdit) Delete(forwards bool) {
	if t.ReadOnly {
		return
	}
	t.Dirty = true

	var deletedLine bool // Whether any whole line was deleted (changing the line count)
	cursLine, cursCol := t.cursor.GetLineCol()
	startingLine := cursLine

	if t.selectMode { // If text is selected, delete the whole selection
		t.selectMode = false // Disable selection and prevent infinite loop

		startLine, startCol, endLine, endCol := t.selection.Bounds()
		t.Buffer.Remove(startLine, startCol, endLine, endCol)
		t.setCursor(t.cursor.SetLineCol(startLine, startCol)) // Cursor to start of region

		deletedLine = startLine != endLine
		startingLine = startLine
	} else if forwards { // Delete the character after the cursor
		// If the cursor is not at the end of the last line...
		if cursLine < t.Buffer.Lines()-1 || cursCol < t.Buffer.RunesInLine(cursLine) {
			bytes := t.Buffer.Slice(cursLine, cursCol, cursLine, cursCol) // Character at cursor
			deletedLine = bytes[0] == '\n'

			t.Buffer.Remove(cursLine, cursCol, cursLine, cursCol)
		}
	} else { // Delete the character before the cursor
		// If the cursor is not at the first column of the first line...
		if cursLine > 0 || cursCol > 0 {
			t.setCursor(t.cursor.Left()) // Back up to that character
			cursLine, cursCol = t.cursor.GetLineCol()

			bytes := t.Buffer.Slice(cursLine, cursCol, cursLine, cursCol)
			deletedLine = bytes[0] == '\n'

			t.Buffer.Remove(cursLine, cursCol, cursLine, cursCol)
			startingLine = cursLine
		}
	}

	t.ScrollToCursor()
	t.updateCursorVisibility()

	if deletedLine {
		t.Highlighter.InvalidateLines(startingLine, t.Buffer.Lines()-1)
	} else {
		t.Highlighter.InvalidateLines(startingLine, startingLine)
	}
}

// Insert writes `contents` at the cursor position, overwriting any active
// selection. Line delimiters and tab characters are supported; any other
// control character is inserted verbatim.
func (t *TextEdit) Insert(contents string) {
	if t.ReadOnly {
		return
	}
	t.Dirty = true

	if t.selectMode { // Replace the selection
		t.Delete(true) // The parameter doesn't matter with selection
	}

	var lineInserted bool // True if contents contains a '\n'
	startingLine, _ := t.cursor.GetLineCol()

	runes := []rune(contents)
	for i := 0; i < len(runes); i++ {
		cursLine, cursCol := t.cursor.GetLineCol()

		ch := runes[i]
		switch ch {
		case '\r':
			// If the character after is a \n, then it is a CRLF
			if i+1 < len(runes) && runes[i+1] == '\n' {
				i++ // Consume '\n' after
				t.Buffer.Insert(cursLine, cursCol, []byte{'\n'})
				t.setCursor(t.cursor.Right())
				lineInserted = true
			}
		case '\n':
			t.Buffer.Insert(cursLine, cursCol, []byte{'\n'})
			t.setCursor(t.cursor.Right())
			lineInserted = true
		case '\b':
			t.Delete(false) // Delete the character before the cursor
		case '\t':
			if !t.UseHardTabs { // If this file does not use hard tabs...
				// Insert spaces
				spaces := strings.Repeat(" ", t.TabSize)
				t.Buffer.Insert(cursLine, cursCol, []byte(spaces))
				t.setCursor(t.cursor.SetLineCol(cursLine, cursCol+t.TabSize))
				break
			}
			fallthrough // Append the \t character
		default:
			// Insert character into line
			t.Buffer.Insert(cursLine, cursCol, []byte(string(ch)))
			t.setCursor(t.cursor.Right())
		}
	}

	t.ScrollToCursor()
	t.updateCursorVisibility()

	if lineInserted {
		t.Highlighter.InvalidateLines(startingLine, t.Buffer.Lines()-1)
	} else {
		t.Highlighter.InvalidateLines(startingLine, startingLine)
	}
}

// String returns the entire buffer contents.
func (t *TextEdit) String() string {
	return string(t.Buffer.Bytes())
}

// getTabCountInLineAtCol returns tabs in the given line, before the column
// position, if hard tabs are enabled. Otherwise returns zero. col must be a
// valid column position in the given line.
func (t *TextEdit) getTabCountInLineAtCol(line, col int) int {
	if t.UseHardTabs {
		return t.Buffer.Count(line, 0, line, col, []byte{'\t'})
	}
	return 0
}

// updateCursorVisibility sets the position of the terminal's cursor with the
// cursor of the TextEdit. Shows the cursor only while the TextEdit is focused
// and no selection is active.
func (t *TextEdit) updateCursorVisibility() {
	if t.focused && !t.selectMode {
		gutterWidth := t.getGutterWidth()
		line, col := t.cursor.GetLineCol()
		tabOffset := t.getTabCountInLineAtCol(line, col) * (t.TabSize - 1)
		(*t.screen).ShowCursor(t.x+gutterWidth+col+tabOffset-t.scrollx, t.y+line-t.scrolly)
	}
}

// setCursor moves the cursor and reports the move through CursorMoved.
func (t *TextEdit) setCursor(c buffer.Cursor) {
	t.cursor = c
	if t.CursorMoved != nil {
		line, col := c.GetLineCol()
		t.CursorMoved(line, col)
	}
}

// ScrollToCursor scrolls the view if the cursor would be out of view.
func (t *TextEdit) ScrollToCursor() {
	line, col := t.cursor.GetLineCol()

	// Hard tabs offset the visual position of the cursor
	tabOffset := t.getTabCountInLineAtCol(line, col) * (t.TabSize - 1)

	if line >= t.scrolly+t.height { // If the line is below view...
		t.scrolly = line - t.height + 1 // Scroll just enough to view that line
	} else if line < t.scrolly { // If the line is above view...
		t.scrolly = line
	}

	gutterWidth := t.getGutterWidth()

	if col+tabOffset >= t.scrollx+(t.width-gutterWidth-1) { // Right of view
		t.scrollx = (col + tabOffset) - (t.width - gutterWidth) + 1
	} else if col+tabOffset < t.scrollx { // Left of view
		t.scrollx = col + tabOffset
	}
}

func (t *TextEdit) GetCursor() buffer.Cursor {
	return t.cursor
}

func (t *TextEdit) SetCursor(newCursor buffer.Cursor) {
	t.setCursor(newCursor)
	t.updateCursorVisibility()
}

// GetSelectedBytes returns a byte slice of the region of the buffer that is
// currently selected. Empty if nothing is selected. The slice returned may or
// may not be a copy of the buffer, so do not write to it.
func (t *TextEdit) GetSelectedBytes() []byte {
	if t.selectMode {
		startLine, startCol, endLine, endCol := t.selection.Bounds()
		return t.Buffer.Slice(startLine, startCol, endLine, endCol)
	}
	return []byte{}
}

// selectionContains reports whether the rune at line, col is inside the
// active selection.
func (t *TextEdit) selectionContains(line, col int) bool {
	if !t.selectMode {
		return false
	}
	startLine, startCol, endLine, endCol := t.selection.Bounds()
	if line < startLine || line > endLine {
		return false
	}
	if line == startLine && col < startCol {
		return false
	}
	if line == endLine && col > endCol {
		return false
	}
	return true
}

// startOrGrowSelection extends the selection to the cursor, beginning a new
// selection at the current cursor position when none is active.
func (t *TextEdit) startOrGrowSelection(move func(buffer.Cursor) buffer.Cursor) {
	if !t.selectMode {
		t.selection.Start = t.cursor
		t.selectMode = true
	}
	t.setCursor(move(t.cursor))
	t.selection.End = t.cursor
	t.ScrollToCursor()
}

// Draw renders the TextEdit component along with its line-number gutter.
func (t *TextEdit) Draw(s tcell.Screen) {
	gutterWidth := t.getGutterWidth()
	bufferLines := t.Buffer.Lines()

	selectedStyle := t.theme.GetOrDefault("TextEditSelected")
	currentLineStyle := t.theme.GetOrDefault("TextEditCurrentLine")
	gutterStyle := t.colorscheme.GetStyle(buffer.Column)
	defaultStyle := t.colorscheme.GetStyle(buffer.Default)

	t.Highlighter.UpdateInvalidatedLines(t.scrolly, t.scrolly+t.height-1)

	var tabBytes []byte
	if t.UseHardTabs {
		// Only call Repeat once for each draw in hard tab files
		tabBytes = bytes.Repeat([]byte{' '}, t.TabSize)
	}

	cursLine, _ := t.cursor.GetLineCol()

	for lineY := t.y; lineY < t.y+t.height; lineY++ { // For each line we can draw...
		line := lineY + t.scrolly - t.y // The line number being drawn (starts at zero)

		// The row containing the cursor gets a full-width background band,
		// unless the buffer is read-only or a selection is active.
		rowStyle := defaultStyle
		if line == cursLine && !t.ReadOnly && !t.selectMode {
			rowStyle = currentLineStyle
		}

		lineNumStr := "" // Line number as a string

		if line >= bufferLines { // Line is after the end of the buffer
			DrawRect(s, t.x+gutterWidth, lineY, t.width-gutterWidth, 1, ' ', defaultStyle)
		} else {
			lineNumStr = strconv.Itoa(line + 1)

			origLineBytes := t.Buffer.Line(line)
			lineBytes := origLineBytes // Line to be drawn

			if t.UseHardTabs {
				lineBytes = bytes.ReplaceAll(lineBytes, []byte{'\t'}, tabBytes)
			}

			lineSpans := t.Highlighter.LineSpans(line)
			var lineSpanIdx int

			var byteIdx int // Byte index of lineBytes
			// X offset we draw the next rune at (some runes can be 2 cols wide)
			col := t.x + gutterWidth
			var runeIdx int // Index into lineBytes (as runes) we draw the next character at

			for runeIdx < t.scrollx && byteIdx < len(lineBytes) {
				_, size := utf8.DecodeRune(lineBytes[byteIdx:]) // Respect UTF-8
				byteIdx += size
				runeIdx++
			}

			// origCol converts a rune index of lineBytes into a column of
			// origLineBytes, unaffected by hard tabs becoming spaces.
			origCol := func(idx int) int {
				var col int // new rune idx
				var i int   // byte index
				for idx > 0 {
					r, size := utf8.DecodeRune(origLineBytes[i:])
					if r == '\t' {
						idx -= t.TabSize
					} else {
						idx--
					}
					if idx >= 0 {
						col++
					}
					i += size
				}
				return col
			}

			for col < t.x+t.width { // For each column in view...
				r := ' '  // Rune to draw this iteration
				size := 1 // Size of the rune (in bytes)
				selected := false

				bufCol := origCol(runeIdx)

				if byteIdx < len(lineBytes) { // If we are drawing part of the line contents...
					r, size = utf8.DecodeRune(lineBytes[byteIdx:])
					if r == '\n' || r == '\r' {
						r = ' '
					}
					selected = t.selectionContains(line, bufCol)
				}

				// Determine the style of the rune we draw next:
				currentStyle := rowStyle
				if selected {
					currentStyle = selectedStyle
				} else {
					for lineSpanIdx < len(lineSpans) && bufCol > lineSpans[lineSpanIdx].EndCol {
						lineSpanIdx++ // Passed that span
					}
					if lineSpanIdx < len(lineSpans) {
						span := lineSpans[lineSpanIdx]
						if bufCol >= span.Col && bufCol <= span.EndCol && byteIdx < len(lineBytes) {
							_, bg, _ := rowStyle.Decompose()
							currentStyle = t.colorscheme.GetStyle(span.Syntax).Background(bg)
						}
					}
				}

				s.SetContent(col, lineY, r, nil, currentStyle)

				col += runewidth.RuneWidth(r)
				byteIdx += size
				runeIdx++
			}
		}

		// Right-align the line number in the gutter
		if gutterWidth > 0 {
			gutterStr := strings.Repeat(" ", gutterWidth-len(lineNumStr)-1) + lineNumStr + "│"
			DrawStr(s, t.x, lineY, gutterStr, gutterStyle)
		}
	}

	t.updateCursorVisibility()
}

// SetFocused sets whether the TextEdit is focused. When focused, the terminal
// cursor is shown and updated on every event.
func (t *TextEdit) SetFocused(v bool) {
	t.focused = v
	if v {
		t.updateCursorVisibility()
	} else {
		(*t.screen).HideCursor()
	}
}

// HandleEvent allows the TextEdit to handle `event` if it chooses, returns
// whether the TextEdit handled the event.
func (t *TextEdit) HandleEvent(event tcell.Event) bool {
	switch ev := event.(type) {
	case *tcell.EventKey:
		switch ev.Key() {
		// Cursor movement
		case tcell.KeyUp:
			if ev.Modifiers()&tcell.ModShift != 0 {
				t.startOrGrowSelection(buffer.Cursor.Up)
			} else {
				t.selectMode = false
				t.SetCursor(t.cursor.Up())
				t.ScrollToCursor()
			}
		case tcell.KeyDown:
			if ev.Modifiers()&tcell.ModShift != 0 {
				t.startOrGrowSelection(buffer.Cursor.Down)
			} else {
				t.selectMode = false
				t.SetCursor(t.cursor.Down())
				t.ScrollToCursor()
			}
		case tcell.KeyLeft:
			if ev.Modifiers()&tcell.ModShift != 0 {
				t.startOrGrowSelection(buffer.Cursor.Left)
			} else {
				t.selectMode = false
				t.SetCursor(t.cursor.Left())
				t.ScrollToCursor()
			}
		case tcell.KeyRight:
			if ev.Modifiers()&tcell.ModShift != 0 {
				t.startOrGrowSelection(buffer.Cursor.Right)
			} else {
				t.selectMode = false
				t.SetCursor(t.cursor.Right())
				t.ScrollToCursor()
			}
		case tcell.KeyHome:
			cursLine, _ := t.cursor.GetLineCol()
			t.SetCursor(t.cursor.SetLineCol(cursLine, 0))
			t.ScrollToCursor()
		case tcell.KeyEnd:
			cursLine, _ := t.cursor.GetLineCol()
			t.SetCursor(t.cursor.SetLineCol(cursLine, math.MaxInt32)) // Max column
			t.ScrollToCursor()
		case tcell.KeyPgUp:
			_, cursCol := t.cursor.GetLineCol()
			t.SetCursor(t.cursor.SetLineCol(t.scrolly-t.height, cursCol)) // Go a page up
			t.ScrollToCursor()
		case tcell.KeyPgDn:
			_, cursCol := t.cursor.GetLineCol()
			t.SetCursor(t.cursor.SetLineCol(t.scrolly+t.height*2-1, cursCol)) // Go a page down
			t.ScrollToCursor()

		// Deleting
		case tcell.KeyBackspace, tcell.KeyBackspace2:
			t.Delete(false)
		case tcell.KeyDelete:
			t.Delete(true)

		// Other control
		case tcell.KeyTab:
			t.Insert("\t") // (can translate to spaces)
		case tcell.KeyEnter:
			t.Insert("\n")

		// Inserting
		case tcell.KeyRune:
			t.Insert(string(ev.Rune())) // Insert rune
		default:
			return false
		}
		return true
	}
	return false
}
