package ui

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"
)

// StatusBar is a one-row bar at the bottom of the screen. The left side shows
// a transient message, the right side shows the cursor position and the name
// of the file being edited.
type StatusBar struct {
	Message  string
	FileName string
	Line     int // Zero-based cursor line
	Col      int // Zero-based cursor column

	baseComponent
}

func NewStatusBar(theme *Theme) *StatusBar {
	return &StatusBar{
		baseComponent: baseComponent{theme: theme},
	}
}

// SetCursor updates the cursor position shown on the right of the bar.
func (b *StatusBar) SetCursor(line, col int) {
	b.Line = line
	b.Col = col
}

func (b *StatusBar) Draw(s tcell.Screen) {
	style := b.theme.GetOrDefault("StatusBar")
	DrawRect(s, b.x, b.y, b.width, 1, ' ', style)

	right := fmt.Sprintf("Ln %d, Col %d", b.Line+1, b.Col+1)
	if b.FileName != "" {
		right += "  " + b.FileName
	}
	right += " "
	rightWidth := runewidth.StringWidth(right)
	if rightWidth < b.width {
		DrawStr(s, b.x+b.width-rightWidth, b.y, right, style)
	}

	if b.Message != "" {
		msg := " " + b.Message
		avail := b.width - rightWidth - 1
		if avail > 0 {
			DrawStr(s, b.x, b.y, runewidth.Truncate(msg, avail, "…"), style)
		}
	}
}

func (b *StatusBar) SetFocused(focused bool) {
	b.focused = focused
}

func (b *StatusBar) HandleEvent(event tcell.Event) bool {
	return false
}
