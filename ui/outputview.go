package ui

import (
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"
)

// OutputKind classifies a chunk appended to an OutputView, selecting the
// style it is rendered with.
type OutputKind uint8

const (
	OutputStdout OutputKind = iota
	OutputStderr
	OutputNotice
)

type outputSegment struct {
	text string
	kind OutputKind
}

// OutputView is a read-only view of process output. Chunks appended to it
// are split on newlines into styled lines; a chunk without a trailing
// newline leaves a partial last line that the next chunk continues.
type OutputView struct {
	lines   [][]outputSegment
	partial bool // Whether the last line is still being appended to
	scrolly int

	baseComponent
}

func NewOutputView(theme *Theme) *OutputView {
	return &OutputView{
		baseComponent: baseComponent{theme: theme},
	}
}

// Append adds text to the view. The text may contain any number of line
// endings, including none. CRLF line endings are normalized to LF.
func (v *OutputView) Append(text string, kind OutputKind) {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	for text != "" {
		line := text
		newline := false
		if idx := strings.IndexByte(text, '\n'); idx >= 0 {
			line, text = text[:idx], text[idx+1:]
			newline = true
		} else {
			text = ""
		}

		if !v.partial {
			v.lines = append(v.lines, nil)
			v.partial = true
		}
		if line != "" {
			last := len(v.lines) - 1
			v.lines[last] = append(v.lines[last], outputSegment{text: line, kind: kind})
		}
		if newline {
			v.partial = false
		}
	}
	v.ScrollToEnd()
}

// AppendLine adds text followed by a line ending.
func (v *OutputView) AppendLine(text string, kind OutputKind) {
	v.Append(text+"\n", kind)
}

// Clear removes all output from the view.
func (v *OutputView) Clear() {
	v.lines = nil
	v.partial = false
	v.scrolly = 0
}

// Lines returns how many lines of output the view holds.
func (v *OutputView) Lines() int {
	return len(v.lines)
}

// ScrollToEnd scrolls the view so the last line of output is visible.
func (v *OutputView) ScrollToEnd() {
	v.scrolly = max(0, len(v.lines)-v.height)
}

func (v *OutputView) styleFor(kind OutputKind) tcell.Style {
	switch kind {
	case OutputStderr:
		return v.theme.GetOrDefault("OutputError")
	case OutputNotice:
		return v.theme.GetOrDefault("OutputNotice")
	default:
		return v.theme.GetOrDefault("Output")
	}
}

func (v *OutputView) Draw(s tcell.Screen) {
	normalStyle := v.theme.GetOrDefault("Output")
	DrawRect(s, v.x, v.y, v.width, v.height, ' ', normalStyle)

	for row := 0; row < v.height; row++ {
		line := v.scrolly + row
		if line >= len(v.lines) {
			break
		}
		col := v.x
		for _, seg := range v.lines[line] {
			style := v.styleFor(seg.kind)
			for _, r := range seg.text {
				if col >= v.x+v.width {
					break
				}
				s.SetContent(col, v.y+row, r, nil, style)
				col += runewidth.RuneWidth(r)
			}
		}
	}
}

func (v *OutputView) SetFocused(focused bool) {
	v.focused = focused
}

func (v *OutputView) HandleEvent(event tcell.Event) bool {
	switch ev := event.(type) {
	case *tcell.EventKey:
		switch ev.Key() {
		case tcell.KeyUp:
			v.scrolly = max(0, v.scrolly-1)
		case tcell.KeyDown:
			v.scrolly = min(max(0, len(v.lines)-v.height), v.scrolly+1)
		case tcell.KeyPgUp:
			v.scrolly = max(0, v.scrolly-v.height)
		case tcell.KeyPgDn:
			v.scrolly = min(max(0, len(v.lines)-v.height), v.scrolly+v.height)
		case tcell.KeyHome:
			v.scrolly = 0
		case tcell.KeyEnd:
			v.ScrollToEnd()
		default:
			return false
		}
		return true
	}
	return false
}
