package ui

import (
	"github.com/gdamore/tcell/v2"
)

// An InputField is a single-line text input box.
type InputField struct {
	Text string

	cursorPos int // Rune index of the cursor within Text
	scrollPos int
	screen    *tcell.Screen

	baseComponent
}

func NewInputField(screen *tcell.Screen, text string, theme *Theme) *InputField {
	return &InputField{
		Text:          text,
		screen:        screen,
		baseComponent: baseComponent{theme: theme},
	}
}

func (f *InputField) GetCursorPos() int {
	return f.cursorPos
}

// SetCursorPos sets the cursor position offset. Offset is clamped to possible
// values, and the InputField is scrolled to show the new cursor position.
func (f *InputField) SetCursorPos(offset int) {
	runes := []rune(f.Text)
	offset = Clamp(offset, 0, len(runes))

	if offset >= f.scrollPos+f.width-2 { // Cursor out of view on the right...
		f.scrollPos = offset - f.width + 2
	} else if offset < f.scrollPos { // Out of view on the left...
		f.scrollPos = offset
	}

	f.cursorPos = offset
	if f.focused {
		(*f.screen).ShowCursor(f.x+offset-f.scrollPos+1, f.y)
	}
}

// Insert places str at the cursor position and advances the cursor.
func (f *InputField) Insert(str string) {
	runes := []rune(f.Text)
	out := make([]rune, 0, len(runes)+len(str))
	out = append(out, runes[:f.cursorPos]...)
	out = append(out, []rune(str)...)
	out = append(out, runes[f.cursorPos:]...)
	f.Text = string(out)
	f.SetCursorPos(f.cursorPos + len([]rune(str)))
}

// Delete removes the rune after the cursor when forward is true, or the rune
// before the cursor otherwise.
func (f *InputField) Delete(forward bool) {
	runes := []rune(f.Text)
	if forward {
		if f.cursorPos < len(runes) {
			f.Text = string(append(runes[:f.cursorPos], runes[f.cursorPos+1:]...))
			f.SetCursorPos(f.cursorPos) // Re-clamp and update the terminal cursor
		}
	} else {
		if f.cursorPos > 0 {
			f.Text = string(append(runes[:f.cursorPos-1], runes[f.cursorPos:]...))
			f.SetCursorPos(f.cursorPos - 1)
		}
	}
}

func (f *InputField) Draw(s tcell.Screen) {
	style := f.theme.GetOrDefault("InputField")

	DrawRect(s, f.x, f.y, f.width, f.height, ' ', style) // Draw background
	s.SetContent(f.x, f.y, '[', nil, style)
	s.SetContent(f.x+f.width-1, f.y, ']', nil, style)

	runes := []rune(f.Text)
	if len(runes) > 0 {
		end := f.scrollPos + min(len(runes)-f.scrollPos, f.width-2)
		DrawStr(s, f.x+1, f.y, string(runes[f.scrollPos:end]), style)
	}

	f.SetCursorPos(f.cursorPos) // Update the terminal cursor
}

func (f *InputField) SetFocused(v bool) {
	f.focused = v
	if v {
		f.SetCursorPos(f.cursorPos)
	} else {
		(*f.screen).HideCursor()
	}
}

func (f *InputField) GetMinSize() (int, int) {
	return 4, 1
}

func (f *InputField) HandleEvent(event tcell.Event) bool {
	switch ev := event.(type) {
	case *tcell.EventKey:
		switch ev.Key() {
		case tcell.KeyLeft:
			f.SetCursorPos(f.cursorPos - 1)
		case tcell.KeyRight:
			f.SetCursorPos(f.cursorPos + 1)
		case tcell.KeyHome:
			f.SetCursorPos(0)
		case tcell.KeyEnd:
			f.SetCursorPos(len([]rune(f.Text)))
		case tcell.KeyBackspace, tcell.KeyBackspace2:
			f.Delete(false)
		case tcell.KeyDelete:
			f.Delete(true)
		case tcell.KeyRune:
			f.Insert(string(ev.Rune()))
		default:
			return false
		}
		return true
	}
	return false
}
