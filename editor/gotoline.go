package editor

import (
	"strconv"
	"strings"

	"github.com/gdamore/tcell/v2"

	"github.com/w3xpt/pyed/ui"
)

// gotoLineDialog asks for a one-based line number and reports it through
// lineChosen.
type gotoLineDialog struct {
	lineChosen func(int)

	x, y          int
	width, height int
	focused       bool
	theme         *ui.Theme

	tabOrder    []ui.Component
	tabOrderIdx int

	inputField   *ui.InputField
	acceptButton *ui.Button
	cancelButton *ui.Button
}

func newGotoLineDialog(s *tcell.Screen, theme *ui.Theme, lineChosen func(int), cancel func()) *gotoLineDialog {
	dialog := &gotoLineDialog{
		lineChosen: lineChosen,
		theme:      theme,
	}

	dialog.inputField = ui.NewInputField(s, "", theme)
	dialog.acceptButton = ui.NewButton("Go", theme, dialog.onConfirm)
	dialog.cancelButton = ui.NewButton("Cancel", theme, cancel)
	dialog.tabOrder = []ui.Component{dialog.inputField, dialog.cancelButton, dialog.acceptButton}

	return dialog
}

func (d *gotoLineDialog) onConfirm() {
	if d.lineChosen != nil && len(d.inputField.Text) > 0 {
		num, err := strconv.Atoi(strings.TrimSpace(d.inputField.Text))
		if err == nil {
			d.lineChosen(num)
		}
	}
}

func (d *gotoLineDialog) Draw(s tcell.Screen) {
	ui.DrawWindow(s, d.x, d.y, d.width, d.height, "Go to line", d.theme)

	btnWidth, _ := d.acceptButton.GetSize()
	d.acceptButton.SetPos(d.x+d.width-btnWidth-1, d.y+4)

	d.inputField.Draw(s)
	d.acceptButton.Draw(s)
	d.cancelButton.Draw(s)
}

func (d *gotoLineDialog) SetFocused(v bool) {
	d.focused = v
	d.tabOrder[d.tabOrderIdx].SetFocused(v)
}

func (d *gotoLineDialog) SetTheme(theme *ui.Theme) {
	d.theme = theme
	d.inputField.SetTheme(theme)
	d.acceptButton.SetTheme(theme)
	d.cancelButton.SetTheme(theme)
}

func (d *gotoLineDialog) GetPos() (int, int) {
	return d.x, d.y
}

func (d *gotoLineDialog) SetPos(x, y int) {
	d.x, d.y = x, y
	d.inputField.SetPos(d.x+1, d.y+2)
	d.cancelButton.SetPos(d.x+1, d.y+4)
}

func (d *gotoLineDialog) GetMinSize() (int, int) {
	return 24, 6
}

func (d *gotoLineDialog) GetSize() (int, int) {
	return d.width, d.height
}

func (d *gotoLineDialog) SetSize(width, height int) {
	minX, minY := d.GetMinSize()
	d.width, d.height = max(width, minX), max(height, minY)

	d.inputField.SetSize(d.width-2, 1)
}

func (d *gotoLineDialog) HandleEvent(event tcell.Event) bool {
	switch ev := event.(type) {
	case *tcell.EventKey:
		switch ev.Key() {
		case tcell.KeyTab:
			d.tabOrder[d.tabOrderIdx].SetFocused(false)

			d.tabOrderIdx++
			if d.tabOrderIdx >= len(d.tabOrder) {
				d.tabOrderIdx = 0
			}

			d.tabOrder[d.tabOrderIdx].SetFocused(true)

			return true
		case tcell.KeyEsc:
			if d.cancelButton.Callback != nil {
				d.cancelButton.Callback()
			}
			return true
		case tcell.KeyEnter:
			if _, onInput := d.tabOrder[d.tabOrderIdx].(*ui.InputField); onInput {
				d.onConfirm()
				return true
			}
		}
	}
	return d.tabOrder[d.tabOrderIdx].HandleEvent(event)
}
