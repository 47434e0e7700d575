package ui

import (
	"os"
	"strings"

	"github.com/gdamore/tcell/v2"
)

// A FileSelectorDialog prompts for one or more file paths. It can be used to
// open zero or more existing files, or to name a single new file (for saving).
type FileSelectorDialog struct {
	MustExist           bool           // Whether the dialog should have a user select an existing file.
	FilesChosenCallback func([]string) // Receives the file paths entered.
	CancelCallback      func()         // Called when the dialog is dismissed.

	title string

	tabOrder    []Component
	tabOrderIdx int

	inputField    *InputField
	confirmButton *Button
	cancelButton  *Button

	baseComponent
}

func NewFileSelectorDialog(screen *tcell.Screen, title string, mustExist bool, theme *Theme, filesChosenCallback func([]string), cancelCallback func()) *FileSelectorDialog {
	dialog := &FileSelectorDialog{
		MustExist:           mustExist,
		FilesChosenCallback: filesChosenCallback,
		CancelCallback:      cancelCallback,
		title:               title,
		baseComponent:       baseComponent{theme: theme},
	}

	dialog.inputField = NewInputField(screen, "", theme)
	dialog.confirmButton = NewButton("Confirm", theme, dialog.onConfirm)
	dialog.cancelButton = NewButton("Cancel", theme, cancelCallback)
	dialog.tabOrder = []Component{dialog.inputField, dialog.cancelButton, dialog.confirmButton}

	dialog.SetSize(dialog.GetMinSize())

	return dialog
}

// onConfirm is a callback called by the confirm button.
func (d *FileSelectorDialog) onConfirm() {
	if d.FilesChosenCallback == nil {
		return
	}
	files := strings.Split(d.inputField.Text, ",") // Split input by commas
	for i := range files {
		files[i] = strings.TrimSpace(files[i])
	}
	if d.MustExist {
		for _, f := range files {
			if _, err := os.Stat(f); err != nil {
				return // Keep the dialog open until every path exists
			}
		}
	}
	d.FilesChosenCallback(files)
}

func (d *FileSelectorDialog) SetTitle(title string) {
	d.title = title
}

func (d *FileSelectorDialog) Draw(s tcell.Screen) {
	DrawWindow(s, d.x, d.y, d.width, d.height, d.title, d.theme)

	// Button positions depend on size information that may not be available
	// at SetPos() time.
	btnWidth, _ := d.confirmButton.GetSize()
	d.confirmButton.SetPos(d.x+d.width-btnWidth-1, d.y+4) // Right, bottom
	d.cancelButton.SetPos(d.x+1, d.y+4)                   // Left, bottom

	d.inputField.Draw(s)
	d.confirmButton.Draw(s)
	d.cancelButton.Draw(s)
}

func (d *FileSelectorDialog) SetFocused(v bool) {
	d.focused = v
	d.tabOrder[d.tabOrderIdx].SetFocused(v)
}

func (d *FileSelectorDialog) SetTheme(theme *Theme) {
	d.theme = theme
	for _, comp := range d.tabOrder {
		comp.SetTheme(theme)
	}
}

func (d *FileSelectorDialog) SetPos(x, y int) {
	d.x, d.y = x, y
	d.inputField.SetPos(d.x+1, d.y+2)
}

func (d *FileSelectorDialog) GetMinSize() (int, int) {
	return max(len(d.title)+2, 30), 6
}

func (d *FileSelectorDialog) SetSize(width, height int) {
	minX, minY := d.GetMinSize()
	d.width, d.height = max(width, minX), max(height, minY)
	d.inputField.SetSize(d.width-2, 1)
}

func (d *FileSelectorDialog) HandleEvent(event tcell.Event) bool {
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
			if d.CancelCallback != nil {
				d.CancelCallback()
			}
			return true
		case tcell.KeyEnter:
			if d.tabOrder[d.tabOrderIdx] == d.inputField {
				d.onConfirm()
				return true
			}
		}
	}
	return d.tabOrder[d.tabOrderIdx].HandleEvent(event)
}
