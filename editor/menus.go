package editor

import (
	"fmt"
	"os"

	"github.com/w3xpt/pyed/log"
	"github.com/w3xpt/pyed/ui"
)

func (a *App) buildMenuBar() {
	bar := ui.NewMenuBar(&a.theme)

	fileMenu := ui.NewMenu("File", 0, &a.theme)
	fileMenu.AddItems([]ui.Item{
		&ui.ItemEntry{Name: "New", QuickChar: 0, Shortcut: "Ctrl+N", Callback: a.newFile},
		&ui.ItemEntry{Name: "Open...", QuickChar: 0, Shortcut: "Ctrl+O", Callback: a.openFile},
		&ui.ItemEntry{Name: "Save", QuickChar: 0, Shortcut: "Ctrl+S", Callback: func() { a.save(nil) }},
		&ui.ItemEntry{Name: "Save As...", QuickChar: 5, Callback: func() { a.saveAs(nil) }},
		&ui.ItemSeparator{},
		&ui.ItemEntry{Name: "Exit", QuickChar: 1, Shortcut: "Ctrl+Q", Callback: a.exit},
	})

	editMenu := ui.NewMenu("Edit", 0, &a.theme)
	editMenu.AddItems([]ui.Item{
		&ui.ItemEntry{Name: "Cut", QuickChar: 2, Shortcut: "Ctrl+X", Callback: a.cut},
		&ui.ItemEntry{Name: "Copy", QuickChar: 0, Shortcut: "Ctrl+C", Callback: a.copySelection},
		&ui.ItemEntry{Name: "Paste", QuickChar: 0, Shortcut: "Ctrl+V", Callback: a.paste},
	})

	viewMenu := ui.NewMenu("View", 0, &a.theme)
	viewMenu.AddItems([]ui.Item{
		&ui.ItemEntry{Name: "Go To Line...", QuickChar: 0, Shortcut: "Ctrl+G", Callback: a.gotoLine},
		&ui.ItemEntry{Name: "Toggle Output", QuickChar: 7, Callback: func() {
			a.showOutput = !a.showOutput
			a.layout()
		}},
	})

	a.runItem = &ui.ItemEntry{Name: "Run Script", QuickChar: 0, Shortcut: "F5", Callback: a.runScript}
	runMenu := ui.NewMenu("Run", 0, &a.theme)
	runMenu.AddItems([]ui.Item{a.runItem})

	helpMenu := ui.NewMenu("Help", 0, &a.theme)
	helpMenu.AddItems([]ui.Item{
		&ui.ItemEntry{Name: "User's Guide", QuickChar: 0, Shortcut: "F1", Callback: a.showUserGuide},
		&ui.ItemSeparator{},
		&ui.ItemEntry{Name: "About", QuickChar: 0, Callback: a.showAbout},
	})

	bar.AddMenu(fileMenu)
	bar.AddMenu(editMenu)
	bar.AddMenu(viewMenu)
	bar.AddMenu(runMenu)
	bar.AddMenu(helpMenu)

	a.bar = bar
}

func (a *App) exit() {
	a.maybeSave(func() {
		a.quit = true
	})
}

// newFile replaces the buffer with an empty, unnamed document, prompting to
// save any unsaved changes first.
func (a *App) newFile() {
	a.maybeSave(func() {
		a.stopWatcher()
		a.textEdit.FilePath = ""
		a.textEdit.SetContents(nil)
		a.textEdit.Dirty = false
		a.status.FileName = displayName("")
		a.status.Message = "New file"
	})
}

// openFile prompts for a path and loads it into the buffer.
func (a *App) openFile() {
	a.maybeSave(func() {
		dialog := ui.NewFileSelectorDialog(
			&a.screen,
			"Open file",
			true,
			&a.theme,
			func(paths []string) {
				a.closeDialog()
				if len(paths) == 0 {
					return
				}
				path := paths[0]

				contents, err := os.ReadFile(path)
				if err != nil {
					a.showError(fmt.Sprintf("Could not open file: %v", err))
					return
				}

				a.textEdit.FilePath = path
				a.textEdit.SetContents(contents)
				a.textEdit.Dirty = false
				a.status.FileName = displayName(path)
				a.status.Message = fmt.Sprintf("Opened %s", path)
				a.watchFile(path)
				log.Info(log.CatFile, "opened file", "path", path, "bytes", len(contents))
			},
			a.closeDialog,
		)
		a.openDialog(dialog)
	})
}

// save writes the buffer to its file, asking for a path first if the
// document has never been saved. onDone, when non-nil, is called with
// whether the file ended up on disk.
func (a *App) save(onDone func(saved bool)) {
	if a.textEdit.FilePath == "" {
		a.saveAs(onDone)
		return
	}
	a.writeTo(a.textEdit.FilePath, onDone)
}

// saveAs prompts for a path and writes the buffer there.
func (a *App) saveAs(onDone func(saved bool)) {
	dialog := ui.NewFileSelectorDialog(
		&a.screen,
		"Save file as",
		false,
		&a.theme,
		func(paths []string) {
			a.closeDialog()
			if len(paths) == 0 {
				if onDone != nil {
					onDone(false)
				}
				return
			}
			a.writeTo(paths[0], onDone)
		},
		func() {
			a.closeDialog()
			if onDone != nil {
				onDone(false)
			}
		},
	)
	a.openDialog(dialog)
}

func (a *App) writeTo(path string, onDone func(saved bool)) {
	contents := a.textEdit.Buffer.Bytes()

	// The watcher is paused across our own write and rearmed afterwards,
	// so a save is not reported back as an external modification.
	a.stopWatcher()
	if err := os.WriteFile(path, contents, 0644); err != nil {
		log.ErrorErr(log.CatFile, "saving file", err, "path", path)
		a.showError(fmt.Sprintf("Could not save file: %v", err))
		if a.textEdit.FilePath != "" {
			a.watchFile(a.textEdit.FilePath)
		}
		if onDone != nil {
			onDone(false)
		}
		return
	}

	if path != a.textEdit.FilePath {
		a.textEdit.SetFilePath(path)
	}
	a.watchFile(path)
	a.textEdit.Dirty = false
	a.status.FileName = displayName(path)
	a.status.Message = fmt.Sprintf("Saved to %s", path)
	log.Info(log.CatFile, "saved file", "path", path, "bytes", len(contents))

	if onDone != nil {
		onDone(true)
	}
}

// maybeSave runs onProceed immediately when there are no unsaved changes.
// Otherwise it asks whether to save them first; choosing Cancel leaves
// everything as it was and onProceed never runs.
func (a *App) maybeSave(onProceed func()) {
	if !a.textEdit.Dirty {
		onProceed()
		return
	}

	dialog := ui.NewMessageDialog(
		appName,
		"The document has been modified.\nDo you want to save your changes?",
		ui.MessageKindWarning,
		[]string{"Save", "Discard", "Cancel"},
		&a.theme,
		func(choice string) {
			a.closeDialog()
			switch choice {
			case "Save":
				a.save(func(saved bool) {
					if saved {
						onProceed()
					}
				})
			case "Discard":
				onProceed()
			}
		},
	)
	a.openDialog(dialog)
}

func (a *App) cut() {
	selected := string(a.textEdit.GetSelectedBytes())
	if selected != "" {
		a.textEdit.Delete(false) // Removes the whole selection
		if err := clipWrite(selected); err != nil {
			log.ErrorErr(log.CatUI, "writing clipboard", err)
		}
	}
}

func (a *App) copySelection() {
	selected := string(a.textEdit.GetSelectedBytes())
	if selected != "" {
		if err := clipWrite(selected); err != nil {
			log.ErrorErr(log.CatUI, "writing clipboard", err)
		}
	}
}

func (a *App) paste() {
	contents, err := clipRead()
	if err != nil {
		log.ErrorErr(log.CatUI, "reading clipboard", err)
		return
	}
	a.textEdit.Insert(contents)
}

// gotoLine shows the go-to-line dialog. Out-of-range lines clamp to the
// buffer.
func (a *App) gotoLine() {
	dialog := newGotoLineDialog(&a.screen, &a.theme,
		func(line int) {
			a.closeDialog()
			a.changeFocus(a.textEdit)
			a.barFocused = false

			cursor := a.textEdit.GetCursor()
			a.textEdit.SetCursor(cursor.SetLineCol(line-1, 0))
			a.textEdit.ScrollToCursor()
		},
		a.closeDialog,
	)
	a.openDialog(dialog)
}

func (a *App) showError(message string) {
	dialog := ui.NewMessageDialog("Error", message, ui.MessageKindError, nil, &a.theme, func(string) {
		a.closeDialog()
	})
	a.openDialog(dialog)
}

func (a *App) showAbout() {
	message := appName + "\n\n" +
		"A simple yet powerful code editor for Python 3.\n" +
		"Provides syntax highlighting, line numbering,\n" +
		"and direct code execution."
	dialog := ui.NewMessageDialog("About", message, ui.MessageKindNormal, nil, &a.theme, func(string) {
		a.closeDialog()
	})
	a.openDialog(dialog)
}

func (a *App) showUserGuide() {
	message := "File: New Ctrl+N, Open Ctrl+O, Save Ctrl+S.\n" +
		"Edit: Cut Ctrl+X, Copy Ctrl+C, Paste Ctrl+V.\n" +
		"View: Go To Line Ctrl+G.\n" +
		"Run: F5 runs the file with the configured\n" +
		"interpreter. The file is saved first; output\n" +
		"and errors appear in the Output panel.\n" +
		"Escape toggles the menu bar."
	dialog := ui.NewMessageDialog("User's Guide", message, ui.MessageKindNormal, nil, &a.theme, func(string) {
		a.closeDialog()
	})
	a.openDialog(dialog)
}
