// Package editor assembles the terminal UI: the menu bar, the text editor
// with its gutter and highlighter, the output panel, and the status bar.
package editor

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/gdamore/tcell/v2"

	"github.com/w3xpt/pyed/config"
	"github.com/w3xpt/pyed/log"
	"github.com/w3xpt/pyed/runner"
	"github.com/w3xpt/pyed/ui"
	"github.com/w3xpt/pyed/ui/buffer"
	"github.com/w3xpt/pyed/watch"
)

const appName = "Python Code Editor"

// App is the running editor application. Create one with New and drive it
// with Run.
type App struct {
	cfg    config.Config
	screen tcell.Screen
	theme  ui.Theme
	colors buffer.Colorscheme

	bar      *ui.MenuBar
	textEdit *ui.TextEdit
	output   *ui.OutputView
	status   *ui.StatusBar
	runItem  *ui.ItemEntry

	dialog     ui.Component // Modal dialog, drawn over everything when non-nil
	focused    ui.Component
	barFocused bool
	showOutput bool

	run         runner.Runner
	watcher     *watch.Watcher
	initialPath string

	width, height int
	quit          bool
}

// New builds the application but does not touch the terminal yet.
func New(cfg config.Config, filePath string) *App {
	return &App{
		cfg:         cfg,
		theme:       ui.DefaultTheme,
		colors:      makeColorscheme(cfg.Colors),
		showOutput:  true,
		initialPath: filePath,
	}
}

// Run initializes the terminal, runs the event loop, and restores the
// terminal when the loop exits.
func (a *App) Run() error {
	if err := clipInitialize(); err != nil {
		log.Warn(log.CatUI, "system clipboard unavailable, using internal", "error", err)
	}

	s, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("creating screen: %w", err)
	}
	if err := s.Init(); err != nil {
		return fmt.Errorf("initializing screen: %w", err)
	}
	defer s.Fini() // Useful for handling panics

	var contents []byte
	path := a.initialPath
	if path != "" {
		contents, err = os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("opening %s: %w", path, err)
		}
	}

	a.initUI(s, contents)

	if path != "" {
		a.watchFile(path)
	}
	defer a.stopWatcher()

	for !a.quit {
		a.draw()

		switch ev := s.PollEvent().(type) {
		case *tcell.EventResize:
			a.width, a.height = s.Size()
			a.layout()
			s.Sync() // Redraw everything

		case *runnerEvent:
			a.handleRunnerEvent(ev.ev)

		case *fileChangedEvent:
			a.handleFileChanged()

		case *tcell.EventKey:
			a.handleKey(ev)
		}
	}
	return nil
}

// initUI builds every component against an initialized screen and lays the
// application out for its current size.
func (a *App) initUI(s tcell.Screen, contents []byte) {
	a.screen = s
	a.width, a.height = s.Size()

	a.textEdit = ui.NewTextEdit(&a.screen, a.initialPath, contents, &a.colors, &a.theme)
	a.textEdit.TabSize = a.cfg.TabSize
	a.textEdit.UseHardTabs = a.cfg.UseTabs
	a.output = ui.NewOutputView(&a.theme)
	a.status = ui.NewStatusBar(&a.theme)
	a.status.FileName = displayName(a.initialPath)
	a.status.Message = "Ready"
	a.textEdit.CursorMoved = a.status.SetCursor
	a.buildMenuBar()

	a.changeFocus(a.textEdit)
	a.layout()
}

func (a *App) handleKey(ev *tcell.EventKey) {
	if a.dialog != nil {
		a.dialog.HandleEvent(ev)
		return
	}

	// On Escape, focus moves between the editor and the menu bar.
	if ev.Key() == tcell.KeyEscape {
		a.barFocused = !a.barFocused
		if a.barFocused {
			a.changeFocus(a.bar)
		} else {
			a.changeFocus(a.textEdit)
		}
		return
	}

	// Menu shortcuts are live regardless of focus.
	if a.bar.HandleEvent(ev) {
		return
	}
	if a.focused != a.bar {
		a.focused.HandleEvent(ev)
	}
}

func (a *App) changeFocus(to ui.Component) {
	if a.focused != nil {
		a.focused.SetFocused(false)
	}
	a.focused = to
	to.SetFocused(true)
}

// openDialog makes d modal until closeDialog is called.
func (a *App) openDialog(d ui.Component) {
	a.dialog = d
	a.layout()
	a.changeFocus(d)
}

func (a *App) closeDialog() {
	a.dialog = nil
	if a.barFocused {
		a.changeFocus(a.bar)
	} else {
		a.changeFocus(a.textEdit)
	}
}

// layout positions every component for the current screen size.
func (a *App) layout() {
	a.bar.SetPos(0, 0)
	a.bar.SetSize(a.width, 1)

	outputH := 0
	if a.showOutput {
		outputH = max(3, a.height/4)
	}

	// Menu bar, editor, separator + output panel, status bar.
	editH := a.height - 2 - outputH
	if a.showOutput {
		editH-- // Separator row
	}
	a.textEdit.SetPos(0, 1)
	a.textEdit.SetSize(a.width, max(1, editH))

	if a.showOutput {
		a.output.SetPos(0, 1+editH+1)
		a.output.SetSize(a.width, outputH)
	}

	a.status.SetPos(0, a.height-1)
	a.status.SetSize(a.width, 1)

	if a.dialog != nil {
		w, h := a.dialog.GetMinSize()
		a.dialog.SetSize(w, h)
		a.dialog.SetPos(a.width/2-w/2, a.height/2-h/2) // Center
	}
}

func (a *App) draw() {
	s := a.screen
	s.Clear()

	a.textEdit.Draw(s)
	if a.showOutput {
		// Separator row with the panel title
		_, editH := a.textEdit.GetSize()
		sepY := 1 + editH
		sepStyle := a.theme.GetOrDefault("StatusBar")
		ui.DrawRect(s, 0, sepY, a.width, 1, '─', sepStyle)
		ui.DrawStr(s, 1, sepY, " Output ", sepStyle)
		a.output.Draw(s)
	}
	a.status.Draw(s)
	a.bar.Draw(s) // Drawn last so open menus overlap the editor

	if a.dialog != nil {
		a.dialog.Draw(s)
	}

	s.Show()
}

// displayName returns the name shown for path in the status bar and dialogs.
func displayName(path string) string {
	if path == "" {
		return "Untitled.py"
	}
	return filepath.Base(path)
}

// watchFile starts watching path for external modification, replacing any
// previous watcher.
func (a *App) watchFile(path string) {
	a.stopWatcher()

	w, err := watch.New(watch.DefaultConfig(path))
	if err != nil {
		log.ErrorErr(log.CatWatch, "creating watcher", err, "path", path)
		return
	}
	changes, err := w.Start()
	if err != nil {
		log.ErrorErr(log.CatWatch, "starting watcher", err, "path", path)
		return
	}
	a.watcher = w

	go func() {
		for range changes {
			_ = a.screen.PostEvent(newFileChangedEvent())
		}
	}()
}

func (a *App) stopWatcher() {
	if a.watcher != nil {
		_ = a.watcher.Stop()
		a.watcher = nil
	}
}

// handleFileChanged reacts to the open file being modified on disk. An
// unmodified buffer is reloaded automatically when configured to; otherwise
// a notice is shown so edits are not silently clobbered.
func (a *App) handleFileChanged() {
	path := a.textEdit.FilePath
	if path == "" {
		return
	}
	log.Info(log.CatWatch, "file changed on disk", "path", path)

	if a.cfg.AutoReload && !a.textEdit.Dirty {
		contents, err := os.ReadFile(path)
		if err != nil {
			log.ErrorErr(log.CatFile, "reloading changed file", err, "path", path)
			return
		}
		a.textEdit.SetContents(contents)
		a.status.Message = fmt.Sprintf("Reloaded %s", displayName(path))
		return
	}

	a.status.Message = fmt.Sprintf("%s changed on disk", displayName(path))
	a.output.AppendLine(fmt.Sprintf("--- %s was modified outside the editor ---", path), ui.OutputNotice)
}
