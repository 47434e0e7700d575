package editor

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/w3xpt/pyed/config"
)

// newTestApp builds the application against a simulation screen instead of a
// real terminal so the modal flows can be driven with synthetic key events.
func newTestApp(t *testing.T, cfg config.Config, path string, contents []byte) *App {
	t.Helper()

	s := tcell.NewSimulationScreen("")
	require.NoError(t, s.Init())
	t.Cleanup(s.Fini)

	a := New(cfg, path)
	a.initUI(s, contents)
	t.Cleanup(a.stopWatcher)
	return a
}

func pressKey(a *App, k tcell.Key) {
	a.handleKey(tcell.NewEventKey(k, 0, tcell.ModNone))
}

func TestRunWithUnsavedChangesCancelDoesNothing(t *testing.T) {
	a := newTestApp(t, config.Defaults(), "", nil)
	a.textEdit.Insert("print('hi')")
	require.True(t, a.textEdit.Dirty)

	a.runScript()
	require.NotNil(t, a.dialog, "expected the save prompt")

	// Buttons are Save, Discard, Cancel; Tab moves right, Enter chooses.
	pressKey(a, tcell.KeyTab)
	pressKey(a, tcell.KeyTab)
	pressKey(a, tcell.KeyEnter)

	assert.Nil(t, a.dialog)
	assert.True(t, a.textEdit.Dirty, "cancelling must not save")
	assert.False(t, a.run.Running(), "cancelling must not start the interpreter")
	assert.False(t, a.runItem.Disabled)
	assert.Zero(t, a.output.Lines(), "output must stay untouched")
}

func TestRunWithUnsavedChangesSaveStartsRun(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "script.py")
	require.NoError(t, os.WriteFile(path, []byte("sleep 5\n"), 0644))

	cfg := config.Defaults()
	cfg.Interpreter = "sh"

	a := newTestApp(t, cfg, path, []byte("sleep 5\n"))
	a.textEdit.Insert("# edited\n")
	require.True(t, a.textEdit.Dirty)

	a.runScript()
	require.NotNil(t, a.dialog)
	pressKey(a, tcell.KeyEnter) // Save is the default choice
	defer a.run.Stop()

	assert.False(t, a.textEdit.Dirty)
	assert.True(t, a.run.Running())
	assert.True(t, a.runItem.Disabled)

	saved, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "# edited\nsleep 5\n", string(saved))
}

func TestRunDiscardedNewDocumentCannotRun(t *testing.T) {
	a := newTestApp(t, config.Defaults(), "", nil)
	a.textEdit.Insert("print('hi')")

	a.runScript()
	require.NotNil(t, a.dialog)
	pressKey(a, tcell.KeyTab) // Discard
	pressKey(a, tcell.KeyEnter)

	// Discarding leaves the document without a path, so the run is refused
	// with an explanation instead of starting.
	require.NotNil(t, a.dialog)
	assert.False(t, a.run.Running())
	assert.False(t, a.runItem.Disabled)
}

func TestExitPrompt(t *testing.T) {
	a := newTestApp(t, config.Defaults(), "", nil)
	a.textEdit.Insert("x = 1")

	a.exit()
	require.NotNil(t, a.dialog)
	pressKey(a, tcell.KeyTab)
	pressKey(a, tcell.KeyTab)
	pressKey(a, tcell.KeyEnter) // Cancel
	assert.False(t, a.quit, "cancelling must keep the editor open")
	assert.True(t, a.textEdit.Dirty)

	a.exit()
	require.NotNil(t, a.dialog)
	pressKey(a, tcell.KeyTab)
	pressKey(a, tcell.KeyEnter) // Discard
	assert.True(t, a.quit)
	assert.True(t, a.textEdit.Dirty, "discarding must not save")
}

func TestSaveIsNotReportedAsExternalChange(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "script.py")
	require.NoError(t, os.WriteFile(path, []byte("x = 1\n"), 0644))

	a := newTestApp(t, config.Defaults(), path, []byte("x = 1\n"))
	a.watchFile(path)
	a.textEdit.Insert("# note\n")

	a.save(nil)
	assert.False(t, a.textEdit.Dirty)
	assert.Equal(t, "Saved to "+path, a.status.Message)

	// Past the watcher's debounce window, our own write must not have
	// produced a change notification.
	time.Sleep(900 * time.Millisecond)
	assert.False(t, a.screen.HasPendingEvent(), "own save reported as external change")

	// A write by someone else still is.
	require.NoError(t, os.WriteFile(path, []byte("x = 2\n"), 0644))
	time.Sleep(900 * time.Millisecond)
	assert.True(t, a.screen.HasPendingEvent(), "external write not reported")
}
