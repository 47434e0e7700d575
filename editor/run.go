package editor

import (
	"fmt"

	"github.com/w3xpt/pyed/log"
	"github.com/w3xpt/pyed/runner"
	"github.com/w3xpt/pyed/ui"
)

// runScript runs the buffer's file with the configured interpreter. Unsaved
// changes trigger the save/discard/cancel prompt first: cancelling (or
// cancelling the save dialog) aborts the run, and discarding on a document
// that has never been saved leads to the cannot-run warning below.
func (a *App) runScript() {
	if a.run.Running() {
		return
	}
	a.maybeSave(a.startRun)
}

func (a *App) startRun() {
	path := a.textEdit.FilePath
	if path == "" {
		a.showError("Please save the file before running.")
		return
	}

	a.showOutput = true
	a.layout()
	a.output.Clear()
	a.output.AppendLine(fmt.Sprintf("--- Running %s ---", path), ui.OutputNotice)

	err := a.run.Start(a.cfg.Interpreter, path, func(ev runner.Event) {
		_ = a.screen.PostEvent(newRunnerEvent(ev))
	})
	if err != nil {
		log.ErrorErr(log.CatRun, "starting interpreter", err, "interpreter", a.cfg.Interpreter, "path", path)
		a.showError(fmt.Sprintf("Could not run script: %v", err))
		return
	}

	log.Info(log.CatRun, "started script", "interpreter", a.cfg.Interpreter, "path", path)
	a.runItem.Disabled = true
	a.status.Message = fmt.Sprintf("Running %s", displayName(path))
}

// handleRunnerEvent consumes a runner event on the UI thread.
func (a *App) handleRunnerEvent(ev runner.Event) {
	switch ev.Kind {
	case runner.EventStdout:
		a.output.Append(ev.Text, ui.OutputStdout)
	case runner.EventStderr:
		a.output.Append(ev.Text, ui.OutputStderr)
	case runner.EventExit:
		a.runItem.Disabled = false
		if ev.Err != nil {
			log.ErrorErr(log.CatRun, "script run failed", ev.Err)
			a.output.AppendLine(fmt.Sprintf("--- Execution Failed: %v ---", ev.Err), ui.OutputStderr)
			a.status.Message = "Run failed"
			return
		}
		log.Info(log.CatRun, "script finished", "exit_code", ev.ExitCode)
		a.output.AppendLine(fmt.Sprintf("--- Execution Finished (exit code %d) ---", ev.ExitCode), ui.OutputNotice)
		a.status.Message = fmt.Sprintf("Finished with exit code %d", ev.ExitCode)
	}
}
