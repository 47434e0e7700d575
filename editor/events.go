package editor

import (
	"github.com/gdamore/tcell/v2"

	"github.com/w3xpt/pyed/runner"
)

// Runner and watcher callbacks fire on their own goroutines. They are
// wrapped in tcell events and posted to the screen so all state changes
// happen on the event loop.

// runnerEvent delivers a runner.Event through the tcell event loop.
type runnerEvent struct {
	tcell.EventTime
	ev runner.Event
}

func newRunnerEvent(ev runner.Event) *runnerEvent {
	e := &runnerEvent{ev: ev}
	e.SetEventNow()
	return e
}

// fileChangedEvent is posted when the open file is modified outside the
// editor.
type fileChangedEvent struct {
	tcell.EventTime
}

func newFileChangedEvent() *fileChangedEvent {
	e := &fileChangedEvent{}
	e.SetEventNow()
	return e
}
