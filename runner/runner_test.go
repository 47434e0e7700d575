package runner

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// collectRun starts a run and gathers every event until the exit event.
func collectRun(t *testing.T, r *Runner, interpreter, script string) []Event {
	t.Helper()

	events := make(chan Event, 64)
	err := r.Start(interpreter, script, func(ev Event) {
		events <- ev
	})
	require.NoError(t, err)

	var collected []Event
	for {
		select {
		case ev := <-events:
			collected = append(collected, ev)
			if ev.Kind == EventExit {
				return collected
			}
		case <-time.After(5 * time.Second):
			t.Fatal("timed out waiting for exit event")
		}
	}
}

func writeScript(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "script.sh")
	require.NoError(t, os.WriteFile(path, []byte(contents), 0644))
	return path
}

func TestRunnerStreamsOutput(t *testing.T) {
	script := writeScript(t, "echo to stdout\necho to stderr 1>&2\nexit 3\n")

	var r Runner
	events := collectRun(t, &r, "sh", script)

	var stdout, stderr strings.Builder
	var exit Event
	for _, ev := range events {
		switch ev.Kind {
		case EventStdout:
			stdout.WriteString(ev.Text)
		case EventStderr:
			stderr.WriteString(ev.Text)
		case EventExit:
			exit = ev
		}
	}

	assert.Equal(t, "to stdout\n", stdout.String())
	assert.Equal(t, "to stderr\n", stderr.String())
	assert.NoError(t, exit.Err)
	assert.Equal(t, 3, exit.ExitCode)
	assert.False(t, r.Running(), "run is over after the exit event")
}

func TestRunnerExitEventIsLast(t *testing.T) {
	script := writeScript(t, "echo done\n")

	var r Runner
	events := collectRun(t, &r, "sh", script)

	require.NotEmpty(t, events)
	assert.Equal(t, EventExit, events[len(events)-1].Kind)
	for _, ev := range events[:len(events)-1] {
		assert.NotEqual(t, EventExit, ev.Kind)
	}
}

func TestRunnerRejectsConcurrentRuns(t *testing.T) {
	script := writeScript(t, "sleep 2\n")

	var r Runner
	exited := make(chan Event, 8)
	require.NoError(t, r.Start("sh", script, func(ev Event) {
		if ev.Kind == EventExit {
			exited <- ev
		}
	}))
	assert.True(t, r.Running())

	err := r.Start("sh", script, func(Event) {})
	assert.ErrorIs(t, err, ErrAlreadyRunning)

	r.Stop()
	select {
	case <-exited:
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for killed process to exit")
	}
	assert.False(t, r.Running())
}

func TestRunnerMissingInterpreter(t *testing.T) {
	var r Runner
	err := r.Start("definitely-not-an-interpreter", "whatever.py", func(Event) {})
	assert.Error(t, err)
	assert.False(t, r.Running())
}
