// Package runner launches an external interpreter on a script and streams
// its output back as events.
package runner

import (
	"errors"
	"fmt"
	"io"
	"os/exec"
	"sync"
)

// ErrAlreadyRunning is returned by Start while a previous run is still in
// progress.
var ErrAlreadyRunning = errors.New("a script is already running")

// EventKind discriminates the events a run produces.
type EventKind uint8

const (
	// EventStdout carries a chunk of the process's standard output.
	EventStdout EventKind = iota
	// EventStderr carries a chunk of the process's standard error.
	EventStderr
	// EventExit is the final event of a run.
	EventExit
)

// Event is a single occurrence during a script run. Text is set for stdout
// and stderr events. ExitCode and Err are set on the exit event: Err is
// non-nil when the process could not be started or waited on, in which case
// ExitCode is meaningless.
type Event struct {
	Kind     EventKind
	Text     string
	ExitCode int
	Err      error
}

// Runner executes one script at a time with an external interpreter. The
// zero value is ready to use.
type Runner struct {
	mu      sync.Mutex
	running bool
	cmd     *exec.Cmd
}

// Running reports whether a run is in progress.
func (r *Runner) Running() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.running
}

// Start launches interpreter with scriptPath as its only argument. Output
// and exit events are delivered through onEvent from a separate goroutine,
// so callers must marshal them back to wherever they are consumed. The exit
// event is always the last call to onEvent for a run.
func (r *Runner) Start(interpreter, scriptPath string, onEvent func(Event)) error {
	r.mu.Lock()
	if r.running {
		r.mu.Unlock()
		return ErrAlreadyRunning
	}

	cmd := exec.Command(interpreter, scriptPath)
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		r.mu.Unlock()
		return fmt.Errorf("piping stdout: %w", err)
	}
	stderr, err := cmd.StderrPipe()
	if err != nil {
		r.mu.Unlock()
		return fmt.Errorf("piping stderr: %w", err)
	}

	if err := cmd.Start(); err != nil {
		r.mu.Unlock()
		return fmt.Errorf("starting %s: %w", interpreter, err)
	}

	r.running = true
	r.cmd = cmd
	r.mu.Unlock()

	var wg sync.WaitGroup
	wg.Add(2)
	go stream(stdout, EventStdout, onEvent, &wg)
	go stream(stderr, EventStderr, onEvent, &wg)

	go func() {
		wg.Wait() // Pipes must be drained before Wait
		err := cmd.Wait()

		r.mu.Lock()
		r.running = false
		r.cmd = nil
		r.mu.Unlock()

		exit := Event{Kind: EventExit}
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			exit.ExitCode = exitErr.ExitCode()
		} else if err != nil {
			exit.Err = err
		} else {
			exit.ExitCode = cmd.ProcessState.ExitCode()
		}
		onEvent(exit)
	}()

	return nil
}

// Stop kills the running process, if any. The run still finishes with an
// exit event.
func (r *Runner) Stop() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.cmd != nil && r.cmd.Process != nil {
		_ = r.cmd.Process.Kill()
	}
}

func stream(pipe io.Reader, kind EventKind, onEvent func(Event), wg *sync.WaitGroup) {
	defer wg.Done()
	buf := make([]byte, 4096)
	for {
		n, err := pipe.Read(buf)
		if n > 0 {
			onEvent(Event{Kind: kind, Text: string(buf[:n])})
		}
		if err != nil {
			return
		}
	}
}
