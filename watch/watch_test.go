package watch_test

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/w3xpt/pyed/watch"
)

func TestWatcherDebouncesMultipleWrites(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "script.py")
	require.NoError(t, os.WriteFile(path, []byte("x = 1\n"), 0644))

	w, err := watch.New(watch.Config{
		Path:        path,
		DebounceDur: 50 * time.Millisecond,
	})
	require.NoError(t, err)
	defer func() { _ = w.Stop() }()

	onChange, err := w.Start()
	require.NoError(t, err)

	// Rapid writes should coalesce into a single notification.
	for i := 0; i < 10; i++ {
		require.NoError(t, os.WriteFile(path, []byte(fmt.Sprintf("x = %d\n", i)), 0644))
		time.Sleep(10 * time.Millisecond)
	}

	select {
	case <-onChange:
	case <-time.After(500 * time.Millisecond):
		t.Fatal("expected notification but got timeout")
	}

	select {
	case <-onChange:
		t.Fatal("unexpected second notification")
	case <-time.After(150 * time.Millisecond):
	}
}

func TestWatcherIgnoresOtherFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "script.py")
	require.NoError(t, os.WriteFile(path, []byte("x = 1\n"), 0644))

	w, err := watch.New(watch.Config{
		Path:        path,
		DebounceDur: 50 * time.Millisecond,
	})
	require.NoError(t, err)
	defer func() { _ = w.Stop() }()

	onChange, err := w.Start()
	require.NoError(t, err)

	other := filepath.Join(dir, "unrelated.txt")
	require.NoError(t, os.WriteFile(other, []byte("noise"), 0644))

	select {
	case <-onChange:
		t.Fatal("notified for an unrelated file")
	case <-time.After(200 * time.Millisecond):
	}
}

func TestWatcherSeesReplacement(t *testing.T) {
	// Some editors save by writing a temp file and renaming it over the
	// original. Watching the directory keeps those visible.
	dir := t.TempDir()
	path := filepath.Join(dir, "script.py")
	require.NoError(t, os.WriteFile(path, []byte("x = 1\n"), 0644))

	w, err := watch.New(watch.DefaultConfig(path))
	require.NoError(t, err)
	defer func() { _ = w.Stop() }()

	onChange, err := w.Start()
	require.NoError(t, err)

	tmp := filepath.Join(dir, "script.py.tmp")
	require.NoError(t, os.WriteFile(tmp, []byte("x = 2\n"), 0644))
	require.NoError(t, os.Rename(tmp, path))

	select {
	case <-onChange:
	case <-time.After(2 * time.Second):
		t.Fatal("expected notification for replaced file")
	}
}

func TestWatcherStopClosesChannel(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "script.py")
	require.NoError(t, os.WriteFile(path, []byte("x = 1\n"), 0644))

	w, err := watch.New(watch.DefaultConfig(path))
	require.NoError(t, err)

	onChange, err := w.Start()
	require.NoError(t, err)
	require.NoError(t, w.Stop())

	// A consumer ranging over the channel must terminate after Stop.
	select {
	case _, ok := <-onChange:
		require.False(t, ok, "expected a closed channel, got a notification")
	case <-time.After(2 * time.Second):
		t.Fatal("channel still open after Stop")
	}
}
