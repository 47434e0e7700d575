package editor

import "github.com/zyedidia/clipboard"

// The system clipboard is not always reachable (no X selection over SSH, for
// example), so clipboard operations fall back to an in-process buffer.
var (
	useInternalClipboard bool
	internalClipboard    string
)

// clipInitialize prepares the system clipboard. On failure the internal
// fallback is selected and the error is returned for logging; it is not
// fatal.
func clipInitialize() error {
	if err := clipboard.Initialize(); err != nil {
		useInternalClipboard = true
		return err
	}
	return nil
}

// clipRead returns the clipboard contents.
func clipRead() (string, error) {
	if useInternalClipboard {
		return internalClipboard, nil
	}
	return clipboard.ReadAll("clipboard")
}

// clipWrite sets the clipboard contents.
func clipWrite(content string) error {
	if useInternalClipboard {
		internalClipboard = content
		return nil
	}
	return clipboard.WriteAll(content, "clipboard")
}
