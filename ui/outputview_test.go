package ui

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOutputViewAppendSplitsLines(t *testing.T) {
	v := NewOutputView(&DefaultTheme)

	v.Append("one\ntwo\n", OutputStdout)
	assert.Equal(t, 2, v.Lines())

	v.Append("three\n\nfive\n", OutputStdout)
	assert.Equal(t, 5, v.Lines())
}

func TestOutputViewPartialChunks(t *testing.T) {
	v := NewOutputView(&DefaultTheme)

	// A chunk without a trailing newline leaves a partial line that the
	// next chunk continues, even with a different kind.
	v.Append("par", OutputStdout)
	require.Equal(t, 1, v.Lines())
	v.Append("tial", OutputStderr)
	require.Equal(t, 1, v.Lines())

	require.Len(t, v.lines[0], 2)
	assert.Equal(t, "par", v.lines[0][0].text)
	assert.Equal(t, OutputStdout, v.lines[0][0].kind)
	assert.Equal(t, "tial", v.lines[0][1].text)
	assert.Equal(t, OutputStderr, v.lines[0][1].kind)

	v.Append("!\nnext", OutputStdout)
	assert.Equal(t, 2, v.Lines())
}

func TestOutputViewCRLF(t *testing.T) {
	v := NewOutputView(&DefaultTheme)
	v.Append("a\r\nb\r\n", OutputStdout)
	assert.Equal(t, 2, v.Lines())
	assert.Equal(t, "a", v.lines[0][0].text)
}

func TestOutputViewClear(t *testing.T) {
	v := NewOutputView(&DefaultTheme)
	v.AppendLine("some output", OutputNotice)
	require.Equal(t, 1, v.Lines())

	v.Clear()
	assert.Equal(t, 0, v.Lines())

	v.Append("fresh", OutputStdout)
	assert.Equal(t, 1, v.Lines())
	assert.Equal(t, "fresh", v.lines[0][0].text)
}

func TestOutputViewScrollToEnd(t *testing.T) {
	v := NewOutputView(&DefaultTheme)
	v.SetSize(80, 3)

	for i := 0; i < 10; i++ {
		v.AppendLine("line", OutputStdout)
	}
	assert.Equal(t, 7, v.scrolly, "last 3 of 10 lines visible")
}
