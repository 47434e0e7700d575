package editor

import (
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"

	"github.com/w3xpt/pyed/ui/buffer"
)

func TestMakeColorschemeOverrides(t *testing.T) {
	scheme := makeColorscheme(map[string]string{
		"keyword":     "#ff0000",
		"Comment":     "00ff00", // keys are case-insensitive, '#' optional
		"unknown-key": "#123456",
		"number":      "not-a-color",
		"self":        "fff",       // too short
		"call":        "#ffffff00", // too long
	})

	fg, _, _ := scheme[buffer.Keyword].Decompose()
	assert.Equal(t, tcell.NewHexColor(0xff0000), fg)

	fg, _, _ = scheme[buffer.Comment].Decompose()
	assert.Equal(t, tcell.NewHexColor(0x00ff00), fg)

	// Malformed values fall back to the built-in palette, including hex
	// strings of the wrong length.
	def := defaultColorscheme()
	assert.Equal(t, def[buffer.Number], scheme[buffer.Number])
	assert.Equal(t, def[buffer.SelfParam], scheme[buffer.SelfParam])
	assert.Equal(t, def[buffer.CallName], scheme[buffer.CallName])
}

func TestDefaultColorschemeCoversAllSyntax(t *testing.T) {
	scheme := defaultColorscheme()
	for s := buffer.Default; s <= buffer.FunctionName; s++ {
		_, ok := scheme[s]
		assert.True(t, ok, "syntax %d has no style", s)
	}
}
