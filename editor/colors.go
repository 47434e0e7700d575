package editor

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/gdamore/tcell/v2"

	"github.com/w3xpt/pyed/log"
	"github.com/w3xpt/pyed/ui/buffer"
)

// syntaxNames maps the color override keys accepted in the config file to
// syntax kinds.
var syntaxNames = map[string]buffer.Syntax{
	"default":  buffer.Default,
	"gutter":   buffer.Column,
	"keyword":  buffer.Keyword,
	"builtin":  buffer.Builtin,
	"self":     buffer.SelfParam,
	"string":   buffer.String,
	"comment":  buffer.Comment,
	"number":   buffer.Number,
	"call":     buffer.CallName,
	"class":    buffer.ClassName,
	"function": buffer.FunctionName,
}

// defaultColorscheme returns the built-in dark palette.
func defaultColorscheme() buffer.Colorscheme {
	surface := tcell.NewHexColor(0x2b2b2b)
	base := tcell.Style{}.Background(surface)

	return buffer.Colorscheme{
		buffer.Default:      base.Foreground(tcell.NewHexColor(0xf0f0f0)),
		buffer.Column:       tcell.Style{}.Foreground(tcell.NewHexColor(0x858585)).Background(tcell.NewHexColor(0x313335)),
		buffer.Keyword:      base.Foreground(tcell.NewHexColor(0x569cd6)).Bold(true),
		buffer.Builtin:      base.Foreground(tcell.NewHexColor(0x4ec9b0)),
		buffer.SelfParam:    base.Foreground(tcell.NewHexColor(0x9cdcfe)).Italic(true),
		buffer.String:       base.Foreground(tcell.NewHexColor(0xce9178)),
		buffer.Comment:      base.Foreground(tcell.NewHexColor(0x6a9955)).Italic(true),
		buffer.Number:       base.Foreground(tcell.NewHexColor(0xb5cea8)),
		buffer.CallName:     base.Foreground(tcell.NewHexColor(0xdcdcaa)),
		buffer.ClassName:    base.Foreground(tcell.NewHexColor(0xdcdcaa)),
		buffer.FunctionName: base.Foreground(tcell.NewHexColor(0xdcdcaa)),
	}
}

// makeColorscheme builds the colorscheme from the built-in palette and the
// user's overrides. Unknown keys and malformed colors are logged and skipped.
func makeColorscheme(overrides map[string]string) buffer.Colorscheme {
	scheme := defaultColorscheme()
	for name, hex := range overrides {
		syntax, ok := syntaxNames[strings.ToLower(name)]
		if !ok {
			log.Warn(log.CatConfig, "unknown syntax color key", "key", name)
			continue
		}
		color, err := parseHexColor(hex)
		if err != nil {
			log.Warn(log.CatConfig, "bad syntax color value", "key", name, "value", hex)
			continue
		}
		scheme[syntax] = scheme[syntax].Foreground(color)
	}
	return scheme
}

func parseHexColor(s string) (tcell.Color, error) {
	s = strings.TrimPrefix(s, "#")
	if len(s) != 6 {
		return 0, fmt.Errorf("want 6 hex digits, got %q", s)
	}
	v, err := strconv.ParseInt(s, 16, 32)
	if err != nil {
		return 0, err
	}
	return tcell.NewHexColor(int32(v)), nil
}
