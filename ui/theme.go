package ui

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
)

// A Theme is a map of string names to styles. Themes can be passed by reference
// to components to set their styles. If a theme value cannot be found, the
// `DefaultTheme` value is used, instead. An updated list of theme keys can be
// found on the default theme.
type Theme map[string]tcell.Style

func (theme *Theme) GetOrDefault(key string) tcell.Style {
	if theme != nil {
		if val, ok := (*theme)[key]; ok {
			return val
		}
	}

	if val, ok := DefaultTheme[key]; ok {
		return val
	}
	panic(fmt.Sprintf("key %q not present in default theme", key))
}

// The default palette follows the editor's dark theme: a near-black editor
// surface with a slightly lighter chrome for menus and bars.
var (
	colorSurface = tcell.NewHexColor(0x2b2b2b)
	colorChrome  = tcell.NewHexColor(0x3c3c3c)
	colorSelect  = tcell.NewHexColor(0x555555)
	colorText    = tcell.NewHexColor(0xf0f0f0)
	colorGutter  = tcell.NewHexColor(0x858585)
	colorGutterB = tcell.NewHexColor(0x313335)
	colorCurLine = tcell.NewHexColor(0x3a3d42)
	colorError   = tcell.NewHexColor(0xda4453)
	colorNotice  = tcell.NewHexColor(0x888888)
)

var DefaultTheme = Theme{
	"Normal":              tcell.Style{}.Foreground(colorText).Background(colorSurface),
	"Button":              tcell.Style{}.Foreground(colorText).Background(colorSelect),
	"InputField":          tcell.Style{}.Foreground(colorText).Background(colorSurface),
	"MenuBar":             tcell.Style{}.Foreground(colorText).Background(colorChrome),
	"MenuBarSelected":     tcell.Style{}.Foreground(colorText).Background(colorSelect),
	"Menu":                tcell.Style{}.Foreground(colorText).Background(colorChrome),
	"MenuSelected":        tcell.Style{}.Foreground(colorText).Background(colorSelect),
	"MenuDisabled":        tcell.Style{}.Foreground(colorNotice).Background(colorChrome),
	"QuickChar":           tcell.Style{}.Foreground(tcell.ColorYellow).Background(colorChrome),
	"TextEdit":            tcell.Style{}.Foreground(colorText).Background(colorSurface),
	"TextEditColumn":      tcell.Style{}.Foreground(colorGutter).Background(colorGutterB),
	"TextEditCurrentLine": tcell.Style{}.Foreground(colorText).Background(colorCurLine),
	"TextEditSelected":    tcell.Style{}.Foreground(colorSurface).Background(colorGutter),
	"Output":              tcell.Style{}.Foreground(colorText).Background(colorSurface),
	"OutputError":         tcell.Style{}.Foreground(colorError).Background(colorSurface),
	"OutputNotice":        tcell.Style{}.Foreground(colorNotice).Background(colorSurface),
	"StatusBar":           tcell.Style{}.Foreground(colorText).Background(colorChrome),
	"Window":              tcell.Style{}.Foreground(colorText).Background(colorChrome),
	"WindowHeader":        tcell.Style{}.Foreground(colorText).Background(colorSelect),
}
