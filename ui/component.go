package ui

import (
	"github.com/gdamore/tcell/v2"
)

// A Component is anything that occupies a rectangle of the screen and may
// handle events: buttons, input fields, dialogs, the text editor itself.
// After constructing a component, call SetPos(), and usually SetSize().
type Component interface {
	// Draw renders the component within its bounding rectangle.
	Draw(tcell.Screen)
	// SetFocused tells the component whether it receives events. A focused
	// component may draw differently, e.g. a button accepting Return.
	SetFocused(bool)
	// SetTheme applies the theme to the component and all of its children.
	SetTheme(*Theme)

	GetPos() (x, y int)
	SetPos(x, y int)

	// GetMinSize returns the smallest size the component can be.
	GetMinSize() (w, h int)
	GetSize() (w, h int)
	// SetSize sets the size of the component. Sizes smaller than the minimum
	// are clamped up to it.
	SetSize(w, h int)

	// HandleEvent lets the component respond to an event. Returns true when
	// the event was consumed.
	HandleEvent(tcell.Event) bool
}

// baseComponent holds the position, size, focus, and theme boilerplate that
// nearly every Component carries. Embed it and override what differs.
type baseComponent struct {
	focused       bool
	x, y          int
	width, height int
	theme         *Theme
}

func (c *baseComponent) SetFocused(v bool) {
	c.focused = v
}

func (c *baseComponent) SetTheme(theme *Theme) {
	c.theme = theme
}

func (c *baseComponent) GetPos() (int, int) {
	return c.x, c.y
}

func (c *baseComponent) SetPos(x, y int) {
	c.x, c.y = x, y
}

func (c *baseComponent) GetMinSize() (int, int) {
	return 0, 0
}

func (c *baseComponent) GetSize() (int, int) {
	return c.width, c.height
}

func (c *baseComponent) SetSize(width, height int) {
	c.width, c.height = width, height
}
