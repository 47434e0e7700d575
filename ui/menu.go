package ui

import (
	"fmt"
	"strings"

	"github.com/gdamore/tcell/v2"
	runewidth "github.com/mattn/go-runewidth"
)

// Item is an interface implemented by ItemEntry and Menu to be listed in Menus.
type Item interface {
	GetName() string
	// GetQuickCharIdx returns a character/rune index of the name of the item.
	GetQuickCharIdx() int
	// GetShortcut returns the modifiers+key name that triggers the item, in
	// tcell's KeyEvent.Name() form, for example "Ctrl+S". The order of the
	// modifiers is significant. An empty string implies no shortcut.
	GetShortcut() string
	// IsEnabled reports whether the item can currently be activated.
	IsEnabled() bool
}

// An ItemSeparator is like a blank Item that cannot actually be selected. It is
// useful for separating items in a Menu.
type ItemSeparator struct{}

func (i *ItemSeparator) GetName() string {
	return ""
}

func (i *ItemSeparator) GetQuickCharIdx() int {
	return 0
}

func (i *ItemSeparator) GetShortcut() string {
	return ""
}

func (i *ItemSeparator) IsEnabled() bool {
	return false
}

// ItemEntry is a listing in a Menu with a name and callback. Disabled entries
// are drawn greyed out and ignore activation, including their shortcut.
type ItemEntry struct {
	Name      string
	QuickChar int // Character/rune index of Name
	Shortcut  string
	Disabled  bool
	Callback  func()
}

func (i *ItemEntry) GetName() string {
	return i.Name
}

func (i *ItemEntry) GetQuickCharIdx() int {
	return i.QuickChar
}

func (i *ItemEntry) GetShortcut() string {
	return i.Shortcut
}

func (i *ItemEntry) IsEnabled() bool {
	return !i.Disabled
}

func (m *Menu) GetName() string {
	return m.Name
}

func (m *Menu) GetQuickCharIdx() int {
	return m.QuickChar
}

func (m *Menu) GetShortcut() string {
	return ""
}

func (m *Menu) IsEnabled() bool {
	return true
}

// A MenuBar is a horizontal list of menus.
type MenuBar struct {
	menus        []*Menu
	selected     int  // Index of selection in MenuBar
	menusVisible bool // Whether to draw the selected menu

	baseComponent
}

func NewMenuBar(theme *Theme) *MenuBar {
	return &MenuBar{
		menus:         make([]*Menu, 0, 6),
		baseComponent: baseComponent{theme: theme},
	}
}

func (b *MenuBar) AddMenu(menu *Menu) {
	menu.itemSelectedCallback = func() {
		b.menusVisible = false
		menu.SetFocused(false)
	}
	b.menus = append(b.menus, menu)
}

// GetMenuXPos returns the X position of the name of Menu at `idx` visually.
func (b *MenuBar) GetMenuXPos(idx int) int {
	x := 1
	for i := 0; i < idx; i++ {
		x += len(b.menus[i].Name) + 2 // two for padding
	}
	return x
}

func (b *MenuBar) ActivateMenuUnderCursor() {
	b.menusVisible = true
	menu := b.menus[b.selected]
	menu.SetPos(b.GetMenuXPos(b.selected), b.y+1)
	menu.SetFocused(true)
}

func (b *MenuBar) CursorLeft() {
	if b.menusVisible {
		b.menus[b.selected].SetFocused(false) // Unfocus current menu
	}

	if b.selected <= 0 {
		b.selected = len(b.menus) - 1 // Wrap to end
	} else {
		b.selected--
	}

	if b.menusVisible {
		b.menus[b.selected].SetPos(b.GetMenuXPos(b.selected), b.y+1)
		b.menus[b.selected].SetFocused(true)
	}
}

func (b *MenuBar) CursorRight() {
	if b.menusVisible {
		b.menus[b.selected].SetFocused(false)
	}

	if b.selected >= len(b.menus)-1 {
		b.selected = 0 // Wrap to beginning
	} else {
		b.selected++
	}

	if b.menusVisible {
		b.menus[b.selected].SetPos(b.GetMenuXPos(b.selected), b.y+1)
		b.menus[b.selected].SetFocused(true)
	}
}

// Draw renders the MenuBar and its sub-menus.
func (b *MenuBar) Draw(s tcell.Screen) {
	normalStyle := b.theme.GetOrDefault("MenuBar")

	DrawRect(s, b.x, b.y, b.width, 1, ' ', normalStyle)
	col := b.x + 1
	for i, item := range b.menus {
		sty := normalStyle
		if b.focused && b.selected == i {
			sty = b.theme.GetOrDefault("MenuBarSelected")
		}

		str := fmt.Sprintf(" %s ", item.Name)
		col += DrawQuickCharStr(s, col, b.y, str, item.QuickChar+1, sty)
	}

	if b.menusVisible {
		b.menus[b.selected].Draw(s)
	}
}

// SetFocused highlights the MenuBar and focuses any sub-menus.
func (b *MenuBar) SetFocused(v bool) {
	b.focused = v
	b.menus[b.selected].SetFocused(v)
	if !v {
		b.selected = 0 // Reset cursor position every time component is unfocused
		b.menusVisible = false
	}
}

func (b *MenuBar) GetMinSize() (int, int) {
	return 0, 1
}

// HandleEvent propagates events to sub-menus and returns true if any of them
// handled the event.
func (b *MenuBar) HandleEvent(event tcell.Event) bool {
	switch ev := event.(type) {
	case *tcell.EventKey:
		// Shortcuts are handled whether or not the bar is focused; tcell
		// names them "Ctrl+S", "F5", etc. via EventKey.Name().
		if ev.Key() != tcell.KeyRune {
			keyName := ev.Name()
			for i := range b.menus {
				if b.menus[i].handleShortcut(keyName) {
					return true
				}
			}
			if !b.focused {
				return false
			}
		}

		if !b.focused {
			return false
		}

		switch ev.Key() {
		case tcell.KeyEnter:
			if !b.menusVisible {
				b.ActivateMenuUnderCursor()
			} else { // The selected Menu is visible, send the event to it
				return b.menus[b.selected].HandleEvent(event)
			}
		case tcell.KeyLeft:
			b.CursorLeft()
		case tcell.KeyRight:
			b.CursorRight()
		case tcell.KeyTab:
			if b.menusVisible {
				return b.menus[b.selected].HandleEvent(event)
			}
			b.CursorRight()

		case tcell.KeyRune: // Search for the matching quick char in menu names
			if !b.menusVisible {
				for i, m := range b.menus {
					r := QuickCharInString(m.Name, m.QuickChar)
					if r != 0 && r == ev.Rune() {
						b.selected = i
						b.ActivateMenuUnderCursor()
						break
					}
				}
			} else {
				return b.menus[b.selected].HandleEvent(event)
			}

		default:
			if b.menusVisible {
				return b.menus[b.selected].HandleEvent(event)
			}
			return false // Nobody to propagate our event to
		}
		return true
	}
	return false
}

// A Menu contains one or more ItemEntries or sub-Menus.
type Menu struct {
	Name      string
	QuickChar int // Character/rune index of Name
	Items     []Item

	selected             int    // Index of selected Item
	itemSelectedCallback func() // Used internally to hide menus on selection

	baseComponent
}

// NewMenu creates a new Menu. `items` can be added later.
func NewMenu(name string, quickChar int, theme *Theme) *Menu {
	return &Menu{
		Name:          name,
		QuickChar:     quickChar,
		Items:         make([]Item, 0, 6),
		baseComponent: baseComponent{theme: theme},
	}
}

func (m *Menu) AddItem(item Item) {
	if sub, ok := item.(*Menu); ok {
		sub.itemSelectedCallback = func() {
			m.itemSelectedCallback()
		}
	}
	m.Items = append(m.Items, item)
}

func (m *Menu) AddItems(items []Item) {
	for _, item := range items {
		m.AddItem(item)
	}
}

func (m *Menu) ActivateItemUnderCursor() {
	if entry, ok := m.Items[m.selected].(*ItemEntry); ok && entry.IsEnabled() {
		entry.Callback()
		m.itemSelectedCallback()
	}
}

func (m *Menu) CursorUp() {
	if m.selected <= 0 {
		m.selected = len(m.Items) - 1 // Wrap to end
	} else {
		m.selected--
	}
	if _, ok := m.Items[m.selected].(*ItemSeparator); ok {
		m.CursorUp() // Recursion; stack overflow if the only item in a Menu is a separator.
	}
}

func (m *Menu) CursorDown() {
	if m.selected >= len(m.Items)-1 {
		m.selected = 0 // Wrap to beginning
	} else {
		m.selected++
	}
	if _, ok := m.Items[m.selected].(*ItemSeparator); ok {
		m.CursorDown() // Recursion; stack overflow if the only item in a Menu is a separator.
	}
}

// Draw renders the Menu at its position.
func (m *Menu) Draw(s tcell.Screen) {
	defaultStyle := m.theme.GetOrDefault("Menu")

	m.GetSize()                                                          // Updates internal width and height
	DrawRect(s, m.x, m.y, m.width, m.height, ' ', defaultStyle)          // Fill background
	DrawRectOutlineDefault(s, m.x, m.y, m.width, m.height, defaultStyle) // Draw outline

	for i, item := range m.Items {
		if _, ok := item.(*ItemSeparator); ok {
			str := fmt.Sprintf("├%s┤", strings.Repeat("─", m.width-2))
			DrawStr(s, m.x, m.y+1+i, str, defaultStyle)
			continue
		}

		sty := defaultStyle
		switch {
		case !item.IsEnabled():
			sty = m.theme.GetOrDefault("MenuDisabled")
		case m.selected == i:
			sty = m.theme.GetOrDefault("MenuSelected")
		}

		nameCols := DrawQuickCharStr(s, m.x+1, m.y+1+i, item.GetName(), item.GetQuickCharIdx(), sty)

		str := strings.Repeat(" ", m.width-2-nameCols) // Fill space after menu names to border
		DrawStr(s, m.x+1+nameCols, m.y+1+i, str, sty)

		if shortcut := item.GetShortcut(); len(shortcut) > 0 {
			str := " " + shortcut + " "
			DrawStr(s, m.x+m.width-1-runewidth.StringWidth(str), m.y+1+i, str, sty)
		}
	}
}

// SetFocused resets the cursor when the Menu is closed.
func (m *Menu) SetFocused(v bool) {
	m.focused = v
	if !v {
		m.selected = 0
	}
}

func (m *Menu) GetMinSize() (int, int) {
	return m.GetSize()
}

// GetSize returns the size of the Menu, computed from its items.
func (m *Menu) GetSize() (int, int) {
	maxNameLen := 0
	widestShortcut := 0
	for i := range m.Items {
		if nameLen := len(m.Items[i].GetName()); nameLen > maxNameLen {
			maxNameLen = nameLen
		}
		if key := m.Items[i].GetShortcut(); runewidth.StringWidth(key) > widestShortcut {
			widestShortcut = runewidth.StringWidth(key)
		}
	}

	shortcutsWidth := 0
	if widestShortcut > 0 {
		shortcutsWidth = 1 + widestShortcut + 1 // " Ctrl+X " with one cell padding surrounding
	}

	m.width = 1 + maxNameLen + shortcutsWidth + 1 // Add two for padding
	m.height = 1 + len(m.Items) + 1               // And another two for the same reason
	return m.width, m.height
}

// SetSize does nothing: a Menu is always exactly as large as its items.
func (m *Menu) SetSize(width, height int) {}

func (m *Menu) handleShortcut(key string) bool {
	for i := range m.Items {
		switch typ := m.Items[i].(type) {
		case *Menu:
			if typ.handleShortcut(key) {
				return true
			}
		case *ItemEntry:
			if typ.Shortcut == key && typ.IsEnabled() {
				m.selected = i
				m.ActivateItemUnderCursor()
				return true
			}
		}
	}
	return false
}

// HandleEvent handles events for a Menu and may propagate them to sub-menus.
// Returns true if the event was handled.
func (m *Menu) HandleEvent(event tcell.Event) bool {
	switch ev := event.(type) {
	case *tcell.EventKey:
		switch ev.Key() {
		case tcell.KeyEnter:
			m.ActivateItemUnderCursor()
		case tcell.KeyUp:
			m.CursorUp()
		case tcell.KeyTab, tcell.KeyDown:
			m.CursorDown()

		case tcell.KeyRune:
			for i, item := range m.Items {
				if m.selected == i {
					continue // Skip the item we're on
				}
				r := QuickCharInString(item.GetName(), item.GetQuickCharIdx())
				if r != 0 && r == ev.Rune() {
					m.selected = i
					break
				}
			}

		default:
			return false
		}
		return true
	}
	return false
}
