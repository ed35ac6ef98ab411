package ui

import (
	"github.com/gdamore/tcell/v2"
)

// A Component is a rectangle of the editor screen that draws itself and may
// handle input. The editor has two: the TextEdit and the StatusBar below it.
// After constructing a component, call SetPos() and SetSize().
type Component interface {
	// Draw renders the component within its bounding rectangle. It does not
	// call Show().
	Draw(tcell.Screen)
	// Focused components show the terminal cursor and receive key events.
	SetFocused(bool)
	// Applies the theme to the component.
	SetTheme(*Theme)

	GetPos() (x, y int)
	SetPos(x, y int)
	GetSize() (w, h int)
	SetSize(w, h int)

	// HandleEvent returns whether the event was handled. Unhandled events
	// are left to the editor's key bindings.
	HandleEvent(tcell.Event) bool
}

var (
	_ Component = (*TextEdit)(nil)
	_ Component = (*StatusBar)(nil)
	_ Component = (*InputField)(nil)
)

// baseComponent can be embedded in a Component's struct to hide the position,
// size, focus and theme boilerplate.
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

func (c *baseComponent) GetSize() (int, int) {
	return c.width, c.height
}

func (c *baseComponent) SetSize(width, height int) {
	c.width, c.height = max(width, 0), max(height, 0)
}
