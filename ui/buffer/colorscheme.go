package buffer

import (
	"github.com/fivemoreminix/moledit/pkg/syntax"
	"github.com/gdamore/tcell/v2"
)

// A Colorscheme turns keyword categories into tcell styles. Default is used for
// unstyled text and as the base every category style is derived from; Column
// styles the line number column.
type Colorscheme struct {
	Default tcell.Style
	Column  tcell.Style

	cache map[syntax.Style]tcell.Style
}

func NewColorscheme(def, column tcell.Style) *Colorscheme {
	return &Colorscheme{Default: def, Column: column}
}

// GetStyle returns the style for text of cat. A nil category is unstyled text.
// A nil Colorscheme returns tcell.StyleDefault.
func (c *Colorscheme) GetStyle(cat *syntax.Category) tcell.Style {
	if c == nil {
		return tcell.StyleDefault
	}
	if cat == nil {
		return c.Default
	}
	if st, ok := c.cache[cat.Style]; ok {
		return st
	}

	st := StyleFor(c.Default, cat.Style)
	if c.cache == nil {
		c.cache = make(map[syntax.Style]tcell.Style)
	}
	c.cache[cat.Style] = st
	return st
}

// StyleFor applies a category style on top of base.
func StyleFor(base tcell.Style, s syntax.Style) tcell.Style {
	st := base.Bold(s.Bold).Italic(s.Italic)
	if rgb, ok := s.RGB(); ok {
		r, g, b := rgb.RGB255()
		st = st.Foreground(tcell.NewRGBColor(int32(r), int32(g), int32(b)))
	}
	return st
}
