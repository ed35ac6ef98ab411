package syntax

import (
	"fmt"
	"slices"

	"github.com/lucasb-eyer/go-colorful"
)

// Style is how text of a Category is displayed. An empty Color keeps the
// editor's default foreground.
type Style struct {
	Color  string // #RRGGBB or #RGB
	Bold   bool
	Italic bool
}

// RGB returns the parsed foreground color. ok is false when Color is empty
// or cannot be parsed.
func (s Style) RGB() (c colorful.Color, ok bool) {
	if s.Color == "" {
		return c, false
	}
	c, err := colorful.Hex(s.Color)
	return c, err == nil
}

// Validate reports whether the style's color is a hex color.
func (s Style) Validate() error {
	if s.Color == "" {
		return nil
	}
	if n := len(s.Color); n != 4 && n != 7 {
		return fmt.Errorf("%w: color %q is not a hex color", ErrInvalidStyle, s.Color)
	}
	if _, err := colorful.Hex(s.Color); err != nil {
		return fmt.Errorf("%w: color %q is not a hex color", ErrInvalidStyle, s.Color)
	}
	return nil
}

// A Category is a named, styled group of keyword patterns. Its position in
// the Registry is its matching priority.
type Category struct {
	Name     string
	Patterns []string
	Style    Style
}

// Clone returns a copy that shares no memory with c.
func (c Category) Clone() Category {
	c.Patterns = slices.Clone(c.Patterns)
	return c
}

// Equal reports whether two categories have the same name, patterns and style.
func (c Category) Equal(o Category) bool {
	return c.Name == o.Name && c.Style == o.Style && slices.Equal(c.Patterns, o.Patterns)
}

// normalized validates c and returns it with patterns in NFC form and
// duplicates dropped (first occurrence kept).
func (c Category) normalized() (Category, error) {
	if c.Name == "" {
		return c, fmt.Errorf("%w: empty name", ErrInvalidName)
	}
	if err := c.Style.Validate(); err != nil {
		return c, fmt.Errorf("category %q: %w", c.Name, err)
	}

	patterns := make([]string, 0, len(c.Patterns))
	seen := make(map[string]bool, len(c.Patterns))
	for _, src := range c.Patterns {
		p, err := ParsePattern(src)
		if err != nil {
			return c, fmt.Errorf("category %q: %w", c.Name, err)
		}
		if seen[p.Source] {
			continue
		}
		seen[p.Source] = true
		patterns = append(patterns, p.Source)
	}
	c.Patterns = patterns
	return c, nil
}
