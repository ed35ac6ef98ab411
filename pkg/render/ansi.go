// Package render prints highlighted Mollang source to a terminal with ANSI
// escape sequences, for use outside the editor.
package render

import (
	"io"
	"strings"

	"github.com/muesli/termenv"

	"github.com/fivemoreminix/moledit/pkg/syntax"
)

// Renderer styles text for one terminal color profile. The Ascii profile
// writes text unchanged.
type Renderer struct {
	profile termenv.Profile
}

func NewRenderer(profile termenv.Profile) *Renderer {
	return &Renderer{profile: profile}
}

// Style returns s styled like a keyword of cat. A nil category leaves s as is.
func (r *Renderer) Style(s string, cat *syntax.Category) string {
	if cat == nil || r.profile == termenv.Ascii {
		return s
	}
	out := r.profile.String(s)
	if cat.Style.Color != "" {
		out = out.Foreground(r.profile.Color(cat.Style.Color))
	}
	if cat.Style.Bold {
		out = out.Bold()
	}
	if cat.Style.Italic {
		out = out.Italic()
	}
	return out.String()
}

// Highlight returns text with every keyword m finds styled.
func (r *Renderer) Highlight(text string, m *syntax.Matcher) string {
	var b strings.Builder
	b.Grow(len(text))
	for seg := range syntax.Segments(m.Highlight(text), len(text)) {
		b.WriteString(r.Style(text[seg.Start:seg.End], seg.Category))
	}
	return b.String()
}

// Write writes the highlighted text to w.
func (r *Renderer) Write(w io.Writer, text string, m *syntax.Matcher) error {
	_, err := io.WriteString(w, r.Highlight(text, m))
	return err
}
