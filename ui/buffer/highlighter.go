package buffer

import (
	"slices"

	"github.com/fivemoreminix/moledit/pkg/syntax"
	"github.com/gdamore/tcell/v2"
)

// A Change describes an edit to the buffer in lines. The edit started on Line,
// removed Removed line delimiters and inserted Inserted line delimiters. A
// Change is sent after the buffer was modified.
type Change struct {
	Line     int
	Removed  int
	Inserted int
}

// A Highlighter can answer how to color any part of a provided Buffer. It keeps
// the spans of every line and only recomputes the lines invalidated by
// changes. Keywords never contain a line delimiter, so highlighting a line on
// its own gives the same spans as highlighting the whole document.
type Highlighter struct {
	Buffer      Buffer
	Matcher     *syntax.Matcher
	Colorscheme *Colorscheme

	lineSpans [][]syntax.Span // nil means invalidated; offsets are within the line
}

func NewHighlighter(buffer Buffer, matcher *syntax.Matcher, colorscheme *Colorscheme) *Highlighter {
	return &Highlighter{
		Buffer:      buffer,
		Matcher:     matcher,
		Colorscheme: colorscheme,
		lineSpans:   make([][]syntax.Span, buffer.Lines()),
	}
}

// SetMatcher swaps the compiled keywords and invalidates every line, so no
// span computed with the old matcher is served afterwards.
func (h *Highlighter) SetMatcher(m *syntax.Matcher) {
	h.Matcher = m
	h.InvalidateLines(0, len(h.lineSpans)-1)
}

// Apply updates the line cache for an edit: lines whose delimiters were removed
// are dropped, inserted lines are added, and every line touched by the edit
// is invalidated.
func (h *Highlighter) Apply(c Change) {
	if c.Line < 0 || c.Line >= len(h.lineSpans) {
		h.resize()
		h.InvalidateLines(0, len(h.lineSpans)-1)
		return
	}

	tail := min(c.Line+1+c.Removed, len(h.lineSpans))
	h.lineSpans = slices.Replace(h.lineSpans, c.Line+1, tail, make([][]syntax.Span, c.Inserted)...)
	h.lineSpans[c.Line] = nil
	h.resize()
}

// resize matches the cache to the number of lines in the buffer.
func (h *Highlighter) resize() {
	lines := h.Buffer.Lines()
	if len(h.lineSpans) < lines {
		h.lineSpans = append(h.lineSpans, make([][]syntax.Span, lines-len(h.lineSpans))...)
	} else {
		h.lineSpans = h.lineSpans[:lines]
	}
}

// UpdateLines forces the spans for lines between startLine and endLine,
// inclusively, to be recomputed. It is more efficient to mark lines as
// invalidated when changes occur and call UpdateInvalidatedLines(...).
func (h *Highlighter) UpdateLines(startLine, endLine int) {
	h.resize()
	startLine = max(startLine, 0)
	for i := startLine; i <= endLine && i < len(h.lineSpans); i++ {
		spans := h.Matcher.Highlight(string(h.Buffer.Line(i)))
		if spans == nil {
			spans = make([]syntax.Span, 0) // Validated, but nothing to color
		}
		h.lineSpans[i] = spans
	}
}

// UpdateInvalidatedLines only updates the highlighting for lines that are
// invalidated between lines startLine and endLine, inclusively.
func (h *Highlighter) UpdateInvalidatedLines(startLine, endLine int) {
	h.resize()
	startLine = max(startLine, 0)
	for i := startLine; i <= endLine && i < len(h.lineSpans); i++ {
		if h.lineSpans[i] == nil {
			h.UpdateLines(i, i)
		}
	}
}

func (h *Highlighter) HasInvalidatedLines(startLine, endLine int) bool {
	for i := max(startLine, 0); i <= endLine && i < len(h.lineSpans); i++ {
		if h.lineSpans[i] == nil {
			return true
		}
	}
	return false
}

func (h *Highlighter) InvalidateLines(startLine, endLine int) {
	for i := max(startLine, 0); i <= endLine && i < len(h.lineSpans); i++ {
		h.lineSpans[i] = nil
	}
}

// GetLineSpans returns the spans of line, sorted by offset within the line.
// Invalidated lines return nil until they are updated.
func (h *Highlighter) GetLineSpans(line int) []syntax.Span {
	if line < 0 || line >= len(h.lineSpans) {
		return nil
	}
	return h.lineSpans[line]
}

func (h *Highlighter) GetStyle(span syntax.Span) tcell.Style {
	return h.Colorscheme.GetStyle(span.Category)
}
