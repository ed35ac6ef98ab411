package syntax

import (
	"iter"
	"strings"
	"unicode/utf8"
)

// A Span is a range of text, in byte offsets [Start, End), attributed to a
// Category. Text not covered by any span is unstyled.
type Span struct {
	Start, End int
	Category   *Category
}

func (s Span) Len() int { return s.End - s.Start }

// Highlight scans text from left to right. At each offset it takes the best
// match (see MatchAt) and emits a span for it, or steps over one rune when
// nothing matches. The scan covers every byte, never backtracks, and cannot
// fail: empty text, invalid UTF-8 and text without keywords all produce a
// (possibly empty) span list. The returned spans are sorted and do not
// overlap.
func (m *Matcher) Highlight(text string) []Span {
	return m.scan(text, 0, len(text), nil)
}

// HighlightRegion highlights the lines of text touched by [start, end). The
// region is widened to whole lines, which are the boundaries no keyword can
// cross, so the result equals the spans a full Highlight would produce inside
// those lines. Offsets in the result are relative to text.
func (m *Matcher) HighlightRegion(text string, start, end int) []Span {
	start, end = LineBounds(text, start, end)
	return m.scan(text, start, end, nil)
}

// LineBounds widens [start, end) to the start of the first line and the end
// (before the line break) of the last line it touches.
func LineBounds(text string, start, end int) (int, int) {
	start = clamp(start, 0, len(text))
	end = clamp(end, start, len(text))

	start = strings.LastIndexByte(text[:start], '\n') + 1
	if i := strings.IndexByte(text[end:], '\n'); i >= 0 {
		end += i
	} else {
		end = len(text)
	}
	return start, end
}

func (m *Matcher) scan(text string, from, to int, spans []Span) []Span {
	window := text[:to] // Matches may not run past the window
	for pos := from; pos < to; {
		if n, cat := m.MatchAt(window, pos); n > 0 {
			spans = append(spans, Span{pos, pos + n, cat})
			pos += n
			continue
		}
		_, size := utf8.DecodeRuneInString(window[pos:])
		pos += size
	}
	return spans
}

// A Segment is a piece of text that is either covered by a span or is a gap
// between spans (Category is nil).
type Segment struct {
	Start, End int
	Category   *Category
}

// Segments walks [0, length) as alternating gaps and spans, in order. The
// segments exactly tile the range. spans must be sorted and non-overlapping,
// as returned by Highlight.
func Segments(spans []Span, length int) iter.Seq[Segment] {
	return func(yield func(Segment) bool) {
		pos := 0
		for _, s := range spans {
			if s.Start > pos {
				if !yield(Segment{pos, s.Start, nil}) {
					return
				}
			}
			if !yield(Segment{s.Start, s.End, s.Category}) {
				return
			}
			pos = s.End
		}
		if pos < length {
			yield(Segment{pos, length, nil})
		}
	}
}

func clamp(v, lo, hi int) int {
	return max(lo, min(v, hi))
}
