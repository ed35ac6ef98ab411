package buffer

import (
	"testing"

	"github.com/fivemoreminix/moledit/pkg/syntax"
	"github.com/gdamore/tcell/v2"
)

func newTestHighlighter(t *testing.T, contents string) (*Highlighter, *syntax.Registry) {
	t.Helper()
	reg := syntax.NewDefaultRegistry()
	buf := NewRopeBuffer([]byte(contents))
	return NewHighlighter(buf, reg.Matcher(), NewColorscheme(tcell.StyleDefault, tcell.StyleDefault)), reg
}

// lineNames returns the category names of the spans on line.
func lineNames(h *Highlighter, line int) []string {
	var out []string
	for _, s := range h.GetLineSpans(line) {
		out = append(out, s.Category.Name)
	}
	return out
}

func equal(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestHighlighterUpdateLines(t *testing.T) {
	h, _ := newTestHighlighter(t, "몰?\n몰루\n\nhello")

	if !h.HasInvalidatedLines(0, 3) {
		t.Fatalf("Expected a fresh highlighter to have invalidated lines")
	}

	h.UpdateInvalidatedLines(0, 3)
	if h.HasInvalidatedLines(0, 3) {
		t.Errorf("Expected every line to be validated")
	}

	if got := lineNames(h, 0); !equal(got, []string{"variables", "operators"}) {
		t.Errorf("line 0: got %v", got)
	}
	if got := lineNames(h, 1); !equal(got, []string{"variables", "io"}) {
		t.Errorf("line 1: got %v", got)
	}
	if spans := h.GetLineSpans(3); spans == nil || len(spans) != 0 {
		t.Errorf("Expected an empty, validated span list for line 3, got %#v", spans)
	}
}

func TestHighlighterMatchesWholeDocument(t *testing.T) {
	text := "몰~몰루?\n머리 은?행 몰,모올\n??.????루!"
	h, reg := newTestHighlighter(t, text)
	h.UpdateLines(0, h.Buffer.Lines()-1)

	var got []syntax.Span
	for line := 0; line < h.Buffer.Lines(); line++ {
		start := h.Buffer.LineColToPos(line, 0)
		for _, s := range h.GetLineSpans(line) {
			got = append(got, syntax.Span{Start: s.Start + start, End: s.End + start, Category: s.Category})
		}
	}

	want := reg.Highlight(text)
	if len(got) != len(want) {
		t.Fatalf("Expected %v spans, got %v", len(want), len(got))
	}
	for i := range want {
		if got[i].Start != want[i].Start || got[i].End != want[i].End || got[i].Category.Name != want[i].Category.Name {
			t.Errorf("span %v: expected %+v, got %+v", i, want[i], got[i])
		}
	}
}

func TestHighlighterApplyInsertedLine(t *testing.T) {
	h, _ := newTestHighlighter(t, "몰\n루")
	h.UpdateLines(0, 1)

	h.Buffer.Insert(0, 1, []byte("?\n아"))       // "몰?\n아\n루"
	h.Apply(Change{Line: 0, Inserted: 1})

	if !h.HasInvalidatedLines(0, 1) {
		t.Errorf("Expected the edited lines to be invalidated")
	}
	if h.HasInvalidatedLines(2, 2) {
		t.Errorf("Expected the shifted line to keep its spans")
	}

	h.UpdateInvalidatedLines(0, 2)
	if got := lineNames(h, 1); !equal(got, []string{"io"}) {
		t.Errorf("line 1: got %v", got)
	}
	if got := lineNames(h, 2); !equal(got, []string{"io"}) {
		t.Errorf("line 2: got %v", got)
	}
}

func TestHighlighterApplyRemovedLine(t *testing.T) {
	h, _ := newTestHighlighter(t, "몰\n루\n아")
	h.UpdateLines(0, 2)

	h.Buffer.Remove(0, 1, 1, 0) // "몰루\n아"
	h.Apply(Change{Line: 0, Removed: 1})

	h.UpdateInvalidatedLines(0, 1)
	if got := lineNames(h, 0); !equal(got, []string{"variables", "io"}) {
		t.Errorf("line 0: got %v", got)
	}
	if got := lineNames(h, 1); !equal(got, []string{"io"}) {
		t.Errorf("line 1: got %v", got)
	}
	if h.GetLineSpans(2) != nil {
		t.Errorf("Expected no line 2")
	}
}

func TestHighlighterSetMatcher(t *testing.T) {
	h, reg := newTestHighlighter(t, "루")
	reg.OnChange(h.SetMatcher)
	h.UpdateLines(0, 0)

	if err := reg.RemoveCategory("io"); err != nil {
		t.Fatal(err)
	}
	if !h.HasInvalidatedLines(0, 0) {
		t.Fatalf("Expected a registry change to invalidate every line")
	}

	h.UpdateInvalidatedLines(0, 0)
	if spans := h.GetLineSpans(0); len(spans) != 0 {
		t.Errorf("Expected 루 to be unstyled, got %v", lineNames(h, 0))
	}
}

func TestColorschemeGetStyle(t *testing.T) {
	base := tcell.StyleDefault.Background(tcell.ColorBlack)
	c := NewColorscheme(base, base)

	if st := c.GetStyle(nil); st != base {
		t.Errorf("Expected unstyled text to use the default style")
	}

	cat := &syntax.Category{Name: "io", Style: syntax.Style{Color: "#2196F3", Bold: true}}
	fg, bg, attrs := c.GetStyle(cat).Decompose()
	if fg != tcell.NewRGBColor(0x21, 0x96, 0xF3) {
		t.Errorf("Expected foreground #2196F3, got %v", fg)
	}
	if bg != tcell.ColorBlack {
		t.Errorf("Expected the background to be kept, got %v", bg)
	}
	if attrs&tcell.AttrBold == 0 {
		t.Errorf("Expected bold")
	}

	var nilScheme *Colorscheme
	if st := nilScheme.GetStyle(cat); st != tcell.StyleDefault {
		t.Errorf("Expected a nil colorscheme to return tcell.StyleDefault")
	}
}
