package syntax

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

type spanText struct {
	Text     string
	Category string
}

// describe renders spans as (text, category) pairs for readable assertions.
func describe(text string, spans []Span) []spanText {
	out := make([]spanText, 0, len(spans))
	for _, s := range spans {
		out = append(out, spanText{text[s.Start:s.End], s.Category.Name})
	}
	return out
}

func TestHighlight_Scenario(t *testing.T) {
	r, err := NewRegistry(
		Category{Name: "variables", Patterns: []string{"몰"}},
		Category{Name: "io", Patterns: []string{"루", "루?", "루!"}},
	)
	require.NoError(t, err)

	text := "몰루?아"
	spans := r.Highlight(text)

	require.Len(t, spans, 2)
	assert.Equal(t, Span{0, len("몰"), spans[0].Category}, spans[0])
	assert.Equal(t, "variables", spans[0].Category.Name)
	assert.Equal(t, Span{len("몰"), len("몰") + len("루?"), spans[1].Category}, spans[1])
	assert.Equal(t, "io", spans[1].Category.Name)
	assert.Equal(t, len(text)-len("아"), spans[1].End, "아 is left unstyled")
}

func TestHighlight_LongestMatch(t *testing.T) {
	for _, order := range [][]Category{
		{{Name: "long", Patterns: []string{"몰루"}}, {Name: "short", Patterns: []string{"몰"}}},
		{{Name: "short", Patterns: []string{"몰"}}, {Name: "long", Patterns: []string{"몰루"}}},
	} {
		r, err := NewRegistry(order...)
		require.NoError(t, err)

		spans := r.Highlight("몰루?")
		assert.Equal(t, []spanText{{"몰루", "long"}}, describe("몰루?", spans))
	}
}

func TestHighlight_TieGoesToEarlierCategory(t *testing.T) {
	r, err := NewRegistry(
		Category{Name: "first", Patterns: []string{"루!"}},
		Category{Name: "second", Patterns: []string{"루!", "루"}},
	)
	require.NoError(t, err)

	assert.Equal(t, []spanText{{"루!", "first"}, {"루", "second"}}, describe("루!루", r.Highlight("루!루")))
}

func TestHighlight_Defaults(t *testing.T) {
	r := NewDefaultRegistry()

	tests := []struct {
		text string
		want []spanText
	}{
		{"몰?", []spanText{{"몰", "variables"}, {"?", "operators"}}},
		{"몰루", []spanText{{"몰", "variables"}, {"루", "io"}}},
		{"모오오올루!", []spanText{{"모오오올", "variables"}, {"루!", "io"}}},
		{"??.????루!", []spanText{{"??", "operators"}, {".", "operators"}, {"????", "operators"}, {"루!", "io"}}},
		{"몰~몰루?", []spanText{{"몰", "variables"}, {"~", "strings"}, {"몰", "variables"}, {"루?", "io"}}},
		{"머리 은?행 몰,모올", []spanText{
			{"머리", "functions"}, {"은?행", "control"}, {"몰", "variables"}, {",", "punctuation"}, {"모올", "variables"},
		}},
		{"가!자 가자!", []spanText{{"가!자", "jump"}, {"가자!", "jump"}}},
		{"0ㅅ0?", []spanText{{"0ㅅ0", "exit"}, {"?", "operators"}}},
		{"몰.....", []spanText{{"몰", "variables"}, {".....", "operators"}}},
		{"&몰*모올=", []spanText{{"&", "memory"}, {"몰", "variables"}, {"*", "memory"}, {"모올", "variables"}, {"=", "memory"}}},
		{"모오", []spanText{}},
	}

	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			assert.Equal(t, tt.want, describe(tt.text, r.Highlight(tt.text)))
		})
	}
}

func TestHighlight_NeverFails(t *testing.T) {
	r := NewDefaultRegistry()

	assert.Empty(t, r.Highlight(""))
	assert.Empty(t, r.Highlight("hello world"))
	assert.Empty(t, r.Highlight("\xff\xfe"))
	assert.Empty(t, (*Matcher)(nil).Highlight("몰"))

	empty, err := NewRegistry()
	require.NoError(t, err)
	assert.Empty(t, empty.Highlight("몰루"))
}

func TestHighlightRegion(t *testing.T) {
	r := NewDefaultRegistry()
	text := "몰?\n몰루 아\n0ㅅ0"
	second := strings.Index(text, "몰루")

	spans := r.Matcher().HighlightRegion(text, second+1, second+2)
	assert.Equal(t, []spanText{{"몰", "variables"}, {"루", "io"}, {"아", "io"}}, describe(text, spans))
	assert.Equal(t, second, spans[0].Start, "offsets are relative to the whole text")
}

func TestLineBounds(t *testing.T) {
	text := "ab\ncd\nef"

	tests := []struct {
		start, end         int
		wantStart, wantEnd int
	}{
		{0, 0, 0, 2},
		{4, 4, 3, 5},
		{1, 4, 0, 5},
		{2, 3, 0, 5},
		{7, 100, 6, 8},
		{-5, 1, 0, 2},
	}

	for _, tt := range tests {
		s, e := LineBounds(text, tt.start, tt.end)
		assert.Equal(t, tt.wantStart, s, "start of [%d,%d)", tt.start, tt.end)
		assert.Equal(t, tt.wantEnd, e, "end of [%d,%d)", tt.start, tt.end)
	}
}

func TestSegments_StopsEarly(t *testing.T) {
	r := NewDefaultRegistry()
	text := "x몰x몰x"
	var got int
	for range Segments(r.Highlight(text), len(text)) {
		got++
		if got == 2 {
			break
		}
	}
	assert.Equal(t, 2, got)
}

var alphabet = []rune("몰모오올울루아?!.~&*=,()은행털짓자가0ㅅ머리 \nx")

func genText() *rapid.Generator[string] {
	return rapid.StringOf(rapid.SampledFrom(alphabet))
}

func TestProperty_SpansTileText(t *testing.T) {
	m := NewDefaultRegistry().Matcher()

	rapid.Check(t, func(rt *rapid.T) {
		text := genText().Draw(rt, "text")
		spans := m.Highlight(text)

		prev := 0
		for _, s := range spans {
			require.GreaterOrEqual(rt, s.Start, prev, "spans are sorted and do not overlap")
			require.Greater(rt, s.End, s.Start, "spans are not empty")
			require.LessOrEqual(rt, s.End, len(text))
			require.True(rt, utf8.RuneStart(text[s.Start]), "spans start on a rune")
			require.NotNil(rt, s.Category)
			prev = s.End
		}

		covered := 0
		for seg := range Segments(spans, len(text)) {
			require.Equal(rt, covered, seg.Start, "segments are contiguous")
			covered = seg.End
		}
		require.Equal(rt, len(text), covered, "segments cover the whole text")
	})
}

func TestProperty_Idempotent(t *testing.T) {
	m := NewDefaultRegistry().Matcher()

	rapid.Check(t, func(rt *rapid.T) {
		text := genText().Draw(rt, "text")
		require.Equal(rt, m.Highlight(text), m.Highlight(text))
	})
}

func TestProperty_RegionMatchesWholeDocument(t *testing.T) {
	m := NewDefaultRegistry().Matcher()

	rapid.Check(t, func(rt *rapid.T) {
		text := genText().Draw(rt, "text")
		start := rapid.IntRange(0, len(text)).Draw(rt, "start")
		end := rapid.IntRange(start, len(text)).Draw(rt, "end")

		lo, hi := LineBounds(text, start, end)
		var want []Span
		for _, s := range m.Highlight(text) {
			if s.Start >= lo && s.End <= hi {
				want = append(want, s)
			}
		}
		require.Equal(rt, want, m.HighlightRegion(text, start, end))
	})
}
