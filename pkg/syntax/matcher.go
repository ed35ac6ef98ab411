package syntax

import (
	"sort"
	"unicode/utf8"
)

type candidate struct {
	pattern  Pattern
	category *Category
}

// A Matcher is the compiled form of an ordered list of categories. It is
// immutable once built, so a Matcher handed to a highlight pass never changes
// under it; the Registry publishes a fresh Matcher after every mutation.
type Matcher struct {
	categories []Category
	byRune     map[rune][]candidate // Candidates by first rune, in priority order
	patterns   int
}

// Compile builds a Matcher from categories. Candidates are ordered by category
// (earlier first) and, within a category, by pattern length descending.
func Compile(categories []Category) (*Matcher, error) {
	m := &Matcher{
		categories: make([]Category, len(categories)),
		byRune:     make(map[rune][]candidate),
	}

	for i, c := range categories {
		m.categories[i] = c.Clone()
		if err := c.Style.Validate(); err != nil {
			return nil, err
		}

		parsed := make([]Pattern, 0, len(c.Patterns))
		for _, src := range c.Patterns {
			p, err := ParsePattern(src)
			if err != nil {
				return nil, err
			}
			parsed = append(parsed, p)
		}
		sort.SliceStable(parsed, func(a, b int) bool {
			return parsed[a].MinLen() > parsed[b].MinLen()
		})

		cat := &m.categories[i]
		for _, p := range parsed {
			first := p.firstRune()
			m.byRune[first] = append(m.byRune[first], candidate{p, cat})
			m.patterns++
		}
	}
	return m, nil
}

// Categories returns the categories m was compiled from, in priority order.
func (m *Matcher) Categories() []Category {
	if m == nil {
		return nil
	}
	out := make([]Category, len(m.categories))
	for i, c := range m.categories {
		out[i] = c.Clone()
	}
	return out
}

// Patterns returns the number of compiled patterns.
func (m *Matcher) Patterns() int {
	if m == nil {
		return 0
	}
	return m.patterns
}

// MatchAt returns the best match starting exactly at text[at:]. The longest
// match wins; among matches of equal length the earliest candidate wins, which
// means the category earlier in priority order. n is zero when nothing matches.
func (m *Matcher) MatchAt(text string, at int) (n int, cat *Category) {
	if m == nil || at < 0 || at >= len(text) {
		return 0, nil
	}
	r, _ := utf8.DecodeRuneInString(text[at:])
	for _, c := range m.byRune[r] {
		if l := c.pattern.matchAt(text, at); l > n {
			n, cat = l, c.category
		}
	}
	return n, cat
}
