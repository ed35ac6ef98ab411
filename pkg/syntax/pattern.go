package syntax

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"
)

type PatternKind uint8

const (
	Literal  PatternKind = iota // Exact text
	Wildcard                    // Prefix, one or more Repeat runes, then Suffix
)

func (k PatternKind) String() string {
	if k == Wildcard {
		return "wildcard"
	}
	return "literal"
}

// A Pattern is a parsed keyword. Keywords are written as plain text, where
// `{c}` stands for one or more repetitions of the rune c, and a backslash
// escapes the rune after it. So `모{오}올` matches 모오올, 모오오올 and so on,
// and `?{?}` matches two or more question marks.
//
// A Literal pattern only uses Prefix.
type Pattern struct {
	Kind   PatternKind
	Prefix string
	Repeat rune
	Suffix string
	Source string // Text the pattern was parsed from
}

// ParsePattern parses a keyword written in pattern notation. The source is
// normalized to NFC first so that keywords typed with decomposed Hangul jamo
// match composed text.
func ParsePattern(source string) (Pattern, error) {
	source = norm.NFC.String(source)
	p := Pattern{Kind: Literal, Source: source}

	if source == "" {
		return p, fmt.Errorf("%w: empty pattern", ErrInvalidPattern)
	}
	if strings.ContainsAny(source, "\r\n") {
		return p, fmt.Errorf("%w: %q contains a line break", ErrInvalidPattern, source)
	}

	var prefix, suffix strings.Builder
	cur := &prefix // Builder receiving literal runes

	for i := 0; i < len(source); {
		r, size := utf8.DecodeRuneInString(source[i:])
		i += size

		switch r {
		case '\\':
			if i >= len(source) {
				return p, fmt.Errorf("%w: %q ends with an escape", ErrInvalidPattern, source)
			}
			esc, escSize := utf8.DecodeRuneInString(source[i:])
			i += escSize
			cur.WriteRune(esc)
		case '{':
			if p.Kind == Wildcard {
				return p, fmt.Errorf("%w: %q has more than one repetition group", ErrInvalidPattern, source)
			}
			rep, repSize := utf8.DecodeRuneInString(source[i:])
			if i >= len(source) || rep == '}' {
				return p, fmt.Errorf("%w: %q has an empty repetition group", ErrInvalidPattern, source)
			}
			i += repSize
			if i >= len(source) || source[i] != '}' {
				return p, fmt.Errorf("%w: %q: repetition group must hold exactly one character", ErrInvalidPattern, source)
			}
			i++ // '}'
			p.Kind = Wildcard
			p.Repeat = rep
			cur = &suffix
		default:
			cur.WriteRune(r)
		}
	}

	p.Prefix = prefix.String()
	p.Suffix = suffix.String()

	if p.Kind == Wildcard {
		// Greedy repetition would swallow the suffix and never match.
		if first, _ := utf8.DecodeRuneInString(p.Suffix); p.Suffix != "" && first == p.Repeat {
			return p, fmt.Errorf("%w: %q: suffix starts with the repeated character", ErrInvalidPattern, source)
		}
	}
	return p, nil
}

// MinLen returns the length in bytes of the shortest text the pattern matches.
func (p Pattern) MinLen() int {
	if p.Kind == Literal {
		return len(p.Prefix)
	}
	return len(p.Prefix) + utf8.RuneLen(p.Repeat) + len(p.Suffix)
}

// firstRune is the rune every match of p starts with.
func (p Pattern) firstRune() rune {
	if p.Prefix != "" {
		r, _ := utf8.DecodeRuneInString(p.Prefix)
		return r
	}
	return p.Repeat
}

// matchAt returns the length of the match of p starting exactly at text[at:],
// or zero. Repetitions are consumed greedily; a prefix that is not followed by
// a valid continuation is simply no match.
func (p Pattern) matchAt(text string, at int) int {
	rest := text[at:]
	if !strings.HasPrefix(rest, p.Prefix) {
		return 0
	}
	if p.Kind == Literal {
		return len(p.Prefix)
	}

	i := len(p.Prefix)
	var reps int
	for i < len(rest) {
		r, size := utf8.DecodeRuneInString(rest[i:])
		if r != p.Repeat {
			break
		}
		i += size
		reps++
	}
	if reps == 0 || !strings.HasPrefix(rest[i:], p.Suffix) {
		return 0
	}
	return i + len(p.Suffix)
}

// EscapeLiteral quotes s so that ParsePattern reads it back as the literal s.
func EscapeLiteral(s string) string {
	if !strings.ContainsAny(s, `\{`) {
		return s
	}
	var b strings.Builder
	for _, r := range s {
		if r == '\\' || r == '{' {
			b.WriteByte('\\')
		}
		b.WriteRune(r)
	}
	return b.String()
}
