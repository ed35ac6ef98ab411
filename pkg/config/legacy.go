package config

import (
	"fmt"
	"io"

	"github.com/tidwall/gjson"

	"github.com/fivemoreminix/moledit/pkg/syntax"
)

// ImportLegacy reads the JSON keyword file of the earlier Mollang IDE:
//
//	{"제어_키워드": {"words": ["은?행", "털!자"], "color": "#FF6B35"}, ...}
//
// Categories keep the order of the object's keys. Words were plain text, so
// they are escaped into literal patterns, and every category is bold like it
// was in that IDE.
func ImportLegacy(r io.Reader) (*syntax.Registry, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, &IOError{Op: "read", Err: err}
	}
	if !gjson.ValidBytes(data) {
		return nil, corrupt("legacy keywords are not valid JSON")
	}
	root := gjson.ParseBytes(data)
	if !root.IsObject() {
		return nil, corrupt("legacy keywords must be a JSON object")
	}

	var (
		cats    []syntax.Category
		failure error
	)
	root.ForEach(func(key, value gjson.Result) bool {
		name := key.String()
		words := value.Get("words")
		color := value.Get("color")

		if !value.IsObject() || !words.IsArray() {
			failure = corrupt("legacy category %q has no word list", name)
			return false
		}
		if color.Type != gjson.String {
			failure = corrupt("legacy category %q has no color", name)
			return false
		}

		patterns := make([]string, 0, len(words.Array()))
		for _, w := range words.Array() {
			if w.Type != gjson.String {
				failure = corrupt("legacy category %q has a word that is not a string", name)
				return false
			}
			patterns = append(patterns, syntax.EscapeLiteral(w.String()))
		}

		cats = append(cats, syntax.Category{
			Name:     name,
			Patterns: patterns,
			Style:    syntax.Style{Color: color.String(), Bold: true},
		})
		return true
	})
	if failure != nil {
		return nil, failure
	}

	reg, err := syntax.NewRegistry(cats...)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCorruptFormat, err)
	}
	return reg, nil
}
