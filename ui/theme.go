package ui

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
)

// A Theme is a map of string names to styles. Themes can be passed by reference to components
// to set their styles. If a theme value cannot be found, then the `DefaultTheme` value will be
// used, instead. An updated list of theme keys can be found on the default theme.
type Theme map[string]tcell.Style

func (theme *Theme) GetOrDefault(key string) tcell.Style {
	if theme != nil {
		if val, ok := (*theme)[key]; ok {
			return val
		}
	}

	if val, ok := DefaultTheme[key]; ok {
		return val
	} else {
		panic(fmt.Sprintf("key \"%v\" not present in default theme", key))
	}
}

// DefaultTheme uses only the first 16 colors present in most colored terminals. Keyword colors
// come from the keyword registry and are drawn on top of "TextEdit".
var DefaultTheme = Theme{
	"InputField":       tcell.Style{}.Foreground(tcell.ColorWhite).Background(tcell.ColorNavy),
	"StatusBar":        tcell.Style{}.Foreground(tcell.ColorBlack).Background(tcell.ColorSilver),
	"StatusBarError":   tcell.Style{}.Foreground(tcell.ColorWhite).Background(tcell.ColorMaroon),
	"TextEdit":         tcell.Style{}.Foreground(tcell.ColorSilver).Background(tcell.ColorBlack),
	"TextEditColumn":   tcell.Style{}.Foreground(tcell.ColorGray).Background(tcell.ColorBlack),
	"TextEditSelected": tcell.Style{}.Foreground(tcell.ColorBlack).Background(tcell.ColorSilver),
}
