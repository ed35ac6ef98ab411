package ui

import (
	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"
)

// DrawRect renders a filled box at `x` and `y`, of size `width` and `height`.
// Will not call `Show()`.
func DrawRect(s tcell.Screen, x, y, width, height int, char rune, style tcell.Style) {
	for col := x; col < x+width; col++ {
		for row := y; row < y+height; row++ {
			s.SetContent(col, row, char, nil, style)
		}
	}
}

// DrawStr will render each character of a string at `x` and `y`, stopping before
// column `maxX`. Wide characters take two columns. Returns the column after the
// last character drawn.
func DrawStr(s tcell.Screen, x, y, maxX int, str string, style tcell.Style) int {
	for _, r := range str {
		w := runewidth.RuneWidth(r)
		if w == 0 {
			continue
		}
		if x+w > maxX {
			break
		}
		s.SetContent(x, y, r, nil, style)
		x += w
	}
	return x
}
