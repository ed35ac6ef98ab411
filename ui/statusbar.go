package ui

import (
	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"
)

// StatusBar is the line under the editor. The left side shows a message, the
// right side shows whatever the editor reports with SetInfo.
type StatusBar struct {
	message string
	isError bool
	info    string

	baseComponent
}

func NewStatusBar(theme *Theme) *StatusBar {
	return &StatusBar{baseComponent: baseComponent{theme: theme, height: 1}}
}

// SetMessage shows msg until the next message.
func (b *StatusBar) SetMessage(msg string) {
	b.message, b.isError = msg, false
}

// SetError shows msg in the error style.
func (b *StatusBar) SetError(msg string) {
	b.message, b.isError = msg, true
}

func (b *StatusBar) Message() (msg string, isError bool) {
	return b.message, b.isError
}

func (b *StatusBar) SetInfo(info string) {
	b.info = info
}

func (b *StatusBar) Draw(s tcell.Screen) {
	style := b.theme.GetOrDefault("StatusBar")
	DrawRect(s, b.x, b.y, b.width, 1, ' ', style)

	infoX := b.x + b.width - runewidth.StringWidth(b.info) - 1
	msgStyle := style
	if b.isError {
		msgStyle = b.theme.GetOrDefault("StatusBarError")
	}
	DrawStr(s, b.x+1, b.y, max(infoX-1, b.x), b.message, msgStyle)
	if infoX > b.x {
		DrawStr(s, infoX, b.y, b.x+b.width, b.info, style)
	}
}

// HandleEvent is a no-op; the status bar never takes input.
func (b *StatusBar) HandleEvent(tcell.Event) bool {
	return false
}
