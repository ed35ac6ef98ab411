package ui

import (
	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"
)

// An InputField is a single-line prompt drawn over the status bar, used for
// questions like "go to line". Enter calls OnAccept with the text and Escape
// calls OnCancel.
type InputField struct {
	Label    string
	OnAccept func(text string)
	OnCancel func()

	text      []rune
	cursorPos int // In runes
	screen    tcell.Screen

	baseComponent
}

func NewInputField(screen tcell.Screen, label string, theme *Theme) *InputField {
	return &InputField{
		Label:         label,
		screen:        screen,
		baseComponent: baseComponent{theme: theme, height: 1},
	}
}

func (f *InputField) Text() string {
	return string(f.text)
}

func (f *InputField) SetText(s string) {
	f.text = []rune(s)
	f.SetCursorPos(len(f.text))
}

func (f *InputField) GetCursorPos() int {
	return f.cursorPos
}

// SetCursorPos sets the cursor position offset. Offset is clamped to possible values.
func (f *InputField) SetCursorPos(offset int) {
	f.cursorPos = max(0, min(offset, len(f.text)))
	f.updateCursor()
}

func (f *InputField) updateCursor() {
	if f.focused && f.screen != nil {
		x := f.x + 1 + runewidth.StringWidth(f.Label) + runewidth.StringWidth(string(f.text[:f.cursorPos]))
		f.screen.ShowCursor(min(x, f.x+f.width-1), f.y)
	}
}

// Delete removes the rune after the cursor when forward is set, or the one
// before it otherwise.
func (f *InputField) Delete(forward bool) {
	if forward {
		if f.cursorPos < len(f.text) {
			f.text = append(f.text[:f.cursorPos], f.text[f.cursorPos+1:]...)
		}
	} else if f.cursorPos > 0 {
		f.text = append(f.text[:f.cursorPos-1], f.text[f.cursorPos:]...)
		f.cursorPos--
	}
	f.updateCursor()
}

func (f *InputField) Draw(s tcell.Screen) {
	style := f.theme.GetOrDefault("InputField")

	DrawRect(s, f.x, f.y, f.width, f.height, ' ', style) // Draw background
	x := DrawStr(s, f.x+1, f.y, f.x+f.width, f.Label, style)
	DrawStr(s, x, f.y, f.x+f.width, string(f.text), style)

	f.updateCursor()
}

func (f *InputField) SetFocused(v bool) {
	f.focused = v
	if v {
		f.updateCursor()
	} else if f.screen != nil {
		f.screen.HideCursor()
	}
}

func (f *InputField) HandleEvent(event tcell.Event) bool {
	ev, ok := event.(*tcell.EventKey)
	if !ok {
		return false
	}
	switch ev.Key() {
	case tcell.KeyLeft:
		f.SetCursorPos(f.cursorPos - 1)
	case tcell.KeyRight:
		f.SetCursorPos(f.cursorPos + 1)
	case tcell.KeyHome:
		f.SetCursorPos(0)
	case tcell.KeyEnd:
		f.SetCursorPos(len(f.text))
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		f.Delete(false)
	case tcell.KeyDelete:
		f.Delete(true)
	case tcell.KeyEnter:
		if f.OnAccept != nil {
			f.OnAccept(f.Text())
		}
	case tcell.KeyEscape:
		if f.OnCancel != nil {
			f.OnCancel()
		}
	case tcell.KeyRune:
		f.text = append(f.text[:f.cursorPos], append([]rune{ev.Rune()}, f.text[f.cursorPos:]...)...)
		f.SetCursorPos(f.cursorPos + 1)
	default:
		return false
	}
	return true
}
