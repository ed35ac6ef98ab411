package ui

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatusBar_Draw(t *testing.T) {
	s := newScreen(t, 20, 1)
	bar := NewStatusBar(nil)
	bar.SetPos(0, 0)
	bar.SetSize(20, 1)

	bar.SetMessage("saved")
	bar.SetInfo("1:1")
	bar.Draw(s)

	r, style := cellAt(s, 1, 0)
	assert.Equal(t, 's', r)
	assert.Equal(t, DefaultTheme["StatusBar"], style)
	r, _ = cellAt(s, 16, 0)
	assert.Equal(t, '1', r)

	bar.SetError("boom")
	bar.Draw(s)
	_, style = cellAt(s, 1, 0)
	assert.Equal(t, DefaultTheme["StatusBarError"], style)
	msg, isErr := bar.Message()
	assert.Equal(t, "boom", msg)
	assert.True(t, isErr)
}
