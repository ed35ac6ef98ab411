package ui

import (
	"bytes"
	"fmt"
	"math"
	"os"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"

	"github.com/fivemoreminix/moledit/pkg/syntax"
	"github.com/fivemoreminix/moledit/ui/buffer"
)

// TextEdit is a field for line-based editing of Mollang source. Keywords are
// colored by a Highlighter that only rescans the lines touched by each edit.
type TextEdit struct {
	Buffer      buffer.Buffer
	Highlighter *buffer.Highlighter
	LineNumbers bool   // Whether to render line numbers (and therefore the column)
	Dirty       bool   // Whether the buffer has been edited
	UseHardTabs bool   // When true, tabs are '\t'
	TabSize     int    // How many spaces to indent by
	IsCRLF      bool   // Whether the file's line endings are CRLF (\r\n) or LF (\n)
	FilePath    string // Will be empty if the file has not been saved yet

	screen           tcell.Screen // We keep our own reference to the screen for cursor purposes.
	cursor           buffer.Cursor
	mark             buffer.Cursor // Other end of the selection while selectMode is set
	selectMode       bool
	scrollx, scrolly int // Scroll offset: scrolly in lines, scrollx in screen columns

	baseComponent
}

// NewTextEdit initializes the buffer using the given contents. If filePath is
// empty, the TextEdit has no file association yet.
func NewTextEdit(screen tcell.Screen, filePath string, contents []byte, matcher *syntax.Matcher, theme *Theme) *TextEdit {
	te := &TextEdit{
		LineNumbers: true,
		UseHardTabs: true,
		TabSize:     4,
		FilePath:    filePath,

		screen:        screen,
		baseComponent: baseComponent{theme: theme},
	}
	te.SetContents(contents, matcher)
	return te
}

// SetContents replaces the text being edited. The line delimiter style is taken
// from the first line break.
func (t *TextEdit) SetContents(contents []byte, matcher *syntax.Matcher) {
	if i := bytes.IndexByte(contents, '\n'); i > 0 {
		t.IsCRLF = contents[i-1] == '\r'
	} else {
		t.IsCRLF = false
	}

	t.Buffer = buffer.NewRopeBuffer(contents)
	t.cursor = buffer.NewCursor(t.Buffer)
	t.selectMode = false
	t.scrollx, t.scrolly = 0, 0

	colorscheme := buffer.NewColorscheme(t.theme.GetOrDefault("TextEdit"), t.theme.GetOrDefault("TextEditColumn"))
	t.Highlighter = buffer.NewHighlighter(t.Buffer, matcher, colorscheme)
}

// SetMatcher recolors the whole document with new keywords.
func (t *TextEdit) SetMatcher(m *syntax.Matcher) {
	t.Highlighter.SetMatcher(m)
}

// SetTheme applies the theme, including the base style keyword colors are
// drawn on.
func (t *TextEdit) SetTheme(theme *Theme) {
	t.theme = theme
	t.Highlighter.Colorscheme = buffer.NewColorscheme(theme.GetOrDefault("TextEdit"), theme.GetOrDefault("TextEditColumn"))
}

// GetLineDelimiter returns "\r\n" for a CRLF buffer, or "\n" for an LF buffer.
func (t *TextEdit) GetLineDelimiter() string {
	if t.IsCRLF {
		return "\r\n"
	}
	return "\n"
}

func (t *TextEdit) String() string {
	return string(t.Buffer.Bytes())
}

// Save writes the buffer to FilePath.
func (t *TextEdit) Save() error {
	if t.FilePath == "" {
		return fmt.Errorf("no file name")
	}
	f, err := os.Create(t.FilePath)
	if err != nil {
		return err
	}
	if _, err := t.Buffer.WriteTo(f); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	t.Dirty = false
	return nil
}

// selection returns the selected range as two cursors, start first. ok is false
// when nothing is selected.
func (t *TextEdit) selection() (start, end buffer.Cursor, ok bool) {
	if !t.selectMode || t.mark.Eq(t.cursor) {
		return t.cursor, t.cursor, false
	}
	if t.mark.Pos() < t.cursor.Pos() {
		return t.mark, t.cursor, true
	}
	return t.cursor, t.mark, true
}

// GetSelectedBytes returns the selected text. The slice returned may or may not
// be a copy of the buffer, so do not write to it.
func (t *TextEdit) GetSelectedBytes() []byte {
	start, end, ok := t.selection()
	if !ok {
		return nil
	}
	sl, sc := start.GetLineCol()
	el, ec := end.GetLineCol()
	return t.Buffer.Slice(sl, sc, el, ec)
}

// GetCurrentLine returns the line under the cursor, with a line delimiter.
func (t *TextEdit) GetCurrentLine() []byte {
	line, _ := t.cursor.GetLineCol()
	return append(bytes.Clone(t.Buffer.Line(line)), t.GetLineDelimiter()...)
}

// remove deletes the text between two cursors and reports the change to the
// highlighter. The cursor is left at start.
func (t *TextEdit) remove(start, end buffer.Cursor) {
	sl, sc := start.GetLineCol()
	el, ec := end.GetLineCol()
	t.Buffer.Remove(sl, sc, el, ec)
	t.Highlighter.Apply(buffer.Change{Line: sl, Removed: el - sl})
	t.cursor = t.cursor.SetLineCol(sl, sc)
	t.Dirty = true
}

// Delete with `forwards` false will backspace, destroying the character before the cursor,
// while Delete with `forwards` true will delete the character after (or on) the cursor.
// With a selection, the selection is deleted.
func (t *TextEdit) Delete(forwards bool) {
	if start, end, ok := t.selection(); ok {
		t.selectMode = false
		t.remove(start, end)
	} else if forwards {
		if next := t.cursor.Right(); !next.Eq(t.cursor) {
			t.remove(t.cursor, next)
		}
	} else {
		if prev := t.cursor.Left(); !prev.Eq(t.cursor) {
			t.remove(prev, t.cursor)
		}
	}

	t.ScrollToCursor()
	t.updateCursorVisibility()
}

// Insert writes `contents` at the cursor position, replacing any selection.
// Line breaks of any style are written with the buffer's delimiter, and tabs
// become spaces unless UseHardTabs is set.
func (t *TextEdit) Insert(contents string) {
	if _, _, ok := t.selection(); ok {
		t.Delete(true)
	}
	t.selectMode = false

	var text bytes.Buffer
	var lines int // Line delimiters written
	for i := 0; i < len(contents); {
		r, size := utf8.DecodeRuneInString(contents[i:])
		i += size
		switch r {
		case '\r':
			if i < len(contents) && contents[i] == '\n' {
				i++
			}
			fallthrough
		case '\n':
			text.WriteString(t.GetLineDelimiter())
			lines++
		case '\t':
			if !t.UseHardTabs {
				text.WriteString(strings.Repeat(" ", t.TabSize))
				break
			}
			text.WriteRune(r)
		default:
			text.WriteRune(r)
		}
	}
	if text.Len() == 0 {
		return
	}

	line, col := t.cursor.GetLineCol()
	pos := t.cursor.Pos()
	t.Buffer.Insert(line, col, text.Bytes())
	t.Highlighter.Apply(buffer.Change{Line: line, Inserted: lines})
	t.cursor = t.cursor.SetLineCol(t.Buffer.PosToLineCol(pos + text.Len()))
	t.Dirty = true

	t.ScrollToCursor()
	t.updateCursorVisibility()
}

// visualCol returns the screen column, relative to the text area, of the rune
// at col in line. Tabs advance to the next tab stop.
func (t *TextEdit) visualCol(line, col int) int {
	var vx int
	lineBytes := t.Buffer.Line(line)
	for i := 0; i < len(lineBytes) && col > 0; col-- {
		r, size := utf8.DecodeRune(lineBytes[i:])
		i += size
		vx += t.runeWidth(r, vx)
	}
	return vx
}

func (t *TextEdit) runeWidth(r rune, vx int) int {
	if r == '\t' {
		return t.TabSize - vx%t.TabSize
	}
	return runewidth.RuneWidth(r)
}

// updateCursorVisibility sets the position of the terminal's cursor with the
// cursor of the TextEdit, if the TextEdit is focused.
func (t *TextEdit) updateCursorVisibility() {
	if t.focused && t.screen != nil {
		line, col := t.cursor.GetLineCol()
		vx := t.visualCol(line, col)
		t.screen.ShowCursor(t.x+t.getColumnWidth()+vx-t.scrollx, t.y+line-t.scrolly)
	}
}

// Scroll the screen if the cursor is out of view.
func (t *TextEdit) ScrollToCursor() {
	line, col := t.cursor.GetLineCol()

	if line >= t.scrolly+t.height { // If the new line is below view...
		t.scrolly = line - t.height + 1 // Scroll just enough to view that line
	} else if line < t.scrolly { // If the new line is above view
		t.scrolly = line
	}

	textWidth := t.width - t.getColumnWidth()
	vx := t.visualCol(line, col)

	// Keep room for a wide rune under the cursor
	if vx+2 > t.scrollx+textWidth {
		t.scrollx = vx + 2 - textWidth
	} else if vx < t.scrollx {
		t.scrollx = vx
	}
	t.scrollx = max(t.scrollx, 0)
}

func (t *TextEdit) GetCursor() buffer.Cursor {
	return t.cursor
}

func (t *TextEdit) SetCursor(newCursor buffer.Cursor) {
	t.cursor = newCursor
	t.updateCursorVisibility()
}

// getColumnWidth returns the width of the line numbers column if it is present.
func (t *TextEdit) getColumnWidth() int {
	if !t.LineNumbers {
		return 0
	}
	return max(3, 1+len(strconv.Itoa(t.Buffer.Lines()))) // Column has minimum width of 2 digits
}

// Draw renders the TextEdit component.
func (t *TextEdit) Draw(s tcell.Screen) {
	columnWidth := t.getColumnWidth()
	bufferLines := t.Buffer.Lines()

	selectedStyle := t.theme.GetOrDefault("TextEditSelected")
	defaultStyle := t.Highlighter.Colorscheme.Default
	columnStyle := t.Highlighter.Colorscheme.Column

	t.Highlighter.UpdateInvalidatedLines(t.scrolly, t.scrolly+(t.height-1))

	selStart, selEnd, selecting := t.selection()
	startPos, endPos := selStart.Pos(), selEnd.Pos()

	left, right := t.x+columnWidth, t.x+t.width
	for lineY := t.y; lineY < t.y+t.height; lineY++ { // For each line we can draw...
		line := lineY + t.scrolly - t.y // The line number being drawn (starts at zero)

		DrawRect(s, left, lineY, right-left, 1, ' ', defaultStyle)

		lineNumStr := "" // Line number as a string
		if line < bufferLines {
			lineNumStr = strconv.Itoa(line + 1)

			lineBytes := t.Buffer.Line(line)
			lineStart := t.Buffer.LineColToPos(line, 0)
			text := string(lineBytes)

			var vx int // Visual column of the next rune
			for seg := range syntax.Segments(t.Highlighter.GetLineSpans(line), len(text)) {
				style := t.Highlighter.Colorscheme.GetStyle(seg.Category)
				for i, r := range text[seg.Start:seg.End] {
					w := t.runeWidth(r, vx)
					if w == 0 {
						continue
					}
					x := left + vx - t.scrollx
					vx += w
					if x < left {
						continue
					}
					if x+w > right {
						break
					}

					cellStyle := style
					if pos := lineStart + seg.Start + i; selecting && pos >= startPos && pos < endPos {
						cellStyle = selectedStyle
					}
					if r == '\t' {
						DrawRect(s, x, lineY, w, 1, ' ', cellStyle)
					} else {
						s.SetContent(x, lineY, r, nil, cellStyle)
					}
				}
			}
		}

		if columnWidth > 0 {
			columnStr := fmt.Sprintf("%*s│", columnWidth-1, lineNumStr) // Right align line number
			DrawStr(s, t.x, lineY, left, columnStr, columnStyle)
		}
	}

	t.updateCursorVisibility()
}

// SetFocused sets whether the TextEdit is focused. When focused, the cursor is set visible
// and its position is updated on every event.
func (t *TextEdit) SetFocused(v bool) {
	t.focused = v
	if v {
		t.updateCursorVisibility()
	} else if t.screen != nil {
		t.screen.HideCursor()
	}
}

// move places the cursor, growing the selection when extend is set and
// dropping it otherwise.
func (t *TextEdit) move(to buffer.Cursor, extend bool) {
	if extend && !t.selectMode {
		t.mark = t.cursor
		t.selectMode = true
	} else if !extend {
		t.selectMode = false
	}
	t.SetCursor(to)
	t.ScrollToCursor()
}

// HandleEvent allows the TextEdit to handle `event` if it chooses, returns
// whether the TextEdit handled the event.
func (t *TextEdit) HandleEvent(event tcell.Event) bool {
	ev, ok := event.(*tcell.EventKey)
	if !ok {
		return false
	}
	shift := ev.Modifiers()&tcell.ModShift != 0
	line, col := t.cursor.GetLineCol()

	switch ev.Key() {
	// Cursor movement
	case tcell.KeyUp:
		t.move(t.cursor.Up(), shift)
	case tcell.KeyDown:
		t.move(t.cursor.Down(), shift)
	case tcell.KeyLeft:
		t.move(t.cursor.Left(), shift)
	case tcell.KeyRight:
		t.move(t.cursor.Right(), shift)
	case tcell.KeyHome:
		t.move(t.cursor.SetLineCol(line, 0), shift)
	case tcell.KeyEnd:
		t.move(t.cursor.SetLineCol(line, math.MaxInt32), shift) // Max column
	case tcell.KeyPgUp:
		t.move(t.cursor.SetLineCol(line-t.height, col), shift)
	case tcell.KeyPgDn:
		t.move(t.cursor.SetLineCol(line+t.height, col), shift)

	// Deleting
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		t.Delete(false)
	case tcell.KeyDelete:
		t.Delete(true)

	// Other control
	case tcell.KeyTab:
		t.Insert("\t") // (can translate to spaces)
	case tcell.KeyEnter:
		t.Insert("\n")

	// Inserting
	case tcell.KeyRune:
		t.Insert(string(ev.Rune()))
	default:
		return false
	}
	return true
}
