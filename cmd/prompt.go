package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/fivemoreminix/moledit/pkg/syntax"
	"github.com/fivemoreminix/moledit/ui"
)

// prompt replaces the status bar with an input field. accept receives the
// text on Enter; Escape just closes the prompt.
func (e *editor) prompt(label, initial string, accept func(string)) {
	input := ui.NewInputField(e.screen, label, e.theme)
	input.SetText(initial)
	input.OnAccept = func(text string) {
		e.closePrompt()
		accept(text)
	}
	input.OnCancel = e.closePrompt

	e.input = input
	e.resize()
	e.textEdit.SetFocused(false)
	input.SetFocused(true)
}

func (e *editor) closePrompt() {
	if e.input != nil {
		e.input.SetFocused(false)
		e.input = nil
	}
	e.resize()
	e.textEdit.SetFocused(true)
}

// gotoLine asks for a 1-based line number and moves the cursor there.
func (e *editor) gotoLine() {
	e.prompt("Go to line: ", "", func(text string) {
		num, err := strconv.Atoi(strings.TrimSpace(text))
		if err != nil || num < 1 {
			e.status.SetError(fmt.Sprintf("not a line number: %q", text))
			return
		}
		te := e.textEdit
		te.SetCursor(te.GetCursor().SetLineCol(num-1, 0))
		te.ScrollToCursor()
	})
}

// addSelectionKeyword asks for a category and adds the selected text to it as
// a literal keyword.
func (e *editor) addSelectionKeyword() {
	word := string(e.textEdit.GetSelectedBytes())
	if word == "" {
		e.status.SetError("select the keyword to add first")
		return
	}
	e.prompt(fmt.Sprintf("Add %q to category: ", word), "", func(name string) {
		name = strings.TrimSpace(name)
		if err := e.registry.AddKeyword(name, syntax.EscapeLiteral(word)); err != nil {
			e.status.SetError(err.Error())
			return
		}
		e.status.SetMessage(fmt.Sprintf("added %q to %s; Ctrl+K to save", word, name))
	})
}
