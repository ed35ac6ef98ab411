package cmd

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/gdamore/tcell/v2"
	"github.com/spf13/cobra"

	"github.com/fivemoreminix/moledit/pkg/config"
	"github.com/fivemoreminix/moledit/pkg/log"
	"github.com/fivemoreminix/moledit/pkg/syntax"
	"github.com/fivemoreminix/moledit/ui"
)

// keywordsChanged is posted to the event loop when the keyword file changed on
// disk.
type keywordsChanged struct{}

// editor is the full-screen shell around one TextEdit. All state is owned by
// the event loop goroutine.
type editor struct {
	screen       tcell.Screen
	theme        *ui.Theme
	keywordsPath string
	registry     *syntax.Registry
	textEdit     *ui.TextEdit
	status       *ui.StatusBar
	input        *ui.InputField // Prompt shown in place of the status bar, if any
	clipboard    *ui.Clipboard
	quitArmed    bool // Ctrl+Q was pressed once with unsaved text
}

func runEditor(cmd *cobra.Command, args []string) error {
	var path string
	var contents []byte
	if len(args) > 0 {
		path = args[0]
		data, err := os.ReadFile(path)
		if err != nil && !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("opening %s: %w", path, err)
		}
		contents = data
	}

	s, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("creating screen: %w", err)
	}
	if err := s.Init(); err != nil {
		return fmt.Errorf("initializing screen: %w", err)
	}
	defer s.Fini() // Useful for handling panics

	e := newEditor(s, settings, path, contents)

	if noWatch, _ := cmd.Flags().GetBool("no-watch"); settings.WatchKeywords && !noWatch {
		stop, err := watchKeywords(s, e.keywordsPath)
		if err != nil {
			log.ErrorErr(log.CatWatcher, "keyword watcher unavailable", err)
		} else {
			defer stop()
		}
	}

	e.run()
	return nil
}

// newEditor builds the editor. Problems with the keyword file or clipboard are
// shown in the status line; the editor still opens with built-in keywords.
func newEditor(s tcell.Screen, st config.Settings, path string, contents []byte) *editor {
	e := &editor{
		screen:       s,
		theme:        &ui.Theme{},
		keywordsPath: st.KeywordsPath(),
	}
	e.status = ui.NewStatusBar(e.theme)

	var startupErr error
	reg, err := config.LoadOrDefault(e.keywordsPath)
	if err != nil {
		startupErr = fmt.Errorf("keywords not loaded, using defaults: %w", err)
		reg = syntax.NewDefaultRegistry()
	}
	e.registry = reg

	e.textEdit = ui.NewTextEdit(s, path, contents, reg.Matcher(), e.theme)
	e.textEdit.TabSize = st.TabSize
	e.textEdit.UseHardTabs = st.HardTabs
	e.textEdit.LineNumbers = st.LineNumbers
	e.registry.OnChange(e.textEdit.SetMatcher)

	method, err := ui.ParseClipMethod(st.Clipboard)
	if err == nil {
		e.clipboard, err = ui.NewClipboard(method)
	}
	if e.clipboard == nil {
		e.clipboard, _ = ui.NewClipboard(ui.ClipInternal)
	}
	if err != nil {
		log.Warn(log.CatUI, "using internal clipboard", "error", err)
	}

	switch {
	case startupErr != nil:
		e.status.SetError(startupErr.Error())
	case path == "":
		e.status.SetMessage("new file")
	default:
		e.status.SetMessage(filepath.Base(path))
	}

	e.resize()
	e.textEdit.SetFocused(true)
	return e
}

// watchKeywords forwards keyword file changes to the event loop. The returned
// function stops watching.
func watchKeywords(s tcell.Screen, path string) (func(), error) {
	w, err := config.NewWatcher(path, config.DefaultDebounce)
	if err != nil {
		return nil, err
	}
	changes, err := w.Start()
	if err != nil {
		_ = w.Stop()
		return nil, err
	}

	done := make(chan struct{})
	go func() {
		for {
			select {
			case <-changes:
				_ = s.PostEvent(tcell.NewEventInterrupt(keywordsChanged{}))
			case <-done:
				return
			}
		}
	}()

	return func() {
		close(done)
		_ = w.Stop()
	}, nil
}

func (e *editor) run() {
	for {
		e.draw()
		if quit := e.handleEvent(e.screen.PollEvent()); quit {
			return
		}
	}
}

func (e *editor) resize() {
	w, h := e.screen.Size()
	e.textEdit.SetPos(0, 0)
	e.textEdit.SetSize(w, h-1)
	bottom := e.bottomLine()
	bottom.SetPos(0, h-1)
	bottom.SetSize(w, 1)
}

// bottomLine is the component drawn on the last screen row: the open prompt,
// or else the status bar.
func (e *editor) bottomLine() ui.Component {
	if e.input != nil {
		return e.input
	}
	return e.status
}

func (e *editor) draw() {
	line, col := e.textEdit.GetCursor().GetLineCol()
	info := fmt.Sprintf("%d:%d  %d categories", line+1, col+1, e.registry.Len())
	if e.registry.Dirty() {
		info += " (unsaved)"
	}
	if e.textEdit.Dirty {
		info = "[+] " + info
	}
	e.status.SetInfo(info)

	e.textEdit.Draw(e.screen)
	e.bottomLine().Draw(e.screen)
	e.screen.Show()
}

// handleEvent processes one event and reports whether the editor should quit.
func (e *editor) handleEvent(event tcell.Event) bool {
	switch ev := event.(type) {
	case nil:
		return true // Screen finalized
	case *tcell.EventResize:
		e.resize()
		e.screen.Sync()
	case *tcell.EventInterrupt:
		if _, ok := ev.Data().(keywordsChanged); ok {
			e.keywordsChangedOnDisk()
		}
	case *tcell.EventKey:
		if e.input != nil {
			e.input.HandleEvent(ev)
			return false
		}
		if ev.Key() != tcell.KeyCtrlQ {
			e.quitArmed = false
		}
		switch ev.Key() {
		case tcell.KeyCtrlQ:
			if e.textEdit.Dirty && !e.quitArmed {
				e.quitArmed = true
				e.status.SetError("unsaved changes; press Ctrl+Q again to quit")
				return false
			}
			return true
		case tcell.KeyCtrlS:
			e.saveFile()
		case tcell.KeyCtrlK:
			e.saveKeywords()
		case tcell.KeyCtrlL:
			e.reloadKeywords()
		case tcell.KeyCtrlR:
			e.registry.ResetToDefaults()
			e.status.SetMessage("keywords reset to defaults; Ctrl+K to save")
		case tcell.KeyCtrlC:
			e.copy(false)
		case tcell.KeyCtrlX:
			e.copy(true)
		case tcell.KeyCtrlV:
			e.paste()
		case tcell.KeyCtrlG:
			e.gotoLine()
		case tcell.KeyCtrlW:
			e.addSelectionKeyword()
		default:
			e.textEdit.HandleEvent(ev)
		}
	}
	return false
}

func (e *editor) saveFile() {
	if err := e.textEdit.Save(); err != nil {
		log.ErrorErr(log.CatUI, "writing file failed", err, "path", e.textEdit.FilePath)
		e.status.SetError("write failed: " + err.Error())
		return
	}
	e.status.SetMessage("wrote " + e.textEdit.FilePath)
}

func (e *editor) saveKeywords() {
	if err := config.Save(e.registry, e.keywordsPath); err != nil {
		e.status.SetError("saving keywords failed: " + err.Error())
		return
	}
	e.registry.MarkClean()
	e.status.SetMessage("saved keywords to " + e.keywordsPath)
}

// reloadKeywords replaces the registry's categories with the keyword file. A
// file that fails to load leaves the current keywords in place.
func (e *editor) reloadKeywords() {
	loaded, err := config.Load(e.keywordsPath)
	if err != nil {
		e.status.SetError("reload failed: " + err.Error())
		return
	}
	if err := e.registry.Set(loaded.Categories()); err != nil {
		e.status.SetError("reload failed: " + err.Error())
		return
	}
	e.registry.MarkClean()
	e.status.SetMessage(fmt.Sprintf("loaded %d categories", e.registry.Len()))
}

// keywordsChangedOnDisk reloads the keyword file after an outside change,
// unless that would throw away unsaved keyword changes.
func (e *editor) keywordsChangedOnDisk() {
	log.Debug(log.CatWatcher, "keyword file changed", "path", e.keywordsPath)
	if e.registry.Dirty() {
		e.status.SetError("keyword file changed on disk; Ctrl+L to reload, Ctrl+K to overwrite")
		return
	}
	loaded, err := config.Load(e.keywordsPath)
	if err != nil {
		e.status.SetError("keyword file changed but did not load: " + err.Error())
		return
	}
	if sameCategories(loaded.Categories(), e.registry.Categories()) {
		return // Our own save
	}
	if err := e.registry.Set(loaded.Categories()); err != nil {
		e.status.SetError(err.Error())
		return
	}
	e.registry.MarkClean()
	e.status.SetMessage("keywords reloaded from disk")
}

func sameCategories(a, b []syntax.Category) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !a[i].Equal(b[i]) {
			return false
		}
	}
	return true
}

// copy puts the selection, or the current line when nothing is selected, on
// the clipboard. With cut, the selection is deleted as well.
func (e *editor) copy(cut bool) {
	text := e.textEdit.GetSelectedBytes()
	if len(text) == 0 {
		if cut {
			return
		}
		text = e.textEdit.GetCurrentLine()
	}
	if err := e.clipboard.Write(string(text)); err != nil {
		e.status.SetError("copy failed: " + err.Error())
		return
	}
	if cut {
		e.textEdit.Delete(true)
	}
}

func (e *editor) paste() {
	text, err := e.clipboard.Read()
	if err != nil {
		e.status.SetError("paste failed: " + err.Error())
		return
	}
	e.textEdit.Insert(text)
}
