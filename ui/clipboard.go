package ui

import (
	"fmt"

	"github.com/zyedidia/clipboard"
)

type ClipMethod uint8

const (
	ClipExternal ClipMethod = iota // System clipboard through xclip, pbcopy and friends
	ClipInternal                   // Process-local string
)

// ParseClipMethod reads the `clipboard` setting.
func ParseClipMethod(s string) (ClipMethod, error) {
	switch s {
	case "", "external":
		return ClipExternal, nil
	case "internal":
		return ClipInternal, nil
	}
	return ClipInternal, fmt.Errorf("unknown clipboard method %q", s)
}

// A Clipboard copies text with the system clipboard when it is available and
// with an internal buffer otherwise.
type Clipboard struct {
	Method   ClipMethod
	internal string
}

// NewClipboard initializes the clipboard for the given method first, and if
// that fails, the internal method is chosen instead. The error is not fatal
// because the internal method always works; it says why the system clipboard
// is unavailable.
func NewClipboard(m ClipMethod) (*Clipboard, error) {
	if m == ClipInternal {
		return &Clipboard{Method: ClipInternal}, nil
	}
	if err := clipboard.Initialize(); err != nil {
		return &Clipboard{Method: ClipInternal}, err
	}
	return &Clipboard{Method: ClipExternal}, nil
}

// Read receives the clipboard contents.
func (c *Clipboard) Read() (string, error) {
	if c.Method == ClipExternal {
		return clipboard.ReadAll("clipboard")
	}
	return c.internal, nil
}

// Write sets the clipboard contents.
func (c *Clipboard) Write(content string) error {
	if c.Method == ClipExternal {
		return clipboard.WriteAll(content, "clipboard")
	}
	c.internal = content
	return nil
}
