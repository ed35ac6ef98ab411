package config

import (
	"errors"
	"fmt"
)

// ErrCorruptFormat is returned when a keyword record cannot be turned into a
// registry. The whole load fails; nothing is partially applied.
var ErrCorruptFormat = errors.New("corrupt keyword record")

// An IOError reports a failure to read or write a keyword record.
type IOError struct {
	Op   string
	Path string
	Err  error
}

func (e *IOError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("%s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *IOError) Unwrap() error { return e.Err }

func corrupt(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrCorruptFormat, fmt.Sprintf(format, args...))
}
