package syntax

import "errors"

// Registry errors. They reflect user input mistakes and are always returned
// to the caller; a failed call leaves the Registry as it was.
var (
	ErrDuplicateName    = errors.New("category already exists")
	ErrNotFound         = errors.New("not found")
	ErrDuplicatePattern = errors.New("pattern already in category")
	ErrInvalidName      = errors.New("invalid category name")
)

// Compiler errors.
var (
	ErrInvalidPattern = errors.New("invalid pattern")
	ErrInvalidStyle   = errors.New("invalid style")
)
