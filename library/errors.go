package library

import "errors"

// Sentinel errors for library operations.
var (
	// ErrNotFound is returned when no prompt has the requested name.
	ErrNotFound = errors.New("prompt not found")

	// ErrDuplicate is returned when two prompts share a name.
	ErrDuplicate = errors.New("duplicate prompt name")

	// ErrUnsupportedFile is returned for files with an unknown extension.
	ErrUnsupportedFile = errors.New("unsupported prompt file")

	// ErrInvalidDefinition is returned when a definition is missing required fields.
	ErrInvalidDefinition = errors.New("invalid prompt definition")

	// ErrNoDir is returned by Watch when the library has no directory.
	ErrNoDir = errors.New("library has no directory")
)
