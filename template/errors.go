package template

import (
	"errors"
	"fmt"
)

// Sentinel errors for template operations.
var (
	// ErrSyntax is returned when the template does not follow the placeholder grammar.
	ErrSyntax = errors.New("template syntax error")

	// ErrUnresolvedVariable is returned when a placeholder has no binding.
	ErrUnresolvedVariable = errors.New("unresolved variable")

	// ErrInvalidTemplate is returned when construction-time validation fails.
	ErrInvalidTemplate = errors.New("the template string is not valid")

	// ErrUnsupportedFormat is returned for unknown template formats.
	ErrUnsupportedFormat = errors.New("unsupported template format")
)

// SyntaxError reports where the template stopped following the grammar.
type SyntaxError struct {
	Pos int    // Byte offset into the template
	Msg string // What was wrong at Pos
}

// Error implements the error interface.
func (e *SyntaxError) Error() string {
	return fmt.Sprintf("%v at offset %d: %s", ErrSyntax, e.Pos, e.Msg)
}

// Unwrap returns ErrSyntax for errors.Is support.
func (e *SyntaxError) Unwrap() error {
	return ErrSyntax
}

// UnresolvedVariableError names the placeholder that had no binding.
type UnresolvedVariableError struct {
	Name string
}

// Error implements the error interface.
func (e *UnresolvedVariableError) Error() string {
	return fmt.Sprintf("%v: %s", ErrUnresolvedVariable, e.Name)
}

// Unwrap returns ErrUnresolvedVariable for errors.Is support.
func (e *UnresolvedVariableError) Unwrap() error {
	return ErrUnresolvedVariable
}

// ValidationError wraps the failure observed while self-checking a template.
// Both ErrInvalidTemplate and the underlying cause match with errors.Is.
type ValidationError struct {
	Err error
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("%v: %v", ErrInvalidTemplate, e.Err)
}

// Unwrap returns the sentinel and the cause.
func (e *ValidationError) Unwrap() []error {
	return []error{ErrInvalidTemplate, e.Err}
}
