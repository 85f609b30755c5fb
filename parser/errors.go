package parser

import "errors"

// Sentinel errors for output parsing.
var (
	// ErrNoContent is returned when the output has nothing the parser can use.
	ErrNoContent = errors.New("no parsable content in output")

	// ErrDecode is returned when extracted content fails to decode.
	ErrDecode = errors.New("decode output")
)
