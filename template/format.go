package template

import (
	"fmt"
	"strings"
)

// Format identifies the placeholder syntax a template is written in.
type Format string

// FormatFString is the single-brace style: "Hello {name}".
const FormatFString Format = "f-string"

// DefaultFormat is used when no format is configured.
const DefaultFormat = FormatFString

// ParseFormat converts a format name into a Format.
// An empty name yields DefaultFormat.
func ParseFormat(name string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "":
		return DefaultFormat, nil
	case string(FormatFString), "fstring":
		return FormatFString, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, name)
	}
}

// String returns the format name.
func (f Format) String() string {
	return string(f)
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (f *Format) UnmarshalText(text []byte) error {
	parsed, err := ParseFormat(string(text))
	if err != nil {
		return err
	}
	*f = parsed
	return nil
}

// grammar returns the placeholder grammar for the format.
func (f Format) grammar() (Grammar, error) {
	switch f {
	case "", FormatFString:
		return NewBraceGrammar(), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, string(f))
	}
}
