package template

import (
	"fmt"
	"strings"
)

// TokenKind classifies a token produced by a Grammar.
type TokenKind int

const (
	// TokenText is literal text, with escapes already resolved.
	TokenText TokenKind = iota

	// TokenVariable is a placeholder; Value holds the variable name.
	TokenVariable
)

// String returns a readable name for the kind.
func (k TokenKind) String() string {
	switch k {
	case TokenText:
		return "text"
	case TokenVariable:
		return "variable"
	default:
		return fmt.Sprintf("TokenKind(%d)", int(k))
	}
}

// Token is one piece of a tokenized template.
type Token struct {
	Kind  TokenKind
	Value string
	Pos   int // Byte offset of the token in the template
}

// Grammar splits templates into tokens and renders them against bindings.
// Implementations must not retain state between calls.
type Grammar interface {
	Tokenize(tmpl string) ([]Token, error)
	Render(tmpl string, bindings Bindings) (string, error)
}

// BraceGrammar implements single-brace placeholders.
//
//	Hello {name}      -> variable "name"
//	{{literal}}       -> text "{literal}"
//
// A doubled delimiter is an escaped literal brace. Anything else between
// braces that is not an identifier is a syntax error.
type BraceGrammar struct{}

// NewBraceGrammar returns the grammar used by FormatFString.
func NewBraceGrammar() BraceGrammar {
	return BraceGrammar{}
}

// Tokenize scans tmpl into text and variable tokens.
// Adjacent literal text, including escaped braces, is merged into one token.
func (BraceGrammar) Tokenize(tmpl string) ([]Token, error) {
	var tokens []Token
	var text strings.Builder
	textStart := 0

	writeText := func(pos int, b byte) {
		if text.Len() == 0 {
			textStart = pos
		}
		text.WriteByte(b)
	}
	flush := func() {
		if text.Len() > 0 {
			tokens = append(tokens, Token{Kind: TokenText, Value: text.String(), Pos: textStart})
			text.Reset()
		}
	}

	for i := 0; i < len(tmpl); {
		switch c := tmpl[i]; c {
		case '{':
			if i+1 < len(tmpl) && tmpl[i+1] == '{' {
				writeText(i, '{')
				i += 2
				continue
			}

			end := strings.IndexByte(tmpl[i+1:], '}')
			if end < 0 {
				return nil, &SyntaxError{Pos: i, Msg: "unclosed placeholder"}
			}
			name := tmpl[i+1 : i+1+end]
			if name == "" {
				return nil, &SyntaxError{Pos: i, Msg: "empty placeholder"}
			}
			if !isValidIdentifier(name) {
				return nil, &SyntaxError{Pos: i + 1, Msg: fmt.Sprintf("invalid variable name %q", name)}
			}

			flush()
			tokens = append(tokens, Token{Kind: TokenVariable, Value: name, Pos: i})
			i += end + 2

		case '}':
			if i+1 < len(tmpl) && tmpl[i+1] == '}' {
				writeText(i, '}')
				i += 2
				continue
			}
			return nil, &SyntaxError{Pos: i, Msg: "unmatched '}'"}

		default:
			writeText(i, c)
			i++
		}
	}
	flush()

	return tokens, nil
}

// Render tokenizes tmpl and substitutes every placeholder from bindings.
func (g BraceGrammar) Render(tmpl string, bindings Bindings) (string, error) {
	tokens, err := g.Tokenize(tmpl)
	if err != nil {
		return "", err
	}
	return renderTokens(tokens, bindings)
}

// renderTokens writes text tokens verbatim and resolves variable tokens.
func renderTokens(tokens []Token, bindings Bindings) (string, error) {
	var buf strings.Builder
	for _, tok := range tokens {
		switch tok.Kind {
		case TokenText:
			buf.WriteString(tok.Value)
		case TokenVariable:
			value, ok := bindings[tok.Value]
			if !ok {
				return "", &UnresolvedVariableError{Name: tok.Value}
			}
			buf.WriteString(formatValue(value))
		}
	}
	return buf.String(), nil
}

// isValidIdentifier checks if a string is a valid variable name.
func isValidIdentifier(s string) bool {
	if s == "" {
		return false
	}
	for i, ch := range s {
		// First character cannot be a digit
		if i == 0 && ch >= '0' && ch <= '9' {
			return false
		}
		isLower := ch >= 'a' && ch <= 'z'
		isUpper := ch >= 'A' && ch <= 'Z'
		isDigit := ch >= '0' && ch <= '9'
		if !isLower && !isUpper && !isDigit && ch != '_' {
			return false
		}
	}
	return true
}
