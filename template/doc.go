// Package template renders prompt templates with single-brace placeholders.
//
// # Syntax
//
// Variables are identifiers wrapped in single braces:
//
//	Hello {name}, you are {age} years old.
//
// Identifiers start with a letter or underscore and continue with letters,
// digits, or underscores. A doubled brace is a literal brace, so
// "{{name}}" renders as "{name}" and declares no variable. An unclosed or
// stray brace is a syntax error.
//
// # Example
//
//	p, err := template.New("Hello {name}!", template.WithValidation())
//	if err != nil {
//	    return err
//	}
//	out, err := p.Render(template.Bindings{"name": "World"})
//	// out: "Hello World!"
//
// # Variable Extraction
//
// VariableNames reports each distinct variable once:
//
//	names, _ := template.MustNew("{greeting} {greeting}, {name}").VariableNames()
//	// names: ["greeting", "name"]
//
// # Validation
//
// WithValidation renders the template once during construction with a
// dummy value for every variable. A template that fails this check is
// rejected with a *ValidationError. Validation does not check that real
// callers supply every variable; use VariableNames or InputSchema for that.
//
// # Values
//
// Bound values are converted at render time: strings and byte slices as-is,
// fmt.Stringer and error through their methods, numbers and booleans in
// their strconv form, nil as the empty string, and anything else as
// indented JSON.
//
// # Errors
//
// Render fails with *UnresolvedVariableError (ErrUnresolvedVariable) when a
// binding is missing and *SyntaxError (ErrSyntax) when the template is
// malformed.
package template
