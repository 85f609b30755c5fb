package library

import (
	"fmt"
	"strings"

	"github.com/randalmurphal/promptkit/parser"
	"github.com/randalmurphal/promptkit/template"
)

// Output parser names accepted in Definition.Output.
const (
	OutputNone = ""
	OutputList = "list"
	OutputJSON = "json"
	OutputYAML = "yaml"

	// outputTagPrefix selects a TagParser, as in "tag:answer".
	outputTagPrefix = "tag:"
)

// Definition describes a prompt stored in a file.
type Definition struct {
	// Name identifies the prompt in the library.
	// Defaults to the file name without extension.
	Name string `json:"name" yaml:"name" toml:"name"`

	// Description is free text for humans and schemas.
	Description string `json:"description,omitempty" yaml:"description,omitempty" toml:"description"`

	// Template is the prompt text with {variable} placeholders.
	Template string `json:"template" yaml:"template" toml:"template"`

	// Format is the placeholder syntax. Empty means f-string.
	Format template.Format `json:"format,omitempty" yaml:"format,omitempty" toml:"format"`

	// Validate checks the template when it is built.
	Validate bool `json:"validate,omitempty" yaml:"validate,omitempty" toml:"validate"`

	// Output names the output parser attached to the prompt:
	// "", "list", "json", "yaml", or "tag:<name>".
	Output string `json:"output,omitempty" yaml:"output,omitempty" toml:"output"`

	// Path is the file the definition was loaded from, if any.
	Path string `json:"-" yaml:"-" toml:"-"`
}

// Check reports missing or malformed fields.
func (d Definition) Check() error {
	if d.Name == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidDefinition)
	}
	if d.Template == "" {
		return fmt.Errorf("%w: %s: template is required", ErrInvalidDefinition, d.Name)
	}
	if _, err := d.outputParser(); err != nil {
		return fmt.Errorf("%w: %s: %w", ErrInvalidDefinition, d.Name, err)
	}
	return nil
}

// Build constructs the prompt template. opts are applied after the
// definition's own settings.
func (d Definition) Build(opts ...template.Option) (*template.PromptTemplate, error) {
	if err := d.Check(); err != nil {
		return nil, err
	}

	op, _ := d.outputParser()
	cfg := template.Config{
		Format:       d.Format,
		Validate:     d.Validate,
		OutputParser: op,
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	p, err := template.NewFromConfig(d.Template, cfg)
	if err != nil {
		return nil, fmt.Errorf("build prompt %s: %w", d.Name, err)
	}
	return p, nil
}

// outputParser resolves the Output name. A nil parser with a nil error
// means no parser was requested.
func (d Definition) outputParser() (parser.OutputParser, error) {
	switch name := strings.TrimSpace(d.Output); {
	case name == OutputNone:
		return nil, nil
	case name == OutputList:
		return parser.NewListParser(), nil
	case name == OutputJSON:
		return parser.NewJSONParser[map[string]any](), nil
	case name == OutputYAML:
		return parser.NewYAMLParser(), nil
	case strings.HasPrefix(name, outputTagPrefix) && len(name) > len(outputTagPrefix):
		return parser.NewTagParser(strings.TrimPrefix(name, outputTagPrefix)), nil
	default:
		return nil, fmt.Errorf("unknown output parser %q", d.Output)
	}
}
