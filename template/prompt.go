package template

import (
	"fmt"
	"sort"

	"github.com/randalmurphal/promptkit/parser"
)

// placeholderValue is bound to every variable during validation.
const placeholderValue = "foo"

// Config holds the construction settings for a PromptTemplate.
type Config struct {
	// Format selects the placeholder syntax.
	// Default: FormatFString.
	Format Format `json:"format" yaml:"format" toml:"format"`

	// Validate renders the template once with dummy values during
	// construction and rejects it if that fails.
	// Default: false.
	Validate bool `json:"validate" yaml:"validate" toml:"validate"`

	// OutputParser is carried for downstream consumers; the template never calls it.
	// Optional.
	OutputParser parser.OutputParser `json:"-" yaml:"-" toml:"-"`

	// Grammar overrides the grammar derived from Format.
	// Optional.
	Grammar Grammar `json:"-" yaml:"-" toml:"-"`
}

// DefaultConfig returns a Config with the f-string format and validation off.
func DefaultConfig() Config {
	return Config{
		Format: DefaultFormat,
	}
}

// Option configures a PromptTemplate.
type Option func(*Config)

// WithFormat sets the placeholder syntax.
func WithFormat(format Format) Option {
	return func(c *Config) { c.Format = format }
}

// WithValidation enables construction-time validation.
func WithValidation() Option {
	return func(c *Config) { c.Validate = true }
}

// WithOutputParser attaches an output parser.
func WithOutputParser(p parser.OutputParser) Option {
	return func(c *Config) { c.OutputParser = p }
}

// WithGrammar replaces the placeholder grammar.
func WithGrammar(g Grammar) Option {
	return func(c *Config) { c.Grammar = g }
}

// PromptTemplate is an immutable template string plus the settings needed to
// render it. It is safe for concurrent use.
type PromptTemplate struct {
	template     string
	format       Format
	grammar      Grammar
	outputParser parser.OutputParser
}

// New creates a PromptTemplate from DefaultConfig with opts applied.
//
//	p, err := template.New("Hello {name}", template.WithValidation())
//	out, err := p.Render(template.Bindings{"name": "World"})
//	// out: "Hello World"
func New(tmpl string, opts ...Option) (*PromptTemplate, error) {
	cfg := DefaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	return NewFromConfig(tmpl, cfg)
}

// NewFromConfig creates a PromptTemplate from an explicit Config.
// If cfg.Validate is set and validation fails, the returned error is a
// *ValidationError and no template is returned.
func NewFromConfig(tmpl string, cfg Config) (*PromptTemplate, error) {
	format, err := ParseFormat(string(cfg.Format))
	if err != nil {
		return nil, err
	}

	g := cfg.Grammar
	if g == nil {
		if g, err = format.grammar(); err != nil {
			return nil, err
		}
	}

	p := &PromptTemplate{
		template:     tmpl,
		format:       format,
		grammar:      g,
		outputParser: cfg.OutputParser,
	}

	if cfg.Validate {
		if err := p.validate(); err != nil {
			return nil, err
		}
	}

	return p, nil
}

// MustNew is like New but panics on error.
// Intended for templates declared as package-level variables.
func MustNew(tmpl string, opts ...Option) *PromptTemplate {
	p, err := New(tmpl, opts...)
	if err != nil {
		panic(fmt.Sprintf("template: %v", err))
	}
	return p
}

// Render substitutes bindings into the template.
// A placeholder without a binding fails with *UnresolvedVariableError;
// malformed templates fail with *SyntaxError.
func (p *PromptTemplate) Render(bindings Bindings) (string, error) {
	return p.grammar.Render(p.template, bindings)
}

// VariableNames returns the distinct variable names used by the template,
// sorted. Duplicate placeholders are reported once.
func (p *PromptTemplate) VariableNames() ([]string, error) {
	tokens, err := p.grammar.Tokenize(p.template)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]bool)
	var names []string
	for _, tok := range tokens {
		if tok.Kind != TokenVariable || seen[tok.Value] {
			continue
		}
		seen[tok.Value] = true
		names = append(names, tok.Value)
	}
	sort.Strings(names)

	return names, nil
}

// Template returns the template string as given.
func (p *PromptTemplate) Template() string {
	return p.template
}

// Format returns the placeholder syntax of the template.
func (p *PromptTemplate) Format() Format {
	return p.format
}

// OutputParser returns the attached output parser, or nil.
func (p *PromptTemplate) OutputParser() parser.OutputParser {
	return p.outputParser
}

// validate renders the template with placeholderValue bound to every
// variable. It only proves the template is self-consistent; it says
// nothing about what callers will bind later.
func (p *PromptTemplate) validate() (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = &ValidationError{Err: fmt.Errorf("render panicked: %v", r)}
		}
	}()

	names, err := p.VariableNames()
	if err != nil {
		return &ValidationError{Err: err}
	}

	bindings := make(Bindings, len(names))
	for _, name := range names {
		bindings[name] = placeholderValue
	}

	if _, err := p.Render(bindings); err != nil {
		return &ValidationError{Err: err}
	}
	return nil
}
