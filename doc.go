// Package promptkit provides prompt templates for Large Language Model
// applications.
//
// Each subpackage can be used independently:
//
//   - template: {variable} prompt templates with extraction and validation
//   - parser: output parsers and extraction of JSON, YAML, lists, and tags
//   - library: named prompts loaded from YAML, TOML, and markdown files
//
// # Quick Start
//
// Template rendering:
//
//	import "github.com/randalmurphal/promptkit/template"
//	p, _ := template.New("Hello {name}", template.WithValidation())
//	result, _ := p.Render(template.Bindings{"name": "World"})
//
// Structured output:
//
//	import "github.com/randalmurphal/promptkit/parser"
//	out := parser.NewJSONParser[Answer]()
//	p, _ := template.New("Question: {q}", template.WithOutputParser(out))
//
// Prompt files:
//
//	import "github.com/randalmurphal/promptkit/library"
//	lib, _ := library.New(ctx, library.Config{Dir: "prompts", Watch: true})
//	result, _ := lib.Render("greeting", template.Bindings{"name": "Ada"})
package promptkit
