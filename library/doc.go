// Package library loads named prompt templates from files.
//
// A prompt directory may mix three kinds of file:
//
//	review.yaml    name/description/template/validate/output fields
//	summary.toml   the same fields in TOML
//	greeting.md    the template as the file body, optional YAML frontmatter
//
// Example markdown prompt:
//
//	---
//	description: Greets a user
//	validate: true
//	output: tag:answer
//	---
//	Say hello to {name}.
//
// Usage:
//
//	lib, err := library.New(ctx, library.Config{Dir: "prompts"})
//	out, err := lib.Render("greeting", template.Bindings{"name": "Ada"})
//
// Watch keeps the library in sync with the directory:
//
//	go lib.Watch(ctx)
package library
