// Package parser extracts structured content from model output.
//
// Core types:
//   - OutputParser: converts output into a value and describes the expected format
//   - Parser: extracts code blocks, JSON, YAML, sections, and lists
//   - MarkerMatcher: finds XML-style tagged spans
//
// OutputParser implementations:
//   - ListParser: bullet, numbered, or comma separated lists
//   - JSONParser[T]: JSON decoded into T, with a JSON Schema in its instructions
//   - YAMLParser: YAML mappings
//   - TagParser: the content of a single <tag>
//
// Example usage:
//
//	type Review struct {
//	    Verdict string   `json:"verdict" jsonschema:"enum=approve,enum=reject"`
//	    Notes   []string `json:"notes"`
//	}
//
//	p := parser.NewJSONParser[Review]()
//	prompt := "Review this diff.\n\n" + p.FormatInstructions()
//	review, err := p.ParseInto(modelOutput)
package parser
