package parser

import (
	"encoding/json"
	"fmt"
	"reflect"
	"strings"

	"github.com/invopop/jsonschema"
	"gopkg.in/yaml.v3"
)

// OutputParser turns raw model output into structured data and describes
// the output format it expects, for inclusion in a prompt.
type OutputParser interface {
	// Parse converts model output into a value.
	Parse(text string) (any, error)

	// FormatInstructions tells the model how to shape its output.
	FormatInstructions() string
}

// Compile-time interface checks.
var (
	_ OutputParser = (*ListParser)(nil)
	_ OutputParser = (*JSONParser[map[string]any])(nil)
	_ OutputParser = (*YAMLParser)(nil)
	_ OutputParser = (*TagParser)(nil)
)

// ListParser parses a list of items. Bullet lists and numbered lists are
// recognized; otherwise the output is split on commas.
type ListParser struct{}

// NewListParser creates a ListParser.
func NewListParser() *ListParser {
	return &ListParser{}
}

// Parse returns the items as []string.
func (p *ListParser) Parse(text string) (any, error) {
	return p.ParseList(text)
}

// ParseList returns the list items in order.
func (p *ListParser) ParseList(text string) ([]string, error) {
	if strings.TrimSpace(text) == "" {
		return nil, ErrNoContent
	}

	if items := defaultParser.ExtractList(text); len(items) > 0 {
		return items, nil
	}
	if items := defaultParser.ExtractNumberedList(text); len(items) > 0 {
		return items, nil
	}

	var items []string
	for _, part := range strings.Split(text, ",") {
		if item := strings.TrimSpace(part); item != "" {
			items = append(items, item)
		}
	}
	if len(items) == 0 {
		return nil, ErrNoContent
	}
	return items, nil
}

// FormatInstructions asks for comma separated values.
func (p *ListParser) FormatInstructions() string {
	return "Respond with a list of comma separated values, for example: `foo, bar, baz`"
}

// JSONParser decodes JSON output into T. Its format instructions carry a
// JSON Schema reflected from T.
type JSONParser[T any] struct {
	schema string
}

// NewJSONParser creates a JSONParser for T.
func NewJSONParser[T any]() *JSONParser[T] {
	// ExpandedStruct only applies to structs; other kinds have no
	// definition to expand.
	reflector := &jsonschema.Reflector{
		ExpandedStruct: reflect.TypeOf(new(T)).Elem().Kind() == reflect.Struct,
		DoNotReference: true,
	}
	schema := reflector.Reflect(new(T))
	schema.Version = ""

	var text string
	if b, err := json.MarshalIndent(schema, "", "  "); err == nil {
		text = string(b)
	}
	return &JSONParser[T]{schema: text}
}

// Parse decodes the output and returns it as T.
func (p *JSONParser[T]) Parse(text string) (any, error) {
	return p.ParseInto(text)
}

// ParseInto decodes the first JSON document found in the output.
func (p *JSONParser[T]) ParseInto(text string) (T, error) {
	var out T

	raw, ok := defaultParser.ExtractJSON(text)
	if !ok {
		return out, fmt.Errorf("%w: no JSON document found", ErrNoContent)
	}
	if err := json.Unmarshal(raw, &out); err != nil {
		return out, fmt.Errorf("%w: %w", ErrDecode, err)
	}
	return out, nil
}

// Schema returns the JSON Schema text embedded in the format instructions.
func (p *JSONParser[T]) Schema() string {
	return p.schema
}

// FormatInstructions asks for a bare JSON document matching the schema.
func (p *JSONParser[T]) FormatInstructions() string {
	if p.schema == "" {
		return "Respond with a single valid JSON document and nothing else."
	}
	return "Respond with a single valid JSON document and nothing else. " +
		"The document must conform to this JSON Schema:\n```json\n" + p.schema + "\n```"
}

// YAMLParser decodes YAML output into a map.
type YAMLParser struct{}

// NewYAMLParser creates a YAMLParser.
func NewYAMLParser() *YAMLParser {
	return &YAMLParser{}
}

// Parse returns the output as map[string]any.
// A fenced yaml block is preferred over the raw text.
func (p *YAMLParser) Parse(text string) (any, error) {
	if blocks := defaultParser.ExtractYAML(text); len(blocks) > 0 {
		return blocks[0], nil
	}
	if strings.TrimSpace(text) == "" {
		return nil, ErrNoContent
	}

	var data map[string]any
	if err := yaml.Unmarshal([]byte(text), &data); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDecode, err)
	}
	if data == nil {
		return nil, ErrNoContent
	}
	return data, nil
}

// FormatInstructions asks for a fenced YAML mapping.
func (p *YAMLParser) FormatInstructions() string {
	return "Respond with a YAML mapping inside a ```yaml fenced code block."
}

// TagParser extracts the content of one XML-style tag, such as
// <answer>...</answer>.
type TagParser struct {
	tag     string
	matcher *MarkerMatcher
}

// NewTagParser creates a TagParser for tag.
func NewTagParser(tag string) *TagParser {
	return &TagParser{tag: tag, matcher: NewMarkerMatcher(tag)}
}

// Parse returns the trimmed content of the first tag as a string.
func (p *TagParser) Parse(text string) (any, error) {
	marker, ok := p.matcher.FindFirst(text, p.tag)
	if !ok {
		return nil, fmt.Errorf("%w: no <%s> tag", ErrNoContent, p.tag)
	}
	return marker.Value, nil
}

// FormatInstructions asks for the answer to be wrapped in the tag.
func (p *TagParser) FormatInstructions() string {
	return fmt.Sprintf("Wrap your final answer in <%s></%s> tags.", p.tag, p.tag)
}
