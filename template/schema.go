package template

import (
	"github.com/invopop/jsonschema"
)

// InputSchema describes the bindings the template needs as a JSON Schema
// object: one required string property per variable. Extra properties are
// allowed because Render ignores unused bindings.
func (p *PromptTemplate) InputSchema() (*jsonschema.Schema, error) {
	names, err := p.VariableNames()
	if err != nil {
		return nil, err
	}

	props := jsonschema.NewProperties()
	for _, name := range names {
		props.Set(name, &jsonschema.Schema{Type: "string"})
	}

	return &jsonschema.Schema{
		Type:       "object",
		Properties: props,
		Required:   names,
	}, nil
}
