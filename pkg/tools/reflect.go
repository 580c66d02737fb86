package tools

import (
	"encoding/json"
	"fmt"

	"github.com/swaggest/jsonschema-go"
)

// SchemaFromStruct generates a JSON Schema from a Go struct using the
// swaggest/jsonschema-go reflector. Nested structs are inlined so the result
// is self-contained, the way tool sessions report their input schemas.
//
// Example:
//
//	type AddArgs struct {
//	    A float64 `json:"a" description:"First operand"`
//	    B float64 `json:"b" description:"Second operand"`
//	}
//	raw, err := tools.SchemaFromStruct(AddArgs{})
func SchemaFromStruct(structType interface{}) (json.RawMessage, error) {
	reflector := jsonschema.Reflector{}

	schema, err := reflector.Reflect(structType, jsonschema.InlineRefs)
	if err != nil {
		return nil, fmt.Errorf("failed to reflect struct to JSON schema: %w", err)
	}

	raw, err := json.Marshal(schema)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal schema to JSON: %w", err)
	}

	return raw, nil
}

// DescriptorFromStruct builds a complete tool descriptor whose input schema
// is reflected from a Go struct. Useful for declaring tools in-process, e.g.
// in tests or embedded tool sets, without hand-writing schema JSON.
func DescriptorFromStruct(name, description string, structType interface{}) (Descriptor, error) {
	raw, err := SchemaFromStruct(structType)
	if err != nil {
		return Descriptor{}, err
	}
	return Descriptor{
		Name:        name,
		Description: description,
		RawSchema:   raw,
		Schema:      ParseSchema(raw),
	}, nil
}
