package openai

import (
	"github.com/sashabaranov/go-openai"

	"github.com/inercia/go-mcp/pkg/tools"
)

// TranslateSchema converts the intermediate schema form into the JSON-Schema
// map the chat-completions tools field expects. Like the gemini translator it
// is a pure fold that preserves every property at every depth.
func TranslateSchema(node *tools.SchemaNode) map[string]any {
	if node == nil {
		return map[string]any{"type": "string"}
	}

	schema := map[string]any{}
	if node.Description != "" {
		schema["description"] = node.Description
	}

	switch node.Kind {
	case tools.KindObject:
		schema["type"] = "object"
		properties := make(map[string]any, len(node.Properties))
		for _, p := range node.Properties {
			properties[p.Name] = TranslateSchema(p.Node)
		}
		schema["properties"] = properties
		if len(node.Required) > 0 {
			schema["required"] = node.Required
		}
	case tools.KindArray:
		items := node.Items
		if items == nil {
			items = &tools.SchemaNode{Kind: tools.KindString}
		}
		schema["type"] = "array"
		schema["items"] = TranslateSchema(items)
	case tools.KindNumber:
		schema["type"] = "number"
	case tools.KindInteger:
		schema["type"] = "integer"
	case tools.KindBoolean:
		schema["type"] = "boolean"
	default:
		schema["type"] = "string"
	}

	return schema
}

// Declarations renders tool descriptors as chat-completions tool definitions
func Declarations(descriptors []tools.Descriptor) []openai.Tool {
	decls := make([]openai.Tool, 0, len(descriptors))
	for _, d := range descriptors {
		decls = append(decls, openai.Tool{
			Type: openai.ToolTypeFunction,
			Function: &openai.FunctionDefinition{
				Name:        d.Name,
				Description: d.Description,
				Parameters:  TranslateSchema(d.Schema),
			},
		})
	}
	return decls
}
