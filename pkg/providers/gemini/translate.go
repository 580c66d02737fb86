package gemini

import (
	"google.golang.org/genai"

	"github.com/inercia/go-mcp/pkg/tools"
)

// TranslateSchema converts the intermediate schema form into a genai Schema.
// It is a pure structural fold: every property of an object node appears in
// the output, arrays carry their translated item schema (defaulting to a
// string scalar when absent), and unknown scalar kinds have already degraded
// to strings at parse time.
func TranslateSchema(node *tools.SchemaNode) *genai.Schema {
	if node == nil {
		return &genai.Schema{Type: genai.TypeString}
	}

	schema := &genai.Schema{Description: node.Description}

	switch node.Kind {
	case tools.KindObject:
		schema.Type = genai.TypeObject
		schema.Properties = make(map[string]*genai.Schema, len(node.Properties))
		for _, p := range node.Properties {
			schema.Properties[p.Name] = TranslateSchema(p.Node)
			schema.PropertyOrdering = append(schema.PropertyOrdering, p.Name)
		}
		schema.Required = node.Required
	case tools.KindArray:
		schema.Type = genai.TypeArray
		items := node.Items
		if items == nil {
			items = &tools.SchemaNode{Kind: tools.KindString}
		}
		schema.Items = TranslateSchema(items)
	case tools.KindNumber:
		schema.Type = genai.TypeNumber
	case tools.KindInteger:
		schema.Type = genai.TypeInteger
	case tools.KindBoolean:
		schema.Type = genai.TypeBoolean
	default:
		schema.Type = genai.TypeString
	}

	return schema
}

// Declarations renders tool descriptors as genai function declarations, one
// per descriptor, in registry order.
func Declarations(descriptors []tools.Descriptor) []*genai.FunctionDeclaration {
	decls := make([]*genai.FunctionDeclaration, 0, len(descriptors))
	for _, d := range descriptors {
		decls = append(decls, &genai.FunctionDeclaration{
			Name:        d.Name,
			Description: d.Description,
			Parameters:  TranslateSchema(d.Schema),
		})
	}
	return decls
}
