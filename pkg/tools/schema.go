package tools

import "github.com/tidwall/gjson"

// SchemaKind discriminates the variants of SchemaNode
type SchemaKind int

const (
	KindString SchemaKind = iota
	KindNumber
	KindInteger
	KindBoolean
	KindArray
	KindObject
)

// SchemaNode is the model-agnostic intermediate form of a tool input schema.
// It is a tagged union: scalar kinds use only Kind, KindArray uses Items, and
// KindObject uses Properties. Unknown or unsupported upstream kinds degrade
// to KindString rather than failing tool registration.
type SchemaNode struct {
	Kind        SchemaKind
	Description string

	// Items is the element schema for KindArray nodes. Never nil for parsed
	// arrays: a missing items field defaults to a string scalar.
	Items *SchemaNode

	// Properties holds the named child schemas for KindObject nodes, in the
	// order they appear in the source document.
	Properties []SchemaProperty

	// Required lists the property names the source schema marks as required
	Required []string
}

// SchemaProperty is one named property of an object schema
type SchemaProperty struct {
	Name string
	Node *SchemaNode
}

// Property returns the child schema with the given name, or nil
func (n *SchemaNode) Property(name string) *SchemaNode {
	for _, p := range n.Properties {
		if p.Name == name {
			return p.Node
		}
	}
	return nil
}

// ParseSchema converts a raw JSON-Schema-like document into a SchemaNode.
// It never fails: malformed input yields a string scalar, an object without
// properties yields an empty but valid object node.
func ParseSchema(raw []byte) *SchemaNode {
	return parseNode(gjson.ParseBytes(raw))
}

// parseNode folds one schema value. gjson.ForEach preserves document order,
// which a plain map[string]any round-trip would lose.
func parseNode(v gjson.Result) *SchemaNode {
	node := &SchemaNode{
		Description: v.Get("description").String(),
	}

	switch v.Get("type").String() {
	case "object":
		node.Kind = KindObject
		v.Get("properties").ForEach(func(key, value gjson.Result) bool {
			node.Properties = append(node.Properties, SchemaProperty{
				Name: key.String(),
				Node: parseNode(value),
			})
			return true
		})
		v.Get("required").ForEach(func(_, value gjson.Result) bool {
			node.Required = append(node.Required, value.String())
			return true
		})
	case "array":
		node.Kind = KindArray
		if items := v.Get("items"); items.Exists() {
			node.Items = parseNode(items)
		} else {
			node.Items = &SchemaNode{Kind: KindString}
		}
	case "number":
		node.Kind = KindNumber
	case "integer":
		node.Kind = KindInteger
	case "boolean":
		node.Kind = KindBoolean
	default:
		// "string" and anything unrecognized
		node.Kind = KindString
	}

	return node
}
