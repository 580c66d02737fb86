package gemini

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/genai"

	"github.com/inercia/go-mcp/pkg/tools"
)

func TestTranslateSchema_Scalars(t *testing.T) {
	tests := []struct {
		name     string
		kind     tools.SchemaKind
		wantType genai.Type
	}{
		{name: "string", kind: tools.KindString, wantType: genai.TypeString},
		{name: "number", kind: tools.KindNumber, wantType: genai.TypeNumber},
		{name: "integer", kind: tools.KindInteger, wantType: genai.TypeInteger},
		{name: "boolean", kind: tools.KindBoolean, wantType: genai.TypeBoolean},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			schema := TranslateSchema(&tools.SchemaNode{Kind: tt.kind, Description: "d"})
			assert.Equal(t, tt.wantType, schema.Type)
			assert.Equal(t, "d", schema.Description)
		})
	}
}

func TestTranslateSchema_NilNode(t *testing.T) {
	schema := TranslateSchema(nil)
	assert.Equal(t, genai.TypeString, schema.Type)
}

func TestTranslateSchema_ObjectKeepsEveryProperty(t *testing.T) {
	node := tools.ParseSchema([]byte(`{
		"type": "object",
		"properties": {
			"a": {"type": "number"},
			"b": {"type": "number"},
			"note": {"type": "string"},
			"flags": {"type": "array", "items": {"type": "boolean"}}
		},
		"required": ["a", "b"]
	}`))

	schema := TranslateSchema(node)
	require.Equal(t, genai.TypeObject, schema.Type)
	require.Len(t, schema.Properties, 4)
	assert.Equal(t, genai.TypeNumber, schema.Properties["a"].Type)
	assert.Equal(t, genai.TypeNumber, schema.Properties["b"].Type)
	assert.Equal(t, genai.TypeString, schema.Properties["note"].Type)
	assert.Equal(t, genai.TypeArray, schema.Properties["flags"].Type)
	assert.Equal(t, genai.TypeBoolean, schema.Properties["flags"].Items.Type)
	assert.Equal(t, []string{"a", "b"}, schema.Required)
	assert.Equal(t, []string{"a", "b", "note", "flags"}, schema.PropertyOrdering)
}

func TestTranslateSchema_PreservesNestingDepth(t *testing.T) {
	node := tools.ParseSchema([]byte(`{
		"type": "object",
		"properties": {
			"outer": {
				"type": "object",
				"properties": {
					"inner": {
						"type": "array",
						"items": {"type": "object", "properties": {"leaf": {"type": "integer"}}}
					}
				}
			}
		}
	}`))

	schema := TranslateSchema(node)
	outer := schema.Properties["outer"]
	require.NotNil(t, outer)
	inner := outer.Properties["inner"]
	require.NotNil(t, inner)
	require.Equal(t, genai.TypeArray, inner.Type)
	leaf := inner.Items.Properties["leaf"]
	require.NotNil(t, leaf)
	assert.Equal(t, genai.TypeInteger, leaf.Type)
}

func TestTranslateSchema_ArrayWithoutItems(t *testing.T) {
	schema := TranslateSchema(&tools.SchemaNode{Kind: tools.KindArray})
	require.Equal(t, genai.TypeArray, schema.Type)
	require.NotNil(t, schema.Items)
	assert.Equal(t, genai.TypeString, schema.Items.Type)
}

func TestTranslateSchema_EmptyObject(t *testing.T) {
	schema := TranslateSchema(tools.ParseSchema([]byte(`{"type":"object"}`)))
	require.Equal(t, genai.TypeObject, schema.Type)
	assert.Empty(t, schema.Properties)
}

func TestDeclarations(t *testing.T) {
	descriptors := []tools.Descriptor{
		{Name: "add", Description: "Add two numbers", Schema: tools.ParseSchema([]byte(`{"type":"object","properties":{"a":{"type":"number"},"b":{"type":"number"}}}`))},
		{Name: "echo", Description: "Echo text", Schema: tools.ParseSchema([]byte(`{"type":"object","properties":{"text":{"type":"string"}}}`))},
	}

	decls := Declarations(descriptors)
	require.Len(t, decls, 2)
	assert.Equal(t, "add", decls[0].Name)
	assert.Equal(t, "Add two numbers", decls[0].Description)
	assert.Len(t, decls[0].Parameters.Properties, 2)
	assert.Equal(t, "echo", decls[1].Name)
}
