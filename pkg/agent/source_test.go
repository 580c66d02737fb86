package agent

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inercia/go-mcp/pkg/llm"
	"github.com/inercia/go-mcp/pkg/providers/mock"
	"github.com/inercia/go-mcp/pkg/tools"
)

func testRegistry(t *testing.T) *tools.Registry {
	t.Helper()
	return tools.NewStaticRegistry([]tools.Descriptor{
		{
			Name:        "add",
			Description: "Add two numbers",
			RawSchema:   json.RawMessage(`{"type":"object","properties":{"a":{"type":"number"},"b":{"type":"number"}},"required":["a","b"]}`),
		},
	})
}

func TestTagSource_ExtractSingleCall(t *testing.T) {
	source := NewTagSource(mock.NewClient(), testRegistry(t))
	resp := &ModelResponse{Text: `I'll add those for you.
<tool_call>
{"name": "add", "input": {"a": 2, "b": 3}}
</tool_call>`}

	calls := source.Extract(resp)
	require.Len(t, calls, 1)
	assert.Equal(t, "add", calls[0].Name)
	assert.Equal(t, map[string]any{"a": float64(2), "b": float64(3)}, calls[0].Args)
}

func TestTagSource_ExtractMixedValidAndMalformed(t *testing.T) {
	source := NewTagSource(mock.NewClient(), testRegistry(t))
	resp := &ModelResponse{Text: `<tool_call>{"name": "add", "input": {"a": 1, "b": 2}}</tool_call>
some narration
<tool_call>{not valid json</tool_call>
<tool_call>{"input": {"a": 1}}</tool_call>
<tool_call>{"name": "add", "input": "not an object"}</tool_call>
<tool_call>{"name": "echo", "input": {"text": "hi"}}</tool_call>`}

	calls := source.Extract(resp)
	require.Len(t, calls, 2)
	assert.Equal(t, "add", calls[0].Name)
	assert.Equal(t, "echo", calls[1].Name)
}

func TestTagSource_ExtractToleratesStrayLeadingCharacter(t *testing.T) {
	source := NewTagSource(mock.NewClient(), testRegistry(t))

	tests := []struct {
		name string
		text string
	}{
		{name: "stray character before tag", text: `x<tool_call>{"name":"add","input":{"a":1,"b":2}}</tool_call>`},
		{name: "missing opening bracket", text: `tool_call>{"name":"add","input":{"a":1,"b":2}}</tool_call>`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			calls := source.Extract(&ModelResponse{Text: tt.text})
			require.Len(t, calls, 1)
			assert.Equal(t, "add", calls[0].Name)
		})
	}
}

func TestTagSource_ZeroMatchesIsPassthrough(t *testing.T) {
	source := NewTagSource(mock.NewClient(), testRegistry(t))
	resp := &ModelResponse{Text: "The capital of France is Paris.\n"}

	assert.Empty(t, source.Extract(resp))
	// Raw text comes back verbatim, trailing whitespace included
	assert.Equal(t, "The capital of France is Paris.\n", source.Remainder(resp))
}

func TestTagSource_RemainderStripsCallBlocks(t *testing.T) {
	source := NewTagSource(mock.NewClient(), testRegistry(t))
	resp := &ModelResponse{Text: "Let me check.\n<tool_call>{\"name\":\"add\",\"input\":{}}</tool_call>\n"}

	assert.Equal(t, "Let me check.", source.Remainder(resp))
}

func TestTagSource_OpenAdvertisesTools(t *testing.T) {
	endpoint := mock.NewClient().EnqueueText("ok")
	source := NewTagSource(endpoint, testRegistry(t))

	_, err := source.Open(context.Background(), "what is 2+3")
	require.NoError(t, err)

	log := endpoint.CallLog()
	require.Len(t, log, 1)
	assert.Contains(t, log[0], "Available tools:")
	assert.Contains(t, log[0], "- add: Add two numbers")
	assert.Contains(t, log[0], "User query: what is 2+3")
	assert.Contains(t, log[0], "<tool_call>")
}

func TestTagSource_FeedResultMarksErrors(t *testing.T) {
	endpoint := mock.NewClient().EnqueueText("understood").EnqueueText("understood")
	source := NewTagSource(endpoint, testRegistry(t))

	_, err := source.FeedResult(context.Background(), Feedback{Tool: "add", Query: "q", Content: "5"})
	require.NoError(t, err)
	_, err = source.FeedResult(context.Background(), Feedback{Tool: "add", Query: "q", Err: "boom"})
	require.NoError(t, err)

	log := endpoint.CallLog()
	require.Len(t, log, 2)
	assert.Contains(t, log[0], "The tool returned this result: 5")
	assert.Contains(t, log[1], "The tool failed with this error: boom")
	assert.Contains(t, log[1], "not a successful result")
}

func TestNativeSource_ExtractIsFieldRead(t *testing.T) {
	endpoint := mock.NewClient().EnqueueCalls("", llm.FunctionCall{
		Name:      "add",
		Arguments: map[string]any{"a": float64(2), "b": float64(3)},
	})
	source := NewNativeSource(endpoint)

	resp, err := source.Open(context.Background(), "what is 2+3")
	require.NoError(t, err)

	calls := source.Extract(resp)
	require.Len(t, calls, 1)
	assert.Equal(t, "add", calls[0].Name)
	assert.Equal(t, map[string]any{"a": float64(2), "b": float64(3)}, calls[0].Args)
}

func TestNativeSource_NilArgumentsBecomeEmptyMap(t *testing.T) {
	endpoint := mock.NewClient().EnqueueCalls("", llm.FunctionCall{Name: "ping"})
	source := NewNativeSource(endpoint)

	resp, err := source.Open(context.Background(), "ping")
	require.NoError(t, err)

	calls := source.Extract(resp)
	require.Len(t, calls, 1)
	assert.NotNil(t, calls[0].Args)
	assert.Empty(t, calls[0].Args)
}

func TestNativeSource_PlainTextResponse(t *testing.T) {
	endpoint := mock.NewClient().EnqueueText("Paris")
	source := NewNativeSource(endpoint)

	resp, err := source.Open(context.Background(), "capital of France?")
	require.NoError(t, err)
	assert.Empty(t, source.Extract(resp))
	assert.Equal(t, "Paris", source.Remainder(resp))
}
