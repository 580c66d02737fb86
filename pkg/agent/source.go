package agent

import "context"

// ToolCall is one tool invocation requested by the model
type ToolCall struct {
	Name string
	Args map[string]any
}

// Result is the outcome of dispatching one ToolCall. Exactly one of Content
// and Err is meaningful: transport failures, unknown tools, and tool-side
// errors all land in Err as data, never as a Go error.
type Result struct {
	Name    string
	Content string
	Err     string
}

// ModelResponse is one raw model response as seen by the orchestrator.
// Text always carries the raw text; Calls is populated only by sources whose
// endpoint returns structured calls directly.
type ModelResponse struct {
	Text  string
	Calls []ToolCall
}

// Feedback carries one tool result back to the model. Err is set instead of
// Content when the dispatch failed, and the source must present it to the
// model as a failure rather than a result.
type Feedback struct {
	Tool    string
	Query   string
	Content string
	Err     string
}

// ToolCallSource is the calling-convention capability: how tools are
// advertised to the model, how its responses travel, and how tool calls are
// recognized in them. Two implementations exist: TagSource (textual tag
// convention over a stateless generator) and NativeSource (structured
// function calling over a chat handle).
type ToolCallSource interface {
	// Open starts the turn: sends the user query, with whatever tool
	// advertisement the convention requires, and returns the first response
	Open(ctx context.Context, query string) (*ModelResponse, error)

	// FeedResult sends one tool outcome back and returns the next response
	FeedResult(ctx context.Context, fb Feedback) (*ModelResponse, error)

	// Extract returns the tool calls present in a response, in order.
	// An empty slice means the response is a final answer.
	Extract(resp *ModelResponse) []ToolCall

	// Remainder returns the response text with any tool-call syntax removed.
	// For a response with no calls this is the raw text verbatim.
	Remainder(resp *ModelResponse) string
}
