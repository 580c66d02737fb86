package tools

import "context"

// Session is the channel to an already-initialized tool provider. The
// orchestration core depends only on these two operations; transport setup
// and teardown belong to the implementation (see pkg/mcp).
type Session interface {
	// ListTools reports the tools the provider exposes
	ListTools(ctx context.Context) ([]Descriptor, error)

	// CallTool invokes a named tool with the given arguments
	CallTool(ctx context.Context, name string, args map[string]any) (*CallResult, error)
}

// CallResult is the provider-side outcome of one tool call. IsError marks
// tool-side failures that arrived as content rather than transport errors.
type CallResult struct {
	Content string
	IsError bool
}
