package agent

import (
	"context"

	"github.com/inercia/go-mcp/pkg/llm"
)

// NativeSource implements the structured function-calling convention over a
// chat handle: the endpoint itself discriminates between answer text and
// invocation objects, so extraction is a field read, not a parse. Prefer
// this mode whenever the model supports it; it has no textual-parsing
// failure modes.
type NativeSource struct {
	chat llm.Chat
}

var _ ToolCallSource = (*NativeSource)(nil)

// NewNativeSource wraps a chat handle that was created with the session's
// tool declarations (see the providers' StartChat).
func NewNativeSource(chat llm.Chat) *NativeSource {
	return &NativeSource{chat: chat}
}

// Open sends the bare user query; tools were advertised at chat creation
func (s *NativeSource) Open(ctx context.Context, query string) (*ModelResponse, error) {
	return s.send(ctx, query)
}

// FeedResult reports a tool outcome as a follow-up chat message
func (s *NativeSource) FeedResult(ctx context.Context, fb Feedback) (*ModelResponse, error) {
	return s.send(ctx, feedbackPrompt(fb))
}

func (s *NativeSource) send(ctx context.Context, text string) (*ModelResponse, error) {
	resp, err := s.chat.SendMessage(ctx, text)
	if err != nil {
		return nil, err
	}

	out := &ModelResponse{Text: resp.Text}
	for _, fc := range resp.FunctionCalls {
		args := fc.Arguments
		if args == nil {
			args = map[string]any{}
		}
		out.Calls = append(out.Calls, ToolCall{Name: fc.Name, Args: args})
	}
	return out, nil
}

// Extract returns the structured calls the endpoint reported
func (s *NativeSource) Extract(resp *ModelResponse) []ToolCall {
	return resp.Calls
}

// Remainder returns the response text; native responses carry no tool-call syntax
func (s *NativeSource) Remainder(resp *ModelResponse) string {
	return resp.Text
}
