// Client interfaces for the two model calling conventions
package llm

import "context"

// Generator is a stateless model endpoint: one prompt in, one text out.
// Tool advertisement and call detection happen entirely in prompt/text space.
type Generator interface {
	// Generate sends a single prompt and returns the model's raw text output
	Generate(ctx context.Context, prompt string) (string, error)
}

// Chat is a stateful conversation handle over a model endpoint with native
// function calling. The handle owns the conversational history; callers only
// push text and read responses.
type Chat interface {
	// SendMessage appends a user message to the conversation and returns the
	// model's response, including any structured function calls
	SendMessage(ctx context.Context, text string) (*ChatResponse, error)
}

// ChatResponse is a single model response from a Chat handle.
// FunctionCalls is empty when the model answered with plain text.
type ChatResponse struct {
	Text          string
	FunctionCalls []FunctionCall
}

// FunctionCall is one structured tool invocation requested by the model
type FunctionCall struct {
	Name      string
	Arguments map[string]any
}
