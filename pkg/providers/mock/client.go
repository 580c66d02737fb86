package mock

import (
	"context"
	"sync"

	"github.com/inercia/go-mcp/pkg/llm"
)

// step is one scripted exchange: either a response or an error
type step struct {
	response *llm.ChatResponse
	err      error
}

// Client implements llm.Generator and llm.Chat with scripted responses
type Client struct {
	mu      sync.Mutex
	script  []step
	index   int
	repeat  bool
	callLog []string
}

var (
	_ llm.Generator = (*Client)(nil)
	_ llm.Chat      = (*Client)(nil)
)

// NewClient creates a new mock endpoint with an empty script
func NewClient() *Client {
	return &Client{}
}

// EnqueueText scripts a plain-text response
func (m *Client) EnqueueText(text string) *Client {
	return m.enqueue(step{response: &llm.ChatResponse{Text: text}})
}

// EnqueueCalls scripts a response carrying structured function calls
func (m *Client) EnqueueCalls(text string, calls ...llm.FunctionCall) *Client {
	return m.enqueue(step{response: &llm.ChatResponse{Text: text, FunctionCalls: calls}})
}

// EnqueueError scripts an endpoint failure
func (m *Client) EnqueueError(err error) *Client {
	return m.enqueue(step{err: err})
}

// RepeatLast makes the final scripted step repeat forever instead of
// exhausting. Used to simulate a model that never stops calling tools.
func (m *Client) RepeatLast() *Client {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.repeat = true
	return m
}

func (m *Client) enqueue(s step) *Client {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.script = append(m.script, s)
	return m
}

// CallLog returns every prompt/message received, in order
func (m *Client) CallLog() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]string, len(m.callLog))
	copy(out, m.callLog)
	return out
}

// Calls returns the number of exchanges performed
func (m *Client) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.callLog)
}

func (m *Client) next(input string) (*llm.ChatResponse, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.callLog = append(m.callLog, input)

	if m.index >= len(m.script) {
		if m.repeat && len(m.script) > 0 {
			s := m.script[len(m.script)-1]
			return s.response, s.err
		}
		return &llm.ChatResponse{Text: ""}, nil
	}

	s := m.script[m.index]
	m.index++
	return s.response, s.err
}

// Generate implements llm.Generator: the scripted response's text
func (m *Client) Generate(ctx context.Context, prompt string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	resp, err := m.next(prompt)
	if err != nil {
		return "", err
	}
	return resp.Text, nil
}

// SendMessage implements llm.Chat
func (m *Client) SendMessage(ctx context.Context, text string) (*llm.ChatResponse, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return m.next(text)
}
