package openai

import (
	"context"
	"encoding/json"
	"errors"
	"strings"

	"github.com/sashabaranov/go-openai"

	"github.com/inercia/go-mcp/pkg/llm"
	"github.com/inercia/go-mcp/pkg/tools"
)

const systemInstruction = `You are a helpful assistant with access to various tools. When a user's query requires the use of a tool,
use the appropriate tool to address their needs. Do not suggest using a tool when it's not necessary and
answer queries not related to tools naturally.`

// Client is an OpenAI model endpoint. It implements llm.Generator directly
// and produces llm.Chat handles via StartChat.
type Client struct {
	client *openai.Client
	model  string
	config llm.ClientConfig
}

var _ llm.Generator = (*Client)(nil)

// NewClient creates a new OpenAI client
func NewClient(config llm.ClientConfig) (*Client, error) {
	if config.APIKey == "" {
		config.APIKey = llm.APIKeyFromEnv("OPENAI_API_KEY")
	}
	if config.APIKey == "" {
		return nil, &llm.Error{
			Code:    "missing_api_key",
			Message: "API key is required for OpenAI",
			Type:    "authentication_error",
		}
	}
	if config.Model == "" {
		config.Model = llm.DefaultOpenAIModel
	}

	clientConfig := openai.DefaultConfig(config.APIKey)
	if config.BaseURL != "" {
		clientConfig.BaseURL = config.BaseURL
	}

	return &Client{
		client: openai.NewClientWithConfig(clientConfig),
		model:  config.Model,
		config: config,
	}, nil
}

func (c *Client) baseRequest() openai.ChatCompletionRequest {
	req := openai.ChatCompletionRequest{
		Model:       c.model,
		Temperature: llm.DefaultTemperature,
		TopP:        llm.DefaultTopP,
		MaxTokens:   llm.DefaultMaxOutputTokens,
	}
	if c.config.Temperature != nil {
		req.Temperature = *c.config.Temperature
	}
	if c.config.TopP != nil {
		req.TopP = *c.config.TopP
	}
	if c.config.MaxTokens != nil {
		req.MaxTokens = *c.config.MaxTokens
	}
	return req
}

// Generate performs a single stateless completion request
func (c *Client) Generate(ctx context.Context, prompt string) (string, error) {
	req := c.baseRequest()
	req.Messages = []openai.ChatCompletionMessage{
		{Role: openai.ChatMessageRoleUser, Content: prompt},
	}

	resp, err := c.client.CreateChatCompletion(ctx, req)
	if err != nil {
		return "", convertError(err)
	}
	if len(resp.Choices) == 0 {
		return "", &llm.Error{Code: "empty_response", Message: "no choices in completion response", Type: "api_error"}
	}
	return resp.Choices[0].Message.Content, nil
}

// StartChat opens a chat handle with the given tools advertised as
// chat-completions tool definitions. The handle keeps the conversation
// history in process and replays it on every request.
func (c *Client) StartChat(ctx context.Context, descriptors []tools.Descriptor) (*ChatSession, error) {
	return &ChatSession{
		client: c,
		tools:  Declarations(descriptors),
		history: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemInstruction},
		},
	}, nil
}

// ChatSession holds the conversation state for one session
type ChatSession struct {
	client  *Client
	tools   []openai.Tool
	history []openai.ChatCompletionMessage
}

var _ llm.Chat = (*ChatSession)(nil)

// SendMessage appends one user message, runs a completion with the session's
// tools, and returns the model's text plus any requested tool calls.
func (s *ChatSession) SendMessage(ctx context.Context, text string) (*llm.ChatResponse, error) {
	s.history = append(s.history, openai.ChatCompletionMessage{
		Role:    openai.ChatMessageRoleUser,
		Content: text,
	})

	req := s.client.baseRequest()
	req.Messages = s.history
	req.Tools = s.tools

	resp, err := s.client.client.CreateChatCompletion(ctx, req)
	if err != nil {
		return nil, convertError(err)
	}
	if len(resp.Choices) == 0 {
		return nil, &llm.Error{Code: "empty_response", Message: "no choices in completion response", Type: "api_error"}
	}

	msg := resp.Choices[0].Message
	out := &llm.ChatResponse{Text: msg.Content}
	for _, tc := range msg.ToolCalls {
		args := map[string]any{}
		if tc.Function.Arguments != "" {
			// Malformed arguments degrade to an empty map; the tool layer
			// reports the schema violation back to the model.
			_ = json.Unmarshal([]byte(tc.Function.Arguments), &args)
		}
		out.FunctionCalls = append(out.FunctionCalls, llm.FunctionCall{
			Name:      tc.Function.Name,
			Arguments: args,
		})
	}

	// Tool results come back as plain user text in a later SendMessage, so
	// assistant tool_calls are not echoed into the history: the API rejects
	// histories where a tool_calls message is not followed by tool messages.
	if msg.Content != "" {
		s.history = append(s.history, openai.ChatCompletionMessage{
			Role:    openai.ChatMessageRoleAssistant,
			Content: msg.Content,
		})
	}

	return out, nil
}

// convertError converts OpenAI SDK errors to the standardized error format
func convertError(err error) *llm.Error {
	if err == nil {
		return nil
	}
	if ourErr, ok := err.(*llm.Error); ok {
		return ourErr
	}

	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		errType := "api_error"
		switch apiErr.HTTPStatusCode {
		case 401:
			errType = "authentication_error"
		case 429:
			errType = "rate_limit_error"
		}
		code := ""
		if c, ok := apiErr.Code.(string); ok {
			code = c
		}
		return &llm.Error{
			Code:       code,
			Message:    apiErr.Message,
			Type:       errType,
			StatusCode: apiErr.HTTPStatusCode,
		}
	}

	errMsg := err.Error()
	if strings.Contains(errMsg, "429") || strings.Contains(errMsg, "rate limit") {
		return &llm.Error{Code: "rate_limit_error", Message: errMsg, Type: "rate_limit_error", StatusCode: 429}
	}
	return &llm.Error{Code: "api_error", Message: errMsg, Type: "api_error"}
}
