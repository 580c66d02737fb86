package gemini

import (
	"context"
	"strings"

	"google.golang.org/genai"

	"github.com/inercia/go-mcp/pkg/llm"
	"github.com/inercia/go-mcp/pkg/tools"
)

// systemInstruction primes native function-calling chats. Tag-mode prompts
// carry their own instructions, so it applies to StartChat only.
const systemInstruction = `You are a helpful assistant with access to various tools. When a user's query requires the use of a tool,
use the appropriate tool to address their needs. Do not suggest using a tool when it's not necessary and
answer queries not related to tools naturally.`

// safeIntToInt32 safely converts int to int32
func safeIntToInt32(val int) int32 {
	if val > 2147483647 {
		return 2147483647
	}
	if val < -2147483648 {
		return -2147483648
	}
	return int32(val)
}

// Client is a Gemini model endpoint. It implements llm.Generator directly
// and produces llm.Chat handles via StartChat.
type Client struct {
	model  string
	config llm.ClientConfig
	genai  *genai.Client
}

var _ llm.Generator = (*Client)(nil)

// NewClient creates a new Gemini client using the official Google Generative AI library.
func NewClient(config llm.ClientConfig) (*Client, error) {
	if config.APIKey == "" {
		config.APIKey = llm.APIKeyFromEnv("GEMINI_API_KEY", "GOOGLE_API_KEY")
	}
	if config.APIKey == "" {
		return nil, &llm.Error{Code: "missing_api_key", Message: "API key is required for Gemini", Type: "authentication_error"}
	}
	if config.Model == "" {
		config.Model = llm.DefaultGeminiModel
	}

	genaiConfig := &genai.ClientConfig{
		APIKey:  config.APIKey,
		Backend: genai.BackendGeminiAPI,
	}
	if config.Timeout > 0 {
		genaiConfig.HTTPOptions.Timeout = &config.Timeout
	}

	genaiClient, err := genai.NewClient(context.Background(), genaiConfig)
	if err != nil {
		return nil, &llm.Error{
			Code:    "client_creation_error",
			Message: "Failed to create genai client: " + err.Error(),
			Type:    "internal_error",
		}
	}

	return &Client{
		model:  config.Model,
		config: config,
		genai:  genaiClient,
	}, nil
}

// generateConfig builds the generation config from client settings, falling
// back to the package defaults (temperature 0, topP 0.95, 8192 tokens, text
// responses only).
func (c *Client) generateConfig() *genai.GenerateContentConfig {
	config := &genai.GenerateContentConfig{
		Temperature:        genai.Ptr(float32(llm.DefaultTemperature)),
		TopP:               genai.Ptr(float32(llm.DefaultTopP)),
		MaxOutputTokens:    safeIntToInt32(llm.DefaultMaxOutputTokens),
		ResponseModalities: []string{"TEXT"},
	}
	if c.config.Temperature != nil {
		config.Temperature = c.config.Temperature
	}
	if c.config.TopP != nil {
		config.TopP = c.config.TopP
	}
	if c.config.MaxTokens != nil {
		config.MaxOutputTokens = safeIntToInt32(*c.config.MaxTokens)
	}
	return config
}

// Generate performs a single stateless content generation request
func (c *Client) Generate(ctx context.Context, prompt string) (string, error) {
	response, err := c.genai.Models.GenerateContent(ctx, c.model, genai.Text(prompt), c.generateConfig())
	if err != nil {
		return "", convertError(err)
	}
	return response.Text(), nil
}

// StartChat opens a chat handle with the given tools advertised as native
// function declarations. The handle keeps the conversational history for the
// session's lifetime; create it once at session setup.
func (c *Client) StartChat(ctx context.Context, descriptors []tools.Descriptor) (*ChatSession, error) {
	config := c.generateConfig()
	config.SystemInstruction = genai.NewContentFromText(systemInstruction, genai.RoleUser)
	if decls := Declarations(descriptors); len(decls) > 0 {
		config.Tools = []*genai.Tool{{FunctionDeclarations: decls}}
	}

	chat, err := c.genai.Chats.Create(ctx, c.model, config, nil)
	if err != nil {
		return nil, convertError(err)
	}
	return &ChatSession{chat: chat}, nil
}

// ChatSession wraps a genai chat handle as an llm.Chat
type ChatSession struct {
	chat *genai.Chat
}

var _ llm.Chat = (*ChatSession)(nil)

// SendMessage sends one user message and returns the model's text plus any
// structured function calls it requested.
func (s *ChatSession) SendMessage(ctx context.Context, text string) (*llm.ChatResponse, error) {
	response, err := s.chat.SendMessage(ctx, *genai.NewPartFromText(text))
	if err != nil {
		return nil, convertError(err)
	}

	out := &llm.ChatResponse{Text: response.Text()}
	for _, fc := range response.FunctionCalls() {
		out.FunctionCalls = append(out.FunctionCalls, llm.FunctionCall{
			Name:      fc.Name,
			Arguments: fc.Args,
		})
	}
	return out, nil
}

// convertError converts genai errors to the standardized error format
func convertError(err error) *llm.Error {
	if err == nil {
		return nil
	}
	if ourErr, ok := err.(*llm.Error); ok {
		return ourErr
	}

	errMsg := err.Error()

	if strings.Contains(errMsg, "API key") ||
		strings.Contains(errMsg, "authentication") ||
		strings.Contains(errMsg, "unauthorized") ||
		strings.Contains(errMsg, "401") {
		return &llm.Error{
			Code:       "authentication_error",
			Message:    errMsg,
			Type:       "authentication_error",
			StatusCode: 401,
		}
	}

	if strings.Contains(errMsg, "rate limit") ||
		strings.Contains(errMsg, "429") {
		return &llm.Error{
			Code:       "rate_limit_error",
			Message:    errMsg,
			Type:       "rate_limit_error",
			StatusCode: 429,
		}
	}

	if strings.Contains(errMsg, "quota") ||
		strings.Contains(errMsg, "403") {
		return &llm.Error{
			Code:       "quota_error",
			Message:    errMsg,
			Type:       "quota_error",
			StatusCode: 403,
		}
	}

	return &llm.Error{
		Code:    "api_error",
		Message: errMsg,
		Type:    "api_error",
	}
}
