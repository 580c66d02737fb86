// Configuration types shared by all provider clients
package llm

import (
	"os"
	"time"
)

const (
	DefaultGeminiModel = "gemini-2.0-flash-001"
	DefaultOpenAIModel = "gpt-4o-mini"
)

// Generation defaults applied by providers unless overridden in ClientConfig
const (
	DefaultTemperature     = 0.0
	DefaultTopP            = 0.95
	DefaultMaxOutputTokens = 8192
)

// ClientConfig holds configuration for creating model endpoint clients
type ClientConfig struct {
	Provider    string        `json:"provider"` // gemini, openai
	Model       string        `json:"model"`
	APIKey      string        `json:"api_key,omitempty"`
	BaseURL     string        `json:"base_url,omitempty"`
	Timeout     time.Duration `json:"timeout,omitempty"`
	Temperature *float32      `json:"temperature,omitempty"`
	TopP        *float32      `json:"top_p,omitempty"`
	MaxTokens   *int          `json:"max_tokens,omitempty"`
}

// APIKeyFromEnv returns the first non-empty value among the given environment
// variables. Providers use it to fall back to their conventional key variables
// when ClientConfig.APIKey is unset.
func APIKeyFromEnv(envVars ...string) string {
	for _, v := range envVars {
		if key := os.Getenv(v); key != "" {
			return key
		}
	}
	return ""
}
