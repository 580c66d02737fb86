// Package gemini provides the model-endpoint collaborator for Google Gemini
// models, using the official Google Generative AI library.
//
// It implements both calling conventions from pkg/llm:
//   - llm.Generator via stateless content generation (textual tag mode)
//   - llm.Chat via a persistent chat handle with native function calling,
//     created by StartChat with the session's tool descriptors
//
// The schema translation from the intermediate tools.SchemaNode form to
// genai function declarations lives in translate.go.
//
// Usage:
//
//	config := llm.ClientConfig{
//	    Provider: "gemini",
//	    APIKey:   "your-api-key",
//	    Model:    "gemini-2.0-flash-001",
//	}
//	client, err := gemini.NewClient(config)
package gemini
