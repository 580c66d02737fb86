// Package openai provides the model-endpoint collaborator for OpenAI and
// OpenAI-compatible endpoints, implementing the same llm.Generator and
// llm.Chat contracts as the gemini provider. Function declarations are
// rendered as chat-completions tool definitions in translate.go.
package openai
