// Package llm defines the model-endpoint contracts used by the tool-calling
// orchestration in pkg/agent.
//
// Two calling conventions are supported, and each maps to one interface:
//
//   - Generator: stateless text generation. Used by the textual tag
//     convention, where tools are advertised inside the prompt and tool
//     calls are parsed back out of the raw text.
//   - Chat: a stateful conversation handle whose responses may carry
//     structured function calls. Used by the native function-calling
//     convention, where tools are advertised once at chat creation.
//
// Provider implementations live in separate packages under /pkg/providers/
// to maintain clean separation of concerns and avoid import cycles.
package llm
