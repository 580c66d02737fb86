// Package agent drives one user query through the tool-calling loop:
// prompt construction, model call, tool-call extraction, dispatch against the
// tool session, result feedback, and final answer assembly.
//
// The two supported calling conventions sit behind the ToolCallSource
// interface: TagSource parses delimited JSON blocks out of raw model text,
// NativeSource reads structured function calls off a chat handle. The mode
// is a configuration choice made once per session, not a runtime check per
// call.
//
// The loop is single-threaded per turn. Tool calls within one model response
// are dispatched sequentially in extraction order, and the number of
// feedback rounds is bounded so a model that keeps emitting tool calls can
// never spin the turn forever.
package agent
