package agent

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
)

// DefaultMaxIterations bounds the number of model round-trips per turn.
// Nothing in a model's output format guarantees it converges to a call-free
// response, so the bound is what guarantees termination.
const DefaultMaxIterations = 10

// Config holds orchestrator settings
type Config struct {
	// MaxIterations caps extraction rounds per turn (default: DefaultMaxIterations)
	MaxIterations int
}

// Orchestrator drives user queries through the tool-calling loop against a
// single calling-convention source and dispatcher. It holds no per-turn
// state; per-turn state lives in a conversationTurn created inside
// ProcessQuery.
type Orchestrator struct {
	source        ToolCallSource
	dispatcher    *Dispatcher
	maxIterations int
}

// conversationTurn is the orchestration state for one user query. It exists
// only inside ProcessQuery; conversational context across turns, if any,
// belongs to the model endpoint's chat handle.
type conversationTurn struct {
	query      string
	pending    []string
	iterations int
}

// New creates an orchestrator for one session
func New(source ToolCallSource, dispatcher *Dispatcher, config ...Config) *Orchestrator {
	maxIterations := DefaultMaxIterations
	if len(config) > 0 && config[0].MaxIterations > 0 {
		maxIterations = config[0].MaxIterations
	}
	return &Orchestrator{
		source:        source,
		dispatcher:    dispatcher,
		maxIterations: maxIterations,
	}
}

// ProcessQuery runs one full turn: model call, tool-call extraction,
// sequential dispatch with result feedback, repeated until the model
// produces a call-free response or the iteration bound is reached.
//
// The returned answer is the ordered concatenation of per-call narration and
// diagnostic lines followed by the last response's remainder text. Dispatch
// failures surface as diagnostics and are fed back to the model; only a
// model-endpoint failure aborts the turn with an error.
func (o *Orchestrator) ProcessQuery(ctx context.Context, query string) (string, error) {
	turn := &conversationTurn{query: query}

	response, err := o.source.Open(ctx, query)
	if err != nil {
		return "", fmt.Errorf("model endpoint: %w", err)
	}

	for turn.iterations = 0; turn.iterations < o.maxIterations; turn.iterations++ {
		calls := o.source.Extract(response)
		if len(calls) == 0 {
			break
		}

		// Calls within a batch are independent: dispatched sequentially, in
		// extraction order, each result fed back before the next dispatch.
		for _, call := range calls {
			result := o.dispatcher.Dispatch(ctx, call)

			var fb Feedback
			if result.Err != "" {
				slog.Warn("tool dispatch failed", "tool", call.Name, "err", result.Err)
				turn.pending = append(turn.pending, fmt.Sprintf("Error executing tool %s: %s", call.Name, result.Err))
				fb = Feedback{Tool: call.Name, Query: query, Err: result.Err}
			} else {
				args, _ := json.Marshal(call.Args)
				turn.pending = append(turn.pending, fmt.Sprintf("[Calling tool %s with args %s]", call.Name, args))
				fb = Feedback{Tool: call.Name, Query: query, Content: result.Content}
			}

			response, err = o.source.FeedResult(ctx, fb)
			if err != nil {
				return "", fmt.Errorf("model endpoint: %w", err)
			}
		}
	}

	if remainder := o.source.Remainder(response); remainder != "" {
		turn.pending = append(turn.pending, remainder)
	}
	return strings.Join(turn.pending, "\n"), nil
}
