package agent

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"

	"github.com/santhosh-tekuri/jsonschema/v6"

	"github.com/inercia/go-mcp/pkg/tools"
)

// Dispatcher invokes named tools against the session and normalizes every
// failure mode into a Result. Transport errors, unknown tool names, and
// tool-side failures never escape as Go errors past this boundary; the
// orchestrator decides what to do with an error result.
type Dispatcher struct {
	session    tools.Session
	registry   *tools.Registry
	validators map[string]*jsonschema.Schema
}

// NewDispatcher compiles each descriptor's input schema so arguments can be
// validated before they reach the session. A schema that does not compile
// disables validation for that tool only; the tool stays callable.
func NewDispatcher(session tools.Session, registry *tools.Registry) *Dispatcher {
	validators := make(map[string]*jsonschema.Schema)
	for _, d := range registry.List() {
		schema, err := compileSchema(d)
		if err != nil {
			slog.Debug("tool schema not compilable, skipping argument validation", "tool", d.Name, "err", err)
			continue
		}
		validators[d.Name] = schema
	}
	return &Dispatcher{
		session:    session,
		registry:   registry,
		validators: validators,
	}
}

func compileSchema(d tools.Descriptor) (*jsonschema.Schema, error) {
	if len(d.RawSchema) == 0 {
		return nil, fmt.Errorf("empty schema")
	}
	doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(d.RawSchema))
	if err != nil {
		return nil, err
	}
	compiler := jsonschema.NewCompiler()
	url := d.Name + ".schema.json"
	if err := compiler.AddResource(url, doc); err != nil {
		return nil, err
	}
	return compiler.Compile(url)
}

// Dispatch runs one tool call. The returned Result always has the call's
// name; on any failure Err carries a message suitable for feeding back to
// the model, and Content is empty.
func (d *Dispatcher) Dispatch(ctx context.Context, call ToolCall) Result {
	result := Result{Name: call.Name}

	if _, ok := d.registry.Get(call.Name); !ok {
		result.Err = fmt.Sprintf("%v: %q", tools.ErrToolNotFound, call.Name)
		return result
	}

	// Invalid arguments go back to the model for self-correction instead of
	// reaching the tool provider.
	if schema, ok := d.validators[call.Name]; ok {
		if err := schema.Validate(anyMap(call.Args)); err != nil {
			result.Err = fmt.Sprintf("invalid tool input: %v", err)
			return result
		}
	}

	slog.Debug("dispatching tool call", "tool", call.Name)

	out, err := d.session.CallTool(ctx, call.Name, call.Args)
	if err != nil {
		result.Err = err.Error()
		return result
	}
	if out.IsError {
		result.Err = out.Content
		if result.Err == "" {
			result.Err = "tool reported an error"
		}
		return result
	}

	result.Content = out.Content
	return result
}

// anyMap returns args as a plain any value, mapping nil to an empty object
// so schema validation sees {} rather than null.
func anyMap(args map[string]any) any {
	if args == nil {
		return map[string]any{}
	}
	return args
}
