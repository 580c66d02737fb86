package agent

import (
	"context"
	"encoding/json"
	"log/slog"
	"regexp"
	"strings"

	"github.com/tidwall/gjson"

	"github.com/inercia/go-mcp/pkg/llm"
	"github.com/inercia/go-mcp/pkg/tools"
)

// tagPattern matches one delimited tool-call block. The opening "<" is
// optional: some models drop it or smear a stray character in front of the
// tag, and an optional bracket tolerates both without losing the call.
var tagPattern = regexp.MustCompile(`(?s)<?tool_call>(.*?)</tool_call>`)

// TagSource implements the textual tag convention over a stateless
// generator: tools are advertised inside the prompt, and calls are parsed
// back out of the raw response text.
type TagSource struct {
	gen       llm.Generator
	toolBlock string
}

var _ ToolCallSource = (*TagSource)(nil)

// NewTagSource builds a tag-convention source advertising the registry's
// descriptors. The tool block is rendered once; descriptors are immutable
// for the session's lifetime.
func NewTagSource(gen llm.Generator, registry *tools.Registry) *TagSource {
	return &TagSource{
		gen:       gen,
		toolBlock: renderToolBlock(registry.List()),
	}
}

// Open sends the initial prompt: instructions, tool block, user query
func (s *TagSource) Open(ctx context.Context, query string) (*ModelResponse, error) {
	text, err := s.gen.Generate(ctx, tagPrompt(s.toolBlock, query))
	if err != nil {
		return nil, err
	}
	return &ModelResponse{Text: text}, nil
}

// FeedResult sends a tool outcome back as a follow-up prompt
func (s *TagSource) FeedResult(ctx context.Context, fb Feedback) (*ModelResponse, error) {
	text, err := s.gen.Generate(ctx, feedbackPrompt(fb))
	if err != nil {
		return nil, err
	}
	return &ModelResponse{Text: text}, nil
}

// Extract scans the response text for all non-overlapping tag pairs and
// parses each enclosed JSON object. A block that fails to parse is dropped
// with a diagnostic; it never aborts extraction of the remaining blocks.
func (s *TagSource) Extract(resp *ModelResponse) []ToolCall {
	var calls []ToolCall
	for _, match := range tagPattern.FindAllStringSubmatch(resp.Text, -1) {
		body := strings.TrimSpace(match[1])

		if !gjson.Valid(body) {
			slog.Warn("dropping malformed tool call", "body", body)
			continue
		}
		parsed := gjson.Parse(body)
		name := parsed.Get("name")
		input := parsed.Get("input")
		if name.Type != gjson.String || name.Str == "" || !input.IsObject() {
			slog.Warn("dropping tool call without name/input", "body", body)
			continue
		}

		args := map[string]any{}
		if err := json.Unmarshal([]byte(input.Raw), &args); err != nil {
			slog.Warn("dropping tool call with undecodable input", "body", body, "err", err)
			continue
		}

		calls = append(calls, ToolCall{Name: name.Str, Args: args})
	}
	return calls
}

// Remainder strips the tag blocks from the response text. A response with
// zero matches comes back verbatim.
func (s *TagSource) Remainder(resp *ModelResponse) string {
	if !tagPattern.MatchString(resp.Text) {
		return resp.Text
	}
	return strings.TrimSpace(tagPattern.ReplaceAllString(resp.Text, ""))
}
