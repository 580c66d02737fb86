// Package mcp implements the tool-session collaborator over the Model
// Context Protocol stdio transport: a child server process speaking
// newline-delimited JSON-RPC 2.0 on its stdin/stdout.
package mcp

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os/exec"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/inercia/go-mcp/pkg/tools"
)

const protocolVersion = "2024-11-05"

// Session is a connected MCP server. It implements tools.Session.
type Session struct {
	cmd    *exec.Cmd
	stdin  io.WriteCloser
	stdout *bufio.Reader

	mu     sync.Mutex
	nextID int64
}

var _ tools.Session = (*Session)(nil)

// serverCommand infers how to launch a server target: Python and JavaScript
// scripts go through their interpreters, anything else is executed directly.
func serverCommand(target string) (string, []string) {
	switch {
	case strings.HasSuffix(target, ".py"):
		return "python", []string{target}
	case strings.HasSuffix(target, ".js"):
		return "node", []string{target}
	default:
		return target, nil
	}
}

// Connect launches the server process for the given target and performs the
// MCP initialize handshake. The returned session is ready for ListTools and
// CallTool; callers own Close.
func Connect(ctx context.Context, target string) (*Session, error) {
	command, args := serverCommand(target)
	cmd := exec.CommandContext(ctx, command, args...)

	stdinPipe, err := cmd.StdinPipe()
	if err != nil {
		return nil, fmt.Errorf("stdin pipe: %w", err)
	}
	stdoutPipe, err := cmd.StdoutPipe()
	if err != nil {
		return nil, fmt.Errorf("stdout pipe: %w", err)
	}

	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("start MCP server: %w", err)
	}

	s := &Session{
		cmd:    cmd,
		stdin:  stdinPipe,
		stdout: bufio.NewReader(stdoutPipe),
	}

	if err := s.initialize(ctx); err != nil {
		s.Close() //nolint:errcheck
		return nil, fmt.Errorf("initialize: %w", err)
	}

	slog.Debug("MCP server connected", "target", target)
	return s, nil
}

// newSession wires a session over arbitrary reader/writer pairs. Used by
// tests to drive the protocol without a child process.
func newSession(w io.WriteCloser, r io.Reader) *Session {
	return &Session{stdin: w, stdout: bufio.NewReader(r)}
}

// ListTools queries the server's tools/list capability
func (s *Session) ListTools(ctx context.Context) ([]tools.Descriptor, error) {
	resp, err := s.call(ctx, "tools/list", nil)
	if err != nil {
		return nil, err
	}

	var result struct {
		Tools []tools.Descriptor `json:"tools"`
	}
	if err := json.Unmarshal(resp, &result); err != nil {
		return nil, fmt.Errorf("decode tools/list result: %w", err)
	}

	for i := range result.Tools {
		result.Tools[i].Schema = tools.ParseSchema(result.Tools[i].RawSchema)
	}
	return result.Tools, nil
}

// CallTool invokes a named tool via tools/call. Tool-side failures arrive as
// isError content and are reported in the result, not as a Go error.
func (s *Session) CallTool(ctx context.Context, name string, args map[string]any) (*tools.CallResult, error) {
	params := map[string]any{
		"name":      name,
		"arguments": args,
	}
	resp, err := s.call(ctx, "tools/call", params)
	if err != nil {
		return nil, err
	}

	var result struct {
		Content []struct {
			Type string `json:"type"`
			Text string `json:"text"`
		} `json:"content"`
		IsError bool `json:"isError"`
	}
	if err := json.Unmarshal(resp, &result); err != nil {
		// Servers occasionally return bare values; pass them through as text
		return &tools.CallResult{Content: string(resp)}, nil
	}

	var parts []string
	for _, block := range result.Content {
		if block.Text != "" {
			parts = append(parts, block.Text)
		}
	}
	return &tools.CallResult{
		Content: strings.Join(parts, "\n"),
		IsError: result.IsError,
	}, nil
}

// Close stops the server process
func (s *Session) Close() error {
	if s.stdin != nil {
		s.stdin.Close() //nolint:errcheck
	}
	if s.cmd != nil && s.cmd.Process != nil {
		if err := s.cmd.Process.Kill(); err != nil {
			return err
		}
		_ = s.cmd.Wait()
	}
	return nil
}

// ---------------------------------------------------------------------------
// JSON-RPC plumbing
// ---------------------------------------------------------------------------

func (s *Session) initialize(ctx context.Context) error {
	params := map[string]any{
		"protocolVersion": protocolVersion,
		"capabilities":    map[string]any{},
		"clientInfo":      map[string]any{"name": "go-mcp", "version": "1.0"},
	}
	if _, err := s.call(ctx, "initialize", params); err != nil {
		return err
	}
	// Initialized notification: no id, no response expected
	notif := map[string]any{"jsonrpc": "2.0", "method": "notifications/initialized"}
	data, _ := json.Marshal(notif)
	_, err := fmt.Fprintf(s.stdin, "%s\n", data)
	return err
}

func (s *Session) call(ctx context.Context, method string, params any) (json.RawMessage, error) {
	id := atomic.AddInt64(&s.nextID, 1)
	req := map[string]any{
		"jsonrpc": "2.0",
		"id":      id,
		"method":  method,
	}
	if params != nil {
		req["params"] = params
	}
	data, err := json.Marshal(req)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := fmt.Fprintf(s.stdin, "%s\n", data); err != nil {
		return nil, fmt.Errorf("write to MCP stdin: %w", err)
	}

	// Read response lines until we get one with our id.
	for {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}
		line, err := s.stdout.ReadString('\n')
		if err != nil {
			return nil, fmt.Errorf("read MCP stdout: %w", err)
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		var resp struct {
			ID     *int64          `json:"id"`
			Result json.RawMessage `json:"result"`
			Error  *struct {
				Code    int    `json:"code"`
				Message string `json:"message"`
			} `json:"error"`
		}
		if err := json.Unmarshal([]byte(line), &resp); err != nil {
			continue // skip non-JSON lines (server log output)
		}
		if resp.ID == nil || *resp.ID != id {
			continue // notification or response to someone else
		}
		if resp.Error != nil {
			return nil, fmt.Errorf("MCP error %d: %s", resp.Error.Code, resp.Error.Message)
		}
		return resp.Result, nil
	}
}
