package llm

import (
	"context"
	"errors"
	"testing"
	"time"
)

// mockGenerator is a scripted Generator for retry testing
type mockGenerator struct {
	responses []string
	errors    []error
	callCount int
}

func (m *mockGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	if m.callCount < len(m.errors) && m.errors[m.callCount] != nil {
		err := m.errors[m.callCount]
		m.callCount++
		return "", err
	}
	if m.callCount < len(m.responses) {
		resp := m.responses[m.callCount]
		m.callCount++
		return resp, nil
	}
	m.callCount++
	return "ok", nil
}

func fastConfig() RetryConfig {
	return RetryConfig{
		MaxRetries:    3,
		BaseDelay:     time.Millisecond,
		MaxDelay:      5 * time.Millisecond,
		BackoffFactor: 2.0,
		Jitter:        false,
	}
}

func TestRetryGenerate_Success(t *testing.T) {
	mock := &mockGenerator{responses: []string{"first"}}
	gen := RetryGenerate(mock, fastConfig())

	text, err := gen.Generate(context.Background(), "prompt")
	if err != nil {
		t.Errorf("Expected no error, got: %v", err)
	}
	if text != "first" {
		t.Errorf("Expected 'first', got: %q", text)
	}
	if mock.callCount != 1 {
		t.Errorf("Expected 1 call, got: %d", mock.callCount)
	}
}

func TestRetryGenerate_RateLimitRetry(t *testing.T) {
	rateLimitErr := &Error{
		Code:       "rate_limit_exceeded",
		Message:    "Rate limit exceeded",
		Type:       "rate_limit_error",
		StatusCode: 429,
	}
	mock := &mockGenerator{
		errors:    []error{rateLimitErr, rateLimitErr},
		responses: []string{"", "", "recovered"},
	}
	gen := RetryGenerate(mock, fastConfig())

	text, err := gen.Generate(context.Background(), "prompt")
	if err != nil {
		t.Errorf("Expected no error after retries, got: %v", err)
	}
	if text != "recovered" {
		t.Errorf("Expected 'recovered', got: %q", text)
	}
	if mock.callCount != 3 {
		t.Errorf("Expected 3 calls, got: %d", mock.callCount)
	}
}

func TestRetryGenerate_ServerErrorRetry(t *testing.T) {
	serverErr := &Error{Code: "server_error", Message: "bad gateway", Type: "api_error", StatusCode: 502}
	mock := &mockGenerator{
		errors:    []error{serverErr},
		responses: []string{"", "recovered"},
	}
	gen := RetryGenerate(mock, fastConfig())

	text, err := gen.Generate(context.Background(), "prompt")
	if err != nil {
		t.Errorf("Expected no error after retry, got: %v", err)
	}
	if text != "recovered" {
		t.Errorf("Expected 'recovered', got: %q", text)
	}
}

func TestRetryGenerate_NonRetryableError(t *testing.T) {
	authErr := &Error{Code: "authentication_error", Message: "bad key", Type: "authentication_error", StatusCode: 401}
	mock := &mockGenerator{errors: []error{authErr, authErr, authErr, authErr}}
	gen := RetryGenerate(mock, fastConfig())

	_, err := gen.Generate(context.Background(), "prompt")
	if err == nil {
		t.Fatal("Expected error, got nil")
	}
	if mock.callCount != 1 {
		t.Errorf("Expected no retries for auth error, got %d calls", mock.callCount)
	}
}

func TestRetryGenerate_ExhaustsRetries(t *testing.T) {
	rateLimitErr := &Error{Type: "rate_limit_error", Message: "throttled", StatusCode: 429}
	mock := &mockGenerator{errors: []error{rateLimitErr, rateLimitErr, rateLimitErr, rateLimitErr, rateLimitErr}}
	gen := RetryGenerate(mock, fastConfig())

	_, err := gen.Generate(context.Background(), "prompt")
	if err == nil {
		t.Fatal("Expected error after exhausting retries, got nil")
	}
	// MaxRetries(3) + 1 original attempt
	if mock.callCount != 4 {
		t.Errorf("Expected 4 calls, got: %d", mock.callCount)
	}
}

func TestRetryGenerate_NonLLMErrorsNotRetried(t *testing.T) {
	plainErr := errors.New("some transport failure")
	mock := &mockGenerator{errors: []error{plainErr, plainErr}}
	gen := RetryGenerate(mock, fastConfig())

	_, err := gen.Generate(context.Background(), "prompt")
	if err == nil {
		t.Fatal("Expected error, got nil")
	}
	if mock.callCount != 1 {
		t.Errorf("Expected 1 call for non-LLM error, got: %d", mock.callCount)
	}
}

func TestRetryGenerate_ContextCancellation(t *testing.T) {
	rateLimitErr := &Error{Type: "rate_limit_error", StatusCode: 429, Message: "throttled"}
	mock := &mockGenerator{errors: []error{rateLimitErr, rateLimitErr, rateLimitErr, rateLimitErr}}
	gen := RetryGenerate(mock, RetryConfig{
		MaxRetries:    3,
		BaseDelay:     time.Hour, // would block without cancellation
		BackoffFactor: 2.0,
	})

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(10 * time.Millisecond)
		cancel()
	}()

	_, err := gen.Generate(ctx, "prompt")
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Expected context.Canceled, got: %v", err)
	}
}

func TestRetryGenerate_CustomErrorTypes(t *testing.T) {
	quotaErr := &Error{Type: "quota_error", Message: "quota exceeded", StatusCode: 403}
	mock := &mockGenerator{
		errors:    []error{quotaErr},
		responses: []string{"", "recovered"},
	}
	cfg := fastConfig()
	cfg.RetryOnErrorTypes = []string{"quota_error"}
	gen := RetryGenerate(mock, cfg)

	text, err := gen.Generate(context.Background(), "prompt")
	if err != nil {
		t.Errorf("Expected no error, got: %v", err)
	}
	if text != "recovered" {
		t.Errorf("Expected 'recovered', got: %q", text)
	}
}
