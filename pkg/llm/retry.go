// Retry support for model-endpoint calls with exponential backoff.
//
// The orchestration loop in pkg/agent never retries internally; retry policy
// belongs to the endpoint collaborator, which is what this wrapper is.
//
// Basic usage with default configuration (3 retries, 1s base delay, 2x backoff):
//
//	client, _ := gemini.NewClient(config)
//	gen := llm.RetryGenerate(client)
//	text, err := gen.Generate(ctx, prompt)
//
// Conservative retry for rate-limited APIs:
//
//	gen := llm.RetryGenerate(client, llm.RetryConfig{
//		MaxRetries:    5,
//		BaseDelay:     2 * time.Second,
//		BackoffFactor: 2.5,
//		Jitter:        true,
//	})
//
// Only the stateless Generator is wrapped. Replaying a SendMessage into a
// stateful Chat handle can apply the same message twice when the first attempt
// reached the endpoint but the response was lost, so Chat retries are left to
// the caller.
package llm

import (
	"context"
	"crypto/rand"
	"encoding/binary"
	"math"
	"time"
)

// secureRandomFloat64 generates a cryptographically secure random float64 between 0 and 1
func secureRandomFloat64() (float64, error) {
	var bytes [8]byte
	_, err := rand.Read(bytes[:])
	if err != nil {
		return 0, err
	}
	return float64(binary.BigEndian.Uint64(bytes[:])) / float64(^uint64(0)), nil
}

// RetryConfig defines configuration options for the retry mechanism
type RetryConfig struct {
	// MaxRetries is the maximum number of retry attempts (default: 3).
	// Total requests = MaxRetries + 1 (original attempt).
	MaxRetries int

	// BaseDelay is the initial delay between retries (default: 1 second).
	// Each retry multiplies this by BackoffFactor.
	BaseDelay time.Duration

	// MaxDelay caps the maximum delay between retries (default: 60 seconds)
	MaxDelay time.Duration

	// BackoffFactor multiplies the delay after each retry (default: 2.0)
	BackoffFactor float64

	// Jitter adds randomness to delays to prevent thundering herd (default: true).
	// Multiplies delay by a random factor between 0.5 and 1.5.
	Jitter bool

	// RetryOnErrorTypes lists the llm.Error types that trigger retries.
	// If empty, rate-limit errors (type "rate_limit_error", HTTP 429) and
	// server errors (5xx) are retried.
	RetryOnErrorTypes []string
}

// DefaultRetryConfig returns a sensible default retry configuration
func DefaultRetryConfig() RetryConfig {
	return RetryConfig{
		MaxRetries:    3,
		BaseDelay:     1 * time.Second,
		MaxDelay:      60 * time.Second,
		BackoffFactor: 2.0,
		Jitter:        true,
	}
}

// retryableGenerator wraps a Generator with retry functionality
type retryableGenerator struct {
	client Generator
	config RetryConfig
}

// RetryGenerate creates a retryable wrapper around any Generator. It retries
// requests on throttling errors (HTTP 429, rate_limit_error) and temporary
// server errors (5xx), using exponential backoff with optional jitter.
func RetryGenerate(client Generator, config ...RetryConfig) Generator {
	cfg := DefaultRetryConfig()
	if len(config) > 0 {
		cfg = config[0]
		// Ensure sane defaults for zero values
		if cfg.MaxRetries <= 0 {
			cfg.MaxRetries = 3
		}
		if cfg.BaseDelay <= 0 {
			cfg.BaseDelay = 1 * time.Second
		}
		if cfg.MaxDelay <= 0 {
			cfg.MaxDelay = 60 * time.Second
		}
		if cfg.BackoffFactor <= 0 {
			cfg.BackoffFactor = 2.0
		}
	}

	return &retryableGenerator{
		client: client,
		config: cfg,
	}
}

// Generate executes the generation request with retry logic
func (r *retryableGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	var lastErr error

	for attempt := 0; attempt <= r.config.MaxRetries; attempt++ {
		text, err := r.client.Generate(ctx, prompt)
		if err == nil {
			return text, nil
		}

		lastErr = err

		// Don't retry on the last attempt
		if attempt == r.config.MaxRetries {
			break
		}

		if !r.isRetryableError(err) {
			return "", err
		}

		delay := r.calculateDelay(attempt)

		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-time.After(delay):
			// Continue with retry
		}
	}

	return "", lastErr
}

// isRetryableError determines if an error should trigger a retry
func (r *retryableGenerator) isRetryableError(err error) bool {
	llmErr, ok := err.(*Error)
	if !ok {
		return false
	}

	// If specific error types are configured, only retry on those
	if len(r.config.RetryOnErrorTypes) > 0 {
		for _, errorType := range r.config.RetryOnErrorTypes {
			if llmErr.Type == errorType {
				return true
			}
		}
		return false
	}

	if llmErr.Type == "rate_limit_error" || llmErr.StatusCode == 429 {
		return true
	}

	// Server errors (5xx) might be temporary
	return llmErr.StatusCode >= 500 && llmErr.StatusCode < 600
}

// calculateDelay computes the delay for a given retry attempt using exponential backoff
func (r *retryableGenerator) calculateDelay(attempt int) time.Duration {
	delay := float64(r.config.BaseDelay) * math.Pow(r.config.BackoffFactor, float64(attempt))

	// Apply jitter if enabled (random factor between 0.5 and 1.5)
	if r.config.Jitter {
		randomValue, err := secureRandomFloat64()
		if err != nil {
			randomValue = 1.0
		}
		delay *= 0.5 + randomValue
	}

	if delay > float64(r.config.MaxDelay) {
		delay = float64(r.config.MaxDelay)
	}

	return time.Duration(delay)
}
