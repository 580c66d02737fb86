package tools

import "errors"

// Sentinel errors for the tool layer. Use errors.Is to check.
var (
	// ErrProviderUnavailable means the tool session could not be queried for
	// its tool list. Session setup must not proceed past this.
	ErrProviderUnavailable = errors.New("tool provider unavailable")

	// ErrToolNotFound means an invocation named a tool with no matching
	// descriptor in the registry.
	ErrToolNotFound = errors.New("tool not found")
)
