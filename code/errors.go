package code

import "errors"

// Sentinel errors for error classification.
var (
	// ErrConfiguration indicates an invalid or incomplete configuration.
	ErrConfiguration = errors.New("configuration error")

	// ErrLimitExceeded indicates that an execution limit was reached,
	// such as timeout or maximum tool calls.
	ErrLimitExceeded = errors.New("limit exceeded")
)
