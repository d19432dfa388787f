package code

import (
	"fmt"
	"strings"
	"time"
)

// Config holds the configuration for a snippet executor.
type Config struct {
	// Engine validates and runs snippets.
	// Required.
	Engine Engine

	// DefaultTimeout is the default run timeout when not specified in
	// ExecuteParams. If zero, no default timeout is applied.
	DefaultTimeout time.Duration

	// MaxToolCalls limits the maximum number of capability invocations
	// per run. Zero means unlimited. Per-run values in ExecuteParams
	// are capped by this limit.
	MaxToolCalls int

	// Logger is an optional logger for observability.
	Logger Logger
}

// Validate checks that all required fields are set.
// Returns ErrConfiguration if any required field is missing.
func (c *Config) Validate() error {
	var missing []string

	if c.Engine == nil {
		missing = append(missing, "Engine")
	}

	if len(missing) > 0 {
		return fmt.Errorf("%w: missing required fields: %s",
			ErrConfiguration, strings.Join(missing, ", "))
	}
	return nil
}
