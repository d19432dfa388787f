package code

import "time"

// ToolCallRecord captures information about a single capability
// invocation during a snippet run. It records the capability name,
// arguments, result, and timing for observability and debugging.
type ToolCallRecord struct {
	// Tool is the name of the capability that was called.
	Tool string `json:"tool"`

	// Args contains the arguments exactly as the snippet passed them.
	Args []any `json:"args,omitempty"`

	// Result contains the value returned by a successful invocation.
	Result any `json:"result,omitempty"`

	// Error contains the error message if the invocation failed.
	Error string `json:"error,omitempty"`

	// DurationMs is the invocation time in milliseconds.
	DurationMs int64 `json:"durationMs"`
}

// ExecuteParams specifies the parameters for running a snippet.
type ExecuteParams struct {
	// Code is the JavaScript source to run.
	Code string `json:"code"`

	// Timeout specifies the maximum duration for the run.
	// If zero, the executor's default timeout is used.
	Timeout time.Duration `json:"timeout"`

	// MaxToolCalls limits the number of capability invocations allowed.
	// If zero, the executor's configured limit applies (or unlimited
	// if none).
	MaxToolCalls int `json:"maxToolCalls,omitempty"`
}

// ExecuteResult contains the outcome of running a snippet.
type ExecuteResult struct {
	// Output is the single display-safe result string. Success renders
	// the returned value; validation and runtime failures render their
	// messages here instead of surfacing as errors.
	Output string `json:"output"`

	// ToolCalls records all capability invocations made during the run.
	ToolCalls []ToolCallRecord `json:"toolCalls,omitempty"`

	// DurationMs is the total run time in milliseconds.
	DurationMs int64 `json:"durationMs"`
}
