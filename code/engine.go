package code

import "context"

// Engine is the pluggable execution engine that validates a snippet
// and runs it against a capability environment.
//
// The Engine should:
//   - Refuse to run source that fails policy validation, reporting the
//     violations in ExecuteResult.Output
//   - Run validated source with access to nothing but the wrapped
//     capability environment
//   - Fold the outcome (value or failure) into ExecuteResult.Output
//   - Record capability invocations in ExecuteResult.ToolCalls
//
// Contract:
// - Concurrency: implementations must be safe for concurrent use.
// - Context: must honor cancellation/deadlines; an interrupted run returns
//   the context's error alongside a partial result.
// - Errors: snippet-level failures are folded into Output, never returned;
//   the error channel is reserved for host concerns.
// - Ownership: params are read-only; returned ExecuteResult is caller-owned.
type Engine interface {
	// Execute runs a snippet and returns the result, including the
	// rendered output and the capability-call trace.
	Execute(ctx context.Context, params ExecuteParams) (ExecuteResult, error)
}
