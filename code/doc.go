// Package code provides the code-mode orchestration layer for running
// agent-submitted snippets against a capability catalog.
//
// The package defines two interfaces:
//
//   - [Engine]: the pluggable execution engine that validates and runs
//     a snippet and folds its outcome into a display string.
//
//   - [Executor]: the main entry point that applies defaults, enforces
//     limits, and collects results.
//
// # Execution limits
//
// The executor enforces two kinds of limits:
//
//   - Timeout: applied via context deadline; a deadline hit is wrapped
//     with [ErrLimitExceeded]
//   - MaxToolCalls: a per-run cap on capability invocations, enforced
//     inside the engine's capability environment
//
// # Tool call tracing
//
// Every capability invocation made during a run is recorded in a
// [ToolCallRecord] containing the capability name, the arguments as
// the snippet passed them, the result or error, and timing.
//
// # Result convention
//
// A snippet produces its result with a top-level return statement; the
// engine renders that value (or the failure that prevented one) into
// [ExecuteResult].Output. Snippet-level failures are data, not errors:
// the Output string carries them so an agent can read and react.
package code
