// Package server exposes tool discovery and sandboxed code execution
// over the Model Context Protocol.
//
// The server registers exactly two MCP tools:
//
//   - discover_tools: best-effort search over the capability catalog
//   - execute_tools: run a JavaScript snippet in the sandbox and
//     return its single output string
//
// Neither operation ever returns a protocol-level error for snippet or
// discovery failures; everything folds into the result payload so an
// agent can read and react to failure text rather than crash.
package server
