package server

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/jonwraymond/toolsandbox/catalog"
	"github.com/jonwraymond/toolsandbox/code"
	"github.com/jonwraymond/toolsandbox/discover"
)

// DiscoverParams are the arguments for the discover_tools operation.
type DiscoverParams struct {
	Query string `json:"query" jsonschema:"pattern matched case-insensitively against tool names, descriptions, and parameter schemas"`
}

// DiscoverResult is the payload returned by discover_tools.
type DiscoverResult struct {
	Tools []discover.Match `json:"tools"`
}

// ExecuteParams are the arguments for the execute_tools operation.
type ExecuteParams struct {
	Code string `json:"code" jsonschema:"JavaScript snippet to run in the sandbox; call capabilities via the tools object and produce a result with a top-level return"`
}

// ExecuteResult is the payload returned by execute_tools.
type ExecuteResult struct {
	Output string `json:"output"`
}

// Options configures a Server.
type Options struct {
	// Catalog is the capability catalog searched by discover_tools.
	// Required.
	Catalog *catalog.Catalog

	// Executor runs snippets for execute_tools.
	// Required.
	Executor code.Executor

	// Name and Version identify the server implementation during the
	// MCP handshake. Defaults: "toolsandbox", "v0.1.0".
	Name    string
	Version string
}

// Server exposes a capability catalog to agents through the two
// code-mode meta tools.
type Server struct {
	caps *catalog.Catalog
	exec code.Executor
	mcp  *mcp.Server
}

// New creates a Server and registers its MCP tools.
func New(opts Options) (*Server, error) {
	if opts.Catalog == nil {
		return nil, fmt.Errorf("%w: missing required fields: Catalog", code.ErrConfiguration)
	}
	if opts.Executor == nil {
		return nil, fmt.Errorf("%w: missing required fields: Executor", code.ErrConfiguration)
	}
	name := opts.Name
	if name == "" {
		name = "toolsandbox"
	}
	version := opts.Version
	if version == "" {
		version = "v0.1.0"
	}

	s := &Server{caps: opts.Catalog, exec: opts.Executor}
	srv := mcp.NewServer(&mcp.Implementation{Name: name, Version: version}, nil)
	mcp.AddTool(srv, &mcp.Tool{
		Name:        "discover_tools",
		Description: "Search the available tools by name, description, or parameter schema",
	}, s.discoverTools)
	mcp.AddTool(srv, &mcp.Tool{
		Name:        "execute_tools",
		Description: "Run a JavaScript snippet that calls the available tools and returns a result",
	}, s.executeTools)
	s.mcp = srv
	return s, nil
}

// Run serves MCP over the given transport until the context is
// canceled or the connection closes.
func (s *Server) Run(ctx context.Context, t mcp.Transport) error {
	return s.mcp.Run(ctx, t)
}

func (s *Server) discoverTools(ctx context.Context, req *mcp.CallToolRequest, params DiscoverParams) (*mcp.CallToolResult, DiscoverResult, error) {
	matches := discover.Tools(params.Query, s.caps)
	if matches == nil {
		matches = []discover.Match{}
	}
	return nil, DiscoverResult{Tools: matches}, nil
}

func (s *Server) executeTools(ctx context.Context, req *mcp.CallToolRequest, params ExecuteParams) (*mcp.CallToolResult, ExecuteResult, error) {
	result, err := s.exec.ExecuteCode(ctx, code.ExecuteParams{Code: params.Code})
	output := result.Output
	if output == "" && err != nil {
		output = "Error: " + err.Error()
	}
	// Snippet and limit failures are data for the agent, not protocol
	// errors.
	return nil, ExecuteResult{Output: output}, nil
}
