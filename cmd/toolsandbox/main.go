// Command toolsandbox serves a sandboxed code-mode tool server over
// MCP stdio. The built-in catalog is a small demo set; embedders
// normally construct their own catalog and wire the library packages
// directly.
package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/spf13/cobra"

	"github.com/jonwraymond/toolsandbox/catalog"
	"github.com/jonwraymond/toolsandbox/code"
	"github.com/jonwraymond/toolsandbox/sandbox"
	"github.com/jonwraymond/toolsandbox/server"
)

func main() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "toolsandbox",
		Short:         "Sandboxed code-mode tool execution over MCP",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(serveCmd())
	return root
}

func serveCmd() *cobra.Command {
	var (
		timeout      time.Duration
		maxToolCalls int
		quiet        bool
	)
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve discover_tools and execute_tools over stdio",
		RunE: func(cmd *cobra.Command, args []string) error {
			caps := builtinCatalog()
			eval, err := sandbox.New(caps)
			if err != nil {
				return err
			}
			cfg := code.Config{
				Engine:         eval,
				DefaultTimeout: timeout,
				MaxToolCalls:   maxToolCalls,
			}
			if !quiet {
				cfg.Logger = stdLogger{}
			}
			exec, err := code.NewDefaultExecutor(cfg)
			if err != nil {
				return err
			}
			srv, err := server.New(server.Options{Catalog: caps, Executor: exec})
			if err != nil {
				return err
			}
			return srv.Run(cmd.Context(), &mcp.StdioTransport{})
		},
	}
	cmd.Flags().DurationVar(&timeout, "timeout", 30*time.Second, "execution timeout per snippet (0 = none)")
	cmd.Flags().IntVar(&maxToolCalls, "max-tool-calls", 0, "maximum capability invocations per snippet (0 = unlimited)")
	cmd.Flags().BoolVar(&quiet, "quiet", false, "disable execution logging on stderr")
	return cmd
}

// stdLogger adapts the standard library logger to code.Logger.
// MCP stdio owns stdout, so logs go to stderr.
type stdLogger struct{}

func (stdLogger) Logf(format string, args ...any) {
	log.Printf(format, args...)
}

// builtinCatalog registers the demo capabilities served by default.
func builtinCatalog() *catalog.Catalog {
	caps := catalog.New()
	_ = caps.Register(catalog.Capability{
		Name:        "echo",
		Description: "Returns its first argument unchanged",
		InputSchema: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"value": map[string]any{"type": "string"},
			},
		},
		Invoke: func(_ context.Context, args ...any) (any, error) {
			if len(args) == 0 {
				return nil, nil
			}
			return args[0], nil
		},
	})
	_ = caps.Register(catalog.Capability{
		Name:        "now",
		Description: "Returns the current time in RFC 3339 form",
		Invoke: func(_ context.Context, args ...any) (any, error) {
			return time.Now().Format(time.RFC3339), nil
		},
	})
	_ = caps.Register(catalog.Capability{
		Name:        "join",
		Description: "Joins string arguments with a space",
		Invoke: func(_ context.Context, args ...any) (any, error) {
			parts := make([]string, 0, len(args))
			for _, a := range args {
				parts = append(parts, fmt.Sprint(a))
			}
			return strings.Join(parts, " "), nil
		},
	})
	return caps
}
