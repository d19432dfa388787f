package sandbox

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/jonwraymond/toolsandbox/catalog"
	"github.com/jonwraymond/toolsandbox/code"
)

func newTestCatalog(t *testing.T, caps ...catalog.Capability) *catalog.Catalog {
	t.Helper()
	c := catalog.New()
	for _, entry := range caps {
		if err := c.Register(entry); err != nil {
			t.Fatalf("register %s: %v", entry.Name, err)
		}
	}
	return c
}

func greetCapability() catalog.Capability {
	return catalog.Capability{
		Name:        "greet",
		Description: "Greets a person by name",
		Invoke: func(ctx context.Context, args ...any) (any, error) {
			if len(args) == 0 {
				return nil, errors.New("greet: missing name")
			}
			return fmt.Sprintf("Hello, %v!", args[0]), nil
		},
	}
}

func execute(t *testing.T, caps *catalog.Catalog, source string) code.ExecuteResult {
	t.Helper()
	eval, err := New(caps)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	result, err := eval.Execute(context.Background(), code.ExecuteParams{Code: source})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	return result
}

func TestExecute_CapabilityCall(t *testing.T) {
	caps := newTestCatalog(t, greetCapability())
	result := execute(t, caps, "const r = await tools.greet('World'); return r;")
	if result.Output != "Hello, World!" {
		t.Fatalf("output = %q, want %q", result.Output, "Hello, World!")
	}
	if len(result.ToolCalls) != 1 {
		t.Fatalf("expected one tool call, got %d", len(result.ToolCalls))
	}
	if result.ToolCalls[0].Tool != "greet" {
		t.Errorf("recorded tool = %q, want greet", result.ToolCalls[0].Tool)
	}
}

func TestExecute_ExecuteFormIsEquivalent(t *testing.T) {
	caps := newTestCatalog(t, greetCapability())
	result := execute(t, caps, "const r = await tools.greet.execute('World'); return r;")
	if result.Output != "Hello, World!" {
		t.Fatalf("output = %q, want %q", result.Output, "Hello, World!")
	}
}

func TestExecute_StructuredResultRendersAsJSON(t *testing.T) {
	caps := newTestCatalog(t)
	result := execute(t, caps, "return {name: 'widget', count: 2};")
	want := "{\n  \"count\": 2,\n  \"name\": \"widget\"\n}"
	if result.Output != want {
		t.Fatalf("output = %q, want %q", result.Output, want)
	}
}

func TestExecute_ArrayResultRendersAsJSON(t *testing.T) {
	caps := newTestCatalog(t)
	result := execute(t, caps, "return [1, 2, 3].map(n => n * 2);")
	want := "[\n  2,\n  4,\n  6\n]"
	if result.Output != want {
		t.Fatalf("output = %q, want %q", result.Output, want)
	}
}

func TestExecute_NoReturnYieldsUndefined(t *testing.T) {
	caps := newTestCatalog(t)
	result := execute(t, caps, "const x = 1 + 1;")
	if result.Output != "undefined" {
		t.Fatalf("output = %q, want undefined", result.Output)
	}
}

func TestExecute_BoundedLoop(t *testing.T) {
	caps := newTestCatalog(t)
	result := execute(t, caps, "let total = 0; for (const n of [1, 2, 3]) { total += n; } return total;")
	if result.Output != "6" {
		t.Fatalf("output = %q, want 6", result.Output)
	}
}

func TestExecute_ValidationFailureFoldsIntoOutput(t *testing.T) {
	caps := newTestCatalog(t, greetCapability())
	result := execute(t, caps, "const fs = require('fs'); return fs;")
	if !strings.HasPrefix(result.Output, "Code validation failed:") {
		t.Fatalf("output = %q, want validation failure", result.Output)
	}
	if !strings.Contains(result.Output, "Forbidden identifier: require") {
		t.Errorf("output = %q, missing violation message", result.Output)
	}
	if len(result.ToolCalls) != 0 {
		t.Errorf("expected no tool calls on rejected code, got %d", len(result.ToolCalls))
	}
}

func TestExecute_CapabilityErrorFolds(t *testing.T) {
	caps := newTestCatalog(t, catalog.Capability{
		Name: "explode",
		Invoke: func(ctx context.Context, args ...any) (any, error) {
			return nil, errors.New("boom")
		},
	})
	result := execute(t, caps, "const r = await tools.explode(); return r;")
	if !strings.HasPrefix(result.Output, "Error:") {
		t.Fatalf("output = %q, want Error prefix", result.Output)
	}
	if !strings.Contains(result.Output, "boom") {
		t.Errorf("output = %q, missing capability error text", result.Output)
	}
	if len(result.ToolCalls) != 1 || result.ToolCalls[0].Error == "" {
		t.Errorf("expected one failed tool call in trace, got %v", result.ToolCalls)
	}
}

func TestExecute_ThrownErrorFolds(t *testing.T) {
	caps := newTestCatalog(t)
	result := execute(t, caps, "throw new Error('nope');")
	if result.Output != "Error: nope" {
		t.Fatalf("output = %q, want %q", result.Output, "Error: nope")
	}
}

func TestExecute_CaughtCapabilityErrorKeepsRunning(t *testing.T) {
	caps := newTestCatalog(t, catalog.Capability{
		Name: "explode",
		Invoke: func(ctx context.Context, args ...any) (any, error) {
			return nil, errors.New("boom")
		},
	})
	result := execute(t, caps, `
try {
  await tools.explode();
  return 'unreachable';
} catch (e) {
  return 'recovered';
}
`)
	if result.Output != "recovered" {
		t.Fatalf("output = %q, want recovered", result.Output)
	}
}

func TestExecute_ImplementationNotReachable(t *testing.T) {
	const secret = "s3cr3t-token"
	caps := newTestCatalog(t, catalog.Capability{
		Name: "peek",
		Invoke: func(ctx context.Context, args ...any) (any, error) {
			return secret, nil
		},
	})
	result := execute(t, caps, "return String(tools.peek) + '|' + String(tools.peek.execute);")
	if strings.Contains(result.Output, secret) {
		t.Fatalf("output %q leaked the capability's closure", result.Output)
	}
}

func TestExecute_MaxToolCalls(t *testing.T) {
	calls := 0
	caps := newTestCatalog(t, catalog.Capability{
		Name: "tick",
		Invoke: func(ctx context.Context, args ...any) (any, error) {
			calls++
			return calls, nil
		},
	})
	eval, err := New(caps)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	result, err := eval.Execute(context.Background(), code.ExecuteParams{
		Code:         "await tools.tick(); await tools.tick(); await tools.tick(); return 'done';",
		MaxToolCalls: 2,
	})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if !strings.Contains(result.Output, "max tool calls (2) exceeded") {
		t.Fatalf("output = %q, want budget error", result.Output)
	}
	if calls != 2 {
		t.Errorf("capability ran %d times, want 2", calls)
	}
	if len(result.ToolCalls) != 3 {
		t.Fatalf("expected 3 trace records, got %d", len(result.ToolCalls))
	}
	if result.ToolCalls[2].Error == "" {
		t.Errorf("expected the third record to carry the budget error")
	}
}

func TestExecute_ToolCallTrace(t *testing.T) {
	caps := newTestCatalog(t, greetCapability())
	result := execute(t, caps, "await tools.greet('a'); await tools.greet('b'); return 'ok';")
	if len(result.ToolCalls) != 2 {
		t.Fatalf("expected 2 trace records, got %d", len(result.ToolCalls))
	}
	if got := result.ToolCalls[1].Args; len(got) != 1 || got[0] != "b" {
		t.Errorf("second record args = %v, want [b]", got)
	}
	if result.ToolCalls[0].Result != "Hello, a!" {
		t.Errorf("first record result = %v, want Hello, a!", result.ToolCalls[0].Result)
	}
}

func TestExecute_InterruptOnDeadline(t *testing.T) {
	caps := newTestCatalog(t)
	eval, err := New(caps)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	result, err := eval.Execute(ctx, code.ExecuteParams{Code: "for (;;) {}"})
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("err = %v, want context.DeadlineExceeded", err)
	}
	if !strings.Contains(result.Output, "interrupted") {
		t.Errorf("output = %q, want interrupt notice", result.Output)
	}
}

func TestExecute_FreshRuntimePerRun(t *testing.T) {
	caps := newTestCatalog(t)
	eval, err := New(caps)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	first, err := eval.Execute(context.Background(), code.ExecuteParams{Code: "leaked = 42; return leaked;"})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if first.Output != "42" {
		t.Fatalf("first output = %q, want 42", first.Output)
	}
	second, err := eval.Execute(context.Background(), code.ExecuteParams{Code: "return typeof leaked;"})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if second.Output != "undefined" {
		t.Fatalf("second output = %q, want undefined", second.Output)
	}
}

func TestNew_RequiresCatalog(t *testing.T) {
	if _, err := New(nil); err == nil {
		t.Fatal("expected an error for a nil catalog")
	}
}
