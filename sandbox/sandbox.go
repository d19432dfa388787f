package sandbox

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/dop251/goja"

	"github.com/jonwraymond/toolsandbox/catalog"
	"github.com/jonwraymond/toolsandbox/code"
	"github.com/jonwraymond/toolsandbox/policy"
)

// envParam is the name of the single formal parameter the sandbox
// function receives: the wrapped capability environment.
const envParam = "tools"

// Evaluator validates and runs snippets against a capability catalog.
// It implements code.Engine.
type Evaluator struct {
	caps *catalog.Catalog
}

// New creates an Evaluator over the given catalog.
func New(caps *catalog.Catalog) (*Evaluator, error) {
	if caps == nil {
		return nil, errors.New("sandbox: catalog is required")
	}
	return &Evaluator{caps: caps}, nil
}

// Execute implements code.Engine. Validation and snippet failures fold
// into ExecuteResult.Output; the returned error is reserved for host
// concerns (an interrupted run returns the context's error).
func (e *Evaluator) Execute(ctx context.Context, params code.ExecuteParams) (code.ExecuteResult, error) {
	start := time.Now()
	var result code.ExecuteResult

	verdict := policy.Validate(params.Code)
	if !verdict.Valid {
		var b strings.Builder
		b.WriteString("Code validation failed:")
		for _, v := range verdict.Violations {
			b.WriteString("\n")
			b.WriteString(v.Message)
		}
		result.Output = b.String()
		result.DurationMs = time.Since(start).Milliseconds()
		return result, nil
	}

	// A fresh runtime per call: nothing survives between runs and the
	// global object holds only ECMAScript builtins.
	vm := goja.New()
	rec := &recorder{}
	env := buildEnvironment(ctx, vm, e.caps.List(), rec, params.MaxToolCalls)

	// Interrupt the runtime when the context is done so an unbounded
	// loop or a stuck capability cannot block the call forever.
	watchdogDone := make(chan struct{})
	defer close(watchdogDone)
	go func() {
		select {
		case <-ctx.Done():
			vm.Interrupt(ctx.Err())
		case <-watchdogDone:
		}
	}()

	output, err := run(vm, params.Code, env)
	result.Output = output
	result.ToolCalls = rec.calls
	result.DurationMs = time.Since(start).Milliseconds()
	return result, err
}

// run constructs the isolated sandbox function from the validated
// source and drives it to completion. The returned error is non-nil
// only when the runtime was interrupted; every other failure is
// rendered into the output string.
func run(vm *goja.Runtime, source string, env *goja.Object) (string, error) {
	// The constructed function's body is the submitted snippet; its
	// only parameter is the capability environment. A snippet-level
	// return resolves the async function's promise.
	fnValue, err := vm.RunString("(async function(" + envParam + ") {\n" + source + "\n});")
	if err != nil {
		if ierr := interruptCause(err); ierr != nil {
			return "Error: execution interrupted: " + ierr.Error(), ierr
		}
		return "Error: " + throwMessage(err), nil
	}
	fn, ok := goja.AssertFunction(fnValue)
	if !ok {
		return "Error: sandbox did not produce a callable function", nil
	}

	value, err := fn(goja.Undefined(), env)
	if err != nil {
		if ierr := interruptCause(err); ierr != nil {
			return "Error: execution interrupted: " + ierr.Error(), ierr
		}
		return "Error: " + throwMessage(err), nil
	}

	// Capability calls are synchronous from the runtime's point of
	// view, so the promise has settled by the time the call returns.
	if p, ok := value.Export().(*goja.Promise); ok {
		switch p.State() {
		case goja.PromiseStateRejected:
			return "Error: " + valueMessage(p.Result()), nil
		case goja.PromiseStateFulfilled:
			value = p.Result()
		default:
			return "Error: execution did not settle", nil
		}
	}
	return render(value), nil
}

// interruptCause unwraps the value carried by a runtime interrupt.
func interruptCause(err error) error {
	var ie *goja.InterruptedError
	if !errors.As(err, &ie) {
		return nil
	}
	if cause, ok := ie.Value().(error); ok {
		return cause
	}
	return errors.New("execution interrupted")
}

// throwMessage extracts a readable message from a JavaScript throw
// delivered as a Go error.
func throwMessage(err error) string {
	var ex *goja.Exception
	if errors.As(err, &ex) {
		return valueMessage(ex.Value())
	}
	return err.Error()
}

// valueMessage renders a thrown or rejected value the way an agent
// should read it: an Error object's message, otherwise its string
// form.
func valueMessage(v goja.Value) string {
	if v == nil {
		return "unknown error"
	}
	if obj, ok := v.(*goja.Object); ok {
		if msg := obj.Get("message"); msg != nil && !goja.IsUndefined(msg) {
			return msg.String()
		}
	}
	return v.String()
}
