package sandbox

import (
	"context"
	"fmt"
	"time"

	"github.com/dop251/goja"

	"github.com/jonwraymond/toolsandbox/catalog"
	"github.com/jonwraymond/toolsandbox/code"
)

// buildEnvironment constructs the wrapped capability environment: a
// fresh object mapping each capability name to a newly allocated
// forwarding function. The function object doubles as its own
// "execute" property, so tools.name(...) and tools.name.execute(...)
// reach the identical wrapper. The wrapper's only behavior is to
// forward the call's arguments to the capability and hand back its
// result, or throw its failure; the capability's implementation is
// never reachable from the runtime.
func buildEnvironment(ctx context.Context, vm *goja.Runtime, caps []catalog.Capability, rec *recorder, maxToolCalls int) *goja.Object {
	env := vm.NewObject()
	budget := &callBudget{limit: maxToolCalls}
	for _, entry := range caps {
		entry := entry
		wrapper := vm.ToValue(func(call goja.FunctionCall) goja.Value {
			args := exportArgs(call.Arguments)
			if err := budget.take(); err != nil {
				rec.record(code.ToolCallRecord{Tool: entry.Name, Args: args, Error: err.Error()})
				panic(vm.NewGoError(err))
			}
			start := time.Now()
			out, err := entry.Invoke(ctx, args...)
			record := code.ToolCallRecord{
				Tool:       entry.Name,
				Args:       args,
				DurationMs: time.Since(start).Milliseconds(),
			}
			if err != nil {
				record.Error = err.Error()
				rec.record(record)
				panic(vm.NewGoError(err))
			}
			record.Result = out
			rec.record(record)
			return vm.ToValue(out)
		})
		fn := wrapper.(*goja.Object)
		_ = fn.Set("execute", wrapper)
		_ = env.Set(entry.Name, wrapper)
	}
	return env
}

// callBudget caps the number of capability invocations in one run.
// Zero means unlimited. The sandbox runtime is single-threaded, so no
// locking is needed.
type callBudget struct {
	limit int
	used  int
}

func (b *callBudget) take() error {
	if b.limit > 0 && b.used >= b.limit {
		return fmt.Errorf("%w: max tool calls (%d) exceeded", code.ErrLimitExceeded, b.limit)
	}
	b.used++
	return nil
}

// recorder collects the capability-call trace for one run.
type recorder struct {
	calls []code.ToolCallRecord
}

func (r *recorder) record(rec code.ToolCallRecord) {
	r.calls = append(r.calls, rec)
}

// exportArgs converts the call's JavaScript arguments to plain Go
// values, exactly as they will reach the capability.
func exportArgs(values []goja.Value) []any {
	if len(values) == 0 {
		return nil
	}
	out := make([]any, len(values))
	for i, v := range values {
		out[i] = v.Export()
	}
	return out
}
