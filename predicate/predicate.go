// Package predicate provides named, statically-compiled predicate functions
// for script restrictions. A dictionary's script restriction names the
// predicates to run; the Registry resolves names to functions at validation
// time. Nothing here executes user-supplied code.
package predicate

import (
	"fmt"

	godict "github.com/reoring/godict"
)

// Func is a single predicate. It receives the whole typed record, the
// field's coerced value, and the field's name, and decides validity.
type Func func(record godict.TypedDataRecord, value godict.FieldValue, field string) godict.ScriptResult

// Registry maps predicate names to functions. It implements
// godict.ScriptEvaluator, so a Registry is the evaluator object handed to a
// Processor: one explicit instance per batch or per process.
type Registry struct {
	funcs map[string]Func
}

// NewRegistry returns a Registry seeded with the built-in predicates.
func NewRegistry() *Registry {
	r := &Registry{funcs: map[string]Func{}}
	registerBuiltins(r)
	return r
}

// Register binds a name to a predicate, replacing any previous binding.
func (r *Registry) Register(name string, fn Func) {
	r.funcs[name] = fn
}

// Evaluate resolves and runs a named predicate. Unknown names and panicking
// predicates surface as errors; the engine converts those into a generic
// failing script result, so they can never abort a batch.
func (r *Registry) Evaluate(name string, record godict.TypedDataRecord, value godict.FieldValue, field string) (res godict.ScriptResult, err error) {
	fn, ok := r.funcs[name]
	if !ok {
		return godict.ScriptResult{}, fmt.Errorf("predicate: unknown predicate %q", name)
	}
	defer func() {
		if p := recover(); p != nil {
			err = fmt.Errorf("predicate: %q panicked: %v", name, p)
		}
	}()
	return fn(record, value, field), nil
}

// All composes predicates so every one must pass; the first failure wins.
func All(funcs ...Func) Func {
	return func(record godict.TypedDataRecord, value godict.FieldValue, field string) godict.ScriptResult {
		for _, fn := range funcs {
			if fn == nil {
				continue
			}
			if res := fn(record, value, field); !res.Valid {
				return res
			}
		}
		return godict.ScriptResult{Valid: true}
	}
}

// Any composes predicates so one passing suffices; when all fail, the first
// failure is reported.
func Any(funcs ...Func) Func {
	return func(record godict.TypedDataRecord, value godict.FieldValue, field string) godict.ScriptResult {
		var first *godict.ScriptResult
		for _, fn := range funcs {
			if fn == nil {
				continue
			}
			res := fn(record, value, field)
			if res.Valid {
				return res
			}
			if first == nil {
				first = &res
			}
		}
		if first != nil {
			return *first
		}
		return godict.ScriptResult{Valid: true}
	}
}
