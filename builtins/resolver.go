package builtins

import (
	"fmt"

	"github.com/emberlang/ember/eval"
	"github.com/emberlang/ember/pkg/dynamic"
)

// Resolver is a minimal eval.CallResolver: it tries script-defined
// functions registered on itself before falling back to the Library's
// native table.
type Resolver struct {
	lib     *Library
	scripts map[string]eval.Function
}

// NewResolver builds a Resolver backed by lib, with no script-defined
// functions registered yet.
func NewResolver(lib *Library) *Resolver {
	return &Resolver{lib: lib, scripts: map[string]eval.Function{}}
}

// DefineFunction registers a script-defined function under name,
// shadowing any Library entry of the same name.
func (r *Resolver) DefineFunction(name string, fn eval.Function) {
	r.scripts[name] = fn
}

func (r *Resolver) lookup(name string, argc int) (eval.Function, bool) {
	if fn, ok := r.scripts[name]; ok {
		return fn, true
	}
	return r.lib.Resolve(name, 0, argc)
}

func (r *Resolver) ExecFnCall(ctx *eval.Context, name string, hash uint64, args []dynamic.Value, isRef, isMethod bool, def *dynamic.Value, level int) (dynamic.Value, bool, error) {
	fn, ok := r.lookup(name, len(args))
	if !ok {
		if def != nil {
			return *def, false, nil
		}
		return dynamic.Unit(), false, fmt.Errorf("function not found: %s", name)
	}
	v, err := fn(ctx, args, level)
	return v, false, err
}

func (r *Resolver) MakeMethodCall(ctx *eval.Context, receiver *dynamic.Value, name string, hash uint64, args []dynamic.Value, level int) (dynamic.Value, bool, error) {
	full := append([]dynamic.Value{*receiver}, args...)
	fn, ok := r.lookup(name, len(full))
	if !ok {
		return dynamic.Unit(), false, fmt.Errorf("method not found: %s", name)
	}
	v, err := fn(ctx, full, level)
	return v, false, err
}

func (r *Resolver) MakeFunctionCall(ctx *eval.Context, name string, hash uint64, args []dynamic.Value, level int) (dynamic.Value, error) {
	fn, ok := r.lookup(name, len(args))
	if !ok {
		return dynamic.Unit(), fmt.Errorf("function not found: %s", name)
	}
	return fn(ctx, args, level)
}

func (r *Resolver) MakeQualifiedFunctionCall(ctx *eval.Context, module eval.Module, name string, hash uint64, args []dynamic.Value, level int) (dynamic.Value, error) {
	fn, ok := module.GetFn(hash)
	if !ok {
		return dynamic.Unit(), fmt.Errorf("function not found in module: %s", name)
	}
	return fn(ctx, args, level)
}

func (r *Resolver) CallFnRaw(ctx *eval.Context, name string, args []dynamic.Value, level int) (dynamic.Value, error) {
	fn, ok := r.lookup(name, len(args))
	if !ok {
		return dynamic.Unit(), fmt.Errorf("function not found: %s", name)
	}
	return fn(ctx, args, level)
}
