package eval

import (
	"github.com/emberlang/ember/pkg/dynamic"
	"github.com/emberlang/ember/pkg/token"
)

// Function is anything the Library or a Module can resolve a call to.
// level is the current call-stack depth, threaded through for
// diagnostics and recursion bookkeeping.
type Function func(ctx *Context, args []dynamic.Value, level int) (dynamic.Value, error)

// IteratorFactory produces a fresh Iterator over a Dynamic value of a
// given shape, keyed by the value's type tag.
type IteratorFactory func(v dynamic.Value) (Iterator, error)

// Iterator yields successive elements for a `for` loop.
type Iterator interface {
	Next() (dynamic.Value, bool)
}

// Library is the effective function table threaded through evaluation:
// global registrations union loaded packages union the compiled
// script's own functions. Its population mechanics (native
// registration, package loading, script compilation) are a concern of
// the host embedding the evaluator; the evaluator only depends on this
// lookup/dispatch contract.
type Library interface {
	// Resolve looks up a callable by name/hash and argument count,
	// trying global registrations, then imported packages, then
	// script-defined functions, in that order. ok is false if nothing
	// matches.
	Resolve(name string, hash uint64, argc int) (Function, bool)

	// Iterator returns the registered iterator factory for a Dynamic
	// shape's type tag, if any.
	Iterator(typeTag string) (IteratorFactory, bool)

	// RunBuiltinOpAssignment implements a primitive-on-primitive
	// compound-assignment built-in (e.g. Int += Int) without going
	// through a registered function, returning ok=false when no
	// built-in applies so the caller falls back to desugaring.
	RunBuiltinOpAssignment(op string, lhs, rhs dynamic.Value) (dynamic.Value, bool)
}

// CallResolver implements function-call resolution: looking up and
// invoking registered native functions, script-defined functions, and
// instance methods. Resolution internals are a host/library concern;
// the evaluator only consumes this as a collaborator.
type CallResolver interface {
	// ExecFnCall resolves and invokes name/hash with args, returning
	// whether a by-reference receiver was mutated ("updated").
	ExecFnCall(ctx *Context, name string, hash uint64, args []dynamic.Value, isRef, isMethod bool, def *dynamic.Value, level int) (result dynamic.Value, updated bool, err error)

	// MakeMethodCall invokes name/hash as a `base.f(args)` method call
	// against receiver.
	MakeMethodCall(ctx *Context, receiver *dynamic.Value, name string, hash uint64, args []dynamic.Value, level int) (result dynamic.Value, updated bool, err error)

	// MakeFunctionCall invokes an unqualified function call.
	MakeFunctionCall(ctx *Context, name string, hash uint64, args []dynamic.Value, level int) (dynamic.Value, error)

	// MakeQualifiedFunctionCall invokes a module-qualified function call.
	MakeQualifiedFunctionCall(ctx *Context, module Module, name string, hash uint64, args []dynamic.Value, level int) (dynamic.Value, error)

	// CallFnRaw is the low-level dispatch used wherever a function needs
	// to be invoked by bare name without chain/assignment bookkeeping,
	// such as applyOp's desugared `lhs op rhs`. The `in` operator's "=="
	// comparisons do not go through it: they resolve "==" on the Library
	// directly.
	CallFnRaw(ctx *Context, name string, args []dynamic.Value, level int) (dynamic.Value, error)
}

// ModuleResolver loads a named module from a host-defined source. Its
// loading mechanics are a host concern; the evaluator only consumes it
// as a collaborator.
type ModuleResolver interface {
	Resolve(ctx *Context, path string, pos token.Position) (Module, error)
}

// Well-known function names the evaluator treats specially.
const (
	FnGet      = "get$"
	FnSet      = "set$"
	FnIndexGet = "index$get$"
	FnIndexSet = "index$set$"
	FnClosure  = "Fn"
	FnCallName = "call"
	FnCurry    = "curry"
	FnThis     = "this"
	FnPrint    = "print"
	FnDebug    = "debug"
	FnTypeOf   = "type_of"
	FnEval     = "eval"
	FnToString = "to_string"
)
