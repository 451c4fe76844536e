package builtins

import (
	"fmt"
	"sort"
	"strings"

	"github.com/emberlang/ember/eval"
	"github.com/emberlang/ember/pkg/dynamic"
)

// Library is the default, in-memory eval.Library implementation: a flat
// name table of native operators and methods, plus the registered
// iterator factories for `for`. A host embeds Ember by constructing one
// of these (or wrapping it) and passing it to eval.Evaluator.Run.
type Library struct {
	fns       map[string]eval.Function
	iterators map[string]eval.IteratorFactory
}

// NewLibrary returns a Library pre-populated with Ember's default
// operator table, container/string methods, and iterator factories.
func NewLibrary() *Library {
	l := &Library{
		fns:       map[string]eval.Function{},
		iterators: map[string]eval.IteratorFactory{},
	}
	l.registerOperators()
	l.registerMethods()
	l.registerIterators()
	return l
}

func (l *Library) registerOperators() {
	l.fns["+"] = arity2(opAdd)
	l.fns["-"] = arity2(opSub)
	l.fns["*"] = arity2(opMul)
	l.fns["/"] = arity2(opDiv)
	l.fns["%"] = arity2(opMod)
	l.fns["=="] = arity2(opEq)
	l.fns["!="] = arity2(opNeq)
	l.fns["<"] = arity2(opLt)
	l.fns["<="] = arity2(opLe)
	l.fns[">"] = arity2(opGt)
	l.fns[">="] = arity2(opGe)
}

// Register adds or overrides a named function, letting a host extend
// the default table without forking this package.
func (l *Library) Register(name string, fn eval.Function) {
	l.fns[name] = fn
}

// RegisterIterator adds or overrides the iterator factory for a type
// tag, as reported by dynamic.Value.TypeName.
func (l *Library) RegisterIterator(typeTag string, factory eval.IteratorFactory) {
	l.iterators[typeTag] = factory
}

// Resolve implements eval.Library. Ember's default table is keyed by
// name alone (argc is accepted to satisfy the contract but unused here,
// mirroring a single-arity-per-name design; a host wanting overload
// resolution can wrap Library and dispatch on argc before delegating).
func (l *Library) Resolve(name string, hash uint64, argc int) (eval.Function, bool) {
	fn, ok := l.fns[name]
	return fn, ok
}

func (l *Library) Iterator(typeTag string) (eval.IteratorFactory, bool) {
	f, ok := l.iterators[typeTag]
	return f, ok
}

func (l *Library) RunBuiltinOpAssignment(op string, lhs, rhs dynamic.Value) (dynamic.Value, bool) {
	fn, ok := opAssignBuiltins[op]
	if !ok {
		return dynamic.Unit(), false
	}
	v, err := fn(lhs, rhs)
	if err != nil {
		return dynamic.Unit(), false
	}
	return v, true
}

func (l *Library) registerMethods() {
	l.fns[eval.FnPrint] = func(ctx *eval.Context, args []dynamic.Value, level int) (dynamic.Value, error) {
		parts := make([]string, len(args))
		for i, a := range args {
			parts[i] = formatPrint(a)
		}
		fmt.Println(strings.Join(parts, " "))
		return dynamic.Unit(), nil
	}
	l.fns[eval.FnDebug] = func(ctx *eval.Context, args []dynamic.Value, level int) (dynamic.Value, error) {
		if len(args) != 1 {
			return dynamic.Unit(), fmt.Errorf("debug() expects 1 argument, got %d", len(args))
		}
		return dynamic.Str(formatDebug(args[0])), nil
	}
	l.fns[eval.FnToString] = func(ctx *eval.Context, args []dynamic.Value, level int) (dynamic.Value, error) {
		if len(args) != 1 {
			return dynamic.Unit(), fmt.Errorf("to_string() expects 1 argument, got %d", len(args))
		}
		return dynamic.Str(formatPrint(args[0])), nil
	}
	l.fns[eval.FnTypeOf] = func(ctx *eval.Context, args []dynamic.Value, level int) (dynamic.Value, error) {
		if len(args) != 1 {
			return dynamic.Unit(), fmt.Errorf("type_of() expects 1 argument, got %d", len(args))
		}
		return dynamic.Str(args[0].TypeName()), nil
	}

	l.fns["len"] = func(ctx *eval.Context, args []dynamic.Value, level int) (dynamic.Value, error) {
		if len(args) != 1 {
			return dynamic.Unit(), fmt.Errorf("len() expects 1 argument, got %d", len(args))
		}
		return lenOf(args[0])
	}
	l.fns["push"] = func(ctx *eval.Context, args []dynamic.Value, level int) (dynamic.Value, error) {
		if len(args) != 2 {
			return dynamic.Unit(), fmt.Errorf("push() expects 2 arguments, got %d", len(args))
		}
		arr, ok := args[0].AsArray()
		if !ok {
			return dynamic.Unit(), fmt.Errorf("push() expects an array, got %s", args[0].TypeName())
		}
		*arr = append(*arr, args[1])
		return dynamic.Unit(), nil
	}
	l.fns["pop"] = func(ctx *eval.Context, args []dynamic.Value, level int) (dynamic.Value, error) {
		if len(args) != 1 {
			return dynamic.Unit(), fmt.Errorf("pop() expects 1 argument, got %d", len(args))
		}
		arr, ok := args[0].AsArray()
		if !ok {
			return dynamic.Unit(), fmt.Errorf("pop() expects an array, got %s", args[0].TypeName())
		}
		if len(*arr) == 0 {
			return dynamic.Unit(), fmt.Errorf("pop() on empty array")
		}
		last := (*arr)[len(*arr)-1]
		*arr = (*arr)[:len(*arr)-1]
		return last, nil
	}
	l.fns[eval.FnCallName] = func(ctx *eval.Context, args []dynamic.Value, level int) (dynamic.Value, error) {
		if len(args) == 0 {
			return dynamic.Unit(), fmt.Errorf("call() expects at least 1 argument, got 0")
		}
		fp, ok := args[0].AsFnPtr()
		if !ok {
			return dynamic.Unit(), fmt.Errorf("call() expects a function pointer, got %s", args[0].TypeName())
		}
		full := append(append([]dynamic.Value{}, fp.Curried...), args[1:]...)
		return ctx.Resolver.CallFnRaw(ctx, fp.Name, full, level)
	}
	l.fns[eval.FnCurry] = func(ctx *eval.Context, args []dynamic.Value, level int) (dynamic.Value, error) {
		if len(args) == 0 {
			return dynamic.Unit(), fmt.Errorf("curry() expects at least 1 argument, got 0")
		}
		fp, ok := args[0].AsFnPtr()
		if !ok {
			return dynamic.Unit(), fmt.Errorf("curry() expects a function pointer, got %s", args[0].TypeName())
		}
		curried := append(append([]dynamic.Value{}, fp.Curried...), args[1:]...)
		return dynamic.FnPointer(dynamic.FnPtr{Name: fp.Name, Curried: curried}), nil
	}
	l.fns["keys"] = func(ctx *eval.Context, args []dynamic.Value, level int) (dynamic.Value, error) {
		if len(args) != 1 {
			return dynamic.Unit(), fmt.Errorf("keys() expects 1 argument, got %d", len(args))
		}
		m, ok := args[0].AsMap()
		if !ok {
			return dynamic.Unit(), fmt.Errorf("keys() expects a map, got %s", args[0].TypeName())
		}
		names := make([]string, 0, len(*m))
		for k := range *m {
			names = append(names, k)
		}
		sort.Strings(names)
		out := make([]dynamic.Value, len(names))
		for i, n := range names {
			out[i] = dynamic.Str(n)
		}
		return dynamic.NewArray(out), nil
	}
}

func lenOf(v dynamic.Value) (dynamic.Value, error) {
	switch v.Kind() {
	case dynamic.KindStr:
		s, _ := v.AsStr()
		return dynamic.Int(int64(len([]rune(s)))), nil
	case dynamic.KindArray:
		arr, _ := v.AsArray()
		return dynamic.Int(int64(len(*arr))), nil
	case dynamic.KindMap:
		m, _ := v.AsMap()
		return dynamic.Int(int64(len(*m))), nil
	default:
		return dynamic.Unit(), fmt.Errorf("len() not supported on %s", v.TypeName())
	}
}

func formatPrint(v dynamic.Value) string {
	if s, ok := v.AsStr(); ok {
		return s
	}
	return v.String()
}

func formatDebug(v dynamic.Value) string {
	return v.String()
}
