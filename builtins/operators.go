// Package builtins implements Ember's default Library: the built-in
// operator table, the container/string method set, the default
// print/debug/to_string/type_of hooks, and the Array/Map/Str iterator
// factories. None of this package is consumed directly by eval -- it
// satisfies eval.Library/eval.CallResolver/eval.ModuleResolver so a
// host can wire a working engine without writing its own function
// table from scratch.
package builtins

import (
	"fmt"
	"math"

	"github.com/emberlang/ember/eval"
	"github.com/emberlang/ember/pkg/dynamic"
)

func arity2(fn func(a, b dynamic.Value) (dynamic.Value, error)) eval.Function {
	return func(ctx *eval.Context, args []dynamic.Value, level int) (dynamic.Value, error) {
		if len(args) != 2 {
			return dynamic.Unit(), fmt.Errorf("operator expects 2 arguments, got %d", len(args))
		}
		return fn(args[0], args[1])
	}
}

func numericPair(a, b dynamic.Value) (af, bf float64, bothInt bool, ok bool) {
	ai, aIsInt := a.AsInt()
	bi, bIsInt := b.AsInt()
	if aIsInt && bIsInt {
		return float64(ai), float64(bi), true, true
	}
	afv, aOK := asFloatLike(a)
	bfv, bOK := asFloatLike(b)
	if aOK && bOK {
		return afv, bfv, false, true
	}
	return 0, 0, false, false
}

func asFloatLike(v dynamic.Value) (float64, bool) {
	if f, ok := v.AsFloat(); ok {
		return f, true
	}
	if i, ok := v.AsInt(); ok {
		return float64(i), true
	}
	return 0, false
}

func opAdd(a, b dynamic.Value) (dynamic.Value, error) {
	if as, ok := a.AsStr(); ok {
		if bs, ok := b.AsStr(); ok {
			return dynamic.Str(as + bs), nil
		}
	}
	if arr, ok := a.AsArray(); ok {
		if other, ok := b.AsArray(); ok {
			combined := make([]dynamic.Value, 0, len(*arr)+len(*other))
			combined = append(combined, *arr...)
			combined = append(combined, *other...)
			return dynamic.NewArray(combined), nil
		}
	}
	af, bf, bothInt, ok := numericPair(a, b)
	if !ok {
		return dynamic.Unit(), fmt.Errorf("'+' not supported between %s and %s", a.TypeName(), b.TypeName())
	}
	if bothInt {
		return dynamic.Int(int64(af) + int64(bf)), nil
	}
	return dynamic.Float(af + bf), nil
}

func opSub(a, b dynamic.Value) (dynamic.Value, error) {
	af, bf, bothInt, ok := numericPair(a, b)
	if !ok {
		return dynamic.Unit(), fmt.Errorf("'-' not supported between %s and %s", a.TypeName(), b.TypeName())
	}
	if bothInt {
		return dynamic.Int(int64(af) - int64(bf)), nil
	}
	return dynamic.Float(af - bf), nil
}

func opMul(a, b dynamic.Value) (dynamic.Value, error) {
	af, bf, bothInt, ok := numericPair(a, b)
	if !ok {
		return dynamic.Unit(), fmt.Errorf("'*' not supported between %s and %s", a.TypeName(), b.TypeName())
	}
	if bothInt {
		return dynamic.Int(int64(af) * int64(bf)), nil
	}
	return dynamic.Float(af * bf), nil
}

func opDiv(a, b dynamic.Value) (dynamic.Value, error) {
	af, bf, bothInt, ok := numericPair(a, b)
	if !ok {
		return dynamic.Unit(), fmt.Errorf("'/' not supported between %s and %s", a.TypeName(), b.TypeName())
	}
	if bothInt {
		if int64(bf) == 0 {
			return dynamic.Unit(), fmt.Errorf("division by zero")
		}
		return dynamic.Int(int64(af) / int64(bf)), nil
	}
	return dynamic.Float(af / bf), nil
}

func opMod(a, b dynamic.Value) (dynamic.Value, error) {
	af, bf, bothInt, ok := numericPair(a, b)
	if !ok {
		return dynamic.Unit(), fmt.Errorf("'%%' not supported between %s and %s", a.TypeName(), b.TypeName())
	}
	if bothInt {
		if int64(bf) == 0 {
			return dynamic.Unit(), fmt.Errorf("division by zero")
		}
		return dynamic.Int(int64(af) % int64(bf)), nil
	}
	return dynamic.Float(math.Mod(af, bf)), nil
}

func opEq(a, b dynamic.Value) (dynamic.Value, error)  { return dynamic.Bool(a.Equals(b)), nil }
func opNeq(a, b dynamic.Value) (dynamic.Value, error) { return dynamic.Bool(!a.Equals(b)), nil }

func compareNumeric(a, b dynamic.Value) (float64, bool) {
	af, bf, _, ok := numericPair(a, b)
	if !ok {
		return 0, false
	}
	return af - bf, true
}

func opLt(a, b dynamic.Value) (dynamic.Value, error) {
	if as, aOK := a.AsStr(); aOK {
		if bs, bOK := b.AsStr(); bOK {
			return dynamic.Bool(as < bs), nil
		}
	}
	d, ok := compareNumeric(a, b)
	if !ok {
		return dynamic.Unit(), fmt.Errorf("'<' not supported between %s and %s", a.TypeName(), b.TypeName())
	}
	return dynamic.Bool(d < 0), nil
}

func opLe(a, b dynamic.Value) (dynamic.Value, error) {
	if as, aOK := a.AsStr(); aOK {
		if bs, bOK := b.AsStr(); bOK {
			return dynamic.Bool(as <= bs), nil
		}
	}
	d, ok := compareNumeric(a, b)
	if !ok {
		return dynamic.Unit(), fmt.Errorf("'<=' not supported between %s and %s", a.TypeName(), b.TypeName())
	}
	return dynamic.Bool(d <= 0), nil
}

func opGt(a, b dynamic.Value) (dynamic.Value, error) {
	if as, aOK := a.AsStr(); aOK {
		if bs, bOK := b.AsStr(); bOK {
			return dynamic.Bool(as > bs), nil
		}
	}
	d, ok := compareNumeric(a, b)
	if !ok {
		return dynamic.Unit(), fmt.Errorf("'>' not supported between %s and %s", a.TypeName(), b.TypeName())
	}
	return dynamic.Bool(d > 0), nil
}

func opGe(a, b dynamic.Value) (dynamic.Value, error) {
	if as, aOK := a.AsStr(); aOK {
		if bs, bOK := b.AsStr(); bOK {
			return dynamic.Bool(as >= bs), nil
		}
	}
	d, ok := compareNumeric(a, b)
	if !ok {
		return dynamic.Unit(), fmt.Errorf("'>=' not supported between %s and %s", a.TypeName(), b.TypeName())
	}
	return dynamic.Bool(d >= 0), nil
}

// opAssignBuiltins backs Library.RunBuiltinOpAssignment for the common
// primitive-on-primitive cases, sidestepping a registered-function
// lookup round-trip for the overwhelming majority of `x += 1` style
// assignments.
var opAssignBuiltins = map[string]func(a, b dynamic.Value) (dynamic.Value, error){
	"+": opAdd,
	"-": opSub,
	"*": opMul,
	"/": opDiv,
	"%": opMod,
}
