// Package dynamic implements Ember's dynamically-typed runtime value: a
// tagged union over the handful of shapes the evaluator understands
// (units, booleans, numbers, characters, strings, arrays, maps, function
// pointers, and opaque host values).
package dynamic

import "fmt"

// Kind enumerates the cases a Value can hold. The evaluator dispatches on
// Kind rather than doing Go type assertions, mirroring the tagged-union
// contract the access-chain walker and operator dispatch both rely on.
type Kind uint8

const (
	KindUnit Kind = iota
	KindBool
	KindInt
	KindFloat
	KindChar
	KindStr
	KindArray
	KindMap
	KindFnPtr
	KindVariant
)

func (k Kind) String() string {
	switch k {
	case KindUnit:
		return "()"
	case KindBool:
		return "bool"
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	case KindChar:
		return "char"
	case KindStr:
		return "string"
	case KindArray:
		return "array"
	case KindMap:
		return "map"
	case KindFnPtr:
		return "Fn"
	case KindVariant:
		return "variant"
	default:
		return "unknown"
	}
}

// FnPtr is a function name plus a sequence of curried arguments, produced
// by `Fn("name")` literals and by partial application via `curry`.
type FnPtr struct {
	Name    string
	Curried []Value
}

// Variant wraps an opaque host-registered value identified by a type tag.
// The evaluator never inspects Data; it only compares TypeTag and forwards
// Data to host-registered functions.
type Variant struct {
	TypeTag string
	Data    any
}

// Value is Ember's Dynamic. Only the field(s) matching Kind are
// meaningful; the rest are zero. Array and Map hold pointers so that
// assignment copies the reference rather than the backing storage:
// script-level sharing of a container between two variables is
// permitted and observable. Str is a plain Go string: Go strings are
// already immutable, so content-sharing on copy is unobservable and
// needs no refcounting of its own.
type Value struct {
	kind    Kind
	boolean bool
	integer int64
	float   float64
	char    rune
	str     string
	array   *[]Value
	mapv    *map[string]Value
	fn      FnPtr
	variant Variant
}

func Unit() Value                 { return Value{kind: KindUnit} }
func Bool(b bool) Value           { return Value{kind: KindBool, boolean: b} }
func Int(i int64) Value           { return Value{kind: KindInt, integer: i} }
func Float(f float64) Value       { return Value{kind: KindFloat, float: f} }
func Char(c rune) Value           { return Value{kind: KindChar, char: c} }
func Str(s string) Value          { return Value{kind: KindStr, str: s} }
func FnPointer(fp FnPtr) Value    { return Value{kind: KindFnPtr, fn: fp} }
func VariantOf(v Variant) Value   { return Value{kind: KindVariant, variant: v} }

// Array wraps an existing slice by reference. Use NewArray to allocate a
// fresh backing slice for a literal.
func Array(backing *[]Value) Value { return Value{kind: KindArray, array: backing} }

// NewArray allocates a fresh array Value around a copy of elems.
func NewArray(elems []Value) Value {
	backing := make([]Value, len(elems))
	copy(backing, elems)
	return Value{kind: KindArray, array: &backing}
}

// Map wraps an existing map by reference.
func Map(backing *map[string]Value) Value { return Value{kind: KindMap, mapv: backing} }

// NewMap allocates a fresh, empty map Value.
func NewMap() Value {
	m := make(map[string]Value)
	return Value{kind: KindMap, mapv: &m}
}

func (v Value) Kind() Kind { return v.kind }

func (v Value) IsUnit() bool    { return v.kind == KindUnit }
func (v Value) IsBool() bool    { return v.kind == KindBool }
func (v Value) IsInt() bool     { return v.kind == KindInt }
func (v Value) IsFloat() bool   { return v.kind == KindFloat }
func (v Value) IsChar() bool    { return v.kind == KindChar }
func (v Value) IsStr() bool     { return v.kind == KindStr }
func (v Value) IsArray() bool   { return v.kind == KindArray }
func (v Value) IsMap() bool     { return v.kind == KindMap }
func (v Value) IsFnPtr() bool   { return v.kind == KindFnPtr }
func (v Value) IsVariant() bool { return v.kind == KindVariant }

// IsNumeric reports whether v is Int or Float, the two shapes arithmetic
// operators accept.
func (v Value) IsNumeric() bool { return v.kind == KindInt || v.kind == KindFloat }

func (v Value) AsBool() (bool, bool)       { return v.boolean, v.kind == KindBool }
func (v Value) AsInt() (int64, bool)       { return v.integer, v.kind == KindInt }
func (v Value) AsFloat() (float64, bool)   { return v.float, v.kind == KindFloat }
func (v Value) AsChar() (rune, bool)       { return v.char, v.kind == KindChar }
func (v Value) AsStr() (string, bool)      { return v.str, v.kind == KindStr }
func (v Value) AsFnPtr() (FnPtr, bool)     { return v.fn, v.kind == KindFnPtr }
func (v Value) AsVariant() (Variant, bool) { return v.variant, v.kind == KindVariant }

// AsArray returns the backing slice pointer for an Array value so callers
// can read or mutate through the shared reference.
func (v Value) AsArray() (*[]Value, bool) { return v.array, v.kind == KindArray }

// AsMap returns the backing map pointer for a Map value.
func (v Value) AsMap() (*map[string]Value, bool) { return v.mapv, v.kind == KindMap }

// Clone returns a deep copy for shapes where independence matters
// (primitives are already copied by value; arrays/maps get fresh backing
// storage so the clone does not alias the original).
func (v Value) Clone() Value {
	switch v.kind {
	case KindArray:
		src := *v.array
		dst := make([]Value, len(src))
		for i, e := range src {
			dst[i] = e.Clone()
		}
		return Value{kind: KindArray, array: &dst}
	case KindMap:
		src := *v.mapv
		dst := make(map[string]Value, len(src))
		for k, e := range src {
			dst[k] = e.Clone()
		}
		return Value{kind: KindMap, mapv: &dst}
	default:
		return v
	}
}

// TypeName returns the script-visible type name, as returned by type_of().
func (v Value) TypeName() string {
	if v.kind == KindVariant {
		return v.variant.TypeTag
	}
	return v.kind.String()
}

func (v Value) String() string {
	switch v.kind {
	case KindUnit:
		return "()"
	case KindBool:
		if v.boolean {
			return "true"
		}
		return "false"
	case KindInt:
		return fmt.Sprintf("%d", v.integer)
	case KindFloat:
		return fmt.Sprintf("%v", v.float)
	case KindChar:
		return string(v.char)
	case KindStr:
		return v.str
	case KindArray:
		out := "["
		for i, e := range *v.array {
			if i > 0 {
				out += ", "
			}
			out += e.String()
		}
		return out + "]"
	case KindMap:
		out := "#{"
		i := 0
		for k, e := range *v.mapv {
			if i > 0 {
				out += ", "
			}
			out += k + ": " + e.String()
			i++
		}
		return out + "}"
	case KindFnPtr:
		return "Fn(" + v.fn.Name + ")"
	case KindVariant:
		return fmt.Sprintf("%v", v.variant.Data)
	default:
		return "<unknown>"
	}
}
