package dynamic

import "fmt"

// ConvertError reports a failed explicit conversion between Dynamic
// shapes: conversions between Int/Char/Bool/Str are explicit, never
// implicit.
type ConvertError struct {
	From Kind
	To   Kind
}

func (e *ConvertError) Error() string {
	return fmt.Sprintf("cannot convert %s to %s", e.From, e.To)
}

// ToInt implements the explicit Int conversion: Int is identity, Char
// widens to its code point, Bool maps to 0/1, Float truncates toward
// zero. Every other kind, Str included, is a ConvertError.
func (v Value) ToInt() (int64, error) {
	switch v.kind {
	case KindInt:
		return v.integer, nil
	case KindChar:
		return int64(v.char), nil
	case KindBool:
		if v.boolean {
			return 1, nil
		}
		return 0, nil
	case KindFloat:
		return int64(v.float), nil
	default:
		return 0, &ConvertError{From: v.kind, To: KindInt}
	}
}

// ToFloat implements the explicit Float conversion.
func (v Value) ToFloat() (float64, error) {
	switch v.kind {
	case KindFloat:
		return v.float, nil
	case KindInt:
		return float64(v.integer), nil
	default:
		return 0, &ConvertError{From: v.kind, To: KindFloat}
	}
}

// ToChar implements the explicit Char conversion: Char is identity, Int
// narrows (out-of-range code points are rejected by the caller if it
// cares), Str succeeds only for single-character strings.
func (v Value) ToChar() (rune, error) {
	switch v.kind {
	case KindChar:
		return v.char, nil
	case KindInt:
		return rune(v.integer), nil
	case KindStr:
		runes := []rune(v.str)
		if len(runes) == 1 {
			return runes[0], nil
		}
		return 0, &ConvertError{From: v.kind, To: KindChar}
	default:
		return 0, &ConvertError{From: v.kind, To: KindChar}
	}
}

// ToBool implements the explicit Bool conversion: Bool is identity, Int
// treats non-zero as true.
func (v Value) ToBool() (bool, error) {
	switch v.kind {
	case KindBool:
		return v.boolean, nil
	case KindInt:
		return v.integer != 0, nil
	default:
		return false, &ConvertError{From: v.kind, To: KindBool}
	}
}

// ToStr implements the explicit Str conversion, available from every
// primitive shape via String().
func (v Value) ToStr() (string, error) {
	switch v.kind {
	case KindStr, KindInt, KindFloat, KindBool, KindChar:
		return v.String(), nil
	default:
		return "", &ConvertError{From: v.kind, To: KindStr}
	}
}

// Size computes the governor-relevant size of v for the shape the
// governor cares about: string length, array element count (including
// nested array/map leaves), or map entry count (including nested).
// Non-capped shapes (bool, int, float, char, unit, fn ptr, variant)
// return 0 and are never checked by the size governor.
func (v Value) Size() (kindCapped bool, n int64) {
	switch v.kind {
	case KindStr:
		return true, int64(len([]rune(v.str)))
	case KindArray:
		var total int64
		for _, e := range *v.array {
			total++
			if e.IsArray() || e.IsMap() {
				_, sub := e.Size()
				total += sub
			}
		}
		return true, total
	case KindMap:
		var total int64
		for _, e := range *v.mapv {
			total++
			if e.IsArray() || e.IsMap() {
				_, sub := e.Size()
				total += sub
			}
		}
		return true, total
	default:
		return false, 0
	}
}
