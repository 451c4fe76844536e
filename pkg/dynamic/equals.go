package dynamic

// Equals implements the default "==" semantics used by the `in` operator
// and by the built-in equality operator-function. Map key order is never
// considered. Arrays compare element-wise and are equal only if their
// lengths match. FnPtr equality compares name and curried arguments.
// Variant equality compares the type tag and Data (with Go's ==); Data
// that is not comparable never compares equal.
func (v Value) Equals(other Value) bool {
	if v.kind != other.kind {
		// Int/Float cross-comparison is the one numeric-tower exception.
		if v.IsNumeric() && other.IsNumeric() {
			lf, _ := v.numeric()
			rf, _ := other.numeric()
			return lf == rf
		}
		return false
	}
	switch v.kind {
	case KindUnit:
		return true
	case KindBool:
		return v.boolean == other.boolean
	case KindInt:
		return v.integer == other.integer
	case KindFloat:
		return v.float == other.float
	case KindChar:
		return v.char == other.char
	case KindStr:
		return v.str == other.str
	case KindArray:
		a, b := *v.array, *other.array
		if len(a) != len(b) {
			return false
		}
		for i := range a {
			if !a[i].Equals(b[i]) {
				return false
			}
		}
		return true
	case KindMap:
		a, b := *v.mapv, *other.mapv
		if len(a) != len(b) {
			return false
		}
		for k, av := range a {
			bv, ok := b[k]
			if !ok || !av.Equals(bv) {
				return false
			}
		}
		return true
	case KindFnPtr:
		if v.fn.Name != other.fn.Name || len(v.fn.Curried) != len(other.fn.Curried) {
			return false
		}
		for i := range v.fn.Curried {
			if !v.fn.Curried[i].Equals(other.fn.Curried[i]) {
				return false
			}
		}
		return true
	case KindVariant:
		if v.variant.TypeTag != other.variant.TypeTag {
			return false
		}
		return variantDataEqual(v.variant.Data, other.variant.Data)
	default:
		return false
	}
}

func (v Value) numeric() (float64, bool) {
	switch v.kind {
	case KindInt:
		return float64(v.integer), true
	case KindFloat:
		return v.float, true
	default:
		return 0, false
	}
}

// Truthy reports v's boolean value, used by if/while guards after the
// caller has already verified v.IsBool() (spec: non-boolean guards are a
// LogicGuard error, never silently coerced).
func (v Value) Truthy() bool { return v.boolean }

// variantDataEqual compares opaque host payloads without risking a panic
// on incomparable underlying types (slices, maps, funcs).
func variantDataEqual(a, b any) (eq bool) {
	defer func() {
		if recover() != nil {
			eq = false
		}
	}()
	return a == b
}
