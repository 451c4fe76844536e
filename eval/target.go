package eval

import (
	"github.com/emberlang/ember/pkg/dynamic"
	"github.com/emberlang/ember/pkg/token"
)

type targetKind uint8

const (
	targetValue targetKind = iota
	targetRef
	targetStringChar
)

// Target is the short-lived handle produced while walking an access
// chain. Three variants:
//
//   - Value: an owned Dynamic. Writes are discarded unless re-threaded
//     through a setter by the caller (tracked via wrote).
//   - Ref: an alias to a live Dynamic (a scope slot or a container
//     cell). Writes propagate to the source immediately.
//   - StringChar: an alias to a string Dynamic plus a rune offset;
//     writes replace one character, reconstructing the string only when
//     the new character differs from the old.
//
// Ref is implemented with getter/setter closures rather than a raw
// pointer into Scope/array storage -- this sidesteps Go's
// non-addressable map values while still satisfying the "never outlives
// the slot it borrows" invariant, since the closures simply close over
// the same index/key the caller already owns.
type Target struct {
	kind targetKind
	val  dynamic.Value

	get func() dynamic.Value
	set func(dynamic.Value)

	strGet func() string
	strSet func(string)
	offset int

	wrote bool
}

// ValueTarget wraps an owned, unaliased Dynamic.
func ValueTarget(v dynamic.Value) *Target {
	return &Target{kind: targetValue, val: v}
}

// RefTarget wraps a live alias via getter/setter closures.
func RefTarget(get func() dynamic.Value, set func(dynamic.Value)) *Target {
	return &Target{kind: targetRef, get: get, set: set}
}

// StringCharTarget wraps a single extracted character of a live string.
func StringCharTarget(strGet func() string, strSet func(string), offset int, ch rune) *Target {
	return &Target{kind: targetStringChar, strGet: strGet, strSet: strSet, offset: offset, val: dynamic.Char(ch)}
}

func (t *Target) IsRef() bool    { return t.kind == targetRef }
func (t *Target) IsValue() bool  { return t.kind == targetValue }
func (t *Target) IsStrChar() bool { return t.kind == targetStringChar }

// Wrote reports whether Write has been called on this target (used by
// the dot-chain write-back rule for nested property aliasing).
func (t *Target) Wrote() bool { return t.wrote }

// Get returns the current value the target denotes.
func (t *Target) Get() dynamic.Value {
	if t.kind == targetRef {
		return t.get()
	}
	return t.val
}

// Write attempts to write v through the target. ok reports whether the
// write is observable to anyone holding the target's container (false
// for a plain Value target with no live alias). err is non-nil only for
// StringChar writes whose value isn't a single character (CharMismatch).
func (t *Target) Write(v dynamic.Value, pos token.Position) (ok bool, err error) {
	t.wrote = true
	switch t.kind {
	case targetRef:
		t.set(v)
		return true, nil
	case targetStringChar:
		ch, convErr := v.ToChar()
		if convErr != nil {
			return false, errCharMismatch(pos)
		}
		runes := []rune(t.strGet())
		if runes[t.offset] == ch {
			t.val = dynamic.Char(ch)
			return true, nil // unchanged; no reallocation needed
		}
		runes[t.offset] = ch
		t.strSet(string(runes))
		t.val = dynamic.Char(ch)
		return true, nil
	default:
		t.val = v
		return false, nil
	}
}
