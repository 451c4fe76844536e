package builtins

import (
	"testing"

	"github.com/emberlang/ember/pkg/dynamic"
)

func drain(t *testing.T, it interface {
	Next() (dynamic.Value, bool)
}) []dynamic.Value {
	t.Helper()
	var out []dynamic.Value
	for {
		v, ok := it.Next()
		if !ok {
			return out
		}
		out = append(out, v)
	}
}

func TestArrayIteratorYieldsElementsInOrder(t *testing.T) {
	lib := NewLibrary()
	factory, ok := lib.Iterator("array")
	if !ok {
		t.Fatal("expected an 'array' iterator to be registered")
	}
	it, err := factory(dynamic.NewArray([]dynamic.Value{dynamic.Int(1), dynamic.Int(2), dynamic.Int(3)}))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	got := drain(t, it)
	if len(got) != 3 {
		t.Fatalf("yielded %d elements, want 3", len(got))
	}
	for i, want := range []int64{1, 2, 3} {
		if v, _ := got[i].AsInt(); v != want {
			t.Errorf("element %d = %v, want %v", i, v, want)
		}
	}
}

func TestArrayIteratorCopiesBackingSlice(t *testing.T) {
	lib := NewLibrary()
	factory, _ := lib.Iterator("array")
	backing := []dynamic.Value{dynamic.Int(1)}
	arrVal := dynamic.NewArray(backing)
	it, _ := factory(arrVal)

	arr, _ := arrVal.AsArray()
	(*arr)[0] = dynamic.Int(99)

	v, _ := it.(*sliceIterator).Next()
	if i, _ := v.AsInt(); i != 1 {
		t.Error("iterator should see a snapshot taken at creation, not live mutations")
	}
}

func TestMapIteratorYieldsSortedKeys(t *testing.T) {
	lib := NewLibrary()
	factory, ok := lib.Iterator("map")
	if !ok {
		t.Fatal("expected a 'map' iterator to be registered")
	}
	m := dynamic.NewMap()
	mp, _ := m.AsMap()
	(*mp)["z"] = dynamic.Int(1)
	(*mp)["a"] = dynamic.Int(2)

	it, err := factory(m)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	got := drain(t, it)
	if len(got) != 2 {
		t.Fatalf("yielded %d elements, want 2", len(got))
	}
	first, _ := got[0].AsStr()
	second, _ := got[1].AsStr()
	if first != "a" || second != "z" {
		t.Errorf("keys = [%q, %q], want sorted [a, z]", first, second)
	}
}

func TestStringIteratorYieldsRunes(t *testing.T) {
	lib := NewLibrary()
	factory, ok := lib.Iterator("string")
	if !ok {
		t.Fatal("expected a 'string' iterator to be registered")
	}
	it, err := factory(dynamic.Str("ab"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	got := drain(t, it)
	if len(got) != 2 {
		t.Fatalf("yielded %d elements, want 2", len(got))
	}
	if r, _ := got[0].AsChar(); r != 'a' {
		t.Errorf("first rune = %q, want 'a'", r)
	}
	if r, _ := got[1].AsChar(); r != 'b' {
		t.Errorf("second rune = %q, want 'b'", r)
	}
}

func TestIteratorFactoryRejectsWrongShape(t *testing.T) {
	lib := NewLibrary()
	factory, _ := lib.Iterator("array")
	if _, err := factory(dynamic.Int(1)); err == nil {
		t.Error("expected the array iterator factory to reject a non-array value")
	}
}

func TestNoIteratorRegisteredForFnPtr(t *testing.T) {
	lib := NewLibrary()
	if _, ok := lib.Iterator("Fn"); ok {
		t.Error("no iterator should be registered for the 'Fn' type tag")
	}
}
