package builtins

import (
	"fmt"
	"sort"

	"github.com/emberlang/ember/eval"
	"github.com/emberlang/ember/pkg/dynamic"
)

type sliceIterator struct {
	elems []dynamic.Value
	pos   int
}

func (it *sliceIterator) Next() (dynamic.Value, bool) {
	if it.pos >= len(it.elems) {
		return dynamic.Unit(), false
	}
	v := it.elems[it.pos]
	it.pos++
	return v, true
}

func (l *Library) registerIterators() {
	l.iterators["array"] = func(v dynamic.Value) (eval.Iterator, error) {
		arr, ok := v.AsArray()
		if !ok {
			return nil, fmt.Errorf("expected an array")
		}
		cp := make([]dynamic.Value, len(*arr))
		copy(cp, *arr)
		return &sliceIterator{elems: cp}, nil
	}

	l.iterators["map"] = func(v dynamic.Value) (eval.Iterator, error) {
		m, ok := v.AsMap()
		if !ok {
			return nil, fmt.Errorf("expected a map")
		}
		names := make([]string, 0, len(*m))
		for k := range *m {
			names = append(names, k)
		}
		sort.Strings(names)
		elems := make([]dynamic.Value, len(names))
		for i, n := range names {
			elems[i] = dynamic.Str(n)
		}
		return &sliceIterator{elems: elems}, nil
	}

	l.iterators["string"] = func(v dynamic.Value) (eval.Iterator, error) {
		s, ok := v.AsStr()
		if !ok {
			return nil, fmt.Errorf("expected a string")
		}
		runes := []rune(s)
		elems := make([]dynamic.Value, len(runes))
		for i, r := range runes {
			elems[i] = dynamic.Char(r)
		}
		return &sliceIterator{elems: elems}, nil
	}
}
