// Package emberjson bridges Ember's dynamic.Value with JSON text. It is
// a host-facing convenience, not something the evaluator itself depends
// on: encoding/decoding happens entirely outside eval's Run call, as a
// value shape the host carries but the evaluator never builds or
// parses on its own.
package emberjson

import (
	"fmt"
	"sort"
	"strconv"

	"github.com/emberlang/ember/pkg/dynamic"
	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
)

// Parse decodes a JSON document into a dynamic.Value: objects become
// Maps, arrays become Arrays, and JSON numbers become Int when they
// carry no fractional/exponent part, Float otherwise.
func Parse(doc string) (dynamic.Value, error) {
	if !gjson.Valid(doc) {
		return dynamic.Unit(), fmt.Errorf("invalid JSON document")
	}
	return fromGJSON(gjson.Parse(doc)), nil
}

func fromGJSON(r gjson.Result) dynamic.Value {
	switch r.Type {
	case gjson.Null:
		return dynamic.Unit()
	case gjson.False:
		return dynamic.Bool(false)
	case gjson.True:
		return dynamic.Bool(true)
	case gjson.Number:
		if r.Raw == strconv.FormatInt(r.Int(), 10) {
			return dynamic.Int(r.Int())
		}
		return dynamic.Float(r.Float())
	case gjson.String:
		return dynamic.Str(r.String())
	case gjson.JSON:
		if r.IsArray() {
			var elems []dynamic.Value
			r.ForEach(func(_, v gjson.Result) bool {
				elems = append(elems, fromGJSON(v))
				return true
			})
			return dynamic.NewArray(elems)
		}
		m := dynamic.NewMap()
		backing, _ := m.AsMap()
		r.ForEach(func(k, v gjson.Result) bool {
			(*backing)[k.String()] = fromGJSON(v)
			return true
		})
		return m
	default:
		return dynamic.Unit()
	}
}

// Marshal encodes a dynamic.Value as compact JSON text.
func Marshal(v dynamic.Value) (string, error) {
	switch v.Kind() {
	case dynamic.KindUnit:
		return "null", nil
	case dynamic.KindBool:
		b, _ := v.AsBool()
		if b {
			return "true", nil
		}
		return "false", nil
	case dynamic.KindInt:
		i, _ := v.AsInt()
		return strconv.FormatInt(i, 10), nil
	case dynamic.KindFloat:
		f, _ := v.AsFloat()
		return strconv.FormatFloat(f, 'g', -1, 64), nil
	case dynamic.KindChar:
		c, _ := v.AsChar()
		return quoteJSONString(string(c))
	case dynamic.KindStr:
		s, _ := v.AsStr()
		return quoteJSONString(s)
	case dynamic.KindArray:
		return marshalArray(v)
	case dynamic.KindMap:
		return marshalMap(v)
	default:
		return "", fmt.Errorf("cannot marshal %s to JSON", v.TypeName())
	}
}

func quoteJSONString(s string) (string, error) {
	doc, err := sjson.Set("", "x", s)
	if err != nil {
		return "", err
	}
	return gjson.Get(doc, "x").Raw, nil
}

func marshalArray(v dynamic.Value) (string, error) {
	arr, _ := v.AsArray()
	doc := "[]"
	for i, elem := range *arr {
		encoded, err := Marshal(elem)
		if err != nil {
			return "", err
		}
		var err2 error
		doc, err2 = sjson.SetRaw(doc, strconv.Itoa(i), encoded)
		if err2 != nil {
			return "", err2
		}
	}
	return doc, nil
}

func marshalMap(v dynamic.Value) (string, error) {
	m, _ := v.AsMap()
	keys := make([]string, 0, len(*m))
	for k := range *m {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	doc := "{}"
	for _, k := range keys {
		encoded, err := Marshal((*m)[k])
		if err != nil {
			return "", err
		}
		var err2 error
		doc, err2 = sjson.SetRaw(doc, k, encoded)
		if err2 != nil {
			return "", err2
		}
	}
	return doc, nil
}
