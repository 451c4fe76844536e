package emberjson

import (
	"testing"

	"github.com/emberlang/ember/pkg/dynamic"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		want dynamic.Kind
	}{
		{"object", `{"a": 1, "b": "two"}`, dynamic.KindMap},
		{"array", `[1, 2, 3]`, dynamic.KindArray},
		{"integer", `42`, dynamic.KindInt},
		{"float", `3.5`, dynamic.KindFloat},
		{"string", `"hi"`, dynamic.KindStr},
		{"null", `null`, dynamic.KindUnit},
		{"bool", `true`, dynamic.KindBool},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, err := Parse(tt.doc)
			if err != nil {
				t.Fatalf("Parse(%q) error: %v", tt.doc, err)
			}
			if v.Kind() != tt.want {
				t.Errorf("Parse(%q).Kind() = %v, want %v", tt.doc, v.Kind(), tt.want)
			}
		})
	}
}

func TestParseInvalid(t *testing.T) {
	if _, err := Parse(`{not json`); err == nil {
		t.Fatal("expected an error for invalid JSON")
	}
}

func TestMarshalRoundTrip(t *testing.T) {
	m := dynamic.NewMap()
	backing, _ := m.AsMap()
	(*backing)["name"] = dynamic.Str("ember")
	(*backing)["count"] = dynamic.Int(3)
	(*backing)["items"] = dynamic.NewArray([]dynamic.Value{dynamic.Int(1), dynamic.Int(2)})

	doc, err := Marshal(m)
	if err != nil {
		t.Fatalf("Marshal error: %v", err)
	}

	decoded, err := Parse(doc)
	if err != nil {
		t.Fatalf("Parse(Marshal(m)) error: %v", err)
	}
	if decoded.Kind() != dynamic.KindMap {
		t.Fatalf("round-trip kind = %v, want map", decoded.Kind())
	}
	decodedMap, _ := decoded.AsMap()
	if name, _ := (*decodedMap)["name"].AsStr(); name != "ember" {
		t.Errorf("round-tripped name = %q, want %q", name, "ember")
	}
}

func TestMarshalStringEscaping(t *testing.T) {
	doc, err := Marshal(dynamic.Str("line\nbreak \"quoted\""))
	if err != nil {
		t.Fatalf("Marshal error: %v", err)
	}
	back, err := Parse(doc)
	if err != nil {
		t.Fatalf("Parse(Marshal(...)) error: %v", err)
	}
	s, _ := back.AsStr()
	if s != "line\nbreak \"quoted\"" {
		t.Errorf("round-tripped string = %q", s)
	}
}
