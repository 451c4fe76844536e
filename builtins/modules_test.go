package builtins

import (
	"testing"

	"github.com/emberlang/ember/eval"
	"github.com/emberlang/ember/pkg/dynamic"
	"github.com/emberlang/ember/pkg/token"
)

func TestStaticModuleFnAndVarLookup(t *testing.T) {
	m := NewStaticModule()
	m.RegisterVar(1, dynamic.Int(99))
	m.RegisterFn(2, func(ctx *eval.Context, args []dynamic.Value, level int) (dynamic.Value, error) {
		return dynamic.Str("hi"), nil
	})

	v, ok := m.GetQualifiedVar(1)
	if !ok || func() int64 { i, _ := v.AsInt(); return i }() != 99 {
		t.Errorf("GetQualifiedVar(1) = (%v, %v), want (99, true)", v, ok)
	}

	fn, ok := m.GetFn(2)
	if !ok {
		t.Fatal("expected GetFn(2) to resolve")
	}
	result, _ := fn(nil, nil, 0)
	if s, _ := result.AsStr(); s != "hi" {
		t.Errorf("fn() = %q, want %q", s, "hi")
	}

	if _, ok := m.GetFn(999); ok {
		t.Error("expected an unregistered hash to miss")
	}
}

func TestStaticModuleSubModules(t *testing.T) {
	m := NewStaticModule()
	sub := NewStaticModule()
	m.RegisterSub("inner", sub)

	subs := m.SubModules()
	if subs["inner"] != eval.Module(sub) {
		t.Error("SubModules() should expose the registered sub-module under its name")
	}
}

func TestStaticModuleResolverRegisterAndResolve(t *testing.T) {
	r := NewStaticModuleResolver()
	mod := NewStaticModule()
	r.Register("mathx", mod)

	got, err := r.Resolve(nil, "mathx", token.Position{Line: 1, Column: 1})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != eval.Module(mod) {
		t.Error("Resolve should return the exact registered module")
	}
}

func TestStaticModuleResolverMissingPath(t *testing.T) {
	r := NewStaticModuleResolver()
	if _, err := r.Resolve(nil, "nope", token.Position{Line: 1, Column: 1}); err == nil {
		t.Error("expected resolving an unregistered path to error")
	}
}
