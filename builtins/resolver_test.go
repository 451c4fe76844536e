package builtins

import (
	"testing"

	"github.com/emberlang/ember/eval"
	"github.com/emberlang/ember/pkg/dynamic"
)

func TestResolverFallsBackToLibrary(t *testing.T) {
	lib := NewLibrary()
	r := NewResolver(lib)

	v, err := r.MakeFunctionCall(nil, "+", 0, []dynamic.Value{dynamic.Int(2), dynamic.Int(3)}, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if i, _ := v.AsInt(); i != 5 {
		t.Errorf("result = %v, want 5", i)
	}
}

func TestResolverScriptFunctionShadowsLibrary(t *testing.T) {
	lib := NewLibrary()
	lib.Register("greet", func(ctx *eval.Context, args []dynamic.Value, level int) (dynamic.Value, error) {
		return dynamic.Str("from library"), nil
	})
	r := NewResolver(lib)
	r.DefineFunction("greet", func(ctx *eval.Context, args []dynamic.Value, level int) (dynamic.Value, error) {
		return dynamic.Str("from script"), nil
	})

	v, err := r.MakeFunctionCall(nil, "greet", 0, nil, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s, _ := v.AsStr(); s != "from script" {
		t.Errorf("result = %q, want script-defined function to shadow the library", s)
	}
}

func TestResolverMethodCallPrependsReceiver(t *testing.T) {
	lib := NewLibrary()
	r := NewResolver(lib)
	r.DefineFunction("addSelf", func(ctx *eval.Context, args []dynamic.Value, level int) (dynamic.Value, error) {
		if len(args) != 2 {
			t.Fatalf("expected receiver + 1 arg, got %d args", len(args))
		}
		a, _ := args[0].AsInt()
		b, _ := args[1].AsInt()
		return dynamic.Int(a + b), nil
	})

	receiver := dynamic.Int(10)
	v, _, err := r.MakeMethodCall(nil, &receiver, "addSelf", 0, []dynamic.Value{dynamic.Int(5)}, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if i, _ := v.AsInt(); i != 15 {
		t.Errorf("result = %v, want 15", i)
	}
}

func TestResolverExecFnCallFallsBackToDefault(t *testing.T) {
	lib := NewLibrary()
	r := NewResolver(lib)
	def := dynamic.Int(7)

	v, updated, err := r.ExecFnCall(nil, "nonexistent", 0, nil, false, false, &def, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if updated {
		t.Error("fallback-to-default should never report updated=true")
	}
	if i, _ := v.AsInt(); i != 7 {
		t.Errorf("result = %v, want the default value 7", i)
	}
}

func TestResolverExecFnCallNoDefaultErrors(t *testing.T) {
	lib := NewLibrary()
	r := NewResolver(lib)
	if _, _, err := r.ExecFnCall(nil, "nonexistent", 0, nil, false, false, nil, 0); err == nil {
		t.Error("expected an error when no function and no default are available")
	}
}

func TestResolverCallFnRaw(t *testing.T) {
	lib := NewLibrary()
	r := NewResolver(lib)
	v, err := r.CallFnRaw(nil, "==", []dynamic.Value{dynamic.Int(1), dynamic.Int(1)}, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if b, _ := v.AsBool(); !b {
		t.Error("CallFnRaw(\"==\", 1, 1) should be true")
	}
}

func TestResolverMakeQualifiedFunctionCall(t *testing.T) {
	lib := NewLibrary()
	r := NewResolver(lib)
	mod := NewStaticModule()
	mod.RegisterFn(42, func(ctx *eval.Context, args []dynamic.Value, level int) (dynamic.Value, error) {
		return dynamic.Str("qualified"), nil
	})

	v, err := r.MakeQualifiedFunctionCall(nil, mod, "f", 42, nil, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s, _ := v.AsStr(); s != "qualified" {
		t.Errorf("result = %q, want %q", s, "qualified")
	}
}
