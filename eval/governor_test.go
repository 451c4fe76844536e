package eval

import (
	"testing"

	"github.com/emberlang/ember/pkg/dynamic"
)

func newTestContext(cfg Config) *Context {
	return NewContext(NewScope(), NewImports(), NewState(cfg), nil, nil, nil)
}

func TestIncOperationsTripsLimit(t *testing.T) {
	ctx := newTestContext(NewConfig(WithMaxOperations(2)))

	if err := incOperations(ctx, tokenPos()); err != nil {
		t.Fatalf("1st operation should pass: %v", err)
	}
	if err := incOperations(ctx, tokenPos()); err != nil {
		t.Fatalf("2nd operation should pass: %v", err)
	}
	err := incOperations(ctx, tokenPos())
	fe, ok := AsError(err)
	if !ok || fe.Kind != TooManyOperations {
		t.Fatalf("3rd operation: expected TooManyOperations, got %v", err)
	}
}

func TestIncOperationsUnlimitedByDefault(t *testing.T) {
	ctx := newTestContext(DefaultConfig())
	for i := 0; i < 1000; i++ {
		if err := incOperations(ctx, tokenPos()); err != nil {
			t.Fatalf("operation %d: unexpected error: %v", i, err)
		}
	}
}

func TestIncOperationsTerminatedByProgressCallback(t *testing.T) {
	ctx := newTestContext(DefaultConfig())
	ctx.State.Progress = func(n int64) bool { return false }

	err := incOperations(ctx, tokenPos())
	fe, ok := AsError(err)
	if !ok || fe.Kind != Terminated {
		t.Fatalf("expected Terminated, got %v", err)
	}
}

func TestCheckDataSizeStringLimit(t *testing.T) {
	ctx := newTestContext(NewConfig(WithMaxStringSize(3)))

	if err := checkDataSize(ctx, dynamic.Str("ab"), tokenPos()); err != nil {
		t.Fatalf("2-rune string under limit: unexpected error %v", err)
	}
	err := checkDataSize(ctx, dynamic.Str("abcd"), tokenPos())
	fe, ok := AsError(err)
	if !ok || fe.Kind != DataTooLarge {
		t.Fatalf("expected DataTooLarge, got %v", err)
	}
	if fe.Category != "Size of string" {
		t.Errorf("Category = %q", fe.Category)
	}
}

func TestCheckDataSizeArrayLimit(t *testing.T) {
	ctx := newTestContext(NewConfig(WithMaxArraySize(2)))
	small := dynamic.NewArray([]dynamic.Value{dynamic.Int(1)})
	big := dynamic.NewArray([]dynamic.Value{dynamic.Int(1), dynamic.Int(2), dynamic.Int(3)})

	if err := checkDataSize(ctx, small, tokenPos()); err != nil {
		t.Fatalf("unexpected error for small array: %v", err)
	}
	if err := checkDataSize(ctx, big, tokenPos()); err == nil {
		t.Fatal("expected DataTooLarge for oversized array")
	}
}

func TestCheckDataSizeUncappedKindsAlwaysPass(t *testing.T) {
	ctx := newTestContext(NewConfig(WithMaxStringSize(1), WithMaxArraySize(1), WithMaxMapSize(1)))
	for _, v := range []dynamic.Value{dynamic.Bool(true), dynamic.Int(999999), dynamic.Float(1.5), dynamic.Unit()} {
		if err := checkDataSize(ctx, v, tokenPos()); err != nil {
			t.Errorf("uncapped kind %s unexpectedly failed size check: %v", v.TypeName(), err)
		}
	}
}

func TestCheckCallStackDepth(t *testing.T) {
	ctx := newTestContext(NewConfig(WithMaxCallStackDepth(2)))
	ctx.State.CallDepth = 2

	if err := checkCallStackDepth(ctx, tokenPos()); err == nil {
		t.Fatal("expected stack-depth error at the configured limit")
	}

	ctx.State.CallDepth = 1
	if err := checkCallStackDepth(ctx, tokenPos()); err != nil {
		t.Fatalf("unexpected error below the limit: %v", err)
	}
}

func TestCheckModuleLimit(t *testing.T) {
	ctx := newTestContext(NewConfig(WithMaxModules(1)))
	ctx.State.Modules = 1

	err := checkModuleLimit(ctx, tokenPos())
	fe, ok := AsError(err)
	if !ok || fe.Kind != TooManyModules {
		t.Fatalf("expected TooManyModules, got %v", err)
	}
}
