package eval_test

import (
	"testing"

	"github.com/emberlang/ember/builtins"
	"github.com/emberlang/ember/eval"
	"github.com/emberlang/ember/pkg/ast"
	"github.com/emberlang/ember/pkg/dynamic"
	"github.com/emberlang/ember/pkg/token"
)

var pos = token.Position{Line: 1, Column: 1}

func newRuntime() (*eval.Evaluator, *eval.Scope, *eval.Imports, *builtins.Library, *builtins.Resolver, *builtins.StaticModuleResolver) {
	lib := builtins.NewLibrary()
	resolver := builtins.NewResolver(lib)
	modules := builtins.NewStaticModuleResolver()
	return eval.NewEvaluator(), eval.NewScope(), eval.NewImports(), lib, resolver, modules
}

func run(t *testing.T, cfg eval.Config, stmts []ast.Stmt) (dynamic.Value, error) {
	t.Helper()
	ev, scope, imports, lib, resolver, modules := newRuntime()
	return ev.Run(scope, imports, lib, resolver, modules, cfg, stmts)
}

func TestLetAndArithmetic(t *testing.T) {
	stmts := []ast.Stmt{
		ast.NewLetDecl(pos, "a", ast.NewLiteral(pos, dynamic.Int(3)), false),
		ast.NewLetDecl(pos, "b", ast.NewLiteral(pos, dynamic.Int(4)), false),
		ast.NewExprStmt(pos, ast.NewFnCall(pos, "+", []ast.Expr{ast.NewVariable(pos, "a"), ast.NewVariable(pos, "b")})),
	}
	v, err := run(t, eval.DefaultConfig(), stmts)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if i, _ := v.AsInt(); i != 7 {
		t.Errorf("result = %v, want 7", i)
	}
}

func TestConstantReassignmentFails(t *testing.T) {
	stmts := []ast.Stmt{
		ast.NewLetDecl(pos, "c", ast.NewLiteral(pos, dynamic.Int(1)), true),
		ast.NewExprStmt(pos, ast.NewAssignment(pos, ast.NewVariable(pos, "c"), "", ast.NewLiteral(pos, dynamic.Int(2)))),
	}
	_, err := run(t, eval.DefaultConfig(), stmts)
	fe, ok := eval.AsError(err)
	if !ok || fe.Kind != eval.AssignmentToConstant {
		t.Fatalf("expected AssignmentToConstant, got %v", err)
	}
}

func TestWhileLoopWithBreak(t *testing.T) {
	stmts := []ast.Stmt{
		ast.NewLetDecl(pos, "i", ast.NewLiteral(pos, dynamic.Int(0)), false),
		ast.NewWhile(pos,
			ast.NewLiteral(pos, dynamic.Bool(true)),
			ast.NewBlock(pos, []ast.Stmt{
				ast.NewExprStmt(pos, ast.NewAssignment(pos, ast.NewVariable(pos, "i"), "+", ast.NewLiteral(pos, dynamic.Int(1)))),
				ast.NewIf(pos,
					ast.NewFnCall(pos, "==", []ast.Expr{ast.NewVariable(pos, "i"), ast.NewLiteral(pos, dynamic.Int(3))}),
					ast.NewBlock(pos, []ast.Stmt{ast.NewBreak(pos)}),
					nil,
				),
			}),
		),
		ast.NewExprStmt(pos, ast.NewVariable(pos, "i")),
	}
	v, err := run(t, eval.DefaultConfig(), stmts)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if i, _ := v.AsInt(); i != 3 {
		t.Errorf("result = %v, want 3", i)
	}
}

func TestForLoopOverArray(t *testing.T) {
	stmts := []ast.Stmt{
		ast.NewLetDecl(pos, "total", ast.NewLiteral(pos, dynamic.Int(0)), false),
		ast.NewFor(pos, "x",
			ast.NewArrayLiteral(pos, []ast.Expr{
				ast.NewLiteral(pos, dynamic.Int(1)),
				ast.NewLiteral(pos, dynamic.Int(2)),
				ast.NewLiteral(pos, dynamic.Int(3)),
			}),
			ast.NewBlock(pos, []ast.Stmt{
				ast.NewExprStmt(pos, ast.NewAssignment(pos, ast.NewVariable(pos, "total"), "+", ast.NewVariable(pos, "x"))),
			}),
		),
		ast.NewExprStmt(pos, ast.NewVariable(pos, "total")),
	}
	v, err := run(t, eval.DefaultConfig(), stmts)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if i, _ := v.AsInt(); i != 6 {
		t.Errorf("result = %v, want 6", i)
	}
}

func TestIndexWriteThroughArray(t *testing.T) {
	stmts := []ast.Stmt{
		ast.NewLetDecl(pos, "xs", ast.NewArrayLiteral(pos, []ast.Expr{
			ast.NewLiteral(pos, dynamic.Int(1)),
			ast.NewLiteral(pos, dynamic.Int(2)),
		}), false),
		ast.NewExprStmt(pos, ast.NewAssignment(pos,
			ast.NewIndex(pos, ast.NewVariable(pos, "xs"), ast.NewLiteral(pos, dynamic.Int(1))),
			"",
			ast.NewLiteral(pos, dynamic.Int(99)),
		)),
		ast.NewExprStmt(pos, ast.NewIndex(pos, ast.NewVariable(pos, "xs"), ast.NewLiteral(pos, dynamic.Int(1)))),
	}
	v, err := run(t, eval.DefaultConfig(), stmts)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if i, _ := v.AsInt(); i != 99 {
		t.Errorf("result = %v, want 99", i)
	}
}

func TestNegativeArrayIndex(t *testing.T) {
	stmts := []ast.Stmt{
		ast.NewLetDecl(pos, "xs", ast.NewArrayLiteral(pos, []ast.Expr{
			ast.NewLiteral(pos, dynamic.Int(10)),
			ast.NewLiteral(pos, dynamic.Int(20)),
			ast.NewLiteral(pos, dynamic.Int(30)),
		}), false),
		ast.NewExprStmt(pos, ast.NewIndex(pos, ast.NewVariable(pos, "xs"), ast.NewLiteral(pos, dynamic.Int(-1)))),
	}
	v, err := run(t, eval.DefaultConfig(), stmts)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if i, _ := v.AsInt(); i != 30 {
		t.Errorf("xs[-1] = %v, want 30 (last element)", i)
	}
}

func TestMapIndexReadWrite(t *testing.T) {
	stmts := []ast.Stmt{
		ast.NewLetDecl(pos, "m", ast.NewMapLiteral(pos, []ast.MapEntry{
			{Key: "a", Value: ast.NewLiteral(pos, dynamic.Int(1))},
		}), false),
		ast.NewExprStmt(pos, ast.NewAssignment(pos,
			ast.NewIndex(pos, ast.NewVariable(pos, "m"), ast.NewLiteral(pos, dynamic.Str("b"))),
			"",
			ast.NewLiteral(pos, dynamic.Int(2)),
		)),
		ast.NewExprStmt(pos, ast.NewFnCall(pos, "+", []ast.Expr{
			ast.NewIndex(pos, ast.NewVariable(pos, "m"), ast.NewLiteral(pos, dynamic.Str("a"))),
			ast.NewIndex(pos, ast.NewVariable(pos, "m"), ast.NewLiteral(pos, dynamic.Str("b"))),
		})),
	}
	v, err := run(t, eval.DefaultConfig(), stmts)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if i, _ := v.AsInt(); i != 3 {
		t.Errorf("result = %v, want 3", i)
	}
}

func TestAndOrShortCircuit(t *testing.T) {
	stmts := []ast.Stmt{
		ast.NewLetDecl(pos, "calls", ast.NewLiteral(pos, dynamic.Int(0)), false),
		ast.NewExprStmt(pos, ast.NewAnd(pos,
			ast.NewLiteral(pos, dynamic.Bool(false)),
			ast.NewAssignment(pos, ast.NewVariable(pos, "calls"), "", ast.NewLiteral(pos, dynamic.Bool(true))),
		)),
		ast.NewExprStmt(pos, ast.NewVariable(pos, "calls")),
	}
	v, err := run(t, eval.DefaultConfig(), stmts)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if b, _ := v.AsBool(); b {
		t.Error("RHS of '&&' evaluated despite false LHS")
	}
}

func TestInOperatorOverArray(t *testing.T) {
	stmts := []ast.Stmt{
		ast.NewExprStmt(pos, ast.NewIn(pos,
			ast.NewLiteral(pos, dynamic.Int(2)),
			ast.NewArrayLiteral(pos, []ast.Expr{
				ast.NewLiteral(pos, dynamic.Int(1)),
				ast.NewLiteral(pos, dynamic.Int(2)),
			}),
		)),
	}
	v, err := run(t, eval.DefaultConfig(), stmts)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if b, _ := v.AsBool(); !b {
		t.Error("expected 2 in [1, 2] to be true")
	}
}

func TestThrowPropagatesAsRuntimeError(t *testing.T) {
	stmts := []ast.Stmt{
		ast.NewThrow(pos, ast.NewLiteral(pos, dynamic.Str("boom"))),
	}
	_, err := run(t, eval.DefaultConfig(), stmts)
	fe, ok := eval.AsError(err)
	if !ok || fe.Kind != eval.ErrorRuntime {
		t.Fatalf("expected ErrorRuntime, got %v", err)
	}
	if fe.Message != "boom" {
		t.Errorf("Message = %q, want %q", fe.Message, "boom")
	}
}

func TestImportExportRoundTrip(t *testing.T) {
	modules := builtins.NewStaticModuleResolver()
	mod := builtins.NewStaticModule()
	modules.Register("mathx", mod)

	lib := builtins.NewLibrary()
	resolver := builtins.NewResolver(lib)
	ev := eval.NewEvaluator()
	scope := eval.NewScope()
	imports := eval.NewImports()

	// 'v' is a host-pushed slot: Run's own block truncates anything its
	// statements push, but export marks entries that outlive it.
	scope.Push("v", eval.Normal, dynamic.Int(1))

	stmts := []ast.Stmt{
		ast.NewImportStmt(pos, ast.NewLiteral(pos, dynamic.Str("mathx")), "mathx"),
		ast.NewExportStmt(pos, []ast.ExportEntry{{Name: "v", Rename: "value"}}),
	}
	if _, err := ev.Run(scope, imports, lib, resolver, modules, eval.DefaultConfig(), stmts); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	entry, ok := scope.SearchByName("v")
	if !ok {
		t.Fatal("expected 'v' to still be visible")
	}
	if entry.Alias != "value" {
		t.Errorf("Alias = %q, want %q", entry.Alias, "value")
	}
}

// TestMaxArraySizeLimitCatchesIntermediateExpression builds an
// oversized array literal purely as a function-call argument: the
// enclosing statement's own result (the call's return value) is a
// small int, so this only fails if the size governor runs on the
// array literal's own expression result, not just the statement's.
func TestMaxArraySizeLimitCatchesIntermediateExpression(t *testing.T) {
	stmts := []ast.Stmt{
		ast.NewExprStmt(pos, ast.NewFnCall(pos, "len", []ast.Expr{
			ast.NewArrayLiteral(pos, []ast.Expr{
				ast.NewLiteral(pos, dynamic.Int(1)),
				ast.NewLiteral(pos, dynamic.Int(2)),
				ast.NewLiteral(pos, dynamic.Int(3)),
			}),
		})),
	}
	_, err := run(t, eval.NewConfig(eval.WithMaxArraySize(2)), stmts)
	fe, ok := eval.AsError(err)
	if !ok || fe.Kind != eval.DataTooLarge {
		t.Fatalf("expected DataTooLarge from the array-literal argument, got %v", err)
	}
}

func TestMaxOperationsLimit(t *testing.T) {
	stmts := []ast.Stmt{
		ast.NewLetDecl(pos, "i", ast.NewLiteral(pos, dynamic.Int(0)), false),
		ast.NewWhile(pos,
			ast.NewLiteral(pos, dynamic.Bool(true)),
			ast.NewBlock(pos, []ast.Stmt{
				ast.NewExprStmt(pos, ast.NewAssignment(pos, ast.NewVariable(pos, "i"), "+", ast.NewLiteral(pos, dynamic.Int(1)))),
			}),
		),
	}
	_, err := run(t, eval.NewConfig(eval.WithMaxOperations(50)), stmts)
	fe, ok := eval.AsError(err)
	if !ok || fe.Kind != eval.TooManyOperations {
		t.Fatalf("expected TooManyOperations, got %v", err)
	}
}
