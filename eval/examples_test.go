package eval_test

import (
	"testing"

	"github.com/emberlang/ember/eval"
	"github.com/emberlang/ember/pkg/ast"
	"github.com/emberlang/ember/pkg/dynamic"
	"github.com/google/uuid"
)

// TestVariantHoldsHostOpaqueUUID demonstrates the escape hatch a host
// uses to thread a value the evaluator never interprets -- here a
// google/uuid.UUID -- through a script as a Variant, identified only by
// its type tag.
func TestVariantHoldsHostOpaqueUUID(t *testing.T) {
	id := uuid.New()
	v := dynamic.VariantOf(dynamic.Variant{TypeTag: "uuid", Data: id})

	variant, ok := v.AsVariant()
	if !ok {
		t.Fatal("expected a Variant value")
	}
	if variant.TypeTag != "uuid" {
		t.Errorf("TypeTag = %q, want %q", variant.TypeTag, "uuid")
	}
	got, ok := variant.Data.(uuid.UUID)
	if !ok || got != id {
		t.Errorf("Data = %v, want the original uuid.UUID %v", variant.Data, id)
	}
}

func TestVariantEqualityComparesTypeTagAndData(t *testing.T) {
	a := dynamic.VariantOf(dynamic.Variant{TypeTag: "uuid", Data: uuid.MustParse("00000000-0000-0000-0000-000000000001")})
	b := dynamic.VariantOf(dynamic.Variant{TypeTag: "uuid", Data: uuid.MustParse("00000000-0000-0000-0000-000000000001")})
	c := dynamic.VariantOf(dynamic.Variant{TypeTag: "uuid", Data: uuid.MustParse("00000000-0000-0000-0000-000000000002")})

	if !a.Equals(b) {
		t.Error("Variants with equal type tag and data should be equal")
	}
	if a.Equals(c) {
		t.Error("Variants with differing data should not be equal")
	}
}

// TestVariantRoundTripsThroughLetDecl shows a host-minted Variant flowing
// through an ordinary `let` the same way any other Dynamic does: the
// evaluator stores and returns it without ever inspecting Data.
func TestVariantRoundTripsThroughLetDecl(t *testing.T) {
	id := uuid.New()
	v := dynamic.VariantOf(dynamic.Variant{TypeTag: "uuid", Data: id})

	stmts := []ast.Stmt{
		ast.NewLetDecl(pos, "sessionID", ast.NewLiteral(pos, v), false),
		ast.NewExprStmt(pos, ast.NewVariable(pos, "sessionID")),
	}
	result, err := run(t, eval.DefaultConfig(), stmts)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	variant, ok := result.AsVariant()
	if !ok {
		t.Fatal("expected the round-tripped value to still be a Variant")
	}
	if got := variant.Data.(uuid.UUID); got != id {
		t.Errorf("round-tripped uuid = %v, want %v", got, id)
	}
}
