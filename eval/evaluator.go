// Package eval implements Ember's tree-walking evaluator: the
// statement/expression interpreter, the scope and module-import stacks,
// the access-chain machinery, built-in operator dispatch, and the
// resource governors. This package is deliberately agnostic of how its
// Expr/Stmt trees were produced -- lexing, parsing, and optimization all
// happen elsewhere.
package eval

import (
	"github.com/emberlang/ember/pkg/ast"
	"github.com/emberlang/ember/pkg/dynamic"
	"github.com/emberlang/ember/pkg/token"
)

// Evaluator drives Expr/Stmt trees against the collaborators carried in
// a Context. It holds no per-script state of its own -- every mutable
// thing (Scope, Imports, State) lives in the Context -- so one
// Evaluator can safely drive many independent top-level calls, just not
// concurrently against the same Context.
type Evaluator struct {
	// CustomSyntax maps a registered syntax key to its host callback.
	CustomSyntax map[string]CustomSyntaxFn
}

// NewEvaluator returns an Evaluator with no custom syntax registered.
func NewEvaluator() *Evaluator {
	return &Evaluator{CustomSyntax: map[string]CustomSyntaxFn{}}
}

// RegisterCustomSyntax wires a host callback for an ast.Custom node's
// Syntax key.
func (e *Evaluator) RegisterCustomSyntax(key string, fn CustomSyntaxFn) {
	e.CustomSyntax[key] = fn
}

// Run evaluates a top-level statement list against scope/imports
// supplied by the host, returning the final statement's value. The
// statements run as one block, so slots and imports they push are
// truncated away before Run returns; entries the host pushed beforehand
// remain. State is always fresh here.
func (e *Evaluator) Run(scope *Scope, imports *Imports, lib Library, resolver CallResolver, modules ModuleResolver, cfg Config, stmts []ast.Stmt) (dynamic.Value, error) {
	pos := token.Position{Line: 1, Column: 1}
	if len(stmts) > 0 {
		pos = stmts[0].Pos()
	}
	ctx := NewContext(scope, imports, NewState(cfg), lib, resolver, modules)
	return e.EvalStmt(ctx, ast.NewBlock(pos, stmts))
}
