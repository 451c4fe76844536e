// Package ast defines the Expr and Stmt node shapes the evaluator walks.
// Producing these trees is a parser's job, outside this package; ast
// only fixes the contract the evaluator consumes, including the
// precomputed lookup indices (variable hashes, cached scope offsets) a
// real parser/optimizer would fill in.
package ast

import "github.com/emberlang/ember/pkg/token"

// Node is the common interface of every Expr and Stmt.
type Node interface {
	Pos() token.Position
}

// Expr is any node that produces a Dynamic value.
type Expr interface {
	Node
	exprNode()
}

// Stmt is any node that performs an action.
type Stmt interface {
	Node
	stmtNode()
}

type baseExpr struct{ At token.Position }

func (b baseExpr) Pos() token.Position { return b.At }
func (baseExpr) exprNode()             {}

type baseStmt struct{ At token.Position }

func (b baseStmt) Pos() token.Position { return b.At }
func (baseStmt) stmtNode()             {}
