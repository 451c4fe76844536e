package eval

import (
	"github.com/emberlang/ember/pkg/ast"
	"github.com/emberlang/ember/pkg/dynamic"
	"github.com/emberlang/ember/pkg/token"
)

// evalAssignment implements `lhs op= rhs`.
func (e *Evaluator) evalAssignment(ctx *Context, n *ast.Assignment) (dynamic.Value, error) {
	rhsVal, err := e.EvalExpr(ctx, n.Rhs)
	if err != nil {
		return dynamic.Unit(), err
	}

	switch lhs := n.Lhs.(type) {
	case *ast.Variable:
		return e.assignToVariable(ctx, lhs, n.Op, rhsVal, n.Pos())

	case *ast.Index, *ast.Dot:
		newVal := rhsVal
		if n.Op != "" {
			oldVal, err := e.EvalChainRead(ctx, n.Lhs)
			if err != nil {
				return dynamic.Unit(), err
			}
			newVal, err = e.applyOp(ctx, n.Op, oldVal, rhsVal, n.Pos())
			if err != nil {
				return dynamic.Unit(), err
			}
		}
		return e.EvalChainWrite(ctx, n.Lhs, newVal)

	case *ast.Literal:
		// A constant expression (the parser folds these into Literal) is
		// never assignable.
		return dynamic.Unit(), errAssignmentToConstant(lhs.Value.String(), n.Pos())

	default:
		// Any other LHS shape is never assignable either.
		return dynamic.Unit(), errAssignmentToUnknownLHS(n.Pos())
	}
}

// assignToVariable handles a bare-variable LHS: reject constants, then
// direct-write for plain `=`, else resolve the compound operator via
// applyOp.
func (e *Evaluator) assignToVariable(ctx *Context, v *ast.Variable, op string, rhs dynamic.Value, pos token.Position) (dynamic.Value, error) {
	target, err := e.resolveVariableTarget(ctx, v, true)
	if err != nil {
		return dynamic.Unit(), err
	}
	if op == "" {
		target.Write(rhs, pos)
		return rhs, nil
	}
	newVal, err := e.applyOp(ctx, op, target.Get(), rhs, pos)
	if err != nil {
		return dynamic.Unit(), err
	}
	if _, err := target.Write(newVal, pos); err != nil {
		return dynamic.Unit(), err
	}
	return newVal, nil
}

// applyOp resolves a compound-assignment operator in order: (1) a
// native registered function for the op-assign form itself, (2) a
// built-in op-assignment implementation for
// primitive-on-primitive cases, (3) desugaring to `lhs op rhs` through
// the same function-call dispatch ordinary binary operators use.
func (e *Evaluator) applyOp(ctx *Context, op string, lhs, rhs dynamic.Value, pos token.Position) (dynamic.Value, error) {
	if fn, ok := ctx.Library.Resolve(op+"=", 0, 2); ok {
		return fn(ctx, []dynamic.Value{lhs, rhs}, ctx.State.CallDepth)
	}
	if v, ok := ctx.Library.RunBuiltinOpAssignment(op, lhs, rhs); ok {
		return v, nil
	}
	return ctx.Resolver.CallFnRaw(ctx, op, []dynamic.Value{lhs, rhs}, ctx.State.CallDepth)
}
