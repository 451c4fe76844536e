package eval

import (
	"github.com/emberlang/ember/pkg/ast"
	"github.com/emberlang/ember/pkg/dynamic"
	"github.com/emberlang/ember/pkg/token"
)

// EvalExpr dispatches on expression kind. Literals return
// their value directly; Variable uses namespace search; chained access
// (Index/Dot) is offloaded to the access-chain walker; Property is
// unreachable here (the walker consumes it directly as a chain link).
// The result passes through the size governor before returning, same as
// EvalStmt.
func (e *Evaluator) EvalExpr(ctx *Context, expr ast.Expr) (dynamic.Value, error) {
	if err := incOperations(ctx, expr.Pos()); err != nil {
		return dynamic.Unit(), err
	}

	v, err := e.evalExprInner(ctx, expr)
	if err != nil {
		return dynamic.Unit(), err
	}
	if err := checkDataSize(ctx, v, expr.Pos()); err != nil {
		return dynamic.Unit(), err
	}
	return v, nil
}

func (e *Evaluator) evalExprInner(ctx *Context, expr ast.Expr) (dynamic.Value, error) {
	switch n := expr.(type) {
	case *ast.Literal:
		return n.Value, nil

	case *ast.FnPtrLiteral:
		return dynamic.FnPointer(dynamic.FnPtr{Name: n.Name}), nil

	case *ast.ArrayLiteral:
		elems := make([]dynamic.Value, len(n.Elements))
		for i, el := range n.Elements {
			v, err := e.EvalExpr(ctx, el)
			if err != nil {
				return dynamic.Unit(), err
			}
			elems[i] = v
		}
		return dynamic.NewArray(elems), nil

	case *ast.MapLiteral:
		m := dynamic.NewMap()
		backing, _ := m.AsMap()
		for _, entry := range n.Entries {
			v, err := e.EvalExpr(ctx, entry.Value)
			if err != nil {
				return dynamic.Unit(), err
			}
			(*backing)[entry.Key] = v
		}
		return m, nil

	case *ast.Variable:
		return e.EvalVariable(ctx, n)

	case *ast.Property:
		// Unreachable outside a chain; the walker handles Property
		// directly as a link. A bare Property in an ordinary
		// expression position is a construction error the parser
		// should never emit.
		return dynamic.Unit(), errDotExpr("<property>", n.Pos())

	case *ast.Index, *ast.Dot:
		return e.EvalChainRead(ctx, expr)

	case *ast.FnCall:
		return e.evalFnCall(ctx, n)

	case *ast.Assignment:
		return e.evalAssignment(ctx, n)

	case *ast.And:
		return e.evalAnd(ctx, n)

	case *ast.Or:
		return e.evalOr(ctx, n)

	case *ast.In:
		return e.evalIn(ctx, n)

	case *ast.Custom:
		return e.evalCustom(ctx, n)

	default:
		return dynamic.Unit(), errAssignmentToUnknownLHS(expr.Pos())
	}
}

func (e *Evaluator) evalAnd(ctx *Context, n *ast.And) (dynamic.Value, error) {
	lv, err := e.EvalExpr(ctx, n.Lhs)
	if err != nil {
		return dynamic.Unit(), err
	}
	lb, ok := lv.AsBool()
	if !ok {
		return dynamic.Unit(), errBooleanArgMismatch(n.Pos())
	}
	if !lb {
		return dynamic.Bool(false), nil
	}
	rv, err := e.EvalExpr(ctx, n.Rhs)
	if err != nil {
		return dynamic.Unit(), err
	}
	rb, ok := rv.AsBool()
	if !ok {
		return dynamic.Unit(), errBooleanArgMismatch(n.Pos())
	}
	return dynamic.Bool(rb), nil
}

func (e *Evaluator) evalOr(ctx *Context, n *ast.Or) (dynamic.Value, error) {
	lv, err := e.EvalExpr(ctx, n.Lhs)
	if err != nil {
		return dynamic.Unit(), err
	}
	lb, ok := lv.AsBool()
	if !ok {
		return dynamic.Unit(), errBooleanArgMismatch(n.Pos())
	}
	if lb {
		return dynamic.Bool(true), nil
	}
	rv, err := e.EvalExpr(ctx, n.Rhs)
	if err != nil {
		return dynamic.Unit(), err
	}
	rb, ok := rv.AsBool()
	if !ok {
		return dynamic.Unit(), errBooleanArgMismatch(n.Pos())
	}
	return dynamic.Bool(rb), nil
}

// evalIn implements `lhs in rhs`: array RHS scans with the
// "==" operator dispatched as a function call; map RHS tests key
// membership (LHS must be Str/Char); string RHS tests substring/char
// containment (LHS must be Str/Char).
func (e *Evaluator) evalIn(ctx *Context, n *ast.In) (dynamic.Value, error) {
	lv, err := e.EvalExpr(ctx, n.Lhs)
	if err != nil {
		return dynamic.Unit(), err
	}
	rv, err := e.EvalExpr(ctx, n.Rhs)
	if err != nil {
		return dynamic.Unit(), err
	}

	switch rv.Kind() {
	case dynamic.KindArray:
		arr, _ := rv.AsArray()
		for _, elem := range *arr {
			eq, err := e.callEquals(ctx, lv, elem, n.Pos())
			if err != nil {
				return dynamic.Unit(), err
			}
			if eq {
				return dynamic.Bool(true), nil
			}
		}
		return dynamic.Bool(false), nil

	case dynamic.KindMap:
		key, ok := stringOrChar(lv)
		if !ok {
			return dynamic.Unit(), errInExpr(n.Pos())
		}
		m, _ := rv.AsMap()
		_, found := (*m)[key]
		return dynamic.Bool(found), nil

	case dynamic.KindStr:
		needle, ok := stringOrChar(lv)
		if !ok {
			return dynamic.Unit(), errInExpr(n.Pos())
		}
		hay, _ := rv.AsStr()
		return dynamic.Bool(containsSubstring(hay, needle)), nil

	default:
		return dynamic.Unit(), errInExpr(n.Pos())
	}
}

func stringOrChar(v dynamic.Value) (string, bool) {
	if s, ok := v.AsStr(); ok {
		return s, true
	}
	if c, ok := v.AsChar(); ok {
		return string(c), true
	}
	return "", false
}

func containsSubstring(hay, needle string) bool {
	if needle == "" {
		return true
	}
	hr, nr := []rune(hay), []rune(needle)
	if len(nr) > len(hr) {
		return false
	}
	for i := 0; i+len(nr) <= len(hr); i++ {
		match := true
		for j := range nr {
			if hr[i+j] != nr[j] {
				match = false
				break
			}
		}
		if match {
			return true
		}
	}
	return false
}

// callEquals dispatches "==" as a function call rather than comparing
// values directly, so a host-registered overload always wins.
func (e *Evaluator) callEquals(ctx *Context, a, b dynamic.Value, pos token.Position) (bool, error) {
	if fn, ok := ctx.Library.Resolve("==", 0, 2); ok {
		result, err := fn(ctx, []dynamic.Value{a, b}, ctx.State.CallDepth)
		if err != nil {
			return false, err
		}
		eq, _ := result.AsBool()
		return eq, nil
	}
	return a.Equals(b), nil
}
