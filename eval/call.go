package eval

import (
	"github.com/emberlang/ember/pkg/ast"
	"github.com/emberlang/ember/pkg/dynamic"
)

// evalFnCall evaluates a function call expression: arguments are
// evaluated left-to-right, then dispatch is
// delegated to the call-resolution collaborator -- unqualified calls may
// hit global registrations, packages, or script-defined functions;
// module-qualified calls resolve through the Imports stack.
func (e *Evaluator) evalFnCall(ctx *Context, n *ast.FnCall) (dynamic.Value, error) {
	args := make([]dynamic.Value, len(n.Args))
	for i, a := range n.Args {
		v, err := e.EvalExpr(ctx, a)
		if err != nil {
			return dynamic.Unit(), err
		}
		args[i] = v
	}

	var def *dynamic.Value
	if n.Default != nil {
		dv, err := e.EvalExpr(ctx, n.Default)
		if err != nil {
			return dynamic.Unit(), err
		}
		def = &dv
	}

	if err := checkCallStackDepth(ctx, n.Pos()); err != nil {
		return dynamic.Unit(), err
	}

	var result dynamic.Value
	var err error
	if len(n.Qualifiers) > 0 {
		mod, ok := ctx.Imports.Search(n.Qualifiers[0].Alias, n.Qualifiers[0].CachedOffset, n.Qualifiers[0].HasCached, ctx.State.AlwaysSearch)
		if !ok {
			return dynamic.Unit(), errModuleNotFound(n.Qualifiers[0].Alias, n.Pos())
		}
		for _, q := range n.Qualifiers[1:] {
			sub, ok := mod.SubModules()[q.Alias]
			if !ok {
				return dynamic.Unit(), errModuleNotFound(q.Alias, n.Pos())
			}
			mod = sub
		}
		result, err = ctx.Resolver.MakeQualifiedFunctionCall(ctx, mod, n.Name, n.FnHash, args, ctx.State.CallDepth)
	} else {
		if n.Name == FnEval {
			// The eval trap: code run by eval can shadow names, so cached
			// offsets are ignored for the rest of this block.
			ctx.State.AlwaysSearch = true
		}
		result, _, err = ctx.Resolver.ExecFnCall(ctx, n.Name, n.FnHash, args, false, false, def, ctx.State.CallDepth)
	}
	if err != nil {
		if fe, ok := AsError(err); ok && !fe.IsControlFlow() {
			fe.Pos = n.Pos()
		}
		return dynamic.Unit(), err
	}
	return result, nil
}

// evalCustom evaluates the node's expressions left-to-right, packages a
// CustomSyntaxContext, and hands the resulting values to the registered
// callback; the callback never sees the unevaluated expressions.
func (e *Evaluator) evalCustom(ctx *Context, n *ast.Custom) (dynamic.Value, error) {
	fn, ok := e.CustomSyntax[n.Syntax]
	if !ok {
		return dynamic.Unit(), errFunctionNotFound(n.Syntax, n.Pos())
	}
	vals := make([]dynamic.Value, len(n.Exprs))
	for i, ex := range n.Exprs {
		v, err := e.EvalExpr(ctx, ex)
		if err != nil {
			return dynamic.Unit(), err
		}
		vals[i] = v
	}
	cctx := &CustomSyntaxContext{Context: ctx, Level: ctx.State.CallDepth}
	return fn(cctx, vals)
}
