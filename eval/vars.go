package eval

import (
	"github.com/emberlang/ember/pkg/ast"
	"github.com/emberlang/ember/pkg/dynamic"
)

// resolveVariableTarget implements scope search and namespace search
// for a Variable expression used as a chain base or as a bare
// assignment LHS. isWrite controls whether a Constant/module-
// qualified (always-Constant) result rejects with
// AssignmentToConstant.
func (e *Evaluator) resolveVariableTarget(ctx *Context, v *ast.Variable, isWrite bool) (*Target, error) {
	if v.Name == FnThis {
		if ctx.This == nil {
			return nil, errUnboundedThis(v.Pos())
		}
		this := ctx.This
		if isWrite {
			// `this` is always a plain mutable receiver binding, never
			// a Constant entry; writes propagate to the caller's
			// receiver slot.
			return RefTarget(func() dynamic.Value { return *this }, func(nv dynamic.Value) { *this = nv }), nil
		}
		return RefTarget(func() dynamic.Value { return *this }, func(nv dynamic.Value) { *this = nv }), nil
	}

	if len(v.Qualifiers) > 0 {
		if isWrite {
			return nil, errAssignmentToConstant(v.Name, v.Pos())
		}
		return e.resolveNamespaceTarget(ctx, v)
	}

	entry, err := ctx.Scope.Search(v, ctx.State.AlwaysSearch)
	if err != nil {
		return nil, err
	}
	if isWrite && entry.Type == Constant {
		return nil, errAssignmentToConstant(entry.Name, v.Pos())
	}
	return RefTarget(
		func() dynamic.Value { return entry.Value },
		func(nv dynamic.Value) { entry.Value = nv },
	), nil
}

// resolveNamespaceTarget resolves a module-qualified variable: the
// root module is found via the Imports stack (same cached-offset rule
// as Scope.Search, same fallback to
// reverse linear search by alias), then the qualified variable is
// looked up by hash. Module-qualified variables always yield a Constant
// target.
func (e *Evaluator) resolveNamespaceTarget(ctx *Context, v *ast.Variable) (*Target, error) {
	q := v.Qualifiers[0]
	mod, ok := ctx.Imports.Search(q.Alias, q.CachedOffset, q.HasCached, ctx.State.AlwaysSearch)
	if !ok {
		return nil, errModuleNotFound(q.Alias, v.Pos())
	}
	for _, next := range v.Qualifiers[1:] {
		sub, ok := mod.SubModules()[next.Alias]
		if !ok {
			return nil, errModuleNotFound(next.Alias, v.Pos())
		}
		mod = sub
	}
	val, ok := mod.GetQualifiedVar(v.VarHash)
	if !ok {
		return nil, errVariableNotFound(v.Name, v.Pos())
	}
	return ValueTarget(val), nil
}

// EvalVariable reads a Variable expression outside of chain context.
func (e *Evaluator) EvalVariable(ctx *Context, v *ast.Variable) (dynamic.Value, error) {
	t, err := e.resolveVariableTarget(ctx, v, false)
	if err != nil {
		return dynamic.Unit(), err
	}
	return t.Get(), nil
}
