package eval

import (
	"github.com/emberlang/ember/pkg/ast"
	"github.com/emberlang/ember/pkg/dynamic"
)

// EvalStmt dispatches on statement kind. The result of every
// statement passes through the size governor before returning.
func (e *Evaluator) EvalStmt(ctx *Context, stmt ast.Stmt) (dynamic.Value, error) {
	if err := incOperations(ctx, stmt.Pos()); err != nil {
		return dynamic.Unit(), err
	}

	v, err := e.evalStmtInner(ctx, stmt)
	if err != nil {
		return dynamic.Unit(), err
	}
	if err := checkDataSize(ctx, v, stmt.Pos()); err != nil {
		return dynamic.Unit(), err
	}
	return v, nil
}

func (e *Evaluator) evalStmtInner(ctx *Context, stmt ast.Stmt) (dynamic.Value, error) {
	switch n := stmt.(type) {
	case *ast.Block:
		return e.evalBlock(ctx, n)
	case *ast.If:
		return e.evalIf(ctx, n)
	case *ast.While:
		return e.evalWhile(ctx, n)
	case *ast.Loop:
		return e.evalLoop(ctx, n)
	case *ast.For:
		return e.evalFor(ctx, n)
	case *ast.LetDecl:
		return e.evalLetDecl(ctx, n)
	case *ast.Return:
		var v dynamic.Value = dynamic.Unit()
		if n.Value != nil {
			var err error
			v, err = e.EvalExpr(ctx, n.Value)
			if err != nil {
				return dynamic.Unit(), err
			}
		}
		return dynamic.Unit(), errReturn(v, n.Pos())
	case *ast.Throw:
		v, err := e.EvalExpr(ctx, n.Value)
		if err != nil {
			return dynamic.Unit(), err
		}
		return dynamic.Unit(), errThrow(v, n.Pos())
	case *ast.Break:
		return dynamic.Unit(), errLoopBreak(true, n.Pos())
	case *ast.Continue:
		return dynamic.Unit(), errLoopBreak(false, n.Pos())
	case *ast.ImportStmt:
		return dynamic.Unit(), e.evalImport(ctx, n)
	case *ast.ExportStmt:
		return dynamic.Unit(), e.evalExport(ctx, n)
	case *ast.ExprStmt:
		return e.EvalExpr(ctx, n.Expr)
	default:
		return dynamic.Unit(), nil
	}
}

// evalBlock runs a block: remember scope/import lengths,
// fold statements sequentially, restore lengths and AlwaysSearch on
// every exit path (normal, early control-flow signal, or error).
func (e *Evaluator) evalBlock(ctx *Context, n *ast.Block) (dynamic.Value, error) {
	scopeLen := ctx.Scope.Len()
	importsLen := ctx.Imports.Len()
	prevLevel := ctx.State.EnterBlock()
	defer func() {
		ctx.Scope.Truncate(scopeLen)
		ctx.Imports.Truncate(importsLen)
		ctx.State.ExitBlock(prevLevel)
	}()

	result := dynamic.Unit()
	for _, s := range n.Stmts {
		v, err := e.EvalStmt(ctx, s)
		if err != nil {
			return dynamic.Unit(), err
		}
		result = v
	}
	return result, nil
}

// evalIf evaluates an if/then/else statement.
func (e *Evaluator) evalIf(ctx *Context, n *ast.If) (dynamic.Value, error) {
	cond, err := e.EvalExpr(ctx, n.Cond)
	if err != nil {
		return dynamic.Unit(), err
	}
	b, ok := cond.AsBool()
	if !ok {
		return dynamic.Unit(), errLogicGuard(n.Cond.Pos())
	}
	if b {
		return e.evalBlock(ctx, n.Then)
	}
	if n.Else != nil {
		return e.evalBlock(ctx, n.Else)
	}
	return dynamic.Unit(), nil
}

// evalWhile runs a while loop: LoopBreak(continue) is
// swallowed, LoopBreak(break) exits returning Unit, anything else
// propagates.
func (e *Evaluator) evalWhile(ctx *Context, n *ast.While) (dynamic.Value, error) {
	for {
		cond, err := e.EvalExpr(ctx, n.Cond)
		if err != nil {
			return dynamic.Unit(), err
		}
		b, ok := cond.AsBool()
		if !ok {
			return dynamic.Unit(), errLogicGuard(n.Cond.Pos())
		}
		if !b {
			return dynamic.Unit(), nil
		}
		if _, err := e.evalBlock(ctx, n.Body); err != nil {
			if fe, ok := AsError(err); ok && fe.Kind == LoopBreak {
				if fe.IsBreak {
					return dynamic.Unit(), nil
				}
				continue
			}
			return dynamic.Unit(), err
		}
	}
}

// evalLoop runs an unconditional loop: same as `while true`.
func (e *Evaluator) evalLoop(ctx *Context, n *ast.Loop) (dynamic.Value, error) {
	for {
		if _, err := e.evalBlock(ctx, n.Body); err != nil {
			if fe, ok := AsError(err); ok && fe.Kind == LoopBreak {
				if fe.IsBreak {
					return dynamic.Unit(), nil
				}
				continue
			}
			return dynamic.Unit(), err
		}
	}
}

// evalFor runs a for loop: look up an iterator factory by
// the iterable's type tag, push one fresh loop-variable slot, advance
// the iterator, and evaluate the body with the same break/continue
// semantics while/loop use. The slot is restored on exit.
func (e *Evaluator) evalFor(ctx *Context, n *ast.For) (dynamic.Value, error) {
	iterableVal, err := e.EvalExpr(ctx, n.Iterable)
	if err != nil {
		return dynamic.Unit(), err
	}
	factory, ok := ctx.Library.Iterator(iterableVal.TypeName())
	if !ok {
		return dynamic.Unit(), errForNoIterator(iterableVal.TypeName(), n.Pos())
	}
	it, err := factory(iterableVal)
	if err != nil {
		return dynamic.Unit(), err
	}

	scopeLen := ctx.Scope.Len()
	defer ctx.Scope.Truncate(scopeLen)
	slot := ctx.Scope.Push(n.Var, Normal, dynamic.Unit())

	for {
		elem, more := it.Next()
		if !more {
			return dynamic.Unit(), nil
		}
		ctx.Scope.At(slot).Value = elem

		if _, err := e.evalBlock(ctx, n.Body); err != nil {
			if fe, ok := AsError(err); ok && fe.Kind == LoopBreak {
				if fe.IsBreak {
					return dynamic.Unit(), nil
				}
				continue
			}
			return dynamic.Unit(), err
		}
	}
}

// evalLetDecl pushes a new let/const entry.
// Const initializers are required to be statically constant, a
// guarantee the (out-of-scope) parser is responsible for before this
// node is ever produced.
func (e *Evaluator) evalLetDecl(ctx *Context, n *ast.LetDecl) (dynamic.Value, error) {
	v, err := e.EvalExpr(ctx, n.Init)
	if err != nil {
		return dynamic.Unit(), err
	}
	typ := Normal
	if n.IsConst {
		typ = Constant
	}
	ctx.Scope.Push(n.Name, typ, v)
	return v, nil
}

// evalImport resolves and binds an imported module.
func (e *Evaluator) evalImport(ctx *Context, n *ast.ImportStmt) error {
	if err := checkModuleLimit(ctx, n.Pos()); err != nil {
		return err
	}
	pathVal, err := e.EvalExpr(ctx, n.Path)
	if err != nil {
		return err
	}
	path, ok := pathVal.AsStr()
	if !ok {
		return errImportExpr(n.Pos())
	}
	mod, err := ctx.Modules.Resolve(ctx, path, n.Pos())
	if err != nil {
		return err
	}
	_ = mod.SubModules() // result unused; nested aliases are looked up through SubModules at each qualified call
	ctx.Imports.Push(n.Alias, mod)
	ctx.State.Modules++
	return nil
}

// evalExport re-exports an alias or entry from the current module.
func (e *Evaluator) evalExport(ctx *Context, n *ast.ExportStmt) error {
	for _, entry := range n.Entries {
		if err := ctx.Scope.markExported(entry.Name, entry.Rename, n.Pos()); err != nil {
			return err
		}
	}
	return nil
}
