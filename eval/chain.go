package eval

import (
	"github.com/emberlang/ember/pkg/ast"
	"github.com/emberlang/ember/pkg/dynamic"
	"github.com/emberlang/ember/pkg/token"
)

// link is one node of a flattened access chain, in base-to-tip order.
type linkKind uint8

const (
	linkIndex linkKind = iota
	linkProperty
	linkMethodCall
)

type link struct {
	kind linkKind
	pos  token.Position

	indexExpr ast.Expr       // linkIndex
	property  *ast.Property  // linkProperty
	call      *ast.FnCall    // linkMethodCall
}

// flattenChain walks the left-recursive Index/Dot spine down to its
// base, returning the base expression and the ordered (base-to-tip)
// list of links above it. `a.b.c[i]` parses as
// Index{Dot{Dot{a,b},c}, i}; flattening recurses on Lhs first so the
// links come out in source (left-to-right) order.
func flattenChain(e ast.Expr) (ast.Expr, []link) {
	switch n := e.(type) {
	case *ast.Index:
		base, links := flattenChain(n.Lhs)
		return base, append(links, link{kind: linkIndex, pos: n.Pos(), indexExpr: n.Rhs})
	case *ast.Dot:
		base, links := flattenChain(n.Lhs)
		switch rhs := n.Rhs.(type) {
		case *ast.Property:
			return base, append(links, link{kind: linkProperty, pos: n.Pos(), property: rhs})
		case *ast.FnCall:
			return base, append(links, link{kind: linkMethodCall, pos: n.Pos(), call: rhs})
		default:
			// Defensive: a well-formed tree never reaches here.
			return base, links
		}
	default:
		return e, nil
	}
}

// collected is the pre-evaluated payload for one link, produced during
// phase 1 and consumed during phase 2.
type collected struct {
	index dynamic.Value   // linkIndex
	args  []dynamic.Value // linkMethodCall
}

// collectChainValues is phase 1: eagerly evaluate every
// subscript expression and every method-call argument list, strictly
// left-to-right, before any target is produced. Property links need no
// collection -- the name is already in the AST.
func (e *Evaluator) collectChainValues(ctx *Context, links []link) ([]collected, error) {
	out := make([]collected, len(links))
	for i, l := range links {
		if err := incOperations(ctx, l.pos); err != nil {
			return nil, err
		}
		switch l.kind {
		case linkIndex:
			v, err := e.EvalExpr(ctx, l.indexExpr)
			if err != nil {
				return nil, err
			}
			out[i].index = v
		case linkMethodCall:
			args := make([]dynamic.Value, len(l.call.Args))
			for j, a := range l.call.Args {
				v, err := e.EvalExpr(ctx, a)
				if err != nil {
					return nil, err
				}
				args[j] = v
			}
			out[i].args = args
		}
	}
	return out, nil
}

// EvalChainRead evaluates a full index/dot chain for its value (no
// write). expr must be an *ast.Index or *ast.Dot (or a chain rooted in
// one); anything else is evaluated directly by EvalExpr.
func (e *Evaluator) EvalChainRead(ctx *Context, expr ast.Expr) (dynamic.Value, error) {
	return e.evalChain(ctx, expr, nil)
}

// EvalChainWrite evaluates expr as a write chain, assigning newVal at
// the final link. expr must resolve to an lvalue: a bare constant
// Variable rejects with AssignmentToConstant: anything else that isn't
// itself a chain or lvalue Variable rejects with
// AssignmentToUnknownLHS before reaching here (see assignment.go).
func (e *Evaluator) EvalChainWrite(ctx *Context, expr ast.Expr, newVal dynamic.Value) (dynamic.Value, error) {
	return e.evalChain(ctx, expr, &newVal)
}

func (e *Evaluator) evalChain(ctx *Context, expr ast.Expr, newVal *dynamic.Value) (dynamic.Value, error) {
	base, links := flattenChain(expr)
	collected, err := e.collectChainValues(ctx, links)
	if err != nil {
		return dynamic.Unit(), err
	}
	target, err := e.evalChainBase(ctx, base, newVal != nil)
	if err != nil {
		return dynamic.Unit(), err
	}
	return e.applyChain(ctx, target, links, collected, newVal)
}

// evalChainBase resolves the chain's base expression to a Target: a
// variable base uses namespace search; a constant
// variable rejects write chains; any other expression is evaluated to
// an owned value-target, which rejects writes.
func (e *Evaluator) evalChainBase(ctx *Context, base ast.Expr, isWrite bool) (*Target, error) {
	if v, ok := base.(*ast.Variable); ok {
		return e.resolveVariableTarget(ctx, v, isWrite)
	}
	val, err := e.EvalExpr(ctx, base)
	if err != nil {
		return nil, err
	}
	if isWrite {
		return nil, errAssignmentToUnknownLHS(base.Pos())
	}
	return ValueTarget(val), nil
}

// applyChain is phase 2: starting from the base target, pop one
// collected payload per level and apply the operation appropriate to
// the current Target/link-kind pair.
func (e *Evaluator) applyChain(ctx *Context, cur *Target, links []link, collected []collected, newVal *dynamic.Value) (dynamic.Value, error) {
	if err := incOperations(ctx, token.Position{}); err != nil {
		return dynamic.Unit(), err
	}
	if len(links) == 0 {
		if newVal != nil {
			if _, err := cur.Write(*newVal, token.Position{}); err != nil {
				return dynamic.Unit(), err
			}
			return *newVal, nil
		}
		return cur.Get(), nil
	}

	l := links[0]
	rest := links[1:]
	restCollected := collected[1:]
	isLast := len(rest) == 0
	var linkNewVal *dynamic.Value
	if isLast {
		linkNewVal = newVal
	}

	switch l.kind {
	case linkIndex:
		return e.applyIndexLink(ctx, cur, l, collected[0].index, rest, restCollected, linkNewVal, newVal, isLast)
	case linkProperty:
		return e.applyPropertyLink(ctx, cur, l, rest, restCollected, linkNewVal, newVal, isLast)
	case linkMethodCall:
		return e.applyMethodCallLink(ctx, cur, l, collected[0].args, rest, restCollected, newVal)
	default:
		return dynamic.Unit(), errAssignmentToUnknownLHS(l.pos)
	}
}

func normalizeIndex(idx, length int) int {
	if idx < 0 {
		return length + idx
	}
	return idx
}

func (e *Evaluator) applyIndexLink(ctx *Context, cur *Target, l link, idxVal dynamic.Value, rest []link, restCollected []collected, linkNewVal, chainNewVal *dynamic.Value, isLast bool) (dynamic.Value, error) {
	base := cur.Get()
	switch base.Kind() {
	case dynamic.KindArray:
		arr, _ := base.AsArray()
		iRaw, err := idxVal.ToInt()
		if err != nil {
			return dynamic.Unit(), &Error{Kind: NumericIndexExpr, Pos: l.pos}
		}
		i := normalizeIndex(int(iRaw), len(*arr))
		if i < 0 || i >= len(*arr) {
			return dynamic.Unit(), errArrayBounds(l.pos)
		}
		elemTarget := RefTarget(
			func() dynamic.Value { return (*arr)[i] },
			func(v dynamic.Value) { (*arr)[i] = v },
		)
		if isLast && linkNewVal != nil {
			(*arr)[i] = *linkNewVal
			// Report the mutation back through cur so a property
			// write-back one level up (applyPropertyLink) sees Wrote()
			// even though the container was mutated in place rather
			// than through cur.Write directly.
			cur.Write(base, l.pos)
			return *linkNewVal, nil
		}
		return e.applyChain(ctx, elemTarget, rest, restCollected, chainNewVal)

	case dynamic.KindMap:
		m, _ := base.AsMap()
		key, err := idxVal.ToStr()
		if err != nil {
			return dynamic.Unit(), &Error{Kind: StringIndexExpr, Pos: l.pos}
		}
		if isLast && linkNewVal != nil {
			(*m)[key] = *linkNewVal
			cur.Write(base, l.pos)
			return *linkNewVal, nil
		}
		entryTarget := RefTarget(
			func() dynamic.Value {
				if v, ok := (*m)[key]; ok {
					return v
				}
				return dynamic.Unit()
			},
			func(v dynamic.Value) { (*m)[key] = v },
		)
		return e.applyChain(ctx, entryTarget, rest, restCollected, chainNewVal)

	case dynamic.KindStr:
		s, _ := base.AsStr()
		runes := []rune(s)
		iRaw, err := idxVal.ToInt()
		if err != nil {
			return dynamic.Unit(), &Error{Kind: NumericIndexExpr, Pos: l.pos}
		}
		i := normalizeIndex(int(iRaw), len(runes))
		if i < 0 || i >= len(runes) {
			return dynamic.Unit(), errStringBounds(l.pos)
		}
		if !isLast {
			// A string char is a terminal node; continuing a chain past
			// it is a dot/index-on-non-container error.
			return dynamic.Unit(), errIndexingType(base.TypeName(), l.pos)
		}
		charTarget := StringCharTarget(
			func() string { return cur.Get().String() },
			func(news string) { cur.Write(dynamic.Str(news), l.pos) },
			i, runes[i],
		)
		if linkNewVal != nil {
			ok, werr := charTarget.Write(*linkNewVal, l.pos)
			if werr != nil {
				return dynamic.Unit(), werr
			}
			_ = ok
			return *linkNewVal, nil
		}
		return dynamic.Char(runes[i]), nil

	default:
		return e.applyRegisteredIndex(ctx, cur, base, idxVal, l, rest, restCollected, linkNewVal, chainNewVal, isLast)
	}
}

// applyRegisteredIndex dispatches `base[i]` for a shape that isn't
// Array/Map/Str to the registered index$get$/index$set$ functions.
func (e *Evaluator) applyRegisteredIndex(ctx *Context, cur *Target, base, idxVal dynamic.Value, l link, rest []link, restCollected []collected, linkNewVal, chainNewVal *dynamic.Value, isLast bool) (dynamic.Value, error) {
	if isLast && linkNewVal != nil {
		fn, ok := ctx.Library.Resolve(FnIndexSet, 0, 3)
		if !ok {
			if _, getOk := ctx.Library.Resolve(FnIndexGet, 0, 2); getOk && cur.IsValue() {
				ctx.State.emitDiagnostic(DiagSilentIndexWrite, "index write discarded: no index$set$ registered")
				return *linkNewVal, nil // silent no-op: getter exists, target is owned
			}
			return dynamic.Unit(), errFunctionNotFound(FnIndexSet, l.pos)
		}
		if _, err := fn(ctx, []dynamic.Value{base, idxVal, *linkNewVal}, ctx.State.CallDepth); err != nil {
			return dynamic.Unit(), err
		}
		return *linkNewVal, nil
	}
	fn, ok := ctx.Library.Resolve(FnIndexGet, 0, 2)
	if !ok {
		return dynamic.Unit(), errIndexingType(base.TypeName(), l.pos)
	}
	result, err := fn(ctx, []dynamic.Value{base, idxVal}, ctx.State.CallDepth)
	if err != nil {
		return dynamic.Unit(), err
	}
	return e.applyChain(ctx, ValueTarget(result), rest, restCollected, chainNewVal)
}

func (e *Evaluator) applyPropertyLink(ctx *Context, cur *Target, l link, rest []link, restCollected []collected, linkNewVal, chainNewVal *dynamic.Value, isLast bool) (dynamic.Value, error) {
	base := cur.Get()
	name := l.property.RawName

	if base.Kind() == dynamic.KindMap {
		// Map-backed dot chains take the Ref path and never write back
		// through a setter -- a map has no getter/setter pair to begin with.
		m, _ := base.AsMap()
		if isLast && linkNewVal != nil {
			(*m)[name] = *linkNewVal
			cur.Write(base, l.pos)
			return *linkNewVal, nil
		}
		entryTarget := RefTarget(
			func() dynamic.Value {
				if v, ok := (*m)[name]; ok {
					return v
				}
				return dynamic.Unit()
			},
			func(v dynamic.Value) { (*m)[name] = v },
		)
		return e.applyChain(ctx, entryTarget, rest, restCollected, chainNewVal)
	}

	// Non-map base: getter into a local owned value, recurse, then
	// write back through the setter if the recursion mutated the local
	// copy.
	getterFn, hasGetter := ctx.Library.Resolve(l.property.GetterName, 0, 1)
	if !hasGetter {
		return dynamic.Unit(), errDotExpr(base.TypeName(), l.pos)
	}
	ownedVal, err := getterFn(ctx, []dynamic.Value{base}, ctx.State.CallDepth)
	if err != nil {
		return dynamic.Unit(), err
	}

	if isLast {
		if linkNewVal != nil {
			setterFn, hasSetter := ctx.Library.Resolve(l.property.SetterName, 0, 2)
			if !hasSetter {
				// Read-only property: write silently discarded.
				ctx.State.emitDiagnostic(DiagSilentPropertyWrite, "write to read-only property "+l.property.RawName+" discarded")
				return *linkNewVal, nil
			}
			if _, err := setterFn(ctx, []dynamic.Value{base, *linkNewVal}, ctx.State.CallDepth); err != nil {
				return dynamic.Unit(), err
			}
			// As with the container paths, report the setter-driven
			// mutation through cur so an enclosing property link writes
			// its owned copy back.
			cur.Write(base, l.pos)
			return *linkNewVal, nil
		}
		return ownedVal, nil
	}

	localTarget := ValueTarget(ownedVal)
	result, err := e.applyChain(ctx, localTarget, rest, restCollected, chainNewVal)
	if err != nil {
		return dynamic.Unit(), err
	}
	if localTarget.Wrote() {
		setterFn, hasSetter := ctx.Library.Resolve(l.property.SetterName, 0, 2)
		if hasSetter {
			if _, err := setterFn(ctx, []dynamic.Value{base, localTarget.Get()}, ctx.State.CallDepth); err != nil {
				// Swallowed: the write already succeeded against the local copy;
				// a setter error here has nowhere further to propagate to.
				_ = err
			}
		}
	}
	return result, nil
}

func (e *Evaluator) applyMethodCallLink(ctx *Context, cur *Target, l link, args []dynamic.Value, rest []link, restCollected []collected, chainNewVal *dynamic.Value) (dynamic.Value, error) {
	receiver := cur.Get()
	isRef := cur.IsRef()
	result, updated, err := ctx.Resolver.MakeMethodCall(ctx, &receiver, l.call.Name, l.call.FnHash, args, ctx.State.CallDepth)
	if err != nil {
		if fe, ok := AsError(err); ok {
			fe.Pos = l.pos
		}
		return dynamic.Unit(), err
	}
	if updated && isRef {
		cur.set(receiver)
	}
	return e.applyChain(ctx, ValueTarget(result), rest, restCollected, chainNewVal)
}
