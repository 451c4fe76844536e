package ast

import (
	"github.com/emberlang/ember/pkg/dynamic"
	"github.com/emberlang/ember/pkg/token"
)

// Literal wraps any constant Dynamic value (Unit/Bool/Int/Float/Char/Str)
// produced directly by the parser.
type Literal struct {
	baseExpr
	Value dynamic.Value
}

func NewLiteral(pos token.Position, v dynamic.Value) *Literal {
	return &Literal{baseExpr: baseExpr{pos}, Value: v}
}

// NewFnPtrLiteral builds a `Fn(name)` literal node.
func NewFnPtrLiteral(pos token.Position, name string) *FnPtrLiteral {
	return &FnPtrLiteral{baseExpr: baseExpr{pos}, Name: name}
}

// NewArrayLiteral builds an array-literal node over elems.
func NewArrayLiteral(pos token.Position, elems []Expr) *ArrayLiteral {
	return &ArrayLiteral{baseExpr: baseExpr{pos}, Elements: elems}
}

// NewMapLiteral builds a map-literal node over entries.
func NewMapLiteral(pos token.Position, entries []MapEntry) *MapLiteral {
	return &MapLiteral{baseExpr: baseExpr{pos}, Entries: entries}
}

// NewVariable builds an uncached Variable reference (always resolved by
// reverse linear search). Use SetCachedOffset to add the parser-style
// cached-offset optimization.
func NewVariable(pos token.Position, name string) *Variable {
	return &Variable{baseExpr: baseExpr{pos}, Name: name}
}

// SetCachedOffset attaches a precomputed 1-based scope-top offset to v,
// mirroring what a real parser/optimizer pass would fill in.
func (v *Variable) SetCachedOffset(offset int) *Variable {
	v.CachedOffset = offset
	v.HasCachedOffset = true
	return v
}

// NewProperty builds a bare `.prop` node for use as a Dot's Rhs.
func NewProperty(pos token.Position, name string) *Property {
	return &Property{
		baseExpr:   baseExpr{pos},
		RawName:    name,
		GetterName: "get$" + name,
		SetterName: "set$" + name,
	}
}

// NewIndex builds a `lhs[rhs]` node.
func NewIndex(pos token.Position, lhs, rhs Expr) *Index {
	return &Index{baseExpr: baseExpr{pos}, Lhs: lhs, Rhs: rhs}
}

// NewDot builds a `lhs.rhs` node.
func NewDot(pos token.Position, lhs, rhs Expr) *Dot {
	return &Dot{baseExpr: baseExpr{pos}, Lhs: lhs, Rhs: rhs}
}

// NewFnCall builds an unqualified function-call node.
func NewFnCall(pos token.Position, name string, args []Expr) *FnCall {
	return &FnCall{baseExpr: baseExpr{pos}, Name: name, Args: args}
}

// NewAssignment builds an assignment node; op is "" for plain `=`.
func NewAssignment(pos token.Position, lhs Expr, op string, rhs Expr) *Assignment {
	return &Assignment{baseExpr: baseExpr{pos}, Lhs: lhs, Op: op, Rhs: rhs}
}

// NewAnd / NewOr build short-circuiting boolean connective nodes.
func NewAnd(pos token.Position, lhs, rhs Expr) *And { return &And{baseExpr{pos}, lhs, rhs} }
func NewOr(pos token.Position, lhs, rhs Expr) *Or   { return &Or{baseExpr{pos}, lhs, rhs} }

// NewIn builds an `lhs in rhs` membership node.
func NewIn(pos token.Position, lhs, rhs Expr) *In { return &In{baseExpr{pos}, lhs, rhs} }

// FnPtrLiteral is a `Fn("name")` expression: it produces an FnPtr with no
// curried arguments.
type FnPtrLiteral struct {
	baseExpr
	Name string
}

// ArrayLiteral evaluates its elements left-to-right into a fresh array.
type ArrayLiteral struct {
	baseExpr
	Elements []Expr
}

// MapEntry is one `key: value` pair of a MapLiteral; order is the
// insertion order the evaluator must preserve while building the map.
type MapEntry struct {
	Key   string
	Value Expr
}

// MapLiteral evaluates its entries left-to-right into a fresh map.
type MapLiteral struct {
	baseExpr
	Entries []MapEntry
}

// Qualifier is one `::`-separated segment of a module-qualified name,
// carrying the precomputed import-stack offset the parser computed
// (valid while State.AlwaysSearch is false, same contract as variable
// offsets).
type Qualifier struct {
	Alias        string
	CachedOffset int // 1-based distance from import-stack top, 0 = uncached
	HasCached    bool
}

// Variable references a named scope slot, optionally through one or more
// module qualifiers. VarHash is a precomputed hash of Name used by
// Module.GetQualifiedVar; CachedOffset is the parser's precomputed
// 1-based distance from the scope top (HasCachedOffset indicates whether
// CachedOffset applies at all -- "this" and dynamically-introduced names
// never carry one).
type Variable struct {
	baseExpr
	Name            string
	Qualifiers      []Qualifier
	VarHash         uint64
	CachedOffset    int
	HasCachedOffset bool
}

// Property is a bare `.prop` reference. It never appears as a top-level
// Expr; the chain walker consumes it as the right-hand node of a Dot.
// RawName is the source spelling; GetterName/SetterName are the
// `get$prop`/`set$prop` function names the walker falls back to on
// non-map bases.
type Property struct {
	baseExpr
	RawName    string
	GetterName string
	SetterName string
}

// Index is one `lhs[rhs]` link of an index chain, or the entry point of
// one (when Lhs is the chain base).
type Index struct {
	baseExpr
	Lhs Expr
	Rhs Expr
}

// Dot is one `lhs.rhs` link of a dot chain. Rhs is a Property or FnCall;
// the chain walker ignores any other Rhs shape.
type Dot struct {
	baseExpr
	Lhs Expr
	Rhs Expr
}

// FnCall is a function call, either unqualified or module-qualified.
// IsNative hints that Name is a known built-in (an optimizer hint the
// evaluator is free to ignore); FnHash is the precomputed dispatch hash;
// Default is the optional default-value expression used by some
// accessor-style calls (e.g. a missing-key map access shorthand).
type FnCall struct {
	baseExpr
	Name       string
	IsNative   bool
	Qualifiers []Qualifier
	FnHash     uint64
	Args       []Expr
	Default    Expr
}

// Assignment is `lhs op= rhs`. Op is "" for plain `=`, or the bare
// operator ("+", "-", ...) for compound assignment.
type Assignment struct {
	baseExpr
	Lhs Expr
	Op  string
	Rhs Expr
}

// And / Or are short-circuiting boolean connectives.
type And struct {
	baseExpr
	Lhs, Rhs Expr
}

type Or struct {
	baseExpr
	Lhs, Rhs Expr
}

// In is the `lhs in rhs` membership expression.
type In struct {
	baseExpr
	Lhs, Rhs Expr
}

// Custom packages pre-parsed expression handles for a user-registered
// custom-syntax callback; Syntax is an opaque key the callback uses to
// recognize its own construct.
type Custom struct {
	baseExpr
	Syntax string
	Exprs  []Expr
}

