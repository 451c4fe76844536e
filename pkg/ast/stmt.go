package ast

import "github.com/emberlang/ember/pkg/token"

// Block is a sequence of statements sharing one scope frame.
type Block struct {
	baseStmt
	Stmts []Stmt
}

// If evaluates Cond (must be Bool); Else may be nil.
type If struct {
	baseStmt
	Cond Expr
	Then *Block
	Else *Block
}

// While loops while Cond evaluates true.
type While struct {
	baseStmt
	Cond Expr
	Body *Block
}

// Loop is an unconditional `loop { ... }`, equivalent to `while true`.
type Loop struct {
	baseStmt
	Body *Block
}

// For iterates Iterable, binding each element to Var in turn.
type For struct {
	baseStmt
	Var      string
	Iterable Expr
	Body     *Block
}

// Let / Const declare a new scope slot. IsConst marks a Const
// declaration; the parser is responsible for having verified the
// initializer is statically constant before emitting IsConst=true.
type LetDecl struct {
	baseStmt
	Name    string
	Init    Expr
	IsConst bool
}

// Return signals a function return carrying an optional value
// expression (nil means Unit).
type Return struct {
	baseStmt
	Value Expr
}

// Throw signals a script-level exception carrying a value expression.
type Throw struct {
	baseStmt
	Value Expr
}

// Break / Continue signal the nearest enclosing loop.
type Break struct{ baseStmt }
type Continue struct{ baseStmt }

// ImportStmt evaluates Path (must yield Str), resolves it via the host
// module resolver, and pushes (Alias, resolved module) onto Imports.
type ImportStmt struct {
	baseStmt
	Path  Expr
	Alias string
}

// ExportEntry is one `id` or `id as rename` export target.
type ExportEntry struct {
	Name   string
	Rename string // "" means export under Name
}

// ExportStmt tags existing scope slots with export aliases.
type ExportStmt struct {
	baseStmt
	Entries []ExportEntry
}

// ExprStmt evaluates an expression purely for its side effects / value.
type ExprStmt struct {
	baseStmt
	Expr Expr
}

func NewBlock(pos token.Position, stmts []Stmt) *Block {
	return &Block{baseStmt: baseStmt{pos}, Stmts: stmts}
}

// NewIf builds an if/else statement; els may be nil.
func NewIf(pos token.Position, cond Expr, then, els *Block) *If {
	return &If{baseStmt: baseStmt{pos}, Cond: cond, Then: then, Else: els}
}

// NewWhile builds a while-loop statement.
func NewWhile(pos token.Position, cond Expr, body *Block) *While {
	return &While{baseStmt: baseStmt{pos}, Cond: cond, Body: body}
}

// NewLoop builds an unconditional loop statement.
func NewLoop(pos token.Position, body *Block) *Loop {
	return &Loop{baseStmt: baseStmt{pos}, Body: body}
}

// NewFor builds a for-in-loop statement.
func NewFor(pos token.Position, varName string, iterable Expr, body *Block) *For {
	return &For{baseStmt: baseStmt{pos}, Var: varName, Iterable: iterable, Body: body}
}

// NewLetDecl builds a let/const declaration statement.
func NewLetDecl(pos token.Position, name string, init Expr, isConst bool) *LetDecl {
	return &LetDecl{baseStmt: baseStmt{pos}, Name: name, Init: init, IsConst: isConst}
}

// NewReturn builds a return statement; value may be nil for a bare return.
func NewReturn(pos token.Position, value Expr) *Return {
	return &Return{baseStmt: baseStmt{pos}, Value: value}
}

// NewThrow builds a throw statement.
func NewThrow(pos token.Position, value Expr) *Throw {
	return &Throw{baseStmt: baseStmt{pos}, Value: value}
}

// NewBreak / NewContinue build loop-control statements.
func NewBreak(pos token.Position) *Break       { return &Break{baseStmt{pos}} }
func NewContinue(pos token.Position) *Continue { return &Continue{baseStmt{pos}} }

// NewImportStmt builds an import statement.
func NewImportStmt(pos token.Position, path Expr, alias string) *ImportStmt {
	return &ImportStmt{baseStmt: baseStmt{pos}, Path: path, Alias: alias}
}

// NewExportStmt builds an export statement over entries.
func NewExportStmt(pos token.Position, entries []ExportEntry) *ExportStmt {
	return &ExportStmt{baseStmt: baseStmt{pos}, Entries: entries}
}

// NewExprStmt wraps an expression evaluated for its side effects/value.
func NewExprStmt(pos token.Position, expr Expr) *ExprStmt {
	return &ExprStmt{baseStmt: baseStmt{pos}, Expr: expr}
}
