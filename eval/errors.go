package eval

import (
	"fmt"

	"github.com/emberlang/ember/pkg/dynamic"
	"github.com/emberlang/ember/pkg/token"
)

// Kind enumerates every evaluator-level failure and internal
// control-flow signal. These all live on one sum type (Error) carrying
// a position: control flow (break/continue/return/throw) is modeled as
// distinguished Kinds of the same type rather than a parallel error
// hierarchy.
type Kind uint8

const (
	VariableNotFound Kind = iota
	ModuleNotFound
	UnboundedThis
	AssignmentToConstant
	AssignmentToUnknownLHS
	IndexingType
	ArrayBounds
	StringBounds
	NumericIndexExpr
	StringIndexExpr
	CharMismatch
	DotExpr
	FunctionNotFound
	LogicGuard
	BooleanArgMismatch
	InExpr
	ImportExpr
	ForNoIterator
	LoopBreak
	Return
	ErrorRuntime
	TooManyOperations
	TooManyModules
	DataTooLarge
	Terminated
)

var kindNames = map[Kind]string{
	VariableNotFound:       "VariableNotFound",
	ModuleNotFound:         "ModuleNotFound",
	UnboundedThis:          "UnboundedThis",
	AssignmentToConstant:   "AssignmentToConstant",
	AssignmentToUnknownLHS: "AssignmentToUnknownLHS",
	IndexingType:           "IndexingType",
	ArrayBounds:            "ArrayBounds",
	StringBounds:           "StringBounds",
	NumericIndexExpr:       "NumericIndexExpr",
	StringIndexExpr:        "StringIndexExpr",
	CharMismatch:           "CharMismatch",
	DotExpr:                "DotExpr",
	FunctionNotFound:       "FunctionNotFound",
	LogicGuard:             "LogicGuard",
	BooleanArgMismatch:     "BooleanArgMismatch",
	InExpr:                 "InExpr",
	ImportExpr:             "ImportExpr",
	ForNoIterator:          "For",
	LoopBreak:              "LoopBreak",
	Return:                 "Return",
	ErrorRuntime:           "ErrorRuntime",
	TooManyOperations:      "TooManyOperations",
	TooManyModules:         "TooManyModules",
	DataTooLarge:           "DataTooLarge",
	Terminated:             "Terminated",
}

func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return "Unknown"
}

// Error is Ember's single runtime error/control-flow sum type. Only the
// fields relevant to Kind are populated; the rest are zero.
type Error struct {
	Kind Kind
	Pos  token.Position

	Name    string // VariableNotFound / ModuleNotFound / AssignmentToConstant
	Message string // ErrorRuntime (thrown message) / free-form detail

	Value   dynamic.Value // Return / ErrorRuntime(throw) payload
	IsBreak bool          // LoopBreak: true = break, false = continue

	Category string // DataTooLarge: "Size of string" / "Size of array" / "Size of map"
	Limit    int64  // DataTooLarge
	Actual   int64  // DataTooLarge
}

func (e *Error) Error() string {
	switch e.Kind {
	case VariableNotFound:
		return fmt.Sprintf("variable not found: %q (%s)", e.Name, e.Pos)
	case ModuleNotFound:
		return fmt.Sprintf("module not found: %q (%s)", e.Name, e.Pos)
	case UnboundedThis:
		return fmt.Sprintf("'this' is not bound here (%s)", e.Pos)
	case AssignmentToConstant:
		return fmt.Sprintf("cannot assign to constant %q (%s)", e.Name, e.Pos)
	case AssignmentToUnknownLHS:
		return fmt.Sprintf("invalid assignment target (%s)", e.Pos)
	case IndexingType:
		return fmt.Sprintf("cannot index into %s (%s)", e.Name, e.Pos)
	case ArrayBounds:
		return fmt.Sprintf("array index out of bounds (%s)", e.Pos)
	case StringBounds:
		return fmt.Sprintf("string index out of bounds (%s)", e.Pos)
	case NumericIndexExpr:
		return fmt.Sprintf("index expression did not evaluate to a number (%s)", e.Pos)
	case StringIndexExpr:
		return fmt.Sprintf("index expression did not evaluate to a string (%s)", e.Pos)
	case CharMismatch:
		return fmt.Sprintf("expected a single character (%s)", e.Pos)
	case DotExpr:
		return fmt.Sprintf("'.' cannot be applied to %s (%s)", e.Name, e.Pos)
	case FunctionNotFound:
		return fmt.Sprintf("function not found: %q (%s)", e.Name, e.Pos)
	case LogicGuard:
		return fmt.Sprintf("condition did not evaluate to a boolean (%s)", e.Pos)
	case BooleanArgMismatch:
		return fmt.Sprintf("'&&'/'||' require boolean operands (%s)", e.Pos)
	case InExpr:
		return fmt.Sprintf("'in' requires an array, map, or string on the right (%s)", e.Pos)
	case ImportExpr:
		return fmt.Sprintf("import path must be a string (%s)", e.Pos)
	case ForNoIterator:
		return fmt.Sprintf("no iterator registered for type %q (%s)", e.Name, e.Pos)
	case LoopBreak:
		if e.IsBreak {
			return "break outside of loop"
		}
		return "continue outside of loop"
	case Return:
		return "return outside of function"
	case ErrorRuntime:
		return fmt.Sprintf("runtime error: %s (%s)", e.Message, e.Pos)
	case TooManyOperations:
		return fmt.Sprintf("script exceeded the operation limit (%s)", e.Pos)
	case TooManyModules:
		return fmt.Sprintf("script imports too many modules (%s)", e.Pos)
	case DataTooLarge:
		return fmt.Sprintf("%s (%d) exceeds the limit of %d (%s)", e.Category, e.Actual, e.Limit, e.Pos)
	case Terminated:
		return fmt.Sprintf("script terminated by host (%s)", e.Pos)
	default:
		return fmt.Sprintf("evaluation error (%s)", e.Pos)
	}
}

// IsControlFlow reports whether e is an internal signal (break, continue,
// return, throw) rather than a reportable failure. The statement/loop
// drivers intercept these at exactly one level; they must never leak
// past their semantic target.
func (e *Error) IsControlFlow() bool {
	return e.Kind == LoopBreak || e.Kind == Return || e.Kind == ErrorRuntime
}

func errVariableNotFound(name string, pos token.Position) *Error {
	return &Error{Kind: VariableNotFound, Name: name, Pos: pos}
}

func errModuleNotFound(alias string, pos token.Position) *Error {
	return &Error{Kind: ModuleNotFound, Name: alias, Pos: pos}
}

func errUnboundedThis(pos token.Position) *Error {
	return &Error{Kind: UnboundedThis, Pos: pos}
}

func errAssignmentToConstant(name string, pos token.Position) *Error {
	return &Error{Kind: AssignmentToConstant, Name: name, Pos: pos}
}

func errAssignmentToUnknownLHS(pos token.Position) *Error {
	return &Error{Kind: AssignmentToUnknownLHS, Pos: pos}
}

func errIndexingType(typeName string, pos token.Position) *Error {
	return &Error{Kind: IndexingType, Name: typeName, Pos: pos}
}

func errArrayBounds(pos token.Position) *Error {
	return &Error{Kind: ArrayBounds, Pos: pos}
}

func errStringBounds(pos token.Position) *Error {
	return &Error{Kind: StringBounds, Pos: pos}
}

func errCharMismatch(pos token.Position) *Error {
	return &Error{Kind: CharMismatch, Pos: pos}
}

func errDotExpr(typeName string, pos token.Position) *Error {
	return &Error{Kind: DotExpr, Name: typeName, Pos: pos}
}

func errFunctionNotFound(name string, pos token.Position) *Error {
	return &Error{Kind: FunctionNotFound, Name: name, Pos: pos}
}

func errLogicGuard(pos token.Position) *Error {
	return &Error{Kind: LogicGuard, Pos: pos}
}

func errBooleanArgMismatch(pos token.Position) *Error {
	return &Error{Kind: BooleanArgMismatch, Pos: pos}
}

func errInExpr(pos token.Position) *Error {
	return &Error{Kind: InExpr, Pos: pos}
}

func errImportExpr(pos token.Position) *Error {
	return &Error{Kind: ImportExpr, Pos: pos}
}

func errForNoIterator(typeName string, pos token.Position) *Error {
	return &Error{Kind: ForNoIterator, Name: typeName, Pos: pos}
}

func errLoopBreak(isBreak bool, pos token.Position) *Error {
	return &Error{Kind: LoopBreak, IsBreak: isBreak, Pos: pos}
}

func errReturn(v dynamic.Value, pos token.Position) *Error {
	return &Error{Kind: Return, Value: v, Pos: pos}
}

func errThrow(v dynamic.Value, pos token.Position) *Error {
	msg := v.String()
	return &Error{Kind: ErrorRuntime, Value: v, Message: msg, Pos: pos}
}

func errTooManyOperations(pos token.Position) *Error {
	return &Error{Kind: TooManyOperations, Pos: pos}
}

func errTooManyModules(pos token.Position) *Error {
	return &Error{Kind: TooManyModules, Pos: pos}
}

func errDataTooLarge(category string, limit, actual int64, pos token.Position) *Error {
	return &Error{Kind: DataTooLarge, Category: category, Limit: limit, Actual: actual, Pos: pos}
}

func errTerminated(pos token.Position) *Error {
	return &Error{Kind: Terminated, Pos: pos}
}

// AsError unwraps a Go error into an *Error, for call sites that need to
// branch on Kind after a collaborator call.
func AsError(err error) (*Error, bool) {
	e, ok := err.(*Error)
	return e, ok
}
