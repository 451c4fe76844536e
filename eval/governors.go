package eval

import (
	"github.com/emberlang/ember/pkg/dynamic"
	"github.com/emberlang/ember/pkg/token"
)

// incOperations is the operation governor: invoked before
// every recursive step (every eval_expr, every eval_stmt, every chain
// descent, every indexed access). It increments the tick counter, trips
// TooManyOperations when a positive limit is exceeded, and then polls
// the optional progress callback.
func incOperations(ctx *Context, pos token.Position) error {
	ctx.State.Operations++
	if ctx.State.Config.MaxOperations > 0 && ctx.State.Operations > ctx.State.Config.MaxOperations {
		return errTooManyOperations(pos)
	}
	if ctx.State.Progress != nil && !ctx.State.Progress(ctx.State.Operations) {
		return errTerminated(pos)
	}
	return nil
}

// checkDataSize is the size governor: run on every statement
// and expression result. Values of shapes the governor doesn't cap
// (bool, int, float, char, unit, FnPtr, variant) bypass the calculation
// entirely; Value.Size reports that via its capped return.
func checkDataSize(ctx *Context, v dynamic.Value, pos token.Position) error {
	cfg := ctx.State.Config
	if cfg.MaxStringSize <= 0 && cfg.MaxArraySize <= 0 && cfg.MaxMapSize <= 0 {
		return nil
	}
	capped, n := v.Size()
	if !capped {
		return nil
	}
	switch v.Kind() {
	case dynamic.KindStr:
		if cfg.MaxStringSize > 0 && n > cfg.MaxStringSize {
			return errDataTooLarge("Size of string", cfg.MaxStringSize, n, pos)
		}
	case dynamic.KindArray:
		if cfg.MaxArraySize > 0 && n > cfg.MaxArraySize {
			return errDataTooLarge("Size of array", cfg.MaxArraySize, n, pos)
		}
	case dynamic.KindMap:
		if cfg.MaxMapSize > 0 && n > cfg.MaxMapSize {
			return errDataTooLarge("Size of map", cfg.MaxMapSize, n, pos)
		}
	}
	return nil
}

// checkCallStackDepth is the call-stack governor: evalFnCall calls it
// before every dispatch, comparing State.CallDepth against
// MaxCallStackDepth. This package reads CallDepth but never changes it.
func checkCallStackDepth(ctx *Context, pos token.Position) error {
	if ctx.State.Config.MaxCallStackDepth > 0 && ctx.State.CallDepth >= ctx.State.Config.MaxCallStackDepth {
		return &Error{Kind: FunctionNotFound, Name: "<stack overflow>", Pos: pos}
	}
	return nil
}

// checkModuleLimit is the module governor: import fails
// TooManyModules when the loaded-module count has already
// reached MaxModules.
func checkModuleLimit(ctx *Context, pos token.Position) error {
	if ctx.State.Config.MaxModules > 0 && ctx.State.Modules >= ctx.State.Config.MaxModules {
		return errTooManyModules(pos)
	}
	return nil
}
