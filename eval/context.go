package eval

import "github.com/emberlang/ember/pkg/dynamic"

// Context bundles the five collaborators threaded through every
// recursive evaluation step: Scope, Imports, State, Library, and an
// optional this-binding.
type Context struct {
	Scope    *Scope
	Imports  *Imports
	State    *State
	Library  Library
	Resolver CallResolver
	Modules  ModuleResolver

	// This is the optional mutable receiver binding, present only when
	// the evaluator is entered as a method body. nil outside method context.
	This *dynamic.Value
}

// NewContext assembles a Context for a top-level evaluation. Scope and
// Imports are supplied by the host and persist across calls; State is
// fresh per call.
func NewContext(scope *Scope, imports *Imports, state *State, lib Library, resolver CallResolver, modules ModuleResolver) *Context {
	return &Context{
		Scope:    scope,
		Imports:  imports,
		State:    state,
		Library:  lib,
		Resolver: resolver,
		Modules:  modules,
	}
}

// withThis returns a shallow copy of ctx bound to a new receiver, used
// when entering a method body. The copy shares the same Scope/Imports/
// State/Library/Resolver/Modules pointers -- only This changes.
func (ctx *Context) withThis(this *dynamic.Value) *Context {
	cp := *ctx
	cp.This = this
	return &cp
}

// CustomSyntaxContext is the package handed to a user-registered custom
// syntax callback: it carries the same collaborators as Context plus
// the current call level. It holds no expression handles; the
// construct's expressions reach the callback already evaluated.
type CustomSyntaxContext struct {
	*Context
	Level int
}

// CustomSyntaxFn is a host callback invoked for ast.Custom nodes.
type CustomSyntaxFn func(cctx *CustomSyntaxContext, exprs []dynamic.Value) (dynamic.Value, error)
