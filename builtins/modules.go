package builtins

import (
	"fmt"

	"github.com/emberlang/ember/eval"
	"github.com/emberlang/ember/pkg/dynamic"
	"github.com/emberlang/ember/pkg/token"
)

// StaticModule is a Module backed by in-memory maps, useful for hosts
// that expose a fixed set of native functions/constants/sub-modules
// without a real module system.
type StaticModule struct {
	fns     map[uint64]eval.Function
	vars    map[uint64]dynamic.Value
	subMods map[string]eval.Module
}

// NewStaticModule returns an empty module ready for registration.
func NewStaticModule() *StaticModule {
	return &StaticModule{
		fns:     map[uint64]eval.Function{},
		vars:    map[uint64]dynamic.Value{},
		subMods: map[string]eval.Module{},
	}
}

func (m *StaticModule) RegisterFn(hash uint64, fn eval.Function)      { m.fns[hash] = fn }
func (m *StaticModule) RegisterVar(hash uint64, v dynamic.Value)      { m.vars[hash] = v }
func (m *StaticModule) RegisterSub(name string, sub eval.Module)      { m.subMods[name] = sub }

func (m *StaticModule) GetFn(hash uint64) (eval.Function, bool) {
	fn, ok := m.fns[hash]
	return fn, ok
}

func (m *StaticModule) GetQualifiedVar(hash uint64) (dynamic.Value, bool) {
	v, ok := m.vars[hash]
	return v, ok
}

func (m *StaticModule) SubModules() map[string]eval.Module { return m.subMods }

// StaticModuleResolver resolves import paths against a fixed, host
// populated registry. It does no path resolution, caching, or script
// compilation of its own -- those are a richer module system's job.
type StaticModuleResolver struct {
	modules map[string]eval.Module
}

// NewStaticModuleResolver returns a resolver with no modules registered.
func NewStaticModuleResolver() *StaticModuleResolver {
	return &StaticModuleResolver{modules: map[string]eval.Module{}}
}

// Register associates an import path with a Module.
func (r *StaticModuleResolver) Register(path string, m eval.Module) {
	r.modules[path] = m
}

func (r *StaticModuleResolver) Resolve(ctx *eval.Context, path string, pos token.Position) (eval.Module, error) {
	m, ok := r.modules[path]
	if !ok {
		return nil, fmt.Errorf("module not found: %q (%s)", path, pos)
	}
	return m, nil
}
