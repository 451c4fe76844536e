package eval

import (
	"github.com/emberlang/ember/pkg/ast"
	"github.com/emberlang/ember/pkg/dynamic"
	"github.com/emberlang/ember/pkg/token"
)

// EntryType distinguishes a plain variable slot from a constant one.
// Constant entries reject assignment.
type EntryType uint8

const (
	Normal EntryType = iota
	Constant
)

// Entry is one named scope slot. Entries hold a pointer indirection
// (Value is stored in the Entry itself, and Entry is always referenced
// through its *Entry pointer) so that a Target::Ref taken from a slot
// stays valid across later Pushes: appending to Scope.entries can
// reallocate the backing slice, but it never moves the *Entry values
// already handed out.
type Entry struct {
	Name  string
	Type  EntryType
	Alias string // set by `export ... as alias`; "" otherwise
	Value dynamic.Value
}

// Scope is the ordered stack of named slots threaded through
// evaluation. Block exit truncates it back to
// a remembered length; entries are never removed out of order.
type Scope struct {
	entries []*Entry
}

// NewScope returns an empty top-level scope, normally created by the
// host once per top-level call.
func NewScope() *Scope { return &Scope{} }

// Len returns the current number of live slots.
func (s *Scope) Len() int { return len(s.entries) }

// Truncate restores the scope to a previously remembered length (LIFO
// block exit). n must not exceed the current length.
func (s *Scope) Truncate(n int) {
	s.entries = s.entries[:n]
}

// Push appends a new slot and returns its index.
func (s *Scope) Push(name string, typ EntryType, v dynamic.Value) int {
	s.entries = append(s.entries, &Entry{Name: name, Type: typ, Value: v})
	return len(s.entries) - 1
}

// At returns the entry at absolute index i.
func (s *Scope) At(i int) *Entry { return s.entries[i] }

// Search resolves a Variable expression to its backing Entry, honoring
// the cached-offset optimization contract: when
// alwaysSearch is false and the expression carries a cached offset k,
// the slot is scope[len-k] (1-based from the top); otherwise a reverse
// linear search by name is performed.
func (s *Scope) Search(v *ast.Variable, alwaysSearch bool) (*Entry, error) {
	if !alwaysSearch && v.HasCachedOffset && v.CachedOffset > 0 {
		if v.CachedOffset > len(s.entries) {
			return nil, errVariableNotFound(v.Name, v.Pos())
		}
		return s.entries[len(s.entries)-v.CachedOffset], nil
	}
	for i := len(s.entries) - 1; i >= 0; i-- {
		if s.entries[i].Name == v.Name {
			return s.entries[i], nil
		}
	}
	return nil, errVariableNotFound(v.Name, v.Pos())
}

// SearchByName performs the fallback reverse linear search directly,
// used by export resolution and anywhere a raw name (not a Variable
// node) needs to be resolved.
func (s *Scope) SearchByName(name string) (*Entry, bool) {
	for i := len(s.entries) - 1; i >= 0; i-- {
		if s.entries[i].Name == name {
			return s.entries[i], true
		}
	}
	return nil, false
}

// markExported tags the slot for `name` with the export Alias, or
// returns VariableNotFound if no such slot exists.
func (s *Scope) markExported(name, alias string, pos token.Position) error {
	e, ok := s.SearchByName(name)
	if !ok {
		return errVariableNotFound(name, pos)
	}
	if alias == "" {
		alias = name
	}
	e.Alias = alias
	return nil
}
