package eval

import "github.com/emberlang/ember/pkg/dynamic"

// Module is opaque to the evaluator except for three capabilities:
// looking up a function by precomputed hash, looking up a qualified
// variable by hash, and iterating its sub-module index. Module loading
// itself (the module resolver) is a host concern, outside this package.
type Module interface {
	GetFn(hash uint64) (Function, bool)
	GetQualifiedVar(hash uint64) (dynamic.Value, bool)
	SubModules() map[string]Module
}

// ImportEntry is one `(alias, module)` pair pushed by an `import`
// statement.
type ImportEntry struct {
	Alias  string
	Module Module
}

// Imports is the ordered stack of import entries introduced within the
// currently-executing block. Like Scope, it is
// truncated (never popped out of order) on block exit.
type Imports struct {
	entries []ImportEntry
}

// NewImports returns an empty import stack.
func NewImports() *Imports { return &Imports{} }

func (im *Imports) Len() int { return len(im.entries) }

func (im *Imports) Truncate(n int) { im.entries = im.entries[:n] }

func (im *Imports) Push(alias string, m Module) {
	im.entries = append(im.entries, ImportEntry{Alias: alias, Module: m})
}

// Search resolves an import alias to its Module, honoring the same
// cached-offset-then-reverse-linear-search contract as Scope.Search.
func (im *Imports) Search(alias string, cachedOffset int, hasCached, alwaysSearch bool) (Module, bool) {
	if !alwaysSearch && hasCached && cachedOffset > 0 {
		if cachedOffset > len(im.entries) {
			return nil, false
		}
		return im.entries[len(im.entries)-cachedOffset].Module, true
	}
	for i := len(im.entries) - 1; i >= 0; i-- {
		if im.entries[i].Alias == alias {
			return im.entries[i].Module, true
		}
	}
	return nil, false
}
