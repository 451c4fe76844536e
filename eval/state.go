package eval

// State holds the per-invocation counters and flags threaded through
// evaluation: scope depth, operation count, loaded-module count, and
// the "force name lookup" bit that the `eval` trap sets. State is
// created fresh per top-level call; it is never shared across
// concurrent evaluations.
type State struct {
	Config Config

	Operations   int64
	Modules      int
	ScopeLevel   int
	AlwaysSearch bool
	CallDepth    int

	// Progress, if non-nil, is polled once per operation-governor tick
	// with the current operation count. Returning false aborts
	// evaluation with Terminated.
	Progress func(operations int64) bool

	// OnDiagnostic, if non-nil, is notified when evaluation takes a
	// semantically-silent branch a host may still want visibility into:
	// a dot-chain write with no setter, a register-index write with no
	// index$set$. These never alter
	// execution -- the value is still returned as if the write
	// succeeded -- they only inform.
	OnDiagnostic func(Diagnostic)
}

// Diagnostic is a non-fatal notice surfaced through State.OnDiagnostic.
// Unlike Error it never aborts evaluation.
type Diagnostic struct {
	Kind    DiagnosticKind
	Message string
}

type DiagnosticKind uint8

const (
	// DiagSilentPropertyWrite fires when a dot-chain write target has a
	// getter but no setter: the computed value is returned but never
	// reaches storage.
	DiagSilentPropertyWrite DiagnosticKind = iota
	// DiagSilentIndexWrite fires when a registered-index write target
	// has a getter but no index$set$.
	DiagSilentIndexWrite
)

func (s *State) emitDiagnostic(kind DiagnosticKind, msg string) {
	if s.OnDiagnostic != nil {
		s.OnDiagnostic(Diagnostic{Kind: kind, Message: msg})
	}
}

// NewState creates a fresh State for one top-level evaluation.
func NewState(cfg Config) *State {
	return &State{Config: cfg}
}

// EnterBlock increments ScopeLevel, returning the previous value so the
// caller can restore it on exit.
func (s *State) EnterBlock() int {
	prev := s.ScopeLevel
	s.ScopeLevel++
	return prev
}

// ExitBlock restores ScopeLevel and clears AlwaysSearch: the `eval`
// trap's effect is scoped to the block it occurred in.
func (s *State) ExitBlock(prevLevel int) {
	s.ScopeLevel = prevLevel
	s.AlwaysSearch = false
}
