package smtsolver

import (
	"github.com/pkg/errors"

	"github.com/kandrei/mikino/internal/value"
)

// ScriptedCheck is one entry in a Fake's check-sat script: the result
// to hand back, and, if Result is Sat, the model to hand back on the
// immediately following GetModel call.
type ScriptedCheck struct {
	Result CheckSatResult
	Model  map[string]value.Value
}

// Fake is a Driver test double: it speaks the same interface as
// Process but answers check-sat queries from a pre-scripted sequence
// instead of running a real solver. This is exactly the substitution
// the narrow Driver interface exists to permit; internal/bmc,
// internal/induction, and internal/engine use it to test orchestration
// logic deterministically and without spawning a binary.
type Fake struct {
	declared map[string]value.Type
	depth    int
	checks   []ScriptedCheck
	next     int

	// Asserts records every asserted S-expression, in order, across
	// the whole session (including inside push/pop scopes), so tests
	// can assert on what the engine sent without re-deriving it.
	Asserts []string
	Pushes  int
	Pops    int
}

// NewFake constructs a Fake whose CheckSat calls return, in order,
// the given scripted results.
func NewFake(checks ...ScriptedCheck) *Fake {
	return &Fake{declared: make(map[string]value.Type), checks: checks}
}

func (f *Fake) Declare(name string, typ value.Type) error {
	f.declared[name] = typ
	return nil
}

func (f *Fake) Assert(sexpr string) error {
	f.Asserts = append(f.Asserts, sexpr)
	return nil
}

func (f *Fake) Push() error {
	f.depth++
	f.Pushes++
	return nil
}

func (f *Fake) Pop() error {
	if f.depth == 0 {
		return &SolverError{Op: "pop", Err: errors.New("pop without matching push")}
	}
	f.depth--
	f.Pops++
	return nil
}

func (f *Fake) CheckSat() (CheckSatResult, error) {
	if f.next >= len(f.checks) {
		return SolverUnknown, &SolverError{Op: "check-sat", Err: errors.New("fake: script exhausted")}
	}
	r := f.checks[f.next]
	f.next++
	return r.Result, nil
}

func (f *Fake) GetModel(names []string) (map[string]value.Value, error) {
	if f.next == 0 {
		return nil, &SolverError{Op: "get-model", Err: errors.New("fake: get-model before any check-sat")}
	}
	model := f.checks[f.next-1].Model
	out := make(map[string]value.Value, len(names))
	for _, name := range names {
		if _, ok := f.declared[name]; !ok {
			return nil, &SolverError{Op: "get-model", Err: errors.Errorf("%s was never declared", name)}
		}
		v, ok := model[name]
		if !ok {
			return nil, &SolverError{Op: "get-model", Err: errors.Errorf("fake: no scripted value for %s", name)}
		}
		out[name] = v
	}
	return out, nil
}

func (f *Fake) Reset() error {
	f.declared = make(map[string]value.Type)
	f.depth = 0
	f.next = 0
	f.Asserts = nil
	return nil
}

func (f *Fake) Shutdown() error { return nil }
