// Package smtsolver implements a narrow, synchronous interface to an
// SMT solver, plus the subprocess implementation that drives a real
// SMT-LIB-2-compatible binary over a line-oriented text protocol.
//
// The interface is deliberately small enough that an implementer can
// substitute an in-process solver without touching internal/bmc,
// internal/induction, or internal/engine. Process is one
// implementation; Fake (in fake.go) is another, used by this
// repository's own tests.
package smtsolver

import "github.com/kandrei/mikino/internal/value"

// CheckSatResult is the three-valued outcome of a check-sat query.
// Solver transport/protocol failures are reported as a SolverError
// return value instead, never folded into this enum.
type CheckSatResult int

const (
	Sat CheckSatResult = iota
	Unsat
	SolverUnknown
)

func (r CheckSatResult) String() string {
	switch r {
	case Sat:
		return "sat"
	case Unsat:
		return "unsat"
	case SolverUnknown:
		return "unknown"
	default:
		return "invalid"
	}
}

// Driver is the engine's entire contract with an SMT solver. Every
// method blocks until the solver has fully responded; there is no
// concurrency inside a Driver.
type Driver interface {
	// Declare emits a declaration for a solver-level symbol at the
	// given sort. name is expected to already be step-scoped (e.g.
	// "cnt@3"); internal/encode, not this package, owns that naming
	// scheme.
	Declare(name string, typ value.Type) error

	// Assert emits an assertion. sexpr must be a single well-formed
	// SMT-LIB boolean term.
	Assert(sexpr string) error

	// Push opens a new assertion scope.
	Push() error

	// Pop closes the most recently opened scope, discarding every
	// assertion and declaration made since the matching Push.
	Pop() error

	// CheckSat blocks until the solver reports sat, unsat, or unknown.
	CheckSat() (CheckSatResult, error)

	// GetModel is only valid immediately after a Sat result. It
	// returns the model's value for each requested, already-declared
	// name, parsed into a Value of the type it was declared with.
	GetModel(names []string) (map[string]value.Value, error)

	// Reset discards all assertions and declarations, returning the
	// solver to its initial state, without terminating the process.
	Reset() error

	// Shutdown terminates the solver and releases every resource
	// associated with the session. Safe to call more than once; safe
	// to call after any other method has returned an error. Must be
	// terminated on every exit path, including errors and panics.
	Shutdown() error
}
