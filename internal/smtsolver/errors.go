package smtsolver

import "fmt"

// SolverError reports a transport or protocol failure: spawn failure,
// unexpected EOF, a malformed response, a push/pop depth violation,
// anything that is not a legitimate "unknown" verdict from the solver
// itself. It is distinct from SolverUnknown, which is a regular
// CheckSatResult value, not an error.
type SolverError struct {
	Op  string // e.g. "check-sat", "get-model", "spawn"
	Err error
}

func (e *SolverError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("smtsolver: %s failed", e.Op)
	}
	return fmt.Sprintf("smtsolver: %s failed: %v", e.Op, e.Err)
}

func (e *SolverError) Unwrap() error { return e.Err }
