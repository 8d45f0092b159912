// Package bmc implements Bounded Model Checking: an incremental
// unrolling loop that searches for a concrete falsifying trace of
// increasing length. A Runner owns exactly one solver session and
// keeps its base assertions (init, the trans chain) unpopped across
// depths and candidates; only the per-candidate negated goal is
// pushed and popped, preserving solver learning across depths.
package bmc

import (
	"github.com/kandrei/mikino/internal/encode"
	"github.com/kandrei/mikino/internal/smtsolver"
	"github.com/kandrei/mikino/internal/system"
	"github.com/kandrei/mikino/internal/term"
)

// Outcome is the result of checking one candidate at one depth.
type Outcome int

const (
	// StillLive means the candidate was not falsified at this depth;
	// the caller should keep trying deeper depths.
	StillLive Outcome = iota
	// Falsified means a counterexample trace was found; see the Trace
	// returned alongside this Outcome.
	Falsified
	// SolverUnknown means the solver returned "unknown" for this
	// query; the candidate is left live.
	SolverUnknown
)

// Runner drives one BMC solver session across increasing depths.
type Runner struct {
	driver smtsolver.Driver
	vars   []term.VarId
	init   *term.Term
	trans  *term.Term
	depth  int // highest step index declared and asserted so far; -1 before the first Advance
}

// NewRunner constructs a Runner. The caller retains ownership of
// driver and is responsible for its Shutdown.
func NewRunner(driver smtsolver.Driver, vars []term.VarId, init, trans *term.Term) *Runner {
	return &Runner{driver: driver, vars: vars, init: init, trans: trans, depth: -1}
}

// Depth reports the highest step index unrolled so far, or -1 if
// Advance has never been called.
func (r *Runner) Depth() int { return r.depth }

// Advance extends the unrolling to the next step: declares that
// step's variables and asserts init[@0] (first call) or
// trans[@(k-1),@k] (subsequent calls). Calls must be made in order,
// one depth at a time.
func (r *Runner) Advance() error {
	k := r.depth + 1
	for _, v := range r.vars {
		if err := r.driver.Declare(encode.VarName(v, k), v.Type()); err != nil {
			return err
		}
	}
	if k == 0 {
		if err := r.driver.Assert(encode.Term(r.init, 0)); err != nil {
			return err
		}
	} else {
		if err := r.driver.Assert(encode.Term(r.trans, k-1)); err != nil {
			return err
		}
	}
	r.depth = k
	return nil
}

// Check runs the per-candidate falsification query at the current
// depth: push, assert the negated candidate, check-sat, pop. It must
// be called only after at least one Advance.
func (r *Runner) Check(c system.Candidate) (Outcome, system.Trace, error) {
	k := r.depth
	if err := r.driver.Push(); err != nil {
		return StillLive, nil, err
	}
	defer r.driver.Pop()

	goal := encode.Negate(encode.Term(c.Body, k))
	if err := r.driver.Assert(goal); err != nil {
		return StillLive, nil, err
	}

	res, err := r.driver.CheckSat()
	if err != nil {
		return StillLive, nil, err
	}
	switch res {
	case smtsolver.Unsat:
		return StillLive, nil, nil
	case smtsolver.SolverUnknown:
		return SolverUnknown, nil, nil
	}

	trace, err := r.extractTrace(k)
	if err != nil {
		return StillLive, nil, err
	}
	return Falsified, trace, nil
}

// extractTrace reads v@0..v@k for every declared variable from the
// most recent Sat model and reassembles it into a per-step Trace.
func (r *Runner) extractTrace(k int) (system.Trace, error) {
	names := make([]string, 0, len(r.vars)*(k+1))
	for step := 0; step <= k; step++ {
		for _, v := range r.vars {
			names = append(names, encode.VarName(v, step))
		}
	}
	model, err := r.driver.GetModel(names)
	if err != nil {
		return nil, err
	}

	trace := make(system.Trace, k+1)
	for step := 0; step <= k; step++ {
		state := make(system.State, len(r.vars))
		for _, v := range r.vars {
			state[v] = model[encode.VarName(v, step)]
		}
		trace[step] = state
	}
	return trace, nil
}
