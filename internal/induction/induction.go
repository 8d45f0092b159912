// Package induction implements 1-induction: for each candidate, a
// base-case query and an inductive-step query, each in its own
// push/pop scope of a shared solver session. The engine only attempts
// 1-induction; multi-step induction is out of scope.
package induction

import (
	"github.com/kandrei/mikino/internal/encode"
	"github.com/kandrei/mikino/internal/smtsolver"
	"github.com/kandrei/mikino/internal/system"
	"github.com/kandrei/mikino/internal/term"
)

// Outcome is the result of one induction query.
type Outcome int

const (
	// NotDischarged means the query did not settle the candidate;
	// it remains live.
	NotDischarged Outcome = iota
	// Inductive means the inductive step held: c ∧ trans ⇒ c'.
	Inductive
	// BaseCaseFalsified means init ∧ ¬c was satisfiable: the
	// candidate is falsified at step 0, same as a depth-0 BMC trace.
	BaseCaseFalsified
	// SolverUnknown means the solver could not decide the query.
	SolverUnknown
)

// Runner drives one induction solver session. Step-0 and step-1
// variables are declared once, at construction, since they do not
// vary per candidate; every query is then fully self-contained inside
// its own push/pop scope.
type Runner struct {
	driver smtsolver.Driver
	vars   []term.VarId
	init   *term.Term
	trans  *term.Term
}

// NewRunner constructs a Runner and declares the step-0/step-1
// variables the base case and inductive step both need. The caller
// retains ownership of driver and is responsible for its Shutdown.
func NewRunner(driver smtsolver.Driver, vars []term.VarId, init, trans *term.Term) (*Runner, error) {
	r := &Runner{driver: driver, vars: vars, init: init, trans: trans}
	for step := 0; step <= 1; step++ {
		for _, v := range vars {
			if err := driver.Declare(encode.VarName(v, step), v.Type()); err != nil {
				return nil, err
			}
		}
	}
	return r, nil
}

// CheckBaseCase asks whether init ∧ ¬c is satisfiable at step 0. A Sat
// result falsifies the candidate at step 0; its Trace is the same
// one-state witness BMC depth 0 would produce.
func (r *Runner) CheckBaseCase(c system.Candidate) (Outcome, system.Trace, error) {
	if err := r.driver.Push(); err != nil {
		return NotDischarged, nil, err
	}
	defer r.driver.Pop()

	if err := r.driver.Assert(encode.Term(r.init, 0)); err != nil {
		return NotDischarged, nil, err
	}
	if err := r.driver.Assert(encode.Negate(encode.Term(c.Body, 0))); err != nil {
		return NotDischarged, nil, err
	}

	res, err := r.driver.CheckSat()
	if err != nil {
		return NotDischarged, nil, err
	}
	switch res {
	case smtsolver.Unsat:
		return NotDischarged, nil, nil
	case smtsolver.SolverUnknown:
		return SolverUnknown, nil, nil
	}

	trace, err := r.extractTrace(0)
	if err != nil {
		return NotDischarged, nil, err
	}
	return BaseCaseFalsified, trace, nil
}

// CheckInductiveStep asks whether c@0 ∧ trans[@0,@1] ∧ ¬c@1 is
// satisfiable, with step 0 left unconstrained by init. Unsat means c
// is inductive; Sat means it is not inductive by itself and is left
// live. The witness here is not a concrete counterexample, since step
// 0 was never constrained by init, so no Trace is returned even on
// Sat.
func (r *Runner) CheckInductiveStep(c system.Candidate) (Outcome, error) {
	if err := r.driver.Push(); err != nil {
		return NotDischarged, err
	}
	defer r.driver.Pop()

	if err := r.driver.Assert(encode.Term(c.Body, 0)); err != nil {
		return NotDischarged, err
	}
	if err := r.driver.Assert(encode.Term(r.trans, 0)); err != nil {
		return NotDischarged, err
	}
	if err := r.driver.Assert(encode.Negate(encode.Term(c.Body, 1))); err != nil {
		return NotDischarged, err
	}

	res, err := r.driver.CheckSat()
	if err != nil {
		return NotDischarged, err
	}
	switch res {
	case smtsolver.Unsat:
		return Inductive, nil
	case smtsolver.SolverUnknown:
		return SolverUnknown, nil
	default:
		return NotDischarged, nil
	}
}

func (r *Runner) extractTrace(k int) (system.Trace, error) {
	names := make([]string, 0, len(r.vars))
	for _, v := range r.vars {
		names = append(names, encode.VarName(v, k))
	}
	model, err := r.driver.GetModel(names)
	if err != nil {
		return nil, err
	}
	state := make(system.State, len(r.vars))
	for _, v := range r.vars {
		state[v] = model[encode.VarName(v, k)]
	}
	return system.Trace{state}, nil
}
