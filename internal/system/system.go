// Package system holds the System, Trace, State and CandidateStatus
// value types, and a Builder for constructing a System with stable,
// insertion-ordered variable declarations.
package system

import (
	"github.com/kandrei/mikino/internal/term"
	"github.com/kandrei/mikino/internal/value"
)

// Candidate is a named boolean predicate conjectured to be an
// invariant of the system.
type Candidate struct {
	Name string
	Body *term.Term
}

// System is the immutable, type-checked (produced from a Builder by
// internal/typecheck.Check) description of a transition system: its
// declared variables in insertion order, its initial predicate, its
// transition relation, and its ordered, uniquely-named candidates.
type System struct {
	vars       []term.VarId
	byName     map[string]term.VarId
	Init       *term.Term
	Trans      *term.Term
	Candidates []Candidate
}

// Vars returns the declared variables in declaration order.
func (s *System) Vars() []term.VarId { return s.vars }

// Lookup resolves a variable by name, as declared.
func (s *System) Lookup(name string) (term.VarId, bool) {
	v, ok := s.byName[name]
	return v, ok
}

// Builder accumulates variable declarations and the init/trans/candidate
// terms before a System is type-checked into existence.
type Builder struct {
	vars       []term.VarId
	byName     map[string]term.VarId
	init       *term.Term
	trans      *term.Term
	candidates []Candidate
}

func NewBuilder() *Builder {
	return &Builder{byName: make(map[string]term.VarId)}
}

// Declare registers a new variable. Panics on a duplicate name; this
// mirrors a programming error in the boundary layer constructing the
// System, not a user-facing TypeError (those are reserved for
// mistakes within term bodies, which the type checker reports with
// full context).
func (b *Builder) Declare(name string, typ value.Type) term.VarId {
	if _, exists := b.byName[name]; exists {
		panic("system: duplicate variable declaration " + name)
	}
	v := term.NewVarId(name, typ, len(b.vars))
	b.vars = append(b.vars, v)
	b.byName[name] = v
	return v
}

func (b *Builder) SetInit(t *term.Term)  { b.init = t }
func (b *Builder) SetTrans(t *term.Term) { b.trans = t }

func (b *Builder) AddCandidate(name string, body *term.Term) {
	b.candidates = append(b.candidates, Candidate{Name: name, Body: body})
}

// Raw returns the accumulated, not-yet-checked system. Used by
// internal/typecheck, which is the only caller entitled to construct a
// System value from it.
func (b *Builder) Raw() (vars []term.VarId, byName map[string]term.VarId, init, trans *term.Term, candidates []Candidate) {
	return b.vars, b.byName, b.init, b.trans, b.candidates
}

// New is used by internal/typecheck once it has validated a Builder's
// contents, to produce the immutable System value.
func New(vars []term.VarId, byName map[string]term.VarId, init, trans *term.Term, candidates []Candidate) *System {
	return &System{vars: vars, byName: byName, Init: init, Trans: trans, Candidates: candidates}
}
