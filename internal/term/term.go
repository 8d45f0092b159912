// Package term implements the expression language: variable
// identifiers tagged with a temporal index, and the typed Term tree
// built over them.
package term

import "github.com/kandrei/mikino/internal/value"

// VarId is an opaque identifier drawn from the finite set of variables
// a System declares. It carries its declared type and its declaration
// index, so callers can iterate variables in the order they were
// declared without keeping a side table.
type VarId struct {
	name  string
	typ   value.Type
	index int
}

// NewVarId constructs a VarId. Callers normally go through
// system.Builder.Declare rather than calling this directly, which is
// what assigns a stable, insertion-order index.
func NewVarId(name string, typ value.Type, index int) VarId {
	return VarId{name: name, typ: typ, index: index}
}

func (v VarId) Name() string      { return v.name }
func (v VarId) Type() value.Type  { return v.typ }
func (v VarId) Index() int        { return v.index }
func (v VarId) String() string    { return v.name }

// Temporal distinguishes a current-state reference from a next-state
// ("primed") reference to the same variable.
type Temporal int

const (
	Current Temporal = iota
	Next
)

func (t Temporal) String() string {
	if t == Next {
		return "next"
	}
	return "current"
}

// TemporalVar is a VarId tagged with Current or Next. Only the
// transition relation may legally contain a Next reference; the type
// checker enforces that, not this type.
type TemporalVar struct {
	Var      VarId
	Temporal Temporal
}

func (tv TemporalVar) Type() value.Type { return tv.Var.Type() }

func (tv TemporalVar) String() string {
	if tv.Temporal == Next {
		return "'" + tv.Var.Name()
	}
	return tv.Var.Name()
}
