package bmc

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kandrei/mikino/internal/smtsolver"
	"github.com/kandrei/mikino/internal/system"
	"github.com/kandrei/mikino/internal/term"
	"github.com/kandrei/mikino/internal/value"
)

// counterSystem builds the S1/S2-shaped system: cnt: int, inc: bool,
// trans 'cnt = if inc then cnt+1 else cnt.
func counterSystem(initZero bool) ([]term.VarId, *term.Term, *term.Term) {
	cnt := term.NewVarId("cnt", value.Int, 0)
	inc := term.NewVarId("inc", value.Bool, 1)
	var init *term.Term
	if initZero {
		init = term.Eq(term.Cur(cnt), term.ConstTerm(value.NewIntFromInt64(0)))
	} else {
		init = term.Ge(term.Cur(cnt), term.ConstTerm(value.NewIntFromInt64(0)))
	}
	trans := term.Eq(
		term.NextRef(cnt),
		term.IfThenElse(term.Cur(inc), term.Add(term.Cur(cnt), term.ConstTerm(value.NewIntFromInt64(1))), term.Cur(cnt)),
	)
	return []term.VarId{cnt, inc}, init, trans
}

func TestRunnerFindsCounterexampleAtDepth(t *testing.T) {
	vars, init, trans := counterSystem(true)
	fake := smtsolver.NewFake(smtsolver.ScriptedCheck{
		Result: smtsolver.Sat,
		Model: map[string]value.Value{
			"cnt@0": value.NewIntFromInt64(0),
			"inc@0": value.NewBool(true),
		},
	})
	r := NewRunner(fake, vars, init, trans)
	require.NoError(t, r.Advance())

	ne7 := system.Candidate{Name: "ne7", Body: term.Neq(term.Cur(vars[0]), term.ConstTerm(value.NewIntFromInt64(7)))}
	outcome, trace, err := r.Check(ne7)
	require.NoError(t, err)
	assert.Equal(t, Falsified, outcome)
	require.Len(t, trace, 1)
	assert.Equal(t, value.NewIntFromInt64(0), trace[0][vars[0]])
	assert.Equal(t, 1, fake.Pushes)
	assert.Equal(t, 1, fake.Pops)
}

func TestRunnerLeavesCandidateLiveOnUnsat(t *testing.T) {
	vars, init, trans := counterSystem(false)
	fake := smtsolver.NewFake(smtsolver.ScriptedCheck{Result: smtsolver.Unsat})
	r := NewRunner(fake, vars, init, trans)
	require.NoError(t, r.Advance())

	nonNeg := system.Candidate{Name: "non_negative", Body: term.Ge(term.Cur(vars[0]), term.ConstTerm(value.NewIntFromInt64(0)))}
	outcome, trace, err := r.Check(nonNeg)
	require.NoError(t, err)
	assert.Equal(t, StillLive, outcome)
	assert.Nil(t, trace)
}

func TestRunnerReportsSolverUnknown(t *testing.T) {
	vars, init, trans := counterSystem(false)
	fake := smtsolver.NewFake(smtsolver.ScriptedCheck{Result: smtsolver.SolverUnknown})
	r := NewRunner(fake, vars, init, trans)
	require.NoError(t, r.Advance())

	c := system.Candidate{Name: "c", Body: term.ConstTerm(value.NewBool(true))}
	outcome, _, err := r.Check(c)
	require.NoError(t, err)
	assert.Equal(t, SolverUnknown, outcome)
}

func TestAdvanceAssertsTransChainAfterFirstStep(t *testing.T) {
	vars, init, trans := counterSystem(true)
	fake := smtsolver.NewFake()
	r := NewRunner(fake, vars, init, trans)
	require.NoError(t, r.Advance())
	require.NoError(t, r.Advance())
	assert.Equal(t, 1, r.Depth())
	assert.Equal(t, []string{
		"(= cnt@0 0)",
		"(= cnt@1 (ite inc@0 (+ cnt@0 1) cnt@0))",
	}, fake.Asserts)
}
