package engine

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kandrei/mikino/internal/smtsolver"
	"github.com/kandrei/mikino/internal/system"
	"github.com/kandrei/mikino/internal/term"
	"github.com/kandrei/mikino/internal/typecheck"
	"github.com/kandrei/mikino/internal/value"
)

// counterBuilder builds the S1/S2-shaped system: cnt: int, inc: bool,
// trans 'cnt = if inc then cnt+1 else cnt, with a caller-supplied
// init predicate and candidate.
func counterBuilder(init func(cnt term.VarId) *term.Term, candName string, candBody func(cnt term.VarId) *term.Term) *system.System {
	b := system.NewBuilder()
	cnt := b.Declare("cnt", value.Int)
	inc := b.Declare("inc", value.Bool)
	b.SetInit(init(cnt))
	b.SetTrans(term.Eq(
		term.NextRef(cnt),
		term.IfThenElse(term.Cur(inc), term.Add(term.Cur(cnt), term.ConstTerm(value.NewIntFromInt64(1))), term.Cur(cnt)),
	))
	b.AddCandidate(candName, candBody(cnt))
	sys, err := typecheck.Check(b)
	if err != nil {
		panic(err)
	}
	return sys
}

func intGe0(cnt term.VarId) *term.Term {
	return term.Ge(term.Cur(cnt), term.ConstTerm(value.NewIntFromInt64(0)))
}

func intEq0(cnt term.VarId) *term.Term {
	return term.Eq(term.Cur(cnt), term.ConstTerm(value.NewIntFromInt64(0)))
}

// S1: safe counter, proved by induction alone.
func TestS1SafeCounterIsProved(t *testing.T) {
	sys := counterBuilder(intGe0, "non_negative", intGe0)

	ind := smtsolver.NewFake(smtsolver.ScriptedCheck{Result: smtsolver.Unsat}, smtsolver.ScriptedCheck{Result: smtsolver.Unsat})
	bmcDriver := smtsolver.NewFake()

	results, err := RunWithDrivers(sys, Config{}, bmcDriver, ind)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, system.Proved, results[0].Status.Kind)
	assert.Equal(t, 1, results[0].Status.Depth)
}

// S2: reachable 7, falsified by BMC with an 8-state trace.
func TestS2Reachable7IsFalsifiedWithTrace(t *testing.T) {
	sys := counterBuilder(intEq0, "ne7", func(cnt term.VarId) *term.Term {
		return term.Neq(term.Cur(cnt), term.ConstTerm(value.NewIntFromInt64(7)))
	})

	ind := smtsolver.NewFake(
		smtsolver.ScriptedCheck{Result: smtsolver.Unsat},
		smtsolver.ScriptedCheck{Result: smtsolver.Sat},
	)

	checks := make([]smtsolver.ScriptedCheck, 8)
	for k := 0; k < 7; k++ {
		checks[k] = smtsolver.ScriptedCheck{Result: smtsolver.Unsat}
	}
	model := map[string]value.Value{}
	for k := 0; k <= 7; k++ {
		model[fmt.Sprintf("cnt@%d", k)] = value.NewIntFromInt64(int64(k))
		model[fmt.Sprintf("inc@%d", k)] = value.NewBool(true)
	}
	checks[7] = smtsolver.ScriptedCheck{Result: smtsolver.Sat, Model: model}
	bmcDriver := smtsolver.NewFake(checks...)

	results, err := RunWithDrivers(sys, Config{}, bmcDriver, ind)
	require.NoError(t, err)
	require.Len(t, results, 1)
	require.Equal(t, system.Falsified, results[0].Status.Kind)
	require.Len(t, results[0].Status.Trace, 8)
	for k := 0; k <= 7; k++ {
		state := results[0].Status.Trace[k]
		for v, val := range state {
			if v.Name() == "cnt" {
				assert.Equal(t, value.NewIntFromInt64(int64(k)), val)
			}
		}
	}
}

// S3: false at init, falsified with a 1-state trace, caught by the
// induction base case without ever reaching BMC.
func TestS3FalseAtInitIsFalsifiedAtBaseCase(t *testing.T) {
	b := system.NewBuilder()
	x := b.Declare("x", value.Int)
	b.SetInit(term.Eq(term.Cur(x), term.ConstTerm(value.NewIntFromInt64(5))))
	b.SetTrans(term.Eq(term.NextRef(x), term.Cur(x)))
	b.AddCandidate("c", term.Lt(term.Cur(x), term.ConstTerm(value.NewIntFromInt64(5))))
	sys, err := typecheck.Check(b)
	require.NoError(t, err)

	ind := smtsolver.NewFake(smtsolver.ScriptedCheck{Result: smtsolver.Sat, Model: map[string]value.Value{
		"x@0": value.NewIntFromInt64(5),
	}})
	bmcDriver := smtsolver.NewFake()

	results, err := RunWithDrivers(sys, Config{}, bmcDriver, ind)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, system.Falsified, results[0].Status.Kind)
	require.Len(t, results[0].Status.Trace, 1)
	for v, val := range results[0].Status.Trace[0] {
		assert.Equal(t, "x", v.Name())
		assert.Equal(t, value.NewIntFromInt64(5), val)
	}
}

// S4: rational exactness, falsified with an exact-fraction trace.
func TestS4RationalExactnessPreservesFractions(t *testing.T) {
	b := system.NewBuilder()
	r := b.Declare("r", value.Rat)
	b.SetInit(term.Eq(term.Cur(r), term.ConstTerm(value.NewRatFromFrac(1, 3))))
	b.SetTrans(term.Eq(term.NextRef(r), term.Add(term.Cur(r), term.ConstTerm(value.NewRatFromFrac(1, 3)))))
	b.AddCandidate("never_one", term.Neq(term.Cur(r), term.ConstTerm(value.NewRatFromFrac(1, 1))))
	sys, err := typecheck.Check(b)
	require.NoError(t, err)

	ind := smtsolver.NewFake(
		smtsolver.ScriptedCheck{Result: smtsolver.Unsat},
		smtsolver.ScriptedCheck{Result: smtsolver.Sat},
	)
	bmcDriver := smtsolver.NewFake(
		smtsolver.ScriptedCheck{Result: smtsolver.Unsat},
		smtsolver.ScriptedCheck{Result: smtsolver.Unsat},
		smtsolver.ScriptedCheck{Result: smtsolver.Sat, Model: map[string]value.Value{
			"r@0": value.NewRatFromFrac(1, 3),
			"r@1": value.NewRatFromFrac(2, 3),
			"r@2": value.NewRatFromFrac(1, 1),
		}},
	)

	results, err := RunWithDrivers(sys, Config{}, bmcDriver, ind)
	require.NoError(t, err)
	require.Len(t, results, 1)
	require.Equal(t, system.Falsified, results[0].Status.Kind)
	require.Len(t, results[0].Status.Trace, 3)
	expected := []value.Value{value.NewRatFromFrac(1, 3), value.NewRatFromFrac(2, 3), value.NewRatFromFrac(1, 1)}
	for k, state := range results[0].Status.Trace {
		for v, val := range state {
			assert.Equal(t, "r", v.Name())
			assert.True(t, expected[k].Equal(val))
		}
	}
}

// S5: not 1-inductive but safe within bound; Unknown with the
// reached depth and no trace.
func TestS5UnknownWithinBoundHasNoTrace(t *testing.T) {
	sys := counterBuilder(intGe0, "non_negative", intGe0)

	ind := smtsolver.NewFake(
		smtsolver.ScriptedCheck{Result: smtsolver.Unsat},
		smtsolver.ScriptedCheck{Result: smtsolver.Sat, Model: map[string]value.Value{}},
	)
	bmcDriver := smtsolver.NewFake(
		smtsolver.ScriptedCheck{Result: smtsolver.Unsat},
		smtsolver.ScriptedCheck{Result: smtsolver.Unsat},
	)

	depth := 1
	results, err := RunWithDrivers(sys, Config{MaxBMCDepth: &depth}, bmcDriver, ind)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, system.Unknown, results[0].Status.Kind)
	assert.True(t, results[0].Status.Explored)
	assert.Equal(t, 1, results[0].Status.Depth)
	assert.Nil(t, results[0].Status.Trace)
}

// S6: type error, surfaced before any solver is spawned.
func TestS6NextInCandidateIsTypeError(t *testing.T) {
	b := system.NewBuilder()
	v := b.Declare("v", value.Bool)
	b.SetInit(term.Cur(v))
	b.SetTrans(term.Iff(term.NextRef(v), term.Cur(v)))
	b.AddCandidate("bad", term.NextRef(v))

	_, err := typecheck.Check(b)
	require.Error(t, err)
}

func TestSkippingBothPhasesIsAConfigError(t *testing.T) {
	sys := counterBuilder(intGe0, "non_negative", intGe0)
	bmcDriver := smtsolver.NewFake()
	ind := smtsolver.NewFake()

	_, err := RunWithDrivers(sys, Config{SkipInduction: true, SkipBMC: true}, bmcDriver, ind)
	require.Error(t, err)
	var cfgErr *ConfigError
	assert.ErrorAs(t, err, &cfgErr)
}

// With SkipBMC set, a candidate that induction leaves live is reported
// Unknown with Explored false, distinct from actually having reached
// BMC depth 0.
func TestSkippingBMCLeavesUnresolvedCandidateUnexplored(t *testing.T) {
	sys := counterBuilder(intGe0, "non_negative", intGe0)

	ind := smtsolver.NewFake(
		smtsolver.ScriptedCheck{Result: smtsolver.Unsat},
		smtsolver.ScriptedCheck{Result: smtsolver.Sat, Model: map[string]value.Value{}},
	)
	bmcDriver := smtsolver.NewFake()

	results, err := RunWithDrivers(sys, Config{SkipBMC: true}, bmcDriver, ind)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, system.Unknown, results[0].Status.Kind)
	assert.False(t, results[0].Status.Explored)
	assert.Nil(t, results[0].Status.Trace)
}

// TestMaxBMCDepthZeroIsExploredNotSkipped distinguishes "BMC ran and
// only checked depth 0" from "BMC never ran at all": both would
// otherwise report Depth == 0.
func TestMaxBMCDepthZeroIsExploredNotSkipped(t *testing.T) {
	sys := counterBuilder(intGe0, "non_negative", intGe0)

	ind := smtsolver.NewFake(
		smtsolver.ScriptedCheck{Result: smtsolver.Unsat},
		smtsolver.ScriptedCheck{Result: smtsolver.Sat, Model: map[string]value.Value{}},
	)
	bmcDriver := smtsolver.NewFake(
		smtsolver.ScriptedCheck{Result: smtsolver.Unsat},
	)

	depth := 0
	results, err := RunWithDrivers(sys, Config{MaxBMCDepth: &depth}, bmcDriver, ind)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, system.Unknown, results[0].Status.Kind)
	assert.True(t, results[0].Status.Explored)
	assert.Equal(t, 0, results[0].Status.Depth)
}
