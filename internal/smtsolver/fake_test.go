package smtsolver

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kandrei/mikino/internal/value"
)

func TestFakeReplaysScriptedChecksInOrder(t *testing.T) {
	f := NewFake(
		ScriptedCheck{Result: Sat, Model: map[string]value.Value{"x@0": value.NewIntFromInt64(3)}},
		ScriptedCheck{Result: Unsat},
	)
	require.NoError(t, f.Declare("x@0", value.Int))

	res, err := f.CheckSat()
	require.NoError(t, err)
	assert.Equal(t, Sat, res)

	model, err := f.GetModel([]string{"x@0"})
	require.NoError(t, err)
	assert.Equal(t, value.NewIntFromInt64(3), model["x@0"])

	res, err = f.CheckSat()
	require.NoError(t, err)
	assert.Equal(t, Unsat, res)

	_, err = f.CheckSat()
	assert.Error(t, err)
}

func TestFakeRecordsAssertsAndPushPopDepth(t *testing.T) {
	f := NewFake(ScriptedCheck{Result: Unsat})
	require.NoError(t, f.Push())
	require.NoError(t, f.Assert("(= x@0 3)"))
	require.NoError(t, f.Pop())
	assert.Equal(t, []string{"(= x@0 3)"}, f.Asserts)
	assert.Equal(t, 1, f.Pushes)
	assert.Equal(t, 1, f.Pops)

	err := f.Pop()
	assert.Error(t, err)
}

func TestFakeGetModelRejectsUndeclaredName(t *testing.T) {
	f := NewFake(ScriptedCheck{Result: Sat, Model: map[string]value.Value{}})
	_, err := f.CheckSat()
	require.NoError(t, err)

	_, err = f.GetModel([]string{"never@0"})
	assert.Error(t, err)
}
