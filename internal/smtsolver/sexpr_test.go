package smtsolver

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadBalancedAtom(t *testing.T) {
	s, rest, err := readBalanced("sat\n")
	require.NoError(t, err)
	assert.Equal(t, "sat", s.atom)
	assert.Equal(t, "\n", rest)
}

func TestReadBalancedNestedList(t *testing.T) {
	s, _, err := readBalanced("(/ 1 3)")
	require.NoError(t, err)
	require.False(t, s.isAtom())
	assert.Equal(t, "(/ 1 3)", s.String())
}

func TestModelValuesExtractsDefineFuns(t *testing.T) {
	root, _, err := readBalanced(`(model
	  (define-fun cnt@0 () Int 0)
	  (define-fun inc@0 () Bool true)
	  (define-fun r@0 () Real (/ 1 3))
	)`)
	require.NoError(t, err)

	vals := modelValues(root)
	assert.Equal(t, "0", vals["cnt@0"])
	assert.Equal(t, "true", vals["inc@0"])
	assert.Equal(t, "(/ 1 3)", vals["r@0"])
}

func TestModelValuesToleratesMissingModelWrapper(t *testing.T) {
	root, _, err := readBalanced(`((define-fun x@0 () Int 5))`)
	require.NoError(t, err)

	vals := modelValues(root)
	assert.Equal(t, "5", vals["x@0"])
}
