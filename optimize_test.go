package scalarfl

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestOptimizeFoldsPureConstantSubtrees(t *testing.T) {
	root, err := parseExpression("1 + 2 * 3", nil, DefaultConfig())
	require.NoError(t, err)

	folded := optimize(root)
	require.Equal(t, KindConstant, folded.kind)
	require.EqualValues(t, 7, folded.value)
}

func TestOptimizeLeavesVariablesUntouched(t *testing.T) {
	var x Scalar = 4
	root, err := parseExpression("x + 1", lookupTable{Var("x", &x)}, DefaultConfig())
	require.NoError(t, err)

	folded := optimize(root)
	require.NotEqual(t, KindConstant, folded.kind)
}

func TestOptimizeIsIdempotent(t *testing.T) {
	root, err := parseExpression("pi * 2 + sqrt(9)", nil, DefaultConfig())
	require.NoError(t, err)

	once := optimize(root)
	require.Equal(t, KindConstant, once.kind)
	require.EqualValues(t, math.Pi*2+3, once.value)

	twice := optimize(once)
	require.Equal(t, once.kind, twice.kind)
	require.Equal(t, once.value, twice.value)
}

func TestOptimizeKeepsImpureCallsEvenOverConstants(t *testing.T) {
	impure := &Function{Name: "counter", Kind: KindFunction0, Fn: Func0(func() Scalar { return 1 })}
	root := newCall(impure, nil, nil)

	folded := optimize(root)
	require.Equal(t, root.kind, folded.kind)
	require.Same(t, impure, folded.fn)
}
