package scalarfl

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestInterpret(t *testing.T) {
	t.Run("arithmetic precedence", func(t *testing.T) {
		require.EqualValues(t, 7, Interpret("1 + 2 * 3"))
	})
	t.Run("inverse trig round trip", func(t *testing.T) {
		require.InDelta(t, -0.5, Interpret("asin(sin(-0.5))"), 1e-9)
	})
	t.Run("unresolved identifier yields nil handle and positive offset", func(t *testing.T) {
		c, err := CompileExpression("1 + bogus", nil, DefaultConfig())
		require.Error(t, err)
		require.Nil(t, c)
		var ce *CompileError
		require.ErrorAs(t, err, &ce)
		require.Greater(t, ce.Position, 0)
	})
}

func TestPowerAssociativity(t *testing.T) {
	x, y := 2.0, 3.0
	bindings := []Binding{Var("x", &x), Var("y", &y)}

	t.Run("x*y^3 is unambiguous either way", func(t *testing.T) {
		for _, cfg := range []EngineConfig{{}, {PowRightAssociative: true}} {
			c, err := CompileExpression("x*y^3", bindings, cfg)
			require.NoError(t, err)
			require.EqualValues(t, 54, c.Evaluate())
		}
	})
	t.Run("2^3^4 left-assoc", func(t *testing.T) {
		c, err := CompileExpression("2^3^4", nil, DefaultConfig())
		require.NoError(t, err)
		require.EqualValues(t, 4096, c.Evaluate())
	})
	t.Run("2^3^4 right-assoc", func(t *testing.T) {
		c, err := CompileExpression("2^3^4", nil, EngineConfig{PowRightAssociative: true})
		require.NoError(t, err)
		require.EqualValues(t, math.Pow(2, 81), c.Evaluate())
	})
	t.Run("right-assoc reapplies a leading unary wrapper over the whole chain", func(t *testing.T) {
		c, err := CompileExpression("-2^2", nil, EngineConfig{PowRightAssociative: true})
		require.NoError(t, err)
		require.EqualValues(t, -4, c.Evaluate())

		c, err = CompileExpression("-2^2", nil, DefaultConfig())
		require.NoError(t, err)
		require.EqualValues(t, 4, c.Evaluate())
	})
}

func TestDynamicDispatch(t *testing.T) {
	x := 2.0
	sum0 := Function0("sum0", func() Scalar { return 6 })
	sum3 := Function3("sum3", func(a, b, c Scalar) Scalar { return a + b + c })
	bindings := []Binding{sum0, sum3, Var("x", &x)}

	c, err := CompileExpression("sum3(sum0, x, 2)", bindings, DefaultConfig())
	require.NoError(t, err)
	require.EqualValues(t, 10, c.Evaluate())
}

func TestClosureOverContext(t *testing.T) {
	cellValues := []Scalar{5, 6, 7, 8, 9}
	cell := Closure1("cell", func(ctx any, i Scalar) Scalar {
		values := ctx.(*[]Scalar)
		return (*values)[int(i)]
	}, &cellValues)

	c, err := CompileExpression("cell 1 * cell 3 + cell 4", []Binding{cell}, DefaultConfig())
	require.NoError(t, err)
	require.EqualValues(t, 57, c.Evaluate())
}

func TestClosureContextNamesAreDisambiguated(t *testing.T) {
	// Two distinct contexts interned under the same callable name must not
	// collide in the name table, per DESIGN NOTES §9.
	table := &AddressTable{}
	ctxA, ctxB := "a", "b"

	idxA := table.internContext(&ctxA, "f")
	idxB := table.internContext(&ctxB, "f")

	require.NotEqual(t, idxA, idxB)
	require.NotEqual(t, table.Names[idxA], table.Names[idxB])
}

func TestNaNAndInfPropagation(t *testing.T) {
	t.Run("NaN", func(t *testing.T) {
		cases := []string{"0/0", "fac(-1)", "ncr(2, 5)"}
		for _, expr := range cases {
			v := Interpret(expr)
			require.True(t, IsNaN(v), "expr %q should be NaN, got %v", expr, v)
		}
	})
	t.Run("Inf", func(t *testing.T) {
		cases := []string{"1/0", "pow(2, 1e7)", "fac(300)"}
		for _, expr := range cases {
			v := Interpret(expr)
			require.True(t, math.IsInf(v, 1), "expr %q should be +Inf, got %v", expr, v)
		}
	})
}

func TestImageRelocation(t *testing.T) {
	c, err := CompileExpression("1 + 2 * 3 - sqrt(16)", nil, DefaultConfig())
	require.NoError(t, err)

	relocated := make(Image, len(c.Image()))
	copy(relocated, c.Image())

	require.EqualValues(t, c.Evaluate(), Evaluate(relocated, c.AddressTable()))
}

func TestStableUnderRepeatedEvaluation(t *testing.T) {
	c, err := CompileExpression("asin(sin(0.3)) + pi", nil, DefaultConfig())
	require.NoError(t, err)
	require.Equal(t, c.Evaluate(), c.Evaluate())
}

func TestNaturalLogConfig(t *testing.T) {
	require.InDelta(t, math.Log10(100), mustInterpret(t, "log(100)", DefaultConfig()), 1e-9)
	require.InDelta(t, math.Log(100), mustInterpret(t, "log(100)", EngineConfig{NaturalLog: true}), 1e-9)
}

func mustInterpret(t *testing.T, expr string, cfg EngineConfig) Scalar {
	t.Helper()
	c, err := CompileExpression(expr, nil, cfg)
	require.NoError(t, err)
	return c.Evaluate()
}
