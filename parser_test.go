package scalarfl

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParserUnaryRuns(t *testing.T) {
	cases := map[string]Scalar{
		"--5":  5,
		"-!5":  0,
		"!!5":  1,
		"-!!5": -1,
	}
	for expr, want := range cases {
		_, err := parseExpression(expr, nil, DefaultConfig())
		require.NoError(t, err, "expr %q", expr)
		require.EqualValues(t, want, Interpret(expr), "expr %q", expr)
	}
}

func TestParserTrailingInputIsAnError(t *testing.T) {
	_, err := parseExpression("1 + 2)", nil, DefaultConfig())
	require.Error(t, err)
}

func TestParserMismatchedParenIsAnError(t *testing.T) {
	_, err := parseExpression("(1 + 2", nil, DefaultConfig())
	require.Error(t, err)
}

func TestParserWrongArityIsAnError(t *testing.T) {
	_, err := parseExpression("pow(1)", nil, DefaultConfig())
	require.Error(t, err)
}

func TestParserListOperator(t *testing.T) {
	require.EqualValues(t, 3, Interpret("1, 2, 3"))
}

func TestParserSyntaxErrorOffsetIsPositive(t *testing.T) {
	_, err := parseExpression("1 & 2", nil, DefaultConfig())
	require.Error(t, err)
	var ce *CompileError
	require.ErrorAs(t, err, &ce)
	require.Greater(t, ce.Position, 0)
}
