package scalarfl

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLexerNumbers(t *testing.T) {
	lx := newLexer("3.25e2", nil, false)
	tok := lx.next()
	require.Equal(t, tokNumber, tok.kind)
	require.EqualValues(t, 325, tok.value)
}

func TestLexerOperators(t *testing.T) {
	cases := map[string]*Function{
		"+":  opAdd,
		"-":  opSub,
		"<=": opLowerEq,
		">=": opGreaterEq,
		"==": opEqual,
		"!=": opNotEqual,
		"&&": opLogicalAnd,
		"||": opLogicalOr,
	}
	for src, want := range cases {
		lx := newLexer(src, nil, false)
		tok := lx.next()
		require.Equal(t, tokInfix, tok.kind, "source %q", src)
		require.Same(t, want, tok.fn, "source %q", src)
	}
}

func TestLexerLoneAmpersandOrPipeIsError(t *testing.T) {
	for _, src := range []string{"&", "|", "="} {
		lx := newLexer(src, nil, false)
		require.Equal(t, tokError, lx.next().kind, "source %q", src)
	}
}

func TestLexerSemicolonAndEndOfInputBothEmitEnd(t *testing.T) {
	for _, src := range []string{"", ";"} {
		lx := newLexer(src, nil, false)
		require.Equal(t, tokEnd, lx.next().kind)
	}
}

func TestLexerNaturalLogSwapsLogForLn(t *testing.T) {
	lx := newLexer("log", nil, true)
	tok := lx.next()
	require.Equal(t, tokCallable, tok.kind)
	require.Equal(t, "ln", tok.fn.Name)
}

func TestLexerUserLookupShadowsBuiltins(t *testing.T) {
	var pi Scalar = 4
	lx := newLexer("pi", lookupTable{Var("pi", &pi)}, false)
	tok := lx.next()
	require.Equal(t, tokVariable, tok.kind)
	require.Same(t, &pi, tok.varAddr)
}
