package mathsolve_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/njchilds90/mathsolve"
	"github.com/njchilds90/mathsolve/notation"
	"github.com/njchilds90/mathsolve/symbolic"
)

func TestParser_Kinds(t *testing.T) {
	cases := []struct {
		in         string
		kind       mathsolve.Kind
		normalized string
		expr       string
	}{
		{"x^2 - 4 = 0", mathsolve.Equation, "x**2 - 4 = 0", "x**2 - 4 = 0"},
		{"2x + 3 = 7", mathsolve.Equation, "2*x + 3 = 7", "2*x + 3 = 7"},
		{"x^2 - 4 > 0", mathsolve.Inequality, "x**2 - 4 > 0", "x**2 - 4 > 0"},
		{"diff(x^3 + 2*x, x)", mathsolve.Derivative, "diff(x**3 + 2*x, x)", "Derivative(x**3 + 2*x, x)"},
		{"integrate(x^2, x)", mathsolve.Integral, "integrate(x**2, x)", "Integral(x**2, x)"},
		{"2sin(x)", mathsolve.PlainExpression, "2*sin(x)", "2*sin(x)"},
		{"lg(100)", mathsolve.PlainExpression, "2", "2"},
	}
	p := mathsolve.NewParser(symbolic.NewEngine(), nil)
	for _, c := range cases {
		t.Run(c.in, func(t *testing.T) {
			st, err := p.Parse(c.in)
			require.NoError(t, err)
			assert.True(t, st.OK())
			assert.Equal(t, c.kind, st.Parsed.Kind)
			assert.Equal(t, c.normalized, st.Normalized)
			assert.Equal(t, c.expr, st.Parsed.Expr.String())
			assert.Equal(t, notation.PlainText, st.InputKind)
		})
	}
}

func TestParser_LaTeX(t *testing.T) {
	p := mathsolve.NewParser(symbolic.NewEngine(), nil)
	st, err := p.Parse(`\frac{1}{2} + \frac{1}{3}`)
	require.NoError(t, err)
	assert.Equal(t, notation.LaTeXLike, st.InputKind)
	assert.Equal(t, "5/6", st.Parsed.Expr.String())
}

func TestParser_LaTeXFallback(t *testing.T) {
	p := mathsolve.NewParser(symbolic.NewEngine(), nil)
	st, err := p.Parse(`\unknown{x} + 1`)
	require.NoError(t, err)
	assert.Equal(t, "x + 1", st.Parsed.Expr.String())
	require.NotEmpty(t, st.Errors)
	assert.Contains(t, st.Errors[0], "latex")
}

func TestParser_Errors(t *testing.T) {
	p := mathsolve.NewParser(symbolic.NewEngine(), nil)

	_, err := p.Parse("   ")
	var perr *mathsolve.ParseError
	require.ErrorAs(t, err, &perr)
	assert.ErrorIs(t, err, mathsolve.ErrEmptyInput)

	_, err = p.Parse("|x")
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, "unbalanced absolute value bars", perr.Message)
	assert.ErrorIs(t, err, notation.ErrUnbalancedBars)

	st, err := p.Parse("(x + 1")
	require.ErrorAs(t, err, &perr)
	assert.ErrorIs(t, err, symbolic.ErrSyntax)
	assert.False(t, st.OK())
	assert.NotEmpty(t, st.Diagnostics())

	_, err = p.Parse("x = ")
	require.Error(t, err)

	_, err = p.Parse("2x + (3")
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, "2x + (3", perr.Original)
	assert.Equal(t, "2*x + (3", perr.Input)
}
