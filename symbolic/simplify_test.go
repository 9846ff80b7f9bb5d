package symbolic_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/njchilds90/mathsolve/symbolic"
)

func TestRewrites(t *testing.T) {
	cases := []struct {
		name string
		op   func(symbolic.Expr) symbolic.Expr
		in   string
		want string
	}{
		{"expand square", symbolic.Expand, "(x + 1)**2", "x**2 + 2*x + 1"},
		{"expand product", symbolic.Expand, "(x + 2)*(x - 2)", "x**2 - 4"},
		{"pythagorean", symbolic.TrigSimplify, "sin(x)**2 + cos(x)**2", "1"},
		{"one minus sin squared", symbolic.TrigSimplify, "1 - sin(x)**2", "cos(x)**2"},
		{"deep trig", symbolic.DeepSimplify, "sin(x)**2 + cos(x)**2 + x", "x + 1"},
		{"deep cancel", symbolic.DeepSimplify, "(x**2 - 1)/(x - 1)", "x + 1"},
		{"logcombine sum", symbolic.LogCombine, "log(x) + log(y)", "log(x*y)"},
		{"logcombine multiple", symbolic.LogCombine, "2*log(x)", "log(x**2)"},
		{"expand_log product", symbolic.ExpandLog, "log(x*y)", "log(x) + log(y)"},
		{"expand_log power", symbolic.ExpandLog, "log(x**2)", "2*log(x)"},
		{"powsimp exp", symbolic.PowSimp, "exp(x)*exp(y)", "exp(x + y)"},
		{"replace log exp", symbolic.ReplaceLogExp, "log(exp(x))", "x"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			assert.Equal(t, c.want, c.op(symbolic.MustParse(c.in)).String())
		})
	}
}

func TestCancel(t *testing.T) {
	got, err := symbolic.Cancel(symbolic.MustParse("(x**2 - 1)/(x - 1)"))
	require.NoError(t, err)
	assert.Equal(t, "x + 1", got.String())

	_, err = symbolic.Cancel(symbolic.MustParse("(x - y)/(x + y)"))
	assert.ErrorIs(t, err, symbolic.ErrUnsupported)
}

func TestFactorExpr(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"x**2 - 4", "(x + 2)*(x - 2)"},
		{"2*x**2 - 2", "2*(x + 1)*(x - 1)"},
	}
	for _, c := range cases {
		got, err := symbolic.FactorExpr(symbolic.MustParse(c.in))
		require.NoError(t, err, c.in)
		assert.Equal(t, c.want, got.String(), c.in)
	}

	_, err := symbolic.FactorExpr(symbolic.MustParse("x**2 + 1"))
	assert.ErrorIs(t, err, symbolic.ErrUnsupported)

	constant := symbolic.MustParse("pi + 3")
	got, err := symbolic.FactorExpr(constant)
	require.NoError(t, err)
	assert.True(t, got.Equal(constant), got.String())

	got, err = symbolic.FactorExpr(symbolic.MustParse("x**2 - 4 > 0"))
	require.NoError(t, err)
	assert.Equal(t, "(x + 2)*(x - 2) > 0", got.String())
}

func TestDeepSimplify_Relational(t *testing.T) {
	got := symbolic.DeepSimplify(symbolic.MustParse("sin(x)**2 + cos(x)**2 >= x"))
	assert.Equal(t, "1 >= x", got.String())
}

func TestIsUndefined(t *testing.T) {
	x := symbolic.S("x")
	assert.True(t, symbolic.IsUndefined(symbolic.PowOf(symbolic.N(0), symbolic.N(-1))))
	assert.True(t, symbolic.IsUndefined(symbolic.LogOf(symbolic.N(0))))
	assert.False(t, symbolic.IsUndefined(symbolic.LogOf(x)))
}
