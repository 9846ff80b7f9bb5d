package symbolic_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/njchilds90/mathsolve/symbolic"
)

func TestParse_Canonical(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"2*x**2 + 3", "2*x**2 + 3"},
		{"2x", "2*x"},
		{"x^2", "x**2"},
		{"2(x + 1)", "2*(x + 1)"},
		{"x*x*x", "x**3"},
		{"sin(x)**2 + cos(x)**2", "cos(x)**2 + sin(x)**2"},
		{"5!", "120"},
		{"0.5*x", "0.5*x"},
		{"Abs(-3)", "3"},
		{"sqrt(8)", "2*sqrt(2)"},
		{"ln(E)", "1"},
		{"Max(1, 7, 3)", "7"},
		{"-x + 1", "-x + 1"},
		{"2**3**2", "512"},
		{"1e3", "1000"},
		{"1.5E2", "150"},
		{"2.5e-3*x", "0.0025*x"},
	}
	for _, c := range cases {
		t.Run(c.in, func(t *testing.T) {
			e, err := symbolic.Parse(c.in)
			require.NoError(t, err)
			assert.Equal(t, c.want, e.String())
		})
	}
}

func TestParse_Relational(t *testing.T) {
	e, err := symbolic.Parse("x <= 3")
	require.NoError(t, err)
	rel, ok := e.(*symbolic.Relational)
	require.True(t, ok, "want *Relational, got %T", e)
	assert.Equal(t, symbolic.OpLe, rel.Op())
	assert.Equal(t, "x <= 3", rel.String())

	e, err = symbolic.Parse("x == 2")
	require.NoError(t, err)
	assert.True(t, e.(*symbolic.Relational).IsEquation())
}

func TestParse_BareEqualsRejected(t *testing.T) {
	_, err := symbolic.Parse("x = 3")
	require.Error(t, err)
	assert.True(t, errors.Is(err, symbolic.ErrSyntax))
}

func TestParse_Errors(t *testing.T) {
	for _, in := range []string{"", "   ", "(x + 1", "x +", "1/0", "sin"} {
		t.Run(in, func(t *testing.T) {
			_, err := symbolic.Parse(in)
			require.Error(t, err)
			assert.ErrorIs(t, err, symbolic.ErrSyntax)
		})
	}
}

func TestParse_Unsupported(t *testing.T) {
	_, err := symbolic.Parse("Sum(x, x)")
	require.Error(t, err)
	assert.ErrorIs(t, err, symbolic.ErrUnsupported)
}

func TestParse_CalculusConstructs(t *testing.T) {
	e, err := symbolic.Parse("diff(x**3 + 2*x, x)")
	require.NoError(t, err)
	assert.Equal(t, "Derivative(x**3 + 2*x, x)", e.String())

	// The variable defaults to the only free symbol.
	e, err = symbolic.Parse("integrate(t**2)")
	require.NoError(t, err)
	assert.Equal(t, "Integral(t**2, t)", e.String())

	_, err = symbolic.Parse("integrate(x*y)")
	assert.ErrorIs(t, err, symbolic.ErrSyntax)
}

func TestParse_Constants(t *testing.T) {
	e, err := symbolic.Parse("pi")
	require.NoError(t, err)
	assert.Equal(t, symbolic.Pi, e)

	// Lowercase e is an ordinary symbol.
	e, err = symbolic.Parse("e")
	require.NoError(t, err)
	assert.Equal(t, []string{"e"}, symbolic.SortedSymbols(e))
}

func TestMustParse_Panics(t *testing.T) {
	assert.Panics(t, func() { symbolic.MustParse("(") })
}
