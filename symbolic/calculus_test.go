package symbolic_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/njchilds90/mathsolve/symbolic"
)

func TestIntegrate(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"x**2", "x**3/3"},
		{"x", "x**2/2"},
		{"5", "5*x"},
		{"cos(x)", "sin(x)"},
		{"exp(x)", "exp(x)"},
		{"3*x**2 + 2", "x**3 + 2*x"},
	}
	for _, c := range cases {
		t.Run(c.in, func(t *testing.T) {
			got, ok := symbolic.Integrate(symbolic.MustParse(c.in), "x")
			require.True(t, ok)
			assert.Equal(t, c.want, got.String())
		})
	}
}

func TestIntegrate_NoRule(t *testing.T) {
	_, ok := symbolic.Integrate(symbolic.MustParse("exp(x**2)"), "x")
	assert.False(t, ok)
}

func TestDoit(t *testing.T) {
	got, err := symbolic.Doit(symbolic.MustParse("diff(x**3 + 2*x, x)"))
	require.NoError(t, err)
	assert.Equal(t, "3*x**2 + 2", got.String())

	got, err = symbolic.Doit(symbolic.MustParse("integrate(x**2, x)"))
	require.NoError(t, err)
	assert.Equal(t, "x**3/3", got.String())

	_, err = symbolic.Doit(symbolic.MustParse("integrate(exp(x**2), x)"))
	assert.ErrorIs(t, err, symbolic.ErrUnsupported)
}

func TestDoit_LeavesPlainExpressions(t *testing.T) {
	got, err := symbolic.Doit(symbolic.MustParse("x + 1"))
	require.NoError(t, err)
	assert.Equal(t, "x + 1", got.String())
}
