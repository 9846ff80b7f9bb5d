package notation_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/njchilds90/mathsolve/notation"
)

func TestClassifyInput(t *testing.T) {
	assert.Equal(t, notation.LaTeXLike, notation.ClassifyInput(`\frac{1}{2}`))
	assert.Equal(t, notation.LaTeXLike, notation.ClassifyInput(`x^{2}`))
	assert.Equal(t, notation.LaTeXLike, notation.ClassifyInput(`\alpha + 1`))
	assert.Equal(t, notation.PlainText, notation.ClassifyInput("x^2 + 1"))
	assert.Equal(t, notation.PlainText, notation.ClassifyInput("|x| - 1"))
	assert.Equal(t, "latex", notation.LaTeXLike.String())
	assert.Equal(t, "plain", notation.PlainText.String())
}

func TestStripLaTeX(t *testing.T) {
	assert.Equal(t, "x + 1", notation.StripLaTeX(`\mathrm{x} + 1`))
	assert.Equal(t, "x**2", notation.StripLaTeX(`x**{2}`))
}

func TestSplitEquation(t *testing.T) {
	lhs, rhs, ok := notation.SplitEquation("2*x + 3 = 7")
	assert.True(t, ok)
	assert.Equal(t, "2*x + 3", lhs)
	assert.Equal(t, "7", rhs)

	for _, in := range []string{"x <= 3", "x == 3", "x != 1", "x = y = 1", "= 3", "x =", "x + 1"} {
		_, _, ok := notation.SplitEquation(in)
		assert.False(t, ok, in)
	}
}

func TestMatchConstruct(t *testing.T) {
	c, ok := notation.MatchConstruct("integrate(x**2, x)")
	assert.True(t, ok)
	assert.Equal(t, notation.Construct{Name: "integrate", Body: "x**2", Var: "x"}, c)

	c, ok = notation.MatchConstruct(" diff(x**3 + 2*x, x) ")
	assert.True(t, ok)
	assert.Equal(t, "diff", c.Name)
	assert.Equal(t, "x**3 + 2*x", c.Body)

	for _, in := range []string{"diff(x**3, x) + 1", "integrate(x**2, 2)", "sin(x)", "diff(x)"} {
		_, ok := notation.MatchConstruct(in)
		assert.False(t, ok, in)
	}
}
