package mathsolve_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/njchilds90/mathsolve"
	"github.com/njchilds90/mathsolve/symbolic"
)

func problem(t *testing.T, in string) mathsolve.Problem {
	t.Helper()
	st, err := mathsolve.NewParser(symbolic.NewEngine(), nil).Parse(in)
	require.NoError(t, err)
	return mathsolve.Problem{Parsed: st.Parsed, Simplified: st.Parsed.Expr}
}

func TestClassifier_Categories(t *testing.T) {
	cases := []struct {
		in       string
		category mathsolve.Category
		solution string
	}{
		{"x**2 - 4 = 0", mathsolve.CategoryEquation, "[-2, 2]"},
		{"diff(x**3 + 2*x, x)", mathsolve.CategoryDerivative, "3*x**2 + 2"},
		{"integrate(x**2, x)", mathsolve.CategoryIntegral, "x**3/3"},
		{"x**2 - 4 > 0", mathsolve.CategoryInequality, "(-oo, -2) U (2, oo)"},
		{"x**2 <= 4", mathsolve.CategoryInequality, "[-2, 2]"},
		{"pi + E", mathsolve.CategoryNumerical, "5.85987448204884"},
		{"x**2 - 4", mathsolve.CategoryEquationZero, "[-2, 2]"},
		{"x", mathsolve.CategorySimplification, "x"},
		{"x = 1", mathsolve.CategoryEquation, "[1]"},
	}
	c := mathsolve.NewClassifier(symbolic.NewEngine(), nil)
	for _, tc := range cases {
		t.Run(tc.in, func(t *testing.T) {
			res := c.ClassifyAndSolve(problem(t, tc.in))
			require.True(t, res.Success, "%v", res.Errors)
			assert.Equal(t, tc.category, res.Category)
			assert.Equal(t, tc.solution, res.Solution.String())
		})
	}
}

func TestClassifier_SolutionVariants(t *testing.T) {
	c := mathsolve.NewClassifier(symbolic.NewEngine(), nil)

	res := c.ClassifyAndSolve(problem(t, "x**2 - 4 = 0"))
	list, ok := res.Solution.(mathsolve.SolutionList)
	require.True(t, ok)
	assert.Equal(t, []string{"-2", "2"}, strs(list.Items))

	res = c.ClassifyAndSolve(problem(t, "x > 1"))
	rel, ok := res.Solution.(mathsolve.RelationalResult)
	require.True(t, ok)
	assert.Equal(t, "x", rel.Var)
	assert.True(t, rel.Set.Contains(2))

	res = c.ClassifyAndSolve(problem(t, "1/4"))
	num, ok := res.Solution.(mathsolve.NumericScalar)
	require.True(t, ok)
	assert.InDelta(t, 0.25, num.Float(), 1e-12)
}

func TestClassifier_SimplificationUsesParsedProblem(t *testing.T) {
	parsed := symbolic.MustParse("sin(x)**2 + cos(x)**2")
	c := mathsolve.NewClassifier(symbolic.NewEngine(), nil)
	res := c.ClassifyAndSolve(mathsolve.Problem{Parsed: mathsolve.Parsed(parsed), Simplified: symbolic.N(1)})
	require.True(t, res.Success)
	assert.Equal(t, mathsolve.CategorySimplification, res.Category)
	assert.Equal(t, "1", res.Solution.String())
}

func TestClassifier_BareSymbolIsSimplification(t *testing.T) {
	parsed := symbolic.MustParse("log(exp(x))")
	c := mathsolve.NewClassifier(symbolic.NewEngine(), nil)
	res := c.ClassifyAndSolve(mathsolve.Problem{Parsed: mathsolve.Parsed(parsed), Simplified: symbolic.S("x")})
	assert.Equal(t, mathsolve.CategorySimplification, res.Category)
	assert.Equal(t, "x", res.Solution.String())
}

func TestClassifier_MultivariateInequalityLeftUnsolved(t *testing.T) {
	c := mathsolve.NewClassifier(symbolic.NewEngine(), nil)
	res := c.ClassifyAndSolve(problem(t, "x + y > 0"))
	assert.True(t, res.Success)
	assert.Equal(t, mathsolve.CategoryInequality, res.Category)
	assert.Equal(t, "x + y > 0", res.Solution.String())
	require.Len(t, res.Errors, 1)
	assert.Contains(t, res.Errors[0], "2 variables")
}

func TestClassifier_FallsBackToSimplification(t *testing.T) {
	c := mathsolve.NewClassifier(symbolic.NewEngine(), nil)
	e := symbolic.IntegralOf(symbolic.MustParse("exp(x**2)"), "x")
	res := c.ClassifyAndSolve(mathsolve.Problem{Parsed: mathsolve.Parsed(e), Simplified: e})
	assert.True(t, res.Success)
	assert.Equal(t, mathsolve.CategorySimplification, res.Category)
	assert.Equal(t, "Integral(exp(x**2), x)", res.Solution.String())
	require.NotEmpty(t, res.Errors)
	assert.Contains(t, res.Errors[0], "solve (integral) failed")
}

func TestClassifier_TotalFailure(t *testing.T) {
	c := mathsolve.NewClassifier(brokenEngine{symbolic.NewEngine()}, nil)
	res := c.ClassifyAndSolve(problem(t, "x = 1"))
	assert.False(t, res.Success)
	assert.Equal(t, mathsolve.CategoryEquation, res.Category)
	assert.Nil(t, res.Solution)
	assert.Len(t, res.Errors, 2)
}

func TestClassifier_NonRationalInequality(t *testing.T) {
	cases := []struct {
		in       string
		solution string
	}{
		{"exp(x) > 1", "[x > 0]"},
		{"log(x) > 0", "[x > 1]"},
		{"exp(x) >= 1", "[x >= 0]"},
		{"exp(x) <= 1", "[x <= 0]"},
	}
	c := mathsolve.NewClassifier(symbolic.NewEngine(), nil)
	for _, tc := range cases {
		t.Run(tc.in, func(t *testing.T) {
			res := c.ClassifyAndSolve(problem(t, tc.in))
			require.True(t, res.Success, "%v", res.Errors)
			assert.Equal(t, mathsolve.CategoryInequality, res.Category)
			_, ok := res.Solution.(mathsolve.SolutionList)
			require.True(t, ok, "want SolutionList, got %T", res.Solution)
			assert.Equal(t, tc.solution, res.Solution.String())
			assert.Empty(t, res.Errors)
		})
	}
}
