package mathsolve_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/njchilds90/mathsolve"
	"github.com/njchilds90/mathsolve/symbolic"
)

type panickySolution struct{ mathsolve.SingleExpression }

func (panickySolution) Markup(mathsolve.Engine) (string, error) { panic("renderer crashed") }

func TestFormatter_Variants(t *testing.T) {
	f := mathsolve.NewFormatter(symbolic.NewEngine(), nil)
	cases := []struct {
		name                    string
		sol                     mathsolve.Solution
		numeric, markup, pretty string
	}{
		{
			"list",
			mathsolve.SolutionList{Items: []symbolic.Expr{symbolic.N(-2), symbolic.N(2)}},
			"[-2, 2]", "-2, 2", "[-2, 2]",
		},
		{
			"empty list",
			mathsolve.SolutionList{},
			"[]", `\emptyset`, "[]",
		},
		{
			"scalar",
			mathsolve.NumericScalar{Value: symbolic.NFloat(0.5)},
			"0.5", "0.5", "0.5",
		},
		{
			"expression",
			mathsolve.SingleExpression{Expr: symbolic.MustParse("x**2")},
			"x**2", "x^{2}", "x²",
		},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			st := f.Format(c.sol, mathsolve.CategoryEquation)
			assert.True(t, st.OK())
			assert.Empty(t, st.Diagnostics())
			assert.Equal(t, c.numeric, st.Numeric)
			assert.Equal(t, c.markup, st.Markup)
			assert.Equal(t, c.pretty, st.Pretty)
		})
	}
}

func TestFormatter_RelationalResult(t *testing.T) {
	en := symbolic.NewEngine()
	set, err := en.SolveInequality(symbolic.MustParse("x**2 - 4 > 0"), "x")
	assert.NoError(t, err)
	st := mathsolve.NewFormatter(en, nil).Format(mathsolve.RelationalResult{Var: "x", Set: set}, mathsolve.CategoryInequality)
	assert.Equal(t, "(-oo, -2) U (2, oo)", st.Numeric)
	assert.Contains(t, st.Markup, `\cup`)
	assert.Contains(t, st.Pretty, "∪")
}

func TestFormatter_FieldFallsBackToPlain(t *testing.T) {
	f := mathsolve.NewFormatter(faultyEngine{symbolic.NewEngine()}, nil)
	st := f.Format(mathsolve.SingleExpression{Expr: symbolic.MustParse("x**2")}, mathsolve.CategorySimplification)
	assert.True(t, st.OK())
	assert.Equal(t, "x**2", st.Markup)
	if assert.Len(t, st.Errors, 1) {
		assert.Contains(t, st.Errors[0], "format markup failed")
	}
}

func TestFormatter_TopLevelFailure(t *testing.T) {
	f := mathsolve.NewFormatter(symbolic.NewEngine(), nil)

	st := f.Format(nil, mathsolve.CategoryEquation)
	assert.False(t, st.OK())
	assert.Len(t, st.Errors, 1)

	st = f.Format(panickySolution{mathsolve.SingleExpression{Expr: symbolic.S("x")}}, mathsolve.CategorySimplification)
	assert.False(t, st.OK())
	assert.Empty(t, st.Numeric)
	assert.Empty(t, st.Markup)
	assert.Empty(t, st.Pretty)
	assert.Contains(t, st.Errors[0], "renderer crashed")
}
