package mathsolve_test

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/njchilds90/mathsolve"
	"github.com/njchilds90/mathsolve/notation"
)

func TestProcess_Pipeline(t *testing.T) {
	cases := []struct {
		in       string
		category mathsolve.Category
		numeric  string
	}{
		{"sin^2(x) + cos^2(x)", mathsolve.CategorySimplification, "1"},
		{"x^2 - 4 = 0", mathsolve.CategoryEquation, "[-2, 2]"},
		{"2*x + 3 = 7", mathsolve.CategoryEquation, "[2]"},
		{"diff(x^3 + 2*x, x)", mathsolve.CategoryDerivative, ""},
		{"log(exp(x))", mathsolve.CategorySimplification, "x"},
		{"x^2 - 4 > 0", mathsolve.CategoryInequality, "(-oo, -2) U (2, oo)"},
		{"pi + E", mathsolve.CategoryNumerical, "5.85987448204884"},
		{"sqrt(16)", mathsolve.CategoryNumerical, "4"},
		{"factorial(5)", mathsolve.CategoryNumerical, "120"},
		{"log(E)", mathsolve.CategoryNumerical, "1"},
		{"1.5E2", mathsolve.CategoryNumerical, "150"},
		{"1e3 + 1", mathsolve.CategoryNumerical, "1001"},
		{"exp(x) > 1", mathsolve.CategoryInequality, "[x > 0]"},
	}
	p := newProcessor(mathsolve.WithLogger(zaptest.NewLogger(t)))
	for _, c := range cases {
		t.Run(c.in, func(t *testing.T) {
			tr := p.Process(context.Background(), c.in)
			require.NoError(t, tr.Err)
			assert.Equal(t, c.category, tr.Category, "%v", tr.Diagnostics())
			if c.numeric != "" {
				require.True(t, tr.Success, "%v", tr.Diagnostics())
				assert.Equal(t, c.numeric, tr.Output.Numeric)
			}
		})
	}
}

func TestProcess_Solutions(t *testing.T) {
	p := newProcessor()

	tr := p.Process(context.Background(), "diff(x^3 + 2*x, x)")
	require.True(t, tr.Success)
	assert.Equal(t, "3*x**2 + 2", tr.Solve().Solution.String())

	tr = p.Process(context.Background(), "integrate(x^2, x)")
	require.True(t, tr.Success)
	assert.Equal(t, mathsolve.CategoryIntegral, tr.Category)
	assert.Equal(t, "x**3/3", tr.Solve().Solution.String())
	assert.Equal(t, `\frac{x^{3}}{3}`, tr.Output.Markup)

	for _, in := range []string{"x^2 - 4 = 0", "x > 1", "pi + E"} {
		tr = p.Process(context.Background(), in)
		require.True(t, tr.Success, in)
		assert.Empty(t, tr.Diagnostics(), in)
	}

	tr = p.Process(context.Background(), "x^2 + 4*x - 8")
	require.True(t, tr.Success)
	assert.Equal(t, mathsolve.CategoryEquationZero, tr.Category)
	list, ok := tr.Solve().Solution.(mathsolve.SolutionList)
	require.True(t, ok)
	assert.Len(t, list.Items, 2)
}

func TestProcess_StagesRecorded(t *testing.T) {
	tr := newProcessor().Process(context.Background(), "x^2 - 4 = 0")
	require.Len(t, tr.Stages, 4)
	var names []string
	for _, st := range tr.Stages {
		names = append(names, st.Name())
		assert.True(t, st.OK(), st.Name())
	}
	assert.Equal(t, []string{"parse", "simplify", "solve", "format"}, names)
	assert.NotEqual(t, "00000000-0000-0000-0000-000000000000", tr.ID.String())
	assert.Same(t, tr.Output, tr.Stages[3])
}

func TestProcess_ParseErrorAborts(t *testing.T) {
	p := newProcessor()
	for _, in := range []string{"", "|x", "(x + 1", "x +"} {
		tr := p.Process(context.Background(), in)
		var perr *mathsolve.ParseError
		require.ErrorAs(t, tr.Err, &perr, in)
		assert.False(t, tr.Success)
		assert.Len(t, tr.Stages, 1)
		assert.Nil(t, tr.Output)
		assert.NotEmpty(t, tr.Diagnostics())
	}
	tr := p.Process(context.Background(), "|x")
	assert.ErrorIs(t, tr.Err, notation.ErrUnbalancedBars)
}

func TestProcess_Explanations(t *testing.T) {
	rec := &recordingExplainer{}
	p := newProcessor(mathsolve.WithExplainer(rec, true, true))

	tr := p.Process(context.Background(), "2*x + 3 = 7")
	require.True(t, tr.Success)
	assert.Equal(t, []string{"Parsing", "Simplification", "Solution (equation)"}, rec.steps)
	require.Len(t, tr.Explanations, 3)
	assert.Equal(t, "solve", tr.Explanations[2].Stage)
	assert.True(t, strings.HasPrefix(tr.Explanations[2].Text, "Solution (equation): "))
	assert.True(t, strings.HasSuffix(tr.Explanations[2].Text, " -> [2]"))

	tr = p.Process(context.Background(), "(x + 1")
	require.Error(t, tr.Err)
	assert.Equal(t, []string{"(x + 1"}, rec.errs)
	require.Len(t, tr.Explanations, 1)
	assert.Equal(t, "check the input", tr.Explanations[0].Text)
}

func TestProcess_ExplanationsDisabled(t *testing.T) {
	rec := &recordingExplainer{}
	p := newProcessor(mathsolve.WithExplainer(rec, false, false))
	p.Process(context.Background(), "(x + 1")
	p.Process(context.Background(), "x + 1")
	assert.Empty(t, rec.steps)
	assert.Empty(t, rec.errs)
}
