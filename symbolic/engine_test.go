package symbolic

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGuard_RecoversPanic(t *testing.T) {
	var traced string
	en := &Engine{Trace: func(op string, stack []byte) { traced = op }}
	_, err := guard(en, "boom", func() (Expr, error) { panic("division by zero") })
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrEvaluation)
	assert.Contains(t, err.Error(), "division by zero")
	assert.Equal(t, "boom", traced)
}

func TestEngine_EvalfUnknownFunction(t *testing.T) {
	en := NewEngine()
	_, err := en.Evalf(&Func{name: "bogus", arg: N(1)})
	assert.ErrorIs(t, err, ErrEvaluation)
}

func TestEngine_Operations(t *testing.T) {
	en := NewEngine()

	e, err := en.Parse("x**2 - 4")
	require.NoError(t, err)

	f, err := en.Factor(e)
	require.NoError(t, err)
	assert.Equal(t, "(x + 2)*(x - 2)", f.String())

	sols, err := en.Solve(e, []string{"x"})
	require.NoError(t, err)
	require.Len(t, sols, 2)
	assert.Equal(t, "-2", sols[0].String())

	tex, err := en.LaTeX(e)
	require.NoError(t, err)
	assert.Equal(t, "x^{2} - 4", tex)

	assert.Equal(t, []string{"x"}, en.FreeSymbols(e))
	assert.Equal(t, 2, en.CountOps(e))

	_, err = en.Collect(e, nil)
	assert.ErrorIs(t, err, ErrUnsupported)
}

func TestEngine_ParseLaTeX(t *testing.T) {
	en := NewEngine()
	e, err := en.ParseLaTeX(`\frac{1}{2} + \frac{1}{3}`)
	require.NoError(t, err)
	assert.Equal(t, "5/6", e.String())
}
