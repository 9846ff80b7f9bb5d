package mathsolve_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/njchilds90/mathsolve"
	"github.com/njchilds90/mathsolve/symbolic"
)

func simplify(t *testing.T, en mathsolve.Engine, in string) *mathsolve.SimplifyStage {
	t.Helper()
	s := mathsolve.NewSimplifier(en, nil)
	return s.Simplify(mathsolve.Parsed(symbolic.MustParse(in)))
}

func TestSimplifier_IdentityTakesPriority(t *testing.T) {
	st := simplify(t, symbolic.NewEngine(), "log(exp(x))")
	assert.True(t, st.OK())
	assert.Equal(t, "x", st.Chosen.String())
	assert.Equal(t, mathsolve.StrategyLogExpIdentity, st.Strategy)
	require.NotEmpty(t, st.Candidates)
	assert.Equal(t, mathsolve.TagIdentityReplaced, st.Candidates[0].Tag)
}

func TestSimplifier_Pythagorean(t *testing.T) {
	st := simplify(t, symbolic.NewEngine(), "sin(x)**2 + cos(x)**2")
	assert.Equal(t, "1", st.Chosen.String())
	assert.Equal(t, mathsolve.StrategyBasic, st.Strategy)
}

func TestSimplifier_FewestOpsEarliestWins(t *testing.T) {
	st := simplify(t, symbolic.NewEngine(), "(x + 1)**2 - x**2")
	assert.Equal(t, "2*x + 1", st.Chosen.String())
	assert.Equal(t, mathsolve.StrategyBasic, st.Strategy)
	for _, c := range st.Candidates {
		assert.NotEqual(t, "(x + 1)**2 - x**2", c.Expr.String())
		assert.Equal(t, string(c.Strategy), c.Tag)
	}
}

func TestSimplifier_KeepsInputWithoutCandidates(t *testing.T) {
	st := simplify(t, symbolic.NewEngine(), "x")
	assert.Equal(t, "x", st.Chosen.String())
	assert.Empty(t, st.Candidates)
	assert.Equal(t, mathsolve.Strategy(""), st.Strategy)
}

func TestSimplifier_PreservesCalculusConstructs(t *testing.T) {
	s := mathsolve.NewSimplifier(symbolic.NewEngine(), nil)
	for _, e := range []symbolic.Expr{
		symbolic.DerivativeOf(symbolic.MustParse("x**3"), "x"),
		symbolic.IntegralOf(symbolic.MustParse("x**2"), "x"),
	} {
		st := s.Simplify(mathsolve.Parsed(e))
		assert.True(t, st.Preserved)
		assert.Same(t, e, st.Chosen)
		assert.Empty(t, st.Candidates)
	}
}

func TestSimplifier_StrategyFailureIsTolerated(t *testing.T) {
	st := simplify(t, faultyEngine{symbolic.NewEngine()}, "sin(x)**2 + cos(x)**2")
	assert.True(t, st.OK())
	assert.Equal(t, "1", st.Chosen.String())

	assert.Empty(t, st.Diagnostics())
	var failed []mathsolve.Strategy
	for _, f := range st.Failures {
		failed = append(failed, f.Strategy)
	}
	assert.Contains(t, failed, mathsolve.StrategyTrig)
	assert.Contains(t, failed, mathsolve.StrategyFactored)
}

func TestSimplifier_ConstantsAndRelationsFactor(t *testing.T) {
	for _, in := range []string{"x**2 - 4 = 0", "x > 1", "pi + E", "3"} {
		t.Run(in, func(t *testing.T) {
			s := mathsolve.NewSimplifier(symbolic.NewEngine(), nil)
			st, err := mathsolve.NewParser(symbolic.NewEngine(), nil).Parse(in)
			require.NoError(t, err)
			out := s.Simplify(st.Parsed)
			assert.Empty(t, out.Diagnostics())
			for _, f := range out.Failures {
				assert.NotEqual(t, mathsolve.StrategyFactored, f.Strategy, f.Error())
			}
		})
	}
}

// shortcutEngine expands everything to a single symbol, which beats any
// identity rewrite on op count.
type shortcutEngine struct{ *symbolic.Engine }

func (shortcutEngine) Expand(symbolic.Expr) (symbolic.Expr, error) { return symbolic.S("y"), nil }

func TestSimplifier_IdentityBeatsFewerOps(t *testing.T) {
	st := simplify(t, shortcutEngine{symbolic.NewEngine()}, "log(exp(x + 1))")

	var expanded, identity *mathsolve.Candidate
	for i, c := range st.Candidates {
		switch c.Strategy {
		case mathsolve.StrategyExpanded:
			expanded = &st.Candidates[i]
		case mathsolve.StrategyLogExpIdentity:
			identity = &st.Candidates[i]
		}
	}
	require.NotNil(t, expanded)
	require.NotNil(t, identity)
	require.Less(t, expanded.Ops, identity.Ops)

	assert.Equal(t, mathsolve.StrategyLogExpIdentity, st.Strategy)
	assert.Equal(t, "x + 1", st.Chosen.String())
}

func TestStrategy_Tag(t *testing.T) {
	assert.Equal(t, "identity-replaced", mathsolve.StrategyExpLogIdentity.Tag())
	assert.Equal(t, "identity-replaced", mathsolve.StrategyLogExpReplace.Tag())
	assert.Equal(t, "expanded", mathsolve.StrategyExpanded.Tag())
}
