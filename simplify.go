package mathsolve

import (
	"regexp"
	"strings"

	"go.uber.org/zap"

	"github.com/njchilds90/mathsolve/symbolic"
)

// Strategy names one simplification attempt.
type Strategy string

const (
	StrategyLogExpIdentity Strategy = "log-exp-identity"
	StrategyExpLogIdentity Strategy = "exp-log-identity"
	StrategyBasic          Strategy = "basic"
	StrategyExpanded       Strategy = "expanded"
	StrategyFactored       Strategy = "factored"
	StrategyCancelled      Strategy = "cancelled"
	StrategyCollected      Strategy = "collected"
	StrategyTrig           Strategy = "trig-simplified"
	StrategyLogCombined    Strategy = "log-combined"
	StrategyPowSimplified  Strategy = "power-simplified"
	StrategyLogExpanded    Strategy = "log-expanded"
	StrategyLogExpReplace  Strategy = "log-exp-replace"
)

// TagIdentityReplaced is the candidate tag shared by the identity
// rewrites.
const TagIdentityReplaced = "identity-replaced"

// Tag returns the candidate tag of s.
func (s Strategy) Tag() string {
	switch s {
	case StrategyLogExpIdentity, StrategyExpLogIdentity, StrategyLogExpReplace:
		return TagIdentityReplaced
	}
	return string(s)
}

// priority strategies win over the op-count metric, in this order.
var priority = []Strategy{StrategyLogExpIdentity, StrategyExpLogIdentity, StrategyLogExpReplace}

// Candidate is one named alternative form of an expression.
type Candidate struct {
	Strategy Strategy
	Tag      string
	Expr     symbolic.Expr
	Ops      int
}

var (
	logExpPattern = regexp.MustCompile(`log\(exp\(([^)]+)\)\)`)
	expLogPattern = regexp.MustCompile(`exp\(log\(([^)]+)\)\)`)
	trigNames     = []string{"sin", "cos", "tan", "sec", "csc", "cot"}
	logNames      = []string{"log", "exp", "ln"}
)

type strategy struct {
	name    Strategy
	applies func(text string, e symbolic.Expr) bool
	run     func(e symbolic.Expr) (symbolic.Expr, error)
}

func always(string, symbolic.Expr) bool { return true }

func containsAny(text string, words []string) bool {
	for _, w := range words {
		if strings.Contains(text, w) {
			return true
		}
	}
	return false
}

// Simplifier produces simplification candidates and picks one.
type Simplifier struct {
	engine     Engine
	strategies []strategy
	logger     *zap.Logger
}

// NewSimplifier returns a Simplifier over engine. A nil logger discards
// logs.
func NewSimplifier(engine Engine, logger *zap.Logger) *Simplifier {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Simplifier{engine: engine, logger: logger}
	hasTrig := func(text string, _ symbolic.Expr) bool { return containsAny(text, trigNames) }
	hasLog := func(text string, _ symbolic.Expr) bool { return containsAny(text, logNames) }
	s.strategies = []strategy{
		{StrategyLogExpIdentity, func(text string, _ symbolic.Expr) bool { return strings.Contains(text, "log(exp(") }, s.identity(logExpPattern)},
		{StrategyExpLogIdentity, func(text string, _ symbolic.Expr) bool { return strings.Contains(text, "exp(log(") }, s.identity(expLogPattern)},
		{StrategyBasic, always, engine.Simplify},
		{StrategyExpanded, always, engine.Expand},
		{StrategyFactored, always, engine.Factor},
		{StrategyCancelled, always, engine.Cancel},
		{StrategyCollected, func(_ string, e symbolic.Expr) bool { return len(engine.FreeSymbols(e)) > 0 }, func(e symbolic.Expr) (symbolic.Expr, error) {
			return engine.Collect(e, engine.FreeSymbols(e))
		}},
		{StrategyTrig, hasTrig, engine.TrigSimp},
		{StrategyLogCombined, hasLog, engine.LogCombine},
		{StrategyPowSimplified, hasLog, engine.PowSimp},
		{StrategyLogExpanded, hasLog, engine.ExpandLog},
		{StrategyLogExpReplace, func(text string, _ symbolic.Expr) bool { return strings.Contains(text, "log(exp(") }, engine.ReplaceLogExp},
	}
	return s
}

// identity rewrites every match of re in the text form of e to its
// captured argument and parses the result.
func (s *Simplifier) identity(re *regexp.Regexp) func(symbolic.Expr) (symbolic.Expr, error) {
	return func(e symbolic.Expr) (symbolic.Expr, error) {
		text := e.String()
		if !re.MatchString(text) {
			return e, nil
		}
		return s.engine.Parse(re.ReplaceAllString(text, "($1)"))
	}
}

// Simplify runs every applicable strategy and selects the result.
// Derivatives and integrals are returned unchanged. A failing strategy
// contributes no candidate and is recorded in Failures.
func (s *Simplifier) Simplify(p ParsedExpression) *SimplifyStage {
	st := &SimplifyStage{Original: p.Expr, Chosen: p.Expr, Success: true}
	if p.Kind == Derivative || p.Kind == Integral {
		st.Preserved = true
		return st
	}

	text := p.Expr.String()
	for _, strat := range s.strategies {
		if !strat.applies(text, p.Expr) {
			continue
		}
		out, err := s.attempt(strat, p.Expr)
		if err != nil {
			s.logger.Debug("strategy dropped", zap.String("strategy", string(strat.name)), zap.Error(err))
			st.Failures = append(st.Failures, &SimplificationError{Strategy: strat.name, Cause: err})
			continue
		}
		if out == nil || out.Equal(p.Expr) || out.String() == text {
			continue
		}
		st.Candidates = append(st.Candidates, Candidate{
			Strategy: strat.name,
			Tag:      strat.name.Tag(),
			Expr:     out,
			Ops:      s.engine.CountOps(out),
		})
	}

	if c, ok := choose(st.Candidates); ok {
		st.Chosen = c.Expr
		st.Strategy = c.Strategy
	}
	return st
}

func (s *Simplifier) attempt(strat strategy, e symbolic.Expr) (out symbolic.Expr, err error) {
	defer func() {
		if r := recover(); r != nil {
			out, err = nil, recovered(r)
		}
	}()
	return strat.run(e)
}

// choose applies the selection policy: the first priority strategy
// present wins, otherwise the fewest ops, earliest on ties.
func choose(cands []Candidate) (Candidate, bool) {
	if len(cands) == 0 {
		return Candidate{}, false
	}
	for _, name := range priority {
		for _, c := range cands {
			if c.Strategy == name {
				return c, true
			}
		}
	}
	best := cands[0]
	for _, c := range cands[1:] {
		if c.Ops < best.Ops {
			best = c
		}
	}
	return best, true
}
