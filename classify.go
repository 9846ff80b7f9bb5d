package mathsolve

import (
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/njchilds90/mathsolve/symbolic"
)

// Category is the problem category assigned by the classifier.
type Category string

const (
	CategoryDerivative     Category = "derivative"
	CategoryIntegral       Category = "integral"
	CategoryEquation       Category = "equation"
	CategoryInequality     Category = "inequality"
	CategoryNumerical      Category = "numerical_evaluation"
	CategorySimplification Category = "simplification"
	CategoryEquationZero   Category = "equation_zero"
)

// Problem is the classifier input: the parsed expression and the
// candidate the simplifier chose for it.
type Problem struct {
	Parsed     ParsedExpression
	Simplified symbolic.Expr
}

// ProblemResult is the outcome of classification and solving.
type ProblemResult struct {
	Category Category
	Solution Solution
	Errors   []string
	Success  bool
}

// Classifier assigns a category and dispatches the solving action.
type Classifier struct {
	engine Engine
	logger *zap.Logger
}

// NewClassifier returns a Classifier over engine. A nil logger discards
// logs.
func NewClassifier(engine Engine, logger *zap.Logger) *Classifier {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Classifier{engine: engine, logger: logger}
}

// ClassifyAndSolve categorizes p and solves it. A solve failure falls
// back to generic simplification; only when that also fails is the
// result unsuccessful.
func (c *Classifier) ClassifyAndSolve(p Problem) ProblemResult {
	if p.Simplified == nil {
		p.Simplified = p.Parsed.Expr
	}
	if p.Simplified == nil {
		return ProblemResult{Errors: []string{"nothing to solve"}}
	}

	res, err := c.solve(p)
	if err == nil {
		res.Success = true
		return res
	}

	serr := &SolveError{Category: res.Category, Cause: err}
	c.logger.Warn("solve failed, falling back to simplification", zap.String("category", string(res.Category)), zap.Error(err))
	res.Errors = append(res.Errors, serr.Error())
	s, ferr := c.engine.Simplify(p.Simplified)
	if ferr != nil {
		res.Errors = append(res.Errors, ferr.Error())
		res.Solution = nil
		return res
	}
	res.Category = CategorySimplification
	res.Solution = SingleExpression{Expr: s}
	res.Success = true
	return res
}

func (c *Classifier) solve(p Problem) (res ProblemResult, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = recovered(r)
		}
	}()

	expr := p.Simplified
	switch p.Parsed.Kind {
	case Derivative, Integral:
		res.Category = CategoryDerivative
		if p.Parsed.Kind == Integral {
			res.Category = CategoryIntegral
		}
		v, err := c.engine.Doit(p.Parsed.Expr)
		if err != nil {
			return res, err
		}
		res.Solution = SingleExpression{Expr: v}
		return res, nil

	case Equation:
		res.Category = CategoryEquation
		sols, err := c.engine.Solve(expr, c.engine.FreeSymbols(expr))
		if err != nil {
			return res, err
		}
		res.Solution = SolutionList{Items: sols}
		return res, nil
	}

	if p.Parsed.Kind == Inequality || strings.ContainsAny(expr.String(), "<>") {
		res.Category = CategoryInequality
		return c.inequality(res, expr)
	}

	if len(c.engine.FreeSymbols(p.Parsed.Expr)) == 0 {
		res.Category = CategoryNumerical
		v, err := c.engine.Evalf(expr)
		if err != nil {
			return res, err
		}
		if n, ok := v.(*symbolic.Num); ok {
			res.Solution = NumericScalar{Value: n}
		} else {
			res.Solution = SingleExpression{Expr: v}
		}
		return res, nil
	}

	return c.expression(res, p)
}

// inequality solves a univariate relation as an interval set, falling
// back to a generic solve. Relations in several variables are returned
// unsolved.
func (c *Classifier) inequality(res ProblemResult, expr symbolic.Expr) (ProblemResult, error) {
	vars := c.engine.FreeSymbols(expr)
	if len(vars) != 1 {
		res.Solution = SingleExpression{Expr: expr}
		res.Errors = append(res.Errors, fmt.Sprintf("inequality in %d variables left unsolved", len(vars)))
		return res, nil
	}
	set, err := c.engine.SolveInequality(expr, vars[0])
	if err == nil {
		res.Solution = RelationalResult{Var: vars[0], Set: set}
		return res, nil
	}
	c.logger.Debug("interval solve failed, trying generic solve", zap.Error(err))
	sols, err := c.engine.Solve(expr, vars)
	if err != nil {
		return res, err
	}
	res.Solution = SolutionList{Items: sols}
	return res, nil
}

// expression handles a bare expression with free variables: it is a
// simplification task when simplifying changed it, otherwise it is
// solved as expr = 0.
func (c *Classifier) expression(res ProblemResult, p Problem) (ProblemResult, error) {
	expr := p.Simplified
	simplified, err := c.engine.Simplify(expr)
	if err != nil {
		res.Category = CategorySimplification
		return res, err
	}
	if containsAny(expr.String(), []string{"log", "exp"}) {
		if lc, err := c.engine.LogCombine(expr); err == nil {
			if ps, err := c.engine.PowSimp(lc); err == nil && c.engine.CountOps(ps) < c.engine.CountOps(simplified) {
				simplified = ps
			}
		}
		if el, err := c.engine.ExpandLog(expr); err == nil && c.engine.CountOps(el) < c.engine.CountOps(simplified) {
			simplified = el
		}
	}

	if isBareSymbol(expr) {
		res.Category = CategorySimplification
		res.Solution = SingleExpression{Expr: expr}
		return res, nil
	}
	orig := p.Parsed.Expr
	if !simplified.Equal(orig) || c.engine.CountOps(simplified) < c.engine.CountOps(orig) {
		res.Category = CategorySimplification
		res.Solution = SingleExpression{Expr: simplified}
		return res, nil
	}

	res.Category = CategoryEquationZero
	sols, err := c.engine.Solve(expr, c.engine.FreeSymbols(expr))
	if err != nil {
		return res, err
	}
	res.Solution = SolutionList{Items: sols}
	return res, nil
}

func isBareSymbol(e symbolic.Expr) bool {
	s, ok := e.(*symbolic.Sym)
	return ok && len(s.Name()) <= 3
}
