package mathsolve

import (
	"strings"

	"github.com/njchilds90/mathsolve/symbolic"
)

// Solution is the payload of a solved problem. The variant is decided
// once at solve time and each variant renders itself.
type Solution interface {
	// String is the plain text form.
	String() string
	Numeric(en Engine) (string, error)
	Markup(en Engine) (string, error)
	Pretty(en Engine) (string, error)
}

// SingleExpression is one resulting expression.
type SingleExpression struct {
	Expr symbolic.Expr
}

func (s SingleExpression) String() string { return s.Expr.String() }

func (s SingleExpression) Numeric(en Engine) (string, error) {
	v, err := en.Evalf(s.Expr)
	if err != nil {
		return "", err
	}
	return v.String(), nil
}

func (s SingleExpression) Markup(en Engine) (string, error) { return en.LaTeX(s.Expr) }
func (s SingleExpression) Pretty(en Engine) (string, error) { return en.Pretty(s.Expr) }

// SolutionList is the set of solutions of an equation, possibly empty.
type SolutionList struct {
	Items []symbolic.Expr
}

func (l SolutionList) String() string {
	parts := make([]string, len(l.Items))
	for i, e := range l.Items {
		parts[i] = e.String()
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

func (l SolutionList) Numeric(Engine) (string, error) { return l.String(), nil }

// Markup renders each item on its own; an item that fails to render
// falls back to its plain form.
func (l SolutionList) Markup(en Engine) (string, error) {
	if len(l.Items) == 0 {
		return `\emptyset`, nil
	}
	parts := make([]string, len(l.Items))
	for i, e := range l.Items {
		tex, err := en.LaTeX(e)
		if err != nil {
			tex = e.String()
		}
		parts[i] = tex
	}
	return strings.Join(parts, ", "), nil
}

func (l SolutionList) Pretty(en Engine) (string, error) {
	parts := make([]string, len(l.Items))
	for i, e := range l.Items {
		p, err := en.Pretty(e)
		if err != nil {
			p = e.String()
		}
		parts[i] = p
	}
	return "[" + strings.Join(parts, ", ") + "]", nil
}

// RelationalResult is the solution set of a univariate inequality.
type RelationalResult struct {
	Var string
	Set *symbolic.IntervalSet
}

func (r RelationalResult) String() string                 { return r.Set.String() }
func (r RelationalResult) Numeric(Engine) (string, error) { return r.Set.String(), nil }
func (r RelationalResult) Markup(Engine) (string, error)  { return r.Set.LaTeX(), nil }
func (r RelationalResult) Pretty(Engine) (string, error)  { return r.Set.Pretty(), nil }

// NumericScalar is a number produced by forced evaluation.
type NumericScalar struct {
	Value *symbolic.Num
}

func (n NumericScalar) String() string                   { return n.Value.String() }
func (n NumericScalar) Numeric(Engine) (string, error)   { return n.Value.String(), nil }
func (n NumericScalar) Markup(en Engine) (string, error) { return en.LaTeX(n.Value) }
func (n NumericScalar) Pretty(Engine) (string, error)    { return n.Value.String(), nil }

// Float returns the scalar as a float64.
func (n NumericScalar) Float() float64 { return n.Value.Float64() }
