package symbolic

import (
	"fmt"
	"runtime/debug"
)

// Engine exposes the kernel as a set of independently failable
// operations. Kernel panics (division by zero, non-finite values) are
// recovered and returned as errors wrapping ErrEvaluation.
type Engine struct {
	// Trace, when set, receives the stack of every recovered panic.
	Trace func(op string, stack []byte)
}

func NewEngine() *Engine { return &Engine{} }

func guard[T any](en *Engine, op string, f func() (T, error)) (out T, err error) {
	defer func() {
		if r := recover(); r != nil {
			if en != nil && en.Trace != nil {
				en.Trace(op, debug.Stack())
			}
			var zero T
			out, err = zero, fmt.Errorf("%s: %w: %v", op, ErrEvaluation, r)
		}
	}()
	return f()
}

func pure(f func(Expr) Expr, e Expr) func() (Expr, error) {
	return func() (Expr, error) { return f(e), nil }
}

func (en *Engine) Parse(text string) (Expr, error) {
	return guard(en, "parse", func() (Expr, error) { return Parse(text) })
}

func (en *Engine) ParseLaTeX(text string) (Expr, error) {
	return guard(en, "parse_latex", func() (Expr, error) { return ParseLaTeX(text) })
}

func (en *Engine) Simplify(e Expr) (Expr, error) {
	return guard(en, "simplify", pure(DeepSimplify, e))
}

func (en *Engine) Expand(e Expr) (Expr, error) {
	return guard(en, "expand", pure(Expand, e))
}

func (en *Engine) Factor(e Expr) (Expr, error) {
	return guard(en, "factor", func() (Expr, error) { return FactorExpr(e) })
}

func (en *Engine) Cancel(e Expr) (Expr, error) {
	return guard(en, "cancel", func() (Expr, error) { return Cancel(e) })
}

// Collect groups e by each of vars in turn.
func (en *Engine) Collect(e Expr, vars []string) (Expr, error) {
	return guard(en, "collect", func() (Expr, error) {
		if len(vars) == 0 {
			return nil, fmt.Errorf("%w: collect needs a variable", ErrUnsupported)
		}
		out := e
		for _, v := range vars {
			out = Collect(out, v)
		}
		return out, nil
	})
}

func (en *Engine) TrigSimp(e Expr) (Expr, error) {
	return guard(en, "trigsimp", pure(TrigSimplify, e))
}

func (en *Engine) LogCombine(e Expr) (Expr, error) {
	return guard(en, "logcombine", pure(LogCombine, e))
}

func (en *Engine) PowSimp(e Expr) (Expr, error) {
	return guard(en, "powsimp", pure(PowSimp, e))
}

func (en *Engine) ExpandLog(e Expr) (Expr, error) {
	return guard(en, "expand_log", pure(ExpandLog, e))
}

func (en *Engine) ReplaceLogExp(e Expr) (Expr, error) {
	return guard(en, "replace_log_exp", pure(ReplaceLogExp, e))
}

func (en *Engine) Solve(e Expr, vars []string) ([]Expr, error) {
	return guard(en, "solve", func() ([]Expr, error) { return Solve(e, vars) })
}

func (en *Engine) SolveInequality(e Expr, varName string) (*IntervalSet, error) {
	return guard(en, "solve_inequality", func() (*IntervalSet, error) { return SolveInequality(e, varName) })
}

func (en *Engine) Evalf(e Expr) (Expr, error) {
	return guard(en, "evalf", pure(Evalf, e))
}

func (en *Engine) Doit(e Expr) (Expr, error) {
	return guard(en, "doit", func() (Expr, error) { return Doit(e) })
}

func (en *Engine) CountOps(e Expr) int { return CountOps(e) }

func (en *Engine) FreeSymbols(e Expr) []string { return SortedSymbols(e) }

func (en *Engine) LaTeX(e Expr) (string, error) {
	return guard(en, "latex", func() (string, error) { return e.LaTeX(), nil })
}

func (en *Engine) Pretty(e Expr) (string, error) {
	return guard(en, "pretty", func() (string, error) { return Pretty(e), nil })
}
