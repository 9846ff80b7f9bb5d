// Package mathsolve turns free-form math input into classified, solved
// and rendered results.
//
// Design goals:
//   - Text in, typed stages out: parse, simplify, solve, format
//   - Every stage isolates its own failures; only a parse failure aborts
//   - The expression engine sits behind the Engine interface
//   - Deterministic output suitable for CLIs, HTTP tools and agents
package mathsolve

import "github.com/njchilds90/mathsolve/symbolic"

// Engine is the expression engine the pipeline drives. Every operation
// may fail independently. *symbolic.Engine implements it.
type Engine interface {
	Parse(text string) (symbolic.Expr, error)
	ParseLaTeX(text string) (symbolic.Expr, error)

	Simplify(e symbolic.Expr) (symbolic.Expr, error)
	Expand(e symbolic.Expr) (symbolic.Expr, error)
	Factor(e symbolic.Expr) (symbolic.Expr, error)
	Cancel(e symbolic.Expr) (symbolic.Expr, error)
	Collect(e symbolic.Expr, vars []string) (symbolic.Expr, error)
	TrigSimp(e symbolic.Expr) (symbolic.Expr, error)
	LogCombine(e symbolic.Expr) (symbolic.Expr, error)
	PowSimp(e symbolic.Expr) (symbolic.Expr, error)
	ExpandLog(e symbolic.Expr) (symbolic.Expr, error)
	ReplaceLogExp(e symbolic.Expr) (symbolic.Expr, error)

	Solve(e symbolic.Expr, vars []string) ([]symbolic.Expr, error)
	SolveInequality(e symbolic.Expr, varName string) (*symbolic.IntervalSet, error)
	Evalf(e symbolic.Expr) (symbolic.Expr, error)
	Doit(e symbolic.Expr) (symbolic.Expr, error)

	CountOps(e symbolic.Expr) int
	FreeSymbols(e symbolic.Expr) []string
	LaTeX(e symbolic.Expr) (string, error)
	Pretty(e symbolic.Expr) (string, error)
}

var _ Engine = (*symbolic.Engine)(nil)
