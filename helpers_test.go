package mathsolve_test

import (
	"context"
	"errors"
	"sync"

	"github.com/njchilds90/mathsolve"
	"github.com/njchilds90/mathsolve/symbolic"
)

func newProcessor(opts ...mathsolve.Option) *mathsolve.Processor {
	return mathsolve.NewProcessor(symbolic.NewEngine(), opts...)
}

func strs(es []symbolic.Expr) []string {
	out := make([]string, len(es))
	for i, e := range es {
		out[i] = e.String()
	}
	return out
}

var errBroken = errors.New("engine offline")

// faultyEngine fails a few strategies and delegates the rest.
type faultyEngine struct{ *symbolic.Engine }

func (faultyEngine) TrigSimp(symbolic.Expr) (symbolic.Expr, error) { panic("trig table missing") }
func (faultyEngine) Factor(symbolic.Expr) (symbolic.Expr, error)   { return nil, errBroken }
func (faultyEngine) LaTeX(symbolic.Expr) (string, error)           { return "", errBroken }

// brokenEngine cannot solve or simplify.
type brokenEngine struct{ *symbolic.Engine }

func (brokenEngine) Solve(symbolic.Expr, []string) ([]symbolic.Expr, error) { return nil, errBroken }
func (brokenEngine) Simplify(symbolic.Expr) (symbolic.Expr, error)          { return nil, errBroken }

type recordingExplainer struct {
	mu    sync.Mutex
	steps []string
	errs  []string
}

func (r *recordingExplainer) ExplainError(_ context.Context, expression, errMsg string) string {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.errs = append(r.errs, expression)
	return "check the input"
}

func (r *recordingExplainer) ExplainStep(_ context.Context, stage, input, output string) string {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.steps = append(r.steps, stage)
	return stage + ": " + input + " -> " + output
}
