package mathsolve

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// Explainer comments on pipeline failures and stages. Implementations
// never fail; an unavailable assistant answers with a sentinel text.
type Explainer interface {
	ExplainError(ctx context.Context, expression, errMsg string) string
	ExplainStep(ctx context.Context, stage, input, output string) string
}

// Option configures a Processor.
type Option func(*Processor)

// WithLogger sets the logger shared by every stage.
func WithLogger(l *zap.Logger) Option {
	return func(p *Processor) {
		if l != nil {
			p.logger = l
		}
	}
}

// WithExplainer attaches an assistant. errors enables explanations of
// parse failures and steps enables explanations of successful stages.
func WithExplainer(e Explainer, errors, steps bool) Option {
	return func(p *Processor) {
		p.explainer = e
		p.explainErrors = errors
		p.explainSteps = steps
	}
}

// Processor runs the parse, simplify, solve and format stages. It holds
// no per-request state and is safe for concurrent use when its engine
// and explainer are.
type Processor struct {
	engine        Engine
	parser        *Parser
	simplifier    *Simplifier
	classifier    *Classifier
	formatter     *Formatter
	explainer     Explainer
	explainErrors bool
	explainSteps  bool
	logger        *zap.Logger
}

// NewProcessor returns a Processor over engine.
func NewProcessor(engine Engine, opts ...Option) *Processor {
	p := &Processor{engine: engine, logger: zap.NewNop()}
	for _, opt := range opts {
		opt(p)
	}
	p.parser = NewParser(engine, p.logger)
	p.simplifier = NewSimplifier(engine, p.logger)
	p.classifier = NewClassifier(engine, p.logger)
	p.formatter = NewFormatter(engine, p.logger)
	return p
}

// Process runs input through the pipeline. Only a parse failure aborts;
// it is reported in the trace's Err.
func (p *Processor) Process(ctx context.Context, input string) *SessionTrace {
	tr := newTrace(input)
	defer func() { tr.Duration = time.Since(tr.Started) }()
	log := p.logger.With(zap.String("trace_id", tr.ID.String()))

	parsed, err := p.parser.Parse(input)
	tr.Stages = append(tr.Stages, parsed)
	if err != nil {
		log.Debug("parse failed", zap.String("input", input), zap.Error(err))
		tr.Err = err
		if p.explainer != nil && p.explainErrors {
			tr.Explanations = append(tr.Explanations, Explanation{
				Stage: "parse",
				Text:  p.explainer.ExplainError(ctx, input, err.Error()),
			})
		}
		return tr
	}
	log.Debug("parsed", zap.Stringer("kind", parsed.Parsed.Kind), zap.String("normalized", parsed.Normalized))
	p.explain(ctx, tr, "Parsing", parsed)

	simplified := p.simplifier.Simplify(parsed.Parsed)
	tr.Stages = append(tr.Stages, simplified)
	log.Debug("simplified", zap.String("strategy", string(simplified.Strategy)), zap.Int("candidates", len(simplified.Candidates)))
	p.explain(ctx, tr, "Simplification", simplified)

	res := p.classifier.ClassifyAndSolve(Problem{Parsed: parsed.Parsed, Simplified: simplified.Chosen})
	solved := &SolveStage{Input: simplified.Chosen, ProblemResult: res}
	tr.Stages = append(tr.Stages, solved)
	tr.Category = res.Category
	log.Debug("solved", zap.String("category", string(res.Category)), zap.Bool("success", res.Success))
	if !res.Success {
		return tr
	}
	p.explain(ctx, tr, "Solution ("+string(res.Category)+")", solved)

	formatted := p.formatter.Format(res.Solution, res.Category)
	tr.Stages = append(tr.Stages, formatted)
	tr.Output = formatted
	tr.Success = formatted.Success
	return tr
}

func (p *Processor) explain(ctx context.Context, tr *SessionTrace, label string, st Stage) {
	if p.explainer == nil || !p.explainSteps {
		return
	}
	in, out := st.Describe()
	tr.Explanations = append(tr.Explanations, Explanation{
		Stage: st.Name(),
		Text:  p.explainer.ExplainStep(ctx, label, in, out),
	})
}
