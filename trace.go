package mathsolve

import (
	"time"

	"github.com/google/uuid"

	"github.com/njchilds90/mathsolve/notation"
	"github.com/njchilds90/mathsolve/symbolic"
)

// Stage is the tagged result of one pipeline stage.
type Stage interface {
	// Name is the stage name: parse, simplify, solve or format.
	Name() string
	OK() bool
	Diagnostics() []string
	// Describe returns the stage input and output as text.
	Describe() (in, out string)
}

// ParseStage is the result of the parse stage.
type ParseStage struct {
	Raw        string
	InputKind  notation.InputKind
	Normalized string
	Parsed     ParsedExpression
	Success    bool
	Errors     []string
}

func (s *ParseStage) Name() string          { return "parse" }
func (s *ParseStage) OK() bool              { return s.Success }
func (s *ParseStage) Diagnostics() []string { return s.Errors }

func (s *ParseStage) Describe() (string, string) {
	if s.Parsed.Expr == nil {
		return s.Raw, ""
	}
	return s.Raw, s.Parsed.Expr.String()
}

// SimplifyStage is the result of the simplify stage. Preserved is set
// for derivatives and integrals, which are never simplified. Failures
// lists the strategies that produced no candidate; they are recovered
// and never reported as diagnostics.
type SimplifyStage struct {
	Original   symbolic.Expr
	Chosen     symbolic.Expr
	Strategy   Strategy
	Candidates []Candidate
	Failures   []*SimplificationError
	Preserved  bool
	Success    bool
}

func (s *SimplifyStage) Name() string               { return "simplify" }
func (s *SimplifyStage) OK() bool                   { return s.Success }
func (s *SimplifyStage) Diagnostics() []string      { return nil }
func (s *SimplifyStage) Describe() (string, string) { return s.Original.String(), s.Chosen.String() }

// SolveStage is the result of the solve stage.
type SolveStage struct {
	Input symbolic.Expr
	ProblemResult
}

func (s *SolveStage) Name() string          { return "solve" }
func (s *SolveStage) OK() bool              { return s.Success }
func (s *SolveStage) Diagnostics() []string { return s.Errors }

func (s *SolveStage) Describe() (string, string) {
	if s.Solution == nil {
		return s.Input.String(), ""
	}
	return s.Input.String(), s.Solution.String()
}

// FormatStage is the result of the format stage.
type FormatStage struct {
	Category Category
	Numeric  string
	Markup   string
	Pretty   string
	Success  bool
	Errors   []string
}

func (s *FormatStage) Name() string               { return "format" }
func (s *FormatStage) OK() bool                   { return s.Success }
func (s *FormatStage) Diagnostics() []string      { return s.Errors }
func (s *FormatStage) Describe() (string, string) { return string(s.Category), s.Numeric }

// Explanation is an assistant comment attached to a trace.
type Explanation struct {
	Stage string
	Text  string
}

// SessionTrace records one request through the pipeline.
type SessionTrace struct {
	ID           uuid.UUID
	Input        string
	Started      time.Time
	Duration     time.Duration
	Stages       []Stage
	Category     Category
	Output       *FormatStage
	Success      bool
	Err          error
	Explanations []Explanation
}

func newTrace(input string) *SessionTrace {
	return &SessionTrace{ID: uuid.New(), Input: input, Started: time.Now()}
}

// Diagnostics collects the diagnostics of every stage in order.
func (t *SessionTrace) Diagnostics() []string {
	var out []string
	for _, s := range t.Stages {
		out = append(out, s.Diagnostics()...)
	}
	return out
}

// Parse returns the parse stage, if recorded.
func (t *SessionTrace) Parse() *ParseStage {
	for _, s := range t.Stages {
		if p, ok := s.(*ParseStage); ok {
			return p
		}
	}
	return nil
}

// Solve returns the solve stage, if recorded.
func (t *SessionTrace) Solve() *SolveStage {
	for _, s := range t.Stages {
		if p, ok := s.(*SolveStage); ok {
			return p
		}
	}
	return nil
}
