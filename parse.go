package mathsolve

import (
	"errors"
	"strings"

	"go.uber.org/zap"

	"github.com/njchilds90/mathsolve/notation"
	"github.com/njchilds90/mathsolve/symbolic"
)

// Kind tags a parsed expression.
type Kind int

const (
	PlainExpression Kind = iota
	Equation
	Inequality
	Derivative
	Integral
)

func (k Kind) String() string {
	switch k {
	case Equation:
		return "equation"
	case Inequality:
		return "inequality"
	case Derivative:
		return "derivative"
	case Integral:
		return "integral"
	}
	return "expression"
}

// ParsedExpression is an engine expression tagged with its kind.
type ParsedExpression struct {
	Kind Kind
	Expr symbolic.Expr
}

// Parsed tags e by its top-level node.
func Parsed(e symbolic.Expr) ParsedExpression {
	switch v := e.(type) {
	case *symbolic.Derivative:
		return ParsedExpression{Kind: Derivative, Expr: e}
	case *symbolic.Integral:
		return ParsedExpression{Kind: Integral, Expr: e}
	case *symbolic.Relational:
		if v.IsEquation() {
			return ParsedExpression{Kind: Equation, Expr: e}
		}
		return ParsedExpression{Kind: Inequality, Expr: e}
	}
	return ParsedExpression{Kind: PlainExpression, Expr: e}
}

// Parser runs the first pipeline stage: input classification, lexical
// normalization, notation resolution and engine parsing.
type Parser struct {
	engine   Engine
	resolver *notation.Resolver
	logger   *zap.Logger
}

// NewParser returns a Parser over engine. A nil logger discards logs.
func NewParser(engine Engine, logger *zap.Logger) *Parser {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Parser{
		engine:   engine,
		resolver: notation.NewResolver(engine, logger),
		logger:   logger,
	}
}

// Parse turns raw input into a ParsedExpression. The returned stage is
// filled in either way; the error is always a *ParseError.
func (p *Parser) Parse(input string) (*ParseStage, error) {
	st := &ParseStage{Raw: input}
	err := p.parse(st, input)
	if err == nil && symbolic.IsUndefined(st.Parsed.Expr) {
		err = &ParseError{Message: "expression is undefined", Input: st.Parsed.Expr.String()}
	}
	if err != nil {
		var perr *ParseError
		if errors.As(err, &perr) {
			perr.Original = input
		}
		st.Errors = append(st.Errors, err.Error())
		return st, err
	}
	st.Success = true
	return st, nil
}

func (p *Parser) parse(st *ParseStage, input string) error {
	text := strings.TrimSpace(input)
	if text == "" {
		return &ParseError{Message: "nothing to parse", Input: input, Cause: ErrEmptyInput}
	}

	st.InputKind = notation.ClassifyInput(text)
	if st.InputKind == notation.LaTeXLike {
		e, err := p.engine.ParseLaTeX(text)
		if err == nil {
			st.Normalized = e.String()
			st.Parsed = Parsed(e)
			return nil
		}
		p.logger.Debug("latex parse failed, stripping markup", zap.String("input", text), zap.Error(err))
		st.Errors = append(st.Errors, "latex: "+err.Error())
		text = notation.StripLaTeX(text)
	}

	text = notation.Normalize(text)
	if lhs, rhs, ok := notation.SplitEquation(text); ok {
		l, lt, err := p.parseSide(lhs)
		if err != nil {
			return err
		}
		r, rt, err := p.parseSide(rhs)
		if err != nil {
			return err
		}
		st.Normalized = lt + " = " + rt
		st.Parsed = ParsedExpression{Kind: Equation, Expr: symbolic.Eq(l, r)}
		return nil
	}

	e, resolved, err := p.parseSide(text)
	if err != nil {
		return err
	}
	st.Normalized = resolved
	st.Parsed = Parsed(e)
	return nil
}

// parseSide parses one normalized side. A whole-text integrate(A, B) or
// diff(A, B) call is built directly as an unevaluated construct.
func (p *Parser) parseSide(text string) (symbolic.Expr, string, error) {
	if c, ok := notation.MatchConstruct(text); ok {
		body, resolved, err := p.resolveAndParse(c.Body)
		if err != nil {
			return nil, "", err
		}
		var e symbolic.Expr
		if c.Name == "diff" {
			e = symbolic.DerivativeOf(body, c.Var)
		} else {
			e = symbolic.IntegralOf(body, c.Var)
		}
		return e, c.Name + "(" + resolved + ", " + c.Var + ")", nil
	}
	return p.resolveAndParse(text)
}

func (p *Parser) resolveAndParse(text string) (symbolic.Expr, string, error) {
	resolved, err := p.resolver.Resolve(text)
	if err != nil {
		msg := "could not resolve notation"
		if errors.Is(err, notation.ErrUnbalancedBars) {
			msg = "unbalanced absolute value bars"
		}
		return nil, "", &ParseError{Message: msg, Input: text, Cause: err}
	}
	e, err := p.engine.Parse(resolved)
	if err != nil {
		return nil, resolved, &ParseError{Message: "could not build an expression", Input: resolved, Cause: err}
	}
	return e, resolved, nil
}
