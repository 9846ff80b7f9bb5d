package notation

import (
	"errors"
	"strings"

	"go.uber.org/zap"

	"github.com/njchilds90/mathsolve/symbolic"
)

// ErrUnbalancedBars is returned when absolute-value bars do not pair up.
var ErrUnbalancedBars = errors.New("unbalanced absolute value bars")

// Evaluator is the part of the expression engine needed to evaluate
// numeric calls eagerly.
type Evaluator interface {
	Parse(text string) (symbolic.Expr, error)
	Simplify(e symbolic.Expr) (symbolic.Expr, error)
	FreeSymbols(e symbolic.Expr) []string
}

// eagerNames are the calls evaluated when their argument is numeric.
var eagerNames = map[string]bool{
	"log10": true, "log": true, "sqrt": true, "sin": true,
	"cos": true, "tan": true, "factorial": true, "exp": true,
}

// Resolver rewrites normalized text into unambiguous parser input.
type Resolver struct {
	eval   Evaluator
	logger *zap.Logger
}

// NewResolver returns a Resolver. A nil Evaluator disables eager
// evaluation; a nil logger discards logs.
func NewResolver(eval Evaluator, logger *zap.Logger) *Resolver {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Resolver{eval: eval, logger: logger}
}

// Resolve runs the token passes over text: eager numeric evaluation,
// power-call shorthand, implicit application, absolute-value bars and
// implicit multiplication. It is idempotent on its own output.
func (r *Resolver) Resolve(text string) (string, error) {
	toks, err := r.resolveTokens(Tokenize(text))
	if err != nil {
		return "", err
	}
	return Render(toks), nil
}

func (r *Resolver) resolveTokens(toks []Token) ([]Token, error) {
	toks = r.evalCalls(toks)
	toks = powerCalls(toks)
	toks = applyImplicit(toks)
	toks, err := absBars(toks)
	if err != nil {
		return nil, err
	}
	return implicitMul(toks), nil
}

// matchParen returns the index of the parenthesis closing toks[open],
// or -1.
func matchParen(toks []Token, open int) int {
	depth := 0
	for i := open; i < len(toks); i++ {
		switch toks[i].Kind {
		case LParen:
			depth++
		case RParen:
			depth--
			if depth == 0 {
				return i
			}
		}
	}
	return -1
}

// ============================================================
// Eager evaluation
// ============================================================

func (r *Resolver) evalCalls(toks []Token) []Token {
	if r.eval == nil {
		return toks
	}
	out := make([]Token, 0, len(toks))
	for i := 0; i < len(toks); i++ {
		t := toks[i]
		if t.Kind == Ident && eagerNames[t.Text] && i+1 < len(toks) && toks[i+1].Kind == LParen {
			if end := matchParen(toks, i+1); end > i+2 {
				if val, ok := r.evalCall(t.Text, toks[i+2:end]); ok {
					out = append(out, val...)
					i = end
					continue
				}
			}
		}
		out = append(out, t)
	}
	return out
}

// evalCall evaluates name(arg) when arg has no free variables. Every
// failure keeps the call as written.
func (r *Resolver) evalCall(name string, arg []Token) ([]Token, bool) {
	inner, err := r.resolveTokens(arg)
	if err != nil {
		return nil, false
	}
	call := name + "(" + Render(inner) + ")"
	e, err := r.eval.Parse(call)
	if err != nil {
		r.logger.Debug("eager evaluation skipped", zap.String("call", call), zap.Error(err))
		return nil, false
	}
	if len(r.eval.FreeSymbols(e)) > 0 {
		return nil, false
	}
	v, err := r.eval.Simplify(e)
	if err != nil {
		r.logger.Debug("eager evaluation failed", zap.String("call", call), zap.Error(err))
		return nil, false
	}
	val := Tokenize(v.String())
	if len(val) == 0 {
		return nil, false
	}
	if isAtomic(val) {
		return val, true
	}
	out := append([]Token{tok(LParen, "(")}, val...)
	return append(out, tok(RParen, ")")), true
}

// isAtomic reports whether toks is a single number, name or call.
func isAtomic(toks []Token) bool {
	if len(toks) == 1 {
		return toks[0].Kind == Number || toks[0].Kind == Ident
	}
	return len(toks) > 2 && toks[0].Kind == Ident && toks[1].Kind == LParen && matchParen(toks, 1) == len(toks)-1
}

// ============================================================
// Function notation
// ============================================================

// powerCalls rewrites name**n(args) to name(args)**n.
func powerCalls(toks []Token) []Token {
	out := make([]Token, 0, len(toks))
	for i := 0; i < len(toks); i++ {
		t := toks[i]
		if isFunc(t) && i+3 < len(toks) &&
			toks[i+1].Kind == Op && toks[i+1].Text == "**" &&
			toks[i+2].Kind == Number && !strings.Contains(toks[i+2].Text, ".") &&
			toks[i+3].Kind == LParen {
			if end := matchParen(toks, i+3); end > 0 {
				out = append(out, t, toks[i+3])
				out = append(out, powerCalls(toks[i+4:end])...)
				out = append(out, toks[end], toks[i+1], toks[i+2])
				i = end
				continue
			}
		}
		out = append(out, t)
	}
	return out
}

// applyImplicit turns a function name followed by a bare atom into a
// call: log x -> log(x). A power on the atom stays inside the call.
func applyImplicit(toks []Token) []Token {
	atom := func(t Token) bool { return t.Kind == Number || isOperand(t) }
	out := make([]Token, 0, len(toks)+4)
	for i := 0; i < len(toks); i++ {
		t := toks[i]
		if !isFunc(t) || i+1 >= len(toks) || !atom(toks[i+1]) {
			out = append(out, t)
			continue
		}
		j := i + 2
		if j+1 < len(toks) && toks[j].Kind == Op && toks[j].Text == "**" && atom(toks[j+1]) {
			j += 2
		}
		out = append(out, t, tok(LParen, "("))
		out = append(out, toks[i+1:j]...)
		out = append(out, tok(RParen, ")"))
		i = j - 1
	}
	return out
}

// ============================================================
// Absolute value and multiplication
// ============================================================

// absBars rewrites |u| to Abs(u) with balanced matching: a bar opens
// where an operand is expected and closes the innermost open group
// otherwise.
func absBars(toks []Token) ([]Token, error) {
	out := make([]Token, 0, len(toks)+len(toks)/2)
	open := 0
	for _, t := range toks {
		if t.Kind != Bar {
			out = append(out, t)
			continue
		}
		if open == 0 || expectsOperand(out) {
			open++
			out = append(out, tok(Ident, "Abs"), tok(LParen, "("))
			continue
		}
		open--
		out = append(out, tok(RParen, ")"))
	}
	if open != 0 {
		return nil, ErrUnbalancedBars
	}
	return out, nil
}

func expectsOperand(out []Token) bool {
	if len(out) == 0 {
		return true
	}
	switch last := out[len(out)-1]; last.Kind {
	case Op:
		return last.Text != "!"
	case LParen, Comma:
		return true
	case Ident:
		return isFunc(last)
	}
	return false
}

// implicitMul inserts '*' between juxtaposed operands. A function name
// is never separated from its argument list.
func implicitMul(toks []Token) []Token {
	out := make([]Token, 0, len(toks)*2)
	for i, t := range toks {
		if i > 0 && needsMul(toks[i-1], t) {
			out = append(out, tok(Op, "*"))
		}
		out = append(out, t)
	}
	return out
}

func needsMul(a, b Token) bool {
	follows := b.Kind == Ident || b.Kind == Number || b.Kind == LParen
	switch {
	case a.Kind == Number, a.Kind == RParen:
		return follows
	case isOperand(a):
		return follows
	}
	return false
}
