package symbolic

import (
	"errors"
	"fmt"
	"math/big"
	"strconv"
	"strings"
	"text/scanner"
)

// ============================================================
// Plain-text parser
// ============================================================
//
// Grammar (implicit multiplication by juxtaposition):
//
//	relation := sum [relop sum]
//	sum      := product {("+" | "-") product}
//	product  := unary {("*" | "/") unary | unary}
//	unary    := ("-" | "+") unary | power
//	power    := postfix [("**" | "^") unary]
//	postfix  := primary {"!"}
//	primary  := number | ident [args] | func operand | "(" relation ")"

// Operator tokens beyond the scanner's single characters.
const (
	tokPow rune = -100 - iota
	tokLe
	tokGe
	tokEqEq
	tokNe
)

type parseError struct {
	col   int
	msg   string
	cause error
}

func (e *parseError) Error() string {
	return fmt.Sprintf("syntax error at column %d: %s", e.col, e.msg)
}

func (e *parseError) Unwrap() error {
	if e.cause != nil {
		return e.cause
	}
	return ErrSyntax
}

type lexer struct {
	scanner.Scanner
	tok  rune
	text string
	err  error
}

func newLexer(src string) *lexer {
	lx := &lexer{}
	lx.Init(strings.NewReader(src))
	lx.Mode = scanner.ScanIdents | scanner.ScanInts | scanner.ScanFloats
	lx.Error = func(s *scanner.Scanner, msg string) {
		if lx.err == nil {
			lx.err = &parseError{col: s.Pos().Column, msg: msg}
		}
	}
	lx.next()
	return lx
}

func (lx *lexer) next() {
	tok := lx.Scan()
	lx.text = lx.TokenText()
	switch {
	case tok == '*' && lx.Peek() == '*':
		lx.Next()
		tok, lx.text = tokPow, "**"
	case tok == '^':
		tok = tokPow
	case tok == '<' && lx.Peek() == '=':
		lx.Next()
		tok, lx.text = tokLe, "<="
	case tok == '>' && lx.Peek() == '=':
		lx.Next()
		tok, lx.text = tokGe, ">="
	case tok == '=' && lx.Peek() == '=':
		lx.Next()
		tok, lx.text = tokEqEq, "=="
	case tok == '!' && lx.Peek() == '=':
		lx.Next()
		tok, lx.text = tokNe, "!="
	}
	lx.tok = tok
	if lx.err != nil {
		panic(lx.err)
	}
}

func (lx *lexer) fail(format string, args ...interface{}) {
	panic(&parseError{col: lx.Position.Column, msg: fmt.Sprintf(format, args...)})
}

func (lx *lexer) unsupported(format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	panic(&parseError{col: lx.Position.Column, msg: msg, cause: fmt.Errorf("%w: %s", ErrUnsupported, msg)})
}

func (lx *lexer) expect(tok rune, what string) {
	if lx.tok != tok {
		lx.fail("expected %s, found %q", what, lx.text)
	}
	lx.next()
}

// Parse reads a plain-text expression such as "2*x**2 + sin(x) >= 1".
func Parse(src string) (e Expr, err error) {
	if strings.TrimSpace(src) == "" {
		return nil, &parseError{col: 1, msg: "empty expression"}
	}
	defer func() {
		if r := recover(); r != nil {
			var pe *parseError
			if rerr, ok := r.(error); ok && errors.As(rerr, &pe) {
				e, err = nil, pe
				return
			}
			panic(r)
		}
	}()
	lx := newLexer(src)
	e = parseRelation(lx)
	if lx.tok != scanner.EOF {
		lx.fail("unexpected %q", lx.text)
	}
	return e, nil
}

// MustParse is Parse for known-good input; it panics on error.
func MustParse(src string) Expr {
	e, err := Parse(src)
	if err != nil {
		panic(err)
	}
	return e
}

func parseRelation(lx *lexer) Expr {
	lhs := parseSum(lx)
	var op string
	switch lx.tok {
	case '<':
		op = OpLt
	case '>':
		op = OpGt
	case tokLe:
		op = OpLe
	case tokGe:
		op = OpGe
	case tokEqEq:
		op = OpEq
	case tokNe:
		op = OpNe
	case '=':
		lx.fail("bare '=' is not an expression; split the equation first")
	default:
		return lhs
	}
	lx.next()
	rhs := parseSum(lx)
	return Rel(op, lhs, rhs).Simplify()
}

func parseSum(lx *lexer) Expr {
	terms := []Expr{parseProduct(lx)}
	for lx.tok == '+' || lx.tok == '-' {
		neg := lx.tok == '-'
		lx.next()
		t := parseProduct(lx)
		if neg {
			t = Neg(t)
		}
		terms = append(terms, t)
	}
	if len(terms) == 1 {
		return terms[0]
	}
	return AddOf(terms...)
}

// startsOperand reports whether the current token can begin an
// implicitly multiplied factor.
func startsOperand(lx *lexer) bool {
	switch lx.tok {
	case scanner.Ident, scanner.Int, scanner.Float, '(':
		return true
	}
	return false
}

func parseProduct(lx *lexer) Expr {
	acc := parseUnary(lx)
	for {
		switch {
		case lx.tok == '*':
			lx.next()
			acc = MulOf(acc, parseUnary(lx))
		case lx.tok == '/':
			lx.next()
			d := parseUnary(lx)
			if n, ok := d.(*Num); ok && n.IsZero() {
				lx.fail("division by zero")
			}
			acc = Div(acc, d)
		case startsOperand(lx):
			acc = MulOf(acc, parsePower(lx))
		default:
			return acc
		}
	}
}

func parseUnary(lx *lexer) Expr {
	switch lx.tok {
	case '-':
		lx.next()
		return Neg(parseUnary(lx))
	case '+':
		lx.next()
		return parseUnary(lx)
	}
	return parsePower(lx)
}

func parsePower(lx *lexer) Expr {
	base := parsePostfix(lx)
	if lx.tok == tokPow {
		lx.next()
		return PowOf(base, parseUnary(lx))
	}
	return base
}

func parsePostfix(lx *lexer) Expr {
	e := parsePrimary(lx)
	for lx.tok == '!' {
		lx.next()
		e = FactorialOf(e)
	}
	return e
}

func parsePrimary(lx *lexer) Expr {
	switch lx.tok {
	case scanner.Int:
		r, ok := new(big.Rat).SetString(lx.text)
		if !ok {
			lx.fail("bad integer %q", lx.text)
		}
		lx.next()
		return ratNum(r)
	case scanner.Float:
		f, err := strconv.ParseFloat(lx.text, 64)
		if err != nil {
			lx.fail("bad number %q", lx.text)
		}
		lx.next()
		return NFloat(f)
	case '(':
		lx.next()
		e := parseRelation(lx)
		lx.expect(')', "')'")
		return e
	case scanner.Ident:
		name := lx.text
		lx.next()
		return parseIdent(lx, name)
	case scanner.EOF:
		lx.fail("unexpected end of input")
	}
	lx.fail("unexpected %q", lx.text)
	return nil
}

// constants maps identifiers to named constants.
var constants = map[string]*Const{"pi": Pi, "E": E, "oo": Infinity, "I": ImagUnit}

// aliases maps alternative spellings to kernel function names.
var aliases = map[string]string{"ln": "log", "Abs": "abs", "arcsin": "asin", "arccos": "acos", "arctan": "atan"}

func parseIdent(lx *lexer, name string) Expr {
	if c, ok := constants[name]; ok {
		return c
	}
	if alias, ok := aliases[name]; ok {
		name = alias
	}
	switch name {
	case "Sum", "Product", "beta", "Max", "Min", "sqrt", "cbrt", "diff", "Derivative", "integrate", "Integral", "log":
	default:
		if !IsFunction(name) {
			return S(name)
		}
	}
	if lx.tok != '(' {
		if !startsOperand(lx) {
			lx.fail("function %s needs an argument", name)
		}
		return applyFunc(lx, name, []Expr{parsePower(lx)})
	}
	return applyFunc(lx, name, parseArgs(lx))
}

func parseArgs(lx *lexer) []Expr {
	lx.expect('(', "'('")
	var args []Expr
	if lx.tok == ')' {
		lx.next()
		return args
	}
	for {
		args = append(args, parseRelation(lx))
		switch lx.tok {
		case ')':
			lx.next()
			return args
		case ',':
			lx.next()
		default:
			lx.fail("unexpected %q in argument list", lx.text)
		}
	}
}

func applyFunc(lx *lexer, name string, args []Expr) Expr {
	arity := func(min, max int) {
		if len(args) < min || len(args) > max {
			lx.fail("%s takes %d to %d arguments, got %d", name, min, max, len(args))
		}
	}
	switch name {
	case "Sum", "Product", "beta":
		lx.unsupported("%s is not supported", name)
	case "sqrt":
		arity(1, 1)
		return SqrtOf(args[0])
	case "cbrt":
		arity(1, 1)
		return PowOf(args[0], F(1, 3))
	case "log":
		arity(1, 2)
		if len(args) == 2 {
			return Div(LogOf(args[0]), LogOf(args[1]))
		}
		return LogOf(args[0])
	case "diff", "Derivative", "integrate", "Integral":
		arity(1, 2)
		v := constructVar(lx, name, args)
		if name == "diff" || name == "Derivative" {
			return DerivativeOf(args[0], v)
		}
		return IntegralOf(args[0], v)
	case "Max", "Min":
		if len(args) == 0 {
			lx.fail("%s needs arguments", name)
		}
		var best *Num
		for _, a := range args {
			n, ok := a.Eval()
			if !ok {
				lx.unsupported("%s of non-numeric arguments", name)
			}
			if best == nil || (name == "Max" && numCmp(n, best) > 0) || (name == "Min" && numCmp(n, best) < 0) {
				best = n
			}
		}
		return best
	}
	arity(1, 1)
	return Fn(name, args[0])
}

// constructVar returns the variable of diff/integrate: the explicit
// second argument, or the only free symbol of the first.
func constructVar(lx *lexer, name string, args []Expr) string {
	if len(args) == 2 {
		s, ok := args[1].(*Sym)
		if !ok {
			lx.fail("%s: variable must be a symbol, got %s", name, args[1])
		}
		return s.name
	}
	syms := SortedSymbols(args[0])
	if len(syms) != 1 {
		lx.fail("%s: specify the variable", name)
	}
	return syms[0]
}
