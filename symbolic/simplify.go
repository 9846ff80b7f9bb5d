package symbolic

import (
	"fmt"
	"math/big"
	"sort"
)

// ============================================================
// Expansion
// ============================================================

func Expand(e Expr) Expr { return expandExpr(e.Simplify()).Simplify() }

func expandExpr(e Expr) Expr {
	switch v := e.(type) {
	case *Add:
		newTerms := make([]Expr, len(v.terms))
		for i, t := range v.terms {
			newTerms[i] = expandExpr(t)
		}
		return AddOf(newTerms...)
	case *Mul:
		acc := Expr(N(1))
		for _, f := range v.factors {
			acc = distribute(acc, expandExpr(f))
		}
		return acc
	case *Pow:
		base := expandExpr(v.base)
		if n, ok := v.exp.(*Num); ok && n.IsInteger() && !n.approx {
			k := n.val.Num().Int64()
			if _, isAdd := base.(*Add); isAdd && k >= 2 && k <= 10 {
				acc := base
				for i := int64(1); i < k; i++ {
					acc = distribute(acc, base)
				}
				return acc
			}
			if _, isMul := base.(*Mul); isMul && k > 0 {
				return expandExpr(PowOf(base, n))
			}
		}
		return PowOf(base, expandExpr(v.exp))
	case *Func:
		return funcOf(v.name, expandExpr(v.arg)).Simplify()
	case *Relational, *Derivative, *Integral:
		return mapChildren(e, expandExpr)
	}
	return e
}

// distribute multiplies two expanded expressions term by term.
func distribute(a, b Expr) Expr {
	ta, tb := termsOf(a), termsOf(b)
	products := make([]Expr, 0, len(ta)*len(tb))
	for _, x := range ta {
		for _, y := range tb {
			products = append(products, MulOf(x, y))
		}
	}
	return AddOf(products...)
}

func termsOf(e Expr) []Expr {
	if a, ok := e.(*Add); ok {
		return a.terms
	}
	return []Expr{e}
}

// ============================================================
// Collect
// ============================================================

// Collect groups terms by powers of varName.
func Collect(expr Expr, varName string) Expr {
	if r, ok := expr.(*Relational); ok {
		return &Relational{op: r.op, lhs: Collect(r.lhs, varName), rhs: Collect(r.rhs, varName)}
	}
	coeffs := PolyCoeffs(Expand(expr), varName)
	if len(coeffs) == 0 {
		return N(0)
	}
	degrees := make([]int, 0, len(coeffs))
	for d := range coeffs {
		degrees = append(degrees, d)
	}
	sort.Sort(sort.Reverse(sort.IntSlice(degrees)))
	terms := make([]Expr, 0, len(degrees))
	for _, d := range degrees {
		c := coeffs[d]
		if cn, ok := c.(*Num); ok && cn.IsZero() {
			continue
		}
		switch d {
		case 0:
			terms = append(terms, c)
		case 1:
			terms = append(terms, MulOf(c, S(varName)))
		default:
			terms = append(terms, MulOf(c, PowOf(S(varName), N(int64(d)))))
		}
	}
	if len(terms) == 0 {
		return N(0)
	}
	return AddOf(terms...)
}

// ============================================================
// Deep Simplification and Trig Identities
// ============================================================

// TrigSimplify applies the Pythagorean identities:
// sin²+cos² = 1 and c - c·sin² = c·cos² (and the cos counterpart).
func TrigSimplify(e Expr) Expr {
	return trigSimplifyExpr(e.Simplify()).Simplify()
}

func trigSimplifyExpr(e Expr) Expr {
	switch v := e.(type) {
	case *Add:
		newTerms := make([]Expr, len(v.terms))
		for i, t := range v.terms {
			newTerms[i] = trigSimplifyExpr(t)
		}
		return trigFindPythagorean(AddOf(newTerms...))
	case *Mul, *Pow, *Func, *Relational:
		return mapChildren(e, trigSimplifyExpr)
	}
	return e
}

// squaredTrig matches c·f(arg)**2 for f in {sin, cos}.
func squaredTrig(t Expr) (name, arg string, coeff *Num, ok bool) {
	coeff, inner := extractCoefficient(t)
	p, isPow := inner.(*Pow)
	if !isPow || !isNumEqual(p.exp, 2) {
		return "", "", nil, false
	}
	fn, isFn := p.base.(*Func)
	if !isFn || (fn.name != "sin" && fn.name != "cos") {
		return "", "", nil, false
	}
	return fn.name, fn.arg.String(), coeff, true
}

func trigFindPythagorean(e Expr) Expr {
	add, ok := e.(*Add)
	if !ok {
		return e
	}
	type trigTerm struct {
		funcName string
		argStr   string
		arg      Expr
		coeff    *Num
		idx      int
	}
	var trigTerms []trigTerm
	numIdx := -1
	for idx, t := range add.terms {
		if _, isNum := t.(*Num); isNum {
			numIdx = idx
			continue
		}
		if name, argStr, coeff, ok := squaredTrig(t); ok {
			_, inner := extractCoefficient(t)
			arg := inner.(*Pow).base.(*Func).arg
			trigTerms = append(trigTerms, trigTerm{name, argStr, arg, coeff, idx})
		}
	}
	without := func(skip ...int) []Expr {
		out := []Expr{}
	next:
		for idx, t := range add.terms {
			for _, s := range skip {
				if idx == s {
					continue next
				}
			}
			out = append(out, t)
		}
		return out
	}
	for i := 0; i < len(trigTerms); i++ {
		for j := i + 1; j < len(trigTerms); j++ {
			ti, tj := trigTerms[i], trigTerms[j]
			if ti.argStr == tj.argStr && ti.funcName != tj.funcName && numCmp(ti.coeff, tj.coeff) == 0 {
				return AddOf(append(without(ti.idx, tj.idx), ti.coeff)...)
			}
		}
	}
	// c - c*sin(u)**2 -> c*cos(u)**2
	if numIdx >= 0 {
		c := add.terms[numIdx].(*Num)
		for _, t := range trigTerms {
			if numCmp(numNeg(t.coeff), c) != 0 {
				continue
			}
			other := "cos"
			if t.funcName == "cos" {
				other = "sin"
			}
			rest := without(numIdx, t.idx)
			return AddOf(append(rest, MulOf(c, PowOf(Fn(other, t.arg), N(2))))...)
		}
	}
	return e
}

// DeepSimplify applies repeated simplification and trig passes until
// stable, then keeps the cheapest of the result, its cancelled form and
// its expansion.
func DeepSimplify(e Expr) Expr {
	if r, ok := e.(*Relational); ok {
		return &Relational{op: r.op, lhs: DeepSimplify(r.lhs), rhs: DeepSimplify(r.rhs)}
	}
	prev := ""
	curr := e.Simplify()
	for i := 0; i < 10; i++ {
		str := curr.String()
		if str == prev {
			break
		}
		prev = str
		curr = TrigSimplify(curr)
	}
	best, bestOps := curr, CountOps(curr)
	candidates := []Expr{Expand(curr)}
	if c, err := Cancel(curr); err == nil {
		candidates = append(candidates, c)
	}
	for _, c := range candidates {
		if ops := CountOps(c); ops < bestOps {
			best, bestOps = c, ops
		}
	}
	return best
}

// ============================================================
// Cancel and Factor
// ============================================================

// Cancel rewrites a univariate rational expression as p/q with p and q
// coprime expanded polynomials and q monic.
func Cancel(e Expr) (Expr, error) {
	if r, ok := e.(*Relational); ok {
		lhs, err := Cancel(r.lhs)
		if err != nil {
			return nil, err
		}
		rhs, err := Cancel(r.rhs)
		if err != nil {
			return nil, err
		}
		return &Relational{op: r.op, lhs: lhs, rhs: rhs}, nil
	}
	num, den := numerDenom(e.Simplify())
	if dn, ok := den.(*Num); ok {
		return Div(Expand(num), dn), nil
	}
	vars := SortedSymbols(e)
	if len(vars) != 1 {
		return nil, fmt.Errorf("%w: cancel needs exactly one variable, got %d", ErrUnsupported, len(vars))
	}
	pn, ok1 := toPoly(num, vars[0])
	pd, ok2 := toPoly(den, vars[0])
	if !ok1 || !ok2 {
		return nil, fmt.Errorf("%w: cancel of non-polynomial ratio", ErrUnsupported)
	}
	g := polyGCD(pn, pd)
	pn, _ = polyDivMod(pn, g)
	pd, _ = polyDivMod(pd, g)
	lead := pd.lead()
	pn = pn.scale(new(big.Rat).Inv(lead))
	pd = pd.monic()
	if pd.degree() == 0 {
		return pn.expr(vars[0]), nil
	}
	return Div(pn.expr(vars[0]), pd.expr(vars[0])), nil
}

// FactorResult holds the result of a factoring attempt.
type FactorResult struct {
	Factors []Expr
	Success bool
}

// Factor factors a univariate polynomial over the rationals: a numeric
// content, one linear factor q*x - p per rational root p/q (repeated by
// multiplicity) and the remaining factor with integer coefficients.
func Factor(expr Expr, varName string) FactorResult {
	p, ok := toPoly(expr, varName)
	if !ok || p.degree() < 1 {
		return FactorResult{Factors: []Expr{expr}}
	}
	coeff := new(big.Rat).Set(p.lead())
	rest := p.monic()
	x := S(varName)
	var linear []Expr
	for rest.degree() > 0 {
		roots, _ := rationalRoots(rest)
		if len(roots) == 0 {
			break
		}
		r := roots[0]
		linear = append(linear, Minus(MulOf(ratNum(new(big.Rat).SetInt(r.Denom())), x), ratNum(new(big.Rat).SetInt(r.Num()))))
		coeff.Quo(coeff, new(big.Rat).SetInt(r.Denom()))
		rest, _ = polyDivMod(rest, poly{new(big.Rat).Neg(r), big.NewRat(1, 1)})
	}
	var factors []Expr
	if rest.degree() > 0 {
		ints := rest.integerCoeffs()
		scaled := make(poly, len(ints))
		for i, c := range ints {
			scaled[i] = new(big.Rat).SetInt(c)
		}
		coeff.Quo(coeff, scaled.lead())
		linear = append(linear, scaled.expr(varName))
	}
	if coeff.Cmp(ratOne) != 0 {
		factors = append(factors, ratNum(coeff))
	}
	factors = append(factors, linear...)
	if len(factors) == 1 && rest.degree() > 0 {
		return FactorResult{Factors: []Expr{expr}}
	}
	return FactorResult{Factors: factors, Success: true}
}

// FactorExpr returns expr as a product of its factors.
func FactorExpr(expr Expr) (Expr, error) {
	if r, ok := expr.(*Relational); ok {
		lhs, err := FactorExpr(r.lhs)
		if err != nil {
			return nil, err
		}
		rhs, err := FactorExpr(r.rhs)
		if err != nil {
			return nil, err
		}
		return &Relational{op: r.op, lhs: lhs, rhs: rhs}, nil
	}
	vars := SortedSymbols(expr)
	switch len(vars) {
	case 0:
		return expr, nil
	case 1:
	default:
		return nil, fmt.Errorf("%w: factor needs exactly one variable, got %d", ErrUnsupported, len(vars))
	}
	num, den := numerDenom(expr.Simplify())
	fr := Factor(num, vars[0])
	if !fr.Success {
		return nil, fmt.Errorf("%w: %s does not factor over the rationals", ErrUnsupported, num)
	}
	out := MulOf(fr.Factors...)
	if dn, ok := den.(*Num); ok && dn.IsOne() {
		return out, nil
	}
	return Div(out, den), nil
}

// ============================================================
// Logarithm and power rewrites
// ============================================================

// LogCombine merges n*log(u) into log(u**n) for integer n and sums of
// logarithms into the logarithm of the product.
func LogCombine(e Expr) Expr {
	return bottomUp(e.Simplify(), func(n Expr) Expr {
		add, ok := n.(*Add)
		if !ok {
			return combineLogTerm(n)
		}
		var logArgs, rest []Expr
		for _, t := range add.terms {
			if f, isLog := combineLogTerm(t).(*Func); isLog && f.name == "log" {
				logArgs = append(logArgs, f.arg)
				continue
			}
			rest = append(rest, t)
		}
		if len(logArgs) < 2 {
			return n
		}
		return AddOf(append(rest, LogOf(MulOf(logArgs...)))...)
	})
}

func combineLogTerm(t Expr) Expr {
	coeff, inner := extractCoefficient(t)
	f, ok := inner.(*Func)
	if !ok || f.name != "log" || coeff.IsOne() || !coeff.IsInteger() || coeff.approx {
		return t
	}
	return LogOf(PowOf(f.arg, coeff))
}

// PowSimp merges exp(a)*exp(b) into exp(a + b) and u**c*w**c into
// (u*w)**c for a shared non-integer exponent c.
func PowSimp(e Expr) Expr {
	return bottomUp(e.Simplify(), func(n Expr) Expr {
		m, ok := n.(*Mul)
		if !ok {
			return n
		}
		var expArgs, rest []Expr
		byExp := map[string][]Expr{}
		expOf := map[string]Expr{}
		var order []string
		for _, f := range m.factors {
			if fn, isFn := f.(*Func); isFn && fn.name == "exp" {
				expArgs = append(expArgs, fn.arg)
				continue
			}
			if p, isPow := f.(*Pow); isPow {
				if en, isNum := p.exp.(*Num); !isNum || !en.IsInteger() {
					key := p.exp.String()
					if _, seen := byExp[key]; !seen {
						order = append(order, key)
						expOf[key] = p.exp
					}
					byExp[key] = append(byExp[key], p.base)
					continue
				}
			}
			rest = append(rest, f)
		}
		changed := len(expArgs) > 1
		for _, key := range order {
			bases := byExp[key]
			if len(bases) > 1 {
				changed = true
				rest = append(rest, PowOf(MulOf(bases...), expOf[key]))
				continue
			}
			rest = append(rest, PowOf(bases[0], expOf[key]))
		}
		if !changed {
			return n
		}
		if len(expArgs) > 0 {
			rest = append(rest, ExpOf(AddOf(expArgs...)))
		}
		return MulOf(rest...)
	})
}

// ExpandLog splits logarithms of products and powers and collapses
// log(exp(u)) to u.
func ExpandLog(e Expr) Expr {
	return bottomUp(e.Simplify(), expandLogNode)
}

func expandLogNode(n Expr) Expr {
	f, ok := n.(*Func)
	if !ok || f.name != "log" {
		return n
	}
	switch a := f.arg.(type) {
	case *Func:
		if a.name == "exp" {
			return a.arg
		}
	case *Mul:
		terms := make([]Expr, len(a.factors))
		for i, x := range a.factors {
			terms[i] = expandLogNode(funcOf("log", x).Simplify())
		}
		return AddOf(terms...)
	case *Pow:
		return MulOf(a.exp, expandLogNode(funcOf("log", a.base).Simplify()))
	}
	return n
}

// ReplaceLogExp rewrites log(exp(u)) and exp(log(u)) to u everywhere.
func ReplaceLogExp(e Expr) Expr {
	return bottomUp(e, func(n Expr) Expr {
		f, ok := n.(*Func)
		if !ok {
			return n
		}
		inner, ok := f.arg.(*Func)
		if !ok {
			return n
		}
		if (f.name == "log" && inner.name == "exp") || (f.name == "exp" && inner.name == "log") {
			return inner.arg
		}
		return n
	})
}
