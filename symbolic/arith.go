package symbolic

import (
	"math"
	"math/big"
	"sort"
)

// ============================================================
// Add: sum of terms
// ============================================================

type Add struct{ terms []Expr }

func AddOf(terms ...Expr) Expr { return (&Add{terms: terms}).Simplify() }

// Neg returns -e.
func Neg(e Expr) Expr { return MulOf(N(-1), e) }

// Minus returns a - b.
func Minus(a, b Expr) Expr { return AddOf(a, Neg(b)) }

// Div returns a / b.
func Div(a, b Expr) Expr { return MulOf(a, PowOf(b, N(-1))) }

func (a *Add) Simplify() Expr {
	flat := make([]Expr, 0, len(a.terms))
	for _, t := range a.terms {
		s := t.Simplify()
		if inner, ok := s.(*Add); ok {
			flat = append(flat, inner.terms...)
		} else {
			flat = append(flat, s)
		}
	}

	// Like terms share the same non-numeric part.
	type like struct {
		coeff *Num
		rest  Expr
	}
	numAccum := N(0)
	groups := map[string]*like{}
	order := []string{}
	for _, t := range flat {
		if v, ok := t.(*Num); ok {
			numAccum = numAdd(numAccum, v)
			continue
		}
		coeff, rest := extractCoefficient(t)
		key := rest.String()
		if g, seen := groups[key]; seen {
			g.coeff = numAdd(g.coeff, coeff)
			continue
		}
		groups[key] = &like{coeff: coeff, rest: rest}
		order = append(order, key)
	}

	result := make([]Expr, 0, len(order)+1)
	for _, key := range order {
		g := groups[key]
		switch {
		case g.coeff.IsZero():
		case g.coeff.IsOne():
			result = append(result, g.rest)
		default:
			result = append(result, MulOf(g.coeff, g.rest))
		}
	}
	if !numAccum.IsZero() {
		result = append(result, numAccum)
	}
	switch len(result) {
	case 0:
		return numAccum
	case 1:
		return result[0]
	}
	sortTerms(result)
	return &Add{terms: result}
}

// sortTerms orders a sum the way it is printed: higher total degree
// first, numbers last, ties broken by the non-numeric part.
func sortTerms(terms []Expr) {
	type keyed struct {
		e   Expr
		num bool
		deg float64
		key string
	}
	ks := make([]keyed, len(terms))
	for i, t := range terms {
		_, isNum := t.(*Num)
		_, rest := extractCoefficient(t)
		ks[i] = keyed{e: t, num: isNum, deg: totalDegree(rest), key: rest.String()}
	}
	sort.SliceStable(ks, func(i, j int) bool {
		if ks[i].num != ks[j].num {
			return !ks[i].num
		}
		if ks[i].deg != ks[j].deg {
			return ks[i].deg > ks[j].deg
		}
		return ks[i].key < ks[j].key
	})
	for i := range ks {
		terms[i] = ks[i].e
	}
}

func totalDegree(e Expr) float64 {
	switch v := e.(type) {
	case *Sym:
		return 1
	case *Pow:
		if n, ok := v.exp.(*Num); ok {
			return totalDegree(v.base) * n.Float64()
		}
		return totalDegree(v.base)
	case *Mul:
		d := 0.0
		for _, f := range v.factors {
			d += totalDegree(f)
		}
		return d
	case *Add:
		d := 0.0
		for i, t := range v.terms {
			if td := totalDegree(t); i == 0 || td > d {
				d = td
			}
		}
		return d
	}
	return 0
}

func (a *Add) String() string { return plain.expr(a) }

func (a *Add) LaTeX() string {
	out := ""
	for i, t := range a.terms {
		neg, abs := splitSign(t)
		switch {
		case i == 0:
			out = t.LaTeX()
		case neg:
			out += " - " + abs.LaTeX()
		default:
			out += " + " + t.LaTeX()
		}
	}
	return out
}

func (a *Add) Sub(varName string, value Expr) Expr {
	newTerms := make([]Expr, len(a.terms))
	for i, t := range a.terms {
		newTerms[i] = t.Sub(varName, value)
	}
	return AddOf(newTerms...)
}

func (a *Add) Diff(varName string) Expr {
	dTerms := make([]Expr, len(a.terms))
	for i, t := range a.terms {
		dTerms[i] = t.Diff(varName)
	}
	return AddOf(dTerms...)
}

func (a *Add) Eval() (*Num, bool) {
	acc := N(0)
	for _, t := range a.terms {
		v, ok := t.Eval()
		if !ok {
			return nil, false
		}
		acc = numAdd(acc, v)
	}
	return acc, true
}

func (a *Add) Equal(other Expr) bool {
	o, ok := other.(*Add)
	if !ok || len(a.terms) != len(o.terms) {
		return false
	}
	for i := range a.terms {
		if !a.terms[i].Equal(o.terms[i]) {
			return false
		}
	}
	return true
}

func (a *Add) exprType() string { return "add" }
func (a *Add) toJSON() map[string]interface{} {
	ts := make([]map[string]interface{}, len(a.terms))
	for i, t := range a.terms {
		ts[i] = t.toJSON()
	}
	return map[string]interface{}{"type": "add", "terms": ts}
}
func (a *Add) Terms() []Expr { return a.terms }

// splitSign reports whether a term prints with a leading minus and
// returns its positive counterpart.
func splitSign(t Expr) (bool, Expr) {
	switch v := t.(type) {
	case *Num:
		if v.IsNegative() {
			return true, numNeg(v)
		}
	case *Mul:
		if c, ok := v.factors[0].(*Num); ok && c.IsNegative() {
			rest := append([]Expr{numNeg(c)}, v.factors[1:]...)
			return true, MulOf(rest...)
		}
	}
	return false, t
}

// ============================================================
// Mul: product of factors
// ============================================================

type Mul struct{ factors []Expr }

func MulOf(factors ...Expr) Expr { return (&Mul{factors: factors}).Simplify() }

func (m *Mul) Simplify() Expr {
	flat := make([]Expr, 0, len(m.factors))
	for _, f := range m.factors {
		s := f.Simplify()
		if inner, ok := s.(*Mul); ok {
			flat = append(flat, inner.factors...)
		} else {
			flat = append(flat, s)
		}
	}

	// Factors sharing a base merge their exponents.
	type power struct {
		first Expr
		base  Expr
		exps  []Expr
	}
	coeff := N(1)
	groups := map[string]*power{}
	order := []string{}
	for _, f := range flat {
		if v, ok := f.(*Num); ok {
			coeff = numMul(coeff, v)
			continue
		}
		base, exp := asPower(f)
		key := base.String()
		if g, seen := groups[key]; seen {
			g.exps = append(g.exps, exp)
			continue
		}
		groups[key] = &power{first: f, base: base, exps: []Expr{exp}}
		order = append(order, key)
	}
	if coeff.IsZero() {
		return coeff
	}

	others := make([]Expr, 0, len(order))
	regroup := false
	for _, key := range order {
		g := groups[key]
		f := g.first
		if len(g.exps) > 1 {
			f = PowOf(g.base, AddOf(g.exps...))
		}
		switch v := f.(type) {
		case *Num:
			coeff = numMul(coeff, v)
		case *Mul:
			others = append(others, v.factors...)
			regroup = true
		default:
			others = append(others, f)
		}
	}
	if regroup {
		return MulOf(append([]Expr{coeff}, others...)...)
	}
	if coeff.IsZero() {
		return coeff
	}
	if len(others) == 0 {
		return coeff
	}

	// Precompute sort keys to avoid repeated String() calls in comparator.
	type keyed struct {
		e    Expr
		rank int
		key  string
	}
	ks := make([]keyed, len(others))
	for i, e := range others {
		ks[i] = keyed{e: e, rank: factorRank(e), key: e.String()}
	}
	sort.Slice(ks, func(i, j int) bool {
		if ks[i].rank != ks[j].rank {
			return ks[i].rank < ks[j].rank
		}
		return ks[i].key < ks[j].key
	})
	sorted := make([]Expr, len(ks))
	for i := range ks {
		sorted[i] = ks[i].e
	}

	if coeff.IsOne() {
		if len(sorted) == 1 {
			return sorted[0]
		}
		return &Mul{factors: sorted}
	}
	return &Mul{factors: append([]Expr{coeff}, sorted...)}
}

// factorRank orders factors as numeric radicals, then symbols and their
// powers, then everything else.
func factorRank(e Expr) int {
	base, _ := asPower(e)
	switch base.(type) {
	case *Num:
		return 0
	case *Sym, *Const:
		return 1
	}
	return 2
}

func asPower(e Expr) (Expr, Expr) {
	if p, ok := e.(*Pow); ok {
		return p.base, p.exp
	}
	return e, N(1)
}

func (m *Mul) String() string { return plain.expr(m) }

func (m *Mul) LaTeX() string {
	sign, coeff, rest := m.signedParts()
	var num, den []string
	if !coeff.IsOne() {
		if coeff.approx || coeff.IsInteger() {
			num = append(num, coeff.String())
		} else {
			if coeff.val.Num().Cmp(big.NewInt(1)) != 0 {
				num = append(num, coeff.val.Num().String())
			}
			den = append(den, coeff.val.Denom().String())
		}
	}
	for _, f := range rest {
		if p, ok := f.(*Pow); ok {
			if en, ok := p.exp.(*Num); ok && en.IsNegative() {
				den = append(den, latexFactor(PowOf(p.base, numNeg(en))))
				continue
			}
		}
		num = append(num, latexFactor(f))
	}
	n := joinNonEmpty(num, " ")
	if n == "" {
		n = "1"
	}
	if len(den) == 0 {
		return sign + n
	}
	return sign + `\frac{` + n + "}{" + joinNonEmpty(den, " ") + "}"
}

// signedParts splits a product into its sign, positive numeric
// coefficient and the remaining factors.
func (m *Mul) signedParts() (string, *Num, []Expr) {
	coeff, rest := N(1), m.factors
	if c, ok := m.factors[0].(*Num); ok {
		coeff, rest = c, m.factors[1:]
	}
	sign := ""
	if coeff.IsNegative() {
		sign = "-"
		coeff = numNeg(coeff)
	}
	return sign, coeff, rest
}

func latexFactor(e Expr) string {
	switch e.(type) {
	case *Add, *Relational:
		return `\left(` + e.LaTeX() + `\right)`
	}
	return e.LaTeX()
}

func (m *Mul) Sub(varName string, value Expr) Expr {
	newFactors := make([]Expr, len(m.factors))
	for i, f := range m.factors {
		newFactors[i] = f.Sub(varName, value)
	}
	return MulOf(newFactors...)
}

func (m *Mul) Diff(varName string) Expr {
	terms := make([]Expr, len(m.factors))
	for i, fi := range m.factors {
		dfi := fi.Diff(varName)
		others := make([]Expr, 0, len(m.factors)-1)
		for j, fj := range m.factors {
			if j != i {
				others = append(others, fj)
			}
		}
		if len(others) == 0 {
			terms[i] = dfi
		} else {
			terms[i] = MulOf(append([]Expr{dfi}, others...)...)
		}
	}
	return AddOf(terms...)
}

func (m *Mul) Eval() (*Num, bool) {
	acc := N(1)
	for _, f := range m.factors {
		v, ok := f.Eval()
		if !ok {
			return nil, false
		}
		acc = numMul(acc, v)
	}
	return acc, true
}

func (m *Mul) Equal(other Expr) bool {
	o, ok := other.(*Mul)
	if !ok || len(m.factors) != len(o.factors) {
		return false
	}
	for i := range m.factors {
		if !m.factors[i].Equal(o.factors[i]) {
			return false
		}
	}
	return true
}

func (m *Mul) exprType() string { return "mul" }
func (m *Mul) toJSON() map[string]interface{} {
	fs := make([]map[string]interface{}, len(m.factors))
	for i, f := range m.factors {
		fs[i] = f.toJSON()
	}
	return map[string]interface{}{"type": "mul", "factors": fs}
}
func (m *Mul) Factors() []Expr { return m.factors }

// extractCoefficient splits a canonical term into its numeric
// coefficient and the rest.
func extractCoefficient(e Expr) (*Num, Expr) {
	if m, ok := e.(*Mul); ok && len(m.factors) >= 2 {
		if coeff, ok2 := m.factors[0].(*Num); ok2 {
			rest := m.factors[1:]
			if len(rest) == 1 {
				return coeff, rest[0]
			}
			return coeff, &Mul{factors: rest}
		}
	}
	return N(1), e
}

// ============================================================
// Pow: base**exponent
// ============================================================

type Pow struct{ base, exp Expr }

func PowOf(base, exp Expr) Expr { return (&Pow{base: base, exp: exp}).Simplify() }

func SqrtOf(arg Expr) Expr { return PowOf(arg, F(1, 2)) }

func (p *Pow) Simplify() Expr {
	base := p.base.Simplify()
	exp := p.exp.Simplify()
	en, expIsNum := exp.(*Num)

	if expIsNum && en.IsZero() {
		return N(1)
	}
	if expIsNum && en.IsOne() {
		return base
	}
	if isConst(base, "E") {
		return ExpOf(exp)
	}

	if bn, ok := base.(*Num); ok {
		// 0**0 and 0**negative stay unevaluated and are reported by IsUndefined.
		if bn.IsZero() {
			if expIsNum && (en.IsZero() || en.IsNegative()) {
				return &Pow{base: base, exp: exp}
			}
			return N(0)
		}
		if bn.IsOne() && !bn.approx {
			return N(1)
		}
		if expIsNum {
			if r, ok := numPow(bn, en); ok {
				return r
			}
		}
	}
	if expIsNum && en.IsInteger() && !en.approx {
		switch b := base.(type) {
		case *Pow:
			return PowOf(b.base, MulOf(b.exp, exp))
		case *Mul:
			fs := make([]Expr, len(b.factors))
			for i, f := range b.factors {
				fs[i] = PowOf(f, exp)
			}
			return MulOf(fs...)
		}
	}
	return &Pow{base: base, exp: exp}
}

// numPow evaluates b**e for numeric operands, exactly when possible.
func numPow(b, e *Num) (Expr, bool) {
	if b.approx || e.approx {
		return floatNum(math.Pow(b.Float64(), e.Float64()))
	}
	if e.IsInteger() {
		k := e.val.Num()
		if !k.IsInt64() || k.Int64() > 256 || k.Int64() < -256 {
			return nil, false
		}
		n := k.Int64()
		neg := n < 0
		if neg {
			n = -n
		}
		exp := big.NewInt(n)
		num := new(big.Int).Exp(b.val.Num(), exp, nil)
		den := new(big.Int).Exp(b.val.Denom(), exp, nil)
		r := new(big.Rat).SetFrac(num, den)
		if neg {
			r.Inv(r)
		}
		return ratNum(r), true
	}
	if b.IsNegative() {
		return nil, false
	}
	// b**(p/q): exact when numerator and denominator are perfect q-th powers.
	p, q := e.val.Num(), e.val.Denom()
	if q.IsInt64() && q.Int64() <= 16 && p.IsInt64() {
		rn, ok1 := exactRoot(b.val.Num(), q.Int64())
		rd, ok2 := exactRoot(b.val.Denom(), q.Int64())
		if ok1 && ok2 {
			return numPow(ratNum(new(big.Rat).SetFrac(rn, rd)), N(p.Int64()))
		}
	}
	if e.val.Cmp(ratHalf) == 0 {
		return sqrtExtract(b.val)
	}
	return nil, false
}

// sqrtExtract rewrites sqrt(n/d) as (a/d)*sqrt(b) with b square-free.
func sqrtExtract(r *big.Rat) (Expr, bool) {
	d := r.Denom()
	s := new(big.Int).Mul(r.Num(), d)
	out, in, ok := squareFree(s)
	if !ok || out.Cmp(big.NewInt(1)) == 0 && d.Cmp(big.NewInt(1)) == 0 {
		return nil, false
	}
	coeff := ratNum(new(big.Rat).SetFrac(out, d))
	root := &Pow{base: ratNum(new(big.Rat).SetInt(in)), exp: F(1, 2)}
	if in.Cmp(big.NewInt(1)) == 0 {
		return coeff, true
	}
	if coeff.IsOne() {
		return root, true
	}
	return &Mul{factors: []Expr{coeff, root}}, true
}

// squareFree splits n = out**2 * in by trial division.
func squareFree(n *big.Int) (*big.Int, *big.Int, bool) {
	if n.Sign() <= 0 || !n.IsInt64() || n.Int64() > 1e12 {
		return nil, nil, false
	}
	v := n.Int64()
	out, in := int64(1), int64(1)
	for d := int64(2); d*d <= v; d++ {
		for v%(d*d) == 0 {
			out *= d
			v /= d * d
		}
		if v%d == 0 {
			in *= d
			v /= d
		}
	}
	in *= v
	return big.NewInt(out), big.NewInt(in), true
}

func exactRoot(n *big.Int, q int64) (*big.Int, bool) {
	if n.Sign() < 0 {
		return nil, false
	}
	f, _ := new(big.Float).SetInt(n).Float64()
	guess := int64(math.Round(math.Pow(f, 1/float64(q))))
	for c := guess - 1; c <= guess+1; c++ {
		if c < 0 {
			continue
		}
		cand := big.NewInt(c)
		if new(big.Int).Exp(cand, big.NewInt(q), nil).Cmp(n) == 0 {
			return cand, true
		}
	}
	return nil, false
}

func (p *Pow) String() string { return plain.expr(p) }

func (p *Pow) LaTeX() string {
	if en, ok := p.exp.(*Num); ok && !en.approx {
		switch {
		case en.val.Cmp(ratHalf) == 0:
			return `\sqrt{` + p.base.LaTeX() + "}"
		case en.IsNegative():
			return `\frac{1}{` + PowOf(p.base, numNeg(en)).LaTeX() + "}"
		}
	}
	baseStr := p.base.LaTeX()
	switch b := p.base.(type) {
	case *Add, *Mul, *Pow, *Func:
		baseStr = `\left(` + baseStr + `\right)`
	case *Num:
		if b.IsNegative() || !b.IsInteger() {
			baseStr = `\left(` + baseStr + `\right)`
		}
	}
	return baseStr + "^{" + p.exp.LaTeX() + "}"
}

func (p *Pow) Sub(varName string, value Expr) Expr {
	return PowOf(p.base.Sub(varName, value), p.exp.Sub(varName, value))
}

func (p *Pow) Diff(varName string) Expr {
	du := p.base.Diff(varName)
	dv := p.exp.Diff(varName)
	if _, expIsNum := p.exp.(*Num); expIsNum {
		newExp := AddOf(p.exp, N(-1))
		return MulOf(p.exp, PowOf(p.base, newExp), du)
	}
	if !dependsOn(p.base, varName) {
		return MulOf(PowOf(p.base, p.exp), LogOf(p.base), dv)
	}
	logTerm := MulOf(dv, LogOf(p.base))
	divTerm := MulOf(p.exp, du, PowOf(p.base, N(-1)))
	return MulOf(PowOf(p.base, p.exp), AddOf(logTerm, divTerm))
}

func (p *Pow) Eval() (*Num, bool) {
	b, ok1 := p.base.Eval()
	e, ok2 := p.exp.Eval()
	if !ok1 || !ok2 {
		return nil, false
	}
	if !b.approx && !e.approx && e.IsInteger() && !b.IsZero() {
		if r, ok := numPow(b, e); ok {
			if n, isNum := r.(*Num); isNum {
				return n, true
			}
		}
	}
	return floatNum(math.Pow(b.Float64(), e.Float64()))
}

func (p *Pow) Equal(other Expr) bool {
	o, ok := other.(*Pow)
	return ok && p.base.Equal(o.base) && p.exp.Equal(o.exp)
}

func (p *Pow) exprType() string { return "pow" }
func (p *Pow) toJSON() map[string]interface{} {
	return map[string]interface{}{"type": "pow", "base": p.base.toJSON(), "exp": p.exp.toJSON()}
}
func (p *Pow) Base() Expr    { return p.base }
func (p *Pow) ExpExpr() Expr { return p.exp }
