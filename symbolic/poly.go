package symbolic

import (
	"math/big"
	"sort"
)

// ============================================================
// Polynomial utilities
// ============================================================

func Degree(expr Expr, varName string) int {
	expr = expr.Simplify()
	switch v := expr.(type) {
	case *Num:
		return 0
	case *Sym:
		if v.name == varName {
			return 1
		}
		return 0
	case *Pow:
		if sym, ok := v.base.(*Sym); ok && sym.name == varName {
			if n, ok2 := v.exp.(*Num); ok2 && n.IsInteger() {
				return int(n.val.Num().Int64())
			}
		}
		return 0
	case *Add:
		maxDeg := 0
		for _, t := range v.terms {
			if d := Degree(t, varName); d > maxDeg {
				maxDeg = d
			}
		}
		return maxDeg
	case *Mul:
		totalDeg := 0
		for _, f := range v.factors {
			totalDeg += Degree(f, varName)
		}
		return totalDeg
	}
	return 0
}

type PolyCoeffsResult map[int]Expr

// PolyCoeffs maps each power of varName in expr to its coefficient.
// Terms that are not monomials in varName land in the constant slot.
func PolyCoeffs(expr Expr, varName string) PolyCoeffsResult {
	result := PolyCoeffsResult{}
	extractCoeffs(expr.Simplify(), varName, result)
	return result
}

func extractCoeffs(e Expr, varName string, out PolyCoeffsResult) {
	switch v := e.(type) {
	case *Num:
		addCoeff(out, 0, v)
	case *Sym:
		if v.name == varName {
			addCoeff(out, 1, N(1))
		} else {
			addCoeff(out, 0, v)
		}
	case *Pow:
		if sym, ok := v.base.(*Sym); ok && sym.name == varName {
			if n, ok2 := v.exp.(*Num); ok2 && n.IsInteger() && n.IsPositive() {
				addCoeff(out, int(n.val.Num().Int64()), N(1))
				return
			}
		}
		addCoeff(out, 0, e)
	case *Mul:
		deg := 0
		coeffFactors := []Expr{}
		for _, f := range v.factors {
			if d := Degree(f, varName); d > 0 {
				deg += d
			} else {
				coeffFactors = append(coeffFactors, f)
			}
		}
		var coeff Expr
		switch len(coeffFactors) {
		case 0:
			coeff = N(1)
		case 1:
			coeff = coeffFactors[0]
		default:
			coeff = MulOf(coeffFactors...)
		}
		addCoeff(out, deg, coeff)
	case *Add:
		for _, t := range v.terms {
			extractCoeffs(t, varName, out)
		}
	default:
		addCoeff(out, 0, e)
	}
}

func addCoeff(out PolyCoeffsResult, deg int, val Expr) {
	if existing, ok := out[deg]; ok {
		out[deg] = AddOf(existing, val).Simplify()
	} else {
		out[deg] = val.Simplify()
	}
}

// symbolicPoly returns the coefficients of the expansion of e in
// varName when every coefficient is free of varName.
func symbolicPoly(e Expr, varName string) (PolyCoeffsResult, int, bool) {
	coeffs := PolyCoeffs(Expand(e), varName)
	deg := 0
	for d, c := range coeffs {
		if dependsOn(c, varName) || d < 0 {
			return nil, 0, false
		}
		if cn, ok := c.(*Num); ok && cn.IsZero() {
			continue
		}
		if d > deg {
			deg = d
		}
	}
	return coeffs, deg, true
}

// ============================================================
// Dense univariate polynomials over the rationals
// ============================================================

// poly holds coefficients by ascending degree.
type poly []*big.Rat

// toPoly converts e to a dense polynomial in varName. It fails when e
// is not a polynomial in varName with exact rational coefficients.
func toPoly(e Expr, varName string) (poly, bool) {
	coeffs, deg, ok := symbolicPoly(e, varName)
	if !ok {
		return nil, false
	}
	p := make(poly, deg+1)
	for i := range p {
		p[i] = new(big.Rat)
	}
	for d, c := range coeffs {
		n, isNum := c.(*Num)
		if !isNum || n.approx {
			return nil, false
		}
		if d <= deg {
			p[d].Set(n.val)
		}
	}
	return p.trim(), true
}

func (p poly) trim() poly {
	n := len(p)
	for n > 1 && p[n-1].Sign() == 0 {
		n--
	}
	return p[:n]
}

func (p poly) degree() int {
	p = p.trim()
	if len(p) == 1 && p[0].Sign() == 0 {
		return -1
	}
	return len(p) - 1
}

func (p poly) isZero() bool { return p.degree() < 0 }

func (p poly) lead() *big.Rat { return p.trim()[len(p.trim())-1] }

func (p poly) eval(x *big.Rat) *big.Rat {
	acc := new(big.Rat)
	for i := len(p) - 1; i >= 0; i-- {
		acc.Mul(acc, x)
		acc.Add(acc, p[i])
	}
	return acc
}

func (p poly) evalFloat(x float64) float64 {
	acc := 0.0
	for i := len(p) - 1; i >= 0; i-- {
		c, _ := p[i].Float64()
		acc = acc*x + c
	}
	return acc
}

// expr rebuilds the polynomial as an expression in varName.
func (p poly) expr(varName string) Expr {
	terms := make([]Expr, 0, len(p))
	x := S(varName)
	for d, c := range p {
		if c.Sign() == 0 {
			continue
		}
		terms = append(terms, MulOf(ratNum(new(big.Rat).Set(c)), PowOf(x, N(int64(d)))))
	}
	return AddOf(terms...)
}

func (p poly) clone() poly {
	out := make(poly, len(p))
	for i, c := range p {
		out[i] = new(big.Rat).Set(c)
	}
	return out
}

func (p poly) scale(k *big.Rat) poly {
	out := make(poly, len(p))
	for i, c := range p {
		out[i] = new(big.Rat).Mul(c, k)
	}
	return out
}

// monic divides p by its leading coefficient.
func (p poly) monic() poly {
	if p.isZero() {
		return p
	}
	return p.trim().scale(new(big.Rat).Inv(p.lead()))
}

// polyDivMod returns q, r with a = q*b + r and deg r < deg b.
func polyDivMod(a, b poly) (poly, poly) {
	b = b.trim()
	if b.isZero() {
		panic("symbolic: polynomial division by zero")
	}
	r := a.clone().trim()
	db := b.degree()
	if r.degree() < db {
		return poly{new(big.Rat)}, r
	}
	q := make(poly, r.degree()-db+1)
	for i := range q {
		q[i] = new(big.Rat)
	}
	lb := b.lead()
	for !r.isZero() && r.degree() >= db {
		shift := r.degree() - db
		c := new(big.Rat).Quo(r.lead(), lb)
		q[shift].Add(q[shift], c)
		for i := 0; i <= db; i++ {
			t := new(big.Rat).Mul(c, b[i])
			r[i+shift].Sub(r[i+shift], t)
		}
		r = r.trim()
	}
	return q.trim(), r
}

// polyGCD returns the monic greatest common divisor of a and b.
func polyGCD(a, b poly) poly {
	a, b = a.trim(), b.trim()
	for !b.isZero() {
		_, r := polyDivMod(a, b)
		a, b = b, r
	}
	return a.monic()
}

// integerCoeffs scales p to integer coefficients.
func (p poly) integerCoeffs() []*big.Int {
	lcm := big.NewInt(1)
	for _, c := range p {
		d := c.Denom()
		g := new(big.Int).GCD(nil, nil, lcm, d)
		lcm.Mul(lcm, new(big.Int).Quo(d, g))
	}
	out := make([]*big.Int, len(p))
	for i, c := range p {
		v := new(big.Rat).Mul(c, new(big.Rat).SetInt(lcm))
		out[i] = new(big.Int).Set(v.Num())
	}
	return out
}

// rationalRoots finds every rational root of p (with multiplicity
// collapsed) and returns them with the deflated remainder.
func rationalRoots(p poly) ([]*big.Rat, poly) {
	p = p.trim()
	var roots []*big.Rat
	seen := map[string]bool{}
	add := func(r *big.Rat) {
		if !seen[r.RatString()] {
			seen[r.RatString()] = true
			roots = append(roots, r)
		}
	}
	for p.degree() > 0 && p[0].Sign() == 0 {
		add(new(big.Rat))
		p = p[1:]
	}
	for p.degree() > 0 {
		found := false
		for _, cand := range rootCandidates(p) {
			if p.eval(cand).Sign() == 0 {
				add(cand)
				p, _ = polyDivMod(p, poly{new(big.Rat).Neg(cand), big.NewRat(1, 1)})
				found = true
				break
			}
		}
		if !found {
			break
		}
	}
	sort.Slice(roots, func(i, j int) bool { return roots[i].Cmp(roots[j]) < 0 })
	return roots, p
}

// rootCandidates lists ±a/b for a dividing the constant term and b the
// leading coefficient. Coefficients too large to enumerate yield none.
func rootCandidates(p poly) []*big.Rat {
	ints := p.integerCoeffs()
	c0 := new(big.Int).Abs(ints[0])
	cn := new(big.Int).Abs(ints[len(ints)-1])
	if !c0.IsInt64() || !cn.IsInt64() || c0.Int64() > 1_000_000 || cn.Int64() > 1_000_000 {
		return nil
	}
	var out []*big.Rat
	for _, a := range divisors(c0.Int64()) {
		for _, b := range divisors(cn.Int64()) {
			out = append(out, big.NewRat(a, b), big.NewRat(-a, b))
		}
	}
	return out
}

func divisors(n int64) []int64 {
	var out []int64
	for d := int64(1); d*d <= n; d++ {
		if n%d == 0 {
			out = append(out, d)
			if d != n/d {
				out = append(out, n/d)
			}
		}
	}
	return out
}

// ============================================================
// Rational functions
// ============================================================

// numerDenom splits e into numerator and denominator over a common
// denominator. Only negative integer powers count as denominators.
func numerDenom(e Expr) (Expr, Expr) {
	switch v := e.(type) {
	case *Pow:
		if en, ok := v.exp.(*Num); ok && en.IsInteger() && en.IsNegative() && !en.approx {
			return N(1), PowOf(v.base, numNeg(en))
		}
	case *Mul:
		nums, dens := []Expr{}, []Expr{}
		for _, f := range v.factors {
			n, d := numerDenom(f)
			nums = append(nums, n)
			dens = append(dens, d)
		}
		return MulOf(nums...), MulOf(dens...)
	case *Add:
		num, den := numerDenom(v.terms[0])
		for _, t := range v.terms[1:] {
			n, d := numerDenom(t)
			if d.Equal(den) {
				num = AddOf(num, n)
				continue
			}
			num = AddOf(MulOf(num, d), MulOf(n, den))
			den = MulOf(den, d)
		}
		return num, den
	}
	return e, N(1)
}

// Together rewrites e as a single fraction.
func Together(e Expr) Expr {
	n, d := numerDenom(e.Simplify())
	if dn, ok := d.(*Num); ok && dn.IsOne() {
		return n
	}
	return Div(n, d)
}
