package symbolic

import (
	"errors"
	"fmt"
	"math"
	"math/big"
	"sort"
)

// ============================================================
// Solvers
// ============================================================

type SolveResult struct {
	Solutions []Expr
	ExactForm bool
	Error     string
}

func SolveLinear(a, b Expr) SolveResult {
	an, aok := a.Eval()
	bn, bok := b.Eval()
	if aok && bok {
		if an.IsZero() {
			if bn.IsZero() {
				return SolveResult{Error: "identity (0 = 0): infinite solutions"}
			}
			return SolveResult{Error: "no solution (inconsistent)"}
		}
		return SolveResult{Solutions: []Expr{numMul(numNeg(bn), numRecip(an))}, ExactForm: !an.approx && !bn.approx}
	}
	return SolveResult{Solutions: []Expr{Expand(Neg(Div(b, a)))}, ExactForm: true}
}

// SolveQuadraticExact solves a*x**2 + b*x + c = 0 keeping radicals
// exact. Complex roots are reported in Error.
func SolveQuadraticExact(a, b, c Expr) SolveResult {
	an, aok := a.Eval()
	bn, bok := b.Eval()
	_, cok := c.Eval()
	disc := AddOf(PowOf(b, N(2)), MulOf(N(-4), a, c))
	if !aok || !bok || !cok {
		twoA := MulOf(N(2), a)
		x1 := Div(Minus(Neg(b), SqrtOf(disc)), twoA)
		x2 := Div(AddOf(Neg(b), SqrtOf(disc)), twoA)
		return SolveResult{Solutions: []Expr{x1, x2}, ExactForm: true}
	}
	if an.IsZero() {
		return SolveLinear(b, c)
	}
	dn, _ := disc.Eval()
	if dn.IsNegative() {
		af, bf := an.Float64(), bn.Float64()
		return SolveResult{Error: fmt.Sprintf("complex roots: %g ± %gi", -bf/(2*af), math.Sqrt(-dn.Float64())/(2*af))}
	}
	twoA := numMul(N(2), an)
	if dn.IsZero() {
		return SolveResult{Solutions: []Expr{numDiv(numNeg(bn), twoA)}, ExactForm: true}
	}
	root := SqrtOf(dn)
	x1 := Div(Minus(numNeg(bn), root), twoA)
	x2 := Div(AddOf(numNeg(bn), root), twoA)
	sols := []Expr{x1, x2}
	sortNumeric(sols)
	return SolveResult{Solutions: sols, ExactForm: !dn.approx}
}

func SolveCubic(a, b, c, d Expr) SolveResult {
	an, aok := a.Eval()
	bn, bok := b.Eval()
	cn, cok := c.Eval()
	dn, dok := d.Eval()
	if !aok || !bok || !cok || !dok {
		return SolveResult{Error: "SolveCubic requires numeric coefficients"}
	}
	af, bf, cf, df := an.Float64(), bn.Float64(), cn.Float64(), dn.Float64()
	if af == 0 {
		return SolveQuadraticExact(b, c, d)
	}
	p := (3*af*cf - bf*bf) / (3 * af * af)
	q := (2*bf*bf*bf - 9*af*bf*cf + 27*af*af*df) / (27 * af * af * af)
	offset := bf / (3 * af)
	disc := -(4*p*p*p + 27*q*q)

	var roots []Expr
	switch {
	case disc > 0:
		m := 2 * math.Sqrt(-p/3)
		theta := math.Acos(3*q/(p*m)) / 3
		for k := 0; k < 3; k++ {
			roots = append(roots, NFloat(m*math.Cos(theta-2*math.Pi*float64(k)/3)-offset))
		}
	case disc == 0:
		if q == 0 {
			roots = []Expr{NFloat(-offset)}
		} else {
			roots = []Expr{NFloat(3*q/p - offset), NFloat(-3*q/(2*p) - offset)}
		}
	default:
		A := math.Cbrt(-q/2 + math.Sqrt(q*q/4+p*p*p/27))
		B := float64(0)
		if A != 0 {
			B = -p / (3 * A)
		}
		roots = []Expr{NFloat(A + B - offset)}
	}
	sortNumeric(roots)
	return SolveResult{Solutions: roots}
}

func SolvePolynomialNewton(expr Expr, varName string, searchRange, tol float64, maxIter int) SolveResult {
	if searchRange <= 0 {
		searchRange = 100
	}
	if tol <= 0 {
		tol = 1e-10
	}
	if maxIter <= 0 {
		maxIter = 100
	}
	deriv := Diff(expr, varName)
	at := func(e Expr, x float64) float64 {
		if n, ok := e.Sub(varName, NFloat(x)).Eval(); ok {
			return n.Float64()
		}
		return math.NaN()
	}
	var roots []float64
	for i := 0; i <= 200; i++ {
		x := -searchRange + 2*searchRange*float64(i)/200
		for iter := 0; iter < maxIter; iter++ {
			fx := at(expr, x)
			if math.IsNaN(fx) || math.IsInf(fx, 0) {
				break
			}
			if math.Abs(fx) < tol {
				roots = append(roots, x)
				break
			}
			dfx := at(deriv, x)
			if math.IsNaN(dfx) || math.Abs(dfx) < 1e-15 {
				break
			}
			x -= fx / dfx
			if math.Abs(x) > searchRange*10 {
				break
			}
		}
	}
	residual := func(x float64) float64 { return math.Abs(at(expr, x)) }
	roots = clusterRoots(roots, residual)
	solutions := make([]Expr, len(roots))
	for i, r := range roots {
		solutions[i] = NFloat(snapRoot(r, residual))
	}
	return SolveResult{Solutions: solutions}
}

// clusterRoots merges converged iterates that belong to the same root.
// Newton converges only linearly at a multiple root, so iterates of one
// root can differ by far more than the residual tolerance suggests. Each
// cluster keeps the iterate with the smallest residual.
func clusterRoots(xs []float64, residual func(float64) float64) []float64 {
	sort.Float64s(xs)
	var out []float64
	for _, x := range xs {
		if n := len(out); n > 0 && math.Abs(x-out[n-1]) < 1e-4*math.Max(1, math.Abs(x)) {
			if residual(x) < residual(out[n-1]) {
				out[n-1] = x
			}
			continue
		}
		out = append(out, x)
	}
	return out
}

// snapRoot moves r onto a nearby integer or multiple of pi/2 when the
// residual there is no larger.
func snapRoot(r float64, residual func(float64) float64) float64 {
	tol := 1e-5 * math.Max(1, math.Abs(r))
	for _, c := range []float64{math.Round(r), math.Round(r/(math.Pi/2)) * (math.Pi / 2)} {
		if c == r || math.Abs(c-r) > tol {
			continue
		}
		if residual(c) <= residual(r) {
			return cleanFloat(c)
		}
	}
	return cleanFloat(r)
}

// cleanFloat snaps values within rounding noise of an integer.
func cleanFloat(f float64) float64 {
	if r := math.Round(f); math.Abs(f-r) < 1e-9 {
		return r
	}
	return f
}

func sortNumeric(es []Expr) {
	val := func(e Expr) float64 {
		if n, ok := e.Eval(); ok {
			return n.Float64()
		}
		return math.Inf(1)
	}
	sort.SliceStable(es, func(i, j int) bool { return val(es[i]) < val(es[j]) })
}

// ============================================================
// Solve: equations in one or more variables
// ============================================================

// Solve returns the real solutions of e = 0 (or of the equation e).
// With a single variable the result is a list of values. With several
// variables the first variable that can be isolated is solved for and
// the result is a list of equations var = solution. An inequality in a
// single variable is solved numerically and returned as one condition
// per interval of its solution set.
func Solve(e Expr, vars []string) ([]Expr, error) {
	if r, ok := e.(*Relational); ok {
		if r.op != OpEq {
			if len(vars) != 1 {
				return nil, fmt.Errorf("%w: inequality in %d variables", ErrUnsupported, len(vars))
			}
			set, err := solveRelation(r, vars[0])
			if err != nil {
				return nil, err
			}
			return set.Conditions(), nil
		}
		e = r.Residual()
	}
	e = e.Simplify()
	switch len(vars) {
	case 0:
		return nil, fmt.Errorf("%w: no variable to solve for", ErrUnsupported)
	case 1:
		return solveUnivariate(e, vars[0])
	}
	num, _ := numerDenom(e)
	for _, v := range vars {
		coeffs, deg, ok := symbolicPoly(num, v)
		if !ok || deg == 0 || deg > 2 {
			continue
		}
		get := func(d int) Expr {
			if c, ok := coeffs[d]; ok {
				return c
			}
			return N(0)
		}
		var res SolveResult
		if deg == 1 {
			res = SolveLinear(get(1), get(0))
		} else {
			res = SolveQuadraticExact(get(2), get(1), get(0))
		}
		if res.Error != "" {
			continue
		}
		out := make([]Expr, len(res.Solutions))
		for i, s := range res.Solutions {
			out[i] = Eq(S(v), s.Simplify())
		}
		return out, nil
	}
	return nil, fmt.Errorf("%w: cannot isolate any of %v", ErrUnsupported, vars)
}

func solveUnivariate(e Expr, v string) ([]Expr, error) {
	num, den := numerDenom(e)
	if !dependsOn(num, v) {
		return []Expr{}, nil
	}
	var roots []Expr
	if p, ok := toPoly(num, v); ok {
		roots = polyRoots(p, v)
	} else if coeffs, deg, ok := symbolicPoly(num, v); ok && deg > 0 && deg <= 2 {
		get := func(d int) Expr {
			if c, ok := coeffs[d]; ok {
				return c
			}
			return N(0)
		}
		var res SolveResult
		if deg == 1 {
			res = SolveLinear(get(1), get(0))
		} else {
			res = SolveQuadraticExact(get(2), get(1), get(0))
		}
		roots = res.Solutions
	} else {
		if len(FreeSymbols(num)) > 1 {
			return nil, fmt.Errorf("%w: transcendental equation in %s with parameters", ErrUnsupported, v)
		}
		res := SolvePolynomialNewton(num, v, 10, 1e-12, 100)
		if len(res.Solutions) == 0 {
			return nil, fmt.Errorf("%w: no real root found for %s", ErrNoSolution, num)
		}
		roots = res.Solutions
	}

	out := make([]Expr, 0, len(roots))
	for _, r := range roots {
		if d, ok := den.Sub(v, r).Eval(); ok && math.Abs(d.Float64()) < 1e-12 {
			continue
		}
		out = append(out, r.Simplify())
	}
	sortNumeric(out)
	return out, nil
}

// polyRoots returns the real roots of p: rational roots exactly,
// quadratic remainders with radicals, cubic remainders in closed form
// and higher remainders numerically.
func polyRoots(p poly, v string) []Expr {
	rats, rest := rationalRoots(p)
	roots := make([]Expr, 0, len(rats)+2)
	for _, r := range rats {
		roots = append(roots, ratNum(r))
	}
	switch rest.degree() {
	case 1:
		roots = append(roots, ratNum(new(big.Rat).Neg(new(big.Rat).Quo(rest[0], rest[1]))))
	case 2:
		res := SolveQuadraticExact(ratNum(rest[2]), ratNum(rest[1]), ratNum(rest[0]))
		roots = append(roots, res.Solutions...)
	case 3:
		res := SolveCubic(ratNum(rest[3]), ratNum(rest[2]), ratNum(rest[1]), ratNum(rest[0]))
		roots = append(roots, res.Solutions...)
	default:
		if rest.degree() > 3 {
			res := SolvePolynomialNewton(rest.expr(v), v, 100, 1e-10, 200)
			roots = append(roots, res.Solutions...)
		}
	}
	sortNumeric(roots)
	return roots
}

// ============================================================
// Univariate inequalities
// ============================================================

// SolveInequality solves a polynomial or rational inequality in varName
// and returns the solution set as a union of intervals.
func SolveInequality(e Expr, varName string) (*IntervalSet, error) {
	r, ok := e.(*Relational)
	if !ok {
		return nil, fmt.Errorf("%w: %s is not an inequality", ErrUnsupported, e)
	}
	holds, strict, err := signTest(r.op)
	if err != nil {
		return nil, err
	}

	num, den := numerDenom(r.Residual().Simplify())
	pn, ok1 := toPoly(num, varName)
	pd, ok2 := toPoly(den, varName)
	if !ok1 || !ok2 {
		return nil, fmt.Errorf("%w: inequality is not rational in %s", ErrUnsupported, varName)
	}

	type critical struct {
		at     Expr
		val    float64
		isPole bool
	}
	var crit []critical
	addRoots := func(p poly, pole bool) {
		if p.degree() < 1 {
			return
		}
		for _, root := range polyRoots(p, varName) {
			n, ok := root.Eval()
			if !ok {
				continue
			}
			crit = append(crit, critical{at: root.Simplify(), val: n.Float64(), isPole: pole})
		}
	}
	addRoots(pn, false)
	addRoots(pd, true)
	sort.SliceStable(crit, func(i, j int) bool { return crit[i].val < crit[j].val })
	// A shared root of numerator and denominator is a pole.
	merged := crit[:0]
	for _, c := range crit {
		if n := len(merged); n > 0 && math.Abs(merged[n-1].val-c.val) < 1e-12 {
			merged[n-1].isPole = merged[n-1].isPole || c.isPole
			continue
		}
		merged = append(merged, c)
	}
	crit = merged

	signAt := func(x float64) int {
		v := pn.evalFloat(x) / pd.evalFloat(x)
		switch {
		case v > 0:
			return 1
		case v < 0:
			return -1
		}
		return 0
	}

	var b setBuilder
	if len(crit) == 0 {
		if holds(signAt(0)) {
			b.span(nil, nil)
		}
		return b.build(varName), nil
	}
	for i := 0; i <= len(crit); i++ {
		var lo, hi Expr
		var probe float64
		switch {
		case i == 0:
			hi, probe = crit[0].at, crit[0].val-1
		case i == len(crit):
			lo, probe = crit[i-1].at, crit[i-1].val+1
		default:
			lo, hi = crit[i-1].at, crit[i].at
			probe = (crit[i-1].val + crit[i].val) / 2
		}
		if holds(signAt(probe)) {
			b.span(lo, hi)
		} else {
			b.gap()
		}
		if i < len(crit) {
			if c := crit[i]; !c.isPole && !strict {
				b.point(c.at)
			} else {
				b.gap()
			}
		}
	}
	return b.build(varName), nil
}

// signTest returns the residual signs for which op holds and whether
// op excludes equality.
func signTest(op string) (holds func(sign int) bool, strict bool, err error) {
	switch op {
	case OpLt:
		return func(s int) bool { return s < 0 }, true, nil
	case OpGt:
		return func(s int) bool { return s > 0 }, true, nil
	case OpLe:
		return func(s int) bool { return s <= 0 }, false, nil
	case OpGe:
		return func(s int) bool { return s >= 0 }, false, nil
	}
	return nil, false, fmt.Errorf("%w: relation %q is not an inequality", ErrUnsupported, op)
}

// solveRelation solves an inequality in varName that need not be
// rational. The boundaries are the real roots of the residual; each piece
// between them is kept when the relation holds at a probe point inside
// it. A piece whose probe lies outside the residual's domain is dropped.
func solveRelation(r *Relational, varName string) (*IntervalSet, error) {
	holds, strict, err := signTest(r.op)
	if err != nil {
		return nil, err
	}
	residual := r.Residual().Simplify()
	roots, err := solveUnivariate(residual, varName)
	if err != nil && !errors.Is(err, ErrNoSolution) {
		return nil, err
	}
	type boundary struct {
		at  Expr
		val float64
	}
	var bounds []boundary
	for _, root := range roots {
		if n, ok := root.Eval(); ok {
			bounds = append(bounds, boundary{at: root, val: n.Float64()})
		}
	}

	signAt := func(x float64) (int, bool) {
		n, ok := residual.Sub(varName, NFloat(x)).Eval()
		if !ok {
			return 0, false
		}
		return n.val.Sign(), true
	}
	inSet := func(x float64) bool {
		s, ok := signAt(x)
		return ok && holds(s)
	}

	var b setBuilder
	if len(bounds) == 0 {
		if inSet(0) || inSet(1) {
			b.span(nil, nil)
		}
		return b.build(varName), nil
	}
	for i := 0; i <= len(bounds); i++ {
		var lo, hi Expr
		var probe float64
		switch {
		case i == 0:
			hi, probe = bounds[0].at, bounds[0].val-1
		case i == len(bounds):
			lo, probe = bounds[i-1].at, bounds[i-1].val+1
		default:
			lo, hi = bounds[i-1].at, bounds[i].at
			probe = (bounds[i-1].val + bounds[i].val) / 2
		}
		if inSet(probe) {
			b.span(lo, hi)
		} else {
			b.gap()
		}
		if i < len(bounds) {
			if !strict {
				b.point(bounds[i].at)
			} else {
				b.gap()
			}
		}
	}
	return b.build(varName), nil
}
