package symbolic

import "fmt"

// ============================================================
// Differentiation
// ============================================================

func Diff(expr Expr, varName string) Expr {
	return expr.Diff(varName).Simplify()
}

func DiffN(expr Expr, varName string, n int) Expr {
	result := expr
	for i := 0; i < n; i++ {
		result = Diff(result, varName)
	}
	return result
}

// ============================================================
// Integration (rule-based)
// ============================================================

// Integrate returns an antiderivative of expr without the constant of
// integration. ok is false when no rule applies.
func Integrate(expr Expr, varName string) (Expr, bool) {
	expr = expr.Simplify()
	if r, ok := integrate(expr, varName); ok {
		return r.Simplify(), true
	}
	if ex := Expand(expr); !ex.Equal(expr) {
		if r, ok := integrate(ex, varName); ok {
			return r.Simplify(), true
		}
	}
	return nil, false
}

func integrate(expr Expr, varName string) (Expr, bool) {
	x := S(varName)
	if !dependsOn(expr, varName) {
		return MulOf(expr, x), true
	}
	switch v := expr.(type) {
	case *Sym:
		return MulOf(F(1, 2), PowOf(x, N(2))), true
	case *Pow:
		if a, ok := linearCoeff(v.base, varName); ok && !dependsOn(v.exp, varName) {
			if n, isNum := v.exp.(*Num); isNum && n.IsNegOne() {
				return Div(LogOf(v.base), a), true
			}
			newExp := AddOf(v.exp, N(1))
			return Div(PowOf(v.base, newExp), MulOf(a, newExp)), true
		}
		if a, ok := linearCoeff(v.exp, varName); ok && !dependsOn(v.base, varName) {
			return Div(expr, MulOf(a, LogOf(v.base))), true
		}
		return nil, false
	case *Mul:
		consts := []Expr{}
		deps := []Expr{}
		for _, f := range v.factors {
			if dependsOn(f, varName) {
				deps = append(deps, f)
			} else {
				consts = append(consts, f)
			}
		}
		if len(deps) != 1 || len(consts) == 0 {
			return nil, false
		}
		inner, ok := integrate(deps[0], varName)
		if !ok {
			return nil, false
		}
		return MulOf(append(consts, inner)...), true
	case *Add:
		terms := make([]Expr, len(v.terms))
		for i, t := range v.terms {
			intT, ok := Integrate(t, varName)
			if !ok {
				return nil, false
			}
			terms[i] = intT
		}
		return AddOf(terms...), true
	case *Func:
		a, ok := linearCoeff(v.arg, varName)
		if !ok {
			return nil, false
		}
		u := v.arg
		var anti Expr
		switch v.name {
		case "sin":
			anti = Neg(CosOf(u))
		case "cos":
			anti = SinOf(u)
		case "tan":
			anti = Neg(LogOf(CosOf(u)))
		case "exp":
			anti = ExpOf(u)
		case "log":
			anti = Minus(MulOf(u, LogOf(u)), u)
		case "sinh":
			anti = CoshOf(u)
		case "cosh":
			anti = SinhOf(u)
		case "asin":
			anti = AddOf(MulOf(u, AsinOf(u)), SqrtOf(Minus(N(1), PowOf(u, N(2)))))
		case "atan":
			anti = Minus(MulOf(u, AtanOf(u)), MulOf(F(1, 2), LogOf(AddOf(N(1), PowOf(u, N(2))))))
		default:
			return nil, false
		}
		return Div(anti, a), true
	}
	return nil, false
}

// linearCoeff returns a when e = a*varName + b with a, b free of varName.
func linearCoeff(e Expr, varName string) (Expr, bool) {
	coeffs, deg, ok := symbolicPoly(e, varName)
	if !ok || deg != 1 {
		return nil, false
	}
	return coeffs[1], true
}

// ============================================================
// Doit: evaluate calculus constructs
// ============================================================

// Doit evaluates every Derivative and Integral in e, innermost first.
func Doit(e Expr) (Expr, error) {
	var failed error
	out := bottomUp(e, func(n Expr) Expr {
		switch v := n.(type) {
		case *Derivative:
			return Diff(v.expr, v.varName)
		case *Integral:
			r, ok := Integrate(v.expr, v.varName)
			if !ok {
				if failed == nil {
					failed = fmt.Errorf("%w: no antiderivative rule for %s", ErrUnsupported, v.expr)
				}
				return v
			}
			return r
		}
		return n
	})
	if failed != nil {
		return nil, failed
	}
	return out, nil
}
