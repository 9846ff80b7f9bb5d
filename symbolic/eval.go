package symbolic

// Evalf evaluates every numeric subexpression of e to a float. Integer
// exponents stay exact so x**2 does not become x**2.0.
func Evalf(e Expr) Expr {
	if n, ok := e.Eval(); ok {
		if n.approx {
			return n
		}
		return approxOf(n)
	}
	switch v := e.(type) {
	case *Pow:
		base := Evalf(v.base)
		if en, ok := v.exp.(*Num); ok && en.IsInteger() {
			return PowOf(base, en)
		}
		return PowOf(base, Evalf(v.exp))
	case *Sym, *Const, *Num:
		return e
	}
	return mapChildren(e, Evalf)
}

// IsUndefined reports whether e contains a division by zero, a
// logarithm of zero or an indeterminate 0**0.
func IsUndefined(e Expr) bool {
	return anyNode(e, func(n Expr) bool {
		switch v := n.(type) {
		case *Pow:
			bn, ok1 := v.base.(*Num)
			en, ok2 := v.exp.(*Num)
			return ok1 && ok2 && bn.IsZero() && !en.IsPositive()
		case *Func:
			if v.name == "log" || v.name == "log10" {
				return isNumEqual(v.arg, 0)
			}
		}
		return false
	})
}
