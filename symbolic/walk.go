package symbolic

import "sort"

// ============================================================
// Tree traversal
// ============================================================

// mapChildren rebuilds e with f applied to each direct child.
func mapChildren(e Expr, f func(Expr) Expr) Expr {
	switch v := e.(type) {
	case *Add:
		ts := make([]Expr, len(v.terms))
		for i, t := range v.terms {
			ts[i] = f(t)
		}
		return AddOf(ts...)
	case *Mul:
		fs := make([]Expr, len(v.factors))
		for i, x := range v.factors {
			fs[i] = f(x)
		}
		return MulOf(fs...)
	case *Pow:
		return PowOf(f(v.base), f(v.exp))
	case *Func:
		return funcOf(v.name, f(v.arg)).Simplify()
	case *Relational:
		return &Relational{op: v.op, lhs: f(v.lhs), rhs: f(v.rhs)}
	case *Derivative:
		return &Derivative{expr: f(v.expr), varName: v.varName}
	case *Integral:
		return &Integral{expr: f(v.expr), varName: v.varName}
	}
	return e
}

// bottomUp applies rule to every node, children first.
func bottomUp(e Expr, rule func(Expr) Expr) Expr {
	return rule(mapChildren(e, func(c Expr) Expr { return bottomUp(c, rule) }))
}

func children(e Expr) []Expr {
	switch v := e.(type) {
	case *Add:
		return v.terms
	case *Mul:
		return v.factors
	case *Pow:
		return []Expr{v.base, v.exp}
	case *Func:
		return []Expr{v.arg}
	case *Relational:
		return []Expr{v.lhs, v.rhs}
	case *Derivative:
		return []Expr{v.expr}
	case *Integral:
		return []Expr{v.expr}
	}
	return nil
}

// anyNode reports whether pred holds for e or any of its descendants.
func anyNode(e Expr, pred func(Expr) bool) bool {
	if pred(e) {
		return true
	}
	for _, c := range children(e) {
		if anyNode(c, pred) {
			return true
		}
	}
	return false
}

// ============================================================
// Free Symbols
// ============================================================

// FreeSymbols returns the names of the free variables of e. Named
// constants are not symbols.
func FreeSymbols(e Expr) map[string]struct{} {
	result := map[string]struct{}{}
	collectSymbols(e, result)
	return result
}

func collectSymbols(e Expr, out map[string]struct{}) {
	if s, ok := e.(*Sym); ok {
		out[s.name] = struct{}{}
		return
	}
	for _, c := range children(e) {
		collectSymbols(c, out)
	}
}

// SortedSymbols returns FreeSymbols(e) in lexical order.
func SortedSymbols(e Expr) []string {
	set := FreeSymbols(e)
	out := make([]string, 0, len(set))
	for name := range set {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

func dependsOn(e Expr, varName string) bool {
	return anyNode(e, func(n Expr) bool {
		s, ok := n.(*Sym)
		return ok && s.name == varName
	})
}

// HasFunc reports whether e applies any of the named functions.
func HasFunc(e Expr, names ...string) bool {
	return anyNode(e, func(n Expr) bool {
		f, ok := n.(*Func)
		if !ok {
			return false
		}
		for _, name := range names {
			if f.name == name {
				return true
			}
		}
		return false
	})
}

// ============================================================
// Operation count
// ============================================================

// CountOps counts the atomic operations of e: one per binary arithmetic
// operator, negation, power, function application, relation and
// calculus construct.
func CountOps(e Expr) int {
	switch v := e.(type) {
	case *Num:
		if v.IsNegative() {
			return 1
		}
		if !v.IsInteger() && !v.approx {
			return 1
		}
		return 0
	case *Sym, *Const:
		return 0
	case *Add:
		n := len(v.terms) - 1
		for _, t := range v.terms {
			if neg, abs := splitSign(t); neg {
				n += CountOps(abs)
			} else {
				n += CountOps(t)
			}
		}
		return n
	case *Mul:
		sign, coeff, rest := v.signedParts()
		n := len(rest) - 1
		if sign != "" {
			n++
		}
		if !coeff.IsOne() {
			n += 1 + CountOps(coeff)
		}
		for _, f := range rest {
			n += CountOps(f)
		}
		return n
	case *Pow:
		return 1 + CountOps(v.base) + CountOps(v.exp)
	case *Func:
		return 1 + CountOps(v.arg)
	case *Relational:
		return 1 + CountOps(v.lhs) + CountOps(v.rhs)
	case *Derivative:
		return 1 + CountOps(v.expr)
	case *Integral:
		return 1 + CountOps(v.expr)
	}
	return 0
}
