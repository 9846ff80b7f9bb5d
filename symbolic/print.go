package symbolic

import (
	"strings"
)

// printer renders expressions as plain text (parseable back by Parse)
// or as a unicode pretty form.
type printer struct{ pretty bool }

var (
	plain         = printer{}
	prettyPrinter = printer{pretty: true}
)

// Pretty renders e with unicode operators and symbols.
func Pretty(e Expr) string { return prettyPrinter.expr(e) }

var greekRunes = map[string]string{
	"alpha": "α", "beta": "β", "gamma": "γ", "delta": "δ", "epsilon": "ε",
	"zeta": "ζ", "eta": "η", "theta": "θ", "iota": "ι", "kappa": "κ",
	"lambda": "λ", "mu": "μ", "nu": "ν", "xi": "ξ", "rho": "ρ", "sigma": "σ",
	"tau": "τ", "phi": "φ", "chi": "χ", "psi": "ψ", "omega": "ω",
}

var superscripts = strings.NewReplacer(
	"0", "⁰", "1", "¹", "2", "²", "3", "³", "4", "⁴",
	"5", "⁵", "6", "⁶", "7", "⁷", "8", "⁸", "9", "⁹", "-", "⁻",
)

func (p printer) expr(e Expr) string {
	switch v := e.(type) {
	case *Num:
		return v.String()
	case *Const:
		if p.pretty {
			switch v.name {
			case "pi":
				return "π"
			case "oo":
				return "∞"
			case "E":
				return "ℯ"
			case "I":
				return "ⅈ"
			}
		}
		return v.name
	case *Sym:
		if r, ok := greekRunes[v.name]; ok && p.pretty {
			return r
		}
		return v.name
	case *Add:
		return p.add(v)
	case *Mul:
		return p.mul(v)
	case *Pow:
		return p.pow(v)
	case *Func:
		return p.fn(v)
	case *Relational:
		return p.expr(v.lhs) + " " + p.relOp(v.op) + " " + p.expr(v.rhs)
	case *Derivative:
		if p.pretty {
			return "d/d" + v.varName + "(" + p.expr(v.expr) + ")"
		}
		return "Derivative(" + p.expr(v.expr) + ", " + v.varName + ")"
	case *Integral:
		if p.pretty {
			return "∫" + p.expr(v.expr) + " d" + v.varName
		}
		return "Integral(" + p.expr(v.expr) + ", " + v.varName + ")"
	}
	return e.String()
}

func (p printer) relOp(op string) string {
	if !p.pretty {
		return op
	}
	switch op {
	case OpLe:
		return "≤"
	case OpGe:
		return "≥"
	case OpNe:
		return "≠"
	}
	return op
}

func (p printer) add(a *Add) string {
	var sb strings.Builder
	for i, t := range a.terms {
		neg, abs := splitSign(t)
		switch {
		case i == 0:
			sb.WriteString(p.expr(t))
		case neg:
			sb.WriteString(" - ")
			sb.WriteString(p.expr(abs))
		default:
			sb.WriteString(" + ")
			sb.WriteString(p.expr(t))
		}
	}
	return sb.String()
}

func (p printer) mulSep() string {
	if p.pretty {
		return "⋅"
	}
	return "*"
}

func (p printer) mul(m *Mul) string {
	sign, coeff, rest := m.signedParts()
	var num, den []string
	if !coeff.IsOne() {
		if coeff.approx || coeff.IsInteger() {
			num = append(num, coeff.String())
		} else {
			if coeff.val.Num().Cmp(ratOne.Num()) != 0 {
				num = append(num, coeff.val.Num().String())
			}
			den = append(den, coeff.val.Denom().String())
		}
	}
	for _, f := range rest {
		if pw, ok := f.(*Pow); ok {
			if en, ok := pw.exp.(*Num); ok && en.IsNegative() && !en.approx {
				den = append(den, p.factor(PowOf(pw.base, numNeg(en))))
				continue
			}
		}
		num = append(num, p.factor(f))
	}
	n := strings.Join(num, p.mulSep())
	if n == "" {
		n = "1"
	}
	if len(den) == 0 {
		return sign + n
	}
	d := strings.Join(den, p.mulSep())
	if len(den) > 1 {
		d = "(" + d + ")"
	}
	return sign + n + "/" + d
}

// factor renders e as an operand of a product.
func (p printer) factor(e Expr) string {
	switch v := e.(type) {
	case *Add, *Relational:
		return "(" + p.expr(e) + ")"
	case *Mul:
		return "(" + p.expr(e) + ")"
	case *Num:
		if v.IsNegative() || (!v.IsInteger() && !v.approx) {
			return "(" + v.String() + ")"
		}
	}
	return p.expr(e)
}

func (p printer) pow(pw *Pow) string {
	if en, ok := pw.exp.(*Num); ok && !en.approx {
		switch {
		case en.val.Cmp(ratHalf) == 0:
			return p.sqrt(pw.base)
		case en.val.Cmp(ratNegHalf) == 0:
			return "1/" + p.sqrt(pw.base)
		case en.IsNegOne():
			return "1/" + p.powBase(pw.base)
		}
	}
	base := p.powBase(pw.base)
	if p.pretty {
		if en, ok := pw.exp.(*Num); ok && en.IsInteger() && !en.approx {
			return base + superscripts.Replace(en.String())
		}
		return base + "^" + p.powExp(pw.exp)
	}
	return base + "**" + p.powExp(pw.exp)
}

func (p printer) sqrt(base Expr) string {
	if p.pretty {
		switch base.(type) {
		case *Sym, *Num, *Const:
			return "√" + p.expr(base)
		}
		return "√(" + p.expr(base) + ")"
	}
	return "sqrt(" + p.expr(base) + ")"
}

func (p printer) powBase(e Expr) string {
	switch v := e.(type) {
	case *Add, *Mul, *Pow, *Relational:
		return "(" + p.expr(e) + ")"
	case *Num:
		if v.IsNegative() || (!v.IsInteger() && !v.approx) {
			return "(" + v.String() + ")"
		}
	}
	return p.expr(e)
}

func (p printer) powExp(e Expr) string {
	switch v := e.(type) {
	case *Sym, *Const:
		return p.expr(e)
	case *Num:
		if v.IsInteger() && !v.IsNegative() {
			return v.String()
		}
	}
	return "(" + p.expr(e) + ")"
}

func (p printer) fn(f *Func) string {
	switch f.name {
	case "abs":
		if p.pretty {
			return "|" + p.expr(f.arg) + "|"
		}
		return "Abs(" + p.expr(f.arg) + ")"
	case "factorial":
		if p.pretty {
			switch f.arg.(type) {
			case *Sym, *Num:
				return p.expr(f.arg) + "!"
			}
			return "(" + p.expr(f.arg) + ")!"
		}
	}
	return f.name + "(" + p.expr(f.arg) + ")"
}

func joinNonEmpty(parts []string, sep string) string {
	out := make([]string, 0, len(parts))
	for _, s := range parts {
		if s != "" {
			out = append(out, s)
		}
	}
	return strings.Join(out, sep)
}
