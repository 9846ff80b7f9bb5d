package symbolic

import (
	"strings"
)

// ============================================================
// Interval sets: solutions of univariate inequalities
// ============================================================

// Interval is a real interval. A nil bound is infinite. A point is an
// interval whose closed bounds are equal.
type Interval struct {
	Lo, Hi         Expr
	LoOpen, HiOpen bool
}

func (iv Interval) isPoint() bool {
	return iv.Lo != nil && iv.Hi != nil && !iv.LoOpen && !iv.HiOpen && iv.Lo.Equal(iv.Hi)
}

func (iv Interval) render(p printer, latex bool) string {
	bound := func(e Expr, neg bool) string {
		switch {
		case e != nil && latex:
			return e.LaTeX()
		case e != nil:
			return p.expr(e)
		case latex && neg:
			return `-\infty`
		case latex:
			return `\infty`
		case p.pretty && neg:
			return "-∞"
		case p.pretty:
			return "∞"
		case neg:
			return "-oo"
		}
		return "oo"
	}
	if iv.isPoint() {
		if latex {
			return `\left\{` + iv.Lo.LaTeX() + `\right\}`
		}
		return "{" + p.expr(iv.Lo) + "}"
	}
	open, close := "[", "]"
	if iv.LoOpen || iv.Lo == nil {
		open = "("
	}
	if iv.HiOpen || iv.Hi == nil {
		close = ")"
	}
	if latex {
		open, close = `\left`+open, `\right`+close
	}
	return open + bound(iv.Lo, true) + ", " + bound(iv.Hi, false) + close
}

// Contains reports whether x lies in the interval.
func (iv Interval) Contains(x float64) bool {
	if iv.Lo != nil {
		lo, ok := iv.Lo.Eval()
		if !ok {
			return false
		}
		if l := lo.Float64(); x < l || (iv.LoOpen && x == l) {
			return false
		}
	}
	if iv.Hi != nil {
		hi, ok := iv.Hi.Eval()
		if !ok {
			return false
		}
		if h := hi.Float64(); x > h || (iv.HiOpen && x == h) {
			return false
		}
	}
	return true
}

// IntervalSet is a union of disjoint intervals in increasing order.
type IntervalSet struct {
	Var       string
	Intervals []Interval
}

func (s *IntervalSet) IsEmpty() bool { return len(s.Intervals) == 0 }

// IsReal reports whether the set is the whole real line.
func (s *IntervalSet) IsReal() bool {
	return len(s.Intervals) == 1 && s.Intervals[0].Lo == nil && s.Intervals[0].Hi == nil
}

func (s *IntervalSet) Contains(x float64) bool {
	for _, iv := range s.Intervals {
		if iv.Contains(x) {
			return true
		}
	}
	return false
}

func (s *IntervalSet) join(p printer, latex bool, sep, empty string) string {
	if s.IsEmpty() {
		return empty
	}
	parts := make([]string, len(s.Intervals))
	for i, iv := range s.Intervals {
		parts[i] = iv.render(p, latex)
	}
	return strings.Join(parts, sep)
}

func (s *IntervalSet) String() string { return s.join(plain, false, " U ", "EmptySet") }
func (s *IntervalSet) LaTeX() string  { return s.join(plain, true, ` \cup `, `\emptyset`) }
func (s *IntervalSet) Pretty() string { return s.join(prettyPrinter, false, " ∪ ", "∅") }

// setBuilder assembles an IntervalSet from sign-chart pieces given in
// increasing order, merging pieces that touch.
type setBuilder struct {
	out     []Interval
	current *Interval
}

func (b *setBuilder) flush() {
	if b.current != nil {
		b.out = append(b.out, *b.current)
		b.current = nil
	}
}

// span adds the open interval (lo, hi).
func (b *setBuilder) span(lo, hi Expr) {
	if b.current != nil && b.current.Hi != nil && lo != nil && b.current.Hi.Equal(lo) && !b.current.HiOpen {
		b.current.Hi, b.current.HiOpen = hi, true
		return
	}
	b.flush()
	b.current = &Interval{Lo: lo, Hi: hi, LoOpen: true, HiOpen: true}
}

// point adds the single point r.
func (b *setBuilder) point(r Expr) {
	if b.current != nil && b.current.Hi != nil && b.current.Hi.Equal(r) {
		b.current.HiOpen = false
		return
	}
	b.flush()
	b.current = &Interval{Lo: r, Hi: r}
}

// gap marks a piece that is not in the set.
func (b *setBuilder) gap() { b.flush() }

func (b *setBuilder) build(varName string) *IntervalSet {
	b.flush()
	return &IntervalSet{Var: varName, Intervals: b.out}
}

// Condition expresses the interval as a relation in varName: x > a,
// x <= b, x = c for a point, or the chained a < x < b.
func (iv Interval) Condition(varName string) Expr {
	x := S(varName)
	if iv.isPoint() {
		return Eq(x, iv.Lo)
	}
	loOp, hiOp := OpLe, OpLe
	if iv.LoOpen || iv.Lo == nil {
		loOp = OpLt
	}
	if iv.HiOpen || iv.Hi == nil {
		hiOp = OpLt
	}
	switch {
	case iv.Lo == nil && iv.Hi == nil:
		return Rel(OpLt, Neg(Infinity), Rel(OpLt, x, Infinity))
	case iv.Lo == nil:
		return Rel(hiOp, x, iv.Hi)
	case iv.Hi == nil:
		if loOp == OpLt {
			return Rel(OpGt, x, iv.Lo)
		}
		return Rel(OpGe, x, iv.Lo)
	}
	return Rel(loOp, iv.Lo, Rel(hiOp, x, iv.Hi))
}

// Conditions returns one relation per interval of the set.
func (s *IntervalSet) Conditions() []Expr {
	out := make([]Expr, len(s.Intervals))
	for i, iv := range s.Intervals {
		out[i] = iv.Condition(s.Var)
	}
	return out
}
