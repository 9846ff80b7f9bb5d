package symbolic

// ============================================================
// Relational: equations and inequalities
// ============================================================

// Relational operators, in their plain-text spelling.
const (
	OpEq = "="
	OpNe = "!="
	OpLt = "<"
	OpGt = ">"
	OpLe = "<="
	OpGe = ">="
)

type Relational struct {
	op       string
	lhs, rhs Expr
}

// Rel builds lhs op rhs. Unknown operators panic.
func Rel(op string, lhs, rhs Expr) *Relational {
	switch op {
	case OpEq, OpNe, OpLt, OpGt, OpLe, OpGe:
	default:
		panic("symbolic: unknown relational operator " + op)
	}
	return &Relational{op: op, lhs: lhs, rhs: rhs}
}

func Eq(lhs, rhs Expr) *Relational { return Rel(OpEq, lhs, rhs) }

func (r *Relational) Op() string  { return r.op }
func (r *Relational) LHS() Expr   { return r.lhs }
func (r *Relational) RHS() Expr   { return r.rhs }
func (r *Relational) IsEquation() bool { return r.op == OpEq }

// Residual returns lhs - rhs.
func (r *Relational) Residual() Expr { return Minus(r.lhs, r.rhs) }

func (r *Relational) Simplify() Expr {
	return &Relational{op: r.op, lhs: r.lhs.Simplify(), rhs: r.rhs.Simplify()}
}

func (r *Relational) String() string { return plain.expr(r) }

func (r *Relational) LaTeX() string {
	ops := map[string]string{OpEq: "=", OpNe: `\neq`, OpLt: "<", OpGt: ">", OpLe: `\leq`, OpGe: `\geq`}
	return r.lhs.LaTeX() + " " + ops[r.op] + " " + r.rhs.LaTeX()
}

func (r *Relational) Sub(varName string, value Expr) Expr {
	return &Relational{op: r.op, lhs: r.lhs.Sub(varName, value), rhs: r.rhs.Sub(varName, value)}
}

func (r *Relational) Diff(varName string) Expr {
	return &Relational{op: r.op, lhs: r.lhs.Diff(varName), rhs: r.rhs.Diff(varName)}
}

func (r *Relational) Eval() (*Num, bool) { return nil, false }

func (r *Relational) Equal(other Expr) bool {
	o, ok := other.(*Relational)
	return ok && r.op == o.op && r.lhs.Equal(o.lhs) && r.rhs.Equal(o.rhs)
}

func (r *Relational) exprType() string { return "rel" }
func (r *Relational) toJSON() map[string]interface{} {
	return map[string]interface{}{"type": "rel", "op": r.op, "lhs": r.lhs.toJSON(), "rhs": r.rhs.toJSON()}
}

// ============================================================
// Derivative and Integral: unevaluated calculus constructs
// ============================================================

// Derivative is d(expr)/d(varName), kept unevaluated until Doit.
type Derivative struct {
	expr    Expr
	varName string
}

func DerivativeOf(expr Expr, varName string) *Derivative {
	return &Derivative{expr: expr, varName: varName}
}

func (d *Derivative) Expr() Expr      { return d.expr }
func (d *Derivative) Var() string     { return d.varName }
func (d *Derivative) Simplify() Expr  { return &Derivative{expr: d.expr.Simplify(), varName: d.varName} }
func (d *Derivative) String() string  { return plain.expr(d) }
func (d *Derivative) Eval() (*Num, bool) { return nil, false }
func (d *Derivative) exprType() string { return "derivative" }

func (d *Derivative) LaTeX() string {
	return `\frac{d}{d ` + d.varName + `}\left(` + d.expr.LaTeX() + `\right)`
}

func (d *Derivative) Sub(varName string, value Expr) Expr {
	if varName == d.varName {
		return d
	}
	return &Derivative{expr: d.expr.Sub(varName, value), varName: d.varName}
}

func (d *Derivative) Diff(varName string) Expr {
	return &Derivative{expr: d, varName: varName}
}

func (d *Derivative) Equal(other Expr) bool {
	o, ok := other.(*Derivative)
	return ok && d.varName == o.varName && d.expr.Equal(o.expr)
}

func (d *Derivative) toJSON() map[string]interface{} {
	return map[string]interface{}{"type": "derivative", "var": d.varName, "expr": d.expr.toJSON()}
}

// Integral is the indefinite integral of expr with respect to varName.
type Integral struct {
	expr    Expr
	varName string
}

func IntegralOf(expr Expr, varName string) *Integral {
	return &Integral{expr: expr, varName: varName}
}

func (i *Integral) Expr() Expr       { return i.expr }
func (i *Integral) Var() string      { return i.varName }
func (i *Integral) Simplify() Expr   { return &Integral{expr: i.expr.Simplify(), varName: i.varName} }
func (i *Integral) String() string   { return plain.expr(i) }
func (i *Integral) Eval() (*Num, bool) { return nil, false }
func (i *Integral) exprType() string { return "integral" }

func (i *Integral) LaTeX() string {
	return `\int ` + i.expr.LaTeX() + `\, d` + i.varName
}

func (i *Integral) Sub(varName string, value Expr) Expr {
	if varName == i.varName {
		return i
	}
	return &Integral{expr: i.expr.Sub(varName, value), varName: i.varName}
}

func (i *Integral) Diff(varName string) Expr {
	if varName == i.varName {
		return i.expr
	}
	return &Derivative{expr: i, varName: varName}
}

func (i *Integral) Equal(other Expr) bool {
	o, ok := other.(*Integral)
	return ok && i.varName == o.varName && i.expr.Equal(o.expr)
}

func (i *Integral) toJSON() map[string]interface{} {
	return map[string]interface{}{"type": "integral", "var": i.varName, "expr": i.expr.toJSON()}
}
