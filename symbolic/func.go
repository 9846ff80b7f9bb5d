package symbolic

import (
	"math"
	"math/big"
)

// ============================================================
// Func: named function applications
// ============================================================

type Func struct {
	name string
	arg  Expr
}

// funcTable holds the float evaluator of every known function.
var funcTable = map[string]func(float64) float64{
	"sin":   math.Sin,
	"cos":   math.Cos,
	"tan":   math.Tan,
	"cot":   func(v float64) float64 { return 1 / math.Tan(v) },
	"sec":   func(v float64) float64 { return 1 / math.Cos(v) },
	"csc":   func(v float64) float64 { return 1 / math.Sin(v) },
	"asin":  math.Asin,
	"acos":  math.Acos,
	"atan":  math.Atan,
	"acot":  func(v float64) float64 { return math.Atan(1 / v) },
	"sinh":  math.Sinh,
	"cosh":  math.Cosh,
	"tanh":  math.Tanh,
	"coth":  func(v float64) float64 { return 1 / math.Tanh(v) },
	"sech":  func(v float64) float64 { return 1 / math.Cosh(v) },
	"csch":  func(v float64) float64 { return 1 / math.Sinh(v) },
	"exp":   math.Exp,
	"log":   math.Log,
	"log10": math.Log10,
	"abs":   math.Abs,
	"floor": math.Floor,
	"ceil":  math.Ceil,
	"sign": func(v float64) float64 {
		switch {
		case v > 0:
			return 1
		case v < 0:
			return -1
		}
		return 0
	},
	"factorial": func(v float64) float64 { return math.Gamma(v + 1) },
	"gamma":     math.Gamma,
}

// IsFunction reports whether name is a known single-argument function.
func IsFunction(name string) bool {
	_, ok := funcTable[name]
	return ok
}

// FunctionNames lists every known function name.
func FunctionNames() []string {
	out := make([]string, 0, len(funcTable))
	for name := range funcTable {
		out = append(out, name)
	}
	return out
}

func funcOf(name string, arg Expr) *Func { return &Func{name: name, arg: arg} }

// Fn applies a known function to arg. Unknown names panic.
func Fn(name string, arg Expr) Expr {
	if !IsFunction(name) {
		panic("symbolic: unknown function " + name)
	}
	return funcOf(name, arg).Simplify()
}

func SinOf(arg Expr) Expr       { return funcOf("sin", arg).Simplify() }
func CosOf(arg Expr) Expr       { return funcOf("cos", arg).Simplify() }
func TanOf(arg Expr) Expr       { return funcOf("tan", arg).Simplify() }
func ExpOf(arg Expr) Expr       { return funcOf("exp", arg).Simplify() }
func LogOf(arg Expr) Expr       { return funcOf("log", arg).Simplify() }
func Log10Of(arg Expr) Expr     { return funcOf("log10", arg).Simplify() }
func AbsOf(arg Expr) Expr       { return funcOf("abs", arg).Simplify() }
func FactorialOf(arg Expr) Expr { return funcOf("factorial", arg).Simplify() }
func SinhOf(arg Expr) Expr      { return funcOf("sinh", arg).Simplify() }
func CoshOf(arg Expr) Expr      { return funcOf("cosh", arg).Simplify() }
func TanhOf(arg Expr) Expr      { return funcOf("tanh", arg).Simplify() }
func AsinOf(arg Expr) Expr      { return funcOf("asin", arg).Simplify() }
func AtanOf(arg Expr) Expr      { return funcOf("atan", arg).Simplify() }

func (f *Func) Simplify() Expr {
	arg := f.arg.Simplify()
	n, isNum := arg.(*Num)
	if isNum && n.approx {
		if v, ok := floatNum(funcTable[f.name](n.Float64())); ok {
			return v
		}
		return &Func{name: f.name, arg: arg}
	}

	switch f.name {
	case "sin", "tan", "asin", "atan", "sinh", "tanh":
		if isNumEqual(arg, 0) {
			return N(0)
		}
		if f.name == "sin" && isConst(arg, "pi") {
			return N(0)
		}
	case "cos", "cosh":
		if isNumEqual(arg, 0) {
			return N(1)
		}
		if f.name == "cos" && isConst(arg, "pi") {
			return N(-1)
		}
	case "acos":
		if isNumEqual(arg, 1) {
			return N(0)
		}
	case "log":
		if isNumEqual(arg, 1) {
			return N(0)
		}
		if isConst(arg, "E") {
			return N(1)
		}
	case "log10":
		if isNum {
			if k, ok := exactLog10(n); ok {
				return N(k)
			}
		}
	case "exp":
		if isNumEqual(arg, 0) {
			return N(1)
		}
		if inner, ok := arg.(*Func); ok && inner.name == "log" {
			return inner.arg
		}
	case "abs":
		if isNum {
			return numAbs(n)
		}
		if inner, ok := arg.(*Func); ok && inner.name == "abs" {
			return inner
		}
		if m, ok := arg.(*Mul); ok {
			if coeff, ok2 := m.factors[0].(*Num); ok2 && coeff.IsNegative() {
				rest := append([]Expr{numNeg(coeff)}, m.factors[1:]...)
				return AbsOf(MulOf(rest...))
			}
		}
	case "sign":
		if isNum {
			return N(int64(n.val.Sign()))
		}
	case "floor", "ceil":
		if isNum {
			q, r := new(big.Int).QuoRem(n.val.Num(), n.val.Denom(), new(big.Int))
			if f.name == "floor" && r.Sign() < 0 {
				q.Sub(q, big.NewInt(1))
			}
			if f.name == "ceil" && r.Sign() > 0 {
				q.Add(q, big.NewInt(1))
			}
			return ratNum(new(big.Rat).SetInt(q))
		}
	case "factorial":
		if isNum && n.IsInteger() && n.val.Sign() >= 0 && n.val.Num().IsInt64() && n.val.Num().Int64() <= 1000 {
			return ratNum(new(big.Rat).SetInt(factorial(n.val.Num().Int64())))
		}
	case "gamma":
		if isNum && n.IsInteger() && n.IsPositive() && n.val.Num().IsInt64() && n.val.Num().Int64() <= 1001 {
			return ratNum(new(big.Rat).SetInt(factorial(n.val.Num().Int64() - 1)))
		}
	}
	return &Func{name: f.name, arg: arg}
}

func factorial(n int64) *big.Int {
	if n < 2 {
		return big.NewInt(1)
	}
	return new(big.Int).MulRange(1, n)
}

// exactLog10 returns k when n is exactly 10**k.
func exactLog10(n *Num) (int64, bool) {
	if !n.IsPositive() {
		return 0, false
	}
	ten := big.NewInt(10)
	num, den := new(big.Int).Set(n.val.Num()), new(big.Int).Set(n.val.Denom())
	sign := int64(1)
	if num.Cmp(big.NewInt(1)) == 0 {
		num, den, sign = den, num, -1
	}
	if den.Cmp(big.NewInt(1)) != 0 {
		return 0, false
	}
	k := int64(0)
	m := new(big.Int)
	for num.Cmp(big.NewInt(1)) > 0 {
		num.QuoRem(num, ten, m)
		if m.Sign() != 0 {
			return 0, false
		}
		k++
	}
	return sign * k, true
}

func (f *Func) String() string { return plain.expr(f) }

func (f *Func) LaTeX() string {
	arg := `\left(` + f.arg.LaTeX() + `\right)`
	switch f.name {
	case "sin", "cos", "tan", "cot", "sec", "csc", "exp", "log", "sinh", "cosh", "tanh", "coth":
		return `\` + f.name + arg
	case "log10":
		return `\log_{10}` + arg
	case "asin":
		return `\arcsin` + arg
	case "acos":
		return `\arccos` + arg
	case "atan":
		return `\arctan` + arg
	case "abs":
		return `\left|` + f.arg.LaTeX() + `\right|`
	case "floor":
		return `\lfloor ` + f.arg.LaTeX() + ` \rfloor`
	case "ceil":
		return `\lceil ` + f.arg.LaTeX() + ` \rceil`
	case "gamma":
		return `\Gamma` + arg
	case "factorial":
		switch f.arg.(type) {
		case *Sym, *Num:
			return f.arg.LaTeX() + "!"
		}
		return arg + "!"
	}
	return `\operatorname{` + f.name + "}" + arg
}

func (f *Func) Sub(varName string, value Expr) Expr {
	return funcOf(f.name, f.arg.Sub(varName, value)).Simplify()
}

func (f *Func) Diff(varName string) Expr {
	if !dependsOn(f.arg, varName) {
		return N(0)
	}
	du := f.arg.Diff(varName)
	u := f.arg
	var outer Expr
	switch f.name {
	case "sin":
		outer = CosOf(u)
	case "cos":
		outer = Neg(SinOf(u))
	case "tan":
		outer = AddOf(N(1), PowOf(TanOf(u), N(2)))
	case "cot":
		outer = Neg(AddOf(N(1), PowOf(Fn("cot", u), N(2))))
	case "sec":
		outer = MulOf(Fn("sec", u), TanOf(u))
	case "csc":
		outer = Neg(MulOf(Fn("csc", u), Fn("cot", u)))
	case "exp":
		outer = ExpOf(u)
	case "log":
		outer = PowOf(u, N(-1))
	case "log10":
		outer = PowOf(MulOf(u, LogOf(N(10))), N(-1))
	case "asin":
		outer = PowOf(Minus(N(1), PowOf(u, N(2))), F(-1, 2))
	case "acos":
		outer = Neg(PowOf(Minus(N(1), PowOf(u, N(2))), F(-1, 2)))
	case "atan":
		outer = PowOf(AddOf(N(1), PowOf(u, N(2))), N(-1))
	case "acot":
		outer = Neg(PowOf(AddOf(N(1), PowOf(u, N(2))), N(-1)))
	case "sinh":
		outer = CoshOf(u)
	case "cosh":
		outer = SinhOf(u)
	case "tanh":
		outer = Minus(N(1), PowOf(TanhOf(u), N(2)))
	case "abs":
		outer = Fn("sign", u)
	default:
		return &Derivative{expr: f, varName: varName}
	}
	return MulOf(outer, du)
}

func (f *Func) Eval() (*Num, bool) {
	n, ok := f.arg.Eval()
	if !ok {
		return nil, false
	}
	if !n.approx {
		if r, isNum := funcOf(f.name, n).Simplify().(*Num); isNum {
			return r, true
		}
	}
	return floatNum(funcTable[f.name](n.Float64()))
}

func (f *Func) Equal(other Expr) bool {
	o, ok := other.(*Func)
	return ok && f.name == o.name && f.arg.Equal(o.arg)
}

func (f *Func) exprType() string { return "func" }
func (f *Func) toJSON() map[string]interface{} {
	return map[string]interface{}{"type": "func", "name": f.name, "arg": f.arg.toJSON()}
}
func (f *Func) FuncName() string { return f.name }
func (f *Func) Arg() Expr        { return f.arg }
