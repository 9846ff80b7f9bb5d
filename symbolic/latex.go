package symbolic

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"
)

// ============================================================
// LaTeX reader
// ============================================================
//
// LaTeXToPlain rewrites the LaTeX subset used for school and calculus
// notation into plain text accepted by Parse. It is a translator, not a
// TeX implementation: unknown commands are reported as unsupported.

var latexFuncs = map[string]string{
	"sin": "sin", "cos": "cos", "tan": "tan", "cot": "cot", "sec": "sec", "csc": "csc",
	"sinh": "sinh", "cosh": "cosh", "tanh": "tanh", "coth": "coth",
	"arcsin": "asin", "arccos": "acos", "arctan": "atan",
	"exp": "exp", "ln": "log", "log": "log",
}

var latexOps = map[string]string{
	"cdot": "*", "times": "*", "div": "/",
	"le": "<=", "leq": "<=", "leqslant": "<=", "ge": ">=", "geq": ">=", "geqslant": ">=",
	"ne": "!=", "neq": "!=", "lt": "<", "gt": ">",
	"pi": "pi", "infty": "oo",
}

var latexSkip = map[string]bool{
	"displaystyle": true, "quad": true, "qquad": true, "left": true, "right": true,
	",": true, ";": true, "!": true, " ": true, ":": true, "\\": true,
}

var latexText = map[string]bool{
	"operatorname": true, "text": true, "mathrm": true, "mathit": true, "mathbf": true,
}

// integralBody splits "<body> dx" into the body and the variable.
var integralBody = regexp.MustCompile(`(?s)^(.*?)(?:\\[,;!]|\s)*d\s*([A-Za-z])\s*$`)

// differential matches the denominator of d/dx.
var differential = regexp.MustCompile(`^\s*d\s*([A-Za-z])\s*$`)

type latexReader struct {
	src []rune
	pos int
	out strings.Builder
	// bars counts open absolute-value groups.
	bars int
}

// LaTeXToPlain converts LaTeX math to plain expression text.
func LaTeXToPlain(src string) (string, error) {
	src = strings.TrimSpace(src)
	src = strings.TrimPrefix(strings.TrimSuffix(src, "$"), "$")
	src = strings.TrimPrefix(strings.TrimSuffix(src, `\]`), `\[`)
	r := &latexReader{src: []rune(src)}
	if err := r.run(); err != nil {
		return "", err
	}
	return strings.Join(strings.Fields(r.out.String()), " "), nil
}

// ParseLaTeX parses LaTeX math. A bare '=' yields an equation.
func ParseLaTeX(src string) (Expr, error) {
	plainText, err := LaTeXToPlain(src)
	if err != nil {
		return nil, err
	}
	if lhs, rhs, ok := splitBareEquals(plainText); ok {
		l, err := Parse(lhs)
		if err != nil {
			return nil, err
		}
		r, err := Parse(rhs)
		if err != nil {
			return nil, err
		}
		return Eq(l, r), nil
	}
	return Parse(plainText)
}

// splitBareEquals splits at the single '=' that is not part of <=, >=,
// == or !=.
func splitBareEquals(s string) (string, string, bool) {
	idx := -1
	for i := 0; i < len(s); i++ {
		if s[i] != '=' {
			continue
		}
		if i > 0 && strings.ContainsRune("<>=!", rune(s[i-1])) {
			continue
		}
		if i+1 < len(s) && s[i+1] == '=' {
			continue
		}
		if idx >= 0 {
			return "", "", false
		}
		idx = i
	}
	if idx < 0 {
		return "", "", false
	}
	return s[:idx], s[idx+1:], true
}

func (r *latexReader) eof() bool { return r.pos >= len(r.src) }

func (r *latexReader) peek() rune {
	if r.eof() {
		return 0
	}
	return r.src[r.pos]
}

func (r *latexReader) skipSpace() {
	for !r.eof() && unicode.IsSpace(r.peek()) {
		r.pos++
	}
}

func (r *latexReader) emit(s string) { r.out.WriteString(s) }

// lastSignificant returns the last non-space rune written so far.
func (r *latexReader) lastSignificant() rune {
	s := strings.TrimRightFunc(r.out.String(), unicode.IsSpace)
	if s == "" {
		return 0
	}
	rs := []rune(s)
	return rs[len(rs)-1]
}

func (r *latexReader) run() error {
	for !r.eof() {
		c := r.peek()
		switch {
		case c == '\\':
			if err := r.command(); err != nil {
				return err
			}
		case c == '{':
			r.pos++
			r.emit("(")
		case c == '}':
			r.pos++
			r.emit(")")
		case c == '^':
			r.pos++
			r.emit("**")
		case c == '_':
			r.pos++
			sub, err := r.group()
			if err != nil {
				return err
			}
			// Subscripts become part of the identifier: x_1.
			prev := strings.TrimRight(r.out.String(), " ")
			r.out.Reset()
			r.emit(prev + "_" + strings.TrimSpace(sub) + " ")
		case c == '|':
			r.pos++
			r.bar()
		case unicode.IsLetter(c):
			r.pos++
			r.emit(" " + string(c) + " ")
		default:
			r.pos++
			r.emit(string(c))
		}
	}
	if r.bars != 0 {
		return fmt.Errorf("%w: unbalanced absolute value bars", ErrSyntax)
	}
	return nil
}

// bar opens an absolute value where an operand is expected and closes
// the innermost open one otherwise.
func (r *latexReader) bar() {
	last := r.lastSignificant()
	opens := last == 0 || strings.ContainsRune("(+-*/=<>,", last)
	if opens || r.bars == 0 {
		r.bars++
		r.emit(" Abs(")
		return
	}
	r.bars--
	r.emit(")")
}

func (r *latexReader) commandName() string {
	start := r.pos
	for !r.eof() && unicode.IsLetter(r.peek()) {
		r.pos++
	}
	if r.pos == start && !r.eof() {
		r.pos++
	}
	return string(r.src[start:r.pos])
}

// group reads a braced group or a single token and returns its raw text.
func (r *latexReader) group() (string, error) {
	r.skipSpace()
	if r.eof() {
		return "", fmt.Errorf("%w: missing argument", ErrSyntax)
	}
	switch r.peek() {
	case '{':
		depth := 0
		start := r.pos + 1
		for !r.eof() {
			switch r.src[r.pos] {
			case '{':
				depth++
			case '}':
				depth--
				if depth == 0 {
					body := string(r.src[start:r.pos])
					r.pos++
					return body, nil
				}
			}
			r.pos++
		}
		return "", fmt.Errorf("%w: unbalanced braces", ErrSyntax)
	case '\\':
		start := r.pos
		r.pos++
		r.commandName()
		return string(r.src[start:r.pos]), nil
	}
	c := r.src[r.pos]
	r.pos++
	return string(c), nil
}

func (r *latexReader) sub(src string) (string, error) {
	return LaTeXToPlain(src)
}

func (r *latexReader) rest() string {
	s := string(r.src[r.pos:])
	r.pos = len(r.src)
	return s
}

func (r *latexReader) command() error {
	r.pos++
	name := r.commandName()
	switch {
	case latexSkip[name]:
		return nil
	case name == "{" || name == "(":
		r.emit("(")
		return nil
	case name == "}" || name == ")":
		r.emit(")")
		return nil
	case name == "|":
		r.bar()
		return nil
	case latexOps[name] != "":
		r.emit(" " + latexOps[name] + " ")
		return nil
	case IsGreek(name):
		r.emit(" " + name + " ")
		return nil
	case latexFuncs[name] != "":
		return r.function(latexFuncs[name])
	case latexText[name]:
		g, err := r.group()
		if err != nil {
			return err
		}
		r.emit(" " + strings.ReplaceAll(g, " ", "") + " ")
		return nil
	}
	switch name {
	case "frac", "dfrac", "tfrac":
		return r.frac()
	case "sqrt":
		return r.sqrt()
	case "int":
		return r.integral()
	}
	return fmt.Errorf("%w: LaTeX command \\%s", ErrUnsupported, name)
}

func (r *latexReader) function(name string) error {
	if name == "log" && r.peek() == '_' {
		r.pos++
		base, err := r.group()
		if err != nil {
			return err
		}
		if strings.TrimSpace(base) != "10" {
			return fmt.Errorf("%w: logarithm base %s", ErrUnsupported, base)
		}
		name = "log10"
	}
	r.emit(" " + name + " ")
	return nil
}

func (r *latexReader) frac() error {
	num, err := r.group()
	if err != nil {
		return err
	}
	den, err := r.group()
	if err != nil {
		return err
	}
	if strings.TrimSpace(num) == "d" {
		if m := differential.FindStringSubmatch(den); m != nil {
			body, err := r.sub(r.rest())
			if err != nil {
				return err
			}
			r.emit("diff(" + body + ", " + m[1] + ")")
			return nil
		}
	}
	n, err := r.sub(num)
	if err != nil {
		return err
	}
	d, err := r.sub(den)
	if err != nil {
		return err
	}
	r.emit("((" + n + ")/(" + d + "))")
	return nil
}

func (r *latexReader) sqrt() error {
	r.skipSpace()
	index := ""
	if r.peek() == '[' {
		end := r.pos
		for end < len(r.src) && r.src[end] != ']' {
			end++
		}
		if end == len(r.src) {
			return fmt.Errorf("%w: unclosed root index", ErrSyntax)
		}
		index = string(r.src[r.pos+1 : end])
		r.pos = end + 1
	}
	g, err := r.group()
	if err != nil {
		return err
	}
	body, err := r.sub(g)
	if err != nil {
		return err
	}
	if index == "" {
		r.emit("sqrt(" + body + ")")
		return nil
	}
	idx, err := r.sub(index)
	if err != nil {
		return err
	}
	r.emit("((" + body + ")**(1/(" + idx + ")))")
	return nil
}

func (r *latexReader) integral() error {
	r.skipSpace()
	if r.peek() == '_' || r.peek() == '^' {
		return fmt.Errorf("%w: definite integrals", ErrUnsupported)
	}
	m := integralBody.FindStringSubmatch(r.rest())
	if m == nil {
		return fmt.Errorf("%w: integral without differential", ErrSyntax)
	}
	body, err := r.sub(m[1])
	if err != nil {
		return err
	}
	r.emit("integrate(" + body + ", " + m[2] + ")")
	return nil
}
