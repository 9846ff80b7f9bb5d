package notation

import (
	"sort"
	"strings"
	"unicode"

	"github.com/njchilds90/mathsolve/symbolic"
)

// Kind classifies a token.
type Kind int

const (
	Number Kind = iota
	Ident
	Op
	LParen
	RParen
	Comma
	Bar
	Other
)

func (k Kind) String() string {
	switch k {
	case Number:
		return "number"
	case Ident:
		return "ident"
	case Op:
		return "op"
	case LParen:
		return "lparen"
	case RParen:
		return "rparen"
	case Comma:
		return "comma"
	case Bar:
		return "bar"
	}
	return "other"
}

type Token struct {
	Kind Kind
	Text string
}

func tok(k Kind, text string) Token { return Token{Kind: k, Text: text} }

// constructs are call-like names the parser handles beyond the kernel's
// function table.
var constructs = []string{
	"sqrt", "cbrt", "Abs", "Max", "Min", "beta",
	"Sum", "Product", "Integral", "Derivative", "diff", "integrate",
}

var constantNames = []string{"pi", "E", "oo", "I"}

// tokenAliases are spellings the lexical pass only rewrites as whole
// words. Inside a run such as "lnx" they are found by the splitter.
var tokenAliases = map[string]string{
	"ln": "log", "lg": "log10", "arctg": "atan",
	"arcsin": "asin", "arccos": "acos", "arctan": "atan",
}

var greekNames = []string{
	"alpha", "beta", "gamma", "delta", "epsilon", "zeta", "eta", "theta",
	"iota", "kappa", "lambda", "mu", "nu", "xi", "rho", "sigma", "tau",
	"phi", "chi", "psi", "omega",
}

var (
	// knownWords is sorted longest first for greedy matching.
	knownWords []string
	functions  = map[string]bool{}
	constants  = map[string]bool{}
)

func init() {
	seen := map[string]bool{}
	add := func(w string) {
		if !seen[w] {
			seen[w] = true
			knownWords = append(knownWords, w)
		}
	}
	for _, name := range symbolic.FunctionNames() {
		functions[name] = true
		add(name)
	}
	for _, name := range constructs {
		functions[name] = true
		add(name)
	}
	functions["log"] = true
	for _, name := range constantNames {
		constants[name] = true
		add(name)
	}
	for alias := range tokenAliases {
		add(alias)
	}
	for _, name := range greekNames {
		add(name)
	}
	sort.Slice(knownWords, func(i, j int) bool {
		if len(knownWords[i]) != len(knownWords[j]) {
			return len(knownWords[i]) > len(knownWords[j])
		}
		return knownWords[i] < knownWords[j]
	})
}

// IsFunctionName reports whether name is applied to an argument list.
func IsFunctionName(name string) bool { return functions[name] }

func isFunc(t Token) bool     { return t.Kind == Ident && functions[t.Text] }
func isOperand(t Token) bool  { return t.Kind == Ident && !functions[t.Text] }
func isIdentRune(r rune) bool { return r < unicode.MaxASCII && (unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_') }

var operators = []string{"**", "<=", ">=", "==", "!=", "+", "-", "*", "/", "<", ">", "=", "!", "^"}

// Tokenize splits text into tokens. A number may carry an exponent
// (1e3, 1.5E-2). Runs of letters and digits are split into known words
// (longest match first), numbers and single letters. An identifier
// containing an underscore (x_1) is kept whole.
func Tokenize(text string) []Token {
	var out []Token
	rs := []rune(text)
	for i := 0; i < len(rs); {
		r := rs[i]
		switch {
		case unicode.IsSpace(r):
			i++
		case unicode.IsDigit(r) || (r == '.' && i+1 < len(rs) && unicode.IsDigit(rs[i+1])):
			j := scanNumber(rs, i)
			out = append(out, tok(Number, string(rs[i:j])))
			i = j
		case isIdentRune(r) || (r == '.' && i+1 < len(rs) && unicode.IsDigit(rs[i+1])):
			j := i
			for j < len(rs) && (isIdentRune(rs[j]) || (rs[j] == '.' && j+1 < len(rs) && unicode.IsDigit(rs[j+1]))) {
				j++
			}
			out = append(out, splitRun(string(rs[i:j]))...)
			i = j
		case r == '(':
			out = append(out, tok(LParen, "("))
			i++
		case r == ')':
			out = append(out, tok(RParen, ")"))
			i++
		case r == ',':
			out = append(out, tok(Comma, ","))
			i++
		case r == '|':
			out = append(out, tok(Bar, "|"))
			i++
		default:
			matched := false
			for _, op := range operators {
				if strings.HasPrefix(string(rs[i:]), op) {
					t := op
					if op == "^" {
						t = "**"
					}
					out = append(out, tok(Op, t))
					i += len([]rune(op))
					matched = true
					break
				}
			}
			if !matched {
				out = append(out, tok(Other, string(r)))
				i++
			}
		}
	}
	return out
}

// scanNumber returns the end of the number starting at rs[i]. The
// exponent is taken only when digits follow it, so 2e stays 2*e.
func scanNumber(rs []rune, i int) int {
	j := i
	dot := false
	for j < len(rs) && (unicode.IsDigit(rs[j]) || (rs[j] == '.' && !dot)) {
		if rs[j] == '.' {
			dot = true
		}
		j++
	}
	if j < len(rs) && (rs[j] == 'e' || rs[j] == 'E') {
		k := j + 1
		if k < len(rs) && (rs[k] == '+' || rs[k] == '-') {
			k++
		}
		if k < len(rs) && unicode.IsDigit(rs[k]) {
			for k < len(rs) && unicode.IsDigit(rs[k]) {
				k++
			}
			j = k
		}
	}
	return j
}

// splitRun splits an alphanumeric run such as "2sin" or "lnx".
func splitRun(run string) []Token {
	var out []Token
	for i := 0; i < len(run); {
		c := rune(run[i])
		if unicode.IsDigit(c) || c == '.' {
			j := i
			dot := false
			for j < len(run) && (unicode.IsDigit(rune(run[j])) || (run[j] == '.' && !dot)) {
				if run[j] == '.' {
					dot = true
				}
				j++
			}
			out = append(out, tok(Number, run[i:j]))
			i = j
			continue
		}
		if strings.Contains(run[i:], "_") {
			out = append(out, tok(Ident, run[i:]))
			break
		}
		word := string(c)
		for _, w := range knownWords {
			if strings.HasPrefix(run[i:], w) {
				word = w
				break
			}
		}
		i += len(word)
		if alias, ok := tokenAliases[word]; ok {
			word = alias
		}
		out = append(out, tok(Ident, word))
	}
	return out
}

// Render joins tokens back into text. Binary plus and minus, relations
// and '=' are spaced and commas are followed by a space.
func Render(tokens []Token) string {
	var sb strings.Builder
	for i, t := range tokens {
		switch {
		case t.Kind == Comma:
			sb.WriteString(", ")
		case t.Kind == Op && isSpacedOp(t.Text, tokens, i):
			sb.WriteString(" " + t.Text + " ")
		default:
			sb.WriteString(t.Text)
		}
	}
	return strings.TrimSpace(sb.String())
}

func isSpacedOp(op string, tokens []Token, i int) bool {
	switch op {
	case "<", ">", "<=", ">=", "==", "!=", "=":
		return true
	case "+", "-":
		return i > 0 && endsOperand(tokens[i-1])
	}
	return false
}

// endsOperand reports whether t can end an operand, which makes a
// following plus or minus binary.
func endsOperand(t Token) bool {
	switch t.Kind {
	case Number, Ident, RParen:
		return true
	case Op:
		return t.Text == "!"
	}
	return false
}
