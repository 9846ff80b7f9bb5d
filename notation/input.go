package notation

import (
	"regexp"
	"strings"
)

// InputKind tells which parser an input goes to first.
type InputKind int

const (
	PlainText InputKind = iota
	LaTeXLike
)

func (k InputKind) String() string {
	if k == LaTeXLike {
		return "latex"
	}
	return "plain"
}

var latexMarkers = []*regexp.Regexp{
	regexp.MustCompile(`\\[a-zA-Z]+`),
	regexp.MustCompile(`\{.*\}`),
	regexp.MustCompile(`\\frac`),
	regexp.MustCompile(`\\sqrt`),
	regexp.MustCompile(`\\int`),
}

// ClassifyInput reports LaTeXLike when text carries a backslash command
// or a brace group.
func ClassifyInput(text string) InputKind {
	for _, re := range latexMarkers {
		if re.MatchString(text) {
			return LaTeXLike
		}
	}
	return PlainText
}

var (
	latexWrapper = regexp.MustCompile(`\\[a-zA-Z]+\{([^}]+)\}`)
	braces       = strings.NewReplacer("{", "", "}", "")
)

// StripLaTeX removes \cmd{...} wrappers and stray braces. It is a best
// effort fallback for input the LaTeX parser rejected.
func StripLaTeX(text string) string {
	return braces.Replace(latexWrapper.ReplaceAllString(text, "$1"))
}

// SplitEquation splits text on a bare '=' into two non-empty sides.
// Text carrying <=, >=, == or != is never split.
func SplitEquation(text string) (lhs, rhs string, ok bool) {
	for _, op := range []string{"<=", ">=", "==", "!="} {
		if strings.Contains(text, op) {
			return "", "", false
		}
	}
	parts := strings.Split(text, "=")
	if len(parts) != 2 {
		return "", "", false
	}
	lhs, rhs = strings.TrimSpace(parts[0]), strings.TrimSpace(parts[1])
	if lhs == "" || rhs == "" {
		return "", "", false
	}
	return lhs, rhs, true
}

// Construct is a whole-input integrate(A, B) or diff(A, B) call.
type Construct struct {
	Name string
	Body string
	Var  string
}

var constructRe = regexp.MustCompile(`^\s*(integrate|diff)\((.+?),\s*([A-Za-z_][A-Za-z0-9_]*)\s*\)\s*$`)

// MatchConstruct recognises a derivative or integral request covering
// the whole of normalized text.
func MatchConstruct(normalized string) (Construct, bool) {
	m := constructRe.FindStringSubmatch(normalized)
	if m == nil {
		return Construct{}, false
	}
	return Construct{Name: m[1], Body: strings.TrimSpace(m[2]), Var: m[3]}, true
}
