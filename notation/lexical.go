// Package notation turns free-form math input into text the expression
// parser accepts.
//
// Three pieces are provided:
//
//   - Normalize rewrites characters and aliases (lexical pass).
//   - Resolver works on a typed token stream: eager numeric evaluation,
//     power-call shorthand, implicit application, absolute-value bars and
//     implicit multiplication.
//   - ClassifyInput, SplitEquation and MatchConstruct decide how the text
//     is routed to the parser.
//
// All functions are safe for concurrent use by multiple goroutines.
package notation

import (
	"regexp"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// aliasRules rewrite whole-word function aliases. They run before any
// token splitting so that multi-letter aliases are never torn apart.
var aliasRules = []struct {
	re   *regexp.Regexp
	repl string
}{
	{regexp.MustCompile(`\blg\b`), "log10"},
	{regexp.MustCompile(`\bln\b`), "log"},
	{regexp.MustCompile(`\barctg\b`), "atan"},
	{regexp.MustCompile(`\barcsin\b`), "asin"},
	{regexp.MustCompile(`\barccos\b`), "acos"},
	{regexp.MustCompile(`\bsh\b`), "sinh"},
	{regexp.MustCompile(`\bch\b`), "cosh"},
	{regexp.MustCompile(`\bth\b`), "tanh"},
}

// homoglyphs maps Cyrillic letters commonly typed for variables and
// constants to their Latin form.
var homoglyphs = strings.NewReplacer(
	"х", "x", "у", "y", "з", "z", "а", "a",
	"б", "b", "в", "c", "п", "pi", "е", "E",
)

var symbols = strings.NewReplacer(
	"^", "**",
	"√", "sqrt",
	"∞", "oo",
	"±", "+/-",
	"×", "*",
	"÷", "/",
)

// Normalize applies the lexical rewrites in a fixed order: NFC
// composition, whitespace collapsing, word aliases, homoglyphs, then
// operator symbols. It never fails and is idempotent.
func Normalize(text string) string {
	s := norm.NFC.String(text)
	s = strings.Join(strings.Fields(s), " ")
	for _, r := range aliasRules {
		s = r.re.ReplaceAllString(s, r.repl)
	}
	s = homoglyphs.Replace(s)
	return symbols.Replace(s)
}
