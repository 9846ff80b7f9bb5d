package notation_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/njchilds90/mathsolve/notation"
)

func TestNormalize(t *testing.T) {
	cases := []struct {
		in, want string
	}{
		{"lg(100)", "log10(100)"},
		{"ln x", "log x"},
		{"  x   +\t 1 ", "x + 1"},
		{"arctg(1) + arcsin(0)", "atan(1) + asin(0)"},
		{"sh(x) + ch(x) + th(x)", "sinh(x) + cosh(x) + tanh(x)"},
		{"cosh(x)", "cosh(x)"},
		{"lgx", "lgx"},
		{"х^2 + у", "x**2 + y"},
		{"2п", "2pi"},
		{"√(x)", "sqrt(x)"},
		{"2×3÷4", "2*3/4"},
		{"x → ∞", "x → oo"},
		{"±1", "+/-1"},
	}
	for _, c := range cases {
		t.Run(c.in, func(t *testing.T) {
			assert.Equal(t, c.want, notation.Normalize(c.in))
		})
	}
}

func TestNormalize_Idempotent(t *testing.T) {
	for _, in := range []string{
		"lg(100) + ln(x)",
		"sin^2(x) + cos^2(x)",
		"х^2 - 4 = 0",
		"√16 × ∞",
		"arccos(x)   sh  x",
	} {
		once := notation.Normalize(in)
		assert.Equal(t, once, notation.Normalize(once), in)
	}
}
