package symbolic_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/njchilds90/mathsolve/symbolic"
)

func TestParseLaTeX(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{"fraction", `\frac{x^2}{2}`, "x**2/2"},
		{"numeric fraction", `\frac{1}{2}`, "1/2"},
		{"sqrt", `\sqrt{16}`, "4"},
		{"nth root", `\sqrt[3]{27}`, "3"},
		{"cdot", `2 \cdot 3`, "6"},
		{"greek", `\alpha + 1`, "alpha + 1"},
		{"abs", `\left| x \right|`, "Abs(x)"},
		{"dollars", `$x^{2}$`, "x**2"},
		{"trig", `\sin{x}`, "sin(x)"},
		{"log base 10", `\log_{10}{100}`, "2"},
		{"equation", `x^{2} - 4 = 0`, "x**2 - 4 = 0"},
		{"inequality", `x \leq 3`, "x <= 3"},
		{"derivative", `\frac{d}{dx} x^3`, "Derivative(x**3, x)"},
		{"integral", `\int x^2 \, dx`, "Integral(x**2, x)"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			e, err := symbolic.ParseLaTeX(c.in)
			require.NoError(t, err)
			assert.Equal(t, c.want, e.String())
		})
	}
}

func TestParseLaTeX_Unsupported(t *testing.T) {
	for _, in := range []string{`\unknown{x}`, `\int_0^1 x \, dx`, `\log_{2}{8}`} {
		_, err := symbolic.ParseLaTeX(in)
		assert.ErrorIs(t, err, symbolic.ErrUnsupported, in)
	}
}

func TestParseLaTeX_Malformed(t *testing.T) {
	for _, in := range []string{`\frac{1}`, `|x`, `\int x^2`} {
		_, err := symbolic.ParseLaTeX(in)
		assert.ErrorIs(t, err, symbolic.ErrSyntax, in)
	}
}

func TestLaTeXToPlain_Subscript(t *testing.T) {
	got, err := symbolic.LaTeXToPlain(`x_1 + x_{2}`)
	require.NoError(t, err)
	assert.Equal(t, "x_1 + x_2", got)
}
