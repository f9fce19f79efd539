package poly

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLaTeX(t *testing.T) {

	type test struct {
		p      func() Polynomial
		opts   []RenderOption
		output string
	}

	template := func(dimension, degree int) func() Polynomial {
		return func() Polynomial {
			p, err := Make(dimension, degree)
			require.NoError(t, err)
			return p
		}
	}

	fixed := func(p Polynomial) func() Polynomial {
		return func() Polynomial {
			return p
		}
	}

	tests := map[string]test{
		"single-square": {
			p: fixed(Polynomial{
				Dimension: 1,
				Degree:    2,
				Terms:     []Term{NewTerm(1, 2)},
			}),
			output: "x^2",
		},
		"example": {
			p:      examplePolynomial,
			output: "x_1^2 + 5",
		},
		"template-2-2": {
			p:      template(2, 2),
			output: "a_5x_1^2 + a_4x_2^2 + a_3x_1x_2 + a_2x_1 + a_1x_2 + a_0",
		},
		"template-1-2": {
			p:      template(1, 2),
			output: "a_2x^2 + a_1x + a_0",
		},
		"template-single-constant": {
			p:      template(3, 0),
			output: "a_0",
		},
		"constant-one": {
			p: fixed(Polynomial{
				Dimension: 2,
				Degree:    1,
				Terms:     []Term{NewTerm(1, 1, 0), NewTerm(1, 0, 0)},
			}),
			output: "x_1 + 1",
		},
		"negative-one": {
			p: fixed(Polynomial{
				Dimension: 1,
				Degree:    1,
				Terms:     []Term{NewTerm(-1, 1)},
			}),
			output: "-1x",
		},
		"skip-zero": {
			p: fixed(Polynomial{
				Dimension: 2,
				Degree:    2,
				Terms:     []Term{NewTerm(0, 2, 0), NewTerm(3, 1, 1), NewTerm(0, 0, 0)},
			}),
			output: "3x_1x_2",
		},
		"all-terms": {
			p: fixed(Polynomial{
				Dimension: 2,
				Degree:    2,
				Terms:     []Term{NewTerm(0, 2, 0), NewTerm(3, 1, 1), NewTerm(0, 0, 0)},
			}),
			opts:   []RenderOption{AllTerms()},
			output: "0x_1^2 + 3x_1x_2 + 0",
		},
		"all-zero": {
			p: fixed(Polynomial{
				Dimension: 1,
				Degree:    1,
				Terms:     []Term{NewTerm(0, 1), NewTerm(0, 0)},
			}),
			output: "",
		},
		"fitted-line": {
			p: func() Polynomial {
				p, err := template(1, 1)().WithCoefficients([]float64{0.17183098591549267, 5.200938967136154})
				require.NoError(t, err)
				return p
			},
			output: "0.17183098591549267x + 5.200938967136154",
		},
		"mixed-unset": {
			p: fixed(Polynomial{
				Dimension: 2,
				Degree:    2,
				Terms:     []Term{{Exponents: []int{1, 1}}, NewTerm(0, 1, 0), NewTerm(-2.5, 0, 0)},
			}),
			output: "a_2x_1x_2 + -2.5",
		},
		"tiny-coefficient": {
			p: fixed(Polynomial{
				Dimension: 1,
				Degree:    1,
				Terms:     []Term{NewTerm(1e-7, 1), NewTerm(-1, 0)},
			}),
			output: "1e-7x + -1",
		},
		"symbols": {
			p:      template(2, 1),
			opts:   []RenderOption{WithVariable("y"), WithPlaceholder("c")},
			output: "c_2y_1 + c_1y_2 + c_0",
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			s, err := LaTeX(tt.p(), tt.opts...)
			require.NoError(t, err)
			assert.Equal(t, tt.output, s)
		})
	}

}

func TestLaTeX_MultiDigitPlaceholder(t *testing.T) {

	p, err := Make(3, 3)
	require.NoError(t, err)
	require.Len(t, p.Terms, 20)

	s, err := LaTeX(p)
	require.NoError(t, err)
	assert.Regexp(t, `^a_1_9x_1\^3 \+ a_1_8x_2\^3 \+ `, s)
	assert.Regexp(t, ` \+ a_0$`, s)

}

func TestLaTeX_Invalid(t *testing.T) {

	p := Polynomial{
		Dimension: 2,
		Degree:    1,
		Terms:     []Term{NewTerm(1, 1)},
	}

	_, err := LaTeX(p)
	assert.True(t, errors.Is(err, ErrTermDimensionMismatch))
	assert.Contains(t, p.String(), "invalid polynomial")

	assert.Equal(t, "x_1^2 + 5", examplePolynomial().String())

}
