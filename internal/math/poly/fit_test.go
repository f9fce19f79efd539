package poly

import (
	"errors"
	"math"
	"testing"

	fitmath "github.com/drakos74/free-fit/internal/math"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

func TestFit_Line(t *testing.T) {

	d := mat.NewDense(6, 2, []float64{
		2, 5,
		5, 5,
		7, 8,
		11, 7,
		14, 9,
		18, 7,
	})

	p, err := FitOne(1, d)
	require.NoError(t, err)

	require.Len(t, p.Terms, 2)
	assert.Equal(t, []int{1}, p.Terms[0].Exponents)
	assert.InDelta(t, 0.17183098591549267, *p.Terms[0].Coefficient, 1e-9)
	assert.Equal(t, []int{0}, p.Terms[1].Exponents)
	assert.InDelta(t, 5.200938967136154, *p.Terms[1].Coefficient, 1e-9)

	v, err := p.Evaluate(2)
	require.NoError(t, err)
	assert.InDelta(t, 5.544600938967139, v, 1e-9)

}

func TestFit_RoundTrip(t *testing.T) {

	type test struct {
		dimension    int
		degree       int
		coefficients func(n int) []float64
		series       []float64
	}

	alternating := func(n int) []float64 {
		cc := make([]float64, n)
		for i := range cc {
			cc[i] = float64((i%5)-2) * float64(i+1)
		}
		return cc
	}

	tests := map[string]test{
		"1-3": {
			dimension:    1,
			degree:       3,
			coefficients: alternating,
			series:       fitmath.Series(-3, 1, 7),
		},
		"2-2": {
			dimension:    2,
			degree:       2,
			coefficients: alternating,
			series:       fitmath.Series(-2, 1, 5),
		},
		"3-2": {
			dimension:    3,
			degree:       2,
			coefficients: alternating,
			series:       fitmath.Series(-1, 1, 4),
		},
		"2-4": {
			dimension:    2,
			degree:       4,
			coefficients: alternating,
			series:       fitmath.Series(-2, 1, 6),
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			template, err := Make(tt.dimension, tt.degree)
			require.NoError(t, err)

			original, err := template.WithCoefficients(tt.coefficients(len(template.Terms)))
			require.NoError(t, err)

			samples, err := Samples(original, fitmath.Grid(tt.dimension, tt.series))
			require.NoError(t, err)

			fitted, err := FitOne(tt.degree, samples)
			require.NoError(t, err)

			expected, _ := original.Coefficients()
			actual, ok := fitted.Coefficients()
			require.True(t, ok)
			require.Len(t, actual, len(expected))
			for i := range expected {
				assert.InDelta(t, expected[i], actual[i], 1e-9)
			}
		})
	}

}

func TestFit_Range(t *testing.T) {

	d := mat.NewDense(3, 4, []float64{
		2, 9, 10, 7,
		1, 7, 7, 3,
		0, 5, 4, 1,
	})

	pp, err := Fit(2, d, 3)
	require.NoError(t, err)
	require.Len(t, pp, 3)

	expected := []string{
		"2x + 5",
		"3x + 4",
		"x^2 + x + 1",
	}
	for i, p := range pp {
		s, err := LaTeX(p)
		require.NoError(t, err)
		assert.Equal(t, expected[i], s)
	}

	// each polynomial owns its terms
	*pp[0].Terms[0].Coefficient = 42
	assert.Equal(t, 0., *pp[1].Terms[0].Coefficient)
	pp[0].Terms[0].Exponents[0] = 0
	assert.Equal(t, []int{2}, pp[2].Terms[0].Exponents)

}

func TestFit_Errors(t *testing.T) {

	type test struct {
		degree int
		d      mat.Matrix
		rng    int
		err    error
	}

	tests := map[string]test{
		"underdetermined": {
			degree: 2,
			d:      mat.NewDense(2, 2, []float64{1, 1, 2, 4}),
			rng:    1,
			err:    ErrUnderdetermined,
		},
		"degree-too-big": {
			degree: 10,
			d:      mat.NewDense(2, 2, []float64{1, 1, 2, 4}),
			rng:    1,
			err:    ErrDomainTooLarge,
		},
		"dimension-too-big": {
			degree: 1,
			d:      mat.NewDense(1, 7, nil),
			rng:    1,
			err:    ErrDomainTooLarge,
		},
		"no-range": {
			degree: 1,
			d:      mat.NewDense(2, 2, []float64{1, 1, 2, 4}),
			rng:    0,
			err:    ErrInvalidRange,
		},
		"no-variables": {
			degree: 1,
			d:      mat.NewDense(2, 2, []float64{1, 1, 2, 4}),
			rng:    2,
			err:    ErrInvalidRange,
		},
		"rank-deficient": {
			degree: 1,
			d: mat.NewDense(3, 2, []float64{
				0, 1,
				0, 2,
				0, 3,
			}),
			rng: 1,
			err: ErrFitFailed,
		},
		"not-finite": {
			degree: 1,
			d: mat.NewDense(3, 2, []float64{
				0, 1,
				1, math.NaN(),
				2, 3,
			}),
			rng: 1,
			err: ErrFitFailed,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			pp, err := Fit(tt.degree, tt.d, tt.rng)
			assert.Nil(t, pp)
			assert.True(t, errors.Is(err, tt.err), err)
		})
	}

	t.Run("cause", func(t *testing.T) {
		_, err := FitOne(1, mat.NewDense(3, 2, []float64{0, 1, 0, 2, 0, 3}))
		var fitErr *FitError
		require.True(t, errors.As(err, &fitErr))
		assert.Equal(t, 3, fitErr.Rows)
		assert.Equal(t, 2, fitErr.Terms)
		assert.Equal(t, -1, fitErr.Column)
		assert.True(t, errors.Is(err, fitmath.ErrRankDeficient))
	})

}

func TestDesign(t *testing.T) {

	p, err := Make(2, 2)
	require.NoError(t, err)

	a := Design(p, mat.NewDense(2, 3, []float64{
		2, 3, 100,
		0, 0, 100,
	}))

	// x1^2, x2^2, x1x2, x1, x2, 1
	assert.Equal(t, []float64{4, 9, 6, 2, 3, 1}, mat.Row(nil, 0, a))
	assert.Equal(t, []float64{0, 0, 0, 0, 0, 1}, mat.Row(nil, 1, a))

}

func TestSamples(t *testing.T) {

	d, err := Samples(examplePolynomial(), [][]float64{{2, 1, 1}, {0, 0, 0}})
	require.NoError(t, err)
	assert.Equal(t, []float64{2, 1, 1, 9}, mat.Row(nil, 0, d))
	assert.Equal(t, []float64{0, 0, 0, 5}, mat.Row(nil, 1, d))

	template, err := Make(1, 1)
	require.NoError(t, err)
	_, err = Samples(template, [][]float64{{1}})
	assert.True(t, errors.Is(err, ErrUninitializedCoefficient))

	_, err = Samples(examplePolynomial(), [][]float64{{1}})
	assert.True(t, errors.Is(err, ErrValueDimensionMismatch))

	_, err = Samples(examplePolynomial(), nil)
	assert.Error(t, err)

}
