package math

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

func TestLeastSquares_Solve(t *testing.T) {

	// y = 3 + 2x sampled exactly
	a := mat.NewDense(4, 2, []float64{
		1, 0,
		1, 1,
		1, 2,
		1, 3,
	})

	ls, err := NewLeastSquares(a)
	require.NoError(t, err)

	rows, cols := ls.Dims()
	assert.Equal(t, 4, rows)
	assert.Equal(t, 2, cols)

	x, err := ls.Solve([]float64{3, 5, 7, 9})
	require.NoError(t, err)
	assert.InDelta(t, 3, x[0], 1e-12)
	assert.InDelta(t, 2, x[1], 1e-12)

	// same factorization for another target
	x, err = ls.Solve([]float64{1, 0, -1, -2})
	require.NoError(t, err)
	assert.InDelta(t, 1, x[0], 1e-12)
	assert.InDelta(t, -1, x[1], 1e-12)

}

func TestLeastSquares_Regression(t *testing.T) {

	xx := []float64{2, 5, 7, 11, 14, 18}
	yy := []float64{5, 5, 8, 7, 9, 7}

	a := mat.NewDense(len(xx), 2, nil)
	for i, x := range xx {
		a.Set(i, 0, 1)
		a.Set(i, 1, x)
	}

	ls, err := NewLeastSquares(a)
	require.NoError(t, err)

	x, err := ls.Solve(yy)
	require.NoError(t, err)
	assert.InDelta(t, 5.200938967136154, x[0], 1e-9)
	assert.InDelta(t, 0.17183098591549267, x[1], 1e-9)

}

func TestLeastSquares_Errors(t *testing.T) {

	type test struct {
		a   mat.Matrix
		err error
	}

	tests := map[string]test{
		"wide": {
			a:   mat.NewDense(1, 2, []float64{1, 2}),
			err: ErrShape,
		},
		"zero-column": {
			a: mat.NewDense(3, 2, []float64{
				1, 0,
				1, 0,
				1, 0,
			}),
			err: ErrRankDeficient,
		},
		"zero-matrix": {
			a:   mat.NewDense(2, 1, []float64{0, 0}),
			err: ErrRankDeficient,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := NewLeastSquares(tt.a)
			assert.Error(t, err)
			assert.True(t, errors.Is(err, tt.err), err.Error())
		})
	}

	t.Run("wrong-target-length", func(t *testing.T) {
		ls, err := NewLeastSquares(mat.NewDense(2, 1, []float64{1, 1}))
		require.NoError(t, err)
		_, err = ls.Solve([]float64{1, 2, 3})
		assert.True(t, errors.Is(err, ErrShape))
	})

}
