package math

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
)

var (
	// ErrShape is returned for matrices or vectors that do not fit the system.
	ErrShape = errors.New("invalid shape")
	// ErrRankDeficient is returned when the columns of the system matrix are not linearly independent.
	ErrRankDeficient = errors.New("rank deficient matrix")
)

// LeastSquares solves A x = b in the least squares sense for a fixed A.
// A is factorized once with QR and each b reuses the factorization.
type LeastSquares struct {
	rows int
	cols int
	qr   *mat.QR
}

// NewLeastSquares factorizes the given matrix.
// It needs at least as many rows as columns and full column rank.
func NewLeastSquares(a mat.Matrix) (*LeastSquares, error) {
	r, c := a.Dims()
	if c == 0 || r < c {
		return nil, fmt.Errorf("matrix %dx%d: %w", r, c, ErrShape)
	}

	qr := new(mat.QR)
	qr.Factorize(a)

	var rr mat.Dense
	qr.RTo(&rr)

	// same tolerance as a rank estimate on the singular values
	maxDiag := 0.
	for i := 0; i < c; i++ {
		maxDiag = math.Max(maxDiag, math.Abs(rr.At(i, i)))
	}
	tol := maxDiag * float64(r) * epsilon
	for i := 0; i < c; i++ {
		if d := math.Abs(rr.At(i, i)); maxDiag == 0 || d <= tol {
			return nil, fmt.Errorf("matrix %dx%d at column %d (|r|=%g): %w", r, c, i, d, ErrRankDeficient)
		}
	}

	return &LeastSquares{
		rows: r,
		cols: c,
		qr:   qr,
	}, nil
}

const epsilon = 2.220446049250313e-16

// Dims returns the dimensions of the factorized matrix.
func (ls *LeastSquares) Dims() (int, int) {
	return ls.rows, ls.cols
}

// Solve returns the x minimizing ||A x - b||.
// It computes Q^T b and back substitutes against R.
func (ls *LeastSquares) Solve(b []float64) ([]float64, error) {
	if len(b) != ls.rows {
		return nil, fmt.Errorf("vector of %d for matrix %dx%d: %w", len(b), ls.rows, ls.cols, ErrShape)
	}

	x := mat.NewVecDense(ls.cols, nil)
	err := ls.qr.SolveVecTo(x, false, mat.NewVecDense(ls.rows, b))
	if err != nil {
		return nil, fmt.Errorf("could not solve system %dx%d: %w", ls.rows, ls.cols, err)
	}

	xx := make([]float64, x.Len())
	for i := 0; i < x.Len(); i++ {
		xx[i] = x.AtVec(i)
	}
	return xx, nil
}
