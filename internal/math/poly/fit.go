package poly

import (
	"fmt"

	fitmath "github.com/drakos74/free-fit/internal/math"
	"gonum.org/v1/gonum/mat"
)

// Fit fits one polynomial of the given degree per target column of the samples.
// The last rangeDimension columns of the samples are the targets,
// the columns before them the values of the variables.
// All polynomials share the same terms, in the order of Exponents.
func Fit(degree int, samples mat.Matrix, rangeDimension int) ([]Polynomial, error) {
	rows, cols := samples.Dims()
	if rangeDimension < 1 || rangeDimension >= cols {
		return nil, fmt.Errorf("%d target columns for samples with %d columns: %w", rangeDimension, cols, ErrInvalidRange)
	}

	template, err := Make(cols-rangeDimension, degree)
	if err != nil {
		return nil, err
	}

	terms := len(template.Terms)
	if rows < terms {
		return nil, fmt.Errorf("not enough points, got %d but we need at least %d: %w", rows, terms, ErrUnderdetermined)
	}

	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			if v := samples.At(i, j); !fitmath.Finite(v) {
				return nil, &FitError{
					Rows:   rows,
					Cols:   cols,
					Terms:  terms,
					Column: -1,
					Err:    fmt.Errorf("sample (%d, %d) is not finite: %v", i, j, v),
				}
			}
		}
	}

	ls, err := fitmath.NewLeastSquares(Design(template, samples))
	if err != nil {
		return nil, &FitError{
			Rows:   rows,
			Cols:   cols,
			Terms:  terms,
			Column: -1,
			Err:    err,
		}
	}

	polynomials := make([]Polynomial, 0, rangeDimension)
	for j := 0; j < rangeDimension; j++ {
		b := mat.Col(nil, cols-rangeDimension+j, samples)
		x, err := ls.Solve(b)
		if err != nil {
			return nil, &FitError{
				Rows:   rows,
				Cols:   cols,
				Terms:  terms,
				Column: j,
				Err:    err,
			}
		}

		p := template.Clone()
		for i := range p.Terms {
			p.Terms[i].Coefficient = Coef(fitmath.Snap(x[i]))
		}
		polynomials = append(polynomials, p)
	}

	return polynomials, nil
}

// FitOne fits a single polynomial to samples whose last column is the target.
func FitOne(degree int, samples mat.Matrix) (Polynomial, error) {
	pp, err := Fit(degree, samples, 1)
	if err != nil {
		return Polynomial{}, err
	}
	return pp[0], nil
}

// Design evaluates every term of p on every sample row.
// Only the first p.Dimension columns of the samples are read.
func Design(p Polynomial, samples mat.Matrix) *mat.Dense {
	rows, _ := samples.Dims()
	a := mat.NewDense(rows, len(p.Terms), nil)
	for i := 0; i < rows; i++ {
		for j, t := range p.Terms {
			element := 1.
			for k, e := range t.Exponents {
				element *= fitmath.Pow(samples.At(i, k), e)
			}
			a.Set(i, j, element)
		}
	}
	return a
}

// Samples evaluates p at each of the points and returns them as rows,
// with the value appended as the last column.
func Samples(p Polynomial, points [][]float64) (*mat.Dense, error) {
	eval, err := Evaluator(p)
	if err != nil {
		return nil, err
	}
	if len(points) == 0 {
		return nil, fmt.Errorf("no points to sample")
	}
	d := mat.NewDense(len(points), p.Dimension+1, nil)
	for i, x := range points {
		v, err := eval(x...)
		if err != nil {
			return nil, fmt.Errorf("could not evaluate point #%d: %w", i+1, err)
		}
		for k, xk := range x {
			d.Set(i, k, xk)
		}
		d.Set(i, p.Dimension, v)
	}
	return d, nil
}
