package poly

import (
	"fmt"

	fitmath "github.com/drakos74/free-fit/internal/math"
)

// Evaluate returns the value of the polynomial for the given variable values.
// The polynomial must be valid and all coefficients set.
func Evaluate(p Polynomial, values []float64) (float64, error) {
	eval, err := Evaluator(p)
	if err != nil {
		return 0, err
	}
	return eval(values...)
}

// Evaluate returns the value of the polynomial for the given variable values.
func (p Polynomial) Evaluate(values ...float64) (float64, error) {
	return Evaluate(p, values)
}

// Evaluator validates the polynomial once and returns a function evaluating it.
func Evaluator(p Polynomial) (func(values ...float64) (float64, error), error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	if err := p.validateCoefficients(); err != nil {
		return nil, err
	}

	// decouple from later changes to the caller's terms
	q := p.Clone()
	return func(values ...float64) (float64, error) {
		if len(values) != q.Dimension {
			return 0, fmt.Errorf("got %d values for %d variables: %w", len(values), q.Dimension, ErrValueDimensionMismatch)
		}
		s := 0.
		for _, t := range q.Terms {
			v := *t.Coefficient
			for k, e := range t.Exponents {
				v *= fitmath.Pow(values[k], e)
			}
			s += v
		}
		return s, nil
	}, nil
}
