package poly

import (
	"errors"
	"fmt"
)

var (
	// ErrDomainTooLarge is returned for a degree or dimension outside the supported bounds.
	ErrDomainTooLarge = errors.New("domain too large")
	// ErrTermDimensionMismatch is returned when a term has a different number of exponents than the polynomial variables.
	ErrTermDimensionMismatch = errors.New("term dimension mismatch")
	// ErrDegreeExceeded is returned when a term's exponents add up to more than the polynomial degree.
	ErrDegreeExceeded = errors.New("degree exceeded")
	// ErrNegativeExponent is returned for a term with an exponent below zero.
	ErrNegativeExponent = errors.New("negative exponent")
	// ErrUnderdetermined is returned when there are fewer samples than terms to fit.
	ErrUnderdetermined = errors.New("under-determined")
	// ErrInvalidRange is returned when the number of target columns does not leave room for any variable.
	ErrInvalidRange = errors.New("invalid range dimension")
	// ErrFitFailed is returned when the least squares system could not be solved.
	ErrFitFailed = errors.New("fit failed")
	// ErrUninitializedCoefficient is returned when evaluating a term without a coefficient.
	ErrUninitializedCoefficient = errors.New("uninitialized coefficient")
	// ErrValueDimensionMismatch is returned when the number of values does not match the polynomial dimension.
	ErrValueDimensionMismatch = errors.New("value dimension mismatch")
	// ErrCoefficientCount is returned when assigning a number of coefficients other than the number of terms.
	ErrCoefficientCount = errors.New("coefficient count mismatch")
)

// FitError describes a failed solve of the least squares system.
// It matches ErrFitFailed and unwraps to the solver error.
type FitError struct {
	Rows   int
	Cols   int
	Terms  int
	Column int
	Err    error
}

func (e *FitError) Error() string {
	if e.Column < 0 {
		return fmt.Sprintf("%v: samples %dx%d for %d terms: %v", ErrFitFailed, e.Rows, e.Cols, e.Terms, e.Err)
	}
	return fmt.Sprintf("%v: samples %dx%d for %d terms at target column %d: %v",
		ErrFitFailed, e.Rows, e.Cols, e.Terms, e.Column, e.Err)
}

func (e *FitError) Unwrap() error {
	return e.Err
}

func (e *FitError) Is(target error) bool {
	return target == ErrFitFailed
}
