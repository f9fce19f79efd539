package poly

import (
	"fmt"
)

// Term is a coefficient with one exponent per variable.
// A nil coefficient is unset, which is not the same as zero.
type Term struct {
	Coefficient *float64 `json:"coefficient"`
	Exponents   []int    `json:"exponents"`
}

// Coef returns a coefficient value for a Term.
func Coef(f float64) *float64 {
	return &f
}

// NewTerm creates a term with the given coefficient.
func NewTerm(coefficient float64, exponents ...int) Term {
	return Term{
		Coefficient: Coef(coefficient),
		Exponents:   exponents,
	}
}

// Degree returns the sum of the exponents.
func (t Term) Degree() int {
	return sum(t.Exponents)
}

// Constant reports if all exponents are zero.
func (t Term) Constant() bool {
	for _, e := range t.Exponents {
		if e != 0 {
			return false
		}
	}
	return true
}

func (t Term) clone() Term {
	c := Term{
		Exponents: make([]int, len(t.Exponents)),
	}
	copy(c.Exponents, t.Exponents)
	if t.Coefficient != nil {
		c.Coefficient = Coef(*t.Coefficient)
	}
	return c
}

// Polynomial is a sum of terms in Dimension variables where no term exceeds Degree.
// Polynomials are treated as values: operations return new instances.
type Polynomial struct {
	Dimension int    `json:"dimension"`
	Degree    int    `json:"degree"`
	Terms     []Term `json:"terms"`
}

// MakeEmpty returns a polynomial without terms.
func MakeEmpty(dimension, degree int) Polynomial {
	return Polynomial{
		Dimension: dimension,
		Degree:    degree,
		Terms:     []Term{},
	}
}

// Populate returns a copy of the polynomial with its terms replaced by all the terms
// of a complete polynomial of its dimension and degree, with unset coefficients.
func Populate(p Polynomial) (Polynomial, error) {
	if p.Degree > MaxDegree {
		return Polynomial{}, fmt.Errorf("degree %d is too big (max allowed is %d): %w", p.Degree, MaxDegree, ErrDomainTooLarge)
	}
	if p.Dimension > MaxDimension {
		return Polynomial{}, fmt.Errorf("dimension %d is too big (max allowed is %d): %w", p.Dimension, MaxDimension, ErrDomainTooLarge)
	}
	ee, err := Exponents(p.Dimension, p.Degree)
	if err != nil {
		return Polynomial{}, err
	}
	terms := make([]Term, len(ee))
	for i, e := range ee {
		terms[i] = Term{Exponents: e}
	}
	return Polynomial{
		Dimension: p.Dimension,
		Degree:    p.Degree,
		Terms:     terms,
	}, nil
}

// Make returns the complete polynomial template for the given dimension and degree.
func Make(dimension, degree int) (Polynomial, error) {
	return Populate(MakeEmpty(dimension, degree))
}

// Clone returns a deep copy of the polynomial.
func (p Polynomial) Clone() Polynomial {
	terms := make([]Term, len(p.Terms))
	for i, t := range p.Terms {
		terms[i] = t.clone()
	}
	return Polynomial{
		Dimension: p.Dimension,
		Degree:    p.Degree,
		Terms:     terms,
	}
}

// WithCoefficients returns a copy of the polynomial with the coefficients assigned in term order.
func (p Polynomial) WithCoefficients(cc []float64) (Polynomial, error) {
	if len(cc) != len(p.Terms) {
		return Polynomial{}, fmt.Errorf("%d coefficients for %d terms: %w", len(cc), len(p.Terms), ErrCoefficientCount)
	}
	np := p.Clone()
	for i, c := range cc {
		np.Terms[i].Coefficient = Coef(c)
	}
	return np, nil
}

// Coefficients returns the coefficients in term order, and false if any of them is unset.
func (p Polynomial) Coefficients() ([]float64, bool) {
	cc := make([]float64, len(p.Terms))
	for i, t := range p.Terms {
		if t.Coefficient == nil {
			return nil, false
		}
		cc[i] = *t.Coefficient
	}
	return cc, true
}

// Validate checks that every term has one exponent per variable
// and that no term exceeds the polynomial degree.
func (p Polynomial) Validate() error {
	for i, t := range p.Terms {
		if len(t.Exponents) != p.Dimension {
			return fmt.Errorf("term #%d has %d variables but it must have %d: %w",
				i+1, len(t.Exponents), p.Dimension, ErrTermDimensionMismatch)
		}
		for k, e := range t.Exponents {
			if e < 0 {
				return fmt.Errorf("term #%d has exponent %d for variable %d: %w", i+1, e, k+1, ErrNegativeExponent)
			}
		}
		if d := t.Degree(); d > p.Degree {
			return fmt.Errorf("term #%d has degree %d greater than polynomial degree %d: %w",
				i+1, d, p.Degree, ErrDegreeExceeded)
		}
	}
	return nil
}

func (p Polynomial) validateCoefficients() error {
	for i, t := range p.Terms {
		if t.Coefficient == nil {
			return fmt.Errorf("term #%d %v: %w", i+1, t.Exponents, ErrUninitializedCoefficient)
		}
	}
	return nil
}
