package poly

import (
	"fmt"
	"strconv"
	"strings"

	fitmath "github.com/drakos74/free-fit/internal/math"
)

// RenderOption adjusts the LaTeX rendering.
type RenderOption func(r *renderer)

// AllTerms renders terms with a zero coefficient instead of skipping them.
func AllTerms() RenderOption {
	return func(r *renderer) {
		r.all = true
	}
}

// WithVariable sets the variable symbol, "x" by default.
func WithVariable(symbol string) RenderOption {
	return func(r *renderer) {
		r.variable = symbol
	}
}

// WithPlaceholder sets the symbol used for unset coefficients, "a" by default.
func WithPlaceholder(symbol string) RenderOption {
	return func(r *renderer) {
		r.placeholder = symbol
	}
}

type renderer struct {
	all         bool
	variable    string
	placeholder string
}

// LaTeX renders the polynomial as a single line expression, e.g. 3x_1^2 + x_1x_2 + a_0.
// Unset coefficients are shown as a placeholder subscripted with the position of the term from the end.
func LaTeX(p Polynomial, opts ...RenderOption) (string, error) {
	if err := p.Validate(); err != nil {
		return "", err
	}

	r := renderer{
		variable:    "x",
		placeholder: "a",
	}
	for _, opt := range opts {
		opt(&r)
	}

	parts := make([]string, 0, len(p.Terms))
	for i, t := range p.Terms {
		if !r.all && t.Coefficient != nil && *t.Coefficient == 0 {
			continue
		}
		parts = append(parts, r.term(p, i))
	}
	return strings.Join(parts, " + "), nil
}

// String renders the polynomial with the default options.
func (p Polynomial) String() string {
	s, err := LaTeX(p)
	if err != nil {
		return fmt.Sprintf("invalid polynomial: %v", err)
	}
	return s
}

func (r renderer) term(p Polynomial, index int) string {
	t := p.Terms[index]

	var b strings.Builder
	switch {
	case t.Coefficient == nil:
		b.WriteString(r.placeholder)
		b.WriteString(subindex(len(p.Terms) - 1 - index))
	case *t.Coefficient != 1 || t.Constant():
		b.WriteString(fitmath.Format(*t.Coefficient))
	}

	for k, e := range t.Exponents {
		if e == 0 {
			continue
		}
		b.WriteString(r.variable)
		if p.Dimension > 1 {
			b.WriteString("_")
			b.WriteString(strconv.Itoa(k + 1))
		}
		if e > 1 {
			b.WriteString("^")
			b.WriteString(strconv.Itoa(e))
		}
	}
	return b.String()
}

// subindex writes each digit as its own subscript, 23 becomes _2_3.
func subindex(i int) string {
	var b strings.Builder
	for _, d := range strconv.Itoa(i) {
		b.WriteByte('_')
		b.WriteRune(d)
	}
	return b.String()
}
