package model

import (
	"fmt"
	"time"

	"github.com/drakos74/free-fit/internal/math/poly"
	"github.com/drakos74/free-fit/internal/storage"
)

// Label is the storage label for fitted models.
const Label = "model"

// Model is the outcome of a fit, one polynomial per target column.
type Model struct {
	ID             string            `json:"id"`
	Degree         int               `json:"degree"`
	Dimension      int               `json:"dimension"`
	RangeDimension int               `json:"range_dimension"`
	Samples        int               `json:"samples"`
	Polynomials    []poly.Polynomial `json:"polynomials"`
	LaTeX          []string          `json:"latex"`
	Created        time.Time         `json:"created"`
}

// New creates a model for the fitted polynomials and renders them.
func New(id string, samples int, pp []poly.Polynomial, opts ...poly.RenderOption) (Model, error) {
	if len(pp) == 0 {
		return Model{}, fmt.Errorf("model '%s' without polynomials", id)
	}
	latex := make([]string, len(pp))
	for i, p := range pp {
		s, err := poly.LaTeX(p, opts...)
		if err != nil {
			return Model{}, fmt.Errorf("could not render polynomial #%d of model '%s': %w", i+1, id, err)
		}
		latex[i] = s
	}
	return Model{
		ID:             id,
		Degree:         pp[0].Degree,
		Dimension:      pp[0].Dimension,
		RangeDimension: len(pp),
		Samples:        samples,
		Polynomials:    pp,
		LaTeX:          latex,
		Created:        time.Now(),
	}, nil
}

// Key returns the storage key of the model.
func (m Model) Key() storage.Key {
	return Key(m.ID)
}

// Key returns the storage key for the given model id.
func Key(id string) storage.Key {
	return storage.Key{
		ID:    id,
		Label: Label,
	}
}

// Evaluate evaluates every polynomial of the model at the given values.
func (m Model) Evaluate(values ...float64) ([]float64, error) {
	vv := make([]float64, len(m.Polynomials))
	for i, p := range m.Polynomials {
		v, err := poly.Evaluate(p, values)
		if err != nil {
			return nil, fmt.Errorf("could not evaluate polynomial #%d of model '%s': %w", i+1, m.ID, err)
		}
		vv[i] = v
	}
	return vv, nil
}
