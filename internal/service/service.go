package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/drakos74/free-fit/internal/math/poly"
	"github.com/drakos74/free-fit/internal/metrics"
	"github.com/drakos74/free-fit/internal/model"
	"github.com/drakos74/free-fit/internal/sample"
	"github.com/drakos74/free-fit/internal/storage"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"gonum.org/v1/gonum/mat"
)

// FitRequest describes the samples to fit.
// The last RangeDimension columns of every sample are the targets, 1 if not set.
type FitRequest struct {
	Degree         int         `json:"degree"`
	RangeDimension int         `json:"range_dimension"`
	Samples        [][]float64 `json:"samples"`
	Save           bool        `json:"save"`
}

// Service fits, stores and evaluates polynomial models.
type Service struct {
	store   storage.Persistence
	metrics *metrics.Metrics
	render  []poly.RenderOption
	newID   func() string
}

// New creates a new service on top of the given storage.
func New(store storage.Persistence, m *metrics.Metrics) *Service {
	return &Service{
		store:   store,
		metrics: m,
		render:  make([]poly.RenderOption, 0),
		newID: func() string {
			return uuid.New().String()
		},
	}
}

// WithRender sets the render options for the fitted models.
func (s *Service) WithRender(opts ...poly.RenderOption) *Service {
	s.render = opts
	return s
}

// Fit fits the samples of the request.
func (s *Service) Fit(ctx context.Context, request FitRequest) (model.Model, error) {
	samples, err := sample.FromRows(request.Samples)
	if err != nil {
		s.metrics.Observe(metrics.Fit, time.Now(), err)
		return model.Model{}, fmt.Errorf("invalid samples: %w", err)
	}
	rangeDimension := request.RangeDimension
	if rangeDimension == 0 {
		rangeDimension = 1
	}
	return s.FitMatrix(ctx, request.Degree, samples, rangeDimension, request.Save)
}

// FitMatrix fits one polynomial of the given degree per target column of the samples.
// If save is set the model is stored.
func (s *Service) FitMatrix(ctx context.Context, degree int, samples mat.Matrix, rangeDimension int, save bool) (m model.Model, err error) {
	start := time.Now()
	rows, cols := samples.Dims()
	defer func() {
		s.metrics.Observe(metrics.Fit, start, err)
		if err != nil {
			log.Error().
				Err(err).
				Int("degree", degree).
				Int("rows", rows).
				Int("cols", cols).
				Int("range", rangeDimension).
				Msg("could not fit samples")
		}
	}()

	if err = ctx.Err(); err != nil {
		return model.Model{}, err
	}

	pp, err := poly.Fit(degree, samples, rangeDimension)
	if err != nil {
		return model.Model{}, err
	}

	m, err = model.New(s.newID(), rows, pp, s.render...)
	if err != nil {
		return model.Model{}, err
	}
	s.metrics.Terms(len(pp[0].Terms))

	if save {
		if err = ctx.Err(); err != nil {
			return model.Model{}, err
		}
		if err = s.store.Store(m.Key(), m); err != nil {
			return model.Model{}, fmt.Errorf("could not store model '%s': %w", m.ID, err)
		}
	}

	log.Info().
		Str("id", m.ID).
		Int("degree", degree).
		Int("rows", rows).
		Int("terms", len(pp[0].Terms)).
		Bool("saved", save).
		Float64("duration", time.Since(start).Seconds()).
		Msg("fitted samples")
	return m, nil
}

// Load loads the stored model with the given id, or id prefix.
func (s *Service) Load(ctx context.Context, id string) (m model.Model, err error) {
	defer func(start time.Time) {
		s.metrics.Observe(metrics.Load, start, err)
	}(time.Now())

	if err = ctx.Err(); err != nil {
		return model.Model{}, err
	}
	if id == "" {
		return model.Model{}, fmt.Errorf("empty model id: %w", storage.NotFoundErr)
	}
	if err = s.store.Load(model.Key(id), &m); err != nil {
		return model.Model{}, fmt.Errorf("could not load model '%s': %w", id, err)
	}
	return m, nil
}

// Evaluate evaluates every polynomial of the stored model at the given values.
func (s *Service) Evaluate(ctx context.Context, id string, values []float64) (vv []float64, err error) {
	m, err := s.Load(ctx, id)
	if err != nil {
		return nil, err
	}

	defer func(start time.Time) {
		s.metrics.Observe(metrics.Evaluate, start, err)
	}(time.Now())

	vv, err = m.Evaluate(values...)
	if err != nil {
		log.Warn().Err(err).Str("id", id).Floats64("values", values).Msg("could not evaluate model")
		return nil, err
	}
	return vv, nil
}

// Template renders the complete polynomial of the given dimension and degree with unset coefficients.
// The options are applied after the render options of the service.
func (s *Service) Template(dimension, degree int, opts ...poly.RenderOption) (latex string, err error) {
	defer func(start time.Time) {
		s.metrics.Observe(metrics.Render, start, err)
	}(time.Now())

	p, err := poly.Make(dimension, degree)
	if err != nil {
		return "", err
	}
	return poly.LaTeX(p, s.options(opts)...)
}

// Render renders again every polynomial of the stored model with the given options.
func (s *Service) Render(ctx context.Context, id string, opts ...poly.RenderOption) (latex []string, err error) {
	m, err := s.Load(ctx, id)
	if err != nil {
		return nil, err
	}

	defer func(start time.Time) {
		s.metrics.Observe(metrics.Render, start, err)
	}(time.Now())

	latex = make([]string, len(m.Polynomials))
	for i, p := range m.Polynomials {
		l, err := poly.LaTeX(p, s.options(opts)...)
		if err != nil {
			return nil, fmt.Errorf("could not render polynomial #%d of model '%s': %w", i+1, m.ID, err)
		}
		latex[i] = l
	}
	return latex, nil
}

func (s *Service) options(opts []poly.RenderOption) []poly.RenderOption {
	oo := make([]poly.RenderOption, 0, len(s.render)+len(opts))
	oo = append(oo, s.render...)
	return append(oo, opts...)
}

// Exponents returns the exponent vectors of the complete polynomial of the given dimension and degree.
func (s *Service) Exponents(dimension, degree int) ([][]int, error) {
	return poly.Exponents(dimension, degree)
}

// Invalid reports if the error is caused by the input rather than the service.
func Invalid(err error) bool {
	for _, target := range []error{
		poly.ErrDomainTooLarge,
		poly.ErrTermDimensionMismatch,
		poly.ErrDegreeExceeded,
		poly.ErrNegativeExponent,
		poly.ErrUnderdetermined,
		poly.ErrInvalidRange,
		poly.ErrFitFailed,
		poly.ErrUninitializedCoefficient,
		poly.ErrValueDimensionMismatch,
		poly.ErrCoefficientCount,
		sample.ErrEmpty,
		sample.ErrRagged,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

// NotFound reports if the error is caused by a missing model.
func NotFound(err error) bool {
	return errors.Is(err, storage.NotFoundErr)
}
