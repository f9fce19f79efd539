package server

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/drakos74/free-fit/internal/service"
)

// EvaluateRequest asks for the values of a stored model at a point.
type EvaluateRequest struct {
	ID     string    `json:"id"`
	Values []float64 `json:"values"`
}

// EvaluateResponse holds one value per polynomial of the model.
type EvaluateResponse struct {
	ID     string    `json:"id"`
	Values []float64 `json:"values"`
}

// TemplateResponse is the rendered template polynomial.
type TemplateResponse struct {
	Dimension int     `json:"dimension"`
	Degree    int     `json:"degree"`
	LaTeX     string  `json:"latex"`
	Exponents [][]int `json:"exponents"`
}

// Routes returns the api routes for the given service.
func Routes(svc *service.Service, debug bool) []Route {
	return []Route{
		Live(),
		{
			Action: Api,
			Path:   "fit",
			Method: POST,
			Exec: func(ctx context.Context, r *http.Request) ([]byte, int, error) {
				var request service.FitRequest
				if err := JsonRead(r, debug, &request); err != nil {
					return nil, http.StatusBadRequest, fmt.Errorf("could not read fit request: %w", err)
				}
				m, err := svc.Fit(ctx, request)
				if err != nil {
					return nil, status(err), err
				}
				return marshal(m)
			},
		},
		{
			Action: Api,
			Path:   "evaluate",
			Method: POST,
			Exec: func(ctx context.Context, r *http.Request) ([]byte, int, error) {
				var request EvaluateRequest
				if err := JsonRead(r, debug, &request); err != nil {
					return nil, http.StatusBadRequest, fmt.Errorf("could not read evaluate request: %w", err)
				}
				vv, err := svc.Evaluate(ctx, request.ID, request.Values)
				if err != nil {
					return nil, status(err), err
				}
				return marshal(EvaluateResponse{
					ID:     request.ID,
					Values: vv,
				})
			},
		},
		{
			Action: Api,
			Path:   "model",
			Method: GET,
			Exec: func(ctx context.Context, r *http.Request) ([]byte, int, error) {
				m, err := svc.Load(ctx, r.URL.Query().Get("id"))
				if err != nil {
					return nil, status(err), err
				}
				return marshal(m)
			},
		},
		{
			Action: Api,
			Path:   "template",
			Method: GET,
			Exec: func(ctx context.Context, r *http.Request) ([]byte, int, error) {
				dimension, err := strconv.Atoi(r.URL.Query().Get("dimension"))
				if err != nil {
					return nil, http.StatusBadRequest, fmt.Errorf("invalid dimension: %w", err)
				}
				degree, err := strconv.Atoi(r.URL.Query().Get("degree"))
				if err != nil {
					return nil, http.StatusBadRequest, fmt.Errorf("invalid degree: %w", err)
				}
				latex, err := svc.Template(dimension, degree)
				if err != nil {
					return nil, status(err), err
				}
				ee, err := svc.Exponents(dimension, degree)
				if err != nil {
					return nil, status(err), err
				}
				return marshal(TemplateResponse{
					Dimension: dimension,
					Degree:    degree,
					LaTeX:     latex,
					Exponents: ee,
				})
			},
		},
	}
}

func status(err error) int {
	switch {
	case service.NotFound(err):
		return http.StatusNotFound
	case service.Invalid(err):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func marshal(v interface{}) ([]byte, int, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, http.StatusInternalServerError, fmt.Errorf("could not marshal response: %w", err)
	}
	return b, http.StatusOK, nil
}
