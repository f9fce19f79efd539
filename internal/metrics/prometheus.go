package metrics

import "github.com/prometheus/client_golang/prometheus"

// Prometheus holds the prometheus collectors.
type Prometheus struct {
	Operations *prometheus.CounterVec
	Duration   *prometheus.HistogramVec
	Terms      prometheus.Histogram
}

func NewPrometheusMetrics() Prometheus {
	return Prometheus{
		Operations: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "poly",
				Name:      "operations",
				Help:      "count of polynomial operations by outcome",
			}, []string{"op", "status"}),
		Duration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: "poly",
				Name:      "duration_seconds",
				Help:      "duration of polynomial operations",
				Buckets:   prometheus.ExponentialBuckets(0.0001, 4, 10),
			}, []string{"op"}),
		Terms: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: "poly",
				Name:      "fit_terms",
				Help:      "number of terms of the fitted polynomials",
				Buckets:   []float64{1, 3, 6, 10, 21, 56, 126, 252, 462, 1001, 2002},
			}),
	}
}

func (p Prometheus) collectors() []prometheus.Collector {
	return []prometheus.Collector{p.Operations, p.Duration, p.Terms}
}
