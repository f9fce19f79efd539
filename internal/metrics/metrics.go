package metrics

import (
	"net/http"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const (
	Fit      = "fit"
	Evaluate = "evaluate"
	Render   = "render"
	Load     = "load"

	OK    = "ok"
	Error = "error"
)

// Observer is the process wide metrics instance on the default registry.
var Observer = NewMetrics(prometheus.DefaultRegisterer)

// Metrics records the polynomial operations.
type Metrics struct {
	mutex      *sync.RWMutex
	prometheus Prometheus
	counts     map[[2]string]int
}

// NewMetrics creates and registers the collectors on the given registerer.
func NewMetrics(registerer prometheus.Registerer) *Metrics {
	p := NewPrometheusMetrics()
	registerer.MustRegister(p.collectors()...)
	return &Metrics{
		mutex:      new(sync.RWMutex),
		prometheus: p,
		counts:     make(map[[2]string]int),
	}
}

// Observe records the outcome and duration of an operation started at the given time.
func (m *Metrics) Observe(op string, start time.Time, err error) {
	status := OK
	if err != nil {
		status = Error
	}
	m.prometheus.Operations.WithLabelValues(op, status).Inc()
	m.prometheus.Duration.WithLabelValues(op).Observe(time.Since(start).Seconds())

	m.mutex.Lock()
	defer m.mutex.Unlock()
	m.counts[[2]string{op, status}]++
}

// Terms records the size of a fitted basis.
func (m *Metrics) Terms(n int) {
	m.prometheus.Terms.Observe(float64(n))
}

// Count returns how many times the operation finished with the given status.
func (m *Metrics) Count(op, status string) int {
	m.mutex.RLock()
	defer m.mutex.RUnlock()
	return m.counts[[2]string{op, status}]
}

// Handler exposes the default prometheus registry.
func Handler() http.Handler {
	return promhttp.Handler()
}
