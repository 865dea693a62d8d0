package metrics

import (
	"net/http"
	"time"

	"github.com/drakos74/free-segment/internal/model"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const (
	StatusOK    = "ok"
	StatusError = "error"
)

// Observer records the runs of the process on the default registry.
var Observer = NewMetrics(prometheus.DefaultRegisterer)

// Metrics records clustering runs.
type Metrics struct {
	prometheus Prometheus
}

// NewMetrics creates the collectors and registers them with the given registerer.
func NewMetrics(registerer prometheus.Registerer) *Metrics {
	p := NewPrometheusMetrics()
	registerer.MustRegister(p.Collectors()...)
	return &Metrics{prometheus: p}
}

// Observe records the outcome of a single run.
func (m *Metrics) Observe(method model.Method, result *model.Result, err error, duration time.Duration) {
	status := StatusOK
	if err != nil {
		status = StatusError
	}
	m.prometheus.Runs.WithLabelValues(string(method), status).Inc()
	m.prometheus.Duration.WithLabelValues(string(method)).Observe(duration.Seconds())
	if err != nil || result == nil {
		return
	}
	m.prometheus.Clusters.WithLabelValues(string(method)).Set(float64(result.Clusters))
	if nr := result.Quality.NoiseRatio; nr != nil {
		m.prometheus.NoiseRatio.Set(*nr)
	}
}

// Handler exposes the default registry.
func Handler() http.Handler {
	return promhttp.Handler()
}
