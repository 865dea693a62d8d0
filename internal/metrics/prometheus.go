package metrics

import "github.com/prometheus/client_golang/prometheus"

const namespace = "segment"

// Prometheus holds the collectors of clustering runs.
type Prometheus struct {
	Runs       *prometheus.CounterVec
	Duration   *prometheus.HistogramVec
	Clusters   *prometheus.GaugeVec
	NoiseRatio prometheus.Gauge
}

func NewPrometheusMetrics() Prometheus {
	return Prometheus{
		Runs: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "runs_total",
				Help:      "clustering runs by method and status",
			}, []string{"method", "status"}),
		Duration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "run_duration_seconds",
				Help:      "duration of clustering runs",
				Buckets:   prometheus.ExponentialBuckets(0.001, 4, 10),
			}, []string{"method"}),
		Clusters: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "clusters",
				Help:      "number of clusters found by the last run",
			}, []string{"method"}),
		NoiseRatio: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "noise_ratio",
				Help:      "noise ratio of the last density run",
			}),
	}
}

// Collectors returns all collectors for registration.
func (p Prometheus) Collectors() []prometheus.Collector {
	return []prometheus.Collector{p.Runs, p.Duration, p.Clusters, p.NoiseRatio}
}
