// Package metrics provides Prometheus metrics for series computation and caching.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Cache lookup results.
const (
	CacheHit   = "hit"
	CacheMiss  = "miss"
	CacheError = "error"
)

// Metrics holds all Prometheus metrics for the engine.
type Metrics struct {
	SeriesComputed *prometheus.CounterVec
	ComputeSeconds *prometheus.HistogramVec
	SeriesPoints   *prometheus.GaugeVec
	CacheLookups   *prometheus.CounterVec

	registry *prometheus.Registry
}

// Default is the registry used by the CLI and the MCP server.
var Default = New()

// New creates and registers all metrics on a fresh registry.
func New() *Metrics {
	reg := prometheus.NewRegistry()

	m := &Metrics{
		SeriesComputed: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "burndown_series_computed_total",
				Help: "Total number of series computed by operation.",
			},
			[]string{"operation"},
		),
		ComputeSeconds: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "burndown_series_compute_seconds",
				Help:    "Series computation duration by operation, store reads included.",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"operation"},
		),
		SeriesPoints: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "burndown_series_points",
				Help: "Number of points in the last series computed by operation.",
			},
			[]string{"operation"},
		),
		CacheLookups: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "burndown_cache_lookups_total",
				Help: "Series cache lookups by result.",
			},
			[]string{"result"},
		),
		registry: reg,
	}

	reg.MustRegister(m.SeriesComputed)
	reg.MustRegister(m.ComputeSeconds)
	reg.MustRegister(m.SeriesPoints)
	reg.MustRegister(m.CacheLookups)

	return m
}

// Registry returns the registry the metrics are registered on.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// RecordSeries records one computed series.
func (m *Metrics) RecordSeries(operation string, points int, elapsed time.Duration) {
	m.SeriesComputed.WithLabelValues(operation).Inc()
	m.ComputeSeconds.WithLabelValues(operation).Observe(elapsed.Seconds())
	m.SeriesPoints.WithLabelValues(operation).Set(float64(points))
}

// RecordCacheLookup increments the cache lookup counter.
func (m *Metrics) RecordCacheLookup(result string) {
	m.CacheLookups.WithLabelValues(result).Inc()
}

// WriteTextfile writes the registry in the text exposition format, replacing path atomically.
func (m *Metrics) WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, m.registry)
}
