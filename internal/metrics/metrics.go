// Package metrics defines the Prometheus metric collectors for the extraction
// engine and exposes an HTTP handler for scraping.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds all Prometheus collectors for the engine.
type Metrics struct {
	ExtractionsTotal     *prometheus.CounterVec
	ExtractionDuration   *prometheus.HistogramVec
	CacheHitsTotal       prometheus.Counter
	CacheMissesTotal     prometheus.Counter
	HeuristicFieldsTotal prometheus.Counter
	FallbackFieldsTotal  prometheus.Counter
	FallbackCallsTotal   *prometheus.CounterVec
}

// New creates and registers all Prometheus metrics.
func New() *Metrics {
	m := &Metrics{
		ExtractionsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "extractions_total",
				Help: "Total extractions by outcome (cache_hit, heuristics_only, fallback, error).",
			},
			[]string{"outcome"},
		),
		ExtractionDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "extraction_duration_seconds",
				Help:    "End-to-end extraction latency in seconds.",
				Buckets: []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 2.5, 5, 10},
			},
			[]string{"outcome"},
		),
		CacheHitsTotal: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "cache_hits_total",
				Help: "Total number of result-cache hits.",
			},
		),
		CacheMissesTotal: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "cache_misses_total",
				Help: "Total number of result-cache misses.",
			},
		),
		HeuristicFieldsTotal: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "heuristic_fields_total",
				Help: "Fields resolved by the rule engine.",
			},
		),
		FallbackFieldsTotal: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "fallback_fields_total",
				Help: "Fields resolved by the generative-model fallback.",
			},
		),
		FallbackCallsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "fallback_calls_total",
				Help: "Fallback tier invocations by status (ok, error).",
			},
			[]string{"status"},
		),
	}

	prometheus.MustRegister(
		m.ExtractionsTotal,
		m.ExtractionDuration,
		m.CacheHitsTotal,
		m.CacheMissesTotal,
		m.HeuristicFieldsTotal,
		m.FallbackFieldsTotal,
		m.FallbackCallsTotal,
	)

	return m
}

// Handler returns the Prometheus scrape HTTP handler.
func Handler() http.Handler {
	return promhttp.Handler()
}
