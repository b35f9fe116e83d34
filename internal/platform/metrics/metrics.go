// Copyright (c) 2026 Vendora. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package metrics exposes Prometheus instrumentation for the HTTP layer.

It tracks request volume, error volume, and latency distribution per route,
and serves the scrape endpoint for the collector.

Collected Series:

  - http_requests_total{method, route, status_code}
  - http_errors_total{method, route, status_code} (status >= 400)
  - http_request_duration_seconds{method, route, status_code}
*/
package metrics

import (
	"net/http"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// requestLabels are the dimensions shared by all HTTP series.
var requestLabels = []string{"method", "route", "status_code"}

// Registry bundles the Prometheus registry with the application collectors.
type Registry struct {
	registry *prometheus.Registry

	requestCounter   *prometheus.CounterVec
	errorCounter     *prometheus.CounterVec
	latencyHistogram *prometheus.HistogramVec
}

// NewRegistry creates a registry pre-populated with the HTTP collectors and
// the standard Go runtime/process collectors.
func NewRegistry() *Registry {
	registry := prometheus.NewRegistry()

	requestCounter := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "http_requests_total",
		Help: "Total number of HTTP requests processed.",
	}, requestLabels)

	errorCounter := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "http_errors_total",
		Help: "Total number of HTTP responses with status >= 400.",
	}, requestLabels)

	latencyHistogram := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "http_request_duration_seconds",
		Help:    "HTTP request latency distribution in seconds.",
		Buckets: []float64{0.1, 0.3, 0.5, 1, 1.5, 2, 5},
	}, requestLabels)

	registry.MustRegister(
		requestCounter,
		errorCounter,
		latencyHistogram,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	return &Registry{
		registry:         registry,
		requestCounter:   requestCounter,
		errorCounter:     errorCounter,
		latencyHistogram: latencyHistogram,
	}
}

// Observe records one finished HTTP request.
func (r *Registry) Observe(method, route string, statusCode int, durationSeconds float64) {
	labels := prometheus.Labels{
		"method":      method,
		"route":       route,
		"status_code": strconv.Itoa(statusCode),
	}

	r.requestCounter.With(labels).Inc()
	if statusCode >= 400 {
		r.errorCounter.With(labels).Inc()
	}
	r.latencyHistogram.With(labels).Observe(durationSeconds)
}

// Handler returns the scrape endpoint handler for GET /metrics.
func (r *Registry) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{})
}

