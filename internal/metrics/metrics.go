package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "http_requests_total",
		Help: "Total HTTP requests by method, path and status code",
	}, []string{"method", "path", "status"})

	HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "http_request_duration_seconds",
		Help:    "HTTP request latency by method and path",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "path"})

	PDFRendersTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "pdf_renders_total",
		Help: "Invoice PDF renders by backend and outcome",
	}, []string{"backend", "outcome"})

	PDFRenderDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "pdf_render_duration_seconds",
		Help:    "Invoice PDF render latency by backend",
		Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
	}, []string{"backend"})

	PDFCacheHitsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "pdf_cache_hits_total",
		Help: "Invoice PDF cache lookups by result",
	}, []string{"result"})

	DegradedRendersTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "degraded_renders_total",
		Help: "Invoice renders that fell back to raw template text",
	})
)
