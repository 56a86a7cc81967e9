// Package metrics registers the Prometheus collectors used by the heatmap
// service on a private registry.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds all application collectors
type Metrics struct {
	registry *prometheus.Registry

	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec
	FetchTotal          *prometheus.CounterVec   // by source and result
	FetchDuration       *prometheus.HistogramVec // by source
	BucketizeDuration   prometheus.Histogram
	BucketizePoints     prometheus.Histogram
	OverlayGeneration   prometheus.Gauge
	OverlaySuperseded   prometheus.Counter
	SourceCacheHits     prometheus.Counter
}

// Default buckets
var (
	DefaultHTTPDurationBuckets = []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10}
	BucketizeDurationBuckets   = []float64{.0001, .0005, .001, .005, .01, .05, .1, .5}
	PointCountBuckets          = []float64{0, 10, 100, 1000, 10000, 100000, 1000000}
)

// New creates and registers all collectors
func New() *Metrics {
	reg := prometheus.NewRegistry()
	m := &Metrics{
		registry: reg,
		HTTPRequestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "HTTP requests by method, route and status.",
		}, []string{"method", "route", "status"}),
		HTTPRequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request latency by route.",
			Buckets: DefaultHTTPDurationBuckets,
		}, []string{"method", "route"}),
		FetchTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "incident_fetch_total",
			Help: "Incident fetches by source and result.",
		}, []string{"source", "result"}),
		FetchDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "incident_fetch_duration_seconds",
			Help:    "Incident fetch latency by source.",
			Buckets: DefaultHTTPDurationBuckets,
		}, []string{"source"}),
		BucketizeDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "heatmap_bucketize_duration_seconds",
			Help:    "Time spent bucketizing incidents into a grid.",
			Buckets: BucketizeDurationBuckets,
		}),
		BucketizePoints: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "heatmap_bucketize_points",
			Help:    "Incident points per bucketize call.",
			Buckets: PointCountBuckets,
		}),
		OverlayGeneration: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "overlay_generation",
			Help: "Generation of the currently visible overlay.",
		}),
		OverlaySuperseded: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "overlay_superseded_total",
			Help: "Refresh results dropped because a newer refresh was started.",
		}),
		SourceCacheHits: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "incident_source_cache_hits_total",
			Help: "Incident fetches served from the source cache.",
		}),
	}

	reg.MustRegister(
		m.HTTPRequestsTotal,
		m.HTTPRequestDuration,
		m.FetchTotal,
		m.FetchDuration,
		m.BucketizeDuration,
		m.BucketizePoints,
		m.OverlayGeneration,
		m.OverlaySuperseded,
		m.SourceCacheHits,
		collectors.NewGoCollector(),
	)
	return m
}

// Handler exposes the registry in the Prometheus text format
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}
