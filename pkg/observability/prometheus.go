package observability

import (
	"context"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics implements every hook interface with Prometheus collectors.
type Metrics struct {
	AssembleTotal    *prometheus.CounterVec
	AssembleDuration *prometheus.HistogramVec
	RenderTotal      *prometheus.CounterVec
	RenderDuration   prometheus.Histogram
	WarningsTotal    *prometheus.CounterVec

	CacheHitsTotal   *prometheus.CounterVec
	CacheMissesTotal *prometheus.CounterVec
	CacheWriteBytes  *prometheus.HistogramVec

	HTTPRequestsInFlight prometheus.Gauge
	HTTPRequestsTotal    *prometheus.CounterVec
	HTTPRequestDuration  *prometheus.HistogramVec
}

// NewMetrics creates the collectors and registers them with reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		AssembleTotal: f.NewCounterVec(prometheus.CounterOpts{
			Name: "prismaflow_assemble_total",
			Help: "Diagram assemblies by variant and status",
		}, []string{"variant", "status"}),
		AssembleDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "prismaflow_assemble_duration_seconds",
			Help:    "Diagram assembly latency in seconds",
			Buckets: prometheus.DefBuckets,
		}, []string{"variant"}),
		RenderTotal: f.NewCounterVec(prometheus.CounterOpts{
			Name: "prismaflow_render_total",
			Help: "Render runs by status",
		}, []string{"status"}),
		RenderDuration: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "prismaflow_render_duration_seconds",
			Help:    "Render latency in seconds, including export",
			Buckets: []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30, 60},
		}),
		WarningsTotal: f.NewCounterVec(prometheus.CounterOpts{
			Name: "prismaflow_warnings_total",
			Help: "Non-fatal render warnings by code",
		}, []string{"code"}),
		CacheHitsTotal: f.NewCounterVec(prometheus.CounterOpts{
			Name: "prismaflow_cache_hits_total",
			Help: "Cache hits by key type",
		}, []string{"type"}),
		CacheMissesTotal: f.NewCounterVec(prometheus.CounterOpts{
			Name: "prismaflow_cache_misses_total",
			Help: "Cache misses by key type",
		}, []string{"type"}),
		CacheWriteBytes: f.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "prismaflow_cache_write_bytes",
			Help:    "Size of cache writes in bytes",
			Buckets: []float64{1000, 10000, 100000, 1000000, 10000000},
		}, []string{"type"}),
		HTTPRequestsInFlight: f.NewGauge(prometheus.GaugeOpts{
			Name: "prismaflow_http_requests_in_flight",
			Help: "Current number of HTTP requests being processed",
		}),
		HTTPRequestsTotal: f.NewCounterVec(prometheus.CounterOpts{
			Name: "prismaflow_http_requests_total",
			Help: "Total number of HTTP requests",
		}, []string{"method", "route", "status"}),
		HTTPRequestDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "prismaflow_http_request_duration_seconds",
			Help:    "HTTP request latency in seconds",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "route"}),
	}
}

func status(err error) string {
	if err != nil {
		return "error"
	}
	return "ok"
}

func (m *Metrics) OnAssembleStart(context.Context, string) {}

func (m *Metrics) OnAssembleComplete(_ context.Context, variant string, _ int, d time.Duration, err error) {
	m.AssembleTotal.WithLabelValues(variant, status(err)).Inc()
	m.AssembleDuration.WithLabelValues(variant).Observe(d.Seconds())
}

func (m *Metrics) OnRenderStart(context.Context, []string) {}

func (m *Metrics) OnRenderComplete(_ context.Context, _ []string, d time.Duration, err error) {
	m.RenderTotal.WithLabelValues(status(err)).Inc()
	m.RenderDuration.Observe(d.Seconds())
}

func (m *Metrics) OnWarning(_ context.Context, code string) {
	m.WarningsTotal.WithLabelValues(code).Inc()
}

func (m *Metrics) OnCacheHit(_ context.Context, keyType string) {
	m.CacheHitsTotal.WithLabelValues(keyType).Inc()
}

func (m *Metrics) OnCacheMiss(_ context.Context, keyType string) {
	m.CacheMissesTotal.WithLabelValues(keyType).Inc()
}

func (m *Metrics) OnCacheSet(_ context.Context, keyType string, size int) {
	m.CacheWriteBytes.WithLabelValues(keyType).Observe(float64(size))
}

func (m *Metrics) OnRequest(context.Context, string, string) {
	m.HTTPRequestsInFlight.Inc()
}

func (m *Metrics) OnResponse(_ context.Context, method, route string, code int, d time.Duration) {
	m.HTTPRequestsInFlight.Dec()
	m.HTTPRequestsTotal.WithLabelValues(method, route, strconv.Itoa(code)).Inc()
	m.HTTPRequestDuration.WithLabelValues(method, route).Observe(d.Seconds())
}

var (
	_ PipelineHooks = (*Metrics)(nil)
	_ CacheHooks    = (*Metrics)(nil)
	_ HTTPHooks     = (*Metrics)(nil)
)
