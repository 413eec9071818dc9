// Package metrics defines the Prometheus collectors of the service and exposes
// an HTTP handler for scraping.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/crazythursday/copywriting/internal/entities"
	"github.com/crazythursday/copywriting/internal/importers"
)

// Result label values.
const (
	ResultSucceeded = "succeeded"
	ResultFailed    = "failed"
)

// Metrics holds all Prometheus collectors.
type Metrics struct {
	ImportRecordsTotal     *prometheus.CounterVec
	ImportBatchesTotal     *prometheus.CounterVec
	ImportRunsTotal        prometheus.Counter
	ModerationActionsTotal *prometheus.CounterVec
	HTTPRequestsTotal      *prometheus.CounterVec
	HTTPRequestDuration    *prometheus.HistogramVec

	gatherer prometheus.Gatherer
}

// New creates the collectors and registers them with reg. A nil reg uses a
// fresh registry, which keeps tests independent of the global one.
func New(reg *prometheus.Registry) *Metrics {
	if reg == nil {
		reg = prometheus.NewRegistry()
	}

	m := &Metrics{
		ImportRecordsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "copywriting_import_records_total",
				Help: "Records processed by the batch importer by result.",
			},
			[]string{"result"},
		),
		ImportBatchesTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "copywriting_import_batches_total",
				Help: "Batches submitted by the batch importer by result.",
			},
			[]string{"result"},
		),
		ImportRunsTotal: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "copywriting_import_runs_total",
				Help: "Completed import runs.",
			},
		),
		ModerationActionsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "copywriting_moderation_actions_total",
				Help: "Moderation actions by target status.",
			},
			[]string{"status"},
		),
		HTTPRequestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "Total number of HTTP requests by method, path, and status.",
			},
			[]string{"method", "path", "status"},
		),
		HTTPRequestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "http_request_duration_seconds",
				Help:    "HTTP request latency in seconds.",
				Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
			},
			[]string{"method", "path"},
		),
		gatherer: reg,
	}

	reg.MustRegister(
		m.ImportRecordsTotal,
		m.ImportBatchesTotal,
		m.ImportRunsTotal,
		m.ModerationActionsTotal,
		m.HTTPRequestsTotal,
		m.HTTPRequestDuration,
	)

	return m
}

// Handler returns the Prometheus scrape HTTP handler.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.gatherer, promhttp.HandlerOpts{})
}

// ObserveModeration counts one moderation action.
func (m *Metrics) ObserveModeration(status entities.CopywritingStatus) {
	m.ModerationActionsTotal.WithLabelValues(string(status)).Inc()
}

// Middleware records request counts and latency per route template.
func (m *Metrics) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		m.HTTPRequestsTotal.WithLabelValues(c.Request.Method, path, strconv.Itoa(c.Writer.Status())).Inc()
		m.HTTPRequestDuration.WithLabelValues(c.Request.Method, path).Observe(time.Since(start).Seconds())
	}
}

// ImportReporter returns an importers.Reporter that feeds the import counters.
func (m *Metrics) ImportReporter() importers.Reporter {
	return importReporter{m: m}
}

type importReporter struct {
	m *Metrics
}

func (r importReporter) Start(total, batches int) {}

func (r importReporter) BatchDone(res importers.BatchResult) {
	result := ResultSucceeded
	if !res.OK() {
		result = ResultFailed
	}
	r.m.ImportBatchesTotal.WithLabelValues(result).Inc()
	r.m.ImportRecordsTotal.WithLabelValues(result).Add(float64(res.Batch.Size()))
}

func (r importReporter) Finish(importers.Summary) {
	r.m.ImportRunsTotal.Inc()
}
