// Package prometheus exports coordinator activity as Prometheus metrics.
package prometheus

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/custodia-labs/inkwell/internal/core/ports/driven"
)

// Ensure Metrics implements the interface.
var _ driven.AnalysisMetrics = (*Metrics)(nil)

const namespace = "inkwell"

// Metrics records analysis activity on its own registry.
type Metrics struct {
	registry *prometheus.Registry

	batchesQueued   prometheus.Counter
	batchesFinished *prometheus.CounterVec
	batchDuration   *prometheus.HistogramVec
	analyzerFailed  *prometheus.CounterVec
	feedback        *prometheus.CounterVec
	queueDepth      prometheus.Gauge
}

// New creates the metric set. Go runtime and process collectors are
// registered alongside the analysis metrics.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	factory := promauto.With(reg)

	return &Metrics{
		registry: reg,
		batchesQueued: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "analysis",
			Name:      "batches_queued_total",
			Help:      "Debounced content changes queued for analysis.",
		}),
		batchesFinished: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "analysis",
			Name:      "batches_finished_total",
			Help:      "Analysis batches by final status.",
		}, []string{"status"}),
		batchDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "analysis",
			Name:      "duration_seconds",
			Help:      "Wall time of an analysis batch.",
			Buckets:   prometheus.ExponentialBuckets(0.001, 2, 12), // 1ms to ~4s
		}, []string{"status"}),
		analyzerFailed: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "analysis",
			Name:      "analyzer_failures_total",
			Help:      "Analyzer failures by analysis kind.",
		}, []string{"kind"}),
		feedback: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "suggestions",
			Name:      "feedback_total",
			Help:      "Suggestions accepted or dismissed by the author.",
		}, []string{"action"}),
		queueDepth: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "analysis",
			Name:      "queue_depth",
			Help:      "Batches waiting to be dispatched.",
		}),
	}
}

// BatchQueued implements driven.AnalysisMetrics.
func (m *Metrics) BatchQueued() {
	m.batchesQueued.Inc()
}

// BatchFinished implements driven.AnalysisMetrics.
func (m *Metrics) BatchFinished(status string, duration time.Duration) {
	m.batchesFinished.WithLabelValues(status).Inc()
	m.batchDuration.WithLabelValues(status).Observe(duration.Seconds())
}

// AnalyzerFailed implements driven.AnalysisMetrics.
func (m *Metrics) AnalyzerFailed(kind string) {
	m.analyzerFailed.WithLabelValues(kind).Inc()
}

// SuggestionFeedback implements driven.AnalysisMetrics.
func (m *Metrics) SuggestionFeedback(action string) {
	m.feedback.WithLabelValues(action).Inc()
}

// QueueDepth implements driven.AnalysisMetrics.
func (m *Metrics) QueueDepth(n int) {
	m.queueDepth.Set(float64(n))
}

// Registry returns the registry the metrics are registered on.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}
