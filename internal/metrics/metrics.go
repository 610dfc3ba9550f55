// Package metrics holds the Prometheus collectors shared by the services.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "kudoswall"

// Metrics groups every collector the service exports.
type Metrics struct {
	InsightSkippedLines prometheus.Counter
	AIRequests          *prometheus.CounterVec // operation, outcome
	AILatency           *prometheus.HistogramVec
	Submissions         *prometheus.CounterVec // verdict
	EmbedRenders        *prometheus.CounterVec // layout, variant
	EmailsSent          prometheus.Counter
	EmailErrors         prometheus.Counter
	InsightCache        *prometheus.CounterVec // result
	WSConnections       prometheus.Gauge
}

// New registers the collectors with reg. Tests pass a fresh
// prometheus.NewRegistry() so repeated construction does not panic.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		InsightSkippedLines: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "insight_skipped_lines_total",
			Help:      "Model output lines that did not match the bullet format",
		}),
		AIRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "ai_requests_total",
			Help:      "Generative model calls by operation and outcome",
		}, []string{"operation", "outcome"}),
		AILatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "ai_request_duration_seconds",
			Help:      "Generative model call latency",
			Buckets:   []float64{.25, .5, 1, 2.5, 5, 10, 20},
		}, []string{"operation"}),
		Submissions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "submissions_total",
			Help:      "Accepted form submissions by spam verdict",
		}, []string{"verdict"}),
		EmbedRenders: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "embed_renders_total",
			Help:      "Rendered testimonial cards by layout and variant",
		}, []string{"layout", "variant"}),
		EmailsSent: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "emails_sent_total",
			Help:      "Owner notification emails sent",
		}),
		EmailErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "email_errors_total",
			Help:      "Owner notification emails that failed",
		}),
		InsightCache: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "insight_cache_total",
			Help:      "Insight cache lookups by result",
		}, []string{"result"}),
		WSConnections: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "ws_connections",
			Help:      "Open live-feed websocket connections",
		}),
	}

	reg.MustRegister(
		m.InsightSkippedLines,
		m.AIRequests,
		m.AILatency,
		m.Submissions,
		m.EmbedRenders,
		m.EmailsSent,
		m.EmailErrors,
		m.InsightCache,
		m.WSConnections,
	)
	return m
}

// NewNop returns collectors that are not registered anywhere.
func NewNop() *Metrics {
	return New(prometheus.NewRegistry())
}
