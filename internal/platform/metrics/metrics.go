// Package metrics holds the prometheus collectors of the service.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "claims_ledger"

// Outcome label values.
const (
	OutcomeOK        = "ok"
	OutcomeRejected  = "rejected"
	OutcomeDuplicate = "duplicate"
	OutcomeInvalid   = "invalid"
	OutcomeIntegrity = "integrity"
	OutcomeError     = "error"
)

// Metrics groups the collectors. A nil *Metrics is valid and records nothing.
type Metrics struct {
	registry *prometheus.Registry

	claimsSubmitted *prometheus.CounterVec
	claimsDecided   *prometheus.CounterVec
	entriesVoided   *prometheus.CounterVec
	securityEvents  *prometheus.CounterVec
	txRetries       prometheus.Counter
	httpDuration    *prometheus.HistogramVec
}

// New creates the collectors and registers them on a fresh registry,
// together with the go and process collectors.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		claimsSubmitted: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "claims_submitted_total",
			Help:      "Claim submissions by outcome.",
		}, []string{"outcome"}),
		claimsDecided: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "claims_decided_total",
			Help:      "Claim decisions by requested decision and outcome.",
		}, []string{"decision", "outcome"}),
		entriesVoided: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "entries_voided_total",
			Help:      "Ledger void attempts by outcome.",
		}, []string{"outcome"}),
		securityEvents: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "security_events_total",
			Help:      "Security relevant events written to the audit log.",
		}, []string{"event"}),
		txRetries: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "tx_retries_total",
			Help:      "Transactions rerun after a serialization failure or deadlock.",
		}),
		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latencies in seconds.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route", "status"}),
	}
	m.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.claimsSubmitted, m.claimsDecided, m.entriesVoided,
		m.securityEvents, m.txRetries, m.httpDuration,
	)
	return m
}

// Registry exposes the underlying registry, mostly for tests.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

func (m *Metrics) ClaimSubmitted(outcome string) {
	if m == nil {
		return
	}
	m.claimsSubmitted.WithLabelValues(outcome).Inc()
}

func (m *Metrics) ClaimDecided(decision, outcome string) {
	if m == nil {
		return
	}
	m.claimsDecided.WithLabelValues(decision, outcome).Inc()
}

func (m *Metrics) EntryVoided(outcome string) {
	if m == nil {
		return
	}
	m.entriesVoided.WithLabelValues(outcome).Inc()
}

func (m *Metrics) SecurityEvent(event string) {
	if m == nil {
		return
	}
	m.securityEvents.WithLabelValues(event).Inc()
}

func (m *Metrics) TxRetried() {
	if m == nil {
		return
	}
	m.txRetries.Inc()
}

// Handler serves the registry in the prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// GinMiddleware observes request latency labelled by the matched route, so
// path parameters do not explode the label cardinality.
func (m *Metrics) GinMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		m.httpDuration.WithLabelValues(c.Request.Method, route, strconv.Itoa(c.Writer.Status())).
			Observe(time.Since(start).Seconds())
	}
}
