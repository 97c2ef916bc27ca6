package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

// Metrics groups the upload-flow collectors. Each instance owns its own
// registry so tests can build as many as they like.
type Metrics struct {
	Registry *prometheus.Registry

	CredentialsIssued *prometheus.CounterVec
	RecordsWritten    *prometheus.CounterVec
	ReconcileOrphans  *prometheus.CounterVec
	AIMatchDuration   prometheus.Histogram
}

func New() *Metrics {
	reg := prometheus.NewRegistry()

	m := &Metrics{
		Registry: reg,
		CredentialsIssued: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "siso_upload_credentials_issued_total",
			Help: "Upload credential requests by result.",
		}, []string{"result"}),
		RecordsWritten: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "siso_upload_records_total",
			Help: "Upload record writes by result.",
		}, []string{"result"}),
		ReconcileOrphans: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "siso_reconcile_orphans_total",
			Help: "Orphaned objects found by the reconciliation sweep, by action taken.",
		}, []string{"action"}),
		AIMatchDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "siso_ai_match_duration_seconds",
			Help:    "Latency of musician matchmaking calls.",
			Buckets: prometheus.ExponentialBuckets(0.25, 2, 8),
		}),
	}

	reg.MustRegister(
		m.CredentialsIssued,
		m.RecordsWritten,
		m.ReconcileOrphans,
		m.AIMatchDuration,
		collectors.NewGoCollector(),
	)
	return m
}
