// Package metrics defines Prometheus metrics for the accounting service.
package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	RequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "accounting_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)

	RequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "accounting_http_requests_total",
			Help: "Total HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	ErrorsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "accounting_errors_total",
			Help: "Total errors by type",
		},
		[]string{"type"},
	)

	ArchiveRunsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "accounting_archive_runs_total",
			Help: "Payroll archive runs by outcome (moved, empty, conflict, error)",
		},
		[]string{"outcome"},
	)

	ArchivedPayrollsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "accounting_archived_payrolls_total",
			Help: "Payroll rows moved into the archive log",
		},
	)

	ArchiveDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "accounting_archive_duration_seconds",
			Help:    "Duration of payroll archive transactions",
			Buckets: prometheus.DefBuckets,
		},
	)

	AuditQueueDepth = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "accounting_audit_queue_depth",
			Help: "Current audit queue depth",
		},
	)

	AuditDroppedTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "accounting_audit_dropped_total",
			Help: "Audit entries dropped because the queue was full",
		},
	)

	DBPoolConns = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "accounting_db_pool_connections",
			Help: "Database pool connections by state",
		},
		[]string{"state"},
	)
)

func init() {
	prometheus.MustRegister(
		RequestDuration, RequestsTotal, ErrorsTotal,
		ArchiveRunsTotal, ArchivedPayrollsTotal, ArchiveDuration,
		AuditQueueDepth, AuditDroppedTotal, DBPoolConns,
	)
}
