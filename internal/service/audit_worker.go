package service

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/vsuet/accounting/internal/domain"
	"github.com/vsuet/accounting/internal/metrics"
)

// Auditor is an alias for the canonical domain.Auditor interface.
type Auditor = domain.Auditor

// AuditEnqueuer accepts audit jobs without blocking the caller.
type AuditEnqueuer interface {
	Enqueue(job *AuditJob)
}

// AuditJob represents a single audit entry to be recorded.
type AuditJob struct {
	Action     string
	EntityType string
	EntityID   string
	Detail     map[string]any
}

// AuditWorker buffers audit entries and writes them via a single worker goroutine.
type AuditWorker struct {
	auditor Auditor
	log     *logrus.Logger
	jobs    chan *AuditJob
}

// NewAuditWorker creates an AuditWorker with the given queue capacity.
func NewAuditWorker(auditor Auditor, log *logrus.Logger, queueSize int) *AuditWorker {
	if queueSize <= 0 {
		queueSize = 1000
	}
	return &AuditWorker{
		auditor: auditor,
		log:     log,
		jobs:    make(chan *AuditJob, queueSize),
	}
}

// Enqueue adds an audit job. Non-blocking; drops the job if the queue is full.
func (w *AuditWorker) Enqueue(job *AuditJob) {
	select {
	case w.jobs <- job:
		metrics.AuditQueueDepth.Set(float64(len(w.jobs)))
	default:
		metrics.AuditDroppedTotal.Inc()
		w.log.WithFields(logrus.Fields{
			"action":      job.Action,
			"entity_type": job.EntityType,
			"entity_id":   job.EntityID,
		}).Warn("audit queue full, dropping entry")
	}
}

// Run processes audit jobs until the context is cancelled, then drains remaining jobs.
func (w *AuditWorker) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			w.drain()
			return
		case job := <-w.jobs:
			w.process(job)
		}
	}
}

func (w *AuditWorker) drain() {
	for {
		select {
		case job := <-w.jobs:
			w.process(job)
		default:
			return
		}
	}
}

func (w *AuditWorker) process(job *AuditJob) {
	metrics.AuditQueueDepth.Set(float64(len(w.jobs)))

	if err := w.auditor.RecordAudit(
		context.Background(), job.Action, job.EntityType, job.EntityID, job.Detail,
	); err != nil {
		w.log.WithError(err).WithField("action", job.Action).Warn("audit record failed")
	}
}

// auditAsync enqueues an audit entry (best-effort, non-blocking). A nil
// enqueuer disables auditing.
func auditAsync(enq AuditEnqueuer, action, entityType, entityID string, detail map[string]any) {
	if enq == nil {
		return
	}

	enq.Enqueue(&AuditJob{
		Action:     action,
		EntityType: entityType,
		EntityID:   entityID,
		Detail:     detail,
	})
}
