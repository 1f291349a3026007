package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/vsuet/accounting/internal/domain"
	"github.com/vsuet/accounting/internal/metrics"
	"github.com/vsuet/accounting/internal/models"
)

// ArchiveStore is the data-access interface ArchiveService depends on.
type ArchiveStore interface {
	ArchivePayrolls(ctx context.Context, cutoff models.Date) (int, error)
	ListEntries(ctx context.Context, opts models.ArchiveQueryOpts) ([]models.ArchiveEntry, bool, error)
}

// Compile-time check: *ArchiveService must satisfy domain.ArchiveService.
var _ domain.ArchiveService = (*ArchiveService)(nil)

// ArchiveService runs payroll archiving and records each run.
type ArchiveService struct {
	store       ArchiveStore
	auditWorker AuditEnqueuer
	log         *logrus.Logger
	now         func() time.Time
}

// NewArchiveService creates an ArchiveService.
func NewArchiveService(store ArchiveStore, auditWorker AuditEnqueuer, log *logrus.Logger) *ArchiveService {
	return &ArchiveService{store: store, auditWorker: auditWorker, log: log, now: time.Now}
}

// ArchivePayrolls moves every live payroll with period_end before cutoff into
// the archive log. On error nothing was moved.
func (s *ArchiveService) ArchivePayrolls(ctx context.Context, cutoff models.Date) (models.ArchiveResult, error) {
	if cutoff.IsZero() {
		return models.ArchiveResult{}, models.ErrFieldRequired("cutoff_date")
	}

	started := s.now().UTC()
	timer := time.Now()

	moved, err := s.store.ArchivePayrolls(ctx, cutoff)
	metrics.ArchiveDuration.Observe(time.Since(timer).Seconds())

	fields := logrus.Fields{"cutoff_date": cutoff.String()}

	if err != nil {
		outcome := "error"
		if errors.Is(err, models.ErrArchiveConflict) {
			outcome = "conflict"
		}
		metrics.ArchiveRunsTotal.WithLabelValues(outcome).Inc()
		s.log.WithFields(fields).WithError(err).Warn("archive.payrolls failed")

		return models.ArchiveResult{}, err
	}

	outcome := "moved"
	if moved == 0 {
		outcome = "empty"
	}
	metrics.ArchiveRunsTotal.WithLabelValues(outcome).Inc()
	metrics.ArchivedPayrollsTotal.Add(float64(moved))

	fields["moved"] = moved
	s.log.WithFields(fields).Info("archive.payrolls")

	auditAsync(s.auditWorker, models.AuditActionArchive, models.SourcePayrolls, cutoff.String(),
		map[string]any{"cutoff_date": cutoff.String(), "moved": moved})

	return models.ArchiveResult{CutoffDate: cutoff, Moved: moved, StartedAt: started}, nil
}

// ListArchiveEntries returns archive log entries, newest first (pass-through).
func (s *ArchiveService) ListArchiveEntries(
	ctx context.Context, opts models.ArchiveQueryOpts,
) ([]models.ArchiveEntry, bool, error) {
	if opts.Since != nil && opts.Until != nil && opts.Since.After(*opts.Until) {
		return nil, false, fmt.Errorf("%w: since must not be after until", models.ErrInvalidValue)
	}

	return s.store.ListEntries(ctx, opts)
}
