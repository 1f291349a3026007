package api

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/vsuet/accounting/internal/domain"
	"github.com/vsuet/accounting/internal/models"
)

// EntityRepository defines the CRUD operations used by EntityHandler.
type EntityRepository[T, R any] = domain.EntityService[T, R]

// ReportRepository defines the report queries used by ReportHandler.
type ReportRepository = domain.ReportService

// ArchiveRepository defines the archive operations used by ArchiveHandler.
type ArchiveRepository = domain.ArchiveService

// AuditRepository defines audit operations used by AuditHandler.
type AuditRepository interface {
	QueryAudit(ctx context.Context, opts models.AuditQueryOpts) ([]models.AuditEntry, bool, error)
	PurgeOldEntries(ctx context.Context, retentionDays int) (int, error)
}

// DBChecker is the database surface used by HealthHandler.
type DBChecker interface {
	HealthCheck(ctx context.Context) error
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}
