// Package domain defines the canonical service interfaces shared across the
// HTTP API and the services behind it. Consumers should depend on these
// interfaces rather than re-declaring equivalent ones.
package domain

import (
	"context"

	"github.com/vsuet/accounting/internal/models"
)

// EntityService defines CRUD operations for one ledger entity kind. T is the
// stored entity and R the create/replace payload.
type EntityService[T, R any] interface {
	List(ctx context.Context) ([]T, error)
	Get(ctx context.Context, id int64) (*T, error)
	Create(ctx context.Context, req R) (*T, error)
	Update(ctx context.Context, id int64, req R) (*T, error)
	Delete(ctx context.Context, id int64) error
}

// Per-entity CRUD services.
type (
	DepartmentService = EntityService[models.Department, models.DepartmentRequest]
	EmployeeService   = EntityService[models.Employee, models.EmployeeRequest]
	VendorService     = EntityService[models.Vendor, models.VendorRequest]
	ExpenseService    = EntityService[models.Expense, models.ExpenseRequest]
	PayrollService    = EntityService[models.Payroll, models.PayrollRequest]
)

// ReportService defines the filtered financial reports.
type ReportService interface {
	ExpenseReport(ctx context.Context, f models.ExpenseReportFilter) ([]models.ExpenseReportRow, error)
	ExpenseSummary(ctx context.Context, dates models.DateRange) ([]models.ExpenseSummaryRow, error)
	PayrollReport(ctx context.Context, f models.PayrollReportFilter) ([]models.PayrollReportRow, error)
	PayrollSummary(ctx context.Context, dates models.DateRange) ([]models.PayrollSummaryRow, error)
}

// ArchiveService defines payroll archiving and archive log browsing.
type ArchiveService interface {
	ArchivePayrolls(ctx context.Context, cutoff models.Date) (models.ArchiveResult, error)
	ListArchiveEntries(ctx context.Context, opts models.ArchiveQueryOpts) ([]models.ArchiveEntry, bool, error)
}

// AuditService defines audit log query and maintenance operations.
type AuditService interface {
	Auditor
	QueryAudit(ctx context.Context, opts models.AuditQueryOpts) ([]models.AuditEntry, bool, error)
	PurgeOldEntries(ctx context.Context, retentionDays int) (int, error)
}

// Auditor is the minimal interface for recording audit entries.
// Used by the audit worker for fire-and-forget audit logging.
type Auditor interface {
	RecordAudit(ctx context.Context, action, entityType, entityID string, detail map[string]any) error
}
