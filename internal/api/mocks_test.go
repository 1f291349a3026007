package api_test

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/vsuet/accounting/internal/models"
)

// mockEntityRepo implements api.EntityRepository for testing.
type mockEntityRepo[T, R any] struct {
	listFn   func(ctx context.Context) ([]T, error)
	getFn    func(ctx context.Context, id int64) (*T, error)
	createFn func(ctx context.Context, req R) (*T, error)
	updateFn func(ctx context.Context, id int64, req R) (*T, error)
	deleteFn func(ctx context.Context, id int64) error
}

func (m *mockEntityRepo[T, R]) List(ctx context.Context) ([]T, error) {
	return m.listFn(ctx)
}

func (m *mockEntityRepo[T, R]) Get(ctx context.Context, id int64) (*T, error) {
	return m.getFn(ctx, id)
}

func (m *mockEntityRepo[T, R]) Create(ctx context.Context, req R) (*T, error) {
	return m.createFn(ctx, req)
}

func (m *mockEntityRepo[T, R]) Update(ctx context.Context, id int64, req R) (*T, error) {
	return m.updateFn(ctx, id, req)
}

func (m *mockEntityRepo[T, R]) Delete(ctx context.Context, id int64) error {
	return m.deleteFn(ctx, id)
}

// mockReportRepo implements api.ReportRepository for testing.
type mockReportRepo struct {
	expenseReportFn  func(ctx context.Context, f models.ExpenseReportFilter) ([]models.ExpenseReportRow, error)
	expenseSummaryFn func(ctx context.Context, dates models.DateRange) ([]models.ExpenseSummaryRow, error)
	payrollReportFn  func(ctx context.Context, f models.PayrollReportFilter) ([]models.PayrollReportRow, error)
	payrollSummaryFn func(ctx context.Context, dates models.DateRange) ([]models.PayrollSummaryRow, error)
}

func (m *mockReportRepo) ExpenseReport(ctx context.Context, f models.ExpenseReportFilter) ([]models.ExpenseReportRow, error) {
	return m.expenseReportFn(ctx, f)
}

func (m *mockReportRepo) ExpenseSummary(ctx context.Context, dates models.DateRange) ([]models.ExpenseSummaryRow, error) {
	return m.expenseSummaryFn(ctx, dates)
}

func (m *mockReportRepo) PayrollReport(ctx context.Context, f models.PayrollReportFilter) ([]models.PayrollReportRow, error) {
	return m.payrollReportFn(ctx, f)
}

func (m *mockReportRepo) PayrollSummary(ctx context.Context, dates models.DateRange) ([]models.PayrollSummaryRow, error) {
	return m.payrollSummaryFn(ctx, dates)
}

// mockArchiveRepo implements api.ArchiveRepository for testing.
type mockArchiveRepo struct {
	archiveFn func(ctx context.Context, cutoff models.Date) (models.ArchiveResult, error)
	listFn    func(ctx context.Context, opts models.ArchiveQueryOpts) ([]models.ArchiveEntry, bool, error)
}

func (m *mockArchiveRepo) ArchivePayrolls(ctx context.Context, cutoff models.Date) (models.ArchiveResult, error) {
	return m.archiveFn(ctx, cutoff)
}

func (m *mockArchiveRepo) ListArchiveEntries(ctx context.Context, opts models.ArchiveQueryOpts) ([]models.ArchiveEntry, bool, error) {
	return m.listFn(ctx, opts)
}

// mockAuditRepo implements api.AuditRepository for testing.
type mockAuditRepo struct {
	queryFn func(ctx context.Context, opts models.AuditQueryOpts) ([]models.AuditEntry, bool, error)
	purgeFn func(ctx context.Context, retentionDays int) (int, error)
}

func (m *mockAuditRepo) QueryAudit(ctx context.Context, opts models.AuditQueryOpts) ([]models.AuditEntry, bool, error) {
	return m.queryFn(ctx, opts)
}

func (m *mockAuditRepo) PurgeOldEntries(ctx context.Context, retentionDays int) (int, error) {
	return m.purgeFn(ctx, retentionDays)
}

// mockDB implements api.DBChecker for testing.
type mockDB struct {
	healthErr     error
	schemaVersion int64
	schemaErr     error
}

func (m *mockDB) HealthCheck(context.Context) error { return m.healthErr }

func (m *mockDB) QueryRow(context.Context, string, ...any) pgx.Row {
	return mockRow{version: m.schemaVersion, err: m.schemaErr}
}

type mockRow struct {
	version int64
	err     error
}

func (r mockRow) Scan(dest ...any) error {
	if r.err != nil {
		return r.err
	}

	*(dest[0].(*int64)) = r.version

	return nil
}
