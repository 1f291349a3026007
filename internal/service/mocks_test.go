package service

import (
	"context"
	"sync"

	"github.com/vsuet/accounting/internal/models"
)

// mockEntityStore records calls and returns configured responses.
type mockEntityStore[T, R any] struct {
	mu    sync.Mutex
	calls []string

	list   func(ctx context.Context) ([]T, error)
	get    func(ctx context.Context, id int64) (*T, error)
	create func(ctx context.Context, req R) (*T, error)
	update func(ctx context.Context, id int64, req R) (*T, error)
	del    func(ctx context.Context, id int64) error
}

func (m *mockEntityStore[T, R]) record(name string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = append(m.calls, name)
}

func (m *mockEntityStore[T, R]) List(ctx context.Context) ([]T, error) {
	m.record("List")
	return m.list(ctx)
}

func (m *mockEntityStore[T, R]) Get(ctx context.Context, id int64) (*T, error) {
	m.record("Get")
	return m.get(ctx, id)
}

func (m *mockEntityStore[T, R]) Create(ctx context.Context, req R) (*T, error) {
	m.record("Create")
	return m.create(ctx, req)
}

func (m *mockEntityStore[T, R]) Update(ctx context.Context, id int64, req R) (*T, error) {
	m.record("Update")
	return m.update(ctx, id, req)
}

func (m *mockEntityStore[T, R]) Delete(ctx context.Context, id int64) error {
	m.record("Delete")
	return m.del(ctx, id)
}

// mockReportStore records calls and returns configured responses.
type mockReportStore struct {
	mu    sync.Mutex
	calls []string

	expenseReport  func(ctx context.Context, f models.ExpenseReportFilter) ([]models.ExpenseReportRow, error)
	expenseSummary func(ctx context.Context, dates models.DateRange) ([]models.ExpenseSummaryRow, error)
	payrollReport  func(ctx context.Context, f models.PayrollReportFilter) ([]models.PayrollReportRow, error)
	payrollSummary func(ctx context.Context, dates models.DateRange) ([]models.PayrollSummaryRow, error)
}

func (m *mockReportStore) record(name string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = append(m.calls, name)
}

func (m *mockReportStore) ExpenseReport(ctx context.Context, f models.ExpenseReportFilter) ([]models.ExpenseReportRow, error) {
	m.record("ExpenseReport")
	return m.expenseReport(ctx, f)
}

func (m *mockReportStore) ExpenseSummary(ctx context.Context, dates models.DateRange) ([]models.ExpenseSummaryRow, error) {
	m.record("ExpenseSummary")
	return m.expenseSummary(ctx, dates)
}

func (m *mockReportStore) PayrollReport(ctx context.Context, f models.PayrollReportFilter) ([]models.PayrollReportRow, error) {
	m.record("PayrollReport")
	return m.payrollReport(ctx, f)
}

func (m *mockReportStore) PayrollSummary(ctx context.Context, dates models.DateRange) ([]models.PayrollSummaryRow, error) {
	m.record("PayrollSummary")
	return m.payrollSummary(ctx, dates)
}

// mockArchiveStore records calls and returns configured responses.
type mockArchiveStore struct {
	mu    sync.Mutex
	calls []string

	archivePayrolls func(ctx context.Context, cutoff models.Date) (int, error)
	listEntries     func(ctx context.Context, opts models.ArchiveQueryOpts) ([]models.ArchiveEntry, bool, error)
}

func (m *mockArchiveStore) record(name string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = append(m.calls, name)
}

func (m *mockArchiveStore) ArchivePayrolls(ctx context.Context, cutoff models.Date) (int, error) {
	m.record("ArchivePayrolls")
	return m.archivePayrolls(ctx, cutoff)
}

func (m *mockArchiveStore) ListEntries(ctx context.Context, opts models.ArchiveQueryOpts) ([]models.ArchiveEntry, bool, error) {
	m.record("ListEntries")
	return m.listEntries(ctx, opts)
}

// mockAuditStore records calls and returns configured responses.
type mockAuditStore struct {
	mockAuditor

	queryAudit      func(ctx context.Context, opts models.AuditQueryOpts) ([]models.AuditEntry, bool, error)
	purgeOldEntries func(ctx context.Context, retentionDays int) (int, error)
}

func (m *mockAuditStore) QueryAudit(ctx context.Context, opts models.AuditQueryOpts) ([]models.AuditEntry, bool, error) {
	return m.queryAudit(ctx, opts)
}

func (m *mockAuditStore) PurgeOldEntries(ctx context.Context, retentionDays int) (int, error) {
	return m.purgeOldEntries(ctx, retentionDays)
}

// mockAuditor records audit calls.
type mockAuditor struct {
	mu    sync.Mutex
	calls []AuditJob

	err error
}

func (m *mockAuditor) RecordAudit(_ context.Context, action, entityType, entityID string, detail map[string]any) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = append(m.calls, AuditJob{
		Action:     action,
		EntityType: entityType,
		EntityID:   entityID,
		Detail:     detail,
	})
	return m.err
}

func (m *mockAuditor) getCalls() []AuditJob {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := make([]AuditJob, len(m.calls))
	copy(cp, m.calls)
	return cp
}

// mockAuditEnqueuer records enqueued jobs synchronously.
type mockAuditEnqueuer struct {
	mu   sync.Mutex
	jobs []AuditJob
}

func (m *mockAuditEnqueuer) Enqueue(job *AuditJob) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.jobs = append(m.jobs, *job)
}

func (m *mockAuditEnqueuer) getJobs() []AuditJob {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := make([]AuditJob, len(m.jobs))
	copy(cp, m.jobs)
	return cp
}
