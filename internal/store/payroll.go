package store

import (
	"context"
	"time"

	"github.com/vsuet/accounting/internal/models"
)

// PayrollStore handles CRUD operations on live payrolls. Archived payrolls
// are read through ArchiveStore and ReportStore.
type PayrollStore struct {
	Base
}

// NewPayrollStore creates a new PayrollStore.
func NewPayrollStore(base Base) *PayrollStore {
	return &PayrollStore{Base: base}
}

// List returns all live payrolls ordered by period end.
func (s *PayrollStore) List(ctx context.Context) ([]models.Payroll, error) {
	return listRows(ctx, &s.Base, "payrolls",
		"SELECT "+payrollColumns+" FROM payrolls ORDER BY period_end, id", scanPayroll)
}

// Get returns a live payroll by id.
func (s *PayrollStore) Get(ctx context.Context, id int64) (*models.Payroll, error) {
	return getRow(ctx, &s.Base, models.ErrPayrollNotFound,
		"SELECT "+payrollColumns+" FROM payrolls WHERE id = $1", scanPayroll, id)
}

// Create inserts a live payroll.
func (s *PayrollStore) Create(ctx context.Context, req models.PayrollRequest) (*models.Payroll, error) {
	return writeRow(ctx, &s.Base, "creating payroll", models.ErrPayrollNotFound,
		`INSERT INTO payrolls (employee_id, period_start, period_end, net_amount, paid_at, is_paid)
		VALUES ($1, $2, $3, $4, $5, $6) RETURNING `+payrollColumns,
		scanPayroll, req.EmployeeID, req.PeriodStart.Time(), req.PeriodEnd.Time(), *req.NetAmount,
		utcOrNil(req.PaidAt), req.IsPaid)
}

// Update replaces a live payroll's fields. Archived payrolls are immutable
// and report ErrPayrollNotFound.
func (s *PayrollStore) Update(ctx context.Context, id int64, req models.PayrollRequest) (*models.Payroll, error) {
	return writeRow(ctx, &s.Base, "updating payroll", models.ErrPayrollNotFound,
		`UPDATE payrolls SET employee_id = $1, period_start = $2, period_end = $3, net_amount = $4,
		paid_at = $5, is_paid = $6 WHERE id = $7 RETURNING `+payrollColumns,
		scanPayroll, req.EmployeeID, req.PeriodStart.Time(), req.PeriodEnd.Time(), *req.NetAmount,
		utcOrNil(req.PaidAt), req.IsPaid, id)
}

// Delete removes a live payroll.
func (s *PayrollStore) Delete(ctx context.Context, id int64) error {
	return deleteRow(ctx, &s.Base, "payrolls", models.ErrPayrollNotFound, id)
}

// utcOrNil normalises a TIMESTAMP argument; the column has no zone, so the
// UTC wall clock is what gets stored.
func utcOrNil(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}

	u := t.UTC()

	return &u
}
