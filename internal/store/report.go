package store

import (
	"context"
	"time"

	"github.com/vsuet/accounting/internal/models"
)

// ReportStore runs the read-only reporting queries over the ledger and the
// unified payroll view.
type ReportStore struct {
	Base
}

// NewReportStore creates a new ReportStore.
func NewReportStore(base Base) *ReportStore {
	return &ReportStore{Base: base}
}

// Relations queried by the payroll report. payrolls_all is live UNION ALL
// archived; both expose archived_at (NULL for live rows in the view).
const (
	payrollLiveSource    = "payrolls p"
	payrollUnifiedSource = "payrolls_all p"
)

// ExpenseReport returns expenses joined with department and vendor names,
// ordered by expense date.
func (s *ReportStore) ExpenseReport(ctx context.Context, f models.ExpenseReportFilter) ([]models.ExpenseReportRow, error) {
	query, args := expenseReportQuery(f)

	return listRows(ctx, &s.Base, "expense report", query, scanExpenseReportRow, args...)
}

func expenseReportQuery(f models.ExpenseReportFilter) (string, []any) {
	w := buildExpenseFilter(f)

	query := `SELECT x.id, d.name, v.name, x.amount, x.expense_date, x.is_approved
		FROM expenses x
		JOIN departments d ON d.id = x.department_id
		JOIN vendors v ON v.id = x.vendor_id
		` + w.clause() + `
		ORDER BY x.expense_date, x.id`

	return query, w.args
}

// ExpenseSummary sums expense amounts per department within the date range,
// ordered by department name.
func (s *ReportStore) ExpenseSummary(ctx context.Context, dates models.DateRange) ([]models.ExpenseSummaryRow, error) {
	query, args := expenseSummaryQuery(dates)

	return listRows(ctx, &s.Base, "expense summary", query, scanExpenseSummaryRow, args...)
}

func expenseSummaryQuery(dates models.DateRange) (string, []any) {
	w := buildExpenseFilter(models.ExpenseReportFilter{Dates: dates})

	query := `SELECT d.name, SUM(x.amount)
		FROM expenses x
		JOIN departments d ON d.id = x.department_id
		` + w.clause() + `
		GROUP BY d.name
		ORDER BY d.name`

	return query, w.args
}

// PayrollReport returns payrolls with employee names ordered by period end.
// With IncludeArchived the unified live+archived view is queried; otherwise
// only the live table is read.
func (s *ReportStore) PayrollReport(ctx context.Context, f models.PayrollReportFilter) ([]models.PayrollReportRow, error) {
	query, args := payrollReportQuery(f)

	return listRows(ctx, &s.Base, "payroll report", query, scanPayrollReportRow, args...)
}

func payrollReportQuery(f models.PayrollReportFilter) (string, []any) {
	source, archivedAt := payrollLiveSource, "NULL::timestamptz"
	if f.IncludeArchived {
		source, archivedAt = payrollUnifiedSource, "p.archived_at"
	}

	w := buildPayrollFilter(f)

	query := `SELECT p.id, e.full_name, p.period_start, p.period_end, p.net_amount, p.paid_at, p.is_paid, ` + archivedAt + `
		FROM ` + source + `
		JOIN employees e ON e.id = p.employee_id
		` + w.clause() + `
		ORDER BY p.period_end, p.id`

	return query, w.args
}

// PayrollSummary sums live net payroll per department within the period_end
// range, ordered by department name.
func (s *ReportStore) PayrollSummary(ctx context.Context, dates models.DateRange) ([]models.PayrollSummaryRow, error) {
	query, args := payrollSummaryQuery(dates)

	return listRows(ctx, &s.Base, "payroll summary", query, scanPayrollSummaryRow, args...)
}

func payrollSummaryQuery(dates models.DateRange) (string, []any) {
	w := buildPayrollFilter(models.PayrollReportFilter{Dates: dates})

	query := `SELECT d.name, SUM(p.net_amount)
		FROM ` + payrollLiveSource + `
		JOIN employees e ON e.id = p.employee_id
		JOIN departments d ON d.id = e.department_id
		` + w.clause() + `
		GROUP BY d.name
		ORDER BY d.name`

	return query, w.args
}

func scanExpenseReportRow(scan func(dest ...any) error) (*models.ExpenseReportRow, error) {
	var r models.ExpenseReportRow
	var spent time.Time

	if err := scan(&r.ExpenseID, &r.Department, &r.Vendor, &r.Amount, &spent, &r.IsApproved); err != nil {
		return nil, err
	}

	r.ExpenseDate = models.DateOf(spent)

	return &r, nil
}

func scanExpenseSummaryRow(scan func(dest ...any) error) (*models.ExpenseSummaryRow, error) {
	var r models.ExpenseSummaryRow
	if err := scan(&r.Department, &r.TotalAmount); err != nil {
		return nil, err
	}

	return &r, nil
}

func scanPayrollReportRow(scan func(dest ...any) error) (*models.PayrollReportRow, error) {
	var r models.PayrollReportRow
	var start, end time.Time

	err := scan(&r.PayrollID, &r.Employee, &start, &end, &r.NetAmount, &r.PaidAt, &r.IsPaid, &r.ArchivedAt)
	if err != nil {
		return nil, err
	}

	r.PeriodStart = models.DateOf(start)
	r.PeriodEnd = models.DateOf(end)

	return &r, nil
}

func scanPayrollSummaryRow(scan func(dest ...any) error) (*models.PayrollSummaryRow, error) {
	var r models.PayrollSummaryRow
	if err := scan(&r.Department, &r.TotalNet); err != nil {
		return nil, err
	}

	return &r, nil
}
