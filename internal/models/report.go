package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// ExpenseReportFilter narrows the expense report. Nil fields do not constrain.
type ExpenseReportFilter struct {
	DepartmentID *int64
	VendorID     *int64
	Dates        DateRange
	ApprovedOnly bool
}

// Validate rejects inverted date ranges.
func (f ExpenseReportFilter) Validate() error { return f.Dates.Validate() }

// ExpenseReportRow is one expense joined with its department and vendor.
type ExpenseReportRow struct {
	ExpenseID   int64           `json:"expense_id"`
	Department  string          `json:"department"`
	Vendor      string          `json:"vendor"`
	Amount      decimal.Decimal `json:"amount"`
	ExpenseDate Date            `json:"expense_date"`
	IsApproved  bool            `json:"is_approved"`
}

// ExpenseSummaryRow is the total expense amount of one department.
type ExpenseSummaryRow struct {
	Department  string          `json:"department"`
	TotalAmount decimal.Decimal `json:"total_amount"`
}

// PayrollReportFilter narrows the payroll report. Dates apply to period_end.
type PayrollReportFilter struct {
	EmployeeID      *int64
	Dates           DateRange
	IsPaid          *bool
	IncludeArchived bool
}

// Validate rejects inverted date ranges.
func (f PayrollReportFilter) Validate() error { return f.Dates.Validate() }

// PayrollReportRow is one live or archived payroll with the employee name.
// ArchivedAt is nil for live rows.
type PayrollReportRow struct {
	PayrollID   int64           `json:"payroll_id"`
	Employee    string          `json:"employee"`
	PeriodStart Date            `json:"period_start"`
	PeriodEnd   Date            `json:"period_end"`
	NetAmount   decimal.Decimal `json:"net_amount"`
	PaidAt      *time.Time      `json:"paid_at"`
	IsPaid      bool            `json:"is_paid"`
	ArchivedAt  *time.Time      `json:"archived_at"`
}

// PayrollSummaryRow is the total net payroll of one department.
type PayrollSummaryRow struct {
	Department string          `json:"department"`
	TotalNet   decimal.Decimal `json:"total_net"`
}
