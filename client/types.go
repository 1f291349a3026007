package client

import (
	"time"

	"github.com/vsuet/accounting/internal/models"
)

// Ledger entities and their create/replace payloads.
type (
	Department        = models.Department
	DepartmentRequest = models.DepartmentRequest
	Employee          = models.Employee
	EmployeeRequest   = models.EmployeeRequest
	Vendor            = models.Vendor
	VendorRequest     = models.VendorRequest
	Expense           = models.Expense
	ExpenseRequest    = models.ExpenseRequest
	Payroll           = models.Payroll
	PayrollRequest    = models.PayrollRequest
)

// Report filters and rows.
type (
	Date                = models.Date
	DateRange           = models.DateRange
	ExpenseReportFilter = models.ExpenseReportFilter
	ExpenseReportRow    = models.ExpenseReportRow
	ExpenseSummaryRow   = models.ExpenseSummaryRow
	PayrollReportFilter = models.PayrollReportFilter
	PayrollReportRow    = models.PayrollReportRow
	PayrollSummaryRow   = models.PayrollSummaryRow
)

// Archive and audit types.
type (
	ArchiveResult   = models.ArchiveResult
	ArchiveEntry    = models.ArchiveEntry
	PayrollSnapshot = models.PayrollSnapshot
	AuditEntry      = models.AuditEntry
)

// NewDate returns the calendar date for the given year, month and day.
func NewDate(year int, month time.Month, day int) Date {
	return models.NewDate(year, month, day)
}

// ParseDate parses a YYYY-MM-DD string.
func ParseDate(s string) (Date, error) {
	return models.ParseDate(s)
}

// HealthResponse is returned by GET /api/v1/health.
type HealthResponse struct {
	Status        string  `json:"status"`
	Version       string  `json:"version"`
	Database      string  `json:"database"`
	SchemaVersion int     `json:"schema_version"`
	UptimeSeconds float64 `json:"uptime_seconds"`
}

// ReadinessResponse is returned by GET /api/v1/ready.
type ReadinessResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks"`
}
