package store

import (
	"strconv"
	"strings"

	"github.com/vsuet/accounting/internal/models"
)

// whereBuilder accumulates AND-ed conditions with positional arguments.
// A '?' in a condition is replaced by the argument's $N placeholder.
type whereBuilder struct {
	conds []string
	args  []any
}

func (w *whereBuilder) add(cond string, arg any) {
	w.args = append(w.args, arg)
	w.conds = append(w.conds, strings.Replace(cond, "?", "$"+strconv.Itoa(len(w.args)), 1))
}

// clause returns "WHERE ..." or an empty string when nothing was added.
func (w *whereBuilder) clause() string {
	if len(w.conds) == 0 {
		return ""
	}

	return "WHERE " + strings.Join(w.conds, " AND ")
}

// nextArg returns the placeholder index for the next argument appended
// outside the builder (LIMIT, OFFSET).
func (w *whereBuilder) nextArg() int {
	return len(w.args) + 1
}

func (w *whereBuilder) addDateRange(column string, r models.DateRange) {
	if r.From != nil {
		w.add(column+" >= ?", r.From.Time())
	}

	if r.To != nil {
		w.add(column+" <= ?", r.To.Time())
	}
}

// buildExpenseFilter builds the WHERE clause for expense reports over
// expenses aliased as x.
func buildExpenseFilter(f models.ExpenseReportFilter) whereBuilder {
	var w whereBuilder

	if f.DepartmentID != nil {
		w.add("x.department_id = ?", *f.DepartmentID)
	}

	if f.VendorID != nil {
		w.add("x.vendor_id = ?", *f.VendorID)
	}

	w.addDateRange("x.expense_date", f.Dates)

	if f.ApprovedOnly {
		w.add("x.is_approved = ?", true)
	}

	return w
}

// buildPayrollFilter builds the WHERE clause for payroll reports over a
// relation aliased as p. The live table and the unified view expose the same
// columns, so one builder serves both paths.
func buildPayrollFilter(f models.PayrollReportFilter) whereBuilder {
	var w whereBuilder

	if f.EmployeeID != nil {
		w.add("p.employee_id = ?", *f.EmployeeID)
	}

	w.addDateRange("p.period_end", f.Dates)

	if f.IsPaid != nil {
		w.add("p.is_paid = ?", *f.IsPaid)
	}

	return w
}

// buildArchiveFilter builds the WHERE clause for browsing archive_log.
func buildArchiveFilter(opts models.ArchiveQueryOpts) whereBuilder {
	var w whereBuilder

	if opts.SourceTable != "" {
		w.add("source_table = ?", opts.SourceTable)
	}

	if opts.Since != nil {
		w.add("archived_at >= ?", *opts.Since)
	}

	if opts.Until != nil {
		w.add("archived_at <= ?", *opts.Until)
	}

	return w
}

// buildAuditFilter builds the WHERE clause for querying the audit log.
func buildAuditFilter(opts models.AuditQueryOpts) whereBuilder {
	var w whereBuilder

	if opts.EntityType != "" {
		w.add("entity_type = ?", opts.EntityType)
	}

	if opts.EntityID != "" {
		w.add("entity_id = ?", opts.EntityID)
	}

	if opts.Action != "" {
		w.add("action = ?", opts.Action)
	}

	if opts.Since != nil {
		w.add("created_at >= ?", *opts.Since)
	}

	return w
}
