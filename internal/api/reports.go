package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/vsuet/accounting/internal/models"
)

// ReportHandler serves the financial report endpoints.
type ReportHandler struct {
	repo ReportRepository
	log  *logrus.Logger
}

// NewReportHandler creates a ReportHandler.
func NewReportHandler(repo ReportRepository, log *logrus.Logger) *ReportHandler {
	return &ReportHandler{repo: repo, log: log}
}

// Expenses handles GET /api/v1/reports/expenses.
func (h *ReportHandler) Expenses(c *gin.Context) {
	var (
		f   models.ExpenseReportFilter
		err error
	)

	if f.DepartmentID, err = optionalID(c, "department_id"); err != nil {
		respondError(c, http.StatusBadRequest, ErrCodeInvalidRequest, err.Error())
		return
	}

	if f.VendorID, err = optionalID(c, "vendor_id"); err != nil {
		respondError(c, http.StatusBadRequest, ErrCodeInvalidRequest, err.Error())
		return
	}

	if f.Dates, err = dateRange(c); err != nil {
		respondError(c, http.StatusBadRequest, ErrCodeInvalidRequest, err.Error())
		return
	}

	if f.ApprovedOnly, err = flag(c, "approved_only"); err != nil {
		respondError(c, http.StatusBadRequest, ErrCodeInvalidRequest, err.Error())
		return
	}

	rows, err := h.repo.ExpenseReport(c.Request.Context(), f)
	if err != nil {
		respondServiceError(c, h.log, err, "expense report")
		return
	}

	respondRows(c, rows)
}

// ExpenseSummary handles GET /api/v1/reports/expenses/summary.
func (h *ReportHandler) ExpenseSummary(c *gin.Context) {
	dates, err := dateRange(c)
	if err != nil {
		respondError(c, http.StatusBadRequest, ErrCodeInvalidRequest, err.Error())
		return
	}

	rows, err := h.repo.ExpenseSummary(c.Request.Context(), dates)
	if err != nil {
		respondServiceError(c, h.log, err, "expense summary")
		return
	}

	respondRows(c, rows)
}

// Payrolls handles GET /api/v1/reports/payrolls.
func (h *ReportHandler) Payrolls(c *gin.Context) {
	var (
		f   models.PayrollReportFilter
		err error
	)

	if f.EmployeeID, err = optionalID(c, "employee_id"); err != nil {
		respondError(c, http.StatusBadRequest, ErrCodeInvalidRequest, err.Error())
		return
	}

	if f.Dates, err = dateRange(c); err != nil {
		respondError(c, http.StatusBadRequest, ErrCodeInvalidRequest, err.Error())
		return
	}

	if f.IsPaid, err = optionalBool(c, "is_paid"); err != nil {
		respondError(c, http.StatusBadRequest, ErrCodeInvalidRequest, err.Error())
		return
	}

	if f.IncludeArchived, err = flag(c, "include_archived"); err != nil {
		respondError(c, http.StatusBadRequest, ErrCodeInvalidRequest, err.Error())
		return
	}

	rows, err := h.repo.PayrollReport(c.Request.Context(), f)
	if err != nil {
		respondServiceError(c, h.log, err, "payroll report")
		return
	}

	respondRows(c, rows)
}

// PayrollSummary handles GET /api/v1/reports/payrolls/summary.
func (h *ReportHandler) PayrollSummary(c *gin.Context) {
	dates, err := dateRange(c)
	if err != nil {
		respondError(c, http.StatusBadRequest, ErrCodeInvalidRequest, err.Error())
		return
	}

	rows, err := h.repo.PayrollSummary(c.Request.Context(), dates)
	if err != nil {
		respondServiceError(c, h.log, err, "payroll summary")
		return
	}

	respondRows(c, rows)
}

// respondRows writes {"rows": [...]}, never null.
func respondRows[T any](c *gin.Context, rows []T) {
	if rows == nil {
		rows = []T{}
	}

	c.JSON(http.StatusOK, gin.H{"rows": rows})
}
