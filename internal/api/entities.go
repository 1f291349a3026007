package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/vsuet/accounting/internal/models"
)

// validatable is satisfied by pointers to request types that normalise and
// check themselves.
type validatable[R any] interface {
	*R
	Validate() error
}

// EntityHandler serves CRUD endpoints for one ledger entity kind.
type EntityHandler[T, R any, PR validatable[R]] struct {
	repo EntityRepository[T, R]
	kind string
	log  *logrus.Logger
}

// NewEntityHandler creates an EntityHandler. kind is the singular entity name
// used in log entries.
func NewEntityHandler[T, R any, PR validatable[R]](
	repo EntityRepository[T, R], kind string, log *logrus.Logger,
) *EntityHandler[T, R, PR] {
	return &EntityHandler[T, R, PR]{repo: repo, kind: kind, log: log}
}

// NewDepartmentHandler creates the department CRUD handler.
func NewDepartmentHandler(
	repo EntityRepository[models.Department, models.DepartmentRequest], log *logrus.Logger,
) *EntityHandler[models.Department, models.DepartmentRequest, *models.DepartmentRequest] {
	return NewEntityHandler[models.Department, models.DepartmentRequest, *models.DepartmentRequest](repo, "department", log)
}

// NewEmployeeHandler creates the employee CRUD handler.
func NewEmployeeHandler(
	repo EntityRepository[models.Employee, models.EmployeeRequest], log *logrus.Logger,
) *EntityHandler[models.Employee, models.EmployeeRequest, *models.EmployeeRequest] {
	return NewEntityHandler[models.Employee, models.EmployeeRequest, *models.EmployeeRequest](repo, "employee", log)
}

// NewVendorHandler creates the vendor CRUD handler.
func NewVendorHandler(
	repo EntityRepository[models.Vendor, models.VendorRequest], log *logrus.Logger,
) *EntityHandler[models.Vendor, models.VendorRequest, *models.VendorRequest] {
	return NewEntityHandler[models.Vendor, models.VendorRequest, *models.VendorRequest](repo, "vendor", log)
}

// NewExpenseHandler creates the expense CRUD handler.
func NewExpenseHandler(
	repo EntityRepository[models.Expense, models.ExpenseRequest], log *logrus.Logger,
) *EntityHandler[models.Expense, models.ExpenseRequest, *models.ExpenseRequest] {
	return NewEntityHandler[models.Expense, models.ExpenseRequest, *models.ExpenseRequest](repo, "expense", log)
}

// NewPayrollHandler creates the live payroll CRUD handler.
func NewPayrollHandler(
	repo EntityRepository[models.Payroll, models.PayrollRequest], log *logrus.Logger,
) *EntityHandler[models.Payroll, models.PayrollRequest, *models.PayrollRequest] {
	return NewEntityHandler[models.Payroll, models.PayrollRequest, *models.PayrollRequest](repo, "payroll", log)
}

// List handles GET /api/v1/<kind>.
func (h *EntityHandler[T, R, PR]) List(c *gin.Context) {
	items, err := h.repo.List(c.Request.Context())
	if err != nil {
		respondServiceError(c, h.log, err, "listing "+h.kind+"s")
		return
	}

	if items == nil {
		items = []T{}
	}

	c.JSON(http.StatusOK, items)
}

// Get handles GET /api/v1/<kind>/:id.
func (h *EntityHandler[T, R, PR]) Get(c *gin.Context) {
	id, ok := h.pathID(c)
	if !ok {
		return
	}

	item, err := h.repo.Get(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, h.log, err, "getting "+h.kind)
		return
	}

	c.JSON(http.StatusOK, item)
}

// Create handles POST /api/v1/<kind>.
func (h *EntityHandler[T, R, PR]) Create(c *gin.Context) {
	req, ok := h.bind(c)
	if !ok {
		return
	}

	item, err := h.repo.Create(c.Request.Context(), req)
	if err != nil {
		respondServiceError(c, h.log, err, "creating "+h.kind)
		return
	}

	c.JSON(http.StatusCreated, item)
}

// Update handles PUT /api/v1/<kind>/:id.
func (h *EntityHandler[T, R, PR]) Update(c *gin.Context) {
	id, ok := h.pathID(c)
	if !ok {
		return
	}

	req, ok := h.bind(c)
	if !ok {
		return
	}

	item, err := h.repo.Update(c.Request.Context(), id, req)
	if err != nil {
		respondServiceError(c, h.log, err, "updating "+h.kind)
		return
	}

	c.JSON(http.StatusOK, item)
}

// Delete handles DELETE /api/v1/<kind>/:id.
func (h *EntityHandler[T, R, PR]) Delete(c *gin.Context) {
	id, ok := h.pathID(c)
	if !ok {
		return
	}

	if err := h.repo.Delete(c.Request.Context(), id); err != nil {
		respondServiceError(c, h.log, err, "deleting "+h.kind)
		return
	}

	h.log.WithFields(logrus.Fields{"action": h.kind + ".delete", "id": id}).Info("audit")

	c.JSON(http.StatusOK, gin.H{"deleted": true})
}

func (h *EntityHandler[T, R, PR]) pathID(c *gin.Context) (int64, bool) {
	id, err := parseID(c.Param("id"))
	if err != nil {
		respondError(c, http.StatusBadRequest, ErrCodeInvalidRequest, err.Error())
		return 0, false
	}

	return id, true
}

func (h *EntityHandler[T, R, PR]) bind(c *gin.Context) (R, bool) {
	var req R
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, ErrCodeInvalidRequest, "invalid request body")
		return req, false
	}

	if err := PR(&req).Validate(); err != nil {
		respondError(c, http.StatusBadRequest, ErrCodeValidationError, err.Error())
		return req, false
	}

	return req, true
}
