// Package service provides business logic between API handlers and data stores.
package service

import (
	"context"
	"strconv"

	"github.com/sirupsen/logrus"

	"github.com/vsuet/accounting/internal/domain"
	"github.com/vsuet/accounting/internal/models"
)

// EntityStore is the data-access interface EntityService depends on.
// It reuses domain.EntityService since the method sets are identical.
type EntityStore[T, R any] = domain.EntityService[T, R]

// Compile-time checks for every ledger entity kind.
var (
	_ domain.DepartmentService = (*EntityService[models.Department, models.DepartmentRequest])(nil)
	_ domain.EmployeeService   = (*EntityService[models.Employee, models.EmployeeRequest])(nil)
	_ domain.VendorService     = (*EntityService[models.Vendor, models.VendorRequest])(nil)
	_ domain.ExpenseService    = (*EntityService[models.Expense, models.ExpenseRequest])(nil)
	_ domain.PayrollService    = (*EntityService[models.Payroll, models.PayrollRequest])(nil)
)

// EntityService wraps an EntityStore and records every successful mutation
// in the audit trail.
type EntityService[T, R any] struct {
	store       EntityStore[T, R]
	entityType  string
	idOf        func(*T) int64
	auditWorker AuditEnqueuer
	log         *logrus.Logger
}

func newEntityService[T, R any](
	store EntityStore[T, R], entityType string, idOf func(*T) int64, auditWorker AuditEnqueuer, log *logrus.Logger,
) *EntityService[T, R] {
	return &EntityService[T, R]{
		store:       store,
		entityType:  entityType,
		idOf:        idOf,
		auditWorker: auditWorker,
		log:         log,
	}
}

// NewDepartmentService creates the department CRUD service.
func NewDepartmentService(
	store EntityStore[models.Department, models.DepartmentRequest], auditWorker AuditEnqueuer, log *logrus.Logger,
) *EntityService[models.Department, models.DepartmentRequest] {
	return newEntityService(store, "department", func(d *models.Department) int64 { return d.ID }, auditWorker, log)
}

// NewEmployeeService creates the employee CRUD service.
func NewEmployeeService(
	store EntityStore[models.Employee, models.EmployeeRequest], auditWorker AuditEnqueuer, log *logrus.Logger,
) *EntityService[models.Employee, models.EmployeeRequest] {
	return newEntityService(store, "employee", func(e *models.Employee) int64 { return e.ID }, auditWorker, log)
}

// NewVendorService creates the vendor CRUD service.
func NewVendorService(
	store EntityStore[models.Vendor, models.VendorRequest], auditWorker AuditEnqueuer, log *logrus.Logger,
) *EntityService[models.Vendor, models.VendorRequest] {
	return newEntityService(store, "vendor", func(v *models.Vendor) int64 { return v.ID }, auditWorker, log)
}

// NewExpenseService creates the expense CRUD service.
func NewExpenseService(
	store EntityStore[models.Expense, models.ExpenseRequest], auditWorker AuditEnqueuer, log *logrus.Logger,
) *EntityService[models.Expense, models.ExpenseRequest] {
	return newEntityService(store, "expense", func(e *models.Expense) int64 { return e.ID }, auditWorker, log)
}

// NewPayrollService creates the live payroll CRUD service.
func NewPayrollService(
	store EntityStore[models.Payroll, models.PayrollRequest], auditWorker AuditEnqueuer, log *logrus.Logger,
) *EntityService[models.Payroll, models.PayrollRequest] {
	return newEntityService(store, "payroll", func(p *models.Payroll) int64 { return p.ID }, auditWorker, log)
}

// EntityType returns the singular entity name used in audit entries.
func (s *EntityService[T, R]) EntityType() string { return s.entityType }

// List returns every entity in its natural order (pass-through).
func (s *EntityService[T, R]) List(ctx context.Context) ([]T, error) {
	return s.store.List(ctx)
}

// Get returns a single entity by id (pass-through).
func (s *EntityService[T, R]) Get(ctx context.Context, id int64) (*T, error) {
	return s.store.Get(ctx, id)
}

// Create persists a validated request and audits the new entity.
func (s *EntityService[T, R]) Create(ctx context.Context, req R) (*T, error) {
	entity, err := s.store.Create(ctx, req)
	if err != nil {
		return nil, err
	}

	auditAsync(s.auditWorker, models.AuditActionCreate, s.entityType, formatID(s.idOf(entity)),
		map[string]any{"record": entity})

	return entity, nil
}

// Update replaces an entity's fields and audits the result.
func (s *EntityService[T, R]) Update(ctx context.Context, id int64, req R) (*T, error) {
	entity, err := s.store.Update(ctx, id, req)
	if err != nil {
		return nil, err
	}

	auditAsync(s.auditWorker, models.AuditActionUpdate, s.entityType, formatID(id),
		map[string]any{"record": entity})

	return entity, nil
}

// Delete removes an entity (and its cascaded dependants).
func (s *EntityService[T, R]) Delete(ctx context.Context, id int64) error {
	err := s.store.Delete(ctx, id)
	if err == nil {
		auditAsync(s.auditWorker, models.AuditActionDelete, s.entityType, formatID(id), nil)
	}
	return err
}

func formatID(id int64) string {
	return strconv.FormatInt(id, 10)
}
