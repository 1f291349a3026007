package store

import (
	"context"

	"github.com/vsuet/accounting/internal/models"
)

// DepartmentStore handles department CRUD operations.
type DepartmentStore struct {
	Base
}

// NewDepartmentStore creates a new DepartmentStore.
func NewDepartmentStore(base Base) *DepartmentStore {
	return &DepartmentStore{Base: base}
}

// List returns all departments ordered by name.
func (s *DepartmentStore) List(ctx context.Context) ([]models.Department, error) {
	return listRows(ctx, &s.Base, "departments",
		"SELECT "+departmentColumns+" FROM departments ORDER BY name, id", scanDepartment)
}

// Get returns a department by id.
func (s *DepartmentStore) Get(ctx context.Context, id int64) (*models.Department, error) {
	return getRow(ctx, &s.Base, models.ErrDepartmentNotFound,
		"SELECT "+departmentColumns+" FROM departments WHERE id = $1", scanDepartment, id)
}

// Create inserts a department. Duplicate names or codes yield ErrDuplicateKey.
func (s *DepartmentStore) Create(ctx context.Context, req models.DepartmentRequest) (*models.Department, error) {
	return writeRow(ctx, &s.Base, "creating department", models.ErrDepartmentNotFound,
		"INSERT INTO departments (name, code) VALUES ($1, $2) RETURNING "+departmentColumns,
		scanDepartment, req.Name, req.Code)
}

// Update replaces a department's fields.
func (s *DepartmentStore) Update(ctx context.Context, id int64, req models.DepartmentRequest) (*models.Department, error) {
	return writeRow(ctx, &s.Base, "updating department", models.ErrDepartmentNotFound,
		"UPDATE departments SET name = $1, code = $2 WHERE id = $3 RETURNING "+departmentColumns,
		scanDepartment, req.Name, req.Code, id)
}

// Delete removes a department together with its employees, their payrolls
// and the department's expenses.
func (s *DepartmentStore) Delete(ctx context.Context, id int64) error {
	return deleteRow(ctx, &s.Base, "departments", models.ErrDepartmentNotFound, id)
}
