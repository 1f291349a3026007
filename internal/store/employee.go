package store

import (
	"context"

	"github.com/vsuet/accounting/internal/models"
)

// EmployeeStore handles employee CRUD operations.
type EmployeeStore struct {
	Base
}

// NewEmployeeStore creates a new EmployeeStore.
func NewEmployeeStore(base Base) *EmployeeStore {
	return &EmployeeStore{Base: base}
}

// List returns all employees ordered by full name.
func (s *EmployeeStore) List(ctx context.Context) ([]models.Employee, error) {
	return listRows(ctx, &s.Base, "employees",
		"SELECT "+employeeColumns+" FROM employees ORDER BY full_name, id", scanEmployee)
}

// Get returns an employee by id.
func (s *EmployeeStore) Get(ctx context.Context, id int64) (*models.Employee, error) {
	return getRow(ctx, &s.Base, models.ErrEmployeeNotFound,
		"SELECT "+employeeColumns+" FROM employees WHERE id = $1", scanEmployee, id)
}

// Create inserts an employee. An unknown department yields ErrInvalidReference.
func (s *EmployeeStore) Create(ctx context.Context, req models.EmployeeRequest) (*models.Employee, error) {
	return writeRow(ctx, &s.Base, "creating employee", models.ErrEmployeeNotFound,
		`INSERT INTO employees (department_id, full_name, hire_date, base_salary, is_active)
		VALUES ($1, $2, $3, $4, $5) RETURNING `+employeeColumns,
		scanEmployee, req.DepartmentID, req.FullName, req.HireDate.Time(), *req.BaseSalary, isActive(req))
}

// Update replaces an employee's fields.
func (s *EmployeeStore) Update(ctx context.Context, id int64, req models.EmployeeRequest) (*models.Employee, error) {
	return writeRow(ctx, &s.Base, "updating employee", models.ErrEmployeeNotFound,
		`UPDATE employees SET department_id = $1, full_name = $2, hire_date = $3, base_salary = $4, is_active = $5
		WHERE id = $6 RETURNING `+employeeColumns,
		scanEmployee, req.DepartmentID, req.FullName, req.HireDate.Time(), *req.BaseSalary, isActive(req), id)
}

// Delete removes an employee and their payrolls.
func (s *EmployeeStore) Delete(ctx context.Context, id int64) error {
	return deleteRow(ctx, &s.Base, "employees", models.ErrEmployeeNotFound, id)
}

func isActive(req models.EmployeeRequest) bool {
	return req.IsActive == nil || *req.IsActive
}
