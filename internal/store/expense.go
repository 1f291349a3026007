package store

import (
	"context"

	"github.com/vsuet/accounting/internal/models"
)

// ExpenseStore handles expense CRUD operations.
type ExpenseStore struct {
	Base
}

// NewExpenseStore creates a new ExpenseStore.
func NewExpenseStore(base Base) *ExpenseStore {
	return &ExpenseStore{Base: base}
}

// List returns all expenses ordered by expense date.
func (s *ExpenseStore) List(ctx context.Context) ([]models.Expense, error) {
	return listRows(ctx, &s.Base, "expenses",
		"SELECT "+expenseColumns+" FROM expenses ORDER BY expense_date, id", scanExpense)
}

// Get returns an expense by id.
func (s *ExpenseStore) Get(ctx context.Context, id int64) (*models.Expense, error) {
	return getRow(ctx, &s.Base, models.ErrExpenseNotFound,
		"SELECT "+expenseColumns+" FROM expenses WHERE id = $1", scanExpense, id)
}

// Create inserts an expense.
func (s *ExpenseStore) Create(ctx context.Context, req models.ExpenseRequest) (*models.Expense, error) {
	return writeRow(ctx, &s.Base, "creating expense", models.ErrExpenseNotFound,
		`INSERT INTO expenses (department_id, vendor_id, amount, expense_date, is_approved)
		VALUES ($1, $2, $3, $4, $5) RETURNING `+expenseColumns,
		scanExpense, req.DepartmentID, req.VendorID, *req.Amount, req.ExpenseDate.Time(), req.IsApproved)
}

// Update replaces an expense's fields.
func (s *ExpenseStore) Update(ctx context.Context, id int64, req models.ExpenseRequest) (*models.Expense, error) {
	return writeRow(ctx, &s.Base, "updating expense", models.ErrExpenseNotFound,
		`UPDATE expenses SET department_id = $1, vendor_id = $2, amount = $3, expense_date = $4, is_approved = $5
		WHERE id = $6 RETURNING `+expenseColumns,
		scanExpense, req.DepartmentID, req.VendorID, *req.Amount, req.ExpenseDate.Time(), req.IsApproved, id)
}

// Delete removes an expense.
func (s *ExpenseStore) Delete(ctx context.Context, id int64) error {
	return deleteRow(ctx, &s.Base, "expenses", models.ErrExpenseNotFound, id)
}
