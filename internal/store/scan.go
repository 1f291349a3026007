package store

import (
	"time"

	"github.com/vsuet/accounting/internal/models"
)

const departmentColumns = `id, name, code`

const employeeColumns = `id, department_id, full_name, hire_date, base_salary, is_active`

const vendorColumns = `id, name, tax_id`

const expenseColumns = `id, department_id, vendor_id, amount, expense_date, is_approved`

const payrollColumns = `id, employee_id, period_start, period_end, net_amount, paid_at, is_paid`

func scanDepartment(scan func(dest ...any) error) (*models.Department, error) {
	var d models.Department
	if err := scan(&d.ID, &d.Name, &d.Code); err != nil {
		return nil, err
	}

	return &d, nil
}

func scanEmployee(scan func(dest ...any) error) (*models.Employee, error) {
	var e models.Employee
	var hired time.Time

	if err := scan(&e.ID, &e.DepartmentID, &e.FullName, &hired, &e.BaseSalary, &e.IsActive); err != nil {
		return nil, err
	}

	e.HireDate = models.DateOf(hired)

	return &e, nil
}

func scanVendor(scan func(dest ...any) error) (*models.Vendor, error) {
	var v models.Vendor
	if err := scan(&v.ID, &v.Name, &v.TaxID); err != nil {
		return nil, err
	}

	return &v, nil
}

func scanExpense(scan func(dest ...any) error) (*models.Expense, error) {
	var x models.Expense
	var spent time.Time

	if err := scan(&x.ID, &x.DepartmentID, &x.VendorID, &x.Amount, &spent, &x.IsApproved); err != nil {
		return nil, err
	}

	x.ExpenseDate = models.DateOf(spent)

	return &x, nil
}

func scanPayroll(scan func(dest ...any) error) (*models.Payroll, error) {
	var p models.Payroll
	var start, end time.Time

	if err := scan(&p.ID, &p.EmployeeID, &start, &end, &p.NetAmount, &p.PaidAt, &p.IsPaid); err != nil {
		return nil, err
	}

	p.PeriodStart = models.DateOf(start)
	p.PeriodEnd = models.DateOf(end)

	return &p, nil
}
