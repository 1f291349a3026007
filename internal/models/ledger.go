// Package models defines data types for the accounting ledger.
package models

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/shopspring/decimal"
)

// Field length limits, mirrored by the VARCHAR sizes in the schema.
const (
	maxNameLen  = 200
	maxCodeLen  = 50
	maxTaxIDLen = 20
)

// Department is an organisational unit owning employees and expenses.
type Department struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
	Code string `json:"code"`
}

// Employee belongs to exactly one department.
type Employee struct {
	ID           int64           `json:"id"`
	DepartmentID int64           `json:"department_id"`
	FullName     string          `json:"full_name"`
	HireDate     Date            `json:"hire_date"`
	BaseSalary   decimal.Decimal `json:"base_salary"`
	IsActive     bool            `json:"is_active"`
}

// Vendor is a supplier that expenses are paid to.
type Vendor struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	TaxID string `json:"tax_id"`
}

// Expense is a single department purchase from a vendor.
type Expense struct {
	ID           int64           `json:"id"`
	DepartmentID int64           `json:"department_id"`
	VendorID     int64           `json:"vendor_id"`
	Amount       decimal.Decimal `json:"amount"`
	ExpenseDate  Date            `json:"expense_date"`
	IsApproved   bool            `json:"is_approved"`
}

// Payroll is a live (not yet archived) salary payment for one period.
type Payroll struct {
	ID          int64           `json:"id"`
	EmployeeID  int64           `json:"employee_id"`
	PeriodStart Date            `json:"period_start"`
	PeriodEnd   Date            `json:"period_end"`
	NetAmount   decimal.Decimal `json:"net_amount"`
	PaidAt      *time.Time      `json:"paid_at"`
	IsPaid      bool            `json:"is_paid"`
}

// DepartmentRequest is the payload for creating or replacing a department.
type DepartmentRequest struct {
	Name string `json:"name"`
	Code string `json:"code"`
}

// Validate trims and checks DepartmentRequest fields.
func (r *DepartmentRequest) Validate() error {
	r.Name = strings.TrimSpace(r.Name)
	r.Code = strings.TrimSpace(r.Code)

	if err := requireString("name", r.Name, maxNameLen); err != nil {
		return err
	}

	return requireString("code", r.Code, maxCodeLen)
}

// EmployeeRequest is the payload for creating or replacing an employee.
type EmployeeRequest struct {
	DepartmentID int64            `json:"department_id"`
	FullName     string           `json:"full_name"`
	HireDate     *Date            `json:"hire_date"`
	BaseSalary   *decimal.Decimal `json:"base_salary"`
	IsActive     *bool            `json:"is_active,omitempty"`
}

// Validate trims and checks EmployeeRequest fields. IsActive defaults to true.
func (r *EmployeeRequest) Validate() error {
	r.FullName = strings.TrimSpace(r.FullName)

	if r.DepartmentID <= 0 {
		return ErrFieldRequired("department_id")
	}

	if err := requireString("full_name", r.FullName, maxNameLen); err != nil {
		return err
	}

	if r.HireDate == nil || r.HireDate.IsZero() {
		return ErrFieldRequired("hire_date")
	}

	if err := requireAmount("base_salary", r.BaseSalary); err != nil {
		return err
	}

	if r.IsActive == nil {
		active := true
		r.IsActive = &active
	}

	return nil
}

// VendorRequest is the payload for creating or replacing a vendor.
type VendorRequest struct {
	Name  string `json:"name"`
	TaxID string `json:"tax_id"`
}

// Validate trims and checks VendorRequest fields.
func (r *VendorRequest) Validate() error {
	r.Name = strings.TrimSpace(r.Name)
	r.TaxID = strings.TrimSpace(r.TaxID)

	if err := requireString("name", r.Name, maxNameLen); err != nil {
		return err
	}

	return requireString("tax_id", r.TaxID, maxTaxIDLen)
}

// ExpenseRequest is the payload for creating or replacing an expense.
type ExpenseRequest struct {
	DepartmentID int64            `json:"department_id"`
	VendorID     int64            `json:"vendor_id"`
	Amount       *decimal.Decimal `json:"amount"`
	ExpenseDate  *Date            `json:"expense_date"`
	IsApproved   bool             `json:"is_approved"`
}

// Validate checks ExpenseRequest fields.
func (r *ExpenseRequest) Validate() error {
	if r.DepartmentID <= 0 {
		return ErrFieldRequired("department_id")
	}

	if r.VendorID <= 0 {
		return ErrFieldRequired("vendor_id")
	}

	if err := requireAmount("amount", r.Amount); err != nil {
		return err
	}

	if r.ExpenseDate == nil || r.ExpenseDate.IsZero() {
		return ErrFieldRequired("expense_date")
	}

	return nil
}

// PayrollRequest is the payload for creating or replacing a live payroll.
type PayrollRequest struct {
	EmployeeID  int64            `json:"employee_id"`
	PeriodStart *Date            `json:"period_start"`
	PeriodEnd   *Date            `json:"period_end"`
	NetAmount   *decimal.Decimal `json:"net_amount"`
	PaidAt      *time.Time       `json:"paid_at"`
	IsPaid      bool             `json:"is_paid"`
}

// Validate checks PayrollRequest fields.
func (r *PayrollRequest) Validate() error {
	if r.EmployeeID <= 0 {
		return ErrFieldRequired("employee_id")
	}

	if r.PeriodStart == nil || r.PeriodStart.IsZero() {
		return ErrFieldRequired("period_start")
	}

	if r.PeriodEnd == nil || r.PeriodEnd.IsZero() {
		return ErrFieldRequired("period_end")
	}

	if r.PeriodStart.After(*r.PeriodEnd) {
		return fmt.Errorf("%w: period_start must not be after period_end", ErrInvalidValue)
	}

	return requireAmount("net_amount", r.NetAmount)
}

func requireString(field, value string, maxLen int) error {
	if value == "" {
		return ErrFieldRequired(field)
	}

	if utf8.RuneCountInString(value) > maxLen {
		return ErrFieldTooLong(field, maxLen)
	}

	return nil
}

// requireAmount checks a monetary field is present, non-negative and has at
// most two decimal places (NUMERIC(12,2)).
func requireAmount(field string, value *decimal.Decimal) error {
	if value == nil {
		return ErrFieldRequired(field)
	}

	if value.IsNegative() {
		return fmt.Errorf("%w: %s must not be negative", ErrInvalidValue, field)
	}

	if !value.Equal(value.Round(2)) {
		return fmt.Errorf("%w: %s must have at most 2 decimal places", ErrInvalidValue, field)
	}

	if value.GreaterThanOrEqual(maxAmount) {
		return fmt.Errorf("%w: %s exceeds %s", ErrInvalidValue, field, maxAmount.String())
	}

	return nil
}

// maxAmount is the exclusive upper bound of NUMERIC(12,2).
var maxAmount = decimal.New(1, 10)
