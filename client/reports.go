package client

import (
	"context"
	"net/url"
	"strconv"
)

// ReportService handles the financial report endpoints.
type ReportService struct {
	c *Client
}

type rowsResponse[T any] struct {
	Rows []T `json:"rows"`
}

// Expenses returns expense rows matching f, ordered by expense date.
func (s *ReportService) Expenses(ctx context.Context, f ExpenseReportFilter) ([]ExpenseReportRow, error) {
	params := dateParams(f.Dates)
	setID(params, "department_id", f.DepartmentID)
	setID(params, "vendor_id", f.VendorID)
	if f.ApprovedOnly {
		params.Set("approved_only", "true")
	}

	var resp rowsResponse[ExpenseReportRow]
	if err := s.c.get(ctx, "/api/v1/reports/expenses", params, &resp); err != nil {
		return nil, err
	}
	return resp.Rows, nil
}

// ExpenseSummary returns total expense amount per department.
func (s *ReportService) ExpenseSummary(ctx context.Context, dates DateRange) ([]ExpenseSummaryRow, error) {
	var resp rowsResponse[ExpenseSummaryRow]
	if err := s.c.get(ctx, "/api/v1/reports/expenses/summary", dateParams(dates), &resp); err != nil {
		return nil, err
	}
	return resp.Rows, nil
}

// Payrolls returns payroll rows matching f. Set IncludeArchived to read the
// unified live and archived view.
func (s *ReportService) Payrolls(ctx context.Context, f PayrollReportFilter) ([]PayrollReportRow, error) {
	params := dateParams(f.Dates)
	setID(params, "employee_id", f.EmployeeID)
	if f.IsPaid != nil {
		params.Set("is_paid", strconv.FormatBool(*f.IsPaid))
	}
	if f.IncludeArchived {
		params.Set("include_archived", "true")
	}

	var resp rowsResponse[PayrollReportRow]
	if err := s.c.get(ctx, "/api/v1/reports/payrolls", params, &resp); err != nil {
		return nil, err
	}
	return resp.Rows, nil
}

// PayrollSummary returns total live net pay per department.
func (s *ReportService) PayrollSummary(ctx context.Context, dates DateRange) ([]PayrollSummaryRow, error) {
	var resp rowsResponse[PayrollSummaryRow]
	if err := s.c.get(ctx, "/api/v1/reports/payrolls/summary", dateParams(dates), &resp); err != nil {
		return nil, err
	}
	return resp.Rows, nil
}

func dateParams(r DateRange) url.Values {
	params := url.Values{}
	if r.From != nil {
		params.Set("date_from", r.From.String())
	}
	if r.To != nil {
		params.Set("date_to", r.To.String())
	}
	return params
}

func setID(params url.Values, key string, id *int64) {
	if id != nil {
		params.Set(key, strconv.FormatInt(*id, 10))
	}
}
