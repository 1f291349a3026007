package service

import (
	"context"

	"github.com/vsuet/accounting/internal/domain"
	"github.com/vsuet/accounting/internal/models"
)

// ReportStore is the data-access interface ReportService depends on.
type ReportStore = domain.ReportService

// Compile-time check: *ReportService must satisfy domain.ReportService.
var _ domain.ReportService = (*ReportService)(nil)

// ReportService validates report filters before querying.
type ReportService struct {
	store ReportStore
}

// NewReportService creates a ReportService.
func NewReportService(store ReportStore) *ReportService {
	return &ReportService{store: store}
}

// ExpenseReport returns expense rows matching f, ordered by expense date.
func (s *ReportService) ExpenseReport(
	ctx context.Context, f models.ExpenseReportFilter,
) ([]models.ExpenseReportRow, error) {
	if err := f.Validate(); err != nil {
		return nil, err
	}

	return s.store.ExpenseReport(ctx, f)
}

// ExpenseSummary returns total expense amount per department.
func (s *ReportService) ExpenseSummary(
	ctx context.Context, dates models.DateRange,
) ([]models.ExpenseSummaryRow, error) {
	if err := dates.Validate(); err != nil {
		return nil, err
	}

	return s.store.ExpenseSummary(ctx, dates)
}

// PayrollReport returns payroll rows matching f. With IncludeArchived the
// rows come from the unified live and archived view.
func (s *ReportService) PayrollReport(
	ctx context.Context, f models.PayrollReportFilter,
) ([]models.PayrollReportRow, error) {
	if err := f.Validate(); err != nil {
		return nil, err
	}

	return s.store.PayrollReport(ctx, f)
}

// PayrollSummary returns total live net pay per department.
func (s *ReportService) PayrollSummary(
	ctx context.Context, dates models.DateRange,
) ([]models.PayrollSummaryRow, error) {
	if err := dates.Validate(); err != nil {
		return nil, err
	}

	return s.store.PayrollSummary(ctx, dates)
}
