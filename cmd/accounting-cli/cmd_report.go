package main

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/vsuet/accounting/client"
)

func newReportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Financial reports",
	}
	cmd.AddCommand(reportExpensesCmd())
	cmd.AddCommand(reportExpenseSummaryCmd())
	cmd.AddCommand(reportPayrollsCmd())
	cmd.AddCommand(reportPayrollSummaryCmd())
	return cmd
}

// dateFlags binds --from and --to to an inclusive date range.
type dateFlags struct {
	from, to string
}

func (d *dateFlags) bind(cmd *cobra.Command) {
	cmd.Flags().StringVar(&d.from, "from", "", "Start date, inclusive (YYYY-MM-DD)")
	cmd.Flags().StringVar(&d.to, "to", "", "End date, inclusive (YYYY-MM-DD)")
}

func (d *dateFlags) rangeOf() (client.DateRange, error) {
	var r client.DateRange
	var err error
	if r.From, err = parseDateFlag("from", d.from); err != nil {
		return r, err
	}
	if r.To, err = parseDateFlag("to", d.to); err != nil {
		return r, err
	}
	return r, nil
}

func parseDateFlag(name, value string) (*client.Date, error) {
	if value == "" {
		return nil, nil
	}
	d, err := client.ParseDate(value)
	if err != nil {
		return nil, fmt.Errorf("--%s: %w", name, err)
	}
	return &d, nil
}

// optionalInt64 returns a pointer to v only when the flag was set explicitly.
func optionalInt64(cmd *cobra.Command, name string, v int64) *int64 {
	if !cmd.Flags().Changed(name) {
		return nil
	}
	return &v
}

func reportExpensesCmd() *cobra.Command {
	var dates dateFlags
	var departmentID, vendorID int64
	var approvedOnly bool
	cmd := &cobra.Command{
		Use:   "expenses",
		Short: "List expenses with department and vendor names",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := dates.rangeOf()
			if err != nil {
				return err
			}
			f := client.ExpenseReportFilter{
				DepartmentID: optionalInt64(cmd, "department", departmentID),
				VendorID:     optionalInt64(cmd, "vendor", vendorID),
				Dates:        r,
				ApprovedOnly: approvedOnly,
			}
			rows, err := apiClient.Reports.Expenses(context.Background(), f)
			if err != nil {
				fatal("expense report", err)
			}
			if flagFmt == "table" {
				table := make([][]string, 0, len(rows))
				for _, row := range rows {
					table = append(table, []string{id64(row.ExpenseID), row.Department, row.Vendor, money(row.Amount), row.ExpenseDate.String(), yesNo(row.IsApproved)})
				}
				formatTable([]string{"ID", "DEPARTMENT", "VENDOR", "AMOUNT", "DATE", "APPROVED"}, table)
				return nil
			}
			output(rows, strconv.Itoa(len(rows)))
			return nil
		},
	}
	dates.bind(cmd)
	cmd.Flags().Int64Var(&departmentID, "department", 0, "Filter by department ID")
	cmd.Flags().Int64Var(&vendorID, "vendor", 0, "Filter by vendor ID")
	cmd.Flags().BoolVar(&approvedOnly, "approved-only", false, "Only approved expenses")
	return cmd
}

func reportExpenseSummaryCmd() *cobra.Command {
	var dates dateFlags
	cmd := &cobra.Command{
		Use:   "expenses-summary",
		Short: "Total expense amount per department",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := dates.rangeOf()
			if err != nil {
				return err
			}
			rows, err := apiClient.Reports.ExpenseSummary(context.Background(), r)
			if err != nil {
				fatal("expense summary", err)
			}
			if flagFmt == "table" {
				table := make([][]string, 0, len(rows))
				for _, row := range rows {
					table = append(table, []string{row.Department, money(row.TotalAmount)})
				}
				formatTable([]string{"DEPARTMENT", "TOTAL"}, table)
				return nil
			}
			output(rows, strconv.Itoa(len(rows)))
			return nil
		},
	}
	dates.bind(cmd)
	return cmd
}

func reportPayrollsCmd() *cobra.Command {
	var dates dateFlags
	var employeeID int64
	var paid string
	var includeArchived bool
	cmd := &cobra.Command{
		Use:   "payrolls",
		Short: "List payrolls with employee names",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := dates.rangeOf()
			if err != nil {
				return err
			}
			f := client.PayrollReportFilter{
				EmployeeID:      optionalInt64(cmd, "employee", employeeID),
				Dates:           r,
				IncludeArchived: includeArchived,
			}
			if paid != "" {
				v, err := strconv.ParseBool(paid)
				if err != nil {
					return fmt.Errorf("--paid must be true or false")
				}
				f.IsPaid = &v
			}
			rows, err := apiClient.Reports.Payrolls(context.Background(), f)
			if err != nil {
				fatal("payroll report", err)
			}
			if flagFmt == "table" {
				table := make([][]string, 0, len(rows))
				for _, row := range rows {
					table = append(table, []string{
						id64(row.PayrollID), row.Employee, row.PeriodStart.String(), row.PeriodEnd.String(),
						money(row.NetAmount), yesNo(row.IsPaid), timestamp(row.ArchivedAt),
					})
				}
				formatTable([]string{"ID", "EMPLOYEE", "PERIOD_START", "PERIOD_END", "NET", "PAID", "ARCHIVED_AT"}, table)
				return nil
			}
			output(rows, strconv.Itoa(len(rows)))
			return nil
		},
	}
	dates.bind(cmd)
	cmd.Flags().Int64Var(&employeeID, "employee", 0, "Filter by employee ID")
	cmd.Flags().StringVar(&paid, "paid", "", "Filter by paid status (true|false)")
	cmd.Flags().BoolVar(&includeArchived, "include-archived", false, "Include archived payrolls")
	return cmd
}

func reportPayrollSummaryCmd() *cobra.Command {
	var dates dateFlags
	cmd := &cobra.Command{
		Use:   "payrolls-summary",
		Short: "Total live net pay per department",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := dates.rangeOf()
			if err != nil {
				return err
			}
			rows, err := apiClient.Reports.PayrollSummary(context.Background(), r)
			if err != nil {
				fatal("payroll summary", err)
			}
			if flagFmt == "table" {
				table := make([][]string, 0, len(rows))
				for _, row := range rows {
					table = append(table, []string{row.Department, money(row.TotalNet)})
				}
				formatTable([]string{"DEPARTMENT", "TOTAL_NET"}, table)
				return nil
			}
			output(rows, strconv.Itoa(len(rows)))
			return nil
		},
	}
	dates.bind(cmd)
	return cmd
}
