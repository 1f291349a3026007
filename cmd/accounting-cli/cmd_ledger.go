package main

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/vsuet/accounting/client"
)

// entityCmd describes how one ledger entity kind is exposed on the command line.
type entityCmd[T, R any] struct {
	use     string
	plural  string
	service func() *client.EntityService[T, R]
	idOf    func(T) int64
	headers []string
	row     func(T) []string
}

func (e entityCmd[T, R]) build() *cobra.Command {
	cmd := &cobra.Command{
		Use:   e.use,
		Short: "Manage " + e.plural,
	}
	cmd.AddCommand(e.listCmd())
	cmd.AddCommand(e.getCmd())
	cmd.AddCommand(e.createCmd())
	cmd.AddCommand(e.updateCmd())
	cmd.AddCommand(e.deleteCmd())
	return cmd
}

func (e entityCmd[T, R]) listCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List " + e.plural,
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			items, err := e.service().List(context.Background())
			if err != nil {
				fatal("list "+e.plural, err)
			}
			switch flagFmt {
			case "table":
				rows := make([][]string, 0, len(items))
				for _, it := range items {
					rows = append(rows, e.row(it))
				}
				formatTable(e.headers, rows)
			case "quiet":
				for _, it := range items {
					fmt.Println(e.idOf(it))
				}
			default:
				formatJSON(items)
			}
		},
	}
}

func (e entityCmd[T, R]) getCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <id>",
		Short: "Get a " + e.use + " by ID",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			id := parseIDArg(args[0])
			item, err := e.service().Get(context.Background(), id)
			if err != nil {
				fatal("get "+e.use, err)
			}
			e.print(*item)
		},
	}
}

func (e entityCmd[T, R]) createCmd() *cobra.Command {
	var data string
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a " + e.use + " from a JSON payload",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			req := e.decode(data)
			item, err := e.service().Create(context.Background(), req)
			if err != nil {
				fatal("create "+e.use, err)
			}
			e.print(*item)
		},
	}
	cmd.Flags().StringVar(&data, "data", "", "Request body as JSON")
	_ = cmd.MarkFlagRequired("data")
	return cmd
}

func (e entityCmd[T, R]) updateCmd() *cobra.Command {
	var data string
	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Replace a " + e.use + " from a JSON payload",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			id := parseIDArg(args[0])
			req := e.decode(data)
			item, err := e.service().Update(context.Background(), id, req)
			if err != nil {
				fatal("update "+e.use, err)
			}
			e.print(*item)
		},
	}
	cmd.Flags().StringVar(&data, "data", "", "Request body as JSON")
	_ = cmd.MarkFlagRequired("data")
	return cmd
}

func (e entityCmd[T, R]) deleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a " + e.use + " and its dependent records",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			id := parseIDArg(args[0])
			if err := e.service().Delete(context.Background(), id); err != nil {
				fatal("delete "+e.use, err)
			}
			fmt.Println("deleted")
		},
	}
}

func (e entityCmd[T, R]) decode(data string) *R {
	var req R
	if err := json.Unmarshal([]byte(data), &req); err != nil {
		fatal("parse --data", err)
	}
	return &req
}

func (e entityCmd[T, R]) print(item T) {
	switch flagFmt {
	case "table":
		formatTable(e.headers, [][]string{e.row(item)})
	default:
		output(item, strconv.FormatInt(e.idOf(item), 10))
	}
}

func parseIDArg(s string) int64 {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id <= 0 {
		fatal("parse id", fmt.Errorf("%q is not a positive integer", s))
	}
	return id
}

func id64(id int64) string { return strconv.FormatInt(id, 10) }

func newDepartmentCmd() *cobra.Command {
	return entityCmd[client.Department, client.DepartmentRequest]{
		use:     "department",
		plural:  "departments",
		service: func() *client.EntityService[client.Department, client.DepartmentRequest] { return apiClient.Departments },
		idOf:    func(d client.Department) int64 { return d.ID },
		headers: []string{"ID", "CODE", "NAME"},
		row: func(d client.Department) []string {
			return []string{id64(d.ID), d.Code, d.Name}
		},
	}.build()
}

func newEmployeeCmd() *cobra.Command {
	return entityCmd[client.Employee, client.EmployeeRequest]{
		use:     "employee",
		plural:  "employees",
		service: func() *client.EntityService[client.Employee, client.EmployeeRequest] { return apiClient.Employees },
		idOf:    func(e client.Employee) int64 { return e.ID },
		headers: []string{"ID", "DEPARTMENT", "NAME", "HIRED", "SALARY", "ACTIVE"},
		row: func(e client.Employee) []string {
			return []string{id64(e.ID), id64(e.DepartmentID), e.FullName, e.HireDate.String(), money(e.BaseSalary), yesNo(e.IsActive)}
		},
	}.build()
}

func newVendorCmd() *cobra.Command {
	return entityCmd[client.Vendor, client.VendorRequest]{
		use:     "vendor",
		plural:  "vendors",
		service: func() *client.EntityService[client.Vendor, client.VendorRequest] { return apiClient.Vendors },
		idOf:    func(v client.Vendor) int64 { return v.ID },
		headers: []string{"ID", "TAX_ID", "NAME"},
		row: func(v client.Vendor) []string {
			return []string{id64(v.ID), v.TaxID, v.Name}
		},
	}.build()
}

func newExpenseCmd() *cobra.Command {
	return entityCmd[client.Expense, client.ExpenseRequest]{
		use:     "expense",
		plural:  "expenses",
		service: func() *client.EntityService[client.Expense, client.ExpenseRequest] { return apiClient.Expenses },
		idOf:    func(e client.Expense) int64 { return e.ID },
		headers: []string{"ID", "DEPARTMENT", "VENDOR", "AMOUNT", "DATE", "APPROVED"},
		row: func(e client.Expense) []string {
			return []string{id64(e.ID), id64(e.DepartmentID), id64(e.VendorID), money(e.Amount), e.ExpenseDate.String(), yesNo(e.IsApproved)}
		},
	}.build()
}

func newPayrollCmd() *cobra.Command {
	return entityCmd[client.Payroll, client.PayrollRequest]{
		use:     "payroll",
		plural:  "payrolls",
		service: func() *client.EntityService[client.Payroll, client.PayrollRequest] { return apiClient.Payrolls },
		idOf:    func(p client.Payroll) int64 { return p.ID },
		headers: []string{"ID", "EMPLOYEE", "PERIOD_START", "PERIOD_END", "NET", "PAID_AT", "PAID"},
		row: func(p client.Payroll) []string {
			return []string{id64(p.ID), id64(p.EmployeeID), p.PeriodStart.String(), p.PeriodEnd.String(), money(p.NetAmount), timestamp(p.PaidAt), yesNo(p.IsPaid)}
		},
	}.build()
}
