package store_test

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/vsuet/accounting/internal/db"
	"github.com/vsuet/accounting/internal/db/migrations"
	"github.com/vsuet/accounting/internal/dbpool"
	"github.com/vsuet/accounting/internal/models"
	"github.com/vsuet/accounting/internal/store"
)

// testEnv holds shared test infrastructure (single pool across all tests).
type testEnv struct {
	pool *dbpool.Pool
	log  *logrus.Logger
}

var sharedEnv *testEnv

func getTestEnv(t *testing.T) *testEnv {
	t.Helper()

	if sharedEnv != nil {
		return sharedEnv
	}

	dbURL := os.Getenv("TEST_DATABASE_URL")
	if dbURL == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	ctx := context.Background()

	pool, err := dbpool.NewPool(ctx, dbURL, 4)
	if err != nil {
		t.Fatalf("connecting to test DB: %v", err)
	}

	log := logrus.New()
	log.SetLevel(logrus.ErrorLevel)

	if err := db.RunMigrations(ctx, pool, log, migrations.FS); err != nil {
		t.Fatalf("migrating test DB: %v", err)
	}

	sharedEnv = &testEnv{
		pool: pool,
		log:  log,
	}

	return sharedEnv
}

// setupTestBase returns a Base over an emptied ledger.
func setupTestBase(t *testing.T) store.Base {
	t.Helper()

	env := getTestEnv(t)

	_, err := env.pool.Exec(context.Background(), `TRUNCATE departments, employees, vendors, expenses,
		payrolls, archive_log, ledger_audit_log RESTART IDENTITY CASCADE`)
	if err != nil {
		t.Fatalf("truncating ledger: %v", err)
	}

	return store.Base{Pool: env.pool, Log: env.log}
}

func dec(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

func day(y int, m time.Month, d int) *models.Date {
	v := models.NewDate(y, m, d)
	return &v
}

// fixture is a small ledger: two departments, one vendor, one employee each.
type fixture struct {
	deptA, deptB models.Department
	vendor       models.Vendor
	empA, empB   models.Employee
}

func seedFixture(t *testing.T, base store.Base) fixture {
	t.Helper()

	ctx := context.Background()
	depts := store.NewDepartmentStore(base)
	emps := store.NewEmployeeStore(base)
	vendors := store.NewVendorStore(base)

	var f fixture

	a, err := depts.Create(ctx, models.DepartmentRequest{Name: "Бухгалтерия", Code: "БУХ"})
	if err != nil {
		t.Fatalf("Create department A: %v", err)
	}
	f.deptA = *a

	b, err := depts.Create(ctx, models.DepartmentRequest{Name: "ИТ-служба", Code: "ИТ"})
	if err != nil {
		t.Fatalf("Create department B: %v", err)
	}
	f.deptB = *b

	v, err := vendors.Create(ctx, models.VendorRequest{Name: "ООО ТехСервис", TaxID: "3661002222"})
	if err != nil {
		t.Fatalf("Create vendor: %v", err)
	}
	f.vendor = *v

	ea, err := emps.Create(ctx, models.EmployeeRequest{
		DepartmentID: f.deptA.ID, FullName: "Петров Иван", HireDate: day(2021, 3, 15), BaseSalary: dec("62000.00"),
	})
	if err != nil {
		t.Fatalf("Create employee A: %v", err)
	}
	f.empA = *ea

	eb, err := emps.Create(ctx, models.EmployeeRequest{
		DepartmentID: f.deptB.ID, FullName: "Волкова Марина", HireDate: day(2022, 2, 14), BaseSalary: dec("70000.00"),
	})
	if err != nil {
		t.Fatalf("Create employee B: %v", err)
	}
	f.empB = *eb

	return f
}

func createPayroll(t *testing.T, base store.Base, employeeID int64, start, end *models.Date, net string) models.Payroll {
	t.Helper()

	p, err := store.NewPayrollStore(base).Create(context.Background(), models.PayrollRequest{
		EmployeeID: employeeID, PeriodStart: start, PeriodEnd: end, NetAmount: dec(net),
	})
	if err != nil {
		t.Fatalf("Create payroll: %v", err)
	}

	return *p
}

func createExpense(t *testing.T, base store.Base, deptID, vendorID int64, amount string, on *models.Date, approved bool) models.Expense {
	t.Helper()

	x, err := store.NewExpenseStore(base).Create(context.Background(), models.ExpenseRequest{
		DepartmentID: deptID, VendorID: vendorID, Amount: dec(amount), ExpenseDate: on, IsApproved: approved,
	})
	if err != nil {
		t.Fatalf("Create expense: %v", err)
	}

	return *x
}
