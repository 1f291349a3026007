package db

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/vsuet/accounting/internal/dbpool"
	"github.com/vsuet/accounting/internal/models"
)

type seedDepartment struct{ name, code string }

type seedEmployee struct {
	dept     int // index into seedDepartments
	fullName string
	hired    models.Date
	salary   string
	active   bool
}

type seedVendor struct{ name, taxID string }

type seedExpense struct {
	dept, vendor int
	amount       string
	date         models.Date
	approved     bool
}

type seedPayroll struct {
	employee   int
	start, end models.Date
	net        string
	paidAt     *time.Time
}

var seedDepartments = []seedDepartment{
	{"Бухгалтерия", "БУХ"},
	{"Планово-финансовый отдел", "ПФО"},
	{"Отдел закупок и снабжения", "ОЗС"},
	{"ИТ-служба", "ИТ"},
	{"Кафедра пищевых технологий", "КПТ"},
}

var seedEmployees = []seedEmployee{
	{0, "Петров Иван Сергеевич", models.NewDate(2021, 3, 15), "62000.00", true},
	{0, "Сидорова Елена Викторовна", models.NewDate(2020, 9, 1), "58000.00", true},
	{1, "Смирнова Ольга Павловна", models.NewDate(2018, 6, 10), "64000.00", true},
	{2, "Лебедев Дмитрий Андреевич", models.NewDate(2019, 11, 5), "52000.00", true},
	{3, "Волкова Марина Алексеевна", models.NewDate(2022, 2, 14), "70000.00", true},
	{4, "Иванов Сергей Николаевич", models.NewDate(2019, 5, 20), "54000.00", true},
	{4, "Кузнецов Павел Олегович", models.NewDate(2023, 1, 20), "48000.00", false},
}

var seedVendors = []seedVendor{
	{`ООО "ВГУИТ-Снабжение"`, "3661001111"},
	{`ООО "ТехСервис"`, "3661002222"},
	{`ООО "ОфисЛайн"`, "3661003333"},
	{`АО "ЭнергоВоронеж"`, "3661004444"},
	{`ООО "ЛабХим Трейд"`, "3661005555"},
}

var seedExpenses = []seedExpense{
	{0, 2, "4500.00", models.NewDate(2024, 1, 15), true},
	{0, 0, "12000.50", models.NewDate(2024, 2, 12), true},
	{1, 1, "9800.00", models.NewDate(2024, 2, 20), true},
	{2, 0, "15200.00", models.NewDate(2024, 3, 1), false},
	{3, 1, "56000.00", models.NewDate(2024, 3, 12), true},
	{4, 4, "22000.00", models.NewDate(2024, 1, 28), true},
	{4, 3, "13500.00", models.NewDate(2024, 3, 5), false},
	{1, 2, "3100.00", models.NewDate(2024, 2, 5), true},
}

func paidOn(y int, m time.Month, d int) *time.Time {
	t := time.Date(y, m, d, 10, 0, 0, 0, time.UTC)
	return &t
}

var seedPayrolls = []seedPayroll{
	{0, models.NewDate(2023, 12, 1), models.NewDate(2023, 12, 31), "51000.00", paidOn(2024, 1, 10)},
	{1, models.NewDate(2024, 1, 1), models.NewDate(2024, 1, 31), "49000.00", paidOn(2024, 2, 10)},
	{2, models.NewDate(2024, 1, 1), models.NewDate(2024, 1, 31), "54500.00", paidOn(2024, 2, 12)},
	{3, models.NewDate(2024, 2, 1), models.NewDate(2024, 2, 29), "47000.00", nil},
	{4, models.NewDate(2024, 2, 1), models.NewDate(2024, 2, 29), "62000.00", paidOn(2024, 3, 10)},
	{5, models.NewDate(2024, 2, 1), models.NewDate(2024, 2, 29), "46000.00", nil},
	{6, models.NewDate(2024, 1, 1), models.NewDate(2024, 1, 31), "42000.00", paidOn(2024, 2, 5)},
}

// seedArchived are payrolls that start out in archive_log, keyed by the
// original id they had while live.
var seedArchived = []struct {
	id int64
	seedPayroll
}{
	{9001, seedPayroll{0, models.NewDate(2023, 9, 1), models.NewDate(2023, 9, 30), "50500.00", paidOn(2023, 10, 10)}},
	{9002, seedPayroll{1, models.NewDate(2023, 10, 1), models.NewDate(2023, 10, 31), "48200.00", paidOn(2023, 11, 10)}},
}

// SeedDemoData fills an empty ledger with a small demo data set. It does
// nothing when any ledger or archive table already holds rows.
func SeedDemoData(ctx context.Context, pool *dbpool.Pool, log *logrus.Logger) error {
	tx, err := pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("beginning seed transaction: %w", err)
	}
	defer tx.Rollback(ctx) //nolint:errcheck // best-effort rollback on early return.

	var populated bool

	err = tx.QueryRow(ctx, `SELECT
		EXISTS (SELECT 1 FROM departments) OR EXISTS (SELECT 1 FROM employees) OR
		EXISTS (SELECT 1 FROM vendors) OR EXISTS (SELECT 1 FROM expenses) OR
		EXISTS (SELECT 1 FROM payrolls) OR EXISTS (SELECT 1 FROM archive_log)`).Scan(&populated)
	if err != nil {
		return fmt.Errorf("checking for existing data: %w", err)
	}

	if populated {
		log.Debug("ledger not empty, skipping demo seed")
		return nil
	}

	deptIDs := make([]int64, len(seedDepartments))
	for i, d := range seedDepartments {
		if err := insertReturningID(ctx, tx, &deptIDs[i],
			"INSERT INTO departments (name, code) VALUES ($1, $2) RETURNING id", d.name, d.code); err != nil {
			return err
		}
	}

	empIDs := make([]int64, len(seedEmployees))
	for i, e := range seedEmployees {
		if err := insertReturningID(ctx, tx, &empIDs[i],
			`INSERT INTO employees (department_id, full_name, hire_date, base_salary, is_active)
			 VALUES ($1, $2, $3, $4, $5) RETURNING id`,
			deptIDs[e.dept], e.fullName, e.hired.Time(), decimal.RequireFromString(e.salary), e.active); err != nil {
			return err
		}
	}

	vendorIDs := make([]int64, len(seedVendors))
	for i, v := range seedVendors {
		if err := insertReturningID(ctx, tx, &vendorIDs[i],
			"INSERT INTO vendors (name, tax_id) VALUES ($1, $2) RETURNING id", v.name, v.taxID); err != nil {
			return err
		}
	}

	batch := &pgx.Batch{}

	for _, e := range seedExpenses {
		batch.Queue(`INSERT INTO expenses (department_id, vendor_id, amount, expense_date, is_approved)
			VALUES ($1, $2, $3, $4, $5)`,
			deptIDs[e.dept], vendorIDs[e.vendor], decimal.RequireFromString(e.amount), e.date.Time(), e.approved)
	}

	for _, p := range seedPayrolls {
		batch.Queue(`INSERT INTO payrolls (employee_id, period_start, period_end, net_amount, paid_at, is_paid)
			VALUES ($1, $2, $3, $4, $5, $6)`,
			empIDs[p.employee], p.start.Time(), p.end.Time(), decimal.RequireFromString(p.net), p.paidAt, p.paidAt != nil)
	}

	for _, a := range seedArchived {
		payload, err := json.Marshal(models.PayrollSnapshot{
			ID:          a.id,
			EmployeeID:  empIDs[a.employee],
			PeriodStart: a.start,
			PeriodEnd:   a.end,
			NetAmount:   decimal.RequireFromString(a.net),
			PaidAt:      a.paidAt,
			IsPaid:      a.paidAt != nil,
		})
		if err != nil {
			return fmt.Errorf("marshaling archived payroll %d: %w", a.id, err)
		}

		batch.Queue("INSERT INTO archive_log (source_table, payload) VALUES ($1, $2)", models.SourcePayrolls, payload)
	}

	if err := tx.SendBatch(ctx, batch).Close(); err != nil {
		return fmt.Errorf("inserting demo rows: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("committing demo seed: %w", err)
	}

	log.WithFields(logrus.Fields{
		"departments": len(seedDepartments),
		"employees":   len(seedEmployees),
		"vendors":     len(seedVendors),
		"expenses":    len(seedExpenses),
		"payrolls":    len(seedPayrolls),
		"archived":    len(seedArchived),
	}).Info("demo data seeded")

	return nil
}

func insertReturningID(ctx context.Context, tx pgx.Tx, id *int64, sql string, args ...any) error {
	if err := tx.QueryRow(ctx, sql, args...).Scan(id); err != nil {
		return fmt.Errorf("seeding row: %w", err)
	}

	return nil
}
