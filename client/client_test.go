package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

// newTestServer creates a test server that routes to the given handler map.
// Keys are "METHOD /path", values are handler funcs.
func newTestServer(t *testing.T, routes map[string]http.HandlerFunc) (*httptest.Server, *Client) {
	t.Helper()
	mux := http.NewServeMux()
	for pattern, handler := range routes {
		mux.HandleFunc(pattern, handler)
	}
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	c := New(srv.URL, WithUserAgent("accounting-test"))
	return srv, c
}

func jsonResponse(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v) //nolint:errcheck
}

func TestHealth(t *testing.T) {
	_, c := newTestServer(t, map[string]http.HandlerFunc{
		"GET /api/v1/health": func(w http.ResponseWriter, r *http.Request) {
			if ua := r.Header.Get("User-Agent"); ua != "accounting-test" {
				t.Errorf("User-Agent = %q", ua)
			}
			jsonResponse(w, 200, HealthResponse{Status: "ok", Version: "1.2.0", Database: "connected", SchemaVersion: 3})
		},
	})
	resp, err := c.Health(context.Background())
	if err != nil {
		t.Fatalf("Health() error: %v", err)
	}
	if resp.Status != "ok" || resp.Database != "connected" {
		t.Errorf("got %+v", resp)
	}
	if resp.SchemaVersion != 3 {
		t.Errorf("got schema version %d, want 3", resp.SchemaVersion)
	}
}

func TestReadyNotReady(t *testing.T) {
	_, c := newTestServer(t, map[string]http.HandlerFunc{
		"GET /api/v1/ready": func(w http.ResponseWriter, _ *http.Request) {
			jsonResponse(w, 503, ReadinessResponse{Status: "not_ready", Checks: map[string]string{"database": "error"}})
		},
	})
	_, err := c.Ready(context.Background())
	if !IsUnavailable(err) {
		t.Fatalf("expected 503 APIError, got %v", err)
	}
}

func TestDepartmentsCRUD(t *testing.T) {
	_, c := newTestServer(t, map[string]http.HandlerFunc{
		"GET /api/v1/departments": func(w http.ResponseWriter, _ *http.Request) {
			jsonResponse(w, 200, []Department{{ID: 1, Name: "Physics", Code: "PHY"}})
		},
		"POST /api/v1/departments": func(w http.ResponseWriter, r *http.Request) {
			var req DepartmentRequest
			json.NewDecoder(r.Body).Decode(&req) //nolint:errcheck
			jsonResponse(w, 201, Department{ID: 2, Name: req.Name, Code: req.Code})
		},
		"GET /api/v1/departments/1": func(w http.ResponseWriter, _ *http.Request) {
			jsonResponse(w, 200, Department{ID: 1, Name: "Physics", Code: "PHY"})
		},
		"PUT /api/v1/departments/1": func(w http.ResponseWriter, r *http.Request) {
			var req DepartmentRequest
			json.NewDecoder(r.Body).Decode(&req) //nolint:errcheck
			jsonResponse(w, 200, Department{ID: 1, Name: req.Name, Code: req.Code})
		},
		"DELETE /api/v1/departments/1": func(w http.ResponseWriter, _ *http.Request) {
			jsonResponse(w, 200, map[string]bool{"deleted": true})
		},
	})

	ctx := context.Background()

	// List
	depts, err := c.Departments.List(ctx)
	if err != nil {
		t.Fatalf("List error: %v", err)
	}
	if len(depts) != 1 || depts[0].Code != "PHY" {
		t.Errorf("List: got %+v", depts)
	}

	// Create
	dept, err := c.Departments.Create(ctx, &DepartmentRequest{Name: "Chemistry", Code: "CHE"})
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}
	if dept.ID != 2 || dept.Name != "Chemistry" {
		t.Errorf("Create: got %+v", dept)
	}

	// Get
	dept, err = c.Departments.Get(ctx, 1)
	if err != nil {
		t.Fatalf("Get error: %v", err)
	}
	if dept.ID != 1 {
		t.Errorf("Get: got id %d", dept.ID)
	}

	// Update
	dept, err = c.Departments.Update(ctx, 1, &DepartmentRequest{Name: "Applied Physics", Code: "APH"})
	if err != nil {
		t.Fatalf("Update error: %v", err)
	}
	if dept.Code != "APH" {
		t.Errorf("Update: got code %q", dept.Code)
	}

	// Delete
	if err := c.Departments.Delete(ctx, 1); err != nil {
		t.Fatalf("Delete error: %v", err)
	}
}

func TestPayrollCreateSendsDecimalAmount(t *testing.T) {
	_, c := newTestServer(t, map[string]http.HandlerFunc{
		"POST /api/v1/payrolls": func(w http.ResponseWriter, r *http.Request) {
			var raw map[string]any
			json.NewDecoder(r.Body).Decode(&raw) //nolint:errcheck
			if raw["net_amount"] != "1500.25" {
				t.Errorf("net_amount = %v, want string 1500.25", raw["net_amount"])
			}
			if raw["period_end"] != "2024-01-31" {
				t.Errorf("period_end = %v", raw["period_end"])
			}
			jsonResponse(w, 201, Payroll{ID: 9, EmployeeID: 4, NetAmount: decimal.RequireFromString("1500.25")})
		},
	})

	start := NewDate(2024, time.January, 1)
	end := NewDate(2024, time.January, 31)
	amount := decimal.RequireFromString("1500.25")

	p, err := c.Payrolls.Create(context.Background(), &PayrollRequest{
		EmployeeID:  4,
		PeriodStart: &start,
		PeriodEnd:   &end,
		NetAmount:   &amount,
	})
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}
	if !p.NetAmount.Equal(amount) {
		t.Errorf("net amount = %s", p.NetAmount)
	}
}

func TestNotFound(t *testing.T) {
	_, c := newTestServer(t, map[string]http.HandlerFunc{
		"GET /api/v1/vendors/42": func(w http.ResponseWriter, _ *http.Request) {
			jsonResponse(w, 404, map[string]string{"code": "not_found", "message": "vendor not found", "request_id": "abc"})
		},
	})

	_, err := c.Vendors.Get(context.Background(), 42)
	if !IsNotFound(err) {
		t.Fatalf("expected not found, got %v", err)
	}

	apiErr, ok := err.(*APIError)
	if !ok {
		t.Fatalf("expected *APIError, got %T", err)
	}
	if apiErr.RequestID != "abc" {
		t.Errorf("request id = %q", apiErr.RequestID)
	}
}

func TestReports(t *testing.T) {
	_, c := newTestServer(t, map[string]http.HandlerFunc{
		"GET /api/v1/reports/expenses": func(w http.ResponseWriter, r *http.Request) {
			q := r.URL.Query()
			if q.Get("department_id") != "3" || q.Get("approved_only") != "true" {
				t.Errorf("unexpected query %q", r.URL.RawQuery)
			}
			if q.Get("date_from") != "2024-01-01" || q.Get("date_to") != "" {
				t.Errorf("unexpected date params %q", r.URL.RawQuery)
			}
			jsonResponse(w, 200, map[string]any{"rows": []ExpenseReportRow{{ExpenseID: 1, Department: "Physics", Amount: decimal.RequireFromString("10.50")}}})
		},
		"GET /api/v1/reports/expenses/summary": func(w http.ResponseWriter, _ *http.Request) {
			jsonResponse(w, 200, map[string]any{"rows": []ExpenseSummaryRow{{Department: "Physics", TotalAmount: decimal.RequireFromString("10.50")}}})
		},
		"GET /api/v1/reports/payrolls": func(w http.ResponseWriter, r *http.Request) {
			q := r.URL.Query()
			if q.Get("is_paid") != "false" || q.Get("include_archived") != "true" {
				t.Errorf("unexpected query %q", r.URL.RawQuery)
			}
			jsonResponse(w, 200, map[string]any{"rows": []PayrollReportRow{{PayrollID: 5, Employee: "Ann"}}})
		},
		"GET /api/v1/reports/payrolls/summary": func(w http.ResponseWriter, _ *http.Request) {
			jsonResponse(w, 200, map[string]any{"rows": []PayrollSummaryRow{}})
		},
	})

	ctx := context.Background()
	deptID := int64(3)
	from := NewDate(2024, time.January, 1)

	expenses, err := c.Reports.Expenses(ctx, ExpenseReportFilter{
		DepartmentID: &deptID,
		Dates:        DateRange{From: &from},
		ApprovedOnly: true,
	})
	if err != nil || len(expenses) != 1 {
		t.Fatalf("Expenses: err=%v, len=%d", err, len(expenses))
	}

	summary, err := c.Reports.ExpenseSummary(ctx, DateRange{})
	if err != nil || len(summary) != 1 {
		t.Fatalf("ExpenseSummary: err=%v, len=%d", err, len(summary))
	}
	if !summary[0].TotalAmount.Equal(decimal.RequireFromString("10.5")) {
		t.Errorf("total = %s", summary[0].TotalAmount)
	}

	unpaid := false
	payrolls, err := c.Reports.Payrolls(ctx, PayrollReportFilter{IsPaid: &unpaid, IncludeArchived: true})
	if err != nil || len(payrolls) != 1 {
		t.Fatalf("Payrolls: err=%v, len=%d", err, len(payrolls))
	}

	totals, err := c.Reports.PayrollSummary(ctx, DateRange{})
	if err != nil {
		t.Fatalf("PayrollSummary error: %v", err)
	}
	if len(totals) != 0 {
		t.Errorf("PayrollSummary: got %d rows", len(totals))
	}
}

func TestArchivePayrolls(t *testing.T) {
	started := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	_, c := newTestServer(t, map[string]http.HandlerFunc{
		"POST /api/v1/archive/payrolls": func(w http.ResponseWriter, r *http.Request) {
			var body map[string]string
			json.NewDecoder(r.Body).Decode(&body) //nolint:errcheck
			if body["cutoff_date"] != "2024-01-01" {
				t.Errorf("cutoff_date = %q", body["cutoff_date"])
			}
			jsonResponse(w, 200, map[string]any{"cutoff_date": "2024-01-01", "moved": 12, "started_at": started})
		},
	})

	res, err := c.Archive.ArchivePayrolls(context.Background(), NewDate(2024, time.January, 1))
	if err != nil {
		t.Fatalf("ArchivePayrolls error: %v", err)
	}
	if res.Moved != 12 {
		t.Errorf("moved = %d, want 12", res.Moved)
	}
	if res.CutoffDate.String() != "2024-01-01" {
		t.Errorf("cutoff = %s", res.CutoffDate)
	}
}

func TestArchiveConflict(t *testing.T) {
	_, c := newTestServer(t, map[string]http.HandlerFunc{
		"POST /api/v1/archive/payrolls": func(w http.ResponseWriter, _ *http.Request) {
			jsonResponse(w, 409, map[string]string{"code": "archive_conflict", "message": "retry"})
		},
	})

	_, err := c.Archive.ArchivePayrolls(context.Background(), NewDate(2024, time.January, 1))
	if !IsArchiveConflict(err) || !IsConflict(err) {
		t.Fatalf("expected archive conflict, got %v", err)
	}
}

func TestArchiveList(t *testing.T) {
	_, c := newTestServer(t, map[string]http.HandlerFunc{
		"GET /api/v1/archive": func(w http.ResponseWriter, r *http.Request) {
			q := r.URL.Query()
			if q.Get("source_table") != "payrolls" || q.Get("limit") != "10" {
				t.Errorf("unexpected query %q", r.URL.RawQuery)
			}
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`{"data":[{"id":1,"source_table":"payrolls","archived_at":"2024-06-01T12:00:00Z",` + //nolint:errcheck
				`"payload":{"id":7,"employee_id":4,"period_start":"2023-01-01","period_end":"2023-01-31",` +
				`"net_amount":"900.00","paid_at":"2023-02-01T09:30:00","is_paid":true}}],"has_more":true}`))
		},
	})

	entries, hasMore, err := c.Archive.List(context.Background(), &ArchiveListOptions{SourceTable: "payrolls", Limit: 10})
	if err != nil {
		t.Fatalf("List error: %v", err)
	}
	if len(entries) != 1 || !hasMore {
		t.Fatalf("got %d entries, hasMore=%v", len(entries), hasMore)
	}

	snap, ok := entries[0].Payload.(PayrollSnapshot)
	if !ok {
		t.Fatalf("payload type = %T", entries[0].Payload)
	}
	if snap.ID != 7 || snap.PaidAt == nil || snap.PaidAt.Hour() != 9 {
		t.Errorf("snapshot = %+v", snap)
	}
}

func TestAudit(t *testing.T) {
	_, c := newTestServer(t, map[string]http.HandlerFunc{
		"GET /api/v1/audit": func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Query().Get("entity_type") != "payrolls" {
				t.Errorf("unexpected query %q", r.URL.RawQuery)
			}
			jsonResponse(w, 200, map[string]any{
				"data":     []AuditEntry{{ID: 1, Action: "archive", EntityType: "payrolls", EntityID: "2024-01-01"}},
				"has_more": false,
			})
		},
		"DELETE /api/v1/audit": func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Query().Get("retention_days") != "30" {
				t.Errorf("retention_days = %q", r.URL.Query().Get("retention_days"))
			}
			jsonResponse(w, 200, map[string]int{"deleted": 5, "retention_days": 30})
		},
	})

	ctx := context.Background()

	entries, hasMore, err := c.Audit.Query(ctx, &AuditQueryOptions{EntityType: "payrolls"})
	if err != nil || len(entries) != 1 || hasMore {
		t.Fatalf("Query: err=%v, len=%d, hasMore=%v", err, len(entries), hasMore)
	}

	deleted, err := c.Audit.Purge(ctx, 30)
	if err != nil {
		t.Fatalf("Purge error: %v", err)
	}
	if deleted != 5 {
		t.Errorf("deleted = %d, want 5", deleted)
	}
}

func TestParseAPIErrorFallsBackToRawBody(t *testing.T) {
	err := parseAPIError(502, []byte("bad gateway"))
	if err.Code != "unknown" || err.Message != "bad gateway" {
		t.Errorf("got %+v", err)
	}
}
