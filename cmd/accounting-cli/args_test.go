package main

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"
)

// executeArgs runs a fresh root command with args and returns any error.
// Cobra's usage and error output is discarded.
func executeArgs(t *testing.T, args ...string) error {
	t.Helper()
	resetFlags(t)
	isolateEnv(t)
	root := newRootCmd()
	root.SetOut(&strings.Builder{})
	root.SetErr(&strings.Builder{})
	root.SetArgs(args)
	_, err := root.ExecuteC()
	return err
}

// recordingServer captures the request URIs it receives and answers every
// route with the same JSON body.
type recordingServer struct {
	mu   sync.Mutex
	uris []string
	srv  *httptest.Server
}

func newRecordingServer(t *testing.T, body any) *recordingServer {
	t.Helper()
	rs := &recordingServer{}
	rs.srv = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rs.mu.Lock()
		rs.uris = append(rs.uris, r.Method+" "+r.URL.RequestURI())
		rs.mu.Unlock()
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(body) //nolint:errcheck
	}))
	t.Cleanup(rs.srv.Close)
	return rs
}

func (rs *recordingServer) last() string {
	rs.mu.Lock()
	defer rs.mu.Unlock()
	if len(rs.uris) == 0 {
		return ""
	}
	return rs.uris[len(rs.uris)-1]
}

func TestArgValidation(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"department get needs id", []string{"department", "get"}},
		{"department delete takes one id", []string{"department", "delete", "1", "2"}},
		{"employee list takes no args", []string{"employee", "list", "extra"}},
		{"vendor create requires --data", []string{"vendor", "create"}},
		{"payroll update requires --data", []string{"payroll", "update", "3"}},
		{"archive payrolls requires --cutoff", []string{"archive", "payrolls"}},
		{"archive payrolls rejects bad date", []string{"archive", "payrolls", "--cutoff", "01/02/2024"}},
		{"archive list rejects bad since", []string{"archive", "list", "--since", "yesterday"}},
		{"archive list rejects negative limit", []string{"archive", "list", "--limit", "-1"}},
		{"report expenses rejects bad from", []string{"report", "expenses", "--from", "2024-13-01"}},
		{"report payrolls rejects bad paid", []string{"report", "payrolls", "--paid", "maybe"}},
		{"audit purge rejects zero retention", []string{"audit", "purge", "--retention-days", "0"}},
		{"unknown subcommand", []string{"ledger"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := executeArgs(t, tt.args...); err == nil {
				t.Errorf("expected error for args %v", tt.args)
			}
		})
	}
}

func TestReportExpensesQuery(t *testing.T) {
	rs := newRecordingServer(t, map[string]any{"rows": []any{}})

	captureStdout(t, func() {
		err := executeArgs(t, "--url", rs.srv.URL, "report", "expenses",
			"--department", "3", "--from", "2024-01-01", "--approved-only")
		if err != nil {
			t.Errorf("unexpected error: %v", err)
		}
	})

	got := rs.last()
	for _, want := range []string{"GET /api/v1/reports/expenses?", "department_id=3", "date_from=2024-01-01", "approved_only=true"} {
		if !strings.Contains(got, want) {
			t.Errorf("request %q missing %q", got, want)
		}
	}
	if strings.Contains(got, "vendor_id") {
		t.Errorf("unset --vendor should not be sent: %q", got)
	}
}

func TestReportPayrollsQuery(t *testing.T) {
	rs := newRecordingServer(t, map[string]any{"rows": []any{}})

	captureStdout(t, func() {
		err := executeArgs(t, "--url", rs.srv.URL, "report", "payrolls", "--paid", "false", "--include-archived")
		if err != nil {
			t.Errorf("unexpected error: %v", err)
		}
	})

	got := rs.last()
	if !strings.Contains(got, "is_paid=false") || !strings.Contains(got, "include_archived=true") {
		t.Errorf("unexpected request %q", got)
	}
}

func TestArchivePayrollsQuietPrintsMoved(t *testing.T) {
	rs := newRecordingServer(t, map[string]any{
		"cutoff_date": "2024-01-01",
		"moved":       4,
		"started_at":  time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC),
	})

	out := captureStdout(t, func() {
		err := executeArgs(t, "--url", rs.srv.URL, "--format", "quiet", "archive", "payrolls", "--cutoff", "2024-01-01")
		if err != nil {
			t.Errorf("unexpected error: %v", err)
		}
	})

	if out != "4\n" {
		t.Errorf("quiet output = %q, want %q", out, "4\n")
	}
	if got := rs.last(); got != "POST /api/v1/archive/payrolls" {
		t.Errorf("request = %q", got)
	}
}

func TestDepartmentListTable(t *testing.T) {
	rs := newRecordingServer(t, []map[string]any{{"id": 1, "name": "Physics", "code": "PHY"}})

	out := captureStdout(t, func() {
		if err := executeArgs(t, "--url", rs.srv.URL, "--format", "table", "department", "list"); err != nil {
			t.Errorf("unexpected error: %v", err)
		}
	})

	if !strings.Contains(out, "PHY") || !strings.Contains(out, "Physics") {
		t.Errorf("table output missing row:\n%s", out)
	}
}

func TestParseTimeFlag(t *testing.T) {
	got, err := parseTimeFlag("since", "2024-03-05")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !got.Equal(time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("bare date: got %v", got)
	}

	got, err = parseTimeFlag("since", "2024-03-05T10:00:00+02:00")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.UTC().Hour() != 8 {
		t.Errorf("rfc3339: got %v", got)
	}

	if got, err := parseTimeFlag("since", ""); err != nil || got != nil {
		t.Errorf("empty: got %v, %v", got, err)
	}
}
