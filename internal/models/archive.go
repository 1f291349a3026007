package models

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// SourcePayrolls is the archive_log source_table for archived payrolls.
const SourcePayrolls = "payrolls"

// paidAtLayout matches the text form of a PostgreSQL TIMESTAMP so the
// archive views can cast payload->>'paid_at' back to the column type.
const paidAtLayout = "2006-01-02T15:04:05"

// ArchivePayload is a typed snapshot stored in archive_log.payload.
// Each implementation belongs to exactly one source table.
type ArchivePayload interface {
	SourceTable() string
}

// PayrollSnapshot is the full prior row of an archived payroll.
type PayrollSnapshot struct {
	ID          int64           `json:"id"`
	EmployeeID  int64           `json:"employee_id"`
	PeriodStart Date            `json:"period_start"`
	PeriodEnd   Date            `json:"period_end"`
	NetAmount   decimal.Decimal `json:"net_amount"`
	PaidAt      *time.Time      `json:"paid_at"`
	IsPaid      bool            `json:"is_paid"`
}

// SourceTable implements ArchivePayload.
func (PayrollSnapshot) SourceTable() string { return SourcePayrolls }

// SnapshotOf captures a live payroll for archiving.
func SnapshotOf(p Payroll) PayrollSnapshot {
	return PayrollSnapshot{
		ID:          p.ID,
		EmployeeID:  p.EmployeeID,
		PeriodStart: p.PeriodStart,
		PeriodEnd:   p.PeriodEnd,
		NetAmount:   p.NetAmount,
		PaidAt:      p.PaidAt,
		IsPaid:      p.IsPaid,
	}
}

type payrollSnapshotJSON struct {
	ID          int64           `json:"id"`
	EmployeeID  int64           `json:"employee_id"`
	PeriodStart Date            `json:"period_start"`
	PeriodEnd   Date            `json:"period_end"`
	NetAmount   decimal.Decimal `json:"net_amount"`
	PaidAt      *string         `json:"paid_at"`
	IsPaid      bool            `json:"is_paid"`
}

// MarshalJSON writes paid_at as a zone-less timestamp.
func (s PayrollSnapshot) MarshalJSON() ([]byte, error) {
	out := payrollSnapshotJSON{
		ID:          s.ID,
		EmployeeID:  s.EmployeeID,
		PeriodStart: s.PeriodStart,
		PeriodEnd:   s.PeriodEnd,
		NetAmount:   s.NetAmount,
		IsPaid:      s.IsPaid,
	}

	if s.PaidAt != nil {
		formatted := s.PaidAt.UTC().Format(paidAtLayout)
		out.PaidAt = &formatted
	}

	return json.Marshal(out)
}

// UnmarshalJSON accepts paid_at either zone-less or as RFC 3339.
func (s *PayrollSnapshot) UnmarshalJSON(data []byte) error {
	var in payrollSnapshotJSON
	if err := json.Unmarshal(data, &in); err != nil {
		return err
	}

	*s = PayrollSnapshot{
		ID:          in.ID,
		EmployeeID:  in.EmployeeID,
		PeriodStart: in.PeriodStart,
		PeriodEnd:   in.PeriodEnd,
		NetAmount:   in.NetAmount,
		IsPaid:      in.IsPaid,
	}

	if in.PaidAt != nil && *in.PaidAt != "" {
		t, err := parsePaidAt(*in.PaidAt)
		if err != nil {
			return err
		}
		s.PaidAt = &t
	}

	return nil
}

func parsePaidAt(s string) (time.Time, error) {
	if t, err := time.Parse(paidAtLayout, s); err == nil {
		return t, nil
	}

	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid paid_at %q: %w", s, err)
	}

	return t.UTC(), nil
}

// DecodeArchivePayload decodes raw JSON into the payload kind registered for
// sourceTable.
func DecodeArchivePayload(sourceTable string, raw []byte) (ArchivePayload, error) {
	switch sourceTable {
	case SourcePayrolls:
		var snap PayrollSnapshot
		if err := json.Unmarshal(raw, &snap); err != nil {
			return nil, fmt.Errorf("decoding %s payload: %w", sourceTable, err)
		}
		return snap, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownArchiveSource, sourceTable)
	}
}

// ArchiveEntry is one row of archive_log.
type ArchiveEntry struct {
	ID          int64          `json:"id"`
	SourceTable string         `json:"source_table"`
	ArchivedAt  time.Time      `json:"archived_at"`
	Payload     ArchivePayload `json:"payload"`
}

// ArchiveResult reports the outcome of one archive run.
type ArchiveResult struct {
	CutoffDate Date      `json:"cutoff_date"`
	Moved      int       `json:"moved"`
	StartedAt  time.Time `json:"started_at"`
}

// ArchiveRequest is the body of an archive trigger.
type ArchiveRequest struct {
	CutoffDate *Date `json:"cutoff_date"`
}

// Validate checks the cutoff date is present.
func (r *ArchiveRequest) Validate() error {
	if r.CutoffDate == nil || r.CutoffDate.IsZero() {
		return ErrFieldRequired("cutoff_date")
	}

	return nil
}

// ArchiveQueryOpts holds filters for browsing archive_log.
type ArchiveQueryOpts struct {
	SourceTable string
	Since       *time.Time
	Until       *time.Time
	Limit       int
	Offset      int
}

// UnmarshalJSON decodes the payload according to source_table.
func (e *ArchiveEntry) UnmarshalJSON(data []byte) error {
	var raw struct {
		ID          int64           `json:"id"`
		SourceTable string          `json:"source_table"`
		ArchivedAt  time.Time       `json:"archived_at"`
		Payload     json.RawMessage `json:"payload"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	payload, err := DecodeArchivePayload(raw.SourceTable, raw.Payload)
	if err != nil {
		return err
	}

	*e = ArchiveEntry{
		ID:          raw.ID,
		SourceTable: raw.SourceTable,
		ArchivedAt:  raw.ArchivedAt,
		Payload:     payload,
	}

	return nil
}
