package store

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/vsuet/accounting/internal/models"
)

// ArchiveStore moves expired payrolls into archive_log and browses the log.
type ArchiveStore struct {
	Base
}

// NewArchiveStore creates a new ArchiveStore.
func NewArchiveStore(base Base) *ArchiveStore {
	return &ArchiveStore{Base: base}
}

// ArchivePayrolls moves every live payroll whose period_end is strictly
// before cutoff into archive_log and deletes it from payrolls. It returns the
// number of rows moved.
//
// Selection, snapshot insert and delete run in one SERIALIZABLE transaction
// with the selected rows locked FOR UPDATE. A concurrent run over the same
// rows fails with ErrArchiveConflict and moves nothing. Any other failure
// rolls everything back.
func (s *ArchiveStore) ArchivePayrolls(ctx context.Context, cutoff models.Date) (int, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	tx, err := s.Pool.BeginTx(ctx, pgx.TxOptions{IsoLevel: pgx.Serializable})
	if err != nil {
		return 0, fmt.Errorf("beginning archive transaction: %w", classifyError(err))
	}
	defer tx.Rollback(ctx) //nolint:errcheck // best-effort rollback after commit.

	payrolls, err := selectExpiredPayrolls(ctx, tx, cutoff)
	if err != nil {
		return 0, err
	}

	if len(payrolls) == 0 {
		return 0, nil
	}

	batch := &pgx.Batch{}
	ids := make([]int64, 0, len(payrolls))

	for _, p := range payrolls {
		payload, err := json.Marshal(models.SnapshotOf(p))
		if err != nil {
			return 0, fmt.Errorf("marshaling payroll %d snapshot: %w", p.ID, err)
		}

		batch.Queue("INSERT INTO archive_log (source_table, payload) VALUES ($1, $2)", models.SourcePayrolls, payload)
		ids = append(ids, p.ID)
	}

	if err := tx.SendBatch(ctx, batch).Close(); err != nil {
		return 0, fmt.Errorf("inserting archive entries: %w", classifyError(err))
	}

	tag, err := tx.Exec(ctx, "DELETE FROM payrolls WHERE id = ANY($1)", ids)
	if err != nil {
		return 0, fmt.Errorf("deleting archived payrolls: %w", classifyError(err))
	}

	if int(tag.RowsAffected()) != len(ids) {
		return 0, fmt.Errorf("deleting archived payrolls: removed %d rows, expected %d", tag.RowsAffected(), len(ids))
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, fmt.Errorf("committing archive: %w", classifyError(err))
	}

	return len(ids), nil
}

func selectExpiredPayrolls(ctx context.Context, tx pgx.Tx, cutoff models.Date) ([]models.Payroll, error) {
	rows, err := tx.Query(ctx,
		"SELECT "+payrollColumns+" FROM payrolls WHERE period_end < $1 ORDER BY id FOR UPDATE",
		cutoff.Time())
	if err != nil {
		return nil, fmt.Errorf("selecting expired payrolls: %w", classifyError(err))
	}
	defer rows.Close()

	var payrolls []models.Payroll

	for rows.Next() {
		p, err := scanPayroll(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("scanning expired payroll: %w", err)
		}

		payrolls = append(payrolls, *p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating expired payrolls: %w", classifyError(err))
	}

	return payrolls, nil
}

// ListEntries returns archive_log entries newest first with decoded
// payloads. Returns entries, hasMore flag, and any error.
func (s *ArchiveStore) ListEntries(ctx context.Context, opts models.ArchiveQueryOpts) ([]models.ArchiveEntry, bool, error) {
	limit := clampLimit(opts.Limit)
	w := buildArchiveFilter(opts)

	query := fmt.Sprintf(
		"SELECT id, source_table, archived_at, payload FROM archive_log %s ORDER BY archived_at DESC, id DESC LIMIT $%d OFFSET $%d",
		w.clause(), w.nextArg(), w.nextArg()+1,
	)
	args := append(w.args, limit+1, max(opts.Offset, 0))

	entries, err := listRows(ctx, &s.Base, "archive entries", query, scanArchiveEntry, args...)
	if err != nil {
		return nil, false, err
	}

	hasMore := len(entries) > limit
	if hasMore {
		entries = entries[:limit]
	}

	return entries, hasMore, nil
}

// CountEntries returns the number of archive_log rows for sourceTable.
func (s *ArchiveStore) CountEntries(ctx context.Context, sourceTable string) (int64, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	var n int64

	err := s.Pool.QueryRow(ctx, "SELECT count(*) FROM archive_log WHERE source_table = $1", sourceTable).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("counting archive entries: %w", classifyError(err))
	}

	return n, nil
}

func scanArchiveEntry(scan func(dest ...any) error) (*models.ArchiveEntry, error) {
	var e models.ArchiveEntry
	var archivedAt time.Time
	var raw []byte

	if err := scan(&e.ID, &e.SourceTable, &archivedAt, &raw); err != nil {
		return nil, err
	}

	payload, err := models.DecodeArchivePayload(e.SourceTable, raw)
	if err != nil {
		return nil, fmt.Errorf("archive entry %d: %w", e.ID, err)
	}

	e.ArchivedAt = archivedAt
	e.Payload = payload

	return &e, nil
}
