package store

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/vsuet/accounting/internal/models"
)

// AuditStore provides data access for the ledger_audit_log table.
type AuditStore struct {
	Base
}

// NewAuditStore creates an AuditStore.
func NewAuditStore(base Base) *AuditStore {
	return &AuditStore{Base: base}
}

// RecordAudit inserts an audit log entry.
func (s *AuditStore) RecordAudit(
	ctx context.Context,
	action, entityType, entityID string,
	detail map[string]any,
) error {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	var detailJSON []byte
	if detail != nil {
		var err error

		detailJSON, err = json.Marshal(detail)
		if err != nil {
			return fmt.Errorf("marshaling audit detail: %w", err)
		}
	}

	_, err := s.Pool.Exec(ctx, `
		INSERT INTO ledger_audit_log (action, entity_type, entity_id, detail)
		VALUES ($1, $2, $3, $4)`,
		action, entityType, entityID, detailJSON,
	)
	if err != nil {
		return fmt.Errorf("inserting audit entry: %w", classifyError(err))
	}

	return nil
}

// QueryAudit returns audit entries matching the given filters, newest first.
// Returns entries, hasMore flag, and any error.
func (s *AuditStore) QueryAudit(ctx context.Context, opts models.AuditQueryOpts) ([]models.AuditEntry, bool, error) {
	limit := clampLimit(opts.Limit)
	w := buildAuditFilter(opts)

	query := fmt.Sprintf(
		"SELECT id, action, entity_type, entity_id, detail, created_at FROM ledger_audit_log %s ORDER BY created_at DESC, id DESC LIMIT $%d OFFSET $%d",
		w.clause(), w.nextArg(), w.nextArg()+1,
	)
	args := append(w.args, limit+1, max(opts.Offset, 0))

	entries, err := listRows(ctx, &s.Base, "audit log", query, auditScanner(s.Log), args...)
	if err != nil {
		return nil, false, err
	}

	hasMore := len(entries) > limit
	if hasMore {
		entries = entries[:limit]
	}

	return entries, hasMore, nil
}

// auditScanner scans audit entries. A malformed detail document is logged
// and dropped rather than failing the whole page.
func auditScanner(log *logrus.Logger) scanFunc[models.AuditEntry] {
	return func(scan func(dest ...any) error) (*models.AuditEntry, error) {
		var e models.AuditEntry
		var detailJSON []byte

		if err := scan(&e.ID, &e.Action, &e.EntityType, &e.EntityID, &detailJSON, &e.CreatedAt); err != nil {
			return nil, err
		}

		if detailJSON != nil {
			if err := json.Unmarshal(detailJSON, &e.Detail); err != nil {
				log.WithError(err).Warn("failed to unmarshal audit detail")
			}
		}

		return &e, nil
	}
}

// purgeBatchSize limits the number of rows deleted per transaction to avoid
// holding long locks on ledger_audit_log.
const purgeBatchSize = 5000

// PurgeOldEntries deletes audit entries older than retentionDays in batches.
// Returns the number of deleted entries.
func (s *AuditStore) PurgeOldEntries(ctx context.Context, retentionDays int) (int, error) {
	var totalDeleted int

	for {
		batchCtx, cancel := withTimeout(ctx)

		deleted, err := s.purgeOldEntriesBatch(batchCtx, retentionDays)
		cancel()

		if err != nil {
			return totalDeleted, err
		}

		totalDeleted += deleted
		if deleted < purgeBatchSize {
			break
		}
	}

	return totalDeleted, nil
}

// purgeOldEntriesBatch deletes a single batch of expired audit entries.
func (s *AuditStore) purgeOldEntriesBatch(ctx context.Context, retentionDays int) (int, error) {
	tx, err := s.beginTx(ctx)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback(ctx) //nolint:errcheck // best-effort rollback on early return.

	tag, err := tx.Exec(ctx,
		`DELETE FROM ledger_audit_log WHERE ctid IN (
			SELECT ctid FROM ledger_audit_log
			WHERE created_at < NOW() - make_interval(days => $1)
			LIMIT $2
		)`,
		retentionDays, purgeBatchSize,
	)
	if err != nil {
		return 0, fmt.Errorf("purging audit entries: %w", classifyError(err))
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, fmt.Errorf("committing audit purge: %w", classifyError(err))
	}

	return int(tag.RowsAffected()), nil
}
