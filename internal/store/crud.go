package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
)

// scanFunc decodes one row through the supplied Scan function.
type scanFunc[T any] func(scan func(dest ...any) error) (*T, error)

// listRows runs a read-only query and scans every row.
func listRows[T any](ctx context.Context, b *Base, what, query string, scan scanFunc[T], args ...any) ([]T, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	tx, err := b.beginReadTx(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing %s: %w", what, err)
	}
	defer tx.Rollback(ctx) //nolint:errcheck // read-only, nothing to commit.

	rows, err := tx.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying %s: %w", what, classifyError(err))
	}
	defer rows.Close()

	out := make([]T, 0)

	for rows.Next() {
		item, err := scan(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("scanning %s: %w", what, err)
		}

		out = append(out, *item)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating %s: %w", what, classifyError(err))
	}

	return out, nil
}

// getRow fetches a single row, returning notFound when it does not exist.
func getRow[T any](ctx context.Context, b *Base, notFound error, query string, scan scanFunc[T], args ...any) (*T, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	item, err := scan(b.Pool.QueryRow(ctx, query, args...).Scan)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, notFound
		}

		return nil, fmt.Errorf("fetching row: %w", classifyError(err))
	}

	return item, nil
}

// writeRow runs an INSERT or UPDATE ... RETURNING inside its own transaction.
// An UPDATE that matches nothing yields notFound.
func writeRow[T any](ctx context.Context, b *Base, op string, notFound error, query string, scan scanFunc[T], args ...any) (*T, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	tx, err := b.beginTx(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer tx.Rollback(ctx) //nolint:errcheck // best-effort rollback after commit.

	item, err := scan(tx.QueryRow(ctx, query, args...).Scan)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, notFound
		}

		return nil, fmt.Errorf("%s: %w", op, classifyError(err))
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("committing %s: %w", op, classifyError(err))
	}

	return item, nil
}

// deleteRow removes a row by id from table. Cascades are enforced by the
// schema's foreign keys.
func deleteRow(ctx context.Context, b *Base, table string, notFound error, id int64) error {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	tx, err := b.beginTx(ctx)
	if err != nil {
		return fmt.Errorf("deleting from %s: %w", table, err)
	}
	defer tx.Rollback(ctx) //nolint:errcheck // best-effort rollback after commit.

	tag, err := tx.Exec(ctx, "DELETE FROM "+table+" WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("executing %s delete: %w", table, classifyError(err))
	}

	if tag.RowsAffected() == 0 {
		return notFound
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("committing %s delete: %w", table, classifyError(err))
	}

	return nil
}
