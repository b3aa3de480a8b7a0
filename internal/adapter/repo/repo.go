// Package repo implements the domain repositories on top of infra.SQLExecutor.
package repo

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"markova/internal/domain"
	"markova/internal/infra"
)

func ensureID(id *string) {
	if *id == "" {
		*id = uuid.NewString()
	}
}

func notFound(err error) error {
	if infra.IsNoRows(err) {
		return domain.ErrNotFound
	}
	return err
}

// execAffecting runs a write and maps "no row touched" to ErrNotFound.
func execAffecting(ctx context.Context, sql infra.SQLExecutor, query string, args ...any) error {
	tag, err := sql.Exec(ctx, query, args...)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func collect[T any](rows pgx.Rows, scan func(pgx.Row) (T, error)) ([]T, error) {
	defer rows.Close()
	out := []T{}
	for rows.Next() {
		item, err := scan(rows)
		if err != nil {
			return nil, fmt.Errorf("scan: %w", err)
		}
		out = append(out, item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
