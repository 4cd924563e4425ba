package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"

	"vendor-pricelist-platform/internal/domain"
	"vendor-pricelist-platform/internal/domain/model"
	"vendor-pricelist-platform/internal/domain/ports/repository"
)

var _ repository.AccessWindowRepository = (*accessWindowRepo)(nil)

type accessWindowRepo struct {
	pool *pgxpool.Pool
}

func NewAccessWindowRepo(pool *pgxpool.Pool) repository.AccessWindowRepository {
	return &accessWindowRepo{pool: pool}
}

func (r *accessWindowRepo) Upsert(ctx context.Context, tx repository.Tx, w *model.AccessWindow) error {
	const q = `
INSERT INTO access_windows (user_id, expires_at, last_extended_at)
VALUES ($1, $2, $3)
ON CONFLICT (user_id) DO UPDATE SET
  expires_at = EXCLUDED.expires_at,
  last_extended_at = EXCLUDED.last_extended_at;
`
	_, err := execSQL(ctx, r.pool, tx, q, w.UserID, w.ExpiresAt, w.LastExtendedAt)
	return err
}

func (r *accessWindowRepo) FindByUser(ctx context.Context, tx repository.Tx, userID string) (*model.AccessWindow, error) {
	const q = `
SELECT user_id, expires_at, last_extended_at
  FROM access_windows
 WHERE user_id = $1;
`
	row, err := pickRow(ctx, r.pool, tx, q, userID)
	if err != nil {
		return nil, err
	}

	var w model.AccessWindow
	if err := row.Scan(&w.UserID, &w.ExpiresAt, &w.LastExtendedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, domain.ErrReadDatabaseRow
	}
	return &w, nil
}

func (r *accessWindowRepo) ListAll(ctx context.Context, tx repository.Tx) ([]*model.AccessWindow, error) {
	const q = `
SELECT user_id, expires_at, last_extended_at
  FROM access_windows
 ORDER BY expires_at DESC;
`
	rows, err := pickRows(ctx, r.pool, tx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*model.AccessWindow
	for rows.Next() {
		var w model.AccessWindow
		if err := rows.Scan(&w.UserID, &w.ExpiresAt, &w.LastExtendedAt); err != nil {
			return nil, domain.ErrReadDatabaseRow
		}
		out = append(out, &w)
	}
	return out, rows.Err()
}

func (r *accessWindowRepo) CountByActivity(ctx context.Context, tx repository.Tx, now time.Time) (int, int, error) {
	const q = `
SELECT
  COUNT(*) FILTER (WHERE expires_at > $1),
  COUNT(*) FILTER (WHERE expires_at <= $1)
  FROM access_windows;
`
	row, err := pickRow(ctx, r.pool, tx, q, now)
	if err != nil {
		return 0, 0, err
	}
	var active, inactive int
	if err := row.Scan(&active, &inactive); err != nil {
		return 0, 0, domain.ErrReadDatabaseRow
	}
	return active, inactive, nil
}
