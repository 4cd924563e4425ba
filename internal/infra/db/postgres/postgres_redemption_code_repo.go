package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"

	"vendor-pricelist-platform/internal/domain"
	"vendor-pricelist-platform/internal/domain/model"
	"vendor-pricelist-platform/internal/domain/ports/repository"
)

// Ensure implementation satisfies the interface.
var _ repository.RedemptionCodeRepository = (*redemptionCodeRepo)(nil)

type redemptionCodeRepo struct {
	pool *pgxpool.Pool
}

func NewRedemptionCodeRepo(pool *pgxpool.Pool) repository.RedemptionCodeRepository {
	return &redemptionCodeRepo{pool: pool}
}

// Save creates a code or updates its redemption state. ON CONFLICT covers
// both minting a new code and marking an existing one used.
func (r *redemptionCodeRepo) Save(ctx context.Context, tx repository.Tx, code *model.RedemptionCode) error {
	const q = `
INSERT INTO redemption_codes (code, duration, status, redeemed_by, used_at, created_at)
VALUES ($1, $2, $3, $4, $5, $6)
ON CONFLICT (code) DO UPDATE SET
  status = EXCLUDED.status,
  redeemed_by = EXCLUDED.redeemed_by,
  used_at = EXCLUDED.used_at;
`
	_, err := execSQL(ctx, r.pool, tx, q,
		code.Code, string(code.Duration), string(code.Status), code.RedeemedBy, code.UsedAt, code.CreatedAt,
	)
	return err
}

// FindByCode looks a code up regardless of status; redemption needs to
// tell "already used" apart from "no such code". FOR UPDATE serializes
// concurrent redemptions of the same code inside a transaction.
func (r *redemptionCodeRepo) FindByCode(ctx context.Context, tx repository.Tx, code string) (*model.RedemptionCode, error) {
	q := `
SELECT code, duration, status, redeemed_by, used_at, created_at
  FROM redemption_codes
 WHERE code = $1`
	if _, isTx := tx.(pgx.Tx); isTx {
		q += " FOR UPDATE"
	}

	row, err := pickRow(ctx, r.pool, tx, q, code)
	if err != nil {
		return nil, err
	}

	var rc model.RedemptionCode
	var duration, status string
	err = row.Scan(&rc.Code, &duration, &status, &rc.RedeemedBy, &rc.UsedAt, &rc.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, domain.ErrReadDatabaseRow
	}
	rc.Duration = model.CodeDuration(duration)
	rc.Status = model.CodeStatus(status)
	return &rc, nil
}

// ListRecent returns the newest codes for the superadmin listing.
func (r *redemptionCodeRepo) ListRecent(ctx context.Context, tx repository.Tx, limit int) ([]*model.RedemptionCode, error) {
	const q = `
SELECT code, duration, status, redeemed_by, used_at, created_at
  FROM redemption_codes
 ORDER BY created_at DESC
 LIMIT $1;
`
	rows, err := pickRows(ctx, r.pool, tx, q, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*model.RedemptionCode
	for rows.Next() {
		var rc model.RedemptionCode
		var duration, status string
		if err := rows.Scan(&rc.Code, &duration, &status, &rc.RedeemedBy, &rc.UsedAt, &rc.CreatedAt); err != nil {
			return nil, domain.ErrReadDatabaseRow
		}
		rc.Duration = model.CodeDuration(duration)
		rc.Status = model.CodeStatus(status)
		out = append(out, &rc)
	}
	return out, rows.Err()
}
