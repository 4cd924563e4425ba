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

var _ repository.DiscountRepository = (*discountRepo)(nil)

type discountRepo struct {
	pool *pgxpool.Pool
}

func NewDiscountRepo(pool *pgxpool.Pool) repository.DiscountRepository {
	return &discountRepo{pool: pool}
}

func (r *discountRepo) Upsert(ctx context.Context, tx repository.Tx, d *model.Discount) error {
	const q = `
INSERT INTO discounts (user_id, text, enabled)
VALUES ($1, $2, $3)
ON CONFLICT (user_id) DO UPDATE SET
  text = EXCLUDED.text,
  enabled = EXCLUDED.enabled;
`
	_, err := execSQL(ctx, r.pool, tx, q, d.UserID, d.Text, d.Enabled)
	return err
}

func (r *discountRepo) FindByUser(ctx context.Context, tx repository.Tx, userID string) (*model.Discount, error) {
	const q = `SELECT user_id, text, enabled FROM discounts WHERE user_id = $1;`
	row, err := pickRow(ctx, r.pool, tx, q, userID)
	if err != nil {
		return nil, err
	}

	var d model.Discount
	if err := row.Scan(&d.UserID, &d.Text, &d.Enabled); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, domain.ErrReadDatabaseRow
	}
	return &d, nil
}
