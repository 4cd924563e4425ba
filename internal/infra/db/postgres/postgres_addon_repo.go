package postgres

import (
	"context"

	"github.com/jackc/pgx/v4/pgxpool"

	"vendor-pricelist-platform/internal/domain"
	"vendor-pricelist-platform/internal/domain/model"
	"vendor-pricelist-platform/internal/domain/ports/repository"
)

var _ repository.AddonRepository = (*addonRepo)(nil)

type addonRepo struct {
	pool *pgxpool.Pool
}

func NewAddonRepo(pool *pgxpool.Pool) repository.AddonRepository {
	return &addonRepo{pool: pool}
}

func (r *addonRepo) Create(ctx context.Context, tx repository.Tx, a *model.Addon) error {
	const q = `INSERT INTO addons (id, user_id, name, price) VALUES ($1, $2, $3, $4);`
	_, err := execSQL(ctx, r.pool, tx, q, a.ID, a.UserID, a.Name, a.Price)
	return err
}

func (r *addonRepo) Update(ctx context.Context, tx repository.Tx, a *model.Addon) error {
	const q = `UPDATE addons SET name = $3, price = $4 WHERE id = $1 AND user_id = $2;`
	tag, err := execSQL(ctx, r.pool, tx, q, a.ID, a.UserID, a.Name, a.Price)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *addonRepo) Delete(ctx context.Context, tx repository.Tx, userID, id string) error {
	const q = `DELETE FROM addons WHERE id = $1 AND user_id = $2;`
	tag, err := execSQL(ctx, r.pool, tx, q, id, userID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *addonRepo) ListByUser(ctx context.Context, tx repository.Tx, userID string) ([]*model.Addon, error) {
	const q = `
SELECT id, user_id, name, price
  FROM addons
 WHERE user_id = $1
 ORDER BY name;
`
	rows, err := pickRows(ctx, r.pool, tx, q, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*model.Addon
	for rows.Next() {
		var a model.Addon
		if err := rows.Scan(&a.ID, &a.UserID, &a.Name, &a.Price); err != nil {
			return nil, domain.ErrReadDatabaseRow
		}
		out = append(out, &a)
	}
	return out, rows.Err()
}
