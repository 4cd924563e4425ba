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

var _ repository.PackageRepository = (*packageRepo)(nil)

type packageRepo struct {
	pool *pgxpool.Pool
}

func NewPackageRepo(pool *pgxpool.Pool) repository.PackageRepository {
	return &packageRepo{pool: pool}
}

func (r *packageRepo) Create(ctx context.Context, tx repository.Tx, p *model.Package) error {
	const q = `
INSERT INTO packages (id, user_id, parent, type_name, details, price)
VALUES ($1, $2, $3, $4, $5, $6);
`
	_, err := execSQL(ctx, r.pool, tx, q, p.ID, p.UserID, p.Parent, p.TypeName, p.Details, p.Price)
	return err
}

func (r *packageRepo) Update(ctx context.Context, tx repository.Tx, p *model.Package) error {
	const q = `
UPDATE packages
   SET parent = $3, type_name = $4, details = $5, price = $6
 WHERE id = $1 AND user_id = $2;
`
	tag, err := execSQL(ctx, r.pool, tx, q, p.ID, p.UserID, p.Parent, p.TypeName, p.Details, p.Price)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *packageRepo) Delete(ctx context.Context, tx repository.Tx, userID, id string) error {
	const q = `DELETE FROM packages WHERE id = $1 AND user_id = $2;`
	tag, err := execSQL(ctx, r.pool, tx, q, id, userID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *packageRepo) ListByUser(ctx context.Context, tx repository.Tx, userID string) ([]*model.Package, error) {
	const q = `
SELECT id, user_id, parent, type_name, details, price
  FROM packages
 WHERE user_id = $1
 ORDER BY parent, type_name;
`
	rows, err := pickRows(ctx, r.pool, tx, q, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*model.Package
	for rows.Next() {
		var p model.Package
		if err := rows.Scan(&p.ID, &p.UserID, &p.Parent, &p.TypeName, &p.Details, &p.Price); err != nil {
			return nil, domain.ErrReadDatabaseRow
		}
		out = append(out, &p)
	}
	return out, rows.Err()
}

func (r *packageRepo) FindByID(ctx context.Context, tx repository.Tx, id string) (*model.Package, error) {
	const q = `
SELECT id, user_id, parent, type_name, details, price
  FROM packages
 WHERE id = $1;
`
	row, err := pickRow(ctx, r.pool, tx, q, id)
	if err != nil {
		return nil, err
	}

	var p model.Package
	if err := row.Scan(&p.ID, &p.UserID, &p.Parent, &p.TypeName, &p.Details, &p.Price); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, domain.ErrReadDatabaseRow
	}
	return &p, nil
}
