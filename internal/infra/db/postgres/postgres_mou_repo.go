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

var _ repository.MouRepository = (*mouRepo)(nil)

type mouRepo struct {
	pool *pgxpool.Pool
}

func NewMouRepo(pool *pgxpool.Pool) repository.MouRepository {
	return &mouRepo{pool: pool}
}

func (r *mouRepo) Save(ctx context.Context, tx repository.Tx, m *model.Mou) error {
	const q = `
INSERT INTO mous (
  deal_id, user_id, mou_no, mou_date, client_name, client_wa, address,
  package_name, package_price, event_desc, clauses, notes, created_at, updated_at
) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14)
ON CONFLICT (deal_id) DO UPDATE SET
  mou_no = EXCLUDED.mou_no,
  mou_date = EXCLUDED.mou_date,
  client_name = EXCLUDED.client_name,
  client_wa = EXCLUDED.client_wa,
  address = EXCLUDED.address,
  package_name = EXCLUDED.package_name,
  package_price = EXCLUDED.package_price,
  event_desc = EXCLUDED.event_desc,
  clauses = EXCLUDED.clauses,
  notes = EXCLUDED.notes,
  updated_at = EXCLUDED.updated_at;
`
	_, err := execSQL(ctx, r.pool, tx, q,
		m.DealID, m.UserID, m.MouNo, m.MouDate, m.ClientName, m.ClientWA, m.Address,
		m.PackageName, m.PackagePrice, m.EventDesc, m.Clauses, m.Notes, m.CreatedAt, m.UpdatedAt,
	)
	return err
}

func (r *mouRepo) FindByDeal(ctx context.Context, tx repository.Tx, dealID string) (*model.Mou, error) {
	const q = `
SELECT deal_id, user_id, mou_no, mou_date, client_name, client_wa, address,
       package_name, package_price, event_desc, clauses, notes, created_at, updated_at
  FROM mous
 WHERE deal_id = $1;
`
	row, err := pickRow(ctx, r.pool, tx, q, dealID)
	if err != nil {
		return nil, err
	}

	var m model.Mou
	err = row.Scan(
		&m.DealID, &m.UserID, &m.MouNo, &m.MouDate, &m.ClientName, &m.ClientWA, &m.Address,
		&m.PackageName, &m.PackagePrice, &m.EventDesc, &m.Clauses, &m.Notes, &m.CreatedAt, &m.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, domain.ErrReadDatabaseRow
	}
	return &m, nil
}

func (r *mouRepo) SaveDefaults(ctx context.Context, tx repository.Tx, d *model.MouDefaults) error {
	const q = `
INSERT INTO mou_defaults (user_id, clauses, notes, updated_at)
VALUES ($1, $2, $3, $4)
ON CONFLICT (user_id) DO UPDATE SET
  clauses = EXCLUDED.clauses,
  notes = EXCLUDED.notes,
  updated_at = EXCLUDED.updated_at;
`
	_, err := execSQL(ctx, r.pool, tx, q, d.UserID, d.Clauses, d.Notes, d.UpdatedAt)
	return err
}

func (r *mouRepo) FindDefaults(ctx context.Context, tx repository.Tx, userID string) (*model.MouDefaults, error) {
	const q = `SELECT user_id, clauses, notes, updated_at FROM mou_defaults WHERE user_id = $1;`
	row, err := pickRow(ctx, r.pool, tx, q, userID)
	if err != nil {
		return nil, err
	}

	var d model.MouDefaults
	if err := row.Scan(&d.UserID, &d.Clauses, &d.Notes, &d.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, domain.ErrReadDatabaseRow
	}
	return &d, nil
}
