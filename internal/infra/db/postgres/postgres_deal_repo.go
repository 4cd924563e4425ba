package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"

	"vendor-pricelist-platform/internal/domain"
	"vendor-pricelist-platform/internal/domain/model"
	"vendor-pricelist-platform/internal/domain/ports/repository"
)

var _ repository.DealRepository = (*dealRepo)(nil)

// dealRepo stores booking requests. The per-event schedule and the addon
// snapshots live in JSONB; the queried columns are plain.
type dealRepo struct {
	pool *pgxpool.Pool
}

func NewDealRepo(pool *pgxpool.Pool) repository.DealRepository {
	return &dealRepo{pool: pool}
}

// dealSchedule is the JSONB envelope around the active event schedule.
type dealSchedule struct {
	Wedding    *model.WeddingSchedule    `json:"wedding,omitempty"`
	Lamaran    *model.LamaranSchedule    `json:"lamaran,omitempty"`
	Prewedding *model.PreweddingSchedule `json:"prewedding,omitempty"`
}

func (r *dealRepo) Create(ctx context.Context, tx repository.Tx, d *model.Deal) error {
	addons, err := json.Marshal(d.Addons)
	if err != nil {
		return fmt.Errorf("marshal addons: %w", err)
	}
	schedule, err := json.Marshal(dealSchedule{
		Wedding: d.Wedding, Lamaran: d.Lamaran, Prewedding: d.Prewedding,
	})
	if err != nil {
		return fmt.Errorf("marshal schedule: %w", err)
	}

	const q = `
INSERT INTO deals (
  id, user_id, client_name, client_wa, address,
  groom_name, bride_name, groom_ig, bride_ig,
  parent, package_id, package_type, package_price, addons, total,
  event_type, schedule, created_at
) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17,$18);
`
	_, err = execSQL(ctx, r.pool, tx, q,
		d.ID, d.UserID, d.ClientName, d.ClientWA, d.Address,
		d.GroomName, d.BrideName, d.GroomIG, d.BrideIG,
		d.Parent, d.PackageID, d.PackageType, d.PackagePrice, addons, d.Total,
		string(d.EventType), schedule, d.CreatedAt,
	)
	return err
}

func scanDeal(row pgx.Row) (*model.Deal, error) {
	var d model.Deal
	var eventType string
	var addons, schedule []byte
	err := row.Scan(
		&d.ID, &d.UserID, &d.ClientName, &d.ClientWA, &d.Address,
		&d.GroomName, &d.BrideName, &d.GroomIG, &d.BrideIG,
		&d.Parent, &d.PackageID, &d.PackageType, &d.PackagePrice, &addons, &d.Total,
		&eventType, &schedule, &d.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, domain.ErrReadDatabaseRow
	}
	d.EventType = model.EventType(eventType)
	if err := json.Unmarshal(addons, &d.Addons); err != nil {
		return nil, domain.ErrReadDatabaseRow
	}
	var sched dealSchedule
	if err := json.Unmarshal(schedule, &sched); err != nil {
		return nil, domain.ErrReadDatabaseRow
	}
	d.Wedding, d.Lamaran, d.Prewedding = sched.Wedding, sched.Lamaran, sched.Prewedding
	return &d, nil
}

const dealColumns = `
  id, user_id, client_name, client_wa, address,
  groom_name, bride_name, groom_ig, bride_ig,
  parent, package_id, package_type, package_price, addons, total,
  event_type, schedule, created_at`

func (r *dealRepo) FindByID(ctx context.Context, tx repository.Tx, id string) (*model.Deal, error) {
	q := `SELECT` + dealColumns + ` FROM deals WHERE id = $1;`
	row, err := pickRow(ctx, r.pool, tx, q, id)
	if err != nil {
		return nil, err
	}
	return scanDeal(row)
}

func (r *dealRepo) ListByUser(ctx context.Context, tx repository.Tx, userID string) ([]*model.Deal, error) {
	q := `SELECT` + dealColumns + ` FROM deals WHERE user_id = $1 ORDER BY created_at DESC;`
	rows, err := pickRows(ctx, r.pool, tx, q, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*model.Deal
	for rows.Next() {
		d, err := scanDeal(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, rows.Err()
}
