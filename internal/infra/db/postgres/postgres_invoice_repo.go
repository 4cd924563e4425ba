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

var _ repository.InvoiceRepository = (*invoiceRepo)(nil)

// invoiceRepo stores invoices with the term schedule as JSONB. Terms are
// always written and read as a whole document.
type invoiceRepo struct {
	pool *pgxpool.Pool
}

func NewInvoiceRepo(pool *pgxpool.Pool) repository.InvoiceRepository {
	return &invoiceRepo{pool: pool}
}

func (r *invoiceRepo) Save(ctx context.Context, tx repository.Tx, inv *model.Invoice) error {
	terms, err := json.Marshal(inv.Terms)
	if err != nil {
		return fmt.Errorf("marshal terms: %w", err)
	}

	const q = `
INSERT INTO invoices (
  id, user_id, deal_id, client_name, client_wa, address, event_desc,
  invoice_no, invoice_date, due_date, terms, total, created_at, updated_at
) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14)
ON CONFLICT (id) DO UPDATE SET
  client_name = EXCLUDED.client_name,
  client_wa = EXCLUDED.client_wa,
  address = EXCLUDED.address,
  event_desc = EXCLUDED.event_desc,
  invoice_no = EXCLUDED.invoice_no,
  invoice_date = EXCLUDED.invoice_date,
  due_date = EXCLUDED.due_date,
  terms = EXCLUDED.terms,
  total = EXCLUDED.total,
  updated_at = EXCLUDED.updated_at;
`
	_, err = execSQL(ctx, r.pool, tx, q,
		inv.ID, inv.UserID, nullable(inv.DealID), inv.ClientName, inv.ClientWA, inv.Address, inv.EventDesc,
		inv.InvoiceNo, inv.InvoiceDate, inv.DueDate, terms, inv.Total, inv.CreatedAt, inv.UpdatedAt,
	)
	return err
}

// nullable maps an empty string to NULL so optional foreign keys stay clean.
func nullable(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}

func scanInvoice(row pgx.Row) (*model.Invoice, error) {
	var inv model.Invoice
	var dealID *string
	var terms []byte
	err := row.Scan(
		&inv.ID, &inv.UserID, &dealID, &inv.ClientName, &inv.ClientWA, &inv.Address, &inv.EventDesc,
		&inv.InvoiceNo, &inv.InvoiceDate, &inv.DueDate, &terms, &inv.Total, &inv.CreatedAt, &inv.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, domain.ErrReadDatabaseRow
	}
	if dealID != nil {
		inv.DealID = *dealID
	}
	if err := json.Unmarshal(terms, &inv.Terms); err != nil {
		return nil, domain.ErrReadDatabaseRow
	}
	return &inv, nil
}

const invoiceColumns = `
  id, user_id, deal_id, client_name, client_wa, address, event_desc,
  invoice_no, invoice_date, due_date, terms, total, created_at, updated_at`

func (r *invoiceRepo) FindByID(ctx context.Context, tx repository.Tx, id string) (*model.Invoice, error) {
	q := `SELECT` + invoiceColumns + ` FROM invoices WHERE id = $1;`
	row, err := pickRow(ctx, r.pool, tx, q, id)
	if err != nil {
		return nil, err
	}
	return scanInvoice(row)
}

func (r *invoiceRepo) ListByUser(ctx context.Context, tx repository.Tx, userID string) ([]*model.Invoice, error) {
	q := `SELECT` + invoiceColumns + ` FROM invoices WHERE user_id = $1 ORDER BY created_at DESC;`
	rows, err := pickRows(ctx, r.pool, tx, q, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*model.Invoice
	for rows.Next() {
		inv, err := scanInvoice(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, inv)
	}
	return out, rows.Err()
}
