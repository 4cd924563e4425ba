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

var _ repository.ReceiptRepository = (*receiptRepo)(nil)

// receiptRepo stores payment records. Receipts are insert-only.
type receiptRepo struct {
	pool *pgxpool.Pool
}

func NewReceiptRepo(pool *pgxpool.Pool) repository.ReceiptRepository {
	return &receiptRepo{pool: pool}
}

func (r *receiptRepo) Create(ctx context.Context, tx repository.Tx, rec *model.Receipt) error {
	lines, err := json.Marshal(rec.Lines)
	if err != nil {
		return fmt.Errorf("marshal lines: %w", err)
	}

	const q = `
INSERT INTO receipts (
  id, user_id, deal_id, invoice_id, receipt_no, receipt_date, note,
  payer_name, payer_wa, address, lines, total, created_at
) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13);
`
	_, err = execSQL(ctx, r.pool, tx, q,
		rec.ID, rec.UserID, nullable(rec.DealID), nullable(rec.InvoiceID),
		rec.ReceiptNo, rec.ReceiptDate, rec.Note,
		rec.PayerName, rec.PayerWA, rec.Address, lines, rec.Total, rec.CreatedAt,
	)
	return err
}

func scanReceipt(row pgx.Row) (*model.Receipt, error) {
	var rec model.Receipt
	var dealID, invoiceID *string
	var lines []byte
	err := row.Scan(
		&rec.ID, &rec.UserID, &dealID, &invoiceID,
		&rec.ReceiptNo, &rec.ReceiptDate, &rec.Note,
		&rec.PayerName, &rec.PayerWA, &rec.Address, &lines, &rec.Total, &rec.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, domain.ErrReadDatabaseRow
	}
	if dealID != nil {
		rec.DealID = *dealID
	}
	if invoiceID != nil {
		rec.InvoiceID = *invoiceID
	}
	if err := json.Unmarshal(lines, &rec.Lines); err != nil {
		return nil, domain.ErrReadDatabaseRow
	}
	return &rec, nil
}

const receiptColumns = `
  id, user_id, deal_id, invoice_id, receipt_no, receipt_date, note,
  payer_name, payer_wa, address, lines, total, created_at`

func (r *receiptRepo) ListByUser(ctx context.Context, tx repository.Tx, userID string) ([]*model.Receipt, error) {
	q := `SELECT` + receiptColumns + ` FROM receipts WHERE user_id = $1 ORDER BY created_at DESC;`
	return r.list(ctx, tx, q, userID)
}

func (r *receiptRepo) ListByInvoice(ctx context.Context, tx repository.Tx, invoiceID string) ([]*model.Receipt, error) {
	q := `SELECT` + receiptColumns + ` FROM receipts WHERE invoice_id = $1 ORDER BY created_at DESC;`
	return r.list(ctx, tx, q, invoiceID)
}

func (r *receiptRepo) list(ctx context.Context, tx repository.Tx, q string, arg interface{}) ([]*model.Receipt, error) {
	rows, err := pickRows(ctx, r.pool, tx, q, arg)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*model.Receipt
	for rows.Next() {
		rec, err := scanReceipt(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}
