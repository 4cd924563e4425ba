package repository

import (
	"context"

	"vendor-pricelist-platform/internal/domain/model"
)

// DealRepository stores client booking requests.
type DealRepository interface {
	Create(ctx context.Context, tx Tx, d *model.Deal) error
	FindByID(ctx context.Context, tx Tx, id string) (*model.Deal, error)
	// ListByUser returns a vendor's deals, newest first.
	ListByUser(ctx context.Context, tx Tx, userID string) ([]*model.Deal, error)
}

// InvoiceRepository stores invoices and their term schedules.
type InvoiceRepository interface {
	// Save upserts the whole invoice document, terms included.
	Save(ctx context.Context, tx Tx, inv *model.Invoice) error
	FindByID(ctx context.Context, tx Tx, id string) (*model.Invoice, error)
	// ListByUser returns a vendor's invoices, newest first.
	ListByUser(ctx context.Context, tx Tx, userID string) ([]*model.Invoice, error)
}

// ReceiptRepository stores immutable payment records.
type ReceiptRepository interface {
	Create(ctx context.Context, tx Tx, r *model.Receipt) error
	ListByUser(ctx context.Context, tx Tx, userID string) ([]*model.Receipt, error)
	ListByInvoice(ctx context.Context, tx Tx, invoiceID string) ([]*model.Receipt, error)
}

// MouRepository stores MOU documents and per-vendor defaults.
type MouRepository interface {
	Save(ctx context.Context, tx Tx, m *model.Mou) error
	FindByDeal(ctx context.Context, tx Tx, dealID string) (*model.Mou, error)
	SaveDefaults(ctx context.Context, tx Tx, d *model.MouDefaults) error
	FindDefaults(ctx context.Context, tx Tx, userID string) (*model.MouDefaults, error)
}
