package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v4"
	"github.com/oklog/ulid/v2"

	"vendor-pricelist-platform/internal/domain"
	"vendor-pricelist-platform/internal/domain/model"
	"vendor-pricelist-platform/internal/domain/ports/repository"
	"vendor-pricelist-platform/internal/infra/metrics"
)

// InvoiceUseCase manages invoices, their term schedules and payment
// receipts. Deal-linked invoices are keyed by the deal id so the draft
// built for a deal and the saved document are the same row.
type InvoiceUseCase struct {
	invoices repository.InvoiceRepository
	receipts repository.ReceiptRepository
	deals    repository.DealRepository
	windows  repository.AccessWindowRepository
	txm      repository.TransactionManager
	now      func() time.Time
	newID    func() string
}

func NewInvoiceUseCase(
	invoices repository.InvoiceRepository,
	receipts repository.ReceiptRepository,
	deals repository.DealRepository,
	windows repository.AccessWindowRepository,
	txm repository.TransactionManager,
) *InvoiceUseCase {
	return &InvoiceUseCase{
		invoices: invoices,
		receipts: receipts,
		deals:    deals,
		windows:  windows,
		txm:      txm,
		now:      time.Now,
		newID:    func() string { return ulid.Make().String() },
	}
}

func (uc *InvoiceUseCase) requireActive(ctx context.Context, userID string) error {
	if userID == "" {
		return domain.ErrUnauthenticated
	}
	w, err := uc.windows.FindByUser(ctx, nil, userID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrAccountInactive
		}
		return err
	}
	if !w.ActiveAt(uc.now()) {
		return domain.ErrAccountInactive
	}
	return nil
}

// defaultInvoiceNo numbers documents per vendor per month: the sequence
// restarts every month and counts the vendor's existing invoices.
func (uc *InvoiceUseCase) defaultInvoiceNo(ctx context.Context, userID string, at time.Time) (string, error) {
	prefix := fmt.Sprintf("INV-%04d/%02d/", at.Year(), at.Month())
	existing, err := uc.invoices.ListByUser(ctx, nil, userID)
	if err != nil {
		return "", err
	}
	seq := 1
	for _, inv := range existing {
		if strings.HasPrefix(inv.InvoiceNo, prefix) {
			seq++
		}
	}
	return fmt.Sprintf("%s%03d", prefix, seq), nil
}

// GetOrDraft returns the invoice stored for a deal, or a fresh unsaved
// draft prefilled from the deal with the default two-term split.
func (uc *InvoiceUseCase) GetOrDraft(ctx context.Context, userID, dealID string) (*model.Invoice, error) {
	if userID == "" {
		return nil, domain.ErrUnauthenticated
	}
	deal, err := uc.deals.FindByID(ctx, nil, dealID)
	if err != nil {
		return nil, err
	}
	if deal.UserID != userID {
		return nil, domain.ErrNotFound
	}

	inv, err := uc.invoices.FindByID(ctx, nil, dealID)
	if err == nil {
		return inv, nil
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}

	now := uc.now()
	no, err := uc.defaultInvoiceNo(ctx, userID, now)
	if err != nil {
		return nil, err
	}
	return &model.Invoice{
		ID:          dealID,
		UserID:      userID,
		DealID:      dealID,
		ClientName:  deal.ClientName,
		ClientWA:    deal.ClientWA,
		Address:     deal.Address,
		EventDesc:   deal.EventLine(),
		InvoiceNo:   no,
		InvoiceDate: now.Format("2006-01-02"),
		Terms:       model.DefaultTerms(deal.Total, uc.newID),
		Total:       deal.Total,
	}, nil
}

// Save upserts an invoice. Ad-hoc invoices (no deal) get a generated id;
// terms missing an id get one so receipts can reference them later.
// A term sum that disagrees with the total is allowed; the Diff is the
// operator's to resolve.
func (uc *InvoiceUseCase) Save(ctx context.Context, userID string, inv *model.Invoice) (*model.Invoice, error) {
	if err := uc.requireActive(ctx, userID); err != nil {
		return nil, err
	}
	if inv.Total < 0 {
		return nil, invalid("total tidak boleh negatif")
	}
	for i := range inv.Terms {
		if inv.Terms[i].Amount < 0 {
			return nil, invalid("nominal termin tidak boleh negatif")
		}
		if inv.Terms[i].ID == "" {
			inv.Terms[i].ID = uc.newID()
		}
	}

	inv.UserID = userID
	if inv.ID == "" {
		if inv.DealID != "" {
			inv.ID = inv.DealID
		} else {
			inv.ID = uc.newID()
		}
	}
	now := uc.now()
	if inv.InvoiceDate == "" {
		inv.InvoiceDate = now.Format("2006-01-02")
	}
	if inv.InvoiceNo == "" {
		no, err := uc.defaultInvoiceNo(ctx, userID, now)
		if err != nil {
			return nil, err
		}
		inv.InvoiceNo = no
	}
	if inv.CreatedAt.IsZero() {
		inv.CreatedAt = now
	}
	inv.UpdatedAt = now

	if err := uc.invoices.Save(ctx, nil, inv); err != nil {
		return nil, err
	}
	metrics.IncDocument("invoice")
	return inv, nil
}

// Get fetches one invoice scoped to its owner.
func (uc *InvoiceUseCase) Get(ctx context.Context, userID, invoiceID string) (*model.Invoice, error) {
	if userID == "" {
		return nil, domain.ErrUnauthenticated
	}
	inv, err := uc.invoices.FindByID(ctx, nil, invoiceID)
	if err != nil {
		return nil, err
	}
	if inv.UserID != userID {
		return nil, domain.ErrNotFound
	}
	return inv, nil
}

// List returns the vendor's invoices, newest first.
func (uc *InvoiceUseCase) List(ctx context.Context, userID string) ([]*model.Invoice, error) {
	if userID == "" {
		return nil, domain.ErrUnauthenticated
	}
	return uc.invoices.ListByUser(ctx, nil, userID)
}

// ProposeLines prefills payment lines for an invoice: one line per term,
// carrying the term's outstanding balance.
func (uc *InvoiceUseCase) ProposeLines(ctx context.Context, userID, invoiceID string) ([]model.ReceiptLine, error) {
	inv, err := uc.Get(ctx, userID, invoiceID)
	if err != nil {
		return nil, err
	}
	return model.PayNowDefaults(inv), nil
}

// ReceiptInput is the pay-now form; zero and negative lines are dropped
// before recording.
type ReceiptInput struct {
	InvoiceID   string
	ReceiptNo   string
	ReceiptDate string
	Note        string
	Lines       []model.ReceiptLine
}

// RecordReceipt stores the receipt and folds each line into the matched
// invoice term inside one transaction, so the receipt and the updated
// paid amounts never diverge. Lines naming an unknown term id are kept
// on the receipt but move no term balance.
func (uc *InvoiceUseCase) RecordReceipt(ctx context.Context, userID string, in ReceiptInput) (*model.Receipt, error) {
	if err := uc.requireActive(ctx, userID); err != nil {
		return nil, err
	}
	lines := model.NonZeroLines(in.Lines)
	if len(lines) == 0 {
		return nil, invalid("tidak ada nominal pembayaran")
	}

	var rec *model.Receipt
	err := uc.txm.WithTx(ctx, pgx.TxOptions{}, func(ctx context.Context, tx repository.Tx) error {
		inv, err := uc.invoices.FindByID(ctx, tx, in.InvoiceID)
		if err != nil {
			return err
		}
		if inv.UserID != userID {
			return domain.ErrNotFound
		}

		for _, l := range lines {
			if l.TermID != "" {
				inv.ApplyPayment(l.TermID, l.Amount)
			}
		}
		inv.UpdatedAt = uc.now()

		now := uc.now()
		rec = &model.Receipt{
			ID:          uc.newID(),
			UserID:      userID,
			DealID:      inv.DealID,
			InvoiceID:   inv.ID,
			ReceiptNo:   in.ReceiptNo,
			ReceiptDate: in.ReceiptDate,
			Note:        in.Note,
			PayerName:   inv.ClientName,
			PayerWA:     inv.ClientWA,
			Address:     inv.Address,
			Lines:       lines,
			Total:       model.SumLines(lines),
			CreatedAt:   now,
		}
		if rec.ReceiptDate == "" {
			rec.ReceiptDate = now.Format("2006-01-02")
		}
		if rec.ReceiptNo == "" {
			rec.ReceiptNo = fmt.Sprintf("RCP-%04d/%02d/%s", now.Year(), now.Month(), rec.ID[len(rec.ID)-4:])
		}

		if err := uc.receipts.Create(ctx, tx, rec); err != nil {
			return err
		}
		return uc.invoices.Save(ctx, tx, inv)
	})
	if err != nil {
		return nil, err
	}
	metrics.IncDocument("receipt")
	return rec, nil
}

// Receipts lists a vendor's receipts, or just one invoice's when
// invoiceID is set.
func (uc *InvoiceUseCase) Receipts(ctx context.Context, userID, invoiceID string) ([]*model.Receipt, error) {
	if userID == "" {
		return nil, domain.ErrUnauthenticated
	}
	if invoiceID == "" {
		return uc.receipts.ListByUser(ctx, nil, userID)
	}
	if _, err := uc.Get(ctx, userID, invoiceID); err != nil {
		return nil, err
	}
	return uc.receipts.ListByInvoice(ctx, nil, invoiceID)
}
