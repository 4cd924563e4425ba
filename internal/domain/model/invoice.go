package model

import (
	"time"

	"vendor-pricelist-platform/internal/domain"
)

// Term is one scheduled installment of an invoice. Terms carry a stable id
// assigned at creation so receipt lines can reference an installment even
// after the list is reordered or trimmed.
type Term struct {
	ID         string `json:"id"`
	Label      string `json:"label"`
	DueDate    string `json:"due_date,omitempty"`
	Amount     int64  `json:"amount"`
	PaidAmount int64  `json:"paid_amount"`
}

// Outstanding is how much of this installment is still unpaid, floored
// at zero so overpayment never produces a negative balance.
func (t Term) Outstanding() int64 {
	if rest := t.Amount - t.PaidAmount; rest > 0 {
		return rest
	}
	return 0
}

// Invoice is the payment schedule agreed for a deal (or entered manually
// for ad-hoc work). Deal-linked invoices are keyed by the deal id; ad-hoc
// invoices get a generated id.
type Invoice struct {
	ID         string `json:"id"`
	UserID     string `json:"user_id"`
	DealID     string `json:"deal_id,omitempty"`
	ClientName string `json:"client_name,omitempty"`
	ClientWA   string `json:"client_wa,omitempty"`
	Address    string `json:"address,omitempty"`
	EventDesc  string `json:"event_desc,omitempty"`

	InvoiceNo   string `json:"invoice_no"`
	InvoiceDate string `json:"invoice_date"`
	DueDate     string `json:"due_date,omitempty"`

	Terms []Term `json:"terms"`
	Total int64  `json:"total"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// SumTerms is the agreed installment total.
func (inv *Invoice) SumTerms() int64 {
	var s int64
	for _, t := range inv.Terms {
		s += t.Amount
	}
	return s
}

// SumPaid is the amount already received across all installments.
func (inv *Invoice) SumPaid() int64 {
	var s int64
	for _, t := range inv.Terms {
		s += t.PaidAmount
	}
	return s
}

// Diff is total minus the installment sum. A non-zero diff is surfaced to
// the operator but never blocks saving.
func (inv *Invoice) Diff() int64 {
	return inv.Total - inv.SumTerms()
}

// DefaultTerms builds the standard two-installment split for a total:
// the first half rounded half-up, the remainder in the second term.
// The generated terms always sum to the total exactly.
func DefaultTerms(total int64, newID func() string) []Term {
	first := domain.RoundHalfUpHalf(total)
	second := total - first
	if second < 0 {
		second = 0
	}
	return []Term{
		{ID: newID(), Label: "Term 1", Amount: first},
		{ID: newID(), Label: "Term 2", Amount: second},
	}
}

// TermByID returns a pointer into Terms for in-place mutation, nil when
// the id is unknown.
func (inv *Invoice) TermByID(id string) *Term {
	for i := range inv.Terms {
		if inv.Terms[i].ID == id {
			return &inv.Terms[i]
		}
	}
	return nil
}

// ApplyPayment increments the matched term's paid amount. Negative deltas
// contribute nothing: a recorded payment never decreases what was paid.
func (inv *Invoice) ApplyPayment(termID string, delta int64) bool {
	t := inv.TermByID(termID)
	if t == nil {
		return false
	}
	if delta > 0 {
		t.PaidAmount += delta
	}
	if t.PaidAmount < 0 {
		t.PaidAmount = 0
	}
	return true
}
