package model

import "time"

// ReceiptLine records money received against one installment. TermID
// references the invoice term's stable id; a line with an empty TermID is
// a free-form payment not tied to any installment.
type ReceiptLine struct {
	TermID string `json:"term_id,omitempty"`
	Label  string `json:"label"`
	Amount int64  `json:"amount"`
}

// Receipt is an immutable record of a payment event. Saving a receipt
// also folds each line back into the matched invoice term's paid amount.
type Receipt struct {
	ID        string `json:"id"`
	UserID    string `json:"user_id"`
	DealID    string `json:"deal_id,omitempty"`
	InvoiceID string `json:"invoice_id,omitempty"`

	ReceiptNo   string `json:"receipt_no"`
	ReceiptDate string `json:"receipt_date"`
	Note        string `json:"note,omitempty"`

	PayerName string `json:"payer_name,omitempty"`
	PayerWA   string `json:"payer_wa,omitempty"`
	Address   string `json:"address,omitempty"`

	Lines []ReceiptLine `json:"lines"`
	Total int64         `json:"total"`

	CreatedAt time.Time `json:"created_at"`
}

// PayNowDefaults proposes one payment line per invoice term, prefilled
// with the term's outstanding balance.
func PayNowDefaults(inv *Invoice) []ReceiptLine {
	lines := make([]ReceiptLine, 0, len(inv.Terms))
	for _, t := range inv.Terms {
		lines = append(lines, ReceiptLine{
			TermID: t.ID,
			Label:  t.Label,
			Amount: t.Outstanding(),
		})
	}
	return lines
}

// NonZeroLines drops empty and negative pay-now entries; only these are
// persisted on the receipt and applied to the invoice.
func NonZeroLines(lines []ReceiptLine) []ReceiptLine {
	kept := make([]ReceiptLine, 0, len(lines))
	for _, l := range lines {
		if l.Amount > 0 {
			kept = append(kept, l)
		}
	}
	return kept
}

// SumLines totals the receipt's line amounts.
func SumLines(lines []ReceiptLine) int64 {
	var s int64
	for _, l := range lines {
		s += l.Amount
	}
	return s
}
