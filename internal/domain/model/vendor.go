package model

import "time"

// VendorProfile is the vendor's business card: identity shown on the
// public pricelist plus the banking details printed on documents.
// Keyed by the owning user's id; created lazily on first save.
type VendorProfile struct {
	UserID            string `json:"user_id"`
	Name              string `json:"name"`
	Address           string `json:"address"`
	WhatsApp          string `json:"whatsapp"`
	Email             string `json:"email"`
	NPWP              string `json:"npwp"`
	BankName          string `json:"bank_name"`
	BankAccountNumber string `json:"bank_account_number"`
	BankAccountHolder string `json:"bank_account_holder"`

	UpdatedAt time.Time `json:"updated_at"`
}

// Public returns the profile with banking and tax details stripped,
// safe to expose on the public pricelist page.
func (v VendorProfile) Public() VendorProfile {
	v.NPWP = ""
	v.BankName = ""
	v.BankAccountNumber = ""
	v.BankAccountHolder = ""
	return v
}

// Discount is a per-vendor promo banner: free text plus an enabled flag.
type Discount struct {
	UserID  string `json:"user_id"`
	Text    string `json:"text"`
	Enabled bool   `json:"enabled"`
}
