package model

import "time"

// Mou is the memorandum-of-understanding document drafted for a deal.
// Only the document data lives here; rendering is the client's concern.
type Mou struct {
	DealID string `json:"deal_id"`
	UserID string `json:"user_id"`

	MouNo   string `json:"mou_no"`
	MouDate string `json:"mou_date"`

	ClientName string `json:"client_name"`
	ClientWA   string `json:"client_wa,omitempty"`
	Address    string `json:"address,omitempty"`

	PackageName  string `json:"package_name,omitempty"`
	PackagePrice int64  `json:"package_price,omitempty"`
	EventDesc    string `json:"event_desc,omitempty"`

	Clauses []string `json:"clauses"`
	Notes   string   `json:"notes,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// MouDefaults holds a vendor's reusable MOU boilerplate, applied to new
// documents before per-deal editing.
type MouDefaults struct {
	UserID  string   `json:"user_id"`
	Clauses []string `json:"clauses"`
	Notes   string   `json:"notes,omitempty"`

	UpdatedAt time.Time `json:"updated_at"`
}
