package model

import (
	"fmt"
	"strings"
	"time"

	"vendor-pricelist-platform/internal/domain"
)

type EventType string

const (
	EventWedding    EventType = "wedding"
	EventLamaran    EventType = "lamaran"
	EventPrewedding EventType = "prewedding"
)

// WeddingSchedule carries the akad and resepsi slots of a wedding booking.
type WeddingSchedule struct {
	Date         string `json:"date"`
	AkadTime     string `json:"akad_time"`
	AkadPlace    string `json:"akad_place"`
	ResepsiTime  string `json:"resepsi_time"`
	ResepsiPlace string `json:"resepsi_place"`
}

type LamaranSchedule struct {
	Date  string `json:"date"`
	Time  string `json:"time"`
	Place string `json:"place"`
}

type PreweddingSchedule struct {
	Date  string `json:"date"`
	Place string `json:"place"`
}

// DealAddon is a snapshot of an add-on as it was priced when the deal
// was submitted; later catalog edits never change a closed deal.
type DealAddon struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Price int64  `json:"price"`
}

// Deal is a client's booking request submitted from the public deal page.
type Deal struct {
	ID     string `json:"id"`
	UserID string `json:"user_id"` // owning vendor

	ClientName string `json:"client_name"`
	ClientWA   string `json:"client_wa"`
	Address    string `json:"address"`

	GroomName string `json:"groom_name"`
	BrideName string `json:"bride_name"`
	GroomIG   string `json:"groom_ig"`
	BrideIG   string `json:"bride_ig"`

	Parent       string      `json:"parent"`
	PackageID    string      `json:"package_id"`
	PackageType  string      `json:"package_type"`
	PackagePrice int64       `json:"package_price"`
	Addons       []DealAddon `json:"addons"`
	Total        int64       `json:"total"`

	EventType  EventType           `json:"event_type"`
	Wedding    *WeddingSchedule    `json:"wedding,omitempty"`
	Lamaran    *LamaranSchedule    `json:"lamaran,omitempty"`
	Prewedding *PreweddingSchedule `json:"prewedding,omitempty"`

	CreatedAt time.Time `json:"created_at"`
}

func invalid(msg string) error {
	return fmt.Errorf("%w: %s", domain.ErrInvalidInput, msg)
}

// Validate enforces the deal form's required fields, including the
// per-event-type schedule requirements.
func (d *Deal) Validate() error {
	if d.UserID == "" {
		return invalid("url tidak valid")
	}
	if d.PackageID == "" {
		return invalid("pilih paket/jenis dulu")
	}
	if strings.TrimSpace(d.ClientName) == "" {
		return invalid("nama klien wajib diisi")
	}
	if strings.TrimSpace(d.ClientWA) == "" {
		return invalid("nomor WA klien wajib diisi")
	}
	if strings.TrimSpace(d.Address) == "" {
		return invalid("alamat kirim album wajib diisi")
	}

	switch d.EventType {
	case EventWedding:
		w := d.Wedding
		if w == nil || w.Date == "" {
			return invalid("tanggal acara (wedding) wajib")
		}
		if w.AkadTime == "" {
			return invalid("jam akad/pemberkatan wajib")
		}
		if strings.TrimSpace(w.AkadPlace) == "" {
			return invalid("tempat akad/pemberkatan wajib")
		}
		if w.ResepsiTime == "" {
			return invalid("jam resepsi wajib")
		}
		if strings.TrimSpace(w.ResepsiPlace) == "" {
			return invalid("tempat resepsi wajib")
		}
	case EventLamaran:
		l := d.Lamaran
		if l == nil || l.Date == "" {
			return invalid("tanggal acara (lamaran) wajib")
		}
		if l.Time == "" {
			return invalid("jam lamaran wajib")
		}
		if strings.TrimSpace(l.Place) == "" {
			return invalid("tempat lamaran wajib")
		}
	case EventPrewedding:
		p := d.Prewedding
		if p == nil || p.Date == "" {
			return invalid("tanggal prewedding wajib")
		}
		if strings.TrimSpace(p.Place) == "" {
			return invalid("tempat prewedding wajib")
		}
	default:
		return invalid("pilih jenis acara")
	}
	return nil
}

// EventLine renders the one-line event description printed on documents.
func (d *Deal) EventLine() string {
	orDash := func(s string) string {
		if s == "" {
			return "-"
		}
		return s
	}
	switch d.EventType {
	case EventWedding:
		if w := d.Wedding; w != nil {
			return fmt.Sprintf("Wedding — %s | Akad %s @ %s | Resepsi %s @ %s",
				orDash(w.Date), orDash(w.AkadTime), orDash(w.AkadPlace),
				orDash(w.ResepsiTime), orDash(w.ResepsiPlace))
		}
	case EventLamaran:
		if l := d.Lamaran; l != nil {
			line := fmt.Sprintf("Lamaran — %s", orDash(l.Date))
			if l.Time != "" {
				line += fmt.Sprintf(" (%s)", l.Time)
			}
			return line + " @ " + orDash(l.Place)
		}
	case EventPrewedding:
		if p := d.Prewedding; p != nil {
			return fmt.Sprintf("Prewedding — %s @ %s", orDash(p.Date), orDash(p.Place))
		}
	}
	return strings.ToUpper(d.Parent)
}
