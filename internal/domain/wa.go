package domain

import (
	"fmt"
	"net/url"
	"strings"
)

// WaAddon is one selected add-on line in a WhatsApp inquiry.
type WaAddon struct {
	Name  string
	Price int64
}

// WaInquiry holds everything needed to build the wa.me deep link a client
// taps on the public pricelist page.
type WaInquiry struct {
	VendorName    string
	PricelistName string
	TypeName      string
	Details       []string
	Price         int64
	Addons        []WaAddon
	WhatsApp      string
	Total         int64
}

// NormalizePhoneForWA strips non-digits and converts a local leading zero to
// the 62 country prefix. Returns "" when no digits remain.
func NormalizePhoneForWA(raw string) string {
	var b strings.Builder
	for _, r := range raw {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	digits := b.String()
	switch {
	case digits == "":
		return ""
	case strings.HasPrefix(digits, "0"):
		return "62" + digits[1:]
	default:
		return digits
	}
}

// WaLink builds the prefilled WhatsApp inquiry URL for a package selection.
func WaLink(p WaInquiry) string {
	details := make([]string, 0, len(p.Details))
	for _, d := range p.Details {
		details = append(details, "• "+d)
	}

	addons := "–"
	if len(p.Addons) > 0 {
		parts := make([]string, 0, len(p.Addons))
		for _, a := range p.Addons {
			parts = append(parts, fmt.Sprintf("%s (%s)", a.Name, FormatIDR(a.Price)))
		}
		addons = strings.Join(parts, ", ")
	}

	text := fmt.Sprintf(
		"Halo %s, saya tertarik paket %s – %s.\nRincian singkat:\n%s\nHarga paket: %s\nAdd-on: %s\nTotal perkiraan: %s\n\nMohon info ketersediaan & detail lanjut. Terima kasih!",
		p.VendorName, p.PricelistName, p.TypeName,
		strings.Join(details, "\n"),
		FormatIDR(p.Price),
		addons,
		FormatIDR(p.Total),
	)

	// encodeURIComponent-style escaping: wa.me renders "+" literally.
	escaped := strings.ReplaceAll(url.QueryEscape(text), "+", "%20")
	return "https://wa.me/" + NormalizePhoneForWA(p.WhatsApp) + "?text=" + escaped
}
