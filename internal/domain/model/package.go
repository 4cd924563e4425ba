package model

import (
	"strings"

	"vendor-pricelist-platform/internal/domain"
)

// Package is one sellable pricelist entry: a type (e.g. "wedding silver")
// under a parent category (e.g. "wedding"), with its bullet-point details.
type Package struct {
	ID       string   `json:"id"`
	UserID   string   `json:"user_id"`
	Parent   string   `json:"parent"`
	TypeName string   `json:"type_name"`
	Details  []string `json:"details"`
	Price    int64    `json:"price"`
}

// NewPackage normalizes and validates operator input. Parent and type are
// stored lower-cased; detail lines are trimmed with blanks dropped.
func NewPackage(userID, parent, typeName string, price int64, details []string) (*Package, error) {
	parent = strings.ToLower(strings.TrimSpace(parent))
	typeName = strings.ToLower(strings.TrimSpace(typeName))
	if userID == "" || parent == "" || typeName == "" {
		return nil, domain.ErrInvalidInput
	}
	if price < 0 {
		return nil, domain.ErrInvalidInput
	}
	clean := make([]string, 0, len(details))
	for _, d := range details {
		if d = strings.TrimSpace(d); d != "" {
			clean = append(clean, d)
		}
	}
	return &Package{
		UserID:   userID,
		Parent:   parent,
		TypeName: typeName,
		Details:  clean,
		Price:    price,
	}, nil
}

// Addon is an optional extra a client can stack on top of a package.
type Addon struct {
	ID     string `json:"id"`
	UserID string `json:"user_id"`
	Name   string `json:"name"`
	Price  int64  `json:"price"`
}

func NewAddon(userID, name string, price int64) (*Addon, error) {
	name = strings.TrimSpace(name)
	if userID == "" || name == "" {
		return nil, domain.ErrInvalidInput
	}
	return &Addon{UserID: userID, Name: name, Price: price}, nil
}
