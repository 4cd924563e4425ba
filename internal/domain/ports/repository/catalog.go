package repository

import (
	"context"

	"vendor-pricelist-platform/internal/domain/model"
)

// VendorRepository stores vendor profiles, keyed by user id.
type VendorRepository interface {
	Save(ctx context.Context, tx Tx, v *model.VendorProfile) error
	FindByUser(ctx context.Context, tx Tx, userID string) (*model.VendorProfile, error)
}

// PackageRepository stores pricelist packages.
type PackageRepository interface {
	Create(ctx context.Context, tx Tx, p *model.Package) error
	Update(ctx context.Context, tx Tx, p *model.Package) error
	Delete(ctx context.Context, tx Tx, userID, id string) error
	// ListByUser returns packages sorted by parent then type name.
	ListByUser(ctx context.Context, tx Tx, userID string) ([]*model.Package, error)
	FindByID(ctx context.Context, tx Tx, id string) (*model.Package, error)
}

// AddonRepository stores add-ons.
type AddonRepository interface {
	Create(ctx context.Context, tx Tx, a *model.Addon) error
	Update(ctx context.Context, tx Tx, a *model.Addon) error
	Delete(ctx context.Context, tx Tx, userID, id string) error
	// ListByUser returns add-ons sorted by name.
	ListByUser(ctx context.Context, tx Tx, userID string) ([]*model.Addon, error)
}

// DiscountRepository stores the per-vendor promo banner.
type DiscountRepository interface {
	Upsert(ctx context.Context, tx Tx, d *model.Discount) error
	FindByUser(ctx context.Context, tx Tx, userID string) (*model.Discount, error)
}
