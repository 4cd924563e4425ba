package usecase

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"vendor-pricelist-platform/internal/domain"
	"vendor-pricelist-platform/internal/domain/model"
	"vendor-pricelist-platform/internal/domain/ports/repository"
)

// CatalogUseCase covers everything a vendor edits on the dashboard:
// profile, packages, add-ons and the discount banner. All writes require
// an active access window; lapsed accounts are read-only until they
// redeem a new code.
type CatalogUseCase struct {
	vendors   repository.VendorRepository
	packages  repository.PackageRepository
	addons    repository.AddonRepository
	discounts repository.DiscountRepository
	windows   repository.AccessWindowRepository
	now       func() time.Time
}

func NewCatalogUseCase(
	vendors repository.VendorRepository,
	packages repository.PackageRepository,
	addons repository.AddonRepository,
	discounts repository.DiscountRepository,
	windows repository.AccessWindowRepository,
) *CatalogUseCase {
	return &CatalogUseCase{
		vendors:   vendors,
		packages:  packages,
		addons:    addons,
		discounts: discounts,
		windows:   windows,
		now:       time.Now,
	}
}

// requireActive rejects writes from accounts whose window has lapsed.
func (uc *CatalogUseCase) requireActive(ctx context.Context, userID string) error {
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

// --- Vendor profile ---

func (uc *CatalogUseCase) Profile(ctx context.Context, userID string) (*model.VendorProfile, error) {
	if userID == "" {
		return nil, domain.ErrUnauthenticated
	}
	return uc.vendors.FindByUser(ctx, nil, userID)
}

func (uc *CatalogUseCase) SaveProfile(ctx context.Context, userID string, v *model.VendorProfile) error {
	if err := uc.requireActive(ctx, userID); err != nil {
		return err
	}
	v.UserID = userID
	v.UpdatedAt = uc.now()
	return uc.vendors.Save(ctx, nil, v)
}

// --- Packages ---

func (uc *CatalogUseCase) CreatePackage(ctx context.Context, userID, parent, typeName string, price int64, details []string) (*model.Package, error) {
	if err := uc.requireActive(ctx, userID); err != nil {
		return nil, err
	}
	p, err := model.NewPackage(userID, parent, typeName, price, details)
	if err != nil {
		return nil, err
	}
	p.ID = uuid.NewString()
	if err := uc.packages.Create(ctx, nil, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (uc *CatalogUseCase) UpdatePackage(ctx context.Context, userID, id, parent, typeName string, price int64, details []string) (*model.Package, error) {
	if err := uc.requireActive(ctx, userID); err != nil {
		return nil, err
	}
	existing, err := uc.packages.FindByID(ctx, nil, id)
	if err != nil {
		return nil, err
	}
	if existing.UserID != userID {
		return nil, domain.ErrNotFound
	}
	p, err := model.NewPackage(userID, parent, typeName, price, details)
	if err != nil {
		return nil, err
	}
	p.ID = id
	if err := uc.packages.Update(ctx, nil, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (uc *CatalogUseCase) DeletePackage(ctx context.Context, userID, id string) error {
	if err := uc.requireActive(ctx, userID); err != nil {
		return err
	}
	return uc.packages.Delete(ctx, nil, userID, id)
}

func (uc *CatalogUseCase) ListPackages(ctx context.Context, userID string) ([]*model.Package, error) {
	if userID == "" {
		return nil, domain.ErrUnauthenticated
	}
	return uc.packages.ListByUser(ctx, nil, userID)
}

// --- Add-ons ---

func (uc *CatalogUseCase) CreateAddon(ctx context.Context, userID, name string, price int64) (*model.Addon, error) {
	if err := uc.requireActive(ctx, userID); err != nil {
		return nil, err
	}
	a, err := model.NewAddon(userID, name, price)
	if err != nil {
		return nil, err
	}
	a.ID = uuid.NewString()
	if err := uc.addons.Create(ctx, nil, a); err != nil {
		return nil, err
	}
	return a, nil
}

func (uc *CatalogUseCase) UpdateAddon(ctx context.Context, userID, id, name string, price int64) (*model.Addon, error) {
	if err := uc.requireActive(ctx, userID); err != nil {
		return nil, err
	}
	a, err := model.NewAddon(userID, name, price)
	if err != nil {
		return nil, err
	}
	a.ID = id
	if err := uc.addons.Update(ctx, nil, a); err != nil {
		return nil, err
	}
	return a, nil
}

func (uc *CatalogUseCase) DeleteAddon(ctx context.Context, userID, id string) error {
	if err := uc.requireActive(ctx, userID); err != nil {
		return err
	}
	return uc.addons.Delete(ctx, nil, userID, id)
}

func (uc *CatalogUseCase) ListAddons(ctx context.Context, userID string) ([]*model.Addon, error) {
	if userID == "" {
		return nil, domain.ErrUnauthenticated
	}
	return uc.addons.ListByUser(ctx, nil, userID)
}

// --- Discount ---

func (uc *CatalogUseCase) SaveDiscount(ctx context.Context, userID string, text string, enabled bool) error {
	if err := uc.requireActive(ctx, userID); err != nil {
		return err
	}
	return uc.discounts.Upsert(ctx, nil, &model.Discount{UserID: userID, Text: text, Enabled: enabled})
}

func (uc *CatalogUseCase) Discount(ctx context.Context, userID string) (*model.Discount, error) {
	if userID == "" {
		return nil, domain.ErrUnauthenticated
	}
	return uc.discounts.FindByUser(ctx, nil, userID)
}
