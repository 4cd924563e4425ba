package usecase

import (
	"context"
	"errors"
	"sort"
	"strings"
	"time"

	"vendor-pricelist-platform/internal/domain"
	"vendor-pricelist-platform/internal/domain/model"
	"vendor-pricelist-platform/internal/domain/ports/repository"
)

// PricelistGroup is one parent category with its package types.
type PricelistGroup struct {
	Parent   string           `json:"parent"`
	Packages []*model.Package `json:"packages"`
}

// PricelistSnapshot is the public view of a vendor's offering. When the
// vendor's access window has lapsed only Active=false is exposed.
type PricelistSnapshot struct {
	Active    bool                 `json:"active"`
	ExpiresAt *time.Time           `json:"expires_at,omitempty"`
	Vendor    *model.VendorProfile `json:"vendor,omitempty"`
	Groups    []PricelistGroup     `json:"groups,omitempty"`
	Addons    []*model.Addon       `json:"addons,omitempty"`
	Discount  *model.Discount      `json:"discount,omitempty"`
}

// PricelistUseCase serves the public pricelist and deal pages.
type PricelistUseCase struct {
	vendors   repository.VendorRepository
	packages  repository.PackageRepository
	addons    repository.AddonRepository
	discounts repository.DiscountRepository
	windows   repository.AccessWindowRepository
	now       func() time.Time
}

func NewPricelistUseCase(
	vendors repository.VendorRepository,
	packages repository.PackageRepository,
	addons repository.AddonRepository,
	discounts repository.DiscountRepository,
	windows repository.AccessWindowRepository,
) *PricelistUseCase {
	return &PricelistUseCase{
		vendors:   vendors,
		packages:  packages,
		addons:    addons,
		discounts: discounts,
		windows:   windows,
		now:       time.Now,
	}
}

func (uc *PricelistUseCase) active(ctx context.Context, userID string) (*model.AccessWindow, bool, error) {
	w, err := uc.windows.FindByUser(ctx, nil, userID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, false, nil
		}
		return nil, false, err
	}
	return w, w.ActiveAt(uc.now()), nil
}

// Snapshot assembles the public pricelist for a vendor.
func (uc *PricelistUseCase) Snapshot(ctx context.Context, userID string) (*PricelistSnapshot, error) {
	if userID == "" {
		return nil, domain.ErrInvalidInput
	}
	w, ok, err := uc.active(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return &PricelistSnapshot{Active: false}, nil
	}

	vendor, err := uc.vendors.FindByUser(ctx, nil, userID)
	if err != nil && !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}
	pkgs, err := uc.packages.ListByUser(ctx, nil, userID)
	if err != nil {
		return nil, err
	}
	adds, err := uc.addons.ListByUser(ctx, nil, userID)
	if err != nil {
		return nil, err
	}
	disc, err := uc.discounts.FindByUser(ctx, nil, userID)
	if err != nil && !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}

	snap := &PricelistSnapshot{
		Active:    true,
		ExpiresAt: &w.ExpiresAt,
		Groups:    groupByParent(pkgs),
		Addons:    adds,
	}
	if vendor != nil {
		pub := vendor.Public()
		snap.Vendor = &pub
	}
	if disc != nil && disc.Enabled {
		snap.Discount = disc
	}
	return snap, nil
}

// groupByParent buckets packages by category, preserving the repo's
// parent/type ordering.
func groupByParent(pkgs []*model.Package) []PricelistGroup {
	order := make([]string, 0)
	buckets := make(map[string][]*model.Package)
	for _, p := range pkgs {
		if _, seen := buckets[p.Parent]; !seen {
			order = append(order, p.Parent)
		}
		buckets[p.Parent] = append(buckets[p.Parent], p)
	}
	sort.Strings(order)
	groups := make([]PricelistGroup, 0, len(order))
	for _, parent := range order {
		groups = append(groups, PricelistGroup{Parent: parent, Packages: buckets[parent]})
	}
	return groups
}

// Quote prices a selection: package price plus the chosen add-ons.
// Selections referencing another vendor's catalog come back ErrNotFound.
func (uc *PricelistUseCase) Quote(ctx context.Context, userID, packageID string, addonIDs []string) (*model.Package, []*model.Addon, int64, error) {
	pkg, err := uc.packages.FindByID(ctx, nil, packageID)
	if err != nil {
		return nil, nil, 0, err
	}
	if pkg.UserID != userID {
		return nil, nil, 0, domain.ErrNotFound
	}

	all, err := uc.addons.ListByUser(ctx, nil, userID)
	if err != nil {
		return nil, nil, 0, err
	}
	byID := make(map[string]*model.Addon, len(all))
	for _, a := range all {
		byID[a.ID] = a
	}

	total := pkg.Price
	selected := make([]*model.Addon, 0, len(addonIDs))
	for _, id := range addonIDs {
		a, ok := byID[id]
		if !ok {
			return nil, nil, 0, domain.ErrNotFound
		}
		selected = append(selected, a)
		total += a.Price
	}
	return pkg, selected, total, nil
}

// InquiryLink builds the prefilled WhatsApp deep link for a selection.
func (uc *PricelistUseCase) InquiryLink(ctx context.Context, userID, packageID string, addonIDs []string) (string, error) {
	if _, ok, err := uc.active(ctx, userID); err != nil {
		return "", err
	} else if !ok {
		return "", domain.ErrAccountInactive
	}

	vendor, err := uc.vendors.FindByUser(ctx, nil, userID)
	if err != nil {
		return "", err
	}
	pkg, selected, total, err := uc.Quote(ctx, userID, packageID, addonIDs)
	if err != nil {
		return "", err
	}

	addons := make([]domain.WaAddon, 0, len(selected))
	for _, a := range selected {
		addons = append(addons, domain.WaAddon{Name: a.Name, Price: a.Price})
	}
	return domain.WaLink(domain.WaInquiry{
		VendorName:    vendor.Name,
		PricelistName: strings.ToUpper(pkg.Parent),
		TypeName:      strings.ToUpper(pkg.TypeName),
		Details:       pkg.Details,
		Price:         pkg.Price,
		Addons:        addons,
		WhatsApp:      vendor.WhatsApp,
		Total:         total,
	}), nil
}
