package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"

	"vendor-pricelist-platform/internal/domain"
	"vendor-pricelist-platform/internal/domain/model"
	"vendor-pricelist-platform/internal/domain/ports/repository"
	"vendor-pricelist-platform/internal/infra/metrics"
)

// DealInput is the raw deal form as submitted from the public page.
// Prices are never taken from it; the server re-prices from the catalog.
type DealInput struct {
	ClientName string
	ClientWA   string
	Address    string

	GroomName string
	BrideName string
	GroomIG   string
	BrideIG   string

	PackageID string
	AddonIDs  []string

	EventType  model.EventType
	Wedding    *model.WeddingSchedule
	Lamaran    *model.LamaranSchedule
	Prewedding *model.PreweddingSchedule
}

// DealUseCase accepts booking requests from the public deal page and
// serves the vendor's deal list.
type DealUseCase struct {
	deals    repository.DealRepository
	packages repository.PackageRepository
	addons   repository.AddonRepository
	windows  repository.AccessWindowRepository
	now      func() time.Time
}

func NewDealUseCase(
	deals repository.DealRepository,
	packages repository.PackageRepository,
	addons repository.AddonRepository,
	windows repository.AccessWindowRepository,
) *DealUseCase {
	return &DealUseCase{
		deals:    deals,
		packages: packages,
		addons:   addons,
		windows:  windows,
		now:      time.Now,
	}
}

func (uc *DealUseCase) requireActive(ctx context.Context, userID string) error {
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

// Submit validates, re-prices and stores a deal for the vendor userID.
// Package and add-on prices are snapshotted so later catalog edits do
// not rewrite a closed booking.
func (uc *DealUseCase) Submit(ctx context.Context, userID string, in DealInput) (*model.Deal, error) {
	if userID == "" {
		return nil, invalid("url tidak valid")
	}
	if err := uc.requireActive(ctx, userID); err != nil {
		return nil, err
	}

	pkg, err := uc.packages.FindByID(ctx, nil, in.PackageID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, invalid("pilih paket/jenis dulu")
		}
		return nil, err
	}
	if pkg.UserID != userID {
		return nil, invalid("pilih paket/jenis dulu")
	}

	all, err := uc.addons.ListByUser(ctx, nil, userID)
	if err != nil {
		return nil, err
	}
	byID := make(map[string]*model.Addon, len(all))
	for _, a := range all {
		byID[a.ID] = a
	}

	total := pkg.Price
	picked := make([]model.DealAddon, 0, len(in.AddonIDs))
	for _, id := range in.AddonIDs {
		a, ok := byID[id]
		if !ok {
			return nil, invalid("add-on tidak ditemukan")
		}
		picked = append(picked, model.DealAddon{ID: a.ID, Name: a.Name, Price: a.Price})
		total += a.Price
	}

	deal := &model.Deal{
		ID:     ulid.Make().String(),
		UserID: userID,

		ClientName: strings.TrimSpace(in.ClientName),
		ClientWA:   strings.TrimSpace(in.ClientWA),
		Address:    strings.TrimSpace(in.Address),

		GroomName: strings.TrimSpace(in.GroomName),
		BrideName: strings.TrimSpace(in.BrideName),
		GroomIG:   strings.TrimSpace(in.GroomIG),
		BrideIG:   strings.TrimSpace(in.BrideIG),

		Parent:       pkg.Parent,
		PackageID:    pkg.ID,
		PackageType:  pkg.TypeName,
		PackagePrice: pkg.Price,
		Addons:       picked,
		Total:        total,

		EventType:  in.EventType,
		Wedding:    in.Wedding,
		Lamaran:    in.Lamaran,
		Prewedding: in.Prewedding,

		CreatedAt: uc.now(),
	}
	if err := deal.Validate(); err != nil {
		return nil, err
	}
	if err := uc.deals.Create(ctx, nil, deal); err != nil {
		return nil, err
	}
	metrics.IncDocument("deal")
	return deal, nil
}

// Get fetches one deal scoped to its owning vendor.
func (uc *DealUseCase) Get(ctx context.Context, userID, dealID string) (*model.Deal, error) {
	if userID == "" {
		return nil, domain.ErrUnauthenticated
	}
	d, err := uc.deals.FindByID(ctx, nil, dealID)
	if err != nil {
		return nil, err
	}
	if d.UserID != userID {
		return nil, domain.ErrNotFound
	}
	return d, nil
}

// List returns the vendor's deals, newest first.
func (uc *DealUseCase) List(ctx context.Context, userID string) ([]*model.Deal, error) {
	if userID == "" {
		return nil, domain.ErrUnauthenticated
	}
	return uc.deals.ListByUser(ctx, nil, userID)
}
