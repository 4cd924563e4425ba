package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"vendor-pricelist-platform/internal/domain"
	"vendor-pricelist-platform/internal/domain/model"
	"vendor-pricelist-platform/internal/domain/ports/repository"
	"vendor-pricelist-platform/internal/infra/metrics"
)

// standardClauses seeds brand-new vendors who have not saved their own
// boilerplate yet.
var standardClauses = []string{
	"Pembayaran DP minimal 50% untuk mengunci tanggal acara.",
	"Pelunasan dilakukan selambat-lambatnya H-7 sebelum acara.",
	"Pembatalan sepihak oleh klien tidak mengembalikan DP.",
	"Perubahan jadwal dikoordinasikan minimal 14 hari sebelumnya.",
}

// MouUseCase drafts and stores MOU documents plus the vendor's reusable
// clause defaults.
type MouUseCase struct {
	mous    repository.MouRepository
	deals   repository.DealRepository
	windows repository.AccessWindowRepository
	now     func() time.Time
}

func NewMouUseCase(
	mous repository.MouRepository,
	deals repository.DealRepository,
	windows repository.AccessWindowRepository,
) *MouUseCase {
	return &MouUseCase{mous: mous, deals: deals, windows: windows, now: time.Now}
}

func (uc *MouUseCase) requireActive(ctx context.Context, userID string) error {
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

// GetOrDraft returns the MOU stored for a deal, or an unsaved draft
// prefilled from the deal and the vendor's saved defaults.
func (uc *MouUseCase) GetOrDraft(ctx context.Context, userID, dealID string) (*model.Mou, error) {
	if userID == "" {
		return nil, domain.ErrUnauthenticated
	}
	deal, err := uc.deals.FindByID(ctx, nil, dealID)
	if err != nil {
		return nil, err
	}
	if deal.UserID != userID {
		return nil, domain.ErrNotFound
	}

	m, err := uc.mous.FindByDeal(ctx, nil, dealID)
	if err == nil {
		return m, nil
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}

	clauses := standardClauses
	notes := ""
	if def, err := uc.mous.FindDefaults(ctx, nil, userID); err == nil {
		if len(def.Clauses) > 0 {
			clauses = def.Clauses
		}
		notes = def.Notes
	} else if !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}

	now := uc.now()
	return &model.Mou{
		DealID:       dealID,
		UserID:       userID,
		MouNo:        fmt.Sprintf("MOU-%04d/%02d/%s", now.Year(), now.Month(), dealID[len(dealID)-4:]),
		MouDate:      now.Format("2006-01-02"),
		ClientName:   deal.ClientName,
		ClientWA:     deal.ClientWA,
		Address:      deal.Address,
		PackageName:  deal.EventLine(),
		PackagePrice: deal.Total,
		EventDesc:    deal.EventLine(),
		Clauses:      clauses,
		Notes:        notes,
	}, nil
}

// Save upserts the MOU for a deal, scoped to its owning vendor.
func (uc *MouUseCase) Save(ctx context.Context, userID string, m *model.Mou) (*model.Mou, error) {
	if err := uc.requireActive(ctx, userID); err != nil {
		return nil, err
	}
	if m.DealID == "" {
		return nil, invalid("deal tidak ditemukan")
	}
	deal, err := uc.deals.FindByID(ctx, nil, m.DealID)
	if err != nil {
		return nil, err
	}
	if deal.UserID != userID {
		return nil, domain.ErrNotFound
	}

	m.UserID = userID
	now := uc.now()
	if m.CreatedAt.IsZero() {
		m.CreatedAt = now
	}
	m.UpdatedAt = now
	if err := uc.mous.Save(ctx, nil, m); err != nil {
		return nil, err
	}
	metrics.IncDocument("mou")
	return m, nil
}

// Defaults returns the vendor's reusable clause boilerplate, falling back
// to the standard set when none is saved.
func (uc *MouUseCase) Defaults(ctx context.Context, userID string) (*model.MouDefaults, error) {
	if userID == "" {
		return nil, domain.ErrUnauthenticated
	}
	def, err := uc.mous.FindDefaults(ctx, nil, userID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return &model.MouDefaults{UserID: userID, Clauses: standardClauses}, nil
		}
		return nil, err
	}
	return def, nil
}

// SaveDefaults stores the vendor's clause boilerplate for future drafts.
func (uc *MouUseCase) SaveDefaults(ctx context.Context, userID string, def *model.MouDefaults) error {
	if err := uc.requireActive(ctx, userID); err != nil {
		return err
	}
	def.UserID = userID
	def.UpdatedAt = uc.now()
	return uc.mous.SaveDefaults(ctx, nil, def)
}
