package usecase

import (
	"context"
	"errors"
	"sort"
	"time"

	"vendor-pricelist-platform/internal/domain"
	"vendor-pricelist-platform/internal/domain/ports/repository"
)

// AccountRow is one line of the superadmin account overview.
type AccountRow struct {
	UserID     string    `json:"user_id"`
	VendorName string    `json:"vendor_name,omitempty"`
	ExpiresAt  time.Time `json:"expires_at"`
	Active     bool      `json:"active"`
}

// AccountStats summarizes the fleet for the admin dashboard.
type AccountStats struct {
	Active   int `json:"active"`
	Inactive int `json:"inactive"`
}

// StatsUseCase serves the superadmin's account overview.
type StatsUseCase struct {
	windows repository.AccessWindowRepository
	vendors repository.VendorRepository
	now     func() time.Time
}

func NewStatsUseCase(windows repository.AccessWindowRepository, vendors repository.VendorRepository) *StatsUseCase {
	return &StatsUseCase{windows: windows, vendors: vendors, now: time.Now}
}

// Overview lists every account with its vendor name and activity state,
// active accounts first, soonest expiry first within each group.
func (uc *StatsUseCase) Overview(ctx context.Context) ([]AccountRow, error) {
	windows, err := uc.windows.ListAll(ctx, nil)
	if err != nil {
		return nil, err
	}
	now := uc.now()
	rows := make([]AccountRow, 0, len(windows))
	for _, w := range windows {
		row := AccountRow{
			UserID:    w.UserID,
			ExpiresAt: w.ExpiresAt,
			Active:    w.ActiveAt(now),
		}
		if v, err := uc.vendors.FindByUser(ctx, nil, w.UserID); err == nil {
			row.VendorName = v.Name
		} else if !errors.Is(err, domain.ErrNotFound) {
			return nil, err
		}
		rows = append(rows, row)
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Active != rows[j].Active {
			return rows[i].Active
		}
		return rows[i].ExpiresAt.Before(rows[j].ExpiresAt)
	})
	return rows, nil
}

// Totals counts active vs lapsed accounts.
func (uc *StatsUseCase) Totals(ctx context.Context) (*AccountStats, error) {
	active, inactive, err := uc.windows.CountByActivity(ctx, nil, uc.now())
	if err != nil {
		return nil, err
	}
	return &AccountStats{Active: active, Inactive: inactive}, nil
}
