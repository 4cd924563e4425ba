package repository

import (
	"context"
	"time"

	"vendor-pricelist-platform/internal/domain/model"
)

// RedemptionCodeRepository is the port for the single-use code store.
type RedemptionCodeRepository interface {
	// Save creates a code or updates its redemption state.
	Save(ctx context.Context, tx Tx, code *model.RedemptionCode) error
	// FindByCode looks a code up by its normalized identifier, regardless
	// of status; redemption needs to distinguish used from absent.
	FindByCode(ctx context.Context, tx Tx, code string) (*model.RedemptionCode, error)
	// ListRecent returns the newest codes for the superadmin listing.
	ListRecent(ctx context.Context, tx Tx, limit int) ([]*model.RedemptionCode, error)
}

// AccessWindowRepository is the port for per-user access windows.
type AccessWindowRepository interface {
	// Upsert writes the window, keyed by user id.
	Upsert(ctx context.Context, tx Tx, w *model.AccessWindow) error
	// FindByUser returns domain.ErrNotFound when the user has never redeemed.
	FindByUser(ctx context.Context, tx Tx, userID string) (*model.AccessWindow, error)
	// ListAll returns every window, for the superadmin account overview.
	ListAll(ctx context.Context, tx Tx) ([]*model.AccessWindow, error)
	// CountByActivity splits windows into active vs lapsed relative to now.
	CountByActivity(ctx context.Context, tx Tx, now time.Time) (active, inactive int, err error)
}
