package sched

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"vendor-pricelist-platform/internal/domain/ports/repository"
	"vendor-pricelist-platform/internal/infra/metrics"
)

// AccountSweeper periodically counts active vs lapsed access windows and
// publishes the split as gauges for the admin dashboard.
type AccountSweeper struct {
	interval time.Duration
	windows  repository.AccessWindowRepository
	log      *zerolog.Logger
}

func NewAccountSweeper(interval time.Duration, windows repository.AccessWindowRepository, logger *zerolog.Logger) *AccountSweeper {
	if interval <= 0 {
		interval = 5 * time.Minute
	}
	compLog := logger.With().Str("component", "AccountSweeper").Logger()
	return &AccountSweeper{
		interval: interval,
		windows:  windows,
		log:      &compLog,
	}
}

func (w *AccountSweeper) Run(ctx context.Context) error {
	w.log.Info().Msg("Starting account sweeper")
	// Run once on startup, then on every tick
	w.sweep(ctx)

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			w.log.Info().Msg("Stopping account sweeper")
			return ctx.Err()
		case <-ticker.C:
			w.sweep(ctx)
		}
	}
}

func (w *AccountSweeper) sweep(ctx context.Context) {
	active, inactive, err := w.windows.CountByActivity(ctx, nil, time.Now())
	if err != nil {
		w.log.Error().Err(err).Msg("account sweep failed")
		return
	}
	metrics.SetAccountsTotal(active, inactive)
	w.log.Debug().Int("active", active).Int("inactive", inactive).Msg("account activity swept")
}
