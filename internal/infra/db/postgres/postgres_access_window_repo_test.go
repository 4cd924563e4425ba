//go:build integration

package postgres

import (
	"context"
	"errors"
	"testing"
	"time"

	"vendor-pricelist-platform/internal/domain"
	"vendor-pricelist-platform/internal/domain/model"
)

func TestAccessWindowRepo_Integration(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode.")
	}

	repo := NewAccessWindowRepo(testPool)
	ctx := context.Background()

	t.Run("upsert extends in place", func(t *testing.T) {
		cleanup(t)

		now := time.Now().Truncate(time.Millisecond)
		w := &model.AccessWindow{
			UserID:         "u-1",
			ExpiresAt:      now.Add(7 * 24 * time.Hour),
			LastExtendedAt: now,
		}
		if err := repo.Upsert(ctx, nil, w); err != nil {
			t.Fatalf("Upsert failed: %v", err)
		}

		// A second redemption moves the same row forward.
		w = w.ExtendBy("u-1", 30, now)
		if err := repo.Upsert(ctx, nil, w); err != nil {
			t.Fatalf("second Upsert failed: %v", err)
		}

		found, err := repo.FindByUser(ctx, nil, "u-1")
		if err != nil {
			t.Fatalf("FindByUser failed: %v", err)
		}
		want := now.Add(37 * 24 * time.Hour)
		if !found.ExpiresAt.Equal(want) {
			t.Errorf("expires_at = %v, want %v", found.ExpiresAt, want)
		}

		all, err := repo.ListAll(ctx, nil)
		if err != nil {
			t.Fatalf("ListAll failed: %v", err)
		}
		if len(all) != 1 {
			t.Errorf("upsert must not duplicate rows, got %d", len(all))
		}
	})

	t.Run("missing user maps to ErrNotFound", func(t *testing.T) {
		cleanup(t)

		_, err := repo.FindByUser(ctx, nil, "nobody")
		if !errors.Is(err, domain.ErrNotFound) {
			t.Fatalf("got %v, want ErrNotFound", err)
		}
	})

	t.Run("counts split on the probe instant", func(t *testing.T) {
		cleanup(t)

		now := time.Now()
		rows := []*model.AccessWindow{
			{UserID: "u-active-1", ExpiresAt: now.Add(time.Hour), LastExtendedAt: now},
			{UserID: "u-active-2", ExpiresAt: now.Add(48 * time.Hour), LastExtendedAt: now},
			{UserID: "u-lapsed", ExpiresAt: now.Add(-time.Minute), LastExtendedAt: now.Add(-30 * 24 * time.Hour)},
		}
		for _, w := range rows {
			if err := repo.Upsert(ctx, nil, w); err != nil {
				t.Fatalf("Upsert %s failed: %v", w.UserID, err)
			}
		}

		active, inactive, err := repo.CountByActivity(ctx, nil, now)
		if err != nil {
			t.Fatalf("CountByActivity failed: %v", err)
		}
		if active != 2 || inactive != 1 {
			t.Errorf("got active=%d inactive=%d, want 2/1", active, inactive)
		}
	})
}
