//go:build integration

package postgres

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"

	"vendor-pricelist-platform/internal/domain"
	"vendor-pricelist-platform/internal/domain/model"
)

func TestPackageRepo_Integration(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode.")
	}

	repo := NewPackageRepo(testPool)
	ctx := context.Background()

	t.Run("full CRUD cycle", func(t *testing.T) {
		cleanup(t)

		p := &model.Package{
			ID:       uuid.NewString(),
			UserID:   "u-1",
			Parent:   "wedding",
			TypeName: "silver",
			Details:  []string{"2 fotografer", "album 20x30"},
			Price:    4_500_000,
		}
		if err := repo.Create(ctx, nil, p); err != nil {
			t.Fatalf("Create failed: %v", err)
		}

		found, err := repo.FindByID(ctx, nil, p.ID)
		if err != nil {
			t.Fatalf("FindByID failed: %v", err)
		}
		if len(found.Details) != 2 || found.Details[0] != "2 fotografer" {
			t.Errorf("details round-trip broken: %v", found.Details)
		}

		p.Price = 5_000_000
		if err := repo.Update(ctx, nil, p); err != nil {
			t.Fatalf("Update failed: %v", err)
		}
		found, err = repo.FindByID(ctx, nil, p.ID)
		if err != nil {
			t.Fatalf("FindByID after update failed: %v", err)
		}
		if found.Price != 5_000_000 {
			t.Errorf("price = %d, want 5000000", found.Price)
		}

		if err := repo.Delete(ctx, nil, "u-1", p.ID); err != nil {
			t.Fatalf("Delete failed: %v", err)
		}
		if _, err := repo.FindByID(ctx, nil, p.ID); !errors.Is(err, domain.ErrNotFound) {
			t.Fatalf("got %v after delete, want ErrNotFound", err)
		}
	})

	t.Run("update of a foreign row reports ErrNotFound", func(t *testing.T) {
		cleanup(t)

		p := &model.Package{
			ID: uuid.NewString(), UserID: "u-1",
			Parent: "wedding", TypeName: "gold", Price: 1,
		}
		if err := repo.Create(ctx, nil, p); err != nil {
			t.Fatalf("Create failed: %v", err)
		}
		p.UserID = "intruder"
		if err := repo.Update(ctx, nil, p); !errors.Is(err, domain.ErrNotFound) {
			t.Fatalf("got %v, want ErrNotFound", err)
		}
		if err := repo.Delete(ctx, nil, "intruder", p.ID); !errors.Is(err, domain.ErrNotFound) {
			t.Fatalf("got %v, want ErrNotFound", err)
		}
	})

	t.Run("list is ordered by parent then type", func(t *testing.T) {
		cleanup(t)

		rows := []*model.Package{
			{ID: uuid.NewString(), UserID: "u-1", Parent: "wedding", TypeName: "silver", Price: 1},
			{ID: uuid.NewString(), UserID: "u-1", Parent: "lamaran", TypeName: "intimate", Price: 1},
			{ID: uuid.NewString(), UserID: "u-1", Parent: "wedding", TypeName: "gold", Price: 1},
			{ID: uuid.NewString(), UserID: "u-2", Parent: "wedding", TypeName: "other", Price: 1},
		}
		for _, p := range rows {
			if err := repo.Create(ctx, nil, p); err != nil {
				t.Fatalf("Create failed: %v", err)
			}
		}

		list, err := repo.ListByUser(ctx, nil, "u-1")
		if err != nil {
			t.Fatalf("ListByUser failed: %v", err)
		}
		if len(list) != 3 {
			t.Fatalf("got %d packages, want 3", len(list))
		}
		if list[0].Parent != "lamaran" || list[1].TypeName != "gold" || list[2].TypeName != "silver" {
			t.Errorf("unexpected order: %+v", list)
		}
	})
}

func TestAddonRepo_Integration(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode.")
	}

	repo := NewAddonRepo(testPool)
	ctx := context.Background()

	t.Run("full CRUD cycle", func(t *testing.T) {
		cleanup(t)

		a := &model.Addon{ID: uuid.NewString(), UserID: "u-1", Name: "Drone", Price: 750_000}
		if err := repo.Create(ctx, nil, a); err != nil {
			t.Fatalf("Create failed: %v", err)
		}

		a.Price = 800_000
		if err := repo.Update(ctx, nil, a); err != nil {
			t.Fatalf("Update failed: %v", err)
		}

		list, err := repo.ListByUser(ctx, nil, "u-1")
		if err != nil {
			t.Fatalf("ListByUser failed: %v", err)
		}
		if len(list) != 1 || list[0].Price != 800_000 {
			t.Fatalf("unexpected list: %+v", list)
		}

		if err := repo.Delete(ctx, nil, "u-1", a.ID); err != nil {
			t.Fatalf("Delete failed: %v", err)
		}
		if err := repo.Delete(ctx, nil, "u-1", a.ID); !errors.Is(err, domain.ErrNotFound) {
			t.Fatalf("got %v on double delete, want ErrNotFound", err)
		}
	})
}

func TestDiscountRepo_Integration(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode.")
	}

	repo := NewDiscountRepo(testPool)
	ctx := context.Background()

	t.Run("upsert and read back", func(t *testing.T) {
		cleanup(t)

		d := &model.Discount{UserID: "u-1", Text: "Diskon 10%", Enabled: true}
		if err := repo.Upsert(ctx, nil, d); err != nil {
			t.Fatalf("Upsert failed: %v", err)
		}
		d.Enabled = false
		if err := repo.Upsert(ctx, nil, d); err != nil {
			t.Fatalf("second Upsert failed: %v", err)
		}

		found, err := repo.FindByUser(ctx, nil, "u-1")
		if err != nil {
			t.Fatalf("FindByUser failed: %v", err)
		}
		if found.Enabled || found.Text != "Diskon 10%" {
			t.Errorf("unexpected discount: %+v", found)
		}
	})
}
