package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"vendor-pricelist-platform/internal/config"
	"vendor-pricelist-platform/internal/domain/model"
	pg "vendor-pricelist-platform/internal/infra/db/postgres"
	"vendor-pricelist-platform/internal/infra/security"
	"vendor-pricelist-platform/internal/usecase"
)

const demoUser = "demo-vendor"

func main() {
	// ---- Config ----
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	pool := pg.MustConnectPostgres(cfg.Database.URL)
	defer pool.Close()

	encKey := cfg.Security.EncryptionKey
	if len(encKey) != 32 {
		encKey = "0123456789abcdef0123456789abcdef"
	}
	encSvc, err := security.NewEncryptionService(encKey)
	if err != nil {
		log.Fatalf("encryption: %v", err)
	}

	codeRepo := pg.NewRedemptionCodeRepo(pool)
	windowRepo := pg.NewAccessWindowRepo(pool)
	vendorRepo := pg.NewVendorRepo(pool, encSvc)
	packageRepo := pg.NewPackageRepo(pool)
	addonRepo := pg.NewAddonRepo(pool)
	discountRepo := pg.NewDiscountRepo(pool)
	txm := pg.NewTxManager(pool)

	catalogUC := usecase.NewCatalogUseCase(vendorRepo, packageRepo, addonRepo, discountRepo, windowRepo)
	activationUC := usecase.NewActivationUseCase(codeRepo, windowRepo, txm)

	// If the demo vendor already has packages, do nothing.
	existing, err := catalogUC.ListPackages(ctx, demoUser)
	if err != nil {
		log.Fatalf("list packages: %v", err)
	}
	if len(existing) > 0 {
		fmt.Printf("%d packages already present for %s. No changes.\n", len(existing), demoUser)
		return
	}

	// The demo account gets a month of access so its pricelist is live.
	if err := windowRepo.Upsert(ctx, nil, &model.AccessWindow{
		UserID:         demoUser,
		ExpiresAt:      time.Now().Add(30 * 24 * time.Hour),
		LastExtendedAt: time.Now(),
	}); err != nil {
		log.Fatalf("seed access window: %v", err)
	}

	if err := catalogUC.SaveProfile(ctx, demoUser, &model.VendorProfile{
		UserID:            demoUser,
		Name:              "Studio Cahaya",
		Address:           "Jl. Merdeka 10, Bandung",
		WhatsApp:          "081234567890",
		Email:             "halo@studiocahaya.id",
		BankName:          "BCA",
		BankAccountNumber: "1234567890",
		BankAccountHolder: "Studio Cahaya",
	}); err != nil {
		log.Fatalf("seed profile: %v", err)
	}

	packages := []struct {
		Parent  string
		Type    string
		Price   int64
		Details []string
	}{
		{"wedding", "silver", 4_500_000, []string{"2 fotografer", "1 videografer", "album 20x30"}},
		{"wedding", "gold", 7_500_000, []string{"3 fotografer", "2 videografer", "album 20x30", "cetak kanvas 60x40"}},
		{"prewedding", "outdoor", 2_000_000, []string{"1 lokasi", "semua file diserahkan"}},
		{"lamaran", "intimate", 1_500_000, []string{"1 fotografer", "3 jam liputan"}},
	}
	for _, p := range packages {
		created, err := catalogUC.CreatePackage(ctx, demoUser, p.Parent, p.Type, p.Price, p.Details)
		if err != nil {
			log.Fatalf("create package %s/%s: %v", p.Parent, p.Type, err)
		}
		fmt.Printf("seeded package: %s %s (id=%s, price=%d)\n", created.Parent, created.TypeName, created.ID, created.Price)
	}

	addons := []struct {
		Name  string
		Price int64
	}{
		{"Drone", 750_000},
		{"Same-day edit", 1_250_000},
		{"MUA", 600_000},
	}
	for _, a := range addons {
		created, err := catalogUC.CreateAddon(ctx, demoUser, a.Name, a.Price)
		if err != nil {
			log.Fatalf("create addon %q: %v", a.Name, err)
		}
		fmt.Printf("seeded addon: %s (id=%s, price=%d)\n", created.Name, created.ID, created.Price)
	}

	if err := catalogUC.SaveDiscount(ctx, demoUser, "Diskon 10% untuk booking sebelum akhir bulan", true); err != nil {
		log.Fatalf("seed discount: %v", err)
	}

	codes, err := activationUC.GenerateCodes(ctx, model.CodeDurationMonthly, 5)
	if err != nil {
		log.Fatalf("generate codes: %v", err)
	}
	fmt.Println("seeded activation codes:")
	for _, c := range codes {
		fmt.Printf("  - %s\n", c)
	}

	fmt.Println("✅ Seeding complete.")
}
