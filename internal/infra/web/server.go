package web

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"vendor-pricelist-platform/internal/infra/i18n"
	"vendor-pricelist-platform/internal/infra/redis"
	"vendor-pricelist-platform/internal/usecase"
)

type Server struct {
	activationUC *usecase.ActivationUseCase
	catalogUC    *usecase.CatalogUseCase
	pricelistUC  *usecase.PricelistUseCase
	dealUC       *usecase.DealUseCase
	invoiceUC    *usecase.InvoiceUseCase
	mouUC        *usecase.MouUseCase
	statsUC      *usecase.StatsUseCase

	auth    *AuthManager
	limiter *redis.RateLimiter

	redeemLimit        int
	superadminPassword string

	tr  *i18n.Translator
	log *zerolog.Logger
}

type ServerDeps struct {
	Activation *usecase.ActivationUseCase
	Catalog    *usecase.CatalogUseCase
	Pricelist  *usecase.PricelistUseCase
	Deals      *usecase.DealUseCase
	Invoices   *usecase.InvoiceUseCase
	Mou        *usecase.MouUseCase
	Stats      *usecase.StatsUseCase

	Auth    *AuthManager
	Limiter *redis.RateLimiter

	RedeemLimit        int
	SuperadminPassword string

	Translator *i18n.Translator
	Logger     *zerolog.Logger
}

func NewServer(d ServerDeps) *Server {
	if d.RedeemLimit <= 0 {
		d.RedeemLimit = 10
	}
	return &Server{
		activationUC:       d.Activation,
		catalogUC:          d.Catalog,
		pricelistUC:        d.Pricelist,
		dealUC:             d.Deals,
		invoiceUC:          d.Invoices,
		mouUC:              d.Mou,
		statsUC:            d.Stats,
		auth:               d.Auth,
		limiter:            d.Limiter,
		redeemLimit:        d.RedeemLimit,
		superadminPassword: d.SuperadminPassword,
		tr:                 d.Translator,
		log:                d.Logger,
	}
}

// Router builds the full route tree. Public pricelist routes are keyed
// by vendor user id; everything under /api/v1 vendor scope requires a
// vendor session, /api/v1/admin requires a superadmin session.
func (s *Server) Router() *chi.Mux {
	r := chi.NewRouter()
	r.Use(s.traceMiddleware)
	r.Use(s.requestLogger)
	r.Use(s.recoverer)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		// Public pricelist surface, no session required.
		r.Route("/p/{uid}", func(r chi.Router) {
			r.Get("/pricelist", s.handlePricelist)
			r.Post("/inquiry", s.handleInquiry)
			r.Post("/deals", s.handleDealSubmit)
		})

		// Vendor dashboard surface.
		r.Group(func(r chi.Router) {
			r.Use(s.vendorAuth)

			r.Post("/activation/redeem", s.handleRedeem)
			r.Get("/activation/window", s.handleWindow)

			r.Get("/profile", s.handleProfileGet)
			r.Put("/profile", s.handleProfilePut)

			r.Get("/packages", s.handlePackageList)
			r.Post("/packages", s.handlePackageCreate)
			r.Put("/packages/{id}", s.handlePackageUpdate)
			r.Delete("/packages/{id}", s.handlePackageDelete)

			r.Get("/addons", s.handleAddonList)
			r.Post("/addons", s.handleAddonCreate)
			r.Put("/addons/{id}", s.handleAddonUpdate)
			r.Delete("/addons/{id}", s.handleAddonDelete)

			r.Get("/discount", s.handleDiscountGet)
			r.Put("/discount", s.handleDiscountPut)

			r.Get("/deals", s.handleDealList)
			r.Get("/deals/{id}", s.handleDealGet)
			r.Get("/deals/{id}/invoice", s.handleDealInvoiceGet)
			r.Get("/deals/{id}/mou", s.handleMouGet)
			r.Put("/deals/{id}/mou", s.handleMouPut)

			r.Get("/invoices", s.handleInvoiceList)
			r.Post("/invoices", s.handleInvoiceSave)
			r.Put("/invoices", s.handleInvoiceSave)
			r.Get("/invoices/{id}", s.handleInvoiceGet)
			r.Get("/invoices/{id}/receipt-lines", s.handleProposeLines)
			r.Get("/invoices/{id}/receipts", s.handleReceiptList)
			r.Post("/invoices/{id}/receipts", s.handleReceiptCreate)
			r.Get("/receipts", s.handleReceiptList)

			r.Get("/mou-defaults", s.handleMouDefaultsGet)
			r.Put("/mou-defaults", s.handleMouDefaultsPut)
		})

		// Superadmin surface.
		r.Post("/admin/login", s.handleAdminLogin)
		r.Group(func(r chi.Router) {
			r.Use(s.adminAuth)

			r.Post("/admin/codes", s.handleCodesCreate)
			r.Get("/admin/codes", s.handleCodesList)
			r.Get("/admin/accounts", s.handleAccounts)
		})
	})

	return r
}
