package web

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"vendor-pricelist-platform/internal/domain"
	"vendor-pricelist-platform/internal/domain/model"
	"vendor-pricelist-platform/internal/infra/metrics"
	"vendor-pricelist-platform/internal/infra/redis"
	"vendor-pricelist-platform/internal/usecase"
)

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

type errorResponse struct {
	Error string `json:"error"`
}

// writeError maps domain errors onto HTTP statuses with a localized
// message where one exists.
func (s *Server) writeError(w http.ResponseWriter, err error) {
	var status int
	msg := err.Error()
	switch {
	case errors.Is(err, domain.ErrInvalidInput), errors.Is(err, domain.ErrInvalidArgument):
		status = http.StatusBadRequest
	case errors.Is(err, domain.ErrUnauthenticated):
		status = http.StatusUnauthorized
	case errors.Is(err, domain.ErrAccountInactive):
		status = http.StatusForbidden
		msg = s.tr.T("account_inactive")
	case errors.Is(err, domain.ErrCodeNotFound):
		status = http.StatusNotFound
		msg = s.tr.T("redeem_not_found")
	case errors.Is(err, domain.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, domain.ErrCodeAlreadyUsed):
		status = http.StatusConflict
		msg = s.tr.T("redeem_already_used")
	case errors.Is(err, domain.ErrInvalidData):
		status = http.StatusUnprocessableEntity
	default:
		status = http.StatusInternalServerError
		msg = s.tr.T("internal_error")
	}
	writeJSON(w, status, errorResponse{Error: msg})
}

func decode(r *http.Request, v interface{}) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return domain.ErrInvalidInput
	}
	return nil
}

// ===== Public =====

func (s *Server) handlePricelist(w http.ResponseWriter, r *http.Request) {
	snap, err := s.pricelistUC.Snapshot(r.Context(), chi.URLParam(r, "uid"))
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, snap)
}

type inquiryRequest struct {
	PackageID string   `json:"package_id"`
	AddonIDs  []string `json:"addon_ids"`
}

func (s *Server) handleInquiry(w http.ResponseWriter, r *http.Request) {
	var req inquiryRequest
	if err := decode(r, &req); err != nil {
		s.writeError(w, err)
		return
	}
	uid := chi.URLParam(r, "uid")
	link, err := s.pricelistUC.InquiryLink(r.Context(), uid, req.PackageID, req.AddonIDs)
	if err != nil {
		s.writeError(w, err)
		return
	}
	_, _, total, err := s.pricelistUC.Quote(r.Context(), uid, req.PackageID, req.AddonIDs)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, struct {
		Link  string `json:"link"`
		Total int64  `json:"total"`
	}{Link: link, Total: total})
}

type dealRequest struct {
	ClientName string `json:"client_name"`
	ClientWA   string `json:"client_wa"`
	Address    string `json:"address"`

	GroomName string `json:"groom_name"`
	BrideName string `json:"bride_name"`
	GroomIG   string `json:"groom_ig"`
	BrideIG   string `json:"bride_ig"`

	PackageID string   `json:"package_id"`
	AddonIDs  []string `json:"addon_ids"`

	EventType  string                    `json:"event_type"`
	Wedding    *model.WeddingSchedule    `json:"wedding,omitempty"`
	Lamaran    *model.LamaranSchedule    `json:"lamaran,omitempty"`
	Prewedding *model.PreweddingSchedule `json:"prewedding,omitempty"`
}

func (s *Server) handleDealSubmit(w http.ResponseWriter, r *http.Request) {
	var req dealRequest
	if err := decode(r, &req); err != nil {
		s.writeError(w, err)
		return
	}
	deal, err := s.dealUC.Submit(r.Context(), chi.URLParam(r, "uid"), usecase.DealInput{
		ClientName: req.ClientName,
		ClientWA:   req.ClientWA,
		Address:    req.Address,
		GroomName:  req.GroomName,
		BrideName:  req.BrideName,
		GroomIG:    req.GroomIG,
		BrideIG:    req.BrideIG,
		PackageID:  req.PackageID,
		AddonIDs:   req.AddonIDs,
		EventType:  model.EventType(req.EventType),
		Wedding:    req.Wedding,
		Lamaran:    req.Lamaran,
		Prewedding: req.Prewedding,
	})
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, struct {
		ID      string `json:"id"`
		Message string `json:"message"`
	}{ID: deal.ID, Message: s.tr.T("deal_submitted")})
}

// ===== Activation =====

type redeemRequest struct {
	Code string `json:"code"`
}

func (s *Server) handleRedeem(w http.ResponseWriter, r *http.Request) {
	userID := UserIDFrom(r.Context())

	if s.limiter != nil {
		ok, err := s.limiter.Allow(r.Context(), redis.RedeemKey(userID), s.redeemLimit, time.Hour)
		if err == nil && !ok {
			writeJSON(w, http.StatusTooManyRequests, errorResponse{Error: s.tr.T("redeem_rate_limited")})
			return
		}
	}

	var req redeemRequest
	if err := decode(r, &req); err != nil {
		s.writeError(w, err)
		return
	}
	win, err := s.activationUC.Redeem(r.Context(), userID, req.Code)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, struct {
		ExpiresAt time.Time `json:"expires_at"`
		Message   string    `json:"message"`
	}{
		ExpiresAt: win.ExpiresAt,
		Message:   s.tr.T("redeem_success", win.ExpiresAt.Format("2006-01-02")),
	})
}

func (s *Server) handleWindow(w http.ResponseWriter, r *http.Request) {
	win, err := s.activationUC.Window(r.Context(), UserIDFrom(r.Context()))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			writeJSON(w, http.StatusOK, struct {
				Active bool `json:"active"`
			}{Active: false})
			return
		}
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, struct {
		Active    bool      `json:"active"`
		ExpiresAt time.Time `json:"expires_at"`
	}{Active: win.ActiveAt(time.Now()), ExpiresAt: win.ExpiresAt})
}

// ===== Catalog =====

func (s *Server) handleProfileGet(w http.ResponseWriter, r *http.Request) {
	v, err := s.catalogUC.Profile(r.Context(), UserIDFrom(r.Context()))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			writeJSON(w, http.StatusOK, &model.VendorProfile{UserID: UserIDFrom(r.Context())})
			return
		}
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, v)
}

func (s *Server) handleProfilePut(w http.ResponseWriter, r *http.Request) {
	var v model.VendorProfile
	if err := decode(r, &v); err != nil {
		s.writeError(w, err)
		return
	}
	if err := s.catalogUC.SaveProfile(r.Context(), UserIDFrom(r.Context()), &v); err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, struct {
		Message string `json:"message"`
	}{Message: s.tr.T("profile_saved")})
}

type packageRequest struct {
	Parent   string   `json:"parent"`
	TypeName string   `json:"type_name"`
	Price    int64    `json:"price"`
	Details  []string `json:"details"`
}

func (s *Server) handlePackageCreate(w http.ResponseWriter, r *http.Request) {
	var req packageRequest
	if err := decode(r, &req); err != nil {
		s.writeError(w, err)
		return
	}
	p, err := s.catalogUC.CreatePackage(r.Context(), UserIDFrom(r.Context()), req.Parent, req.TypeName, req.Price, req.Details)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, p)
}

func (s *Server) handlePackageUpdate(w http.ResponseWriter, r *http.Request) {
	var req packageRequest
	if err := decode(r, &req); err != nil {
		s.writeError(w, err)
		return
	}
	p, err := s.catalogUC.UpdatePackage(r.Context(), UserIDFrom(r.Context()), chi.URLParam(r, "id"), req.Parent, req.TypeName, req.Price, req.Details)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (s *Server) handlePackageDelete(w http.ResponseWriter, r *http.Request) {
	if err := s.catalogUC.DeletePackage(r.Context(), UserIDFrom(r.Context()), chi.URLParam(r, "id")); err != nil {
		s.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handlePackageList(w http.ResponseWriter, r *http.Request) {
	pkgs, err := s.catalogUC.ListPackages(r.Context(), UserIDFrom(r.Context()))
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, struct {
		Data []*model.Package `json:"data"`
	}{Data: pkgs})
}

type addonRequest struct {
	Name  string `json:"name"`
	Price int64  `json:"price"`
}

func (s *Server) handleAddonCreate(w http.ResponseWriter, r *http.Request) {
	var req addonRequest
	if err := decode(r, &req); err != nil {
		s.writeError(w, err)
		return
	}
	a, err := s.catalogUC.CreateAddon(r.Context(), UserIDFrom(r.Context()), req.Name, req.Price)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, a)
}

func (s *Server) handleAddonUpdate(w http.ResponseWriter, r *http.Request) {
	var req addonRequest
	if err := decode(r, &req); err != nil {
		s.writeError(w, err)
		return
	}
	a, err := s.catalogUC.UpdateAddon(r.Context(), UserIDFrom(r.Context()), chi.URLParam(r, "id"), req.Name, req.Price)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, a)
}

func (s *Server) handleAddonDelete(w http.ResponseWriter, r *http.Request) {
	if err := s.catalogUC.DeleteAddon(r.Context(), UserIDFrom(r.Context()), chi.URLParam(r, "id")); err != nil {
		s.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleAddonList(w http.ResponseWriter, r *http.Request) {
	addons, err := s.catalogUC.ListAddons(r.Context(), UserIDFrom(r.Context()))
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, struct {
		Data []*model.Addon `json:"data"`
	}{Data: addons})
}

type discountRequest struct {
	Text    string `json:"text"`
	Enabled bool   `json:"enabled"`
}

func (s *Server) handleDiscountPut(w http.ResponseWriter, r *http.Request) {
	var req discountRequest
	if err := decode(r, &req); err != nil {
		s.writeError(w, err)
		return
	}
	if err := s.catalogUC.SaveDiscount(r.Context(), UserIDFrom(r.Context()), req.Text, req.Enabled); err != nil {
		s.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleDiscountGet(w http.ResponseWriter, r *http.Request) {
	d, err := s.catalogUC.Discount(r.Context(), UserIDFrom(r.Context()))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			writeJSON(w, http.StatusOK, &model.Discount{UserID: UserIDFrom(r.Context())})
			return
		}
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, d)
}

// ===== Deals (vendor view) =====

func (s *Server) handleDealList(w http.ResponseWriter, r *http.Request) {
	deals, err := s.dealUC.List(r.Context(), UserIDFrom(r.Context()))
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, struct {
		Data []*model.Deal `json:"data"`
	}{Data: deals})
}

func (s *Server) handleDealGet(w http.ResponseWriter, r *http.Request) {
	deal, err := s.dealUC.Get(r.Context(), UserIDFrom(r.Context()), chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, deal)
}

// ===== Invoices & receipts =====

func (s *Server) handleDealInvoiceGet(w http.ResponseWriter, r *http.Request) {
	inv, err := s.invoiceUC.GetOrDraft(r.Context(), UserIDFrom(r.Context()), chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, inv)
}

func (s *Server) handleInvoiceSave(w http.ResponseWriter, r *http.Request) {
	var inv model.Invoice
	if err := decode(r, &inv); err != nil {
		s.writeError(w, err)
		return
	}
	saved, err := s.invoiceUC.Save(r.Context(), UserIDFrom(r.Context()), &inv)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, saved)
}

func (s *Server) handleInvoiceList(w http.ResponseWriter, r *http.Request) {
	invs, err := s.invoiceUC.List(r.Context(), UserIDFrom(r.Context()))
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, struct {
		Data []*model.Invoice `json:"data"`
	}{Data: invs})
}

func (s *Server) handleInvoiceGet(w http.ResponseWriter, r *http.Request) {
	inv, err := s.invoiceUC.Get(r.Context(), UserIDFrom(r.Context()), chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, inv)
}

func (s *Server) handleProposeLines(w http.ResponseWriter, r *http.Request) {
	lines, err := s.invoiceUC.ProposeLines(r.Context(), UserIDFrom(r.Context()), chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, struct {
		Data []model.ReceiptLine `json:"data"`
	}{Data: lines})
}

type receiptRequest struct {
	ReceiptNo   string              `json:"receipt_no"`
	ReceiptDate string              `json:"receipt_date"`
	Note        string              `json:"note"`
	Lines       []model.ReceiptLine `json:"lines"`
}

func (s *Server) handleReceiptCreate(w http.ResponseWriter, r *http.Request) {
	var req receiptRequest
	if err := decode(r, &req); err != nil {
		s.writeError(w, err)
		return
	}
	rec, err := s.invoiceUC.RecordReceipt(r.Context(), UserIDFrom(r.Context()), usecase.ReceiptInput{
		InvoiceID:   chi.URLParam(r, "id"),
		ReceiptNo:   req.ReceiptNo,
		ReceiptDate: req.ReceiptDate,
		Note:        req.Note,
		Lines:       req.Lines,
	})
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, rec)
}

func (s *Server) handleReceiptList(w http.ResponseWriter, r *http.Request) {
	// invoice id is optional: /receipts lists all, /invoices/{id}/receipts filters
	recs, err := s.invoiceUC.Receipts(r.Context(), UserIDFrom(r.Context()), chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, struct {
		Data []*model.Receipt `json:"data"`
	}{Data: recs})
}

// ===== MOU =====

func (s *Server) handleMouGet(w http.ResponseWriter, r *http.Request) {
	m, err := s.mouUC.GetOrDraft(r.Context(), UserIDFrom(r.Context()), chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, m)
}

func (s *Server) handleMouPut(w http.ResponseWriter, r *http.Request) {
	var m model.Mou
	if err := decode(r, &m); err != nil {
		s.writeError(w, err)
		return
	}
	m.DealID = chi.URLParam(r, "id")
	saved, err := s.mouUC.Save(r.Context(), UserIDFrom(r.Context()), &m)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, saved)
}

func (s *Server) handleMouDefaultsGet(w http.ResponseWriter, r *http.Request) {
	def, err := s.mouUC.Defaults(r.Context(), UserIDFrom(r.Context()))
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, def)
}

func (s *Server) handleMouDefaultsPut(w http.ResponseWriter, r *http.Request) {
	var def model.MouDefaults
	if err := decode(r, &def); err != nil {
		s.writeError(w, err)
		return
	}
	if err := s.mouUC.SaveDefaults(r.Context(), UserIDFrom(r.Context()), &def); err != nil {
		s.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ===== Superadmin =====

type adminLoginRequest struct {
	Password string `json:"password"`
}

func (s *Server) handleAdminLogin(w http.ResponseWriter, r *http.Request) {
	var req adminLoginRequest
	if err := decode(r, &req); err != nil {
		s.writeError(w, err)
		return
	}
	if s.superadminPassword == "" || req.Password != s.superadminPassword {
		metrics.IncAdminRequest("login", "unauthorized")
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}
	metrics.IncAdminRequest("login", "authorized")
	token, err := s.auth.Mint(w, "admin", RoleAdmin)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, struct {
		Token string `json:"token"`
	}{Token: token})
}

type codesRequest struct {
	Duration string `json:"duration"`
	Count    int    `json:"count"`
}

func (s *Server) handleCodesCreate(w http.ResponseWriter, r *http.Request) {
	var req codesRequest
	if err := decode(r, &req); err != nil {
		s.writeError(w, err)
		return
	}
	codes, err := s.activationUC.GenerateCodes(r.Context(), model.CodeDuration(req.Duration), req.Count)
	if err != nil {
		s.writeError(w, err)
		return
	}
	metrics.IncAdminRequest("codes_create", "authorized")
	writeJSON(w, http.StatusCreated, struct {
		Codes []string `json:"codes"`
	}{Codes: codes})
}

func (s *Server) handleCodesList(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	codes, err := s.activationUC.ListCodes(r.Context(), limit)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, struct {
		Data []*model.RedemptionCode `json:"data"`
	}{Data: codes})
}

func (s *Server) handleAccounts(w http.ResponseWriter, r *http.Request) {
	rows, err := s.statsUC.Overview(r.Context())
	if err != nil {
		s.writeError(w, err)
		return
	}
	totals, err := s.statsUC.Totals(r.Context())
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, struct {
		Data   []usecase.AccountRow  `json:"data"`
		Totals *usecase.AccountStats `json:"totals"`
	}{Data: rows, Totals: totals})
}
