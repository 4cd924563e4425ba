// File: internal/infra/web/mock_test.go
//go:build !integration

package web

import (
	"context"
	"net/http/httptest"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/jackc/pgx/v4"
	"github.com/rs/zerolog"

	"vendor-pricelist-platform/internal/domain"
	"vendor-pricelist-platform/internal/domain/model"
	"vendor-pricelist-platform/internal/domain/ports/repository"
	"vendor-pricelist-platform/internal/infra/i18n"
	"vendor-pricelist-platform/internal/usecase"
)

// memStore backs every repository interface for handler tests. Handlers
// only see use cases, so one flat store per entity is enough here; the
// per-repo mocks with failure injection live in the usecase tests.
type memStore struct {
	mu sync.RWMutex

	codes     map[string]*model.RedemptionCode
	windows   map[string]*model.AccessWindow
	vendors   map[string]*model.VendorProfile
	packages  map[string]*model.Package
	addons    map[string]*model.Addon
	discounts map[string]*model.Discount
	deals     map[string]*model.Deal
	invoices  map[string]*model.Invoice
	receipts  map[string]*model.Receipt
	mous      map[string]*model.Mou
	mouDefs   map[string]*model.MouDefaults
}

func newMemStore() *memStore {
	return &memStore{
		codes:     make(map[string]*model.RedemptionCode),
		windows:   make(map[string]*model.AccessWindow),
		vendors:   make(map[string]*model.VendorProfile),
		packages:  make(map[string]*model.Package),
		addons:    make(map[string]*model.Addon),
		discounts: make(map[string]*model.Discount),
		deals:     make(map[string]*model.Deal),
		invoices:  make(map[string]*model.Invoice),
		receipts:  make(map[string]*model.Receipt),
		mous:      make(map[string]*model.Mou),
		mouDefs:   make(map[string]*model.MouDefaults),
	}
}

func (m *memStore) WithTx(ctx context.Context, _ pgx.TxOptions, fn func(ctx context.Context, tx repository.Tx) error) error {
	return fn(ctx, nil)
}

// RedemptionCodeRepository

func (m *memStore) Save(ctx context.Context, _ repository.Tx, c *model.RedemptionCode) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *c
	m.codes[c.Code] = &cp
	return nil
}

func (m *memStore) FindByCode(ctx context.Context, _ repository.Tx, code string) (*model.RedemptionCode, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	c, ok := m.codes[code]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *c
	return &cp, nil
}

func (m *memStore) ListRecent(ctx context.Context, _ repository.Tx, limit int) ([]*model.RedemptionCode, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]*model.RedemptionCode, 0, len(m.codes))
	for _, c := range m.codes {
		cp := *c
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// AccessWindowRepository

func (m *memStore) Upsert(ctx context.Context, _ repository.Tx, w *model.AccessWindow) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *w
	m.windows[w.UserID] = &cp
	return nil
}

func (m *memStore) FindByUser(ctx context.Context, _ repository.Tx, userID string) (*model.AccessWindow, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	w, ok := m.windows[userID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *w
	return &cp, nil
}

func (m *memStore) ListAll(ctx context.Context, _ repository.Tx) ([]*model.AccessWindow, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]*model.AccessWindow, 0, len(m.windows))
	for _, w := range m.windows {
		cp := *w
		out = append(out, &cp)
	}
	return out, nil
}

func (m *memStore) CountByActivity(ctx context.Context, _ repository.Tx, now time.Time) (int, int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var active, inactive int
	for _, w := range m.windows {
		if w.ActiveAt(now) {
			active++
		} else {
			inactive++
		}
	}
	return active, inactive, nil
}

// vendorStore narrows memStore to the vendor repo; the FindByUser method
// name collides with AccessWindowRepository otherwise.
type vendorStore struct{ s *memStore }

func (v vendorStore) Save(ctx context.Context, _ repository.Tx, p *model.VendorProfile) error {
	v.s.mu.Lock()
	defer v.s.mu.Unlock()
	cp := *p
	v.s.vendors[p.UserID] = &cp
	return nil
}

func (v vendorStore) FindByUser(ctx context.Context, _ repository.Tx, userID string) (*model.VendorProfile, error) {
	v.s.mu.RLock()
	defer v.s.mu.RUnlock()
	p, ok := v.s.vendors[userID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *p
	return &cp, nil
}

type packageStore struct{ s *memStore }

func (p packageStore) Create(ctx context.Context, _ repository.Tx, pkg *model.Package) error {
	p.s.mu.Lock()
	defer p.s.mu.Unlock()
	cp := *pkg
	p.s.packages[pkg.ID] = &cp
	return nil
}

func (p packageStore) Update(ctx context.Context, _ repository.Tx, pkg *model.Package) error {
	p.s.mu.Lock()
	defer p.s.mu.Unlock()
	if _, ok := p.s.packages[pkg.ID]; !ok {
		return domain.ErrNotFound
	}
	cp := *pkg
	p.s.packages[pkg.ID] = &cp
	return nil
}

func (p packageStore) Delete(ctx context.Context, _ repository.Tx, userID, id string) error {
	p.s.mu.Lock()
	defer p.s.mu.Unlock()
	pkg, ok := p.s.packages[id]
	if !ok || pkg.UserID != userID {
		return domain.ErrNotFound
	}
	delete(p.s.packages, id)
	return nil
}

func (p packageStore) ListByUser(ctx context.Context, _ repository.Tx, userID string) ([]*model.Package, error) {
	p.s.mu.RLock()
	defer p.s.mu.RUnlock()
	out := make([]*model.Package, 0)
	for _, pkg := range p.s.packages {
		if pkg.UserID == userID {
			cp := *pkg
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Parent != out[j].Parent {
			return out[i].Parent < out[j].Parent
		}
		return out[i].TypeName < out[j].TypeName
	})
	return out, nil
}

func (p packageStore) FindByID(ctx context.Context, _ repository.Tx, id string) (*model.Package, error) {
	p.s.mu.RLock()
	defer p.s.mu.RUnlock()
	pkg, ok := p.s.packages[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *pkg
	return &cp, nil
}

type addonStore struct{ s *memStore }

func (a addonStore) Create(ctx context.Context, _ repository.Tx, ad *model.Addon) error {
	a.s.mu.Lock()
	defer a.s.mu.Unlock()
	cp := *ad
	a.s.addons[ad.ID] = &cp
	return nil
}

func (a addonStore) Update(ctx context.Context, _ repository.Tx, ad *model.Addon) error {
	a.s.mu.Lock()
	defer a.s.mu.Unlock()
	if _, ok := a.s.addons[ad.ID]; !ok {
		return domain.ErrNotFound
	}
	cp := *ad
	a.s.addons[ad.ID] = &cp
	return nil
}

func (a addonStore) Delete(ctx context.Context, _ repository.Tx, userID, id string) error {
	a.s.mu.Lock()
	defer a.s.mu.Unlock()
	ad, ok := a.s.addons[id]
	if !ok || ad.UserID != userID {
		return domain.ErrNotFound
	}
	delete(a.s.addons, id)
	return nil
}

func (a addonStore) ListByUser(ctx context.Context, _ repository.Tx, userID string) ([]*model.Addon, error) {
	a.s.mu.RLock()
	defer a.s.mu.RUnlock()
	out := make([]*model.Addon, 0)
	for _, ad := range a.s.addons {
		if ad.UserID == userID {
			cp := *ad
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

type discountStore struct{ s *memStore }

func (d discountStore) Upsert(ctx context.Context, _ repository.Tx, disc *model.Discount) error {
	d.s.mu.Lock()
	defer d.s.mu.Unlock()
	cp := *disc
	d.s.discounts[disc.UserID] = &cp
	return nil
}

func (d discountStore) FindByUser(ctx context.Context, _ repository.Tx, userID string) (*model.Discount, error) {
	d.s.mu.RLock()
	defer d.s.mu.RUnlock()
	disc, ok := d.s.discounts[userID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *disc
	return &cp, nil
}

type dealStore struct{ s *memStore }

func (d dealStore) Create(ctx context.Context, _ repository.Tx, deal *model.Deal) error {
	d.s.mu.Lock()
	defer d.s.mu.Unlock()
	cp := *deal
	d.s.deals[deal.ID] = &cp
	return nil
}

func (d dealStore) FindByID(ctx context.Context, _ repository.Tx, id string) (*model.Deal, error) {
	d.s.mu.RLock()
	defer d.s.mu.RUnlock()
	deal, ok := d.s.deals[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *deal
	return &cp, nil
}

func (d dealStore) ListByUser(ctx context.Context, _ repository.Tx, userID string) ([]*model.Deal, error) {
	d.s.mu.RLock()
	defer d.s.mu.RUnlock()
	out := make([]*model.Deal, 0)
	for _, deal := range d.s.deals {
		if deal.UserID == userID {
			cp := *deal
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

type invoiceStore struct{ s *memStore }

func (i invoiceStore) Save(ctx context.Context, _ repository.Tx, inv *model.Invoice) error {
	i.s.mu.Lock()
	defer i.s.mu.Unlock()
	cp := *inv
	cp.Terms = append([]model.Term(nil), inv.Terms...)
	i.s.invoices[inv.ID] = &cp
	return nil
}

func (i invoiceStore) FindByID(ctx context.Context, _ repository.Tx, id string) (*model.Invoice, error) {
	i.s.mu.RLock()
	defer i.s.mu.RUnlock()
	inv, ok := i.s.invoices[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *inv
	cp.Terms = append([]model.Term(nil), inv.Terms...)
	return &cp, nil
}

func (i invoiceStore) ListByUser(ctx context.Context, _ repository.Tx, userID string) ([]*model.Invoice, error) {
	i.s.mu.RLock()
	defer i.s.mu.RUnlock()
	out := make([]*model.Invoice, 0)
	for _, inv := range i.s.invoices {
		if inv.UserID == userID {
			cp := *inv
			cp.Terms = append([]model.Term(nil), inv.Terms...)
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(a, b int) bool { return out[a].CreatedAt.After(out[b].CreatedAt) })
	return out, nil
}

type receiptStore struct{ s *memStore }

func (r receiptStore) Create(ctx context.Context, _ repository.Tx, rec *model.Receipt) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cp := *rec
	cp.Lines = append([]model.ReceiptLine(nil), rec.Lines...)
	r.s.receipts[rec.ID] = &cp
	return nil
}

func (r receiptStore) ListByUser(ctx context.Context, _ repository.Tx, userID string) ([]*model.Receipt, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := make([]*model.Receipt, 0)
	for _, rec := range r.s.receipts {
		if rec.UserID == userID {
			cp := *rec
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(a, b int) bool { return out[a].CreatedAt.After(out[b].CreatedAt) })
	return out, nil
}

func (r receiptStore) ListByInvoice(ctx context.Context, _ repository.Tx, invoiceID string) ([]*model.Receipt, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := make([]*model.Receipt, 0)
	for _, rec := range r.s.receipts {
		if rec.InvoiceID == invoiceID {
			cp := *rec
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(a, b int) bool { return out[a].CreatedAt.After(out[b].CreatedAt) })
	return out, nil
}

type mouStore struct{ s *memStore }

func (m mouStore) Save(ctx context.Context, _ repository.Tx, mou *model.Mou) error {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	cp := *mou
	m.s.mous[mou.DealID] = &cp
	return nil
}

func (m mouStore) FindByDeal(ctx context.Context, _ repository.Tx, dealID string) (*model.Mou, error) {
	m.s.mu.RLock()
	defer m.s.mu.RUnlock()
	mou, ok := m.s.mous[dealID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *mou
	return &cp, nil
}

func (m mouStore) SaveDefaults(ctx context.Context, _ repository.Tx, d *model.MouDefaults) error {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	cp := *d
	m.s.mouDefs[d.UserID] = &cp
	return nil
}

func (m mouStore) FindDefaults(ctx context.Context, _ repository.Tx, userID string) (*model.MouDefaults, error) {
	m.s.mu.RLock()
	defer m.s.mu.RUnlock()
	d, ok := m.s.mouDefs[userID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *d
	return &cp, nil
}

type testEnv struct {
	store  *memStore
	server *Server
	auth   *AuthManager
}

const testAdminPassword = "super-secret"

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	store := newMemStore()
	windows := store // AccessWindowRepository + RedemptionCodeRepository
	vendors := vendorStore{store}
	packages := packageStore{store}
	addons := addonStore{store}
	discounts := discountStore{store}
	deals := dealStore{store}
	invoices := invoiceStore{store}
	receipts := receiptStore{store}
	mous := mouStore{store}

	tr, err := i18n.NewTranslator(i18n.LocalesFS, "id")
	if err != nil {
		t.Fatalf("translator: %v", err)
	}
	logger := zerolog.Nop()
	auth := NewAuthManager("test-secret", false, "", time.Hour)

	srv := NewServer(ServerDeps{
		Activation: usecase.NewActivationUseCase(windows, windows, store),
		Catalog:    usecase.NewCatalogUseCase(vendors, packages, addons, discounts, windows),
		Pricelist:  usecase.NewPricelistUseCase(vendors, packages, addons, discounts, windows),
		Deals:      usecase.NewDealUseCase(deals, packages, addons, windows),
		Invoices:   usecase.NewInvoiceUseCase(invoices, receipts, deals, windows, store),
		Mou:        usecase.NewMouUseCase(mous, deals, windows),
		Stats:      usecase.NewStatsUseCase(windows, vendors),

		Auth:               auth,
		SuperadminPassword: testAdminPassword,

		Translator: tr,
		Logger:     &logger,
	})
	return &testEnv{store: store, server: srv, auth: auth}
}

// vendorToken mints a vendor session for userID.
func (e *testEnv) vendorToken(t *testing.T, userID string) string {
	t.Helper()
	tok, err := e.auth.Mint(httptest.NewRecorder(), userID, RoleVendor)
	if err != nil {
		t.Fatalf("mint vendor token: %v", err)
	}
	return tok
}

func (e *testEnv) adminToken(t *testing.T) string {
	t.Helper()
	tok, err := e.auth.Mint(httptest.NewRecorder(), "admin", RoleAdmin)
	if err != nil {
		t.Fatalf("mint admin token: %v", err)
	}
	return tok
}

// seedActive gives userID an access window good for another day.
func (e *testEnv) seedActive(userID string) {
	e.store.windows[userID] = &model.AccessWindow{
		UserID:    userID,
		ExpiresAt: time.Now().Add(24 * time.Hour),
	}
}

func (e *testEnv) seedCatalog(userID string) (pkgID, addonID string) {
	e.store.vendors[userID] = &model.VendorProfile{
		UserID:   userID,
		Name:     "Studio Cahaya",
		WhatsApp: "0812345678",
	}
	pkgID, addonID = "pkg-1", "add-1"
	e.store.packages[pkgID] = &model.Package{
		ID:       pkgID,
		UserID:   userID,
		Parent:   "wedding",
		TypeName: "silver",
		Details:  []string{"2 fotografer"},
		Price:    1_500_000,
	}
	e.store.addons[addonID] = &model.Addon{
		ID:     addonID,
		UserID: userID,
		Name:   "Drone",
		Price:  500_000,
	}
	return pkgID, addonID
}
