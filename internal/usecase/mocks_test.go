// File: internal/usecase/mocks_test.go
package usecase

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/jackc/pgx/v4"

	"vendor-pricelist-platform/internal/domain"
	"vendor-pricelist-platform/internal/domain/model"
	"vendor-pricelist-platform/internal/domain/ports/repository"
)

// memTxManager runs the callback with a nil handle; the in-memory repos
// ignore the tx argument.
type memTxManager struct {
	beginErr error // used by tests to simulate transaction failures
}

func (m *memTxManager) WithTx(ctx context.Context, _ pgx.TxOptions, fn func(ctx context.Context, tx repository.Tx) error) error {
	if m.beginErr != nil {
		return m.beginErr
	}
	return fn(ctx, nil)
}

// memCodeRepo is a small in-memory implementation used by unit tests.
type memCodeRepo struct {
	mu      sync.RWMutex
	store   map[string]*model.RedemptionCode // by normalized code
	saveErr error
}

func newMemCodeRepo() *memCodeRepo {
	return &memCodeRepo{store: make(map[string]*model.RedemptionCode)}
}

func (m *memCodeRepo) Save(ctx context.Context, _ repository.Tx, code *model.RedemptionCode) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *code
	m.store[code.Code] = &cp
	return nil
}

func (m *memCodeRepo) FindByCode(ctx context.Context, _ repository.Tx, code string) (*model.RedemptionCode, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	c, ok := m.store[code]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *c
	return &cp, nil
}

func (m *memCodeRepo) ListRecent(ctx context.Context, _ repository.Tx, limit int) ([]*model.RedemptionCode, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]*model.RedemptionCode, 0, len(m.store))
	for _, c := range m.store {
		cp := *c
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

type memWindowRepo struct {
	mu    sync.RWMutex
	store map[string]*model.AccessWindow // by user id
}

func newMemWindowRepo() *memWindowRepo {
	return &memWindowRepo{store: make(map[string]*model.AccessWindow)}
}

func (m *memWindowRepo) Upsert(ctx context.Context, _ repository.Tx, w *model.AccessWindow) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *w
	m.store[w.UserID] = &cp
	return nil
}

func (m *memWindowRepo) FindByUser(ctx context.Context, _ repository.Tx, userID string) (*model.AccessWindow, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	w, ok := m.store[userID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *w
	return &cp, nil
}

func (m *memWindowRepo) ListAll(ctx context.Context, _ repository.Tx) ([]*model.AccessWindow, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]*model.AccessWindow, 0, len(m.store))
	for _, w := range m.store {
		cp := *w
		out = append(out, &cp)
	}
	return out, nil
}

func (m *memWindowRepo) CountByActivity(ctx context.Context, _ repository.Tx, now time.Time) (int, int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var active, inactive int
	for _, w := range m.store {
		if w.ActiveAt(now) {
			active++
		} else {
			inactive++
		}
	}
	return active, inactive, nil
}

type memVendorRepo struct {
	mu    sync.RWMutex
	store map[string]*model.VendorProfile
}

func newMemVendorRepo() *memVendorRepo {
	return &memVendorRepo{store: make(map[string]*model.VendorProfile)}
}

func (m *memVendorRepo) Save(ctx context.Context, _ repository.Tx, v *model.VendorProfile) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *v
	m.store[v.UserID] = &cp
	return nil
}

func (m *memVendorRepo) FindByUser(ctx context.Context, _ repository.Tx, userID string) (*model.VendorProfile, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.store[userID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *v
	return &cp, nil
}

type memPackageRepo struct {
	mu    sync.RWMutex
	store map[string]*model.Package
}

func newMemPackageRepo() *memPackageRepo {
	return &memPackageRepo{store: make(map[string]*model.Package)}
}

func (m *memPackageRepo) Create(ctx context.Context, _ repository.Tx, p *model.Package) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *p
	m.store[p.ID] = &cp
	return nil
}

func (m *memPackageRepo) Update(ctx context.Context, _ repository.Tx, p *model.Package) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.store[p.ID]; !ok {
		return domain.ErrNotFound
	}
	cp := *p
	m.store[p.ID] = &cp
	return nil
}

func (m *memPackageRepo) Delete(ctx context.Context, _ repository.Tx, userID, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.store[id]
	if !ok || p.UserID != userID {
		return domain.ErrNotFound
	}
	delete(m.store, id)
	return nil
}

func (m *memPackageRepo) ListByUser(ctx context.Context, _ repository.Tx, userID string) ([]*model.Package, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]*model.Package, 0)
	for _, p := range m.store {
		if p.UserID == userID {
			cp := *p
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

func (m *memPackageRepo) FindByID(ctx context.Context, _ repository.Tx, id string) (*model.Package, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	p, ok := m.store[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *p
	return &cp, nil
}

type memAddonRepo struct {
	mu    sync.RWMutex
	store map[string]*model.Addon
}

func newMemAddonRepo() *memAddonRepo {
	return &memAddonRepo{store: make(map[string]*model.Addon)}
}

func (m *memAddonRepo) Create(ctx context.Context, _ repository.Tx, a *model.Addon) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *a
	m.store[a.ID] = &cp
	return nil
}

func (m *memAddonRepo) Update(ctx context.Context, _ repository.Tx, a *model.Addon) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.store[a.ID]; !ok {
		return domain.ErrNotFound
	}
	cp := *a
	m.store[a.ID] = &cp
	return nil
}

func (m *memAddonRepo) Delete(ctx context.Context, _ repository.Tx, userID, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	a, ok := m.store[id]
	if !ok || a.UserID != userID {
		return domain.ErrNotFound
	}
	delete(m.store, id)
	return nil
}

func (m *memAddonRepo) ListByUser(ctx context.Context, _ repository.Tx, userID string) ([]*model.Addon, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]*model.Addon, 0)
	for _, a := range m.store {
		if a.UserID == userID {
			cp := *a
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

type memDiscountRepo struct {
	mu    sync.RWMutex
	store map[string]*model.Discount
}

func newMemDiscountRepo() *memDiscountRepo {
	return &memDiscountRepo{store: make(map[string]*model.Discount)}
}

func (m *memDiscountRepo) Upsert(ctx context.Context, _ repository.Tx, d *model.Discount) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *d
	m.store[d.UserID] = &cp
	return nil
}

func (m *memDiscountRepo) FindByUser(ctx context.Context, _ repository.Tx, userID string) (*model.Discount, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	d, ok := m.store[userID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *d
	return &cp, nil
}

type memDealRepo struct {
	mu    sync.RWMutex
	store map[string]*model.Deal
}

func newMemDealRepo() *memDealRepo {
	return &memDealRepo{store: make(map[string]*model.Deal)}
}

func (m *memDealRepo) Create(ctx context.Context, _ repository.Tx, d *model.Deal) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *d
	m.store[d.ID] = &cp
	return nil
}

func (m *memDealRepo) FindByID(ctx context.Context, _ repository.Tx, id string) (*model.Deal, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	d, ok := m.store[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *d
	return &cp, nil
}

func (m *memDealRepo) ListByUser(ctx context.Context, _ repository.Tx, userID string) ([]*model.Deal, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]*model.Deal, 0)
	for _, d := range m.store {
		if d.UserID == userID {
			cp := *d
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

type memInvoiceRepo struct {
	mu    sync.RWMutex
	store map[string]*model.Invoice
}

func newMemInvoiceRepo() *memInvoiceRepo {
	return &memInvoiceRepo{store: make(map[string]*model.Invoice)}
}

func (m *memInvoiceRepo) Save(ctx context.Context, _ repository.Tx, inv *model.Invoice) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *inv
	cp.Terms = append([]model.Term(nil), inv.Terms...)
	m.store[inv.ID] = &cp
	return nil
}

func (m *memInvoiceRepo) FindByID(ctx context.Context, _ repository.Tx, id string) (*model.Invoice, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	inv, ok := m.store[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *inv
	cp.Terms = append([]model.Term(nil), inv.Terms...)
	return &cp, nil
}

func (m *memInvoiceRepo) ListByUser(ctx context.Context, _ repository.Tx, userID string) ([]*model.Invoice, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]*model.Invoice, 0)
	for _, inv := range m.store {
		if inv.UserID == userID {
			cp := *inv
			cp.Terms = append([]model.Term(nil), inv.Terms...)
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

type memReceiptRepo struct {
	mu    sync.RWMutex
	store map[string]*model.Receipt
}

func newMemReceiptRepo() *memReceiptRepo {
	return &memReceiptRepo{store: make(map[string]*model.Receipt)}
}

func (m *memReceiptRepo) Create(ctx context.Context, _ repository.Tx, r *model.Receipt) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *r
	cp.Lines = append([]model.ReceiptLine(nil), r.Lines...)
	m.store[r.ID] = &cp
	return nil
}

func (m *memReceiptRepo) ListByUser(ctx context.Context, _ repository.Tx, userID string) ([]*model.Receipt, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]*model.Receipt, 0)
	for _, r := range m.store {
		if r.UserID == userID {
			cp := *r
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (m *memReceiptRepo) ListByInvoice(ctx context.Context, _ repository.Tx, invoiceID string) ([]*model.Receipt, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]*model.Receipt, 0)
	for _, r := range m.store {
		if r.InvoiceID == invoiceID {
			cp := *r
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

type memMouRepo struct {
	mu       sync.RWMutex
	store    map[string]*model.Mou         // by deal id
	defaults map[string]*model.MouDefaults // by user id
}

func newMemMouRepo() *memMouRepo {
	return &memMouRepo{
		store:    make(map[string]*model.Mou),
		defaults: make(map[string]*model.MouDefaults),
	}
}

func (m *memMouRepo) Save(ctx context.Context, _ repository.Tx, mou *model.Mou) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *mou
	m.store[mou.DealID] = &cp
	return nil
}

func (m *memMouRepo) FindByDeal(ctx context.Context, _ repository.Tx, dealID string) (*model.Mou, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	mou, ok := m.store[dealID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *mou
	return &cp, nil
}

func (m *memMouRepo) SaveDefaults(ctx context.Context, _ repository.Tx, d *model.MouDefaults) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *d
	m.defaults[d.UserID] = &cp
	return nil
}

func (m *memMouRepo) FindDefaults(ctx context.Context, _ repository.Tx, userID string) (*model.MouDefaults, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	d, ok := m.defaults[userID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *d
	return &cp, nil
}

// activeWindow seeds an account whose access lasts until tomorrow.
func activeWindow(repo *memWindowRepo, userID string) {
	repo.store[userID] = &model.AccessWindow{
		UserID:    userID,
		ExpiresAt: time.Now().Add(24 * time.Hour),
	}
}
