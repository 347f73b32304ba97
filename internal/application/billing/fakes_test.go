package billing_test

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/jhoicas/Invoicing-api/internal/domain"
	"github.com/jhoicas/Invoicing-api/internal/domain/customer"
	"github.com/jhoicas/Invoicing-api/internal/domain/entity"
	"github.com/jhoicas/Invoicing-api/internal/domain/repository"
)

// ── customers ────────────────────────────────────────────────────────────────

type memCustomers struct {
	mu     sync.Mutex
	nextID int
	rows   map[int]entity.Customer
	// invoices owned by each customer, removed together on purge
	owned map[int][]int
}

func newMemCustomers() *memCustomers {
	return &memCustomers{rows: map[int]entity.Customer{}, owned: map[int][]int{}}
}

func (m *memCustomers) Create(_ context.Context, c *entity.Customer) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextID++
	c.ID = m.nextID
	m.rows[c.ID] = *c
	return nil
}

func (m *memCustomers) GetByID(_ context.Context, id int, includeDeleted bool) (*entity.Customer, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	c, ok := m.rows[id]
	if !ok || (c.IsDeleted && !includeDeleted) {
		return nil, nil
	}
	return &c, nil
}

func (m *memCustomers) ListByNameRange(_ context.Context, start, end string) ([]*entity.Customer, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	g := customer.Group{Start: start, End: end}
	var out []*entity.Customer
	for _, c := range m.rows {
		if c.IsDeleted || !g.Contains(c.Name) {
			continue
		}
		c := c
		out = append(out, &c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (m *memCustomers) CountByInitial(_ context.Context) (map[string]int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	counts := map[string]int{}
	for _, c := range m.rows {
		if c.IsDeleted {
			continue
		}
		if initial, ok := customer.Initial(c.Name); ok {
			counts[initial]++
		}
	}
	return counts, nil
}

func (m *memCustomers) Update(_ context.Context, c *entity.Customer) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cur, ok := m.rows[c.ID]
	if !ok {
		return domain.ErrNotFound
	}
	next := *c
	next.IsDeleted = cur.IsDeleted
	next.DeletedAt = cur.DeletedAt
	m.rows[c.ID] = next
	return nil
}

func (m *memCustomers) SetDeleteState(_ context.Context, c *entity.Customer) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cur, ok := m.rows[c.ID]
	if !ok {
		return domain.ErrNotFound
	}
	cur.IsDeleted = c.IsDeleted
	cur.DeletedAt = c.DeletedAt
	m.rows[c.ID] = cur
	return nil
}

func (m *memCustomers) ListPendingDeletes(_ context.Context, cutoff time.Time, _ bool) ([]*entity.Customer, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*entity.Customer
	for _, c := range m.rows {
		if c.IsDeleted && c.DeletedAt != nil && !c.DeletedAt.After(cutoff) {
			c := c
			out = append(out, &c)
		}
	}
	return out, nil
}

func (m *memCustomers) DeletePending(_ context.Context, ids []int) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var n int64
	for _, id := range ids {
		if c, ok := m.rows[id]; ok && c.IsDeleted {
			delete(m.rows, id)
			delete(m.owned, id)
			n++
		}
	}
	return n, nil
}

func (m *memCustomers) exists(id int) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.rows[id]
	return ok
}

// fakeTx runs fn against the same repository and counts invocations.
type fakeTx struct {
	repo  repository.CustomerRepository
	calls int
}

func (f *fakeTx) RunCustomers(_ context.Context, fn func(repository.CustomerRepository) error) error {
	f.calls++
	return fn(f.repo)
}

// ── invoices ─────────────────────────────────────────────────────────────────

type memInvoices struct {
	nextID     int
	nextItemID int
	rows       map[int]*entity.Invoice
	terms      *memTerms
}

func newMemInvoices(terms *memTerms) *memInvoices {
	return &memInvoices{rows: map[int]*entity.Invoice{}, terms: terms}
}

func (m *memInvoices) Create(ctx context.Context, inv *entity.Invoice) error {
	m.nextID++
	inv.ID = m.nextID
	cp := *inv
	m.rows[inv.ID] = &cp
	return nil
}

func (m *memInvoices) CreateLineItem(_ context.Context, item *entity.InvoiceLineItem) error {
	if item.InvoiceID == nil {
		return domain.ErrInvalidInput
	}
	inv, ok := m.rows[*item.InvoiceID]
	if !ok {
		return domain.ErrNotFound
	}
	m.nextItemID++
	item.ID = m.nextItemID
	cp := *item
	inv.LineItems = append(inv.LineItems, &cp)
	return nil
}

func (m *memInvoices) load(inv *entity.Invoice) *entity.Invoice {
	cp := *inv
	if m.terms != nil {
		cp.PaymentTerms, _ = m.terms.GetByID(context.Background(), cp.PaymentTermsID)
	}
	return &cp
}

func (m *memInvoices) GetByID(_ context.Context, id int) (*entity.Invoice, error) {
	inv, ok := m.rows[id]
	if !ok {
		return nil, nil
	}
	return m.load(inv), nil
}

func (m *memInvoices) ListByCustomer(_ context.Context, customerID int) ([]*entity.Invoice, error) {
	var out []*entity.Invoice
	for _, inv := range m.rows {
		if inv.CustomerID == customerID {
			out = append(out, m.load(inv))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *memInvoices) GetCustomerID(_ context.Context, invoiceID int) (*int, error) {
	inv, ok := m.rows[invoiceID]
	if !ok {
		return nil, nil
	}
	id := inv.CustomerID
	return &id, nil
}

// ── payment terms ────────────────────────────────────────────────────────────

type memTerms struct {
	rows []*entity.PaymentTerms
}

func newMemTerms() *memTerms {
	return &memTerms{rows: []*entity.PaymentTerms{
		{ID: 1, Description: "Net due 10 days", DueDays: 10},
		{ID: 2, Description: "Net due 20 days", DueDays: 20},
		{ID: 3, Description: "Net due 30 days", DueDays: 30},
	}}
}

func (m *memTerms) List(_ context.Context) ([]*entity.PaymentTerms, error) {
	return m.rows, nil
}

func (m *memTerms) GetByID(_ context.Context, id int) (*entity.PaymentTerms, error) {
	for _, t := range m.rows {
		if t.ID == id {
			return t, nil
		}
	}
	return nil, nil
}

// ── helpers ──────────────────────────────────────────────────────────────────

type clock struct{ t time.Time }

func newClock() *clock {
	return &clock{t: time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)}
}

func (c *clock) Now() time.Time          { return c.t }
func (c *clock) Advance(d time.Duration) { c.t = c.t.Add(d) }

func validCustomer(name string) *entity.Customer {
	return &entity.Customer{
		Name:            name,
		Address1:        "1 Main St",
		City:            "Springfield",
		ProvinceOrState: "ON",
		ZipOrPostalCode: "K1A 0B1",
		Phone:           "613-555-0100",
		ContactEmail:    strings.ToLower(name) + "@example.com",
	}
}
