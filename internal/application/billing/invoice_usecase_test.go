package billing_test

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Invoicing-api/internal/application/billing"
	"github.com/jhoicas/Invoicing-api/internal/domain"
	"github.com/jhoicas/Invoicing-api/internal/domain/entity"
)

type invoiceFixture struct {
	uc        *billing.InvoiceUseCase
	customers *memCustomers
	invoices  *memInvoices
	terms     *memTerms
}

func newInvoiceFixture() *invoiceFixture {
	terms := newMemTerms()
	f := &invoiceFixture{
		customers: newMemCustomers(),
		invoices:  newMemInvoices(terms),
		terms:     terms,
	}
	f.uc = billing.NewInvoiceUseCase(f.invoices, f.terms, f.customers)
	return f
}

func (f *invoiceFixture) customer(t *testing.T, name string) *entity.Customer {
	t.Helper()
	c := validCustomer(name)
	require.NoError(t, f.customers.Create(context.Background(), c))
	return c
}

func strPtr(s string) *string { return &s }
func intPtr(i int) *int       { return &i }

func TestInvoiceUseCase_Add_RequiresCustomerAndTerms(t *testing.T) {
	f := newInvoiceFixture()
	ctx := context.Background()

	assert.ErrorIs(t, f.uc.Add(ctx, nil), domain.ErrInvalidInput)
	assert.ErrorIs(t, f.uc.Add(ctx, &entity.Invoice{PaymentTermsID: 1}), domain.ErrInvalidInput)
	assert.ErrorIs(t, f.uc.Add(ctx, &entity.Invoice{CustomerID: 1}), domain.ErrInvalidInput)
	assert.ErrorIs(t, f.uc.Add(ctx, &entity.Invoice{
		CustomerID: 1, PaymentTermsID: 1, PaymentTotal: decimal.NewFromInt(-1),
	}), domain.ErrInvalidInput)
	assert.Empty(t, f.invoices.rows)
}

func TestInvoiceUseCase_AddAndLineItems(t *testing.T) {
	f := newInvoiceFixture()
	ctx := context.Background()
	c := f.customer(t, "Alice")

	inv := &entity.Invoice{CustomerID: c.ID, PaymentTermsID: 3}
	require.NoError(t, f.uc.Add(ctx, inv))
	require.NotZero(t, inv.ID)
	assert.True(t, inv.PaymentTotal.IsZero())

	item := &entity.InvoiceLineItem{
		Amount:      decimal.NewNullDecimal(decimal.RequireFromString("12.50")),
		Description: strPtr("Widgets"),
		InvoiceID:   intPtr(999),
	}
	require.NoError(t, f.uc.AddLineItem(ctx, inv.ID, item))
	require.NotNil(t, item.InvoiceID)
	assert.Equal(t, inv.ID, *item.InvoiceID, "invoice reference is forced to the target invoice")

	got, err := f.uc.GetByID(ctx, inv.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	require.Len(t, got.LineItems, 1)
	assert.Equal(t, "Widgets", *got.LineItems[0].Description)
	require.NotNil(t, got.PaymentTerms)
	assert.Equal(t, 30, got.PaymentTerms.DueDays)
}

func TestInvoiceUseCase_AddLineItem_UnknownInvoice(t *testing.T) {
	f := newInvoiceFixture()
	err := f.uc.AddLineItem(context.Background(), 77, &entity.InvoiceLineItem{})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	err = f.uc.AddLineItem(context.Background(), 1, nil)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestInvoiceUseCase_CustomerIDByInvoiceID(t *testing.T) {
	f := newInvoiceFixture()
	ctx := context.Background()
	c := f.customer(t, "Alice")
	inv := &entity.Invoice{CustomerID: c.ID, PaymentTermsID: 1}
	require.NoError(t, f.uc.Add(ctx, inv))

	id, err := f.uc.CustomerIDByInvoiceID(ctx, inv.ID)
	require.NoError(t, err)
	require.NotNil(t, id)
	assert.Equal(t, c.ID, *id)

	id, err = f.uc.CustomerIDByInvoiceID(ctx, 12345)
	require.NoError(t, err)
	assert.Nil(t, id)
}

func TestInvoiceUseCase_ListByCustomer(t *testing.T) {
	f := newInvoiceFixture()
	ctx := context.Background()
	alice := f.customer(t, "Alice")
	bob := f.customer(t, "Bob")
	for i := 0; i < 2; i++ {
		require.NoError(t, f.uc.Add(ctx, &entity.Invoice{CustomerID: alice.ID, PaymentTermsID: 1}))
	}
	require.NoError(t, f.uc.Add(ctx, &entity.Invoice{CustomerID: bob.ID, PaymentTermsID: 2}))

	list, err := f.uc.ListByCustomer(ctx, alice.ID)
	require.NoError(t, err)
	assert.Len(t, list, 2)
	for _, inv := range list {
		assert.Equal(t, alice.ID, inv.CustomerID)
	}
}

func TestInvoiceUseCase_ListPaymentTerms(t *testing.T) {
	f := newInvoiceFixture()
	terms, err := f.uc.ListPaymentTerms(context.Background())
	require.NoError(t, err)
	assert.Len(t, terms, 3)
}

// ─── CustomerInvoices view ────────────────────────────────────────────────────

func TestInvoiceUseCase_CustomerInvoices_NoInvoices(t *testing.T) {
	f := newInvoiceFixture()
	c := f.customer(t, "Alice")

	view, err := f.uc.CustomerInvoices(context.Background(), c.ID, nil)
	require.NoError(t, err)
	assert.Equal(t, c.ID, view.Customer.ID)
	assert.Empty(t, view.Invoices)
	assert.Nil(t, view.Selected)
	assert.Equal(t, billing.NoTermsDescription, view.TermsDescription)
	assert.Len(t, view.PaymentTerms, 3)
}

func TestInvoiceUseCase_CustomerInvoices_Selection(t *testing.T) {
	f := newInvoiceFixture()
	ctx := context.Background()
	c := f.customer(t, "Alice")
	first := &entity.Invoice{CustomerID: c.ID, PaymentTermsID: 2}
	second := &entity.Invoice{CustomerID: c.ID, PaymentTermsID: 3}
	require.NoError(t, f.uc.Add(ctx, first))
	require.NoError(t, f.uc.Add(ctx, second))

	view, err := f.uc.CustomerInvoices(ctx, c.ID, nil)
	require.NoError(t, err)
	require.NotNil(t, view.Selected)
	assert.Equal(t, first.ID, view.Selected.ID)
	assert.Equal(t, "Net due 20 days", view.TermsDescription)

	view, err = f.uc.CustomerInvoices(ctx, c.ID, intPtr(second.ID))
	require.NoError(t, err)
	assert.Equal(t, second.ID, view.Selected.ID)

	view, err = f.uc.CustomerInvoices(ctx, c.ID, intPtr(9999))
	require.NoError(t, err)
	assert.Equal(t, first.ID, view.Selected.ID, "unknown selection falls back to the first invoice")
}

func TestInvoiceUseCase_CustomerInvoices_InactiveCustomer(t *testing.T) {
	f := newInvoiceFixture()
	ctx := context.Background()

	_, err := f.uc.CustomerInvoices(ctx, 404, nil)
	assert.True(t, errors.Is(err, domain.ErrNotFound))

	c := f.customer(t, "Alice")
	row := f.customers.rows[c.ID]
	row.IsDeleted = true
	f.customers.rows[c.ID] = row
	_, err = f.uc.CustomerInvoices(ctx, c.ID, nil)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
