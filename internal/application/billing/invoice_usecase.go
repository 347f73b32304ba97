package billing

import (
	"context"
	"fmt"

	"github.com/jhoicas/Invoicing-api/internal/domain"
	"github.com/jhoicas/Invoicing-api/internal/domain/entity"
	"github.com/jhoicas/Invoicing-api/internal/domain/repository"
)

// NoTermsDescription is shown when a customer has no invoices to derive terms from.
const NoTermsDescription = "N/A"

// InvoiceUseCase covers invoices, their line items and the payment terms catalogue.
type InvoiceUseCase struct {
	invoices  repository.InvoiceRepository
	terms     repository.PaymentTermsRepository
	customers repository.CustomerRepository
}

// NewInvoiceUseCase builds the use case.
func NewInvoiceUseCase(
	invoices repository.InvoiceRepository,
	terms repository.PaymentTermsRepository,
	customers repository.CustomerRepository,
) *InvoiceUseCase {
	return &InvoiceUseCase{invoices: invoices, terms: terms, customers: customers}
}

// ListByCustomer returns the invoices of a customer with terms and line items loaded.
func (uc *InvoiceUseCase) ListByCustomer(ctx context.Context, customerID int) ([]*entity.Invoice, error) {
	list, err := uc.invoices.ListByCustomer(ctx, customerID)
	if err != nil {
		return nil, fmt.Errorf("list invoices of customer %d: %w", customerID, err)
	}
	return list, nil
}

// GetByID returns (nil, nil) when the invoice does not exist.
func (uc *InvoiceUseCase) GetByID(ctx context.Context, id int) (*entity.Invoice, error) {
	return uc.invoices.GetByID(ctx, id)
}

// Add persists the invoice header. Line items are added separately through AddLineItem.
func (uc *InvoiceUseCase) Add(ctx context.Context, inv *entity.Invoice) error {
	if inv == nil {
		return domain.ErrInvalidInput
	}
	if inv.CustomerID <= 0 {
		return fmt.Errorf("%w: customer is required", domain.ErrInvalidInput)
	}
	if inv.PaymentTermsID <= 0 {
		return fmt.Errorf("%w: payment terms are required", domain.ErrInvalidInput)
	}
	if inv.PaymentTotal.IsNegative() {
		return fmt.Errorf("%w: payment total cannot be negative", domain.ErrInvalidInput)
	}
	inv.LineItems = nil
	return uc.invoices.Create(ctx, inv)
}

// AddLineItem attaches item to invoiceID, overriding whatever invoice reference it carried.
func (uc *InvoiceUseCase) AddLineItem(ctx context.Context, invoiceID int, item *entity.InvoiceLineItem) error {
	if item == nil || invoiceID <= 0 {
		return domain.ErrInvalidInput
	}
	id := invoiceID
	item.InvoiceID = &id
	return uc.invoices.CreateLineItem(ctx, item)
}

// CustomerIDByInvoiceID returns nil when the invoice or its customer reference is absent.
func (uc *InvoiceUseCase) CustomerIDByInvoiceID(ctx context.Context, invoiceID int) (*int, error) {
	return uc.invoices.GetCustomerID(ctx, invoiceID)
}

// ListPaymentTerms returns the payment terms catalogue.
func (uc *InvoiceUseCase) ListPaymentTerms(ctx context.Context) ([]*entity.PaymentTerms, error) {
	return uc.terms.List(ctx)
}

// CustomerInvoicesView is the invoice screen of one customer.
type CustomerInvoicesView struct {
	Customer     *entity.Customer
	Invoices     []*entity.Invoice
	PaymentTerms []*entity.PaymentTerms
	Selected     *entity.Invoice
	// TermsDescription comes from the first invoice's terms, or NoTermsDescription.
	TermsDescription string
}

// CustomerInvoices assembles the view for an Active customer. selectedID picks one of the
// customer's invoices; when it is nil or does not belong to the customer the first invoice is used.
func (uc *InvoiceUseCase) CustomerInvoices(ctx context.Context, customerID int, selectedID *int) (*CustomerInvoicesView, error) {
	c, err := uc.customers.GetByID(ctx, customerID, false)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, domain.ErrNotFound
	}

	invoices, err := uc.ListByCustomer(ctx, customerID)
	if err != nil {
		return nil, err
	}
	terms, err := uc.terms.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list payment terms: %w", err)
	}

	view := &CustomerInvoicesView{
		Customer:         c,
		Invoices:         invoices,
		PaymentTerms:     terms,
		TermsDescription: NoTermsDescription,
	}
	if len(invoices) == 0 {
		return view, nil
	}

	if pt := invoices[0].PaymentTerms; pt != nil {
		view.TermsDescription = pt.Description
	}
	view.Selected = invoices[0]
	if selectedID != nil {
		for _, inv := range invoices {
			if inv.ID == *selectedID {
				view.Selected = inv
				break
			}
		}
	}
	return view, nil
}
