package dto

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Invoicing-api/internal/application/billing"
	"github.com/jhoicas/Invoicing-api/internal/domain"
	"github.com/jhoicas/Invoicing-api/internal/domain/entity"
)

// CreateInvoiceRequest body for POST /api/customers/:id/invoices. Dates use DateLayout.
type CreateInvoiceRequest struct {
	InvoiceDate    *string          `json:"invoice_date,omitempty"`
	PaymentTermsID int              `json:"payment_terms_id"`
	PaymentTotal   *decimal.Decimal `json:"payment_total,omitempty"`
	PaymentDate    *string          `json:"payment_date,omitempty"`
}

// ToEntity builds the invoice for customerID. Malformed dates are domain.ErrInvalidInput.
func (r CreateInvoiceRequest) ToEntity(customerID int) (*entity.Invoice, error) {
	invoiceDate, err := parseDate("invoice_date", r.InvoiceDate)
	if err != nil {
		return nil, err
	}
	paymentDate, err := parseDate("payment_date", r.PaymentDate)
	if err != nil {
		return nil, err
	}
	inv := &entity.Invoice{
		CustomerID:     customerID,
		PaymentTermsID: r.PaymentTermsID,
		InvoiceDate:    invoiceDate,
		PaymentDate:    paymentDate,
	}
	if r.PaymentTotal != nil {
		inv.PaymentTotal = *r.PaymentTotal
	}
	return inv, nil
}

func parseDate(field string, s *string) (*time.Time, error) {
	if s == nil || *s == "" {
		return nil, nil
	}
	t, err := time.Parse(DateLayout, *s)
	if err != nil {
		return nil, fmt.Errorf("%w: %s must be YYYY-MM-DD", domain.ErrInvalidInput, field)
	}
	return &t, nil
}

func formatDate(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format(DateLayout)
	return &s
}

// LineItemRequest body for POST /api/invoices/:id/line-items.
type LineItemRequest struct {
	Amount      *decimal.Decimal `json:"amount,omitempty"`
	Description *string          `json:"description,omitempty"`
}

// ToEntity builds the line item. The invoice reference is set by the use case.
func (r LineItemRequest) ToEntity() *entity.InvoiceLineItem {
	item := &entity.InvoiceLineItem{Description: r.Description}
	if r.Amount != nil {
		item.Amount = decimal.NewNullDecimal(*r.Amount)
	}
	return item
}

// LineItemResponse line item in responses.
type LineItemResponse struct {
	ID          int              `json:"id"`
	InvoiceID   *int             `json:"invoice_id,omitempty"`
	Amount      *decimal.Decimal `json:"amount,omitempty"`
	Description *string          `json:"description,omitempty"`
}

// NewLineItemResponse maps an InvoiceLineItem.
func NewLineItemResponse(li *entity.InvoiceLineItem) LineItemResponse {
	r := LineItemResponse{ID: li.ID, InvoiceID: li.InvoiceID, Description: li.Description}
	if li.Amount.Valid {
		amount := li.Amount.Decimal
		r.Amount = &amount
	}
	return r
}

// PaymentTermsResponse payment terms in responses.
type PaymentTermsResponse struct {
	ID          int    `json:"id"`
	Description string `json:"description"`
	DueDays     int    `json:"due_days"`
}

// NewPaymentTermsResponses maps the catalogue.
func NewPaymentTermsResponses(terms []*entity.PaymentTerms) []PaymentTermsResponse {
	out := make([]PaymentTermsResponse, 0, len(terms))
	for _, t := range terms {
		out = append(out, PaymentTermsResponse{ID: t.ID, Description: t.Description, DueDays: t.DueDays})
	}
	return out
}

// InvoiceResponse invoice with terms, due date and line items.
type InvoiceResponse struct {
	ID             int                   `json:"id"`
	CustomerID     int                   `json:"customer_id"`
	InvoiceDate    *string               `json:"invoice_date,omitempty"`
	DueDate        *string               `json:"due_date,omitempty"`
	PaymentTermsID int                   `json:"payment_terms_id"`
	PaymentTerms   *PaymentTermsResponse `json:"payment_terms,omitempty"`
	PaymentTotal   decimal.Decimal       `json:"payment_total"`
	PaymentDate    *string               `json:"payment_date,omitempty"`
	LineItemsTotal decimal.Decimal       `json:"line_items_total"`
	LineItems      []LineItemResponse    `json:"line_items"`
}

// NewInvoiceResponse maps an Invoice.
func NewInvoiceResponse(inv *entity.Invoice) InvoiceResponse {
	r := InvoiceResponse{
		ID:             inv.ID,
		CustomerID:     inv.CustomerID,
		InvoiceDate:    formatDate(inv.InvoiceDate),
		DueDate:        formatDate(inv.DueDate()),
		PaymentTermsID: inv.PaymentTermsID,
		PaymentTotal:   inv.PaymentTotal,
		PaymentDate:    formatDate(inv.PaymentDate),
		LineItemsTotal: inv.LineItemsTotal(),
		LineItems:      make([]LineItemResponse, 0, len(inv.LineItems)),
	}
	if pt := inv.PaymentTerms; pt != nil {
		r.PaymentTerms = &PaymentTermsResponse{ID: pt.ID, Description: pt.Description, DueDays: pt.DueDays}
	}
	for _, li := range inv.LineItems {
		r.LineItems = append(r.LineItems, NewLineItemResponse(li))
	}
	return r
}

// InvoiceCustomerResponse GET /api/invoices/:id/customer.
type InvoiceCustomerResponse struct {
	InvoiceID  int  `json:"invoice_id"`
	CustomerID *int `json:"customer_id"`
}

// CustomerInvoicesResponse GET /api/customers/:id/invoices.
type CustomerInvoicesResponse struct {
	Customer         CustomerResponse       `json:"customer"`
	TermsDescription string                 `json:"terms_description"`
	Invoices         []InvoiceResponse      `json:"invoices"`
	SelectedID       *int                   `json:"selected_invoice_id,omitempty"`
	Selected         *InvoiceResponse       `json:"selected_invoice,omitempty"`
	PaymentTerms     []PaymentTermsResponse `json:"payment_terms"`
}

// NewCustomerInvoicesResponse maps the customer invoices view.
func NewCustomerInvoicesResponse(v *billing.CustomerInvoicesView) CustomerInvoicesResponse {
	r := CustomerInvoicesResponse{
		Customer:         NewCustomerResponse(v.Customer),
		TermsDescription: v.TermsDescription,
		Invoices:         make([]InvoiceResponse, 0, len(v.Invoices)),
		PaymentTerms:     NewPaymentTermsResponses(v.PaymentTerms),
	}
	for _, inv := range v.Invoices {
		r.Invoices = append(r.Invoices, NewInvoiceResponse(inv))
	}
	if v.Selected != nil {
		sel := NewInvoiceResponse(v.Selected)
		r.Selected = &sel
		r.SelectedID = &sel.ID
	}
	return r
}

// LineItemCreatedResponse POST /api/invoices/:id/line-items. CustomerID lets the caller
// return to the owning customer's invoice view.
type LineItemCreatedResponse struct {
	LineItem   LineItemResponse `json:"line_item"`
	CustomerID *int             `json:"customer_id"`
}
