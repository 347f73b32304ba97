package repository

import (
	"context"

	"github.com/jhoicas/Invoicing-api/internal/domain/entity"
)

// InvoiceRepository is the persistence port for Invoice and its line items.
// Reads load line items and payment terms eagerly.
type InvoiceRepository interface {
	Create(ctx context.Context, invoice *entity.Invoice) error
	CreateLineItem(ctx context.Context, item *entity.InvoiceLineItem) error
	// GetByID returns (nil, nil) when absent.
	GetByID(ctx context.Context, id int) (*entity.Invoice, error)
	ListByCustomer(ctx context.Context, customerID int) ([]*entity.Invoice, error)
	// GetCustomerID returns (nil, nil) when the invoice does not exist.
	GetCustomerID(ctx context.Context, invoiceID int) (*int, error)
}
