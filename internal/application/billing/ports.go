package billing

import (
	"context"
	"time"

	"github.com/jhoicas/Invoicing-api/internal/domain/entity"
	"github.com/jhoicas/Invoicing-api/internal/domain/repository"
)

// CustomerTxRunner runs fn inside a transaction with a customer repository bound to it.
type CustomerTxRunner interface {
	RunCustomers(ctx context.Context, fn func(repo repository.CustomerRepository) error) error
}

// InvoiceDocument is everything an invoice rendering needs.
type InvoiceDocument struct {
	Invoice     *entity.Invoice
	Customer    *entity.Customer
	GeneratedAt time.Time
}

// InvoicePDFGenerator renders an invoice as PDF.
type InvoicePDFGenerator interface {
	GenerateInvoicePDF(ctx context.Context, doc *InvoiceDocument) ([]byte, error)
}

// InvoiceXMLExporter renders an invoice as an XML document.
type InvoiceXMLExporter interface {
	ExportInvoiceXML(ctx context.Context, doc *InvoiceDocument) ([]byte, error)
}
