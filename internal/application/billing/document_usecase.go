package billing

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/Invoicing-api/internal/domain"
	"github.com/jhoicas/Invoicing-api/internal/domain/repository"
)

// DocumentUseCase renders invoices as downloadable PDF and XML files.
type DocumentUseCase struct {
	invoices  repository.InvoiceRepository
	customers repository.CustomerRepository
	pdf       InvoicePDFGenerator
	xml       InvoiceXMLExporter
	now       func() time.Time
}

// NewDocumentUseCase builds the use case.
func NewDocumentUseCase(
	invoices repository.InvoiceRepository,
	customers repository.CustomerRepository,
	pdf InvoicePDFGenerator,
	xml InvoiceXMLExporter,
) *DocumentUseCase {
	return &DocumentUseCase{
		invoices:  invoices,
		customers: customers,
		pdf:       pdf,
		xml:       xml,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

// InvoicePDF returns the PDF bytes and a download file name.
//
// Returns domain.ErrNotFound when the invoice does not exist.
func (uc *DocumentUseCase) InvoicePDF(ctx context.Context, invoiceID int) ([]byte, string, error) {
	doc, err := uc.load(ctx, invoiceID)
	if err != nil {
		return nil, "", err
	}
	out, err := uc.pdf.GenerateInvoicePDF(ctx, doc)
	if err != nil {
		return nil, "", fmt.Errorf("pdf: render invoice %d: %w", invoiceID, err)
	}
	return out, fmt.Sprintf("invoice_%d.pdf", invoiceID), nil
}

// InvoiceXML returns the XML bytes and a download file name.
func (uc *DocumentUseCase) InvoiceXML(ctx context.Context, invoiceID int) ([]byte, string, error) {
	doc, err := uc.load(ctx, invoiceID)
	if err != nil {
		return nil, "", err
	}
	out, err := uc.xml.ExportInvoiceXML(ctx, doc)
	if err != nil {
		return nil, "", fmt.Errorf("xml: export invoice %d: %w", invoiceID, err)
	}
	return out, fmt.Sprintf("invoice_%d.xml", invoiceID), nil
}

// load gathers the invoice and its customer. A customer pending deletion still appears on its documents.
func (uc *DocumentUseCase) load(ctx context.Context, invoiceID int) (*InvoiceDocument, error) {
	inv, err := uc.invoices.GetByID(ctx, invoiceID)
	if err != nil {
		return nil, fmt.Errorf("load invoice: %w", err)
	}
	if inv == nil {
		return nil, domain.ErrNotFound
	}
	c, err := uc.customers.GetByID(ctx, inv.CustomerID, true)
	if err != nil {
		return nil, fmt.Errorf("load customer: %w", err)
	}
	if c == nil {
		return nil, domain.ErrNotFound
	}
	return &InvoiceDocument{Invoice: inv, Customer: c, GeneratedAt: uc.now()}, nil
}
