package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Invoice is an invoice header. PaymentTerms and LineItems are loaded eagerly by the store.
type Invoice struct {
	ID             int
	InvoiceDate    *time.Time
	PaymentTotal   decimal.Decimal
	PaymentDate    *time.Time
	CustomerID     int
	PaymentTermsID int
	PaymentTerms   *PaymentTerms
	LineItems      []*InvoiceLineItem
}

// DueDate is InvoiceDate plus the payment terms' due days.
// It is nil when the invoice date or the payment terms are absent.
func (i *Invoice) DueDate() *time.Time {
	if i == nil || i.InvoiceDate == nil || i.PaymentTerms == nil {
		return nil
	}
	due := i.InvoiceDate.AddDate(0, 0, i.PaymentTerms.DueDays)
	return &due
}

// LineItemsTotal sums the amounts of the line items that have one.
func (i *Invoice) LineItemsTotal() decimal.Decimal {
	total := decimal.Zero
	for _, li := range i.LineItems {
		if li != nil && li.Amount.Valid {
			total = total.Add(li.Amount.Decimal)
		}
	}
	return total
}
