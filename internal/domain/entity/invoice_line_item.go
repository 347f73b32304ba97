package entity

import "github.com/shopspring/decimal"

// InvoiceLineItem is a single line of an invoice.
type InvoiceLineItem struct {
	ID          int
	Amount      decimal.NullDecimal
	Description *string
	InvoiceID   *int
}
