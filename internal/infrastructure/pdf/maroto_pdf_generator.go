// Package pdf renders invoices as A4 PDF documents.
//
// Page layout:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: "INVOICE" + number      │  invoice date / due date │
//	│  ─────────────────────────────────────────────────────────  │
//	│  BILL TO: customer name, address, contact                   │
//	│  TERMS: payment terms description                           │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLE: # | Description | Amount                            │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TOTALS: line items / paid / balance due                    │
//	│  FOOTER: QR with the invoice reference                      │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"strings"
	"time"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/code"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Invoicing-api/internal/application/billing"
	"github.com/jhoicas/Invoicing-api/internal/domain/entity"
)

const dateLayout = "Jan 2, 2006"

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorWhite   = &props.Color{Red: 255, Green: 255, Blue: 255}
)

var _ billing.InvoicePDFGenerator = (*MarotoPDFGenerator)(nil)

// MarotoPDFGenerator implements billing.InvoicePDFGenerator with maroto v2.
type MarotoPDFGenerator struct {
	issuer string
}

// NewMarotoPDFGenerator builds the generator; issuer is printed as the document author.
func NewMarotoPDFGenerator(issuer string) *MarotoPDFGenerator {
	return &MarotoPDFGenerator{issuer: issuer}
}

// GenerateInvoicePDF renders doc and returns the PDF bytes.
func (g *MarotoPDFGenerator) GenerateInvoicePDF(_ context.Context, doc *billing.InvoiceDocument) ([]byte, error) {
	if doc == nil || doc.Invoice == nil || doc.Customer == nil {
		return nil, fmt.Errorf("pdf: incomplete invoice document")
	}
	inv := doc.Invoice

	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle(fmt.Sprintf("Invoice %d", inv.ID), true).
		WithAuthor(g.issuer, true).
		WithCreationDate(doc.GeneratedAt).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(inv))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(billToRow(doc.Customer))
	m.AddRows(termsRow(inv))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(tableHeaderRow())
	m.AddRows(lineItemRows(inv.LineItems)...)

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(totalsRow(inv))

	m.AddRows(line.NewRow(3))
	m.AddRows(footerRow(inv, doc.Customer, doc.GeneratedAt))

	out, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generate document: %w", err)
	}
	return out.GetBytes(), nil
}

func headerRow(inv *entity.Invoice) core.Row {
	return row.New(18).Add(
		col.New(7).Add(
			text.New("INVOICE", props.Text{
				Style: fontstyle.Bold, Size: 16, Color: colorPrimary, Top: 1,
			}),
			text.New(fmt.Sprintf("No. %d", inv.ID), props.Text{
				Size: 10, Top: 10, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New("Invoice date: "+formatDate(inv.InvoiceDate), props.Text{
				Size: 9, Align: align.Right, Top: 3,
			}),
			text.New("Due date: "+formatDate(inv.DueDate()), props.Text{
				Style: fontstyle.Bold, Size: 9, Align: align.Right, Top: 9,
			}),
		),
	)
}

func billToRow(c *entity.Customer) core.Row {
	address := c.Address1
	if c.Address2 != "" {
		address += ", " + c.Address2
	}
	contact := strings.TrimSpace(c.ContactFirstName + " " + c.ContactLastName)

	return row.New(22).Add(
		col.New(12).Add(
			text.New("BILL TO", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New(c.Name, props.Text{Style: fontstyle.Bold, Size: 10, Top: 6}),
			text.New(fmt.Sprintf("%s, %s %s %s", address, c.City, c.ProvinceOrState, c.ZipOrPostalCode),
				props.Text{Size: 8, Top: 12, Color: colorGray}),
			text.New(fmt.Sprintf("Contact: %s   |   Email: %s   |   Tel: %s",
				nonEmpty(contact, "-"),
				nonEmpty(c.ContactEmail, "-"),
				nonEmpty(c.Phone, "-"),
			), props.Text{Size: 8, Top: 17, Color: colorGray}),
		),
	)
}

func termsRow(inv *entity.Invoice) core.Row {
	terms := billing.NoTermsDescription
	if inv.PaymentTerms != nil {
		terms = inv.PaymentTerms.Description
	}
	return row.New(8).Add(
		col.New(12).Add(text.New("Terms: "+terms, props.Text{Size: 8, Top: 2})),
	)
}

func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorWhite, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("#", 1, align.Center),
		h("Description", 8, align.Left),
		h("Amount", 3, align.Right),
	).WithStyle(&props.Cell{BackgroundColor: colorPrimary})
}

func lineItemRows(items []*entity.InvoiceLineItem) []core.Row {
	if len(items) == 0 {
		return []core.Row{row.New(7).Add(col.New(12).Add(
			text.New("No line items.", props.Text{Size: 8, Top: 1, Color: colorGray, Align: align.Center}),
		))}
	}
	rows := make([]core.Row, 0, len(items))
	for i, li := range items {
		amount := "-"
		if li.Amount.Valid {
			amount = formatMoney(li.Amount.Decimal)
		}
		desc := ""
		if li.Description != nil {
			desc = *li.Description
		}
		rows = append(rows, row.New(7).Add(
			col.New(1).Add(text.New(fmt.Sprint(i+1), props.Text{Size: 8, Align: align.Center, Top: 1})),
			col.New(8).Add(text.New(desc, props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1})),
			col.New(3).Add(text.New(amount, props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
		))
	}
	return rows
}

func totalsRow(inv *entity.Invoice) core.Row {
	label := func(s string, top float64) core.Component {
		return text.New(s, props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right, Right: 2, Top: top})
	}
	value := func(s string, top float64) core.Component {
		return text.New(s, props.Text{Size: 9, Align: align.Right, Right: 1, Top: top})
	}
	total := inv.LineItemsTotal()
	balance := total.Sub(inv.PaymentTotal)

	return row.New(22).Add(
		col.New(6),
		col.New(3).Add(
			label("Total:", 1),
			label("Paid:", 7),
			text.New("Balance due:", props.Text{
				Style: fontstyle.Bold, Size: 10, Align: align.Right, Color: colorPrimary, Right: 2, Top: 13,
			}),
		),
		col.New(3).Add(
			value(formatMoney(total), 1),
			value(formatMoney(inv.PaymentTotal), 7),
			text.New(formatMoney(balance), props.Text{
				Style: fontstyle.Bold, Size: 10, Align: align.Right, Color: colorPrimary, Right: 1, Top: 13,
			}),
		),
	)
}

func footerRow(inv *entity.Invoice, c *entity.Customer, generated time.Time) core.Row {
	ref := fmt.Sprintf("INV-%d|CUST-%d|%s", inv.ID, c.ID, inv.LineItemsTotal().StringFixed(2))
	return row.New(30).Add(
		col.New(3).Add(code.NewQr(ref, props.Rect{Percent: 90, Center: true})),
		col.New(9).Add(
			text.New("Reference: "+ref, props.Text{Size: 7, Top: 6, Left: 3, Color: colorGray}),
			text.New("Generated "+generated.Format(time.RFC1123), props.Text{Size: 7, Top: 12, Left: 3, Color: colorGray}),
		),
	)
}

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}

func formatDate(t *time.Time) string {
	if t == nil {
		return "-"
	}
	return t.Format(dateLayout)
}

// formatMoney renders d with two decimals and thousands separators, e.g. "$1,234.50".
func formatMoney(d decimal.Decimal) string {
	sign := ""
	if d.IsNegative() {
		sign = "-"
		d = d.Neg()
	}
	s := d.StringFixed(2)
	intPart, frac := s[:len(s)-3], s[len(s)-2:]

	n := len(intPart)
	buf := make([]byte, 0, n+n/3)
	for i, c := range []byte(intPart) {
		if i > 0 && (n-i)%3 == 0 {
			buf = append(buf, ',')
		}
		buf = append(buf, c)
	}
	return sign + "$" + string(buf) + "." + frac
}
