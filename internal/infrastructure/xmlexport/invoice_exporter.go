// Package xmlexport writes invoices as UBL 2.1 flavoured XML documents.
package xmlexport

import (
	"context"
	"fmt"
	"strconv"

	"github.com/beevik/etree"

	"github.com/jhoicas/Invoicing-api/internal/application/billing"
	"github.com/jhoicas/Invoicing-api/internal/domain/entity"
)

const (
	NsInvoice = "urn:oasis:names:specification:ubl:schema:xsd:Invoice-2"
	NsCac     = "urn:oasis:names:specification:ubl:schema:xsd:CommonAggregateComponents-2"
	NsCbc     = "urn:oasis:names:specification:ubl:schema:xsd:CommonBasicComponents-2"

	dateLayout = "2006-01-02"
)

var _ billing.InvoiceXMLExporter = (*InvoiceExporter)(nil)

// InvoiceExporter implements billing.InvoiceXMLExporter with etree.
type InvoiceExporter struct {
	currency string
}

// NewInvoiceExporter builds the exporter. Amounts are tagged with currency (e.g. "CAD").
func NewInvoiceExporter(currency string) *InvoiceExporter {
	if currency == "" {
		currency = "CAD"
	}
	return &InvoiceExporter{currency: currency}
}

// ExportInvoiceXML renders doc as an indented XML document.
func (e *InvoiceExporter) ExportInvoiceXML(_ context.Context, doc *billing.InvoiceDocument) ([]byte, error) {
	if doc == nil || doc.Invoice == nil || doc.Customer == nil {
		return nil, fmt.Errorf("xml: incomplete invoice document")
	}
	inv := doc.Invoice

	x := etree.NewDocument()
	x.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)

	root := x.CreateElement("Invoice")
	root.CreateAttr("xmlns", NsInvoice)
	root.CreateAttr("xmlns:cac", NsCac)
	root.CreateAttr("xmlns:cbc", NsCbc)

	root.CreateElement("cbc:ID").SetText(strconv.Itoa(inv.ID))
	if inv.InvoiceDate != nil {
		root.CreateElement("cbc:IssueDate").SetText(inv.InvoiceDate.Format(dateLayout))
	}
	if due := inv.DueDate(); due != nil {
		root.CreateElement("cbc:DueDate").SetText(due.Format(dateLayout))
	}
	root.CreateElement("cbc:DocumentCurrencyCode").SetText(e.currency)
	if !doc.GeneratedAt.IsZero() {
		root.CreateElement("cbc:Note").SetText("Generated " + doc.GeneratedAt.UTC().Format("2006-01-02T15:04:05Z"))
	}

	writeCustomer(root, doc.Customer)
	writePaymentTerms(root, inv.PaymentTerms)
	if inv.PaymentDate != nil || !inv.PaymentTotal.IsZero() {
		pay := root.CreateElement("cac:PrepaidPayment")
		e.amount(pay, "cbc:PaidAmount", inv.PaymentTotal.StringFixed(2))
		if inv.PaymentDate != nil {
			pay.CreateElement("cbc:PaidDate").SetText(inv.PaymentDate.Format(dateLayout))
		}
	}

	total := inv.LineItemsTotal()
	monetary := root.CreateElement("cac:LegalMonetaryTotal")
	e.amount(monetary, "cbc:LineExtensionAmount", total.StringFixed(2))
	e.amount(monetary, "cbc:PrepaidAmount", inv.PaymentTotal.StringFixed(2))
	e.amount(monetary, "cbc:PayableAmount", total.Sub(inv.PaymentTotal).StringFixed(2))

	for i, li := range inv.LineItems {
		e.writeLine(root, i+1, li)
	}

	x.Indent(2)
	out, err := x.WriteToBytes()
	if err != nil {
		return nil, fmt.Errorf("xml: serialize: %w", err)
	}
	return out, nil
}

func writeCustomer(root *etree.Element, c *entity.Customer) {
	party := root.CreateElement("cac:AccountingCustomerParty").CreateElement("cac:Party")
	party.CreateElement("cac:PartyIdentification").CreateElement("cbc:ID").SetText(strconv.Itoa(c.ID))
	party.CreateElement("cac:PartyName").CreateElement("cbc:Name").SetText(c.Name)

	addr := party.CreateElement("cac:PostalAddress")
	addr.CreateElement("cbc:StreetName").SetText(c.Address1)
	if c.Address2 != "" {
		addr.CreateElement("cbc:AdditionalStreetName").SetText(c.Address2)
	}
	addr.CreateElement("cbc:CityName").SetText(c.City)
	addr.CreateElement("cbc:PostalZone").SetText(c.ZipOrPostalCode)
	addr.CreateElement("cbc:CountrySubentityCode").SetText(c.ProvinceOrState)

	if c.Phone == "" && c.ContactEmail == "" && c.ContactFirstName == "" && c.ContactLastName == "" {
		return
	}
	contact := party.CreateElement("cac:Contact")
	if name := joinName(c.ContactFirstName, c.ContactLastName); name != "" {
		contact.CreateElement("cbc:Name").SetText(name)
	}
	if c.Phone != "" {
		contact.CreateElement("cbc:Telephone").SetText(c.Phone)
	}
	if c.ContactEmail != "" {
		contact.CreateElement("cbc:ElectronicMail").SetText(c.ContactEmail)
	}
}

func writePaymentTerms(root *etree.Element, pt *entity.PaymentTerms) {
	if pt == nil {
		return
	}
	terms := root.CreateElement("cac:PaymentTerms")
	terms.CreateElement("cbc:ID").SetText(strconv.Itoa(pt.ID))
	terms.CreateElement("cbc:Note").SetText(pt.Description)
	terms.CreateElement("cbc:SettlementDays").SetText(strconv.Itoa(pt.DueDays))
}

func (e *InvoiceExporter) writeLine(root *etree.Element, n int, li *entity.InvoiceLineItem) {
	line := root.CreateElement("cac:InvoiceLine")
	line.CreateElement("cbc:ID").SetText(strconv.Itoa(n))
	if li.Amount.Valid {
		e.amount(line, "cbc:LineExtensionAmount", li.Amount.Decimal.StringFixed(2))
	}
	if li.Description != nil {
		line.CreateElement("cac:Item").CreateElement("cbc:Description").SetText(*li.Description)
	}
}

func (e *InvoiceExporter) amount(parent *etree.Element, tag, value string) {
	el := parent.CreateElement(tag)
	el.CreateAttr("currencyID", e.currency)
	el.SetText(value)
}

func joinName(first, last string) string {
	switch {
	case first == "":
		return last
	case last == "":
		return first
	default:
		return first + " " + last
	}
}
