package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Invoicing-api/internal/application/billing"
	"github.com/jhoicas/Invoicing-api/internal/application/dto"
	"github.com/jhoicas/Invoicing-api/pkg/logger"
)

const invoiceNotFound = "invoice not found"

// InvoiceHandler serves invoices, their line items, documents and the payment terms catalogue.
type InvoiceHandler struct {
	uc   *billing.InvoiceUseCase
	docs *billing.DocumentUseCase
	log  *logger.Logger
}

// NewInvoiceHandler builds the handler.
func NewInvoiceHandler(uc *billing.InvoiceUseCase, docs *billing.DocumentUseCase, log *logger.Logger) *InvoiceHandler {
	return &InvoiceHandler{uc: uc, docs: docs, log: log}
}

// GetByID godoc
// @Summary      Get an invoice with terms, due date and line items
// @Tags         invoices
// @Produce      json
// @Param        id   path  int  true  "Invoice ID"
// @Success      200  {object}  dto.InvoiceResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/invoices/{id} [get]
func (h *InvoiceHandler) GetByID(c *fiber.Ctx) error {
	id, ok := paramID(c)
	if !ok {
		return invalidID(c)
	}
	inv, err := h.uc.GetByID(c.UserContext(), id)
	if err != nil {
		return respondError(c, h.log, err, invoiceNotFound)
	}
	if inv == nil {
		return notFound(c, invoiceNotFound)
	}
	return c.JSON(dto.NewInvoiceResponse(inv))
}

// Customer godoc
// @Summary      Owning customer id of an invoice
// @Tags         invoices
// @Produce      json
// @Param        id   path  int  true  "Invoice ID"
// @Success      200  {object}  dto.InvoiceCustomerResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/invoices/{id}/customer [get]
func (h *InvoiceHandler) Customer(c *fiber.Ctx) error {
	id, ok := paramID(c)
	if !ok {
		return invalidID(c)
	}
	customerID, err := h.uc.CustomerIDByInvoiceID(c.UserContext(), id)
	if err != nil {
		return respondError(c, h.log, err, invoiceNotFound)
	}
	if customerID == nil {
		return notFound(c, invoiceNotFound)
	}
	return c.JSON(dto.InvoiceCustomerResponse{InvoiceID: id, CustomerID: customerID})
}

// AddLineItem godoc
// @Summary      Add a line item to an invoice
// @Tags         invoices
// @Accept       json
// @Produce      json
// @Param        id    path  int                  true  "Invoice ID"
// @Param        body  body  dto.LineItemRequest  true  "Line item"
// @Success      201  {object}  dto.LineItemCreatedResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/invoices/{id}/line-items [post]
func (h *InvoiceHandler) AddLineItem(c *fiber.Ctx) error {
	id, ok := paramID(c)
	if !ok {
		return invalidID(c)
	}
	var in dto.LineItemRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	ctx := c.UserContext()
	item := in.ToEntity()
	if err := h.uc.AddLineItem(ctx, id, item); err != nil {
		return respondError(c, h.log, err, invoiceNotFound)
	}
	customerID, err := h.uc.CustomerIDByInvoiceID(ctx, id)
	if err != nil {
		return respondError(c, h.log, err, invoiceNotFound)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.LineItemCreatedResponse{
		LineItem:   dto.NewLineItemResponse(item),
		CustomerID: customerID,
	})
}

// PDF godoc
// @Summary      Download the invoice as PDF
// @Tags         invoices
// @Produce      application/pdf
// @Param        id   path  int  true  "Invoice ID"
// @Success      200  {file}  binary
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/invoices/{id}/pdf [get]
func (h *InvoiceHandler) PDF(c *fiber.Ctx) error {
	id, ok := paramID(c)
	if !ok {
		return invalidID(c)
	}
	out, filename, err := h.docs.InvoicePDF(c.UserContext(), id)
	if err != nil {
		return respondError(c, h.log, err, invoiceNotFound)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Attachment(filename)
	return c.Send(out)
}

// XML godoc
// @Summary      Download the invoice as XML
// @Tags         invoices
// @Produce      application/xml
// @Param        id   path  int  true  "Invoice ID"
// @Success      200  {file}  binary
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/invoices/{id}/xml [get]
func (h *InvoiceHandler) XML(c *fiber.Ctx) error {
	id, ok := paramID(c)
	if !ok {
		return invalidID(c)
	}
	out, filename, err := h.docs.InvoiceXML(c.UserContext(), id)
	if err != nil {
		return respondError(c, h.log, err, invoiceNotFound)
	}
	c.Attachment(filename)
	c.Set(fiber.HeaderContentType, fiber.MIMEApplicationXMLCharsetUTF8)
	return c.Send(out)
}

// PaymentTerms godoc
// @Summary      Payment terms catalogue
// @Tags         payment-terms
// @Produce      json
// @Success      200  {array}  dto.PaymentTermsResponse
// @Router       /api/payment-terms [get]
func (h *InvoiceHandler) PaymentTerms(c *fiber.Ctx) error {
	terms, err := h.uc.ListPaymentTerms(c.UserContext())
	if err != nil {
		return respondError(c, h.log, err, "payment terms not found")
	}
	return c.JSON(dto.NewPaymentTermsResponses(terms))
}
