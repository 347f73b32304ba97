package http

import (
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Invoicing-api/internal/application/billing"
	"github.com/jhoicas/Invoicing-api/internal/application/dto"
	"github.com/jhoicas/Invoicing-api/pkg/jwt"
	"github.com/jhoicas/Invoicing-api/pkg/logger"
)

const customerNotFound = "customer not found"

// CustomerHandler serves the customer endpoints.
type CustomerHandler struct {
	uc           *billing.CustomerUseCase
	invoices     *billing.InvoiceUseCase
	tickets      UndoTicketConfig
	defaultGroup string
	log          *logger.Logger
}

// NewCustomerHandler builds the handler.
func NewCustomerHandler(
	uc *billing.CustomerUseCase,
	invoices *billing.InvoiceUseCase,
	tickets UndoTicketConfig,
	defaultGroup string,
	log *logger.Logger,
) *CustomerHandler {
	if defaultGroup == "" {
		defaultGroup = "A-E"
	}
	return &CustomerHandler{uc: uc, invoices: invoices, tickets: tickets, defaultGroup: defaultGroup, log: log}
}

// List godoc
// @Summary      List Active customers of an alphabetic group
// @Description  Purges expired soft deletes first, then lists the group ordered by name.
// @Tags         customers
// @Produce      json
// @Param        group  query  string  false  "Group token, e.g. A-E"
// @Success      200  {object}  dto.CustomerListResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/customers [get]
func (h *CustomerHandler) List(c *fiber.Ctx) error {
	ctx := c.UserContext()
	group := c.Query("group", h.defaultGroup)

	if _, err := h.uc.CleanupPendingDeletes(ctx); err != nil {
		h.log.Warn().Err(err).Msg("cleanup before listing failed")
	}

	list, err := h.uc.ListByGroup(ctx, group)
	if err != nil {
		return respondError(c, h.log, err, customerNotFound)
	}
	return c.JSON(dto.NewCustomerListResponse(strings.ToUpper(group), list))
}

// Groups godoc
// @Summary      Alphabetic groups with their Active customer counts
// @Tags         customers
// @Produce      json
// @Success      200  {array}  dto.GroupResponse
// @Router       /api/customers/groups [get]
func (h *CustomerHandler) Groups(c *fiber.Ctx) error {
	groups, err := h.uc.ListGroups(c.UserContext())
	if err != nil {
		return respondError(c, h.log, err, customerNotFound)
	}
	return c.JSON(dto.NewGroupResponses(groups))
}

// Create godoc
// @Summary      Create customer
// @Tags         customers
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CustomerRequest  true  "Customer"
// @Success      201  {object}  dto.CustomerResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      422  {object}  dto.ValidationErrorResponse
// @Router       /api/customers [post]
func (h *CustomerHandler) Create(c *fiber.Ctx) error {
	var in dto.CustomerRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	customer := in.ToEntity(0)
	if err := h.uc.Add(c.UserContext(), customer); err != nil {
		return respondError(c, h.log, err, customerNotFound)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.NewCustomerResponse(customer))
}

// GetByID godoc
// @Summary      Get an Active customer
// @Tags         customers
// @Produce      json
// @Param        id   path  int  true  "Customer ID"
// @Success      200  {object}  dto.CustomerResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/customers/{id} [get]
func (h *CustomerHandler) GetByID(c *fiber.Ctx) error {
	id, ok := paramID(c)
	if !ok {
		return invalidID(c)
	}
	customer, err := h.uc.GetByID(c.UserContext(), id)
	if err != nil {
		return respondError(c, h.log, err, customerNotFound)
	}
	if customer == nil {
		return notFound(c, customerNotFound)
	}
	return c.JSON(dto.NewCustomerResponse(customer))
}

// Update godoc
// @Summary      Update an Active customer
// @Tags         customers
// @Accept       json
// @Produce      json
// @Param        id    path  int                  true  "Customer ID"
// @Param        body  body  dto.CustomerRequest  true  "Customer"
// @Success      200  {object}  dto.CustomerResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      422  {object}  dto.ValidationErrorResponse
// @Router       /api/customers/{id} [put]
func (h *CustomerHandler) Update(c *fiber.Ctx) error {
	id, ok := paramID(c)
	if !ok {
		return invalidID(c)
	}
	var in dto.CustomerRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	customer := in.ToEntity(id)
	if err := h.uc.Update(c.UserContext(), customer); err != nil {
		return respondError(c, h.log, err, customerNotFound)
	}
	return c.JSON(dto.NewCustomerResponse(customer))
}

// Delete godoc
// @Summary      Soft-delete a customer
// @Description  The customer stays restorable during the grace period with the returned ticket.
// @Tags         customers
// @Produce      json
// @Param        id   path  int  true  "Customer ID"
// @Success      200  {object}  dto.DeleteCustomerResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/customers/{id} [delete]
func (h *CustomerHandler) Delete(c *fiber.Ctx) error {
	id, ok := paramID(c)
	if !ok {
		return invalidID(c)
	}
	ctx := c.UserContext()
	customer, err := h.uc.GetByID(ctx, id)
	if err != nil {
		return respondError(c, h.log, err, customerNotFound)
	}
	if customer == nil {
		return notFound(c, customerNotFound)
	}
	if err := h.uc.SoftDelete(ctx, id); err != nil {
		return respondError(c, h.log, err, customerNotFound)
	}

	token, expires, err := jwt.GenerateUndo(h.tickets.Secret, h.tickets.Issuer, customer.ID, customer.Name, h.uc.GracePeriod())
	if err != nil {
		return respondError(c, h.log, err, customerNotFound)
	}
	return c.JSON(dto.DeleteCustomerResponse{
		CustomerID:   customer.ID,
		CustomerName: customer.Name,
		Token:        token,
		ExpiresAt:    expires.UTC(),
	})
}

// Undo godoc
// @Summary      Restore a soft-deleted customer by id
// @Tags         customers
// @Param        id   path  int  true  "Customer ID"
// @Success      204
// @Router       /api/customers/{id}/undo [post]
func (h *CustomerHandler) Undo(c *fiber.Ctx) error {
	id, ok := paramID(c)
	if !ok {
		return invalidID(c)
	}
	if err := h.uc.UndoDelete(c.UserContext(), id); err != nil {
		return respondError(c, h.log, err, customerNotFound)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// UndoWithTicket godoc
// @Summary      Restore a soft-deleted customer with its undo ticket
// @Tags         customers
// @Accept       json
// @Produce      json
// @Param        body  body  dto.UndoRequest  true  "Undo ticket"
// @Success      200  {object}  dto.CustomerResponse
// @Failure      401  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/customers/undo [post]
func (h *CustomerHandler) UndoWithTicket(c *fiber.Ctx) error {
	id := GetUndoCustomerID(c)
	ctx := c.UserContext()
	if err := h.uc.UndoDelete(ctx, id); err != nil {
		return respondError(c, h.log, err, customerNotFound)
	}
	customer, err := h.uc.GetByID(ctx, id)
	if err != nil {
		return respondError(c, h.log, err, customerNotFound)
	}
	if customer == nil {
		return notFound(c, "customer "+strconv.Quote(GetUndoCustomerName(c))+" was already purged")
	}
	return c.JSON(dto.NewCustomerResponse(customer))
}

// Purge godoc
// @Summary      Permanently delete a soft-deleted customer
// @Description  Active customers are left untouched.
// @Tags         customers
// @Param        id   path  int  true  "Customer ID"
// @Success      204
// @Router       /api/customers/{id}/purge [delete]
func (h *CustomerHandler) Purge(c *fiber.Ctx) error {
	id, ok := paramID(c)
	if !ok {
		return invalidID(c)
	}
	if err := h.uc.HardDelete(c.UserContext(), id); err != nil {
		return respondError(c, h.log, err, customerNotFound)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Invoices godoc
// @Summary      Invoices of a customer with the selected invoice and terms
// @Tags         customers
// @Produce      json
// @Param        id        path   int  true   "Customer ID"
// @Param        selected  query  int  false  "Selected invoice ID"
// @Success      200  {object}  dto.CustomerInvoicesResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/customers/{id}/invoices [get]
func (h *CustomerHandler) Invoices(c *fiber.Ctx) error {
	id, ok := paramID(c)
	if !ok {
		return invalidID(c)
	}
	var selected *int
	if s := c.Query("selected"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "selected must be an invoice id"})
		}
		selected = &n
	}
	view, err := h.invoices.CustomerInvoices(c.UserContext(), id, selected)
	if err != nil {
		return respondError(c, h.log, err, customerNotFound)
	}
	return c.JSON(dto.NewCustomerInvoicesResponse(view))
}

// AddInvoice godoc
// @Summary      Add an invoice to a customer
// @Tags         customers
// @Accept       json
// @Produce      json
// @Param        id    path  int                       true  "Customer ID"
// @Param        body  body  dto.CreateInvoiceRequest  true  "Invoice"
// @Success      201  {object}  dto.InvoiceResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/customers/{id}/invoices [post]
func (h *CustomerHandler) AddInvoice(c *fiber.Ctx) error {
	id, ok := paramID(c)
	if !ok {
		return invalidID(c)
	}
	var in dto.CreateInvoiceRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	inv, err := in.ToEntity(id)
	if err != nil {
		return respondError(c, h.log, err, customerNotFound)
	}
	ctx := c.UserContext()
	if err := h.invoices.Add(ctx, inv); err != nil {
		return respondError(c, h.log, err, "customer or payment terms not found")
	}
	created, err := h.invoices.GetByID(ctx, inv.ID)
	if err != nil {
		return respondError(c, h.log, err, "invoice not found")
	}
	if created == nil {
		created = inv
	}
	return c.Status(fiber.StatusCreated).JSON(dto.NewInvoiceResponse(created))
}
