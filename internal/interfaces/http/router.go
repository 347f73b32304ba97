package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Invoicing-api/internal/application/billing"
	"github.com/jhoicas/Invoicing-api/pkg/logger"
)

// RouterDeps dependencies of the API routes.
type RouterDeps struct {
	CustomerUC   *billing.CustomerUseCase
	InvoiceUC    *billing.InvoiceUseCase
	DocumentUC   *billing.DocumentUseCase
	UndoTickets  UndoTicketConfig
	DefaultGroup string
	Logger       *logger.Logger
}

// Router registers the API routes.
func Router(app *fiber.App, deps RouterDeps) {
	log := deps.Logger
	if log == nil {
		log = logger.Nop()
	}
	api := app.Group("/api")

	customerHandler := NewCustomerHandler(deps.CustomerUC, deps.InvoiceUC, deps.UndoTickets, deps.DefaultGroup, log)
	customers := api.Group("/customers")
	customers.Get("/", customerHandler.List)
	customers.Post("/", customerHandler.Create)
	customers.Get("/groups", customerHandler.Groups)
	customers.Post("/undo", UndoTicketMiddleware(deps.UndoTickets), customerHandler.UndoWithTicket)
	customers.Get("/:id", customerHandler.GetByID)
	customers.Put("/:id", customerHandler.Update)
	customers.Delete("/:id", customerHandler.Delete)
	customers.Post("/:id/undo", customerHandler.Undo)
	customers.Delete("/:id/purge", customerHandler.Purge)
	customers.Get("/:id/invoices", customerHandler.Invoices)
	customers.Post("/:id/invoices", customerHandler.AddInvoice)

	invoiceHandler := NewInvoiceHandler(deps.InvoiceUC, deps.DocumentUC, log)
	invoices := api.Group("/invoices")
	invoices.Get("/:id", invoiceHandler.GetByID)
	invoices.Get("/:id/customer", invoiceHandler.Customer)
	invoices.Post("/:id/line-items", invoiceHandler.AddLineItem)
	invoices.Get("/:id/pdf", invoiceHandler.PDF)
	invoices.Get("/:id/xml", invoiceHandler.XML)

	api.Get("/payment-terms", invoiceHandler.PaymentTerms)
}
