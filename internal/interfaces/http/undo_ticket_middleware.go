package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Invoicing-api/internal/application/dto"
	"github.com/jhoicas/Invoicing-api/pkg/jwt"
)

// Locals keys set by UndoTicketMiddleware.
const (
	LocalUndoCustomerID   = "undo_customer_id"
	LocalUndoCustomerName = "undo_customer_name"
)

// UndoTicketConfig signs and verifies undo tickets.
type UndoTicketConfig struct {
	Secret string
	Issuer string
}

// UndoTicketMiddleware validates the undo ticket sent as {"token": "..."} or as
// "Authorization: Bearer <ticket>" and stores the customer it names in c.Locals.
func UndoTicketMiddleware(cfg UndoTicketConfig) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := bearerToken(c.Get(fiber.HeaderAuthorization))
		if token == "" {
			var in dto.UndoRequest
			if len(c.Body()) > 0 {
				if err := c.BodyParser(&in); err != nil {
					return badBody(c)
				}
			}
			token = strings.TrimSpace(in.Token)
		}
		if token == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_TICKET", Message: "undo ticket required"})
		}
		customerID, name, err := jwt.ParseUndo(cfg.Secret, cfg.Issuer, token)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_TICKET", Message: "undo ticket is invalid or expired"})
		}
		c.Locals(LocalUndoCustomerID, customerID)
		c.Locals(LocalUndoCustomerName, name)
		return c.Next()
	}
}

func bearerToken(header string) string {
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}

// GetUndoCustomerID returns the customer id carried by a verified ticket, or 0.
func GetUndoCustomerID(c *fiber.Ctx) int {
	id, _ := c.Locals(LocalUndoCustomerID).(int)
	return id
}

// GetUndoCustomerName returns the customer name carried by a verified ticket.
func GetUndoCustomerName(c *fiber.Ctx) string {
	s, _ := c.Locals(LocalUndoCustomerName).(string)
	return s
}
