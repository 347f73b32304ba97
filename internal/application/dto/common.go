package dto

import "github.com/jhoicas/Invoicing-api/internal/domain"

// DateLayout is the wire format of calendar dates.
const DateLayout = "2006-01-02"

// ErrorResponse is the HTTP error body.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ValidationErrorResponse carries every field violation of a rejected customer.
type ValidationErrorResponse struct {
	Code    string              `json:"code"`
	Message string              `json:"message"`
	Fields  []domain.FieldError `json:"fields"`
}
