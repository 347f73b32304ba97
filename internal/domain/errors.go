package domain

import (
	"errors"
	"fmt"
	"strings"
)

// Domain errors (no external dependencies).
var (
	ErrNotFound     = errors.New("resource not found")
	ErrInvalidInput = errors.New("invalid input")
	ErrInvalidGroup = fmt.Errorf("%w: invalid group", ErrInvalidInput)
	ErrDuplicate    = errors.New("duplicate resource")
	ErrUnauthorized = errors.New("unauthorized")
)

// Validation rule names reported in a FieldError.
const (
	RuleRequired = "required"
	RuleFormat   = "format"
)

// FieldError is a single violated constraint on a field.
type FieldError struct {
	Field   string `json:"field"`
	Rule    string `json:"rule"`
	Message string `json:"message"`
}

// ValidationErrors collects every violation found on a record.
// errors.Is(v, ErrInvalidInput) is true for any non-empty ValidationErrors.
type ValidationErrors []FieldError

func (v ValidationErrors) Error() string {
	msgs := make([]string, 0, len(v))
	for _, fe := range v {
		msgs = append(msgs, fe.Field+": "+fe.Message)
	}
	return "validation failed: " + strings.Join(msgs, "; ")
}

// Is lets callers match validation failures against ErrInvalidInput.
func (v ValidationErrors) Is(target error) bool {
	return target == ErrInvalidInput
}

// Has reports whether field was flagged with rule.
func (v ValidationErrors) Has(field, rule string) bool {
	for _, fe := range v {
		if fe.Field == field && fe.Rule == rule {
			return true
		}
	}
	return false
}
