// Package customer holds the customer rules: field validation, alphabetic groups
// and the soft-delete lifecycle.
package customer

import (
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/jhoicas/Invoicing-api/internal/domain"
	"github.com/jhoicas/Invoicing-api/internal/domain/entity"
)

// Field names reported in violations (match the JSON names of the API).
const (
	FieldName            = "name"
	FieldAddress1        = "address1"
	FieldCity            = "city"
	FieldProvinceOrState = "province_or_state"
	FieldZipOrPostalCode = "zip_or_postal_code"
	FieldPhone           = "phone"
	FieldContactEmail    = "contact_email"
)

var (
	provinceOrStateRe = regexp.MustCompile(`^[A-Za-z]{2}$`)
	usZipRe           = regexp.MustCompile(`^\d{5}(-\d{4})?$`)
	caPostalRe        = regexp.MustCompile(`^[A-Za-z]\d[A-Za-z] ?\d[A-Za-z]\d$`)
	phoneRe           = regexp.MustCompile(`^(\+1\s?)?(\(?\d{3}\)?[-.\s]?)\d{3}[-.\s]?\d{4}$`)

	validate = validator.New()
)

// Rule checks one field of a customer and returns its violation, if any.
type Rule func(c *entity.Customer) *domain.FieldError

// Rules is the default rule set, in reporting order.
var Rules = []Rule{
	required(FieldName, "Name is required.", func(c *entity.Customer) string { return c.Name }),
	required(FieldAddress1, "Address Line 1 is required.", func(c *entity.Customer) string { return c.Address1 }),
	required(FieldCity, "City is required.", func(c *entity.Customer) string { return c.City }),
	formatted(FieldProvinceOrState, "Province/State is required.", "Province/State must be a 2-letter code.",
		func(c *entity.Customer) string { return c.ProvinceOrState }, ValidProvinceOrState),
	formatted(FieldZipOrPostalCode, "Zip/Postal Code is required.", "The Zip/Postal Code must be in a valid US or Canadian format.",
		func(c *entity.Customer) string { return c.ZipOrPostalCode }, ValidZipOrPostalCode),
	formatted(FieldPhone, "Phone number is required.", "The Phone number must be in a valid US or Canadian format.",
		func(c *entity.Customer) string { return c.Phone }, ValidPhone),
	contactEmail,
}

// Validate runs Rules against c and returns every violation as domain.ValidationErrors,
// or nil when c is valid. It has no side effects.
func Validate(c *entity.Customer) error {
	return ValidateWith(c, Rules...)
}

// ValidateWith runs the given rules against c.
func ValidateWith(c *entity.Customer, rules ...Rule) error {
	if c == nil {
		return domain.ValidationErrors{{Field: FieldName, Rule: domain.RuleRequired, Message: "Name is required."}}
	}
	var errs domain.ValidationErrors
	for _, rule := range rules {
		if fe := rule(c); fe != nil {
			errs = append(errs, *fe)
		}
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

// ValidProvinceOrState reports whether s is a two-letter code.
func ValidProvinceOrState(s string) bool {
	return provinceOrStateRe.MatchString(s)
}

// ValidZipOrPostalCode accepts US zip codes (12345, 12345-6789) and Canadian postal codes (A1A 1A1, A1A1A1).
func ValidZipOrPostalCode(s string) bool {
	return usZipRe.MatchString(s) || caPostalRe.MatchString(s)
}

// ValidPhone accepts US/Canadian numbers, e.g. +1 416-555-1234, (416) 555-1234, 4165551234.
func ValidPhone(s string) bool {
	return phoneRe.MatchString(s)
}

func blank(s string) bool {
	return strings.TrimSpace(s) == ""
}

func required(field, msg string, get func(*entity.Customer) string) Rule {
	return func(c *entity.Customer) *domain.FieldError {
		if blank(get(c)) {
			return &domain.FieldError{Field: field, Rule: domain.RuleRequired, Message: msg}
		}
		return nil
	}
}

// formatted reports "required" for a blank value, otherwise "format" when valid rejects it.
func formatted(field, requiredMsg, formatMsg string, get func(*entity.Customer) string, valid func(string) bool) Rule {
	return func(c *entity.Customer) *domain.FieldError {
		v := get(c)
		if blank(v) {
			return &domain.FieldError{Field: field, Rule: domain.RuleRequired, Message: requiredMsg}
		}
		if !valid(v) {
			return &domain.FieldError{Field: field, Rule: domain.RuleFormat, Message: formatMsg}
		}
		return nil
	}
}

func contactEmail(c *entity.Customer) *domain.FieldError {
	if c.ContactEmail == "" {
		return nil
	}
	if err := validate.Var(c.ContactEmail, "email"); err != nil {
		return &domain.FieldError{
			Field:   FieldContactEmail,
			Rule:    domain.RuleFormat,
			Message: "The Contact Email is not in a valid format.",
		}
	}
	return nil
}
