package entity

import "time"

// Customer is a billable customer. Optional text fields are empty when absent.
// DeletedAt is set if and only if IsDeleted is true.
type Customer struct {
	ID               int
	Name             string
	Address1         string
	Address2         string
	City             string
	ProvinceOrState  string
	ZipOrPostalCode  string
	Phone            string
	ContactFirstName string
	ContactLastName  string
	ContactEmail     string
	IsDeleted        bool
	DeletedAt        *time.Time
	InvoiceIDs       []int // owned invoices, by id
}
