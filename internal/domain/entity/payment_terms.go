package entity

// PaymentTerms is reference data: how many days after invoicing payment is due.
type PaymentTerms struct {
	ID          int
	Description string
	DueDays     int
}
