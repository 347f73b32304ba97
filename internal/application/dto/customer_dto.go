package dto

import (
	"time"

	"github.com/jhoicas/Invoicing-api/internal/application/billing"
	"github.com/jhoicas/Invoicing-api/internal/domain/entity"
)

// CustomerRequest body for POST /api/customers and PUT /api/customers/:id.
type CustomerRequest struct {
	Name             string `json:"name"`
	Address1         string `json:"address1"`
	Address2         string `json:"address2,omitempty"`
	City             string `json:"city"`
	ProvinceOrState  string `json:"province_or_state"`
	ZipOrPostalCode  string `json:"zip_or_postal_code"`
	Phone            string `json:"phone"`
	ContactFirstName string `json:"contact_first_name,omitempty"`
	ContactLastName  string `json:"contact_last_name,omitempty"`
	ContactEmail     string `json:"contact_email,omitempty"`
}

// ToEntity copies the profile fields into a new Customer.
func (r CustomerRequest) ToEntity(id int) *entity.Customer {
	return &entity.Customer{
		ID:               id,
		Name:             r.Name,
		Address1:         r.Address1,
		Address2:         r.Address2,
		City:             r.City,
		ProvinceOrState:  r.ProvinceOrState,
		ZipOrPostalCode:  r.ZipOrPostalCode,
		Phone:            r.Phone,
		ContactFirstName: r.ContactFirstName,
		ContactLastName:  r.ContactLastName,
		ContactEmail:     r.ContactEmail,
	}
}

// CustomerResponse customer in responses.
type CustomerResponse struct {
	ID               int        `json:"id"`
	Name             string     `json:"name"`
	Address1         string     `json:"address1"`
	Address2         string     `json:"address2,omitempty"`
	City             string     `json:"city"`
	ProvinceOrState  string     `json:"province_or_state"`
	ZipOrPostalCode  string     `json:"zip_or_postal_code"`
	Phone            string     `json:"phone"`
	ContactFirstName string     `json:"contact_first_name,omitempty"`
	ContactLastName  string     `json:"contact_last_name,omitempty"`
	ContactEmail     string     `json:"contact_email,omitempty"`
	IsDeleted        bool       `json:"is_deleted"`
	DeletedAt        *time.Time `json:"deleted_at,omitempty"`
}

// NewCustomerResponse maps a Customer.
func NewCustomerResponse(c *entity.Customer) CustomerResponse {
	return CustomerResponse{
		ID:               c.ID,
		Name:             c.Name,
		Address1:         c.Address1,
		Address2:         c.Address2,
		City:             c.City,
		ProvinceOrState:  c.ProvinceOrState,
		ZipOrPostalCode:  c.ZipOrPostalCode,
		Phone:            c.Phone,
		ContactFirstName: c.ContactFirstName,
		ContactLastName:  c.ContactLastName,
		ContactEmail:     c.ContactEmail,
		IsDeleted:        c.IsDeleted,
		DeletedAt:        c.DeletedAt,
	}
}

// CustomerListResponse GET /api/customers?group=.
type CustomerListResponse struct {
	Group string             `json:"group"`
	Items []CustomerResponse `json:"items"`
}

// NewCustomerListResponse maps a group listing.
func NewCustomerListResponse(group string, list []*entity.Customer) CustomerListResponse {
	items := make([]CustomerResponse, 0, len(list))
	for _, c := range list {
		items = append(items, NewCustomerResponse(c))
	}
	return CustomerListResponse{Group: group, Items: items}
}

// GroupResponse one alphabetic tab with its Active customer count.
type GroupResponse struct {
	Group string `json:"group"`
	Start string `json:"start"`
	End   string `json:"end"`
	Count int    `json:"count"`
}

// NewGroupResponses maps the group summaries.
func NewGroupResponses(groups []billing.GroupSummary) []GroupResponse {
	out := make([]GroupResponse, 0, len(groups))
	for _, g := range groups {
		out = append(out, GroupResponse{
			Group: g.Group.String(),
			Start: g.Group.Start,
			End:   g.Group.End,
			Count: g.Count,
		})
	}
	return out
}

// DeleteCustomerResponse answers a soft delete with the ticket needed to undo it.
type DeleteCustomerResponse struct {
	CustomerID   int       `json:"customer_id"`
	CustomerName string    `json:"customer_name"`
	Token        string    `json:"token"`
	ExpiresAt    time.Time `json:"expires_at"`
}

// UndoRequest body for POST /api/customers/undo.
type UndoRequest struct {
	Token string `json:"token"`
}
