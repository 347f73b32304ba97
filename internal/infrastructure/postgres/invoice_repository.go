package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Invoicing-api/internal/domain"
	"github.com/jhoicas/Invoicing-api/internal/domain/entity"
	"github.com/jhoicas/Invoicing-api/internal/domain/repository"
)

var _ repository.InvoiceRepository = (*InvoiceRepo)(nil)

const invoiceSelect = `
	SELECT i.id, i.invoice_date, i.payment_total, i.payment_date, i.customer_id, i.payment_terms_id,
	       pt.id, pt.description, pt.due_days
	FROM invoices i
	LEFT JOIN payment_terms pt ON pt.id = i.payment_terms_id`

// InvoiceRepo is the pgx InvoiceRepository. It works over a pool or a tx.
type InvoiceRepo struct {
	q Querier
}

// NewInvoiceRepository builds the store over q.
func NewInvoiceRepository(q Querier) *InvoiceRepo {
	return &InvoiceRepo{q: q}
}

// Create inserts the invoice header. A missing customer or payment terms row is domain.ErrNotFound.
func (r *InvoiceRepo) Create(ctx context.Context, inv *entity.Invoice) error {
	query := `
		INSERT INTO invoices (invoice_date, payment_total, payment_date, customer_id, payment_terms_id)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id`
	err := r.q.QueryRow(ctx, query,
		inv.InvoiceDate, inv.PaymentTotal, inv.PaymentDate, inv.CustomerID, inv.PaymentTermsID,
	).Scan(&inv.ID)
	if err != nil {
		if isForeignKeyViolation(err) {
			return fmt.Errorf("%w: customer or payment terms", domain.ErrNotFound)
		}
		return fmt.Errorf("insert invoice: %w", err)
	}
	return nil
}

// CreateLineItem inserts the line item. An unknown invoice is domain.ErrNotFound.
func (r *InvoiceRepo) CreateLineItem(ctx context.Context, item *entity.InvoiceLineItem) error {
	query := `
		INSERT INTO invoice_line_items (amount, description, invoice_id)
		VALUES ($1, $2, $3)
		RETURNING id`
	err := r.q.QueryRow(ctx, query, item.Amount, item.Description, item.InvoiceID).Scan(&item.ID)
	if err != nil {
		if isForeignKeyViolation(err) {
			return fmt.Errorf("%w: invoice", domain.ErrNotFound)
		}
		return fmt.Errorf("insert invoice line item: %w", err)
	}
	return nil
}

// GetByID loads the invoice with its payment terms and line items.
func (r *InvoiceRepo) GetByID(ctx context.Context, id int) (*entity.Invoice, error) {
	inv, err := scanInvoice(r.q.QueryRow(ctx, invoiceSelect+` WHERE i.id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get invoice: %w", err)
	}
	if err := r.attachLineItems(ctx, []*entity.Invoice{inv}); err != nil {
		return nil, err
	}
	return inv, nil
}

// ListByCustomer returns the customer's invoices ordered by id.
func (r *InvoiceRepo) ListByCustomer(ctx context.Context, customerID int) ([]*entity.Invoice, error) {
	rows, err := r.q.Query(ctx, invoiceSelect+` WHERE i.customer_id = $1 ORDER BY i.id`, customerID)
	if err != nil {
		return nil, fmt.Errorf("list invoices: %w", err)
	}
	defer rows.Close()
	var list []*entity.Invoice
	for rows.Next() {
		inv, err := scanInvoice(rows)
		if err != nil {
			return nil, fmt.Errorf("scan invoice: %w", err)
		}
		list = append(list, inv)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if err := r.attachLineItems(ctx, list); err != nil {
		return nil, err
	}
	return list, nil
}

// GetCustomerID returns the owning customer id of an invoice.
func (r *InvoiceRepo) GetCustomerID(ctx context.Context, invoiceID int) (*int, error) {
	var customerID *int
	err := r.q.QueryRow(ctx, `SELECT customer_id FROM invoices WHERE id = $1`, invoiceID).Scan(&customerID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get invoice customer: %w", err)
	}
	return customerID, nil
}

func (r *InvoiceRepo) attachLineItems(ctx context.Context, invoices []*entity.Invoice) error {
	if len(invoices) == 0 {
		return nil
	}
	byID := make(map[int]*entity.Invoice, len(invoices))
	ids := make([]int, 0, len(invoices))
	for _, inv := range invoices {
		byID[inv.ID] = inv
		ids = append(ids, inv.ID)
	}

	rows, err := r.q.Query(ctx, `
		SELECT id, amount, description, invoice_id
		FROM invoice_line_items
		WHERE invoice_id = ANY($1)
		ORDER BY id`, ids)
	if err != nil {
		return fmt.Errorf("list invoice line items: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var li entity.InvoiceLineItem
		if err := rows.Scan(&li.ID, &li.Amount, &li.Description, &li.InvoiceID); err != nil {
			return fmt.Errorf("scan invoice line item: %w", err)
		}
		if li.InvoiceID == nil {
			continue
		}
		if inv, ok := byID[*li.InvoiceID]; ok {
			inv.LineItems = append(inv.LineItems, &li)
		}
	}
	return rows.Err()
}

func scanInvoice(row pgx.Row) (*entity.Invoice, error) {
	var inv entity.Invoice
	var termsID, dueDays *int
	var termsDesc *string
	err := row.Scan(
		&inv.ID, &inv.InvoiceDate, &inv.PaymentTotal, &inv.PaymentDate, &inv.CustomerID, &inv.PaymentTermsID,
		&termsID, &termsDesc, &dueDays,
	)
	if err != nil {
		return nil, err
	}
	if termsID != nil {
		inv.PaymentTerms = &entity.PaymentTerms{ID: *termsID, Description: derefStr(termsDesc)}
		if dueDays != nil {
			inv.PaymentTerms.DueDays = *dueDays
		}
	}
	return &inv, nil
}
