package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Invoicing-api/internal/domain"
	"github.com/jhoicas/Invoicing-api/internal/domain/entity"
	"github.com/jhoicas/Invoicing-api/internal/domain/repository"
)

var _ repository.CustomerRepository = (*CustomerRepo)(nil)

const customerColumns = `
	id, name, address1, address2, city, province_or_state, zip_or_postal_code, phone,
	contact_first_name, contact_last_name, contact_email, is_deleted, deleted_at`

// CustomerRepo is the pgx CustomerRepository. It works over a pool or a tx.
type CustomerRepo struct {
	q Querier
}

// NewCustomerRepository builds the store over q.
func NewCustomerRepository(q Querier) *CustomerRepo {
	return &CustomerRepo{q: q}
}

// Create inserts the customer and sets its generated ID.
func (r *CustomerRepo) Create(ctx context.Context, c *entity.Customer) error {
	query := `
		INSERT INTO customers (name, address1, address2, city, province_or_state, zip_or_postal_code, phone,
		                       contact_first_name, contact_last_name, contact_email, is_deleted, deleted_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING id`
	err := r.q.QueryRow(ctx, query,
		c.Name, c.Address1, nullIfEmpty(c.Address2), c.City, c.ProvinceOrState, c.ZipOrPostalCode, c.Phone,
		nullIfEmpty(c.ContactFirstName), nullIfEmpty(c.ContactLastName), nullIfEmpty(c.ContactEmail),
		c.IsDeleted, c.DeletedAt,
	).Scan(&c.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert customer: %w", err)
	}
	return nil
}

// GetByID loads a customer with the ids of its invoices.
func (r *CustomerRepo) GetByID(ctx context.Context, id int, includeDeleted bool) (*entity.Customer, error) {
	query := `SELECT ` + customerColumns + ` FROM customers WHERE id = $1 AND ($2 OR NOT is_deleted)`
	c, err := scanCustomer(r.q.QueryRow(ctx, query, id, includeDeleted))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get customer: %w", err)
	}

	rows, err := r.q.Query(ctx, `SELECT id FROM invoices WHERE customer_id = $1 ORDER BY id`, id)
	if err != nil {
		return nil, fmt.Errorf("list customer invoice ids: %w", err)
	}
	ids, err := pgx.CollectRows(rows, pgx.RowTo[int])
	if err != nil {
		return nil, fmt.Errorf("scan customer invoice ids: %w", err)
	}
	c.InvoiceIDs = ids
	return c, nil
}

// ListByNameRange compares initials bytewise so the result agrees with the Go-side Group.Contains.
func (r *CustomerRepo) ListByNameRange(ctx context.Context, start, end string) ([]*entity.Customer, error) {
	query := `
		SELECT ` + customerColumns + `
		FROM customers
		WHERE NOT is_deleted
		  AND name <> ''
		  AND upper(left(name, 1)) COLLATE "C" BETWEEN $1 AND $2
		ORDER BY name, id`
	rows, err := r.q.Query(ctx, query, start, end)
	if err != nil {
		return nil, fmt.Errorf("list customers by name range: %w", err)
	}
	return collectCustomers(rows)
}

// CountByInitial counts Active customers per uppercased initial.
func (r *CustomerRepo) CountByInitial(ctx context.Context) (map[string]int, error) {
	query := `
		SELECT upper(left(name, 1)) AS initial, count(*)
		FROM customers
		WHERE NOT is_deleted AND name <> ''
		GROUP BY initial`
	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("count customers by initial: %w", err)
	}
	defer rows.Close()
	counts := make(map[string]int)
	for rows.Next() {
		var initial string
		var n int
		if err := rows.Scan(&initial, &n); err != nil {
			return nil, fmt.Errorf("scan initial count: %w", err)
		}
		counts[initial] = n
	}
	return counts, rows.Err()
}

// Update overwrites the profile of an Active customer. A missing or pending row is domain.ErrNotFound.
func (r *CustomerRepo) Update(ctx context.Context, c *entity.Customer) error {
	query := `
		UPDATE customers
		SET name = $2, address1 = $3, address2 = $4, city = $5, province_or_state = $6,
		    zip_or_postal_code = $7, phone = $8, contact_first_name = $9, contact_last_name = $10,
		    contact_email = $11
		WHERE id = $1 AND NOT is_deleted`
	tag, err := r.q.Exec(ctx, query,
		c.ID, c.Name, c.Address1, nullIfEmpty(c.Address2), c.City, c.ProvinceOrState, c.ZipOrPostalCode, c.Phone,
		nullIfEmpty(c.ContactFirstName), nullIfEmpty(c.ContactLastName), nullIfEmpty(c.ContactEmail),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update customer: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// SetDeleteState writes IsDeleted and DeletedAt.
func (r *CustomerRepo) SetDeleteState(ctx context.Context, c *entity.Customer) error {
	tag, err := r.q.Exec(ctx,
		`UPDATE customers SET is_deleted = $2, deleted_at = $3 WHERE id = $1`,
		c.ID, c.IsDeleted, c.DeletedAt,
	)
	if err != nil {
		return fmt.Errorf("set customer delete state: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// ListPendingDeletes returns soft-deleted customers with deleted_at <= cutoff.
// With forUpdate the rows stay locked until the surrounding transaction ends.
func (r *CustomerRepo) ListPendingDeletes(ctx context.Context, cutoff time.Time, forUpdate bool) ([]*entity.Customer, error) {
	query := `
		SELECT ` + customerColumns + `
		FROM customers
		WHERE is_deleted AND deleted_at <= $1
		ORDER BY id`
	if forUpdate {
		query += ` FOR UPDATE`
	}
	rows, err := r.q.Query(ctx, query, cutoff)
	if err != nil {
		return nil, fmt.Errorf("list pending deletes: %w", err)
	}
	return collectCustomers(rows)
}

// DeletePending removes the listed customers that are still soft-deleted. Invoices and
// line items go with them through ON DELETE CASCADE.
func (r *CustomerRepo) DeletePending(ctx context.Context, ids []int) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	tag, err := r.q.Exec(ctx, `DELETE FROM customers WHERE id = ANY($1) AND is_deleted`, ids)
	if err != nil {
		return 0, fmt.Errorf("delete pending customers: %w", err)
	}
	return tag.RowsAffected(), nil
}

func scanCustomer(row pgx.Row) (*entity.Customer, error) {
	var c entity.Customer
	var address2, first, last, email *string
	err := row.Scan(
		&c.ID, &c.Name, &c.Address1, &address2, &c.City, &c.ProvinceOrState, &c.ZipOrPostalCode, &c.Phone,
		&first, &last, &email, &c.IsDeleted, &c.DeletedAt,
	)
	if err != nil {
		return nil, err
	}
	c.Address2 = derefStr(address2)
	c.ContactFirstName = derefStr(first)
	c.ContactLastName = derefStr(last)
	c.ContactEmail = derefStr(email)
	return &c, nil
}

func collectCustomers(rows pgx.Rows) ([]*entity.Customer, error) {
	defer rows.Close()
	var list []*entity.Customer
	for rows.Next() {
		c, err := scanCustomer(rows)
		if err != nil {
			return nil, fmt.Errorf("scan customer: %w", err)
		}
		list = append(list, c)
	}
	return list, rows.Err()
}
