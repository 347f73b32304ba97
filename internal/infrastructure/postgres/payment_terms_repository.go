package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Invoicing-api/internal/domain/entity"
	"github.com/jhoicas/Invoicing-api/internal/domain/repository"
)

var _ repository.PaymentTermsRepository = (*PaymentTermsRepo)(nil)

// PaymentTermsRepo reads the payment_terms table.
type PaymentTermsRepo struct {
	q Querier
}

func NewPaymentTermsRepository(q Querier) *PaymentTermsRepo {
	return &PaymentTermsRepo{q: q}
}

func (r *PaymentTermsRepo) List(ctx context.Context) ([]*entity.PaymentTerms, error) {
	rows, err := r.q.Query(ctx, `SELECT id, description, due_days FROM payment_terms ORDER BY due_days, id`)
	if err != nil {
		return nil, fmt.Errorf("list payment terms: %w", err)
	}
	defer rows.Close()
	var list []*entity.PaymentTerms
	for rows.Next() {
		var pt entity.PaymentTerms
		if err := rows.Scan(&pt.ID, &pt.Description, &pt.DueDays); err != nil {
			return nil, fmt.Errorf("scan payment terms: %w", err)
		}
		list = append(list, &pt)
	}
	return list, rows.Err()
}

// GetByID returns (nil, nil) when absent.
func (r *PaymentTermsRepo) GetByID(ctx context.Context, id int) (*entity.PaymentTerms, error) {
	var pt entity.PaymentTerms
	err := r.q.QueryRow(ctx, `SELECT id, description, due_days FROM payment_terms WHERE id = $1`, id).
		Scan(&pt.ID, &pt.Description, &pt.DueDays)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get payment terms: %w", err)
	}
	return &pt, nil
}
