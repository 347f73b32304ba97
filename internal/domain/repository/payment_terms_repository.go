package repository

import (
	"context"

	"github.com/jhoicas/Invoicing-api/internal/domain/entity"
)

// PaymentTermsRepository reads payment terms reference data.
type PaymentTermsRepository interface {
	List(ctx context.Context) ([]*entity.PaymentTerms, error)
	GetByID(ctx context.Context, id int) (*entity.PaymentTerms, error)
}
