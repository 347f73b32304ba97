package repository

import (
	"context"
	"time"

	"github.com/jhoicas/Invoicing-api/internal/domain/entity"
)

// CustomerRepository is the persistence port for Customer.
// Soft-deleted rows are excluded unless includeDeleted is true.
type CustomerRepository interface {
	Create(ctx context.Context, customer *entity.Customer) error
	// GetByID returns (nil, nil) when no row matches.
	GetByID(ctx context.Context, id int, includeDeleted bool) (*entity.Customer, error)
	// ListByNameRange lists Active customers whose uppercased initial is in [start, end], ordered by name.
	ListByNameRange(ctx context.Context, start, end string) ([]*entity.Customer, error)
	// CountByInitial counts Active customers per uppercased initial.
	CountByInitial(ctx context.Context) (map[string]int, error)
	// Update overwrites the profile fields; delete state is untouched.
	Update(ctx context.Context, customer *entity.Customer) error
	// SetDeleteState persists IsDeleted and DeletedAt of customer.
	SetDeleteState(ctx context.Context, customer *entity.Customer) error
	// ListPendingDeletes returns soft-deleted customers with deleted_at <= cutoff, locking them when forUpdate.
	ListPendingDeletes(ctx context.Context, cutoff time.Time, forUpdate bool) ([]*entity.Customer, error)
	// DeletePending removes the given customers if they are still soft-deleted and returns how many were removed.
	DeletePending(ctx context.Context, ids []int) (int64, error)
}
