package billing

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/Invoicing-api/internal/domain"
	"github.com/jhoicas/Invoicing-api/internal/domain/customer"
	"github.com/jhoicas/Invoicing-api/internal/domain/entity"
	"github.com/jhoicas/Invoicing-api/internal/domain/repository"
	"github.com/jhoicas/Invoicing-api/pkg/logger"
)

// CustomerUseCase holds the customer operations: grouping, CRUD and the soft-delete lifecycle.
type CustomerUseCase struct {
	repo  repository.CustomerRepository
	tx    CustomerTxRunner
	grace time.Duration
	now   func() time.Time
	log   *logger.Logger
}

// CustomerOption customizes a CustomerUseCase.
type CustomerOption func(*CustomerUseCase)

// WithGracePeriod sets how long a soft-deleted customer stays restorable.
func WithGracePeriod(d time.Duration) CustomerOption {
	return func(uc *CustomerUseCase) {
		if d > 0 {
			uc.grace = d
		}
	}
}

// WithClock replaces time.Now.
func WithClock(now func() time.Time) CustomerOption {
	return func(uc *CustomerUseCase) { uc.now = now }
}

// WithLogger sets the logger used to report purges.
func WithLogger(l *logger.Logger) CustomerOption {
	return func(uc *CustomerUseCase) { uc.log = l }
}

// NewCustomerUseCase builds the use case. tx may be nil, in which case cleanup runs without a transaction.
func NewCustomerUseCase(repo repository.CustomerRepository, tx CustomerTxRunner, opts ...CustomerOption) *CustomerUseCase {
	uc := &CustomerUseCase{
		repo:  repo,
		tx:    tx,
		grace: customer.DefaultGracePeriod,
		now:   func() time.Time { return time.Now().UTC() },
		log:   logger.Nop(),
	}
	for _, opt := range opts {
		opt(uc)
	}
	return uc
}

// GracePeriod returns the undo window.
func (uc *CustomerUseCase) GracePeriod() time.Duration {
	return uc.grace
}

// GroupSummary is an alphabetic group and its number of Active customers.
type GroupSummary struct {
	Group customer.Group
	Count int
}

// ListByGroup returns the Active customers of an alpha group token such as "A-E", ordered by name.
func (uc *CustomerUseCase) ListByGroup(ctx context.Context, token string) ([]*entity.Customer, error) {
	g, err := customer.ParseGroup(token)
	if err != nil {
		return nil, err
	}
	list, err := uc.repo.ListByNameRange(ctx, g.Start, g.End)
	if err != nil {
		return nil, fmt.Errorf("list customers by group %s: %w", g, err)
	}
	return list, nil
}

// ListGroups returns the default groups with their Active customer counts.
func (uc *CustomerUseCase) ListGroups(ctx context.Context) ([]GroupSummary, error) {
	counts, err := uc.repo.CountByInitial(ctx)
	if err != nil {
		return nil, fmt.Errorf("count customers: %w", err)
	}
	out := make([]GroupSummary, 0, len(customer.DefaultGroups))
	for _, g := range customer.DefaultGroups {
		s := GroupSummary{Group: g}
		for initial, n := range counts {
			if initial >= g.Start && initial <= g.End {
				s.Count += n
			}
		}
		out = append(out, s)
	}
	return out, nil
}

// GetByID returns the customer only while it is Active; soft-deleted and missing customers are (nil, nil).
func (uc *CustomerUseCase) GetByID(ctx context.Context, id int) (*entity.Customer, error) {
	c, err := uc.repo.GetByID(ctx, id, true)
	if err != nil {
		return nil, err
	}
	if c == nil || c.IsDeleted {
		return nil, nil
	}
	return c, nil
}

// Add validates and persists a new Active customer. c.ID is set on success.
func (uc *CustomerUseCase) Add(ctx context.Context, c *entity.Customer) error {
	if err := customer.Validate(c); err != nil {
		return err
	}
	c.IsDeleted = false
	c.DeletedAt = nil
	return uc.repo.Create(ctx, c)
}

// Update overwrites the profile fields of an Active customer. Delete state is never changed here.
func (uc *CustomerUseCase) Update(ctx context.Context, c *entity.Customer) error {
	if err := customer.Validate(c); err != nil {
		return err
	}
	existing, err := uc.repo.GetByID(ctx, c.ID, false)
	if err != nil {
		return err
	}
	if existing == nil {
		return domain.ErrNotFound
	}
	existing.Name = c.Name
	existing.Address1 = c.Address1
	existing.Address2 = c.Address2
	existing.City = c.City
	existing.ProvinceOrState = c.ProvinceOrState
	existing.ZipOrPostalCode = c.ZipOrPostalCode
	existing.Phone = c.Phone
	existing.ContactFirstName = c.ContactFirstName
	existing.ContactLastName = c.ContactLastName
	existing.ContactEmail = c.ContactEmail
	if err := uc.repo.Update(ctx, existing); err != nil {
		return err
	}
	*c = *existing
	return nil
}

// SoftDelete marks an Active customer as deleted now. Missing or already pending customers are left alone.
func (uc *CustomerUseCase) SoftDelete(ctx context.Context, id int) error {
	c, err := uc.repo.GetByID(ctx, id, false)
	if err != nil {
		return err
	}
	if !customer.MarkDeleted(c, uc.now()) {
		return nil
	}
	return uc.repo.SetDeleteState(ctx, c)
}

// UndoDelete restores a soft-deleted customer. Missing or Active customers are left alone.
func (uc *CustomerUseCase) UndoDelete(ctx context.Context, id int) error {
	c, err := uc.repo.GetByID(ctx, id, true)
	if err != nil {
		return err
	}
	if !customer.Restore(c) {
		return nil
	}
	return uc.repo.SetDeleteState(ctx, c)
}

// HardDelete purges a soft-deleted customer. Active customers are never purged directly.
func (uc *CustomerUseCase) HardDelete(ctx context.Context, id int) error {
	c, err := uc.repo.GetByID(ctx, id, true)
	if err != nil {
		return err
	}
	if !customer.CanPurge(c) {
		return nil
	}
	_, err = uc.repo.DeletePending(ctx, []int{c.ID})
	return err
}

// CleanupPendingDeletes purges every customer soft-deleted at or before now minus the grace period
// and returns how many were removed. Selection and purge share one transaction when a runner is set.
func (uc *CustomerUseCase) CleanupPendingDeletes(ctx context.Context) (int64, error) {
	cutoff := customer.Cutoff(uc.now(), uc.grace)
	var purged int64
	run := func(repo repository.CustomerRepository) error {
		pending, err := repo.ListPendingDeletes(ctx, cutoff, uc.tx != nil)
		if err != nil {
			return err
		}
		if len(pending) == 0 {
			return nil
		}
		ids := make([]int, 0, len(pending))
		for _, c := range pending {
			ids = append(ids, c.ID)
		}
		purged, err = repo.DeletePending(ctx, ids)
		return err
	}

	var err error
	if uc.tx != nil {
		err = uc.tx.RunCustomers(ctx, run)
	} else {
		err = run(uc.repo)
	}
	if err != nil {
		return 0, fmt.Errorf("cleanup pending deletes: %w", err)
	}
	if purged > 0 {
		uc.log.Info().Int64("purged", purged).Time("cutoff", cutoff).Msg("expired customers purged")
	}
	return purged, nil
}
