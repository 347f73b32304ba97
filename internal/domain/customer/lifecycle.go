package customer

import (
	"time"

	"github.com/jhoicas/Invoicing-api/internal/domain/entity"
)

// DefaultGracePeriod is how long a soft-deleted customer can be restored before cleanup purges it.
const DefaultGracePeriod = 10 * time.Second

// State of a customer in the soft-delete lifecycle.
type State string

const (
	StateActive        State = "active"
	StatePendingDelete State = "pending_delete"
)

// StateOf returns the lifecycle state of c.
func StateOf(c *entity.Customer) State {
	if c.IsDeleted {
		return StatePendingDelete
	}
	return StateActive
}

// MarkDeleted moves an Active customer to PendingDelete. It reports false when c was not Active.
func MarkDeleted(c *entity.Customer, now time.Time) bool {
	if c == nil || c.IsDeleted {
		return false
	}
	t := now
	c.IsDeleted = true
	c.DeletedAt = &t
	return true
}

// Restore moves a PendingDelete customer back to Active. It reports false when c was not pending.
func Restore(c *entity.Customer) bool {
	if c == nil || !c.IsDeleted {
		return false
	}
	c.IsDeleted = false
	c.DeletedAt = nil
	return true
}

// CanPurge reports whether c may be removed permanently. Active customers never are.
func CanPurge(c *entity.Customer) bool {
	return c != nil && c.IsDeleted
}

// Cutoff is the latest deletion time that is already past the grace period at now.
func Cutoff(now time.Time, grace time.Duration) time.Time {
	return now.Add(-grace)
}

// Expired reports whether c was soft-deleted at or before now-grace.
func Expired(c *entity.Customer, now time.Time, grace time.Duration) bool {
	return CanPurge(c) && c.DeletedAt != nil && !c.DeletedAt.After(Cutoff(now, grace))
}
