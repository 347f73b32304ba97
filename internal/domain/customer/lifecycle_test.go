package customer_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Invoicing-api/internal/domain/customer"
	"github.com/jhoicas/Invoicing-api/internal/domain/entity"
)

var now = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

// isDeleted and deletedAt must always agree.
func assertInvariant(t *testing.T, c *entity.Customer) {
	t.Helper()
	assert.Equal(t, c.IsDeleted, c.DeletedAt != nil, "is_deleted iff deleted_at is set")
}

func TestMarkDeleted_ThenRestore(t *testing.T) {
	c := validCustomer()
	before := *c

	require.True(t, customer.MarkDeleted(c, now))
	assertInvariant(t, c)
	assert.Equal(t, customer.StatePendingDelete, customer.StateOf(c))
	assert.Equal(t, now, *c.DeletedAt)

	require.True(t, customer.Restore(c))
	assertInvariant(t, c)
	assert.Equal(t, before, *c)
}

func TestMarkDeleted_AlreadyPendingKeepsTimestamp(t *testing.T) {
	c := validCustomer()
	require.True(t, customer.MarkDeleted(c, now))

	assert.False(t, customer.MarkDeleted(c, now.Add(time.Minute)))
	assert.Equal(t, now, *c.DeletedAt)
}

func TestRestore_ActiveIsNoop(t *testing.T) {
	c := validCustomer()
	assert.False(t, customer.Restore(c))
	assertInvariant(t, c)
}

func TestCanPurge(t *testing.T) {
	c := validCustomer()
	assert.False(t, customer.CanPurge(c))
	customer.MarkDeleted(c, now)
	assert.True(t, customer.CanPurge(c))
	assert.False(t, customer.CanPurge(nil))
}

func TestExpired(t *testing.T) {
	old := validCustomer()
	customer.MarkDeleted(old, now.Add(-11*time.Second))
	recent := validCustomer()
	customer.MarkDeleted(recent, now.Add(-5*time.Second))
	edge := validCustomer()
	customer.MarkDeleted(edge, now.Add(-customer.DefaultGracePeriod))

	assert.True(t, customer.Expired(old, now, customer.DefaultGracePeriod))
	assert.False(t, customer.Expired(recent, now, customer.DefaultGracePeriod))
	assert.True(t, customer.Expired(edge, now, customer.DefaultGracePeriod))
	assert.False(t, customer.Expired(validCustomer(), now, customer.DefaultGracePeriod))
}
