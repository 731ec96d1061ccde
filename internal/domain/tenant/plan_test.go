package tenant

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLimit(t *testing.T) {
	t.Run("bounded limit allows up to n slots", func(t *testing.T) {
		limit := BoundedLimit(3)

		assert.True(t, limit.Allows(0))
		assert.True(t, limit.Allows(2))
		assert.False(t, limit.Allows(3))
		assert.False(t, limit.Allows(4))
	})

	t.Run("unbounded limit never rejects", func(t *testing.T) {
		limit := UnboundedLimit()

		assert.True(t, limit.IsUnbounded())
		assert.True(t, limit.Allows(0))
		assert.True(t, limit.Allows(UnlimitedSentinel))
	})

	t.Run("zero value is bounded at zero", func(t *testing.T) {
		var limit Limit
		assert.False(t, limit.IsUnbounded())
		assert.False(t, limit.Allows(0))
	})

	t.Run("negative bound clamps to zero", func(t *testing.T) {
		limit := BoundedLimit(-5)
		assert.Equal(t, int64(0), limit.Value())
	})

	t.Run("String", func(t *testing.T) {
		assert.Equal(t, "3", BoundedLimit(3).String())
		assert.Equal(t, "unlimited", UnboundedLimit().String())
	})
}

func TestLimitSentinel(t *testing.T) {
	t.Run("values at or above the sentinel are unbounded", func(t *testing.T) {
		assert.True(t, LimitFromSentinel(UnlimitedSentinel).IsUnbounded())
		assert.True(t, LimitFromSentinel(UnlimitedSentinel+999).IsUnbounded())
	})

	t.Run("values below the sentinel are bounded", func(t *testing.T) {
		limit := LimitFromSentinel(UnlimitedSentinel - 1)
		assert.False(t, limit.IsUnbounded())
		assert.Equal(t, UnlimitedSentinel-1, limit.Value())
	})

	t.Run("round-trips through the sentinel representation", func(t *testing.T) {
		assert.Equal(t, int64(5), BoundedLimit(5).Sentinel())
		assert.Equal(t, UnlimitedSentinel, UnboundedLimit().Sentinel())
		assert.Equal(t, UnlimitedSentinel, LimitFromSentinel(UnlimitedSentinel+1).Sentinel(),
			"out-of-band sentinel values normalize on write-back")
	})
}

func TestNewSubscriptionPlan(t *testing.T) {
	t.Run("creates plan with sentinel-encoded limits", func(t *testing.T) {
		plan, err := NewSubscriptionPlan("pro", "Paket Pro", BoundedLimit(10), UnboundedLimit(), 30)
		require.NoError(t, err)

		assert.Equal(t, "pro", plan.Code)
		assert.Equal(t, int64(10), plan.LimitStaff)
		assert.Equal(t, UnlimitedSentinel, plan.LimitWarehouse)
		assert.True(t, plan.IsActive)

		assert.False(t, plan.StaffLimit().IsUnbounded())
		assert.True(t, plan.WarehouseLimit().IsUnbounded())
	})

	t.Run("rejects empty code", func(t *testing.T) {
		_, err := NewSubscriptionPlan("", "Paket", BoundedLimit(1), BoundedLimit(1), 0)
		assert.Error(t, err)
	})

	t.Run("rejects empty name", func(t *testing.T) {
		_, err := NewSubscriptionPlan("free", "", BoundedLimit(1), BoundedLimit(1), 0)
		assert.Error(t, err)
	})

	t.Run("rejects negative duration", func(t *testing.T) {
		_, err := NewSubscriptionPlan("free", "Paket Gratis", BoundedLimit(1), BoundedLimit(1), -1)
		assert.Error(t, err)
	})
}
