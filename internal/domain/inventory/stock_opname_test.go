package inventory

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewStockOpname(t *testing.T) {
	tenantID := uuid.New()
	warehouseID := uuid.New()
	itemID := uuid.New()
	batchID := uuid.New()
	actorID := uuid.New()

	t.Run("records difference between physical and system count", func(t *testing.T) {
		opname, err := NewStockOpname(tenantID, warehouseID, itemID, batchID, 50, 47, actorID, "selisih 3")
		require.NoError(t, err)

		assert.Equal(t, int64(50), opname.SystemCount)
		assert.Equal(t, int64(47), opname.PhysicalCount)
		assert.Equal(t, int64(-3), opname.Difference)
		assert.False(t, opname.IsMatch())
	})

	t.Run("zero difference is a valid outcome", func(t *testing.T) {
		opname, err := NewStockOpname(tenantID, warehouseID, itemID, batchID, 20, 20, actorID, "")
		require.NoError(t, err)
		assert.True(t, opname.IsMatch())
	})

	t.Run("rejects negative physical count", func(t *testing.T) {
		_, err := NewStockOpname(tenantID, warehouseID, itemID, batchID, 10, -1, actorID, "")
		assert.Error(t, err)
	})

	t.Run("rejects empty batch", func(t *testing.T) {
		_, err := NewStockOpname(tenantID, warehouseID, itemID, uuid.Nil, 10, 10, actorID, "")
		assert.Error(t, err)
	})

	t.Run("rejects empty actor", func(t *testing.T) {
		_, err := NewStockOpname(tenantID, warehouseID, itemID, batchID, 10, 10, uuid.Nil, "")
		assert.Error(t, err)
	})
}
