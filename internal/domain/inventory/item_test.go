package inventory

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewItem(t *testing.T) {
	tenantID := uuid.New()
	warehouseID := uuid.New()

	t.Run("creates item with valid input", func(t *testing.T) {
		item, err := NewItem(tenantID, warehouseID, "Beras Premium", "kg", 10, 100)
		require.NoError(t, err)

		assert.NotEqual(t, uuid.Nil, item.ID)
		assert.Equal(t, tenantID, item.TenantID)
		assert.Equal(t, warehouseID, item.WarehouseID)
		assert.Equal(t, "Beras Premium", item.Name)
		assert.Equal(t, "kg", item.Unit)
		assert.Equal(t, int64(10), item.MinStock)
		assert.Equal(t, int64(100), item.MaxStock)
		assert.Empty(t, item.Batches)
	})

	t.Run("rejects empty warehouse", func(t *testing.T) {
		_, err := NewItem(tenantID, uuid.Nil, "Beras", "kg", 0, 0)
		assert.Error(t, err)
	})

	t.Run("rejects empty name", func(t *testing.T) {
		_, err := NewItem(tenantID, warehouseID, "", "kg", 0, 0)
		assert.Error(t, err)
	})

	t.Run("rejects empty unit", func(t *testing.T) {
		_, err := NewItem(tenantID, warehouseID, "Beras", "", 0, 0)
		assert.Error(t, err)
	})

	t.Run("rejects negative thresholds", func(t *testing.T) {
		_, err := NewItem(tenantID, warehouseID, "Beras", "kg", -1, 0)
		assert.Error(t, err)

		_, err = NewItem(tenantID, warehouseID, "Beras", "kg", 0, -1)
		assert.Error(t, err)
	})

	t.Run("allows min above max", func(t *testing.T) {
		item, err := NewItem(tenantID, warehouseID, "Beras", "kg", 50, 10)
		require.NoError(t, err)
		assert.Equal(t, int64(50), item.MinStock)
	})
}

func TestItem_SetThresholds(t *testing.T) {
	item, err := NewItem(uuid.New(), uuid.New(), "Gula", "kg", 5, 50)
	require.NoError(t, err)

	t.Run("updates thresholds and bumps version", func(t *testing.T) {
		versionBefore := item.Version

		err := item.SetThresholds(10, 80)
		require.NoError(t, err)
		assert.Equal(t, int64(10), item.MinStock)
		assert.Equal(t, int64(80), item.MaxStock)
		assert.Equal(t, versionBefore+1, item.Version)
	})

	t.Run("rejects negative values", func(t *testing.T) {
		err := item.SetThresholds(-1, 80)
		assert.Error(t, err)
	})
}

func TestItem_AggregateQuantity(t *testing.T) {
	item, err := NewItem(uuid.New(), uuid.New(), "Kopi", "pcs", 0, 0)
	require.NoError(t, err)

	assert.Equal(t, int64(0), item.AggregateQuantity())

	item.Batches = []ItemBatch{
		{Quantity: 10},
		{Quantity: 25},
		{Quantity: 0},
	}
	assert.Equal(t, int64(35), item.AggregateQuantity())
}

func TestItem_Thresholds(t *testing.T) {
	t.Run("zero thresholds are disabled", func(t *testing.T) {
		item := &Item{MinStock: 0, MaxStock: 0}

		assert.False(t, item.HasMinThreshold())
		assert.False(t, item.HasMaxThreshold())
		assert.False(t, item.IsBelowMinimum(0))
		assert.False(t, item.IsAboveMaximum(1000))
	})

	t.Run("below minimum requires positive quantity", func(t *testing.T) {
		item := &Item{MinStock: 10}

		assert.True(t, item.IsBelowMinimum(1))
		assert.True(t, item.IsBelowMinimum(10))
		assert.False(t, item.IsBelowMinimum(0), "empty stock is habis, not menipis")
		assert.False(t, item.IsBelowMinimum(11))
	})

	t.Run("above maximum is strict", func(t *testing.T) {
		item := &Item{MaxStock: 100}

		assert.False(t, item.IsAboveMaximum(100))
		assert.True(t, item.IsAboveMaximum(101))
	})
}
