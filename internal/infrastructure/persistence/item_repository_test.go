package persistence

import (
	"context"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/stokku/backend/internal/domain/inventory"
	"github.com/stokku/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGormItemRepository_FindByWarehouse(t *testing.T) {
	t.Run("preloads batches and filters by warehouse", func(t *testing.T) {
		db := setupTestDB(t)
		repo := NewGormItemRepository(db)
		tenantID := uuid.New()
		warehouseID := uuid.New()

		item, err := inventory.NewItem(tenantID, warehouseID, "Beras", "kg", 0, 0)
		require.NoError(t, err)
		require.NoError(t, db.Omit("Batches").Create(item).Error)

		batch, err := inventory.NewItemBatch(tenantID, item.ID, nil)
		require.NoError(t, err)
		batch.Quantity = 12
		require.NoError(t, db.Create(batch).Error)

		other, err := inventory.NewItem(tenantID, uuid.New(), "Gula", "kg", 0, 0)
		require.NoError(t, err)
		require.NoError(t, db.Omit("Batches").Create(other).Error)

		items, err := repo.FindByWarehouse(context.Background(), tenantID, warehouseID, shared.Filter{})
		require.NoError(t, err)
		require.Len(t, items, 1)
		assert.Equal(t, item.ID, items[0].ID)
		require.Len(t, items[0].Batches, 1)
		assert.Equal(t, int64(12), items[0].Batches[0].Quantity)
	})
}

func TestGormItemRepository_UnpagedFetch(t *testing.T) {
	t.Run("unpaged filter returns every item in scope", func(t *testing.T) {
		db := setupTestDB(t)
		repo := NewGormItemRepository(db)
		tenantID := uuid.New()
		warehouseID := uuid.New()

		for i := 0; i < 25; i++ {
			item, err := inventory.NewItem(tenantID, warehouseID, fmt.Sprintf("Item %02d", i), "pcs", 0, 0)
			require.NoError(t, err)
			require.NoError(t, db.Omit("Batches").Create(item).Error)
		}

		paged, err := repo.FindAllForTenant(context.Background(), tenantID, shared.DefaultFilter())
		require.NoError(t, err)
		assert.Len(t, paged, 20, "default filter stops at one page")

		all, err := repo.FindAllForTenant(context.Background(), tenantID, shared.UnpagedFilter())
		require.NoError(t, err)
		assert.Len(t, all, 25)

		byWarehouse, err := repo.FindByWarehouse(context.Background(), tenantID, warehouseID, shared.UnpagedFilter())
		require.NoError(t, err)
		assert.Len(t, byWarehouse, 25)
	})
}

func TestGormItemRepository_AggregateQuantities(t *testing.T) {
	t.Run("sums batches per item and reports batchless items at zero", func(t *testing.T) {
		db := setupTestDB(t)
		repo := NewGormItemRepository(db)
		tenantID := uuid.New()
		warehouseID := uuid.New()

		stocked, err := inventory.NewItem(tenantID, warehouseID, "Kopi", "kg", 0, 0)
		require.NoError(t, err)
		require.NoError(t, db.Omit("Batches").Create(stocked).Error)
		for _, qty := range []int64{10, 25} {
			batch, err := inventory.NewItemBatch(tenantID, stocked.ID, nil)
			require.NoError(t, err)
			batch.Quantity = qty
			require.NoError(t, db.Create(batch).Error)
		}

		empty, err := inventory.NewItem(tenantID, warehouseID, "Teh", "kg", 0, 0)
		require.NoError(t, err)
		require.NoError(t, db.Omit("Batches").Create(empty).Error)

		totals, err := repo.AggregateQuantities(context.Background(), tenantID, []uuid.UUID{stocked.ID, empty.ID})
		require.NoError(t, err)
		assert.Equal(t, int64(35), totals[stocked.ID])
		assert.Equal(t, int64(0), totals[empty.ID])
	})

	t.Run("returns empty map for empty input", func(t *testing.T) {
		db := setupTestDB(t)
		repo := NewGormItemRepository(db)

		totals, err := repo.AggregateQuantities(context.Background(), uuid.New(), nil)
		require.NoError(t, err)
		assert.Empty(t, totals)
	})
}

func TestGormItemRepository_SoftDelete(t *testing.T) {
	t.Run("soft-deletes item and removes its batches", func(t *testing.T) {
		db := setupTestDB(t)
		repo := NewGormItemRepository(db)
		batchRepo := NewGormItemBatchRepository(db)
		tenantID := uuid.New()
		item, batch := seedBatch(t, db, tenantID, 10)

		err := repo.SoftDelete(context.Background(), tenantID, item.ID)
		require.NoError(t, err)

		_, err = repo.FindByIDForTenant(context.Background(), tenantID, item.ID)
		assert.ErrorIs(t, err, shared.ErrNotFound)

		_, err = batchRepo.FindByID(context.Background(), batch.ID)
		assert.ErrorIs(t, err, shared.ErrNotFound)

		// The soft-deleted row is still present for audit queries
		var count int64
		require.NoError(t, db.Unscoped().Model(&inventory.Item{}).
			Where("id = ?", item.ID).Count(&count).Error)
		assert.Equal(t, int64(1), count)
	})

	t.Run("returns not found for unknown item", func(t *testing.T) {
		db := setupTestDB(t)
		repo := NewGormItemRepository(db)

		err := repo.SoftDelete(context.Background(), uuid.New(), uuid.New())
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})
}
