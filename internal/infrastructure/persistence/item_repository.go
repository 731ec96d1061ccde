package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/stokku/backend/internal/domain/inventory"
	"github.com/stokku/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// GormItemRepository implements ItemRepository using GORM
type GormItemRepository struct {
	db *gorm.DB
}

// NewGormItemRepository creates a new GormItemRepository
func NewGormItemRepository(db *gorm.DB) *GormItemRepository {
	return &GormItemRepository{db: db}
}

// FindByIDForTenant finds an item by ID within a tenant
func (r *GormItemRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*inventory.Item, error) {
	var item inventory.Item
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND id = ?", tenantID, id).
		First(&item).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &item, nil
}

// FindByIDs finds multiple items by their IDs
func (r *GormItemRepository) FindByIDs(ctx context.Context, tenantID uuid.UUID, ids []uuid.UUID) ([]inventory.Item, error) {
	if len(ids) == 0 {
		return []inventory.Item{}, nil
	}

	var items []inventory.Item
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND id IN ?", tenantID, ids).
		Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// FindByWarehouse finds all items in a warehouse with batches preloaded
func (r *GormItemRepository) FindByWarehouse(ctx context.Context, tenantID, warehouseID uuid.UUID, filter shared.Filter) ([]inventory.Item, error) {
	var items []inventory.Item
	query := applyFilter(
		r.db.WithContext(ctx).Model(&inventory.Item{}).
			Preload("Batches").
			Where("tenant_id = ? AND warehouse_id = ?", tenantID, warehouseID),
		filter,
	)

	if err := query.Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// FindAllForTenant finds all items for a tenant with batches preloaded
func (r *GormItemRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]inventory.Item, error) {
	var items []inventory.Item
	query := applyFilter(
		r.db.WithContext(ctx).Model(&inventory.Item{}).
			Preload("Batches").
			Where("tenant_id = ?", tenantID),
		filter,
	)

	if err := query.Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// AggregateQuantities sums batch quantities per item. Items without batches
// are reported at zero.
func (r *GormItemRepository) AggregateQuantities(ctx context.Context, tenantID uuid.UUID, itemIDs []uuid.UUID) (map[uuid.UUID]int64, error) {
	out := make(map[uuid.UUID]int64, len(itemIDs))
	if len(itemIDs) == 0 {
		return out, nil
	}
	for _, id := range itemIDs {
		out[id] = 0
	}

	var rows []struct {
		ItemID uuid.UUID
		Total  int64
	}
	if err := r.db.WithContext(ctx).
		Model(&inventory.ItemBatch{}).
		Select("item_id, COALESCE(SUM(quantity), 0) as total").
		Where("tenant_id = ? AND item_id IN ?", tenantID, itemIDs).
		Group("item_id").
		Scan(&rows).Error; err != nil {
		return nil, err
	}
	for _, row := range rows {
		out[row.ItemID] = row.Total
	}
	return out, nil
}

// Save creates or updates an item
func (r *GormItemRepository) Save(ctx context.Context, item *inventory.Item) error {
	return r.db.WithContext(ctx).Omit("Batches").Save(item).Error
}

// SoftDelete soft-deletes an item and removes its batches
func (r *GormItemRepository) SoftDelete(ctx context.Context, tenantID, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Delete(&inventory.Item{}, "tenant_id = ? AND id = ?", tenantID, id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return shared.ErrNotFound
		}
		return tx.Delete(&inventory.ItemBatch{}, "tenant_id = ? AND item_id = ?", tenantID, id).Error
	})
}

// CountForTenant counts items for a tenant
func (r *GormItemRepository) CountForTenant(ctx context.Context, tenantID uuid.UUID) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&inventory.Item{}).
		Where("tenant_id = ?", tenantID).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Ensure GormItemRepository implements ItemRepository
var _ inventory.ItemRepository = (*GormItemRepository)(nil)
