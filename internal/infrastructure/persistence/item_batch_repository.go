package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/stokku/backend/internal/domain/inventory"
	"github.com/stokku/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// GormItemBatchRepository implements ItemBatchRepository using GORM. Quantity
// mutations are single atomic UPDATE statements: the sufficiency check and the
// decrement happen in one statement, so concurrent writers cannot both pass a
// check against a stale read.
type GormItemBatchRepository struct {
	db *gorm.DB
}

// NewGormItemBatchRepository creates a new GormItemBatchRepository
func NewGormItemBatchRepository(db *gorm.DB) *GormItemBatchRepository {
	return &GormItemBatchRepository{db: db}
}

// FindByID finds a batch by its ID
func (r *GormItemBatchRepository) FindByID(ctx context.Context, id uuid.UUID) (*inventory.ItemBatch, error) {
	var batch inventory.ItemBatch
	if err := r.db.WithContext(ctx).First(&batch, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &batch, nil
}

// FindByIDForTenant finds a batch by ID within a tenant
func (r *GormItemBatchRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*inventory.ItemBatch, error) {
	var batch inventory.ItemBatch
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND id = ?", tenantID, id).
		First(&batch).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &batch, nil
}

// FindByItem finds all batches of an item
func (r *GormItemBatchRepository) FindByItem(ctx context.Context, itemID uuid.UUID) ([]inventory.ItemBatch, error) {
	var batches []inventory.ItemBatch
	if err := r.db.WithContext(ctx).
		Where("item_id = ?", itemID).
		Order("created_at ASC").
		Find(&batches).Error; err != nil {
		return nil, err
	}
	return batches, nil
}

// FindWithExpiry finds stocked batches carrying an expiry date. A nil
// warehouseID widens the scope to the whole tenant.
func (r *GormItemBatchRepository) FindWithExpiry(ctx context.Context, tenantID uuid.UUID, warehouseID *uuid.UUID) ([]inventory.ItemBatch, error) {
	query := r.db.WithContext(ctx).
		Model(&inventory.ItemBatch{}).
		Where("item_batches.tenant_id = ? AND item_batches.expiry_date IS NOT NULL AND item_batches.quantity > 0", tenantID)

	if warehouseID != nil {
		query = query.
			Joins("JOIN items ON items.id = item_batches.item_id").
			Where("items.warehouse_id = ?", *warehouseID)
	}

	var batches []inventory.ItemBatch
	if err := query.Order("item_batches.expiry_date ASC").Find(&batches).Error; err != nil {
		return nil, err
	}
	return batches, nil
}

// Create inserts a new batch
func (r *GormItemBatchRepository) Create(ctx context.Context, batch *inventory.ItemBatch) error {
	return r.db.WithContext(ctx).Create(batch).Error
}

// AddQuantity atomically increments the batch quantity
func (r *GormItemBatchRepository) AddQuantity(ctx context.Context, id uuid.UUID, delta int64) error {
	result := r.db.WithContext(ctx).
		Model(&inventory.ItemBatch{}).
		Where("id = ?", id).
		UpdateColumn("quantity", gorm.Expr("quantity + ?", delta))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// DeductQuantity atomically decrements the batch quantity, conditional on
// sufficient stock.
func (r *GormItemBatchRepository) DeductQuantity(ctx context.Context, id uuid.UUID, qty int64) error {
	result := r.db.WithContext(ctx).
		Model(&inventory.ItemBatch{}).
		Where("id = ? AND quantity >= ?", id, qty).
		UpdateColumn("quantity", gorm.Expr("quantity - ?", qty))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		// Distinguish a missing batch from one that merely lacks stock
		var count int64
		if err := r.db.WithContext(ctx).
			Model(&inventory.ItemBatch{}).
			Where("id = ?", id).
			Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return shared.ErrNotFound
		}
		return shared.ErrInsufficientStock
	}
	return nil
}

// SetQuantity overwrites the batch quantity (opname)
func (r *GormItemBatchRepository) SetQuantity(ctx context.Context, id uuid.UUID, qty int64) error {
	result := r.db.WithContext(ctx).
		Model(&inventory.ItemBatch{}).
		Where("id = ?", id).
		UpdateColumn("quantity", qty)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Ensure GormItemBatchRepository implements ItemBatchRepository
var _ inventory.ItemBatchRepository = (*GormItemBatchRepository)(nil)
