package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/stokku/backend/internal/domain/shared"
	"github.com/stokku/backend/internal/domain/warehouse"
	"gorm.io/gorm"
)

// GormWarehouseRepository implements warehouse.Repository using GORM
type GormWarehouseRepository struct {
	db *gorm.DB
}

// NewGormWarehouseRepository creates a new GormWarehouseRepository
func NewGormWarehouseRepository(db *gorm.DB) *GormWarehouseRepository {
	return &GormWarehouseRepository{db: db}
}

// FindByID finds a warehouse by its ID
func (r *GormWarehouseRepository) FindByID(ctx context.Context, id uuid.UUID) (*warehouse.Warehouse, error) {
	var wh warehouse.Warehouse
	if err := r.db.WithContext(ctx).First(&wh, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &wh, nil
}

// FindByIDForTenant finds a warehouse by ID within a tenant
func (r *GormWarehouseRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*warehouse.Warehouse, error) {
	var wh warehouse.Warehouse
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND id = ?", tenantID, id).
		First(&wh).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &wh, nil
}

// FindAllForTenant finds all warehouses for a tenant
func (r *GormWarehouseRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]warehouse.Warehouse, error) {
	var warehouses []warehouse.Warehouse
	query := applyFilter(
		r.db.WithContext(ctx).Model(&warehouse.Warehouse{}).
			Where("tenant_id = ?", tenantID),
		filter,
	)

	if err := query.Find(&warehouses).Error; err != nil {
		return nil, err
	}
	return warehouses, nil
}

// FindActiveForTenant finds all active warehouses for a tenant
func (r *GormWarehouseRepository) FindActiveForTenant(ctx context.Context, tenantID uuid.UUID) ([]warehouse.Warehouse, error) {
	var warehouses []warehouse.Warehouse
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND status = ?", tenantID, warehouse.StatusActive).
		Order("code ASC").
		Find(&warehouses).Error; err != nil {
		return nil, err
	}
	return warehouses, nil
}

// CountForTenant counts warehouses for a tenant
func (r *GormWarehouseRepository) CountForTenant(ctx context.Context, tenantID uuid.UUID) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&warehouse.Warehouse{}).
		Where("tenant_id = ?", tenantID).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Save creates or updates a warehouse
func (r *GormWarehouseRepository) Save(ctx context.Context, wh *warehouse.Warehouse) error {
	return r.db.WithContext(ctx).Save(wh).Error
}

// Ensure GormWarehouseRepository implements warehouse.Repository
var _ warehouse.Repository = (*GormWarehouseRepository)(nil)
