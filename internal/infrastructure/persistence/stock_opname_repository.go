package persistence

import (
	"context"

	"github.com/google/uuid"
	"github.com/stokku/backend/internal/domain/inventory"
	"github.com/stokku/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// GormStockOpnameRepository implements StockOpnameRepository using GORM
type GormStockOpnameRepository struct {
	db *gorm.DB
}

// NewGormStockOpnameRepository creates a new GormStockOpnameRepository
func NewGormStockOpnameRepository(db *gorm.DB) *GormStockOpnameRepository {
	return &GormStockOpnameRepository{db: db}
}

// Create inserts a new opname record
func (r *GormStockOpnameRepository) Create(ctx context.Context, opname *inventory.StockOpname) error {
	return r.db.WithContext(ctx).Create(opname).Error
}

// FindByBatch finds opname records for a batch in created_at order
func (r *GormStockOpnameRepository) FindByBatch(ctx context.Context, batchID uuid.UUID) ([]inventory.StockOpname, error) {
	var opnames []inventory.StockOpname
	if err := r.db.WithContext(ctx).
		Where("batch_id = ?", batchID).
		Order("created_at ASC").
		Find(&opnames).Error; err != nil {
		return nil, err
	}
	return opnames, nil
}

// FindForTenant finds opname records for a tenant matching the filter
func (r *GormStockOpnameRepository) FindForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]inventory.StockOpname, error) {
	var opnames []inventory.StockOpname
	query := applyFilter(
		r.db.WithContext(ctx).Model(&inventory.StockOpname{}).
			Where("tenant_id = ?", tenantID),
		filter,
	)

	if err := query.Find(&opnames).Error; err != nil {
		return nil, err
	}
	return opnames, nil
}

// Ensure GormStockOpnameRepository implements StockOpnameRepository
var _ inventory.StockOpnameRepository = (*GormStockOpnameRepository)(nil)

// GormActivityLogRepository implements ActivityLogRepository using GORM
type GormActivityLogRepository struct {
	db *gorm.DB
}

// NewGormActivityLogRepository creates a new GormActivityLogRepository
func NewGormActivityLogRepository(db *gorm.DB) *GormActivityLogRepository {
	return &GormActivityLogRepository{db: db}
}

// Create inserts a new activity log entry
func (r *GormActivityLogRepository) Create(ctx context.Context, entry *inventory.ActivityLog) error {
	return r.db.WithContext(ctx).Create(entry).Error
}

// FindForTenant finds activity entries for a tenant matching the filter
func (r *GormActivityLogRepository) FindForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]inventory.ActivityLog, error) {
	var entries []inventory.ActivityLog
	query := applyFilter(
		r.db.WithContext(ctx).Model(&inventory.ActivityLog{}).
			Where("tenant_id = ?", tenantID),
		filter,
	)

	if err := query.Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}

// Ensure GormActivityLogRepository implements ActivityLogRepository
var _ inventory.ActivityLogRepository = (*GormActivityLogRepository)(nil)
