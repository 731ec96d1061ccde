package persistence

import (
	"context"

	"github.com/google/uuid"
	"github.com/stokku/backend/internal/domain/notification"
	"github.com/stokku/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// GormNotificationRepository implements notification.Repository using GORM
type GormNotificationRepository struct {
	db *gorm.DB
}

// NewGormNotificationRepository creates a new GormNotificationRepository
func NewGormNotificationRepository(db *gorm.DB) *GormNotificationRepository {
	return &GormNotificationRepository{db: db}
}

// FindForTenant finds alerts for a tenant, optionally narrowed to one warehouse
func (r *GormNotificationRepository) FindForTenant(ctx context.Context, tenantID uuid.UUID, warehouseID *uuid.UUID, filter shared.Filter) ([]notification.Notification, error) {
	query := r.db.WithContext(ctx).Model(&notification.Notification{}).
		Where("tenant_id = ?", tenantID)
	if warehouseID != nil {
		query = query.Where("warehouse_id = ?", *warehouseID)
	}

	var alerts []notification.Notification
	if err := applyFilter(query, filter).Find(&alerts).Error; err != nil {
		return nil, err
	}
	return alerts, nil
}

// CountForTenant counts alerts for a tenant, optionally narrowed to one warehouse
func (r *GormNotificationRepository) CountForTenant(ctx context.Context, tenantID uuid.UUID, warehouseID *uuid.UUID) (int64, error) {
	query := r.db.WithContext(ctx).Model(&notification.Notification{}).
		Where("tenant_id = ?", tenantID)
	if warehouseID != nil {
		query = query.Where("warehouse_id = ?", *warehouseID)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return 0, err
	}
	return total, nil
}

// CountByType counts alerts per type for a tenant
func (r *GormNotificationRepository) CountByType(ctx context.Context, tenantID uuid.UUID) (map[notification.Type]int64, error) {
	var rows []struct {
		Type  notification.Type
		Total int64
	}
	if err := r.db.WithContext(ctx).
		Model(&notification.Notification{}).
		Select("type, COUNT(*) as total").
		Where("tenant_id = ?", tenantID).
		Group("type").
		Scan(&rows).Error; err != nil {
		return nil, err
	}

	out := make(map[notification.Type]int64, len(rows))
	for _, row := range rows {
		out[row.Type] = row.Total
	}
	return out, nil
}

// DeleteScope deletes all alerts for a tenant or a single warehouse
func (r *GormNotificationRepository) DeleteScope(ctx context.Context, tenantID uuid.UUID, warehouseID *uuid.UUID) error {
	query := r.db.WithContext(ctx).Where("tenant_id = ?", tenantID)
	if warehouseID != nil {
		query = query.Where("warehouse_id = ?", *warehouseID)
	}
	return query.Delete(&notification.Notification{}).Error
}

// CreateBatch bulk-inserts a generated alert set
func (r *GormNotificationRepository) CreateBatch(ctx context.Context, alerts []notification.Notification) error {
	if len(alerts) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).CreateInBatches(alerts, 200).Error
}

// Ensure GormNotificationRepository implements notification.Repository
var _ notification.Repository = (*GormNotificationRepository)(nil)
