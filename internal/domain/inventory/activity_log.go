package inventory

import (
	"github.com/google/uuid"
	"github.com/stokku/backend/internal/domain/shared"
)

// ActivityLog is a human-readable audit entry describing a stock change.
// It exists for audit display only; failing to write one never rolls back the
// stock mutation it describes.
type ActivityLog struct {
	shared.BaseEntity
	TenantID    uuid.UUID `gorm:"type:uuid;not null;index"`
	WarehouseID uuid.UUID `gorm:"type:uuid;not null;index"`
	ActorID     uuid.UUID `gorm:"type:uuid;not null"`
	Action      string    `gorm:"type:varchar(50);not null"` // stok_masuk, stok_keluar, stok_opname
	Description string    `gorm:"type:text;not null"`
}

// TableName returns the table name for GORM
func (ActivityLog) TableName() string {
	return "activity_logs"
}

// NewActivityLog creates a new activity log entry
func NewActivityLog(tenantID, warehouseID, actorID uuid.UUID, action, description string) *ActivityLog {
	return &ActivityLog{
		BaseEntity:  shared.NewBaseEntity(),
		TenantID:    tenantID,
		WarehouseID: warehouseID,
		ActorID:     actorID,
		Action:      action,
		Description: description,
	}
}
