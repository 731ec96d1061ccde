package notification

import (
	"context"

	"github.com/google/uuid"
	"github.com/stokku/backend/internal/domain/shared"
)

// Repository defines the interface for alert persistence. Alerts are replaced
// wholesale per scope; DeleteScope and CreateBatch are expected to run inside
// one database transaction so there is never a persisted empty-alert window.
type Repository interface {
	// FindForTenant finds alerts for a tenant, optionally narrowed to one warehouse
	FindForTenant(ctx context.Context, tenantID uuid.UUID, warehouseID *uuid.UUID, filter shared.Filter) ([]Notification, error)

	// CountForTenant counts alerts for a tenant, optionally narrowed to one warehouse
	CountForTenant(ctx context.Context, tenantID uuid.UUID, warehouseID *uuid.UUID) (int64, error)

	// CountByType counts alerts per type for a tenant
	CountByType(ctx context.Context, tenantID uuid.UUID) (map[Type]int64, error)

	// DeleteScope deletes all alerts for a tenant or a single warehouse
	DeleteScope(ctx context.Context, tenantID uuid.UUID, warehouseID *uuid.UUID) error

	// CreateBatch bulk-inserts a generated alert set
	CreateBatch(ctx context.Context, alerts []Notification) error
}
