package warehouse

import (
	"context"

	"github.com/google/uuid"
	"github.com/stokku/backend/internal/domain/shared"
)

// Repository defines the interface for warehouse persistence
type Repository interface {
	// FindByID finds a warehouse by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*Warehouse, error)

	// FindByIDForTenant finds a warehouse by ID within a tenant
	FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*Warehouse, error)

	// FindAllForTenant finds all warehouses for a tenant
	FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]Warehouse, error)

	// FindActiveForTenant finds all active warehouses for a tenant
	FindActiveForTenant(ctx context.Context, tenantID uuid.UUID) ([]Warehouse, error)

	// CountForTenant counts warehouses for a tenant
	CountForTenant(ctx context.Context, tenantID uuid.UUID) (int64, error)

	// Save creates or updates a warehouse
	Save(ctx context.Context, w *Warehouse) error
}
