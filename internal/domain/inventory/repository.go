package inventory

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stokku/backend/internal/domain/shared"
)

// ItemRepository defines the interface for item persistence
type ItemRepository interface {
	// FindByIDForTenant finds an item by ID within a tenant
	FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*Item, error)

	// FindByIDs finds multiple items by their IDs
	FindByIDs(ctx context.Context, tenantID uuid.UUID, ids []uuid.UUID) ([]Item, error)

	// FindByWarehouse finds all items in a warehouse, batches preloaded
	FindByWarehouse(ctx context.Context, tenantID, warehouseID uuid.UUID, filter shared.Filter) ([]Item, error)

	// FindAllForTenant finds all items for a tenant, batches preloaded
	FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]Item, error)

	// AggregateQuantities sums batch quantities per item for the given item IDs
	AggregateQuantities(ctx context.Context, tenantID uuid.UUID, itemIDs []uuid.UUID) (map[uuid.UUID]int64, error)

	// Save creates or updates an item
	Save(ctx context.Context, item *Item) error

	// SoftDelete soft-deletes an item and removes its batches
	SoftDelete(ctx context.Context, tenantID, id uuid.UUID) error

	// CountForTenant counts items for a tenant
	CountForTenant(ctx context.Context, tenantID uuid.UUID) (int64, error)
}

// ItemBatchRepository defines the interface for batch persistence. Quantity
// mutations are expressed as atomic SQL updates so concurrent writers cannot
// pass a sufficiency check against a stale read.
type ItemBatchRepository interface {
	// FindByID finds a batch by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*ItemBatch, error)

	// FindByIDForTenant finds a batch by ID within a tenant
	FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*ItemBatch, error)

	// FindByItem finds all batches of an item
	FindByItem(ctx context.Context, itemID uuid.UUID) ([]ItemBatch, error)

	// FindWithExpiry finds batches in scope that carry an expiry date and
	// still hold stock. A nil warehouseID widens the scope to the tenant.
	FindWithExpiry(ctx context.Context, tenantID uuid.UUID, warehouseID *uuid.UUID) ([]ItemBatch, error)

	// Create inserts a new batch
	Create(ctx context.Context, batch *ItemBatch) error

	// AddQuantity atomically increments the batch quantity by delta (> 0)
	AddQuantity(ctx context.Context, id uuid.UUID, delta int64) error

	// DeductQuantity atomically decrements the batch quantity by qty,
	// conditional on sufficient stock. Returns ErrInsufficientStock when the
	// batch exists but holds less than qty, ErrNotFound when it does not
	// exist.
	DeductQuantity(ctx context.Context, id uuid.UUID, qty int64) error

	// SetQuantity overwrites the batch quantity (opname)
	SetQuantity(ctx context.Context, id uuid.UUID, qty int64) error
}

// StockTransactionRepository defines the interface for the append-only
// transaction ledger. There is deliberately no update or delete.
type StockTransactionRepository interface {
	// Create appends a transaction to the ledger
	Create(ctx context.Context, tx *StockTransaction) error

	// FindByBatch finds all transactions for a batch in created_at order
	FindByBatch(ctx context.Context, batchID uuid.UUID) ([]StockTransaction, error)

	// FindByItemsInRange finds transactions for the given items whose
	// created_at falls within [start, end), ordered by created_at
	FindByItemsInRange(ctx context.Context, tenantID uuid.UUID, itemIDs []uuid.UUID, start, end time.Time) ([]StockTransaction, error)

	// SumOutboundByItem sums KELUAR quantities per item over a time range,
	// used for velocity and ABC analysis
	SumOutboundByItem(ctx context.Context, tenantID, warehouseID uuid.UUID, start, end time.Time) (map[uuid.UUID]int64, error)

	// FindForTenant finds transactions for a tenant matching the filter
	FindForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]StockTransaction, error)
}

// StockOpnameRepository defines the interface for opname audit persistence
type StockOpnameRepository interface {
	// Create inserts a new opname record
	Create(ctx context.Context, opname *StockOpname) error

	// FindByBatch finds opname records for a batch in created_at order
	FindByBatch(ctx context.Context, batchID uuid.UUID) ([]StockOpname, error)

	// FindForTenant finds opname records for a tenant matching the filter
	FindForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]StockOpname, error)
}

// ActivityLogRepository defines the interface for the human audit trail
type ActivityLogRepository interface {
	// Create inserts a new activity log entry
	Create(ctx context.Context, entry *ActivityLog) error

	// FindForTenant finds activity entries for a tenant matching the filter
	FindForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]ActivityLog, error)
}
