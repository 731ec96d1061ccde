package persistence

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stokku/backend/internal/domain/inventory"
	"github.com/stokku/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// GormStockTransactionRepository implements StockTransactionRepository using
// GORM. The ledger is append-only: there is no update or delete path.
type GormStockTransactionRepository struct {
	db *gorm.DB
}

// NewGormStockTransactionRepository creates a new GormStockTransactionRepository
func NewGormStockTransactionRepository(db *gorm.DB) *GormStockTransactionRepository {
	return &GormStockTransactionRepository{db: db}
}

// Create appends a transaction to the ledger
func (r *GormStockTransactionRepository) Create(ctx context.Context, tx *inventory.StockTransaction) error {
	return r.db.WithContext(ctx).Create(tx).Error
}

// FindByBatch finds all transactions for a batch in created_at order
func (r *GormStockTransactionRepository) FindByBatch(ctx context.Context, batchID uuid.UUID) ([]inventory.StockTransaction, error) {
	var txs []inventory.StockTransaction
	if err := r.db.WithContext(ctx).
		Where("batch_id = ?", batchID).
		Order("created_at ASC").
		Find(&txs).Error; err != nil {
		return nil, err
	}
	return txs, nil
}

// FindByItemsInRange finds transactions for the given items within [start, end)
func (r *GormStockTransactionRepository) FindByItemsInRange(ctx context.Context, tenantID uuid.UUID, itemIDs []uuid.UUID, start, end time.Time) ([]inventory.StockTransaction, error) {
	if len(itemIDs) == 0 {
		return []inventory.StockTransaction{}, nil
	}

	var txs []inventory.StockTransaction
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND item_id IN ? AND created_at >= ? AND created_at < ?", tenantID, itemIDs, start, end).
		Order("created_at ASC").
		Find(&txs).Error; err != nil {
		return nil, err
	}
	return txs, nil
}

// SumOutboundByItem sums KELUAR quantities per item over [start, end)
func (r *GormStockTransactionRepository) SumOutboundByItem(ctx context.Context, tenantID, warehouseID uuid.UUID, start, end time.Time) (map[uuid.UUID]int64, error) {
	var rows []struct {
		ItemID uuid.UUID
		Total  int64
	}
	if err := r.db.WithContext(ctx).
		Model(&inventory.StockTransaction{}).
		Select("item_id, COALESCE(SUM(quantity), 0) as total").
		Where("tenant_id = ? AND warehouse_id = ? AND type = ? AND created_at >= ? AND created_at < ?",
			tenantID, warehouseID, inventory.TransactionTypeKeluar, start, end).
		Group("item_id").
		Scan(&rows).Error; err != nil {
		return nil, err
	}

	out := make(map[uuid.UUID]int64, len(rows))
	for _, row := range rows {
		out[row.ItemID] = row.Total
	}
	return out, nil
}

// FindForTenant finds transactions for a tenant matching the filter
func (r *GormStockTransactionRepository) FindForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]inventory.StockTransaction, error) {
	var txs []inventory.StockTransaction
	query := applyFilter(
		r.db.WithContext(ctx).Model(&inventory.StockTransaction{}).
			Where("tenant_id = ?", tenantID),
		filter,
	)

	if err := query.Find(&txs).Error; err != nil {
		return nil, err
	}
	return txs, nil
}

// Ensure GormStockTransactionRepository implements StockTransactionRepository
var _ inventory.StockTransactionRepository = (*GormStockTransactionRepository)(nil)
