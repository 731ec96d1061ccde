package inventory

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/stokku/backend/internal/domain/inventory"
	"github.com/stokku/backend/internal/domain/shared"
	"github.com/stokku/backend/internal/infrastructure/logger"
	"go.uber.org/zap"
)

// StockMutationService applies MASUK / KELUAR / opname mutations. Each
// mutation updates the batch quantity and appends its audit record inside one
// database transaction; a failure anywhere rolls back everything, so a
// batch-updated-but-no-transaction-recorded state cannot be persisted.
type StockMutationService struct {
	scope        TransactionScope
	activityRepo inventory.ActivityLogRepository
}

// NewStockMutationService creates a new StockMutationService
func NewStockMutationService(scope TransactionScope, activityRepo inventory.ActivityLogRepository) *StockMutationService {
	return &StockMutationService{
		scope:        scope,
		activityRepo: activityRepo,
	}
}

// ApplyInbound applies a MASUK mutation: increments the batch quantity and
// appends a transaction carrying the post-mutation stock snapshot. When
// BatchID is nil a new batch is created for ItemID (first inbound of a lot).
func (s *StockMutationService) ApplyInbound(ctx context.Context, req InboundRequest) (*inventory.StockTransaction, error) {
	if req.Quantity <= 0 {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Inbound quantity must be positive")
	}
	if req.BatchID == nil && req.ItemID == nil {
		return nil, shared.NewDomainError("INVALID_TARGET", "Either batch ID or item ID is required")
	}

	var created *inventory.StockTransaction
	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		batch, item, err := s.resolveInboundTarget(ctx, repos, req)
		if err != nil {
			return err
		}
		if err := s.requireActiveWarehouse(ctx, repos, req.TenantID, item.WarehouseID); err != nil {
			return err
		}

		if err := repos.BatchRepo().AddQuantity(ctx, batch.ID, req.Quantity); err != nil {
			return err
		}
		fresh, err := repos.BatchRepo().FindByID(ctx, batch.ID)
		if err != nil {
			return err
		}

		tx, err := inventory.NewStockTransaction(
			req.TenantID, item.WarehouseID, item.ID, batch.ID,
			inventory.TransactionTypeMasuk, req.Quantity, fresh.Quantity, req.ActorID,
		)
		if err != nil {
			return err
		}
		tx.WithSupplier(req.Supplier).WithNotes(req.Notes)

		if err := repos.TransactionRepo().Create(ctx, tx); err != nil {
			return err
		}
		created = tx
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.appendActivity(ctx, created.TenantID, created.WarehouseID, req.ActorID, "stok_masuk",
		fmt.Sprintf("MASUK %d (batch %s), stok menjadi %d", req.Quantity, created.BatchID, *created.StockSnapshot))
	return created, nil
}

// ApplyOutbound applies a KELUAR mutation. The decrement is conditional on
// sufficient stock at the database level, so a concurrent writer that loses
// the race observes insufficient stock instead of driving quantity negative.
func (s *StockMutationService) ApplyOutbound(ctx context.Context, req OutboundRequest) (*inventory.StockTransaction, error) {
	if req.Quantity <= 0 {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Outbound quantity must be positive")
	}

	var created *inventory.StockTransaction
	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		batch, err := repos.BatchRepo().FindByIDForTenant(ctx, req.TenantID, req.BatchID)
		if err != nil {
			return err
		}
		item, err := repos.ItemRepo().FindByIDForTenant(ctx, req.TenantID, batch.ItemID)
		if err != nil {
			return err
		}
		if err := s.requireActiveWarehouse(ctx, repos, req.TenantID, item.WarehouseID); err != nil {
			return err
		}

		if err := repos.BatchRepo().DeductQuantity(ctx, batch.ID, req.Quantity); err != nil {
			return err
		}
		fresh, err := repos.BatchRepo().FindByID(ctx, batch.ID)
		if err != nil {
			return err
		}

		tx, err := inventory.NewStockTransaction(
			req.TenantID, item.WarehouseID, item.ID, batch.ID,
			inventory.TransactionTypeKeluar, req.Quantity, fresh.Quantity, req.ActorID,
		)
		if err != nil {
			return err
		}
		tx.WithCustomer(req.Customer).WithNotes(req.Notes)

		if err := repos.TransactionRepo().Create(ctx, tx); err != nil {
			return err
		}
		created = tx
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.appendActivity(ctx, created.TenantID, created.WarehouseID, req.ActorID, "stok_keluar",
		fmt.Sprintf("KELUAR %d (batch %s), stok menjadi %d", req.Quantity, created.BatchID, *created.StockSnapshot))
	return created, nil
}

// ApplyOpname reconciles a batch against a physical count. It overwrites the
// system quantity instead of appending a MASUK/KELUAR delta and records the
// previous count, the observed count and the signed difference. A zero
// difference is a valid outcome.
func (s *StockMutationService) ApplyOpname(ctx context.Context, req OpnameRequest) (*inventory.StockOpname, error) {
	if req.PhysicalCount < 0 {
		return nil, shared.NewDomainError("INVALID_COUNT", "Physical count cannot be negative")
	}

	var created *inventory.StockOpname
	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		batch, err := repos.BatchRepo().FindByIDForTenant(ctx, req.TenantID, req.BatchID)
		if err != nil {
			return err
		}
		item, err := repos.ItemRepo().FindByIDForTenant(ctx, req.TenantID, batch.ItemID)
		if err != nil {
			return err
		}
		if err := s.requireActiveWarehouse(ctx, repos, req.TenantID, item.WarehouseID); err != nil {
			return err
		}

		opname, err := inventory.NewStockOpname(
			req.TenantID, item.WarehouseID, item.ID, batch.ID,
			batch.Quantity, req.PhysicalCount, req.ActorID, req.Notes,
		)
		if err != nil {
			return err
		}

		if err := repos.BatchRepo().SetQuantity(ctx, batch.ID, req.PhysicalCount); err != nil {
			return err
		}
		if err := repos.OpnameRepo().Create(ctx, opname); err != nil {
			return err
		}
		created = opname
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.appendActivity(ctx, created.TenantID, created.WarehouseID, req.ActorID, "stok_opname",
		fmt.Sprintf("OPNAME batch %s: sistem %d, fisik %d, selisih %+d", created.BatchID, created.SystemCount, created.PhysicalCount, created.Difference))
	return created, nil
}

// resolveInboundTarget finds or creates the batch an inbound targets and
// loads its owning item.
func (s *StockMutationService) resolveInboundTarget(ctx context.Context, repos TransactionalRepositories, req InboundRequest) (*inventory.ItemBatch, *inventory.Item, error) {
	if req.BatchID != nil {
		batch, err := repos.BatchRepo().FindByIDForTenant(ctx, req.TenantID, *req.BatchID)
		if err != nil {
			return nil, nil, err
		}
		item, err := repos.ItemRepo().FindByIDForTenant(ctx, req.TenantID, batch.ItemID)
		if err != nil {
			return nil, nil, err
		}
		return batch, item, nil
	}

	item, err := repos.ItemRepo().FindByIDForTenant(ctx, req.TenantID, *req.ItemID)
	if err != nil {
		return nil, nil, err
	}
	batch, err := inventory.NewItemBatch(req.TenantID, item.ID, req.ExpiryDate)
	if err != nil {
		return nil, nil, err
	}
	if err := repos.BatchRepo().Create(ctx, batch); err != nil {
		return nil, nil, err
	}
	return batch, item, nil
}

// requireActiveWarehouse rejects mutations against inactive warehouses
func (s *StockMutationService) requireActiveWarehouse(ctx context.Context, repos TransactionalRepositories, tenantID, warehouseID uuid.UUID) error {
	wh, err := repos.WarehouseRepo().FindByIDForTenant(ctx, tenantID, warehouseID)
	if err != nil {
		return err
	}
	if !wh.IsActive() {
		return shared.ErrWarehouseInactive
	}
	return nil
}

// appendActivity writes the human audit entry. The stock mutation has already
// committed; a logging failure is reported but never propagated.
func (s *StockMutationService) appendActivity(ctx context.Context, tenantID, warehouseID, actorID uuid.UUID, action, description string) {
	if s.activityRepo == nil {
		return
	}
	entry := inventory.NewActivityLog(tenantID, warehouseID, actorID, action, description)
	if err := s.activityRepo.Create(ctx, entry); err != nil {
		logger.L(ctx).Warn("failed to append activity log",
			zap.String("action", action),
			zap.Error(err))
	}
}
