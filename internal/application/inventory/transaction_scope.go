package inventory

import (
	"context"

	"github.com/stokku/backend/internal/domain/inventory"
	"github.com/stokku/backend/internal/domain/warehouse"
)

// TransactionScope provides transactional access to the repositories a stock
// mutation touches. When a function is executed within a transaction scope,
// all repository operations are part of the same database transaction and
// commit or roll back atomically.
type TransactionScope interface {
	// Execute runs the given function within a database transaction.
	// If the function returns an error, the transaction is rolled back.
	Execute(ctx context.Context, fn func(repos TransactionalRepositories) error) error
}

// TransactionalRepositories provides access to the inventory repositories
// within a transaction. All repositories returned share the same underlying
// database transaction.
type TransactionalRepositories interface {
	// ItemRepo returns the item repository scoped to the current transaction
	ItemRepo() inventory.ItemRepository
	// BatchRepo returns the batch repository scoped to the current transaction
	BatchRepo() inventory.ItemBatchRepository
	// TransactionRepo returns the stock transaction repository scoped to the current transaction
	TransactionRepo() inventory.StockTransactionRepository
	// OpnameRepo returns the opname repository scoped to the current transaction
	OpnameRepo() inventory.StockOpnameRepository
	// WarehouseRepo returns the warehouse repository scoped to the current transaction
	WarehouseRepo() warehouse.Repository
}

// NoOpTransactionScope runs functions without a real transaction. Used in
// tests where repositories are in-memory fakes.
type NoOpTransactionScope struct {
	itemRepo      inventory.ItemRepository
	batchRepo     inventory.ItemBatchRepository
	txRepo        inventory.StockTransactionRepository
	opnameRepo    inventory.StockOpnameRepository
	warehouseRepo warehouse.Repository
}

// NewNoOpTransactionScope creates a NoOpTransactionScope over the given repositories
func NewNoOpTransactionScope(
	itemRepo inventory.ItemRepository,
	batchRepo inventory.ItemBatchRepository,
	txRepo inventory.StockTransactionRepository,
	opnameRepo inventory.StockOpnameRepository,
	warehouseRepo warehouse.Repository,
) *NoOpTransactionScope {
	return &NoOpTransactionScope{
		itemRepo:      itemRepo,
		batchRepo:     batchRepo,
		txRepo:        txRepo,
		opnameRepo:    opnameRepo,
		warehouseRepo: warehouseRepo,
	}
}

// Execute runs the function without a real transaction
func (s *NoOpTransactionScope) Execute(_ context.Context, fn func(repos TransactionalRepositories) error) error {
	return fn(s)
}

// ItemRepo returns the item repository
func (s *NoOpTransactionScope) ItemRepo() inventory.ItemRepository { return s.itemRepo }

// BatchRepo returns the batch repository
func (s *NoOpTransactionScope) BatchRepo() inventory.ItemBatchRepository { return s.batchRepo }

// TransactionRepo returns the stock transaction repository
func (s *NoOpTransactionScope) TransactionRepo() inventory.StockTransactionRepository {
	return s.txRepo
}

// OpnameRepo returns the opname repository
func (s *NoOpTransactionScope) OpnameRepo() inventory.StockOpnameRepository { return s.opnameRepo }

// WarehouseRepo returns the warehouse repository
func (s *NoOpTransactionScope) WarehouseRepo() warehouse.Repository { return s.warehouseRepo }

var _ TransactionScope = (*NoOpTransactionScope)(nil)
var _ TransactionalRepositories = (*NoOpTransactionScope)(nil)
