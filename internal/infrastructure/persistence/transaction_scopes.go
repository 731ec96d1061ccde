package persistence

import (
	"context"

	appinv "github.com/stokku/backend/internal/application/inventory"
	appnotif "github.com/stokku/backend/internal/application/notification"
	apptenant "github.com/stokku/backend/internal/application/tenant"
	"github.com/stokku/backend/internal/domain/inventory"
	"github.com/stokku/backend/internal/domain/notification"
	"github.com/stokku/backend/internal/domain/tenant"
	"github.com/stokku/backend/internal/domain/warehouse"
	"gorm.io/gorm"
)

// GormInventoryTransactionScope implements the inventory TransactionScope
// using GORM transactions.
type GormInventoryTransactionScope struct {
	db *gorm.DB
}

// NewGormInventoryTransactionScope creates a new GormInventoryTransactionScope
func NewGormInventoryTransactionScope(db *gorm.DB) *GormInventoryTransactionScope {
	return &GormInventoryTransactionScope{db: db}
}

// Execute runs the given function within a database transaction.
// If the function returns an error, the transaction is rolled back.
func (s *GormInventoryTransactionScope) Execute(ctx context.Context, fn func(repos appinv.TransactionalRepositories) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&gormInventoryRepositories{tx: tx})
	})
}

// gormInventoryRepositories provides transaction-scoped inventory repositories
type gormInventoryRepositories struct {
	tx *gorm.DB
}

// ItemRepo returns the item repository scoped to the current transaction
func (r *gormInventoryRepositories) ItemRepo() inventory.ItemRepository {
	return NewGormItemRepository(r.tx)
}

// BatchRepo returns the batch repository scoped to the current transaction
func (r *gormInventoryRepositories) BatchRepo() inventory.ItemBatchRepository {
	return NewGormItemBatchRepository(r.tx)
}

// TransactionRepo returns the stock transaction repository scoped to the current transaction
func (r *gormInventoryRepositories) TransactionRepo() inventory.StockTransactionRepository {
	return NewGormStockTransactionRepository(r.tx)
}

// OpnameRepo returns the opname repository scoped to the current transaction
func (r *gormInventoryRepositories) OpnameRepo() inventory.StockOpnameRepository {
	return NewGormStockOpnameRepository(r.tx)
}

// WarehouseRepo returns the warehouse repository scoped to the current transaction
func (r *gormInventoryRepositories) WarehouseRepo() warehouse.Repository {
	return NewGormWarehouseRepository(r.tx)
}

var _ appinv.TransactionScope = (*GormInventoryTransactionScope)(nil)
var _ appinv.TransactionalRepositories = (*gormInventoryRepositories)(nil)

// GormNotificationTransactionScope implements the notification
// TransactionScope using GORM transactions.
type GormNotificationTransactionScope struct {
	db *gorm.DB
}

// NewGormNotificationTransactionScope creates a new GormNotificationTransactionScope
func NewGormNotificationTransactionScope(db *gorm.DB) *GormNotificationTransactionScope {
	return &GormNotificationTransactionScope{db: db}
}

// Execute runs the given function within a database transaction.
// If the function returns an error, the transaction is rolled back.
func (s *GormNotificationTransactionScope) Execute(ctx context.Context, fn func(repos appnotif.TransactionalRepositories) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&gormNotificationRepositories{tx: tx})
	})
}

// gormNotificationRepositories provides transaction-scoped notification repositories
type gormNotificationRepositories struct {
	tx *gorm.DB
}

// NotificationRepo returns the alert repository scoped to the current transaction
func (r *gormNotificationRepositories) NotificationRepo() notification.Repository {
	return NewGormNotificationRepository(r.tx)
}

// ItemRepo returns the item repository scoped to the current transaction
func (r *gormNotificationRepositories) ItemRepo() inventory.ItemRepository {
	return NewGormItemRepository(r.tx)
}

var _ appnotif.TransactionScope = (*GormNotificationTransactionScope)(nil)
var _ appnotif.TransactionalRepositories = (*gormNotificationRepositories)(nil)

// GormTenantTransactionScope implements the tenant TransactionScope using
// GORM transactions.
type GormTenantTransactionScope struct {
	db *gorm.DB
}

// NewGormTenantTransactionScope creates a new GormTenantTransactionScope
func NewGormTenantTransactionScope(db *gorm.DB) *GormTenantTransactionScope {
	return &GormTenantTransactionScope{db: db}
}

// Execute runs the given function within a database transaction.
// If the function returns an error, the transaction is rolled back.
func (s *GormTenantTransactionScope) Execute(ctx context.Context, fn func(repos apptenant.TransactionalRepositories) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&gormTenantRepositories{tx: tx})
	})
}

// gormTenantRepositories provides transaction-scoped tenant repositories
type gormTenantRepositories struct {
	tx *gorm.DB
}

// BusinessRepo returns the business repository scoped to the current transaction
func (r *gormTenantRepositories) BusinessRepo() tenant.BusinessRepository {
	return NewGormBusinessRepository(r.tx)
}

// PlanRepo returns the plan repository scoped to the current transaction
func (r *gormTenantRepositories) PlanRepo() tenant.SubscriptionPlanRepository {
	return NewGormSubscriptionPlanRepository(r.tx)
}

// StaffRepo returns the staff repository scoped to the current transaction
func (r *gormTenantRepositories) StaffRepo() tenant.StaffUserRepository {
	return NewGormStaffUserRepository(r.tx)
}

var _ apptenant.TransactionScope = (*GormTenantTransactionScope)(nil)
var _ apptenant.TransactionalRepositories = (*gormTenantRepositories)(nil)
