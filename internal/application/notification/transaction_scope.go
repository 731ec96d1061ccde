package notification

import (
	"context"

	"github.com/stokku/backend/internal/domain/inventory"
	"github.com/stokku/backend/internal/domain/notification"
)

// TransactionScope provides transactional access to the repositories an alert
// regeneration touches. Delete-and-regenerate must be atomic: a reader never
// observes the window between the delete and the insert.
type TransactionScope interface {
	// Execute runs the given function within a database transaction.
	// If the function returns an error, the transaction is rolled back.
	Execute(ctx context.Context, fn func(repos TransactionalRepositories) error) error
}

// TransactionalRepositories provides access to the repositories within a
// transaction. All repositories returned share the same underlying database
// transaction.
type TransactionalRepositories interface {
	// NotificationRepo returns the alert repository scoped to the current transaction
	NotificationRepo() notification.Repository
	// ItemRepo returns the item repository scoped to the current transaction
	ItemRepo() inventory.ItemRepository
}

// NoOpTransactionScope runs functions without a real transaction. Used in
// tests where repositories are in-memory fakes.
type NoOpTransactionScope struct {
	notifRepo notification.Repository
	itemRepo  inventory.ItemRepository
}

// NewNoOpTransactionScope creates a NoOpTransactionScope over the given repositories
func NewNoOpTransactionScope(notifRepo notification.Repository, itemRepo inventory.ItemRepository) *NoOpTransactionScope {
	return &NoOpTransactionScope{notifRepo: notifRepo, itemRepo: itemRepo}
}

// Execute runs the function without a real transaction
func (s *NoOpTransactionScope) Execute(_ context.Context, fn func(repos TransactionalRepositories) error) error {
	return fn(s)
}

// NotificationRepo returns the alert repository
func (s *NoOpTransactionScope) NotificationRepo() notification.Repository { return s.notifRepo }

// ItemRepo returns the item repository
func (s *NoOpTransactionScope) ItemRepo() inventory.ItemRepository { return s.itemRepo }

var _ TransactionScope = (*NoOpTransactionScope)(nil)
var _ TransactionalRepositories = (*NoOpTransactionScope)(nil)
