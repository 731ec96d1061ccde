package tenant

import (
	"context"

	"github.com/stokku/backend/internal/domain/tenant"
)

// TransactionScope provides transactional access to the tenant repositories.
// Quota enforcement reads the business row under a lock and writes the staff
// row in the same transaction, so two concurrent activations cannot both pass
// the seat check.
type TransactionScope interface {
	// Execute runs the given function within a database transaction.
	// If the function returns an error, the transaction is rolled back.
	Execute(ctx context.Context, fn func(repos TransactionalRepositories) error) error
}

// TransactionalRepositories provides access to the tenant repositories within
// a transaction. All repositories returned share the same underlying database
// transaction.
type TransactionalRepositories interface {
	// BusinessRepo returns the business repository scoped to the current transaction
	BusinessRepo() tenant.BusinessRepository
	// PlanRepo returns the plan repository scoped to the current transaction
	PlanRepo() tenant.SubscriptionPlanRepository
	// StaffRepo returns the staff repository scoped to the current transaction
	StaffRepo() tenant.StaffUserRepository
}

// NoOpTransactionScope runs functions without a real transaction. Used in
// tests where repositories are in-memory fakes.
type NoOpTransactionScope struct {
	businessRepo tenant.BusinessRepository
	planRepo     tenant.SubscriptionPlanRepository
	staffRepo    tenant.StaffUserRepository
}

// NewNoOpTransactionScope creates a NoOpTransactionScope over the given repositories
func NewNoOpTransactionScope(
	businessRepo tenant.BusinessRepository,
	planRepo tenant.SubscriptionPlanRepository,
	staffRepo tenant.StaffUserRepository,
) *NoOpTransactionScope {
	return &NoOpTransactionScope{
		businessRepo: businessRepo,
		planRepo:     planRepo,
		staffRepo:    staffRepo,
	}
}

// Execute runs the function without a real transaction
func (s *NoOpTransactionScope) Execute(_ context.Context, fn func(repos TransactionalRepositories) error) error {
	return fn(s)
}

// BusinessRepo returns the business repository
func (s *NoOpTransactionScope) BusinessRepo() tenant.BusinessRepository { return s.businessRepo }

// PlanRepo returns the plan repository
func (s *NoOpTransactionScope) PlanRepo() tenant.SubscriptionPlanRepository { return s.planRepo }

// StaffRepo returns the staff repository
func (s *NoOpTransactionScope) StaffRepo() tenant.StaffUserRepository { return s.staffRepo }

var _ TransactionScope = (*NoOpTransactionScope)(nil)
var _ TransactionalRepositories = (*NoOpTransactionScope)(nil)
