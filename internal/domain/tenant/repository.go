package tenant

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stokku/backend/internal/domain/shared"
)

// BusinessRepository defines the interface for business persistence
type BusinessRepository interface {
	// FindByID finds a business by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*Business, error)

	// FindByIDForUpdate finds a business by ID taking a row lock. Quota
	// checks read through this so concurrent activations serialize on the
	// business row.
	FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*Business, error)

	// FindExpiredBefore finds businesses whose subscription lapsed before the cutoff
	FindExpiredBefore(ctx context.Context, cutoff time.Time) ([]Business, error)

	// FindAll finds all businesses matching the filter
	FindAll(ctx context.Context, filter shared.Filter) ([]Business, error)

	// Save creates or updates a business
	Save(ctx context.Context, b *Business) error
}

// SubscriptionPlanRepository defines the interface for plan persistence
type SubscriptionPlanRepository interface {
	// FindByID finds a plan by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*SubscriptionPlan, error)

	// FindByCode finds a plan by its code (e.g. "free", "pro")
	FindByCode(ctx context.Context, code string) (*SubscriptionPlan, error)

	// Save creates or updates a plan
	Save(ctx context.Context, p *SubscriptionPlan) error
}

// StaffUserRepository defines the interface for staff persistence
type StaffUserRepository interface {
	// FindByID finds a staff member by ID within a tenant
	FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*StaffUser, error)

	// FindAllForTenant finds all staff for a tenant
	FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]StaffUser, error)

	// CountOccupiedSeats counts staff whose status occupies a seat (active or pending)
	CountOccupiedSeats(ctx context.Context, tenantID uuid.UUID) (int64, error)

	// Save creates or updates a staff member
	Save(ctx context.Context, s *StaffUser) error
}
