package tenant

import (
	"time"

	"github.com/google/uuid"
	"github.com/stokku/backend/internal/domain/shared"
)

// Business represents a tenant (bisnis) that owns warehouses, staff and stock.
// It is the aggregate root for subscription state.
type Business struct {
	shared.BaseAggregateRoot
	Name                  string     `gorm:"type:varchar(200);not null"`
	OwnerUserID           uuid.UUID  `gorm:"type:uuid;not null;index"`
	PlanID                uuid.UUID  `gorm:"type:uuid;not null;index"`
	SubscriptionExpiresAt *time.Time // nil = never expires
}

// TableName returns the table name for GORM
func (Business) TableName() string {
	return "businesses"
}

// NewBusiness creates a new business on the given plan
func NewBusiness(name string, ownerUserID, planID uuid.UUID) (*Business, error) {
	if name == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Business name cannot be empty")
	}
	if ownerUserID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_OWNER", "Owner user ID cannot be empty")
	}
	if planID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_PLAN", "Plan ID cannot be empty")
	}

	return &Business{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Name:              name,
		OwnerUserID:       ownerUserID,
		PlanID:            planID,
	}, nil
}

// ChangePlan moves the business to a new plan with an optional expiry
func (b *Business) ChangePlan(planID uuid.UUID, expiresAt *time.Time) error {
	if planID == uuid.Nil {
		return shared.NewDomainError("INVALID_PLAN", "Plan ID cannot be empty")
	}
	b.PlanID = planID
	b.SubscriptionExpiresAt = expiresAt
	b.UpdatedAt = time.Now()
	b.IncrementVersion()
	return nil
}

// SubscriptionExpired reports whether the subscription lapsed before now
func (b *Business) SubscriptionExpired(now time.Time) bool {
	return b.SubscriptionExpiresAt != nil && b.SubscriptionExpiresAt.Before(now)
}
