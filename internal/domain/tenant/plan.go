package tenant

import (
	"fmt"

	"github.com/stokku/backend/internal/domain/shared"
)

// UnlimitedSentinel is the legacy wire representation for "no limit".
// Any persisted limit at or above this value is treated as unbounded.
// The sentinel only exists at the persistence/API edge; inside the domain
// limits are expressed through the Limit type.
const UnlimitedSentinel int64 = 1_000_000

// Limit is a subscription resource limit: either bounded to a count or
// unbounded. The zero value is Bounded(0).
type Limit struct {
	n         int64
	unbounded bool
}

// BoundedLimit creates a limit of n slots. n must be non-negative.
func BoundedLimit(n int64) Limit {
	if n < 0 {
		n = 0
	}
	return Limit{n: n}
}

// UnboundedLimit creates a limit that never rejects.
func UnboundedLimit() Limit {
	return Limit{unbounded: true}
}

// LimitFromSentinel translates the persisted integer representation into a
// Limit, mapping values at or above UnlimitedSentinel to unbounded.
func LimitFromSentinel(v int64) Limit {
	if v >= UnlimitedSentinel {
		return UnboundedLimit()
	}
	return BoundedLimit(v)
}

// Sentinel returns the persisted integer representation of the limit.
func (l Limit) Sentinel() int64 {
	if l.unbounded {
		return UnlimitedSentinel
	}
	return l.n
}

// IsUnbounded returns true if the limit never rejects
func (l Limit) IsUnbounded() bool {
	return l.unbounded
}

// Value returns the bounded slot count. Only meaningful when not unbounded.
func (l Limit) Value() int64 {
	return l.n
}

// Allows reports whether usage of `used` slots still leaves room for one more.
func (l Limit) Allows(used int64) bool {
	if l.unbounded {
		return true
	}
	return used < l.n
}

// String returns a human-readable representation
func (l Limit) String() string {
	if l.unbounded {
		return "unlimited"
	}
	return fmt.Sprintf("%d", l.n)
}

// SubscriptionPlan defines the resource limits a business is entitled to.
type SubscriptionPlan struct {
	shared.BaseEntity
	Code           string `gorm:"type:varchar(50);not null;uniqueIndex"`
	Name           string `gorm:"type:varchar(100);not null"`
	LimitStaff     int64  `gorm:"not null;default:0"` // sentinel representation
	LimitWarehouse int64  `gorm:"not null;default:0"` // sentinel representation
	DurationDays   int    `gorm:"not null;default:0"` // 0 = never expires
	IsActive       bool   `gorm:"not null;default:true"`
}

// TableName returns the table name for GORM
func (SubscriptionPlan) TableName() string {
	return "subscription_plans"
}

// NewSubscriptionPlan creates a new subscription plan
func NewSubscriptionPlan(code, name string, staffLimit, warehouseLimit Limit, durationDays int) (*SubscriptionPlan, error) {
	if code == "" {
		return nil, shared.NewDomainError("INVALID_PLAN_CODE", "Plan code cannot be empty")
	}
	if name == "" {
		return nil, shared.NewDomainError("INVALID_PLAN_NAME", "Plan name cannot be empty")
	}
	if durationDays < 0 {
		return nil, shared.NewDomainError("INVALID_DURATION", "Plan duration cannot be negative")
	}

	return &SubscriptionPlan{
		BaseEntity:     shared.NewBaseEntity(),
		Code:           code,
		Name:           name,
		LimitStaff:     staffLimit.Sentinel(),
		LimitWarehouse: warehouseLimit.Sentinel(),
		DurationDays:   durationDays,
		IsActive:       true,
	}, nil
}

// StaffLimit returns the staff seat limit as a Limit value
func (p *SubscriptionPlan) StaffLimit() Limit {
	return LimitFromSentinel(p.LimitStaff)
}

// WarehouseLimit returns the warehouse count limit as a Limit value
func (p *SubscriptionPlan) WarehouseLimit() Limit {
	return LimitFromSentinel(p.LimitWarehouse)
}
