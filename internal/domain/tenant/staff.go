package tenant

import (
	"time"

	"github.com/google/uuid"
	"github.com/stokku/backend/internal/domain/shared"
)

// StaffStatus represents the lifecycle state of a staff member
type StaffStatus string

const (
	// StaffStatusActive is a staff member with full access
	StaffStatusActive StaffStatus = "active"
	// StaffStatusPending is an invited staff member who has not accepted yet.
	// Pending staff still occupy a seat.
	StaffStatusPending StaffStatus = "pending"
	// StaffStatusInactive is a deactivated staff member; the seat is freed
	StaffStatusInactive StaffStatus = "inactive"
)

// String returns the string representation of StaffStatus
func (s StaffStatus) String() string {
	return string(s)
}

// IsValid returns true if the status is a valid StaffStatus
func (s StaffStatus) IsValid() bool {
	switch s {
	case StaffStatusActive, StaffStatusPending, StaffStatusInactive:
		return true
	}
	return false
}

// OccupiesSeat reports whether this status counts against the plan's staff quota
func (s StaffStatus) OccupiesSeat() bool {
	return s == StaffStatusActive || s == StaffStatusPending
}

// StaffUser represents a staff member of a business
type StaffUser struct {
	shared.TenantAggregateRoot
	UserID uuid.UUID   `gorm:"type:uuid;not null;index"`
	Name   string      `gorm:"type:varchar(200);not null"`
	Email  string      `gorm:"type:varchar(200);not null;index"`
	Status StaffStatus `gorm:"type:varchar(20);not null;default:'pending';index"`
}

// TableName returns the table name for GORM
func (StaffUser) TableName() string {
	return "staff_users"
}

// NewStaffInvitation creates a staff member in pending state
func NewStaffInvitation(tenantID, userID uuid.UUID, name, email string) (*StaffUser, error) {
	if userID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_USER", "User ID cannot be empty")
	}
	if email == "" {
		return nil, shared.NewDomainError("INVALID_EMAIL", "Email cannot be empty")
	}

	return &StaffUser{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		UserID:              userID,
		Name:                name,
		Email:               email,
		Status:              StaffStatusPending,
	}, nil
}

// Activate moves the staff member to active state
func (s *StaffUser) Activate() error {
	if s.Status == StaffStatusActive {
		return shared.NewDomainError("ALREADY_ACTIVE", "Staff member is already active")
	}
	s.Status = StaffStatusActive
	s.UpdatedAt = time.Now()
	s.IncrementVersion()
	return nil
}

// Deactivate frees the staff member's seat
func (s *StaffUser) Deactivate() error {
	if s.Status == StaffStatusInactive {
		return shared.NewDomainError("ALREADY_INACTIVE", "Staff member is already inactive")
	}
	s.Status = StaffStatusInactive
	s.UpdatedAt = time.Now()
	s.IncrementVersion()
	return nil
}
