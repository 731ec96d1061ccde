package warehouse

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/stokku/backend/internal/domain/shared"
)

// Status represents the status of a warehouse (gudang)
type Status string

const (
	StatusActive   Status = "active"
	StatusInactive Status = "inactive"
)

// Warehouse represents a physical storage location owned by a business.
// An inactive warehouse rejects all stock mutations but keeps its data
// readable for reports.
type Warehouse struct {
	shared.TenantAggregateRoot
	Code    string `gorm:"type:varchar(50);not null;uniqueIndex:idx_warehouse_tenant_code,priority:2"`
	Name    string `gorm:"type:varchar(200);not null"`
	Status  Status `gorm:"type:varchar(20);not null;default:'active'"`
	Address string `gorm:"type:text"`
	City    string `gorm:"type:varchar(100)"`
}

// TableName returns the table name for GORM
func (Warehouse) TableName() string {
	return "warehouses"
}

// NewWarehouse creates a new active warehouse
func NewWarehouse(tenantID uuid.UUID, code, name string) (*Warehouse, error) {
	if err := validateCode(code); err != nil {
		return nil, err
	}
	if name == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Warehouse name cannot be empty")
	}
	if len(name) > 200 {
		return nil, shared.NewDomainError("INVALID_NAME", "Warehouse name cannot exceed 200 characters")
	}

	return &Warehouse{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		Code:                strings.ToUpper(code),
		Name:                name,
		Status:              StatusActive,
	}, nil
}

// Enable makes the warehouse active
func (w *Warehouse) Enable() error {
	if w.Status == StatusActive {
		return shared.NewDomainError("ALREADY_ACTIVE", "Warehouse is already active")
	}
	w.Status = StatusActive
	w.UpdatedAt = time.Now()
	w.IncrementVersion()
	return nil
}

// Disable makes the warehouse inactive
func (w *Warehouse) Disable() error {
	if w.Status == StatusInactive {
		return shared.NewDomainError("ALREADY_INACTIVE", "Warehouse is already inactive")
	}
	w.Status = StatusInactive
	w.UpdatedAt = time.Now()
	w.IncrementVersion()
	return nil
}

// IsActive returns true if the warehouse accepts stock mutations
func (w *Warehouse) IsActive() bool {
	return w.Status == StatusActive
}

func validateCode(code string) error {
	if code == "" {
		return shared.NewDomainError("INVALID_CODE", "Warehouse code cannot be empty")
	}
	if len(code) > 50 {
		return shared.NewDomainError("INVALID_CODE", "Warehouse code cannot exceed 50 characters")
	}
	for _, r := range code {
		if !((r >= 'A' && r <= 'Z') || (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == '_' || r == '-') {
			return shared.NewDomainError("INVALID_CODE", "Warehouse code can only contain letters, numbers, underscores, and hyphens")
		}
	}
	return nil
}
