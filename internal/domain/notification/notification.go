package notification

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/stokku/backend/internal/domain/shared"
)

// Type classifies a stock alert
type Type string

const (
	// TypeStokHabis fires when an item's aggregate quantity is zero
	TypeStokHabis Type = "stok_habis"
	// TypeStokMenipis fires when the quantity is positive but at or below min stock
	TypeStokMenipis Type = "stok_menipis"
	// TypeStokBerlebih fires when the quantity exceeds max stock
	TypeStokBerlebih Type = "stok_berlebih"
	// TypeMendekatiKadaluarsa fires when a stocked batch expires within the warning window
	TypeMendekatiKadaluarsa Type = "mendekati_kadaluarsa"
	// TypeSudahKadaluarsa fires when a stocked batch has already expired
	TypeSudahKadaluarsa Type = "sudah_kadaluarsa"
)

// String returns the string representation of Type
func (t Type) String() string {
	return string(t)
}

// IsValid returns true if the alert type is valid
func (t Type) IsValid() bool {
	switch t {
	case TypeStokHabis, TypeStokMenipis, TypeStokBerlebih, TypeMendekatiKadaluarsa, TypeSudahKadaluarsa:
		return true
	}
	return false
}

// Notification is a derived, disposable alert row. The whole set for a scope
// is deleted and regenerated on every rule engine run; it is a materialized
// view over item/batch state, not a log.
type Notification struct {
	shared.BaseEntity
	TenantID    uuid.UUID  `gorm:"type:uuid;not null;index"`
	WarehouseID uuid.UUID  `gorm:"type:uuid;not null;index"`
	ItemID      uuid.UUID  `gorm:"type:uuid;not null;index"`
	BatchID     *uuid.UUID `gorm:"type:uuid;index"` // set for expiry alerts only
	Type        Type       `gorm:"type:varchar(30);not null;index"`
	Message     string     `gorm:"type:text;not null"`
}

// TableName returns the table name for GORM
func (Notification) TableName() string {
	return "notifications"
}

// NewThresholdAlert creates a stock-level alert for an item
func NewThresholdAlert(tenantID, warehouseID, itemID uuid.UUID, alertType Type, itemName string, quantity int64) *Notification {
	var msg string
	switch alertType {
	case TypeStokHabis:
		msg = fmt.Sprintf("Stok %s habis", itemName)
	case TypeStokMenipis:
		msg = fmt.Sprintf("Stok %s menipis, tersisa %d", itemName, quantity)
	case TypeStokBerlebih:
		msg = fmt.Sprintf("Stok %s berlebih, jumlah %d", itemName, quantity)
	}

	return &Notification{
		BaseEntity:  shared.NewBaseEntity(),
		TenantID:    tenantID,
		WarehouseID: warehouseID,
		ItemID:      itemID,
		Type:        alertType,
		Message:     msg,
	}
}

// NewExpiryAlert creates an expiry alert for a batch
func NewExpiryAlert(tenantID, warehouseID, itemID, batchID uuid.UUID, alertType Type, itemName string, daysLeft int) *Notification {
	var msg string
	switch alertType {
	case TypeSudahKadaluarsa:
		msg = fmt.Sprintf("Batch %s sudah kadaluarsa", itemName)
	case TypeMendekatiKadaluarsa:
		msg = fmt.Sprintf("Batch %s kadaluarsa dalam %d hari", itemName, daysLeft)
	}

	return &Notification{
		BaseEntity:  shared.NewBaseEntity(),
		TenantID:    tenantID,
		WarehouseID: warehouseID,
		ItemID:      itemID,
		BatchID:     &batchID,
		Type:        alertType,
		Message:     msg,
	}
}
