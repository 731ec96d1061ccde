package inventory

import (
	"github.com/google/uuid"
	"github.com/stokku/backend/internal/domain/shared"
)

// StockOpname records a physical stock count reconciliation. It overwrites the
// system quantity rather than appending a MASUK/KELUAR delta, so reconstruction
// for days before an opname is best-effort only.
type StockOpname struct {
	shared.BaseEntity
	TenantID      uuid.UUID `gorm:"type:uuid;not null;index"`
	WarehouseID   uuid.UUID `gorm:"type:uuid;not null;index"`
	ItemID        uuid.UUID `gorm:"type:uuid;not null;index"`
	BatchID       uuid.UUID `gorm:"type:uuid;not null;index"`
	SystemCount   int64     `gorm:"not null"` // quantity the system believed before the count
	PhysicalCount int64     `gorm:"not null"` // quantity observed on the floor
	Difference    int64     `gorm:"not null"` // PhysicalCount - SystemCount, may be zero
	ActorID       uuid.UUID `gorm:"type:uuid;not null"`
	Notes         string    `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (StockOpname) TableName() string {
	return "stock_opnames"
}

// NewStockOpname creates a new opname record. A zero difference ("stok
// sesuai") is a valid, loggable outcome.
func NewStockOpname(
	tenantID, warehouseID, itemID, batchID uuid.UUID,
	systemCount, physicalCount int64,
	actorID uuid.UUID,
	notes string,
) (*StockOpname, error) {
	if batchID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_BATCH", "Batch ID cannot be empty")
	}
	if physicalCount < 0 {
		return nil, shared.NewDomainError("INVALID_COUNT", "Physical count cannot be negative")
	}
	if actorID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_ACTOR", "Actor ID cannot be empty")
	}

	return &StockOpname{
		BaseEntity:    shared.NewBaseEntity(),
		TenantID:      tenantID,
		WarehouseID:   warehouseID,
		ItemID:        itemID,
		BatchID:       batchID,
		SystemCount:   systemCount,
		PhysicalCount: physicalCount,
		Difference:    physicalCount - systemCount,
		ActorID:       actorID,
		Notes:         notes,
	}, nil
}

// IsMatch returns true if the physical count matched the system count
func (o *StockOpname) IsMatch() bool {
	return o.Difference == 0
}
