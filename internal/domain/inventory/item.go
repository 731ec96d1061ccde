package inventory

import (
	"time"

	"github.com/google/uuid"
	"github.com/stokku/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// Item represents a catalog product definition within one warehouse.
// It is the aggregate root for stock operations; current stock is the sum of
// its batches' quantities.
type Item struct {
	shared.TenantAggregateRoot
	WarehouseID uuid.UUID      `gorm:"type:uuid;not null;uniqueIndex:idx_item_warehouse_name,priority:2"`
	CategoryID  *uuid.UUID     `gorm:"type:uuid;index"`
	Name        string         `gorm:"type:varchar(200);not null;uniqueIndex:idx_item_warehouse_name,priority:3"`
	Unit        string         `gorm:"type:varchar(50);not null"` // unit of measure, e.g. "kg", "pcs"
	MinStock    int64          `gorm:"not null;default:0"`        // 0 = no minimum threshold
	MaxStock    int64          `gorm:"not null;default:0"`        // 0 = no maximum threshold
	DeletedAt   gorm.DeletedAt `gorm:"index"`

	// Loaded lazily
	Batches []ItemBatch `gorm:"foreignKey:ItemID;references:ID"`
}

// TableName returns the table name for GORM
func (Item) TableName() string {
	return "items"
}

// NewItem creates a new item in a warehouse.
// MinStock and MaxStock are independent thresholds; min above max is allowed
// (both alerts simply never fire together for the same quantity).
func NewItem(tenantID, warehouseID uuid.UUID, name, unit string, minStock, maxStock int64) (*Item, error) {
	if warehouseID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_WAREHOUSE", "Warehouse ID cannot be empty")
	}
	if name == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Item name cannot be empty")
	}
	if unit == "" {
		return nil, shared.NewDomainError("INVALID_UNIT", "Item unit cannot be empty")
	}
	if minStock < 0 || maxStock < 0 {
		return nil, shared.NewDomainError("INVALID_THRESHOLD", "Stock thresholds cannot be negative")
	}

	return &Item{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		WarehouseID:         warehouseID,
		Name:                name,
		Unit:                unit,
		MinStock:            minStock,
		MaxStock:            maxStock,
		Batches:             make([]ItemBatch, 0),
	}, nil
}

// SetThresholds updates the min/max stock thresholds
func (i *Item) SetThresholds(minStock, maxStock int64) error {
	if minStock < 0 || maxStock < 0 {
		return shared.NewDomainError("INVALID_THRESHOLD", "Stock thresholds cannot be negative")
	}
	i.MinStock = minStock
	i.MaxStock = maxStock
	i.UpdatedAt = time.Now()
	i.IncrementVersion()
	return nil
}

// AggregateQuantity returns the total quantity across loaded batches
func (i *Item) AggregateQuantity() int64 {
	var total int64
	for idx := range i.Batches {
		total += i.Batches[idx].Quantity
	}
	return total
}

// HasMinThreshold returns true if a minimum threshold is configured
func (i *Item) HasMinThreshold() bool {
	return i.MinStock > 0
}

// HasMaxThreshold returns true if a maximum threshold is configured
func (i *Item) HasMaxThreshold() bool {
	return i.MaxStock > 0
}

// IsBelowMinimum returns true if the quantity is positive but at or below the
// configured minimum
func (i *Item) IsBelowMinimum(quantity int64) bool {
	return i.HasMinThreshold() && quantity > 0 && quantity <= i.MinStock
}

// IsAboveMaximum returns true if the quantity exceeds the configured maximum
func (i *Item) IsAboveMaximum(quantity int64) bool {
	return i.HasMaxThreshold() && quantity > i.MaxStock
}
