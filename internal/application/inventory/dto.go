package inventory

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// InboundRequest describes a MASUK mutation. Either BatchID targets an
// existing batch, or ItemID requests a batch created on the fly (first
// inbound for a new lot, optionally with its own expiry date).
type InboundRequest struct {
	TenantID   uuid.UUID
	ActorID    uuid.UUID
	BatchID    *uuid.UUID
	ItemID     *uuid.UUID
	ExpiryDate *time.Time
	Quantity   int64
	Supplier   string
	Notes      string
}

// OutboundRequest describes a KELUAR mutation against an existing batch
type OutboundRequest struct {
	TenantID uuid.UUID
	ActorID  uuid.UUID
	BatchID  uuid.UUID
	Quantity int64
	Customer string
	Notes    string
}

// OpnameRequest describes a physical count reconciliation for a batch
type OpnameRequest struct {
	TenantID      uuid.UUID
	ActorID       uuid.UUID
	BatchID       uuid.UUID
	PhysicalCount int64
	Notes         string
}

// DailyStockPoint is one day of the reconstructed stock series
type DailyStockPoint struct {
	Date       time.Time           `json:"date"`
	Quantities map[uuid.UUID]int64 `json:"quantities"`
}

// StockOutProjection estimates when an item runs out at its current velocity
type StockOutProjection struct {
	ItemID          uuid.UUID       `json:"item_id"`
	CurrentQuantity int64           `json:"current_quantity"`
	DailyVelocity   decimal.Decimal `json:"daily_velocity"`
	DaysRemaining   int64           `json:"days_remaining"`
	StockOutDate    time.Time       `json:"stock_out_date"`
}

// ABCClass is a sales-contribution class label
type ABCClass string

const (
	ABCClassA ABCClass = "A"
	ABCClassB ABCClass = "B"
	ABCClassC ABCClass = "C"
)

// ABCEntry is one item's ABC classification by outbound volume share
type ABCEntry struct {
	ItemID           uuid.UUID       `json:"item_id"`
	OutboundQuantity int64           `json:"outbound_quantity"`
	Share            decimal.Decimal `json:"share"`
	CumulativeShare  decimal.Decimal `json:"cumulative_share"`
	Class            ABCClass        `json:"class"`
}
