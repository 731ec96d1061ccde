package inventory

import (
	"time"

	"github.com/google/uuid"
	"github.com/stokku/backend/internal/domain/shared"
)

// TransactionType represents the direction of a stock transaction
type TransactionType string

const (
	// TransactionTypeMasuk is an inbound stock movement (goods received)
	TransactionTypeMasuk TransactionType = "MASUK"
	// TransactionTypeKeluar is an outbound stock movement (goods issued)
	TransactionTypeKeluar TransactionType = "KELUAR"
)

// String returns the string representation of TransactionType
func (t TransactionType) String() string {
	return string(t)
}

// IsValid returns true if the transaction type is valid
func (t TransactionType) IsValid() bool {
	return t == TransactionTypeMasuk || t == TransactionTypeKeluar
}

// StockTransaction is an immutable record of a stock movement against a batch.
// Once created, transactions are never modified; corrections go through opname
// or a compensating transaction. CreatedAt is the authoritative ordering key.
type StockTransaction struct {
	shared.BaseEntity
	TenantID    uuid.UUID       `gorm:"type:uuid;not null;index:idx_stock_tx_tenant_time,priority:1"`
	WarehouseID uuid.UUID       `gorm:"type:uuid;not null;index"`
	ItemID      uuid.UUID       `gorm:"type:uuid;not null;index"`
	BatchID     uuid.UUID       `gorm:"type:uuid;not null;index"`
	Type        TransactionType `gorm:"type:varchar(10);not null;index"`
	Quantity    int64           `gorm:"not null"` // always positive, direction from Type
	// StockSnapshot is the batch quantity immediately after this transaction.
	// Nullable for legacy rows imported without snapshots; those are treated
	// as zero pre-history during replay.
	StockSnapshot *int64    `gorm:""`
	ActorID       uuid.UUID `gorm:"type:uuid;not null"`
	Supplier      string    `gorm:"type:varchar(200)"` // counterpart for MASUK
	Customer      string    `gorm:"type:varchar(200)"` // counterpart for KELUAR
	Notes         string    `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (StockTransaction) TableName() string {
	return "stock_transactions"
}

// NewStockTransaction creates a new stock transaction
func NewStockTransaction(
	tenantID, warehouseID, itemID, batchID uuid.UUID,
	txType TransactionType,
	quantity int64,
	snapshot int64,
	actorID uuid.UUID,
) (*StockTransaction, error) {
	if tenantID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_TENANT", "Tenant ID cannot be empty")
	}
	if batchID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_BATCH", "Batch ID cannot be empty")
	}
	if !txType.IsValid() {
		return nil, shared.NewDomainError("INVALID_TRANSACTION_TYPE", "Invalid transaction type")
	}
	if quantity <= 0 {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Quantity must be positive")
	}
	if snapshot < 0 {
		return nil, shared.NewDomainError("INVALID_SNAPSHOT", "Stock snapshot cannot be negative")
	}
	if actorID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_ACTOR", "Actor ID cannot be empty")
	}

	return &StockTransaction{
		BaseEntity:    shared.NewBaseEntity(),
		TenantID:      tenantID,
		WarehouseID:   warehouseID,
		ItemID:        itemID,
		BatchID:       batchID,
		Type:          txType,
		Quantity:      quantity,
		StockSnapshot: &snapshot,
		ActorID:       actorID,
	}, nil
}

// WithSupplier sets the supplier counterpart (MASUK)
func (t *StockTransaction) WithSupplier(supplier string) *StockTransaction {
	t.Supplier = supplier
	return t
}

// WithCustomer sets the customer counterpart (KELUAR)
func (t *StockTransaction) WithCustomer(customer string) *StockTransaction {
	t.Customer = customer
	return t
}

// WithNotes sets free-text notes
func (t *StockTransaction) WithNotes(notes string) *StockTransaction {
	t.Notes = notes
	return t
}

// SignedQuantity returns the quantity with direction applied: positive for
// MASUK, negative for KELUAR.
func (t *StockTransaction) SignedQuantity() int64 {
	if t.Type == TransactionTypeKeluar {
		return -t.Quantity
	}
	return t.Quantity
}

// OccurredOn reports whether the transaction falls on the civil day of `day`
// in the given timezone.
func (t *StockTransaction) OccurredOn(day time.Time, loc *time.Location) bool {
	return CivilDaysBetween(day, t.CreatedAt, loc) == 0
}

// ReplayQuantity replays transactions in created_at order from zero and
// returns the resulting quantity. For a batch with no opname in its history
// this must equal the batch's current quantity. Legacy rows with a nil
// snapshot are treated as zero pre-history: replay restarts from that row.
func ReplayQuantity(txs []StockTransaction) int64 {
	var qty int64
	for i := range txs {
		if txs[i].StockSnapshot == nil {
			qty = 0
			continue
		}
		qty += txs[i].SignedQuantity()
	}
	return qty
}
