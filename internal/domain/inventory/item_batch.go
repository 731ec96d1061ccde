package inventory

import (
	"time"

	"github.com/google/uuid"
	"github.com/stokku/backend/internal/domain/shared"
)

// ItemBatch represents a countable lot of an item, optionally carrying its own
// expiry date. Quantity is only ever mutated by the stock mutation service.
type ItemBatch struct {
	shared.BaseEntity
	TenantID   uuid.UUID  `gorm:"type:uuid;not null;index"`
	ItemID     uuid.UUID  `gorm:"type:uuid;not null;index"`
	Quantity   int64      `gorm:"not null;default:0"`
	ExpiryDate *time.Time `gorm:"type:date"`
}

// TableName returns the table name for GORM
func (ItemBatch) TableName() string {
	return "item_batches"
}

// NewItemBatch creates a new empty batch for an item
func NewItemBatch(tenantID, itemID uuid.UUID, expiryDate *time.Time) (*ItemBatch, error) {
	if itemID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_ITEM", "Item ID cannot be empty")
	}

	return &ItemBatch{
		BaseEntity: shared.NewBaseEntity(),
		TenantID:   tenantID,
		ItemID:     itemID,
		ExpiryDate: expiryDate,
	}, nil
}

// HasExpiry returns true if the batch carries an expiry date
func (b *ItemBatch) HasExpiry() bool {
	return b.ExpiryDate != nil
}

// DaysUntilExpiry returns the number of whole calendar days between today and
// the expiry date, computed at civil-midnight boundaries in loc. Zero or
// negative means the batch has already expired. Returns false if the batch has
// no expiry date.
func (b *ItemBatch) DaysUntilExpiry(today time.Time, loc *time.Location) (int, bool) {
	if b.ExpiryDate == nil {
		return 0, false
	}
	return CivilDaysBetween(today, *b.ExpiryDate, loc), true
}

// CivilDaysBetween returns the count of calendar-day boundaries between from
// and to in the given timezone. Same civil day yields 0; to on the next civil
// day yields 1, regardless of clock times.
func CivilDaysBetween(from, to time.Time, loc *time.Location) int {
	return int(civilMidnight(to, loc).Sub(civilMidnight(from, loc)).Hours() / 24)
}

// civilMidnight truncates t to midnight of its civil day in loc.
func civilMidnight(t time.Time, loc *time.Location) time.Time {
	y, m, d := t.In(loc).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, loc)
}

// CivilDayStart returns midnight of t's civil day in loc.
func CivilDayStart(t time.Time, loc *time.Location) time.Time {
	return civilMidnight(t, loc)
}
