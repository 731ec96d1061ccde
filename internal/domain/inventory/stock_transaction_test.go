package inventory

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTransactionType(t *testing.T) {
	t.Run("IsValid returns true for valid types", func(t *testing.T) {
		assert.True(t, TransactionTypeMasuk.IsValid())
		assert.True(t, TransactionTypeKeluar.IsValid())
	})

	t.Run("IsValid returns false for invalid types", func(t *testing.T) {
		assert.False(t, TransactionType("OPNAME").IsValid())
		assert.False(t, TransactionType("").IsValid())
	})
}

func TestNewStockTransaction(t *testing.T) {
	tenantID := uuid.New()
	warehouseID := uuid.New()
	itemID := uuid.New()
	batchID := uuid.New()
	actorID := uuid.New()

	t.Run("creates transaction with snapshot", func(t *testing.T) {
		tx, err := NewStockTransaction(tenantID, warehouseID, itemID, batchID, TransactionTypeMasuk, 10, 25, actorID)
		require.NoError(t, err)

		assert.Equal(t, TransactionTypeMasuk, tx.Type)
		assert.Equal(t, int64(10), tx.Quantity)
		require.NotNil(t, tx.StockSnapshot)
		assert.Equal(t, int64(25), *tx.StockSnapshot)
	})

	t.Run("rejects empty tenant", func(t *testing.T) {
		_, err := NewStockTransaction(uuid.Nil, warehouseID, itemID, batchID, TransactionTypeMasuk, 10, 25, actorID)
		assert.Error(t, err)
	})

	t.Run("rejects empty batch", func(t *testing.T) {
		_, err := NewStockTransaction(tenantID, warehouseID, itemID, uuid.Nil, TransactionTypeMasuk, 10, 25, actorID)
		assert.Error(t, err)
	})

	t.Run("rejects invalid type", func(t *testing.T) {
		_, err := NewStockTransaction(tenantID, warehouseID, itemID, batchID, TransactionType("X"), 10, 25, actorID)
		assert.Error(t, err)
	})

	t.Run("rejects non-positive quantity", func(t *testing.T) {
		_, err := NewStockTransaction(tenantID, warehouseID, itemID, batchID, TransactionTypeMasuk, 0, 25, actorID)
		assert.Error(t, err)

		_, err = NewStockTransaction(tenantID, warehouseID, itemID, batchID, TransactionTypeKeluar, -5, 25, actorID)
		assert.Error(t, err)
	})

	t.Run("rejects negative snapshot", func(t *testing.T) {
		_, err := NewStockTransaction(tenantID, warehouseID, itemID, batchID, TransactionTypeMasuk, 10, -1, actorID)
		assert.Error(t, err)
	})

	t.Run("rejects empty actor", func(t *testing.T) {
		_, err := NewStockTransaction(tenantID, warehouseID, itemID, batchID, TransactionTypeMasuk, 10, 25, uuid.Nil)
		assert.Error(t, err)
	})

	t.Run("builder setters attach counterparts", func(t *testing.T) {
		tx, err := NewStockTransaction(tenantID, warehouseID, itemID, batchID, TransactionTypeKeluar, 3, 7, actorID)
		require.NoError(t, err)

		tx.WithCustomer("Warung Bu Sari").WithNotes("pengiriman pagi")
		assert.Equal(t, "Warung Bu Sari", tx.Customer)
		assert.Equal(t, "pengiriman pagi", tx.Notes)
	})
}

func TestStockTransaction_SignedQuantity(t *testing.T) {
	masuk := &StockTransaction{Type: TransactionTypeMasuk, Quantity: 10}
	keluar := &StockTransaction{Type: TransactionTypeKeluar, Quantity: 4}

	assert.Equal(t, int64(10), masuk.SignedQuantity())
	assert.Equal(t, int64(-4), keluar.SignedQuantity())
}

func TestStockTransaction_OccurredOn(t *testing.T) {
	loc, err := time.LoadLocation("Asia/Jakarta")
	require.NoError(t, err)

	tx := &StockTransaction{}
	tx.CreatedAt = time.Date(2026, 9, 1, 23, 30, 0, 0, loc)

	assert.True(t, tx.OccurredOn(time.Date(2026, 9, 1, 6, 0, 0, 0, loc), loc))
	assert.False(t, tx.OccurredOn(time.Date(2026, 9, 2, 0, 1, 0, 0, loc), loc))
}

func TestReplayQuantity(t *testing.T) {
	snap := func(v int64) *int64 { return &v }

	t.Run("replays signed movements from zero", func(t *testing.T) {
		txs := []StockTransaction{
			{Type: TransactionTypeMasuk, Quantity: 50, StockSnapshot: snap(50)},
			{Type: TransactionTypeKeluar, Quantity: 20, StockSnapshot: snap(30)},
			{Type: TransactionTypeMasuk, Quantity: 5, StockSnapshot: snap(35)},
		}
		assert.Equal(t, int64(35), ReplayQuantity(txs))
	})

	t.Run("nil snapshot restarts replay", func(t *testing.T) {
		txs := []StockTransaction{
			{Type: TransactionTypeMasuk, Quantity: 100, StockSnapshot: nil},
			{Type: TransactionTypeMasuk, Quantity: 10, StockSnapshot: snap(10)},
			{Type: TransactionTypeKeluar, Quantity: 3, StockSnapshot: snap(7)},
		}
		assert.Equal(t, int64(7), ReplayQuantity(txs))
	})

	t.Run("empty history yields zero", func(t *testing.T) {
		assert.Equal(t, int64(0), ReplayQuantity(nil))
	})
}
