package inventory

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func jakartaLocation(t *testing.T) *time.Location {
	t.Helper()
	loc, err := time.LoadLocation("Asia/Jakarta")
	require.NoError(t, err)
	return loc
}

func TestNewItemBatch(t *testing.T) {
	t.Run("creates batch with zero quantity", func(t *testing.T) {
		expiry := time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC)

		batch, err := NewItemBatch(uuid.New(), uuid.New(), &expiry)
		require.NoError(t, err)
		assert.Equal(t, int64(0), batch.Quantity)
		assert.True(t, batch.HasExpiry())
	})

	t.Run("rejects empty item", func(t *testing.T) {
		_, err := NewItemBatch(uuid.New(), uuid.Nil, nil)
		assert.Error(t, err)
	})

	t.Run("expiry is optional", func(t *testing.T) {
		batch, err := NewItemBatch(uuid.New(), uuid.New(), nil)
		require.NoError(t, err)
		assert.False(t, batch.HasExpiry())
	})
}

func TestCivilDaysBetween(t *testing.T) {
	loc := jakartaLocation(t)

	t.Run("same civil day yields zero", func(t *testing.T) {
		from := time.Date(2026, 9, 1, 8, 0, 0, 0, loc)
		to := time.Date(2026, 9, 1, 23, 59, 0, 0, loc)
		assert.Equal(t, 0, CivilDaysBetween(from, to, loc))
	})

	t.Run("clock times do not matter across the boundary", func(t *testing.T) {
		from := time.Date(2026, 9, 1, 23, 59, 0, 0, loc)
		to := time.Date(2026, 9, 2, 0, 1, 0, 0, loc)
		assert.Equal(t, 1, CivilDaysBetween(from, to, loc))
	})

	t.Run("negative for a past day", func(t *testing.T) {
		from := time.Date(2026, 9, 5, 12, 0, 0, 0, loc)
		to := time.Date(2026, 9, 3, 12, 0, 0, 0, loc)
		assert.Equal(t, -2, CivilDaysBetween(from, to, loc))
	})

	t.Run("uses the civil day of the target timezone", func(t *testing.T) {
		// 18:00 UTC is already the next civil day in Jakarta (UTC+7).
		from := time.Date(2026, 9, 1, 10, 0, 0, 0, loc)
		to := time.Date(2026, 9, 1, 18, 0, 0, 0, time.UTC)
		assert.Equal(t, 1, CivilDaysBetween(from, to, loc))
	})
}

func TestCivilDayStart(t *testing.T) {
	loc := jakartaLocation(t)

	start := CivilDayStart(time.Date(2026, 9, 1, 17, 30, 0, 0, loc), loc)
	assert.Equal(t, time.Date(2026, 9, 1, 0, 0, 0, 0, loc), start)
}

func TestItemBatch_DaysUntilExpiry(t *testing.T) {
	loc := jakartaLocation(t)
	today := time.Date(2026, 9, 1, 10, 0, 0, 0, loc)

	t.Run("no expiry", func(t *testing.T) {
		batch := &ItemBatch{}
		_, ok := batch.DaysUntilExpiry(today, loc)
		assert.False(t, ok)
	})

	t.Run("future expiry", func(t *testing.T) {
		expiry := time.Date(2026, 9, 30, 0, 0, 0, 0, loc)
		batch := &ItemBatch{ExpiryDate: &expiry}

		days, ok := batch.DaysUntilExpiry(today, loc)
		require.True(t, ok)
		assert.Equal(t, 29, days)
	})

	t.Run("expires today", func(t *testing.T) {
		expiry := time.Date(2026, 9, 1, 0, 0, 0, 0, loc)
		batch := &ItemBatch{ExpiryDate: &expiry}

		days, ok := batch.DaysUntilExpiry(today, loc)
		require.True(t, ok)
		assert.Equal(t, 0, days)
	})

	t.Run("already expired", func(t *testing.T) {
		expiry := time.Date(2026, 8, 28, 0, 0, 0, 0, loc)
		batch := &ItemBatch{ExpiryDate: &expiry}

		days, ok := batch.DaysUntilExpiry(today, loc)
		require.True(t, ok)
		assert.Equal(t, -4, days)
	})
}
