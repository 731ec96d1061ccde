package cache

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stokku/backend/internal/domain/notification"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemorySummaryCache(t *testing.T) {
	t.Run("miss before set", func(t *testing.T) {
		c := NewMemorySummaryCache()

		_, ok, err := c.Get(context.Background(), uuid.New())
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("returns stored summary", func(t *testing.T) {
		c := NewMemorySummaryCache()
		tenantID := uuid.New()

		summary := map[notification.Type]int64{
			notification.TypeStokHabis:   2,
			notification.TypeStokMenipis: 1,
		}
		require.NoError(t, c.Set(context.Background(), tenantID, summary))

		got, ok, err := c.Get(context.Background(), tenantID)
		require.NoError(t, err)
		require.True(t, ok)
		assert.Equal(t, summary, got)
	})

	t.Run("returned map is a copy", func(t *testing.T) {
		c := NewMemorySummaryCache()
		tenantID := uuid.New()

		require.NoError(t, c.Set(context.Background(), tenantID, map[notification.Type]int64{
			notification.TypeStokHabis: 1,
		}))

		got, _, err := c.Get(context.Background(), tenantID)
		require.NoError(t, err)
		got[notification.TypeStokHabis] = 99

		fresh, _, err := c.Get(context.Background(), tenantID)
		require.NoError(t, err)
		assert.Equal(t, int64(1), fresh[notification.TypeStokHabis])
	})

	t.Run("invalidate drops only the named tenant", func(t *testing.T) {
		c := NewMemorySummaryCache()
		tenantA := uuid.New()
		tenantB := uuid.New()

		require.NoError(t, c.Set(context.Background(), tenantA, map[notification.Type]int64{notification.TypeStokHabis: 1}))
		require.NoError(t, c.Set(context.Background(), tenantB, map[notification.Type]int64{notification.TypeStokHabis: 1}))

		require.NoError(t, c.Invalidate(context.Background(), tenantA))

		_, ok, err := c.Get(context.Background(), tenantA)
		require.NoError(t, err)
		assert.False(t, ok)

		_, ok, err = c.Get(context.Background(), tenantB)
		require.NoError(t, err)
		assert.True(t, ok)
	})
}
