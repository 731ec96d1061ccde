package warehouse

import (
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewWarehouse(t *testing.T) {
	tenantID := uuid.New()

	t.Run("creates active warehouse with uppercased code", func(t *testing.T) {
		wh, err := NewWarehouse(tenantID, "gd-01", "Gudang Pusat")
		require.NoError(t, err)

		assert.Equal(t, "GD-01", wh.Code)
		assert.Equal(t, StatusActive, wh.Status)
		assert.True(t, wh.IsActive())
	})

	t.Run("rejects empty code", func(t *testing.T) {
		_, err := NewWarehouse(tenantID, "", "Gudang")
		assert.Error(t, err)
	})

	t.Run("rejects code with invalid characters", func(t *testing.T) {
		_, err := NewWarehouse(tenantID, "GD 01", "Gudang")
		assert.Error(t, err)

		_, err = NewWarehouse(tenantID, "GD/01", "Gudang")
		assert.Error(t, err)
	})

	t.Run("rejects overlong code", func(t *testing.T) {
		_, err := NewWarehouse(tenantID, strings.Repeat("A", 51), "Gudang")
		assert.Error(t, err)
	})

	t.Run("rejects empty name", func(t *testing.T) {
		_, err := NewWarehouse(tenantID, "GD-01", "")
		assert.Error(t, err)
	})

	t.Run("rejects overlong name", func(t *testing.T) {
		_, err := NewWarehouse(tenantID, "GD-01", strings.Repeat("a", 201))
		assert.Error(t, err)
	})
}

func TestWarehouse_EnableDisable(t *testing.T) {
	newWarehouse := func(t *testing.T) *Warehouse {
		wh, err := NewWarehouse(uuid.New(), "GD-01", "Gudang Pusat")
		require.NoError(t, err)
		return wh
	}

	t.Run("disable stops stock mutations", func(t *testing.T) {
		wh := newWarehouse(t)
		require.NoError(t, wh.Disable())
		assert.False(t, wh.IsActive())
	})

	t.Run("disable twice fails", func(t *testing.T) {
		wh := newWarehouse(t)
		require.NoError(t, wh.Disable())
		assert.Error(t, wh.Disable())
	})

	t.Run("enable restores mutations", func(t *testing.T) {
		wh := newWarehouse(t)
		require.NoError(t, wh.Disable())
		require.NoError(t, wh.Enable())
		assert.True(t, wh.IsActive())
	})

	t.Run("enable while active fails", func(t *testing.T) {
		wh := newWarehouse(t)
		assert.Error(t, wh.Enable())
	})
}
