package tenant

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewBusiness(t *testing.T) {
	t.Run("creates business without expiry", func(t *testing.T) {
		biz, err := NewBusiness("Toko Maju", uuid.New(), uuid.New())
		require.NoError(t, err)

		assert.Equal(t, "Toko Maju", biz.Name)
		assert.Nil(t, biz.SubscriptionExpiresAt)
	})

	t.Run("rejects empty name", func(t *testing.T) {
		_, err := NewBusiness("", uuid.New(), uuid.New())
		assert.Error(t, err)
	})

	t.Run("rejects empty owner", func(t *testing.T) {
		_, err := NewBusiness("Toko Maju", uuid.Nil, uuid.New())
		assert.Error(t, err)
	})

	t.Run("rejects empty plan", func(t *testing.T) {
		_, err := NewBusiness("Toko Maju", uuid.New(), uuid.Nil)
		assert.Error(t, err)
	})
}

func TestBusiness_ChangePlan(t *testing.T) {
	biz, err := NewBusiness("Toko Maju", uuid.New(), uuid.New())
	require.NoError(t, err)

	t.Run("moves to new plan with expiry", func(t *testing.T) {
		newPlanID := uuid.New()
		expiresAt := time.Now().Add(30 * 24 * time.Hour)
		versionBefore := biz.Version

		require.NoError(t, biz.ChangePlan(newPlanID, &expiresAt))
		assert.Equal(t, newPlanID, biz.PlanID)
		require.NotNil(t, biz.SubscriptionExpiresAt)
		assert.Equal(t, versionBefore+1, biz.Version)
	})

	t.Run("nil expiry means never expires", func(t *testing.T) {
		require.NoError(t, biz.ChangePlan(uuid.New(), nil))
		assert.Nil(t, biz.SubscriptionExpiresAt)
	})

	t.Run("rejects empty plan", func(t *testing.T) {
		assert.Error(t, biz.ChangePlan(uuid.Nil, nil))
	})
}

func TestBusiness_SubscriptionExpired(t *testing.T) {
	now := time.Now()

	t.Run("nil expiry never expires", func(t *testing.T) {
		biz := &Business{}
		assert.False(t, biz.SubscriptionExpired(now))
	})

	t.Run("past expiry is lapsed", func(t *testing.T) {
		past := now.Add(-time.Hour)
		biz := &Business{SubscriptionExpiresAt: &past}
		assert.True(t, biz.SubscriptionExpired(now))
	})

	t.Run("future expiry is current", func(t *testing.T) {
		future := now.Add(time.Hour)
		biz := &Business{SubscriptionExpiresAt: &future}
		assert.False(t, biz.SubscriptionExpired(now))
	})
}
