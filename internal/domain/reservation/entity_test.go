//go:build unit

package reservation_test

import (
	"testing"
	"time"

	"account-shop/internal/domain/reservation"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var baseTime = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

func newActive(t *testing.T, ttl time.Duration) *reservation.Reservation {
	t.Helper()
	res, err := reservation.NewReservation(uuid.New(), []uuid.UUID{uuid.New(), uuid.New()}, baseTime, ttl)
	require.NoError(t, err)
	return res
}

func TestNewReservation(t *testing.T) {
	t.Run("basic success case", func(t *testing.T) {
		orderID := uuid.New()
		ids := []uuid.UUID{uuid.New(), uuid.New(), uuid.New()}

		res, err := reservation.NewReservation(orderID, ids, baseTime, 2*time.Hour)
		require.NoError(t, err)

		assert.NotEqual(t, uuid.Nil, res.ID())
		assert.Equal(t, orderID, res.OrderID())
		assert.Equal(t, ids, res.AccountIDs())
		assert.Equal(t, reservation.StatusActive, res.Status())
		assert.Equal(t, baseTime, res.ReservedAt())
		assert.Equal(t, baseTime.Add(2*time.Hour), res.ExpiresAt())
	})

	t.Run("empty item set", func(t *testing.T) {
		_, err := reservation.NewReservation(uuid.New(), nil, baseTime, time.Hour)
		assert.ErrorIs(t, err, reservation.ErrEmptyItemSet)
	})

	t.Run("non-positive ttl", func(t *testing.T) {
		_, err := reservation.NewReservation(uuid.New(), []uuid.UUID{uuid.New()}, baseTime, 0)
		assert.ErrorIs(t, err, reservation.ErrInvalidTTL)

		_, err = reservation.NewReservation(uuid.New(), []uuid.UUID{uuid.New()}, baseTime, -time.Minute)
		assert.ErrorIs(t, err, reservation.ErrInvalidTTL)
	})
}

func TestReservation_Transitions(t *testing.T) {
	t.Run("complete only from active", func(t *testing.T) {
		res := newActive(t, time.Hour)
		require.NoError(t, res.Complete())
		assert.Equal(t, reservation.StatusCompleted, res.Status())

		assert.ErrorIs(t, res.Complete(), reservation.ErrNotActive)
		assert.ErrorIs(t, res.Release(), reservation.ErrNotActive)
	})

	t.Run("release only from active", func(t *testing.T) {
		res := newActive(t, time.Hour)
		require.NoError(t, res.Release())
		assert.Equal(t, reservation.StatusReleased, res.Status())

		assert.ErrorIs(t, res.Complete(), reservation.ErrNotActive)
	})

	t.Run("expire requires the deadline to have passed", func(t *testing.T) {
		res := newActive(t, time.Hour)

		assert.ErrorIs(t, res.Expire(baseTime.Add(30*time.Minute)), reservation.ErrNotActive)
		assert.Equal(t, reservation.StatusActive, res.Status())

		require.NoError(t, res.Expire(baseTime.Add(2*time.Hour)))
		assert.Equal(t, reservation.StatusExpired, res.Status())
	})
}

func TestReservation_IsHolding(t *testing.T) {
	res := newActive(t, time.Hour)

	assert.True(t, res.IsHolding(baseTime))
	assert.True(t, res.IsHolding(baseTime.Add(59*time.Minute)))
	// 期限ちょうどは保持していない扱い
	assert.False(t, res.IsHolding(baseTime.Add(time.Hour)))

	require.NoError(t, res.Release())
	assert.False(t, res.IsHolding(baseTime))
}
