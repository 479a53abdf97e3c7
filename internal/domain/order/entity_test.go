//go:build unit

package order_test

import (
	"testing"
	"time"

	"account-shop/internal/domain/order"
	"account-shop/tests/common/builder"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testCase struct {
	name   string
	mutate func(*builder.OrderBuilder)
	errIs  error
}

func runCases(t *testing.T, cases []testCase) {
	t.Helper()
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			b := builder.NewOrderBuilder()
			if tc.mutate != nil {
				tc.mutate(b)
			}
			actual, err := b.BuildDomain()
			if tc.errIs != nil {
				require.ErrorIs(t, err, tc.errIs)
				assert.Nil(t, actual)
				return
			}
			require.NoError(t, err)
			require.NotNil(t, actual)
		})
	}
}

func TestOrder(t *testing.T) {
	t.Run("basic success case", func(t *testing.T) {
		actual, err := builder.NewOrderBuilder().WithQuantity(5).BuildDomain()
		require.NoError(t, err)
		require.NotNil(t, actual)

		assert.NotEqual(t, uuid.Nil, actual.ID())
		assert.Equal(t, 5, actual.Quantity())
		assert.Equal(t, int64(250), actual.TotalPriceCents())
		assert.Equal(t, order.StatusPending, actual.Status())
		assert.True(t, actual.IsPending())
		assert.Nil(t, actual.CompletedAt())
	})

	t.Run("quantity validation", func(t *testing.T) {
		runCases(t, []testCase{
			{
				name:   "below minimum",
				mutate: func(b *builder.OrderBuilder) { b.WithQuantity(1) },
				errIs:  order.ErrInvalidQuantity,
			},
			{
				name:   "minimum valid",
				mutate: func(b *builder.OrderBuilder) { b.WithQuantity(2) },
			},
			{
				name:   "maximum valid",
				mutate: func(b *builder.OrderBuilder) { b.WithQuantity(100) },
			},
			{
				name:   "above maximum",
				mutate: func(b *builder.OrderBuilder) { b.WithQuantity(101) },
				errIs:  order.ErrInvalidQuantity,
			},
			{
				name:   "zero",
				mutate: func(b *builder.OrderBuilder) { b.WithQuantity(0) },
				errIs:  order.ErrInvalidQuantity,
			},
			{
				name:   "negative",
				mutate: func(b *builder.OrderBuilder) { b.WithQuantity(-3) },
				errIs:  order.ErrInvalidQuantity,
			},
		})
	})

	t.Run("buyer validation", func(t *testing.T) {
		runCases(t, []testCase{
			{
				name:   "empty buyer id",
				mutate: func(b *builder.OrderBuilder) { b.WithBuyerID("") },
				errIs:  order.ErrEmptyBuyer,
			},
		})
	})

	t.Run("price validation", func(t *testing.T) {
		runCases(t, []testCase{
			{
				name:   "negative unit price",
				mutate: func(b *builder.OrderBuilder) { b.WithUnitPriceCents(-1) },
				errIs:  order.ErrInvalidUnitPrice,
			},
			{
				name:   "free is allowed",
				mutate: func(b *builder.OrderBuilder) { b.WithUnitPriceCents(0) },
			},
		})
	})
}

func TestOrder_Lifecycle(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	t.Run("complete finalizes a pending order", func(t *testing.T) {
		o, err := builder.NewOrderBuilder().BuildDomain()
		require.NoError(t, err)

		require.NoError(t, o.Complete(now))
		assert.Equal(t, order.StatusCompleted, o.Status())
		require.NotNil(t, o.CompletedAt())
		assert.Equal(t, now, *o.CompletedAt())
	})

	t.Run("reject finalizes a pending order", func(t *testing.T) {
		o, err := builder.NewOrderBuilder().BuildDomain()
		require.NoError(t, err)

		require.NoError(t, o.Reject(now))
		assert.Equal(t, order.StatusRejected, o.Status())
	})

	t.Run("terminal orders cannot flip again", func(t *testing.T) {
		o, err := builder.NewOrderBuilder().BuildDomain()
		require.NoError(t, err)
		require.NoError(t, o.Complete(now))

		assert.ErrorIs(t, o.Complete(now), order.ErrAlreadyFinalized)
		assert.ErrorIs(t, o.Reject(now), order.ErrAlreadyFinalized)
		assert.Equal(t, order.StatusCompleted, o.Status())
	})

	t.Run("reject after reject is rejected", func(t *testing.T) {
		o, err := builder.NewOrderBuilder().BuildDomain()
		require.NoError(t, err)
		require.NoError(t, o.Reject(now))

		assert.ErrorIs(t, o.Reject(now), order.ErrAlreadyFinalized)
	})
}
