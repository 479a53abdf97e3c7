//go:build unit

package commands_test

import (
	"context"
	"testing"
	"time"

	"account-shop/internal/domain/order"
	"account-shop/internal/domain/reservation"
	"account-shop/internal/pkg/clock"
	"account-shop/internal/pkg/config"
	"account-shop/internal/usecase/commands"
	"account-shop/tests/common/fake"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type approvalFixture struct {
	purchase commands.PurchaseCommands
	approval commands.ApprovalCommands
	sweep    commands.SweepCommands
	uow      *fake.UoW
	clk      *clock.MockClock
}

func newApprovalFixture(t *testing.T, stock int) *approvalFixture {
	t.Helper()
	clk := clock.NewMockClock(testTime)
	uow := fake.NewUoW(clk)
	uow.SeedAccounts(stock, "stock")
	return &approvalFixture{
		purchase: commands.NewPurchaseUseCase(uow, config.NewTestConfig().Shop, clk),
		approval: commands.NewApprovalUseCase(uow, clk),
		sweep:    commands.NewSweepUseCase(uow),
		uow:      uow,
		clk:      clk,
	}
}

func (f *approvalFixture) placeOrder(t *testing.T, quantity int) uuid.UUID {
	t.Helper()
	input := validInput()
	input.Quantity = quantity
	result, err := f.purchase.CreatePurchase(context.Background(), input)
	require.NoError(t, err)
	return result.OrderID
}

func TestApprove(t *testing.T) {
	ctx := context.Background()

	t.Run("consumes the hold and returns credentials", func(t *testing.T) {
		f := newApprovalFixture(t, 5)
		orderID := f.placeOrder(t, 3)

		result, err := f.approval.Approve(ctx, orderID)
		require.NoError(t, err)

		assert.Equal(t, "200000000000000001", result.BuyerID)
		require.Len(t, result.Credentials, 3)
		for _, c := range result.Credentials {
			assert.NotEmpty(t, c.Email)
			assert.NotEmpty(t, c.Password)
		}

		assert.Equal(t, order.StatusCompleted, f.uow.Order(orderID).Status)
		require.NotNil(t, f.uow.Order(orderID).CompletedAt)
		assert.Equal(t, reservation.StatusCompleted, f.uow.ReservationByOrder(orderID).Status)
		assert.Equal(t, 3, f.uow.ConsumedCount())
	})

	t.Run("second approval is refused without double-consuming", func(t *testing.T) {
		f := newApprovalFixture(t, 5)
		orderID := f.placeOrder(t, 3)

		_, err := f.approval.Approve(ctx, orderID)
		require.NoError(t, err)

		_, err = f.approval.Approve(ctx, orderID)
		assert.ErrorIs(t, err, commands.ErrOrderAlreadyFinalized)
		assert.Equal(t, 3, f.uow.ConsumedCount())
	})

	t.Run("unknown order", func(t *testing.T) {
		f := newApprovalFixture(t, 5)
		_, err := f.approval.Approve(ctx, uuid.New())
		assert.ErrorIs(t, err, commands.ErrOrderNotFound)
	})

	t.Run("expired hold cannot be approved", func(t *testing.T) {
		f := newApprovalFixture(t, 5)
		orderID := f.placeOrder(t, 3)

		f.clk.Add(3 * time.Hour)

		_, err := f.approval.Approve(ctx, orderID)
		assert.ErrorIs(t, err, commands.ErrReservationNotActive)
		assert.Equal(t, 0, f.uow.ConsumedCount())
		// 注文は保留のまま。オペレーターは reject で閉じられる
		assert.Equal(t, order.StatusPending, f.uow.Order(orderID).Status)
	})

	t.Run("swept hold cannot be approved", func(t *testing.T) {
		f := newApprovalFixture(t, 5)
		orderID := f.placeOrder(t, 3)

		f.clk.Add(3 * time.Hour)
		expired, err := f.sweep.ExpireReservations(ctx)
		require.NoError(t, err)
		assert.Equal(t, int64(1), expired)

		_, err = f.approval.Approve(ctx, orderID)
		assert.ErrorIs(t, err, commands.ErrReservationNotActive)
	})
}

func TestReject(t *testing.T) {
	ctx := context.Background()

	t.Run("releases the hold and finalizes the order", func(t *testing.T) {
		f := newApprovalFixture(t, 5)
		orderID := f.placeOrder(t, 3)

		result, err := f.approval.Reject(ctx, orderID, "card did not redeem")
		require.NoError(t, err)
		assert.Equal(t, "card did not redeem", result.Reason)

		assert.Equal(t, order.StatusRejected, f.uow.Order(orderID).Status)
		assert.Equal(t, reservation.StatusReleased, f.uow.ReservationByOrder(orderID).Status)
		assert.Equal(t, 0, f.uow.ConsumedCount())
	})

	t.Run("released accounts are immediately reclaimable", func(t *testing.T) {
		f := newApprovalFixture(t, 3)
		orderID := f.placeOrder(t, 3)

		_, err := f.approval.Reject(ctx, orderID, "no")
		require.NoError(t, err)

		secondID := f.placeOrder(t, 3)
		assert.NotNil(t, f.uow.ReservationByOrder(secondID))
	})

	t.Run("reject after the hold was swept still closes the order", func(t *testing.T) {
		f := newApprovalFixture(t, 5)
		orderID := f.placeOrder(t, 3)

		f.clk.Add(3 * time.Hour)
		_, err := f.sweep.ExpireReservations(ctx)
		require.NoError(t, err)

		_, err = f.approval.Reject(ctx, orderID, "expired")
		require.NoError(t, err)
		assert.Equal(t, order.StatusRejected, f.uow.Order(orderID).Status)
	})

	t.Run("reject of a terminal order is refused", func(t *testing.T) {
		f := newApprovalFixture(t, 5)
		orderID := f.placeOrder(t, 3)

		_, err := f.approval.Approve(ctx, orderID)
		require.NoError(t, err)

		_, err = f.approval.Reject(ctx, orderID, "too late")
		assert.ErrorIs(t, err, commands.ErrOrderAlreadyFinalized)
		assert.Equal(t, order.StatusCompleted, f.uow.Order(orderID).Status)
	})
}

func TestExpireReservations(t *testing.T) {
	ctx := context.Background()

	f := newApprovalFixture(t, 10)
	first := f.placeOrder(t, 2)

	f.clk.Add(time.Hour)
	second := f.placeOrder(t, 2)

	// first は期限切れ、second はまだ 1 時間残っている
	f.clk.Add(90 * time.Minute)

	expired, err := f.sweep.ExpireReservations(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), expired)

	assert.Equal(t, reservation.StatusExpired, f.uow.ReservationByOrder(first).Status)
	assert.Equal(t, reservation.StatusActive, f.uow.ReservationByOrder(second).Status)

	// 冪等
	expired, err = f.sweep.ExpireReservations(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(0), expired)
}
