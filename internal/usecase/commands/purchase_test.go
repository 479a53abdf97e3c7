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

var testTime = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

func validInput() commands.CreatePurchaseInput {
	return commands.CreatePurchaseInput{
		BuyerID:      "200000000000000001",
		BuyerName:    "buyer",
		Quantity:     3,
		CardTypeRaw:  "amazon",
		GiftCardCode: "ABCD1234EFGH56",
	}
}

func newPurchaseFixture(t *testing.T) (commands.PurchaseCommands, *fake.UoW, *clock.MockClock) {
	t.Helper()
	clk := clock.NewMockClock(testTime)
	uow := fake.NewUoW(clk)
	uc := commands.NewPurchaseUseCase(uow, config.NewTestConfig().Shop, clk)
	return uc, uow, clk
}

func TestCreatePurchase(t *testing.T) {
	ctx := context.Background()

	t.Run("reserves exactly quantity accounts and creates a pending order", func(t *testing.T) {
		uc, uow, _ := newPurchaseFixture(t)
		uow.SeedAccounts(5, "stock")

		result, err := uc.CreatePurchase(ctx, validInput())
		require.NoError(t, err)

		assert.Equal(t, 3, result.Quantity)
		assert.Equal(t, 3, result.ReservedCount)
		assert.Equal(t, int64(150), result.TotalPriceCents)

		orderRow := uow.Order(result.OrderID)
		require.NotNil(t, orderRow)
		assert.Equal(t, order.StatusPending, orderRow.Status)

		res := uow.ReservationByOrder(result.OrderID)
		require.NotNil(t, res)
		assert.Equal(t, reservation.StatusActive, res.Status)
		assert.Len(t, res.AccountIDs, 3)
		assert.Equal(t, testTime.Add(2*time.Hour), res.ExpiresAt)
	})

	t.Run("gift card code survives onto the result and the stored order", func(t *testing.T) {
		uc, uow, _ := newPurchaseFixture(t)
		uow.SeedAccounts(5, "stock")

		input := validInput()
		input.GiftCardCode = "AMZN9876TESTCODE42"

		result, err := uc.CreatePurchase(ctx, input)
		require.NoError(t, err)

		// オペレーターが照合するコードそのもの。型だけでは検証できない
		assert.Equal(t, "AMZN9876TESTCODE42", result.CardCode)

		orderRow := uow.Order(result.OrderID)
		require.NotNil(t, orderRow)
		assert.Equal(t, "AMZN9876TESTCODE42", orderRow.CardCode)
	})

	t.Run("insufficient stock rolls the whole transaction back", func(t *testing.T) {
		uc, uow, _ := newPurchaseFixture(t)
		uow.SeedAccounts(2, "stock")

		_, err := uc.CreatePurchase(ctx, validInput())
		require.ErrorIs(t, err, commands.ErrInsufficientStock)

		// 注文もぶら下がらない
		assert.Equal(t, 0, uow.OrderCount())
	})

	t.Run("two sequential purchases never share accounts", func(t *testing.T) {
		uc, uow, _ := newPurchaseFixture(t)
		uow.SeedAccounts(5, "stock")

		first, err := uc.CreatePurchase(ctx, validInput())
		require.NoError(t, err)

		input := validInput()
		input.Quantity = 2
		input.BuyerID = "200000000000000002"
		second, err := uc.CreatePurchase(ctx, input)
		require.NoError(t, err)

		firstRes := uow.ReservationByOrder(first.OrderID)
		secondRes := uow.ReservationByOrder(second.OrderID)
		seen := make(map[uuid.UUID]bool)
		for _, id := range firstRes.AccountIDs {
			seen[id] = true
		}
		for _, id := range secondRes.AccountIDs {
			assert.False(t, seen[id], "account %s held by both reservations", id)
		}

		// 在庫 5 は使い切り。3 件目は確保できない
		input.Quantity = 2
		_, err = uc.CreatePurchase(ctx, input)
		assert.ErrorIs(t, err, commands.ErrInsufficientStock)
	})

	t.Run("expired holds are reclaimable without a sweep", func(t *testing.T) {
		uc, uow, clk := newPurchaseFixture(t)
		uow.SeedAccounts(3, "stock")

		_, err := uc.CreatePurchase(ctx, validInput())
		require.NoError(t, err)

		_, err = uc.CreatePurchase(ctx, validInput())
		require.ErrorIs(t, err, commands.ErrInsufficientStock)

		clk.Add(3 * time.Hour)
		_, err = uc.CreatePurchase(ctx, validInput())
		assert.NoError(t, err)
	})

	t.Run("quantity outside policy", func(t *testing.T) {
		uc, uow, _ := newPurchaseFixture(t)
		uow.SeedAccounts(200, "stock")

		input := validInput()
		input.Quantity = 1
		_, err := uc.CreatePurchase(ctx, input)
		assert.ErrorIs(t, err, commands.ErrInvalidQuantity)

		input.Quantity = 101
		_, err = uc.CreatePurchase(ctx, input)
		assert.ErrorIs(t, err, commands.ErrInvalidQuantity)
	})

	t.Run("bad gift card fails before touching the store", func(t *testing.T) {
		uc, uow, _ := newPurchaseFixture(t)
		uow.SeedAccounts(5, "stock")

		input := validInput()
		input.GiftCardCode = "short"
		_, err := uc.CreatePurchase(ctx, input)
		require.ErrorIs(t, err, commands.ErrInvalidGiftCard)
		assert.Equal(t, 0, uow.OrderCount())

		input = validInput()
		input.CardTypeRaw = "steam"
		_, err = uc.CreatePurchase(ctx, input)
		assert.ErrorIs(t, err, commands.ErrInvalidGiftCard)
	})
}

func TestAttachTicketChannel(t *testing.T) {
	ctx := context.Background()
	uc, uow, _ := newPurchaseFixture(t)
	uow.SeedAccounts(5, "stock")

	result, err := uc.CreatePurchase(ctx, validInput())
	require.NoError(t, err)

	require.NoError(t, uc.AttachTicketChannel(ctx, result.OrderID, "300000000000000001"))
	assert.Equal(t, "300000000000000001", uow.Order(result.OrderID).TicketChannelID)
}
