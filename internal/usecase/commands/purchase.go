package commands

import (
	"context"
	"errors"
	"log/slog"

	"account-shop/internal/domain/giftcard"
	"account-shop/internal/domain/order"
	"account-shop/internal/domain/reservation"
	"account-shop/internal/pkg/clock"
	"account-shop/internal/pkg/config"
	"account-shop/internal/pkg/errs"
	"account-shop/internal/usecase/shared"

	"github.com/google/uuid"
)

var (
	ErrInvalidQuantity         = errs.New("invalid quantity")
	ErrInvalidGiftCard         = errs.New("invalid gift card")
	ErrInsufficientStock       = errs.New("insufficient stock")
	ErrOrderNotFound           = errs.New("order not found")
	ErrOrderAlreadyFinalized   = errs.New("order already finalized")
	ErrReservationNotActive    = errs.New("reservation not active")
	ErrDatabaseOperationFailed = errs.New("database operation failed")
)

// PurchaseResult is everything the chat layer needs to render the order
// confirmation and the admin approval request.
type PurchaseResult struct {
	OrderID         uuid.UUID
	ReservationID   uuid.UUID
	Quantity        int
	TotalPriceCents int64
	CardType        giftcard.CardType
	// CardCode is what the operator actually redeems; it must reach the
	// approval embed or manual verification is impossible.
	CardCode      string
	ReservedCount int
}

type PurchaseCommands interface {
	// CreatePurchase validates the gift card, creates a pending order and
	// atomically reserves quantity accounts for it. Either the whole hold is
	// taken or nothing is persisted.
	CreatePurchase(ctx context.Context, input CreatePurchaseInput) (*PurchaseResult, error)
	// AttachTicketChannel records the ticket channel opened for an order so
	// delivery can fall back to it later.
	AttachTicketChannel(ctx context.Context, orderID uuid.UUID, channelID string) error
}

type CreatePurchaseInput struct {
	BuyerID      string
	BuyerName    string
	Quantity     int
	CardTypeRaw  string
	GiftCardCode string
}

type purchaseUseCaseImpl struct {
	uow   shared.UnitOfWork
	cfg   config.ShopConfig
	clock clock.Clock
}

func NewPurchaseUseCase(uow shared.UnitOfWork, cfg config.ShopConfig, clk clock.Clock) PurchaseCommands {
	return &purchaseUseCaseImpl{
		uow:   uow,
		cfg:   cfg,
		clock: clk,
	}
}

func (u *purchaseUseCaseImpl) CreatePurchase(ctx context.Context, input CreatePurchaseInput) (*PurchaseResult, error) {
	card, err := giftcard.NewCard(input.CardTypeRaw, input.GiftCardCode)
	if err != nil {
		return nil, errs.Mark(err, ErrInvalidGiftCard)
	}

	policy := order.QuantityPolicy{Min: u.cfg.MinQuantity, Max: u.cfg.MaxQuantity}
	newOrder, err := order.NewOrder(
		input.BuyerID, input.BuyerName,
		input.Quantity, u.cfg.UnitPriceCents,
		card, policy,
	)
	if err != nil {
		if errors.Is(err, order.ErrInvalidQuantity) {
			return nil, errs.Mark(err, ErrInvalidQuantity)
		}
		return nil, err
	}

	var result *PurchaseResult
	err = u.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		if err := tx.Orders().Create(ctx, newOrder); err != nil {
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}

		// 在庫の行ロックを先に取ってから数を確認する
		accountIDs, err := tx.Accounts().LockAvailable(ctx, newOrder.Quantity())
		if err != nil {
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}
		if len(accountIDs) < newOrder.Quantity() {
			return ErrInsufficientStock
		}

		res, err := reservation.NewReservation(newOrder.ID(), accountIDs, u.clock.Now(), u.cfg.ReservationTTL)
		if err != nil {
			return err
		}
		if err := tx.Reservations().Create(ctx, res); err != nil {
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}

		result = &PurchaseResult{
			OrderID:         newOrder.ID(),
			ReservationID:   res.ID(),
			Quantity:        newOrder.Quantity(),
			TotalPriceCents: newOrder.TotalPriceCents(),
			CardType:        newOrder.CardType(),
			CardCode:        newOrder.CardCode(),
			ReservedCount:   len(accountIDs),
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	slog.Info("purchase created",
		"order_id", result.OrderID,
		"buyer_id", input.BuyerID,
		"quantity", result.Quantity,
	)
	return result, nil
}

func (u *purchaseUseCaseImpl) AttachTicketChannel(ctx context.Context, orderID uuid.UUID, channelID string) error {
	return u.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		if err := tx.Orders().AttachTicketChannel(ctx, orderID, channelID); err != nil {
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}
		return nil
	})
}
