package commands

import (
	"context"
	"log/slog"

	"account-shop/internal/domain/order"
	"account-shop/internal/domain/reservation"
	"account-shop/internal/infra"
	"account-shop/internal/pkg/clock"
	"account-shop/internal/pkg/errs"
	"account-shop/internal/usecase/shared"

	"github.com/google/uuid"
)

// ApproveResult carries everything delivery needs. Credentials are read in
// the same transaction that consumes them, so the payload always matches the
// accounts that were actually flipped.
type ApproveResult struct {
	OrderID         uuid.UUID
	BuyerID         string
	BuyerName       string
	Quantity        int
	TicketChannelID string
	Credentials     []*shared.CredentialSnapshot
}

type RejectResult struct {
	OrderID         uuid.UUID
	BuyerID         string
	TicketChannelID string
	Reason          string
}

type ApprovalCommands interface {
	// Approve consumes the order's active hold and finalizes the order.
	// A second approval of the same order returns ErrOrderAlreadyFinalized
	// without touching inventory.
	Approve(ctx context.Context, orderID uuid.UUID) (*ApproveResult, error)
	// Reject releases the hold (if still active) and finalizes the order as
	// rejected. Safe to call after the hold already expired.
	Reject(ctx context.Context, orderID uuid.UUID, reason string) (*RejectResult, error)
}

type approvalUseCaseImpl struct {
	uow   shared.UnitOfWork
	clock clock.Clock
}

func NewApprovalUseCase(uow shared.UnitOfWork, clk clock.Clock) ApprovalCommands {
	return &approvalUseCaseImpl{
		uow:   uow,
		clock: clk,
	}
}

func (u *approvalUseCaseImpl) Approve(ctx context.Context, orderID uuid.UUID) (*ApproveResult, error) {
	var result *ApproveResult
	err := u.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		snapshot, err := tx.Reads().OrderByID(ctx, orderID)
		if err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return ErrOrderNotFound
			}
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}
		if snapshot.Status.IsTerminal() {
			return ErrOrderAlreadyFinalized
		}

		res, err := tx.Reservations().FindActiveByOrder(ctx, orderID)
		if err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return ErrReservationNotActive
			}
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}
		now := u.clock.Now()
		if !res.IsHolding(now) {
			// 期限切れだが sweep 前。消費せずに弾く（sweep 側が expired に倒す）
			return ErrReservationNotActive
		}

		flipped, err := tx.Accounts().MarkConsumed(ctx, res.AccountIDs(), snapshot.BuyerID)
		if err != nil {
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}
		if flipped != int64(len(res.AccountIDs())) {
			// Active hold holds the row locks, so this only fires on data
			// corruption. Abort rather than short-deliver.
			return errs.Mark(errs.Newf("expected %d consumed, got %d", len(res.AccountIDs()), flipped), ErrDatabaseOperationFailed)
		}

		if err := tx.Reservations().SetStatus(ctx, res.ID(), reservation.StatusCompleted); err != nil {
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}
		if err := tx.Orders().SetStatus(ctx, orderID, order.StatusCompleted, &now); err != nil {
			if infra.IsKind(err, infra.KindConflict) {
				return ErrOrderAlreadyFinalized
			}
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}

		credentials, err := tx.Reads().CredentialsByIDs(ctx, res.AccountIDs())
		if err != nil {
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}

		result = &ApproveResult{
			OrderID:         orderID,
			BuyerID:         snapshot.BuyerID,
			BuyerName:       snapshot.BuyerName,
			Quantity:        snapshot.Quantity,
			TicketChannelID: snapshot.TicketChannelID,
			Credentials:     credentials,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	slog.Info("order approved", "order_id", orderID, "quantity", result.Quantity)
	return result, nil
}

func (u *approvalUseCaseImpl) Reject(ctx context.Context, orderID uuid.UUID, reason string) (*RejectResult, error) {
	var result *RejectResult
	err := u.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		snapshot, err := tx.Reads().OrderByID(ctx, orderID)
		if err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return ErrOrderNotFound
			}
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}
		if snapshot.Status.IsTerminal() {
			return ErrOrderAlreadyFinalized
		}

		res, err := tx.Reservations().FindActiveByOrder(ctx, orderID)
		switch {
		case err == nil:
			if err := tx.Reservations().SetStatus(ctx, res.ID(), reservation.StatusReleased); err != nil {
				return errs.Mark(err, ErrDatabaseOperationFailed)
			}
		case infra.IsKind(err, infra.KindNotFound):
			// Hold already expired and swept. The order itself still needs
			// finalizing, so carry on.
		default:
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}

		now := u.clock.Now()
		if err := tx.Orders().SetStatus(ctx, orderID, order.StatusRejected, &now); err != nil {
			if infra.IsKind(err, infra.KindConflict) {
				return ErrOrderAlreadyFinalized
			}
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}

		result = &RejectResult{
			OrderID:         orderID,
			BuyerID:         snapshot.BuyerID,
			TicketChannelID: snapshot.TicketChannelID,
			Reason:          reason,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	slog.Info("order rejected", "order_id", orderID)
	return result, nil
}
