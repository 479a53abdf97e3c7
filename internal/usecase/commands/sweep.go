package commands

import (
	"context"
	"log/slog"

	"account-shop/internal/pkg/errs"
	"account-shop/internal/usecase/shared"
)

type SweepCommands interface {
	// ExpireReservations flips every active reservation past its expiry to
	// expired, returning the held accounts to the sellable pool. Returns how
	// many reservations were flipped.
	ExpireReservations(ctx context.Context) (int64, error)
}

type sweepUseCaseImpl struct {
	uow shared.UnitOfWork
}

func NewSweepUseCase(uow shared.UnitOfWork) SweepCommands {
	return &sweepUseCaseImpl{uow: uow}
}

func (u *sweepUseCaseImpl) ExpireReservations(ctx context.Context) (int64, error) {
	var expired int64
	err := u.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		n, err := tx.Reservations().ExpireStale(ctx)
		if err != nil {
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}
		expired = n
		return nil
	})
	if err != nil {
		return 0, err
	}

	if expired > 0 {
		slog.Info("expired stale reservations", "count", expired)
	}
	return expired, nil
}
