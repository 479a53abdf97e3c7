package uow

import (
	"context"
	"crypto/rand"
	"encoding/binary"
	"errors"
	"log/slog"
	"time"

	"account-shop/internal/domain/order"
	"account-shop/internal/infra/db"
	"account-shop/internal/infra/readstore"
	"account-shop/internal/infra/repository"
	"account-shop/internal/pkg/clock"
	"account-shop/internal/pkg/errs"
	"account-shop/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	pgErrCodeSerializationFailure = "40001"
	pgErrCodeDeadlockDetected     = "40P01"
)

var (
	errTransactionBegin   = errs.New("failed to begin transaction")
	errTransactionCommit  = errs.New("failed to commit transaction")
	errMaxRetriesExceeded = errs.New("transaction failed after max retries")
)

type PostgresUoW struct {
	pool  *pgxpool.Pool
	clock clock.Clock
}

func NewPostgresUoW(pool *pgxpool.Pool, clk clock.Clock) shared.UnitOfWork {
	return &PostgresUoW{
		pool:  pool,
		clock: clk,
	}
}

// ReadCommitted prevents dirty reads while allowing concurrent writes; the
// allocator's row locks carry the rest of the isolation burden.
func (u *PostgresUoW) Within(ctx context.Context, fn func(ctx context.Context, tx shared.Tx) error) error {
	return u.runInTxWithOptions(ctx, pgx.TxOptions{IsoLevel: pgx.ReadCommitted}, fn)
}

// Avoids defer accumulation in retry loops to prevent connection leaks
func (u *PostgresUoW) runInTxWithOptions(ctx context.Context, options pgx.TxOptions, fn func(ctx context.Context, tx shared.Tx) error) error {
	const maxRetries = 3
	base := 100 * time.Millisecond

	for attempt := 0; attempt <= maxRetries; attempt++ {
		pgxTx, err := u.pool.BeginTx(ctx, options)
		if err != nil {
			return errs.Mark(err, errTransactionBegin)
		}

		tx := &pgTx{
			dbtx: pgxTx,
			uow:  u,
		}

		err = fn(ctx, tx)
		if err == nil {
			if err = pgxTx.Commit(ctx); err == nil {
				return nil
			}
			err = errs.Mark(err, errTransactionCommit)
		}

		if rollbackErr := pgxTx.Rollback(ctx); rollbackErr != nil {
			if !errors.Is(rollbackErr, pgx.ErrTxClosed) {
				slog.Warn("rollback failed", "attempt", attempt+1, "error", rollbackErr.Error())
			}
		}

		if !shouldRetry(err, attempt, maxRetries) {
			if attempt == maxRetries {
				slog.Error("transaction failed after max retries",
					"attempts", attempt+1,
					"error", err.Error())
				return errs.Mark(err, errMaxRetriesExceeded)
			}
			return err
		}

		waitTime := calculateBackoff(attempt, base)

		slog.Warn("retrying transaction due to retryable error",
			"attempt", attempt+1,
			"wait_ms", waitTime.Milliseconds(),
			"error", err.Error())

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(waitTime):
		}
	}

	return errMaxRetriesExceeded
}

func shouldRetry(err error, attempt, maxRetries int) bool {
	return isRetryableError(err) && attempt < maxRetries
}

func calculateBackoff(attempt int, base time.Duration) time.Duration {
	waitTime := time.Duration(1<<attempt) * base
	jitter := cryptoRandInt63n(int64(waitTime / 5))
	return waitTime + time.Duration(jitter)
}

func cryptoRandInt63n(n int64) int64 {
	if n <= 0 {
		return 0
	}
	var buf [8]byte
	if _, err := rand.Read(buf[:]); err != nil {
		return 0
	}
	// Mask high bit to ensure positive int64
	uval := binary.BigEndian.Uint64(buf[:]) & 0x7FFFFFFFFFFFFFFF
	return int64(uval) % n
}

func isRetryableError(err error) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return false
	}

	switch pgErr.Code {
	case pgErrCodeSerializationFailure, pgErrCodeDeadlockDetected:
		return true
	default:
		return false
	}
}

type pgTx struct {
	dbtx db.DBTX
	uow  *PostgresUoW

	// Lazy-initialized repositories
	orderRepo       shared.OrderRepository
	accountRepo     shared.AccountRepository
	reservationRepo shared.ReservationRepository
	commandReads    shared.CommandReads
}

func (t *pgTx) DB() db.DBTX {
	return t.dbtx
}

func (t *pgTx) Orders() shared.OrderRepository {
	if t.orderRepo == nil {
		t.orderRepo = repository.NewOrderRepository(t.dbtx, t.uow.clock)
	}
	return t.orderRepo
}

func (t *pgTx) Accounts() shared.AccountRepository {
	if t.accountRepo == nil {
		t.accountRepo = repository.NewAccountRepository(t.dbtx, t.uow.clock)
	}
	return t.accountRepo
}

func (t *pgTx) Reservations() shared.ReservationRepository {
	if t.reservationRepo == nil {
		t.reservationRepo = repository.NewReservationRepository(t.dbtx, t.uow.clock)
	}
	return t.reservationRepo
}

func (t *pgTx) Reads() shared.CommandReads {
	if t.commandReads == nil {
		t.commandReads = &commandReads{
			uow:  t.uow,
			dbtx: t.dbtx,
		}
	}
	return t.commandReads
}

type commandReads struct {
	uow  *PostgresUoW
	dbtx db.DBTX

	orderStore   *readstore.OrderReadStore
	accountStore *readstore.AccountReadStore
}

func (r *commandReads) OrderByID(ctx context.Context, id uuid.UUID) (*shared.OrderSnapshot, error) {
	if r.orderStore == nil {
		r.orderStore = readstore.NewOrderReadStore(r.dbtx)
	}

	view, err := r.orderStore.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	snapshot := &shared.OrderSnapshot{
		ID:              view.ID,
		BuyerID:         view.BuyerID,
		BuyerName:       view.BuyerName,
		Quantity:        view.Quantity,
		TotalPriceCents: view.TotalPriceCents,
		CardType:        view.CardType,
		CardCode:        view.CardCode,
		Status:          order.Status(view.Status),
		TicketChannelID: view.TicketChannelID,
		CreatedAt:       view.CreatedAt,
		CompletedAt:     view.CompletedAt,
	}
	return snapshot, nil
}

func (r *commandReads) CredentialsByIDs(ctx context.Context, ids []uuid.UUID) ([]*shared.CredentialSnapshot, error) {
	if r.accountStore == nil {
		r.accountStore = readstore.NewAccountReadStore(r.dbtx)
	}

	views, err := r.accountStore.CredentialsByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	result := make([]*shared.CredentialSnapshot, len(views))
	for i, v := range views {
		result[i] = &shared.CredentialSnapshot{
			AccountID: v.AccountID,
			Email:     v.Email,
			Password:  v.Password,
		}
	}
	return result, nil
}
