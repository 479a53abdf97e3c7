package repository

import (
	"context"
	"time"

	"account-shop/internal/domain/reservation"
	"account-shop/internal/infra"
	"account-shop/internal/infra/db"
	"account-shop/internal/pkg/clock"
	"account-shop/internal/pkg/pgconv"

	"github.com/google/uuid"
)

type ReservationRepository struct {
	db    db.DBTX
	clock clock.Clock
}

func NewReservationRepository(dbtx db.DBTX, clk clock.Clock) *ReservationRepository {
	return &ReservationRepository{
		db:    dbtx,
		clock: clk,
	}
}

func (r *ReservationRepository) Create(ctx context.Context, res *reservation.Reservation) error {
	const insertReservation = `
		INSERT INTO reservations (id, order_id, status, reserved_at, expires_at)
		VALUES ($1, $2, $3, $4, $5)`

	_, err := r.db.Exec(ctx, insertReservation,
		res.ID(), res.OrderID(), res.Status().String(), res.ReservedAt(), res.ExpiresAt(),
	)
	if err != nil {
		return infra.WrapRepoErr("failed to create reservation", err)
	}

	const insertItems = `
		INSERT INTO reservation_accounts (reservation_id, account_id)
		SELECT $1, unnest($2::uuid[])`

	if _, err := r.db.Exec(ctx, insertItems, res.ID(), res.AccountIDs()); err != nil {
		return infra.WrapRepoErr("failed to attach reservation accounts", err)
	}
	return nil
}

// FindActiveByOrder returns the order's active reservation with its item set,
// locking the reservation row so approve/reject/sweep serialize on it.
func (r *ReservationRepository) FindActiveByOrder(ctx context.Context, orderID uuid.UUID) (*reservation.Reservation, error) {
	const q = `
		SELECT id, order_id, status, reserved_at, expires_at
		FROM reservations
		WHERE order_id = $1 AND status = 'active'
		FOR UPDATE`

	row := r.db.QueryRow(ctx, q, orderID)

	var (
		id, oid               uuid.UUID
		status                string
		reservedAt, expiresAt time.Time
	)
	if err := row.Scan(&id, &oid, &status, &reservedAt, &expiresAt); err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("active reservation not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find active reservation", err)
	}

	accountIDs, err := r.itemSet(ctx, id)
	if err != nil {
		return nil, err
	}

	return reservation.ReconstructReservation(
		id, oid, accountIDs, reservation.Status(status), reservedAt, expiresAt,
	), nil
}

func (r *ReservationRepository) itemSet(ctx context.Context, reservationID uuid.UUID) ([]uuid.UUID, error) {
	const q = `
		SELECT account_id
		FROM reservation_accounts
		WHERE reservation_id = $1
		ORDER BY account_id`

	rows, err := r.db.Query(ctx, q, reservationID)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to load reservation accounts", err)
	}
	defer rows.Close()

	var ids []uuid.UUID
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, infra.WrapRepoErr("failed to scan reservation account id", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to read reservation accounts", err)
	}
	return ids, nil
}

func (r *ReservationRepository) SetStatus(ctx context.Context, id uuid.UUID, status reservation.Status) error {
	const q = `UPDATE reservations SET status = $2 WHERE id = $1 AND status = 'active'`

	tag, err := r.db.Exec(ctx, q, id, status.String())
	if err != nil {
		return infra.WrapRepoErr("failed to update reservation status", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("reservation not active", nil, infra.KindConflict)
	}
	return nil
}

func (r *ReservationRepository) ExpireStale(ctx context.Context) (int64, error) {
	const q = `
		UPDATE reservations
		SET status = 'expired'
		WHERE status = 'active' AND expires_at < $1`

	tag, err := r.db.Exec(ctx, q, r.clock.Now())
	if err != nil {
		return 0, infra.WrapRepoErr("failed to expire stale reservations", err)
	}
	return tag.RowsAffected(), nil
}
