package reservation

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrEmptyItemSet = errors.New("reservation requires at least one account")
	ErrInvalidTTL   = errors.New("reservation ttl must be positive")
	ErrNotActive    = errors.New("reservation is not active")
)

// Reservation is a time-boxed hold on a set of accounts, 1:1 with an order.
// The item set is fixed at creation; only the status moves afterwards:
// active→completed (approve), active→released (reject), active→expired (sweep).
type Reservation struct {
	id         uuid.UUID
	orderID    uuid.UUID
	accountIDs []uuid.UUID
	status     Status
	reservedAt time.Time
	expiresAt  time.Time
}

func NewReservation(orderID uuid.UUID, accountIDs []uuid.UUID, now time.Time, ttl time.Duration) (*Reservation, error) {
	if len(accountIDs) == 0 {
		return nil, ErrEmptyItemSet
	}
	if ttl <= 0 {
		return nil, ErrInvalidTTL
	}
	return &Reservation{
		id:         uuid.New(),
		orderID:    orderID,
		accountIDs: accountIDs,
		status:     StatusActive,
		reservedAt: now,
		expiresAt:  now.Add(ttl),
	}, nil
}

func ReconstructReservation(
	id, orderID uuid.UUID,
	accountIDs []uuid.UUID,
	status Status,
	reservedAt, expiresAt time.Time,
) *Reservation {
	return &Reservation{
		id:         id,
		orderID:    orderID,
		accountIDs: accountIDs,
		status:     status,
		reservedAt: reservedAt,
		expiresAt:  expiresAt,
	}
}

func (r *Reservation) Complete() error {
	if r.status != StatusActive {
		return ErrNotActive
	}
	r.status = StatusCompleted
	return nil
}

func (r *Reservation) Release() error {
	if r.status != StatusActive {
		return ErrNotActive
	}
	r.status = StatusReleased
	return nil
}

func (r *Reservation) Expire(now time.Time) error {
	if r.status != StatusActive {
		return ErrNotActive
	}
	if now.Before(r.expiresAt) {
		return ErrNotActive
	}
	r.status = StatusExpired
	return nil
}

// IsHolding reports whether this reservation still counts its accounts as
// held. Expired-but-unswept reservations hold nothing.
func (r *Reservation) IsHolding(now time.Time) bool {
	return r.status == StatusActive && now.Before(r.expiresAt)
}

func (r *Reservation) ID() uuid.UUID           { return r.id }
func (r *Reservation) OrderID() uuid.UUID      { return r.orderID }
func (r *Reservation) AccountIDs() []uuid.UUID { return r.accountIDs }
func (r *Reservation) Status() Status          { return r.status }
func (r *Reservation) ReservedAt() time.Time   { return r.reservedAt }
func (r *Reservation) ExpiresAt() time.Time    { return r.expiresAt }
