package shared

import (
	"context"
	"time"

	"account-shop/internal/domain/account"
	"account-shop/internal/domain/order"
	"account-shop/internal/domain/reservation"
	"account-shop/internal/infra/db"

	"github.com/google/uuid"
)

type UnitOfWork interface {
	// Within: Full transaction for write operations with retry logic.
	// Command-side reads happen through Tx.Reads inside the transaction.
	Within(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error
}

type Tx interface {
	Orders() OrderRepository
	Accounts() AccountRepository
	Reservations() ReservationRepository
	Reads() CommandReads
	DB() db.DBTX
}

type CommandReads interface {
	OrderByID(ctx context.Context, id uuid.UUID) (*OrderSnapshot, error)
	// CredentialsByIDs loads secret payloads for delivery after a hold is
	// consumed. NotFound kind when any id is missing.
	CredentialsByIDs(ctx context.Context, ids []uuid.UUID) ([]*CredentialSnapshot, error)
}

type OrderRepository interface {
	Create(ctx context.Context, o *order.Order) error
	SetStatus(ctx context.Context, id uuid.UUID, status order.Status, completedAt *time.Time) error
	AttachTicketChannel(ctx context.Context, id uuid.UUID, channelID string) error
}

type AccountRepository interface {
	Insert(ctx context.Context, a *account.Account) error
	// LockAvailable locks and returns up to limit unconsumed, unheld account
	// ids. Short results mean insufficient stock; the caller decides whether
	// to abort the transaction.
	LockAvailable(ctx context.Context, limit int) ([]uuid.UUID, error)
	// MarkConsumed consumes the given accounts, skipping any already consumed.
	// Returns the number of rows actually flipped.
	MarkConsumed(ctx context.Context, ids []uuid.UUID, buyerID string) (int64, error)
}

type ReservationRepository interface {
	Create(ctx context.Context, r *reservation.Reservation) error
	// FindActiveByOrder locks the order's active reservation for the rest of
	// the transaction. NotFound kind when none exists.
	FindActiveByOrder(ctx context.Context, orderID uuid.UUID) (*reservation.Reservation, error)
	SetStatus(ctx context.Context, id uuid.UUID, status reservation.Status) error
	// ExpireStale flips active reservations whose expiry has passed and
	// returns how many were flipped.
	ExpireStale(ctx context.Context) (int64, error)
}
