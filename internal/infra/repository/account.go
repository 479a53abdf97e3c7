package repository

import (
	"context"
	"errors"

	"account-shop/internal/domain/account"
	"account-shop/internal/infra"
	"account-shop/internal/infra/db"
	"account-shop/internal/pkg/clock"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
)

const pgErrCodeUniqueViolation = "23505"

type AccountRepository struct {
	db    db.DBTX
	clock clock.Clock
}

func NewAccountRepository(dbtx db.DBTX, clk clock.Clock) *AccountRepository {
	return &AccountRepository{
		db:    dbtx,
		clock: clk,
	}
}

// Insert adds one account. ON CONFLICT keeps a duplicate email from aborting
// the surrounding transaction, so a batch import can report the duplicate and
// keep going.
func (r *AccountRepository) Insert(ctx context.Context, a *account.Account) error {
	const q = `
		INSERT INTO accounts (id, email, password, consumed, created_at)
		VALUES ($1, $2, $3, false, $4)
		ON CONFLICT (email) DO NOTHING`

	tag, err := r.db.Exec(ctx, q, a.ID(), a.Email(), a.Password(), r.clock.Now())
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgErrCodeUniqueViolation {
			return infra.WrapRepoErr("account already exists", err, infra.KindDuplicateKey)
		}
		return infra.WrapRepoErr("failed to insert account", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("account already exists", nil, infra.KindDuplicateKey)
	}
	return nil
}

// LockAvailable selects unconsumed accounts outside every holding reservation
// and locks them for the current transaction. SKIP LOCKED keeps two
// near-simultaneous allocations from blocking on, or double-claiming, the same
// rows; this is the single point that enforces the disjointness invariant.
func (r *AccountRepository) LockAvailable(ctx context.Context, limit int) ([]uuid.UUID, error) {
	const q = `
		SELECT a.id
		FROM accounts a
		WHERE a.consumed = false
		  AND NOT EXISTS (
			SELECT 1
			FROM reservation_accounts ra
			JOIN reservations res ON res.id = ra.reservation_id
			WHERE ra.account_id = a.id
			  AND res.status = 'active'
			  AND res.expires_at > $2
		  )
		ORDER BY a.created_at, a.id
		LIMIT $1
		FOR UPDATE OF a SKIP LOCKED`

	rows, err := r.db.Query(ctx, q, limit, r.clock.Now())
	if err != nil {
		return nil, infra.WrapRepoErr("failed to lock available accounts", err)
	}
	defer rows.Close()

	var ids []uuid.UUID
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, infra.WrapRepoErr("failed to scan account id", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to read available accounts", err)
	}
	return ids, nil
}

func (r *AccountRepository) MarkConsumed(ctx context.Context, ids []uuid.UUID, buyerID string) (int64, error) {
	const q = `
		UPDATE accounts
		SET consumed = true, consumed_by = $2, consumed_at = $3
		WHERE id = ANY($1) AND consumed = false`

	tag, err := r.db.Exec(ctx, q, ids, buyerID, r.clock.Now())
	if err != nil {
		return 0, infra.WrapRepoErr("failed to mark accounts consumed", err)
	}
	return tag.RowsAffected(), nil
}
