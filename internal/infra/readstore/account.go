package readstore

import (
	"context"

	"account-shop/internal/infra"
	"account-shop/internal/infra/db"
	"account-shop/internal/usecase/queries"

	"github.com/google/uuid"
)

type AccountStore interface {
	CredentialsByIDs(ctx context.Context, ids []uuid.UUID) ([]*queries.CredentialView, error)
}

type AccountReadStore struct {
	db db.DBTX
}

func NewAccountReadStore(dbtx db.DBTX) *AccountReadStore {
	return &AccountReadStore{db: dbtx}
}

// CredentialsByIDs loads the secret payload for delivery. Caller is expected
// to pass IDs it already owns through a completed reservation.
func (r *AccountReadStore) CredentialsByIDs(ctx context.Context, ids []uuid.UUID) ([]*queries.CredentialView, error) {
	const q = `
		SELECT id, email, password
		FROM accounts
		WHERE id = ANY($1)
		ORDER BY created_at, id`

	rows, err := r.db.Query(ctx, q, ids)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to load credentials", err)
	}
	defer rows.Close()

	var result []*queries.CredentialView
	for rows.Next() {
		var view queries.CredentialView
		if err := rows.Scan(&view.AccountID, &view.Email, &view.Password); err != nil {
			return nil, infra.WrapRepoErr("failed to scan credential row", err)
		}
		result = append(result, &view)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate credential rows", err)
	}

	if len(result) != len(ids) {
		return nil, infra.WrapRepoErr("some accounts missing", nil, infra.KindNotFound)
	}

	return result, nil
}
