package readstore

import (
	"context"
	"time"

	"account-shop/internal/infra"
	"account-shop/internal/infra/db"
	"account-shop/internal/usecase/queries"
)

type StockStore interface {
	Counts(ctx context.Context, now time.Time) (*queries.StockView, error)
}

type StockReadStore struct {
	db db.DBTX
}

func NewStockReadStore(dbtx db.DBTX) *StockReadStore {
	return &StockReadStore{db: dbtx}
}

// Counts returns total/consumed/reserved/available in a single statement so
// the numbers are mutually consistent.
// 期限切れの予約は reserved に含めない（sweep 前でも売れる在庫として数える）
func (r *StockReadStore) Counts(ctx context.Context, now time.Time) (*queries.StockView, error) {
	const q = `
		SELECT
			COUNT(*) AS total,
			COUNT(*) FILTER (WHERE a.consumed) AS consumed,
			COUNT(*) FILTER (WHERE NOT a.consumed AND EXISTS (
				SELECT 1
				FROM reservation_accounts ra
				JOIN reservations res ON res.id = ra.reservation_id
				WHERE ra.account_id = a.id
				  AND res.status = 'active'
				  AND res.expires_at > $1
			)) AS reserved
		FROM accounts a`

	var view queries.StockView
	if err := r.db.QueryRow(ctx, q, now).Scan(&view.Total, &view.Consumed, &view.Reserved); err != nil {
		return nil, infra.WrapRepoErr("failed to count stock", err)
	}
	view.Available = view.Total - view.Consumed - view.Reserved

	return &view, nil
}
