package readstore

import (
	"context"
	"time"

	"account-shop/internal/infra"
	"account-shop/internal/infra/db"
	"account-shop/internal/pkg/pgconv"
	"account-shop/internal/usecase/queries"

	"github.com/google/uuid"
)

type OrderStore interface {
	FindByID(ctx context.Context, id uuid.UUID) (*queries.OrderView, error)
	FindRecentByBuyer(ctx context.Context, buyerID string, limit int32) ([]*queries.OrderListItem, error)
}

type OrderReadStore struct {
	db db.DBTX
}

func NewOrderReadStore(dbtx db.DBTX) *OrderReadStore {
	return &OrderReadStore{db: dbtx}
}

func (r *OrderReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.OrderView, error) {
	const q = `
		SELECT id, buyer_id, buyer_name, quantity, total_price_cents,
		       card_type, card_code, status, COALESCE(ticket_channel_id, ''),
		       created_at, completed_at
		FROM orders
		WHERE id = $1`

	var (
		view        queries.OrderView
		completedAt *time.Time
	)
	err := r.db.QueryRow(ctx, q, id).Scan(
		&view.ID,
		&view.BuyerID,
		&view.BuyerName,
		&view.Quantity,
		&view.TotalPriceCents,
		&view.CardType,
		&view.CardCode,
		&view.Status,
		&view.TicketChannelID,
		&view.CreatedAt,
		&completedAt,
	)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("order not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find order by ID", err)
	}
	view.CompletedAt = completedAt

	return &view, nil
}

func (r *OrderReadStore) FindRecentByBuyer(ctx context.Context, buyerID string, limit int32) ([]*queries.OrderListItem, error) {
	const q = `
		SELECT id, buyer_name, quantity, total_price_cents, status, created_at
		FROM orders
		WHERE buyer_id = $1
		ORDER BY created_at DESC, id DESC
		LIMIT $2`

	rows, err := r.db.Query(ctx, q, buyerID, limit)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list orders by buyer", err)
	}
	defer rows.Close()

	var result []*queries.OrderListItem
	for rows.Next() {
		var item queries.OrderListItem
		if err := rows.Scan(
			&item.ID,
			&item.BuyerName,
			&item.Quantity,
			&item.TotalPriceCents,
			&item.Status,
			&item.CreatedAt,
		); err != nil {
			return nil, infra.WrapRepoErr("failed to scan order row", err)
		}
		result = append(result, &item)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate order rows", err)
	}

	return result, nil
}
