package repository

import (
	"context"
	"time"

	"account-shop/internal/domain/order"
	"account-shop/internal/infra"
	"account-shop/internal/infra/db"
	"account-shop/internal/pkg/clock"

	"github.com/google/uuid"
)

type OrderRepository struct {
	db    db.DBTX
	clock clock.Clock
}

func NewOrderRepository(dbtx db.DBTX, clk clock.Clock) *OrderRepository {
	return &OrderRepository{
		db:    dbtx,
		clock: clk,
	}
}

func (r *OrderRepository) Create(ctx context.Context, o *order.Order) error {
	const q = `
		INSERT INTO orders (
			id, buyer_id, buyer_name, quantity, total_price_cents,
			card_type, card_code, status, ticket_channel_id, created_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NULLIF($9, ''), $10)`

	_, err := r.db.Exec(ctx, q,
		o.ID(), o.BuyerID(), o.BuyerName(), o.Quantity(), o.TotalPriceCents(),
		o.CardType().String(), o.CardCode(), o.Status().String(), o.TicketChannelID(), r.clock.Now(),
	)
	if err != nil {
		return infra.WrapRepoErr("failed to create order", err)
	}
	return nil
}

// SetStatus finalizes an order. The WHERE guard keeps terminal orders
// immutable even if two operators race on the same approval message.
func (r *OrderRepository) SetStatus(ctx context.Context, id uuid.UUID, status order.Status, completedAt *time.Time) error {
	const q = `
		UPDATE orders
		SET status = $2, completed_at = $3
		WHERE id = $1 AND status = 'pending'`

	tag, err := r.db.Exec(ctx, q, id, status.String(), completedAt)
	if err != nil {
		return infra.WrapRepoErr("failed to update order status", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("order not pending", nil, infra.KindConflict)
	}
	return nil
}

func (r *OrderRepository) AttachTicketChannel(ctx context.Context, id uuid.UUID, channelID string) error {
	const q = `UPDATE orders SET ticket_channel_id = $2 WHERE id = $1`

	_, err := r.db.Exec(ctx, q, id, channelID)
	if err != nil {
		return infra.WrapRepoErr("failed to attach ticket channel", err)
	}
	return nil
}
